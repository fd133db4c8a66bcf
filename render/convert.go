package render

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"time"

	starlarkLib "go.starlark.net/starlark"
	starlarkTime "go.starlark.net/lib/time"
)

// toStarlark converts decoded JSON or YAML data, and the common Go scalar types, into
// Starlark values. Maps become dicts with their keys sorted so iteration order in a
// template is stable.
func toStarlark(v any) (starlarkLib.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlarkLib.None, nil
	case starlarkLib.Value:
		return val, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int32:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case uint:
		return starlarkLib.MakeUint(val), nil
	case uint64:
		return starlarkLib.MakeUint64(val), nil
	case float32:
		return starlarkLib.Float(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case []byte:
		return starlarkLib.Bytes(val), nil
	case time.Time:
		return starlarkTime.Time(val), nil
	case time.Duration:
		return starlarkTime.Duration(val), nil
	case *url.URL:
		return starlarkLib.String(val.String()), nil
	case []string:
		elems := make([]starlarkLib.Value, len(val))
		for i, s := range val {
			elems[i] = starlarkLib.String(s)
		}
		return starlarkLib.NewList(elems), nil
	case []any:
		elems := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			sv, err := toStarlark(elem)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			elems[i] = sv
		}
		return starlarkLib.NewList(elems), nil
	case []map[string]any:
		elems := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			sv, err := toStarlark(elem)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			elems[i] = sv
		}
		return starlarkLib.NewList(elems), nil
	case map[string]struct{}:
		set := starlarkLib.NewSet(len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			if err := set.Insert(starlarkLib.String(k)); err != nil {
				return nil, err
			}
		}
		return set, nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			sv, err := toStarlark(val[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			if err := dict.SetKey(starlarkLib.String(k), sv); err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

package data

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// ContextProvider stores render data in a context under a fixed key.
type ContextProvider struct {
	contextKey ContextKey
}

// NewContextProvider creates a ContextProvider storing data under contextKey.
func NewContextProvider(contextKey ContextKey) *ContextProvider {
	return &ContextProvider{contextKey: contextKey}
}

// GetData returns the data stored in ctx, or an empty map when there is none.
func (p *ContextProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.contextKey == "" {
		return nil, fmt.Errorf("%w: context key", ErrEmptyKey)
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]any), nil
	}
	d, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected map[string]any in context, got %T", ErrInvalidValue, value)
	}
	return d, nil
}

// AddDataToContext merges data over what ctx already holds. Entries with an empty key
// are skipped and reported, the rest are still stored.
func (p *ContextProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, fmt.Errorf("%w: context key", ErrEmptyKey)
	}

	toStore := make(map[string]any)
	if existing, ok := ctx.Value(p.contextKey).(map[string]any); ok {
		maps.Copy(toStore, existing)
	}

	var errs []error
	for _, m := range data {
		for key, value := range m {
			if key == "" {
				errs = append(errs, ErrEmptyKey)
				continue
			}
			if err := checkKeys(value); err != nil {
				errs = append(errs, fmt.Errorf("value for %q: %w", key, err))
				continue
			}
			toStore = deepMerge(toStore, map[string]any{key: value})
		}
	}

	return context.WithValue(ctx, p.contextKey, toStore), errors.Join(errs...)
}

func checkKeys(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for k, v := range m {
		if k == "" {
			return fmt.Errorf("%w in nested map", ErrEmptyKey)
		}
		if err := checkKeys(v); err != nil {
			return err
		}
	}
	return nil
}

package data

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// CompositeProvider layers providers. Later providers override earlier ones.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider creates a provider querying providers in order. Nil entries are
// ignored.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{providers: providers}
}

// GetData deep merges the data of every provider. The first failing provider aborts.
func (p *CompositeProvider) GetData(ctx context.Context) (map[string]any, error) {
	result := make(map[string]any)
	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		d, err := provider.GetData(ctx)
		if err != nil {
			return nil, fmt.Errorf("error from provider %d: %w", i, err)
		}
		result = deepMerge(result, d)
	}
	return result, nil
}

// AddDataToContext offers data to every provider. Static providers refusing runtime data
// are skipped; the call fails only when every other provider failed.
func (p *CompositeProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	current := ctx
	var (
		errs      []error
		attempted int
		stored    int
	)

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}
		next, err := provider.AddDataToContext(current, data...)
		if errors.Is(err, ErrStaticProviderNoRuntimeUpdates) {
			continue
		}
		attempted++
		if err != nil {
			errs = append(errs, fmt.Errorf("error from provider %d: %w", i, err))
			continue
		}
		current = next
		stored++
	}

	if attempted == 0 {
		return ctx, ErrStaticProviderNoRuntimeUpdates
	}
	if stored == 0 {
		return ctx, errors.Join(errs...)
	}
	return current, nil
}

// deepMerge returns base overlaid with over. Nested maps merge; any other value in over
// replaces the one in base.
func deepMerge(base, over map[string]any) map[string]any {
	result := maps.Clone(base)
	if result == nil {
		result = make(map[string]any, len(over))
	}
	for k, v := range over {
		baseMap, baseIsMap := result[k].(map[string]any)
		overMap, overIsMap := v.(map[string]any)
		if baseIsMap && overIsMap {
			result[k] = deepMerge(baseMap, overMap)
			continue
		}
		result[k] = v
	}
	return result
}

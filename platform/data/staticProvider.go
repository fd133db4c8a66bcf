package data

import (
	"context"
	"maps"
)

// StaticProvider returns the same data for every render. It is the usual provider for
// data read from a file at startup.
type StaticProvider struct {
	data map[string]any
}

// NewStaticProvider creates a StaticProvider. A nil map is treated as empty.
func NewStaticProvider(data map[string]any) *StaticProvider {
	if data == nil {
		data = make(map[string]any)
	}
	return &StaticProvider{data: data}
}

// GetData returns a shallow copy of the static data.
func (p *StaticProvider) GetData(_ context.Context) (map[string]any, error) {
	return maps.Clone(p.data), nil
}

// AddDataToContext always fails with ErrStaticProviderNoRuntimeUpdates and returns ctx
// unchanged.
func (p *StaticProvider) AddDataToContext(
	ctx context.Context,
	_ ...map[string]any,
) (context.Context, error) {
	return ctx, ErrStaticProviderNoRuntimeUpdates
}

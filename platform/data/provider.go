// Package data supplies the values a template sees as globals when it is rendered.
//
// Data either lives with the provider (StaticProvider) or travels in a context.Context
// (ContextProvider), so one compiled template can be rendered for many requests.
package data

import (
	"context"
	"errors"
)

var (
	// ErrStaticProviderNoRuntimeUpdates is returned by StaticProvider.AddDataToContext.
	ErrStaticProviderNoRuntimeUpdates = errors.New("static provider does not accept runtime data")

	ErrEmptyKey     = errors.New("empty data key")
	ErrNoProvider   = errors.New("no data provider available")
	ErrInvalidValue = errors.New("invalid render data")
)

// ContextKey is the type of context keys used by ContextProvider.
type ContextKey string

// RenderData is the default key under which ContextProvider stores render data.
const RenderData ContextKey = "werb_render_data"

// Getter returns the render data available for ctx.
type Getter interface {
	GetData(ctx context.Context) (map[string]any, error)
}

// Setter returns a context carrying data for a later GetData call. Later maps override
// earlier ones key by key, and nested maps are merged.
type Setter interface {
	AddDataToContext(ctx context.Context, data ...map[string]any) (context.Context, error)
}

// Provider both stores and retrieves render data.
type Provider interface {
	Getter
	Setter
}

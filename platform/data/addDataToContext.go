package data

import (
	"context"
	"fmt"
	"log/slog"
)

// AddDataToContextHelper stores d through provider, logging when no provider is set.
// On failure the original ctx is returned.
func AddDataToContextHelper(
	ctx context.Context,
	logger *slog.Logger,
	provider Provider,
	d ...map[string]any,
) (context.Context, error) {
	if provider == nil {
		if logger != nil {
			logger.WarnContext(ctx, "no data provider available for context preparation")
		}
		return ctx, ErrNoProvider
	}

	enriched, err := provider.AddDataToContext(ctx, d...)
	if err != nil {
		return ctx, fmt.Errorf("failed to prepare context: %w", err)
	}
	return enriched, nil
}

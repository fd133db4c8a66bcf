package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger returns the handler and logger used by one werb component.
//
// A nil handler is replaced by a text handler on stderr, grouped under component, and a
// warning is logged so the missing configuration is visible. When group is non-empty the
// returned logger is scoped to it; the returned handler is never grouped by group so it
// can be passed on to child components.
func SetupLogger(handler slog.Handler, component string, group string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil).WithGroup(component)
		slog.New(handler).Warn("no log handler configured, falling back to stderr")
	}

	if group == "" {
		return handler, slog.New(handler)
	}
	return handler, slog.New(handler.WithGroup(group))
}

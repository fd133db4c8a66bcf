package options

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-werb/dialects"
	"github.com/robbyt/go-werb/dialects/types"
	"github.com/robbyt/go-werb/platform/data"
	"github.com/robbyt/go-werb/transpiler"
)

// DefaultConfig returns a Config targeting dialect with the default names and modes.
func DefaultConfig(dialect types.Type) *Config {
	return &Config{
		handler:      DefaultHandler(),
		dialect:      dialect,
		dataProvider: DefaultDataProvider(),
		rootName:     transpiler.DefaultRootName,
		documentName: transpiler.DefaultDocumentName,
		handlePrefix: transpiler.DefaultHandlePrefix,
		contentMode:  dialects.ContentText,
		appendMode:   transpiler.AppendEager,
		rootID:       transpiler.DefaultRootName,
	}
}

// DefaultHandler logs warnings and errors to stderr, keeping stdout free for output.
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
}

// DefaultDataProvider reads render data from the context.
func DefaultDataProvider() data.Provider {
	return data.NewContextProvider(data.RenderData)
}

// WithDefaults fills unset fields of a Config built without DefaultConfig.
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.dialect == "" {
			c.dialect = types.Ruby
		}
		if c.dataProvider == nil {
			c.dataProvider = DefaultDataProvider()
		}
		if c.rootName == "" {
			c.rootName = transpiler.DefaultRootName
		}
		if c.documentName == "" {
			c.documentName = transpiler.DefaultDocumentName
		}
		if c.handlePrefix == "" {
			c.handlePrefix = transpiler.DefaultHandlePrefix
		}
		if c.rootID == "" {
			c.rootID = c.rootName
		}
		return nil
	}
}

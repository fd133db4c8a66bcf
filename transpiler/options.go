package transpiler

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/robbyt/go-werb/dialects"
	"github.com/robbyt/go-werb/dialects/ruby"
	"github.com/robbyt/go-werb/internal/helpers"
)

const (
	DefaultRootName     = "root"
	DefaultDocumentName = "document"
	DefaultHandlePrefix = "el"
)

// AppendMode decides where an element's append-to-parent statement is emitted.
type AppendMode int

const (
	// AppendEager attaches each element right after creating it.
	AppendEager AppendMode = iota

	// AppendDeferred attaches each element after its whole subtree has been built.
	AppendDeferred
)

func (m AppendMode) String() string {
	switch m {
	case AppendEager:
		return "eager"
	case AppendDeferred:
		return "deferred"
	default:
		return fmt.Sprintf("AppendMode(%d)", int(m))
	}
}

// ParseAppendMode converts "eager" or "deferred" into an AppendMode.
func ParseAppendMode(s string) (AppendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eager":
		return AppendEager, nil
	case "deferred":
		return AppendDeferred, nil
	default:
		return AppendEager, fmt.Errorf("unknown append mode %q", s)
	}
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FunctionalOption configures a Transpiler.
type FunctionalOption func(*Transpiler) error

// WithDialect sets the target dialect. The default is Ruby.
func WithDialect(d dialects.Dialect) FunctionalOption {
	return func(t *Transpiler) error {
		if d == nil {
			return fmt.Errorf("%w: dialect cannot be nil", ErrInvalidOption)
		}
		t.dialect = d
		return nil
	}
}

// WithRootName sets the name of the element that receives top-level content.
func WithRootName(name string) FunctionalOption {
	return func(t *Transpiler) error {
		t.rootName = name
		return nil
	}
}

// WithDocumentName sets the name of the global used to create elements.
func WithDocumentName(name string) FunctionalOption {
	return func(t *Transpiler) error {
		t.documentName = name
		return nil
	}
}

// WithHandlePrefix sets the prefix of generated element handles.
func WithHandlePrefix(prefix string) FunctionalOption {
	return func(t *Transpiler) error {
		t.handlePrefix = prefix
		return nil
	}
}

// WithContentMode selects whether content is appended through innerText or innerHTML.
func WithContentMode(mode dialects.ContentMode) FunctionalOption {
	return func(t *Transpiler) error {
		t.contentMode = mode
		return nil
	}
}

// WithAppendMode selects where append-to-parent statements are emitted.
func WithAppendMode(mode AppendMode) FunctionalOption {
	return func(t *Transpiler) error {
		t.appendMode = mode
		return nil
	}
}

// WithAttributes emits a setAttribute statement for every static tag attribute.
func WithAttributes() FunctionalOption {
	return func(t *Transpiler) error {
		t.attributes = true
		return nil
	}
}

// WithLogHandler sets the log handler for the transpiler.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(t *Transpiler) error {
		if handler == nil {
			return fmt.Errorf("%w: log handler cannot be nil", ErrInvalidOption)
		}
		t.logHandler = handler
		t.logger = nil
		return nil
	}
}

// WithLogger sets a specific logger for the transpiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(t *Transpiler) error {
		if logger == nil {
			return fmt.Errorf("%w: logger cannot be nil", ErrInvalidOption)
		}
		t.logger = logger
		t.logHandler = nil
		return nil
	}
}

func (t *Transpiler) applyDefaults() {
	t.dialect = ruby.New()
	t.rootName = DefaultRootName
	t.documentName = DefaultDocumentName
	t.handlePrefix = DefaultHandlePrefix
	t.contentMode = dialects.ContentText
	t.appendMode = AppendEager
	t.logHandler = slog.NewTextHandler(os.Stderr, nil)
}

func (t *Transpiler) setupLogger() {
	if t.logger != nil {
		t.logHandler = t.logger.Handler()
		return
	}
	t.logHandler, t.logger = helpers.SetupLogger(t.logHandler, "transpiler", "Transpiler")
}

func (t *Transpiler) validate() error {
	for label, name := range map[string]string{
		"root name":     t.rootName,
		"document name": t.documentName,
		"handle prefix": t.handlePrefix,
	} {
		if !identifier.MatchString(name) {
			return fmt.Errorf("%w: %s %q is not an identifier", ErrInvalidOption, label, name)
		}
	}
	if t.rootName == t.documentName {
		return fmt.Errorf("%w: root and document names must differ", ErrInvalidOption)
	}
	switch t.contentMode {
	case dialects.ContentText, dialects.ContentHTML:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOption, t.contentMode)
	}
	switch t.appendMode {
	case AppendEager, AppendDeferred:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOption, t.appendMode)
	}
	return nil
}

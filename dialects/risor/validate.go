package risor

import (
	"context"
	"errors"
	"fmt"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"
)

// ErrValidationFailed is returned when the compiled statements are not valid Risor.
var ErrValidationFailed = errors.New("risor validation failed")

// validate parses and compiles code, treating the builtins plus globals as defined names.
func validate(code string, globals []string) error {
	program, err := risorParser.Parse(context.Background(), code)
	if err != nil {
		msg := err.Error()
		var friendly risorErrors.FriendlyError
		if errors.As(err, &friendly) {
			msg = friendly.FriendlyErrorMessage()
		}
		return fmt.Errorf("%w: %s", ErrValidationFailed, msg)
	}

	names := append(risorLib.NewConfig().GlobalNames(), globals...)
	if _, err := risorCompiler.Compile(program, risorCompiler.WithGlobalNames(names)); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return nil
}

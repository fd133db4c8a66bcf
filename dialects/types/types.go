// Package types names the target dialects a template can be compiled to.
package types

import (
	"fmt"
	"strings"
)

// Type is the name of a target scripting dialect.
type Type string

const (
	// Ruby targets ruby.wasm, where DOM objects are reached through the js gem.
	Ruby Type = "ruby"

	// Starlark targets go.starlark.net and can be rendered in-process.
	Starlark Type = "starlark"

	// Risor targets the Risor scripting language.
	Risor Type = "risor"
)

// All lists every supported dialect, in the order used by help output.
var All = []Type{Ruby, Starlark, Risor}

func (t Type) String() string {
	return string(t)
}

// Parse converts a case-insensitive dialect name into a Type.
func Parse(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range All {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown dialect %q", name)
}

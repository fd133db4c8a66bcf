package render

import (
	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
)

// standardModules are predeclared in every render, next to the Starlark universe.
func standardModules() starlarkLib.StringDict {
	return starlarkLib.StringDict{
		"json": starlarkJSON.Module,
		"math": starlarkMath.Module,
		"time": starlarkTime.Module,
	}
}

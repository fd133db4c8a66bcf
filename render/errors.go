package render

import "errors"

var (
	ErrExecFailed    = errors.New("template execution failed")
	ErrNoLoader      = errors.New("no template loader")
	ErrInvalidGlobal = errors.New("invalid render data")
	ErrInvalidOption = errors.New("invalid renderer option")
)

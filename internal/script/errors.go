package script

import "errors"

var (
	// ErrClosed is returned when using a Runtime after Close.
	ErrClosed = errors.New("script runtime closed")
	// ErrSyntax is returned when a script fails to compile.
	ErrSyntax = errors.New("script syntax error")
	// ErrScript is returned when a script raises an error while loading.
	ErrScript = errors.New("script error")
	// ErrCallback is returned when a hook callback fails during dispatch.
	ErrCallback = errors.New("hook callback failed")
)

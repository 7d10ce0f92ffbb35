package statiq

import "errors"

var (
	// ErrBadPattern is returned when an allow-list pattern fails to compile.
	ErrBadPattern = errors.New("bad directory pattern")
	// ErrProvider is returned when a dynamic root provider fails.
	ErrProvider = errors.New("root provider failed")
)

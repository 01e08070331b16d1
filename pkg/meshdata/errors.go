package meshdata

import "errors"

// Mesh errors.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNoData               = errors.New("no data")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrCorruptSnapshot      = errors.New("corrupt mesh snapshot")
)

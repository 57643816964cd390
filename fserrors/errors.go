// Package fserrors defines the error taxonomy shared by every layer of the
// storage core: a closed set of sentinel conditions (I/O failure, exhausted
// free-block pool, out-of-range logical block) plus a wrapper that lets a
// caller attach human-readable context without discarding the sentinel for
// errors.Is.
package fserrors

import "fmt"

// DriverError is an error that can be annotated with additional context
// without losing its identity for errors.Is/errors.As.
type DriverError interface {
	error
	WithMessage(message string) DriverError
	WrapError(err error) DriverError
}

// -----------------------------------------------------------------------------

type customDriverError struct {
	message       string
	originalError error
}

func (e customDriverError) Error() string {
	return e.message
}

func (e customDriverError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customDriverError) WrapError(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: err,
	}
}

func (e customDriverError) Unwrap() error {
	return e.originalError
}

// Annotate wraps err with a human-readable description of the operation that
// failed (inode id, logical block, offset, length, ...), matching spec
// taxonomy's Annotated(context, inner). The sentinel underneath remains
// reachable via errors.Is.
func Annotate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	context := fmt.Sprintf(format, args...)
	if de, ok := err.(DriverError); ok {
		return de.WithMessage(context)
	}
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", context, err.Error()),
		originalError: err,
	}
}

//go:build stacktrace

//nolint:goerr113
package ierrors

import (
	"fmt"

	crdberrors "github.com/cockroachdb/errors"
)

// ensureStacktraceUniqueness attaches a stack trace to err unless its tree already carries one.
func ensureStacktraceUniqueness(err error) error {
	if err == nil {
		return nil
	}

	if crdberrors.GetReportableStackTrace(err) != nil {
		return err
	}

	// skip ensureStacktraceUniqueness and the exported constructor
	return crdberrors.WithStackDepth(err, 2)
}

// Errorf formats according to a format specifier and returns an error that carries a stack trace.
func Errorf(format string, args ...any) error {
	return ensureStacktraceUniqueness(fmt.Errorf(format, args...))
}

// Wrap prepends an error with a message and wraps it into a new error that carries a stack trace.
func Wrap(err error, message string) error {
	return ensureStacktraceUniqueness(fmt.Errorf("%s: %w", message, err))
}

// Wrapf prepends an error with a message format specifier and arguments and wraps it into a new error that carries a
// stack trace.
func Wrapf(err error, format string, args ...any) error {
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			return ensureStacktraceUniqueness(fmt.Errorf("%w: %w", fmt.Errorf(format, args...), err))
		}
	}

	return ensureStacktraceUniqueness(fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err))
}

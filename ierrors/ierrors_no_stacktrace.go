//go:build !stacktrace

//nolint:goerr113
package ierrors

import (
	"fmt"
)

// Errorf formats according to a format specifier and returns the string as a value that satisfies error. %w verbs
// are wrapped like in fmt.Errorf.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Wrap prepends an error with a message and wraps it into a new error.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf prepends an error with a message format specifier and arguments and wraps it into a new error.
func Wrapf(err error, format string, args ...any) error {
	// check if the passed args also contain an error
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			return fmt.Errorf("%w: %w", fmt.Errorf(format, args...), err)
		}
	}

	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

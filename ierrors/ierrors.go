// Package ierrors wraps the "errors" package of the standard library. Building with the "stacktrace" tag makes the
// constructing functions attach a stack trace (via github.com/cockroachdb/errors) to errors that do not carry one yet.
//
//nolint:goerr113
package ierrors

import (
	"errors"
)

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Package exitcode defines the process exit codes of todomvc-e2e.
package exitcode

import "errors"

const (
	// Success means every selected scenario passed.
	Success = 0

	// Failure means at least one scenario failed, or the command itself
	// failed for another reason (bad arguments, unknown scenario).
	Failure = 1

	// ConfigError means the configuration could not be loaded or is invalid.
	ConfigError = 2

	// BrowserError means the browser could not be launched.
	BrowserError = 3
)

// Error attaches an exit code to an error.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err carrying code. A nil err stays nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// From returns the exit code for err: Success for nil, the attached code if
// there is one, Failure otherwise.
func From(err error) int {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Failure
}

package todomvc

import (
	"errors"
	"fmt"
)

// Kind classifies a scenario failure.
type Kind int

const (
	// KindSetup covers navigation, storage writes and reloads.
	KindSetup Kind = iota + 1
	// KindInteraction covers gestures whose target is missing or that the
	// driver could not perform.
	KindInteraction
	// KindAssertion covers observed state that never matched the expectation.
	KindAssertion
)

func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindInteraction:
		return "interaction"
	case KindAssertion:
		return "assertion"
	default:
		return "unknown"
	}
}

// Error is the failure of one page operation.
type Error struct {
	Kind    Kind
	Op      string // helper name, e.g. "toggle"
	Target  string // task text or filter label, if any
	Message string
	Err     error
}

func (e *Error) Error() string {
	prefix := e.Op
	if e.Target != "" {
		prefix = fmt.Sprintf("%s %q", e.Op, e.Target)
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	default:
		return prefix
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func setupError(op string, err error) *Error {
	return &Error{Kind: KindSetup, Op: op, Err: err}
}

func interactionError(op, target string, err error) *Error {
	return &Error{Kind: KindInteraction, Op: op, Target: target, Err: err}
}

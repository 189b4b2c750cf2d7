package layout

import (
	"errors"
	"fmt"
)

// ErrLayoutInvariantViolated marks a report model that reached layout in
// a state earlier stages should have rejected. Always a bug signal from
// upstream; never caught and hidden.
var ErrLayoutInvariantViolated = errors.New("layout invariant violated")

// InvariantError names what exactly was corrupt.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s", ErrLayoutInvariantViolated, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrLayoutInvariantViolated }

func invariant(format string, args ...interface{}) error {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}

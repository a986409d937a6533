package session

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories for unknown session ids.
var ErrNotFound = errors.New("session not found")

// ValidationError reports a rejected argument or an out-of-range field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid session %s: %s", e.Field, e.Message)
}

// ErrFinished is matched by the ValidationError returned when mutating a
// finished session.
var ErrFinished = errors.New("session finished")

func (e *ValidationError) Is(target error) bool {
	return target == ErrFinished && e.Field == "state" && e.Message == ErrFinished.Error()
}

func finishedError() error {
	return &ValidationError{Field: "state", Message: ErrFinished.Error()}
}

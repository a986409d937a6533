package question

import (
	"fmt"
	"strings"
)

// ValidationError reports raw question data missing a required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question data: %s: %s", e.Field, e.Message)
}

// UnknownTypeError reports a type tag with no registered provider.
type UnknownTypeError struct {
	Type  string
	Known []string
}

func (e *UnknownTypeError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown question type %q", e.Type)
	}
	return fmt.Sprintf("unknown question type %q (supported: %s)", e.Type, strings.Join(e.Known, ", "))
}

// ConstructionError wraps a provider's refusal to build a question.
type ConstructionError struct {
	Type string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("build %q question: %v", e.Type, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Package strategy holds the next-question selection policies and the
// registry that constructs them by name.
package strategy

import (
	"github.com/abhisek/aprende/internal/question"
)

// Phase is the selector state machine position.
type Phase int

const (
	PhaseReady     Phase = iota // Next may return a question
	PhaseExhausted              // Terminal; Next returns nothing until Reset
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Selector decides which question comes next. Implementations own a copy
// of the question slice they were built with and are not safe for
// concurrent use.
type Selector interface {
	// Name is the registry name of the policy.
	Name() string

	// Next returns the next question, or false when none is available.
	Next() (question.Question, bool)

	// Reset rewinds the cursor to the first position.
	Reset()

	// Phase reports Ready or Exhausted.
	Phase() Phase

	// Len is the size of the owned question snapshot.
	Len() int

	// Snapshot captures cursor state for persistence.
	Snapshot() State

	// Restore applies a previously captured State.
	Restore(State) error
}

// State is the persisted cursor state of a selector. Fields a policy does
// not use are left zero.
type State struct {
	Strategy  string `json:"strategy"`
	Cursor    int    `json:"cursor"`
	Offset    int    `json:"offset,omitempty"`
	Stride    int    `json:"stride,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
	Draws     int    `json:"draws,omitempty"`
	Exhausted bool   `json:"exhausted,omitempty"`
}

// snapshot copies questions so later changes to the caller's slice are not
// observed. A nil slice is rejected.
func snapshot(questions []question.Question) ([]question.Question, error) {
	if questions == nil {
		return nil, &InvalidArgumentError{Arg: "questions", Message: "must not be nil"}
	}
	out := make([]question.Question, len(questions))
	copy(out, questions)
	return out, nil
}

func checkStrategy(want string, st State) error {
	if st.Strategy != want {
		return &InvalidArgumentError{Arg: "state", Message: "state belongs to strategy " + quote(st.Strategy) + ", not " + quote(want)}
	}
	return nil
}

func quote(s string) string { return "\"" + s + "\"" }

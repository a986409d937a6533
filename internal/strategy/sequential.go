package strategy

import "github.com/abhisek/aprende/internal/question"

// SequentialName is the registry name of Sequential.
const SequentialName = "sequential"

// Sequential visits every question once, in order, then exhausts.
type Sequential struct {
	questions []question.Question
	cursor    int
	exhausted bool
}

// NewSequential snapshots questions.
func NewSequential(questions []question.Question) (*Sequential, error) {
	qs, err := snapshot(questions)
	if err != nil {
		return nil, err
	}
	return &Sequential{questions: qs}, nil
}

func (s *Sequential) Name() string { return SequentialName }
func (s *Sequential) Len() int     { return len(s.questions) }

func (s *Sequential) Next() (question.Question, bool) {
	if s.cursor >= len(s.questions) {
		s.exhausted = true
		return nil, false
	}
	q := s.questions[s.cursor]
	s.cursor++
	return q, true
}

func (s *Sequential) Reset() {
	s.cursor = 0
	s.exhausted = false
}

func (s *Sequential) Phase() Phase {
	if s.exhausted {
		return PhaseExhausted
	}
	return PhaseReady
}

// Remaining is the number of questions left in this pass.
func (s *Sequential) Remaining() int {
	return len(s.questions) - s.cursor
}

func (s *Sequential) Snapshot() State {
	return State{Strategy: SequentialName, Cursor: s.cursor, Exhausted: s.exhausted}
}

func (s *Sequential) Restore(st State) error {
	if err := checkStrategy(SequentialName, st); err != nil {
		return err
	}
	if st.Cursor < 0 || st.Cursor > len(s.questions) {
		return &InvalidArgumentError{Arg: "cursor", Message: "out of range"}
	}
	s.cursor = st.Cursor
	s.exhausted = st.Exhausted
	return nil
}

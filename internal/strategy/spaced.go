package strategy

import "github.com/abhisek/aprende/internal/question"

// SpacedName is the registry name of SpacedRepetition.
const SpacedName = "spaced"

// DefaultStride is the SpacedRepetition step when none is configured.
const DefaultStride = 3

// SpacedRepetition walks the questions with a fixed stride and wraps
// forever, so neighbouring questions are never served back to back.
//
// When stride and N share a factor g, the plain walk would cycle through
// only N/g positions. Each time it returns to its starting position the
// walk moves to the next offset, so one full cycle still visits every
// question exactly once: N=6, stride=3 gives 0,3,1,4,2,5,0,...
type SpacedRepetition struct {
	questions []question.Question
	stride    int
	cursor    int
	offset    int
}

// NewSpacedRepetition snapshots questions. stride must be positive.
func NewSpacedRepetition(questions []question.Question, stride int) (*SpacedRepetition, error) {
	if stride <= 0 {
		return nil, &InvalidArgumentError{Arg: "stride", Message: "must be positive"}
	}
	qs, err := snapshot(questions)
	if err != nil {
		return nil, err
	}
	return &SpacedRepetition{questions: qs, stride: stride}, nil
}

func (s *SpacedRepetition) Name() string { return SpacedName }
func (s *SpacedRepetition) Len() int     { return len(s.questions) }
func (s *SpacedRepetition) Phase() Phase { return PhaseReady }

// Stride returns the configured step.
func (s *SpacedRepetition) Stride() int { return s.stride }

func (s *SpacedRepetition) Next() (question.Question, bool) {
	n := len(s.questions)
	if n == 0 {
		return nil, false
	}
	if s.cursor >= n {
		s.cursor = 0
		s.offset = 0
	}
	q := s.questions[s.cursor]
	s.cursor = (s.cursor + s.stride) % n
	if s.cursor == s.offset {
		s.offset = (s.offset + 1) % gcd(s.stride, n)
		s.cursor = s.offset
	}
	return q, true
}

// Progress is cursor/N, the position within the current cycle.
func (s *SpacedRepetition) Progress() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.cursor) / float64(len(s.questions))
}

func (s *SpacedRepetition) Reset() {
	s.cursor = 0
	s.offset = 0
}

func (s *SpacedRepetition) Snapshot() State {
	return State{Strategy: SpacedName, Cursor: s.cursor, Offset: s.offset, Stride: s.stride}
}

func (s *SpacedRepetition) Restore(st State) error {
	if err := checkStrategy(SpacedName, st); err != nil {
		return err
	}
	if st.Stride <= 0 {
		return &InvalidArgumentError{Arg: "stride", Message: "must be positive"}
	}
	if st.Cursor < 0 || st.Offset < 0 {
		return &InvalidArgumentError{Arg: "cursor", Message: "must be >= 0"}
	}
	s.stride = st.Stride
	s.cursor = st.Cursor
	s.offset = st.Offset
	return nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

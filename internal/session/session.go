package session

import (
	"fmt"
	"time"

	"github.com/abhisek/aprende/internal/course"
	"github.com/abhisek/aprende/internal/question"
	"github.com/abhisek/aprende/internal/strategy"
)

// Session is one learner's pass through a course. It is not safe for
// concurrent use; callers serialize access per session.
type Session struct {
	id       string
	course   *course.Course
	selector strategy.Selector
	clock    func() time.Time
	scorer   Scorer

	startTime   time.Time
	endTime     *time.Time
	timeSeconds int64

	currentBlock    *course.Block
	currentQuestion question.Question
	shownAt         time.Time

	completion float64
	accuracy   float64
	bestStreak int
	score      int

	records  []Record
	inFlight int
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithScorer replaces DefaultScorer.
func WithScorer(scorer Scorer) Option {
	return func(s *Session) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// New starts a session at the current clock time.
func New(id string, c *course.Course, selector strategy.Selector, opts ...Option) (*Session, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if c == nil {
		return nil, &ValidationError{Field: "course", Message: "must not be nil"}
	}
	if selector == nil {
		return nil, &ValidationError{Field: "selector", Message: "must not be nil"}
	}
	s := &Session{
		id:       id,
		course:   c,
		selector: selector,
		clock:    time.Now,
		scorer:   DefaultScorer,
		inFlight: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startTime = s.clock()
	return s, nil
}

func (s *Session) ID() string                         { return s.id }
func (s *Session) Course() *course.Course             { return s.course }
func (s *Session) Selector() strategy.Selector        { return s.selector }
func (s *Session) StartTime() time.Time               { return s.startTime }
func (s *Session) TimeSeconds() int64                 { return s.timeSeconds }
func (s *Session) CurrentQuestion() question.Question { return s.currentQuestion }
func (s *Session) Completion() float64                { return s.completion }
func (s *Session) Accuracy() float64                  { return s.accuracy }
func (s *Session) BestStreak() int                    { return s.bestStreak }
func (s *Session) Score() int                         { return s.score }

// EndTime returns the finish time, or false while the session is active.
func (s *Session) EndTime() (time.Time, bool) {
	if s.endTime == nil {
		return time.Time{}, false
	}
	return *s.endTime, true
}

// CurrentBlock returns the block owning the current question.
func (s *Session) CurrentBlock() (course.Block, bool) {
	if s.currentBlock == nil {
		return course.Block{}, false
	}
	return *s.currentBlock, true
}

// Records returns a copy of the answer history.
func (s *Session) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// IsActive reports whether the session has not been finished.
func (s *Session) IsActive() bool { return s.endTime == nil }

// Next advances to the selector's next question and opens an unanswered
// record for it. The previous in-flight record, answered or not, is left
// as is in the history.
func (s *Session) Next() (question.Question, bool) {
	if !s.IsActive() {
		return nil, false
	}
	q, ok := s.selector.Next()
	if !ok {
		s.currentQuestion = nil
		s.currentBlock = nil
		s.inFlight = -1
		return nil, false
	}
	s.setCurrent(q)
	s.records = append(s.records, s.newRecord(q))
	s.inFlight = len(s.records) - 1
	return q, true
}

func (s *Session) setCurrent(q question.Question) {
	s.currentQuestion = q
	s.currentBlock = nil
	if b, ok := s.course.Locate(q); ok {
		s.currentBlock = &b
	}
	s.shownAt = s.clock()
}

func (s *Session) newRecord(q question.Question) Record {
	r := Record{
		Question:     q,
		QuestionID:   q.ID(),
		QuestionType: q.Type(),
		Result:       ResultUnanswered,
	}
	if b, ok := s.course.Locate(q); ok {
		r.BlockID = b.ID
	}
	return r
}

// RecordAnswer grades answer against q and stores the outcome. When q is
// the in-flight question its record is updated (another attempt), else a
// new record is appended. Aggregates are not recomputed.
func (s *Session) RecordAnswer(q question.Question, answer question.Answer) (Result, error) {
	if !s.IsActive() {
		return "", finishedError()
	}
	if q == nil {
		return "", &ValidationError{Field: "question", Message: "must not be nil"}
	}

	result := ResultIncorrect
	if q.IsCorrect(answer) {
		result = ResultCorrect
	}
	at := answer.Timestamp
	if at.IsZero() {
		at = s.clock()
	}

	idx := s.inFlight
	if idx < 0 || !sameQuestion(s.records[idx], q) {
		s.records = append(s.records, s.newRecord(q))
		idx = len(s.records) - 1
		s.inFlight = idx
		s.setCurrent(q)
	}

	r := &s.records[idx]
	r.Result = result
	r.Attempts++
	r.AnsweredAt = at
	r.LastAnswer = answer.Text()
	if spent := at.Sub(s.shownAt); spent > 0 {
		r.TimeSpent = spent
	}
	return result, nil
}

// UseHint counts a hint against the in-flight question.
func (s *Session) UseHint() error {
	if !s.IsActive() {
		return finishedError()
	}
	if s.inFlight < 0 {
		return &ValidationError{Field: "hint", Message: "no question in flight"}
	}
	s.records[s.inFlight].HintsUsed++
	return nil
}

// Statistics computes the aggregates without storing them.
func (s *Session) Statistics() Statistics {
	return ComputeStatistics(s.records, s.course.QuestionCount(), s.scorer)
}

// RefreshStatistics recomputes completion, accuracy, best streak and score
// from the history and stores them on the session.
func (s *Session) RefreshStatistics() Statistics {
	st := s.Statistics()
	s.completion = st.Completion
	s.accuracy = st.Accuracy
	s.bestStreak = st.BestStreak
	s.score = st.Score
	return st
}

// Finish stamps the end time and elapsed whole seconds. Calling it again
// has no effect.
func (s *Session) Finish() {
	if s.endTime != nil {
		return
	}
	now := s.clock()
	s.endTime = &now
	if elapsed := now.Sub(s.startTime); elapsed > 0 {
		s.timeSeconds += int64(elapsed / time.Second)
	}
	s.inFlight = -1
	s.currentQuestion = nil
	s.currentBlock = nil
}

func (s *Session) SetCompletion(v float64) error {
	if err := checkPercent("completion", v); err != nil {
		return err
	}
	s.completion = v
	return nil
}

func (s *Session) SetAccuracy(v float64) error {
	if err := checkPercent("accuracy", v); err != nil {
		return err
	}
	s.accuracy = v
	return nil
}

func (s *Session) SetBestStreak(v int) error {
	if v < 0 {
		return negative("bestStreak", v)
	}
	s.bestStreak = v
	return nil
}

func (s *Session) SetScore(v int) error {
	if v < 0 {
		return negative("score", v)
	}
	s.score = v
	return nil
}

func (s *Session) SetTimeSeconds(v int64) error {
	if v < 0 {
		return negative("timeSeconds", v)
	}
	s.timeSeconds = v
	return nil
}

func checkPercent(field string, v float64) error {
	if v < 0 || v > 100 || v != v {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%v is outside [0,100]", v)}
	}
	return nil
}

func negative[T int | int64](field string, v T) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%d must not be negative", v)}
}

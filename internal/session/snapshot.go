package session

import (
	"fmt"
	"time"

	"github.com/abhisek/aprende/internal/course"
	"github.com/abhisek/aprende/internal/question"
	"github.com/abhisek/aprende/internal/strategy"
)

// Snapshot is the persisted form of a Session.
type Snapshot struct {
	ID                string
	CourseID          string
	Strategy          strategy.State
	StartTime         time.Time
	EndTime           *time.Time
	TimeSeconds       int64
	CurrentBlockID    string
	CurrentQuestionID string
	Completion        float64
	Accuracy          float64
	BestStreak        int
	Score             int
	Records           []Record
}

// Active reports whether the snapshot was taken before Finish.
func (sn Snapshot) Active() bool { return sn.EndTime == nil }

// Snapshot captures the session's persisted fields, including the
// selector state.
func (s *Session) Snapshot() Snapshot {
	sn := Snapshot{
		ID:          s.id,
		CourseID:    s.course.ID,
		Strategy:    s.selector.Snapshot(),
		StartTime:   s.startTime,
		TimeSeconds: s.timeSeconds,
		Completion:  s.completion,
		Accuracy:    s.accuracy,
		BestStreak:  s.bestStreak,
		Score:       s.score,
		Records:     s.Records(),
	}
	if s.endTime != nil {
		end := *s.endTime
		sn.EndTime = &end
	}
	if s.currentQuestion != nil {
		sn.CurrentQuestionID = s.currentQuestion.ID()
	}
	if s.currentBlock != nil {
		sn.CurrentBlockID = s.currentBlock.ID
	}
	return sn
}

// Restore rebuilds a session from a snapshot. Record questions are resolved
// against c by block and question id; records that no longer resolve keep
// their ids with a nil Question. The selector must already be positioned
// (see strategy.Registry.Resume).
func Restore(sn Snapshot, c *course.Course, selector strategy.Selector, opts ...Option) (*Session, error) {
	s, err := New(sn.ID, c, selector, opts...)
	if err != nil {
		return nil, err
	}
	if sn.CourseID != "" && sn.CourseID != c.ID {
		return nil, &ValidationError{
			Field:   "course",
			Message: fmt.Sprintf("snapshot belongs to course %q, got %q", sn.CourseID, c.ID),
		}
	}

	s.startTime = sn.StartTime
	if sn.EndTime != nil {
		end := *sn.EndTime
		s.endTime = &end
	}
	setters := []error{
		s.SetTimeSeconds(sn.TimeSeconds),
		s.SetCompletion(sn.Completion),
		s.SetAccuracy(sn.Accuracy),
		s.SetBestStreak(sn.BestStreak),
		s.SetScore(sn.Score),
	}
	for _, err := range setters {
		if err != nil {
			return nil, err
		}
	}

	s.records = make([]Record, len(sn.Records))
	for i, r := range sn.Records {
		if r.Attempts < 0 || r.HintsUsed < 0 || r.TimeSpent < 0 {
			return nil, &ValidationError{Field: "records", Message: fmt.Sprintf("record %d has negative counters", i)}
		}
		if r.Question == nil {
			r.Question = resolve(c, r.BlockID, r.QuestionID)
		}
		s.records[i] = r
	}

	if s.IsActive() && sn.CurrentQuestionID != "" {
		if q := resolve(c, sn.CurrentBlockID, sn.CurrentQuestionID); q != nil {
			s.setCurrent(q)
			if n := len(s.records); n > 0 && sameQuestion(s.records[n-1], q) {
				s.inFlight = n - 1
			}
		}
	}
	return s, nil
}

func resolve(c *course.Course, blockID, questionID string) question.Question {
	if blockID != "" {
		b, ok := c.Block(blockID)
		if !ok {
			return nil
		}
		for _, q := range b.Questions() {
			if q.ID() == questionID {
				return q
			}
		}
		return nil
	}
	for _, q := range c.Questions() {
		if q.ID() == questionID {
			return q
		}
	}
	return nil
}

package session

import (
	"time"

	"github.com/abhisek/aprende/internal/question"
)

// Result is the outcome of one question in the history.
type Result string

const (
	ResultUnanswered Result = "unanswered"
	ResultCorrect    Result = "correct"
	ResultIncorrect  Result = "incorrect"
)

// ParseResult validates a persisted result tag.
func ParseResult(s string) (Result, error) {
	switch Result(s) {
	case ResultUnanswered, ResultCorrect, ResultIncorrect:
		return Result(s), nil
	}
	return "", &ValidationError{Field: "result", Message: "unknown result " + s}
}

// Record is one entry of a session's answer history.
type Record struct {
	// Question is nil when a restored record no longer resolves against
	// the course.
	Question question.Question

	QuestionID   string
	QuestionType string
	BlockID      string

	Result     Result
	TimeSpent  time.Duration
	Attempts   int
	HintsUsed  int
	AnsweredAt time.Time

	// LastAnswer is the text of the most recent attempt, if any.
	LastAnswer string
}

// Answered reports whether the record has a graded result.
func (r Record) Answered() bool {
	return r.Result == ResultCorrect || r.Result == ResultIncorrect
}

// key identifies the question within the course (ids are unique per block).
func (r Record) key() string {
	return r.BlockID + "\x00" + r.QuestionID
}

func sameQuestion(r Record, q question.Question) bool {
	if r.Question != nil && q != nil {
		eq := func() (eq bool) {
			defer func() {
				if recover() != nil {
					eq = false
				}
			}()
			return r.Question == q
		}()
		if eq {
			return true
		}
	}
	return q != nil && r.QuestionID == q.ID() && r.QuestionType == q.Type()
}

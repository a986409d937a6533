package session

import (
	"context"
	"time"
)

// Repository persists session snapshots.
type Repository interface {
	// Save inserts or replaces the session and its full history.
	Save(ctx context.Context, sn Snapshot) error
	// FindByID returns ErrNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (Snapshot, error)
	// Delete returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
	// List returns the most recent sessions first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Summary, error)
}

// AnswerEvent is one graded attempt, appended to an event log.
type AnswerEvent struct {
	SessionID    string
	CourseID     string
	BlockID      string
	QuestionID   string
	QuestionType string
	Result       Result
	Attempt      int
	HintsUsed    int
	TimeSpent    time.Duration
	Answer       string
	At           time.Time
}

// EventLog records answer events.
type EventLog interface {
	AppendAnswer(ctx context.Context, ev AnswerEvent) error
}

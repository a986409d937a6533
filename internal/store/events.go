package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/aprende/internal/session"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AnswerEventRecord is a stored answer event with its global sequence.
type AnswerEventRecord struct {
	Sequence int64
	session.AnswerEvent
}

const tableAnswerSequence = "answer_sequence"

// answerSequence numbers answer events across all sessions. It is a single
// row holding the last number issued; the RETURNING update hands out the
// next one in one statement.
type answerSequence struct {
	mu sync.Mutex
	db *sql.DB
}

func newAnswerSequence(ctx context.Context, db *sql.DB) (*answerSequence, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+tableAnswerSequence+` (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		issued INTEGER NOT NULL DEFAULT 0
	)`); err != nil {
		return nil, fmt.Errorf("create answer sequence: %w", err)
	}
	query, args := builder().Insert(tableAnswerSequence).
		Columns("id", "issued").
		Values(1, 0).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed answer sequence: %w", err)
	}
	return &answerSequence{db: db}, nil
}

// Next returns the next event number, starting at 1.
func (a *answerSequence) Next(ctx context.Context) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	query, args := builder().Update(tableAnswerSequence).
		Add("issued", 1).
		Where(entsql.EQ("id", 1)).
		Returning("issued").
		Query()
	var n int64
	if err := a.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("next answer sequence: %w", err)
	}
	return n, nil
}

// EventRepo is the append-only answer event log.
type EventRepo struct {
	db  *sql.DB
	seq *answerSequence
	log logrus.FieldLogger
}

var _ session.EventLog = (*EventRepo)(nil)

// AppendAnswer stamps ev with the next global sequence and stores it.
func (r *EventRepo) AppendAnswer(ctx context.Context, ev session.AnswerEvent) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	query, args := builder().Insert(tableAnswerEvents).
		Columns("sequence", "timestamp", "session_id", "course_id", "block_id", "question_id",
			"question_type", "result", "attempt", "hints_used", "time_ms", "answer").
		Values(seqNum, at, ev.SessionID, ev.CourseID, ev.BlockID, ev.QuestionID,
			ev.QuestionType, string(ev.Result), ev.Attempt, ev.HintsUsed, ev.TimeSpent.Milliseconds(), ev.Answer).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.log.WithError(err).WithField("session", ev.SessionID).Error("failed to append answer event")
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

// AnswerEvents returns a session's events in sequence order. An empty
// sessionID matches every session.
func (r *EventRepo) AnswerEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]AnswerEventRecord, error) {
	var preds []*entsql.Predicate
	if sessionID != "" {
		preds = append(preds, entsql.EQ("session_id", sessionID))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To))
	}

	sel := builder().Select("sequence", "timestamp", "session_id", "course_id", "block_id",
		"question_id", "question_type", "result", "attempt", "hints_used", "time_ms", "answer").
		From(entsql.Table(tableAnswerEvents)).
		OrderBy("sequence")
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var (
			rec    AnswerEventRecord
			result string
			timeMs int64
		)
		if err := rows.Scan(&rec.Sequence, &rec.At, &rec.SessionID, &rec.CourseID, &rec.BlockID,
			&rec.QuestionID, &rec.QuestionType, &result, &rec.Attempt, &rec.HintsUsed, &timeMs, &rec.Answer); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Result = session.Result(result)
		rec.TimeSpent = time.Duration(timeMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

// QuestionAccuracy returns the fraction of correct events for a question
// across all sessions, and the number of events it is based on.
func (r *EventRepo) QuestionAccuracy(ctx context.Context, questionID string) (float64, int, error) {
	query, args := builder().Select("result").
		From(entsql.Table(tableAnswerEvents)).
		Where(entsql.EQ("question_id", questionID)).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("query question accuracy: %w", err)
	}
	defer rows.Close()

	total, correct := 0, 0
	for rows.Next() {
		var result string
		if err := rows.Scan(&result); err != nil {
			return 0, 0, fmt.Errorf("scan result: %w", err)
		}
		total++
		if session.Result(result) == session.ResultCorrect {
			correct++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}

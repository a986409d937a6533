package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/aprende/internal/session"
	"github.com/abhisek/aprende/internal/strategy"
)

// ErrNotFound aliases session.ErrNotFound so callers can match either.
var ErrNotFound = session.ErrNotFound

// SessionRepo implements session.Repository on SQLite.
type SessionRepo struct {
	db  *sql.DB
	log logrus.FieldLogger
}

var _ session.Repository = (*SessionRepo)(nil)

var sessionSelectColumns = []string{
	"id", "course_id", "strategy", "strategy_state", "start_time", "end_time",
	"time_seconds", "current_block_id", "current_question_id",
	"completion", "accuracy", "best_streak", "score",
}

func builder() *entsql.DialectBuilder { return entsql.Dialect(dialect.SQLite) }

// Save upserts the session row and replaces its records in one transaction.
func (r *SessionRepo) Save(ctx context.Context, sn session.Snapshot) error {
	state, err := json.Marshal(sn.Strategy)
	if err != nil {
		return fmt.Errorf("marshal strategy state: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	var end any
	if sn.EndTime != nil {
		end = *sn.EndTime
	}
	query, args := builder().Insert(tableSessions).
		Columns(append(sessionSelectColumns, "updated_at")...).
		Values(sn.ID, sn.CourseID, sn.Strategy.Strategy, string(state), sn.StartTime, end,
			sn.TimeSeconds, sn.CurrentBlockID, sn.CurrentQuestionID,
			sn.Completion, sn.Accuracy, sn.BestStreak, sn.Score, time.Now()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return r.fail(sn.ID, "upsert session", err)
	}

	query, args = builder().Delete(tableRecords).Where(entsql.EQ("session_id", sn.ID)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return r.fail(sn.ID, "clear records", err)
	}

	if len(sn.Records) > 0 {
		ins := builder().Insert(tableRecords).Columns(
			"session_id", "position", "block_id", "question_id", "question_type", "result",
			"time_spent_ms", "attempts", "hints_used", "answered_at", "last_answer",
		)
		for i, rec := range sn.Records {
			var answeredAt any
			if !rec.AnsweredAt.IsZero() {
				answeredAt = rec.AnsweredAt
			}
			ins.Values(sn.ID, i, rec.BlockID, rec.QuestionID, rec.QuestionType, string(rec.Result),
				rec.TimeSpent.Milliseconds(), rec.Attempts, rec.HintsUsed, answeredAt, rec.LastAnswer)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return r.fail(sn.ID, "insert records", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return r.fail(sn.ID, "commit save", err)
	}
	return nil
}

// FindByID loads a session snapshot with its records in history order.
func (r *SessionRepo) FindByID(ctx context.Context, id string) (session.Snapshot, error) {
	query, args := builder().Select(sessionSelectColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("id", id)).
		Query()
	sn, err := scanSnapshot(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return session.Snapshot{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return session.Snapshot{}, r.fail(id, "query session", err)
	}

	recs, err := r.records(ctx, id)
	if err != nil {
		return session.Snapshot{}, r.fail(id, "query records", err)
	}
	sn.Records = recs
	return sn, nil
}

// Delete removes a session and its records.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Delete(tableRecords).Where(entsql.EQ("session_id", id)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return r.fail(id, "delete records", err)
	}
	query, args = builder().Delete(tableSessions).Where(entsql.EQ("id", id)).Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return r.fail(id, "delete session", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

// List returns session summaries, newest first. limit <= 0 means all.
func (r *SessionRepo) List(ctx context.Context, limit int) ([]session.Summary, error) {
	sel := builder().Select(sessionSelectColumns...).
		From(entsql.Table(tableSessions)).
		OrderBy(entsql.Desc("start_time"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var snaps []session.Snapshot
	for rows.Next() {
		sn, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		snaps = append(snaps, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	rows.Close()

	out := make([]session.Summary, 0, len(snaps))
	for _, sn := range snaps {
		recs, err := r.records(ctx, sn.ID)
		if err != nil {
			return nil, fmt.Errorf("query records for %s: %w", sn.ID, err)
		}
		sn.Records = recs
		out = append(out, session.Summarize(sn))
	}
	return out, nil
}

// Prune deletes all but the keep most recent sessions and returns how many
// were removed.
func (r *SessionRepo) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	query, args := builder().Select("id").
		From(entsql.Table(tableSessions)).
		OrderBy(entsql.Desc("start_time"), entsql.Desc("id")).
		Limit(-1).
		Offset(keep).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query sessions for prune: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate sessions for prune: %w", err)
	}

	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return 0, fmt.Errorf("prune sessions: %w", err)
		}
	}
	return len(ids), nil
}

func (r *SessionRepo) records(ctx context.Context, sessionID string) ([]session.Record, error) {
	query, args := builder().Select(
		"block_id", "question_id", "question_type", "result",
		"time_spent_ms", "attempts", "hints_used", "answered_at", "last_answer",
	).
		From(entsql.Table(tableRecords)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("position").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []session.Record
	for rows.Next() {
		var (
			rec        session.Record
			result     string
			spentMs    int64
			answeredAt sql.NullTime
		)
		if err := rows.Scan(&rec.BlockID, &rec.QuestionID, &rec.QuestionType, &result,
			&spentMs, &rec.Attempts, &rec.HintsUsed, &answeredAt, &rec.LastAnswer); err != nil {
			return nil, err
		}
		if rec.Result, err = session.ParseResult(result); err != nil {
			return nil, err
		}
		rec.TimeSpent = time.Duration(spentMs) * time.Millisecond
		if answeredAt.Valid {
			rec.AnsweredAt = answeredAt.Time
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (session.Snapshot, error) {
	var (
		sn       session.Snapshot
		strat    string
		rawState []byte
		end      sql.NullTime
	)
	err := row.Scan(&sn.ID, &sn.CourseID, &strat, &rawState, &sn.StartTime, &end,
		&sn.TimeSeconds, &sn.CurrentBlockID, &sn.CurrentQuestionID,
		&sn.Completion, &sn.Accuracy, &sn.BestStreak, &sn.Score)
	if err != nil {
		return session.Snapshot{}, err
	}
	var st strategy.State
	if err := json.Unmarshal(rawState, &st); err != nil {
		return session.Snapshot{}, fmt.Errorf("decode strategy state: %w", err)
	}
	if st.Strategy == "" {
		st.Strategy = strat
	}
	sn.Strategy = st
	if end.Valid {
		t := end.Time
		sn.EndTime = &t
	}
	return sn, nil
}

func (r *SessionRepo) fail(id, op string, err error) error {
	r.log.WithError(err).WithFields(logrus.Fields{"session": id, "op": op}).Error("session store failure")
	return fmt.Errorf("%s: %w", op, err)
}

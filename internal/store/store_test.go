package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aprende/internal/session"
	"github.com/abhisek/aprende/internal/strategy"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"sessions", "session_records", "answer_events", "answer_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestWithConnPragmas(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"a.db", "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"file:x?mode=memory", "file:x?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"a.db?_pragma=foreign_keys(0)", "a.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		if got := withConnPragmas(tt.dsn); got != tt.want {
			t.Errorf("withConnPragmas(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestAnswerSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAnswerSequence_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := "file:answer_sequence_reopen?mode=memory&cache=shared"
	first, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { first.Close() })

	for range 2 {
		_, err := first.seq.Next(ctx)
		require.NoError(t, err)
	}

	second, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	got, err := second.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testSnapshot(id string, start time.Time) session.Snapshot {
	return session.Snapshot{
		ID:                id,
		CourseID:          "c1",
		Strategy:          strategy.State{Strategy: strategy.SpacedName, Cursor: 3, Stride: 3},
		StartTime:         start,
		CurrentBlockID:    "b1",
		CurrentQuestionID: "q2",
		Completion:        50,
		Accuracy:          75,
		BestStreak:        2,
		Score:             30,
		Records: []session.Record{
			{BlockID: "b1", QuestionID: "q1", QuestionType: "test", Result: session.ResultCorrect,
				TimeSpent: 1500 * time.Millisecond, Attempts: 1, AnsweredAt: start.Add(time.Minute), LastAnswer: "a"},
			{BlockID: "b1", QuestionID: "q2", QuestionType: "truefalse", Result: session.ResultUnanswered},
		},
	}
}

func TestSessionRepo_SaveAndFind(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	want := testSnapshot("s1", t0)
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.CourseID, got.CourseID)
	assert.Equal(t, want.Strategy, got.Strategy)
	assert.True(t, want.StartTime.Equal(got.StartTime), "start time = %v", got.StartTime)
	assert.Nil(t, got.EndTime)
	assert.Equal(t, "q2", got.CurrentQuestionID)
	assert.Equal(t, 75.0, got.Accuracy)
	assert.Equal(t, 2, got.BestStreak)
	assert.Equal(t, 30, got.Score)

	require.Len(t, got.Records, 2)
	assert.Equal(t, session.ResultCorrect, got.Records[0].Result)
	assert.Equal(t, 1500*time.Millisecond, got.Records[0].TimeSpent)
	assert.True(t, got.Records[0].AnsweredAt.Equal(t0.Add(time.Minute)))
	assert.Equal(t, "a", got.Records[0].LastAnswer)
	assert.Equal(t, session.ResultUnanswered, got.Records[1].Result)
	assert.True(t, got.Records[1].AnsweredAt.IsZero())
}

func TestSessionRepo_SaveReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	sn := testSnapshot("s1", t0)
	require.NoError(t, repo.Save(ctx, sn))

	end := t0.Add(10 * time.Minute)
	sn.EndTime = &end
	sn.TimeSeconds = 600
	sn.Records = sn.Records[:1]
	require.NoError(t, repo.Save(ctx, sn))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(end))
	assert.Equal(t, int64(600), got.TimeSeconds)
	assert.Len(t, got.Records, 1)
}

func TestSessionRepo_NotFound(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.True(t, errors.Is(err, session.ErrNotFound))

	err = repo.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSessionRepo_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSnapshot("s1", t0)))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.FindByID(ctx, "s1")
	assert.True(t, errors.Is(err, ErrNotFound))

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM session_records").Scan(&n))
	assert.Zero(t, n)
}

func TestSessionRepo_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.Save(ctx, testSnapshot(id, t0.Add(time.Duration(i)*time.Hour))))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[2].ID)
	assert.Equal(t, 2, all[0].Records)
	assert.Equal(t, 1, all[0].Answered)
	assert.Equal(t, strategy.SpacedName, all[0].Strategy)

	two, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestSessionRepo_Prune(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Save(ctx, testSnapshot(id, t0.Add(time.Duration(i)*time.Hour))))
	}

	removed, err := repo.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, "d", left[0].ID)
	assert.Equal(t, "c", left[1].ID)

	removed, err = repo.Prune(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	results := []session.Result{session.ResultCorrect, session.ResultIncorrect, session.ResultCorrect}
	for i, res := range results {
		err := events.AppendAnswer(ctx, session.AnswerEvent{
			SessionID:    "s1",
			CourseID:     "c1",
			QuestionID:   "q1",
			QuestionType: "test",
			Result:       res,
			Attempt:      i + 1,
			TimeSpent:    2 * time.Second,
			Answer:       "x",
			At:           t0.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	require.NoError(t, events.AppendAnswer(ctx, session.AnswerEvent{
		SessionID: "s2", CourseID: "c1", QuestionID: "q9", QuestionType: "test", Result: session.ResultCorrect, Attempt: 1,
	}))

	got, err := events.AnswerEvents(ctx, "s1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].Sequence)
	assert.Equal(t, session.ResultIncorrect, got[1].Result)
	assert.Equal(t, 2*time.Second, got[2].TimeSpent)

	after, err := events.AnswerEvents(ctx, "", QueryOpts{After: 2})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	limited, err := events.AnswerEvents(ctx, "s1", QueryOpts{Limit: 1, From: t0.Add(time.Minute)})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 2, limited[0].Attempt)

	acc, n, err := events.QuestionAccuracy(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 2.0/3, acc, 1e-9)

	acc, n, err = events.QuestionAccuracy(ctx, "nope")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, acc)
}

func TestStoreBackedService(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	svc := session.NewService(s.Sessions(), strategy.DefaultRegistry(), nil, session.WithEventLog(s.Events()))

	c := testCourse(t)
	sess, err := svc.Start(ctx, c, strategy.SequentialName, strategy.Options{})
	require.NoError(t, err)

	q, ok, err := svc.Next(ctx, sess)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = svc.Answer(ctx, sess, q, textAnswer("yes"))
	require.NoError(t, err)
	_, _, err = svc.Next(ctx, sess)
	require.NoError(t, err)

	resumed, err := svc.Resume(ctx, sess.ID(), c)
	require.NoError(t, err)
	require.NotNil(t, resumed.CurrentQuestion())
	assert.Equal(t, "q2", resumed.CurrentQuestion().ID())
	assert.Equal(t, 50.0, resumed.Completion())

	evs, err := s.Events().AnswerEvents(ctx, sess.ID(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, evs, 1)
}

func TestBuildTablesFromEntities(t *testing.T) {
	tables, err := buildTables()
	require.NoError(t, err)
	require.Len(t, tables, 3)

	byName := map[string]int{}
	for i, tbl := range tables {
		byName[tbl.Name] = i
	}

	sessions := tables[byName["sessions"]]
	require.Len(t, sessions.PrimaryKey, 1)
	assert.Equal(t, "id", sessions.PrimaryKey[0].Name)
	assert.False(t, sessions.PrimaryKey[0].Increment)

	records := tables[byName["session_records"]]
	require.Len(t, records.ForeignKeys, 1)
	assert.Same(t, sessions, records.ForeignKeys[0].RefTable)
	assert.True(t, records.PrimaryKey[0].Increment)

	events := tables[byName["answer_events"]]
	var names []string
	for _, ix := range events.Indexes {
		names = append(names, ix.Name)
	}
	assert.ElementsMatch(t, []string{
		"answerevent_timestamp", "answerevent_session_id", "answerevent_question_id",
	}, names)

	end, err := column(sessions, "end_time")
	require.NoError(t, err)
	assert.True(t, end.Nullable)
	ts, err := column(events, "timestamp")
	require.NoError(t, err)
	assert.Nil(t, ts.Default, "function defaults are applied by the repository")
}

func TestIndexesCreated(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"session_start_time", "sessionrecord_session_id_position", "answerevent_question_id"} {
		var got string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", name,
		).Scan(&got)
		assert.NoError(t, err, "index %s", name)
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/sirupsen/logrus"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the SQL driver and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *answerSequence
	log logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for migration and repository failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", withConnPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, log: discardLogger()}
	for _, opt := range opts {
		opt(s)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	ctx := context.Background()
	s.drv = entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(ctx, s.drv); err != nil {
		s.drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newAnswerSequence(ctx, db)
	if err != nil {
		s.drv.Close()
		return nil, err
	}
	s.seq = seq

	s.log.WithField("dsn", dsn).Debug("store opened")
	return s, nil
}

// Driver returns the underlying ent SQL driver.
func (s *Store) Driver() *entsql.Driver {
	return s.drv
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Sessions returns a SessionRepo backed by this store.
func (s *Store) Sessions() *SessionRepo {
	return &SessionRepo{db: s.db, log: s.log}
}

// Events returns an EventRepo backed by this store.
func (s *Store) Events() *EventRepo {
	return &EventRepo{db: s.db, seq: s.seq, log: s.log}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// withConnPragmas adds pragmas that modernc applies to every pooled
// connection; applyPragmas only reaches the first one.
func withConnPragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// DefaultDBPath resolves the database file path in priority order:
// 1. APRENDE_DB environment variable
// 2. $XDG_DATA_HOME/aprende/aprende.db
// 3. ~/.local/share/aprende/aprende.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("APRENDE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "aprende", "aprende.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

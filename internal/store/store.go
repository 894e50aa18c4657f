// Package store persists quiz history to a local SQLite file.
//
// Persistence here is best-effort analytics history: the engine never
// depends on it for correctness, and hosts may run without it entirely.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AttemptRepo returns an AttemptRepo backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{db: s.db}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user durability/latency
// trade-offs.
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

// migrate creates the schema. All tables are append-only.
func migrate(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id            TEXT PRIMARY KEY,
			session_id    TEXT NOT NULL,
			user_id       TEXT NOT NULL,
			question_id   TEXT NOT NULL,
			subject       TEXT NOT NULL,
			answer        TEXT NOT NULL,
			correct       INTEGER NOT NULL,
			time_taken_s  INTEGER NOT NULL,
			hints_used    INTEGER NOT NULL,
			difficulty    INTEGER NOT NULL,
			confidence    INTEGER NOT NULL,
			created_at    TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user_subject
			ON attempts (user_id, subject)`,
		`CREATE TABLE IF NOT EXISTS session_results (
			session_id        TEXT PRIMARY KEY,
			user_id           TEXT NOT NULL,
			subject           TEXT NOT NULL,
			questions         INTEGER NOT NULL,
			correct           INTEGER NOT NULL,
			total_time_s      INTEGER NOT NULL,
			final_difficulty  INTEGER NOT NULL,
			started_at        TIMESTAMP NOT NULL,
			ended_at          TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS llm_requests (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			provider       TEXT NOT NULL,
			model          TEXT NOT NULL,
			purpose        TEXT NOT NULL,
			input_tokens   INTEGER NOT NULL,
			output_tokens  INTEGER NOT NULL,
			latency_ms     INTEGER NOT NULL,
			success        INTEGER NOT NULL,
			error_message  TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZMIND_DB environment variable
// 2. $XDG_DATA_HOME/quizmind/quizmind.db
// 3. ~/.local/share/quizmind/quizmind.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZMIND_DB"); p != "" {
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

	p := filepath.Join(dataHome, "quizmind", "quizmind.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

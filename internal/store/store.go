// Package store persists the stats and profile documents and the drill
// event log in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at dsn. It applies
// recommended pragmas and creates any missing tables.
func Open(dsn string) (*Store, error) {
	if err := EnsureDir(dsn); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_events (
			id TEXT PRIMARY KEY,
			session_uid TEXT NOT NULL,
			action TEXT NOT NULL,
			system TEXT NOT NULL,
			mode TEXT NOT NULL,
			session_id INTEGER NOT NULL,
			cooldown_tier INTEGER NOT NULL,
			prioritized INTEGER NOT NULL,
			questions_served INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS answer_events (
			id TEXT PRIMARY KEY,
			session_uid TEXT NOT NULL,
			item_key TEXT NOT NULL,
			system TEXT NOT NULL,
			mode TEXT NOT NULL,
			correct INTEGER NOT NULL,
			prioritized INTEGER NOT NULL,
			question_counter INTEGER NOT NULL,
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answer_events_item ON answer_events(item_key)`,
		`CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events(session_uid)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
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

// DefaultDBPath resolves the database file path in priority order:
// 1. KANJIDRILL_DB environment variable
// 2. $XDG_DATA_HOME/kanjidrill/kanjidrill.db
// 3. ~/.local/share/kanjidrill/kanjidrill.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("KANJIDRILL_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "kanjidrill", "kanjidrill.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

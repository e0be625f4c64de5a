package session

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// timestampLayout is RFC 3339 with fixed-width nanoseconds. RFC3339Nano
// trims trailing fractional zeros, which breaks lexicographic comparison
// of stored strings ("…00.15Z" < "…00.1Z" because '5' < 'Z').
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Session is one agent-mode invocation.
type Session struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	StartedAt time.Time `json:"started_at"`
}

// Artifact is one file produced during a session.
type Artifact struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"` // "pdf" | "tex" | "png"
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Store provides durable storage for the session ledger.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open creates or opens the ledger database at the given path. Pragmas
// and schema are applied automatically; the call is idempotent.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to ledger: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection
	// avoids SQLITE_BUSY under the CLI's sequential access pattern.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	return s, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Begin opens a new session and returns it.
func (s *Store) Begin(ctx context.Context, mode string) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, mode, started_at) VALUES (?, ?, ?)`,
		sess.ID, sess.Mode, sess.StartedAt.Format(timestampLayout))
	if err != nil {
		return Session{}, fmt.Errorf("begin session: %w", err)
	}
	s.log.Debug("session started", zap.String("id", sess.ID), zap.String("mode", mode))
	return sess, nil
}

// RecordArtifact appends an artifact row to the given session.
func (s *Store) RecordArtifact(ctx context.Context, sessionID, kind, name, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (session_id, kind, name, path, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, kind, name, path, time.Now().UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("record artifact %s: %w", name, err)
	}
	s.log.Debug("artifact recorded",
		zap.String("session", sessionID),
		zap.String("kind", kind),
		zap.String("path", path))
	return nil
}

// Sessions returns all sessions, most recent first. Ordering uses the
// insertion rowid so sessions begun within the same timestamp still list
// newest first.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, started_at FROM sessions ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var started string
		if err := rows.Scan(&sess.ID, &sess.Mode, &started); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parse session timestamp: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Artifacts returns the artifacts of one session in insertion order.
func (s *Store) Artifacts(ctx context.Context, sessionID string) ([]Artifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, kind, name, path, created_at
		 FROM artifacts WHERE session_id = ? ORDER BY id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		var created string
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Kind, &a.Name, &a.Path, &created); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse artifact timestamp: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

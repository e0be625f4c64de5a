package cli

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/augmentic/principia/internal/session"
)

// recorder tracks generated artifacts in the session ledger. A nil
// recorder is valid and records nothing, so commands can call it
// unconditionally.
type recorder struct {
	store *session.Store
	sess  session.Session
	log   *zap.Logger
}

// openRecorder opens the ledger and begins a session when agent mode is
// on. Returns nil otherwise.
func openRecorder(ctx context.Context, opts *RootOptions, log *zap.Logger) (*recorder, error) {
	if !opts.AgentMode {
		return nil, nil
	}
	path := opts.SessionDB
	if path == "" {
		path = filepath.Join(opts.OutputDir, "sessions.db")
	}
	store, err := session.Open(path, session.WithLogger(log))
	if err != nil {
		return nil, err
	}
	sess, err := store.Begin(ctx, "agent")
	if err != nil {
		store.Close()
		return nil, err
	}
	return &recorder{store: store, sess: sess, log: log}, nil
}

// record appends an artifact row. Recording failures are logged, not
// fatal: a broken ledger must not block document generation.
func (r *recorder) record(ctx context.Context, kind, name, path string) {
	if r == nil {
		return
	}
	if err := r.store.RecordArtifact(ctx, r.sess.ID, kind, name, path); err != nil {
		r.log.Warn("failed to record artifact", zap.String("path", path), zap.Error(err))
	}
}

// sessionID returns the active session id, or "" without agent mode.
func (r *recorder) sessionID() string {
	if r == nil {
		return ""
	}
	return r.sess.ID
}

func (r *recorder) close() {
	if r == nil {
		return
	}
	r.store.Close()
}

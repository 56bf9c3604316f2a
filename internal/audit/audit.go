// Package audit maintains the append-only history of user actions.
//
// Every mutating operation records one entry with full attribution.
// Appends are best-effort: a failed append is logged and dropped, never
// unwinding the mutation that triggered it. The stored sequence order
// equals chronological order because appends are serialized per key.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roach88/stockpile/internal/model"
	"github.com/roach88/stockpile/internal/repo"
)

// Log records and lists action history entries.
type Log struct {
	entries *repo.Collection[model.Entry]
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Log.
type Option func(*Log)

// WithLogger sets the logger used to report dropped appends.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// WithClock sets the timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithIDs sets the entry id generator. Used by tests.
func WithIDs(newID func() string) Option {
	return func(l *Log) { l.newID = newID }
}

// New creates a Log over the actionHistory collection.
func New(db *repo.DB, opts ...Option) *Log {
	l := &Log{
		entries: repo.NewCollection[model.Entry](db, model.KeyActionHistory),
		logger:  zap.NewNop(),
		now:     time.Now,
		newID:   func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends one entry attributed to actor. Best-effort: failures
// are logged and swallowed so the caller's primary operation never
// unwinds because its audit trail could not be written.
//
// The actor is resolved once at the top of the calling operation, so
// every call site carries the same attribution payload.
func (l *Log) Record(ctx context.Context, actor model.User, action string) {
	entry := model.Entry{
		ID:        l.newID(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Action:    action,
		Timestamp: l.now().UTC().Format(time.RFC3339),
	}

	if err := l.entries.Append(ctx, entry); err != nil {
		l.logger.Warn("dropped audit entry",
			zap.String("action", action),
			zap.String("user_id", actor.ID),
			zap.Error(err),
		)
	}
}

// List returns all entries in append order (equivalently, timestamp
// ascending). A corrupt history document degrades to empty.
func (l *Log) List(ctx context.Context) ([]model.Entry, []repo.Warning, error) {
	return l.entries.List(ctx)
}

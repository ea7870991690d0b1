package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Storage persists audit events. Events are write-once; there is no update
// or delete surface.
type Storage interface {
	Store(ctx context.Context, e Event) error
	Query(ctx context.Context, c Criteria) ([]Event, error)
}

// DecisionRecorder receives one Decision per gate evaluation.
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, d Decision)
}

// ChangeRecorder receives one ChangeRecord per committed mutation.
type ChangeRecorder interface {
	RecordChange(ctx context.Context, c ChangeRecord)
}

// Recorder implements both recorder interfaces on top of a Storage.
// Storage failures are logged and swallowed: audit can never fail the
// primary operation.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger used for storage failures and decision logs.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder creates a Recorder over the given storage.
func NewRecorder(storage Storage, opts ...Option) *Recorder {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	r := &Recorder{
		storage: storage,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordDecision persists a gate decision.
func (r *Recorder) RecordDecision(ctx context.Context, d Decision) {
	result := ResultSuccess
	if !d.Granted {
		result = ResultDenied
	}
	r.store(ctx, Event{
		ID:           uuid.New().String(),
		Type:         EventDecision,
		PrincipalID:  d.PrincipalID,
		Action:       d.Action,
		ResourceType: d.ResourceType,
		ResourceID:   d.ResourceID,
		Granted:      d.Granted,
		Reason:       d.Reason,
		Result:       result,
		CreatedAt:    r.now(),
	})
}

// RecordChange persists a committed mutation.
func (r *Recorder) RecordChange(ctx context.Context, c ChangeRecord) {
	r.store(ctx, Event{
		ID:           uuid.New().String(),
		Type:         EventChange,
		PrincipalID:  c.PrincipalID,
		Action:       c.Operation,
		ResourceType: c.ResourceType,
		ResourceID:   c.ResourceID,
		Granted:      true,
		Before:       c.Before,
		After:        c.After,
		Result:       ResultSuccess,
		CreatedAt:    r.now(),
	})
}

func (r *Recorder) store(ctx context.Context, e Event) {
	if err := e.Validate(); err != nil {
		r.logger.WarnContext(ctx, "audit: dropping invalid event", "error", err)
		return
	}
	if err := r.storage.Store(ctx, e); err != nil {
		r.logger.ErrorContext(ctx, "audit: store failed",
			"error", err,
			"type", string(e.Type),
			"principal_id", e.PrincipalID,
			"resource_type", e.ResourceType,
			"resource_id", e.ResourceID,
		)
	}
}

// Reader queries recorded events.
type Reader struct {
	storage Storage
}

// NewReader wraps a storage for querying.
func NewReader(storage Storage) *Reader {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	return &Reader{storage: storage}
}

// Find returns events matching the criteria, newest first.
func (r *Reader) Find(ctx context.Context, c Criteria) ([]Event, error) {
	return r.storage.Query(ctx, c)
}

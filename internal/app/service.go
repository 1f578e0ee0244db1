// Package service provides the site's application layer: it accepts form
// submissions, writes feedback entries and lists them back.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/folio/internal/adapters/repository"
	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
	"github.com/okian/folio/pkg/metrics"
)

// Form names used in logs and metrics.
const (
	FormFeedback  = "feedback"
	FormGuestbook = "guestbook"
)

// Service implements the dependencies required by the HTTP handlers.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	requireFields    bool
	persistGuestbook bool

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the feedback store. Without it Start falls back to an
// in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRequireFields rejects submissions whose name or comment is blank.
func WithRequireFields(required bool) Option {
	return func(s *Service) {
		s.requireFields = required
	}
}

// WithPersistGuestbook stores guestbook submissions as feedback entries.
func WithPersistGuestbook(persist bool) Option {
	return func(s *Service) {
		s.persistGuestbook = persist
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start prepares the service for requests.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Warn(ctx, "no store configured; entries are kept in memory")
	}

	n, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	metrics.UpdateStoredEntries(n)

	s.started = true
	s.logger.Info(ctx, "site service started",
		logger.Int("entries", n),
		logger.Bool("require_fields", s.requireFields),
		logger.Bool("persist_guestbook", s.persistGuestbook),
	)
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error(context.Background(), "closing store failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "site service stopped")
}

// SubmitFeedback stores the feedback form as a new entry and returns it.
// Blank fields are stored unless the service requires them.
func (s *Service) SubmitFeedback(ctx context.Context, form model.FeedbackForm) (model.FeedbackEntry, error) {
	if s.requireFields && form.Incomplete() {
		metrics.RecordSubmission(FormFeedback, metrics.OutcomeRejected)
		return model.FeedbackEntry{}, ErrMissingFields
	}

	entry, err := s.create(ctx, FormFeedback, form.Entry())
	if err != nil {
		return model.FeedbackEntry{}, err
	}
	s.logger.Info(ctx, "feedback received",
		logger.Int64("id", entry.ID),
		logger.String("name", form.Name.Value),
		logger.String("comment", form.Comment.Value),
	)
	return entry, nil
}

// SubmitGuestbook accepts a guestbook form. It reports whether an entry was
// stored, which only happens when guestbook persistence is enabled.
func (s *Service) SubmitGuestbook(ctx context.Context, form model.GuestbookForm) (bool, error) {
	if s.requireFields && form.Incomplete() {
		metrics.RecordSubmission(FormGuestbook, metrics.OutcomeRejected)
		return false, ErrMissingFields
	}

	fields := []logger.Field{
		logger.String("name", form.Name.Value),
		logger.String("email", form.Email.Value),
		logger.String("comment", form.Comment.Value),
	}

	if !s.persistGuestbook {
		metrics.RecordSubmission(FormGuestbook, metrics.OutcomeEchoed)
		s.logger.Info(ctx, "guestbook entry received", fields...)
		s.logger.Debug(ctx, "guestbook entry not stored; persist_guestbook is off")
		return false, nil
	}

	entry, err := s.create(ctx, FormGuestbook, form.Entry())
	if err != nil {
		return false, err
	}
	s.logger.Info(ctx, "guestbook entry received", append(fields, logger.Int64("id", entry.ID))...)
	return true, nil
}

// ListEntries returns every stored entry in storage order.
func (s *Service) ListEntries(ctx context.Context) ([]model.FeedbackEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing entries failed", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return entries, nil
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"requireFields":    s.requireFields,
		"persistGuestbook": s.persistGuestbook,
	}
	if s.started {
		if n, err := s.store.Count(context.Background()); err == nil {
			stats["entries"] = n
			metrics.UpdateStoredEntries(n)
		}
	}
	return stats
}

func (s *Service) create(ctx context.Context, form string, entry model.FeedbackEntry) (model.FeedbackEntry, error) {
	saved, err := s.store.Create(ctx, entry)
	if err != nil {
		metrics.RecordSubmission(form, metrics.OutcomeFailed)
		s.logger.Error(ctx, "storing entry failed", logger.String("form", form), logger.Error(err))
		return model.FeedbackEntry{}, fmt.Errorf("%w: %w", ErrStore, err)
	}
	metrics.RecordSubmission(form, metrics.OutcomeStored)
	return saved, nil
}

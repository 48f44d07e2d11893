// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/seed"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Service implements the API dependencies for the signup system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store

	// Configuration
	roster     model.Roster
	rosterFile string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a pre-built store, mainly for tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRoster seeds the store with a custom roster instead of the
// built-in one.
func WithRoster(roster model.Roster) Option {
	return func(s *Service) {
		s.roster = roster
	}
}

// WithRosterFile loads the seed roster from a YAML file at Start.
// Takes precedence over WithRoster.
func WithRosterFile(path string) Option {
	return func(s *Service) {
		s.rosterFile = path
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
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
		roster := s.roster
		if s.rosterFile != "" {
			loaded, err := seed.FromFile(s.rosterFile)
			if err != nil {
				return err
			}
			roster = loaded
			s.logger.Info(ctx, "loaded roster file",
				logger.String("path", s.rosterFile),
				logger.Int("activities", len(roster)),
			)
		}
		if roster == nil {
			s.store = repository.NewRosterStore(ctx)
		} else {
			s.store = repository.NewRosterStore(ctx, repository.WithRoster(roster))
		}
	}

	s.started = true
	s.logger.Info(ctx, "signup service started",
		logger.Int("activities", s.store.ActivityCount(ctx)),
		logger.Int("participants", s.store.ParticipantCount(ctx)),
	)

	return nil
}

// Stop shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "signup service stopped")
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) model.Roster {
	return s.store.List(ctx)
}

// Signup registers email for the named activity.
func (s *Service) Signup(ctx context.Context, name, email string) error {
	if err := s.store.Signup(ctx, name, email); err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			metrics.RecordDuplicateSignup()
		}
		return err
	}

	metrics.RecordSignup()
	metrics.UpdateParticipantCount(s.store.ParticipantCount(ctx))
	s.logger.Info(ctx, "participant signed up",
		logger.String("activity", name),
		logger.String("email", email),
	)
	return nil
}

// RemoveParticipant removes email from the named activity.
func (s *Service) RemoveParticipant(ctx context.Context, name, email string) error {
	if err := s.store.Remove(ctx, name, email); err != nil {
		return err
	}

	metrics.RecordRemoval()
	metrics.UpdateParticipantCount(s.store.ParticipantCount(ctx))
	s.logger.Info(ctx, "participant removed",
		logger.String("activity", name),
		logger.String("email", email),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		activities := s.store.ActivityCount(ctx)
		participants := s.store.ParticipantCount(ctx)

		stats["activities"] = activities
		stats["participants"] = participants

		metrics.UpdateActivityCount(activities)
		metrics.UpdateParticipantCount(participants)
	}

	return stats
}

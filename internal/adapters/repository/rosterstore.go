package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/seed"
)

// RosterStore is the in-memory Store implementation. A single RWMutex
// guards the roster: net/http serves requests concurrently, so every
// mutation of the shared map must be synchronized.
type RosterStore struct {
	mu     sync.RWMutex
	roster model.Roster
}

// NewRosterStore builds a store seeded with the default roster unless
// WithRoster overrides it.
func NewRosterStore(_ context.Context, opts ...Option) *RosterStore {
	s := &RosterStore{}
	for _, opt := range opts {
		opt(s)
	}
	if s.roster == nil {
		s.roster = seed.Default()
	}
	return s
}

// List returns a deep copy of the whole roster.
func (s *RosterStore) List(_ context.Context) model.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.Clone()
}

// Get returns a copy of one activity.
func (s *RosterStore) Get(_ context.Context, name string) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.roster[name]
	if !ok {
		return model.Activity{}, fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	return a.Clone(), nil
}

// Signup appends email to the activity's participant list.
func (s *RosterStore) Signup(_ context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.roster[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	if a.HasParticipant(email) {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, email)
	}
	a.Participants = append(a.Participants, email)
	s.roster[name] = a
	return nil
}

// Remove deletes email from the activity's participant list.
func (s *RosterStore) Remove(_ context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.roster[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrActivityNotFound, name)
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, email)
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	s.roster[name] = a
	return nil
}

// ActivityCount returns the number of activities in the roster.
func (s *RosterStore) ActivityCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roster)
}

// ParticipantCount returns the total number of signups.
func (s *RosterStore) ParticipantCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.ParticipantCount()
}

// Package repository defines the activity store interface and errors.
package repository

import "github.com/mergington/activities/internal/domain/model"

// Option applies a configuration option to the RosterStore.
type Option func(*RosterStore)

// WithRoster replaces the default seed roster. The store takes
// ownership of the provided roster.
func WithRoster(roster model.Roster) Option {
	return func(s *RosterStore) {
		if roster != nil {
			s.roster = roster
		}
	}
}

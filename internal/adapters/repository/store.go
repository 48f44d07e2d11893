// Package repository defines the activity store interface and errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Store provides read/write access to the activity roster. Reads return
// copies; mutating a returned value never changes store state.
type Store interface {
	// List returns every activity keyed by name.
	List(ctx context.Context) model.Roster

	// Get returns a single activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the activity's participant list.
	// Returns ErrActivityNotFound for an unknown activity and
	// ErrAlreadyRegistered when the email is already on the list.
	Signup(ctx context.Context, name, email string) error

	// Remove deletes email from the activity's participant list.
	// Returns ErrActivityNotFound for an unknown activity and
	// ErrParticipantNotFound when the email is not on the list.
	Remove(ctx context.Context, name, email string) error

	// ActivityCount returns the number of activities in the roster.
	ActivityCount(ctx context.Context) int

	// ParticipantCount returns the total number of signups.
	ParticipantCount(ctx context.Context) int
}

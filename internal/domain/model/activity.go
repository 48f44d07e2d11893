// Package model contains domain models passed between layers.
package model

import "slices"

// Activity describes one extracurricular offering. Fields mirror the
// JSON shape served by GET /activities; activities are keyed by name in
// a Roster rather than carrying the name themselves.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"` // stored for display, never enforced
	Participants    []string `json:"participants"`
}

// HasParticipant reports whether email is already on the roster.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a copy whose participant list is independent of the
// receiver. Handing out clones keeps store state immutable to callers.
func (a Activity) Clone() Activity {
	a.Participants = slices.Clone(a.Participants)
	return a
}

// Roster maps activity name to its activity.
type Roster map[string]Activity

// Clone deep-copies the roster.
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	for name, a := range r {
		out[name] = a.Clone()
	}
	return out
}

// ParticipantCount returns the total number of signups across all
// activities. A student signed up for two activities counts twice.
func (r Roster) ParticipantCount() int {
	total := 0
	for _, a := range r {
		total += len(a.Participants)
	}
	return total
}

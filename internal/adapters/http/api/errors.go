package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrMissingEmail = errors.New("missing email")
)

// Detail strings surfaced to clients. The wording matches what the
// signup page and its tests expect.
const (
	detailActivityNotFound    = "Activity not found"
	detailAlreadyRegistered   = "Student is already signed up for this activity"
	detailParticipantNotFound = "Participant not found"
)

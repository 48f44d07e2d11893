package repository

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrAlreadyRegistered   = errors.New("already signed up")
	ErrParticipantNotFound = errors.New("participant not found")
)

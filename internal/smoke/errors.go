package smoke

import "errors"

// Sentinel kinds for smoke run failures.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrActivityMissing  = errors.New("activity missing")
	ErrVerification     = errors.New("verification failed")
)

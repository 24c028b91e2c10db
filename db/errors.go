package db

import "errors"

var (
	// ErrUserNotFound is returned when a session's user id no longer resolves to a record.
	ErrUserNotFound = errors.New("user not found")
	// ErrChallengeNotFound is returned when a challenge id does not exist.
	ErrChallengeNotFound = errors.New("challenge not found")
)

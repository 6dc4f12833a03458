package services

import "errors"

var (
	ErrValidationFailed = errors.New("validation failed")

	// ErrRemoteFailure wraps every unexpected data store or object storage error.
	// The failing call changed nothing and may be retried.
	ErrRemoteFailure = errors.New("the league database is unavailable, please try again")

	ErrDrawNotFound       = errors.New("draw not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("a player with this name already exists")

	// ErrDrawDegraded is returned for writes against a draw whose stored data could not be read.
	ErrDrawDegraded    = errors.New("draw data is damaged and cannot be updated")
	ErrArchiveDisabled = errors.New("draw archiving is not configured")
)

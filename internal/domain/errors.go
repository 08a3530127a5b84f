package domain

import "errors"

// Sentinel errors shared across repositories and services. Controllers map
// these to HTTP status codes.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned on a unique-key violation (username, room name).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput is returned for malformed input, e.g. a presenter list
	// containing unknown usernames or users without the Presenter role.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRole is returned when a user holds the wrong role for an operation.
	ErrInvalidRole = errors.New("invalid role for operation")
	// ErrScheduleConflict is returned when a candidate time window overlaps an
	// existing schedule entry in the same room.
	ErrScheduleConflict = errors.New("schedule conflict")
)

package service

import "errors"

// Error kinds surfaced to callers. Handlers map these to HTTP statuses
// with errors.Is; every operation is a single atomic attempt and none of
// these is fatal to the process.
var (
	// ErrNotFound: complaint or account identifier does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: role or ownership mismatch for the attempted change.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidAssignment: assignment target is not a valid worker.
	ErrInvalidAssignment = errors.New("invalid assignment")
	// ErrCodeMismatch: resolution code does not match any open complaint.
	ErrCodeMismatch = errors.New("code mismatch")
	// ErrValidation: missing or malformed required field.
	ErrValidation = errors.New("validation error")
	// ErrConflict: duplicate phone number or external ID at registration.
	ErrConflict = errors.New("already registered")
	// ErrUnauthenticated: credentials do not match any account.
	ErrUnauthenticated = errors.New("unauthenticated")
)

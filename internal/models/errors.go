package models

import "errors"

// Domain errors shared by services and mapped to HTTP statuses by handlers.
// Services wrap them with fmt.Errorf("...: %w", err) so callers can use
// errors.Is while logs keep the full context.
var (
	// ErrValidation marks a missing or empty required field
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated marks a request with no resolvable identity
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden marks an authenticated caller lacking the admin role
	ErrForbidden = errors.New("insufficient permissions")
	// ErrNotFound marks a referenced entity that does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername marks a registration with a taken username
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// deliberately indistinguishable to prevent username enumeration
	ErrInvalidCredentials = errors.New("invalid username or password")
)

package domain

import "errors"

// Common domain errors. Handlers map these to status codes with errors.Is,
// so more specific errors must wrap one of them.
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrConflict is returned when a state transition is not allowed from the current state
	ErrConflict = errors.New("conflict")
	// ErrStoreUnavailable is returned when the data store is not configured or cannot be reached in time
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrUpstream wraps any other failure reported by the data store
	ErrUpstream = errors.New("store error")
	// ErrUnauthorized is returned when a caller is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
)

package core

import "errors"

var (
	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Lookup errors
	ErrNotFound = errors.New("not found")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// State errors
	ErrConflict           = errors.New("conflict")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrRegistrationsExist = errors.New("event has active registrations")

	// External provider errors
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
)

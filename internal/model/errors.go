package model

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidAmount is returned when a charge amount is below the
	// smallest chargeable unit.
	ErrInvalidAmount = errors.New("amount must be at least one minor currency unit")

	// ErrInvalidCredential is returned for a missing, malformed, expired
	// or badly signed credential.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrForbidden is returned when an authenticated identity lacks the
	// role or scope required for a resource.
	ErrForbidden = errors.New("forbidden")
)

package service

import (
	"errors"
	"fmt"
)

// Domain errors shared across services. Handlers map these onto HTTP status
// codes with errors.Is, so every failure path wraps one of them.
var (
	// ErrInvalidInput marks missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials covers unknown email and password mismatch alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized marks a missing, malformed, or expired token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound covers absent entities and entities not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("already exists")
)

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

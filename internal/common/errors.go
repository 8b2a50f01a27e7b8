// Package common defines shared sentinel errors used across the client
// layers of shopcore. Callers should use errors.Is to match these values.
//
// The duplicate/credential messages are user-facing and are kept verbatim
// (capitalization included) because the UI renders them as-is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("User with this email already exists")

	// Service-level errors.
	ErrValidation         = errors.New("Email and password are required")
	ErrInvalidCredentials = errors.New("Invalid email or password.")
)

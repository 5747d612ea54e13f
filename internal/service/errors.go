package service

import "errors"

// Errors surfaced to the transport layer. Each maps to one HTTP status.
var (
	// ErrValidation is wrapped with a description of the offending field.
	ErrValidation = errors.New("validation error")

	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrInvalidCredentials deliberately does not say whether the e-mail or
	// the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound also covers resources owned by another user.
	ErrNotFound = errors.New("not found")
)

var (
	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrOAuthDisabled      = errors.New("google sign-in is not configured")
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
	ErrOAuthProvider      = errors.New("identity provider error")
	ErrEmailInUse         = errors.New("email is already used by another account")
)

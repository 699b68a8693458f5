// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// These errors represent business failures and are mapped to HTTP statuses
// by the transport layer.
var (
	// ErrUserNotFound indicates that no live user matches the given criteria.
	// Also covers accounts soft-deleted after a token was issued.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername indicates the directory service rejected a create
	// because the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials indicates the password check failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

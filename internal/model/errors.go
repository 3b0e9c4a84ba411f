package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password
	// so responses cannot be used to enumerate accounts
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Round errors
	// ErrInvalidRound covers unknown, expired and already-consumed rounds;
	// clients must not be able to tell a replay from an expiry
	ErrInvalidRound = errors.New("invalid round")

	// Collaborator errors
	ErrSourceUnavailable = errors.New("puzzle source unavailable")
	ErrLedgerUnavailable = errors.New("score ledger unavailable")

	// ErrMalformedHash is a data-integrity fault in a stored password hash,
	// never a user error
	ErrMalformedHash = errors.New("malformed password hash")
)

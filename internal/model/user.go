package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents a registered account
// PasswordHash is the opaque bcrypt string (algorithm, cost, salt and digest
// encoded together); the plaintext password is never stored or logged
type User struct {
	ID           UserID
	Username     string // login username (unique, case-sensitive)
	PasswordHash string
	CreatedAt    time.Time
}

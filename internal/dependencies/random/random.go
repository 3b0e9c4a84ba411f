package random

import (
	"github.com/google/uuid"
)

// Random provides token generation that can be mocked for testing
type Random interface {
	// Token returns an unguessable opaque identifier
	Token() string
}

// UUIDRandom implements Random using random (version 4) UUIDs
type UUIDRandom struct{}

// New creates a new UUIDRandom
func New() *UUIDRandom {
	return &UUIDRandom{}
}

// Token returns a fresh UUIDv4 string
func (r *UUIDRandom) Token() string {
	return uuid.NewString()
}

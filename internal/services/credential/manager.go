package credential

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartquiz/heartgame-go/internal/model"
)

// MaxPasswordBytes is the largest input bcrypt will hash; longer passwords
// are truncated to a code-point boundary at or below this bound
const MaxPasswordBytes = 72

// Manager hashes and verifies passwords with bcrypt
type Manager struct {
	cost int
}

// Config holds configuration for the credential manager
type Config struct {
	// Cost is the bcrypt cost factor
	Cost int
}

// DefaultConfig returns default credential configuration
func DefaultConfig() Config {
	return Config{
		Cost: bcrypt.DefaultCost,
	}
}

// New creates a new credential Manager
func New(cfg Config) *Manager {
	if cfg.Cost == 0 {
		cfg.Cost = DefaultConfig().Cost
	}
	return &Manager{cost: cfg.Cost}
}

// Hash hashes a password with a fresh random salt. The returned string
// encodes algorithm, cost, salt and digest together.
func (m *Manager) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate([]byte(password)), m.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. The comparison is
// constant-time within bcrypt. A mismatch is (false, nil); a stored hash that
// bcrypt cannot parse is a data-integrity error, not a user error.
func (m *Manager) Verify(password, passwordHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), truncate([]byte(password)))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", model.ErrMalformedHash, err)
}

// truncate bounds the password to MaxPasswordBytes without ever splitting a
// multi-byte character: after the byte cut, any trailing bytes that do not
// form a complete code point are dropped. Verification applies the identical
// rule, so hashes stay stable for over-length passwords.
func truncate(password []byte) []byte {
	if len(password) <= MaxPasswordBytes {
		return password
	}
	b := password[:MaxPasswordBytes]
	for len(b) > 0 {
		r, size := utf8.DecodeLastRune(b)
		if r != utf8.RuneError || size > 1 {
			break
		}
		b = b[:len(b)-1]
	}
	return b
}

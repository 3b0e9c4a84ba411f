package credential

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartquiz/heartgame-go/internal/model"
)

func newTestManager() *Manager {
	// Minimum cost keeps the test suite fast
	return New(Config{Cost: 4})
}

func TestHashVerifyRoundTrip(t *testing.T) {
	m := newTestManager()

	hash, err := m.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	ok, err := m.Verify("hunter2", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	m := newTestManager()

	hash, err := m.Hash("hunter2")
	require.NoError(t, err)

	ok, err := m.Verify("hunter3", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashGeneratesFreshSalt(t *testing.T) {
	m := newTestManager()

	hash1, err := m.Hash("hunter2")
	require.NoError(t, err)
	hash2, err := m.Hash("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyMalformedHashIsHardError(t *testing.T) {
	m := newTestManager()

	_, err := m.Verify("hunter2", "not-a-bcrypt-hash")
	assert.ErrorIs(t, err, model.ErrMalformedHash)
}

func TestLongPasswordRoundTrip(t *testing.T) {
	m := newTestManager()

	password := strings.Repeat("a", 100)
	hash, err := m.Hash(password)
	require.NoError(t, err)

	ok, err := m.Verify(password, hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLongPasswordsEqualUpToBoundVerify(t *testing.T) {
	m := newTestManager()

	// bcrypt only sees the first 72 bytes; passwords identical up to the
	// bound must verify against each other's hashes
	base := strings.Repeat("a", MaxPasswordBytes)
	hash, err := m.Hash(base + "tail-one")
	require.NoError(t, err)

	ok, err := m.Verify(base+"tail-two", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMultibytePasswordRoundTrip(t *testing.T) {
	m := newTestManager()

	// 3 bytes per rune; 25 runes = 75 bytes, truncated at a rune boundary
	password := strings.Repeat("中", 25)
	hash, err := m.Hash(password)
	require.NoError(t, err)

	ok, err := m.Verify(password, hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	cases := []struct {
		name     string
		password string
	}{
		{"ascii", strings.Repeat("x", 100)},
		{"two_byte_runes", strings.Repeat("é", 50)},
		{"three_byte_runes", strings.Repeat("中", 30)},
		{"four_byte_runes", strings.Repeat("\U0001f600", 20)},
		{"mixed", "abc" + strings.Repeat("é中\U0001f600x", 12)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate([]byte(tc.password))
			assert.LessOrEqual(t, len(got), MaxPasswordBytes)
			assert.True(t, utf8.Valid(got), "truncated prefix must be valid UTF-8")
			// Truncation only trims; it never rewrites bytes
			assert.True(t, strings.HasPrefix(tc.password, string(got)))
		})
	}
}

func TestTruncateShortPasswordUntouched(t *testing.T) {
	password := []byte("shorté")
	assert.Equal(t, password, truncate(password))
}

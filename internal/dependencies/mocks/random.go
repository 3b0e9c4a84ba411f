package mocks

import (
	"fmt"

	"github.com/heartquiz/heartgame-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Tokens are served from a queue; once the queue is exhausted a
// deterministic sequence (mock-token-1, mock-token-2, ...) takes over.
type MockRandom struct {
	TokenResults []string
	tokenIndex   int
	generated    int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Token returns the next queued token, or a generated deterministic one
func (r *MockRandom) Token() string {
	if r.tokenIndex < len(r.TokenResults) {
		result := r.TokenResults[r.tokenIndex]
		r.tokenIndex++
		return result
	}
	r.generated++
	return fmt.Sprintf("mock-token-%d", r.generated)
}

// QueueTokens adds values to the token result queue
func (r *MockRandom) QueueTokens(values ...string) {
	r.TokenResults = append(r.TokenResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.TokenResults = nil
	r.tokenIndex = 0
	r.generated = 0
}

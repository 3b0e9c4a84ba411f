package puzzle

import (
	"context"
	"sync"

	"github.com/heartquiz/heartgame-go/internal/model"
)

// FakeSource serves puzzles from a queue; used in tests and offline mode.
// Safe for concurrent fetches, like the HTTP source it stands in for.
type FakeSource struct {
	Puzzles []model.Puzzle
	Err     error

	mu   sync.Mutex
	next int
}

// Ensure FakeSource implements Source
var _ Source = (*FakeSource)(nil)

// NewFakeSource creates a FakeSource serving the given puzzles in order,
// repeating the last one once the queue runs out
func NewFakeSource(puzzles ...model.Puzzle) *FakeSource {
	return &FakeSource{Puzzles: puzzles}
}

// Fetch implements Source
func (s *FakeSource) Fetch(ctx context.Context) (*model.Puzzle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Puzzles) == 0 {
		return &model.Puzzle{ImageBase64: "ZmFrZQ==", Solution: "0"}, nil
	}
	p := s.Puzzles[s.next]
	if s.next < len(s.Puzzles)-1 {
		s.next++
	}
	return &p, nil
}

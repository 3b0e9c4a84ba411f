package round

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartquiz/heartgame-go/internal/dependencies/clock"
	"github.com/heartquiz/heartgame-go/internal/dependencies/random"
	"github.com/heartquiz/heartgame-go/internal/model"
	"github.com/heartquiz/heartgame-go/internal/puzzle"
)

// Challenge is what a client receives when a round is issued:
// the puzzle, never the solution.
type Challenge struct {
	RoundID     model.RoundID
	ImageBase64 string
}

// Registry issues and redeems single-use game rounds. The round map is the
// only shared mutable state in the service; every read-modify-write on it
// happens under the mutex so a round reaches a terminal state exactly once.
type Registry struct {
	source puzzle.Source
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	mu     sync.Mutex
	rounds map[model.RoundID]*model.Round

	ttl           time.Duration
	sweepInterval time.Duration
}

// Config holds configuration for the round registry
type Config struct {
	// TTL is how long an issued round stays redeemable
	TTL time.Duration
	// SweepInterval is how often expired rounds are purged
	SweepInterval time.Duration
}

// DefaultConfig returns default round registry configuration
func DefaultConfig() Config {
	return Config{
		TTL:           2 * time.Minute,
		SweepInterval: 30 * time.Second,
	}
}

// New creates a new round Registry
func New(source puzzle.Source, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Registry {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Registry{
		source:        source,
		clock:         clk,
		random:        rnd,
		logger:        logger,
		rounds:        make(map[model.RoundID]*model.Round),
		ttl:           cfg.TTL,
		sweepInterval: cfg.SweepInterval,
	}
}

// Issue fetches a puzzle from the external source and registers it under a
// fresh round ID. The fetch happens before the registry lock is taken, so a
// slow provider never blocks concurrent redemptions.
func (r *Registry) Issue(ctx context.Context) (*Challenge, error) {
	p, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	id := model.RoundID(r.random.Token())
	// Token collisions are astronomically unlikely, but the contract is to
	// detect and regenerate rather than overwrite a live round
	for _, exists := r.rounds[id]; exists; _, exists = r.rounds[id] {
		id = model.RoundID(r.random.Token())
	}

	r.rounds[id] = &model.Round{
		ID:        id,
		Solution:  p.Solution,
		State:     model.RoundStateIssued,
		IssuedAt:  now,
		ExpiresAt: now.Add(r.ttl),
	}

	return &Challenge{
		RoundID:     id,
		ImageBase64: p.ImageBase64,
	}, nil
}

// Redeem consumes the single submission for a round and reports whether the
// answer matches the stored solution. Unknown, expired and already-consumed
// rounds all fail with model.ErrInvalidRound; of two concurrent redemptions
// for the same round, exactly one gets a verdict.
func (r *Registry) Redeem(roundID model.RoundID, answer string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rd, ok := r.rounds[roundID]
	if !ok || rd.State != model.RoundStateIssued {
		return false, model.ErrInvalidRound
	}

	if r.clock.Now().After(rd.ExpiresAt) {
		rd.State = model.RoundStateExpired
		delete(r.rounds, roundID)
		return false, model.ErrInvalidRound
	}

	rd.State = model.RoundStateAnswered
	delete(r.rounds, roundID)

	return answer == rd.Solution, nil
}

// SweepExpired purges rounds whose TTL has passed and returns how many were
// removed. Redeem already rejects expired rounds; the sweep only bounds the
// memory held by abandoned ones.
func (r *Registry) SweepExpired() int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, rd := range r.rounds {
		if now.After(rd.ExpiresAt) {
			rd.State = model.RoundStateExpired
			delete(r.rounds, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs the expiry sweep periodically until ctx is cancelled
func (r *Registry) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := r.SweepExpired(); removed > 0 {
					r.logger.Debug("swept expired rounds", slog.Int("removed", removed))
				}
			}
		}
	}()
}

// Live returns the number of rounds currently held
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rounds)
}

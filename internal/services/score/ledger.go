package score

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartquiz/heartgame-go/internal/dependencies/clock"
	"github.com/heartquiz/heartgame-go/internal/model"
	"github.com/heartquiz/heartgame-go/internal/storage"
)

// Ledger appends score events and maintains each user's aggregate.
// The aggregation rule lives here: highest score is the historical maximum
// of the running cumulative total, so it never goes down.
type Ledger struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new score Ledger
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Ledger {
	return &Ledger{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// RecordCorrectAnswer credits one point to the user and returns the updated
// highest score. The aggregate update is atomic per user in storage, so
// concurrent correct answers cannot lose points. Persistence failures
// surface as model.ErrLedgerUnavailable.
func (l *Ledger) RecordCorrectAnswer(ctx context.Context, userID model.UserID) (int, error) {
	now := l.clock.Now()
	rec := &model.ScoreRecord{
		UserID:     userID,
		Delta:      1,
		OccurredAt: now,
	}

	if err := l.storage.AppendScoreRecord(ctx, rec); err != nil {
		return 0, fmt.Errorf("%w: append record: %w", model.ErrLedgerUnavailable, err)
	}

	agg, err := l.storage.UpdateUserAggregate(ctx, userID, func(agg *model.UserAggregate) error {
		agg.TotalScore += rec.Delta
		if agg.TotalScore > agg.HighestScore {
			agg.HighestScore = agg.TotalScore
		}
		agg.UpdatedAt = now
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: update aggregate: %w", model.ErrLedgerUnavailable, err)
	}

	return agg.HighestScore, nil
}

// HighestScore returns the user's best cumulative score (zero for a user
// with no score history)
func (l *Ledger) HighestScore(ctx context.Context, userID model.UserID) (int, error) {
	agg, err := l.storage.GetUserAggregate(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrLedgerUnavailable, err)
	}
	return agg.HighestScore, nil
}

// Leaderboard returns the top highest scores with usernames attached
func (l *Ledger) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	entries, err := l.storage.TopAggregates(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrLedgerUnavailable, err)
	}
	return entries, nil
}

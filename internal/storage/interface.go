package storage

import (
	"context"

	"github.com/heartquiz/heartgame-go/internal/model"
)

// AggregateFold mutates a user's aggregate in place as part of an atomic
// read-modify-write. Implementations call it with the current aggregate
// (zero-valued for a user with no score history) while holding whatever
// isolation the backend provides for that user.
type AggregateFold func(agg *model.UserAggregate) error

// Storage defines the interface for data persistence
type Storage interface {
	// User operations. CreateUser fails with model.ErrUsernameTaken if the
	// username is already registered; uniqueness is enforced here, not by
	// callers.
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Score operations. UpdateUserAggregate applies fold atomically per
	// user: concurrent updates for the same user must not lose writes.
	AppendScoreRecord(ctx context.Context, rec *model.ScoreRecord) error
	GetUserAggregate(ctx context.Context, id model.UserID) (*model.UserAggregate, error)
	UpdateUserAggregate(ctx context.Context, id model.UserID, fold AggregateFold) (*model.UserAggregate, error)
	TopAggregates(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartquiz/heartgame-go/internal/model"
	"github.com/heartquiz/heartgame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// The username index is the uniqueness authority: SETNX loses for every
	// writer but the first
	ok, err := s.client.SetNX(ctx, usernameIndexKey(user.Username), string(user.ID), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrUsernameTaken
	}

	if err := s.client.Set(ctx, userKey(user.ID), data, 0).Err(); err != nil {
		// Release the reservation, otherwise the username stays taken with no
		// user behind it
		_ = s.client.Del(context.WithoutCancel(ctx), usernameIndexKey(user.Username)).Err()
		return err
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	userIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userIDStr))
}

// Score operations

func (s *Storage) AppendScoreRecord(ctx context.Context, rec *model.ScoreRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, scoreRecordsKey(rec.UserID), data).Err()
}

func (s *Storage) GetUserAggregate(ctx context.Context, id model.UserID) (*model.UserAggregate, error) {
	data, err := s.client.Get(ctx, aggregateKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.UserAggregate{UserID: id}, nil
		}
		return nil, err
	}

	var agg model.UserAggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// UpdateUserAggregate applies fold inside an optimistic WATCH transaction.
// If another writer touches the aggregate between read and write the
// transaction fails and is retried with the fresh value.
func (s *Storage) UpdateUserAggregate(ctx context.Context, id model.UserID, fold storage.AggregateFold) (*model.UserAggregate, error) {
	key := aggregateKey(id)

	var result *model.UserAggregate
	txn := func(tx *redis.Tx) error {
		agg := model.UserAggregate{UserID: id}
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if err := json.Unmarshal(data, &agg); err != nil {
				return err
			}
		}

		if err := fold(&agg); err != nil {
			return err
		}

		next, err := json.Marshal(&agg)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			pipe.ZAdd(ctx, leaderboardKey(), redis.Z{
				Score:  float64(agg.HighestScore),
				Member: string(id),
			})
			return nil
		})
		if err != nil {
			return err
		}

		result = &agg
		return nil
	}

	for i := 0; i < s.cfg.MaxTxRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("update aggregate for %s: %w", id, redis.TxFailedErr)
}

func (s *Storage) TopAggregates(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	members, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		id := model.UserID(member.Member.(string))
		entry := model.LeaderboardEntry{
			UserID:       id,
			HighestScore: int(member.Score),
		}
		if user, err := s.GetUser(ctx, id); err == nil {
			entry.Username = user.Username
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/heartquiz/heartgame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	store, err := New(Config{Path: filepath.Join(s.T().TempDir(), "test.db")})
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := &model.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.CreateUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(user.PasswordHash, retrieved.PasswordHash)
	s.Equal(user.CreatedAt, retrieved.CreatedAt)

	byName, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, byName.ID)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUniqueConstraintMapsToUsernameTaken() {
	first := &model.User{ID: "user-1", Username: "alice", PasswordHash: "h1"}
	second := &model.User{ID: "user-2", Username: "alice", PasswordHash: "h2"}

	s.Require().NoError(s.storage.CreateUser(s.ctx, first))
	s.ErrorIs(s.storage.CreateUser(s.ctx, second), model.ErrUsernameTaken)

	stored, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), stored.ID)
}

// Score tests

func (s *StorageSuite) TestAppendScoreRecord() {
	err := s.storage.AppendScoreRecord(s.ctx, &model.ScoreRecord{
		UserID:     "user-1",
		Delta:      1,
		OccurredAt: time.Now(),
	})
	s.NoError(err)
}

func (s *StorageSuite) TestGetUserAggregateZeroForUnknownUser() {
	agg, err := s.storage.GetUserAggregate(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(0, agg.TotalScore)
	s.Equal(0, agg.HighestScore)
}

func (s *StorageSuite) TestUpdateUserAggregatePersists() {
	_, err := s.storage.UpdateUserAggregate(s.ctx, "user-1", func(agg *model.UserAggregate) error {
		agg.TotalScore++
		if agg.TotalScore > agg.HighestScore {
			agg.HighestScore = agg.TotalScore
		}
		agg.UpdatedAt = time.Now()
		return nil
	})
	s.Require().NoError(err)

	stored, err := s.storage.GetUserAggregate(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(1, stored.TotalScore)
	s.Equal(1, stored.HighestScore)
}

func (s *StorageSuite) TestConcurrentAggregateUpdatesLoseNothing() {
	const updates = 20

	var wg sync.WaitGroup
	wg.Add(updates)
	for i := 0; i < updates; i++ {
		go func() {
			defer wg.Done()
			_, err := s.storage.UpdateUserAggregate(s.ctx, "user-1", func(agg *model.UserAggregate) error {
				agg.TotalScore++
				if agg.TotalScore > agg.HighestScore {
					agg.HighestScore = agg.TotalScore
				}
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	stored, err := s.storage.GetUserAggregate(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(updates, stored.TotalScore)
}

// Leaderboard tests

func (s *StorageSuite) TestTopAggregatesJoinsUsernames() {
	_ = s.storage.CreateUser(s.ctx, &model.User{ID: "u1", Username: "alice", CreatedAt: time.Now()})
	_ = s.storage.CreateUser(s.ctx, &model.User{ID: "u2", Username: "bob", CreatedAt: time.Now()})

	for id, score := range map[model.UserID]int{"u1": 4, "u2": 6} {
		_, err := s.storage.UpdateUserAggregate(s.ctx, id, func(agg *model.UserAggregate) error {
			agg.TotalScore = score
			agg.HighestScore = score
			return nil
		})
		s.Require().NoError(err)
	}

	entries, err := s.storage.TopAggregates(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("bob", entries[0].Username)
	s.Equal(6, entries[0].HighestScore)
	s.Equal("alice", entries[1].Username)
	s.Equal(4, entries[1].HighestScore)
}

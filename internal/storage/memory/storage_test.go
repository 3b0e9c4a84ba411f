package memory

import (
	"context"
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
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := &model.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.CreateUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)

	byName, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, byName.ID)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestCreateUserEnforcesUniqueness() {
	first := &model.User{ID: "user-1", Username: "alice", PasswordHash: "hash1"}
	second := &model.User{ID: "user-2", Username: "alice", PasswordHash: "hash2"}

	s.Require().NoError(s.storage.CreateUser(s.ctx, first))
	s.ErrorIs(s.storage.CreateUser(s.ctx, second), model.ErrUsernameTaken)

	// First row survives
	stored, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), stored.ID)
}

func (s *StorageSuite) TestConcurrentSignupsOneWinner() {
	const attempts = 16

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		losses int
	)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			err := s.storage.CreateUser(s.ctx, &model.User{
				ID:       model.UserID(string(rune('a' + i))),
				Username: "alice",
			})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else {
				losses++
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, wins)
	s.Equal(attempts-1, losses)
}

// Aggregate tests

func (s *StorageSuite) TestGetUserAggregateZeroForUnknownUser() {
	agg, err := s.storage.GetUserAggregate(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), agg.UserID)
	s.Equal(0, agg.TotalScore)
	s.Equal(0, agg.HighestScore)
}

func (s *StorageSuite) TestUpdateUserAggregateAppliesFold() {
	agg, err := s.storage.UpdateUserAggregate(s.ctx, "user-1", func(agg *model.UserAggregate) error {
		agg.TotalScore += 5
		agg.HighestScore = 5
		return nil
	})
	s.Require().NoError(err)
	s.Equal(5, agg.TotalScore)

	stored, err := s.storage.GetUserAggregate(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(5, stored.TotalScore)
}

func (s *StorageSuite) TestUpdateUserAggregateFoldErrorLeavesStateUntouched() {
	_, _ = s.storage.UpdateUserAggregate(s.ctx, "user-1", func(agg *model.UserAggregate) error {
		agg.TotalScore = 5
		agg.HighestScore = 5
		return nil
	})

	_, err := s.storage.UpdateUserAggregate(s.ctx, "user-1", func(agg *model.UserAggregate) error {
		agg.TotalScore = 99
		return context.Canceled
	})
	s.Error(err)

	stored, err := s.storage.GetUserAggregate(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(5, stored.TotalScore)
}

func (s *StorageSuite) TestAppendScoreRecord() {
	err := s.storage.AppendScoreRecord(s.ctx, &model.ScoreRecord{
		UserID:     "user-1",
		Delta:      1,
		OccurredAt: time.Now(),
	})
	s.NoError(err)
}

// Leaderboard tests

func (s *StorageSuite) TestTopAggregatesSortsAndLimits() {
	_ = s.storage.CreateUser(s.ctx, &model.User{ID: "u1", Username: "alice"})
	_ = s.storage.CreateUser(s.ctx, &model.User{ID: "u2", Username: "bob"})
	_ = s.storage.CreateUser(s.ctx, &model.User{ID: "u3", Username: "carol"})

	for id, score := range map[model.UserID]int{"u1": 3, "u2": 7, "u3": 5} {
		_, _ = s.storage.UpdateUserAggregate(s.ctx, id, func(agg *model.UserAggregate) error {
			agg.TotalScore = score
			agg.HighestScore = score
			return nil
		})
	}

	entries, err := s.storage.TopAggregates(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("bob", entries[0].Username)
	s.Equal(7, entries[0].HighestScore)
	s.Equal("carol", entries[1].Username)
}

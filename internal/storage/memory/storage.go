package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/heartquiz/heartgame-go/internal/model"
	"github.com/heartquiz/heartgame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	scoreRecords  []model.ScoreRecord
	aggregates    map[model.UserID]*model.UserAggregate
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		aggregates:    make(map[model.UserID]*model.UserAggregate),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usernameIndex[user.Username]; taken {
		return model.ErrUsernameTaken
	}
	u := *user
	s.users[u.ID] = &u
	s.usernameIndex[u.Username] = u.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Score operations

func (s *Storage) AppendScoreRecord(ctx context.Context, rec *model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scoreRecords = append(s.scoreRecords, *rec)
	return nil
}

func (s *Storage) GetUserAggregate(ctx context.Context, id model.UserID) (*model.UserAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.aggregates[id]
	if !ok {
		return &model.UserAggregate{UserID: id}, nil
	}
	a := *agg
	return &a, nil
}

func (s *Storage) UpdateUserAggregate(ctx context.Context, id model.UserID, fold storage.AggregateFold) (*model.UserAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, ok := s.aggregates[id]
	if !ok {
		agg = &model.UserAggregate{UserID: id}
	}
	next := *agg
	if err := fold(&next); err != nil {
		return nil, err
	}
	s.aggregates[id] = &next

	result := next
	return &result, nil
}

func (s *Storage) TopAggregates(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.LeaderboardEntry, 0, len(s.aggregates))
	for id, agg := range s.aggregates {
		entry := model.LeaderboardEntry{
			UserID:       id,
			HighestScore: agg.HighestScore,
		}
		if user, ok := s.users[id]; ok {
			entry.Username = user.Username
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].HighestScore != entries[j].HighestScore {
			return entries[i].HighestScore > entries[j].HighestScore
		}
		return entries[i].Username < entries[j].Username
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

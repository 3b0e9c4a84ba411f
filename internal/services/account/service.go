package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartquiz/heartgame-go/internal/dependencies/clock"
	"github.com/heartquiz/heartgame-go/internal/dependencies/random"
	"github.com/heartquiz/heartgame-go/internal/model"
	"github.com/heartquiz/heartgame-go/internal/services/credential"
	"github.com/heartquiz/heartgame-go/internal/storage"
)

// Service handles signup and login
type Service struct {
	storage     storage.Storage
	credentials *credential.Manager
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
}

// New creates a new account Service
func New(store storage.Storage, creds *credential.Manager, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage:     store,
		credentials: creds,
		clock:       clk,
		random:      rnd,
		logger:      logger,
	}
}

// Signup registers a new user. The storage layer's uniqueness constraint is
// the source of truth for duplicate usernames; the lookup here is only a
// fast path for the common case.
func (s *Service) Signup(ctx context.Context, username, password string) (*model.User, error) {
	if _, err := s.storage.GetUserByUsername(ctx, username); err == nil {
		return nil, model.ErrUsernameTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.credentials.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           model.UserID(s.random.Token()),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", slog.String("user_id", string(user.ID)))
	return user, nil
}

// Login authenticates a user by username and password. Unknown usernames
// and wrong passwords both fail with model.ErrInvalidCredentials so the
// response cannot be used to probe which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.credentials.Verify(password, user.PasswordHash)
	if err != nil {
		// Malformed stored hash is an integrity fault, not a bad login
		return nil, err
	}
	if !ok {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

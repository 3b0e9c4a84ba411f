package round

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/heartquiz/heartgame-go/internal/dependencies/mocks"
	"github.com/heartquiz/heartgame-go/internal/model"
	"github.com/heartquiz/heartgame-go/internal/puzzle"
	"github.com/heartquiz/heartgame-go/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	source   *puzzle.FakeSource
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.source = puzzle.NewFakeSource(model.Puzzle{ImageBase64: "aW1n", Solution: "7"})
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.registry = New(s.source, s.clock, s.random, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Issue tests

func (s *RegistrySuite) TestIssueReturnsPuzzleWithoutSolution() {
	challenge, err := s.registry.Issue(s.ctx)
	s.Require().NoError(err)

	s.NotEmpty(challenge.RoundID)
	s.Equal("aW1n", challenge.ImageBase64)
}

func (s *RegistrySuite) TestIssueFailsWhenSourceUnavailable() {
	s.source.Err = model.ErrSourceUnavailable

	_, err := s.registry.Issue(s.ctx)
	s.ErrorIs(err, model.ErrSourceUnavailable)
	s.Equal(0, s.registry.Live())
}

func (s *RegistrySuite) TestIssueRegeneratesCollidingID() {
	s.random.QueueTokens("dup", "dup", "fresh")

	first, err := s.registry.Issue(s.ctx)
	s.Require().NoError(err)
	second, err := s.registry.Issue(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.RoundID("dup"), first.RoundID)
	s.Equal(model.RoundID("fresh"), second.RoundID)
	s.Equal(2, s.registry.Live())
}

// Redeem tests

func (s *RegistrySuite) TestRedeemCorrectAnswer() {
	challenge, _ := s.registry.Issue(s.ctx)

	correct, err := s.registry.Redeem(challenge.RoundID, "7")
	s.Require().NoError(err)
	s.True(correct)
}

func (s *RegistrySuite) TestRedeemWrongAnswer() {
	challenge, _ := s.registry.Issue(s.ctx)

	correct, err := s.registry.Redeem(challenge.RoundID, "3")
	s.Require().NoError(err)
	s.False(correct)
}

func (s *RegistrySuite) TestRedeemUnknownRound() {
	_, err := s.registry.Redeem("no-such-round", "7")
	s.ErrorIs(err, model.ErrInvalidRound)
}

func (s *RegistrySuite) TestRedeemIsSingleUse() {
	challenge, _ := s.registry.Issue(s.ctx)

	correct, err := s.registry.Redeem(challenge.RoundID, "7")
	s.Require().NoError(err)
	s.True(correct)

	// A second submission must fail even with the right answer
	_, err = s.registry.Redeem(challenge.RoundID, "7")
	s.ErrorIs(err, model.ErrInvalidRound)
}

func (s *RegistrySuite) TestRedeemWrongAnswerStillConsumesRound() {
	challenge, _ := s.registry.Issue(s.ctx)

	_, _ = s.registry.Redeem(challenge.RoundID, "3")

	_, err := s.registry.Redeem(challenge.RoundID, "7")
	s.ErrorIs(err, model.ErrInvalidRound)
}

func (s *RegistrySuite) TestRedeemExpiredRound() {
	challenge, _ := s.registry.Issue(s.ctx)

	s.clock.Advance(DefaultConfig().TTL + time.Second)

	_, err := s.registry.Redeem(challenge.RoundID, "7")
	s.ErrorIs(err, model.ErrInvalidRound)
	s.Equal(0, s.registry.Live())
}

func (s *RegistrySuite) TestConcurrentRedemptionsYieldOneVerdict() {
	challenge, _ := s.registry.Issue(s.ctx)

	const attempts = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		verdicts int
		invalid  int
	)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := s.registry.Redeem(challenge.RoundID, "7")

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				verdicts++
			} else {
				invalid++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, verdicts, "exactly one redemption gets a verdict")
	s.Equal(attempts-1, invalid)
}

// Sweep tests

func (s *RegistrySuite) TestSweepExpiredPurgesOnlyExpiredRounds() {
	old, _ := s.registry.Issue(s.ctx)

	s.clock.Advance(DefaultConfig().TTL + time.Second)
	fresh, _ := s.registry.Issue(s.ctx)

	removed := s.registry.SweepExpired()
	s.Equal(1, removed)
	s.Equal(1, s.registry.Live())

	_, err := s.registry.Redeem(old.RoundID, "7")
	s.ErrorIs(err, model.ErrInvalidRound)

	_, err = s.registry.Redeem(fresh.RoundID, "7")
	s.NoError(err)
}

func (s *RegistrySuite) TestSweepNoopWhenNothingExpired() {
	_, _ = s.registry.Issue(s.ctx)

	s.Equal(0, s.registry.SweepExpired())
	s.Equal(1, s.registry.Live())
}

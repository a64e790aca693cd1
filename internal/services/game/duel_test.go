package game

import (
	"github.com/arcadely/arcade/internal/model"
)

func (s *ServiceSuite) TestDuelRejectsStakeBelowOne() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 10)

	var invalid *model.InvalidInputError
	_, err := s.service.PlayDuel(s.ctx, alice, "bob", model.Rock, 0)
	s.ErrorAs(err, &invalid)
}

func (s *ServiceSuite) TestDuelRejectsStakeAboveOwnScore() {
	alice := s.createUser("alice", 3)
	s.createUser("bob", 10)

	var insufficient *model.InsufficientScoreError
	_, err := s.service.PlayDuel(s.ctx, alice, "bob", model.Rock, 5)
	s.Require().ErrorAs(err, &insufficient)
	s.False(insufficient.Opponent)
	s.Equal(3, insufficient.Max)
}

func (s *ServiceSuite) TestDuelRejectsStakeAboveOpponentScore() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 2)

	var insufficient *model.InsufficientScoreError
	_, err := s.service.PlayDuel(s.ctx, alice, "bob", model.Rock, 5)
	s.Require().ErrorAs(err, &insufficient)
	s.True(insufficient.Opponent)
	s.Equal(2, insufficient.Max)
}

func (s *ServiceSuite) TestDuelRejectsSelfOpponent() {
	alice := s.createUser("alice", 10)

	_, err := s.service.PlayDuel(s.ctx, alice, "ALICE", model.Rock, 1)
	s.ErrorIs(err, model.ErrSelfOpponent)
}

func (s *ServiceSuite) TestDuelRejectsUnknownOpponent() {
	alice := s.createUser("alice", 10)

	_, err := s.service.PlayDuel(s.ctx, alice, "nobody", model.Rock, 1)
	s.ErrorIs(err, model.ErrOpponentNotFound)
}

func (s *ServiceSuite) TestDuelWinTransfersStake() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 10)

	s.random.QueueIntn(2) // opponent plays scissors
	result, err := s.service.PlayDuel(s.ctx, alice, "bob", model.Rock, 4)
	s.Require().NoError(err)

	s.Equal(DuelWin, result.Outcome)
	s.Equal(model.Scissors, result.OpponentChoice)
	s.Equal(14, result.Caller.Score)
	s.Equal(6, result.Opponent.Score)

	storedAlice, _ := s.storage.GetUser(s.ctx, "alice")
	storedBob, _ := s.storage.GetUser(s.ctx, "bob")
	s.Equal(14, storedAlice.Score)
	s.Equal(6, storedBob.Score)
}

func (s *ServiceSuite) TestDuelLossTransfersStake() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 10)

	s.random.QueueIntn(1) // opponent plays paper
	result, err := s.service.PlayDuel(s.ctx, alice, "bob", model.Rock, 4)
	s.Require().NoError(err)

	s.Equal(DuelLose, result.Outcome)
	s.Equal(6, result.Caller.Score)
	s.Equal(14, result.Opponent.Score)
}

func (s *ServiceSuite) TestDuelDrawKeepsScores() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 10)

	s.random.QueueIntn(0) // opponent plays rock
	result, err := s.service.PlayDuel(s.ctx, alice, "bob", model.Rock, 4)
	s.Require().NoError(err)

	s.Equal(DuelDraw, result.Outcome)
	s.Equal(10, result.Caller.Score)
	s.Equal(10, result.Opponent.Score)
}

func (s *ServiceSuite) TestDuelAdvancesBothParticipants() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 10)

	s.random.QueueIntn(0)
	result, err := s.service.PlayDuel(s.ctx, alice, "bob", model.Rock, 1)
	s.Require().NoError(err)
	s.Equal(1, result.Round)

	storedAlice, _ := s.storage.GetUser(s.ctx, "alice")
	storedBob, _ := s.storage.GetUser(s.ctx, "bob")
	s.Equal(1, storedAlice.Duel.Round)
	s.Equal(1, storedAlice.Attempts)
	s.Equal(1, storedAlice.Rounds)
	s.Equal(1, storedBob.Duel.Round)
	s.Equal(1, storedBob.Attempts)
	s.Equal(1, storedBob.Rounds)
}

func (s *ServiceSuite) TestDuelRandomOpponentFiltersByStake() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 3)
	s.createUser("carol", 8)

	// Only carol covers the stake; Intn(1) returns index 0
	s.random.QueueIntn(0, 0) // candidate pick, then opponent choice (rock)
	result, err := s.service.PlayDuel(s.ctx, alice, "", model.Rock, 5)
	s.Require().NoError(err)
	s.Equal("carol", result.Opponent.Username)
}

func (s *ServiceSuite) TestDuelRandomOpponentNoneEligible() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 3)

	_, err := s.service.PlayDuel(s.ctx, alice, "", model.Rock, 5)
	s.ErrorIs(err, model.ErrNoEligibleOpponent)
}

func (s *ServiceSuite) TestDuelRandomOpponentNeverSelf() {
	alice := s.createUser("alice", 10)
	s.createUser("bob", 10)

	s.random.QueueIntn(0, 0)
	result, err := s.service.PlayDuel(s.ctx, alice, "", model.Rock, 5)
	s.Require().NoError(err)
	s.Equal("bob", result.Opponent.Username)
}

func (s *ServiceSuite) TestPracticeTouchesNothing() {
	alice := s.createUser("alice", 10)

	s.random.QueueIntn(2) // scissors
	result := s.service.Practice(model.Rock)
	s.Equal(DuelWin, result.Outcome)
	s.Equal(model.Scissors, result.OpponentChoice)

	stored, _ := s.storage.GetUser(s.ctx, "alice")
	s.Equal(10, stored.Score)
	s.Equal(0, stored.Attempts)
	s.Equal(0, stored.Rounds)
	s.Equal(alice.Version, stored.Version)
}

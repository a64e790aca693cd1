package game

import (
	"context"
	"errors"
	"strings"

	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/storage"
)

// DuelOutcome is the result of a duel from the caller's perspective
type DuelOutcome string

const (
	DuelWin  DuelOutcome = "win"
	DuelLose DuelOutcome = "lose"
	DuelDraw DuelOutcome = "draw"
)

// DuelResult is the outcome of a resolved duel
type DuelResult struct {
	Outcome        DuelOutcome
	Round          int
	Stake          int
	CallerChoice   model.RPSChoice
	OpponentChoice model.RPSChoice
	Caller         *model.User
	Opponent       *model.User
}

// PlayDuel resolves one rock-paper-scissors duel. With an empty
// opponentUsername a random opponent is drawn from accounts whose score
// covers the stake. The stake moves from loser to winner; a draw moves
// nothing. Both participants' round and attempt counters advance.
func (s *Service) PlayDuel(ctx context.Context, caller *model.User, opponentUsername string, choice model.RPSChoice, stake int) (*DuelResult, error) {
	if stake < 1 {
		return nil, model.NewInvalidInputError("the stake must be at least 1 point")
	}
	if stake > caller.Score {
		return nil, &model.InsufficientScoreError{Max: caller.Score}
	}

	opponent, err := s.resolveOpponent(ctx, caller, opponentUsername, stake)
	if err != nil {
		return nil, err
	}
	if stake > opponent.Score {
		return nil, &model.InsufficientScoreError{Opponent: true, Max: opponent.Score}
	}

	caller.Duel.Round++
	caller.Attempts++
	opponent.Duel.Round++
	opponent.Attempts++

	opponentChoice := model.RPSChoices[s.random.Intn(len(model.RPSChoices))]

	result := &DuelResult{
		Round:          caller.Duel.Round,
		Stake:          stake,
		CallerChoice:   choice,
		OpponentChoice: opponentChoice,
		Caller:         caller,
		Opponent:       opponent,
	}

	switch {
	case choice == opponentChoice:
		result.Outcome = DuelDraw
	case choice.Beats(opponentChoice):
		result.Outcome = DuelWin
		caller.Score += stake
		opponent.Score -= stake
	default:
		result.Outcome = DuelLose
		caller.Score -= stake
		opponent.Score += stake
	}

	caller.SyncRounds()
	opponent.SyncRounds()
	now := s.clock.Now()
	caller.UpdatedAt = now
	opponent.UpdatedAt = now

	if err := s.storage.SaveUserPair(ctx, caller, opponent); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) resolveOpponent(ctx context.Context, caller *model.User, opponentUsername string, stake int) (*model.User, error) {
	if strings.TrimSpace(opponentUsername) == "" {
		candidates, err := s.storage.FindUsers(ctx, storage.Query{
			Filter: storage.Filter{
				MinScore:         &stake,
				ExcludeUsernames: []string{caller.Username},
			},
		})
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, model.ErrNoEligibleOpponent
		}
		return candidates[s.random.Intn(len(candidates))], nil
	}

	if strings.EqualFold(caller.Username, opponentUsername) {
		return nil, model.ErrSelfOpponent
	}
	opponent, err := s.storage.GetUser(ctx, opponentUsername)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrOpponentNotFound
		}
		return nil, err
	}
	return opponent, nil
}

// PracticeResult is the outcome of a practice duel
type PracticeResult struct {
	Outcome        DuelOutcome
	CallerChoice   model.RPSChoice
	OpponentChoice model.RPSChoice
}

// Practice plays a throwaway duel against a random choice. No scores,
// counters or sessions change.
func (s *Service) Practice(choice model.RPSChoice) *PracticeResult {
	opponentChoice := model.RPSChoices[s.random.Intn(len(model.RPSChoices))]

	result := &PracticeResult{
		CallerChoice:   choice,
		OpponentChoice: opponentChoice,
	}
	switch {
	case choice == opponentChoice:
		result.Outcome = DuelDraw
	case choice.Beats(opponentChoice):
		result.Outcome = DuelWin
	default:
		result.Outcome = DuelLose
	}
	return result
}

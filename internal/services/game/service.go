package game

import (
	"context"
	"strconv"
	"strings"

	"github.com/arcadely/arcade/internal/dependencies/clock"
	"github.com/arcadely/arcade/internal/dependencies/random"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/storage"
)

// Game tuning constants
const (
	guessMin = 1
	guessMax = 100

	secretReward = 3
	basicReward  = 1
	trapPenalty  = 1

	sequenceLength = 5
	arrangeReward  = 2
)

// Service implements the game engine. All round state lives on the user
// record; the service itself is stateless.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
}

// New creates a new GameService
func New(storage storage.Storage, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// GuessOutcome classifies the result of a single guess
type GuessOutcome string

const (
	GuessSecret  GuessOutcome = "secret"
	GuessTrap    GuessOutcome = "trap"
	GuessTooHigh GuessOutcome = "too_high"
	GuessTooLow  GuessOutcome = "too_low"
	GuessBasic   GuessOutcome = "basic"
)

// GuessResult is the outcome of one accepted guess
type GuessResult struct {
	Outcome       GuessOutcome
	Guess         int
	Round         int
	Points        int // score delta applied by this guess
	RoundComplete bool
	User          *model.User
}

// GuessNumber plays one guess of the number game for the given user. A new
// round is started automatically when none is in progress. Invalid input is
// rejected before any state changes.
func (s *Service) GuessNumber(ctx context.Context, user *model.User, guess int) (*GuessResult, error) {
	if guess < guessMin || guess > guessMax {
		return nil, model.NewInvalidInputError("guess must be a number from %d to %d", guessMin, guessMax)
	}

	session := &user.GuessNumber
	if session.Phase == model.PhaseIdle {
		session.Phase = model.PhaseInRound
		session.Round++

		targets := s.random.Distinct(guessMin, guessMax, 3)
		session.Basic = targets[0]
		session.Secret = targets[1]
		session.Trap = targets[2]
	}

	user.Attempts++

	result := &GuessResult{
		Guess: guess,
		Round: session.Round,
		User:  user,
	}

	switch {
	case guess == session.Secret:
		result.Outcome = GuessSecret
		result.Points = secretReward
		result.RoundComplete = true
		session.Phase = model.PhaseIdle
		user.Score += secretReward
	case guess == session.Trap:
		result.Outcome = GuessTrap
		result.Points = -trapPenalty
		user.Score -= trapPenalty
		// The trap fires once per round; guesses are in range so 0 never matches
		session.Trap = 0
	case guess > session.Basic:
		result.Outcome = GuessTooHigh
	case guess < session.Basic:
		result.Outcome = GuessTooLow
	default:
		result.Outcome = GuessBasic
		result.Points = basicReward
		result.RoundComplete = true
		session.Phase = model.PhaseIdle
		user.Score += basicReward
	}

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return result, nil
}

// ArrangeResult is the outcome of one accepted sequence submission
type ArrangeResult struct {
	Round         int
	Submitted     []int
	Hint          string // position markers, only meaningful when incomplete
	CorrectCount  int
	Points        int
	RoundComplete bool
	User          *model.User
}

// ArrangeNumbers plays one submission of the sequence game. The submission
// must be an arrangement of the numbers 1 to 5 without repetition; anything
// else is rejected before any state changes.
func (s *Service) ArrangeNumbers(ctx context.Context, user *model.User, numbers []int) (*ArrangeResult, error) {
	if len(numbers) != sequenceLength {
		return nil, model.NewInvalidInputError("enter a sequence of exactly %d numbers", sequenceLength)
	}
	seen := make(map[int]bool, sequenceLength)
	for _, n := range numbers {
		if n < 1 || n > sequenceLength {
			return nil, model.NewInvalidInputError("only the numbers 1 to %d are allowed", sequenceLength)
		}
		if seen[n] {
			return nil, model.NewInvalidInputError("the number %d is not allowed to appear more than once", n)
		}
		seen[n] = true
	}

	session := &user.ArrangeNumbers
	if session.Phase == model.PhaseIdle {
		session.Phase = model.PhaseInRound
		session.Round++
		session.Sequence = s.random.Distinct(1, sequenceLength, sequenceLength)
	}

	user.Attempts++

	result := &ArrangeResult{
		Round:     session.Round,
		Submitted: numbers,
		User:      user,
	}

	var hint strings.Builder
	for i, n := range numbers {
		if i > 0 {
			hint.WriteByte(' ')
		}
		if n == session.Sequence[i] {
			result.CorrectCount++
			hint.WriteString("[" + strconv.Itoa(n) + "]")
		} else {
			hint.WriteString("-" + strconv.Itoa(n) + "-")
		}
	}
	result.Hint = hint.String()

	if result.CorrectCount == sequenceLength {
		result.Points = arrangeReward
		result.RoundComplete = true
		session.Phase = model.PhaseIdle
		user.Score += arrangeReward
	}

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) saveUser(ctx context.Context, user *model.User) error {
	user.SyncRounds()
	user.UpdatedAt = s.clock.Now()
	return s.storage.SaveUser(ctx, user)
}

package model

import (
	"errors"
	"fmt"
	"time"
)

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrVersionConflict = errors.New("record modified concurrently")

	// Duel errors
	ErrOpponentNotFound   = errors.New("opponent not found")
	ErrSelfOpponent       = errors.New("cannot duel yourself")
	ErrNoEligibleOpponent = errors.New("no eligible opponent")
)

// InvalidInputError reports rejected input. No state is mutated when it is
// returned.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidInputError creates an InvalidInputError with the given message
func NewInvalidInputError(format string, args ...any) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientScoreError reports a stake exceeding an available score
type InsufficientScoreError struct {
	Opponent bool // true when the opponent's score is the limiting one
	Max      int  // the score the stake was checked against
}

func (e *InsufficientScoreError) Error() string {
	if e.Opponent {
		return fmt.Sprintf("stake exceeds opponent's score (max: %d)", e.Max)
	}
	return fmt.Sprintf("stake exceeds your score (max: %d)", e.Max)
}

// CooldownError reports a bonus claim made before the cooldown window elapsed
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("bonus cooldown active, %s remaining", e.Remaining)
}

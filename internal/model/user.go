package model

import "time"

// SessionPhase represents the state of a per-game round session
type SessionPhase string

const (
	PhaseIdle    SessionPhase = "idle"     // No round in progress
	PhaseInRound SessionPhase = "in_round" // A round is in progress
)

// GuessNumberSession is the round state for the Guess-a-Number game.
// Targets are only meaningful while Phase is in_round.
type GuessNumberSession struct {
	Phase  SessionPhase `json:"phase"`
	Round  int          `json:"round"`
	Basic  int          `json:"basic"`
	Secret int          `json:"secret"`
	Trap   int          `json:"trap"` // 0 once consumed; guesses are 1-100 so it can never match again
}

// ArrangeNumbersSession is the round state for the Arrange-Numbers game
type ArrangeNumbersSession struct {
	Phase    SessionPhase `json:"phase"`
	Round    int          `json:"round"`
	Sequence []int        `json:"sequence"` // Hidden permutation of 1..5
}

// DuelSession tracks only the round counter; rock-paper-scissors holds no
// state between calls.
type DuelSession struct {
	Round int `json:"round"`
}

// User is the account aggregate. All game session state lives on the record;
// the engine is stateless between requests.
type User struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"password_hash"`

	Score              int        `json:"score"` // May go negative via duel losses or trap penalties
	Attempts           int        `json:"attempts"`
	Rounds             int        `json:"rounds"` // Always recomputed as the sum of the three round counters
	ClaimedBonusPoints int        `json:"claimed_bonus_points"`
	LastBonusClaimAt   *time.Time `json:"last_bonus_claim_at"`

	GuessNumber    GuessNumberSession    `json:"guess_number"`
	ArrangeNumbers ArrangeNumbersSession `json:"arrange_numbers"`
	Duel           DuelSession           `json:"duel"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Version is the optimistic concurrency token checked by conditional saves
	Version int64 `json:"version"`
}

// NewUser creates an account with all counters zero and no active sessions
func NewUser(username, displayName, passwordHash string, now time.Time) *User {
	return &User{
		Username:       username,
		DisplayName:    displayName,
		PasswordHash:   passwordHash,
		GuessNumber:    GuessNumberSession{Phase: PhaseIdle},
		ArrangeNumbers: ArrangeNumbersSession{Phase: PhaseIdle},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SyncRounds recomputes the derived rounds total. Call after any round counter
// changes; rounds is never stored independently.
func (u *User) SyncRounds() {
	u.Rounds = u.GuessNumber.Round + u.ArrangeNumbers.Round + u.Duel.Round
}

// AverageAttemptsPerRound returns attempts/rounds, or 0 for a fresh account
func (u *User) AverageAttemptsPerRound() float64 {
	if u.Attempts == 0 {
		return 0
	}
	return float64(u.Attempts) / float64(u.Rounds)
}

// RankKey is the leaderboard ordering tuple: score descending, then attempts
// ascending, then rounds ascending.
type RankKey struct {
	Score    int
	Attempts int
	Rounds   int
}

// RankKey returns the user's ordering tuple
func (u *User) RankKey() RankKey {
	return RankKey{Score: u.Score, Attempts: u.Attempts, Rounds: u.Rounds}
}

// Better reports whether k ranks strictly ahead of other
func (k RankKey) Better(other RankKey) bool {
	if k.Score != other.Score {
		return k.Score > other.Score
	}
	if k.Attempts != other.Attempts {
		return k.Attempts < other.Attempts
	}
	return k.Rounds < other.Rounds
}

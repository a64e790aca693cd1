package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUserDefaults(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	u := NewUser("alice", "Alice", "hash", now)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 0, u.Score)
	assert.Equal(t, 0, u.Attempts)
	assert.Equal(t, 0, u.Rounds)
	assert.Equal(t, PhaseIdle, u.GuessNumber.Phase)
	assert.Equal(t, PhaseIdle, u.ArrangeNumbers.Phase)
	assert.Nil(t, u.LastBonusClaimAt)
}

func TestSyncRounds(t *testing.T) {
	u := &User{}
	u.GuessNumber.Round = 3
	u.ArrangeNumbers.Round = 2
	u.Duel.Round = 4
	u.SyncRounds()

	assert.Equal(t, 9, u.Rounds)
}

func TestAverageAttemptsPerRound(t *testing.T) {
	u := &User{}
	assert.Equal(t, 0.0, u.AverageAttemptsPerRound())

	u.Attempts = 10
	u.GuessNumber.Round = 4
	u.SyncRounds()
	assert.Equal(t, 2.5, u.AverageAttemptsPerRound())
}

func TestRankKeyBetter(t *testing.T) {
	tests := []struct {
		name   string
		a, b   RankKey
		better bool
	}{
		{"higher score wins", RankKey{Score: 10}, RankKey{Score: 5}, true},
		{"lower score loses", RankKey{Score: 5}, RankKey{Score: 10}, false},
		{"equal score, fewer attempts wins", RankKey{Score: 10, Attempts: 1}, RankKey{Score: 10, Attempts: 2}, true},
		{"equal score and attempts, fewer rounds wins", RankKey{Score: 10, Attempts: 2, Rounds: 1}, RankKey{Score: 10, Attempts: 2, Rounds: 3}, true},
		{"identical tuple is not better", RankKey{Score: 10, Attempts: 2, Rounds: 2}, RankKey{Score: 10, Attempts: 2, Rounds: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.better, tt.a.Better(tt.b))
		})
	}
}

func TestRPSBeats(t *testing.T) {
	assert.True(t, Rock.Beats(Scissors))
	assert.True(t, Scissors.Beats(Paper))
	assert.True(t, Paper.Beats(Rock))

	assert.False(t, Rock.Beats(Paper))
	assert.False(t, Rock.Beats(Rock))
}

func TestParseRPSChoice(t *testing.T) {
	c, ok := ParseRPSChoice("rock")
	assert.True(t, ok)
	assert.Equal(t, Rock, c)

	_, ok = ParseRPSChoice("lizard")
	assert.False(t, ok)
}

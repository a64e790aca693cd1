package bonus

import (
	"context"
	"time"

	"github.com/arcadely/arcade/internal/dependencies/clock"
	"github.com/arcadely/arcade/internal/dependencies/random"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/storage"
)

// Service hands out periodic bonus points
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random

	cooldown  time.Duration
	bigChance float64
}

// Config holds configuration for the bonus service
type Config struct {
	Cooldown time.Duration
}

// DefaultConfig returns default bonus configuration
func DefaultConfig() Config {
	return Config{
		Cooldown: 3 * time.Hour,
	}
}

// New creates a new BonusService
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config) *Service {
	if cfg.Cooldown == 0 {
		cfg.Cooldown = DefaultConfig().Cooldown
	}
	return &Service{
		storage:   storage,
		clock:     clock,
		random:    random,
		cooldown:  cfg.Cooldown,
		bigChance: 0.5,
	}
}

// Cooldown returns the configured claim interval
func (s *Service) Cooldown() time.Duration {
	return s.cooldown
}

// Result is a successful claim
type Result struct {
	Points int // 1, or 2 on a lucky roll
	User   *model.User
}

// Claim awards bonus points if the cooldown has elapsed since the last claim.
// A claim inside the window returns a CooldownError carrying the remaining
// wait; nothing is mutated in that case.
func (s *Service) Claim(ctx context.Context, user *model.User) (*Result, error) {
	now := s.clock.Now()

	if user.LastBonusClaimAt != nil {
		elapsed := now.Sub(*user.LastBonusClaimAt)
		if elapsed < s.cooldown {
			return nil, &model.CooldownError{Remaining: s.cooldown - elapsed}
		}
	}

	points := 1
	if s.random.Chance(s.bigChance) {
		points = 2
	}

	user.Score += points
	user.ClaimedBonusPoints += points
	user.LastBonusClaimAt = &now
	user.UpdatedAt = now

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &Result{Points: points, User: user}, nil
}

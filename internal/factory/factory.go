package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/arcadely/arcade/internal/dependencies/clock"
	"github.com/arcadely/arcade/internal/dependencies/random"
	"github.com/arcadely/arcade/internal/services/auth"
	"github.com/arcadely/arcade/internal/services/bonus"
	"github.com/arcadely/arcade/internal/services/game"
	"github.com/arcadely/arcade/internal/services/leaderboard"
	"github.com/arcadely/arcade/internal/storage"
	"github.com/arcadely/arcade/internal/storage/memory"
	redisstorage "github.com/arcadely/arcade/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService        *auth.Service
	GameService        *game.Service
	BonusService       *bonus.Service
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// BonusConfig holds configuration for the bonus service (optional)
	BonusConfig bonus.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.AuthConfig, cfg.BonusConfig), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, bonusCfg bonus.Config) *App {
	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		AuthService:        auth.New(store, clk, authCfg),
		GameService:        game.New(store, clk, rnd),
		BonusService:       bonus.New(store, clk, rnd, bonusCfg),
		LeaderboardService: leaderboard.New(store),
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/arcadely/arcade/internal/api"
	"github.com/arcadely/arcade/internal/factory"
	"github.com/arcadely/arcade/internal/services/auth"
	"github.com/arcadely/arcade/internal/services/bonus"
	redisstorage "github.com/arcadely/arcade/internal/storage/redis"
)

func main() {
	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		AuthConfig: auth.Config{
			TokenSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:    durationEnv(logger, "TOKEN_TTL"),
		},
		BonusConfig: bonus.Config{
			Cooldown: durationEnv(logger, "BONUS_COOLDOWN"),
		},
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if cfg.AuthConfig.TokenSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Storage:            app.Storage,
		AuthService:        app.AuthService,
		GameService:        app.GameService,
		BonusService:       app.BonusService,
		LeaderboardService: app.LeaderboardService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// durationEnv parses a duration env var, exiting on malformed values.
// An unset var returns 0 so the service falls back to its default.
func durationEnv(logger *slog.Logger, key string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Error("invalid duration", slog.String("var", key), slog.String("value", value))
		os.Exit(1)
	}
	return d
}

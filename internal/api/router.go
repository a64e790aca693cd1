package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arcadely/arcade/internal/api/handler"
	apimiddleware "github.com/arcadely/arcade/internal/api/middleware"
	"github.com/arcadely/arcade/internal/metrics"
	"github.com/arcadely/arcade/internal/middleware"
	"github.com/arcadely/arcade/internal/services/auth"
	"github.com/arcadely/arcade/internal/services/bonus"
	"github.com/arcadely/arcade/internal/services/game"
	"github.com/arcadely/arcade/internal/services/leaderboard"
	"github.com/arcadely/arcade/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Storage            storage.Storage
	AuthService        *auth.Service
	GameService        *game.Service
	BonusService       *bonus.Service
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.AuthService, cfg.LeaderboardService, cfg.Storage)
	gameHandler := handler.NewGameHandler(cfg.GameService, cfg.LeaderboardService)
	bonusHandler := handler.NewBonusHandler(cfg.BonusService, cfg.LeaderboardService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)

	authMiddleware := apimiddleware.Auth(cfg.AuthService, cfg.Storage)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(metrics.Instrument(routeName))

	// Auth routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Public user routes
	api.HandleFunc("/users", userHandler.Search).Methods(http.MethodGet)

	// Account routes
	me := api.PathPrefix("/users/me").Subrouter()
	me.Use(authMiddleware)
	me.HandleFunc("", userHandler.GetMe).Methods(http.MethodGet)
	me.HandleFunc("", userHandler.DeleteMe).Methods(http.MethodDelete)
	me.HandleFunc("/display-name", userHandler.ChangeDisplayName).Methods(http.MethodPatch)
	me.HandleFunc("/password", userHandler.ChangePassword).Methods(http.MethodPatch)

	api.HandleFunc("/users/{username}", userHandler.GetByUsername).Methods(http.MethodGet)

	// Leaderboard
	api.HandleFunc("/leaderboard", leaderboardHandler.Top).Methods(http.MethodGet)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("/guess-number", gameHandler.GuessNumber).Methods(http.MethodPost)
	games.HandleFunc("/arrange-numbers", gameHandler.ArrangeNumbers).Methods(http.MethodPost)
	games.HandleFunc("/rock-paper-scissors", gameHandler.PlayDuel).Methods(http.MethodPost)
	games.HandleFunc("/rock-paper-scissors/practice", gameHandler.Practice).Methods(http.MethodPost)

	// Bonus
	bonusRoutes := api.PathPrefix("/bonus").Subrouter()
	bonusRoutes.Use(authMiddleware)
	bonusRoutes.HandleFunc("/claim", bonusHandler.Claim).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Prometheus scrape endpoint, outside the API prefix
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

// routeName returns the matched route template for metric labels
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

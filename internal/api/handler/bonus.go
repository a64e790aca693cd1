package handler

import (
	"fmt"
	"net/http"

	"github.com/arcadely/arcade/internal/api/middleware"
	"github.com/arcadely/arcade/internal/api/response"
	"github.com/arcadely/arcade/internal/services/bonus"
	"github.com/arcadely/arcade/internal/services/leaderboard"
)

// BonusHandler handles the bonus claim endpoint
type BonusHandler struct {
	bonusService       *bonus.Service
	leaderboardService *leaderboard.Service
}

// NewBonusHandler creates a new bonus handler
func NewBonusHandler(bonusService *bonus.Service, leaderboardService *leaderboard.Service) *BonusHandler {
	return &BonusHandler{
		bonusService:       bonusService,
		leaderboardService: leaderboardService,
	}
}

// Claim handles POST /api/v1/bonus/claim
func (h *BonusHandler) Claim(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	result, err := h.bonusService.Claim(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	message := "Bonus point claimed! You received +1 point."
	if result.Points == 2 {
		message = "Bonus points claimed! You received +2 points!"
	}
	message += fmt.Sprintf(" Your current score is %d. Please come back after %d hours to claim your next bonus points.",
		user.Score, int(h.bonusService.Cooldown().Hours()))

	rank, err := h.leaderboardService.Rank(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.WriteData(w, http.StatusOK, message, response.RankedUserFromModel(rank, user))
}

package handler

import (
	"net/http"

	"github.com/arcadely/arcade/internal/api/response"
	"github.com/arcadely/arcade/internal/services/leaderboard"
)

// LeaderboardHandler handles the ranked listing endpoint
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Top handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := pageRequest(query.Get("page"), query.Get("limit"))
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.leaderboardService.Top(r.Context(), page)
	if err != nil {
		WriteError(w, err)
		return
	}

	data, meta := response.ListFromResult(result)
	response.WriteFull(w, http.StatusOK, defaultSuccessMessage, data, meta)
}

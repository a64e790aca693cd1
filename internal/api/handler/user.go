package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/arcadely/arcade/internal/api/middleware"
	"github.com/arcadely/arcade/internal/api/request"
	"github.com/arcadely/arcade/internal/api/response"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/services/auth"
	"github.com/arcadely/arcade/internal/services/leaderboard"
	"github.com/arcadely/arcade/internal/storage"
)

const defaultSuccessMessage = "Request processed successfully."

// UserHandler handles account profile and search endpoints
type UserHandler struct {
	authService        *auth.Service
	leaderboardService *leaderboard.Service
	storage            storage.Storage
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service, leaderboardService *leaderboard.Service, storage storage.Storage) *UserHandler {
	return &UserHandler{
		authService:        authService,
		leaderboardService: leaderboardService,
		storage:            storage,
	}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, middleware.MustGetUser(r.Context()))
}

// GetByUsername handles GET /api/v1/users/{username}
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := h.storage.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.Write(w, http.StatusNotFound, "User not found. Please check the username and try again.")
			return
		}
		WriteError(w, err)
		return
	}
	h.writeProfile(w, r, user)
}

func (h *UserHandler) writeProfile(w http.ResponseWriter, r *http.Request, user *model.User) {
	rank, err := h.leaderboardService.Rank(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.WriteData(w, http.StatusOK, defaultSuccessMessage, response.RankedUserFromModel(rank, user))
}

// ChangeDisplayName handles PATCH /api/v1/users/me/display-name
func (h *UserHandler) ChangeDisplayName(w http.ResponseWriter, r *http.Request) {
	var req request.ChangeDisplayNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body."))
		return
	}

	user := middleware.MustGetUser(r.Context())
	if err := h.authService.ChangeDisplayName(r.Context(), user, req.DisplayName); err != nil {
		WriteError(w, err)
		return
	}

	response.WriteData(w, http.StatusOK,
		"The display name of your account has been successfully changed.",
		response.UserFromModel(user))
}

// ChangePassword handles PATCH /api/v1/users/me/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body."))
		return
	}

	user := middleware.MustGetUser(r.Context())
	if err := h.authService.ChangePassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		WriteError(w, err)
		return
	}

	response.WriteData(w, http.StatusOK,
		"The password of your account has been successfully changed.",
		response.UserFromModel(user))
}

// DeleteMe handles DELETE /api/v1/users/me
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	if err := h.authService.DeleteAccount(r.Context(), user.Username); err != nil {
		WriteError(w, err)
		return
	}

	response.Write(w, http.StatusOK,
		fmt.Sprintf("Your account with the username '%s' has been successfully deleted.", user.Username))
}

// Search handles GET /api/v1/users
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	direction, ok := leaderboard.ParseSortDirection(query.Get("sortDirection"))
	if !ok {
		WriteError(w, NewInvalidRequestError("The 'sortDirection' parameter is required and must be 'asc' or 'desc'."))
		return
	}

	minScore, err := optionalIntParam(query.Get("minimumScore"), "minimumScore")
	if err != nil {
		WriteError(w, err)
		return
	}
	maxScore, err := optionalIntParam(query.Get("maximumScore"), "maximumScore")
	if err != nil {
		WriteError(w, err)
		return
	}
	page, err := pageRequest(query.Get("page"), query.Get("limit"))
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.leaderboardService.Search(r.Context(), leaderboard.SearchParams{
		MinScore:        minScore,
		MaxScore:        maxScore,
		UsernameKeyword: query.Get("usernameKeyword"),
		Direction:       direction,
		Page:            page,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	data, meta := response.ListFromResult(result)
	response.WriteFull(w, http.StatusOK, defaultSuccessMessage, data, meta)
}

func optionalIntParam(value, name string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, NewInvalidRequestError(fmt.Sprintf("The '%s' parameter must be a whole number.", name))
	}
	return &n, nil
}

func pageRequest(pageValue, limitValue string) (leaderboard.PageRequest, error) {
	page, err := optionalIntParam(pageValue, "page")
	if err != nil {
		return leaderboard.PageRequest{}, err
	}
	limit, err := optionalIntParam(limitValue, "limit")
	if err != nil {
		return leaderboard.PageRequest{}, err
	}
	return leaderboard.PageRequest{Page: page, Limit: limit}, nil
}

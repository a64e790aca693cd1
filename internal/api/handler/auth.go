package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/arcadely/arcade/internal/api/middleware"
	"github.com/arcadely/arcade/internal/api/request"
	"github.com/arcadely/arcade/internal/api/response"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/services/auth"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body."))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("Please enter a username."))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("Please enter a password."))
		return
	}

	_, err := h.authService.Register(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			response.Write(w, http.StatusConflict,
				fmt.Sprintf("The username '%s' is already taken. Please choose a different username.", req.Username))
			return
		}
		WriteError(w, err)
		return
	}

	response.Write(w, http.StatusCreated,
		"Registration successful. Please use the login endpoint to log in to your account.")
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body."))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("Please enter a username."))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("Please enter a password."))
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteData(w, http.StatusOK,
		"Login successful! You have been authorized and can access the protected API endpoints now.",
		response.AuthResponse{Token: token, User: response.UserFromModel(user)})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(middleware.GetToken(r.Context()))

	response.Write(w, http.StatusOK,
		"You have been successfully logged out. You are no longer authorized to access protected API endpoints. Please log in again to continue.")
}

package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/arcadely/arcade/internal/api/response"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/services/auth"
	"github.com/arcadely/arcade/internal/services/bonus"
)

// httpError is an error carrying its own HTTP status and client message
type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return e.message
}

// WriteError maps err to an HTTP status and writes it as an envelope
func WriteError(w http.ResponseWriter, err error) {
	status, message := toStatus(err)
	response.Write(w, status, message)
}

func toStatus(err error) (int, string) {
	var he *httpError
	if errors.As(err, &he) {
		return he.status, he.message
	}

	var invalid *model.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, invalid.Message
	}

	var insufficient *model.InsufficientScoreError
	if errors.As(err, &insufficient) {
		if insufficient.Opponent {
			return http.StatusUnprocessableEntity,
				fmt.Sprintf("You cannot stake more points than your opponent currently has (Max: %d).", insufficient.Max)
		}
		return http.StatusUnprocessableEntity,
			fmt.Sprintf("You cannot stake more points than you currently have (Max: %d).", insufficient.Max)
	}

	var cooldown *model.CooldownError
	if errors.As(err, &cooldown) {
		return http.StatusTooEarly,
			"Bonus points already claimed. Please try again after " +
				bonus.FormatRemaining(cooldown.Remaining) + " to claim your next bonus points."
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, model.ErrUsernameTaken):
		return http.StatusConflict, "This username is already taken. Please choose a different username."
	case errors.Is(err, model.ErrOpponentNotFound):
		return http.StatusNotFound, "Opponent user not found."
	case errors.Is(err, model.ErrSelfOpponent):
		return http.StatusConflict, "You cannot choose yourself as your opponent."
	case errors.Is(err, model.ErrNoEligibleOpponent):
		return http.StatusNotFound, "No opponent with enough points was found. Try lowering your stake."
	case errors.Is(err, model.ErrVersionConflict):
		return http.StatusConflict, "Your account was updated by another request. Please try again."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password."
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}

// NewInvalidRequestError creates a 400 error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "Authentication required."}
}

// NewInternalError creates a 500 error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error."}
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/arcadely/arcade/internal/api/middleware"
	"github.com/arcadely/arcade/internal/api/request"
	"github.com/arcadely/arcade/internal/api/response"
	"github.com/arcadely/arcade/internal/metrics"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/services/game"
	"github.com/arcadely/arcade/internal/services/leaderboard"
)

// GameHandler handles the game endpoints
type GameHandler struct {
	gameService        *game.Service
	leaderboardService *leaderboard.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *game.Service, leaderboardService *leaderboard.Service) *GameHandler {
	return &GameHandler{
		gameService:        gameService,
		leaderboardService: leaderboardService,
	}
}

// GuessNumber handles POST /api/v1/games/guess-number
func (h *GameHandler) GuessNumber(w http.ResponseWriter, r *http.Request) {
	var req request.GuessNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body."))
		return
	}

	user := middleware.MustGetUser(r.Context())
	result, err := h.gameService.GuessNumber(r.Context(), user, req.Number)
	if err != nil {
		WriteError(w, err)
		return
	}
	metrics.CountGame("guess_number")

	prefix := fmt.Sprintf("[ ROUND %d ] ", result.Round)

	switch result.Outcome {
	case game.GuessSecret:
		h.writeRanked(w, r, http.StatusOK, prefix+fmt.Sprintf(
			"Congratulations!!! You have successfully guessed the SECRET number (%d) and earned 3 points! Your current score is %d. Use this endpoint to play a new round.",
			result.Guess, user.Score), user)
	case game.GuessTrap:
		h.writeRanked(w, r, http.StatusOK, prefix+fmt.Sprintf(
			"You have unfortunately guessed the TRAP number (%d) and lost 1 point... Your current score is %d. Use this endpoint to continue guessing the BASIC or SECRET number.",
			result.Guess, user.Score), user)
	case game.GuessTooHigh:
		response.WriteData(w, http.StatusOK, prefix+fmt.Sprintf(
			"Your guessed number (%d) is too high! Try again.", result.Guess),
			response.UserFromModel(user))
	case game.GuessTooLow:
		response.WriteData(w, http.StatusOK, prefix+fmt.Sprintf(
			"Your guessed number (%d) is too low! Try again.", result.Guess),
			response.UserFromModel(user))
	case game.GuessBasic:
		h.writeRanked(w, r, http.StatusOK, prefix+fmt.Sprintf(
			"Congratulations! You have successfully guessed the BASIC number (%d) and earned 1 point. Your current score is %d. Use this endpoint to play a new round.",
			result.Guess, user.Score), user)
	}
}

// ArrangeNumbers handles POST /api/v1/games/arrange-numbers
func (h *GameHandler) ArrangeNumbers(w http.ResponseWriter, r *http.Request) {
	var req request.ArrangeNumbersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body."))
		return
	}

	user := middleware.MustGetUser(r.Context())
	result, err := h.gameService.ArrangeNumbers(r.Context(), user, req.Numbers)
	if err != nil {
		WriteError(w, err)
		return
	}
	metrics.CountGame("arrange_numbers")

	prefix := fmt.Sprintf("[ ROUND %d ] ", result.Round)

	if !result.RoundComplete {
		response.WriteData(w, http.StatusOK, prefix+fmt.Sprintf(
			"Here is the hint to help you figure out the sequence of the 5 numbers: %s. [X] = Correct position. -X- = Wrong position. Use this endpoint to try again.",
			result.Hint), response.UserFromModel(user))
		return
	}

	sequence := make([]string, len(result.Submitted))
	for i, n := range result.Submitted {
		sequence[i] = strconv.Itoa(n)
	}
	h.writeRanked(w, r, http.StatusOK, prefix+fmt.Sprintf(
		"Congratulations! You have successfully guessed the sequence of the 5 numbers (%s) and earned 2 points. Your current score is %d. Use this endpoint to play a new round.",
		strings.Join(sequence, ","), user.Score), user)
}

// PlayDuel handles POST /api/v1/games/rock-paper-scissors
func (h *GameHandler) PlayDuel(w http.ResponseWriter, r *http.Request) {
	var req request.PlayDuelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body."))
		return
	}

	choice, ok := model.ParseRPSChoice(req.Choice)
	if !ok {
		WriteError(w, NewInvalidRequestError("The 'choice' field must be 'rock', 'paper' or 'scissors'."))
		return
	}

	user := middleware.MustGetUser(r.Context())
	result, err := h.gameService.PlayDuel(r.Context(), user, req.OpponentUsername, choice, req.Stake)
	if err != nil {
		WriteError(w, err)
		return
	}
	metrics.CountGame("rock_paper_scissors")

	opponent := result.Opponent
	message := fmt.Sprintf("[ ROUND %d ] Your choice: { %s } versus opponent %s's choice: { %s } | ",
		result.Round, result.CallerChoice, opponent.Username, result.OpponentChoice)

	switch result.Outcome {
	case game.DuelDraw:
		message += "It is a draw. Both players keep their points."
	case game.DuelWin:
		message += fmt.Sprintf("Congratulations! You won and received %d point(s) from '%s'.", result.Stake, opponent.Username)
	case game.DuelLose:
		message += fmt.Sprintf("You lost and transferred %d point(s) to '%s'.", result.Stake, opponent.Username)
	}
	message += fmt.Sprintf(" Your current score is %d. Use this endpoint to play a new round.", user.Score)

	userRank, err := h.leaderboardService.Rank(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}
	opponentRank, err := h.leaderboardService.Rank(r.Context(), opponent)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteData(w, http.StatusOK, message, map[string]any{
		"user":     response.RankedUserFromModel(userRank, user),
		"opponent": response.RankedUserFromModel(opponentRank, opponent),
	})
}

// Practice handles POST /api/v1/games/rock-paper-scissors/practice
func (h *GameHandler) Practice(w http.ResponseWriter, r *http.Request) {
	var req request.PracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body."))
		return
	}

	choice, ok := model.ParseRPSChoice(req.Choice)
	if !ok {
		WriteError(w, NewInvalidRequestError("The 'choice' field must be 'rock', 'paper' or 'scissors'."))
		return
	}

	result := h.gameService.Practice(choice)

	message := fmt.Sprintf("Your choice: { %s } versus Opponent's choice: { %s } | ",
		result.CallerChoice, result.OpponentChoice)
	switch result.Outcome {
	case game.DuelDraw:
		message += "It is a draw."
	case game.DuelWin:
		message += "You won!"
	case game.DuelLose:
		message += "You lost..."
	}
	message += " Use this endpoint to play again."

	response.Write(w, http.StatusOK, message)
}

func (h *GameHandler) writeRanked(w http.ResponseWriter, r *http.Request, status int, message string, user *model.User) {
	rank, err := h.leaderboardService.Rank(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.WriteData(w, status, message, response.RankedUserFromModel(rank, user))
}

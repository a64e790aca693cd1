package request

// RegisterRequest is the body for POST /auth/register
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangeDisplayNameRequest is the body for PATCH /users/me/display-name
type ChangeDisplayNameRequest struct {
	DisplayName string `json:"displayName"`
}

// ChangePasswordRequest is the body for PATCH /users/me/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// GuessNumberRequest is the body for POST /games/guess-number
type GuessNumberRequest struct {
	Number int `json:"number"`
}

// ArrangeNumbersRequest is the body for POST /games/arrange-numbers
type ArrangeNumbersRequest struct {
	Numbers []int `json:"numbers"`
}

// PlayDuelRequest is the body for POST /games/rock-paper-scissors
type PlayDuelRequest struct {
	OpponentUsername string `json:"opponentUsername"`
	Choice           string `json:"choice"`
	Stake            int    `json:"stake"`
}

// PracticeRequest is the body for POST /games/rock-paper-scissors/practice
type PracticeRequest struct {
	Choice string `json:"choice"`
}

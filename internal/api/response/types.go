package response

import (
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/services/leaderboard"
)

// User represents an account in API responses
type User struct {
	Username                string  `json:"username"`
	DisplayName             string  `json:"displayName"`
	Score                   int     `json:"score"`
	Attempts                int     `json:"attempts"`
	Rounds                  int     `json:"rounds"`
	AverageAttemptsPerRound float64 `json:"averageAttemptsPerRound"`
	ClaimedBonusPoints      int     `json:"claimedBonusPoints"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		Username:                u.Username,
		DisplayName:             u.DisplayName,
		Score:                   u.Score,
		Attempts:                u.Attempts,
		Rounds:                  u.Rounds,
		AverageAttemptsPerRound: u.AverageAttemptsPerRound(),
		ClaimedBonusPoints:      u.ClaimedBonusPoints,
	}
}

// RankedUser is a User carrying its leaderboard position
type RankedUser struct {
	Rank int64 `json:"rank"`
	User
}

// RankedUserFromModel converts a model.User with a known rank
func RankedUserFromModel(rank int64, u *model.User) RankedUser {
	return RankedUser{Rank: rank, User: UserFromModel(u)}
}

// AuthResponse is the payload of a successful login
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ListMetadata annotates every listing response
type ListMetadata struct {
	TotalUsers    int64                 `json:"totalUsers"`
	ReturnedUsers int                   `json:"returnedUsers"`
	Pagination    *leaderboard.Metadata `json:"pagination"`
}

// ListFromResult converts a leaderboard listing into wire entries plus
// metadata. Unranked entries (rank 0) render as plain users.
func ListFromResult(result *leaderboard.ListResult) (any, ListMetadata) {
	meta := ListMetadata{
		TotalUsers:    result.TotalUsers,
		ReturnedUsers: len(result.Entries),
		Pagination:    result.Pagination,
	}

	ranked := len(result.Entries) > 0 && result.Entries[0].Rank > 0
	if ranked {
		users := make([]RankedUser, len(result.Entries))
		for i, entry := range result.Entries {
			users[i] = RankedUserFromModel(entry.Rank, entry.User)
		}
		return users, meta
	}

	users := make([]User, len(result.Entries))
	for i, entry := range result.Entries {
		users[i] = UserFromModel(entry.User)
	}
	return users, meta
}

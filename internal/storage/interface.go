package storage

import (
	"context"

	"github.com/arcadely/arcade/internal/model"
)

// SortOrder selects the ordering applied by FindUsers
type SortOrder string

const (
	// SortLeaderboard is the full ranking order: score descending, then
	// attempts ascending, then rounds ascending
	SortLeaderboard SortOrder = "leaderboard"
	// SortScoreAsc and SortScoreDesc order by score only
	SortScoreAsc  SortOrder = "score_asc"
	SortScoreDesc SortOrder = "score_desc"
)

// Filter describes which user records a query matches. Zero value matches all.
type Filter struct {
	// MinScore / MaxScore bound the score when non-nil (inclusive)
	MinScore *int
	MaxScore *int
	// UsernameContains is a case-insensitive substring match on username
	UsernameContains string
	// ExcludeUsernames removes specific accounts (case-insensitive)
	ExcludeUsernames []string
	// RankedBetterThan matches only accounts strictly ahead of the given
	// tuple in the leaderboard order
	RankedBetterThan *model.RankKey
}

// Query combines a filter with ordering and pagination
type Query struct {
	Filter Filter
	Sort   SortOrder
	Skip   int64
	// Limit caps the result size; <= 0 means unbounded
	Limit int64
}

// Storage defines the interface for user record persistence.
//
// SaveUser is conditional: the record's Version must match the stored version
// (0 for a record that does not exist yet) or the save fails with
// model.ErrVersionConflict. On success the version is bumped, both in the
// store and on the passed record.
type Storage interface {
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)
	// DeleteUser removes an account and reports whether it existed
	DeleteUser(ctx context.Context, username string) (bool, error)

	CountUsers(ctx context.Context) (int64, error)
	CountMatching(ctx context.Context, filter Filter) (int64, error)
	FindUsers(ctx context.Context, query Query) ([]*model.User, error)

	// SaveUserPair persists two records as a single indivisible write; either
	// both versions check out and both records land, or neither does
	SaveUserPair(ctx context.Context, a, b *model.User) error
}

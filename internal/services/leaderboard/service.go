package leaderboard

import (
	"context"
	"strings"

	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/storage"
)

// SortDirection orders search results by score
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection parses a direction string, case-insensitively
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToLower(s) {
	case string(SortAsc):
		return SortAsc, true
	case string(SortDesc):
		return SortDesc, true
	}
	return "", false
}

// Service computes ranks and produces leaderboard listings
type Service struct {
	storage storage.Storage
}

// New creates a new LeaderboardService
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Entry is one listed user. Rank is positional and 0 for unranked listings.
type Entry struct {
	Rank int64
	User *model.User
}

// ListResult is a leaderboard or search listing
type ListResult struct {
	Entries    []Entry
	TotalUsers int64     // all accounts, not just those matching
	Pagination *Metadata // nil when the listing is not paginated
}

// Rank returns the user's 1-based leaderboard position: one more than the
// number of users ranking strictly better
func (s *Service) Rank(ctx context.Context, user *model.User) (int64, error) {
	key := user.RankKey()
	better, err := s.storage.CountMatching(ctx, storage.Filter{RankedBetterThan: &key})
	if err != nil {
		return 0, err
	}
	return better + 1, nil
}

// Top lists users by rank order: score descending, then attempts ascending,
// then rounds ascending. Each entry carries its positional rank.
func (s *Service) Top(ctx context.Context, page PageRequest) (*ListResult, error) {
	total, err := s.storage.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	window, err := page.apply(total)
	if err != nil {
		return nil, err
	}

	users, err := s.storage.FindUsers(ctx, storage.Query{
		Sort:  storage.SortLeaderboard,
		Skip:  window.Skip,
		Limit: window.Limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(users))
	for i, user := range users {
		entries[i] = Entry{Rank: window.RankOffset + int64(i), User: user}
	}

	return &ListResult{
		Entries:    entries,
		TotalUsers: total,
		Pagination: window.Metadata,
	}, nil
}

// SearchParams filters and orders a user search. Direction is required and
// applies to score only; matched users are returned without ranks.
type SearchParams struct {
	MinScore        *int
	MaxScore        *int
	UsernameKeyword string
	Direction       SortDirection
	Page            PageRequest
}

// Search lists users matching the given filters, sorted by score
func (s *Service) Search(ctx context.Context, params SearchParams) (*ListResult, error) {
	var sort storage.SortOrder
	switch params.Direction {
	case SortAsc:
		sort = storage.SortScoreAsc
	case SortDesc:
		sort = storage.SortScoreDesc
	default:
		return nil, model.NewInvalidInputError("sort direction must be 'asc' or 'desc'")
	}

	filter := storage.Filter{
		MinScore:         params.MinScore,
		MaxScore:         params.MaxScore,
		UsernameContains: strings.TrimSpace(params.UsernameKeyword),
	}

	matched, err := s.storage.CountMatching(ctx, filter)
	if err != nil {
		return nil, err
	}

	window, err := params.Page.apply(matched)
	if err != nil {
		return nil, err
	}

	users, err := s.storage.FindUsers(ctx, storage.Query{
		Filter: filter,
		Sort:   sort,
		Skip:   window.Skip,
		Limit:  window.Limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(users))
	for i, user := range users {
		entries[i] = Entry{User: user}
	}

	total, err := s.storage.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Entries:    entries,
		TotalUsers: total,
		Pagination: window.Metadata,
	}, nil
}

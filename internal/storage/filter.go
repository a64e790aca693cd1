package storage

import (
	"sort"
	"strings"

	"github.com/arcadely/arcade/internal/model"
)

// Matches reports whether the user satisfies the filter. Both backends
// evaluate filters with this so their semantics cannot drift.
func (f Filter) Matches(u *model.User) bool {
	if f.MinScore != nil && u.Score < *f.MinScore {
		return false
	}
	if f.MaxScore != nil && u.Score > *f.MaxScore {
		return false
	}
	if f.UsernameContains != "" &&
		!strings.Contains(strings.ToLower(u.Username), strings.ToLower(f.UsernameContains)) {
		return false
	}
	for _, excluded := range f.ExcludeUsernames {
		if strings.EqualFold(u.Username, excluded) {
			return false
		}
	}
	if f.RankedBetterThan != nil && !u.RankKey().Better(*f.RankedBetterThan) {
		return false
	}
	return true
}

// SortUsers orders users in place according to the sort order
func SortUsers(users []*model.User, order SortOrder) {
	switch order {
	case SortLeaderboard:
		sort.SliceStable(users, func(i, j int) bool {
			return users[i].RankKey().Better(users[j].RankKey())
		})
	case SortScoreAsc:
		sort.SliceStable(users, func(i, j int) bool {
			return users[i].Score < users[j].Score
		})
	case SortScoreDesc:
		sort.SliceStable(users, func(i, j int) bool {
			return users[i].Score > users[j].Score
		})
	}
}

// Page applies skip/limit to an already sorted slice
func Page(users []*model.User, skip, limit int64) []*model.User {
	if skip > 0 {
		if skip >= int64(len(users)) {
			return nil
		}
		users = users[skip:]
	}
	if limit > 0 && limit < int64(len(users)) {
		users = users[:limit]
	}
	return users
}

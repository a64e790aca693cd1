package leaderboard

import (
	"github.com/arcadely/arcade/internal/model"
)

// PageRequest carries optional pagination parameters. Both may be nil for an
// unbounded listing, or limit alone may be set to take the first N results.
// A page without a limit is rejected.
type PageRequest struct {
	Page  *int
	Limit *int
}

// Metadata describes an applied page
type Metadata struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// window is the resolved slice of a listing
type window struct {
	Skip       int64
	Limit      int64 // 0 means unbounded
	RankOffset int64 // positional rank of the first returned entry
	Metadata   *Metadata
}

func (p PageRequest) apply(totalItems int64) (*window, error) {
	switch {
	case p.Page != nil && p.Limit != nil:
		page, limit := *p.Page, *p.Limit
		if page < 1 {
			return nil, model.NewInvalidInputError("page must be at least 1")
		}
		if limit < 1 {
			return nil, model.NewInvalidInputError("limit must be at least 1")
		}

		totalPages := 0
		if totalItems > 0 {
			totalPages = int((totalItems + int64(limit) - 1) / int64(limit))
		}

		skip := int64(page-1) * int64(limit)
		return &window{
			Skip:       skip,
			Limit:      int64(limit),
			RankOffset: skip + 1,
			Metadata: &Metadata{
				Page:       page,
				Limit:      limit,
				TotalItems: totalItems,
				TotalPages: totalPages,
			},
		}, nil
	case p.Page != nil:
		return nil, model.NewInvalidInputError("page cannot be used without limit")
	case p.Limit != nil:
		if *p.Limit < 1 {
			return nil, model.NewInvalidInputError("limit must be at least 1")
		}
		return &window{Limit: int64(*p.Limit), RankOffset: 1}, nil
	default:
		return &window{RankOffset: 1}, nil
	}
}

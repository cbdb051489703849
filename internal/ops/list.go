package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/tabloid/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int // default: 20, max: 100
	Offset int
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []RunSummary `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// List returns archived runs, newest first.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	runs, err := db.ListRuns(ctx, database, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := db.CountRuns(ctx, database)
	if err != nil {
		return nil, err
	}

	items := make([]RunSummary, len(runs))
	for i := range runs {
		items[i] = toSummary(&runs[i])
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}

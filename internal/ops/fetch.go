package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/tabloid/internal/db"
	"github.com/hpungsan/tabloid/internal/errors"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID string
}

// FetchOutput is an archived run with its headlines in first-seen order.
type FetchOutput struct {
	RunSummary
	Headlines []string `json:"headlines"`
}

// Fetch retrieves one archived run.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*FetchOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	run, err := db.GetRun(ctx, database, id, true)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{
		RunSummary: toSummary(run),
		Headlines:  run.Headlines,
	}, nil
}

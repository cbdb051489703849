package ops

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/tabloid/internal/db"
	"github.com/hpungsan/tabloid/internal/errors"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	ID     string
	Path   string // optional, default: <Dir>/<id><ext>
	Format string // default: inferred from Path, else text
	Dir    string // default export directory, usually ~/.tabloid/exports
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	Format     Format `json:"format"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// Export writes the headlines of an archived run to a sink file.
func Export(ctx context.Context, database *sql.DB, log *zap.Logger, input ExportInput) (*ExportOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	format, err := resolveFormat(input.Format, input.Path, string(FormatText))
	if err != nil {
		return nil, err
	}

	path := input.Path
	if path == "" {
		if input.Dir == "" {
			return nil, errors.NewInvalidRequest("path is required")
		}
		path = filepath.Join(input.Dir, id+format.Ext())
	}
	if err := ValidateSinkPath(path, format); err != nil {
		return nil, err
	}

	run, err := db.GetRun(ctx, database, id, true)
	if err != nil {
		return nil, err
	}

	if err := WriteSink(path, format, sinkTitle(run.ID), run.Headlines); err != nil {
		return nil, err
	}

	log.Info("run exported",
		zap.String("run_id", run.ID),
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("count", len(run.Headlines)),
	)

	return &ExportOutput{
		ID:         run.ID,
		Path:       path,
		Format:     format,
		Count:      len(run.Headlines),
		ExportedAt: time.Now().Unix(),
	}, nil
}

package ops

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/tabloid/internal/config"
	"github.com/hpungsan/tabloid/internal/corpus"
	"github.com/hpungsan/tabloid/internal/db"
	"github.com/hpungsan/tabloid/internal/errors"
	"github.com/hpungsan/tabloid/internal/headline"
)

// GenerateInput contains parameters for the Generate operation.
type GenerateInput struct {
	Iterations int     // default: cfg.Iterations
	Seed       *uint64 // default: random; the chosen seed is reported
	Path       string  // optional output file
	Format     string  // default: inferred from Path, else cfg.OutputFormat
	NoSave     bool    // skip the run archive
}

// GenerateOutput contains the result of the Generate operation.
type GenerateOutput struct {
	RunID     string         `json:"run_id,omitempty"`
	Seed      uint64         `json:"seed,string"`
	Stats     headline.Stats `json:"stats"`
	Headlines []string       `json:"headlines"`
	Path      string         `json:"path,omitempty"`
}

// Generate validates the word library, runs the generation loop with a
// seeded source, archives the run unless NoSave is set (or database is nil),
// and writes the headlines to Path when given.
func Generate(ctx context.Context, database *sql.DB, cfg *config.Config, set *corpus.Set, log *zap.Logger, input GenerateInput) (*GenerateOutput, error) {
	iterations := input.Iterations
	if iterations < 0 {
		return nil, errors.NewInvalidRequest("iterations must not be negative")
	}
	if iterations == 0 {
		iterations = cfg.Iterations
	}

	var format Format
	if input.Path != "" {
		var err error
		format, err = resolveFormat(input.Format, input.Path, cfg.OutputFormat)
		if err != nil {
			return nil, err
		}
		if err := ValidateSinkPath(input.Path, format); err != nil {
			return nil, err
		}
	}

	// Authoring defects are reported all at once, before any draw
	if err := headline.ValidationError(headline.Validate(set.Templates, set.Corpora)); err != nil {
		return nil, err
	}

	seed := newSeed()
	if input.Seed != nil {
		seed = *input.Seed
	}

	headlines, stats, err := headline.RunWithStats(set.Templates, set.Corpora, iterations, newSource(seed))
	if err != nil {
		return nil, err
	}

	out := &GenerateOutput{
		Seed:      seed,
		Stats:     stats,
		Headlines: headlines,
	}

	if !input.NoSave && database != nil {
		id, err := generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		err = db.InsertRun(ctx, database, &db.Run{
			ID:            id,
			Seed:          seed,
			Iterations:    iterations,
			TemplateCount: len(set.Templates),
			Unique:        stats.Unique,
			Duplicates:    stats.Duplicates,
			Library:       set.Path,
			CreatedAt:     time.Now().Unix(),
			Headlines:     headlines,
		})
		if err != nil {
			return nil, err
		}
		out.RunID = id
	}

	if input.Path != "" {
		if err := WriteSink(input.Path, format, sinkTitle(out.RunID), headlines); err != nil {
			return nil, err
		}
		out.Path = input.Path
	}

	log.Info("generation run complete",
		zap.String("run_id", out.RunID),
		zap.Uint64("seed", seed),
		zap.Int("attempts", stats.Attempts),
		zap.Int("unique", stats.Unique),
		zap.Int("duplicates", stats.Duplicates),
		zap.String("path", out.Path),
	)

	return out, nil
}

// sinkTitle is the heading used by markdown and html output.
func sinkTitle(runID string) string {
	if runID == "" {
		return "Tabloid headlines"
	}
	return "Tabloid headlines (run " + runID + ")"
}

package db

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/hpungsan/tabloid/internal/errors"
)

// Run is one archived generation run.
type Run struct {
	ID            string
	Seed          uint64
	Iterations    int
	TemplateCount int
	Unique        int
	Duplicates    int
	Library       string // library path, empty for the built-in library
	CreatedAt     int64
	Headlines     []string // first-seen order; nil when not loaded
}

// InsertRun stores a run and its headlines in one transaction.
func InsertRun(ctx context.Context, db *sql.DB, r *Run) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, seed, iterations, template_count, unique_count,
			duplicates, library, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, strconv.FormatUint(r.Seed, 10), r.Iterations, r.TemplateCount, r.Unique,
		r.Duplicates, toNullString(r.Library), r.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO headlines (run_id, position, text) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer stmt.Close()

	for i, text := range r.Headlines {
		if _, err := stmt.ExecContext(ctx, r.ID, i, text); err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetRun retrieves a run by ID, with its headlines when includeHeadlines is set.
func GetRun(ctx context.Context, db *sql.DB, id string, includeHeadlines bool) (*Run, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, seed, iterations, template_count, unique_count,
			duplicates, library, created_at
		FROM runs
		WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if includeHeadlines {
		r.Headlines, err = getHeadlines(ctx, db, id)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ListRuns returns run summaries, newest first, without headlines.
func ListRuns(ctx context.Context, db *sql.DB, limit, offset int) ([]Run, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, seed, iterations, template_count, unique_count,
			duplicates, library, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return runs, nil
}

// CountRuns returns the number of archived runs.
func CountRuns(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// DeleteRun removes a run; its headlines go with it (ON DELETE CASCADE).
func DeleteRun(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

func getHeadlines(ctx context.Context, db *sql.DB, runID string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT text FROM headlines WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	headlines := make([]string, 0)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, errors.NewInternal(err)
		}
		headlines = append(headlines, text)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return headlines, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun scans a single runs row.
func scanRun(row rowScanner) (*Run, error) {
	var (
		r       Run
		seed    string
		library sql.NullString
	)

	err := row.Scan(
		&r.ID, &seed, &r.Iterations, &r.TemplateCount, &r.Unique,
		&r.Duplicates, &library, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Seed, err = strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, err
	}
	r.Library = library.String
	return &r, nil
}

// toNullString maps "" to NULL.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

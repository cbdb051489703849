package ops

import (
	"crypto/rand"
	mrand "math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/tabloid/internal/db"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// pcgStream is the fixed second PCG word; the run seed supplies the first.
const pcgStream = 0x9e3779b97f4a7c15

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// RunSummary describes an archived run without its headlines.
type RunSummary struct {
	ID            string `json:"id"`
	Seed          uint64 `json:"seed,string"`
	Iterations    int    `json:"iterations"`
	TemplateCount int    `json:"template_count"`
	Unique        int    `json:"unique"`
	Duplicates    int    `json:"duplicates"`
	Library       string `json:"library,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

func toSummary(r *db.Run) RunSummary {
	return RunSummary{
		ID:            r.ID,
		Seed:          r.Seed,
		Iterations:    r.Iterations,
		TemplateCount: r.TemplateCount,
		Unique:        r.Unique,
		Duplicates:    r.Duplicates,
		Library:       r.Library,
		CreatedAt:     r.CreatedAt,
	}
}

// newSource returns the deterministic random source for a run seed.
func newSource(seed uint64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, pcgStream))
}

// newSeed picks a seed for runs that did not ask for one.
func newSeed() uint64 {
	return mrand.Uint64()
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

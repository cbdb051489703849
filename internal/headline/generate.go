package headline

import "github.com/hpungsan/tabloid/internal/errors"

// Stats summarises one generation run.
type Stats struct {
	Attempts   int `json:"attempts"`
	Unique     int `json:"unique"`
	Duplicates int `json:"duplicates"`
}

// Run makes exactly iterations generation attempts and returns the distinct
// headlines in the order they were first produced.
func Run(templates []string, corpora Corpora, iterations int, rnd Random) ([]string, error) {
	results, _, err := RunWithStats(templates, corpora, iterations, rnd)
	return results, err
}

// RunWithStats is Run plus attempt and duplicate counts. Each attempt picks a
// template uniformly from templates, then substitutes it. A non-positive
// iterations yields an empty result without touching rnd.
func RunWithStats(templates []string, corpora Corpora, iterations int, rnd Random) ([]string, Stats, error) {
	results := make([]string, 0)
	var stats Stats
	if iterations <= 0 {
		return results, stats, nil
	}
	if len(templates) == 0 {
		return nil, stats, errors.NewConfiguration("template set is empty", nil)
	}

	seen := make(map[string]struct{})
	for range iterations {
		h, err := Substitute(templates[rnd.IntN(len(templates))], corpora, rnd)
		if err != nil {
			return nil, stats, err
		}
		stats.Attempts++
		if _, dup := seen[h]; dup {
			stats.Duplicates++
			continue
		}
		seen[h] = struct{}{}
		results = append(results, h)
	}
	stats.Unique = len(results)
	return results, stats, nil
}

package ops

import (
	"github.com/hpungsan/tabloid/internal/corpus"
	"github.com/hpungsan/tabloid/internal/headline"
)

// ValidateOutput contains the result of the Validate operation.
type ValidateOutput struct {
	Valid   bool              `json:"valid"`
	Library string            `json:"library,omitempty"`
	Summary corpus.Summary    `json:"summary"`
	Defects []headline.Defect `json:"defects"`
}

// Validate checks every template in set and reports all defects. Defects
// are data in the output, not an error; callers decide how to surface them.
func Validate(set *corpus.Set) *ValidateOutput {
	defects := headline.Validate(set.Templates, set.Corpora)
	if defects == nil {
		defects = []headline.Defect{}
	}
	return &ValidateOutput{
		Valid:   len(defects) == 0,
		Library: set.Path,
		Summary: corpus.Summarize(set.Templates, set.Corpora),
		Defects: defects,
	}
}

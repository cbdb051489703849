package ops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hpungsan/tabloid/internal/corpus"
	"github.com/hpungsan/tabloid/internal/db"
	"github.com/hpungsan/tabloid/internal/errors"
	"github.com/hpungsan/tabloid/internal/headline"
)

func TestGenerate_ArchivesRun(t *testing.T) {
	database := setupTestDB(t)

	out, err := Generate(t.Context(), database, testConfig(), testSet(), zap.NewNop(), GenerateInput{Seed: seedPtr(7)})
	require.NoError(t, err)

	require.NotEmpty(t, out.RunID)
	require.Equal(t, uint64(7), out.Seed)
	require.Equal(t, 50, out.Stats.Attempts)
	require.Equal(t, len(out.Headlines), out.Stats.Unique)
	require.Equal(t, 50, out.Stats.Unique+out.Stats.Duplicates)
	for _, h := range out.Headlines {
		require.NotContains(t, h, "{")
		require.NotContains(t, h, "}")
	}

	run, err := db.GetRun(t.Context(), database, out.RunID, true)
	require.NoError(t, err)
	require.Equal(t, uint64(7), run.Seed)
	require.Equal(t, 50, run.Iterations)
	require.Equal(t, 2, run.TemplateCount)
	require.Equal(t, "test.yaml", run.Library)
	if diff := cmp.Diff(out.Headlines, run.Headlines); diff != "" {
		t.Errorf("archived headlines mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_SameSeedSameHeadlines(t *testing.T) {
	a, err := Generate(t.Context(), nil, testConfig(), testSet(), zap.NewNop(), GenerateInput{Seed: seedPtr(99)})
	require.NoError(t, err)
	b, err := Generate(t.Context(), nil, testConfig(), testSet(), zap.NewNop(), GenerateInput{Seed: seedPtr(99)})
	require.NoError(t, err)

	if diff := cmp.Diff(a.Headlines, b.Headlines); diff != "" {
		t.Errorf("same seed produced different runs (-a +b):\n%s", diff)
	}
	require.Equal(t, a.Stats, b.Stats)
}

func TestGenerate_RandomSeedReported(t *testing.T) {
	out, err := Generate(t.Context(), nil, testConfig(), testSet(), zap.NewNop(), GenerateInput{})
	require.NoError(t, err)

	replay, err := Generate(t.Context(), nil, testConfig(), testSet(), zap.NewNop(), GenerateInput{Seed: seedPtr(out.Seed)})
	require.NoError(t, err)
	require.Equal(t, out.Headlines, replay.Headlines)
}

func TestGenerate_NoSave(t *testing.T) {
	database := setupTestDB(t)

	out, err := Generate(t.Context(), database, testConfig(), testSet(), zap.NewNop(), GenerateInput{NoSave: true})
	require.NoError(t, err)
	require.Empty(t, out.RunID)

	count, err := db.CountRuns(t.Context(), database)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestGenerate_Iterations(t *testing.T) {
	t.Run("zero uses config default", func(t *testing.T) {
		cfg := testConfig()
		cfg.Iterations = 3
		out, err := Generate(t.Context(), nil, cfg, testSet(), zap.NewNop(), GenerateInput{})
		require.NoError(t, err)
		require.Equal(t, 3, out.Stats.Attempts)
	})

	t.Run("explicit overrides config", func(t *testing.T) {
		out, err := Generate(t.Context(), nil, testConfig(), testSet(), zap.NewNop(), GenerateInput{Iterations: 1})
		require.NoError(t, err)
		require.Equal(t, 1, out.Stats.Attempts)
		require.Len(t, out.Headlines, 1)
	})

	t.Run("negative rejected", func(t *testing.T) {
		_, err := Generate(t.Context(), nil, testConfig(), testSet(), zap.NewNop(), GenerateInput{Iterations: -1})
		require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
	})
}

func TestGenerate_DefectsReportedBeforeRun(t *testing.T) {
	database := setupTestDB(t)
	set := testSet()
	set.Templates = append(set.Templates, "{demo} love {x}", "oops }")

	_, err := Generate(t.Context(), database, testConfig(), set, zap.NewNop(), GenerateInput{})
	require.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)

	tErr, ok := errors.As(err)
	require.True(t, ok)
	defects, ok := tErr.Details["defects"].([]headline.Defect)
	require.True(t, ok)
	require.Len(t, defects, 3)

	count, err := db.CountRuns(t.Context(), database)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestGenerate_SyntaxOnlyDefects(t *testing.T) {
	set := testSet()
	set.Templates = []string{"{t"}

	_, err := Generate(t.Context(), nil, testConfig(), set, zap.NewNop(), GenerateInput{})
	require.True(t, errors.Is(err, errors.ErrTemplateSyntax), "got %v", err)
}

func TestGenerate_EmptyTemplateSet(t *testing.T) {
	set := &corpus.Set{Corpora: testSet().Corpora}
	_, err := Generate(t.Context(), nil, testConfig(), set, zap.NewNop(), GenerateInput{})
	require.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)
}

func TestGenerate_WritesSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "headlines.txt")

	out, err := Generate(t.Context(), nil, testConfig(), testSet(), zap.NewNop(), GenerateInput{Seed: seedPtr(3), Path: path})
	require.NoError(t, err)
	require.Equal(t, path, out.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, strings.Join(out.Headlines, "\n"), string(data))
}

func TestGenerate_BadPathFailsEarly(t *testing.T) {
	database := setupTestDB(t)

	tests := []struct {
		name   string
		path   string
		format string
	}{
		{"traversal", "../escape.txt", ""},
		{"extension mismatch", filepath.Join(t.TempDir(), "out.txt"), "jsonl"},
		{"unknown format", filepath.Join(t.TempDir(), "out.txt"), "pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(t.Context(), database, testConfig(), testSet(), zap.NewNop(), GenerateInput{Path: tt.path, Format: tt.format})
			require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
		})
	}

	count, err := db.CountRuns(t.Context(), database)
	require.NoError(t, err)
	require.Zero(t, count)
}

package web

import (
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hpungsan/tabloid/internal/config"
	"github.com/hpungsan/tabloid/internal/corpus"
	"github.com/hpungsan/tabloid/internal/db"
	"github.com/hpungsan/tabloid/internal/headline"
	"github.com/hpungsan/tabloid/internal/ops"
)

func setupTest(t *testing.T) (*Handlers, http.Handler) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	srv, err := NewServer(database, zap.NewNop(), "test", "127.0.0.1", 0)
	require.NoError(t, err)

	h, err := newHandlers(database, zap.NewNop(), "test")
	require.NoError(t, err)
	return h, srv.Handler
}

// seedRun archives a small run and returns it.
func seedRun(t *testing.T, h *Handlers) *ops.GenerateOutput {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Iterations = 10
	set := &corpus.Set{
		Templates: []string{"{v:u} {t:u}"},
		Corpora: headline.Corpora{
			headline.Noun: {"drugs", "Dungeons & Dragons"},
			headline.Verb: {"huffing"},
		},
	}
	seed := uint64(3)
	out, err := ops.Generate(t.Context(), h.db, cfg, set, zap.NewNop(), ops.GenerateInput{Seed: &seed})
	require.NoError(t, err)
	return out
}

func do(t *testing.T, handler http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRoot_Redirects(t *testing.T) {
	_, handler := setupTest(t)
	rec := do(t, handler, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/runs", rec.Header().Get("Location"))
}

func TestHandleList(t *testing.T) {
	h, handler := setupTest(t)

	rec := do(t, handler, http.MethodGet, "/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No runs archived yet")
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	run := seedRun(t, h)
	rec = do(t, handler, http.MethodGet, "/runs?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/runs/"+run.RunID)
}

func TestHandleDetail(t *testing.T) {
	h, handler := setupTest(t)
	run := seedRun(t, h)

	rec := do(t, handler, http.MethodGet, "/runs/"+run.RunID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, line := range run.Headlines {
		require.Contains(t, body, "<li>"+html.EscapeString(line)+"</li>")
	}
	require.NotContains(t, body, "DUNGEONS & DRAGONS")
	require.Contains(t, body, "download?format=jsonl")
}

func TestHandleDetail_NotFound(t *testing.T) {
	_, handler := setupTest(t)

	rec := do(t, handler, http.MethodGet, "/runs/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "run not found")

	rec = do(t, handler, http.MethodGet, "/runs/nope", map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	var payload map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "NOT_FOUND", payload["error"]["code"])
}

func TestHandleDownload(t *testing.T) {
	h, handler := setupTest(t)
	run := seedRun(t, h)

	rec := do(t, handler, http.MethodGet, "/runs/"+run.RunID+"/download", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, strings.Join(run.Headlines, "\n"), rec.Body.String())
	require.Contains(t, rec.Header().Get("Content-Disposition"), run.RunID+".txt")

	rec = do(t, handler, http.MethodGet, "/runs/"+run.RunID+"/download?format=jsonl", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/jsonl", rec.Header().Get("Content-Type"))
	require.Len(t, strings.Split(strings.TrimSpace(rec.Body.String()), "\n"), len(run.Headlines))

	rec = do(t, handler, http.MethodGet, "/runs/"+run.RunID+"/download?format=pdf", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDelete(t *testing.T) {
	h, handler := setupTest(t)
	run := seedRun(t, h)

	rec := do(t, handler, http.MethodPost, "/runs/"+run.RunID+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = do(t, handler, http.MethodGet, "/runs/"+run.RunID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, handler, http.MethodGet, "/runs/"+run.RunID+"/delete", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatic(t *testing.T) {
	_, handler := setupTest(t)
	rec := do(t, handler, http.MethodGet, "/static/style.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "headlines")
}

func TestFormatTime(t *testing.T) {
	require.Equal(t, "-", formatTime(0))
	require.NotEqual(t, "-", formatTime(1700000000))
}

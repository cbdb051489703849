package web

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hpungsan/tabloid/internal/ops"
)

// Handlers contains HTTP route handlers for the archive browser.
type Handlers struct {
	db       *sql.DB
	log      *zap.Logger
	renderer *Renderer
}

func newHandlers(db *sql.DB, log *zap.Logger, version string) (*Handlers, error) {
	renderer, err := NewRenderer(templateFS, version, log)
	if err != nil {
		return nil, err
	}
	return &Handlers{db: db, log: log, renderer: renderer}, nil
}

// HandleList handles GET /runs.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(r.Context(), h.db, ops.ListInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, http.StatusOK, "list", ListPageData{
		PageData:   PageData{Title: "Runs", Version: h.renderer.version},
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleDetail handles GET /runs/{id}.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	run, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, http.StatusOK, "detail", DetailPageData{
		PageData: PageData{Title: "Run " + run.ID, Version: h.renderer.version},
		Run:      run,
		Formats:  []ops.Format{ops.FormatText, ops.FormatJSONL, ops.FormatMarkdown, ops.FormatHTML},
	})
}

// HandleDownload handles GET /runs/{id}/download?format=F.
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(ops.FormatText)
	}
	format, err := ops.ParseFormat(name)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	run, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data, err := ops.Render(format, "Tabloid headlines (run "+run.ID+")", run.Headlines)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", run.ID+format.Ext()))
	_, _ = w.Write(data)
}

// HandleDelete handles POST /runs/{id}/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.log.Info("run deleted", zap.String("run_id", out.ID))
	http.Redirect(w, r, "/runs", http.StatusSeeOther)
}

var contentTypes = map[ops.Format]string{
	ops.FormatText:     "text/plain; charset=utf-8",
	ops.FormatJSONL:    "application/jsonl",
	ops.FormatMarkdown: "text/markdown; charset=utf-8",
	ops.FormatHTML:     "text/html; charset=utf-8",
}

// parseIntParam reads an integer query parameter, falling back to def.
func parseIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

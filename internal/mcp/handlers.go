package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/tabloid/internal/config"
	"github.com/hpungsan/tabloid/internal/corpus"
	"github.com/hpungsan/tabloid/internal/errors"
	"github.com/hpungsan/tabloid/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db        *sql.DB
	cfg       *config.Config
	lib       *corpus.Live
	log       *zap.Logger
	exportDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, lib *corpus.Live, log *zap.Logger, exportDir string) *Handlers {
	return &Handlers{db: db, cfg: cfg, lib: lib, log: log, exportDir: exportDir}
}

// GenerateRequest represents the arguments for generate. The seed travels as
// a string since JSON numbers cannot hold every uint64.
type GenerateRequest struct {
	Iterations int    `json:"iterations,omitempty"`
	Seed       string `json:"seed,omitempty"`
	Path       string `json:"path,omitempty"`
	Format     string `json:"format,omitempty"`
	NoSave     bool   `json:"no_save,omitempty"`
}

// ListRequest represents the arguments for list.
type ListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// IDRequest represents the arguments for fetch and delete.
type IDRequest struct {
	ID string `json:"id"`
}

// ExportRequest represents the arguments for export.
type ExportRequest struct {
	ID     string `json:"id"`
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"`
}

// HandleGenerate handles the generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GenerateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	seed, err := parseSeed(input.Seed)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Generate(ctx, h.db, h.cfg, h.lib.Get(), h.log, ops.GenerateInput{
		Iterations: input.Iterations,
		Seed:       seed,
		Path:       input.Path,
		Format:     input.Format,
		NoSave:     input.NoSave,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleValidate handles the validate tool call.
func (h *Handlers) HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.Validate(h.lib.Get()))
}

// HandleList handles the list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.db, ops.ListInput{Limit: input.Limit, Offset: input.Offset})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.db, ops.FetchInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(ctx, h.db, h.log, ops.ExportInput{
		ID:     input.ID,
		Path:   input.Path,
		Format: input.Format,
		Dir:    h.exportDir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// parseSeed reads an optional decimal uint64 seed.
func parseSeed(s string) (*uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("seed must be an unsigned 64-bit decimal integer (got %q)", s))
	}
	return &v, nil
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if tErr, ok := errors.As(err); ok {
		errorObj := map[string]any{
			"code":    tErr.Code,
			"message": tErr.Message,
			"status":  tErr.Status,
		}
		// Internal details may carry file paths or SQL errors
		if tErr.Code != errors.ErrInternal && tErr.Details != nil {
			errorObj["details"] = tErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

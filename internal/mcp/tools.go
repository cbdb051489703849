package mcp

import "github.com/mark3labs/mcp-go/mcp"

var generateToolDef = mcp.NewTool("headline_generate",
	mcp.WithDescription("Generate distinct tabloid headlines from the word library. "+
		"Validates every template first and reports all defects at once. "+
		"Runs are archived and replayable by seed."),
	mcp.WithNumber("iterations",
		mcp.Description("Number of generation attempts (default from config). Duplicates are dropped, so fewer headlines may come back."),
	),
	mcp.WithString("seed",
		mcp.Description("Unsigned 64-bit seed as a decimal string. Same seed and library give the same headlines. Random when omitted."),
	),
	mcp.WithString("path",
		mcp.Description("Optional output file. Extension must match the format."),
	),
	mcp.WithString("format",
		mcp.Description("Output format for path (inferred from the extension when omitted)."),
		mcp.Enum("text", "jsonl", "markdown", "html"),
	),
	mcp.WithBoolean("no_save",
		mcp.Description("Do not archive the run."),
	),
)

var validateToolDef = mcp.NewTool("headline_validate",
	mcp.WithDescription("Check every template against the word library without generating. Returns all defects with template index and byte offset."),
)

var listToolDef = mcp.NewTool("headline_list",
	mcp.WithDescription("List archived runs, newest first."),
	mcp.WithNumber("limit",
		mcp.Description("Max runs to return (default 20, max 100)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Runs to skip."),
	),
)

var fetchToolDef = mcp.NewTool("headline_fetch",
	mcp.WithDescription("Fetch an archived run with its headlines in first-seen order."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Run ID."),
	),
)

var exportToolDef = mcp.NewTool("headline_export",
	mcp.WithDescription("Write an archived run's headlines to a file. Defaults to ~/.tabloid/exports/<id>.<ext>."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Run ID."),
	),
	mcp.WithString("path",
		mcp.Description("Output file. Extension must match the format."),
	),
	mcp.WithString("format",
		mcp.Description("Output format (inferred from path, else text)."),
		mcp.Enum("text", "jsonl", "markdown", "html"),
	),
)

var deleteToolDef = mcp.NewTool("headline_delete",
	mcp.WithDescription("Delete an archived run."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Run ID."),
	),
)

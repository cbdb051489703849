package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/tabloid/internal/config"
	"github.com/hpungsan/tabloid/internal/corpus"
	"github.com/hpungsan/tabloid/internal/errors"
	"github.com/hpungsan/tabloid/internal/headline"
	"github.com/hpungsan/tabloid/internal/logging"
	"github.com/hpungsan/tabloid/internal/mcp"
	"github.com/hpungsan/tabloid/internal/ops"
	"github.com/hpungsan/tabloid/internal/web"
)

// env holds what commands need. The logger may be replaced by --log-level.
type env struct {
	db        *sql.DB
	cfg       *config.Config
	log       *zap.Logger
	exportDir string
}

// openLibrary loads the word library named by --library, else the configured one.
func (e *env) openLibrary(c *cli.Context) (*corpus.Set, error) {
	path := e.cfg.LibraryPath
	if c != nil && c.String("library") != "" {
		path = c.String("library")
	}
	return corpus.Open(path)
}

// serve runs the MCP server on stdio with the configured library.
func (e *env) serve() error {
	set, err := e.openLibrary(nil)
	if err != nil {
		return err
	}
	return mcp.Run(e.db, e.cfg, corpus.NewLive(set), e.log, e.exportDir, Version)
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "tabloid",
		Usage:   "Tabloid headline generator",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "Log level: debug|info|warn|error (overrides config)"},
		},
		Before: func(c *cli.Context) error {
			if !c.IsSet("log-level") {
				return nil
			}
			log, err := logging.New(c.String("log-level"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			e.log = log
			return nil
		},
		Commands: []*cli.Command{
			generateCmd(e),
			validateCmd(e),
			listCmd(e),
			fetchCmd(e),
			exportCmd(e),
			deleteCmd(e),
			serveCmd(e),
			uiCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func libraryFlag() cli.Flag {
	return &cli.StringFlag{Name: "library", Aliases: []string{"L"}, Usage: "YAML word library (default: config library_path, else built-in)"}
}

// generateCmd creates the generate command.
func generateCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate distinct headlines",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "iterations", Aliases: []string{"n"}, Usage: "Generation attempts (default: config iterations)"},
			&cli.Uint64Flag{Name: "seed", Aliases: []string{"s"}, Usage: "Random seed for a reproducible run"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write headlines to this file"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output file format: text|jsonl|markdown|html"},
			&cli.BoolFlag{Name: "no-save", Usage: "Do not archive the run"},
			&cli.BoolFlag{Name: "plain", Usage: "Print headlines one per line instead of JSON"},
			libraryFlag(),
		},
		Action: func(c *cli.Context) error {
			set, err := e.openLibrary(c)
			if err != nil {
				return outputError(err)
			}

			input := ops.GenerateInput{
				Iterations: c.Int("iterations"),
				Path:       c.String("out"),
				Format:     c.String("format"),
				NoSave:     c.Bool("no-save"),
			}
			if c.IsSet("seed") {
				seed := c.Uint64("seed")
				input.Seed = &seed
			}

			output, err := ops.Generate(c.Context, e.db, e.cfg, set, e.log, input)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("plain") {
				return outputLines(c.App.Writer, output.Headlines)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// validateCmd creates the validate command.
func validateCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check every template against the word library",
		Flags: []cli.Flag{libraryFlag()},
		Action: func(c *cli.Context) error {
			set, err := e.openLibrary(c)
			if err != nil {
				return outputError(err)
			}

			output := ops.Validate(set)
			if err := outputJSON(c.App.Writer, output); err != nil {
				return err
			}
			if !output.Valid {
				return outputError(headline.ValidationError(output.Defects))
			}
			return nil
		},
	}
}

// listCmd creates the list command.
func listCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List archived runs, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum runs to return"},
			&cli.IntFlag{Name: "offset", Value: 0, Usage: "Runs to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, e.db, ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch an archived run with its headlines",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "plain", Usage: "Print headlines one per line instead of JSON"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Fetch(c.Context, e.db, ops.FetchInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			if c.Bool("plain") {
				return outputLines(c.App.Writer, output.Headlines)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write an archived run to a file",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Output file (default: ~/.tabloid/exports/<id>.<ext>)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: text|jsonl|markdown|html"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(c.Context, e.db, e.log, ops.ExportInput{
				ID:     c.Args().First(),
				Path:   c.String("path"),
				Format: c.String("format"),
				Dir:    e.exportDir,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an archived run",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, e.db, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the MCP server on stdio",
		Action: func(c *cli.Context) error {
			if err := e.serve(); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// uiCmd creates the ui command.
func uiCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Browse archived runs in a web browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 7777, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv, err := web.NewServer(e.db, e.log, Version, c.String("bind"), c.Int("port"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(srv, e.log); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputLines writes one headline per line.
func outputLines(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

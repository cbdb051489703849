package ops

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/yuin/goldmark"

	"github.com/hpungsan/tabloid/internal/errors"
)

// Format is an output sink format.
type Format string

const (
	FormatText     Format = "text"     // one headline per line
	FormatJSONL    Format = "jsonl"    // {"position":0,"headline":"..."} per line
	FormatMarkdown Format = "markdown" // bulleted list under a heading
	FormatHTML     Format = "html"     // the markdown list rendered to HTML
)

// formatExt maps each format to the file extension its paths must carry.
var formatExt = map[Format]string{
	FormatText:     ".txt",
	FormatJSONL:    ".jsonl",
	FormatMarkdown: ".md",
	FormatHTML:     ".html",
}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "md" {
		s = string(FormatMarkdown)
	}
	f := Format(s)
	if _, ok := formatExt[f]; !ok {
		return "", errors.NewInvalidRequest(fmt.Sprintf("format must be one of: text, jsonl, markdown, html (got %q)", s))
	}
	return f, nil
}

// FormatForPath infers the format from a path's extension.
func FormatForPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, e := range formatExt {
		if e == ext {
			return f, true
		}
	}
	return "", false
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	return formatExt[f]
}

// resolveFormat picks the explicit format, else the one implied by path,
// else fallback.
func resolveFormat(explicit, path, fallback string) (Format, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseFormat(explicit)
	}
	if path != "" {
		if f, ok := FormatForPath(path); ok {
			return f, nil
		}
	}
	if strings.TrimSpace(fallback) == "" {
		return FormatText, nil
	}
	return ParseFormat(fallback)
}

// ValidateSinkPath rejects empty paths, directory traversal, and extensions
// that do not match the format.
func ValidateSinkPath(path string, format Format) error {
	if path == "" {
		return errors.NewInvalidRequest("path is required")
	}
	if containsTraversal(path) {
		return errors.NewInvalidRequest("path must not contain directory traversal (..)")
	}
	if ext := filepath.Ext(filepath.Clean(path)); !strings.EqualFold(ext, format.Ext()) {
		return errors.NewInvalidRequest(fmt.Sprintf("path must have %s extension for %s output", format.Ext(), format))
	}
	return nil
}

// containsTraversal checks for ".." path components.
func containsTraversal(path string) bool {
	for _, part := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

// Render encodes headlines in the given format.
func Render(format Format, title string, headlines []string) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(strings.Join(headlines, "\n")), nil
	case FormatJSONL:
		return renderJSONL(headlines)
	case FormatMarkdown:
		return []byte(renderMarkdown(title, headlines)), nil
	case FormatHTML:
		return renderHTML(title, headlines)
	}
	return nil, errors.NewInvalidRequest(fmt.Sprintf("unsupported format %q", format))
}

// jsonlRecord is one line of JSONL output.
type jsonlRecord struct {
	Position int    `json:"position"`
	Headline string `json:"headline"`
}

func renderJSONL(headlines []string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i, h := range headlines {
		if err := enc.Encode(jsonlRecord{Position: i, Headline: h}); err != nil {
			return nil, errors.NewInternal(err)
		}
	}
	return buf.Bytes(), nil
}

// markdownEscaper escapes characters that would otherwise start markup.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`, `#`, `\#`,
)

func renderMarkdown(title string, headlines []string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(markdownEscaper.Replace(title))
	b.WriteString("\n\n")
	for _, h := range headlines {
		b.WriteString("- ")
		b.WriteString(markdownEscaper.Replace(h))
		b.WriteString("\n")
	}
	return b.String()
}

// renderHTML converts the markdown rendering to a standalone HTML page using goldmark.
func renderHTML(title string, headlines []string) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(renderMarkdown(title, headlines)), &body); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to render html: %w", err))
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	page.WriteString(html.EscapeString(title))
	page.WriteString("</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// WriteSink renders headlines and writes them to path atomically: readers see
// either the old file or the complete new one.
func WriteSink(path string, format Format, title string, headlines []string) error {
	if err := ValidateSinkPath(path, format); err != nil {
		return err
	}

	data, err := Render(format, title, headlines)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create output directory: %w", err))
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write output: %w", err))
	}
	return nil
}

package ops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/tabloid/internal/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSONL", FormatJSONL, false},
		{" markdown ", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"html", FormatHTML, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	f, ok := FormatForPath("/tmp/x.JSONL")
	require.True(t, ok)
	require.Equal(t, FormatJSONL, f)

	_, ok = FormatForPath("/tmp/x.csv")
	require.False(t, ok)
}

func TestResolveFormat(t *testing.T) {
	f, err := resolveFormat("html", "out.txt", "jsonl")
	require.NoError(t, err)
	require.Equal(t, FormatHTML, f)

	f, err = resolveFormat("", "out.md", "jsonl")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, f)

	f, err = resolveFormat("", "out.csv", "jsonl")
	require.NoError(t, err)
	require.Equal(t, FormatJSONL, f)

	f, err = resolveFormat("", "", "")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)
}

func TestValidateSinkPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		format  Format
		wantErr bool
	}{
		{"ok", "/tmp/out.txt", FormatText, false},
		{"ok upper ext", "/tmp/OUT.HTML", FormatHTML, false},
		{"dotdot in name is fine", "/tmp/a..b.md", FormatMarkdown, false},
		{"empty", "", FormatText, true},
		{"traversal", "/tmp/../etc/out.txt", FormatText, true},
		{"relative traversal", "../out.txt", FormatText, true},
		{"wrong ext", "/tmp/out.txt", FormatJSONL, true},
		{"no ext", "/tmp/out", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSinkPath(tt.path, tt.format)
			if tt.wantErr {
				require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

var sinkHeadlines = []string{
	"Kittens: Sinister gateway to murder?!",
	"HUFFING DRUGS",
	"Dungeons & Dragons: Sinister gateway to <b>murder</b>?!",
}

func TestRender_Text(t *testing.T) {
	data, err := Render(FormatText, "ignored", sinkHeadlines)
	require.NoError(t, err)
	require.Equal(t, strings.Join(sinkHeadlines, "\n"), string(data))

	data, err = Render(FormatText, "", nil)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestRender_JSONL(t *testing.T) {
	data, err := Render(FormatJSONL, "", sinkHeadlines[1:])
	require.NoError(t, err)
	want := `{"position":0,"headline":"HUFFING DRUGS"}` + "\n" +
		`{"position":1,"headline":"Dungeons & Dragons: Sinister gateway to <b>murder</b>?!"}` + "\n"
	require.Equal(t, want, string(data))
}

func TestRender_Markdown(t *testing.T) {
	data, err := Render(FormatMarkdown, "Run #1", []string{"HUFFING DRUGS", "a_b *c*"})
	require.NoError(t, err)
	require.Equal(t, "# Run \\#1\n\n- HUFFING DRUGS\n- a\\_b \\*c\\*\n", string(data))
}

func TestRender_HTML(t *testing.T) {
	data, err := Render(FormatHTML, "<Tabloid>", sinkHeadlines)
	require.NoError(t, err)

	page := string(data)
	require.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	require.Contains(t, page, "<title>&lt;Tabloid&gt;</title>")
	require.Contains(t, page, "<li>HUFFING DRUGS</li>")
	require.Contains(t, page, "Dungeons &amp; Dragons")
	require.NotContains(t, page, "<b>murder</b>")
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(Format("pdf"), "", sinkHeadlines)
	require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
}

func TestWriteSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.jsonl")
	require.NoError(t, WriteSink(path, FormatJSONL, "", []string{"HUFFING DRUGS"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{"position":0,"headline":"HUFFING DRUGS"}`+"\n", string(data))

	// Overwrite replaces the whole file
	require.NoError(t, WriteSink(path, FormatJSONL, "", nil))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestWriteSink_RejectsBadPath(t *testing.T) {
	err := WriteSink(filepath.Join(t.TempDir(), "out.md"), FormatText, "", sinkHeadlines)
	require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
}

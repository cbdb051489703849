package headline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/tabloid/internal/errors"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw  string
		want Requirement
	}{
		{"t", Requirement{Noun, Pass}},
		{"t:_", Requirement{Noun, Pass}},
		{"t:p", Requirement{Noun, Pass}},
		{"t:", Requirement{Noun, Pass}},
		{"f", Requirement{Flavour, Pass}},
		{"v:u", Requirement{Verb, Upper}},
		{"demo:c", Requirement{Demographic, Capitalise}},
		{"demo:l", Requirement{Demographic, Lower}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseToken(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseToken_Errors(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		suggestion string
	}{
		{"empty", "", ""},
		{"case only", ":u", ""},
		{"unknown category", "bogus", ""},
		{"long category name", "verb", "v"},
		{"category prefix", "demog", "demo"},
		{"unknown case", "t:x", ""},
		{"long case name", "t:upper", "u"},
		{"extra colon", "t:u:x", ""},
		{"whitespace not trimmed", " t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.raw)
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)

			tErr, ok := errors.As(err)
			require.True(t, ok)
			require.Equal(t, tt.raw, tErr.Details["token"])
			if tt.suggestion != "" {
				require.Equal(t, tt.suggestion, tErr.Details["did_you_mean"])
			}
		})
	}
}

func TestCategoryByName(t *testing.T) {
	tests := []struct {
		name string
		want Category
		ok   bool
	}{
		{"topic", Noun, true},
		{"noun", Noun, true},
		{"t", Noun, true},
		{"Flavour", Flavour, true},
		{" verb ", Verb, true},
		{"demo", Demographic, true},
		{"demographic", Demographic, true},
		{"adjective", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CategoryByName(tt.name)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_KeyRoundTrip(t *testing.T) {
	for _, cat := range Categories() {
		got, ok := CategoryByName(cat.Key())
		require.True(t, ok, cat.String())
		require.Equal(t, cat, got)
	}
}

package headline

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hpungsan/tabloid/internal/errors"
)

// Requirement is the parsed form of a placeholder token.
type Requirement struct {
	Category Category
	Case     Case
}

// ParseToken parses the text between '{' and '}' into a Requirement.
//
// The token is a category key optionally followed by ':' and a case code.
// A missing or empty case code means Pass. Unknown keys or codes are
// configuration errors; when a close match exists the error details carry a
// "did_you_mean" suggestion.
func ParseToken(raw string) (Requirement, error) {
	key, code, _ := strings.Cut(raw, ":")
	if key == "" {
		return Requirement{}, errors.NewConfiguration(
			"placeholder has no category key",
			map[string]any{"token": raw},
		)
	}

	cat, ok := categoryKeys[key]
	if !ok {
		details := map[string]any{"token": raw, "category": key}
		if s := suggestCategory(key); s != "" {
			details["did_you_mean"] = s
		}
		return Requirement{}, errors.NewConfiguration(fmt.Sprintf("unknown category key %q", key), details)
	}

	req := Requirement{Category: cat, Case: Pass}
	if code == "" {
		return req, nil
	}

	c, ok := caseCodes[code]
	if !ok {
		details := map[string]any{"token": raw, "case": code}
		if s := suggestCase(code); s != "" {
			details["did_you_mean"] = s
		}
		return Requirement{}, errors.NewConfiguration(fmt.Sprintf("unknown case code %q", code), details)
	}
	req.Case = c
	return req, nil
}

// suggestCategory returns the key of the category whose long name best
// matches input, e.g. "verb" => "v".
func suggestCategory(input string) string {
	names := make([]string, len(allCategories))
	for i, cat := range allCategories {
		names[i] = cat.String()
	}
	matches := fuzzy.Find(strings.ToLower(input), names)
	if len(matches) == 0 {
		return ""
	}
	return allCategories[matches[0].Index].Key()
}

// suggestCase returns the code of the case whose name best matches input,
// e.g. "upper" => "u".
func suggestCase(input string) string {
	matches := fuzzy.Find(strings.ToLower(input), caseNames)
	if len(matches) == 0 {
		return ""
	}
	return caseShortCodes[matches[0].Index]
}

package headline

import (
	"fmt"
	"strings"

	"github.com/hpungsan/tabloid/internal/errors"
)

// Category identifies the corpus a placeholder draws from.
type Category int

const (
	Noun Category = iota + 1
	Flavour
	Verb
	Demographic
)

// allCategories lists every category in canonical order.
var allCategories = []Category{Noun, Flavour, Verb, Demographic}

// categoryKeys maps the short key used inside placeholders to its category.
var categoryKeys = map[string]Category{
	"t":    Noun,
	"f":    Flavour,
	"v":    Verb,
	"demo": Demographic,
}

// categoryNames holds the long name of each category, used by word libraries.
var categoryNames = map[Category]string{
	Noun:        "topic",
	Flavour:     "flavour",
	Verb:        "verb",
	Demographic: "demographic",
}

// Categories returns every known category in canonical order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// String returns the long name ("topic", "verb", ...).
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Key returns the placeholder key for the category ("t", "v", ...).
func (c Category) Key() string {
	for key, cat := range categoryKeys {
		if cat == c {
			return key
		}
	}
	return ""
}

// CategoryByName resolves a long name or placeholder key, case-insensitively.
// "noun" is accepted as an alias for "topic".
func CategoryByName(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if cat, ok := categoryKeys[name]; ok {
		return cat, true
	}
	if name == "noun" {
		return Noun, true
	}
	for cat, long := range categoryNames {
		if long == name {
			return cat, true
		}
	}
	return 0, false
}

// Corpora binds each category to its word list. A Corpora is read-only once
// built and can be shared by any number of generation calls.
type Corpora map[Category][]string

// lookup returns the word list for cat, failing when it is missing or empty.
func (c Corpora) lookup(cat Category) ([]string, error) {
	words, ok := c[cat]
	if !ok {
		return nil, errors.NewConfiguration(
			fmt.Sprintf("no corpus bound to category %q", cat),
			map[string]any{"category": cat.String()},
		)
	}
	if len(words) == 0 {
		return nil, errors.NewConfiguration(
			fmt.Sprintf("corpus for category %q is empty", cat),
			map[string]any{"category": cat.String()},
		)
	}
	return words, nil
}

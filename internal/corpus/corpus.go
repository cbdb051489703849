package corpus

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/tabloid/internal/errors"
	"github.com/hpungsan/tabloid/internal/headline"
)

//go:embed default.yaml
var defaultLibrary []byte

// Library is a word library: the templates plus one word list per category,
// keyed by category name ("topic", "verb", ...) or placeholder key ("t", "v", ...).
type Library struct {
	Templates []string            `yaml:"templates" json:"templates"`
	Corpora   map[string][]string `yaml:"corpora" json:"corpora"`
}

// Default returns the built-in library.
func Default() (*Library, error) {
	return Parse(defaultLibrary)
}

// Load reads a YAML library from path. An empty path means the built-in library.
func Load(path string) (*Library, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to read library: %w", err))
	}
	return Parse(data)
}

// Parse decodes a YAML library. Unknown top-level fields are rejected so a
// typo like "corpus:" fails loudly instead of yielding an empty library.
func Parse(data []byte) (*Library, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	lib := &Library{}
	if err := dec.Decode(lib); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewConfiguration("library is empty", nil)
		}
		return nil, errors.NewConfiguration(fmt.Sprintf("invalid library: %v", err), nil)
	}
	return lib, nil
}

// Bind resolves the library's corpus names to categories. Unknown names and
// two names for the same category are configuration errors. Word lists are
// copied, so later edits to the Library do not leak into the result.
func (l *Library) Bind() (headline.Corpora, error) {
	names := make([]string, 0, len(l.Corpora))
	for name := range l.Corpora {
		names = append(names, name)
	}
	sort.Strings(names)

	corpora := make(headline.Corpora, len(names))
	boundBy := make(map[headline.Category]string, len(names))
	for _, name := range names {
		cat, ok := headline.CategoryByName(name)
		if !ok {
			return nil, errors.NewConfiguration(
				fmt.Sprintf("unknown corpus %q", name),
				map[string]any{"corpus": name},
			)
		}
		if prev, dup := boundBy[cat]; dup {
			return nil, errors.NewConfiguration(
				fmt.Sprintf("corpora %q and %q both name category %q", prev, name, cat),
				map[string]any{"corpus": name, "category": cat.String()},
			)
		}
		boundBy[cat] = name
		corpora[cat] = append([]string(nil), l.Corpora[name]...)
	}
	return corpora, nil
}

// Set is a library bound to categories and ready for generation.
type Set struct {
	Path      string // empty for the built-in library
	Templates []string
	Corpora   headline.Corpora
}

// Open loads the library at path (built-in when empty) and binds it. It does
// not validate templates; see headline.Validate.
func Open(path string) (*Set, error) {
	lib, err := Load(path)
	if err != nil {
		return nil, err
	}
	corpora, err := lib.Bind()
	if err != nil {
		return nil, err
	}
	return &Set{
		Path:      path,
		Templates: append([]string(nil), lib.Templates...),
		Corpora:   corpora,
	}, nil
}

// Summary counts templates and words per category.
type Summary struct {
	Templates int            `json:"templates"`
	Words     map[string]int `json:"words"`
}

// Summarize reports the size of each bound corpus.
func Summarize(templates []string, corpora headline.Corpora) Summary {
	s := Summary{Templates: len(templates), Words: make(map[string]int, len(corpora))}
	for cat, words := range corpora {
		s.Words[cat.String()] = len(words)
	}
	return s
}

package headline

import (
	"strings"

	"github.com/hpungsan/tabloid/internal/errors"
)

// Random is the source of word draws. *rand.Rand from math/rand/v2 satisfies it.
// Implementations are not expected to be safe for concurrent use.
type Random interface {
	IntN(n int) int
}

// Substitute resolves every placeholder in template against corpora, drawing
// one word per placeholder from rnd. On any error no output is returned.
func Substitute(template string, corpora Corpora, rnd Random) (string, error) {
	var b strings.Builder
	b.Grow(len(template) * 2)

	err := scan(template,
		func(literal string) {
			b.WriteString(literal)
		},
		func(raw string, offset int) error {
			req, err := ParseToken(raw)
			if err != nil {
				return annotate(err, template, offset)
			}
			words, err := corpora.lookup(req.Category)
			if err != nil {
				return annotate(err, template, offset)
			}
			b.WriteString(req.Case.Apply(words[rnd.IntN(len(words))]))
			return nil
		},
	)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// scan walks template once, left to right. literal receives the text between
// placeholders; placeholder receives each raw token and the offset of its '{'.
// Brace errors stop the scan; so does any error returned by placeholder.
func scan(template string, literal func(string), placeholder func(raw string, offset int) error) error {
	cursor := 0
	for cursor < len(template) {
		rest := template[cursor:]
		open := strings.IndexByte(rest, '{')
		end := strings.IndexByte(rest, '}')

		switch {
		case open < 0 && end < 0:
			literal(rest)
			return nil
		case end >= 0 && (open < 0 || end < open):
			return errors.NewTemplateSyntax("'}' encountered before matching '{'", template, cursor+end)
		case end < 0:
			return errors.NewTemplateSyntax("unclosed '{'", template, cursor+open)
		}

		raw := rest[open+1 : end]
		if nested := strings.IndexByte(raw, '{'); nested >= 0 {
			return errors.NewTemplateSyntax("'{' inside placeholder", template, cursor+open+1+nested)
		}

		literal(rest[:open])
		if err := placeholder(raw, cursor+open); err != nil {
			return err
		}
		cursor += end + 1
	}
	return nil
}

// annotate records where in template a token-level error occurred.
func annotate(err error, template string, offset int) error {
	tErr, ok := errors.As(err)
	if !ok {
		return err
	}
	if tErr.Details == nil {
		tErr.Details = map[string]any{}
	}
	tErr.Details["template"] = template
	tErr.Details["offset"] = offset
	return tErr
}

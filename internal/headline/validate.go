package headline

import (
	"fmt"

	"github.com/hpungsan/tabloid/internal/errors"
)

// Defect is one problem found while validating a template set.
type Defect struct {
	Template int              `json:"template"` // index into the set
	Text     string           `json:"text"`
	Offset   int              `json:"offset"`
	Token    string           `json:"token,omitempty"`
	Code     errors.ErrorCode `json:"code"`
	Message  string           `json:"message"`
}

// Validate checks every template against corpora without drawing any words
// and returns all defects found. Token-level defects do not stop the scan of
// a template; a brace defect ends it, since nothing after it can be trusted.
func Validate(templates []string, corpora Corpora) []Defect {
	var defects []Defect
	for i, tmpl := range templates {
		err := scan(tmpl, func(string) {}, func(raw string, offset int) error {
			if err := check(raw, corpora); err != nil {
				defects = append(defects, newDefect(i, tmpl, raw, offset, err))
			}
			return nil
		})
		if err != nil {
			offset := 0
			if tErr, ok := errors.As(err); ok {
				offset, _ = tErr.Details["offset"].(int)
			}
			defects = append(defects, newDefect(i, tmpl, "", offset, err))
		}
	}
	return defects
}

// ValidationError folds defects into one error, or returns nil when there
// are none. The code is TEMPLATE_SYNTAX_ERROR only if every defect is a
// brace defect.
func ValidationError(defects []Defect) error {
	if len(defects) == 0 {
		return nil
	}

	code := errors.ErrTemplateSyntax
	for _, d := range defects {
		if d.Code != errors.ErrTemplateSyntax {
			code = errors.ErrConfiguration
			break
		}
	}

	return &errors.TabloidError{
		Code:    code,
		Status:  422,
		Message: fmt.Sprintf("%d defect(s) in template set; first: template %d: %s", len(defects), defects[0].Template, defects[0].Message),
		Details: map[string]any{"defects": defects},
	}
}

func check(raw string, corpora Corpora) error {
	req, err := ParseToken(raw)
	if err != nil {
		return err
	}
	_, err = corpora.lookup(req.Category)
	return err
}

func newDefect(index int, template, token string, offset int, err error) Defect {
	d := Defect{
		Template: index,
		Text:     template,
		Offset:   offset,
		Token:    token,
		Code:     errors.ErrInternal,
		Message:  err.Error(),
	}
	if tErr, ok := errors.As(err); ok {
		d.Code = tErr.Code
		d.Message = tErr.Message
	}
	return d
}

package headline

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Case is the text-case transform applied to a drawn word.
type Case int

const (
	Pass       Case = iota // "toPiC" => "toPiC"
	Capitalise             // "toPiC" => "ToPiC"
	Upper                  // "toPiC" => "TOPIC"
	Lower                  // "toPiC" => "topic"
)

// caseCodes maps the code after ':' in a placeholder to its case.
var caseCodes = map[string]Case{
	"_": Pass,
	"p": Pass,
	"c": Capitalise,
	"u": Upper,
	"l": Lower,
}

var caseNames = []string{
	Pass:       "pass",
	Capitalise: "capitalise",
	Upper:      "upper",
	Lower:      "lower",
}

// caseShortCodes is the canonical code per case, indexed like caseNames.
var caseShortCodes = []string{
	Pass:       "p",
	Capitalise: "c",
	Upper:      "u",
	Lower:      "l",
}

func (c Case) String() string {
	if c >= 0 && int(c) < len(caseNames) {
		return caseNames[c]
	}
	return fmt.Sprintf("Case(%d)", int(c))
}

// Apply transforms s. It is total over any input, including "".
func (c Case) Apply(s string) string {
	switch c {
	case Capitalise:
		return capitalise(s)
	case Upper:
		return strings.ToUpper(s)
	case Lower:
		return strings.ToLower(s)
	}
	return s
}

// capitalise uppercases the first rune only. A leading rune with no upper
// form (digit, punctuation, invalid UTF-8) leaves s unchanged.
func capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	up := unicode.ToUpper(r)
	if up == r {
		return s
	}
	return string(up) + s[size:]
}

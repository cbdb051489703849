package headline

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// seqRandom returns the queued values in order (reduced mod n), then zeros.
type seqRandom struct {
	seq   []int
	pos   int
	calls int
}

func (s *seqRandom) IntN(n int) int {
	s.calls++
	v := 0
	if s.pos < len(s.seq) {
		v = s.seq[s.pos]
		s.pos++
	}
	return v % n
}

// testCorpora returns the original word lists trimmed for readable assertions.
func testCorpora() Corpora {
	return Corpora{
		Noun:        {"drugs", "kittens", "Dungeons & Dragons"},
		Flavour:     {"murder"},
		Verb:        {"huffing", "licking"},
		Demographic: {"children", "millenials"},
	}
}

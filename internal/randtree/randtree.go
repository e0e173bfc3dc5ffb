// Package randtree generates bounded random ALACS trees for round-trip and
// fuzz testing: a File whose nesting depth and per-container breadth are
// capped by caller-supplied bounds, biased by coin flips toward also
// attaching every optional annotation (hashbang, comment_intro/after,
// key comments, blank-line markers) so generated trees exercise the full
// annotation surface, not just the common case.
package randtree

import (
	"math/rand"

	"github.com/elioetibr/alacs/pkg/alacs"
)

// alphabet is tab plus printable ASCII 32..126: every byte generated keys,
// text, and comments are drawn from, guaranteed newline-free so NewKey can
// never fail on generated key text.
var alphabet = buildAlphabet()

func buildAlphabet() []byte {
	b := []byte{'\t'}
	for c := 32; c < 127; c++ {
		b = append(b, byte(c))
	}
	return b
}

// Generator produces random Files. Not safe for concurrent use; give each
// goroutine its own Generator over its own *rand.Rand.
type Generator struct {
	rng     *rand.Rand
	Deepest int
	Widest  int
}

// NewGenerator returns a Generator drawing randomness from rng, bounded to
// at most deepest levels of nesting and at most widest entries per
// container. Both must be at least 1.
func NewGenerator(rng *rand.Rand, deepest, widest int) *Generator {
	return &Generator{rng: rng, Deepest: deepest, Widest: widest}
}

func (g *Generator) coin() bool {
	return g.rng.Intn(2) == 1
}

func (g *Generator) randomBytes(maxLen int) []byte {
	n := g.rng.Intn(maxLen)
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[g.rng.Intn(len(alphabet))]
	}
	return out
}

func (g *Generator) comment(kind string) *alacs.Comment {
	c := alacs.NewComment(kind)
	for i, n := 0, g.rng.Intn(3); i < n; i++ {
		c.Lines = append(c.Lines, g.randomBytes(80))
	}
	if len(c.Lines) == 1 && len(c.Lines[0]) == 0 {
		c.Lines = c.Lines[:0]
	}
	return c
}

func (g *Generator) text() *alacs.Text {
	t := &alacs.Text{}
	for i, n := 0, g.rng.Intn(3); i < n; i++ {
		t.Lines = append(t.Lines, g.randomBytes(80))
	}
	if len(t.Lines) == 1 && len(t.Lines[0]) == 0 {
		t.Lines = t.Lines[:0]
	}
	return t
}

func (g *Generator) list(depth int) *alacs.List {
	l := &alacs.List{}
	if depth < g.rng.Intn(g.Deepest) {
		for i, n := 0, g.rng.Intn(g.Widest); i < n; i++ {
			l.Items = append(l.Items, g.value(depth))
		}
	}
	if len(l.Items) == 0 {
		l.Items = append(l.Items, alacs.NewText("value"))
	}
	if g.coin() {
		l.CommentAfter = g.comment("after")
	}
	if g.coin() {
		l.CommentIntro = g.comment("intro")
	}
	return l
}

// dictEntries populates an existing Dict (used for both a nested Dict value
// and a File's own root dict) with random entries, then a possible
// comment_intro. The caller adds comment_after, since File never has one.
func (g *Generator) dictEntries(d *alacs.Dict, depth int) {
	if depth < g.rng.Intn(g.Deepest) {
		for i, n := 0, g.rng.Intn(g.Widest); i < n; i++ {
			key, _ := alacs.NewKey(string(g.randomBytes(20)))
			if g.coin() {
				key.BlankLineBefore = true
			}
			if g.coin() {
				key.CommentBefore = g.comment("before")
			}
			d.Set(key, g.value(depth))
		}
	}
	if d.Len() == 0 {
		key, _ := alacs.NewKey("key")
		d.Set(key, alacs.NewText("value"))
	}
	if g.coin() {
		d.CommentIntro = g.comment("intro")
	}
}

func (g *Generator) dict(depth int) *alacs.Dict {
	d := alacs.NewDict()
	g.dictEntries(d, depth)
	if g.coin() {
		d.CommentAfter = g.comment("after")
	}
	return d
}

func (g *Generator) value(depth int) alacs.Value {
	switch g.rng.Intn(3) {
	case 0:
		return g.dict(depth + 1)
	case 1:
		return g.list(depth + 1)
	default:
		return g.text()
	}
}

// File returns a random File bounded by Deepest and Widest.
func (g *Generator) File() *alacs.File {
	file := alacs.NewFile()
	if g.coin() {
		file.Hashbang = g.comment("hashbang")
	}
	g.dictEntries(&file.Dict, 0)
	return file
}

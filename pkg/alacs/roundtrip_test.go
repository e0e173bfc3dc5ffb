package alacs

import (
	"math/rand"
	"testing"
)

// buildSampleTree returns a File exercising every annotation kind by hand,
// used where a test wants a fixed, inspectable tree rather than a random one.
func buildSampleTree() *File {
	file := NewFile()
	file.Hashbang = NewComment("/usr/bin/env alacs")

	a, _ := NewKey("a")
	file.Dict.Set(a, NewText("one", "two"))

	b, _ := NewKey("b")
	b.BlankLineBefore = true
	b.CommentBefore = NewComment("about b")
	list := &List{Items: []Value{NewText("x"), NewText("y")}}
	list.CommentIntro = NewComment("list intro")
	list.CommentAfter = NewComment("list after")
	file.Dict.Set(b, list)

	c, _ := NewKey("c")
	nested := NewDict()
	nestedKey, _ := NewKey("inner")
	nested.Set(nestedKey, NewText("deep"))
	nested.CommentIntro = NewComment("dict intro")
	nested.CommentAfter = NewComment("dict after")
	file.Dict.Set(c, nested)

	return file
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	e := NewEngine()
	file := buildSampleTree()

	encoded, err := e.Encode(file)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	buf := append([]byte(nil), encoded...)

	decoded, err := e.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !filesStructurallyEqual(file, decoded) {
		t.Fatalf("decode(encode(tree)) != tree\nencoded:\n%s", buf)
	}
}

func TestEncodeDecodeRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	e := NewEngine()

	for i := 0; i < 50; i++ {
		tree := randomTestTree(rng, 4, 5)

		encoded, err := e.Encode(tree)
		if err != nil {
			t.Fatalf("iteration %d: Encode: %v", i, err)
		}
		buf := append([]byte(nil), encoded...)

		decoded, err := e.Decode(buf)
		if err != nil {
			t.Fatalf("iteration %d: Decode:\n%s\nerror: %v", i, buf, err)
		}
		if !filesStructurallyEqual(tree, decoded) {
			t.Fatalf("iteration %d: decode(encode(tree)) != tree\nencoded:\n%s", i, buf)
		}
	}
}

// filesStructurallyEqual, valuesStructurallyEqual, and friends mirror
// cmd/alacs's tree comparator, duplicated here (rather than imported, since
// cmd/alacs is package main) to let this package's tests verify round
// trips on their own.
func filesStructurallyEqual(a, b *File) bool {
	return commentsStructurallyEqual(a.Hashbang, b.Hashbang) && dictsStructurallyEqual(&a.Dict, &b.Dict)
}

func valuesStructurallyEqual(a, b Value) bool {
	switch av := a.(type) {
	case *Text:
		bv, ok := b.(*Text)
		return ok && utf8StructurallyEqual(av.Lines, bv.Lines) && commentsStructurallyEqual(av.CommentAfter, bv.CommentAfter)
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		if !commentsStructurallyEqual(av.CommentIntro, bv.CommentIntro) || !commentsStructurallyEqual(av.CommentAfter, bv.CommentAfter) {
			return false
		}
		for i := range av.Items {
			if !valuesStructurallyEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv, ok := b.(*Dict)
		return ok && dictsStructurallyEqual(av, bv)
	}
	return false
}

func dictsStructurallyEqual(a, b *Dict) bool {
	if a.Len() != b.Len() {
		return false
	}
	if !commentsStructurallyEqual(a.CommentIntro, b.CommentIntro) || !commentsStructurallyEqual(a.CommentAfter, b.CommentAfter) {
		return false
	}
	ae, be := a.Entries(), b.Entries()
	for i := range ae {
		if ae[i].Key.Text != be[i].Key.Text || ae[i].Key.BlankLineBefore != be[i].Key.BlankLineBefore {
			return false
		}
		if !commentsStructurallyEqual(ae[i].Key.CommentBefore, be[i].Key.CommentBefore) {
			return false
		}
		if !valuesStructurallyEqual(ae[i].Value, be[i].Value) {
			return false
		}
	}
	return true
}

func commentsStructurallyEqual(a, b *Comment) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return utf8StructurallyEqual(a.Lines, b.Lines)
}

func utf8StructurallyEqual(a, b UTF8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}
	return true
}

// randomTestTree generates a bounded random File for round-trip testing,
// the same shape internal/randtree produces but inlined here to avoid this
// package importing its own consumer.
func randomTestTree(rng *rand.Rand, deepest, widest int) *File {
	g := &testGenerator{rng: rng, deepest: deepest, widest: widest}
	file := NewFile()
	if g.coin() {
		file.Hashbang = g.comment()
	}
	g.fillDict(&file.Dict, 0)
	return file
}

type testGenerator struct {
	rng            *rand.Rand
	deepest, widest int
}

func (g *testGenerator) coin() bool { return g.rng.Intn(2) == 1 }

func (g *testGenerator) text() *Text {
	n := g.rng.Intn(3)
	lines := make([]string, n)
	for i := range lines {
		lines[i] = g.word()
	}
	t := NewText(lines...)
	if len(t.Lines) == 1 && len(t.Lines[0]) == 0 {
		t.Lines = t.Lines[:0]
	}
	return t
}

func (g *testGenerator) comment() *Comment {
	n := g.rng.Intn(3)
	lines := make([]string, n)
	for i := range lines {
		lines[i] = g.word()
	}
	return NewComment(lines...)
}

func (g *testGenerator) word() string {
	const alphabet = "abcdefghij "
	n := g.rng.Intn(10)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[g.rng.Intn(len(alphabet))]
	}
	return string(b)
}

func (g *testGenerator) list(depth int) *List {
	l := &List{}
	if depth < g.rng.Intn(g.deepest) {
		for i, n := 0, g.rng.Intn(g.widest); i < n; i++ {
			l.Items = append(l.Items, g.value(depth))
		}
	}
	if len(l.Items) == 0 {
		l.Items = append(l.Items, NewText("v"))
	}
	if g.coin() {
		l.CommentAfter = g.comment()
	}
	if g.coin() {
		l.CommentIntro = g.comment()
	}
	return l
}

func (g *testGenerator) fillDict(d *Dict, depth int) {
	if depth < g.rng.Intn(g.deepest) {
		for i, n := 0, g.rng.Intn(g.widest); i < n; i++ {
			key, err := NewKey(g.word() + "k")
			if err != nil {
				continue
			}
			if g.coin() {
				key.BlankLineBefore = true
			}
			if g.coin() {
				key.CommentBefore = g.comment()
			}
			d.Set(key, g.value(depth))
		}
	}
	if d.Len() == 0 {
		key, _ := NewKey("k")
		d.Set(key, NewText("v"))
	}
	if g.coin() {
		d.CommentIntro = g.comment()
	}
}

func (g *testGenerator) dict(depth int) *Dict {
	d := NewDict()
	g.fillDict(d, depth)
	if g.coin() {
		d.CommentAfter = g.comment()
	}
	return d
}

func (g *testGenerator) value(depth int) Value {
	switch g.rng.Intn(3) {
	case 0:
		return g.dict(depth + 1)
	case 1:
		return g.list(depth + 1)
	default:
		return g.text()
	}
}

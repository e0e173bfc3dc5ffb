package alacs

import "strings"

// indentKey holds the "current key" a decoder or encoder is positioned at,
// for Indent.Path diagnostics: nil, an int list index, or a string dict key.
type indentKey struct {
	set    bool
	isList bool
	index  int
	text   string
}

// indent is a node in the doubly linked tab-depth chain described in
// spec.md §4.2. It is a diagnostics vehicle only — nothing in the tree
// model depends on it — used by the decoder and encoder to render the
// "current key path" in positioned error messages.
type indent struct {
	tabs int
	more *indent
	less *indent
	key  indentKey
}

// newIndentRoot returns the zero-depth indent node.
func newIndentRoot() *indent {
	return &indent{}
}

// More returns the one-deeper level, lazily allocating it on first use.
func (n *indent) More() *indent {
	if n.more == nil {
		n.more = &indent{tabs: n.tabs + 1, less: n}
		return n.more
	}
	n.more.key = indentKey{}
	return n.more
}

// Less returns the one-shallower level. It panics if called on the root —
// a bug guard: well-formed decoder/encoder recursion never goes negative.
func (n *indent) Less() *indent {
	if n.less == nil {
		panic("indent can't go negative")
	}
	return n.less
}

// Zero walks to the root, clears every cached key on the way back down
// through the chain built so far, and returns the root.
func (n *indent) Zero() *indent {
	root := n
	for root.tabs > 0 {
		root = root.less
	}
	for at := root; at != nil; at = at.more {
		at.key = indentKey{}
	}
	return root
}

func (n *indent) setListKey(index int) { n.key = indentKey{set: true, isList: true, index: index} }
func (n *indent) setDictKey(text string) { n.key = indentKey{set: true, text: text} }
func (n *indent) clearKey()             { n.key = indentKey{} }

// Path renders the chain as a JSON-Pointer-shaped path: "/k1/k2/3/k4", one
// "/"-prefixed segment per indent level that has a key. List indices render
// as their decimal form (matching pointer.py's Indent.path, which writes
// every key — string or int — as a plain "/" + value; only the root's
// absent key is skipped).
func (n *indent) Path() string {
	var b strings.Builder
	n.writePath(&b)
	return b.String()
}

func (n *indent) writePath(b *strings.Builder) {
	if n.less != nil {
		n.less.writePath(b)
	} else if !n.key.set {
		return
	}
	if !n.key.set {
		return
	}
	b.WriteByte('/')
	if n.key.isList {
		writeInt(b, n.key.index)
		return
	}
	b.WriteString(n.key.text)
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}

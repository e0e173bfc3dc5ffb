package alacs

// Value is the tagged sum of the three ALACS value kinds. It is implemented
// as a closed interface (a private marker method) rather than an inheritance
// hierarchy, so the encoder's and decoder's type switches stay exhaustive
// and any addition of a new kind is a compile error at every switch site.
type Value interface {
	isValue()
	after() *Comment
	setAfter(*Comment)
}

// CommentAfterOf returns v's comment_after annotation, or nil if v is nil or
// carries none. It exists so collaborators outside this package (the YAML
// emitter) can read comment_after without a type switch of their own.
func CommentAfterOf(v Value) *Comment {
	if v == nil {
		return nil
	}
	return v.after()
}

// Text is multi-line UTF-8 text, the only leaf kind in the tree.
type Text struct {
	Lines        UTF8
	CommentAfter *Comment
}

func (*Text) isValue()             {}
func (t *Text) after() *Comment     { return t.CommentAfter }
func (t *Text) setAfter(c *Comment) { t.CommentAfter = c }

// NewText builds a Text from string lines.
func NewText(lines ...string) *Text {
	t := &Text{Lines: make(UTF8, len(lines))}
	for i, line := range lines {
		t.Lines[i] = []byte(line)
	}
	return t
}

// List is an ordered sequence of Value.
type List struct {
	Items        []Value
	CommentIntro *Comment
	CommentAfter *Comment
}

func (*List) isValue()             {}
func (l *List) after() *Comment     { return l.CommentAfter }
func (l *List) setAfter(c *Comment) { l.CommentAfter = c }

// Dict is an insertion-ordered mapping from Key to Value.
type Dict struct {
	keys         []Key
	index        map[string]int
	values       []Value
	CommentIntro *Comment
	CommentAfter *Comment
}

func (*Dict) isValue()             {}
func (d *Dict) after() *Comment     { return d.CommentAfter }
func (d *Dict) setAfter(c *Comment) { d.CommentAfter = c }

// NewDict returns an empty Dict ready for use.
func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

// Len reports the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Has reports whether text names an existing key.
func (d *Dict) Has(text string) bool {
	if d.index == nil {
		return false
	}
	_, ok := d.index[text]
	return ok
}

// Get returns the value and key for text, and whether it was present.
func (d *Dict) Get(text string) (Value, Key, bool) {
	if d.index == nil {
		return nil, Key{}, false
	}
	i, ok := d.index[text]
	if !ok {
		return nil, Key{}, false
	}
	return d.values[i], d.keys[i], true
}

// Set installs key -> value. If key.Text already names an entry, that
// entry's value and annotations are overwritten in place, preserving its
// original insertion position; the caller is responsible for treating a
// collision as a decode-time duplicate-key error where that applies (see
// Engine.Decode).
func (d *Dict) Set(key Key, value Value) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[key.Text]; ok {
		d.keys[i] = key
		d.values[i] = value
		return
	}
	d.index[key.Text] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
}

// Keys returns the keys in insertion order. Callers must not retain the
// slice across a subsequent Set of a new key.
func (d *Dict) Keys() []Key {
	return d.keys
}

// Values returns the values in the same order as Keys.
func (d *Dict) Values() []Value {
	return d.values
}

// Entry pairs a Key with its Value, returned by Entries in insertion order.
type Entry struct {
	Key   Key
	Value Value
}

// Entries returns the dict's (key, value) pairs in insertion order.
func (d *Dict) Entries() []Entry {
	out := make([]Entry, len(d.keys))
	for i := range d.keys {
		out[i] = Entry{Key: d.keys[i], Value: d.values[i]}
	}
	return out
}

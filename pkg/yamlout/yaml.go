// Package yamlout linearizes an ALACS tree to a YAML document for
// interoperability with third-party YAML tooling. It is a secondary
// collaborator of pkg/alacs, not a general-purpose YAML library: every
// annotation the tree carries (hashbang, comment_intro/after, key comments,
// blank-line markers) is embedded as a role-tagged `#`-comment so a harness
// round-tripping the document through a real YAML parser can still recover
// which structural slot each comment came from. No attempt is made to
// produce aesthetically pleasing output.
package yamlout

import (
	"fmt"
	"strings"

	"github.com/elioetibr/alacs/pkg/alacs"
)

// Encoder holds the reusable scratch buffer and normalization list for
// repeated Encode calls. It is not safe for concurrent use.
type Encoder struct {
	buf     []byte
	scratch []alacs.Encoded
}

// NewEncoder returns a ready-to-use Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// keyTag is the YAML "key position" a value is being written at: the
// document root (no key line at all), a list item (a "- " marker), or a
// named dict entry (a quoted key).
type keyTag struct {
	isRoot bool
	isItem bool
	key    alacs.Key
}

func rootKeyTag() keyTag          { return keyTag{isRoot: true} }
func itemKeyTag() keyTag          { return keyTag{isItem: true} }
func namedKeyTag(k alacs.Key) keyTag { return keyTag{key: k} }

// Encode renders file as a YAML document shaped "--- !map\n<body>\n...\n".
// The returned slice is owned by e; copy it before the next Encode call if
// it must outlive that call.
func (e *Encoder) Encode(file *alacs.File) []byte {
	e.buf = e.buf[:0]
	e.buf = append(e.buf, "--- !map\n"...)
	e.writeComment(nil, "!", file.Hashbang)
	e.writeDict(nil, rootKeyTag(), &file.Dict)
	e.buf = append(e.buf, "...\n"...)
	return e.buf
}

// writeComment emits one role-tagged comment line per normalized line of c.
// The tag is "#" for the hashbang (prefix "!") and "#<len(indent)><prefix>"
// for every other role ("i:", "k:", "a:"), matching the depth markers a
// harness uses to re-attach the comment to its original slot.
func (e *Encoder) writeComment(indent []byte, prefix string, c *alacs.Comment) {
	if c == nil {
		return
	}
	c.Lines.Normalize(&e.scratch)
	marked := fmt.Sprintf("#%d", len(indent))
	if prefix == "!" {
		marked = "#"
	}
	for _, line := range c.Lines {
		e.buf = append(e.buf, indent...)
		e.buf = append(e.buf, marked...)
		e.buf = append(e.buf, prefix...)
		e.buf = append(e.buf, line...)
		e.buf = append(e.buf, '\n')
	}
}

// writeBlankMarker emits the "blank line before this key" role tag. It
// writes directly rather than going through writeComment with an empty
// Comment, since an empty comment's single line would normalize away to
// nothing — the marker must always be visible for the round-trip harness to
// recover the blank_line_before flag.
func (e *Encoder) writeBlankMarker(indent []byte) {
	e.buf = append(e.buf, indent...)
	e.buf = append(e.buf, fmt.Sprintf("#%db", len(indent))...)
	e.buf = append(e.buf, '\n')
}

// writeKeyLine emits one YAML mapping-key or sequence-item line: nothing but
// end for the document root, "- [end]" for a list item, or a quoted,
// escaped key followed by ": [end]" for a named dict entry.
func (e *Encoder) writeKeyLine(indent []byte, k keyTag, end string) {
	e.buf = append(e.buf, indent...)
	switch {
	case k.isRoot:
		e.buf = append(e.buf, end...)
	case k.isItem:
		e.buf = append(e.buf, '-')
		if end != "" {
			e.buf = append(e.buf, ' ')
			e.buf = append(e.buf, end...)
		}
	default:
		e.buf = append(e.buf, '"')
		e.buf = append(e.buf, escapeKey(k.key.Text)...)
		e.buf = append(e.buf, '"', ':')
		if end != "" {
			e.buf = append(e.buf, ' ')
			e.buf = append(e.buf, end...)
		}
	}
	e.buf = append(e.buf, '\n')
}

func escapeKey(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// writeValue dispatches on the tree's closed Value kinds, then emits the
// value's comment_after at the same indent the value's own key line used.
func (e *Encoder) writeValue(indent []byte, k keyTag, v alacs.Value) {
	switch val := v.(type) {
	case *alacs.Text:
		e.writeText(indent, k, val)
	case *alacs.List:
		e.writeList(indent, k, val)
	case *alacs.Dict:
		e.writeDict(indent, k, val)
	}
	e.writeComment(indent, "a:", alacs.CommentAfterOf(v))
}

// writeText always uses YAML's literal block style: "|2-" when the Text's
// last line is non-empty (the trailing newline is stripped on decode), or
// "|2+" when it is empty (a trailing blank line is kept), per the same rule
// the tree's own encoder and decoder agree on for round-tripping.
func (e *Encoder) writeText(indent []byte, k keyTag, t *alacs.Text) {
	t.Lines.Normalize(&e.scratch)
	lines := t.Lines
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		e.writeKeyLine(indent, k, "|2+")
		e.writeLiteralLines(indent, lines[:len(lines)-1])
		return
	}
	e.writeKeyLine(indent, k, "|2-")
	e.writeLiteralLines(indent, lines)
}

func (e *Encoder) writeLiteralLines(indent []byte, lines alacs.UTF8) {
	for _, line := range lines {
		e.buf = append(e.buf, indent...)
		e.buf = append(e.buf, "  "...)
		e.buf = append(e.buf, line...)
		e.buf = append(e.buf, '\n')
	}
}

func indentOneDeeper(indent []byte) []byte {
	out := make([]byte, len(indent)+1)
	copy(out, indent)
	out[len(indent)] = ' '
	return out
}

func (e *Encoder) writeList(indent []byte, k keyTag, l *alacs.List) {
	if len(l.Items) == 0 {
		e.writeKeyLine(indent, k, "[]")
		return
	}
	e.writeKeyLine(indent, k, "")
	indent = indentOneDeeper(indent)
	e.writeComment(indent, "i:", l.CommentIntro)
	for _, item := range l.Items {
		e.writeValue(indent, itemKeyTag(), item)
	}
}

func (e *Encoder) writeDict(indent []byte, k keyTag, d *alacs.Dict) {
	if d.Len() == 0 {
		e.writeKeyLine(indent, k, "{}")
		return
	}
	if !k.isRoot {
		e.writeKeyLine(indent, k, "")
		indent = indentOneDeeper(indent)
	}
	e.writeComment(indent, "i:", d.CommentIntro)
	for _, entry := range d.Entries() {
		if entry.Key.BlankLineBefore {
			e.writeBlankMarker(indent)
		}
		e.writeComment(indent, "k:", entry.Key.CommentBefore)
		e.writeValue(indent, namedKeyTag(entry.Key), entry.Value)
	}
}

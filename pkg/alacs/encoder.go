package alacs

import "strings"

// forbiddenDictKeyFirst lists the bytes that force a dict entry into block
// form when they open the key.
const forbiddenDictKeyFirst = "\t#<>[]{}/"

// forbiddenListTextFirst lists the bytes that force a list Text item into
// block form when they open its single line.
const forbiddenListTextFirst = "\t#<>[]{}/="

func dictShortFormOK(key string, lines UTF8) bool {
	if len(lines) > 1 {
		return false
	}
	if key == "" {
		return true
	}
	if strings.IndexByte(forbiddenDictKeyFirst, key[0]) >= 0 {
		return false
	}
	return !strings.ContainsRune(key, '=')
}

func listTextShortFormOK(lines UTF8) bool {
	if len(lines) == 0 {
		return true
	}
	if len(lines) > 1 {
		return false
	}
	line := lines[0]
	if len(line) == 0 {
		return true
	}
	return strings.IndexByte(forbiddenListTextFirst, line[0]) < 0
}

// resetEncode clears error/indent/output scratch state for a fresh Encode.
func (e *Engine) resetEncode() {
	e.errors = e.errors[:0]
	e.indent = newIndentRoot()
	e.out = e.out[:0]
	e.outLines = 0
}

// writeIndentLine starts a new output line: a '\n' before every line but the
// first, then the current indent's tab prefix.
func (e *Engine) writeIndentLine() {
	if e.outLines > 0 {
		e.out = append(e.out, '\n')
	}
	e.outLines++
	for i := 0; i < e.indent.tabs; i++ {
		e.out = append(e.out, '\t')
	}
}

func (e *Engine) writeRaw(b []byte) {
	e.out = append(e.out, b...)
}

// writeComment emits marker (one of "#!", "#", "//") followed by the
// comment's first line on the marker's own line, then every further line
// descended one indent deeper with no marker. The comment is normalized in
// place first, as Text values are.
func (e *Engine) writeComment(marker string, c *Comment) {
	c.normalize(&e.scratch)
	e.writeIndentLine()
	e.writeRaw([]byte(marker))
	if len(c.Lines) == 0 {
		return
	}
	e.writeRaw(c.Lines[0])
	if len(c.Lines) == 1 {
		return
	}
	parent := e.indent
	e.indent = parent.More()
	for _, line := range c.Lines[1:] {
		e.writeIndentLine()
		e.writeRaw(line)
	}
	e.indent = parent
}

func (e *Engine) writeTrailingComment(c *Comment) {
	if c != nil {
		e.writeComment("#", c)
	}
}

// writeTextBody emits a <...> block body: one indented line per Text line.
func (e *Engine) writeTextBody(lines UTF8) {
	if len(lines) == 0 {
		return
	}
	parent := e.indent
	e.indent = parent.More()
	for _, line := range lines {
		e.writeIndentLine()
		e.writeRaw(line)
	}
	e.indent = parent
}

// encodeDictBody emits a {...} dict body one level deeper than the
// caller's current indent: optional comment_intro, then every entry.
func (e *Engine) encodeDictBody(d *Dict) {
	parent := e.indent
	e.indent = parent.More()
	e.encodeDictEntries(d)
	e.indent = parent
}

// encodeDictEntries emits a dict's comment_intro and entries at the current
// indent, without descending — used directly by encodeDictBody and by
// Encode for the file-level root, which starts at indent 0.
func (e *Engine) encodeDictEntries(d *Dict) {
	if d.CommentIntro != nil {
		e.writeComment("#", d.CommentIntro)
	}
	for _, entry := range d.Entries() {
		e.indent.setDictKey(entry.Key.Text)
		e.encodeDictEntry(entry.Key, entry.Value)
		e.indent.clearKey()
	}
}

// encodeListBody emits a [...] list body one level deeper.
func (e *Engine) encodeListBody(l *List) {
	parent := e.indent
	e.indent = parent.More()
	if l.CommentIntro != nil {
		e.writeComment("#", l.CommentIntro)
	}
	for i, item := range l.Items {
		e.indent.setListKey(i)
		e.encodeListItem(item)
		e.indent.clearKey()
	}
	e.indent = parent
}

// encodeDictEntry emits one key/value pair: blank_line_before, comment_before,
// the KEY=VALUE/<KEY>/[KEY]/{KEY} opener, its body, then comment_after.
func (e *Engine) encodeDictEntry(key Key, value Value) {
	if key.BlankLineBefore {
		e.writeIndentLine()
	}
	if key.CommentBefore != nil {
		e.writeComment("//", key.CommentBefore)
	}

	switch val := value.(type) {
	case nil:
		e.addErrorf(0, "missing value for key %q", key.Text)

	case *Text:
		val.Lines.Normalize(&e.scratch)
		e.writeIndentLine()
		if dictShortFormOK(key.Text, val.Lines) {
			e.writeRaw([]byte(key.Text))
			e.writeRaw([]byte{'='})
			if len(val.Lines) == 1 {
				e.writeRaw(val.Lines[0])
			}
		} else {
			e.writeRaw([]byte{'<'})
			e.writeRaw([]byte(key.Text))
			e.writeRaw([]byte{'>'})
			e.writeTextBody(val.Lines)
		}
		e.writeTrailingComment(val.CommentAfter)

	case *List:
		e.writeIndentLine()
		e.writeRaw([]byte{'['})
		e.writeRaw([]byte(key.Text))
		e.writeRaw([]byte{']'})
		e.encodeListBody(val)
		e.writeTrailingComment(val.CommentAfter)

	case *Dict:
		e.writeIndentLine()
		e.writeRaw([]byte{'{'})
		e.writeRaw([]byte(key.Text))
		e.writeRaw([]byte{'}'})
		e.encodeDictBody(val)
		e.writeTrailingComment(val.CommentAfter)

	default:
		e.addErrorf(0, "value of unrecognized kind for key %q", key.Text)
	}
}

// encodeListItem emits one list item.
func (e *Engine) encodeListItem(item Value) {
	switch val := item.(type) {
	case nil:
		e.addError(0, "missing value in list")

	case *Text:
		val.Lines.Normalize(&e.scratch)
		if listTextShortFormOK(val.Lines) {
			e.writeIndentLine()
			if len(val.Lines) == 1 {
				e.writeRaw(val.Lines[0])
			}
		} else {
			e.writeIndentLine()
			e.writeRaw([]byte("<>"))
			e.writeTextBody(val.Lines)
		}
		e.writeTrailingComment(val.CommentAfter)

	case *List:
		e.writeIndentLine()
		e.writeRaw([]byte("[]"))
		e.encodeListBody(val)
		e.writeTrailingComment(val.CommentAfter)

	case *Dict:
		e.writeIndentLine()
		e.writeRaw([]byte("{}"))
		e.encodeDictBody(val)
		e.writeTrailingComment(val.CommentAfter)

	default:
		e.addError(0, "value of unrecognized kind in list")
	}
}

// Encode emits file's canonical byte stream: hashbang (if any), the file's
// own comment_intro, then its entries. The returned slice aliases the
// Engine's internal buffer; a caller that needs it to outlive the next
// Encode/Decode call must copy it.
func (e *Engine) Encode(file *File) ([]byte, error) {
	e.resetEncode()
	if file.Hashbang != nil {
		e.writeComment("#!", file.Hashbang)
	}
	e.encodeDictEntries(&file.Dict)

	if e.hasErrors() {
		return nil, e.raise("illegal non-`Value` data")
	}
	return e.out, nil
}

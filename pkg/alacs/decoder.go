package alacs

import "bytes"

// resetDecode primes the line reader over data and clears error/indent
// scratch state for a fresh Decode call.
func (e *Engine) resetDecode(data []byte) {
	e.errors = e.errors[:0]
	e.indent = newIndentRoot()
	e.input = data
	e.pos = 0
	e.lineNo = 0
	e.hasLine = false
	e.tabs = 0
	e.line = nil
	e.assign = -1
	e.readLine()
}

// readLine advances the cursor past the next '\n', refreshing the current
// line's tabs/content/assign fields, and reports whether a line remains. At
// EOF it latches hasLine=false so repeated calls are safe.
func (e *Engine) readLine() bool {
	if e.pos >= len(e.input) {
		e.hasLine = false
		e.tabs = 0
		e.line = nil
		e.assign = -1
		return false
	}
	var raw []byte
	if nl := bytes.IndexByte(e.input[e.pos:], '\n'); nl < 0 {
		raw = e.input[e.pos:]
		e.pos = len(e.input)
	} else {
		raw = e.input[e.pos : e.pos+nl]
		e.pos += nl + 1
	}
	e.lineNo++

	tabs := 0
	for tabs < len(raw) && raw[tabs] == '\t' {
		tabs++
	}
	e.tabs = tabs
	e.line = raw[tabs:]
	e.assign = bytes.IndexByte(e.line, '=')
	e.hasLine = true
	return true
}

// contentStrippedTo returns the current line's content as if exactly depth
// leading tabs had been stripped (rather than all of them, which readLine
// already did): any tabs beyond depth are re-prefixed as literal bytes. Used
// by multi-line text and comment continuations, whose contract is "strip
// exactly I+1 tabs", not "strip every leading tab".
func (e *Engine) contentStrippedTo(depth int) []byte {
	extra := e.tabs - depth
	if extra <= 0 {
		return e.line
	}
	out := make([]byte, extra+len(e.line))
	for i := 0; i < extra; i++ {
		out[i] = '\t'
	}
	copy(out[extra:], e.line)
	return out
}

// readExcess skips lines indented deeper than level, recording a single
// error anchored to the first such line.
func (e *Engine) readExcess(level int) {
	if !e.hasLine || e.tabs <= level {
		return
	}
	firstLine := e.lineNo
	count := 0
	for e.hasLine && e.tabs > level {
		count++
		e.readLine()
	}
	if count == 1 {
		e.addError(firstLine, "excess indentation")
	} else {
		e.addErrorf(firstLine, "%d lines excess indentation", count)
	}
}

// parseMarkedComment builds a Comment from the current line (assumed to
// already carry the caller's marker of markerLen bytes at tabs==level) plus
// every contiguous following line indented deeper than level, each with
// exactly level+1 tabs stripped.
func (e *Engine) parseMarkedComment(level int, markerLen int) *Comment {
	startLine := e.lineNo
	lines := UTF8{e.line[markerLen:]}
	e.readLine()
	for e.hasLine && e.tabs > level {
		lines = append(lines, e.contentStrippedTo(level+1))
		e.readLine()
	}
	c := &Comment{Lines: lines, StartingLine: startLine}
	c.normalize(&e.scratch)
	return c
}

// parseTextBlock reads the continuation of a <KEY>/<> opener: every
// contiguous following line indented deeper than level, each with exactly
// level+1 tabs stripped.
func (e *Engine) parseTextBlock(level int) *Text {
	e.readLine() // past the opener line itself
	var lines UTF8
	for e.hasLine && e.tabs > level {
		lines = append(lines, e.contentStrippedTo(level+1))
		e.readLine()
	}
	if lines == nil {
		lines = UTF8{}
	}
	t := &Text{Lines: lines}
	t.Lines.Normalize(&e.scratch)
	return t
}

// parseBracket extracts the key between line's open byte and the last close
// byte on line (line[0] is assumed already == open), so a key that itself
// contains close survives. ok is false when close is missing, the signal for
// a malformed opener.
func parseBracket(line []byte, open, close byte) (key []byte, ok bool) {
	idx := bytes.LastIndexByte(line, close)
	if idx < 1 {
		return nil, false
	}
	return line[1:idx], true
}

// attachTrailingComment consumes a '#' line immediately following a value
// at the value's own indent, installing it as that value's comment_after.
func (e *Engine) attachTrailingComment(level int, value Value) {
	if e.hasLine && e.tabs == level && len(e.line) > 0 && e.line[0] == '#' {
		value.setAfter(e.parseMarkedComment(level, 1))
	}
}

// parseDictValue parses a {KEY} block value's body one level deeper.
func (e *Engine) parseDictValue(level int) *Dict {
	e.readLine() // past the opener line
	parent := e.indent
	e.indent = parent.More()
	d := NewDict()
	e.parseDictInto(level+1, d, true)
	e.indent = parent
	return d
}

// parseListValue parses a [KEY] block value's body one level deeper.
func (e *Engine) parseListValue(level int) *List {
	e.readLine() // past the opener line
	parent := e.indent
	e.indent = parent.More()
	l := &List{}
	e.parseListInto(level+1, l)
	e.indent = parent
	return l
}

// parseDictInto parses a dict body at level into into, per the state
// machine in the decoder's grammar: blank-line and key-comment pending
// slots, entry dispatch, duplicate-key detection, and comment attachment.
func (e *Engine) parseDictInto(level int, into *Dict, allowIntro bool) {
	e.readExcess(level)
	if allowIntro && e.hasLine && e.tabs == level && len(e.line) > 0 && e.line[0] == '#' {
		into.CommentIntro = e.parseMarkedComment(level, 1)
		e.readExcess(level)
	}

	var pendingBlank bool
	var pendingComment *Comment

	for e.hasLine && e.tabs == level {
		line := e.line
		ln := e.lineNo

		switch {
		case len(line) == 0:
			if pendingBlank {
				e.addError(ln, "more than one blank line")
			} else if pendingComment != nil {
				e.addError(ln, "blank line must precede key comment")
			} else {
				pendingBlank = true
			}
			e.readLine()

		case line[0] == '#':
			// Any legitimate comment_intro/comment_after at this position was
			// already consumed elsewhere; a bare '#' reaching the top of the
			// loop has nothing left to attach to.
			e.parseMarkedComment(level, 1)
			e.addError(ln, "illegal position for comment")

		case line[0] == '/' && len(line) >= 2 && line[1] == '/':
			c := e.parseMarkedComment(level, 2)
			if pendingComment != nil {
				e.addError(ln, "more than one key comment")
			} else {
				pendingComment = c
			}

		case line[0] == '/':
			e.addError(ln, "malformed key comment")
			e.readLine()

		default:
			e.parseDictEntry(level, into, ln, &pendingBlank, &pendingComment)
		}

		e.readExcess(level)
	}

	if pendingBlank || pendingComment != nil {
		e.addError(e.lineNo, "unclaimed key comment or blank line")
	}
}

// parseDictEntry dispatches the non-comment, non-blank forms a dict entry
// line can take: <KEY>, [KEY], {KEY}, or the KEY=VALUE short form.
func (e *Engine) parseDictEntry(level int, into *Dict, ln int, pendingBlank *bool, pendingComment **Comment) {
	line := e.line
	var keyText string
	var value Value

	switch line[0] {
	case '<':
		k, ok := parseBracket(line, '<', '>')
		if !ok {
			e.addError(ln, "malformed text opening")
			e.readLine()
			return
		}
		keyText = string(k)
		e.indent.setDictKey(keyText)
		value = e.parseTextBlock(level)

	case '[':
		k, ok := parseBracket(line, '[', ']')
		if !ok {
			e.addError(ln, "malformed linear array opening")
			e.readLine()
			return
		}
		keyText = string(k)
		e.indent.setDictKey(keyText)
		value = e.parseListValue(level)

	case '{':
		k, ok := parseBracket(line, '{', '}')
		if !ok {
			e.addError(ln, "malformed associative array opening")
			e.readLine()
			return
		}
		keyText = string(k)
		e.indent.setDictKey(keyText)
		value = e.parseDictValue(level)

	default:
		if e.assign < 0 {
			e.addError(ln, "malformed `key=value` association")
			e.readLine()
			return
		}
		keyText = string(line[:e.assign])
		e.indent.setDictKey(keyText)
		t := &Text{Lines: UTF8{line[e.assign+1:]}}
		t.Lines.Normalize(&e.scratch)
		value = t
		e.readLine()
	}

	e.attachTrailingComment(level, value)

	key := Key{Text: keyText} // decoded keys can't contain '\n': they come from
	// a single line, bounded by brackets or a '=', never crossing a newline.
	key.BlankLineBefore = *pendingBlank
	key.CommentBefore = *pendingComment
	*pendingBlank = false
	*pendingComment = nil

	if into.Has(keyText) {
		e.addErrorf(ln, "duplicate key: %s", keyText)
	}
	into.Set(key, value)

	e.indent.clearKey()
}

// parseListInto parses a list body at level into into.
func (e *Engine) parseListInto(level int, into *List) {
	e.readExcess(level)
	if e.hasLine && e.tabs == level && len(e.line) > 0 && e.line[0] == '#' {
		into.CommentIntro = e.parseMarkedComment(level, 1)
		e.readExcess(level)
	}

	for e.hasLine && e.tabs == level {
		line := e.line
		ln := e.lineNo

		switch {
		case len(line) == 0:
			e.indent.setListKey(len(into.Items))
			t := &Text{}
			e.readLine()
			e.attachTrailingComment(level, t)
			into.Items = append(into.Items, t)
			e.indent.clearKey()

		case line[0] == '#':
			if n := len(into.Items); n == 0 || into.Items[n-1].after() != nil {
				e.addError(ln, "unattached comment")
				e.parseMarkedComment(level, 1)
			} else {
				into.Items[n-1].setAfter(e.parseMarkedComment(level, 1))
			}

		case line[0] == '/':
			e.addError(ln, "key comment in list context")
			markerLen := 1
			if len(line) >= 2 && line[1] == '/' {
				markerLen = 2
			}
			e.parseMarkedComment(level, markerLen)

		case line[0] == '<':
			e.parseListBracketEntry(level, into, '<', '>', "malformed text opening",
				func() Value { return e.parseTextBlock(level) })

		case line[0] == '[':
			e.parseListBracketEntry(level, into, '[', ']', "malformed linear array opening",
				func() Value { return e.parseListValue(level) })

		case line[0] == '{':
			e.parseListBracketEntry(level, into, '{', '}', "malformed associative array opening",
				func() Value { return e.parseDictValue(level) })

		default:
			e.indent.setListKey(len(into.Items))
			t := &Text{Lines: UTF8{line}}
			t.Lines.Normalize(&e.scratch)
			e.readLine()
			e.attachTrailingComment(level, t)
			into.Items = append(into.Items, t)
			e.indent.clearKey()
		}

		e.readExcess(level)
	}
}

// parseListBracketEntry handles a <>, [], or {} list item opener: validates
// the bracket is closed, builds the nested value, and attaches it.
func (e *Engine) parseListBracketEntry(level int, into *List, open, close byte, errMsg string, build func() Value) {
	ln := e.lineNo
	if _, ok := parseBracket(e.line, open, close); !ok {
		e.addError(ln, errMsg)
		e.readLine()
		return
	}
	e.indent.setListKey(len(into.Items))
	v := build()
	e.attachTrailingComment(level, v)
	into.Items = append(into.Items, v)
	e.indent.clearKey()
}

// Decode lifts a byte stream into a File, accumulating positioned errors and
// raising an *AggregateError headlined "parse errors" if any were recorded.
func (e *Engine) Decode(data []byte) (*File, error) {
	e.resetDecode(data)
	file := NewFile()

	if e.hasLine && e.tabs == 0 && bytes.HasPrefix(e.line, []byte("#!")) {
		file.Hashbang = e.parseMarkedComment(0, 2)
	}

	e.parseDictInto(0, &file.Dict, true)

	if e.hasErrors() {
		return nil, e.raise("parse errors")
	}
	return file, nil
}

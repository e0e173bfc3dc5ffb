// Package alacs implements the ALACS tab-indented textual data format: a
// round-tripping tree model, decoder, encoder, and plain-data bridge.
package alacs

import "bytes"

// UTF8 is an ordered sequence of byte runs. It is the shared storage for
// Text and Comment: the concatenation of its entries with "\n" separators
// recovers the logical text.
//
// After Normalize, every entry is newline-free, and the empty value is
// represented as a zero-length slice (never a single empty entry).
type UTF8 []Encoded

// Encoded is a raw byte run. Decoding shares the caller's input buffer by
// reference; callers that need the tree to outlive that buffer must copy it
// themselves before mutating or discarding the source bytes.
type Encoded = []byte

// String renders the sequence as its logical, newline-joined text.
func (u UTF8) String() string {
	return string(bytes.Join(u, []byte{'\n'}))
}

// Normalize rewrites u in place so every entry is newline-free and a
// sequence of exactly one empty entry collapses to a zero-length sequence.
// It is idempotent.
//
// scratch, when non-nil, is reused as splice storage across repeated calls
// (an Engine keeps one for its lifetime); when a split happens, the result is
// still copied into a freshly allocated slice.
func (u *UTF8) Normalize(scratch *[]Encoded) {
	lines := *u
	if len(lines) == 1 && len(lines[0]) == 0 {
		*u = lines[:0]
		return
	}

	needsSplit := false
	for _, chunk := range lines {
		if bytes.IndexByte(chunk, '\n') >= 0 {
			needsSplit = true
			break
		}
	}
	if !needsSplit {
		return
	}

	var out []Encoded
	if scratch != nil {
		out = (*scratch)[:0]
	}
	for _, chunk := range lines {
		for {
			at := bytes.IndexByte(chunk, '\n')
			if at < 0 {
				out = append(out, chunk)
				break
			}
			out = append(out, chunk[:at])
			chunk = chunk[at+1:]
		}
	}

	result := make([]Encoded, len(out))
	copy(result, out)
	if scratch != nil {
		*scratch = out
	}
	*u = result
}

// IsEmpty reports whether u is the normalized empty sequence.
func (u UTF8) IsEmpty() bool {
	return len(u) == 0
}

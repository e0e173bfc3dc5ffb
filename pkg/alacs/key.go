package alacs

import (
	"errors"
	"strings"
)

// Key is a dict key carrying side-channel annotations. Equality and use as
// a map key is by Text alone; BlankLineBefore and CommentBefore are metadata
// that survive round-trips but never participate in key comparison.
type Key struct {
	Text             string
	BlankLineBefore  bool
	CommentBefore    *Comment
}

// NewKey builds a Key, rejecting a newline in the key text the way the
// reference implementation's Key constructor does.
func NewKey(text string) (Key, error) {
	if strings.ContainsRune(text, '\n') {
		return Key{}, errors.New("newline in key")
	}
	return Key{Text: text}, nil
}

package main

import "github.com/elioetibr/alacs/pkg/alacs"

// treesEqual reports whether a and b are structurally identical, including
// every annotation (comment_intro/after, key comments, blank-line flags,
// hashbang), ignoring each Comment's informational StartingLine. It is the
// decode(encode(T)) == T check the CLI's self-check loop runs every
// iteration.
func treesEqual(a, b *alacs.File) bool {
	return commentsEqual(a.Hashbang, b.Hashbang) && dictsEqual(&a.Dict, &b.Dict)
}

func valuesEqual(a, b alacs.Value) bool {
	switch av := a.(type) {
	case *alacs.Text:
		bv, ok := b.(*alacs.Text)
		return ok && utf8Equal(av.Lines, bv.Lines) && commentsEqual(av.CommentAfter, bv.CommentAfter)

	case *alacs.List:
		bv, ok := b.(*alacs.List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		if !commentsEqual(av.CommentIntro, bv.CommentIntro) || !commentsEqual(av.CommentAfter, bv.CommentAfter) {
			return false
		}
		for i := range av.Items {
			if !valuesEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true

	case *alacs.Dict:
		bv, ok := b.(*alacs.Dict)
		return ok && dictsEqual(av, bv)
	}
	return false
}

func dictsEqual(a, b *alacs.Dict) bool {
	if a.Len() != b.Len() {
		return false
	}
	if !commentsEqual(a.CommentIntro, b.CommentIntro) || !commentsEqual(a.CommentAfter, b.CommentAfter) {
		return false
	}
	ae, be := a.Entries(), b.Entries()
	for i := range ae {
		if ae[i].Key.Text != be[i].Key.Text {
			return false
		}
		if ae[i].Key.BlankLineBefore != be[i].Key.BlankLineBefore {
			return false
		}
		if !commentsEqual(ae[i].Key.CommentBefore, be[i].Key.CommentBefore) {
			return false
		}
		if !valuesEqual(ae[i].Value, be[i].Value) {
			return false
		}
	}
	return true
}

func commentsEqual(a, b *alacs.Comment) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return utf8Equal(a.Lines, b.Lines)
}

func utf8Equal(a, b alacs.UTF8) bool {
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

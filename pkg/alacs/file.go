package alacs

// File is the root of an ALACS document: a top-level Dict that additionally
// carries an optional hashbang comment. A File has CommentIntro like any
// Dict, but never a trailing CommentAfter at file scope — a comment after
// the last value attaches to that value instead.
type File struct {
	Dict
	Hashbang *Comment
}

// NewFile returns an empty File ready for use.
func NewFile() *File {
	return &File{Dict: *NewDict()}
}

package alacs

// Engine owns all mutable scratch state for one round of work: the
// accumulated error list, the indent stack used for diagnostics, the
// decoder's input cursor, and the encoder's output buffer and line
// counter. Every public method resets the state it needs at entry, so a
// single Engine can be reused across many calls, but never concurrently —
// there are no suspension points and no shareable state between goroutines.
// Callers that need concurrent work create one Engine per goroutine.
type Engine struct {
	errors []positioned
	indent *indent

	// decoder state
	input   []byte
	pos     int
	lineNo  int
	hasLine bool
	tabs    int
	line    []byte
	assign  int

	// shared normalization scratch, reused across Normalize calls.
	scratch []Encoded

	// encoder state
	out      []byte
	outLines int
}

// NewEngine returns a ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{indent: newIndentRoot()}
}

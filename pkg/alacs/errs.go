package alacs

import (
	"fmt"
	"strings"
)

// positioned is one entry in an Engine's accumulated error list: a 1-based
// line number (0 when no line applies), the "/"-separated indent path active when
// the problem was found, and a human-readable cause.
type positioned struct {
	line    int
	path    string
	message string
}

func (p positioned) String() string {
	return fmt.Sprintf("#%d: %s @%s", p.line, p.message, p.path)
}

// AggregateError is raised by a public Engine operation when its error list
// is non-empty on completion. Headline identifies the phase ("parse
// errors", "illegal non-`Value` data", ...); Items holds one formatted line
// per accumulated problem, in the order they were recorded.
type AggregateError struct {
	Headline string
	Items     []string
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	b.WriteString(e.Headline)
	b.WriteByte(':')
	for _, item := range e.Items {
		b.WriteString("\n\t")
		b.WriteString(item)
	}
	return b.String()
}

// addError appends a positioned entry to the engine's scratch error list.
func (e *Engine) addError(line int, message string) {
	e.errors = append(e.errors, positioned{line: line, path: e.indent.Path(), message: message})
}

func (e *Engine) addErrorf(line int, format string, args ...any) {
	e.addError(line, fmt.Sprintf(format, args...))
}

// hasErrors reports whether any error has been recorded since the scratch
// state was last reset.
func (e *Engine) hasErrors() bool {
	return len(e.errors) > 0
}

// raise turns a non-empty error list into an *AggregateError. Callers must
// check hasErrors first; raise panics if the list is empty (a bug guard —
// every call site is reached only after hasErrors returned true).
func (e *Engine) raise(headline string) error {
	if len(e.errors) == 0 {
		panic("impossible: raise called with no recorded errors")
	}
	items := make([]string, len(e.errors))
	for i, p := range e.errors {
		items[i] = p.String()
	}
	return &AggregateError{Headline: headline, Items: items}
}

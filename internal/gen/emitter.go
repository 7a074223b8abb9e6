package gen

import (
	"fmt"
	"io"
	"strings"
)

// Generated code is indented with four spaces per level.
const indentUnit = "    "

// emitter wraps an io.Writer with helpers for emitting indented Go text.
type emitter struct {
	w      io.Writer
	err    error // first write error
	indent int
}

// line writes a formatted line at the current indentation.
func (e *emitter) line(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	_, e.err = fmt.Fprintf(e.w, "%s%s\n", strings.Repeat(indentUnit, e.indent), text)
}

// raw writes a line verbatim, with no indentation applied.
func (e *emitter) raw(text string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, text)
}

// blank writes a blank line.
func (e *emitter) blank() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// in increases indentation.
func (e *emitter) in() {
	e.indent++
}

// out decreases indentation.
func (e *emitter) out() {
	if e.indent > 0 {
		e.indent--
	}
}

package syntax

import "strconv"

// Pos locates a token in an input file. Line and column are 1-based
// byte counts; the zero value reads as an unknown position.
type Pos struct {
	filename string
	line     uint32
	col      uint32
}

func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

func (p Pos) Filename() string { return p.filename }
func (p Pos) Line() uint32     { return p.line }
func (p Pos) Col() uint32      { return p.col }

// String renders the position the way Go compiler diagnostics do,
// filename:line:col, with the filename omitted when unknown.
func (p Pos) String() string {
	s := strconv.FormatUint(uint64(p.line), 10) + ":" + strconv.FormatUint(uint64(p.col), 10)
	if p.filename == "" {
		return s
	}
	return p.filename + ":" + s
}

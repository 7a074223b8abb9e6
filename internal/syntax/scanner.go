package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on Go-Extended source code.
//
// Unlike the base language, Go-Extended is newline-insensitive: the scanner
// skips newlines like any other whitespace and never inserts semicolons.
// Semicolon tokens appear only where the source spells them out (for headers).
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok     Token   // token type
	lit     string  // token literal (identifier name, number, string content)
	kind    LitKind // literal kind (only valid when tok == _Literal)
	tokPos  Pos     // token start position
	tokOffs int     // token start byte offset

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{
		source: *newSource(filename, src, errh),
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()

	s.tokPos = s.pos()
	s.tokOffs = s.chOffs

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			// a comment was skipped, rescan
			goto redo
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Offset returns the byte offset of the current token's first character.
func (s *Scanner) Offset() int {
	return s.tokOffs
}

// skipWhitespace skips space, tab, carriage return, and newline.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier, keyword, or bool literal.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()

	// true and false are literals, everything else goes through the keyword table.
	if s.lit == "true" || s.lit == "false" {
		s.tok = _Literal
		s.kind = BoolLit
		return
	}
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a number literal (integer or float).
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.kind = IntLit

	if s.ch == '0' {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		switch lower(s.ch) {
		case 'x':
			s.litBuf.WriteRune(s.ch)
			s.nextch()
			s.scanHexDigits()
		case 'o':
			s.litBuf.WriteRune(s.ch)
			s.nextch()
			s.scanOctalDigits()
		case 'b':
			s.litBuf.WriteRune(s.ch)
			s.nextch()
			s.scanBinaryDigits()
		default:
			if isDigit(s.ch) {
				s.scanDecimalDigits()
			}
			if s.ch == '.' || lower(s.ch) == 'e' {
				s.scanFraction()
			}
		}
	} else {
		s.scanDecimalDigits()
		if s.ch == '.' || lower(s.ch) == 'e' {
			s.scanFraction()
		}
	}

	s.lit = s.litBuf.String()
	s.tok = _Literal
}

// scanDecimalDigits scans decimal digits.
func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanHexDigits scans hexadecimal digits.
func (s *Scanner) scanHexDigits() {
	if !isHexDigit(s.ch) {
		s.error("invalid hex digit")
		return
	}
	for isHexDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanOctalDigits scans octal digits.
func (s *Scanner) scanOctalDigits() {
	if !isOctalDigit(s.ch) {
		s.error("invalid octal digit")
		return
	}
	for isOctalDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanBinaryDigits scans binary digits.
func (s *Scanner) scanBinaryDigits() {
	if !isBinaryDigit(s.ch) {
		s.error("invalid binary digit")
		return
	}
	for isBinaryDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
	if isDigit(s.ch) {
		s.error("invalid binary digit")
	}
}

// scanFraction scans the fractional part of a float (. and/or exponent).
func (s *Scanner) scanFraction() {
	if s.ch == '.' {
		s.kind = FloatLit
		s.continueLit()
		s.nextch()
		s.scanDecimalDigits()
	}

	if lower(s.ch) == 'e' {
		s.kind = FloatLit
		s.continueLit()
		s.nextch()

		if s.ch == '+' || s.ch == '-' {
			s.continueLit()
			s.nextch()
		}

		if !isDigit(s.ch) {
			s.error("exponent has no digits")
			return
		}
		s.scanDecimalDigits()
	}
}

// scanString scans a string literal.
// The resulting literal is the decoded string content (escape sequences are interpreted).
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var b strings.Builder

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			s.tok = _Literal
			s.kind = StringLit
			return

		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch == '\n' || s.ch < 0:
			s.error("string not terminated")
			s.lit = b.String()
			s.tok = _Literal
			s.kind = StringLit
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanEscape scans an escape sequence and returns the decoded rune.
func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	case '0':
		s.nextch()
		return 0, true
	case 'x':
		s.nextch()
		return s.scanHexEscape()
	default:
		s.error(fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		s.nextch()
		return 0, false
	}
}

// scanHexEscape scans a \xNN escape sequence.
func (s *Scanner) scanHexEscape() (rune, bool) {
	var val rune
	for i := 0; i < 2; i++ {
		if !isHexDigit(s.ch) {
			s.error("invalid hex escape")
			return 0, false
		}
		val = val*16 + hexValue(s.ch)
		s.nextch()
	}
	return val, true
}

// hexValue returns the numeric value of a hex digit.
func hexValue(r rune) rune {
	switch {
	case '0' <= r && r <= '9':
		return r - '0'
	case 'a' <= lower(r) && lower(r) <= 'f':
		return lower(r) - 'a' + 10
	}
	return 0
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		switch s.ch {
		case '+':
			s.nextch()
			s.tok = _Inc
			s.lit = "++"
		case '=':
			s.nextch()
			s.tok = _AddAssign
			s.lit = "+="
		default:
			s.tok = _Add
			s.lit = "+"
		}
	case '-':
		switch s.ch {
		case '-':
			s.nextch()
			s.tok = _Dec
			s.lit = "--"
		case '=':
			s.nextch()
			s.tok = _SubAssign
			s.lit = "-="
		default:
			s.tok = _Sub
			s.lit = "-"
		}
	case '*':
		if s.ch == '=' {
			s.nextch()
			s.tok = _MulAssign
			s.lit = "*="
		} else {
			s.tok = _Mul
			s.lit = "*"
		}
	case '/':
		switch s.ch {
		case '/':
			s.skipLineComment()
			return true
		case '*':
			s.skipBlockComment()
			return true
		case '=':
			s.nextch()
			s.tok = _DivAssign
			s.lit = "/="
		default:
			s.tok = _Div
			s.lit = "/"
		}
	case '%':
		if s.ch == '=' {
			s.nextch()
			s.tok = _RemAssign
			s.lit = "%="
		} else {
			s.tok = _Rem
			s.lit = "%"
		}
	case '&':
		if s.ch == '&' {
			s.nextch()
			s.tok = _AndAnd
			s.lit = "&&"
		} else {
			s.tok = _And
			s.lit = "&"
		}
	case '|':
		if s.ch == '|' {
			s.nextch()
			s.tok = _OrOr
			s.lit = "||"
		} else {
			s.tok = _Or
			s.lit = "|"
		}
	case '^':
		s.tok = _Xor
		s.lit = "^"
	case '<':
		switch s.ch {
		case '=':
			s.nextch()
			s.tok = _Leq
			s.lit = "<="
		case '<':
			s.nextch()
			s.tok = _Shl
			s.lit = "<<"
		case '-':
			s.nextch()
			s.tok = _Arrow
			s.lit = "<-"
		default:
			s.tok = _Lss
			s.lit = "<"
		}
	case '>':
		switch s.ch {
		case '=':
			s.nextch()
			s.tok = _Geq
			s.lit = ">="
		case '>':
			s.nextch()
			s.tok = _Shr
			s.lit = ">>"
		default:
			s.tok = _Gtr
			s.lit = ">"
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Eql
			s.lit = "=="
		} else {
			s.tok = _Assign
			s.lit = "="
		}
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Neq
			s.lit = "!="
		} else {
			s.tok = _Not
			s.lit = "!"
		}
	case ':':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Define
			s.lit = ":="
		} else {
			s.tok = _Colon
			s.lit = ":"
		}
	case '(':
		s.tok = _Lparen
		s.lit = "("
	case ')':
		s.tok = _Rparen
		s.lit = ")"
	case '[':
		s.tok = _Lbrack
		s.lit = "["
	case ']':
		s.tok = _Rbrack
		s.lit = "]"
	case '{':
		s.tok = _Lbrace
		s.lit = "{"
	case '}':
		s.tok = _Rbrace
		s.lit = "}"
	case ',':
		s.tok = _Comma
		s.lit = ","
	case ';':
		s.tok = _Semi
		s.lit = ";"
	case '.':
		s.tok = _Dot
		s.lit = "."
	}

	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	// Already consumed the second /
	s.nextch()
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// skipBlockComment skips a /* ... */ comment.
func (s *Scanner) skipBlockComment() {
	// Already sitting on the *
	s.nextch()
	for s.ch >= 0 {
		if s.ch == '*' {
			s.nextch()
			if s.ch == '/' {
				s.nextch()
				return
			}
			continue
		}
		s.nextch()
	}
	s.error("comment not terminated")
}

// ScanRaw captures verbatim source text for a pass-through construct
// starting at the current token. Capture runs through the matching close
// brace of the first '{' encountered, or to the end of the current token
// if no brace follows (single-word constructs). The scanner resumes at
// the first token after the captured text.
//
// String literals and comments inside the captured span are honored so
// that braces within them do not affect nesting.
func (s *Scanner) ScanRaw() string {
	start := s.tokOffs
	i := start
	depth := 0
	seenBrace := false

	for i < len(s.buf) {
		c := s.buf[i]
		switch c {
		case '{':
			depth++
			seenBrace = true
			i++
		case '}':
			depth--
			i++
			if seenBrace && depth == 0 {
				goto done
			}
		case '"':
			i = skipRawString(s.buf, i)
		case '/':
			if i+1 < len(s.buf) && s.buf[i+1] == '/' {
				for i < len(s.buf) && s.buf[i] != '\n' {
					i++
				}
			} else if i+1 < len(s.buf) && s.buf[i+1] == '*' {
				i += 2
				for i+1 < len(s.buf) && !(s.buf[i] == '*' && s.buf[i+1] == '/') {
					i++
				}
				i += 2
			} else {
				i++
			}
		case '\n':
			if !seenBrace {
				// Single-word construct (no brace block follows on this line).
				goto done
			}
			i++
		default:
			i++
		}
	}

done:
	text := string(s.buf[start:i])
	s.jumpTo(i)
	s.Next()
	return strings.TrimRight(text, " \t\r\n")
}

// skipRawString returns the offset just past a double-quoted string
// starting at buf[i].
func skipRawString(buf []byte, i int) int {
	i++ // opening quote
	for i < len(buf) && buf[i] != '"' && buf[i] != '\n' {
		if buf[i] == '\\' {
			i++
		}
		i++
	}
	if i < len(buf) {
		i++ // closing quote
	}
	return i
}

// jumpTo advances the underlying source to byte offset target,
// keeping line/column tracking consistent.
func (s *Scanner) jumpTo(target int) {
	for s.chOffs < target && s.ch >= 0 {
		s.nextch()
	}
}

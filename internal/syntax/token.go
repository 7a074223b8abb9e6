// Package syntax implements lexical and syntactic analysis for Go-Extended source files.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // lexical error

	// Literals
	_Name    // identifier: foo, Person, fmt
	_Literal // literal value (used with LitKind)

	// Assignment operators
	_Assign    // =
	_Define    // :=
	_AddAssign // +=
	_SubAssign // -=
	_MulAssign // *=
	_DivAssign // /=
	_RemAssign // %=

	// Binary operators (ordered by precedence, low to high)
	_OrOr   // ||
	_AndAnd // &&

	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	_Add // +
	_Sub // -
	_Or  // |
	_Xor // ^

	_Mul // *
	_Div // /
	_Rem // %
	_And // &
	_Shl // <<
	_Shr // >>

	// Unary operators
	_Not // !

	_Inc   // ++
	_Dec   // --
	_Arrow // <-

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;
	_Colon  // :
	_Dot    // .

	// Keywords shared with the base language
	_Break
	_Case
	_Chan
	_Const
	_Continue
	_Default
	_Defer
	_Else
	_For
	_Func
	_Go
	_If
	_Import
	_Interface
	_Map
	_Package
	_Range
	_Return
	_Select
	_Struct
	_Switch
	_Type
	_Var

	// Extension keywords — classes
	_Class
	_Extends
	_New
	_This
	_Super

	// Extension keywords — exceptions
	_Try
	_Catch
	_Finally
	_Throw

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign:    "=",
	_Define:    ":=",
	_AddAssign: "+=",
	_SubAssign: "-=",
	_MulAssign: "*=",
	_DivAssign: "/=",
	_RemAssign: "%=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",
	_Or:  "|",
	_Xor: "^",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",
	_And: "&",
	_Shl: "<<",
	_Shr: ">>",

	_Not: "!",

	_Inc:   "++",
	_Dec:   "--",
	_Arrow: "<-",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",
	_Colon:  ":",
	_Dot:    ".",

	_Break:     "break",
	_Case:      "case",
	_Chan:      "chan",
	_Const:     "const",
	_Continue:  "continue",
	_Default:   "default",
	_Defer:     "defer",
	_Else:      "else",
	_For:       "for",
	_Func:      "func",
	_Go:        "go",
	_If:        "if",
	_Import:    "import",
	_Interface: "interface",
	_Map:       "map",
	_Package:   "package",
	_Range:     "range",
	_Return:    "return",
	_Select:    "select",
	_Struct:    "struct",
	_Switch:    "switch",
	_Type:      "type",
	_Var:       "var",

	_Class:   "class",
	_Extends: "extends",
	_New:     "new",
	_This:    "this",
	_Super:   "super",

	_Try:     "try",
	_Catch:   "catch",
	_Finally: "finally",
	_Throw:   "throw",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: == != < <= > >=
//	4: + - | ^
//	5: * / % & << >>
func (t Token) Precedence() int {
	switch t {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Eql, _Neq, _Lss, _Leq, _Gtr, _Geq:
		return 3
	case _Add, _Sub, _Or, _Xor:
		return 4
	case _Mul, _Div, _Rem, _And, _Shl, _Shr:
		return 5
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Break && t < tokenCount
}

// IsAssignOp reports whether t is an assignment operator (=, :=, +=, ...).
func (t Token) IsAssignOp() bool {
	return t >= _Assign && t <= _RemAssign
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123, 0x1F, 0o77, 0b1010
	FloatLit                 // 3.14, 1e10, 2.5e-3
	StringLit                // "hello", "line\n"
	BoolLit                  // true, false
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
	BoolLit:   "bool",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= BoolLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps keyword strings to their token type.
// true and false are not listed: they are scanned as bool literals.
var keywords = map[string]Token{
	"break":     _Break,
	"case":      _Case,
	"chan":      _Chan,
	"const":     _Const,
	"continue":  _Continue,
	"default":   _Default,
	"defer":     _Defer,
	"else":      _Else,
	"for":       _For,
	"func":      _Func,
	"go":        _Go,
	"if":        _If,
	"import":    _Import,
	"interface": _Interface,
	"map":       _Map,
	"package":   _Package,
	"range":     _Range,
	"return":    _Return,
	"select":    _Select,
	"struct":    _Struct,
	"switch":    _Switch,
	"type":      _Type,
	"var":       _Var,

	"class":   _Class,
	"extends": _Extends,
	"new":     _New,
	"this":    _This,
	"super":   _Super,

	"try":     _Try,
	"catch":   _Catch,
	"finally": _Finally,
	"throw":   _Throw,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}

package syntax

import (
	"strings"
	"testing"
)

func newTestScanner(src string) *Scanner {
	return NewScanner("test.gox", strings.NewReader(src), nil)
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		// Identifiers
		{"ident", "foo", []Token{_Name}, []string{"foo"}},
		{"ident_underscore", "_bar", []Token{_Name}, []string{"_bar"}},
		{"ident_mixed", "foo123", []Token{_Name}, []string{"foo123"}},
		{"ident_caps", "FooBar", []Token{_Name}, []string{"FooBar"}},

		// Pre-declared identifiers stay names
		{"predecl_int", "int", []Token{_Name}, []string{"int"}},
		{"predecl_string", "string", []Token{_Name}, []string{"string"}},
		{"predecl_nil", "nil", []Token{_Name}, []string{"nil"}},
		{"predecl_println", "println", []Token{_Name}, []string{"println"}},

		// Bool literals
		{"bool_true", "true", []Token{_Literal}, []string{"true"}},
		{"bool_false", "false", []Token{_Literal}, []string{"false"}},

		// Integer literals
		{"int_dec", "123", []Token{_Literal}, []string{"123"}},
		{"int_zero", "0", []Token{_Literal}, []string{"0"}},
		{"int_hex", "0x1f", []Token{_Literal}, []string{"0x1f"}},
		{"int_oct", "0o77", []Token{_Literal}, []string{"0o77"}},
		{"int_bin", "0b1010", []Token{_Literal}, []string{"0b1010"}},
		{"int_leading_zero", "007", []Token{_Literal}, []string{"007"}},

		// Float literals
		{"float_simple", "3.14", []Token{_Literal}, []string{"3.14"}},
		{"float_no_frac", "3.", []Token{_Literal}, []string{"3."}},
		{"float_exp", "1e10", []Token{_Literal}, []string{"1e10"}},
		{"float_exp_neg", "2.5e-3", []Token{_Literal}, []string{"2.5e-3"}},

		// String literals (decoded content)
		{"string_simple", `"hello"`, []Token{_Literal}, []string{"hello"}},
		{"string_empty", `""`, []Token{_Literal}, []string{""}},
		{"string_escape_n", `"a\nb"`, []Token{_Literal}, []string{"a\nb"}},
		{"string_escape_quote", `"a\"b"`, []Token{_Literal}, []string{"a\"b"}},
		{"string_escape_hex", `"\x41\x42"`, []Token{_Literal}, []string{"AB"}},

		// Single-char operators
		{"op_add", "+", []Token{_Add}, []string{"+"}},
		{"op_sub", "-", []Token{_Sub}, []string{"-"}},
		{"op_mul", "*", []Token{_Mul}, []string{"*"}},
		{"op_div", "/", []Token{_Div}, []string{"/"}},
		{"op_rem", "%", []Token{_Rem}, []string{"%"}},
		{"op_not", "!", []Token{_Not}, []string{"!"}},
		{"op_assign", "=", []Token{_Assign}, []string{"="}},
		{"op_colon", ":", []Token{_Colon}, []string{":"}},

		// Two-char operators
		{"op_andand", "&&", []Token{_AndAnd}, []string{"&&"}},
		{"op_oror", "||", []Token{_OrOr}, []string{"||"}},
		{"op_eql", "==", []Token{_Eql}, []string{"=="}},
		{"op_neq", "!=", []Token{_Neq}, []string{"!="}},
		{"op_leq", "<=", []Token{_Leq}, []string{"<="}},
		{"op_geq", ">=", []Token{_Geq}, []string{">="}},
		{"op_shl", "<<", []Token{_Shl}, []string{"<<"}},
		{"op_shr", ">>", []Token{_Shr}, []string{">>"}},
		{"op_define", ":=", []Token{_Define}, []string{":="}},
		{"op_arrow", "<-", []Token{_Arrow}, []string{"<-"}},
		{"op_inc", "++", []Token{_Inc}, []string{"++"}},
		{"op_dec", "--", []Token{_Dec}, []string{"--"}},

		// Compound assignment
		{"op_add_assign", "+=", []Token{_AddAssign}, []string{"+="}},
		{"op_sub_assign", "-=", []Token{_SubAssign}, []string{"-="}},
		{"op_mul_assign", "*=", []Token{_MulAssign}, []string{"*="}},
		{"op_div_assign", "/=", []Token{_DivAssign}, []string{"/="}},
		{"op_rem_assign", "%=", []Token{_RemAssign}, []string{"%="}},

		// Delimiters
		{"delims", "(){}[],;.", []Token{_Lparen, _Rparen, _Lbrace, _Rbrace, _Lbrack, _Rbrack, _Comma, _Semi, _Dot},
			[]string{"(", ")", "{", "}", "[", "]", ",", ";", "."}},

		// Keywords
		{"kw_func", "func", []Token{_Func}, []string{"func"}},
		{"kw_return", "return", []Token{_Return}, []string{"return"}},
		{"kw_class", "class", []Token{_Class}, []string{"class"}},
		{"kw_extends", "extends", []Token{_Extends}, []string{"extends"}},
		{"kw_new", "new", []Token{_New}, []string{"new"}},
		{"kw_this", "this", []Token{_This}, []string{"this"}},
		{"kw_super", "super", []Token{_Super}, []string{"super"}},
		{"kw_try", "try", []Token{_Try}, []string{"try"}},
		{"kw_catch", "catch", []Token{_Catch}, []string{"catch"}},
		{"kw_finally", "finally", []Token{_Finally}, []string{"finally"}},
		{"kw_throw", "throw", []Token{_Throw}, []string{"throw"}},

		// Sequences
		{"assign_seq", "x := 42", []Token{_Name, _Define, _Literal}, []string{"x", ":=", "42"}},
		{"call_seq", "f(a, b)", []Token{_Name, _Lparen, _Name, _Comma, _Name, _Rparen},
			[]string{"f", "(", "a", ",", "b", ")"}},
		{"new_seq", "new Point(1, 2)", []Token{_New, _Name, _Lparen, _Literal, _Comma, _Literal, _Rparen},
			[]string{"new", "Point", "(", "1", ",", "2", ")"}},

		// Newlines are plain whitespace
		{"newline_insensitive", "a\nb", []Token{_Name, _Name}, []string{"a", "b"}},
		{"newline_after_brace", "}\nfunc", []Token{_Rbrace, _Func}, []string{"}", "func"}},

		// Comments are skipped
		{"line_comment", "a // comment\nb", []Token{_Name, _Name}, []string{"a", "b"}},
		{"block_comment", "a /* x\ny */ b", []Token{_Name, _Name}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScanner(tt.src)
			for i, want := range tt.tokens {
				s.Next()
				if s.Token() != want {
					t.Fatalf("token %d = %s, want %s", i, s.Token(), want)
				}
				if s.Token() == _Literal || s.Token() == _Name || s.Token().IsKeyword() {
					if s.Literal() != tt.lits[i] {
						t.Errorf("literal %d = %q, want %q", i, s.Literal(), tt.lits[i])
					}
				}
			}
			s.Next()
			if s.Token() != _EOF {
				t.Errorf("expected EOF, got %s", s.Token())
			}
		})
	}
}

func TestScanLitKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind LitKind
	}{
		{"42", IntLit},
		{"0x1f", IntLit},
		{"3.14", FloatLit},
		{"1e10", FloatLit},
		{`"hi"`, StringLit},
		{"true", BoolLit},
		{"false", BoolLit},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s := newTestScanner(tt.src)
			s.Next()
			if s.Token() != _Literal {
				t.Fatalf("token = %s, want literal", s.Token())
			}
			if s.LitKind() != tt.kind {
				t.Errorf("kind = %s, want %s", s.LitKind(), tt.kind)
			}
		})
	}
}

func TestScanPositions(t *testing.T) {
	s := newTestScanner("a\n  bb\nccc")

	type want struct {
		lit  string
		line uint32
		col  uint32
	}
	wants := []want{
		{"a", 1, 1},
		{"bb", 2, 3},
		{"ccc", 3, 1},
	}

	for _, w := range wants {
		s.Next()
		if s.Literal() != w.lit {
			t.Fatalf("literal = %q, want %q", s.Literal(), w.lit)
		}
		if s.Pos().Line() != w.line || s.Pos().Col() != w.col {
			t.Errorf("%q at %d:%d, want %d:%d", w.lit, s.Pos().Line(), s.Pos().Col(), w.line, w.col)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated_string", `"abc`},
		{"unterminated_comment", "/* abc"},
		{"bad_escape", `"\q"`},
		{"exponent_no_digits", "1e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs []string
			s := NewScanner("test.gox", strings.NewReader(tt.src), func(line, col uint32, msg string) {
				errs = append(errs, msg)
			})
			for {
				s.Next()
				if s.Token() == _EOF {
					break
				}
			}
			if len(errs) == 0 {
				t.Error("expected a scan error")
			}
		})
	}
}

func TestScanRaw(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		next Token
	}{
		{"select_block", "select {\ncase v := <-ch:\n    use(v)\n}\nx", "select {\ncase v := <-ch:\n    use(v)\n}", _Name},
		{"nested_braces", "select { case a := <-ch: if a { b() } }\n)", "select { case a := <-ch: if a { b() } }", _Rparen},
		{"brace_in_string", `select { case s <- "}": }` + "\nx", `select { case s <- "}": }`, _Name},
		{"func_literal", "func(x int) int { return x * 2 }(3)", "func(x int) int { return x * 2 }", _Lparen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScanner(tt.src)
			s.Next()
			got := s.ScanRaw()
			if got != tt.want {
				t.Errorf("ScanRaw = %q, want %q", got, tt.want)
			}
			if s.Token() != tt.next {
				t.Errorf("token after ScanRaw = %s, want %s", s.Token(), tt.next)
			}
		})
	}
}

package syntax

import "io"

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on Go-Extended source code.
//
// The grammar is newline-insensitive, so the parser never sees or expects
// semicolon tokens outside classic for headers. The first syntax error
// aborts the unit: the parser reports it and unwinds to EOF.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok Token
	lit string
	pos Pos

	// Error handling
	errh  func(pos Pos, msg string)
	first error // first error encountered
	abort bool

	// Context tracking
	classDepth int  // class nesting depth (this/super legality)
	inHeader   bool // inside a control-flow header, '{' ends the expression
}

// NewParser creates a new Parser for the given source.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{errh: errh}

	scanErrh := func(line, col uint32, msg string) {
		p.syntaxErrorAt(NewPos(filename, line, col), msg)
	}

	p.scanner = NewScanner(filename, src, scanErrh)
	p.next() // prime the parser with first token
	return p
}

// Parse parses a complete source file and returns the AST along with the
// first error encountered, if any.
func Parse(filename string, src io.Reader, errh func(pos Pos, msg string)) (*File, error) {
	p := NewParser(filename, src, errh)
	f := p.ParseFile()
	return f, p.first
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	p.scanner.Next()
	p.sync()
}

// sync refreshes the cached token info from the scanner.
// Used after the scanner has been advanced out-of-band (raw capture).
func (p *Parser) sync() {
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
	if p.abort {
		p.tok = _EOF
	}
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String() + ", found " + p.tok.String())
	}
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current position.
func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

// syntaxErrorAt reports a syntax error and aborts the parse.
// Only the first error is kept; the token stream is forced to EOF so
// every parsing loop unwinds.
func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	p.abort = true
	p.first = &SyntaxError{Pos: pos, Msg: msg}
	p.tok = _EOF

	if p.errh != nil {
		p.errh(pos, msg)
	}
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry point

// ParseFile parses a complete source file and returns the AST.
func (p *Parser) ParseFile() *File {
	f := &File{}
	f.pos = p.pos

	// Package clause
	p.want(_Package)
	f.PkgName = p.name().Value

	// Import declarations
	for !p.abort && p.tok == _Import {
		f.Imports = append(f.Imports, p.importDecl())
	}

	// Top-level declarations
	for !p.abort && p.tok != _EOF {
		if d := p.decl(); d != nil {
			f.Decls = append(f.Decls, d)
		}
	}

	return f
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError("expected identifier, found " + p.tok.String())
		n := &Name{Value: "_"}
		n.pos = p.pos
		return n
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Import declarations

// importDecl parses: import [alias] "path"
func (p *Parser) importDecl() *ImportDecl {
	d := &ImportDecl{}
	d.pos = p.pos

	p.want(_Import)

	if p.tok == _Name {
		d.Alias = p.lit
		p.next()
	}

	if p.tok != _Literal || p.scanner.LitKind() != StringLit {
		p.syntaxError("expected import path string")
		return d
	}

	d.Path = p.lit
	p.next()
	return d
}

// ----------------------------------------------------------------------------
// Top-level declarations

// decl parses a top-level declaration.
func (p *Parser) decl() Decl {
	switch p.tok {
	case _Class:
		return p.classDecl()
	case _Func:
		return p.funcDecl()
	case _Var:
		return p.varDecl()
	case _Const:
		return p.constDecl()
	case _Type:
		return p.typeDecl()
	default:
		p.syntaxError("expected declaration, found " + p.tok.String())
		return nil
	}
}

// classDecl parses: class Name [extends Parent] { members }
func (p *Parser) classDecl() Decl {
	d := &ClassDecl{}
	d.pos = p.pos

	p.want(_Class)
	d.Name = p.name().Value

	if p.got(_Extends) {
		d.Extends = p.name().Value
		if p.tok == _Comma {
			p.syntaxError("a class can extend only one parent")
			return d
		}
	}

	p.classDepth++
	p.want(_Lbrace)
	for !p.abort && p.tok != _Rbrace && p.tok != _EOF {
		p.classMember(d)
	}
	p.want(_Rbrace)
	p.classDepth--

	return d
}

// classMember parses a single class member: field, constructor, or method.
func (p *Parser) classMember(d *ClassDecl) {
	switch p.tok {
	case _Func:
		d.Methods = append(d.Methods, p.methodDecl())

	case _Name:
		pos := p.pos
		name := p.lit
		p.next()

		if p.tok == _Lparen {
			if name != d.Name {
				p.syntaxErrorAt(pos, "constructor must be named after its class")
				return
			}
			if d.Constructor != nil {
				p.syntaxErrorAt(pos, "class "+d.Name+" has more than one constructor")
				return
			}
			d.Constructor = p.constructorDecl(pos)
			return
		}

		d.Fields = append(d.Fields, p.fieldDecl(pos, name))

	default:
		p.syntaxError("expected class member, found " + p.tok.String())
	}
}

// fieldDecl parses the remainder of a field after its name:
//
//	name Type [= default]
func (p *Parser) fieldDecl(pos Pos, name string) *FieldDecl {
	f := &FieldDecl{Name: name}
	f.pos = pos
	f.Type = p.typeRef()
	if p.got(_Assign) {
		f.Default = p.expr()
	}
	return f
}

// constructorDecl parses a constructor after its (already consumed) name.
// A leading super.Parent(args) call is pulled out of the body.
func (p *Parser) constructorDecl(pos Pos) *ConstructorDecl {
	c := &ConstructorDecl{}
	c.pos = pos
	c.Params = p.paramList()

	body := &BlockStmt{}
	body.pos = p.pos
	p.want(_Lbrace)

	if p.tok == _Super {
		c.Super = p.superCall()
	}

	for !p.abort && p.tok != _Rbrace && p.tok != _EOF {
		body.Stmts = append(body.Stmts, p.stmt())
	}
	p.want(_Rbrace)

	c.Body = body
	return c
}

// superCall parses: super.Parent(args)
func (p *Parser) superCall() *SuperCall {
	s := &SuperCall{}
	s.pos = p.pos

	p.want(_Super)
	p.want(_Dot)
	s.Parent = p.name().Value
	p.want(_Lparen)
	if p.tok != _Rparen {
		s.Args = p.exprList()
	}
	p.want(_Rparen)

	return s
}

// methodDecl parses: func Name(params) [results] { body }
func (p *Parser) methodDecl() *MethodDecl {
	m := &MethodDecl{}
	m.pos = p.pos

	p.want(_Func)
	m.Name = p.name().Value
	m.Params = p.paramList()
	m.Results = p.resultList()
	m.Body = p.blockStmt()

	return m
}

// funcDecl parses a top-level function declaration.
func (p *Parser) funcDecl() *FuncDecl {
	d := &FuncDecl{}
	d.pos = p.pos

	p.want(_Func)
	d.Name = p.name().Value
	d.Params = p.paramList()
	d.Results = p.resultList()
	d.Body = p.blockStmt()

	return d
}

// paramList parses: (name Type, name Type, ...)
// Grouped parameters sharing a trailing type (a, b int) leave Type empty
// on all but the last name of the group.
func (p *Parser) paramList() []*Param {
	var params []*Param

	p.want(_Lparen)
	for !p.abort && p.tok != _Rparen && p.tok != _EOF {
		prm := &Param{}
		prm.pos = p.pos
		prm.Name = p.name().Value

		if p.tok == _Comma {
			// Shares the type of a later parameter.
			params = append(params, prm)
			p.next()
			continue
		}
		if p.tok != _Rparen {
			prm.Type = p.typeRef()
		}
		params = append(params, prm)

		if !p.got(_Comma) {
			break
		}
	}
	p.want(_Rparen)

	return params
}

// resultList parses an optional result list after the parameter list:
// nothing, a single type, or a parenthesized list of types.
func (p *Parser) resultList() []string {
	switch p.tok {
	case _Lbrace, _EOF:
		return nil
	case _Lparen:
		p.next()
		var results []string
		for !p.abort && p.tok != _Rparen && p.tok != _EOF {
			results = append(results, p.typeRef())
			if !p.got(_Comma) {
				break
			}
		}
		p.want(_Rparen)
		return results
	default:
		return []string{p.typeRef()}
	}
}

// varDecl parses: var name [Type] [= value]
func (p *Parser) varDecl() *VarDecl {
	d := &VarDecl{}
	d.pos = p.pos

	p.want(_Var)
	d.Name = p.name().Value

	if p.tok != _Assign {
		d.Type = p.typeRef()
	}
	if p.got(_Assign) {
		d.Value = p.expr()
	}

	if d.Type == "" && d.Value == nil {
		p.syntaxError("variable declaration needs a type or a value")
	}

	return d
}

// constDecl parses: const name [Type] = value
func (p *Parser) constDecl() *ConstDecl {
	d := &ConstDecl{}
	d.pos = p.pos

	p.want(_Const)
	d.Name = p.name().Value

	if p.tok != _Assign {
		d.Type = p.typeRef()
	}
	p.want(_Assign)
	d.Value = p.expr()

	return d
}

// typeDecl parses type declarations: aliases, definitions, structs,
// and interfaces.
func (p *Parser) typeDecl() Decl {
	pos := p.pos
	p.want(_Type)
	name := p.name().Value

	switch p.tok {
	case _Assign:
		p.next()
		d := &TypeDecl{Name: name, Alias: true, Type: p.typeRef()}
		d.pos = pos
		return d

	case _Struct:
		p.next()
		d := &StructDecl{Name: name}
		d.pos = pos
		p.want(_Lbrace)
		for !p.abort && p.tok != _Rbrace && p.tok != _EOF {
			fpos := p.pos
			fname := p.name().Value
			f := &FieldDecl{Name: fname, Type: p.typeRef()}
			f.pos = fpos
			d.Fields = append(d.Fields, f)
		}
		p.want(_Rbrace)
		return d

	case _Interface:
		p.next()
		return p.interfaceDecl(pos, name)

	default:
		d := &TypeDecl{Name: name, Type: p.typeRef()}
		d.pos = pos
		return d
	}
}

// interfaceDecl parses an interface body after "type Name interface".
//
// A name following a completed signature is ambiguous: it may be that
// signature's result type or the next method's name. It is a method name
// exactly when a '(' follows it; otherwise it is a result type (or an
// embedded interface when no signature is pending). Parenthesized result
// lists must directly follow the parameter list.
func (p *Parser) interfaceDecl(pos Pos, name string) *InterfaceDecl {
	d := &InterfaceDecl{Name: name}
	d.pos = pos

	var pending *MethodSig // signature that may still receive a result type

	p.want(_Lbrace)
	for !p.abort && p.tok != _Rbrace && p.tok != _EOF {
		if p.tok != _Name {
			// Non-name type start: result type of the pending signature.
			if pending == nil {
				p.syntaxError("expected method or embedded interface")
				break
			}
			pending.Results = []string{p.typeRef()}
			pending = nil
			continue
		}

		mpos := p.pos
		mname := p.lit
		p.next()

		if p.tok != _Lparen {
			if pending != nil {
				typ := mname
				if p.got(_Dot) {
					typ += "." + p.name().Value
				}
				pending.Results = []string{typ}
				pending = nil
			} else {
				d.Embeds = append(d.Embeds, mname)
			}
			continue
		}

		sig := &MethodSig{Name: mname}
		sig.pos = mpos
		sig.Params = p.paramList()
		if p.tok == _Lparen {
			p.next()
			for !p.abort && p.tok != _Rparen && p.tok != _EOF {
				sig.Results = append(sig.Results, p.typeRef())
				if !p.got(_Comma) {
					break
				}
			}
			p.want(_Rparen)
		} else {
			pending = sig
		}
		d.Methods = append(d.Methods, sig)
	}
	p.want(_Rbrace)

	return d
}

// ----------------------------------------------------------------------------
// Type references

// typeRef parses a type reference and returns its source text.
// Types are opaque to the transpiler: they are carried through as strings
// and never checked.
func (p *Parser) typeRef() string {
	switch p.tok {
	case _Mul:
		p.next()
		return "*" + p.typeRef()

	case _Lbrack:
		p.next()
		if p.got(_Rbrack) {
			return "[]" + p.typeRef()
		}
		size := p.lit
		if p.tok != _Literal || p.scanner.LitKind() != IntLit {
			p.syntaxError("expected array length, found " + p.tok.String())
			return "_"
		}
		p.next()
		p.want(_Rbrack)
		return "[" + size + "]" + p.typeRef()

	case _Map:
		p.next()
		p.want(_Lbrack)
		key := p.typeRef()
		p.want(_Rbrack)
		return "map[" + key + "]" + p.typeRef()

	case _Chan:
		p.next()
		if p.got(_Arrow) {
			return "chan<- " + p.typeRef()
		}
		return "chan " + p.typeRef()

	case _Arrow:
		p.next()
		if !p.got(_Chan) {
			p.syntaxError("expected chan after <-")
			return "_"
		}
		return "<-chan " + p.typeRef()

	case _Func:
		return p.funcTypeRef()

	case _Interface:
		p.next()
		p.want(_Lbrace)
		p.want(_Rbrace)
		return "interface{}"

	case _Name:
		name := p.lit
		p.next()
		if p.got(_Dot) {
			return name + "." + p.name().Value
		}
		return name

	default:
		p.syntaxError("expected type, found " + p.tok.String())
		return "_"
	}
}

// funcTypeRef parses a function type reference: func(T, T) R
func (p *Parser) funcTypeRef() string {
	p.want(_Func)
	s := "func("

	p.want(_Lparen)
	for !p.abort && p.tok != _Rparen && p.tok != _EOF {
		s += p.typeRef()
		if !p.got(_Comma) {
			break
		}
		s += ", "
	}
	p.want(_Rparen)
	s += ")"

	switch p.tok {
	case _Lparen:
		p.next()
		s += " ("
		for !p.abort && p.tok != _Rparen && p.tok != _EOF {
			s += p.typeRef()
			if !p.got(_Comma) {
				break
			}
			s += ", "
		}
		p.want(_Rparen)
		s += ")"
	case _Name, _Mul, _Lbrack, _Map, _Chan:
		s += " " + p.typeRef()
	}

	return s
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a single statement.
func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _Lbrace:
		return p.blockStmt()

	case _Var, _Const, _Type:
		s := &DeclStmt{}
		s.pos = p.pos
		switch p.tok {
		case _Var:
			s.D = p.varDecl()
		case _Const:
			s.D = p.constDecl()
		case _Type:
			s.D = p.typeDecl()
		}
		return s

	case _If:
		return p.ifStmt()

	case _For:
		return p.forStmt()

	case _Switch:
		return p.switchStmt()

	case _Return:
		return p.returnStmt()

	case _Break, _Continue:
		s := &BranchStmt{Tok: p.tok}
		s.pos = p.pos
		p.next()
		return s

	case _Go:
		s := &GoStmt{}
		s.pos = p.pos
		p.next()
		s.Call = p.expr()
		if _, ok := s.Call.(*CallExpr); !ok {
			p.syntaxErrorAt(s.pos, "expression in go must be a call")
		}
		return s

	case _Defer:
		s := &DeferStmt{}
		s.pos = p.pos
		p.next()
		s.Call = p.expr()
		if _, ok := s.Call.(*CallExpr); !ok {
			p.syntaxErrorAt(s.pos, "expression in defer must be a call")
		}
		return s

	case _Try:
		return p.tryStmt()

	case _Throw:
		s := &ThrowStmt{}
		s.pos = p.pos
		p.next()
		s.X = p.expr()
		return s

	case _Select:
		// select blocks pass through untouched.
		s := &RawStmt{}
		s.pos = p.pos
		s.Text = p.scanner.ScanRaw()
		p.sync()
		return s

	case _Name:
		if p.lit == "fallthrough" {
			s := &RawStmt{Text: "fallthrough"}
			s.pos = p.pos
			p.next()
			return s
		}
		return p.simpleStmt(false)

	default:
		return p.simpleStmt(false)
	}
}

// simpleStmt parses an expression, assignment, short declaration,
// increment/decrement, or channel send statement.
// When allowRange is set (for headers), a := or = whose right side starts
// with range produces a RangeStmt.
func (p *Parser) simpleStmt(allowRange bool) Stmt {
	pos := p.pos
	lhs := p.exprList()

	switch {
	case p.tok == _Define || p.tok.IsAssignOp():
		op := p.tok
		p.next()

		if allowRange && p.tok == _Range {
			p.next()
			s := &RangeStmt{Def: op == _Define}
			s.pos = pos
			s.Key = lhs[0]
			if len(lhs) > 1 {
				s.Value = lhs[1]
			}
			if len(lhs) > 2 {
				p.syntaxErrorAt(pos, "too many variables in range")
			}
			s.X = p.expr()
			return s
		}

		s := &AssignStmt{Op: op, LHS: lhs}
		s.pos = pos
		s.RHS = p.exprList()
		if op != _Define && op != _Assign && (len(lhs) != 1 || len(s.RHS) != 1) {
			p.syntaxErrorAt(pos, "compound assignment needs single operands")
		}
		return s

	case p.tok == _Inc || p.tok == _Dec:
		s := &IncDecStmt{X: lhs[0], Op: p.tok}
		s.pos = pos
		p.next()
		if len(lhs) != 1 {
			p.syntaxErrorAt(pos, "expected single operand")
		}
		return s

	case p.tok == _Arrow:
		p.next()
		s := &SendStmt{Chan: lhs[0], Value: p.expr()}
		s.pos = pos
		if len(lhs) != 1 {
			p.syntaxErrorAt(pos, "expected single channel operand")
		}
		return s

	default:
		if len(lhs) != 1 {
			p.syntaxErrorAt(pos, "expected assignment after expression list")
		}
		s := &ExprStmt{X: lhs[0]}
		s.pos = pos
		return s
	}
}

// blockStmt parses: { stmts... }
func (p *Parser) blockStmt() *BlockStmt {
	b := &BlockStmt{}
	b.pos = p.pos

	p.want(_Lbrace)
	for !p.abort && p.tok != _Rbrace && p.tok != _EOF {
		b.Stmts = append(b.Stmts, p.stmt())
	}
	p.want(_Rbrace)

	return b
}

// ifStmt parses: if cond { } [else if ... | else { }]
func (p *Parser) ifStmt() Stmt {
	s := &IfStmt{}
	s.pos = p.pos

	p.want(_If)
	s.Cond = p.headerExpr()
	s.Then = p.blockStmt()

	if p.got(_Else) {
		if p.tok == _If {
			s.Else = p.ifStmt()
		} else {
			s.Else = p.blockStmt()
		}
	}

	return s
}

// forStmt parses all for loop forms: infinite, condition-only, classic
// three-clause, and range.
func (p *Parser) forStmt() Stmt {
	pos := p.pos
	p.want(_For)

	// for { ... }
	if p.tok == _Lbrace {
		s := &ForStmt{Body: p.blockStmt()}
		s.pos = pos
		return s
	}

	save := p.inHeader
	p.inHeader = true

	var init Stmt
	if p.tok != _Semi {
		init = p.simpleStmt(true)

		if r, ok := init.(*RangeStmt); ok {
			p.inHeader = save
			r.pos = pos
			r.Body = p.blockStmt()
			return r
		}

		// for cond { ... }
		if p.tok == _Lbrace {
			p.inHeader = save
			es, ok := init.(*ExprStmt)
			if !ok {
				p.syntaxErrorAt(pos, "expected loop condition")
				es = &ExprStmt{}
			}
			s := &ForStmt{Cond: es.X, Body: p.blockStmt()}
			s.pos = pos
			return s
		}
	}

	// for init; cond; post { ... }
	s := &ForStmt{Init: init}
	s.pos = pos

	p.want(_Semi)
	if p.tok != _Semi {
		s.Cond = p.expr()
	}
	p.want(_Semi)
	if p.tok != _Lbrace {
		s.Post = p.simpleStmt(false)
	}

	p.inHeader = save
	s.Body = p.blockStmt()
	return s
}

// switchStmt parses: switch [tag] { case ...: default: }
func (p *Parser) switchStmt() Stmt {
	s := &SwitchStmt{}
	s.pos = p.pos

	p.want(_Switch)
	if p.tok != _Lbrace {
		s.Tag = p.headerExpr()
	}

	p.want(_Lbrace)
	for !p.abort && (p.tok == _Case || p.tok == _Default) {
		c := &CaseClause{}
		c.pos = p.pos

		if p.got(_Case) {
			c.Values = p.exprList()
		} else {
			p.want(_Default)
		}
		p.want(_Colon)

		for !p.abort && p.tok != _Case && p.tok != _Default && p.tok != _Rbrace && p.tok != _EOF {
			c.Body = append(c.Body, p.stmt())
		}
		s.Cases = append(s.Cases, c)
	}
	p.want(_Rbrace)

	return s
}

// returnStmt parses: return [expr, ...]
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos

	p.want(_Return)
	if p.tok != _Rbrace && p.tok != _Case && p.tok != _Default && p.tok != _EOF {
		s.Results = p.exprList()
	}

	return s
}

// tryStmt parses: try { } catch (Tag name) { } ... finally { }
// At least one catch clause or a finally block is required.
func (p *Parser) tryStmt() Stmt {
	s := &TryStmt{}
	s.pos = p.pos

	p.want(_Try)
	s.Body = p.blockStmt()

	for p.tok == _Catch {
		s.Catches = append(s.Catches, p.catchClause())
	}

	if p.got(_Finally) {
		s.Finally = p.blockStmt()
	}

	if len(s.Catches) == 0 && s.Finally == nil {
		p.syntaxErrorAt(s.pos, "try needs at least one catch or a finally")
	}

	return s
}

// catchClause parses a single catch clause in one of its three forms:
//
//	catch { }           — catches everything, binds nothing
//	catch (e) { }       — catches everything, binds e
//	catch (Tag e) { }   — catches exceptions tagged Tag, binds e
func (p *Parser) catchClause() *CatchClause {
	c := &CatchClause{}
	c.pos = p.pos

	p.want(_Catch)

	if p.got(_Lparen) {
		first := p.name().Value
		if p.tok == _Name {
			c.Tag = first
			c.Name = p.lit
			p.next()
		} else {
			c.Name = first
		}
		p.want(_Rparen)
	}

	c.Body = p.blockStmt()
	return c
}

// ----------------------------------------------------------------------------
// Expressions

// headerExpr parses an expression in a control-flow header, where a '{'
// terminates the expression instead of opening a composite literal.
func (p *Parser) headerExpr() Expr {
	save := p.inHeader
	p.inHeader = true
	x := p.expr()
	p.inHeader = save
	return x
}

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements Pratt parsing / precedence climbing.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()

		p.next() // consume operator

		// Parse right operand with higher precedence (left associative)
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// unaryExpr parses a unary expression.
func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Not, _Sub, _Mul, _And, _Xor, _Arrow:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op

	default:
		return p.primaryExpr()
	}
}

// primaryExpr parses primary expressions and postfix operations.
func (p *Parser) primaryExpr() Expr {
	x := p.operand()

	// Parse postfix operations: calls, index, selector, composite literal
	for {
		switch p.tok {
		case _Lparen: // function call
			x = p.callExpr(x)

		case _Lbrack: // index expression
			x = p.indexExpr(x)

		case _Dot: // selector expression
			x = p.selectorExpr(x)

		case _Lbrace:
			// Composite literal on a named type: T{...}, pkg.T{...}.
			// Inside control-flow headers the brace opens the body instead.
			if p.inHeader {
				return x
			}
			text, ok := nameText(x)
			if !ok {
				return x
			}
			raw := &RawExpr{Text: text + p.rawBraces()}
			raw.pos = x.Pos()
			x = raw

		default:
			return x
		}
	}
}

// nameText renders a Name or dotted Name chain back to source text.
// Returns false for anything else.
func nameText(x Expr) (string, bool) {
	switch x := x.(type) {
	case *Name:
		return x.Value, true
	case *SelectorExpr:
		base, ok := nameText(x.X)
		if !ok {
			return "", false
		}
		return base + "." + x.Sel, true
	}
	return "", false
}

// operand parses an operand (the base of primary expressions).
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		n := &Name{Value: p.lit}
		n.pos = p.pos
		p.next()
		return n

	case _Literal:
		lit := &BasicLit{Value: p.lit, Kind: p.scanner.LitKind()}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen: // parenthesized expression
		pos := p.pos
		p.next()
		x := p.expr()
		p.want(_Rparen)
		paren := &ParenExpr{X: x}
		paren.pos = pos
		return paren

	case _New:
		return p.newExpr()

	case _This:
		if p.classDepth == 0 {
			p.syntaxError("this outside of class body")
		}
		t := &ThisExpr{}
		t.pos = p.pos
		p.next()
		return t

	case _Super:
		if p.classDepth == 0 {
			p.syntaxError("super outside of class body")
		}
		s := &SuperExpr{}
		s.pos = p.pos
		p.next()
		p.want(_Dot)
		s.Sel = p.name().Value
		return s

	case _Lbrack, _Map, _Chan:
		// Composite type in expression position: a type reference,
		// optionally followed by a composite literal body.
		pos := p.pos
		raw := &RawExpr{Text: p.typeRef()}
		raw.pos = pos
		if p.tok == _Lbrace && !p.inHeader {
			raw.Text += p.rawBraces()
		}
		return raw

	case _Func:
		// Function literals pass through untouched.
		raw := &RawExpr{}
		raw.pos = p.pos
		raw.Text = p.scanner.ScanRaw()
		p.sync()
		return raw

	default:
		p.syntaxError("expected operand, found " + p.tok.String())
		n := &Name{Value: "_"}
		n.pos = p.pos
		return n
	}
}

// rawBraces captures a balanced brace block verbatim, starting at the
// current '{' token.
func (p *Parser) rawBraces() string {
	text := p.scanner.ScanRaw()
	p.sync()
	return text
}

// callExpr parses Fun(args...)
func (p *Parser) callExpr(fun Expr) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()

	p.want(_Lparen)
	if p.tok != _Rparen {
		call.Args = p.exprList()
	}
	p.want(_Rparen)

	return call
}

// indexExpr parses X[Index]
func (p *Parser) indexExpr(x Expr) Expr {
	idx := &IndexExpr{X: x}
	idx.pos = x.Pos()

	p.want(_Lbrack)
	idx.Index = p.expr()
	p.want(_Rbrack)

	return idx
}

// selectorExpr parses X.Sel
func (p *Parser) selectorExpr(x Expr) Expr {
	sel := &SelectorExpr{X: x}
	sel.pos = x.Pos()

	p.want(_Dot)
	sel.Sel = p.name().Value

	return sel
}

// newExpr parses: new Class(args)
func (p *Parser) newExpr() Expr {
	n := &NewExpr{}
	n.pos = p.pos

	p.want(_New)
	n.Class = p.name().Value
	p.want(_Lparen)
	if p.tok != _Rparen {
		n.Args = p.exprList()
	}
	p.want(_Rparen)

	return n
}

// exprList parses a comma-separated list of expressions.
func (p *Parser) exprList() []Expr {
	list := []Expr{p.expr()}
	for p.got(_Comma) {
		list = append(list, p.expr())
	}
	return list
}

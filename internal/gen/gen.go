// Package gen lowers Go-Extended syntax trees to standard Go source text.
//
// Classes become structs with the parent embedded first, constructors
// become NewC factory functions, and try/catch/finally becomes an
// immediately-invoked function with deferred recovery. Types are opaque:
// the generator carries type reference text through unchanged.
package gen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goex-lang/goex/internal/syntax"
)

// ExceptionsPkg is the package name of the shared exception module
// emitted in project mode.
const ExceptionsPkg = "exceptions"

// Context carries the settings a single Generate call runs under.
type Context struct {
	// ProjectMode selects the multi-unit layout: exception support types
	// live in a shared package instead of being emitted inline, and
	// references to them are package-qualified.
	ProjectMode bool

	// ExceptionsImport is the import path of the shared exception module.
	// Only consulted in project mode.
	ExceptionsImport string

	// Classes maps class name to declaration for every class in scope.
	// Used to resolve super references to the parent type.
	Classes map[string]*syntax.ClassDecl
}

// GenError reports a lowering fault tied to a source position.
type GenError struct {
	Pos syntax.Pos
	Msg string
}

func (e *GenError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Generate lowers a parsed unit to Go source text.
// Output is deterministic for a given file and context.
func (ctx *Context) Generate(file *syntax.File) (string, error) {
	g := &generator{
		ctx:      ctx,
		receiver: "this",
	}

	// Declarations render first so the header only carries what the
	// lowered text references: a try without catch clauses must not
	// pull in fmt or the shared exception module.
	var body strings.Builder
	g.e = &emitter{w: &body}
	for _, d := range file.Decls {
		g.decl(d)
		g.e.blank()
	}

	if g.failure != nil {
		return "", g.failure
	}
	if g.e.err != nil {
		return "", g.e.err
	}

	var sb strings.Builder
	g.e = &emitter{w: &sb}
	g.e.line("package %s", file.PkgName)
	g.e.blank()

	g.importBlock(file)

	if g.refsExceptions && !g.ctx.ProjectMode {
		g.exceptionTypes()
		g.e.blank()
	}
	if g.e.err != nil {
		return "", g.e.err
	}

	sb.WriteString(body.String())
	return sb.String(), nil
}

type generator struct {
	e   *emitter
	ctx *Context

	receiver string             // rendering of this (obj inside constructors)
	class    *syntax.ClassDecl  // class being emitted, nil at top level

	refsExceptions bool // lowered text references the exception facility
	needsFmt       bool // recovery blocks render raw panics with fmt

	failure error // first lowering fault
}

// fail records the first lowering fault.
func (g *generator) fail(pos syntax.Pos, format string, args ...interface{}) {
	if g.failure == nil {
		g.failure = &GenError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
	}
}

// ----------------------------------------------------------------------------
// Unit layout

// importBlock merges the unit's own imports with the ones the lowering
// introduces and emits them sorted. Deduplication keys on alias and
// path together: a unit that imports fmt under an alias still gets the
// plain fmt entry the recovery block references.
func (g *generator) importBlock(file *syntax.File) {
	type imp struct{ alias, path string }
	var imports []imp
	seen := map[imp]bool{}

	add := func(alias, path string) {
		i := imp{alias, path}
		if !seen[i] {
			seen[i] = true
			imports = append(imports, i)
		}
	}

	for _, d := range file.Imports {
		add(d.Alias, d.Path)
	}
	if g.needsFmt {
		add("", "fmt")
	}
	if g.refsExceptions && g.ctx.ProjectMode {
		add("", g.ctx.ExceptionsImport)
	}

	if len(imports) == 0 {
		return
	}

	sort.Slice(imports, func(i, j int) bool {
		if imports[i].path != imports[j].path {
			return imports[i].path < imports[j].path
		}
		return imports[i].alias < imports[j].alias
	})

	g.e.line("import (")
	g.e.in()
	for _, im := range imports {
		if im.alias != "" {
			g.e.line("%s %q", im.alias, im.path)
		} else {
			g.e.line("%q", im.path)
		}
	}
	g.e.out()
	g.e.line(")")
	g.e.blank()
}

// exceptionTypes emits the inline exception support types used in
// single-file mode. Project builds emit the same declarations once into
// the shared module instead.
func (g *generator) exceptionTypes() {
	g.e.line("// Exception types")
	g.e.line("type Exception interface {")
	g.e.in()
	g.e.line("Error() string")
	g.e.line("Type() string")
	g.e.out()
	g.e.line("}")
	g.e.blank()

	g.e.line("type BaseException struct {")
	g.e.in()
	g.e.line("message string")
	g.e.line("exType string")
	g.e.out()
	g.e.line("}")
	g.e.blank()

	g.e.line("func (e *BaseException) Error() string {")
	g.e.in()
	g.e.line("return e.message")
	g.e.out()
	g.e.line("}")
	g.e.blank()

	g.e.line("func (e *BaseException) Type() string {")
	g.e.in()
	g.e.line("return e.exType")
	g.e.out()
	g.e.line("}")
	g.e.blank()

	g.e.line("func NewException(exType, message string) Exception {")
	g.e.in()
	g.e.line("return &BaseException{message: message, exType: exType}")
	g.e.out()
	g.e.line("}")
}

// ----------------------------------------------------------------------------
// Declarations

func (g *generator) decl(d syntax.Decl) {
	switch d := d.(type) {
	case *syntax.ClassDecl:
		g.classDecl(d)

	case *syntax.FuncDecl:
		g.e.line("func %s(%s)%s {", d.Name, g.params(d.Params), g.results(d.Results))
		g.e.in()
		g.block(d.Body)
		g.e.out()
		g.e.line("}")

	case *syntax.VarDecl:
		switch {
		case d.Type != "" && d.Value != nil:
			g.e.line("var %s %s = %s", d.Name, g.typ(d.Type), g.expr(d.Value))
		case d.Type != "":
			g.e.line("var %s %s", d.Name, g.typ(d.Type))
		case d.Value != nil:
			g.e.line("var %s = %s", d.Name, g.expr(d.Value))
		default:
			g.fail(d.Pos(), "variable %s has neither type nor value", d.Name)
		}

	case *syntax.ConstDecl:
		if d.Type != "" {
			g.e.line("const %s %s = %s", d.Name, g.typ(d.Type), g.expr(d.Value))
		} else {
			g.e.line("const %s = %s", d.Name, g.expr(d.Value))
		}

	case *syntax.TypeDecl:
		if d.Alias {
			g.e.line("type %s = %s", d.Name, g.typ(d.Type))
		} else {
			g.e.line("type %s %s", d.Name, g.typ(d.Type))
		}

	case *syntax.StructDecl:
		g.e.line("type %s struct {", d.Name)
		g.e.in()
		for _, f := range d.Fields {
			g.e.line("%s %s", f.Name, g.typ(f.Type))
		}
		g.e.out()
		g.e.line("}")

	case *syntax.InterfaceDecl:
		g.e.line("type %s interface {", d.Name)
		g.e.in()
		for _, em := range d.Embeds {
			g.e.line("%s", g.typ(em))
		}
		for _, m := range d.Methods {
			g.e.line("%s(%s)%s", m.Name, g.params(m.Params), g.results(m.Results))
		}
		g.e.out()
		g.e.line("}")

	default:
		g.fail(d.Pos(), "unsupported declaration %T", d)
	}
}

// classDecl lowers a class to a struct plus factory and methods.
// The parent, when present, is embedded as the first struct member so
// field and method promotion follows the embedding rules.
func (g *generator) classDecl(d *syntax.ClassDecl) {
	g.class = d
	defer func() { g.class = nil }()

	g.e.line("type %s struct {", d.Name)
	g.e.in()
	if d.Extends != "" {
		g.e.line("%s", d.Extends)
	}
	for _, f := range d.Fields {
		g.e.line("%s %s", f.Name, g.typ(f.Type))
	}
	g.e.out()
	g.e.line("}")
	g.e.blank()

	if d.Constructor != nil {
		g.constructor(d, d.Constructor)
	} else {
		g.defaultConstructor(d)
	}

	for _, m := range d.Methods {
		g.e.blank()
		g.method(d, m)
	}
}

// constructor lowers a constructor to a NewC factory: allocate, apply
// field defaults, initialize the embedded parent from a leading super
// call, run the body with this bound to obj, return obj.
func (g *generator) constructor(d *syntax.ClassDecl, c *syntax.ConstructorDecl) {
	g.e.line("func New%s(%s) *%s {", d.Name, g.params(c.Params), d.Name)
	g.e.in()
	g.e.line("obj := &%s{}", d.Name)

	g.fieldDefaults(d)

	save := g.receiver
	g.receiver = "obj"

	if c.Super != nil {
		if c.Super.Parent != d.Extends {
			g.fail(c.Super.Pos(), "super call targets %s, but %s extends %s",
				c.Super.Parent, d.Name, d.Extends)
		}
		g.e.line("obj.%s = *New%s(%s)", c.Super.Parent, c.Super.Parent, g.exprs(c.Super.Args))
	}

	for _, s := range c.Body.Stmts {
		g.stmt(s)
	}
	g.receiver = save

	g.e.line("return obj")
	g.e.out()
	g.e.line("}")
}

// defaultConstructor emits the factory for classes without a declared
// constructor.
func (g *generator) defaultConstructor(d *syntax.ClassDecl) {
	g.e.line("func New%s() *%s {", d.Name, d.Name)
	g.e.in()
	g.e.line("obj := &%s{}", d.Name)
	g.fieldDefaults(d)
	g.e.line("return obj")
	g.e.out()
	g.e.line("}")
}

// fieldDefaults assigns declared field default values to obj.
func (g *generator) fieldDefaults(d *syntax.ClassDecl) {
	save := g.receiver
	g.receiver = "obj"
	for _, f := range d.Fields {
		if f.Default != nil {
			g.e.line("obj.%s = %s", f.Name, g.expr(f.Default))
		}
	}
	g.receiver = save
}

// method lowers a method to a pointer-receiver function. Subclass
// methods shadow parent methods through embedding; no dispatch logic is
// generated.
func (g *generator) method(d *syntax.ClassDecl, m *syntax.MethodDecl) {
	g.e.line("func (this *%s) %s(%s)%s {", d.Name, m.Name, g.params(m.Params), g.results(m.Results))
	g.e.in()
	g.block(m.Body)
	g.e.out()
	g.e.line("}")
}

// params renders a parameter list, collapsing name groups that share a
// trailing type.
func (g *generator) params(params []*syntax.Param) string {
	var parts []string
	var group []string

	for _, p := range params {
		group = append(group, p.Name)
		if p.Type != "" {
			parts = append(parts, strings.Join(group, ", ")+" "+g.typ(p.Type))
			group = nil
		}
	}
	if len(group) > 0 {
		parts = append(parts, strings.Join(group, ", "))
	}

	return strings.Join(parts, ", ")
}

// results renders a result list with its leading space, or "".
func (g *generator) results(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + g.typ(results[0])
	default:
		qualified := make([]string, len(results))
		for i, r := range results {
			qualified[i] = g.typ(r)
		}
		return " (" + strings.Join(qualified, ", ") + ")"
	}
}

// ----------------------------------------------------------------------------
// Statements

func (g *generator) block(b *syntax.BlockStmt) {
	for _, s := range b.Stmts {
		g.stmt(s)
	}
}

func (g *generator) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.BlockStmt:
		g.e.line("{")
		g.e.in()
		g.block(s)
		g.e.out()
		g.e.line("}")

	case *syntax.ExprStmt:
		g.e.line("%s", g.expr(s.X))

	case *syntax.DeclStmt:
		g.localDecl(s.D)

	case *syntax.AssignStmt:
		g.e.line("%s", g.assignString(s))

	case *syntax.IncDecStmt:
		g.e.line("%s%s", g.expr(s.X), s.Op)

	case *syntax.SendStmt:
		g.e.line("%s <- %s", g.expr(s.Chan), g.expr(s.Value))

	case *syntax.IfStmt:
		g.ifStmt(s)

	case *syntax.ForStmt:
		g.forStmt(s)

	case *syntax.RangeStmt:
		g.rangeStmt(s)

	case *syntax.SwitchStmt:
		g.switchStmt(s)

	case *syntax.ReturnStmt:
		if len(s.Results) > 0 {
			g.e.line("return %s", g.exprs(s.Results))
		} else {
			g.e.line("return")
		}

	case *syntax.BranchStmt:
		g.e.line("%s", s.Tok)

	case *syntax.GoStmt:
		g.e.line("go %s", g.expr(s.Call))

	case *syntax.DeferStmt:
		g.e.line("defer %s", g.expr(s.Call))

	case *syntax.TryStmt:
		g.tryStmt(s)

	case *syntax.ThrowStmt:
		g.e.line("panic(%s)", g.expr(s.X))

	case *syntax.RawStmt:
		g.rawLines(s.Text)

	default:
		g.fail(s.Pos(), "unsupported statement %T", s)
	}
}

// localDecl emits a declaration appearing in statement position.
// Value-only var declarations lower to short form.
func (g *generator) localDecl(d syntax.Decl) {
	if v, ok := d.(*syntax.VarDecl); ok && v.Type == "" && v.Value != nil {
		g.e.line("%s := %s", v.Name, g.expr(v.Value))
		return
	}
	g.decl(d)
}

func (g *generator) ifStmt(s *syntax.IfStmt) {
	g.e.line("if %s {", g.expr(s.Cond))
	g.e.in()
	g.block(s.Then)
	g.e.out()

	switch e := s.Else.(type) {
	case nil:
		g.e.line("}")
	case *syntax.BlockStmt:
		g.e.line("} else {")
		g.e.in()
		g.block(e)
		g.e.out()
		g.e.line("}")
	case *syntax.IfStmt:
		// Flatten else-if chains: re-enter with the closing brace fused.
		g.elseIf(e)
	}
}

// elseIf emits an else-if link of a chain.
func (g *generator) elseIf(s *syntax.IfStmt) {
	g.e.line("} else if %s {", g.expr(s.Cond))
	g.e.in()
	g.block(s.Then)
	g.e.out()

	switch e := s.Else.(type) {
	case nil:
		g.e.line("}")
	case *syntax.BlockStmt:
		g.e.line("} else {")
		g.e.in()
		g.block(e)
		g.e.out()
		g.e.line("}")
	case *syntax.IfStmt:
		g.elseIf(e)
	}
}

func (g *generator) forStmt(s *syntax.ForStmt) {
	switch {
	case s.Init == nil && s.Cond == nil && s.Post == nil:
		g.e.line("for {")
	case s.Init == nil && s.Post == nil:
		g.e.line("for %s {", g.expr(s.Cond))
	default:
		init, post, cond := "", "", ""
		if s.Init != nil {
			init = g.simpleStmtString(s.Init)
		}
		if s.Cond != nil {
			cond = g.expr(s.Cond)
		}
		if s.Post != nil {
			post = g.simpleStmtString(s.Post)
		}
		g.e.line("for %s; %s; %s {", init, cond, post)
	}

	g.e.in()
	g.block(s.Body)
	g.e.out()
	g.e.line("}")
}

func (g *generator) rangeStmt(s *syntax.RangeStmt) {
	op := "="
	if s.Def {
		op = ":="
	}
	switch {
	case s.Key != nil && s.Value != nil:
		g.e.line("for %s, %s %s range %s {", g.expr(s.Key), g.expr(s.Value), op, g.expr(s.X))
	case s.Key != nil:
		g.e.line("for %s %s range %s {", g.expr(s.Key), op, g.expr(s.X))
	default:
		g.e.line("for range %s {", g.expr(s.X))
	}
	g.e.in()
	g.block(s.Body)
	g.e.out()
	g.e.line("}")
}

func (g *generator) switchStmt(s *syntax.SwitchStmt) {
	if s.Tag != nil {
		g.e.line("switch %s {", g.expr(s.Tag))
	} else {
		g.e.line("switch {")
	}

	g.e.in()
	for _, c := range s.Cases {
		if c.Values == nil {
			g.e.line("default:")
		} else {
			g.e.line("case %s:", g.exprs(c.Values))
		}
		g.e.in()
		for _, cs := range c.Body {
			g.stmt(cs)
		}
		g.e.out()
	}
	g.e.out()
	g.e.line("}")
}

// tryStmt lowers try/catch/finally to an immediately-invoked function.
//
// The recovery defer is registered first and the finally defer second,
// so reverse-of-registration order runs the finally block before the
// recovery completes the scope, and unconditionally on both normal and
// panicking exits.
func (g *generator) tryStmt(s *syntax.TryStmt) {
	g.e.line("func() {")
	g.e.in()

	if len(s.Catches) > 0 {
		g.needsFmt = true // recovery wraps raw panic values with fmt.Sprintf
		g.e.line("defer func() {")
		g.e.in()
		g.e.line("if r := recover(); r != nil {")
		g.e.in()

		g.e.line("var ex %s", g.qualify("Exception"))
		g.e.line("if e, ok := r.(%s); ok {", g.qualify("Exception"))
		g.e.in()
		g.e.line("ex = e")
		g.e.out()
		g.e.line("} else {")
		g.e.in()
		g.e.line(`ex = %s("RuntimeError", fmt.Sprintf("%%v", r))`, g.qualify("NewException"))
		g.e.out()
		g.e.line("}")
		g.e.blank()

		for i, c := range s.Catches {
			cond := "true"
			if c.Tag != "" && c.Tag != "Exception" {
				cond = fmt.Sprintf("ex.Type() == %q", c.Tag)
			}
			if i == 0 {
				g.e.line("if %s {", cond)
			} else {
				g.e.line("} else if %s {", cond)
			}
			g.e.in()
			if c.Name != "" {
				g.e.line("%s := ex", c.Name)
				g.e.line("_ = %s", c.Name)
			}
			g.block(c.Body)
			g.e.out()
		}
		g.e.line("}")

		g.e.out()
		g.e.line("}")
		g.e.out()
		g.e.line("}()")
	}

	if s.Finally != nil {
		g.e.line("defer func() {")
		g.e.in()
		g.block(s.Finally)
		g.e.out()
		g.e.line("}()")
	}

	g.block(s.Body)

	g.e.out()
	g.e.line("}()")
}

// simpleStmtString renders a simple statement for a for header.
func (g *generator) simpleStmtString(s syntax.Stmt) string {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		return g.expr(s.X)
	case *syntax.AssignStmt:
		return g.assignString(s)
	case *syntax.IncDecStmt:
		return g.expr(s.X) + s.Op.String()
	case *syntax.DeclStmt:
		if v, ok := s.D.(*syntax.VarDecl); ok && v.Type == "" && v.Value != nil {
			return v.Name + " := " + g.expr(v.Value)
		}
	}
	g.fail(s.Pos(), "statement not allowed in for header: %T", s)
	return ""
}

// assignString renders an assignment statement.
func (g *generator) assignString(s *syntax.AssignStmt) string {
	return g.exprs(s.LHS) + " " + s.Op.String() + " " + g.exprs(s.RHS)
}

// rawLines emits pass-through text. The first line lands at the current
// indentation; continuation lines keep their original layout.
func (g *generator) rawLines(text string) {
	lines := strings.Split(text, "\n")
	g.e.line("%s", lines[0])
	for _, l := range lines[1:] {
		g.e.raw(l)
	}
}

// ----------------------------------------------------------------------------
// Expressions

// exprs renders a comma-separated expression list.
func (g *generator) exprs(list []syntax.Expr) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = g.expr(e)
	}
	return strings.Join(parts, ", ")
}

// expr renders an expression to Go source text.
// Binary operations are fully parenthesized; Go's own precedence then
// matches the parse regardless of operator choice.
func (g *generator) expr(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.Name:
		return g.qualify(e.Value)

	case *syntax.BasicLit:
		if e.Kind == syntax.StringLit {
			return strconv.Quote(e.Value)
		}
		return e.Value

	case *syntax.Operation:
		if e.Y == nil {
			return e.Op.String() + g.expr(e.X)
		}
		return "(" + g.expr(e.X) + " " + e.Op.String() + " " + g.expr(e.Y) + ")"

	case *syntax.CallExpr:
		return g.expr(e.Fun) + "(" + g.exprs(e.Args) + ")"

	case *syntax.IndexExpr:
		return g.expr(e.X) + "[" + g.expr(e.Index) + "]"

	case *syntax.SelectorExpr:
		return g.expr(e.X) + "." + e.Sel

	case *syntax.ParenExpr:
		return "(" + g.expr(e.X) + ")"

	case *syntax.NewExpr:
		return g.qualify("New"+e.Class) + "(" + g.exprs(e.Args) + ")"

	case *syntax.ThisExpr:
		return g.receiver

	case *syntax.SuperExpr:
		// super.M resolves to the embedded parent's method explicitly,
		// so an overriding method can still reach the shadowed one.
		if g.class == nil || g.class.Extends == "" {
			g.fail(e.Pos(), "super used in a class without a parent")
			return g.receiver + "." + e.Sel
		}
		return g.receiver + "." + g.class.Extends + "." + e.Sel

	case *syntax.RawExpr:
		return e.Text

	default:
		g.fail(e.Pos(), "unsupported expression %T", e)
		return ""
	}
}

// qualify renders an exception facility identifier, prefixing it with
// the shared package name in project mode. Rendering one marks the
// unit so the header carries the support the text relies on.
func (g *generator) qualify(name string) string {
	switch name {
	case "Exception", "BaseException", "NewException":
		g.refsExceptions = true
		if g.ctx.ProjectMode {
			return ExceptionsPkg + "." + name
		}
	}
	return name
}

// typ renders an opaque type reference, qualifying exception
// identifiers inside it in project mode.
func (g *generator) typ(t string) string {
	for _, name := range [...]string{"Exception", "BaseException"} {
		q, found := qualifyWord(t, name, ExceptionsPkg+"."+name)
		if found {
			g.refsExceptions = true
			if g.ctx.ProjectMode {
				t = q
			}
		}
	}
	return t
}

// qualifyWord replaces whole-word occurrences of old in t, skipping
// occurrences preceded by a dot (already qualified or a selector).
// found reports whether any occurrence was replaced.
func qualifyWord(t, old, new string) (_ string, found bool) {
	var sb strings.Builder
	for i := 0; i < len(t); {
		j := strings.Index(t[i:], old)
		if j < 0 {
			sb.WriteString(t[i:])
			break
		}
		j += i
		end := j + len(old)
		leftOK := j == 0 || (!isWordByte(t[j-1]) && t[j-1] != '.')
		rightOK := end == len(t) || !isWordByte(t[end])
		sb.WriteString(t[i:j])
		if leftOK && rightOK {
			sb.WriteString(new)
			found = true
		} else {
			sb.WriteString(old)
		}
		i = end
	}
	return sb.String(), found
}

func isWordByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}

package syntax

// ----------------------------------------------------------------------------
// Interfaces

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() Pos
	aNode()
}

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface implemented by all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface implemented by all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// ----------------------------------------------------------------------------
// Base types

// node is the base implementation embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (*node) aNode()     {}

// expr is the base implementation embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is the base implementation embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is the base implementation embedded in all declaration nodes.
type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// File

// File represents a single parsed source file.
type File struct {
	PkgName string        // package clause name
	Imports []*ImportDecl // import declarations, in source order
	Decls   []Decl        // top-level declarations, in source order
	node
}

// ----------------------------------------------------------------------------
// Declarations

// ImportDecl represents a single import.
//
//	import "fmt"
//	import str "strings"
type ImportDecl struct {
	Alias string // optional local alias; "" if none
	Path  string // import path without quotes
	decl
}

// ClassDecl represents a class declaration.
//
//	class Name extends Parent { fields... constructor methods... }
type ClassDecl struct {
	Name        string
	Extends     string // parent class name; "" if none
	Fields      []*FieldDecl
	Constructor *ConstructorDecl // nil if none
	Methods     []*MethodDecl
	decl
}

// FieldDecl represents a class field.
//
//	name string = "unknown"
type FieldDecl struct {
	Name    string
	Type    string // opaque type reference text
	Default Expr   // optional default value; nil if none
	decl
}

// ConstructorDecl represents a class constructor.
// The constructor shares the class name and has no return type.
type ConstructorDecl struct {
	Params []*Param
	Super  *SuperCall // leading super call; nil if none
	Body   *BlockStmt // body without the super call
	decl
}

// SuperCall represents the super.Parent(args) call that may open a
// constructor body.
type SuperCall struct {
	Parent string
	Args   []Expr
	node
}

// MethodDecl represents a method inside a class body.
type MethodDecl struct {
	Name    string
	Params  []*Param
	Results []string // opaque result type texts
	Body    *BlockStmt
	decl
}

// FuncDecl represents a top-level function declaration.
type FuncDecl struct {
	Name    string
	Params  []*Param
	Results []string // opaque result type texts
	Body    *BlockStmt
	decl
}

// Param represents a single function, method, or constructor parameter.
type Param struct {
	Name string
	Type string // opaque type reference text; "" when shared with a later param
	node
}

// VarDecl represents a top-level var declaration.
//
//	var name Type = value
type VarDecl struct {
	Name  string
	Type  string // opaque type reference text; "" if inferred
	Value Expr   // nil if none
	decl
}

// ConstDecl represents a top-level const declaration.
type ConstDecl struct {
	Name  string
	Type  string // "" if inferred
	Value Expr
	decl
}

// TypeDecl represents a type alias or definition.
//
//	type Name = Other
//	type Name Other
type TypeDecl struct {
	Name  string
	Alias bool
	Type  string // opaque type reference text
	decl
}

// StructDecl represents a plain struct type declaration.
//
//	type Name struct { fields }
type StructDecl struct {
	Name   string
	Fields []*FieldDecl
	decl
}

// InterfaceDecl represents an interface type declaration.
type InterfaceDecl struct {
	Name    string
	Embeds  []string     // embedded interface names
	Methods []*MethodSig // method signatures
	decl
}

// MethodSig represents a single method signature inside an interface.
type MethodSig struct {
	Name    string
	Params  []*Param
	Results []string
	node
}

// ----------------------------------------------------------------------------
// Statements

// BlockStmt represents a braced statement list.
type BlockStmt struct {
	Stmts []Stmt
	stmt
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	X Expr
	stmt
}

// DeclStmt represents a var, const, or type declaration inside a function body.
type DeclStmt struct {
	D Decl
	stmt
}

// AssignStmt represents an assignment or short variable declaration.
//
//	a = b
//	a, b := f()
//	a += 1
type AssignStmt struct {
	Op  Token // _Assign, _Define, or a compound assignment operator
	LHS []Expr
	RHS []Expr
	stmt
}

// IncDecStmt represents x++ or x--.
type IncDecStmt struct {
	X  Expr
	Op Token // _Inc or _Dec
	stmt
}

// SendStmt represents a channel send ch <- v.
type SendStmt struct {
	Chan  Expr
	Value Expr
	stmt
}

// IfStmt represents an if statement.
type IfStmt struct {
	Cond Expr
	Then *BlockStmt
	Else Stmt // *IfStmt (else if), *BlockStmt (else), or nil
	stmt
}

// ForStmt represents a for loop: classic, condition-only, or infinite.
type ForStmt struct {
	Init Stmt // nil unless classic form
	Cond Expr // nil for infinite loop
	Post Stmt // nil unless classic form
	Body *BlockStmt
	stmt
}

// RangeStmt represents a for-range loop.
//
//	for k, v := range x { ... }
type RangeStmt struct {
	Key   Expr  // nil if omitted
	Value Expr  // nil if omitted
	Def   bool  // := vs =
	X     Expr  // ranged-over expression
	Body  *BlockStmt
	stmt
}

// SwitchStmt represents a switch statement.
type SwitchStmt struct {
	Tag   Expr // nil for tagless switch
	Cases []*CaseClause
	stmt
}

// CaseClause represents a single case or default clause in a switch.
type CaseClause struct {
	Values []Expr // nil means default
	Body   []Stmt
	node
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Results []Expr
	stmt
}

// BranchStmt represents a break or continue statement.
type BranchStmt struct {
	Tok Token // _Break or _Continue
	stmt
}

// GoStmt represents a go statement.
type GoStmt struct {
	Call Expr
	stmt
}

// DeferStmt represents a defer statement.
type DeferStmt struct {
	Call Expr
	stmt
}

// TryStmt represents a try/catch/finally statement.
// At least one catch clause or a finally block is present.
type TryStmt struct {
	Body    *BlockStmt
	Catches []*CatchClause
	Finally *BlockStmt // nil if none
	stmt
}

// CatchClause represents a single catch clause.
//
//	catch (e) { ... }          — catches everything
//	catch (NotFound e) { ... } — catches a tagged exception
type CatchClause struct {
	Tag  string // exception tag; "" for an untagged catch-all
	Name string // bound variable name; "" if the clause binds nothing
	Body *BlockStmt
	node
}

// ThrowStmt represents a throw statement.
type ThrowStmt struct {
	X Expr
	stmt
}

// RawStmt carries verbatim source text for statements passed through
// untouched (select blocks, fallthrough).
type RawStmt struct {
	Text string
	stmt
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	Value string
	expr
}

// BasicLit represents a literal: integer, float, string, or bool.
type BasicLit struct {
	Value string // literal text; for strings, the decoded content
	Kind  LitKind
	expr
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
type Operation struct {
	Op   Token
	X, Y Expr
	expr
}

// CallExpr represents a function or method call.
type CallExpr struct {
	Fun  Expr
	Args []Expr
	expr
}

// IndexExpr represents x[i].
type IndexExpr struct {
	X     Expr
	Index Expr
	expr
}

// SelectorExpr represents x.Sel.
type SelectorExpr struct {
	X   Expr
	Sel string
	expr
}

// ParenExpr represents (x).
type ParenExpr struct {
	X Expr
	expr
}

// NewExpr represents a class instantiation.
//
//	new Point(1, 2)
type NewExpr struct {
	Class string
	Args  []Expr
	expr
}

// ThisExpr represents the this keyword inside a class body.
type ThisExpr struct {
	expr
}

// SuperExpr represents super.Method used as a call receiver inside a
// method body.
//
//	super.Describe()
type SuperExpr struct {
	Sel string
	expr
}

// RawExpr carries verbatim source text for expressions passed through
// untouched (composite literals, function literals, type conversions of
// composite types).
type RawExpr struct {
	Text string
	expr
}

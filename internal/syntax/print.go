package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// sub prints a labeled child subtree.
func (p *printer) sub(label string, node Node) {
	if node == nil {
		return
	}
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

// subList prints a labeled list of child subtrees.
func (p *printer) subList(label string, nodes []Node) {
	if len(nodes) == 0 {
		return
	}
	p.printf("%s:\n", label)
	p.indent++
	for _, n := range nodes {
		p.print(n)
	}
	p.indent--
}

func exprNodes(exprs []Expr) []Node {
	nodes := make([]Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}

func stmtNodes(stmts []Stmt) []Node {
	nodes := make([]Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return nodes
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		p.printf("Package: %s\n", n.PkgName)
		for _, imp := range n.Imports {
			p.print(imp)
		}
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *ImportDecl:
		if n.Alias != "" {
			p.printf("ImportDecl %s %s %q\n", n.pos, n.Alias, n.Path)
		} else {
			p.printf("ImportDecl %s %q\n", n.pos, n.Path)
		}

	case *ClassDecl:
		p.printf("ClassDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name)
		if n.Extends != "" {
			p.printf("Extends: %s\n", n.Extends)
		}
		for _, f := range n.Fields {
			p.print(f)
		}
		if n.Constructor != nil {
			p.print(n.Constructor)
		}
		for _, m := range n.Methods {
			p.print(m)
		}
		p.indent--

	case *FieldDecl:
		p.printf("FieldDecl %s %s %s\n", n.pos, n.Name, n.Type)
		p.indent++
		p.sub("Default", n.Default)
		p.indent--

	case *ConstructorDecl:
		p.printf("ConstructorDecl %s\n", n.pos)
		p.indent++
		p.params(n.Params)
		if n.Super != nil {
			p.print(n.Super)
		}
		p.sub("Body", n.Body)
		p.indent--

	case *SuperCall:
		p.printf("SuperCall %s %s\n", n.pos, n.Parent)
		p.indent++
		p.subList("Args", exprNodes(n.Args))
		p.indent--

	case *MethodDecl:
		p.printf("MethodDecl %s %s\n", n.pos, n.Name)
		p.indent++
		p.params(n.Params)
		p.results(n.Results)
		p.sub("Body", n.Body)
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s %s\n", n.pos, n.Name)
		p.indent++
		p.params(n.Params)
		p.results(n.Results)
		p.sub("Body", n.Body)
		p.indent--

	case *Param:
		p.printf("Param %s %s\n", n.Name, n.Type)

	case *VarDecl:
		p.printf("VarDecl %s %s %s\n", n.pos, n.Name, n.Type)
		p.indent++
		p.sub("Value", n.Value)
		p.indent--

	case *ConstDecl:
		p.printf("ConstDecl %s %s %s\n", n.pos, n.Name, n.Type)
		p.indent++
		p.sub("Value", n.Value)
		p.indent--

	case *TypeDecl:
		if n.Alias {
			p.printf("TypeDecl %s %s = %s\n", n.pos, n.Name, n.Type)
		} else {
			p.printf("TypeDecl %s %s %s\n", n.pos, n.Name, n.Type)
		}

	case *StructDecl:
		p.printf("StructDecl %s %s\n", n.pos, n.Name)
		p.indent++
		for _, f := range n.Fields {
			p.print(f)
		}
		p.indent--

	case *InterfaceDecl:
		p.printf("InterfaceDecl %s %s\n", n.pos, n.Name)
		p.indent++
		for _, e := range n.Embeds {
			p.printf("Embed: %s\n", e)
		}
		for _, m := range n.Methods {
			p.print(m)
		}
		p.indent--

	case *MethodSig:
		p.printf("MethodSig %s %s\n", n.pos, n.Name)
		p.indent++
		p.params(n.Params)
		p.results(n.Results)
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *DeclStmt:
		p.printf("DeclStmt %s\n", n.pos)
		p.indent++
		p.print(n.D)
		p.indent--

	case *AssignStmt:
		p.printf("AssignStmt %s %s\n", n.pos, n.Op)
		p.indent++
		p.subList("LHS", exprNodes(n.LHS))
		p.subList("RHS", exprNodes(n.RHS))
		p.indent--

	case *IncDecStmt:
		p.printf("IncDecStmt %s %s\n", n.pos, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *SendStmt:
		p.printf("SendStmt %s\n", n.pos)
		p.indent++
		p.sub("Chan", n.Chan)
		p.sub("Value", n.Value)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.sub("Cond", n.Cond)
		p.sub("Then", n.Then)
		p.sub("Else", n.Else)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		p.sub("Init", n.Init)
		p.sub("Cond", n.Cond)
		p.sub("Post", n.Post)
		p.sub("Body", n.Body)
		p.indent--

	case *RangeStmt:
		p.printf("RangeStmt %s define=%v\n", n.pos, n.Def)
		p.indent++
		p.sub("Key", n.Key)
		p.sub("Value", n.Value)
		p.sub("X", n.X)
		p.sub("Body", n.Body)
		p.indent--

	case *SwitchStmt:
		p.printf("SwitchStmt %s\n", n.pos)
		p.indent++
		p.sub("Tag", n.Tag)
		for _, c := range n.Cases {
			p.print(c)
		}
		p.indent--

	case *CaseClause:
		if n.Values == nil {
			p.printf("Default %s\n", n.pos)
		} else {
			p.printf("Case %s\n", n.pos)
		}
		p.indent++
		p.subList("Values", exprNodes(n.Values))
		p.subList("Body", stmtNodes(n.Body))
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		p.indent++
		p.subList("Results", exprNodes(n.Results))
		p.indent--

	case *BranchStmt:
		p.printf("BranchStmt %s %s\n", n.pos, n.Tok)

	case *GoStmt:
		p.printf("GoStmt %s\n", n.pos)
		p.indent++
		p.print(n.Call)
		p.indent--

	case *DeferStmt:
		p.printf("DeferStmt %s\n", n.pos)
		p.indent++
		p.print(n.Call)
		p.indent--

	case *TryStmt:
		p.printf("TryStmt %s\n", n.pos)
		p.indent++
		p.sub("Body", n.Body)
		for _, c := range n.Catches {
			p.print(c)
		}
		p.sub("Finally", n.Finally)
		p.indent--

	case *CatchClause:
		p.printf("CatchClause %s tag=%q name=%q\n", n.pos, n.Tag, n.Name)
		p.indent++
		p.sub("Body", n.Body)
		p.indent--

	case *ThrowStmt:
		p.printf("ThrowStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *RawStmt:
		p.printf("RawStmt %s %q\n", n.pos, n.Text)

	case *Name:
		p.printf("Name %s %s\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *Operation:
		p.printf("Operation %s %s\n", n.pos, n.Op)
		p.indent++
		p.sub("X", n.X)
		p.sub("Y", n.Y)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.indent++
		p.sub("Fun", n.Fun)
		p.subList("Args", exprNodes(n.Args))
		p.indent--

	case *IndexExpr:
		p.printf("IndexExpr %s\n", n.pos)
		p.indent++
		p.sub("X", n.X)
		p.sub("Index", n.Index)
		p.indent--

	case *SelectorExpr:
		p.printf("SelectorExpr %s %s\n", n.pos, n.Sel)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *NewExpr:
		p.printf("NewExpr %s %s\n", n.pos, n.Class)
		p.indent++
		p.subList("Args", exprNodes(n.Args))
		p.indent--

	case *ThisExpr:
		p.printf("ThisExpr %s\n", n.pos)

	case *SuperExpr:
		p.printf("SuperExpr %s %s\n", n.pos, n.Sel)

	case *RawExpr:
		p.printf("RawExpr %s %q\n", n.pos, n.Text)

	default:
		p.printf("Unknown node %T\n", n)
	}
}

// params prints a parameter list.
func (p *printer) params(params []*Param) {
	if len(params) == 0 {
		return
	}
	p.printf("Params:\n")
	p.indent++
	for _, prm := range params {
		p.print(prm)
	}
	p.indent--
}

// results prints a result type list.
func (p *printer) results(results []string) {
	if len(results) == 0 {
		return
	}
	p.printf("Results: %s\n", strings.Join(results, ", "))
}

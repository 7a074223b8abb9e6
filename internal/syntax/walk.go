package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, imp := range n.Imports {
			Walk(imp, v)
		}
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *ClassDecl:
		for _, f := range n.Fields {
			Walk(f, v)
		}
		if n.Constructor != nil {
			Walk(n.Constructor, v)
		}
		for _, m := range n.Methods {
			Walk(m, v)
		}

	case *FieldDecl:
		if n.Default != nil {
			Walk(n.Default, v)
		}

	case *ConstructorDecl:
		for _, prm := range n.Params {
			Walk(prm, v)
		}
		if n.Super != nil {
			Walk(n.Super, v)
		}
		Walk(n.Body, v)

	case *SuperCall:
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *MethodDecl:
		for _, prm := range n.Params {
			Walk(prm, v)
		}
		Walk(n.Body, v)

	case *FuncDecl:
		for _, prm := range n.Params {
			Walk(prm, v)
		}
		Walk(n.Body, v)

	case *VarDecl:
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *ConstDecl:
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *StructDecl:
		for _, f := range n.Fields {
			Walk(f, v)
		}

	case *InterfaceDecl:
		for _, m := range n.Methods {
			Walk(m, v)
		}

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *ExprStmt:
		Walk(n.X, v)

	case *DeclStmt:
		Walk(n.D, v)

	case *AssignStmt:
		for _, e := range n.LHS {
			Walk(e, v)
		}
		for _, e := range n.RHS {
			Walk(e, v)
		}

	case *IncDecStmt:
		Walk(n.X, v)

	case *SendStmt:
		Walk(n.Chan, v)
		Walk(n.Value, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, v)
		}
		if n.Cond != nil {
			Walk(n.Cond, v)
		}
		if n.Post != nil {
			Walk(n.Post, v)
		}
		Walk(n.Body, v)

	case *RangeStmt:
		if n.Key != nil {
			Walk(n.Key, v)
		}
		if n.Value != nil {
			Walk(n.Value, v)
		}
		Walk(n.X, v)
		Walk(n.Body, v)

	case *SwitchStmt:
		if n.Tag != nil {
			Walk(n.Tag, v)
		}
		for _, c := range n.Cases {
			Walk(c, v)
		}

	case *CaseClause:
		for _, e := range n.Values {
			Walk(e, v)
		}
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *ReturnStmt:
		for _, e := range n.Results {
			Walk(e, v)
		}

	case *GoStmt:
		Walk(n.Call, v)

	case *DeferStmt:
		Walk(n.Call, v)

	case *TryStmt:
		Walk(n.Body, v)
		for _, c := range n.Catches {
			Walk(c, v)
		}
		if n.Finally != nil {
			Walk(n.Finally, v)
		}

	case *CatchClause:
		Walk(n.Body, v)

	case *ThrowStmt:
		Walk(n.X, v)

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *IndexExpr:
		Walk(n.X, v)
		Walk(n.Index, v)

	case *SelectorExpr:
		Walk(n.X, v)

	case *ParenExpr:
		Walk(n.X, v)

	case *NewExpr:
		for _, a := range n.Args {
			Walk(a, v)
		}

	// Leaf nodes: ImportDecl, TypeDecl, Param, MethodSig, BranchStmt,
	// RawStmt, Name, BasicLit, ThisExpr, SuperExpr, RawExpr.
	// No children to visit.
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

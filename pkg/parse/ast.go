package parse

import "src.autoui.dev/pkg/diag"

// Node is implemented by all AST nodes.
type Node interface {
	diag.Ranger
	isNode()
}

// Stmt is a statement. At the top level of a file, statements are type
// declarations, function declarations, let statements and expression
// statements.
type Stmt interface {
	Node
	isStmt()
}

// Expr is an expression.
type Expr interface {
	Node
	isExpr()
}

// File is a whole source file.
type File struct {
	diag.Ranging
	Name  string
	Stmts []Stmt
}

// TypeDecl declares a type with fields and methods:
//
//	type Counter is Widget {
//		count int = 0
//		fn view() { ... }
//	}
type TypeDecl struct {
	diag.Ranging
	Name    string
	Caps    []string
	Fields  []*FieldDecl
	Methods []*FnDecl
}

// Method returns the method with the given name, or nil.
func (d *TypeDecl) Method(name string) *FnDecl {
	for _, m := range d.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// FieldDecl declares a field of a type. Default is nil if absent.
type FieldDecl struct {
	diag.Ranging
	Name    string
	Type    string
	Default Expr
}

// FnDecl declares a function or a method.
type FnDecl struct {
	diag.Ranging
	Name   string
	Params []*Param
	Result string
	Body   []Stmt
}

// Param is a function parameter. Type may be empty.
type Param struct {
	diag.Ranging
	Name string
	Type string
}

// LetStmt binds a local name.
type LetStmt struct {
	diag.Ranging
	Name  string
	Value Expr
}

// AssignStmt assigns to a name or a self field. Op is one of "=", "+=",
// "-=", "*=" and "/=".
type AssignStmt struct {
	diag.Ranging
	Target Expr
	Op     string
	Value  Expr
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	diag.Ranging
	X Expr
}

// ReturnStmt returns from a function. Value is nil for a bare return.
type ReturnStmt struct {
	diag.Ranging
	Value Expr
}

// IfStmt is a conditional. Else may contain a single nested IfStmt for
// "else if".
type IfStmt struct {
	diag.Ranging
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// ForStmt iterates over a list.
type ForStmt struct {
	diag.Ranging
	Var  string
	Iter Expr
	Body []Stmt
}

// IsStmt matches a value against patterns:
//
//	is ev {
//		Msg.Inc => .count += 1
//		else => {}
//	}
type IsStmt struct {
	diag.Ranging
	Subject Expr
	Arms    []*IsArm
	Else    []Stmt
}

// IsArm is one non-else arm of an IsStmt.
type IsArm struct {
	diag.Ranging
	Pattern Expr
	Body    []Stmt
}

// IntLit is an integer literal.
type IntLit struct {
	diag.Ranging
	Value int
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	diag.Ranging
	Value float64
}

// StringLit is a string literal, with escape sequences processed.
type StringLit struct {
	diag.Ranging
	Value string
}

// FString is an interpolated string f"...". Parts are StringLit pieces and
// interpolated expressions.
type FString struct {
	diag.Ranging
	Parts []Expr
}

// BoolLit is true or false.
type BoolLit struct {
	diag.Ranging
	Value bool
}

// NilLit is nil.
type NilLit struct {
	diag.Ranging
}

// ListLit is a list literal.
type ListLit struct {
	diag.Ranging
	Elems []Expr
}

// Ident is a name.
type Ident struct {
	diag.Ranging
	Name string
}

// FieldRef refers to a field of the current widget, written .name.
type FieldRef struct {
	diag.Ranging
	Name string
}

// MemberExpr is a member access X.Name.
type MemberExpr struct {
	diag.Ranging
	X    Expr
	Name string
}

// CallExpr is a call, optionally followed by a body of properties and
// children:
//
//	button("+") { onclick: Msg.Inc }
//	col { text("a"); text("b") }
//
// HasParens and HasBody record which of the two parts were written.
type CallExpr struct {
	diag.Ranging
	Fn        Expr
	Args      []Expr
	Props     []*Prop
	Children  []Expr
	HasParens bool
	HasBody   bool
}

// Prop is a named property in the body of a CallExpr.
type Prop struct {
	diag.Ranging
	Name  string
	Value Expr
}

// UnaryExpr is a unary operation. Op is "-" or "!".
type UnaryExpr struct {
	diag.Ranging
	Op string
	X  Expr
}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	diag.Ranging
	Op   string
	X, Y Expr
}

func (*File) isNode()       {}
func (*TypeDecl) isNode()   {}
func (*FieldDecl) isNode()  {}
func (*FnDecl) isNode()     {}
func (*Param) isNode()      {}
func (*LetStmt) isNode()    {}
func (*AssignStmt) isNode() {}
func (*ExprStmt) isNode()   {}
func (*ReturnStmt) isNode() {}
func (*IfStmt) isNode()     {}
func (*ForStmt) isNode()    {}
func (*IsStmt) isNode()     {}
func (*IsArm) isNode()      {}
func (*IntLit) isNode()     {}
func (*FloatLit) isNode()   {}
func (*StringLit) isNode()  {}
func (*FString) isNode()    {}
func (*BoolLit) isNode()    {}
func (*NilLit) isNode()     {}
func (*ListLit) isNode()    {}
func (*Ident) isNode()      {}
func (*FieldRef) isNode()   {}
func (*MemberExpr) isNode() {}
func (*CallExpr) isNode()   {}
func (*Prop) isNode()       {}
func (*UnaryExpr) isNode()  {}
func (*BinaryExpr) isNode() {}

func (*TypeDecl) isStmt()   {}
func (*FnDecl) isStmt()     {}
func (*LetStmt) isStmt()    {}
func (*AssignStmt) isStmt() {}
func (*ExprStmt) isStmt()   {}
func (*ReturnStmt) isStmt() {}
func (*IfStmt) isStmt()     {}
func (*ForStmt) isStmt()    {}
func (*IsStmt) isStmt()     {}

func (*IntLit) isExpr()     {}
func (*FloatLit) isExpr()   {}
func (*StringLit) isExpr()  {}
func (*FString) isExpr()    {}
func (*BoolLit) isExpr()    {}
func (*NilLit) isExpr()     {}
func (*ListLit) isExpr()    {}
func (*Ident) isExpr()      {}
func (*FieldRef) isExpr()   {}
func (*MemberExpr) isExpr() {}
func (*CallExpr) isExpr()   {}
func (*UnaryExpr) isExpr()  {}
func (*BinaryExpr) isExpr() {}

// MemberPath returns the dotted path of an expression made of an Ident
// followed by member accesses, like "Msg.Inc". It returns false for any other
// expression.
func MemberPath(e Expr) (string, bool) {
	switch e := e.(type) {
	case *Ident:
		return e.Name, true
	case *MemberExpr:
		if x, ok := MemberPath(e.X); ok {
			return x + "." + e.Name, true
		}
	}
	return "", false
}

// Walk calls f for n and every node under it in depth-first order, skipping
// the children of nodes for which f returns false.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	walkAll := func(ns ...Node) {
		for _, n := range ns {
			Walk(n, f)
		}
	}
	switch n := n.(type) {
	case *File:
		walkAll(stmts(n.Stmts)...)
	case *TypeDecl:
		for _, field := range n.Fields {
			Walk(field, f)
		}
		for _, m := range n.Methods {
			Walk(m, f)
		}
	case *FieldDecl:
		walkAll(optExpr(n.Default)...)
	case *FnDecl:
		for _, p := range n.Params {
			Walk(p, f)
		}
		walkAll(stmts(n.Body)...)
	case *LetStmt:
		walkAll(n.Value)
	case *AssignStmt:
		walkAll(n.Target, n.Value)
	case *ExprStmt:
		walkAll(n.X)
	case *ReturnStmt:
		walkAll(optExpr(n.Value)...)
	case *IfStmt:
		walkAll(n.Cond)
		walkAll(stmts(n.Then)...)
		walkAll(stmts(n.Else)...)
	case *ForStmt:
		walkAll(n.Iter)
		walkAll(stmts(n.Body)...)
	case *IsStmt:
		walkAll(n.Subject)
		for _, arm := range n.Arms {
			Walk(arm, f)
		}
		walkAll(stmts(n.Else)...)
	case *IsArm:
		walkAll(n.Pattern)
		walkAll(stmts(n.Body)...)
	case *FString:
		walkAll(exprs(n.Parts)...)
	case *ListLit:
		walkAll(exprs(n.Elems)...)
	case *MemberExpr:
		walkAll(n.X)
	case *CallExpr:
		walkAll(n.Fn)
		walkAll(exprs(n.Args)...)
		for _, p := range n.Props {
			Walk(p, f)
		}
		walkAll(exprs(n.Children)...)
	case *Prop:
		walkAll(n.Value)
	case *UnaryExpr:
		walkAll(n.X)
	case *BinaryExpr:
		walkAll(n.X, n.Y)
	}
}

func stmts(ss []Stmt) []Node {
	ns := make([]Node, len(ss))
	for i, s := range ss {
		ns[i] = s
	}
	return ns
}

func exprs(es []Expr) []Node {
	ns := make([]Node, len(es))
	for i, e := range es {
		ns[i] = e
	}
	return ns
}

func optExpr(e Expr) []Node {
	if e == nil {
		return nil
	}
	return []Node{e}
}

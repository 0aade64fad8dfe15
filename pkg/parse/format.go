package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// Format returns canonical source text for a node. Statements in blocks are
// separated by "; " and everything is written on one line; operands that are
// themselves operations are parenthesized, so the result shows how the
// expression was grouped.
func Format(n Node) string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n Node) {
	w := func(ss ...string) {
		for _, s := range ss {
			sb.WriteString(s)
		}
	}
	switch n := n.(type) {
	case nil:
		w("<nil>")
	case *File:
		formatStmts(sb, n.Stmts, "\n")
	case *TypeDecl:
		w("type ", n.Name)
		if len(n.Caps) > 0 {
			w(" is ", strings.Join(n.Caps, ", "))
		}
		w(" {")
		for _, f := range n.Fields {
			w(" ")
			format(sb, f)
			w(";")
		}
		for _, m := range n.Methods {
			w(" ")
			format(sb, m)
			w(";")
		}
		w(" }")
	case *FieldDecl:
		w(n.Name)
		if n.Type != "" {
			w(" ", n.Type)
		}
		if n.Default != nil {
			w(" = ")
			format(sb, n.Default)
		}
	case *FnDecl:
		w("fn ", n.Name, "(")
		for i, p := range n.Params {
			if i > 0 {
				w(", ")
			}
			format(sb, p)
		}
		w(")")
		if n.Result != "" {
			w(" ", n.Result)
		}
		w(" ")
		formatBlock(sb, n.Body)
	case *Param:
		w(n.Name)
		if n.Type != "" {
			w(" ", n.Type)
		}
	case *LetStmt:
		w("let ", n.Name, " = ")
		format(sb, n.Value)
	case *AssignStmt:
		format(sb, n.Target)
		w(" ", n.Op, " ")
		format(sb, n.Value)
	case *ExprStmt:
		format(sb, n.X)
	case *ReturnStmt:
		w("return")
		if n.Value != nil {
			w(" ")
			format(sb, n.Value)
		}
	case *IfStmt:
		w("if ")
		format(sb, n.Cond)
		w(" ")
		formatBlock(sb, n.Then)
		if n.Else != nil {
			w(" else ")
			formatBlock(sb, n.Else)
		}
	case *ForStmt:
		w("for ", n.Var, " in ")
		format(sb, n.Iter)
		w(" ")
		formatBlock(sb, n.Body)
	case *IsStmt:
		w("is ")
		format(sb, n.Subject)
		w(" {")
		for _, arm := range n.Arms {
			w(" ")
			format(sb, arm)
			w(";")
		}
		if n.Else != nil {
			w(" else => ")
			formatBlock(sb, n.Else)
			w(";")
		}
		w(" }")
	case *IsArm:
		format(sb, n.Pattern)
		w(" => ")
		formatBlock(sb, n.Body)
	case *IntLit:
		w(strconv.Itoa(n.Value))
	case *FloatLit:
		s := strconv.FormatFloat(n.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		w(s)
	case *StringLit:
		w(quote(n.Value, false))
	case *FString:
		w(`f"`)
		for _, part := range n.Parts {
			switch part := part.(type) {
			case *StringLit:
				q := quote(part.Value, true)
				w(q[1 : len(q)-1])
			default:
				w("${")
				format(sb, part)
				w("}")
			}
		}
		w(`"`)
	case *BoolLit:
		w(strconv.FormatBool(n.Value))
	case *NilLit:
		w("nil")
	case *ListLit:
		w("[")
		formatExprs(sb, n.Elems)
		w("]")
	case *Ident:
		w(n.Name)
	case *FieldRef:
		w(".", n.Name)
	case *MemberExpr:
		formatOperand(sb, n.X)
		w(".", n.Name)
	case *CallExpr:
		formatOperand(sb, n.Fn)
		if n.HasParens {
			w("(")
			formatExprs(sb, n.Args)
			w(")")
		}
		if n.HasBody {
			w(" {")
			for _, p := range n.Props {
				w(" ")
				format(sb, p)
				w(";")
			}
			for _, c := range n.Children {
				w(" ")
				format(sb, c)
				w(";")
			}
			w(" }")
		}
	case *Prop:
		w(n.Name, ": ")
		format(sb, n.Value)
	case *UnaryExpr:
		w(n.Op)
		formatOperand(sb, n.X)
	case *BinaryExpr:
		formatOperand(sb, n.X)
		w(" ", n.Op, " ")
		formatOperand(sb, n.Y)
	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

func formatOperand(sb *strings.Builder, x Expr) {
	switch x.(type) {
	case *BinaryExpr, *UnaryExpr:
		sb.WriteString("(")
		format(sb, x)
		sb.WriteString(")")
	default:
		format(sb, x)
	}
}

func formatBlock(sb *strings.Builder, stmts []Stmt) {
	if len(stmts) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{ ")
	formatStmts(sb, stmts, "; ")
	sb.WriteString(" }")
}

func formatStmts(sb *strings.Builder, stmts []Stmt, sep string) {
	for i, s := range stmts {
		if i > 0 {
			sb.WriteString(sep)
		}
		format(sb, s)
	}
}

func formatExprs(sb *strings.Builder, exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		format(sb, e)
	}
}

// Quotes s as an Auto string literal.
func quote(s string, fstring bool) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '$':
			if fstring {
				sb.WriteString(`\$`)
			} else {
				sb.WriteRune(r)
			}
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

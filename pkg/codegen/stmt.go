package codegen

import (
	"strconv"
	"strings"

	"src.autoui.dev/pkg/parse"
)

func (g *generator) writeOn() {
	s := g.sink
	s.Linef("func (w *%s) On(msg %s) {", g.info.Name, g.sy.msgType)
	s.Indent()
	if m := g.info.Decl.Method("on"); m != nil && len(m.Params) > 0 {
		g.scoped(func() {
			param := m.Params[0].Name
			g.locals[param] = "msg"
			for _, st := range m.Body {
				if is, ok := st.(*parse.IsStmt); ok && isIdent(is.Subject, param) {
					g.writeDispatch(is)
				} else {
					g.stmt(st)
				}
			}
		})
	}
	s.Dedent()
	s.Line("}")
	s.Line("")
}

func isIdent(e parse.Expr, name string) bool {
	id, ok := e.(*parse.Ident)
	return ok && id.Name == name
}

// Writes a switch over the message with one case per arm whose pattern names
// a collected variant.
func (g *generator) writeDispatch(is *parse.IsStmt) {
	s := g.sink
	s.Line("switch msg {")
	for _, arm := range is.Arms {
		id, ok := messageID(arm.Pattern)
		if !ok {
			s.Linef("// unsupported pattern: %s", parse.Format(arm.Pattern))
			continue
		}
		constant, ok := g.sy.constant(id)
		if !ok {
			logger.Printf("%s: message %s is not used by the view", g.info.Name, id)
			continue
		}
		s.Linef("case %s:", constant)
		g.block(arm.Body)
	}
	if is.Else != nil {
		s.Line("default:")
		g.block(is.Else)
	}
	s.Line("}")
}

func messageID(e parse.Expr) (string, bool) {
	if lit, ok := e.(*parse.StringLit); ok {
		return lit.Value, true
	}
	return parse.MemberPath(e)
}

// Runs f with a copy of the local scope, restoring it afterwards.
func (g *generator) scoped(f func()) {
	saved := make(map[string]string, len(g.locals))
	for k, v := range g.locals {
		saved[k] = v
	}
	defer func() { g.locals = saved }()
	f()
}

// Writes indented statements in a new scope.
func (g *generator) block(stmts []parse.Stmt) {
	g.sink.Indent()
	g.scoped(func() {
		for _, st := range stmts {
			g.stmt(st)
		}
	})
	g.sink.Dedent()
}

func (g *generator) stmt(st parse.Stmt) {
	s := g.sink
	switch st := st.(type) {
	case *parse.ExprStmt:
		if _, ok := st.X.(*parse.CallExpr); ok {
			s.Line(g.expr(st.X))
		} else {
			s.Line("_ = " + g.expr(st.X))
		}
	case *parse.LetStmt:
		name := localName(st.Name)
		s.Linef("%s := %s", name, g.expr(st.Value))
		g.locals[st.Name] = name
	case *parse.AssignStmt:
		s.Linef("%s %s %s", g.expr(st.Target), st.Op, g.expr(st.Value))
	case *parse.ReturnStmt:
		s.Line("return")
	case *parse.IfStmt:
		s.Linef("if %s {", g.expr(st.Cond))
		g.block(st.Then)
		if st.Else != nil {
			s.Line("} else {")
			g.block(st.Else)
		}
		s.Line("}")
	case *parse.ForStmt:
		s.Linef("for _, %s := range %s {", localName(st.Var), g.expr(st.Iter))
		g.scoped(func() {
			g.locals[st.Var] = localName(st.Var)
			g.block(st.Body)
		})
		s.Line("}")
	case *parse.IsStmt:
		s.Linef("switch %s {", g.expr(st.Subject))
		for _, arm := range st.Arms {
			s.Linef("case %s:", g.expr(arm.Pattern))
			g.block(arm.Body)
		}
		if st.Else != nil {
			s.Line("default:")
			g.block(st.Else)
		}
		s.Line("}")
	default:
		s.Line("// unsupported statement: " + oneLine(parse.Format(st)))
	}
}

var builtinCalls = map[string]string{
	"str":   "fmt.Sprint",
	"len":   "len",
	"print": "fmt.Println",
}

func (g *generator) expr(e parse.Expr) string {
	switch e := e.(type) {
	case *parse.IntLit:
		return strconv.Itoa(e.Value)
	case *parse.FloatLit:
		return formatFloat(e.Value)
	case *parse.StringLit:
		return strconv.Quote(e.Value)
	case *parse.BoolLit:
		return strconv.FormatBool(e.Value)
	case *parse.NilLit:
		return "nil"
	case *parse.FString:
		return g.fstring(e)
	case *parse.ListLit:
		elems := make([]string, len(e.Elems))
		for i, elem := range e.Elems {
			elems[i] = g.expr(elem)
		}
		return "[]any{" + strings.Join(elems, ", ") + "}"
	case *parse.Ident:
		if local, ok := g.locals[e.Name]; ok {
			return local
		}
		if g.fields[e.Name] {
			return "w." + localName(e.Name)
		}
		return e.Name
	case *parse.FieldRef:
		return "w." + localName(e.Name)
	case *parse.MemberExpr:
		path, ok := parse.MemberPath(e)
		if !ok {
			return g.operand(e.X) + "." + e.Name
		}
		if constant, ok := g.sy.constant(path); ok {
			return constant
		}
		return strconv.Quote(path)
	case *parse.UnaryExpr:
		return e.Op + g.operand(e.X)
	case *parse.BinaryExpr:
		return g.operand(e.X) + " " + e.Op + " " + g.operand(e.Y)
	case *parse.CallExpr:
		return g.call(e)
	}
	return "nil /* unsupported expression */"
}

// Like expr, but parenthesizes operator expressions.
func (g *generator) operand(e parse.Expr) string {
	switch e.(type) {
	case *parse.UnaryExpr, *parse.BinaryExpr:
		return "(" + g.expr(e) + ")"
	}
	return g.expr(e)
}

func (g *generator) call(e *parse.CallExpr) string {
	id, ok := e.Fn.(*parse.Ident)
	if !ok || e.HasBody {
		return "nil /* unknown call: " + comment(parse.Format(e)) + " */"
	}
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = g.expr(arg)
	}
	fn := id.Name
	if goFn, ok := builtinCalls[fn]; ok {
		fn = goFn
	} else if g.info.Decl.Method(fn) != nil {
		fn = "w." + fn
	}
	return fn + "(" + strings.Join(args, ", ") + ")"
}

// Translates an f-string into a string literal or a fmt.Sprintf call.
func (g *generator) fstring(e *parse.FString) string {
	var format strings.Builder
	var args []string
	for _, part := range e.Parts {
		if lit, ok := part.(*parse.StringLit); ok {
			format.WriteString(strings.ReplaceAll(lit.Value, "%", "%%"))
		} else {
			format.WriteString("%v")
			args = append(args, g.expr(part))
		}
	}
	if len(args) == 0 {
		return strconv.Quote(strings.ReplaceAll(format.String(), "%%", "%"))
	}
	return "fmt.Sprintf(" + strconv.Quote(format.String()) + ", " + strings.Join(args, ", ") + ")"
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func oneLine(s string) string { return strings.ReplaceAll(s, "\n", "; ") }

// Makes text safe to put in a block comment.
func comment(s string) string { return strings.ReplaceAll(oneLine(s), "*/", "* /") }

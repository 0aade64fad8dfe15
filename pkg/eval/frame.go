package eval

import (
	"fmt"

	"src.autoui.dev/pkg/diag"
	"src.autoui.dev/pkg/parse"
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/widget"
)

const maxCallDepth = 256

// frame is the context of evaluating code.
type frame struct {
	ev    *Evaler
	prog  *program
	scope *scope
	// Field table of the widget whose method is running; nil outside methods.
	self   map[string]any
	widget string
	depth  int
}

// A chain of local variable tables. The root of the chain is the global
// table.
type scope struct {
	vars   map[string]any
	parent *scope
}

func (fm *frame) errorf(r diag.Ranger, format string, args ...any) error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(fm.prog.src.Name, fm.prog.src.Code, r),
	}
}

// Wraps an error from an operation in the context of r. Errors that already
// carry a location are returned unchanged.
func (fm *frame) wrap(r diag.Ranger, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return fm.errorf(r, "%v", err)
}

func (fm *frame) push() { fm.scope = &scope{vars: make(map[string]any), parent: fm.scope} }
func (fm *frame) pop()  { fm.scope = fm.scope.parent }

// Looks up a variable: locals first, then fields of self, then globals.
func (fm *frame) lookup(name string) (any, bool) {
	for s := fm.scope; s != nil && s.parent != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	if v, ok := fm.self[name]; ok {
		return v, true
	}
	v, ok := fm.prog.globals[name]
	return v, ok
}

func (fm *frame) set(name string, v any) bool {
	for s := fm.scope; s != nil && s.parent != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return true
		}
	}
	if _, ok := fm.self[name]; ok {
		fm.self[name] = v
		return true
	}
	if _, ok := fm.prog.globals[name]; ok {
		fm.prog.globals[name] = v
		return true
	}
	return false
}

func (fm *frame) call(d *parse.FnDecl, at diag.Ranger, args []any) (any, error) {
	if len(args) != len(d.Params) {
		return nil, fm.errorf(at, "%v", ArityMismatch{"arguments to " + d.Name, len(d.Params), len(args)})
	}
	if fm.depth >= maxCallDepth {
		return nil, fm.errorf(at, "maximum call depth exceeded")
	}
	vars := make(map[string]any, len(args))
	for i, p := range d.Params {
		vars[p.Name] = args[i]
	}
	callee := &frame{
		ev: fm.ev, prog: fm.prog, self: fm.self, widget: fm.widget, depth: fm.depth + 1,
		scope: &scope{vars: vars, parent: &scope{vars: fm.prog.globals}},
	}
	v, _, err := callee.execStmts(d.Body)
	return v, err
}

// Runs statements in a new scope. The value is that of the last statement,
// or of the return statement that ended the block.
func (fm *frame) execBlock(stmts []parse.Stmt) (any, bool, error) {
	fm.push()
	defer fm.pop()
	return fm.execStmts(stmts)
}

func (fm *frame) execStmts(stmts []parse.Stmt) (any, bool, error) {
	var last any
	for _, s := range stmts {
		v, returned, err := fm.exec(s)
		if err != nil || returned {
			return v, returned, err
		}
		last = v
	}
	return last, false, nil
}

func (fm *frame) exec(s parse.Stmt) (any, bool, error) {
	switch s := s.(type) {
	case *parse.ExprStmt:
		v, err := fm.eval(s.X)
		return v, false, err
	case *parse.LetStmt:
		v, err := fm.eval(s.Value)
		if err != nil {
			return nil, false, err
		}
		fm.scope.vars[s.Name] = v
		return nil, false, nil
	case *parse.AssignStmt:
		return nil, false, fm.assign(s)
	case *parse.ReturnStmt:
		if s.Value == nil {
			return nil, true, nil
		}
		v, err := fm.eval(s.Value)
		return v, true, err
	case *parse.IfStmt:
		cond, err := fm.eval(s.Cond)
		if err != nil {
			return nil, false, err
		}
		b, ok := cond.(bool)
		if !ok {
			return nil, false, fm.errorf(s.Cond, "condition must be bool, got %s", vals.Kind(cond))
		}
		if b {
			return fm.execBlock(s.Then)
		}
		return fm.execBlock(s.Else)
	case *parse.ForStmt:
		iter, err := fm.eval(s.Iter)
		if err != nil {
			return nil, false, err
		}
		list, ok := iter.(vals.List)
		if !ok {
			return nil, false, fm.errorf(s.Iter, "cannot iterate over %s", vals.Kind(iter))
		}
		for _, elem := range list {
			fm.push()
			fm.scope.vars[s.Var] = elem
			v, returned, err := fm.execStmts(s.Body)
			fm.pop()
			if err != nil || returned {
				return v, returned, err
			}
		}
		return nil, false, nil
	case *parse.IsStmt:
		subject, err := fm.eval(s.Subject)
		if err != nil {
			return nil, false, err
		}
		for _, arm := range s.Arms {
			pattern, err := fm.eval(arm.Pattern)
			if err != nil {
				return nil, false, err
			}
			if vals.Equal(subject, pattern) {
				return fm.execBlock(arm.Body)
			}
		}
		return fm.execBlock(s.Else)
	case *parse.TypeDecl, *parse.FnDecl:
		return nil, false, fm.errorf(s, "declarations are only allowed at the top level")
	}
	return nil, false, fm.errorf(s, "unsupported statement %T", s)
}

func (fm *frame) assign(s *parse.AssignStmt) error {
	v, err := fm.eval(s.Value)
	if err != nil {
		return err
	}
	var name string
	var old any
	var ok bool
	switch target := s.Target.(type) {
	case *parse.FieldRef:
		name = target.Name
		if fm.self == nil {
			return fm.errorf(target, "field .%s used outside a method", name)
		}
		old, ok = fm.self[name]
		if !ok {
			return fm.errorf(target, "%s has no field %s", fm.widget, name)
		}
	case *parse.Ident:
		name = target.Name
		old, ok = fm.lookup(name)
		if !ok {
			return fm.errorf(target, "variable %s not found", name)
		}
	default:
		return fm.errorf(s.Target, "cannot assign to this expression")
	}
	if s.Op != "=" {
		if v, err = binary(s.Op[:1], old, v); err != nil {
			return fm.wrap(s, err)
		}
	}
	if _, isField := s.Target.(*parse.FieldRef); isField {
		fm.self[name] = v
	} else {
		fm.set(name, v)
	}
	return nil
}

func (fm *frame) eval(e parse.Expr) (any, error) {
	switch e := e.(type) {
	case *parse.IntLit:
		return e.Value, nil
	case *parse.FloatLit:
		return e.Value, nil
	case *parse.StringLit:
		return e.Value, nil
	case *parse.BoolLit:
		return e.Value, nil
	case *parse.NilLit:
		return nil, nil
	case *parse.FString:
		s := ""
		for _, part := range e.Parts {
			v, err := fm.eval(part)
			if err != nil {
				return nil, err
			}
			s += vals.ToString(v)
		}
		return s, nil
	case *parse.ListLit:
		list := make(vals.List, 0, len(e.Elems))
		for _, elem := range e.Elems {
			v, err := fm.eval(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case *parse.Ident:
		if v, ok := fm.lookup(e.Name); ok {
			return v, nil
		}
		return nil, fm.errorf(e, "variable %s not found", e.Name)
	case *parse.FieldRef:
		if fm.self == nil {
			return nil, fm.errorf(e, "field .%s used outside a method", e.Name)
		}
		v, ok := fm.self[e.Name]
		if !ok {
			return nil, fm.errorf(e, "%s has no field %s", fm.widget, e.Name)
		}
		return v, nil
	case *parse.MemberExpr:
		if path, ok := parse.MemberPath(e); ok && !fm.bound(rootName(e)) {
			// Member paths of unbound names, like Msg.Inc, are symbolic.
			return path, nil
		}
		x, err := fm.eval(e.X)
		if err != nil {
			return nil, err
		}
		return nil, fm.errorf(e, "%s has no member %s", vals.Kind(x), e.Name)
	case *parse.CallExpr:
		return fm.evalCall(e)
	case *parse.UnaryExpr:
		x, err := fm.eval(e.X)
		if err != nil {
			return nil, err
		}
		v, err := unary(e.Op, x)
		return v, fm.wrap(e, err)
	case *parse.BinaryExpr:
		return fm.evalBinary(e)
	}
	return nil, fm.errorf(e, "unsupported expression %T", e)
}

func rootName(e parse.Expr) string {
	for {
		switch x := e.(type) {
		case *parse.MemberExpr:
			e = x.X
		case *parse.Ident:
			return x.Name
		default:
			return ""
		}
	}
}

// Whether a name refers to a variable, field or declaration.
func (fm *frame) bound(name string) bool {
	_, ok := fm.lookup(name)
	return ok || fm.prog.declared(name)
}

func (fm *frame) evalBinary(e *parse.BinaryExpr) (any, error) {
	x, err := fm.eval(e.X)
	if err != nil {
		return nil, err
	}
	if e.Op == "&&" || e.Op == "||" {
		b, ok := x.(bool)
		if !ok {
			return nil, fm.errorf(e.X, "operand of %s must be bool, got %s", e.Op, vals.Kind(x))
		}
		if b == (e.Op == "||") {
			return b, nil
		}
		y, err := fm.eval(e.Y)
		if err != nil {
			return nil, err
		}
		if _, ok := y.(bool); !ok {
			return nil, fm.errorf(e.Y, "operand of %s must be bool, got %s", e.Op, vals.Kind(y))
		}
		return y, nil
	}
	y, err := fm.eval(e.Y)
	if err != nil {
		return nil, err
	}
	v, err := binary(e.Op, x, y)
	return v, fm.wrap(e, err)
}

func (fm *frame) evalArgs(exprs []parse.Expr) ([]any, error) {
	args := make([]any, len(exprs))
	for i, x := range exprs {
		v, err := fm.eval(x)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (fm *frame) evalCall(e *parse.CallExpr) (any, error) {
	id, ok := e.Fn.(*parse.Ident)
	if !ok {
		return nil, fm.errorf(e.Fn, "cannot call this expression")
	}
	name := id.Name
	if _, isVar := fm.lookup(name); isVar {
		return nil, fm.errorf(e.Fn, "cannot call variable %s", name)
	}
	if b, ok := builtins[name]; ok || fm.prog.fns[name] != nil {
		if e.HasBody {
			return nil, fm.errorf(e, "function %s cannot take a body", name)
		}
		args, err := fm.evalArgs(e.Args)
		if err != nil {
			return nil, err
		}
		if ok {
			v, err := b(fm, args)
			return v, fm.wrap(e, err)
		}
		return fm.call(fm.prog.fns[name], e, args)
	}
	if d, ok := fm.prog.types[name]; ok {
		if !widget.IsWidgetType(d) {
			return nil, fm.errorf(e, "type %s is not a widget", name)
		}
		return vals.Instance{Widget: name}, nil
	}
	return fm.evalNode(e, name)
}

// Builds a node from a call of an undeclared function.
func (fm *frame) evalNode(e *parse.CallExpr, kind string) (any, error) {
	n := vals.NewNode(kind)
	args, err := fm.evalArgs(e.Args)
	if err != nil {
		return nil, err
	}
	n.AddArg(args...)
	for _, p := range e.Props {
		v, err := fm.eval(p.Value)
		if err != nil {
			return nil, err
		}
		n.SetProp(p.Name, v)
	}
	for _, c := range e.Children {
		v, err := fm.eval(c)
		if err != nil {
			return nil, err
		}
		if err := addChildren(n, v); err != nil {
			return nil, fm.wrap(c, err)
		}
	}
	return n, nil
}

func addChildren(n *vals.Node, v any) error {
	switch v := v.(type) {
	case nil:
	case *vals.Node:
		n.AddChild(v)
	case vals.List:
		for _, elem := range v {
			if err := addChildren(n, elem); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("child of %s must be a node, got %s", n.Kind, vals.Kind(v))
	}
	return nil
}

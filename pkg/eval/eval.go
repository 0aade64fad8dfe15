// Package eval is a reference interpreter for Auto UI source. It evaluates
// the statements of a file, turning calls of undeclared functions into
// vals.Node trees, and runs widget methods against field tables owned by the
// caller.
package eval

import (
	"fmt"
	"io"

	"src.autoui.dev/pkg/diag"
	"src.autoui.dev/pkg/logutil"
	"src.autoui.dev/pkg/parse"
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/widget"
)

var logger = logutil.GetLogger("[eval] ")

// Error is a runtime error with the location of the failing code.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "runtime error" }

// Evaler interprets Auto UI programs. It keeps the last successfully
// interpreted program; a failed Interpret leaves it unchanged.
//
// An Evaler is not safe for concurrent use.
type Evaler struct {
	// Output of the print builtin. If nil, printed text is logged instead.
	Stdout io.Writer

	prog *program
}

// NewEvaler creates a new Evaler with no program loaded.
func NewEvaler() *Evaler { return &Evaler{} }

type program struct {
	src     parse.Source
	types   map[string]*parse.TypeDecl
	fns     map[string]*parse.FnDecl
	globals map[string]any
	result  any
}

// Interpret parses and runs code, returning the value of its last top-level
// expression statement, or nil if there is none. On success the program
// replaces the previously interpreted one.
func (ev *Evaler) Interpret(name, code string) (any, error) {
	src := parse.Source{Name: name, Code: code}
	f, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	p := &program{
		src:     src,
		types:   make(map[string]*parse.TypeDecl),
		fns:     make(map[string]*parse.FnDecl),
		globals: make(map[string]any),
	}
	fm := &frame{ev: ev, prog: p}
	for _, s := range f.Stmts {
		switch s := s.(type) {
		case *parse.TypeDecl:
			if p.declared(s.Name) {
				return nil, fm.errorf(s, "%s is already declared", s.Name)
			}
			p.types[s.Name] = s
		case *parse.FnDecl:
			if p.declared(s.Name) {
				return nil, fm.errorf(s, "%s is already declared", s.Name)
			}
			p.fns[s.Name] = s
		}
	}
	fm.scope = &scope{vars: p.globals}
	for _, s := range f.Stmts {
		switch s := s.(type) {
		case *parse.TypeDecl, *parse.FnDecl:
			continue
		case *parse.ExprStmt:
			v, err := fm.eval(s.X)
			if err != nil {
				return nil, err
			}
			p.result = v
		default:
			if _, _, err := fm.exec(s); err != nil {
				return nil, err
			}
		}
	}
	ev.prog = p
	logger.Printf("interpreted %s: %d types, %d functions, result %s",
		name, len(p.types), len(p.fns), vals.Kind(p.result))
	return p.result, nil
}

func (p *program) declared(name string) bool {
	_, isType := p.types[name]
	_, isFn := p.fns[name]
	return isType || isFn || isBuiltin(name)
}

// Result returns the result of the current program.
func (ev *Evaler) Result() any {
	if ev.prog == nil {
		return nil
	}
	return ev.prog.result
}

// Widgets returns the widget type declarations of the current program.
func (ev *Evaler) Widgets() map[string]*parse.TypeDecl {
	m := make(map[string]*parse.TypeDecl)
	if ev.prog != nil {
		for name, d := range ev.prog.types {
			if widget.IsWidgetType(d) {
				m[name] = d
			}
		}
	}
	return m
}

// Defaults returns a fresh field table for every widget type of the current
// program. Fields are initialized to their default expressions, or to the
// zero value of their declared type. A default that fails to evaluate leaves
// the field nil.
func (ev *Evaler) Defaults() map[string]map[string]any {
	tables := make(map[string]map[string]any)
	if ev.prog == nil {
		return tables
	}
	for name, d := range ev.Widgets() {
		fm := &frame{ev: ev, prog: ev.prog, scope: &scope{vars: ev.prog.globals}}
		fields := make(map[string]any, len(d.Fields))
		for _, f := range d.Fields {
			if f.Default == nil {
				fields[f.Name] = ZeroValue(f.Type)
				continue
			}
			v, err := fm.eval(f.Default)
			if err != nil {
				logger.Printf("default of %s.%s: %v", name, f.Name, err)
			}
			fields[f.Name] = v
		}
		tables[name] = fields
	}
	return tables
}

// InvokeMethod runs a method of a widget type of the current program. The
// method reads and writes the fields of the widget through self, which is
// borrowed for the duration of the call.
func (ev *Evaler) InvokeMethod(widgetName string, self map[string]any, method string, args ...any) (any, error) {
	if ev.prog == nil {
		return nil, fmt.Errorf("no program loaded")
	}
	d, ok := ev.prog.types[widgetName]
	if !ok {
		return nil, fmt.Errorf("type %s not found", widgetName)
	}
	m := d.Method(method)
	if m == nil {
		return nil, fmt.Errorf("type %s has no method %s", widgetName, method)
	}
	fm := &frame{ev: ev, prog: ev.prog, self: self, widget: widgetName}
	return fm.call(m, m, args)
}

// ZeroValue returns the zero value of a declared field type. Unknown types
// have a nil zero value.
func ZeroValue(typ string) any {
	switch typ {
	case "int":
		return 0
	case "float":
		return 0.0
	case "str", "string":
		return ""
	case "bool":
		return false
	case "list":
		return vals.List{}
	}
	return nil
}

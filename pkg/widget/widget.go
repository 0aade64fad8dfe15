// Package widget extracts widget descriptions from parsed type declarations.
//
// A widget is a type declaration that lists the Widget capability or defines a
// view method. [Extract] describes its model fields, with defaults evaluated
// by a restricted evaluator, and the node tree returned by its view method.
package widget

import (
	"fmt"

	"src.autoui.dev/pkg/errutil"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/logutil"
	"src.autoui.dev/pkg/parse"
	"src.autoui.dev/pkg/vals"
)

var logger = logutil.GetLogger("[widget] ")

// Capability is the capability that marks a type declaration as a widget.
const Capability = "Widget"

// IsWidgetType returns whether a type declaration is a widget.
func IsWidgetType(d *parse.TypeDecl) bool {
	for _, c := range d.Caps {
		if c == Capability {
			return true
		}
	}
	return d.Method("view") != nil
}

// Info describes a widget.
type Info struct {
	Name  string
	Model Model
	View  ViewRoot
	// The declaration the widget was extracted from; the code generator
	// recovers event handlers from its methods.
	Decl *parse.TypeDecl
}

// Model is the data of a widget. Field order is the declaration order.
type Model struct {
	Fields []Field
}

// Field is a model field.
type Field struct {
	Name string
	// Declared type, or the type inferred from the default value. Empty if
	// neither is known.
	Type string
	// Default value; nil if there is no default or it is not a basic
	// expression.
	Default any
	// Source of the default value; nil if there is none.
	Expr parse.Expr
}

// ViewRoot is the node tree returned by the view method.
type ViewRoot struct {
	Root *vals.Node
	// Whether Root is a placeholder substituted for a missing or incomplete
	// view method.
	Placeholder bool
}

// ExprKind is the kind of the nodes standing in for child expressions that
// are not node expressions. Their only argument is the parse.Expr.
const ExprKind = "$expr"

// Error is returned by Extract when a widget cannot be extracted under the
// Strict policy.
type Error struct {
	Widget  string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("widget %s: %s", e.Widget, e.Message) }

// Extract extracts a widget from a type declaration. The policy decides what
// happens when the view method is missing or does not end in a node
// expression: Permissive, the default, substitutes a placeholder node; Strict
// returns an *Error.
func Extract(d *parse.TypeDecl, p fallback.Policy) (*Info, error) {
	info := &Info{Name: d.Name, Decl: d}
	for _, f := range d.Fields {
		info.Model.Fields = append(info.Model.Fields, extractField(d.Name, f))
	}
	root, problem := viewRoot(d)
	if problem != "" {
		if p.Or(fallback.Permissive) == fallback.Strict {
			return nil, &Error{d.Name, problem}
		}
		logger.Printf("%s: %s, using placeholder", d.Name, problem)
		info.View = ViewRoot{Root: vals.Placeholder(), Placeholder: true}
		return info, nil
	}
	info.View = ViewRoot{Root: root}
	return info, nil
}

// ExtractFile extracts all widgets declared in a file, in declaration order.
// Errors from individual widgets are combined.
func ExtractFile(f *parse.File, p fallback.Policy) ([]*Info, error) {
	var infos []*Info
	var errs []error
	for _, s := range f.Stmts {
		d, ok := s.(*parse.TypeDecl)
		if !ok || !IsWidgetType(d) {
			continue
		}
		info, err := Extract(d, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		infos = append(infos, info)
	}
	return infos, errutil.Multi(errs...)
}

func extractField(widget string, f *parse.FieldDecl) Field {
	field := Field{Name: f.Name, Type: f.Type, Expr: f.Default}
	if f.Default != nil {
		if v, ok := EvalBasic(f.Default); ok {
			field.Default = v
		} else {
			logger.Printf("%s.%s: default is not a basic expression", widget, f.Name)
		}
	}
	if field.Type == "" && field.Default != nil {
		field.Type = vals.Kind(field.Default)
	}
	return field
}

// Returns the root node of the view method, or a description of why there is
// none.
func viewRoot(d *parse.TypeDecl) (*vals.Node, string) {
	m := d.Method("view")
	if m == nil {
		return nil, "no view method"
	}
	if len(m.Body) == 0 {
		return nil, "view method is empty"
	}
	var last parse.Expr
	switch s := m.Body[len(m.Body)-1].(type) {
	case *parse.ExprStmt:
		last = s.X
	case *parse.ReturnStmt:
		last = s.Value
	}
	call, ok := last.(*parse.CallExpr)
	if !ok {
		return nil, "last statement of view is not a node expression"
	}
	n, ok := nodeOf(call)
	if !ok {
		return nil, "last statement of view is not a node expression"
	}
	return n, ""
}

// Builds the node described by a node expression. Arguments and properties
// that are basic expressions or member paths become values; others are kept
// as parse.Expr.
func nodeOf(call *parse.CallExpr) (*vals.Node, bool) {
	id, ok := call.Fn.(*parse.Ident)
	if !ok {
		return nil, false
	}
	n := vals.NewNode(id.Name)
	for _, arg := range call.Args {
		n.AddArg(value(arg))
	}
	for _, p := range call.Props {
		n.SetProp(p.Name, value(p.Value))
	}
	for _, c := range call.Children {
		if cc, ok := c.(*parse.CallExpr); ok {
			if child, ok := nodeOf(cc); ok {
				n.AddChild(child)
				continue
			}
		}
		n.AddChild(vals.NewNode(ExprKind).AddArg(c))
	}
	return n, true
}

func value(e parse.Expr) any {
	if path, ok := parse.MemberPath(e); ok {
		return path
	}
	if v, ok := EvalBasic(e); ok {
		return v
	}
	return e
}

package codegen

import (
	"fmt"
	"strconv"

	"src.autoui.dev/pkg/parse"
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/view"
	"src.autoui.dev/pkg/widget"
)

// Where a builder expression goes: lead is written before its first line and
// trail after its last. In a chain, an unknown call can be left out
// entirely.
type slot struct {
	lead, trail string
	chain       bool
}

var (
	returnSlot = slot{lead: "return "}
	argSlot    = slot{trail: ","}
	childSlot  = slot{lead: "Child(", trail: ").", chain: true}
	itemSlot   = slot{lead: "Item(", trail: ").", chain: true}
)

func (g *generator) writeView() {
	s := g.sink
	s.Linef("func (w *%s) View() view.View[%s] {", g.info.Name, g.sy.msgType)
	s.Indent()
	g.node(g.info.View.Root, returnSlot)
	s.Dedent()
	s.Line("}")
	s.Line("")
}

// Writes the builder expression of a node.
func (g *generator) node(n *vals.Node, sl slot) {
	m := g.sy.msgType
	switch n.Kind {
	case "text", "label":
		content, _ := firstOf(n, 0, "content", "text")
		g.leaf(sl, fmt.Sprintf("view.NewText[%s](%s)%s.Build()", m, g.strExpr(content),
			g.setters(n, intSetter("size", "Size"), strSetter("style", "Style"))))
	case "button":
		label, _ := firstOf(n, 0, "label")
		msg, ok := g.message(n, "onclick", "on_click")
		if !ok {
			g.unknown(n, sl, "button without message")
			return
		}
		g.leaf(sl, fmt.Sprintf("view.NewButton[%s](%s, %s)%s.Build()", m, g.strExpr(label), msg,
			g.setters(n, strSetter("style", "Style"))))
	case "checkbox":
		label, _ := firstOf(n, 0, "label")
		checked, _ := n.Prop("checked")
		msg, ok := g.message(n, "on_toggle", "ontoggle", "onclick", "on_click")
		if !ok {
			g.unknown(n, sl, "checkbox without message")
			return
		}
		g.leaf(sl, fmt.Sprintf("view.NewCheckbox[%s](%s, %s, func(bool) %s { return %s }).Build()",
			m, g.strExpr(label), g.boolExpr(checked), m, msg))
	case "col", "column", "row":
		ctor := "NewCol"
		if n.Kind == "row" {
			ctor = "NewRow"
		}
		g.chain(n, sl, fmt.Sprintf("view.%s[%s]()%s", ctor, m,
			g.setters(n, intSetter("spacing", "Spacing"), intSetter("padding", "Padding"), alignSetter)),
			childSlot)
	case "list":
		g.chain(n, sl, fmt.Sprintf("view.NewList[%s]()%s", m,
			g.setters(n, intSetter("spacing", "Spacing"))), itemSlot)
	case "center":
		g.wrap(n, sl, fmt.Sprintf("view.NewCenter[%s](", m), ")")
	case "container":
		g.wrap(n, sl, fmt.Sprintf("view.NewContainer[%s](", m), ")"+g.setters(n,
			intSetter("padding", "Padding"), intSetter("width", "Width"), intSetter("height", "Height"),
			boolSetter("center", "Centered"), strSetter("style", "Style"))+".Build()")
	case "scrollable":
		g.wrap(n, sl, fmt.Sprintf("view.NewScrollable[%s](", m), ")"+
			g.setters(n, intSetter("height", "Height"))+".Build()")
	default:
		g.unknown(n, sl, "")
	}
}

func (g *generator) leaf(sl slot, expr string) { g.sink.Line(sl.lead + expr + sl.trail) }

// Writes a builder that takes children one by one.
func (g *generator) chain(n *vals.Node, sl slot, open string, child slot) {
	g.sink.Line(sl.lead + open + ".")
	g.sink.Indent()
	for _, c := range n.Children {
		g.node(c, child)
	}
	g.sink.Line("Build()" + sl.trail)
	g.sink.Dedent()
}

// Writes a builder that takes a single child as argument. Several children
// are put in a Col.
func (g *generator) wrap(n *vals.Node, sl slot, open, close string) {
	g.sink.Line(sl.lead + open)
	g.sink.Indent()
	switch len(n.Children) {
	case 0:
		g.sink.Linef("view.NewEmpty[%s](),", g.sy.msgType)
	case 1:
		g.node(n.Children[0], argSlot)
	default:
		col := vals.NewNode("col").AddChild(n.Children...)
		g.node(col, argSlot)
	}
	g.sink.Dedent()
	g.sink.Line(close + sl.trail)
}

func (g *generator) unknown(n *vals.Node, sl slot, why string) {
	desc := n.Kind
	if n.Kind == widget.ExprKind {
		if e, ok := n.Args[0].(parse.Expr); ok {
			desc = parse.Format(e)
		}
	}
	if why != "" {
		desc += ", " + why
	}
	text := "/* unknown call: " + comment(desc) + " */"
	if sl.chain {
		g.sink.Line(text)
		return
	}
	g.sink.Line(sl.lead + fmt.Sprintf("view.NewEmpty[%s]() ", g.sy.msgType) + text + sl.trail)
}

// Returns the constant of the message named by the first present property.
func (g *generator) message(n *vals.Node, props ...string) (string, bool) {
	for _, p := range props {
		if v, ok := n.Prop(p); ok {
			if id, ok := v.(string); ok {
				return g.sy.constant(id)
			}
			return "", false
		}
	}
	return "", false
}

// Returns the positional argument i, or the first present property.
func firstOf(n *vals.Node, i int, props ...string) (any, bool) {
	if v, ok := n.Arg(i); ok {
		return v, true
	}
	for _, p := range props {
		if v, ok := n.Prop(p); ok {
			return v, true
		}
	}
	return nil, false
}

// A setter translates a property into a builder method call, or returns "".
type setter func(g *generator, n *vals.Node) string

func (g *generator) setters(n *vals.Node, setters ...setter) string {
	s := ""
	for _, set := range setters {
		s += set(g, n)
	}
	return s
}

func intSetter(prop, method string) setter {
	return func(g *generator, n *vals.Node) string {
		if v, ok := n.Prop(prop); ok {
			return "." + method + "(" + g.intExpr(v) + ")"
		}
		return ""
	}
}

func strSetter(prop, method string) setter {
	return func(g *generator, n *vals.Node) string {
		if v, ok := n.Prop(prop); ok {
			return "." + method + "(" + g.strExpr(v) + ")"
		}
		return ""
	}
}

func boolSetter(prop, method string) setter {
	return func(g *generator, n *vals.Node) string {
		if v, ok := n.Prop(prop); ok {
			return "." + method + "(" + g.boolExpr(v) + ")"
		}
		return ""
	}
}

func alignSetter(g *generator, n *vals.Node) string {
	v, _ := n.Prop("align")
	name, ok := v.(string)
	if !ok {
		return ""
	}
	a, ok := view.ParseAlign(name)
	if !ok {
		return ""
	}
	return ".Align(view.Align" + exportName(a.String()) + ")"
}

// Translates a value to a Go expression of type string.
func (g *generator) strExpr(v any) string {
	switch v := v.(type) {
	case nil:
		return `""`
	case string:
		return strconv.Quote(v)
	case *parse.FString, *parse.StringLit:
		return g.expr(v.(parse.Expr))
	case parse.Expr:
		return "fmt.Sprint(" + g.expr(v) + ")"
	}
	return strconv.Quote(vals.ToString(v))
}

// Translates a value to a Go expression of type int.
func (g *generator) intExpr(v any) string {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.Itoa(int(v))
	case parse.Expr:
		return g.expr(v)
	}
	return "0"
}

// Translates a value to a Go expression of type bool.
func (g *generator) boolExpr(v any) string {
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v)
	case parse.Expr:
		return g.expr(v)
	}
	return "false"
}

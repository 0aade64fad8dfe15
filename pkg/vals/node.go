package vals

// List is a list value.
type List = []any

// Node is a weakly-typed UI tree value: a widget kind with positional
// arguments, named properties and child nodes. It is produced by evaluating a
// node expression such as `button("+") { onclick: Msg.Inc }`.
//
// Kind is never empty; use [NewNode] or [Placeholder] to construct nodes.
type Node struct {
	Kind     string
	Args     List
	Props    map[string]any
	Children []*Node
	// Set only on nodes returned by [Placeholder].
	Placeholder bool
}

// PlaceholderKind is the kind of the node returned by [Placeholder].
const PlaceholderKind = "view"

// NewNode creates a node with the given kind and no arguments, props or
// children. It panics if kind is empty.
func NewNode(kind string) *Node {
	if kind == "" {
		panic("vals.NewNode: empty kind")
	}
	return &Node{Kind: kind, Props: map[string]any{}}
}

// Placeholder returns an empty node standing in for a view that could not be
// produced, for example because the program does not evaluate to a node.
func Placeholder() *Node {
	n := NewNode(PlaceholderKind)
	n.Placeholder = true
	return n
}

// IsPlaceholder returns whether the node was returned by [Placeholder]. A
// node written as view() in source is not a placeholder.
func (n *Node) IsPlaceholder() bool { return n != nil && n.Placeholder }

// Arg returns the i-th positional argument and whether it exists.
func (n *Node) Arg(i int) (any, bool) {
	if i < len(n.Args) {
		return n.Args[i], true
	}
	return nil, false
}

// Prop returns the named property and whether it exists.
func (n *Node) Prop(name string) (any, bool) {
	v, ok := n.Props[name]
	return v, ok
}

// SetProp sets a property, returning the node for chaining.
func (n *Node) SetProp(name string, v any) *Node {
	if n.Props == nil {
		n.Props = map[string]any{}
	}
	n.Props[name] = v
	return n
}

// AddArg appends positional arguments, returning the node for chaining.
func (n *Node) AddArg(args ...any) *Node {
	n.Args = append(n.Args, args...)
	return n
}

// AddChild appends child nodes, returning the node for chaining.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk calls f for n and all its descendants in depth-first pre-order. If f
// returns false, the children of that node are skipped.
func (n *Node) Walk(f func(*Node) bool) {
	if !f(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(f)
	}
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Args: copyList(n.Args), Props: CopyFields(n.Props), Placeholder: n.Placeholder}
	if c.Props == nil {
		c.Props = map[string]any{}
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// Instance refers to a widget declared by the program. The state of the widget
// is not part of the value; it is owned by whoever renders the instance.
type Instance struct {
	Widget string
}

// Copy returns a deep copy of a value. Lists and nodes are copied; other
// values are immutable and returned as is.
func Copy(v any) any {
	switch v := v.(type) {
	case List:
		return copyList(v)
	case *Node:
		return v.Clone()
	default:
		return v
	}
}

// CopyFields returns a deep copy of a field table. It returns nil if m is nil.
func CopyFields(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = Copy(v)
	}
	return c
}

func copyList(l List) List {
	if l == nil {
		return nil
	}
	c := make(List, len(l))
	for i, v := range l {
		c[i] = Copy(v)
	}
	return c
}

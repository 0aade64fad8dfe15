// Package convert turns the weakly-typed Node trees produced by the
// interpreter into View IR.
//
// Conversion dispatches on the kind of each node through a fixed table of
// known kinds and validates the arguments and properties each kind needs.
// Children are converted recursively and the first error aborts the whole
// conversion; a partial tree is never returned.
package convert

import (
	"sort"

	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/view"
)

// Config keeps configuration for Convert.
type Config struct {
	// Policy decides what happens to unknown kinds and missing properties.
	// Under fallback.Strict (the default) they are errors. Under
	// fallback.Permissive, unknown kinds become empty views, missing messages
	// become empty message names and missing properties take their zero
	// values. Properties of the wrong type are errors under both policies.
	Policy fallback.Policy
}

type converter struct {
	strict bool
}

type convertFunc func(c *converter, n *vals.Node) (view.View[string], error)

var converters = map[string]convertFunc{}

func init() {
	for kind, f := range map[string]convertFunc{
		"center":     convertCenter,
		"col":        convertCol,
		"column":     convertCol,
		"row":        convertRow,
		"container":  convertContainer,
		"scrollable": convertScrollable,
		"text":       convertText,
		"label":      convertText,
		"button":     convertButton,
		"input":      convertInput,
		"checkbox":   convertCheckbox,
		"radio":      convertRadio,
		"select":     convertSelect,
		"list":       convertList,
		"table":      convertTable,
	} {
		converters[kind] = f
	}
}

// Kinds returns the sorted list of node kinds Convert understands.
func Kinds() []string {
	kinds := make([]string, 0, len(converters))
	for kind := range converters {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// IsKnown returns whether Convert understands the given node kind.
func IsKnown(kind string) bool {
	_, ok := converters[kind]
	return ok
}

// Convert converts a Node tree to a View tree. If the error is not nil, it
// always has type ConversionError.
//
// An empty placeholder node (see vals.Placeholder) converts to an empty view.
func Convert(n *vals.Node, cfg Config) (view.View[string], error) {
	c := &converter{strict: cfg.Policy.Or(fallback.Strict) == fallback.Strict}
	return c.convert(n)
}

func (c *converter) convert(n *vals.Node) (view.View[string], error) {
	if n == nil {
		return nil, UnknownKind{}
	}
	f, ok := converters[n.Kind]
	if !ok {
		if n.IsPlaceholder() || !c.strict {
			return view.NewEmpty[string](), nil
		}
		return nil, UnknownKind{n.Kind}
	}
	return f(c, n)
}

func (c *converter) children(n *vals.Node) ([]view.View[string], error) {
	views := make([]view.View[string], 0, len(n.Children))
	for _, child := range n.Children {
		v, err := c.convert(child)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Converts the children of a single-child container. Several children are
// wrapped in a Col; no children become an Empty view.
func (c *converter) singleChild(n *vals.Node) (view.View[string], error) {
	children, err := c.children(n)
	if err != nil {
		return nil, err
	}
	switch len(children) {
	case 0:
		return view.NewEmpty[string](), nil
	case 1:
		return children[0], nil
	default:
		return view.NewCol[string]().Children(children...).Build(), nil
	}
}

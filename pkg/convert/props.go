package convert

import (
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/view"
)

// noArg is passed as the argument index of properties that can't be given
// positionally.
const noArg = -1

// Looks up a value given either as the positional argument at index i or as
// the named property.
func lookup(n *vals.Node, i int, prop string) (any, bool) {
	if i != noArg {
		if v, ok := n.Arg(i); ok {
			return v, true
		}
	}
	return n.Prop(prop)
}

// Textual values accept any scalar; numbers and booleans are formatted.
func asText(n *vals.Node, prop string, v any) (string, error) {
	switch v.(type) {
	case string, int, float64, bool:
		return vals.ToString(v), nil
	}
	return "", InvalidPropType{n.Kind, prop, "str", vals.Kind(v)}
}

func (c *converter) requiredText(n *vals.Node, i int, prop string) (string, error) {
	v, ok := lookup(n, i, prop)
	if !ok {
		if c.strict {
			return "", MissingProp{n.Kind, prop}
		}
		return "", nil
	}
	return asText(n, prop, v)
}

func optionalText(n *vals.Node, i int, prop string) (string, error) {
	v, ok := lookup(n, i, prop)
	if !ok {
		return "", nil
	}
	return asText(n, prop, v)
}

func optionalInt(n *vals.Node, prop string) (int, error) {
	v, ok := n.Prop(prop)
	if !ok {
		return 0, nil
	}
	switch v := v.(type) {
	case int:
		return v, nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, InvalidPropType{n.Kind, prop, "int", vals.Kind(v)}
}

func optionalBool(n *vals.Node, prop string) (bool, error) {
	v, ok := n.Prop(prop)
	if !ok {
		return false, nil
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, InvalidPropType{n.Kind, prop, "bool", vals.Kind(v)}
}

func optionalAlign(n *vals.Node) (view.Align, error) {
	v, ok := n.Prop("align")
	if !ok {
		return view.AlignStart, nil
	}
	if s, ok := v.(string); ok {
		if a, ok := view.ParseAlign(s); ok {
			return a, nil
		}
		return view.AlignStart, InvalidPropType{n.Kind, "align", "alignment", s}
	}
	return view.AlignStart, InvalidPropType{n.Kind, "align", "str", vals.Kind(v)}
}

func textList(n *vals.Node, i int, prop string) ([]string, bool, error) {
	v, ok := lookup(n, i, prop)
	if !ok {
		return nil, false, nil
	}
	l, ok := v.(vals.List)
	if !ok {
		return nil, true, InvalidPropType{n.Kind, prop, "list", vals.Kind(v)}
	}
	texts := make([]string, len(l))
	for i, elem := range l {
		s, err := asText(n, prop, elem)
		if err != nil {
			return nil, true, err
		}
		texts[i] = s
	}
	return texts, true, nil
}

// Finds the message identifier of an interactive node, trying each of the
// given property names in turn. Only string-identified messages are
// supported.
func (c *converter) message(n *vals.Node, props ...string) (string, error) {
	for _, prop := range props {
		if v, ok := n.Prop(prop); ok {
			if s, ok := v.(string); ok {
				return s, nil
			}
			return "", InvalidPropType{n.Kind, prop, "str", vals.Kind(v)}
		}
	}
	if c.strict {
		return "", MessageRequired{n.Kind}
	}
	return "", nil
}

// MessageProps lists the property names that carry message identifiers.
var MessageProps = []string{
	"onclick", "on_click",
	"on_change", "onchange",
	"on_toggle", "ontoggle",
	"on_select", "onselect",
	"on_submit", "onsubmit",
}

// IsMessageProp returns whether the named property carries a message
// identifier.
func IsMessageProp(name string) bool {
	for _, p := range MessageProps {
		if p == name {
			return true
		}
	}
	return false
}

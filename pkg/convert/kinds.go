package convert

import (
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/view"
)

func convertText(c *converter, n *vals.Node) (view.View[string], error) {
	v, ok := lookup(n, 0, "content")
	if !ok {
		// "text" is an alias of "content".
		v, ok = n.Prop("text")
	}
	var content string
	if ok {
		var err error
		if content, err = asText(n, "content", v); err != nil {
			return nil, err
		}
	} else if c.strict {
		return nil, MissingProp{n.Kind, "content"}
	}
	size, err := optionalInt(n, "size")
	if err != nil {
		return nil, err
	}
	style, err := optionalText(n, noArg, "style")
	if err != nil {
		return nil, err
	}
	return view.NewText[string](content).Size(size).Style(style).Build(), nil
}

func convertButton(c *converter, n *vals.Node) (view.View[string], error) {
	label, err := c.requiredText(n, 0, "label")
	if err != nil {
		return nil, err
	}
	msg, err := c.message(n, "onclick", "on_click")
	if err != nil {
		return nil, err
	}
	style, err := optionalText(n, noArg, "style")
	if err != nil {
		return nil, err
	}
	return view.NewButton(label, msg).Style(style).Build(), nil
}

func convertInput(c *converter, n *vals.Node) (view.View[string], error) {
	placeholder, err := optionalText(n, 0, "placeholder")
	if err != nil {
		return nil, err
	}
	value, err := optionalText(n, noArg, "value")
	if err != nil {
		return nil, err
	}
	password, err := optionalBool(n, "password")
	if err != nil {
		return nil, err
	}
	msg, err := c.message(n, "on_change", "onchange")
	if err != nil {
		return nil, err
	}
	return view.NewInput(value, constMessage[string](msg)).
		Placeholder(placeholder).Password(password).Build(), nil
}

func convertCheckbox(c *converter, n *vals.Node) (view.View[string], error) {
	label, err := c.requiredText(n, 0, "label")
	if err != nil {
		return nil, err
	}
	checked, err := optionalBool(n, "checked")
	if err != nil {
		return nil, err
	}
	msg, err := c.message(n, "on_toggle", "ontoggle", "onclick", "on_click")
	if err != nil {
		return nil, err
	}
	return view.NewCheckbox(label, checked, constMessage[bool](msg)).Build(), nil
}

func convertRadio(c *converter, n *vals.Node) (view.View[string], error) {
	label, err := c.requiredText(n, 0, "label")
	if err != nil {
		return nil, err
	}
	selected, err := optionalBool(n, "selected")
	if err != nil {
		return nil, err
	}
	msg, err := c.message(n, "on_select", "onselect", "onclick", "on_click")
	if err != nil {
		return nil, err
	}
	return view.NewRadio(label, selected, msg).Build(), nil
}

func convertSelect(c *converter, n *vals.Node) (view.View[string], error) {
	options, ok, err := textList(n, 0, "options")
	if err != nil {
		return nil, err
	}
	if !ok && c.strict {
		return nil, MissingProp{n.Kind, "options"}
	}
	selected, err := optionalText(n, noArg, "selected")
	if err != nil {
		return nil, err
	}
	msg, err := c.message(n, "on_select", "onselect", "on_change", "onchange")
	if err != nil {
		return nil, err
	}
	return view.NewSelect(options, constMessage[string](msg)).Selected(selected).Build(), nil
}

func convertCol(c *converter, n *vals.Node) (view.View[string], error) {
	children, err := c.children(n)
	if err != nil {
		return nil, err
	}
	spacing, padding, align, err := linearProps(n)
	if err != nil {
		return nil, err
	}
	return view.NewCol[string]().Children(children...).
		Spacing(spacing).Padding(padding).Align(align).Build(), nil
}

func convertRow(c *converter, n *vals.Node) (view.View[string], error) {
	children, err := c.children(n)
	if err != nil {
		return nil, err
	}
	spacing, padding, align, err := linearProps(n)
	if err != nil {
		return nil, err
	}
	return view.NewRow[string]().Children(children...).
		Spacing(spacing).Padding(padding).Align(align).Build(), nil
}

func linearProps(n *vals.Node) (spacing, padding int, align view.Align, err error) {
	if spacing, err = optionalInt(n, "spacing"); err != nil {
		return
	}
	if padding, err = optionalInt(n, "padding"); err != nil {
		return
	}
	align, err = optionalAlign(n)
	return
}

func convertCenter(c *converter, n *vals.Node) (view.View[string], error) {
	child, err := c.singleChild(n)
	if err != nil {
		return nil, err
	}
	return view.NewCenter(child), nil
}

func convertContainer(c *converter, n *vals.Node) (view.View[string], error) {
	child, err := c.singleChild(n)
	if err != nil {
		return nil, err
	}
	b := view.NewContainer(child)
	for _, p := range []struct {
		name string
		set  func(int) *view.ContainerBuilder[string]
	}{{"padding", b.Padding}, {"width", b.Width}, {"height", b.Height}} {
		i, err := optionalInt(n, p.name)
		if err != nil {
			return nil, err
		}
		p.set(i)
	}
	centered, err := optionalBool(n, "center")
	if err != nil {
		return nil, err
	}
	style, err := optionalText(n, noArg, "style")
	if err != nil {
		return nil, err
	}
	return b.Centered(centered).Style(style).Build(), nil
}

func convertScrollable(c *converter, n *vals.Node) (view.View[string], error) {
	child, err := c.singleChild(n)
	if err != nil {
		return nil, err
	}
	height, err := optionalInt(n, "height")
	if err != nil {
		return nil, err
	}
	return view.NewScrollable(child).Height(height).Build(), nil
}

func convertList(c *converter, n *vals.Node) (view.View[string], error) {
	items, err := c.children(n)
	if err != nil {
		return nil, err
	}
	spacing, err := optionalInt(n, "spacing")
	if err != nil {
		return nil, err
	}
	return view.NewList[string]().Items(items...).Spacing(spacing).Build(), nil
}

// Each child of a table is one row. The children of a "row" child become the
// cells of that row; any other child becomes a single-cell row.
func convertTable(c *converter, n *vals.Node) (view.View[string], error) {
	headers, _, err := textList(n, noArg, "headers")
	if err != nil {
		return nil, err
	}
	spacing, err := optionalInt(n, "spacing")
	if err != nil {
		return nil, err
	}
	b := view.NewTable[string](headers...).Spacing(spacing)
	for _, child := range n.Children {
		if child.Kind == "row" {
			cells, err := c.children(child)
			if err != nil {
				return nil, err
			}
			b.Row(cells...)
		} else {
			cell, err := c.convert(child)
			if err != nil {
				return nil, err
			}
			b.Row(cell)
		}
	}
	return b.Build(), nil
}

// Event payloads can't be represented in string messages; the message name
// is sent regardless of the payload, which adapters forward separately.
func constMessage[T any](msg string) func(T) string {
	return func(T) string { return msg }
}

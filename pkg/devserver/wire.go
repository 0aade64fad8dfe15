package devserver

import (
	"src.autoui.dev/pkg/view"
)

// Node is the wire form of a view sent to preview clients.
//
// Interactive views carry the event name in Message. For views whose event
// carries a value (checkbox, input, select, slider and the indexed
// containers), clients send the value as the only argument of the event.
type Node struct {
	Kind     string   `json:"kind"`
	Text     string   `json:"text,omitzero"`
	Value    any      `json:"value,omitzero"`
	Message  string   `json:"message,omitzero"`
	Style    string   `json:"style,omitzero"`
	Size     int      `json:"size,omitzero"`
	Spacing  int      `json:"spacing,omitzero"`
	Padding  int      `json:"padding,omitzero"`
	Width    int      `json:"width,omitzero"`
	Height   int      `json:"height,omitzero"`
	Align    string   `json:"align,omitzero"`
	Checked  bool     `json:"checked,omitzero"`
	Options  []string `json:"options,omitzero"`
	Min      float64  `json:"min,omitzero"`
	Max      float64  `json:"max,omitzero"`
	Step     float64  `json:"step,omitzero"`
	Columns  int      `json:"columns,omitzero"`
	Children []*Node  `json:"children,omitzero"`
}

// Encode converts a view to its wire form.
func Encode(v view.View[string]) *Node {
	if v == nil {
		return &Node{Kind: view.KindEmpty.String()}
	}
	n := &Node{Kind: v.Kind().String()}
	switch v := v.(type) {
	case *view.Text[string]:
		n.Text, n.Size, n.Style = v.Content, v.Size, v.Style
	case *view.Button[string]:
		n.Text, n.Message, n.Style = v.Label, v.OnClick, v.Style
	case *view.Input[string]:
		n.Value, n.Text = v.Value, v.Placeholder
		n.Message = call(v.OnChange)
		if v.Password {
			n.Style = "password"
		}
	case *view.Checkbox[string]:
		n.Text, n.Checked = v.Label, v.Checked
		n.Message = call(v.OnToggle)
	case *view.Radio[string]:
		n.Text, n.Checked, n.Message = v.Label, v.Selected, v.OnSelect
	case *view.Select[string]:
		n.Options, n.Value = v.Options, v.Selected
		n.Message = call(v.OnSelect)
	case *view.Slider[string]:
		n.Min, n.Max, n.Step, n.Value = v.Min, v.Max, v.Step, v.Value
		n.Message = call(v.OnChange)
	case *view.Col[string]:
		n.Spacing, n.Padding, n.Align = v.Spacing, v.Padding, alignName(v.Align)
	case *view.Row[string]:
		n.Spacing, n.Padding, n.Align = v.Spacing, v.Padding, alignName(v.Align)
	case *view.Container[string]:
		n.Padding, n.Width, n.Height, n.Style = v.Padding, v.Width, v.Height, v.Style
		if v.Centered {
			n.Align = view.AlignCenter.String()
		}
	case *view.Scrollable[string]:
		n.Height = v.Height
	case *view.List[string]:
		n.Spacing = v.Spacing
	case *view.Table[string]:
		n.Options, n.Spacing = v.Headers, v.Spacing
		if len(v.Rows) > 0 {
			n.Columns = len(v.Rows[0])
		}
	case *view.Tabs[string]:
		n.Options, n.Value = v.Labels, v.Selected
		n.Message = call(v.OnSelect)
	case *view.Accordion[string]:
		for _, item := range v.Items {
			n.Options = append(n.Options, item.Title)
		}
		n.Message = call(v.OnToggle)
	case *view.NavigationRail[string]:
		for _, item := range v.Items {
			n.Options = append(n.Options, item.Label)
		}
		n.Value = v.Selected
		n.Message = call(v.OnSelect)
	case *view.Sidebar[string]:
		n.Width, n.Checked, n.Message = v.Width, v.Open, v.OnToggle
	}
	for _, child := range view.Children(v) {
		n.Children = append(n.Children, Encode(child))
	}
	return n
}

func alignName(a view.Align) string {
	if a == view.AlignStart {
		return ""
	}
	return a.String()
}

// Returns the message a value-carrying view produces; messages of such views
// do not depend on the value.
func call[T any](f func(T) string) string {
	if f == nil {
		return ""
	}
	var zero T
	return f(zero)
}

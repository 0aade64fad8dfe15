// Package view defines the View IR, a strongly-shaped tree of UI primitives
// that backend adapters turn into on-screen elements.
//
// A View is parameterized by the message type M carried by interactive
// variants. The interpreted path uses View[string], with messages identified
// by name; generated components use View[Msg] with their own message enum.
// Both are the same tree type.
//
// Views are immutable once built. They are constructed fresh for every render
// pass with the builder API, for example:
//
//	view.NewCol[Msg]().Spacing(8).
//		Child(view.NewText[Msg]("Hello").Build()).
//		Child(view.NewButton[Msg]("+", MsgInc).Build()).
//		Build()
//
// Interactive variants take their message (or message-producing function) as a
// constructor argument, so that no interactive view can exist without its event
// contract.
package view

// View is a node in the View IR.
type View[M any] interface {
	// Kind returns the variant of the view.
	Kind() Kind
	isView(M)
}

// Component is implemented by widgets that own state, react to messages and
// describe their UI as a View.
type Component[M any] interface {
	On(msg M)
	View() View[M]
}

// Kind identifies a View variant.
type Kind uint8

// View variants.
const (
	KindEmpty Kind = iota
	KindText
	KindButton
	KindInput
	KindCheckbox
	KindRadio
	KindSelect
	KindSlider
	KindCol
	KindRow
	KindCenter
	KindContainer
	KindScrollable
	KindList
	KindTable
	KindTabs
	KindAccordion
	KindNavigationRail
	KindSidebar
)

var kindNames = [...]string{
	KindEmpty:          "empty",
	KindText:           "text",
	KindButton:         "button",
	KindInput:          "input",
	KindCheckbox:       "checkbox",
	KindRadio:          "radio",
	KindSelect:         "select",
	KindSlider:         "slider",
	KindCol:            "col",
	KindRow:            "row",
	KindCenter:         "center",
	KindContainer:      "container",
	KindScrollable:     "scrollable",
	KindList:           "list",
	KindTable:          "table",
	KindTabs:           "tabs",
	KindAccordion:      "accordion",
	KindNavigationRail: "navigation_rail",
	KindSidebar:        "sidebar",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsInteractive returns whether views of this kind carry a message.
func (k Kind) IsInteractive() bool {
	switch k {
	case KindButton, KindInput, KindCheckbox, KindRadio, KindSelect, KindSlider,
		KindTabs, KindAccordion, KindNavigationRail, KindSidebar:
		return true
	}
	return false
}

// Align is the cross-axis alignment of a Col or Row.
type Align uint8

// Alignments.
const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlign parses an alignment name.
func ParseAlign(s string) (Align, bool) {
	switch s {
	case "start":
		return AlignStart, true
	case "center":
		return AlignCenter, true
	case "end":
		return AlignEnd, true
	}
	return AlignStart, false
}

// Children returns the direct children of a view, in order. Table rows are
// flattened row by row.
func Children[M any](v View[M]) []View[M] {
	switch v := v.(type) {
	case *Col[M]:
		return v.Children
	case *Row[M]:
		return v.Children
	case *List[M]:
		return v.Items
	case *Table[M]:
		var cells []View[M]
		for _, row := range v.Rows {
			cells = append(cells, row...)
		}
		return cells
	case *Center[M]:
		return []View[M]{v.Child}
	case *Container[M]:
		return []View[M]{v.Child}
	case *Scrollable[M]:
		return []View[M]{v.Child}
	case *Tabs[M]:
		return v.Contents
	case *Accordion[M]:
		children := make([]View[M], len(v.Items))
		for i, item := range v.Items {
			children[i] = item.Content
		}
		return children
	case *Sidebar[M]:
		return []View[M]{v.Content}
	}
	return nil
}

// Walk calls f for v and all its descendants in depth-first pre-order. If f
// returns false, the descendants of that view are skipped.
func Walk[M any](v View[M], f func(View[M]) bool) {
	if !f(v) {
		return
	}
	for _, child := range Children(v) {
		Walk(child, f)
	}
}

package view

import "slices"

// NewEmpty returns an Empty view.
func NewEmpty[M any]() View[M] { return &Empty[M]{} }

// TextBuilder builds a Text view.
type TextBuilder[M any] struct{ v Text[M] }

// NewText starts building a Text view.
func NewText[M any](content string) *TextBuilder[M] {
	return &TextBuilder[M]{Text[M]{Content: content}}
}

func (b *TextBuilder[M]) Size(size int) *TextBuilder[M]      { b.v.Size = size; return b }
func (b *TextBuilder[M]) Style(style string) *TextBuilder[M] { b.v.Style = style; return b }
func (b *TextBuilder[M]) Build() View[M]                     { v := b.v; return &v }

// ButtonBuilder builds a Button view.
type ButtonBuilder[M any] struct{ v Button[M] }

// NewButton starts building a Button that sends onClick when clicked.
func NewButton[M any](label string, onClick M) *ButtonBuilder[M] {
	return &ButtonBuilder[M]{Button[M]{Label: label, OnClick: onClick}}
}

func (b *ButtonBuilder[M]) Style(style string) *ButtonBuilder[M] { b.v.Style = style; return b }
func (b *ButtonBuilder[M]) Build() View[M]                       { v := b.v; return &v }

// InputBuilder builds an Input view.
type InputBuilder[M any] struct{ v Input[M] }

// NewInput starts building an Input showing value, which sends the message
// returned by onChange whenever the text changes.
func NewInput[M any](value string, onChange func(string) M) *InputBuilder[M] {
	return &InputBuilder[M]{Input[M]{Value: value, OnChange: onChange}}
}

func (b *InputBuilder[M]) Placeholder(s string) *InputBuilder[M] { b.v.Placeholder = s; return b }
func (b *InputBuilder[M]) Password(p bool) *InputBuilder[M]      { b.v.Password = p; return b }
func (b *InputBuilder[M]) Build() View[M]                        { v := b.v; return &v }

// CheckboxBuilder builds a Checkbox view.
type CheckboxBuilder[M any] struct{ v Checkbox[M] }

// NewCheckbox starts building a Checkbox.
func NewCheckbox[M any](label string, checked bool, onToggle func(bool) M) *CheckboxBuilder[M] {
	return &CheckboxBuilder[M]{Checkbox[M]{Label: label, Checked: checked, OnToggle: onToggle}}
}

func (b *CheckboxBuilder[M]) Build() View[M] { v := b.v; return &v }

// RadioBuilder builds a Radio view.
type RadioBuilder[M any] struct{ v Radio[M] }

// NewRadio starts building a Radio.
func NewRadio[M any](label string, selected bool, onSelect M) *RadioBuilder[M] {
	return &RadioBuilder[M]{Radio[M]{Label: label, Selected: selected, OnSelect: onSelect}}
}

func (b *RadioBuilder[M]) Build() View[M] { v := b.v; return &v }

// SelectBuilder builds a Select view.
type SelectBuilder[M any] struct{ v Select[M] }

// NewSelect starts building a Select.
func NewSelect[M any](options []string, onSelect func(string) M) *SelectBuilder[M] {
	return &SelectBuilder[M]{Select[M]{Options: slices.Clone(options), OnSelect: onSelect}}
}

func (b *SelectBuilder[M]) Selected(s string) *SelectBuilder[M] { b.v.Selected = s; return b }
func (b *SelectBuilder[M]) Build() View[M]                      { v := b.v; return &v }

// SliderBuilder builds a Slider view.
type SliderBuilder[M any] struct{ v Slider[M] }

// NewSlider starts building a Slider over [min, max] with step 1.
func NewSlider[M any](min, max, value float64, onChange func(float64) M) *SliderBuilder[M] {
	return &SliderBuilder[M]{Slider[M]{Min: min, Max: max, Step: 1, Value: value, OnChange: onChange}}
}

func (b *SliderBuilder[M]) Step(step float64) *SliderBuilder[M] { b.v.Step = step; return b }
func (b *SliderBuilder[M]) Build() View[M]                      { v := b.v; return &v }

// ColBuilder builds a Col view.
type ColBuilder[M any] struct{ v Col[M] }

// NewCol starts building a Col.
func NewCol[M any]() *ColBuilder[M] { return &ColBuilder[M]{} }

func (b *ColBuilder[M]) Child(c View[M]) *ColBuilder[M] {
	b.v.Children = append(b.v.Children, c)
	return b
}

func (b *ColBuilder[M]) Children(cs ...View[M]) *ColBuilder[M] {
	b.v.Children = append(b.v.Children, cs...)
	return b
}

func (b *ColBuilder[M]) Spacing(n int) *ColBuilder[M] { b.v.Spacing = n; return b }
func (b *ColBuilder[M]) Padding(n int) *ColBuilder[M] { b.v.Padding = n; return b }
func (b *ColBuilder[M]) Align(a Align) *ColBuilder[M] { b.v.Align = a; return b }

func (b *ColBuilder[M]) Build() View[M] {
	v := b.v
	v.Children = slices.Clone(b.v.Children)
	return &v
}

// RowBuilder builds a Row view.
type RowBuilder[M any] struct{ v Row[M] }

// NewRow starts building a Row.
func NewRow[M any]() *RowBuilder[M] { return &RowBuilder[M]{} }

func (b *RowBuilder[M]) Child(c View[M]) *RowBuilder[M] {
	b.v.Children = append(b.v.Children, c)
	return b
}

func (b *RowBuilder[M]) Children(cs ...View[M]) *RowBuilder[M] {
	b.v.Children = append(b.v.Children, cs...)
	return b
}

func (b *RowBuilder[M]) Spacing(n int) *RowBuilder[M] { b.v.Spacing = n; return b }
func (b *RowBuilder[M]) Padding(n int) *RowBuilder[M] { b.v.Padding = n; return b }
func (b *RowBuilder[M]) Align(a Align) *RowBuilder[M] { b.v.Align = a; return b }

func (b *RowBuilder[M]) Build() View[M] {
	v := b.v
	v.Children = slices.Clone(b.v.Children)
	return &v
}

// NewCenter returns a Center view around child.
func NewCenter[M any](child View[M]) View[M] { return &Center[M]{Child: child} }

// ContainerBuilder builds a Container view.
type ContainerBuilder[M any] struct{ v Container[M] }

// NewContainer starts building a Container around child.
func NewContainer[M any](child View[M]) *ContainerBuilder[M] {
	return &ContainerBuilder[M]{Container[M]{Child: child}}
}

func (b *ContainerBuilder[M]) Padding(n int) *ContainerBuilder[M]   { b.v.Padding = n; return b }
func (b *ContainerBuilder[M]) Width(n int) *ContainerBuilder[M]     { b.v.Width = n; return b }
func (b *ContainerBuilder[M]) Height(n int) *ContainerBuilder[M]    { b.v.Height = n; return b }
func (b *ContainerBuilder[M]) Centered(c bool) *ContainerBuilder[M] { b.v.Centered = c; return b }
func (b *ContainerBuilder[M]) Style(s string) *ContainerBuilder[M]  { b.v.Style = s; return b }
func (b *ContainerBuilder[M]) Build() View[M]                       { v := b.v; return &v }

// ScrollableBuilder builds a Scrollable view.
type ScrollableBuilder[M any] struct{ v Scrollable[M] }

// NewScrollable starts building a Scrollable around child.
func NewScrollable[M any](child View[M]) *ScrollableBuilder[M] {
	return &ScrollableBuilder[M]{Scrollable[M]{Child: child}}
}

func (b *ScrollableBuilder[M]) Height(n int) *ScrollableBuilder[M] { b.v.Height = n; return b }
func (b *ScrollableBuilder[M]) Build() View[M]                     { v := b.v; return &v }

// ListBuilder builds a List view.
type ListBuilder[M any] struct{ v List[M] }

// NewList starts building a List.
func NewList[M any]() *ListBuilder[M] { return &ListBuilder[M]{} }

func (b *ListBuilder[M]) Item(item View[M]) *ListBuilder[M] {
	b.v.Items = append(b.v.Items, item)
	return b
}

func (b *ListBuilder[M]) Items(items ...View[M]) *ListBuilder[M] {
	b.v.Items = append(b.v.Items, items...)
	return b
}

func (b *ListBuilder[M]) Spacing(n int) *ListBuilder[M] { b.v.Spacing = n; return b }

func (b *ListBuilder[M]) Build() View[M] {
	v := b.v
	v.Items = slices.Clone(b.v.Items)
	return &v
}

// TableBuilder builds a Table view.
type TableBuilder[M any] struct{ v Table[M] }

// NewTable starts building a Table.
func NewTable[M any](headers ...string) *TableBuilder[M] {
	return &TableBuilder[M]{Table[M]{Headers: headers}}
}

func (b *TableBuilder[M]) Row(cells ...View[M]) *TableBuilder[M] {
	b.v.Rows = append(b.v.Rows, cells)
	return b
}

func (b *TableBuilder[M]) Spacing(n int) *TableBuilder[M] { b.v.Spacing = n; return b }

func (b *TableBuilder[M]) Build() View[M] {
	v := b.v
	v.Headers = slices.Clone(b.v.Headers)
	v.Rows = make([][]View[M], len(b.v.Rows))
	for i, row := range b.v.Rows {
		v.Rows[i] = slices.Clone(row)
	}
	return &v
}

// TabsBuilder builds a Tabs view.
type TabsBuilder[M any] struct{ v Tabs[M] }

// NewTabs starts building a Tabs view.
func NewTabs[M any](onSelect func(int) M) *TabsBuilder[M] {
	return &TabsBuilder[M]{Tabs[M]{OnSelect: onSelect}}
}

func (b *TabsBuilder[M]) Tab(label string, content View[M]) *TabsBuilder[M] {
	b.v.Labels = append(b.v.Labels, label)
	b.v.Contents = append(b.v.Contents, content)
	return b
}

func (b *TabsBuilder[M]) Selected(i int) *TabsBuilder[M] { b.v.Selected = i; return b }

func (b *TabsBuilder[M]) Build() View[M] {
	v := b.v
	v.Labels = slices.Clone(b.v.Labels)
	v.Contents = slices.Clone(b.v.Contents)
	return &v
}

// AccordionBuilder builds an Accordion view.
type AccordionBuilder[M any] struct{ v Accordion[M] }

// NewAccordion starts building an Accordion.
func NewAccordion[M any](onToggle func(int) M) *AccordionBuilder[M] {
	return &AccordionBuilder[M]{Accordion[M]{OnToggle: onToggle}}
}

func (b *AccordionBuilder[M]) Item(title string, content View[M], expanded bool) *AccordionBuilder[M] {
	b.v.Items = append(b.v.Items, AccordionItem[M]{title, content, expanded})
	return b
}

func (b *AccordionBuilder[M]) Build() View[M] {
	v := b.v
	v.Items = slices.Clone(b.v.Items)
	return &v
}

// NavigationRailBuilder builds a NavigationRail view.
type NavigationRailBuilder[M any] struct{ v NavigationRail[M] }

// NewNavigationRail starts building a NavigationRail.
func NewNavigationRail[M any](onSelect func(int) M) *NavigationRailBuilder[M] {
	return &NavigationRailBuilder[M]{NavigationRail[M]{OnSelect: onSelect}}
}

func (b *NavigationRailBuilder[M]) Item(label, icon string) *NavigationRailBuilder[M] {
	b.v.Items = append(b.v.Items, NavItem{label, icon})
	return b
}

func (b *NavigationRailBuilder[M]) Selected(i int) *NavigationRailBuilder[M] {
	b.v.Selected = i
	return b
}

func (b *NavigationRailBuilder[M]) Build() View[M] {
	v := b.v
	v.Items = slices.Clone(b.v.Items)
	return &v
}

// SidebarBuilder builds a Sidebar view.
type SidebarBuilder[M any] struct{ v Sidebar[M] }

// NewSidebar starts building an open Sidebar.
func NewSidebar[M any](content View[M], onToggle M) *SidebarBuilder[M] {
	return &SidebarBuilder[M]{Sidebar[M]{Content: content, Open: true, OnToggle: onToggle}}
}

func (b *SidebarBuilder[M]) Width(n int) *SidebarBuilder[M] { b.v.Width = n; return b }
func (b *SidebarBuilder[M]) Open(o bool) *SidebarBuilder[M] { b.v.Open = o; return b }
func (b *SidebarBuilder[M]) Build() View[M]                 { v := b.v; return &v }

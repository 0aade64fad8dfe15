package view

// Empty is a view that shows nothing.
type Empty[M any] struct{}

// Text is a run of text.
type Text[M any] struct {
	Content string
	// Size is the font size; 0 means the backend default.
	Size  int
	Style string
}

// Button is a clickable button.
type Button[M any] struct {
	Label   string
	OnClick M
	Style   string
}

// Input is a single-line text input.
type Input[M any] struct {
	Value       string
	Placeholder string
	Password    bool
	OnChange    func(string) M
}

// Checkbox is a labelled two-state toggle.
type Checkbox[M any] struct {
	Label    string
	Checked  bool
	OnToggle func(bool) M
}

// Radio is one labelled option of a radio group.
type Radio[M any] struct {
	Label    string
	Selected bool
	OnSelect M
}

// Select is a drop-down list of options. Selected is empty when no option is
// selected.
type Select[M any] struct {
	Options  []string
	Selected string
	OnSelect func(string) M
}

// Slider selects a number within a range.
type Slider[M any] struct {
	Min, Max, Step, Value float64
	OnChange              func(float64) M
}

// Col lays its children out vertically.
type Col[M any] struct {
	Children []View[M]
	Spacing  int
	Padding  int
	Align    Align
}

// Row lays its children out horizontally.
type Row[M any] struct {
	Children []View[M]
	Spacing  int
	Padding  int
	Align    Align
}

// Center centers its child in the available space.
type Center[M any] struct {
	Child View[M]
}

// Container wraps its child with padding, an optional fixed size and a style.
// Zero Width or Height means the size of the child.
type Container[M any] struct {
	Child    View[M]
	Padding  int
	Width    int
	Height   int
	Centered bool
	Style    string
}

// Scrollable makes its child scrollable. Zero Height means all the available
// space.
type Scrollable[M any] struct {
	Child  View[M]
	Height int
}

// List shows a sequence of items.
type List[M any] struct {
	Items   []View[M]
	Spacing int
}

// Table shows rows of cells under optional headers.
type Table[M any] struct {
	Headers []string
	Rows    [][]View[M]
	Spacing int
}

// Tabs shows one of several contents, selected by a row of tab labels.
type Tabs[M any] struct {
	Labels   []string
	Contents []View[M]
	Selected int
	OnSelect func(int) M
}

// AccordionItem is one collapsible section of an Accordion.
type AccordionItem[M any] struct {
	Title    string
	Content  View[M]
	Expanded bool
}

// Accordion is a list of collapsible sections.
type Accordion[M any] struct {
	Items    []AccordionItem[M]
	OnToggle func(int) M
}

// NavItem is an entry of a NavigationRail.
type NavItem struct {
	Label string
	Icon  string
}

// NavigationRail is a vertical bar of navigation destinations.
type NavigationRail[M any] struct {
	Items    []NavItem
	Selected int
	OnSelect func(int) M
}

// Sidebar is a collapsible side panel.
type Sidebar[M any] struct {
	Content  View[M]
	Width    int
	Open     bool
	OnToggle M
}

func (*Empty[M]) Kind() Kind          { return KindEmpty }
func (*Text[M]) Kind() Kind           { return KindText }
func (*Button[M]) Kind() Kind         { return KindButton }
func (*Input[M]) Kind() Kind          { return KindInput }
func (*Checkbox[M]) Kind() Kind       { return KindCheckbox }
func (*Radio[M]) Kind() Kind          { return KindRadio }
func (*Select[M]) Kind() Kind         { return KindSelect }
func (*Slider[M]) Kind() Kind         { return KindSlider }
func (*Col[M]) Kind() Kind            { return KindCol }
func (*Row[M]) Kind() Kind            { return KindRow }
func (*Center[M]) Kind() Kind         { return KindCenter }
func (*Container[M]) Kind() Kind      { return KindContainer }
func (*Scrollable[M]) Kind() Kind     { return KindScrollable }
func (*List[M]) Kind() Kind           { return KindList }
func (*Table[M]) Kind() Kind          { return KindTable }
func (*Tabs[M]) Kind() Kind           { return KindTabs }
func (*Accordion[M]) Kind() Kind      { return KindAccordion }
func (*NavigationRail[M]) Kind() Kind { return KindNavigationRail }
func (*Sidebar[M]) Kind() Kind        { return KindSidebar }

func (*Empty[M]) isView(M)          {}
func (*Text[M]) isView(M)           {}
func (*Button[M]) isView(M)         {}
func (*Input[M]) isView(M)          {}
func (*Checkbox[M]) isView(M)       {}
func (*Radio[M]) isView(M)          {}
func (*Select[M]) isView(M)         {}
func (*Slider[M]) isView(M)         {}
func (*Col[M]) isView(M)            {}
func (*Row[M]) isView(M)            {}
func (*Center[M]) isView(M)         {}
func (*Container[M]) isView(M)      {}
func (*Scrollable[M]) isView(M)     {}
func (*List[M]) isView(M)           {}
func (*Table[M]) isView(M)          {}
func (*Tabs[M]) isView(M)           {}
func (*Accordion[M]) isView(M)      {}
func (*NavigationRail[M]) isView(M) {}
func (*Sidebar[M]) isView(M)        {}

// Package bridge connects an interpreter to a rendering loop. It loads and
// reloads source, owns the state of every widget, routes messages to widget
// methods and produces the main view as a node tree.
//
// A Bridge is driven by a single goroutine; a call made while another is in
// progress fails with a Lock error instead of waiting.
package bridge

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"src.autoui.dev/pkg/convert"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/logutil"
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/view"
)

var logger = logutil.GetLogger("[bridge] ")

// Runtime is the interpreter driven by a Bridge.
type Runtime interface {
	// Interpret runs source code and returns its result. A failed call must
	// leave the previously interpreted program in place.
	Interpret(name, code string) (any, error)
	// Defaults returns a fresh field table for each widget of the current
	// program.
	Defaults() map[string]map[string]any
	// InvokeMethod runs a method of a widget with the given field table.
	InvokeMethod(widget string, self map[string]any, method string, args ...any) (any, error)
}

// Phase is the lifecycle phase of a Bridge.
type Phase uint8

// Phases.
const (
	Uninitialized Phase = iota
	Loaded
	Rendered
	Reloading
)

func (p Phase) String() string {
	switch p {
	case Loaded:
		return "loaded"
	case Rendered:
		return "rendered"
	case Reloading:
		return "reloading"
	default:
		return "uninitialized"
	}
}

// WidgetState is the runtime state of a widget.
type WidgetState struct {
	Fields map[string]any
	// Node returned by the last call of the view method.
	CachedNode *vals.Node
	// Whether CachedNode is stale.
	ViewDirty bool
}

// Bridge drives a Runtime.
type Bridge struct {
	rt     Runtime
	policy fallback.Policy
	busy   sync.Mutex

	phase  Phase
	name   string
	result any
	states map[string]*WidgetState
}

// New creates a Bridge. Under the Permissive policy, the default, a program
// whose result is not a node or widget has a placeholder main view; under
// Strict it is an error.
func New(rt Runtime, p fallback.Policy) *Bridge {
	return &Bridge{rt: rt, policy: p.Or(fallback.Permissive), states: map[string]*WidgetState{}}
}

func (b *Bridge) lock() error {
	if !b.busy.TryLock() {
		return &Error{Kind: Lock}
	}
	return nil
}

// Phase returns the current phase.
func (b *Bridge) Phase() Phase { return b.phase }

// LoadFile interprets the content of a file.
func (b *Bridge) LoadFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return &Error{Kind: Io, Err: err}
	}
	return b.Interpret(path, string(code))
}

// Interpret interprets source code, replacing the program and resetting the
// state of all widgets. On failure nothing changes.
func (b *Bridge) Interpret(name, code string) error {
	if err := b.lock(); err != nil {
		return err
	}
	defer b.busy.Unlock()
	if err := b.interpret(name, code); err != nil {
		return err
	}
	b.phase = Loaded
	return nil
}

func (b *Bridge) interpret(name, code string) error {
	result, err := b.rt.Interpret(name, code)
	if err != nil {
		logger.Printf("interpreting %s: %v", name, err)
		return &Error{Kind: AutoLang, Err: err}
	}
	b.name = name
	b.result = result
	b.states = make(map[string]*WidgetState)
	for widget, fields := range b.rt.Defaults() {
		b.states[widget] = &WidgetState{Fields: fields, ViewDirty: true}
	}
	logger.Printf("interpreted %s: %d widgets, result %s", name, len(b.states), vals.Kind(result))
	return nil
}

// Reload interprets new source code for the current program and migrates the
// state of widgets into it. On failure nothing changes.
func (b *Bridge) Reload(code string) error {
	if err := b.lock(); err != nil {
		return err
	}
	defer b.busy.Unlock()
	return b.reload(b.name, code)
}

// ReloadFile is like Reload, but reads the code from a file. If the reload
// succeeds, the file also becomes the name of the program.
func (b *Bridge) ReloadFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return &Error{Kind: Io, Err: err}
	}
	if err := b.lock(); err != nil {
		return err
	}
	defer b.busy.Unlock()
	return b.reload(path, string(code))
}

// Must be called with busy held.
func (b *Bridge) reload(name, code string) error {
	prev := b.phase
	snapshot := b.snapshot()
	b.phase = Reloading
	if err := b.interpret(name, code); err != nil {
		b.phase = prev
		return err
	}
	if prev == Uninitialized {
		b.phase = Loaded
		return nil
	}
	b.restore(snapshot)
	b.phase = Rendered
	logger.Printf("reloaded %s", b.name)
	return nil
}

// Migrate returns the field tables of newState, with the values of fields
// that also exist in old copied from old. Widgets missing from newState are
// dropped, and widgets missing from old keep their new fields. Fields are
// matched by name only.
func Migrate(old, newState map[string]map[string]any) map[string]map[string]any {
	migrated := make(map[string]map[string]any, len(newState))
	for widget, fields := range newState {
		m := vals.CopyFields(fields)
		if oldFields, ok := old[widget]; ok {
			for name := range m {
				if v, ok := oldFields[name]; ok {
					m[name] = vals.Copy(v)
				}
			}
		}
		migrated[widget] = m
	}
	return migrated
}

// Snapshot returns a deep copy of the fields of all widgets.
func (b *Bridge) Snapshot() (map[string]map[string]any, error) {
	if err := b.lock(); err != nil {
		return nil, err
	}
	defer b.busy.Unlock()
	return b.snapshot(), nil
}

func (b *Bridge) snapshot() map[string]map[string]any {
	s := make(map[string]map[string]any, len(b.states))
	for widget, st := range b.states {
		s[widget] = vals.CopyFields(st.Fields)
	}
	return s
}

// Restore migrates a snapshot, typically a persisted one, into the current
// widgets.
func (b *Bridge) Restore(snapshot map[string]map[string]any) error {
	if err := b.lock(); err != nil {
		return err
	}
	defer b.busy.Unlock()
	b.restore(snapshot)
	return nil
}

func (b *Bridge) restore(snapshot map[string]map[string]any) {
	current := make(map[string]map[string]any, len(b.states))
	for widget, st := range b.states {
		current[widget] = st.Fields
	}
	for widget, fields := range Migrate(snapshot, current) {
		st := b.states[widget]
		st.Fields = fields
		st.ViewDirty = true
	}
}

// Widgets returns the names of all widgets, sorted.
func (b *Bridge) Widgets() []string {
	names := make([]string, 0, len(b.states))
	for name := range b.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// State returns a copy of the state of a widget.
func (b *Bridge) State(widget string) (WidgetState, error) {
	st, ok := b.states[widget]
	if !ok {
		return WidgetState{}, &Error{Kind: ComponentNotFound, Widget: widget}
	}
	return WidgetState{
		Fields: vals.CopyFields(st.Fields), CachedNode: st.CachedNode.Clone(), ViewDirty: st.ViewDirty,
	}, nil
}

// Field returns the value of a field.
func (b *Bridge) Field(widget, field string) (any, error) {
	st, ok := b.states[widget]
	if !ok {
		return nil, &Error{Kind: ComponentNotFound, Widget: widget}
	}
	v, ok := st.Fields[field]
	if !ok {
		return nil, &Error{Kind: FieldNotFound, Widget: widget, Field: field}
	}
	return vals.Copy(v), nil
}

// SetField sets the value of a field. The new value must be of the same kind
// as the old one, unless the old one is nil.
func (b *Bridge) SetField(widget, field string, v any) error {
	if err := b.lock(); err != nil {
		return err
	}
	defer b.busy.Unlock()
	st, ok := b.states[widget]
	if !ok {
		return &Error{Kind: ComponentNotFound, Widget: widget}
	}
	old, ok := st.Fields[field]
	if !ok {
		return &Error{Kind: FieldNotFound, Widget: widget, Field: field}
	}
	if old != nil && vals.Kind(old) != vals.Kind(v) {
		return &Error{Kind: TypeMismatch, Widget: widget, Field: field,
			Err: fmt.Errorf("want %s, got %s", vals.Kind(old), vals.Kind(v))}
	}
	st.Fields[field] = v
	st.ViewDirty = true
	return nil
}

// MainWidget returns the widget whose view is the main view, if the program
// evaluates to a widget.
func (b *Bridge) MainWidget() (string, bool) {
	inst, ok := b.result.(vals.Instance)
	return inst.Widget, ok
}

// MainView returns the main view as a node tree. If the program evaluates to
// a node, that is the main view; if it evaluates to a widget, the main view
// is the result of its view method, cached until the widget changes.
// Otherwise the main view is a placeholder, or an error under the Strict
// policy.
func (b *Bridge) MainView() (*vals.Node, error) {
	if err := b.lock(); err != nil {
		return nil, err
	}
	defer b.busy.Unlock()
	if b.phase == Uninitialized {
		return nil, &Error{Kind: Unknown, Err: fmt.Errorf("no program loaded")}
	}
	n, err := b.mainView()
	if err != nil {
		return nil, err
	}
	b.phase = Rendered
	return n, nil
}

func (b *Bridge) mainView() (*vals.Node, error) {
	switch result := b.result.(type) {
	case *vals.Node:
		return result, nil
	case vals.Instance:
		return b.render(result.Widget)
	}
	return b.notNode("main view", b.result)
}

func (b *Bridge) render(widget string) (*vals.Node, error) {
	st, ok := b.states[widget]
	if !ok {
		return nil, &Error{Kind: ComponentNotFound, Widget: widget}
	}
	if st.CachedNode != nil && !st.ViewDirty {
		return st.CachedNode, nil
	}
	v, err := b.rt.InvokeMethod(widget, vals.CopyFields(st.Fields), "view")
	if err != nil {
		return nil, &Error{Kind: AutoLang, Widget: widget, Err: err}
	}
	n, ok := v.(*vals.Node)
	if !ok {
		var err error
		if n, err = b.notNode("view of "+widget, v); err != nil {
			return nil, err
		}
	}
	st.CachedNode, st.ViewDirty = n, false
	logger.Printf("rendered %s", widget)
	return n, nil
}

func (b *Bridge) notNode(what string, v any) (*vals.Node, error) {
	if b.policy == fallback.Strict {
		return nil, &Error{Kind: TypeMismatch, Err: fmt.Errorf("%s is %s, not node", what, vals.Kind(v))}
	}
	return vals.Placeholder(), nil
}

// View returns the main view converted to View IR.
func (b *Bridge) View(cfg convert.Config) (view.View[string], error) {
	n, err := b.MainView()
	if err != nil {
		return nil, err
	}
	return convert.Convert(n, cfg)
}

// Message is a message for a widget.
type Message interface{ isMessage() }

// StringMessage is a message in the form widget.event, like
// "Counter.Msg.Inc". It is split on the first dot.
type StringMessage string

// TypedMessage is a message with its parts separated.
type TypedMessage struct {
	Widget string
	Event  string
	Args   []any
}

func (StringMessage) isMessage() {}
func (TypedMessage) isMessage()  {}

// Split returns the widget and event of a message.
func (m StringMessage) Split() (widget, event string) {
	widget, event, _ = strings.Cut(string(m), ".")
	return widget, event
}

// HandleMessage delivers a message to its widget by calling the on method of
// the widget with the event name, followed by the arguments of a
// TypedMessage. The widget is marked dirty, and its fields are only updated
// if the method succeeds.
func (b *Bridge) HandleMessage(msg Message) error {
	if err := b.lock(); err != nil {
		return err
	}
	defer b.busy.Unlock()

	var widget, event string
	var args []any
	switch msg := msg.(type) {
	case StringMessage:
		widget, event = msg.Split()
	case TypedMessage:
		widget, event, args = msg.Widget, msg.Event, msg.Args
	default:
		return &Error{Kind: Unknown, Err: fmt.Errorf("unsupported message %T", msg)}
	}
	st, ok := b.states[widget]
	if !ok {
		return &Error{Kind: ComponentNotFound, Widget: widget}
	}
	st.ViewDirty = true

	fields := vals.CopyFields(st.Fields)
	if _, err := b.rt.InvokeMethod(widget, fields, "on", append([]any{event}, args...)...); err != nil {
		logger.Printf("handling %s.%s: %v", widget, event, err)
		return &Error{Kind: AutoLang, Widget: widget, Err: err}
	}
	st.Fields = fields
	logger.Printf("handled %s.%s", widget, event)
	return nil
}

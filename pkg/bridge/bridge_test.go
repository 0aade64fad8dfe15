package bridge_test

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	. "src.autoui.dev/pkg/bridge"
	"src.autoui.dev/pkg/convert"
	"src.autoui.dev/pkg/eval"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/testutil"
	"src.autoui.dev/pkg/vals"
	"src.autoui.dev/pkg/view"
)

var _ Runtime = (*eval.Evaler)(nil)

var counterCode = testutil.Dedent(`
	type Counter is Widget {
		count int = 0
		extra str = "x"

		fn view() {
			col {
				text(f"Count: $count")
				button("+") { onclick: Msg.Inc }
			}
		}

		fn on(ev Msg) {
			is ev {
				Msg.Inc => .count += 1
				Msg.Add => .count += 10
				Msg.Fail => .count = .count / 0
			}
		}

		fn set(n) {
			.count = n
		}
	}

	Counter()
	`)

func newBridge(t *testing.T, code string) *Bridge {
	t.Helper()
	b := New(eval.NewEvaler(), fallback.Default)
	require.NoError(t, b.Interpret("a.at", code))
	return b
}

func snapshot(t *testing.T, b *Bridge) map[string]map[string]any {
	t.Helper()
	s, err := b.Snapshot()
	require.NoError(t, err)
	return s
}

func mainText(t *testing.T, b *Bridge) string {
	t.Helper()
	n, err := b.MainView()
	require.NoError(t, err)
	require.Equal(t, "col", n.Kind, spew.Sdump(n))
	return n.Children[0].Args[0].(string)
}

func TestMigrate_Idempotent(t *testing.T) {
	state := map[string]map[string]any{
		"Counter": {"count": 5, "items": vals.List{1, 2}},
		"Other":   {"on": true},
	}
	if diff := cmp.Diff(state, Migrate(state, state)); diff != "" {
		t.Errorf("Migrate(s, s) (-want +got):\n%s", diff)
	}
}

func TestMigrate_FieldDrop(t *testing.T) {
	old := map[string]map[string]any{"Counter": {"count": 5, "extra": "x"}}
	newState := map[string]map[string]any{"Counter": {"count": 0}}
	got := Migrate(old, newState)
	require.Equal(t, 5, got["Counter"]["count"])
	_, hasExtra := got["Counter"]["extra"]
	require.False(t, hasExtra)
}

func TestMigrate_AddedAndRemovedWidgets(t *testing.T) {
	old := map[string]map[string]any{
		"Gone":    {"x": 1},
		"Counter": {"count": 5},
	}
	newState := map[string]map[string]any{
		"Counter": {"count": 0, "step": 1},
		"Fresh":   {"y": 2},
	}
	want := map[string]map[string]any{
		"Counter": {"count": 5, "step": 1},
		"Fresh":   {"y": 2},
	}
	if diff := cmp.Diff(want, Migrate(old, newState)); diff != "" {
		t.Errorf("Migrate (-want +got):\n%s", diff)
	}
}

func TestMigrate_CopiesValues(t *testing.T) {
	old := map[string]map[string]any{"W": {"items": vals.List{1}}}
	got := Migrate(old, map[string]map[string]any{"W": {"items": vals.List{}}})
	got["W"]["items"].(vals.List)[0] = 2
	require.Equal(t, 1, old["W"]["items"].(vals.List)[0])
}

func TestBridge_Lifecycle(t *testing.T) {
	b := New(eval.NewEvaler(), fallback.Default)
	require.Equal(t, Uninitialized, b.Phase())
	_, err := b.MainView()
	require.True(t, IsKind(err, Unknown), "got %v", err)

	require.NoError(t, b.Interpret("a.at", counterCode))
	require.Equal(t, Loaded, b.Phase())
	require.Equal(t, []string{"Counter"}, b.Widgets())
	widget, ok := b.MainWidget()
	require.True(t, ok)
	require.Equal(t, "Counter", widget)

	require.Equal(t, "Count: 0", mainText(t, b))
	require.Equal(t, Rendered, b.Phase())

	require.NoError(t, b.HandleMessage(StringMessage("Counter.Msg.Inc")))
	st, err := b.State("Counter")
	require.NoError(t, err)
	require.True(t, st.ViewDirty)
	require.Equal(t, "Count: 1", mainText(t, b))

	require.NoError(t, b.HandleMessage(TypedMessage{Widget: "Counter", Event: "Msg.Add"}))
	require.Equal(t, "Count: 11", mainText(t, b))
}

func TestBridge_MainViewIsCached(t *testing.T) {
	b := newBridge(t, counterCode)
	n1, err := b.MainView()
	require.NoError(t, err)
	n2, err := b.MainView()
	require.NoError(t, err)
	require.Same(t, n1, n2)

	require.NoError(t, b.SetField("Counter", "count", 3))
	n3, err := b.MainView()
	require.NoError(t, err)
	require.NotSame(t, n1, n3)
}

func TestBridge_InterpretFailureKeepsState(t *testing.T) {
	b := newBridge(t, counterCode)
	require.NoError(t, b.HandleMessage(StringMessage("Counter.Msg.Inc")))
	mainText(t, b)

	err := b.Interpret("a.at", "type Counter is Widget {")
	require.True(t, IsKind(err, AutoLang), "got %v", err)
	require.Equal(t, Rendered, b.Phase())
	v, err := b.Field("Counter", "count")
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestBridge_Reload(t *testing.T) {
	b := newBridge(t, counterCode)
	require.NoError(t, b.HandleMessage(StringMessage("Counter.Msg.Add")))
	mainText(t, b)

	require.NoError(t, b.Reload(testutil.Dedent(`
		type Counter is Widget {
			count int = 0
			step int = 2
			fn view() { col { text(f"Clicks: $count, step $step") } }
		}
		type Fresh is Widget { on bool = true }
		Counter()
		`)))
	require.Equal(t, Rendered, b.Phase())

	want := map[string]map[string]any{
		"Counter": {"count": 10, "step": 2},
		"Fresh":   {"on": true},
	}
	if diff := cmp.Diff(want, snapshot(t, b)); diff != "" {
		t.Errorf("Snapshot after reload (-want +got):\n%s", diff)
	}
	require.Equal(t, "Clicks: 10, step 2", mainText(t, b))
}

func TestBridge_ReloadIdempotent(t *testing.T) {
	b := newBridge(t, counterCode)
	require.NoError(t, b.HandleMessage(StringMessage("Counter.Msg.Inc")))
	before := snapshot(t, b)
	require.NoError(t, b.Reload(counterCode))
	if diff := cmp.Diff(before, snapshot(t, b)); diff != "" {
		t.Errorf("Snapshot (-before +after):\n%s", diff)
	}
}

func TestBridge_ReloadFailureKeepsState(t *testing.T) {
	b := newBridge(t, counterCode)
	require.NoError(t, b.HandleMessage(StringMessage("Counter.Msg.Inc")))
	before := snapshot(t, b)

	err := b.Reload("type Counter is Widget { count int = \"x\" + 1 }\nCounter()\nboom")
	require.True(t, IsKind(err, AutoLang), "got %v", err)
	require.Equal(t, Loaded, b.Phase())
	if diff := cmp.Diff(before, snapshot(t, b)); diff != "" {
		t.Errorf("Snapshot (-before +after):\n%s", diff)
	}
	require.Equal(t, "Count: 1", mainText(t, b))
}

func TestBridge_Restore(t *testing.T) {
	b := newBridge(t, counterCode)
	require.NoError(t, b.Restore(map[string]map[string]any{
		"Counter": {"count": 42, "gone": 1},
		"Missing": {"x": 1},
	}))
	require.Equal(t, "Count: 42", mainText(t, b))
	_, err := b.Field("Counter", "gone")
	require.True(t, IsKind(err, FieldNotFound), "got %v", err)
}

func TestBridge_HandleMessageErrors(t *testing.T) {
	b := newBridge(t, counterCode)

	err := b.HandleMessage(StringMessage("Nope.Msg.Inc"))
	require.True(t, IsKind(err, ComponentNotFound), "got %v", err)
	require.Equal(t, "component Nope not found", err.Error())

	err = b.HandleMessage(StringMessage("Counter.Msg.Fail"))
	require.True(t, IsKind(err, AutoLang), "got %v", err)
	var rerr *eval.Error
	require.True(t, errors.As(err, &rerr), "runtime error not unwrappable from %v", err)
	v, _ := b.Field("Counter", "count")
	require.Equal(t, 0, v)

	err = b.HandleMessage(TypedMessage{Widget: "Counter", Event: "Msg.Inc", Args: []any{1}})
	require.True(t, IsKind(err, AutoLang), "got %v", err)
}

func TestBridge_Fields(t *testing.T) {
	b := newBridge(t, counterCode)

	v, err := b.Field("Counter", "extra")
	require.NoError(t, err)
	require.Equal(t, "x", v)

	_, err = b.Field("Nope", "x")
	require.True(t, IsKind(err, ComponentNotFound), "got %v", err)
	err = b.SetField("Counter", "nope", 1)
	require.True(t, IsKind(err, FieldNotFound), "got %v", err)
	require.Equal(t, "field nope of Counter not found", err.Error())
	err = b.SetField("Counter", "count", "many")
	require.True(t, IsKind(err, TypeMismatch), "got %v", err)
	require.Equal(t, "type mismatch: field count of Counter: want int, got str", err.Error())
}

func TestBridge_NonNodeResult(t *testing.T) {
	for _, code := range []string{"1 + 1", "type W is Widget { fn view() { 1 } }\nW()"} {
		b := New(eval.NewEvaler(), fallback.Default)
		require.NoError(t, b.Interpret("a.at", code))
		n, err := b.MainView()
		require.NoError(t, err)
		require.True(t, n.IsPlaceholder(), "got %s", vals.Repr(n))

		b = New(eval.NewEvaler(), fallback.Strict)
		require.NoError(t, b.Interpret("a.at", code))
		_, err = b.MainView()
		require.True(t, IsKind(err, TypeMismatch), "got %v", err)
	}
}

func TestBridge_NodeResult(t *testing.T) {
	b := newBridge(t, `col { text("Hello") }`)
	v, err := b.View(convert.Config{})
	require.NoError(t, err)
	want := view.NewCol[string]().Child(view.NewText[string]("Hello").Build()).Build()
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("View (-want +got):\n%s", diff)
	}
	_, ok := b.MainWidget()
	require.False(t, ok)
}

func TestBridge_LoadFile(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{"a.at": counterCode, "b.at": "text(\"b\")"})

	b := New(eval.NewEvaler(), fallback.Default)
	err := b.LoadFile("missing.at")
	require.True(t, IsKind(err, Io), "got %v", err)
	require.NoError(t, b.LoadFile("a.at"))
	require.Equal(t, "Count: 0", mainText(t, b))

	require.NoError(t, b.ReloadFile("b.at"))
	n, err := b.MainView()
	require.NoError(t, err)
	require.Equal(t, "text", n.Kind)
}

// A runtime that records the names of interpreted programs.
type nameRuntime struct {
	*eval.Evaler
	names []string
}

func (rt *nameRuntime) Interpret(name, code string) (any, error) {
	rt.names = append(rt.names, name)
	return rt.Evaler.Interpret(name, code)
}

func TestBridge_ReloadFileFailureKeepsName(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(map[string]string{"a.at": counterCode, "bad.at": "type {"})

	rt := &nameRuntime{Evaler: eval.NewEvaler()}
	b := New(rt, fallback.Default)
	require.NoError(t, b.LoadFile("a.at"))
	err := b.ReloadFile("bad.at")
	require.True(t, IsKind(err, AutoLang), "got %v", err)
	require.NoError(t, b.Reload(counterCode))

	require.Equal(t, []string{"a.at", "bad.at", "a.at"}, rt.names)
}

// A runtime that calls back into the bridge while running a method.
type reentrantRuntime struct {
	eval.Evaler
	b   *Bridge
	err error
}

func (rt *reentrantRuntime) InvokeMethod(widget string, self map[string]any, method string, args ...any) (any, error) {
	rt.err = rt.b.HandleMessage(StringMessage("Counter.Msg.Inc"))
	return rt.Evaler.InvokeMethod(widget, self, method, args...)
}

func TestBridge_Lock(t *testing.T) {
	rt := &reentrantRuntime{}
	rt.b = New(rt, fallback.Default)
	require.NoError(t, rt.b.Interpret("a.at", counterCode))
	_, err := rt.b.MainView()
	require.NoError(t, err)
	require.True(t, IsKind(rt.err, Lock), "got %v", rt.err)
}

// A runtime that takes a snapshot while running a method.
type snapshotRuntime struct {
	eval.Evaler
	b   *Bridge
	s   map[string]map[string]any
	err error
}

func (rt *snapshotRuntime) InvokeMethod(widget string, self map[string]any, method string, args ...any) (any, error) {
	rt.s, rt.err = rt.b.Snapshot()
	return rt.Evaler.InvokeMethod(widget, self, method, args...)
}

func TestBridge_SnapshotLock(t *testing.T) {
	rt := &snapshotRuntime{}
	rt.b = New(rt, fallback.Default)
	require.NoError(t, rt.b.Interpret("a.at", counterCode))
	_, err := rt.b.MainView()
	require.NoError(t, err)
	require.True(t, IsKind(rt.err, Lock), "got %v", rt.err)
	require.Nil(t, rt.s)
}

func TestErrorKind_String(t *testing.T) {
	require.Equal(t, "component not found", ComponentNotFound.String())
	require.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

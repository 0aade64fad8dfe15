package vals

import (
	"testing"

	. "src.autoui.dev/pkg/tt"
)

type customKind struct{}

func (customKind) Kind() string { return "custom" }

func TestKind(t *testing.T) {
	Test(t, Fn("Kind", Kind), Table{
		Args(nil).Rets("nil"),
		Args(true).Rets("bool"),
		Args(5).Rets("int"),
		Args(1.5).Rets("float"),
		Args("x").Rets("str"),
		Args(List{1, 2}).Rets("list"),
		Args(NewNode("text")).Rets("node"),
		Args(Instance{"Counter"}).Rets("instance"),
		Args(customKind{}).Rets("custom"),
		Args(int8(1)).Rets("!!int8"),
	})
}

func TestRepr(t *testing.T) {
	Test(t, Fn("Repr", Repr), Table{
		Args(nil).Rets("nil"),
		Args(false).Rets("false"),
		Args(42).Rets("42"),
		Args(2.0).Rets("2.0"),
		Args("a\"b").Rets(`"a\"b"`),
		Args(List{1, "x"}).Rets(`[1, "x"]`),
		Args(Instance{"Counter"}).Rets("Counter()"),
		Args(NewNode("text").AddArg("Hello")).Rets(`text("Hello")`),
		Args(NewNode("button").AddArg("+").SetProp("onclick", "Msg.Inc")).
			Rets(`button("+") { onclick: "Msg.Inc" }`),
		Args(NewNode("col").AddChild(NewNode("row").AddChild(NewNode("text").AddArg("Hi")))).
			Rets(`col { row { text("Hi") } }`),
	})
}

func TestToString(t *testing.T) {
	Test(t, Fn("ToString", ToString), Table{
		Args("abc").Rets("abc"),
		Args(12).Rets("12"),
		Args(0.5).Rets("0.5"),
		Args(3.0).Rets("3.0"),
		Args(true).Rets("true"),
		Args(nil).Rets("nil"),
		Args(List{"a"}).Rets(`["a"]`),
	})
}

func TestEqual(t *testing.T) {
	Test(t, Fn("Equal", Equal), Table{
		Args(nil, nil).Rets(true),
		Args(nil, false).Rets(false),
		Args(1, 1).Rets(true),
		Args(1, 1.0).Rets(false),
		Args("a", "a").Rets(true),
		Args(List{1, "a"}, List{1, "a"}).Rets(true),
		Args(List{1}, List{1, 2}).Rets(false),
		Args(NewNode("text").AddArg("a"), NewNode("text").AddArg("a")).Rets(true),
		Args(NewNode("text").AddArg("a"), NewNode("text").AddArg("b")).Rets(false),
		Args(NewNode("col").SetProp("spacing", 1), NewNode("col")).Rets(false),
		Args(Instance{"A"}, Instance{"A"}).Rets(true),
	})
}

func TestNewNode_PanicsOnEmptyKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("NewNode(\"\") did not panic")
		}
	}()
	NewNode("")
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	if p.Kind != PlaceholderKind || !p.IsPlaceholder() {
		t.Errorf("Placeholder() = %s, want empty %q node", Repr(p), PlaceholderKind)
	}
	if NewNode(PlaceholderKind).IsPlaceholder() {
		t.Errorf("NewNode(%q) reported as placeholder", PlaceholderKind)
	}
	if !p.Clone().IsPlaceholder() {
		t.Errorf("clone of placeholder not reported as placeholder")
	}
	if Equal(p, NewNode(PlaceholderKind)) {
		t.Errorf("placeholder equal to NewNode(%q)", PlaceholderKind)
	}
}

func TestNode_Walk(t *testing.T) {
	root := NewNode("col").AddChild(
		NewNode("row").AddChild(NewNode("text")),
		NewNode("button"))
	var kinds []string
	root.Walk(func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return n.Kind != "row"
	})
	want := []string{"col", "row", "button"}
	if !Equal(toList(kinds), toList(want)) {
		t.Errorf("Walk visited %v, want %v", kinds, want)
	}
}

func TestCopyFields_IsDeep(t *testing.T) {
	orig := map[string]any{"items": List{1, 2}, "n": 1}
	c := CopyFields(orig)
	c["items"].(List)[0] = 100
	c["n"] = 2
	if orig["items"].(List)[0] != 1 || orig["n"] != 1 {
		t.Errorf("mutating copy changed original: %v", orig)
	}
	if CopyFields(nil) != nil {
		t.Errorf("CopyFields(nil) != nil")
	}
}

func TestEqualFields(t *testing.T) {
	a := map[string]any{"count": 5, "name": "x"}
	if !EqualFields(a, map[string]any{"count": 5, "name": "x"}) {
		t.Errorf("equal tables reported unequal")
	}
	if EqualFields(a, map[string]any{"count": 5}) {
		t.Errorf("tables of different sizes reported equal")
	}
	if EqualFields(a, map[string]any{"count": 5, "other": "x"}) {
		t.Errorf("tables with different keys reported equal")
	}
}

func toList(ss []string) List {
	l := make(List, len(ss))
	for i, s := range ss {
		l[i] = s
	}
	return l
}

package devserver

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.autoui.dev/pkg/view"
)

func TestEncode(t *testing.T) {
	v := view.NewCol[string]().Spacing(4).Align(view.AlignCenter).
		Child(view.NewText[string]("Count: 1").Size(18).Build()).
		Child(view.NewButton("+", "Msg.Inc").Build()).
		Child(view.NewCheckbox("done", true, func(bool) string { return "Msg.Toggle" }).Build()).
		Child(view.NewInput("x", func(string) string { return "Msg.Edit" }).Password(true).Build()).
		Child(view.NewCenter(view.NewEmpty[string]())).
		Build()

	want := &Node{Kind: "col", Spacing: 4, Align: "center", Children: []*Node{
		{Kind: "text", Text: "Count: 1", Size: 18},
		{Kind: "button", Text: "+", Message: "Msg.Inc"},
		{Kind: "checkbox", Text: "done", Checked: true, Message: "Msg.Toggle"},
		{Kind: "input", Value: "x", Message: "Msg.Edit", Style: "password"},
		{Kind: "center", Children: []*Node{{Kind: "empty"}}},
	}}
	if diff := cmp.Diff(want, Encode(v)); diff != "" {
		t.Errorf("Encode (-want +got):\n%s", diff)
	}
}

func TestEncode_Table(t *testing.T) {
	v := view.NewTable[string]("k", "v").
		Row(view.NewText[string]("a").Build(), view.NewText[string]("1").Build()).
		Row(view.NewText[string]("b").Build(), view.NewText[string]("2").Build()).
		Build()
	n := Encode(v)
	if n.Columns != 2 || len(n.Children) != 4 {
		t.Errorf("got %d columns and %d cells, want 2 and 4", n.Columns, len(n.Children))
	}
	if diff := cmp.Diff([]string{"k", "v"}, n.Options); diff != "" {
		t.Errorf("headers (-want +got):\n%s", diff)
	}
}

func TestFromJSON(t *testing.T) {
	got := fromJSON([]any{float64(3), 2.5, "x", true})
	want := []any{3, 2.5, "x", true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fromJSON (-want +got):\n%s", diff)
	}
}

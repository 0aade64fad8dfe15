package outline

import (
	"testing"

	"src.autoui.dev/pkg/testutil"
	"src.autoui.dev/pkg/view"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		view view.View[string]
		want string
	}{
		{
			name: "empty",
			view: view.NewEmpty[string](),
			want: "empty\n",
		},
		{
			name: "counter",
			view: view.NewCol[string]().Spacing(8).Align(view.AlignCenter).
				Child(view.NewText[string]("Count: 0").Size(20).Build()).
				Child(view.NewRow[string]().Children(
					view.NewButton("+", "Msg.Inc").Build(),
					view.NewButton("-", "Msg.Dec").Style("danger").Build(),
				).Build()).
				Build(),
			want: testutil.Dedent(`
				col spacing=8 align=center
				  text "Count: 0" size=20
				  row
				    button "+" -> Msg.Inc
				    button "-" style="danger" -> Msg.Dec
				`),
		},
		{
			name: "inputs",
			view: view.NewList[string]().Items(
				view.NewCheckbox("done", true, func(bool) string { return "Msg.Toggle" }).Build(),
				view.NewInput("", func(string) string { return "Msg.Edit" }).Placeholder("name").Build(),
				view.NewSelect([]string{"a", "b"}, func(string) string { return "Msg.Pick" }).Selected("b").Build(),
				view.NewRadio("r", false, "").Build(),
			).Build(),
			want: testutil.Dedent(`
				list
				  checkbox "done" checked -> Msg.Toggle
				  input "" placeholder="name" -> Msg.Edit
				  select ["a" "b"] selected="b" -> Msg.Pick
				  radio "r"
				`),
		},
		{
			name: "wrappers",
			view: view.NewCenter(
				view.NewContainer(
					view.NewScrollable(view.NewText[string]("x").Build()).Height(100).Build(),
				).Padding(4).Centered(true).Build()),
			want: testutil.Dedent(`
				center
				  container padding=4 centered
				    scrollable height=100
				      text "x"
				`),
		},
		{
			name: "table",
			view: view.NewTable[string]("k", "v").
				Row(view.NewText[string]("a").Build(), view.NewText[string]("1").Build()).
				Build(),
			want: testutil.Dedent(`
				table headers=["k" "v"]
				  row 0
				    text "a"
				    text "1"
				`),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := String(test.view); got != test.want {
				t.Errorf("got\n%s\nwant\n%s", got, test.want)
			}
		})
	}
}

type msg int

func (m msg) String() string { return [...]string{"MsgInc", "MsgDec"}[m] }

func TestString_TypedMessages(t *testing.T) {
	v := view.NewButton[msg]("+", 0).Build()
	if got, want := String(v), "button \"+\" -> MsgInc\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

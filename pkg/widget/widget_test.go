package widget

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"src.autoui.dev/pkg/errutil"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/parse"
	"src.autoui.dev/pkg/testutil"
	"src.autoui.dev/pkg/tt"
	"src.autoui.dev/pkg/vals"
)

func parseFile(t *testing.T, code string) *parse.File {
	t.Helper()
	f, err := parse.Parse(parse.Source{Name: "a.at", Code: code})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func typeDecl(t *testing.T, code string) *parse.TypeDecl {
	t.Helper()
	for _, s := range parseFile(t, code).Stmts {
		if d, ok := s.(*parse.TypeDecl); ok {
			return d
		}
	}
	t.Fatalf("no type declaration in %q", code)
	return nil
}

func TestIsWidgetType(t *testing.T) {
	tt.Test(t, tt.Fn("isWidget", func(code string) bool {
		return IsWidgetType(typeDecl(t, code))
	}), tt.Table{
		tt.Args("type A is Widget {}").Rets(true),
		tt.Args("type A is Copy, Widget {}").Rets(true),
		tt.Args("type A { fn view() { text(\"a\") } }").Rets(true),
		tt.Args("type A { x int }").Rets(false),
		tt.Args("type A is Copy { fn render() {} }").Rets(false),
	})
}

func TestExtract(t *testing.T) {
	d := typeDecl(t, testutil.Dedent(`
		type Counter is Widget {
			count int = 0
			ratio = 1.5 * 2
			title str = "Counter"
			items = [1, 2]
			other = count

			fn view() {
				col {
					text(f"Count: $count")
					button("+") { onclick: Msg.Inc, style: "primary" }
					extra
				}
			}
		}
		`))
	info, err := Extract(d, fallback.Default)
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "Counter" || info.Decl != d {
		t.Errorf("got name %q, decl %p", info.Name, info.Decl)
	}

	wantFields := []Field{
		{Name: "count", Type: "int", Default: 0},
		{Name: "ratio", Type: "float", Default: 3.0},
		{Name: "title", Type: "str", Default: "Counter"},
		{Name: "items", Type: "list", Default: vals.List{1, 2}},
		{Name: "other"},
	}
	ignoreExpr := cmpopts.IgnoreFields(Field{}, "Expr")
	if diff := cmp.Diff(wantFields, info.Model.Fields, ignoreExpr); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	for _, f := range info.Model.Fields {
		if f.Expr == nil {
			t.Errorf("field %s has no source expression", f.Name)
		}
	}

	root := info.View.Root
	if info.View.Placeholder || root.Kind != "col" || len(root.Children) != 3 {
		t.Fatalf("got root %s", vals.Repr(root))
	}
	if _, ok := root.Children[0].Args[0].(*parse.FString); !ok {
		t.Errorf("f-string argument is %T, want *parse.FString", root.Children[0].Args[0])
	}
	button := root.Children[1]
	wantButton := vals.NewNode("button").AddArg("+").
		SetProp("onclick", "Msg.Inc").SetProp("style", "primary")
	if diff := cmp.Diff(wantButton, button); diff != "" {
		t.Errorf("button (-want +got):\n%s", diff)
	}
	if expr := root.Children[2]; expr.Kind != ExprKind {
		t.Errorf("got kind %q for non-node child, want %q", expr.Kind, ExprKind)
	}
}

func TestExtract_ViewFallback(t *testing.T) {
	for _, code := range []string{
		"type A is Widget { x int }",
		"type A is Widget { fn view() {} }",
		"type A is Widget { fn view() { let x = 1 } }",
		"type A is Widget { fn view() { 1 + 2 } }",
		"type A is Widget { fn view() { Msg.Inc } }",
	} {
		d := typeDecl(t, code)

		info, err := Extract(d, fallback.Permissive)
		if err != nil {
			t.Errorf("Extract(%q, Permissive) -> error %v", code, err)
		} else if !info.View.Placeholder || !info.View.Root.IsPlaceholder() {
			t.Errorf("Extract(%q, Permissive) -> root %s, want placeholder",
				code, vals.Repr(info.View.Root))
		}

		_, err = Extract(d, fallback.Strict)
		var werr *Error
		if !errors.As(err, &werr) || werr.Widget != "A" {
			t.Errorf("Extract(%q, Strict) -> error %v, want *Error", code, err)
		}
	}
}

func TestExtract_ReturnStatement(t *testing.T) {
	d := typeDecl(t, `type A { fn view() { let x = 1; return text("hi") } }`)
	info, err := Extract(d, fallback.Strict)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(vals.NewNode("text").AddArg("hi"), info.View.Root); diff != "" {
		t.Errorf("root (-want +got):\n%s", diff)
	}
}

func TestExtractFile(t *testing.T) {
	f := parseFile(t, testutil.Dedent(`
		type A is Widget { fn view() { text("a") } }
		type Point { x int }
		type B is Widget { }
		type C { fn view() { text("c") } }
		`))

	infos, err := ExtractFile(f, fallback.Permissive)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}

	infos, err = ExtractFile(f, fallback.Strict)
	if len(infos) != 2 || len(errutil.Errors(err)) != 1 {
		t.Errorf("got %d infos and error %v, want 2 infos and 1 error", len(infos), err)
	}
}

func basic(code string) (any, bool) {
	e, err := parse.ParseExpr(parse.Source{Name: "a.at", Code: code})
	if err != nil {
		panic(err)
	}
	return EvalBasic(e)
}

func TestEvalBasic(t *testing.T) {
	tt.Test(t, tt.Fn("basic", basic), tt.Table{
		tt.Args("1 + 2 * 3").Rets(7, true),
		tt.Args("7 / 2").Rets(3, true),
		tt.Args("7 % 2").Rets(1, true),
		tt.Args("1 / 2.0").Rets(0.5, true),
		tt.Args("-1.5").Rets(-1.5, true),
		tt.Args("!false").Rets(true, true),
		tt.Args(`"a" + "b"`).Rets("ab", true),
		tt.Args(`f"plain"`).Rets("plain", true),
		tt.Args("[1, [nil]]").Rets(vals.List{1, vals.List{nil}}, true),

		tt.Args("1 / 0").Rets(nil, false),
		tt.Args(`"a" * 2`).Rets(nil, false),
		tt.Args("1 < 2").Rets(nil, false),
		tt.Args("-true").Rets(nil, false),
		tt.Args("x").Rets(nil, false),
		tt.Args("f(1)").Rets(nil, false),
		tt.Args(`f"$x"`).Rets(nil, false),
		tt.Args("[1, x]").Rets(nil, false),
	})
}

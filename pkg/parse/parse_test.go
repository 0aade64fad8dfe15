package parse

import (
	"strings"
	"testing"

	"src.autoui.dev/pkg/testutil"
	"src.autoui.dev/pkg/tt"
)

func parseAndFormat(code string) string {
	f, err := Parse(Source{Name: "a.at", Code: code})
	if err != nil {
		return "error: " + err.Error()
	}
	return Format(f)
}

func TestParse_Expressions(t *testing.T) {
	tt.Test(t, tt.Fn("parseAndFormat", parseAndFormat), tt.Table{
		tt.Args(`text("Hello")`).Rets(`text("Hello")`),
		tt.Args(`col { row { text("Hi") } }`).Rets(`col { row { text("Hi"); }; }`),
		tt.Args(`button("+") { onclick: Msg.Inc }`).Rets(`button("+") { onclick: Msg.Inc; }`),
		tt.Args(`button("+") { "on_click": Msg.Inc, style: "primary" }`).
			Rets(`button("+") { on_click: Msg.Inc; style: "primary"; }`),
		tt.Args(`col { }`).Rets(`col { }`),
		tt.Args(`a + b * c`).Rets(`a + (b * c)`),
		tt.Args(`(a + b) * c`).Rets(`(a + b) * c`),
		tt.Args(`a - b - c`).Rets(`(a - b) - c`),
		tt.Args(`-x + 1`).Rets(`(-x) + 1`),
		tt.Args(`!a && b || c`).Rets(`((!a) && b) || c`),
		tt.Args(`a == 1 && b != 2`).Rets(`(a == 1) && (b != 2)`),
		tt.Args(`1.5 + 2e3 + 1_000`).Rets(`(1.5 + 2000.0) + 1000`),
		tt.Args(`[1, "a", nil, true, [2]]`).Rets(`[1, "a", nil, true, [2]]`),
		tt.Args(`f"Count: $count and ${a + 1}!"`).Rets(`f"Count: ${count} and ${a + 1}!"`),
		tt.Args(`f"cost: \$5"`).Rets(`f"cost: \$5"`),
		tt.Args(`"tab\there \"quoted\" $x"`).Rets(`"tab\there \"quoted\" $x"`),
		tt.Args(`a.b.c(1)`).Rets(`a.b.c(1)`),
		tt.Args(`x // comment`).Rets(`x`),
	})
}

func TestParse_Statements(t *testing.T) {
	tt.Test(t, tt.Fn("parseAndFormat", parseAndFormat), tt.Table{
		tt.Args("let x = 1\nx = x + 2").Rets("let x = 1\nx = x + 2"),
		tt.Args("let x = 1; x += 2").Rets("let x = 1\nx += 2"),
		tt.Args("fn add(a int, b) int { return a + b }").Rets("fn add(a int, b) int { return a + b }"),
		tt.Args("fn f() { return }").Rets("fn f() { return }"),
		tt.Args("fn f() { if a > 1 { x = 1 } else if b { x = 2 } else { x = 3 } }").
			Rets("fn f() { if a > 1 { x = 1 } else { if b { x = 2 } else { x = 3 } } }"),
		tt.Args("fn f() { for item in .items { print(item) } }").
			Rets("fn f() { for item in .items { print(item) } }"),
		// A newline ends an expression even before an operator.
		tt.Args("fn f() {\n  a\n  -b\n}").Rets("fn f() { a; -b }"),
		// A newline prevents a call.
		tt.Args("a\n(b)").Rets("a\nb"),
	})
}

func TestParse_TypeDecl(t *testing.T) {
	code := testutil.Dedent(`
		type Counter is Widget {
			count int = 0
			label: str = "n"
			var step = 1

			fn view() {
				button("+") { onclick: Msg.Inc }
			}

			fn on(ev Msg) {
				is ev {
					Msg.Inc => .count += .step
					Msg.Dec => { .count -= 1 }
					else => {}
				}
			}
		}

		Counter()
		`)
	want := `type Counter is Widget {` +
		` count int = 0; label str = "n"; step = 1;` +
		` fn view() { button("+") { onclick: Msg.Inc; } };` +
		` fn on(ev Msg) { is ev {` +
		` Msg.Inc => { .count += .step }; Msg.Dec => { .count -= 1 }; else => {}; } }; }` +
		"\nCounter()"
	tt.Test(t, tt.Fn("parseAndFormat", parseAndFormat), tt.Table{
		tt.Args(code).Rets(want),
	})

	f, _ := Parse(Source{Name: "a.at", Code: code})
	decl := f.Stmts[0].(*TypeDecl)
	if decl.Method("view") == nil || decl.Method("missing") != nil {
		t.Errorf("Method lookup is wrong")
	}
	if got := code[decl.From:decl.To]; !strings.HasPrefix(got, "type Counter") || !strings.HasSuffix(got, "}") {
		t.Errorf("range of the declaration covers %q", got)
	}
}

func TestParse_IfConditionIsNotNodeBody(t *testing.T) {
	f, err := Parse(Source{Name: "a.at", Code: "fn f() { if ready { x = 1 } }"})
	if err != nil {
		t.Fatal(err)
	}
	s := f.Stmts[0].(*FnDecl).Body[0].(*IfStmt)
	if _, ok := s.Cond.(*Ident); !ok {
		t.Errorf("condition parsed as %T", s.Cond)
	}
}

type errorInfo struct {
	Message string
	From    int
	Partial bool
}

func parseErrors(code string) []errorInfo {
	_, err := Parse(Source{Name: "a.at", Code: code})
	var infos []errorInfo
	for _, e := range UnpackErrors(err) {
		infos = append(infos, errorInfo{e.Message, e.Range().From, e.Partial})
	}
	return infos
}

func TestParse_Errors(t *testing.T) {
	tt.Test(t, tt.Fn("parseErrors", parseErrors), tt.Table{
		tt.Args("text(").Rets([]errorInfo{
			{`unexpected end of input, should be ")" to close the list`, 5, true}}),
		tt.Args("1 +").Rets([]errorInfo{
			{"unexpected end of input, should be expression", 3, true}}),
		tt.Args("type { }").Rets([]errorInfo{
			{`unexpected "{", should be type name`, 5, false}}),
		tt.Args(`"abc`).Rets([]errorInfo{
			{"unterminated string", 0, false}}),
		tt.Args("a b").Rets([]errorInfo{
			{`unexpected "b", should be newline or ";"`, 2, false}}),
		tt.Args("x = )\ny = ]").Rets([]errorInfo{
			{`unexpected ")", should be expression`, 4, false},
			{`unexpected "]", should be expression`, 10, false}}),
		tt.Args("1 = 2").Rets([]errorInfo{
			{"cannot assign to this expression", 2, false}}),
		tt.Args("fn f() {\n  type B\n}").Rets([]errorInfo{
			{"type declarations are only allowed at the top level", 11, false}}),
		tt.Args(`"\q"`).Rets([]errorInfo{
			{`invalid escape sequence \q`, 0, false}}),
		tt.Args("type A { x }").Rets([]errorInfo{
			{"field x has neither a type nor a default value", 11, false}}),
		tt.Args("a @ b").Rets([]errorInfo{
			{`unexpected rune '@'`, 2, false},
			{`unexpected "b", should be newline or ";"`, 4, false}}),
		tt.Args("ok()").Rets([]errorInfo(nil)),
	})
}

func TestParseExpr(t *testing.T) {
	x, err := ParseExpr(Source{Name: "e", Code: "1 + 2"})
	if err != nil || Format(x) != "1 + 2" {
		t.Errorf("ParseExpr returns (%v, %v)", Format(x), err)
	}
	_, err = ParseExpr(Source{Name: "e", Code: "1 2"})
	if err == nil {
		t.Errorf("ParseExpr accepts trailing tokens")
	}
}

func TestMemberPath(t *testing.T) {
	parse := func(code string) (string, bool) {
		x, _ := ParseExpr(Source{Name: "e", Code: code})
		return MemberPath(x)
	}
	tt.Test(t, tt.Fn("MemberPath", parse), tt.Table{
		tt.Args("Msg.Inc").Rets("Msg.Inc", true),
		tt.Args("a.b.c").Rets("a.b.c", true),
		tt.Args("x").Rets("x", true),
		tt.Args("f().x").Rets("", false),
		tt.Args(".count").Rets("", false),
	})
}

func TestWalk(t *testing.T) {
	f, _ := Parse(Source{Name: "a.at", Code: `col { text(f"$a"); button("+") { onclick: Msg.Inc } }`})
	var idents []string
	Walk(f, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	want := "col text a button Msg"
	if got := strings.Join(idents, " "); got != want {
		t.Errorf("got idents %q, want %q", got, want)
	}
}

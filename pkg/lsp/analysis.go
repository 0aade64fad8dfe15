package lsp

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	lsp "github.com/sourcegraph/go-lsp"

	"src.autoui.dev/pkg/convert"
	"src.autoui.dev/pkg/fallback"
	"src.autoui.dev/pkg/parse"
	"src.autoui.dev/pkg/widget"
)

// Results of analyzing one version of a document.
type analysis struct {
	lines   *lineIndex
	file    *parse.File
	diags   []lsp.Diagnostic
	types   map[string]*parse.TypeDecl
	fns     map[string]*parse.FnDecl
	widgets map[string]*widget.Info
}

// Caches analyses by document content, so that reopened documents and
// repeated requests on an unchanged document are not analyzed again.
type analyzer struct {
	cache *lru.Cache
}

const cacheSize = 64

func newAnalyzer() *analyzer {
	cache, err := lru.New(cacheSize)
	if err != nil {
		panic(err)
	}
	return &analyzer{cache}
}

func (az *analyzer) analyze(name, content string) *analysis {
	if a, ok := az.cache.Get(content); ok {
		return a.(*analysis)
	}
	a := analyze(name, content)
	az.cache.Add(content, a)
	return a
}

func analyze(name, content string) *analysis {
	a := &analysis{
		lines:   newLineIndex(content),
		diags:   []lsp.Diagnostic{},
		types:   make(map[string]*parse.TypeDecl),
		fns:     make(map[string]*parse.FnDecl),
		widgets: make(map[string]*widget.Info),
	}
	f, err := parse.Parse(parse.Source{Name: name, Code: content})
	a.file = f
	for _, perr := range parse.UnpackErrors(err) {
		a.diags = append(a.diags, lsp.Diagnostic{
			Range:    a.lines.lspRange(perr),
			Severity: lsp.Error,
			Source:   "parse",
			Message:  perr.Message,
		})
	}
	if f == nil {
		return a
	}
	for _, stmt := range f.Stmts {
		switch stmt := stmt.(type) {
		case *parse.TypeDecl:
			a.types[stmt.Name] = stmt
		case *parse.FnDecl:
			a.fns[stmt.Name] = stmt
		}
	}
	for _, d := range a.types {
		if !widget.IsWidgetType(d) {
			continue
		}
		if info, err := widget.Extract(d, fallback.Permissive); err == nil {
			a.widgets[d.Name] = info
		}
		if _, err := widget.Extract(d, fallback.Strict); err != nil {
			a.warn(d, "widget", err.Error())
		}
		if m := d.Method("view"); m != nil {
			a.checkKinds(m.Body)
		}
	}
	sort.Slice(a.diags, func(i, j int) bool {
		pi, pj := a.diags[i].Range.Start, a.diags[j].Range.Start
		return pi.Line < pj.Line || (pi.Line == pj.Line && pi.Character < pj.Character)
	})
	return a
}

func (a *analysis) warn(n parse.Node, source, msg string) {
	a.diags = append(a.diags, lsp.Diagnostic{
		Range:    a.lines.lspRange(n),
		Severity: lsp.Warning,
		Source:   source,
		Message:  msg,
	})
}

// Reports calls in view bodies that produce nodes of kinds no converter
// understands.
func (a *analysis) checkKinds(stmts []parse.Stmt) {
	walkStmts(stmts, func(e parse.Expr) {
		call, ok := e.(*parse.CallExpr)
		if !ok {
			return
		}
		id, ok := call.Fn.(*parse.Ident)
		if !ok || !a.isNodeKind(id.Name) || convert.IsKnown(id.Name) {
			return
		}
		a.warn(id, "convert", fmt.Sprintf("unknown widget kind %q", id.Name))
	})
}

func (a *analysis) isNodeKind(name string) bool {
	_, isType := a.types[name]
	_, isFn := a.fns[name]
	return !isType && !isFn && !isBuiltin(name)
}

var builtins = []string{"len", "print", "str"}

func isBuiltin(name string) bool {
	i := sort.SearchStrings(builtins, name)
	return i < len(builtins) && builtins[i] == name
}

func walkStmts(stmts []parse.Stmt, f func(parse.Expr)) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *parse.LetStmt:
			walkExpr(s.Value, f)
		case *parse.AssignStmt:
			walkExpr(s.Value, f)
		case *parse.ExprStmt:
			walkExpr(s.X, f)
		case *parse.ReturnStmt:
			walkExpr(s.Value, f)
		case *parse.IfStmt:
			walkExpr(s.Cond, f)
			walkStmts(s.Then, f)
			walkStmts(s.Else, f)
		case *parse.ForStmt:
			walkExpr(s.Iter, f)
			walkStmts(s.Body, f)
		case *parse.IsStmt:
			walkExpr(s.Subject, f)
			for _, arm := range s.Arms {
				walkStmts(arm.Body, f)
			}
			walkStmts(s.Else, f)
		}
	}
}

func walkExpr(e parse.Expr, f func(parse.Expr)) {
	if e == nil {
		return
	}
	f(e)
	switch e := e.(type) {
	case *parse.CallExpr:
		for _, arg := range e.Args {
			walkExpr(arg, f)
		}
		for _, prop := range e.Props {
			walkExpr(prop.Value, f)
		}
		for _, child := range e.Children {
			walkExpr(child, f)
		}
	case *parse.ListLit:
		for _, elem := range e.Elems {
			walkExpr(elem, f)
		}
	case *parse.FString:
		for _, part := range e.Parts {
			walkExpr(part, f)
		}
	case *parse.UnaryExpr:
		walkExpr(e.X, f)
	case *parse.BinaryExpr:
		walkExpr(e.X, f)
		walkExpr(e.Y, f)
	case *parse.MemberExpr:
		walkExpr(e.X, f)
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// Returns the identifier around idx, and where it starts.
func wordAt(s string, idx int) (string, int) {
	from, to := idx, idx
	for from > 0 && isIdentByte(s[from-1]) {
		from--
	}
	for to < len(s) && isIdentByte(s[to]) {
		to++
	}
	return s[from:to], from
}

func (a *analysis) hover(word string) string {
	if info, ok := a.widgets[word]; ok {
		var sb strings.Builder
		fmt.Fprintf(&sb, "type %s is %s\n", info.Name, strings.Join(info.Decl.Caps, ", "))
		for _, f := range info.Model.Fields {
			sb.WriteString("  " + strings.TrimSpace(f.Name+" "+f.Type))
			if f.Expr != nil {
				sb.WriteString(" = " + parse.Format(f.Expr))
			}
			sb.WriteString("\n")
		}
		if info.View.Placeholder {
			sb.WriteString("view: (none)\n")
		} else {
			fmt.Fprintf(&sb, "view: %s\n", info.View.Root.Kind)
		}
		return sb.String()
	}
	if d, ok := a.types[word]; ok {
		return fmt.Sprintf("type %s (not a widget)", d.Name)
	}
	if d, ok := a.fns[word]; ok {
		return "fn " + d.Name + "(" + params(d.Params) + ")"
	}
	if convert.IsKnown(word) {
		return fmt.Sprintf("widget kind %s", word)
	}
	return ""
}

func params(ps []*parse.Param) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = strings.TrimSpace(p.Name + " " + p.Type)
	}
	return strings.Join(names, ", ")
}

func (a *analysis) completions(prefix string) []lsp.CompletionItem {
	items := []lsp.CompletionItem{}
	add := func(label string, kind lsp.CompletionItemKind, detail string) {
		if strings.HasPrefix(label, prefix) {
			items = append(items, lsp.CompletionItem{Label: label, Kind: kind, Detail: detail})
		}
	}
	for _, kind := range convert.Kinds() {
		add(kind, lsp.CIKFunction, "widget kind")
	}
	for _, name := range sortedKeys(a.types) {
		if _, ok := a.widgets[name]; ok {
			add(name, lsp.CIKClass, "widget")
		} else {
			add(name, lsp.CIKClass, "type")
		}
	}
	for _, name := range sortedKeys(a.fns) {
		add(name, lsp.CIKFunction, "fn")
	}
	for _, name := range builtins {
		add(name, lsp.CIKFunction, "builtin")
	}
	return items
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

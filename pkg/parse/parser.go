package parse

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"src.autoui.dev/pkg/diag"
)

// Error is a parse error.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "parse error" }

// UnpackErrors returns the constituent parse errors if the given error contains
// one or more parse errors. Otherwise it returns nil.
func UnpackErrors(e error) []*Error {
	if errs := diag.UnpackErrors[ErrorTag](e); len(errs) > 0 {
		return errs
	}
	return nil
}

// parser maintains the mutable state of parsing.
type parser struct {
	srcName string
	src     string
	lx      lexer
	tok     token
	prev    token
	errors  []*Error
	// Nesting level of contexts where a "{" ends an expression instead of
	// starting a node body, like the condition of an if.
	noBody int
}

func newParser(name, src string, from, to int) *parser {
	ps := &parser{srcName: name, src: src, lx: lexer{src, from, to}}
	ps.advance()
	return ps
}

func (ps *parser) advance() token {
	ps.prev = ps.tok
	ps.tok = ps.lx.next()
	for ps.tok.kind == tokBad {
		ps.errorp(diag.Ranging{From: ps.tok.from, To: ps.tok.to}, errors.New(ps.tok.err))
		ps.tok = ps.lx.next()
	}
	return ps.prev
}

func (ps *parser) errorp(r diag.Ranger, e error) {
	ps.errors = append(ps.errors, &Error{
		Message: e.Error(),
		Context: *diag.NewContext(ps.srcName, ps.src, r),
		Partial: r.Range().From == len(ps.src),
	})
}

// Records an error at the current token.
func (ps *parser) error(e error) {
	ps.errorp(diag.Ranging{From: ps.tok.from, To: ps.tok.to}, e)
}

func (ps *parser) isPunct(p string) bool   { return ps.tok.is(tokPunct, p) }
func (ps *parser) isKeyword(k string) bool { return ps.tok.is(tokKeyword, k) }

func (ps *parser) acceptPunct(p string) bool {
	if ps.isPunct(p) {
		ps.advance()
		return true
	}
	return false
}

func (ps *parser) expectPunct(p string, what string) bool {
	if ps.acceptPunct(p) {
		return true
	}
	ps.error(newError("unexpected "+ps.tok.describe(), strconv.Quote(p)+" "+what))
	return false
}

func (ps *parser) expectIdent(what string) string {
	if ps.tok.kind == tokIdent {
		return ps.advance().text
	}
	ps.error(newError("unexpected "+ps.tok.describe(), what))
	return ""
}

// Whether the current token starts a new statement: it is on a new line, or
// it closes a block, or the input has ended.
func (ps *parser) atStmtBoundary() bool {
	return ps.tok.nlBefore || ps.isPunct("}") || ps.isPunct(";") || ps.tok.kind == tokEOF
}

// Skips to the next statement boundary after an error, always making
// progress.
func (ps *parser) sync() {
	if ps.tok.kind != tokEOF && !ps.isPunct("}") {
		ps.advance()
	}
	for !ps.atStmtBoundary() {
		ps.advance()
	}
}

func (ps *parser) endStmt() {
	if ps.acceptPunct(";") {
		return
	}
	if !ps.atStmtBoundary() {
		ps.error(newError("unexpected "+ps.tok.describe(), "newline", `";"`))
		ps.sync()
	}
}

func (ps *parser) file() *File {
	f := &File{Name: ps.srcName, Ranging: diag.Ranging{From: 0, To: len(ps.src)}}
	for ps.tok.kind != tokEOF {
		if ps.acceptPunct(";") {
			continue
		}
		if ps.isPunct("}") {
			ps.error(newError("unexpected " + ps.tok.describe()))
			ps.advance()
			continue
		}
		var s Stmt
		switch {
		case ps.isKeyword("type"):
			s = ps.typeDecl()
		case ps.isKeyword("fn"):
			s = ps.fnDecl()
		default:
			s = ps.stmt()
		}
		if s != nil {
			f.Stmts = append(f.Stmts, s)
		}
		ps.endStmt()
	}
	return f
}

func (ps *parser) typeDecl() *TypeDecl {
	d := &TypeDecl{}
	d.From = ps.advance().from
	d.Name = ps.expectIdent("type name")
	if ps.isKeyword("is") {
		ps.advance()
		for {
			if c := ps.expectIdent("capability name"); c != "" {
				d.Caps = append(d.Caps, c)
			}
			if !ps.acceptPunct(",") {
				break
			}
		}
	}
	if !ps.expectPunct("{", "to start the type body") {
		d.To = ps.prev.to
		return d
	}
	for !ps.isPunct("}") && ps.tok.kind != tokEOF {
		switch {
		case ps.acceptPunct(";"):
			continue
		case ps.isKeyword("fn"):
			d.Methods = append(d.Methods, ps.fnDecl())
		case ps.tok.kind == tokIdent || ps.isKeyword("var"):
			d.Fields = append(d.Fields, ps.fieldDecl())
		default:
			ps.error(newError("unexpected "+ps.tok.describe(), "field", "method"))
			ps.sync()
			continue
		}
		ps.endStmt()
	}
	ps.expectPunct("}", "to close the type body")
	d.To = ps.prev.to
	return d
}

func (ps *parser) fieldDecl() *FieldDecl {
	f := &FieldDecl{}
	f.From = ps.tok.from
	if ps.isKeyword("var") {
		ps.advance()
	}
	f.Name = ps.expectIdent("field name")
	ps.acceptPunct(":")
	if ps.tok.kind == tokIdent && !ps.tok.nlBefore {
		f.Type = ps.advance().text
	}
	if ps.acceptPunct("=") {
		f.Default = ps.expr()
	}
	if f.Type == "" && f.Default == nil {
		ps.error(newError("field "+f.Name+" has neither a type nor a default value"))
	}
	f.To = ps.prev.to
	return f
}

func (ps *parser) fnDecl() *FnDecl {
	d := &FnDecl{}
	d.From = ps.advance().from
	d.Name = ps.expectIdent("function name")
	if ps.expectPunct("(", "to start the parameter list") {
		for !ps.isPunct(")") && ps.tok.kind != tokEOF {
			p := &Param{}
			p.From = ps.tok.from
			p.Name = ps.expectIdent("parameter name")
			if p.Name == "" {
				ps.sync()
				break
			}
			ps.acceptPunct(":")
			if ps.tok.kind == tokIdent {
				p.Type = ps.advance().text
			}
			p.To = ps.prev.to
			d.Params = append(d.Params, p)
			if !ps.acceptPunct(",") {
				break
			}
		}
		ps.expectPunct(")", "to close the parameter list")
	}
	if ps.tok.kind == tokIdent {
		d.Result = ps.advance().text
	}
	d.Body = ps.block()
	d.To = ps.prev.to
	return d
}

// Parses a brace-delimited list of statements.
func (ps *parser) block() []Stmt {
	if !ps.expectPunct("{", "to start a block") {
		return nil
	}
	saved := ps.noBody
	ps.noBody = 0
	defer func() { ps.noBody = saved }()
	var stmts []Stmt
	for !ps.isPunct("}") && ps.tok.kind != tokEOF {
		if ps.acceptPunct(";") {
			continue
		}
		if s := ps.stmt(); s != nil {
			stmts = append(stmts, s)
		}
		ps.endStmt()
	}
	ps.expectPunct("}", "to close the block")
	return stmts
}

func (ps *parser) stmt() Stmt {
	from := ps.tok.from
	switch {
	case ps.isKeyword("let") || ps.isKeyword("var"):
		ps.advance()
		s := &LetStmt{Name: ps.expectIdent("variable name")}
		if ps.expectPunct("=", "after the variable name") {
			s.Value = ps.expr()
		}
		if s.Value == nil {
			ps.sync()
			return nil
		}
		s.Ranging = diag.Ranging{From: from, To: ps.prev.to}
		return s
	case ps.isKeyword("return"):
		ps.advance()
		s := &ReturnStmt{}
		if !ps.atStmtBoundary() {
			s.Value = ps.expr()
		}
		s.Ranging = diag.Ranging{From: from, To: ps.prev.to}
		return s
	case ps.isKeyword("if"):
		return ps.ifStmt()
	case ps.isKeyword("for"):
		ps.advance()
		s := &ForStmt{Var: ps.expectIdent("loop variable")}
		if !ps.isKeyword("in") {
			ps.error(newError("unexpected "+ps.tok.describe(), `"in"`))
		} else {
			ps.advance()
		}
		s.Iter = ps.headerExpr()
		s.Body = ps.block()
		s.Ranging = diag.Ranging{From: from, To: ps.prev.to}
		return s
	case ps.isKeyword("is"):
		return ps.isStmt()
	case ps.isKeyword("type") || ps.isKeyword("fn"):
		ps.error(newError(ps.tok.text + " declarations are only allowed at the top level"))
		ps.sync()
		return nil
	}

	x := ps.expr()
	if x == nil {
		ps.sync()
		return nil
	}
	for _, op := range []string{"=", "+=", "-=", "*=", "/="} {
		if ps.isPunct(op) {
			switch x.(type) {
			case *Ident, *FieldRef:
			default:
				ps.error(newError("cannot assign to this expression"))
			}
			ps.advance()
			s := &AssignStmt{Target: x, Op: op, Value: ps.expr()}
			if s.Value == nil {
				ps.sync()
				return nil
			}
			s.Ranging = diag.Ranging{From: from, To: ps.prev.to}
			return s
		}
	}
	return &ExprStmt{Ranging: x.Range(), X: x}
}

func (ps *parser) ifStmt() *IfStmt {
	s := &IfStmt{}
	s.From = ps.advance().from
	s.Cond = ps.headerExpr()
	s.Then = ps.block()
	if ps.isKeyword("else") {
		ps.advance()
		if ps.isKeyword("if") {
			s.Else = []Stmt{ps.ifStmt()}
		} else {
			s.Else = ps.block()
		}
	}
	s.To = ps.prev.to
	return s
}

func (ps *parser) isStmt() *IsStmt {
	s := &IsStmt{}
	s.From = ps.advance().from
	s.Subject = ps.headerExpr()
	if !ps.expectPunct("{", "to start the arms") {
		s.To = ps.prev.to
		return s
	}
	for !ps.isPunct("}") && ps.tok.kind != tokEOF {
		if ps.acceptPunct(";") || ps.acceptPunct(",") {
			continue
		}
		armFrom := ps.tok.from
		isElse := ps.isKeyword("else")
		var pattern Expr
		if isElse {
			ps.advance()
		} else {
			pattern = ps.expr()
			if pattern == nil {
				ps.sync()
				continue
			}
		}
		if !ps.expectPunct("=>", "after the pattern") {
			ps.sync()
			continue
		}
		body := ps.armBody()
		if isElse {
			s.Else = body
			if s.Else == nil {
				s.Else = []Stmt{}
			}
		} else {
			s.Arms = append(s.Arms, &IsArm{
				Ranging: diag.Ranging{From: armFrom, To: ps.prev.to}, Pattern: pattern, Body: body})
		}
		if !ps.acceptPunct(",") {
			ps.endStmt()
		}
	}
	ps.expectPunct("}", "to close the arms")
	s.To = ps.prev.to
	return s
}

func (ps *parser) armBody() []Stmt {
	if ps.isPunct("{") {
		return ps.block()
	}
	if s := ps.stmt(); s != nil {
		return []Stmt{s}
	}
	return nil
}

// Parses an expression in a header context like the condition of if, where a
// "{" starts the following block.
func (ps *parser) headerExpr() Expr {
	ps.noBody++
	defer func() { ps.noBody-- }()
	return ps.expr()
}

var precedence = map[string]int{
	"||": 1, "&&": 2,
	"==": 3, "!=": 3, "<": 3, "<=": 3, ">": 3, ">=": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5, "%": 5,
}

func (ps *parser) expr() Expr { return ps.binary(1) }

func (ps *parser) binary(minPrec int) Expr {
	x := ps.unary()
	if x == nil {
		return nil
	}
	for {
		prec, ok := precedence[ps.tok.text]
		if ps.tok.kind != tokPunct || !ok || prec < minPrec || ps.tok.nlBefore {
			return x
		}
		op := ps.advance().text
		y := ps.binary(prec + 1)
		if y == nil {
			return x
		}
		x = &BinaryExpr{Ranging: diag.MixedRanging(x, y), Op: op, X: x, Y: y}
	}
}

func (ps *parser) unary() Expr {
	if ps.isPunct("-") || ps.isPunct("!") {
		op := ps.advance()
		x := ps.unary()
		if x == nil {
			return nil
		}
		return &UnaryExpr{Ranging: diag.Ranging{From: op.from, To: x.Range().To}, Op: op.text, X: x}
	}
	return ps.postfix(ps.primary())
}

func (ps *parser) postfix(x Expr) Expr {
	for x != nil && !ps.tok.nlBefore {
		switch {
		case ps.isPunct("."):
			ps.advance()
			name := ps.expectIdent("member name")
			x = &MemberExpr{Ranging: diag.Ranging{From: x.Range().From, To: ps.prev.to}, X: x, Name: name}
		case ps.isPunct("("):
			call := &CallExpr{Fn: x, HasParens: true}
			call.From = x.Range().From
			ps.advance()
			call.Args = ps.exprList(")")
			call.To = ps.prev.to
			x = call
		case ps.isPunct("{") && ps.noBody == 0 && isCallee(x):
			call, ok := x.(*CallExpr)
			if !ok || call.HasBody {
				call = &CallExpr{Fn: x}
				call.From = x.Range().From
			}
			ps.nodeBody(call)
			call.To = ps.prev.to
			x = call
		default:
			return x
		}
	}
	return x
}

// Whether x can be followed by a node body.
func isCallee(x Expr) bool {
	switch x := x.(type) {
	case *Ident, *MemberExpr:
		return true
	case *CallExpr:
		return !x.HasBody
	}
	return false
}

// Parses "{ prop: value; child ... }" into call.
func (ps *parser) nodeBody(call *CallExpr) {
	call.HasBody = true
	ps.advance()
	saved := ps.noBody
	ps.noBody = 0
	defer func() { ps.noBody = saved }()
	for !ps.isPunct("}") && ps.tok.kind != tokEOF {
		if ps.acceptPunct(";") || ps.acceptPunct(",") {
			continue
		}
		if (ps.tok.kind == tokIdent || ps.tok.kind == tokString) && ps.peekIsColon() {
			name := ps.advance()
			ps.advance() // colon
			p := &Prop{Name: name.text, Value: ps.expr()}
			p.Ranging = diag.Ranging{From: name.from, To: ps.prev.to}
			if p.Value != nil {
				call.Props = append(call.Props, p)
			}
		} else {
			child := ps.expr()
			if child == nil {
				ps.sync()
				continue
			}
			call.Children = append(call.Children, child)
		}
		if !ps.acceptPunct(",") {
			ps.endStmt()
		}
	}
	ps.expectPunct("}", "to close the node body")
}

// Whether the token after the current one is a ":".
func (ps *parser) peekIsColon() bool {
	saved := ps.lx.pos
	next := ps.lx.next()
	ps.lx.pos = saved
	return next.is(tokPunct, ":")
}

// Parses comma-separated expressions up to and including the closing
// punctuation.
func (ps *parser) exprList(closing string) []Expr {
	saved := ps.noBody
	ps.noBody = 0
	defer func() { ps.noBody = saved }()
	var list []Expr
	for !ps.isPunct(closing) && ps.tok.kind != tokEOF {
		e := ps.expr()
		if e == nil {
			break
		}
		list = append(list, e)
		if !ps.acceptPunct(",") {
			break
		}
	}
	ps.expectPunct(closing, "to close the list")
	return list
}

func (ps *parser) primary() Expr {
	tok := ps.tok
	r := diag.Ranging{From: tok.from, To: tok.to}
	switch tok.kind {
	case tokInt:
		ps.advance()
		i, err := strconv.ParseInt(strings.ReplaceAll(tok.text, "_", ""), 10, 0)
		if err != nil {
			ps.errorp(r, newError("bad integer literal "+tok.text))
		}
		return &IntLit{r, int(i)}
	case tokFloat:
		ps.advance()
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.text, "_", ""), 64)
		if err != nil {
			ps.errorp(r, newError("bad number literal "+tok.text))
		}
		return &FloatLit{r, f}
	case tokString:
		ps.advance()
		return &StringLit{r, tok.text}
	case tokFString:
		ps.advance()
		return ps.fstring(tok)
	case tokIdent:
		ps.advance()
		return &Ident{r, tok.text}
	case tokKeyword:
		switch tok.text {
		case "true", "false":
			ps.advance()
			return &BoolLit{r, tok.text == "true"}
		case "nil":
			ps.advance()
			return &NilLit{r}
		}
	case tokPunct:
		switch tok.text {
		case ".":
			ps.advance()
			name := ps.expectIdent("field name")
			return &FieldRef{diag.Ranging{From: tok.from, To: ps.prev.to}, name}
		case "(":
			ps.advance()
			saved := ps.noBody
			ps.noBody = 0
			x := ps.expr()
			ps.noBody = saved
			ps.expectPunct(")", "to close the parenthesis")
			return x
		case "[":
			ps.advance()
			elems := ps.exprList("]")
			return &ListLit{diag.Ranging{From: tok.from, To: ps.prev.to}, elems}
		}
	}
	ps.error(newError("unexpected "+tok.describe(), "expression"))
	return nil
}

// Parses the interpolations of an f-string token: $name and ${expr}.
func (ps *parser) fstring(tok token) *FString {
	f := &FString{Ranging: diag.Ranging{From: tok.from, To: tok.to}}
	// Content starts after f".
	base := tok.from + 2
	content := tok.text
	var lit strings.Builder
	litFrom := base
	flush := func(to int) {
		if lit.Len() > 0 {
			f.Parts = append(f.Parts, &StringLit{diag.Ranging{From: litFrom, To: to}, lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(content); {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content):
			switch esc := content[i+1]; esc {
			case 'n':
				lit.WriteByte('\n')
			case 't':
				lit.WriteByte('\t')
			default:
				lit.WriteByte(esc)
			}
			i += 2
		case c == '$' && i+1 < len(content) && content[i+1] == '{':
			flush(base + i)
			end := strings.IndexByte(content[i:], '}')
			if end == -1 {
				ps.errorp(diag.Ranging{From: base + i, To: tok.to}, newError("unterminated interpolation"))
				return f
			}
			sub := newParser(ps.srcName, ps.src, base+i+2, base+i+end)
			if x := sub.expr(); x != nil {
				f.Parts = append(f.Parts, x)
			}
			if sub.tok.kind != tokEOF {
				sub.error(newError("unexpected "+sub.tok.describe(), `"}"`))
			}
			ps.errors = append(ps.errors, sub.errors...)
			i += end + 1
			litFrom = base + i
		case c == '$' && i+1 < len(content) && isIdentStart(rune(content[i+1])):
			flush(base + i)
			j := i + 1
			for j < len(content) && isIdentPart(rune(content[j])) {
				j++
			}
			f.Parts = append(f.Parts, &Ident{diag.Ranging{From: base + i + 1, To: base + j}, content[i+1 : j]})
			i = j
			litFrom = base + i
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush(base + len(content))
	return f
}

func newError(text string, shouldbe ...string) error {
	if len(shouldbe) == 0 {
		return errors.New(text)
	}
	var buf bytes.Buffer
	if len(text) > 0 {
		buf.WriteString(text + ", ")
	}
	buf.WriteString("should be " + shouldbe[0])
	for i, opt := range shouldbe[1:] {
		if i == len(shouldbe)-2 {
			buf.WriteString(" or ")
		} else {
			buf.WriteString(", ")
		}
		buf.WriteString(opt)
	}
	return errors.New(buf.String())
}

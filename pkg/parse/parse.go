// Package parse implements the front end of the Auto UI language: the AST of
// .at files and a parser for it.
//
// A source file contains type declarations, function declarations and
// statements. Widgets are types that list the Widget capability or define a
// view method:
//
//	type Counter is Widget {
//		count int = 0
//
//		fn view() {
//			col {
//				text(f"Count: $count")
//				button("+") { onclick: Msg.Inc }
//			}
//		}
//
//		fn on(ev Msg) {
//			is ev {
//				Msg.Inc => .count += 1
//			}
//		}
//	}
//
//	Counter()
//
// The parser collects all errors instead of stopping at the first one; the
// returned AST covers everything that could be parsed.
package parse

import "src.autoui.dev/pkg/diag"

// Source is a named piece of source code.
type Source struct {
	Name string
	Code string
}

// Parse parses a source file. The returned File is never nil. If the error is
// not nil, it contains one or more parse errors that can be retrieved with
// UnpackErrors.
func Parse(src Source) (*File, error) {
	ps := newParser(src.Name, src.Code, 0, len(src.Code))
	f := ps.file()
	return f, diag.PackErrors(ps.errors)
}

// ParseExpr parses a single expression.
func ParseExpr(src Source) (Expr, error) {
	ps := newParser(src.Name, src.Code, 0, len(src.Code))
	x := ps.expr()
	if ps.tok.kind != tokEOF {
		ps.error(newError("unexpected " + ps.tok.describe()))
	}
	return x, diag.PackErrors(ps.errors)
}

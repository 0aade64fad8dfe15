package widget

import (
	"src.autoui.dev/pkg/parse"
	"src.autoui.dev/pkg/vals"
)

// EvalBasic evaluates a basic expression: a literal, a list of basic
// expressions, or unary and binary arithmetic on basic expressions. It returns
// false for anything else, including names, calls and f-strings with
// interpolations.
func EvalBasic(e parse.Expr) (any, bool) {
	switch e := e.(type) {
	case *parse.IntLit:
		return e.Value, true
	case *parse.FloatLit:
		return e.Value, true
	case *parse.StringLit:
		return e.Value, true
	case *parse.BoolLit:
		return e.Value, true
	case *parse.NilLit:
		return nil, true
	case *parse.FString:
		s := ""
		for _, part := range e.Parts {
			lit, ok := part.(*parse.StringLit)
			if !ok {
				return nil, false
			}
			s += lit.Value
		}
		return s, true
	case *parse.ListLit:
		list := make(vals.List, len(e.Elems))
		for i, elem := range e.Elems {
			v, ok := EvalBasic(elem)
			if !ok {
				return nil, false
			}
			list[i] = v
		}
		return list, true
	case *parse.UnaryExpr:
		x, ok := EvalBasic(e.X)
		if !ok {
			return nil, false
		}
		switch x := x.(type) {
		case int:
			if e.Op == "-" {
				return -x, true
			}
		case float64:
			if e.Op == "-" {
				return -x, true
			}
		case bool:
			if e.Op == "!" {
				return !x, true
			}
		}
	case *parse.BinaryExpr:
		x, ok := EvalBasic(e.X)
		if !ok {
			return nil, false
		}
		y, ok := EvalBasic(e.Y)
		if !ok {
			return nil, false
		}
		return arith(e.Op, x, y)
	}
	return nil, false
}

func arith(op string, x, y any) (any, bool) {
	if xs, ok := x.(string); ok {
		if ys, ok := y.(string); ok && op == "+" {
			return xs + ys, true
		}
		return nil, false
	}
	xi, xInt := x.(int)
	yi, yInt := y.(int)
	if xInt && yInt {
		switch op {
		case "+":
			return xi + yi, true
		case "-":
			return xi - yi, true
		case "*":
			return xi * yi, true
		case "/":
			if yi != 0 {
				return xi / yi, true
			}
		case "%":
			if yi != 0 {
				return xi % yi, true
			}
		}
		return nil, false
	}
	xf, ok := toFloat(x)
	if !ok {
		return nil, false
	}
	yf, ok := toFloat(y)
	if !ok {
		return nil, false
	}
	switch op {
	case "+":
		return xf + yf, true
	case "-":
		return xf - yf, true
	case "*":
		return xf * yf, true
	case "/":
		if yf != 0 {
			return xf / yf, true
		}
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

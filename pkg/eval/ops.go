package eval

import (
	"errors"
	"fmt"
	"strings"

	"src.autoui.dev/pkg/vals"
)

var errDivideByZero = errors.New("division by zero")

// ArityMismatch is returned when a function is called with the wrong number of
// arguments.
type ArityMismatch struct {
	What string
	Want int
	Got  int
}

func (e ArityMismatch) Error() string {
	return fmt.Sprintf("arity mismatch: %s must be %s, but is %s",
		e.What, values(e.Want), values(e.Got))
}

func values(n int) string {
	if n == 1 {
		return "1 value"
	}
	return fmt.Sprintf("%d values", n)
}

func unary(op string, x any) (any, error) {
	switch op {
	case "-":
		switch x := x.(type) {
		case int:
			return -x, nil
		case float64:
			return -x, nil
		}
	case "!":
		if b, ok := x.(bool); ok {
			return !b, nil
		}
	}
	return nil, fmt.Errorf("cannot apply %s to %s", op, vals.Kind(x))
}

func binary(op string, x, y any) (any, error) {
	switch op {
	case "==":
		return vals.Equal(x, y), nil
	case "!=":
		return !vals.Equal(x, y), nil
	case "+":
		if xs, ok := x.(string); ok {
			if ys, ok := y.(string); ok {
				return xs + ys, nil
			}
		}
		if xl, ok := x.(vals.List); ok {
			if yl, ok := y.(vals.List); ok {
				return append(append(vals.List{}, xl...), yl...), nil
			}
		}
	case "<", "<=", ">", ">=":
		if xs, ok := x.(string); ok {
			if ys, ok := y.(string); ok {
				return compare(op, strings.Compare(xs, ys)), nil
			}
		}
	}

	switch x := x.(type) {
	case int:
		switch y := y.(type) {
		case int:
			return intOp(op, x, y)
		case float64:
			return floatOp(op, float64(x), y)
		}
	case float64:
		switch y := y.(type) {
		case int:
			return floatOp(op, x, float64(y))
		case float64:
			return floatOp(op, x, y)
		}
	}
	return nil, fmt.Errorf("cannot apply %s to %s and %s", op, vals.Kind(x), vals.Kind(y))
}

func intOp(op string, x, y int) (any, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return nil, errDivideByZero
		}
		return x / y, nil
	case "%":
		if y == 0 {
			return nil, errDivideByZero
		}
		return x % y, nil
	}
	return compare(op, cmpOrdered(x, y)), nil
}

func floatOp(op string, x, y float64) (any, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return nil, errDivideByZero
		}
		return x / y, nil
	case "%":
		return nil, fmt.Errorf("cannot apply %% to float")
	}
	return compare(op, cmpOrdered(x, y)), nil
}

func cmpOrdered[T int | float64](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func compare(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	}
	return c >= 0
}

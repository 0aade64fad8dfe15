package vals

import "reflect"

// Equaler wraps the Equal method.
type Equaler interface {
	// Equal compares the receiver to another value.
	Equal(other any) bool
}

// Equal returns whether two values are equal. Ints and floats are never equal
// to each other, in the same way as they are never the same kind. Nodes are
// compared structurally.
func Equal(x, y any) bool {
	switch x := x.(type) {
	case nil:
		return y == nil
	case bool:
		return x == y
	case int:
		return x == y
	case float64:
		return x == y
	case string:
		return x == y
	case List:
		if yy, ok := y.(List); ok {
			return equalList(x, yy)
		}
		return false
	case *Node:
		if yy, ok := y.(*Node); ok {
			return equalNode(x, yy)
		}
		return false
	case Instance:
		return x == y
	case Equaler:
		return x.Equal(y)
	default:
		return reflect.DeepEqual(x, y)
	}
}

func equalList(x, y List) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Equal(x[i], y[i]) {
			return false
		}
	}
	return true
}

func equalNode(x, y *Node) bool {
	if x == nil || y == nil {
		return x == y
	}
	if x.Kind != y.Kind || x.Placeholder != y.Placeholder || !equalList(x.Args, y.Args) ||
		len(x.Props) != len(y.Props) || len(x.Children) != len(y.Children) {
		return false
	}
	for k, xv := range x.Props {
		yv, ok := y.Props[k]
		if !ok || !Equal(xv, yv) {
			return false
		}
	}
	for i := range x.Children {
		if !equalNode(x.Children[i], y.Children[i]) {
			return false
		}
	}
	return true
}

// EqualFields returns whether two field tables hold the same keys with equal
// values.
func EqualFields(x, y map[string]any) bool {
	if len(x) != len(y) {
		return false
	}
	for k, xv := range x {
		yv, ok := y[k]
		if !ok || !Equal(xv, yv) {
			return false
		}
	}
	return true
}

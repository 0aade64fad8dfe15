// Package vals contains the runtime value model shared by the interpreter, the
// widget extractor and the Node to View converter.
//
// Values are represented by plain Go values of the following types:
//
//   - nil, bool, int, float64 and string
//   - [List]
//   - *[Node], the weakly-typed UI tree produced by evaluating view bodies
//   - [Instance], a reference to a widget declared by the program
//
// Other types may participate by implementing [Kinder], [Reprer] or [Equaler].
package vals

import "fmt"

// Kinder wraps the Kind method.
type Kinder interface {
	Kind() string
}

// Kind returns the kind of the value, which is the name of the value type as
// seen by programs.
func Kind(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case int:
		return "int"
	case float64:
		return "float"
	case string:
		return "str"
	case List:
		return "list"
	case *Node:
		return "node"
	case Instance:
		return "instance"
	case Kinder:
		return v.Kind()
	default:
		return fmt.Sprintf("!!%T", v)
	}
}

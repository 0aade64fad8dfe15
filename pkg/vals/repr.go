package vals

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents the value, preferably as source
	// code that evaluates to an equal value.
	Repr() string
}

// Repr returns the representation of a value in Auto syntax. Nodes are shown
// as node expressions, with props sorted by key.
func Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat64(v)
	case string:
		return strconv.Quote(v)
	case List:
		elems := make([]string, len(v))
		for i, elem := range v {
			elems[i] = Repr(elem)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *Node:
		return reprNode(v)
	case Instance:
		return v.Widget + "()"
	case Reprer:
		return v.Repr()
	default:
		return fmt.Sprintf("<unknown %v>", v)
	}
}

func reprNode(n *Node) string {
	if n == nil {
		return "nil"
	}
	var sb strings.Builder
	sb.WriteString(n.Kind)
	if len(n.Args) > 0 {
		args := make([]string, len(n.Args))
		for i, arg := range n.Args {
			args[i] = Repr(arg)
		}
		sb.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	if len(n.Props) == 0 && len(n.Children) == 0 {
		return sb.String()
	}
	var items []string
	for _, k := range sortedKeys(n.Props) {
		items = append(items, k+": "+Repr(n.Props[k]))
	}
	for _, child := range n.Children {
		items = append(items, reprNode(child))
	}
	sb.WriteString(" { " + strings.Join(items, "; ") + " }")
	return sb.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package eval

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"src.autoui.dev/pkg/vals"
)

type builtinFn func(fm *frame, args []any) (any, error)

var builtins map[string]builtinFn

func init() {
	builtins = map[string]builtinFn{
		"str":   builtinStr,
		"len":   builtinLen,
		"print": builtinPrint,
	}
}

func isBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func builtinStr(_ *frame, args []any) (any, error) {
	if len(args) != 1 {
		return nil, ArityMismatch{"arguments to str", 1, len(args)}
	}
	return vals.ToString(args[0]), nil
}

func builtinLen(_ *frame, args []any) (any, error) {
	if len(args) != 1 {
		return nil, ArityMismatch{"arguments to len", 1, len(args)}
	}
	switch v := args[0].(type) {
	case string:
		return utf8.RuneCountInString(v), nil
	case vals.List:
		return len(v), nil
	}
	return nil, fmt.Errorf("len of %s", vals.Kind(args[0]))
}

func builtinPrint(fm *frame, args []any) (any, error) {
	strs := make([]string, len(args))
	for i, arg := range args {
		strs[i] = vals.ToString(arg)
	}
	line := strings.Join(strs, " ")
	if fm.ev.Stdout != nil {
		fmt.Fprintln(fm.ev.Stdout, line)
	} else {
		logger.Println(line)
	}
	return nil, nil
}

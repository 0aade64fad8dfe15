package diag

import (
	"fmt"
	"io"
	"strings"

	"src.autoui.dev/pkg/sys"
)

// Shower wraps the Show method.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

// ShowError writes an error to w, using its Show method if it implements
// Shower. The first line is shown in bold red when w is a terminal.
func ShowError(w io.Writer, err error) {
	var msg string
	if shower, ok := err.(Shower); ok {
		msg = shower.Show("")
	} else {
		msg = err.Error()
	}
	if sys.IsTerminalWriter(w) {
		first, rest, _ := strings.Cut(msg, "\n")
		msg = "\033[31;1m" + first + "\033[m"
		if rest != "" {
			msg += "\n" + rest
		}
	}
	fmt.Fprintln(w, msg)
}

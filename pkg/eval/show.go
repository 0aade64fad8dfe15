package eval

import (
	"errors"
	"io"

	"src.autoui.dev/pkg/diag"
	"src.autoui.dev/pkg/parse"
)

// ShowError writes err to w. Parse and runtime errors anywhere in the chain
// of err are shown with their source context.
func ShowError(w io.Writer, err error) {
	if perrs := parse.UnpackErrors(err); len(perrs) > 0 {
		for _, perr := range perrs {
			diag.ShowError(w, perr)
		}
		return
	}
	var rerr *Error
	if errors.As(err, &rerr) {
		diag.ShowError(w, rerr)
		return
	}
	diag.ShowError(w, err)
}

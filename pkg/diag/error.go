// Package diag contains building blocks for source-located diagnostics.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrorTag is used to parameterize Error into different concrete types. The
// ErrorTag method returns a description of the error type, such as "parse
// error".
type ErrorTag interface {
	ErrorTag() string
}

// Error represents an error with source context.
type Error[T ErrorTag] struct {
	Message string
	Context Context
	// Partial is true if the error is caused by the source ending prematurely,
	// so that more input could fix it.
	Partial bool
}

// Error returns a plain text representation of the error.
func (e *Error[T]) Error() string {
	return fmt.Sprintf("%s: %s: %s", errorTag[T](), e.Context.Describe(), e.Message)
}

// Range returns the range of the error.
func (e *Error[T]) Range() Ranging { return e.Context.Range() }

// Show shows the error with its source context.
func (e *Error[T]) Show(indent string) string {
	return fmt.Sprintf("%s: %s\n%s%s", cases.Title(language.Und).String(errorTag[T]()), e.Message,
		indent+"  ", e.Context.Show(indent+"  "))
}

func errorTag[T ErrorTag]() string {
	var t T
	return t.ErrorTag()
}

// PackErrors packs multiple errors of the same type into one error. It
// returns nil if errs is empty and the only error if there is just one.
func PackErrors[T ErrorTag](errs []*Error[T]) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return append(multiError[T](nil), errs...)
}

// UnpackErrors returns the errors of type T contained in err. It returns nil
// if err is neither a *Error[T] nor a value returned by PackErrors[T].
func UnpackErrors[T ErrorTag](err error) []*Error[T] {
	var multi multiError[T]
	if errors.As(err, &multi) {
		return append([]*Error[T](nil), multi...)
	}
	var single *Error[T]
	if errors.As(err, &single) {
		return []*Error[T]{single}
	}
	return nil
}

type multiError[T ErrorTag] []*Error[T]

func (me multiError[T]) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "multiple %ss in %s: ", errorTag[T](), me[0].Context.Name)
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		p := e.Context.Position()
		fmt.Fprintf(&sb, "%d:%d: %s", p.Line, p.Col, e.Message)
	}
	return sb.String()
}

func (me multiError[T]) Show(indent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Multiple %ss in %s:", errorTag[T](), me[0].Context.Name)
	for _, e := range me {
		sb.WriteString("\n" + indent + "  ")
		sb.WriteString(e.Show(indent + "  "))
	}
	return sb.String()
}

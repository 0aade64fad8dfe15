// Package errutil contains helpers for combining errors.
package errutil

import "strings"

// Multi combines errors into one. Nil errors are skipped; if no error is left
// Multi returns nil, and if exactly one is left it is returned unchanged.
// Errors previously combined by Multi are flattened.
func Multi(errs ...error) error {
	var all []error
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			all = append(all, err...)
		default:
			all = append(all, err)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return multiError(all)
}

// Errors returns the errors combined in err, or a one-element slice if err was
// not produced by Multi.
func Errors(err error) []error {
	switch err := err.(type) {
	case nil:
		return nil
	case multiError:
		return err
	}
	return []error{err}
}

type multiError []error

func (me multiError) Error() string {
	msgs := make([]string, len(me))
	for i, err := range me {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

// Unwrap supports errors.Is and errors.As.
func (me multiError) Unwrap() []error { return me }

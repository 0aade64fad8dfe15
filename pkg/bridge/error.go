package bridge

import (
	"errors"
	"fmt"
)

// ErrorKind classifies bridge errors.
type ErrorKind uint8

// Error kinds.
const (
	Unknown ErrorKind = iota
	// Reading a source file failed.
	Io
	// Interpreting source or running a widget method failed.
	AutoLang
	// The bridge was called while another call was in progress.
	Lock
	ComponentNotFound
	FieldNotFound
	TypeMismatch
)

var kindNames = [...]string{
	Unknown:           "unknown",
	Io:                "io",
	AutoLang:          "auto",
	Lock:              "lock",
	ComponentNotFound: "component not found",
	FieldNotFound:     "field not found",
	TypeMismatch:      "type mismatch",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Error is returned by Bridge methods.
type Error struct {
	Kind   ErrorKind
	Widget string
	Field  string
	// Underlying error or further detail; may be nil.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ComponentNotFound:
		if e.Widget == "" && e.Err != nil {
			return fmt.Sprintf("component not found: %v", e.Err)
		}
		return fmt.Sprintf("component %s not found", e.Widget)
	case FieldNotFound:
		return fmt.Sprintf("field %s of %s not found", e.Field, e.Widget)
	case TypeMismatch:
		if e.Field == "" {
			return fmt.Sprintf("type mismatch: %v", e.Err)
		}
		return fmt.Sprintf("type mismatch: field %s of %s: %v", e.Field, e.Widget, e.Err)
	case Lock:
		return "bridge is busy"
	}
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind returns whether err is a bridge *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

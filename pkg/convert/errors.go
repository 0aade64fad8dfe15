package convert

import "fmt"

// ConversionError is the error type returned by Convert. It is implemented by
// UnknownKind, MissingProp, InvalidPropType and MessageRequired.
type ConversionError interface {
	error
	conversionError()
}

// UnknownKind is returned when a node kind is not in the known-kind table.
type UnknownKind struct {
	Kind string
}

func (e UnknownKind) Error() string { return fmt.Sprintf("unknown widget kind %q", e.Kind) }

// MissingProp is returned when a required argument or property is absent.
type MissingProp struct {
	Kind string
	Prop string
}

func (e MissingProp) Error() string {
	return fmt.Sprintf("%s: missing required property %q", e.Kind, e.Prop)
}

// InvalidPropType is returned when an argument or property has the wrong kind
// of value.
type InvalidPropType struct {
	Kind     string
	Prop     string
	Expected string
	Got      string
}

func (e InvalidPropType) Error() string {
	return fmt.Sprintf("%s: property %q must be %s, got %s", e.Kind, e.Prop, e.Expected, e.Got)
}

// MessageRequired is returned when an interactive node lacks its
// message-bearing property.
type MessageRequired struct {
	Kind string
}

func (e MessageRequired) Error() string {
	return fmt.Sprintf("%s: a message property is required", e.Kind)
}

func (UnknownKind) conversionError()     {}
func (MissingProp) conversionError()     {}
func (InvalidPropType) conversionError() {}
func (MessageRequired) conversionError() {}

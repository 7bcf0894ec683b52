package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is matched by every ValidationError.
	ErrInvalidValue = errors.New("invalid field value")
	// ErrMissingField is matched by every StructuralError.
	ErrMissingField = errors.New("required field missing")
	// ErrUnknownField is returned when a record is given a name its type does not declare.
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError reports a value outside a field's declared domain.
type ValidationError struct {
	Type   string
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: invalid value %#v: %s", e.Type, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidValue
}

// StructuralError reports a required attribute or child element absent on decode.
type StructuralError struct {
	Type    string
	Field   string
	XMLName string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("<%s>: missing required %s (%s)", e.Type, e.XMLName, e.Field)
}

func (e *StructuralError) Unwrap() error {
	return ErrMissingField
}

package benchmark

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNoBenchmarks signals that a run was requested against an empty
// benchmark collection. It is a distinct condition, not an empty result, so
// callers can emit a diagnostic instead of silently reporting nothing.
var ErrNoBenchmarks = errors.New("no benchmarks to run")

// typeName renders a possibly-nil reflect.Type for error messages.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<untyped>"
	}
	return t.String()
}

// InterfaceConflictError reports two benchmarks declaring mutually
// incompatible types for the same parameter name.
type InterfaceConflictError struct {
	Param string
	TypeA reflect.Type
	TypeB reflect.Type
}

func (e *InterfaceConflictError) Error() string {
	return fmt.Sprintf("got incompatible types %s, %s for parameter %q",
		typeName(e.TypeA), typeName(e.TypeB), e.Param)
}

// MissingParameterError reports a required parameter absent from the
// supplied inputs.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing value for required parameter %q", e.Param)
}

// TypeMismatchError reports a supplied value whose runtime type is not
// assignable to the declared parameter type.
type TypeMismatchError struct {
	Param    string
	Expected reflect.Type
	Got      reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected type %s for parameter %q, got %s",
		typeName(e.Expected), e.Param, typeName(e.Got))
}

// DuplicateContextKeyError reports every context key emitted by more than
// one provider during aggregation.
type DuplicateContextKeyError struct {
	Keys []string
}

func (e *DuplicateContextKeyError) Error() string {
	quoted := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return "got multiple values for context key(s) " + strings.Join(quoted, ", ")
}

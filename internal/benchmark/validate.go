package benchmark

import "reflect"

// Validate checks caller-supplied parameters against a unified interface.
//
// It is a pure function and runs once before any benchmark executes: a
// validation failure means no benchmark side effect has occurred. Required
// entries must be present, and for entries with a known type the supplied
// value's runtime type must be assignable to it. Untyped entries accept any
// value once one is present.
func Validate(supplied Params, unified Interface) error {
	for _, name := range unified.Names() {
		entry, _ := unified.Entry(name)

		value, ok := supplied[name]
		if !ok {
			if entry.Required {
				return &MissingParameterError{Param: name}
			}
			continue
		}

		if entry.Type == nil {
			continue
		}

		got := reflect.TypeOf(value)
		if !AssignableTo(got, entry.Type) {
			return &TypeMismatchError{Param: name, Expected: entry.Type, Got: got}
		}
	}
	return nil
}

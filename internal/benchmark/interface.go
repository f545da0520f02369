package benchmark

import "reflect"

// Entry is one unified parameter declaration: the narrowest type compatible
// with every benchmark declaring the name, and whether a value is required.
type Entry struct {
	// Type is the narrowest declared type seen for the parameter, or nil if
	// every declaration left it untyped.
	Type reflect.Type

	// Required is true if any declaration omits a default. A default valid
	// for one call site cannot be assumed safe for all of them.
	Required bool

	// Default is the default value recorded for an optional entry.
	Default any
}

// Interface is the unified parameter interface of a benchmark collection,
// mapping parameter names to their merged declarations. Entry names keep
// first-sighting order for reproducible diagnostics.
type Interface struct {
	names   []string
	entries map[string]Entry
}

// Names returns the parameter names in first-sighting order.
func (i Interface) Names() []string {
	return i.names
}

// Entry returns the unified declaration for name.
func (i Interface) Entry(name string) (Entry, bool) {
	e, ok := i.entries[name]
	return e, ok
}

// Len returns the number of unified parameters.
func (i Interface) Len() int {
	return len(i.names)
}

// AssignableTo is the single type-compatibility relation used by both
// interface merging and parameter validation, so the two stay consistent by
// construction. It is reflexive and, through Go's interface satisfaction
// rules, transitive. A nil type on either side is never assignable; untyped
// declarations are handled before this check.
func AssignableTo(from, to reflect.Type) bool {
	if from == nil || to == nil {
		return false
	}
	return from == to || from.AssignableTo(to)
}

// ResolveInterface merges the parameter declarations of all benchmarks, in
// collection order, into one unified Interface.
//
// Duplicate names keep the narrower of the two declared types; a name
// declared with two types where neither is assignable to the other fails
// with an InterfaceConflictError. An untyped declaration defers to any
// typed one. Once any declaration of a name lacks a default, the unified
// entry is required regardless of defaults elsewhere.
func ResolveInterface(benchmarks []Benchmark) (Interface, error) {
	unified := Interface{entries: make(map[string]Entry)}

	for _, bm := range benchmarks {
		for _, p := range bm.Params {
			orig, seen := unified.entries[p.Name]
			if !seen {
				unified.names = append(unified.names, p.Name)
				unified.entries[p.Name] = Entry{
					Type:     p.Type,
					Required: !p.HasDefault,
					Default:  p.Default,
				}
				continue
			}

			merged := orig
			switch {
			case p.Type == nil:
				// Untyped occurrence, keep whatever we have.
			case orig.Type == nil:
				merged.Type = p.Type
			case AssignableTo(orig.Type, p.Type):
				// The recorded type is already at least as narrow.
			case AssignableTo(p.Type, orig.Type):
				merged.Type = p.Type
			default:
				return Interface{}, &InterfaceConflictError{
					Param: p.Name,
					TypeA: orig.Type,
					TypeB: p.Type,
				}
			}

			if !p.HasDefault {
				merged.Required = true
				merged.Default = nil
			}
			unified.entries[p.Name] = merged
		}
	}

	return unified, nil
}

package types

import "strings"

// ListValue represents a mutable, ordered sequence of values. Lists have
// reference semantics: assigning a list to another variable aliases the
// same storage, and in-place mutation is visible through every binding.
type ListValue struct {
	elems []Value
}

// NewList creates a list owning the given elements
func NewList(elems []Value) *ListValue {
	return &ListValue{elems: elems}
}

// NewEmptyList creates an empty list
func NewEmptyList() *ListValue {
	return &ListValue{elems: []Value{}}
}

// Type returns the type code for lists
func (l *ListValue) Type() TypeCode {
	return TYPE_LIST
}

// String renders the list as [e1, e2, ...] using each element's String
func (l *ListValue) String() string {
	if len(l.elems) == 0 {
		return "[]"
	}
	parts := make([]string, len(l.elems))
	for i, e := range l.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal checks deep equality: same length and elementwise equal
func (l *ListValue) Equal(other Value) bool {
	o, ok := other.(*ListValue)
	if !ok || len(l.elems) != len(o.elems) {
		return false
	}
	for i := range l.elems {
		if !l.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// CoerceBool returns true for non-empty lists
func (l *ListValue) CoerceBool() (bool, bool) {
	return len(l.elems) > 0, true
}

// Len returns the number of elements
func (l *ListValue) Len() int {
	return len(l.elems)
}

// Get returns the element at a 0-based index; the caller must have
// validated the bounds
func (l *ListValue) Get(i int) Value {
	return l.elems[i]
}

// Set overwrites the element at a 0-based index in place
func (l *ListValue) Set(i int, v Value) {
	l.elems[i] = v
}

// Elements returns the backing slice; callers that iterate while the body
// may mutate the list must copy it first
func (l *ListValue) Elements() []Value {
	return l.elems
}

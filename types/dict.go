package types

import (
	"sort"
	"strings"
)

// DictValue represents a mutable string-keyed mapping. Like lists, dicts
// have reference semantics. Iteration and rendering use key order.
type DictValue struct {
	entries map[string]Value
}

// NewDict creates an empty dict
func NewDict() *DictValue {
	return &DictValue{entries: make(map[string]Value)}
}

// Type returns the type code for dicts
func (d *DictValue) Type() TypeCode {
	return TYPE_DICT
}

// String renders the dict as {k1: v1, k2: v2} in key order, keys unquoted
func (d *DictValue) String() string {
	if len(d.entries) == 0 {
		return "{}"
	}
	keys := d.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + d.entries[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Equal checks deep equality: same key set and each key's values equal
func (d *DictValue) Equal(other Value) bool {
	o, ok := other.(*DictValue)
	if !ok || len(d.entries) != len(o.entries) {
		return false
	}
	for k, v := range d.entries {
		ov, exists := o.entries[k]
		if !exists || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// CoerceBool returns true for non-empty dicts
func (d *DictValue) CoerceBool() (bool, bool) {
	return len(d.entries) > 0, true
}

// Len returns the number of entries
func (d *DictValue) Len() int {
	return len(d.entries)
}

// Get returns the value for a key
func (d *DictValue) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Set adds or overwrites an entry in place
func (d *DictValue) Set(key string, v Value) {
	d.entries[key] = v
}

// Keys returns all keys in sorted order
func (d *DictValue) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns all values in key order
func (d *DictValue) Values() []Value {
	keys := d.Keys()
	vals := make([]Value, len(keys))
	for i, k := range keys {
		vals[i] = d.entries[k]
	}
	return vals
}

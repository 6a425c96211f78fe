package types

// UnitValue is the value of a bare `return;` and of a function body that
// finishes without returning. Users cannot write a literal unit.
type UnitValue struct{}

// Unit is the canonical unit value
var Unit = UnitValue{}

// Type returns the type code for unit
func (u UnitValue) Type() TypeCode {
	return TYPE_UNIT
}

// String renders unit as the empty string
func (u UnitValue) String() string {
	return ""
}

// Equal: unit equals unit
func (u UnitValue) Equal(other Value) bool {
	_, ok := other.(UnitValue)
	return ok
}

// CoerceBool reports unit as not coercible in a boolean context
func (u UnitValue) CoerceBool() (bool, bool) {
	return false, false
}

package types

// TypeCode identifies the runtime type of a Value
type TypeCode int

const (
	TYPE_INT TypeCode = iota
	TYPE_FLOAT
	TYPE_BOOL
	TYPE_STR
	TYPE_LIST
	TYPE_DICT
	TYPE_FUNC
	TYPE_UNIT
)

// String returns the user-visible type name, as reported by the type()
// builtin and used in error messages
func (t TypeCode) String() string {
	switch t {
	case TYPE_INT:
		return "int"
	case TYPE_FLOAT:
		return "float"
	case TYPE_BOOL:
		return "bool"
	case TYPE_STR:
		return "string"
	case TYPE_LIST:
		return "list"
	case TYPE_DICT:
		return "dict"
	case TYPE_FUNC:
		return "func"
	case TYPE_UNIT:
		return "unit"
	default:
		return "unknown"
	}
}

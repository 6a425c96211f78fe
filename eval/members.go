package eval

import (
	"strings"
	"unicode/utf8"

	"quill/parser"
	"quill/types"
)

// evalMember implements the member-access protocol for obj.field:
//  1. a Dict containing the field as a key yields that value (dict keys
//     shadow built-in members),
//  2. otherwise a built-in member of the receiver's type applies,
//  3. otherwise the access fails: NoSuchKey for dicts, NotADict for
//     everything else.
func (e *Evaluator) evalMember(node *parser.MemberExpr, ctx *types.Context) types.Result {
	objResult := e.Eval(node.Object, ctx)
	if !objResult.IsNormal() {
		return objResult
	}
	obj := objResult.Val

	if dict, ok := obj.(*types.DictValue); ok {
		if val, exists := dict.Get(node.Field); exists {
			return types.Ok(val)
		}
	}

	switch recv := obj.(type) {
	case types.StrValue:
		if member, ok := stringMember(recv.Value(), node.Field); ok {
			return types.Ok(member)
		}
		return types.Err(types.NewNotADict())
	case *types.ListValue:
		if member, ok := listMember(recv, node.Field); ok {
			return types.Ok(member)
		}
		return types.Err(types.NewNotADict())
	case *types.DictValue:
		if member, ok := dictMember(recv, node.Field); ok {
			return types.Ok(member)
		}
		return types.Err(types.NewNoSuchKey(node.Field))
	default:
		return types.Err(types.NewNotADict())
	}
}

// method wraps a bound native with a fixed-arity check
func method(name string, arity int, fn func(args []types.Value) types.Result) *types.FuncValue {
	return types.NewNative(name, func(args []types.Value) types.Result {
		if len(args) != arity {
			return types.Err(types.NewWrongArity(arity, len(args)))
		}
		return fn(args)
	})
}

// stringMember resolves built-in members of strings. Methods capture the
// receiver by value; length counts code points.
func stringMember(s, name string) (types.Value, bool) {
	switch name {
	case "length":
		return types.NewInt(int64(utf8.RuneCountInString(s))), true
	case "toUpper":
		return method("toUpper", 0, func(args []types.Value) types.Result {
			return types.Ok(types.NewStr(strings.ToUpper(s)))
		}), true
	case "toLower":
		return method("toLower", 0, func(args []types.Value) types.Result {
			return types.Ok(types.NewStr(strings.ToLower(s)))
		}), true
	case "trim":
		return method("trim", 0, func(args []types.Value) types.Result {
			return types.Ok(types.NewStr(strings.TrimSpace(s)))
		}), true
	case "contains":
		return method("contains", 1, func(args []types.Value) types.Result {
			sub, ok := args[0].(types.StrValue)
			if !ok {
				return types.Err(types.NewTypeMismatch("contains expects a string"))
			}
			return types.Ok(types.NewBool(strings.Contains(s, sub.Value())))
		}), true
	case "substring":
		return types.NewNative("substring", func(args []types.Value) types.Result {
			return stringSubstring(s, args)
		}), true
	default:
		return nil, false
	}
}

// stringSubstring slices by character index: start inclusive, end
// exclusive, negative indices count from the end, out-of-range values
// are clamped
func stringSubstring(s string, args []types.Value) types.Result {
	if len(args) == 0 || len(args) > 2 {
		return types.Err(types.NewWrongArity(2, len(args)))
	}

	chars := []rune(s)
	length := int64(len(chars))

	startArg, ok := args[0].(types.IntValue)
	if !ok {
		return types.Err(types.NewTypeMismatch("substring expects an int start"))
	}
	start := startArg.Val
	if start < 0 {
		start += length
	}
	start = max(0, min(start, length))

	end := length
	if len(args) == 2 {
		endArg, ok := args[1].(types.IntValue)
		if !ok {
			return types.Err(types.NewTypeMismatch("substring expects an int end"))
		}
		end = endArg.Val
		if end < 0 {
			end += length
		}
		end = max(0, min(end, length))
	}

	if start > end {
		return types.Ok(types.NewStr(""))
	}
	return types.Ok(types.NewStr(string(chars[start:end])))
}

// listMember resolves built-in members of lists
func listMember(l *types.ListValue, name string) (types.Value, bool) {
	switch name {
	case "length":
		return types.NewInt(int64(l.Len())), true
	case "contains":
		return method("contains", 1, func(args []types.Value) types.Result {
			for _, elem := range l.Elements() {
				if elem.Equal(args[0]) {
					return types.Ok(types.NewBool(true))
				}
			}
			return types.Ok(types.NewBool(false))
		}), true
	case "get":
		return method("get", 2, func(args []types.Value) types.Result {
			idx, ok := args[0].(types.IntValue)
			if !ok {
				return types.Err(types.NewTypeMismatch("get expects an int index"))
			}
			n, inRange := normalizeIndex(idx.Val, l.Len())
			if !inRange {
				return types.Ok(args[1])
			}
			return types.Ok(l.Get(n))
		}), true
	case "join":
		return method("join", 1, func(args []types.Value) types.Result {
			sep, ok := args[0].(types.StrValue)
			if !ok {
				return types.Err(types.NewTypeMismatch("join expects a string separator"))
			}
			parts := make([]string, l.Len())
			for i, elem := range l.Elements() {
				parts[i] = elem.String()
			}
			return types.Ok(types.NewStr(strings.Join(parts, sep.Value())))
		}), true
	default:
		return nil, false
	}
}

// dictMember resolves built-in members of dicts; reachable only for
// fields not shadowed by a key of the receiver
func dictMember(d *types.DictValue, name string) (types.Value, bool) {
	switch name {
	case "length":
		return types.NewInt(int64(d.Len())), true
	case "keys":
		return method("keys", 0, func(args []types.Value) types.Result {
			return types.Ok(dictKeys(d))
		}), true
	case "values":
		return method("values", 0, func(args []types.Value) types.Result {
			return types.Ok(types.NewList(d.Values()))
		}), true
	case "contains":
		return method("contains", 1, func(args []types.Value) types.Result {
			key, ok := args[0].(types.StrValue)
			if !ok {
				return types.Err(types.NewTypeMismatch("contains expects a string key"))
			}
			_, exists := d.Get(key.Value())
			return types.Ok(types.NewBool(exists))
		}), true
	case "get":
		return method("get", 2, func(args []types.Value) types.Result {
			key, ok := args[0].(types.StrValue)
			if !ok {
				return types.Err(types.NewTypeMismatch("get expects a string key"))
			}
			if val, exists := d.Get(key.Value()); exists {
				return types.Ok(val)
			}
			return types.Ok(args[1])
		}), true
	default:
		return nil, false
	}
}

// dictKeys builds a list of a dict's keys in iteration order
func dictKeys(d *types.DictValue) *types.ListValue {
	keys := d.Keys()
	vals := make([]types.Value, len(keys))
	for i, k := range keys {
		vals[i] = types.NewStr(k)
	}
	return types.NewList(vals)
}

package builtins

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"quill/types"
)

// builtinPrint writes each argument's lossy rendering, space-separated,
// followed by a newline
func builtinPrint(w io.Writer, args []types.Value) types.Result {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
	return types.Ok(types.Unit)
}

// builtinLen returns the length of a string (code points), list, or dict
func builtinLen(args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.NewWrongArity(1, len(args)))
	}
	switch v := args[0].(type) {
	case types.StrValue:
		return types.Ok(types.NewInt(int64(utf8.RuneCountInString(v.Value()))))
	case *types.ListValue:
		return types.Ok(types.NewInt(int64(v.Len())))
	case *types.DictValue:
		return types.Ok(types.NewInt(int64(v.Len())))
	default:
		return types.Err(types.NewTypeMismatch("len expects a string, list, or dict"))
	}
}

// builtinType returns the name of the argument's type as a string
func builtinType(args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.NewWrongArity(1, len(args)))
	}
	return types.Ok(types.NewStr(args[0].Type().String()))
}

// builtinKeys returns a dict's keys as a list of strings
func builtinKeys(args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.NewWrongArity(1, len(args)))
	}
	dict, ok := args[0].(*types.DictValue)
	if !ok {
		return types.Err(types.NewTypeMismatch("keys expects a dict"))
	}
	keys := dict.Keys()
	vals := make([]types.Value, len(keys))
	for i, k := range keys {
		vals[i] = types.NewStr(k)
	}
	return types.Ok(types.NewList(vals))
}

// builtinValues returns a dict's values as a list, in key order
func builtinValues(args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.NewWrongArity(1, len(args)))
	}
	dict, ok := args[0].(*types.DictValue)
	if !ok {
		return types.Err(types.NewTypeMismatch("values expects a dict"))
	}
	return types.Ok(types.NewList(dict.Values()))
}

// builtinItems returns a dict's entries as a list of [key, value] pairs
func builtinItems(args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.NewWrongArity(1, len(args)))
	}
	dict, ok := args[0].(*types.DictValue)
	if !ok {
		return types.Err(types.NewTypeMismatch("items expects a dict"))
	}
	keys := dict.Keys()
	pairs := make([]types.Value, len(keys))
	for i, k := range keys {
		v, _ := dict.Get(k)
		pairs[i] = types.NewList([]types.Value{types.NewStr(k), v})
	}
	return types.Ok(types.NewList(pairs))
}

// builtinGet mirrors the .get member: get(container, key-or-index,
// default) returns the element or the default when absent
func builtinGet(args []types.Value) types.Result {
	if len(args) != 3 {
		return types.Err(types.NewWrongArity(3, len(args)))
	}
	switch container := args[0].(type) {
	case *types.ListValue:
		idx, ok := args[1].(types.IntValue)
		if !ok {
			return types.Err(types.NewTypeMismatch("get expects an int index for a list"))
		}
		n := idx.Val
		if n < 0 {
			n += int64(container.Len())
		}
		if n < 0 || n >= int64(container.Len()) {
			return types.Ok(args[2])
		}
		return types.Ok(container.Get(int(n)))

	case *types.DictValue:
		key, ok := args[1].(types.StrValue)
		if !ok {
			return types.Err(types.NewTypeMismatch("get expects a string key for a dict"))
		}
		if val, exists := container.Get(key.Value()); exists {
			return types.Ok(val)
		}
		return types.Ok(args[2])

	default:
		return types.Err(types.NewTypeMismatch("get expects a list or dict"))
	}
}

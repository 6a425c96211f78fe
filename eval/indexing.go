package eval

import (
	"quill/parser"
	"quill/types"
)

// normalizeIndex maps a possibly-negative index onto [0, len); negative
// indices count from the end
func normalizeIndex(idx int64, length int) (int, bool) {
	n := idx
	if n < 0 {
		n += int64(length)
	}
	if n < 0 || n >= int64(length) {
		return 0, false
	}
	return int(n), true
}

// evalIndex implements the indexing protocol for obj[idx]: lists take
// Int indices (negatives count from the end), dicts take Str keys, and
// nothing else is indexable
func (e *Evaluator) evalIndex(node *parser.IndexExpr, ctx *types.Context) types.Result {
	objResult := e.Eval(node.Object, ctx)
	if !objResult.IsNormal() {
		return objResult
	}
	idxResult := e.Eval(node.Index, ctx)
	if !idxResult.IsNormal() {
		return idxResult
	}

	switch obj := objResult.Val.(type) {
	case *types.ListValue:
		idx, ok := idxResult.Val.(types.IntValue)
		if !ok {
			return types.Err(types.NewWrongIndexType("list", "expected int index"))
		}
		n, inRange := normalizeIndex(idx.Val, obj.Len())
		if !inRange {
			return types.Err(types.NewIndexOutOfBounds(idx.Val, obj.Len()))
		}
		return types.Ok(obj.Get(n))

	case *types.DictValue:
		key, ok := idxResult.Val.(types.StrValue)
		if !ok {
			return types.Err(types.NewWrongIndexType("dict", "expected string key"))
		}
		val, exists := obj.Get(key.Value())
		if !exists {
			return types.Err(types.NewNoSuchKey(key.Value()))
		}
		return types.Ok(val)

	default:
		return types.Err(types.NewNotIndexable(objResult.Val.Type().String()))
	}
}

// assignIndex writes through obj[idx] = value in place. Lists accept
// indices within [-len, len) after normalisation; there is no append via
// assignment. Dicts create or overwrite the entry.
func assignIndex(obj, idx, value types.Value) types.Result {
	switch container := obj.(type) {
	case *types.ListValue:
		i, ok := idx.(types.IntValue)
		if !ok {
			return types.Err(types.NewWrongIndexType("list", "expected int index"))
		}
		n, inRange := normalizeIndex(i.Val, container.Len())
		if !inRange {
			return types.Err(types.NewIndexOutOfBounds(i.Val, container.Len()))
		}
		container.Set(n, value)
		return types.Ok(value)

	case *types.DictValue:
		key, ok := idx.(types.StrValue)
		if !ok {
			return types.Err(types.NewWrongIndexType("dict", "expected string key"))
		}
		container.Set(key.Value(), value)
		return types.Ok(value)

	default:
		return types.Err(types.NewNotIndexable(obj.Type().String()))
	}
}

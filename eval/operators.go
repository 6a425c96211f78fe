package eval

import (
	"math"

	"quill/parser"
	"quill/types"
)

// toNumeric extracts a numeric operand. The float form is always
// populated for numeric values; isFloat distinguishes Int from Float.
func toNumeric(v types.Value) (i int64, f float64, isFloat, ok bool) {
	switch n := v.(type) {
	case types.IntValue:
		return n.Val, float64(n.Val), false, true
	case types.FloatValue:
		return 0, n.Val, true, true
	default:
		return 0, 0, false, false
	}
}

// evalUnaryMinus implements numeric negation: -x
func evalUnaryMinus(operand types.Value) types.Result {
	switch v := operand.(type) {
	case types.IntValue:
		return types.Ok(types.NewInt(-v.Val))
	case types.FloatValue:
		return types.Ok(types.NewFloat(-v.Val))
	default:
		return types.Err(types.NewTypeMismatch("'-' expects a number"))
	}
}

// evalUnaryNot implements logical not: !x flips the truthiness
func evalUnaryNot(operand types.Value) types.Result {
	b, ok := operand.CoerceBool()
	if !ok {
		return types.Err(types.NewTypeMismatch("'!' operand is not a boolean"))
	}
	return types.Ok(types.NewBool(!b))
}

// evalAdd implements addition: numbers add (Int-preserving), strings
// concatenate, everything else is a type error
func evalAdd(left, right types.Value) types.Result {
	if ls, ok := left.(types.StrValue); ok {
		if rs, ok := right.(types.StrValue); ok {
			return types.Ok(types.NewStr(ls.Value() + rs.Value()))
		}
		return types.Err(types.NewTypeMismatch("'+' expects two numbers or two strings"))
	}

	li, lf, lFloat, lok := toNumeric(left)
	ri, rf, rFloat, rok := toNumeric(right)
	if !lok || !rok {
		return types.Err(types.NewTypeMismatch("'+' expects two numbers or two strings"))
	}

	if lFloat || rFloat {
		return types.Ok(types.NewFloat(lf + rf))
	}
	return types.Ok(types.NewInt(li + ri))
}

// evalSubtract implements subtraction, Int-preserving
func evalSubtract(left, right types.Value) types.Result {
	li, lf, lFloat, lok := toNumeric(left)
	ri, rf, rFloat, rok := toNumeric(right)
	if !lok || !rok {
		return types.Err(types.NewTypeMismatch("'-' expects numbers"))
	}

	if lFloat || rFloat {
		return types.Ok(types.NewFloat(lf - rf))
	}
	return types.Ok(types.NewInt(li - ri))
}

// evalMultiply implements multiplication, Int-preserving
func evalMultiply(left, right types.Value) types.Result {
	li, lf, lFloat, lok := toNumeric(left)
	ri, rf, rFloat, rok := toNumeric(right)
	if !lok || !rok {
		return types.Err(types.NewTypeMismatch("'*' expects numbers"))
	}

	if lFloat || rFloat {
		return types.Ok(types.NewFloat(lf * rf))
	}
	return types.Ok(types.NewInt(li * ri))
}

// evalDivide implements division. The result is always a Float, even for
// two Int operands; a zero divisor of either type is an error.
func evalDivide(left, right types.Value) types.Result {
	_, lf, _, lok := toNumeric(left)
	_, rf, _, rok := toNumeric(right)
	if !lok || !rok {
		return types.Err(types.NewTypeMismatch("'/' expects numbers"))
	}

	if rf == 0.0 {
		return types.Err(types.NewDivideByZero())
	}
	return types.Ok(types.NewFloat(lf / rf))
}

// evalModulo implements remainder, Int-preserving (truncated toward
// zero); a zero right operand is an error
func evalModulo(left, right types.Value) types.Result {
	li, lf, lFloat, lok := toNumeric(left)
	ri, rf, rFloat, rok := toNumeric(right)
	if !lok || !rok {
		return types.Err(types.NewTypeMismatch("'%' expects numbers"))
	}

	if rf == 0.0 {
		return types.Err(types.NewDivideByZero())
	}
	if lFloat || rFloat {
		return types.Ok(types.NewFloat(math.Mod(lf, rf)))
	}
	return types.Ok(types.NewInt(li % ri))
}

// evalPower implements exponentiation; the result is always a Float
func evalPower(left, right types.Value) types.Result {
	_, lf, _, lok := toNumeric(left)
	_, rf, _, rok := toNumeric(right)
	if !lok || !rok {
		return types.Err(types.NewTypeMismatch("'^' expects numbers"))
	}
	return types.Ok(types.NewFloat(math.Pow(lf, rf)))
}

// evalCompare implements < <= > >=, defined over two numbers (with
// Int/Float coercion) or two strings (byte-wise lexicographic)
func evalCompare(op parser.TokenType, left, right types.Value) types.Result {
	_, lf, _, lok := toNumeric(left)
	_, rf, _, rok := toNumeric(right)
	if lok && rok {
		return types.Ok(types.NewBool(compareFloats(op, lf, rf)))
	}

	ls, lIsStr := left.(types.StrValue)
	rs, rIsStr := right.(types.StrValue)
	if lIsStr && rIsStr {
		return types.Ok(types.NewBool(compareStrings(op, ls.Value(), rs.Value())))
	}

	return types.Err(types.NewTypeMismatch("comparison requires two numbers or two strings"))
}

func compareFloats(op parser.TokenType, a, b float64) bool {
	switch op {
	case parser.TOKEN_LT:
		return a < b
	case parser.TOKEN_LE:
		return a <= b
	case parser.TOKEN_GT:
		return a > b
	default:
		return a >= b
	}
}

func compareStrings(op parser.TokenType, a, b string) bool {
	switch op {
	case parser.TOKEN_LT:
		return a < b
	case parser.TOKEN_LE:
		return a <= b
	case parser.TOKEN_GT:
		return a > b
	default:
		return a >= b
	}
}

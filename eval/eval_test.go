package eval

import (
	"testing"

	"quill/parser"
	"quill/types"
)

// testResolver supplies the fixed variables and natives the expression
// tests reference
func testResolver() Resolver {
	return ResolverFunc(func(name string) (types.Value, bool) {
		switch name {
		case "x":
			return types.NewInt(10), true
		case "truth":
			return types.NewBool(true), true
		case "add":
			return types.NewNative("add", func(args []types.Value) types.Result {
				if len(args) != 2 {
					return types.Err(types.NewWrongArity(2, len(args)))
				}
				_, a, _, aok := toNumeric(args[0])
				_, b, _, bok := toNumeric(args[1])
				if !aok || !bok {
					return types.Err(types.NewTypeMismatch("add expects numbers"))
				}
				return types.Ok(types.NewFloat(a + b))
			}), true
		default:
			return nil, false
		}
	})
}

// evalExpr parses and evaluates an expression against the test resolver
func evalExpr(t *testing.T, input string) types.Result {
	t.Helper()
	expr, err := parser.ParseExpression(input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ev := NewEvaluator(testResolver())
	return ev.Eval(expr, types.NewContext())
}

// wantValue asserts a normal result equal to the expected value
func wantValue(t *testing.T, input string, want types.Value) {
	t.Helper()
	result := evalExpr(t, input)
	if !result.IsNormal() {
		t.Fatalf("%s: expected normal result, got flow %v (err: %v)", input, result.Flow, result.Err)
	}
	if !result.Val.Equal(want) {
		t.Errorf("%s = %v, want %v", input, result.Val, want)
	}
}

// wantError asserts an error result of the expected kind
func wantError(t *testing.T, input string, kind types.ErrorKind) *types.Error {
	t.Helper()
	result := evalExpr(t, input)
	if !result.IsError() {
		t.Fatalf("%s: expected error, got %v", input, result.Val)
	}
	if result.Err.Kind != kind {
		t.Fatalf("%s: error kind = %v, want %v", input, result.Err.Kind, kind)
	}
	return result.Err
}

func TestEvalLiterals(t *testing.T) {
	wantValue(t, "42", types.NewInt(42))
	wantValue(t, "3.14", types.NewFloat(3.14))
	wantValue(t, `"hello"`, types.NewStr("hello"))
	wantValue(t, "true", types.NewBool(true))
	wantValue(t, "false", types.NewBool(false))
}

func TestEvalArithmetic(t *testing.T) {
	wantValue(t, "1 + 2", types.NewInt(3))
	wantValue(t, "1 + 2 * 3", types.NewInt(7))
	wantValue(t, "(1 + 2) * 3", types.NewInt(9))
	wantValue(t, "10 - 3", types.NewInt(7))
	wantValue(t, "4 * 5", types.NewInt(20))
	wantValue(t, "17 % 5", types.NewInt(2))
	wantValue(t, "-5", types.NewInt(-5))
	wantValue(t, "-x", types.NewInt(-10))
	wantValue(t, "1.5 + 2", types.NewFloat(3.5))
	wantValue(t, "2 * 1.5", types.NewFloat(3.0))
}

func TestEvalDivisionAlwaysFloat(t *testing.T) {
	wantValue(t, "5 / 2", types.NewFloat(2.5))
	wantValue(t, "20 / 4", types.NewFloat(5.0))
	result := evalExpr(t, "6 / 3")
	if _, ok := result.Val.(types.FloatValue); !ok {
		t.Errorf("6 / 3 should be a Float, got %T", result.Val)
	}
}

func TestEvalPowerAlwaysFloat(t *testing.T) {
	wantValue(t, "2 ^ 3", types.NewFloat(8.0))
	wantValue(t, "2 ^ 3 ^ 2", types.NewFloat(512.0))
	result := evalExpr(t, "2 ^ 2")
	if _, ok := result.Val.(types.FloatValue); !ok {
		t.Errorf("2 ^ 2 should be a Float, got %T", result.Val)
	}
}

func TestEvalDivideByZero(t *testing.T) {
	wantError(t, "1 / 0", types.DivideByZero)
	wantError(t, "1.0 / 0.0", types.DivideByZero)
	wantError(t, "1 / 0.0", types.DivideByZero)
	wantError(t, "5 % 0", types.DivideByZero)
}

func TestEvalStringConcat(t *testing.T) {
	wantValue(t, `"foo" + "bar"`, types.NewStr("foobar"))
	wantError(t, `"foo" + 1`, types.TypeMismatch)
	wantError(t, `1 + "foo"`, types.TypeMismatch)
}

func TestEvalComparison(t *testing.T) {
	wantValue(t, "1 < 2", types.NewBool(true))
	wantValue(t, "2 <= 2", types.NewBool(true))
	wantValue(t, "3 > 4", types.NewBool(false))
	wantValue(t, "1 >= 1.0", types.NewBool(true))
	wantValue(t, "1.5 < 2", types.NewBool(true))
	wantValue(t, `"abc" < "abd"`, types.NewBool(true))
	wantValue(t, `"b" >= "a"`, types.NewBool(true))
	wantError(t, `"a" < 1`, types.TypeMismatch)
	wantError(t, "[1] < [2]", types.TypeMismatch)
}

func TestEvalEquality(t *testing.T) {
	wantValue(t, "1 == 1", types.NewBool(true))
	wantValue(t, "1 == 1.0", types.NewBool(true))
	wantValue(t, "1 != 2", types.NewBool(true))
	wantValue(t, `"a" == "a"`, types.NewBool(true))
	wantValue(t, `"a" == "A"`, types.NewBool(false))
	wantValue(t, `1 == "1"`, types.NewBool(false))
	wantValue(t, "[1, 2] == [1, 2]", types.NewBool(true))
	wantValue(t, "[1, 2] == [1]", types.NewBool(false))
	wantValue(t, `{"a": 1} == {"a": 1.0}`, types.NewBool(true))
	wantValue(t, `{"a": 1} == {"b": 1}`, types.NewBool(false))
}

func TestEvalLogical(t *testing.T) {
	wantValue(t, "true && true", types.NewBool(true))
	wantValue(t, "true && false", types.NewBool(false))
	wantValue(t, "false || true", types.NewBool(true))
	wantValue(t, "false || false", types.NewBool(false))
	wantValue(t, "true && !false", types.NewBool(true))
	wantValue(t, "1 && 1", types.NewBool(true))
	wantValue(t, "0 || 1", types.NewBool(true))
}

func TestEvalShortCircuit(t *testing.T) {
	// The right side would divide by zero; it must not be evaluated
	wantValue(t, "false && 1 / 0 == 1", types.NewBool(false))
	wantValue(t, "true || 1 / 0 == 1", types.NewBool(true))
	wantError(t, "true && 1 / 0 == 1", types.DivideByZero)
}

func TestEvalShortCircuitSideEffects(t *testing.T) {
	calls := 0
	resolver := ResolverFunc(func(name string) (types.Value, bool) {
		if name == "probe" {
			return types.NewNative("probe", func(args []types.Value) types.Result {
				calls++
				return types.Ok(types.NewBool(true))
			}), true
		}
		return nil, false
	})
	ev := NewEvaluator(resolver)

	if _, err := ev.EvaluateString("false && probe()"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("probe ran %d times under false &&, want 0", calls)
	}

	if _, err := ev.EvaluateString("false || probe()"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("probe ran %d times under false ||, want 1", calls)
	}
}

func TestEvalTernary(t *testing.T) {
	wantValue(t, "true ? 1 : 2", types.NewInt(1))
	wantValue(t, "false ? 1 : 2", types.NewInt(2))
	wantValue(t, "x > 5 ? 'big' : 'small'", types.NewStr("big"))
	// Only the taken branch is evaluated
	wantValue(t, "true ? 1 : 1 / 0", types.NewInt(1))
	wantValue(t, "false ? 1 / 0 : 2", types.NewInt(2))
	wantError(t, "'maybe' ? 1 : 2", types.TypeMismatch)
}

func TestEvalTruthiness(t *testing.T) {
	wantValue(t, "![]", types.NewBool(true))
	wantValue(t, "!![]", types.NewBool(false))
	wantValue(t, "![1]", types.NewBool(false))
	wantValue(t, "!{}", types.NewBool(true))
	wantValue(t, `!!{"a": 1}`, types.NewBool(true))
	wantValue(t, "!0", types.NewBool(true))
	wantValue(t, "!0.0", types.NewBool(true))
	wantValue(t, `!"false"`, types.NewBool(true))
	wantValue(t, `!"true"`, types.NewBool(false))
	wantError(t, `!"yes"`, types.TypeMismatch)
	wantError(t, "!add", types.TypeMismatch)
}

func TestEvalVariables(t *testing.T) {
	wantValue(t, "x", types.NewInt(10))
	wantValue(t, "x + 5", types.NewInt(15))
	wantValue(t, "truth || false", types.NewBool(true))

	err := wantError(t, "missing", types.ResolveFailed)
	if err.Msg != "missing" {
		t.Errorf("error names %q, want \"missing\"", err.Msg)
	}
}

func TestEvalCalls(t *testing.T) {
	wantValue(t, "add(2, 3)", types.NewFloat(5.0))
	wantError(t, "add(1)", types.WrongArity)
	wantError(t, "x(1)", types.NotCallable)
	wantError(t, "add(1 / 0, 2)", types.DivideByZero)
}

func TestEvalListLiterals(t *testing.T) {
	wantValue(t, "[1, 2, 3]", types.NewList([]types.Value{
		types.NewInt(1), types.NewInt(2), types.NewInt(3),
	}))
	wantValue(t, "[x, x + 1]", types.NewList([]types.Value{
		types.NewInt(10), types.NewInt(11),
	}))
	wantError(t, "[1, 1 / 0]", types.DivideByZero)
}

func TestEvalDictLiterals(t *testing.T) {
	wantValue(t, `{"a": 1, "b": 2}["b"]`, types.NewInt(2))
	// Duplicate keys: last write wins
	wantValue(t, `{"a": 1, "a": 2}["a"]`, types.NewInt(2))
	wantError(t, `{"a": 1 / 0}`, types.DivideByZero)
}

package eval

import (
	"quill/parser"
	"quill/types"
)

// Resolver supplies values for free variables. Expression-only
// embeddings provide one in place of a mutable environment; the executor
// consults it after its own scope chain.
type Resolver interface {
	Resolve(name string) (types.Value, bool)
}

// ResolverFunc adapts a plain function to the Resolver interface
type ResolverFunc func(name string) (types.Value, bool)

// Resolve calls the underlying function
func (f ResolverFunc) Resolve(name string) (types.Value, bool) {
	return f(name)
}

// Evaluator reduces expressions to values. In expression mode it reads
// variables from a resolver only; the executor extends it with a mutable
// environment stack and a user-function call hook.
type Evaluator struct {
	env      *Environment
	resolver Resolver

	// callUser is installed by the executor; pure expression embeddings
	// leave it nil and cannot call user-defined functions
	callUser func(fn *types.FuncValue, args []types.Value, ctx *types.Context) types.Result
}

// NewEvaluator creates an expression-only evaluator over a resolver
func NewEvaluator(resolver Resolver) *Evaluator {
	return &Evaluator{resolver: resolver}
}

// Evaluate evaluates a parsed expression
func (e *Evaluator) Evaluate(expr parser.Expr) (types.Value, *types.Error) {
	result := e.Eval(expr, types.NewContext())
	if result.IsError() {
		return nil, result.Err
	}
	return result.Val, nil
}

// EvaluateString parses and evaluates an expression in one step
func (e *Evaluator) EvaluateString(input string) (types.Value, *types.Error) {
	expr, err := parser.ParseExpression(input)
	if err != nil {
		return nil, types.NewParseFailed(err.Error())
	}
	return e.Evaluate(expr)
}

// Eval evaluates an AST expression node and returns a Result. All
// sub-expressions evaluate left to right; the first non-normal outcome
// short-circuits the rest.
func (e *Evaluator) Eval(node parser.Expr, ctx *types.Context) types.Result {
	switch n := node.(type) {
	case *parser.LiteralExpr:
		return types.Ok(n.Value)
	case *parser.IdentifierExpr:
		return e.evalIdentifier(n)
	case *parser.ParenExpr:
		return e.Eval(n.Expr, ctx)
	case *parser.UnaryExpr:
		return e.evalUnary(n, ctx)
	case *parser.BinaryExpr:
		return e.evalBinary(n, ctx)
	case *parser.TernaryExpr:
		return e.evalTernary(n, ctx)
	case *parser.ListExpr:
		return e.evalListLiteral(n, ctx)
	case *parser.DictExpr:
		return e.evalDictLiteral(n, ctx)
	case *parser.MemberExpr:
		return e.evalMember(n, ctx)
	case *parser.IndexExpr:
		return e.evalIndex(n, ctx)
	case *parser.CallExpr:
		return e.evalCall(n, ctx)
	default:
		// Unknown node type - should never happen if the parser is correct
		return types.Err(types.NewEvaluationFailed("unknown expression node"))
	}
}

// evalIdentifier looks up a variable in the scope chain, then the resolver
func (e *Evaluator) evalIdentifier(node *parser.IdentifierExpr) types.Result {
	if e.env != nil {
		if val, ok := e.env.Get(node.Name); ok {
			return types.Ok(val)
		}
	}
	if e.resolver != nil {
		if val, ok := e.resolver.Resolve(node.Name); ok {
			return types.Ok(val)
		}
	}
	return types.Err(types.NewResolveFailed(node.Name))
}

// evalUnary evaluates !x and -x
func (e *Evaluator) evalUnary(node *parser.UnaryExpr, ctx *types.Context) types.Result {
	operandResult := e.Eval(node.Operand, ctx)
	if !operandResult.IsNormal() {
		return operandResult
	}

	switch node.Operator {
	case parser.TOKEN_MINUS:
		return evalUnaryMinus(operandResult.Val)
	case parser.TOKEN_NOT:
		return evalUnaryNot(operandResult.Val)
	default:
		return types.Err(types.NewEvaluationFailed("unknown unary operator"))
	}
}

// evalBinary evaluates a binary expression, delegating && and || to the
// short-circuit path
func (e *Evaluator) evalBinary(node *parser.BinaryExpr, ctx *types.Context) types.Result {
	if node.Operator == parser.TOKEN_AND || node.Operator == parser.TOKEN_OR {
		return e.evalLogical(node, ctx)
	}

	leftResult := e.Eval(node.Left, ctx)
	if !leftResult.IsNormal() {
		return leftResult
	}
	rightResult := e.Eval(node.Right, ctx)
	if !rightResult.IsNormal() {
		return rightResult
	}

	left := leftResult.Val
	right := rightResult.Val

	switch node.Operator {
	case parser.TOKEN_PLUS:
		return evalAdd(left, right)
	case parser.TOKEN_MINUS:
		return evalSubtract(left, right)
	case parser.TOKEN_STAR:
		return evalMultiply(left, right)
	case parser.TOKEN_SLASH:
		return evalDivide(left, right)
	case parser.TOKEN_PERCENT:
		return evalModulo(left, right)
	case parser.TOKEN_CARET:
		return evalPower(left, right)
	case parser.TOKEN_EQ:
		return types.Ok(types.NewBool(left.Equal(right)))
	case parser.TOKEN_NE:
		return types.Ok(types.NewBool(!left.Equal(right)))
	case parser.TOKEN_LT, parser.TOKEN_LE, parser.TOKEN_GT, parser.TOKEN_GE:
		return evalCompare(node.Operator, left, right)
	default:
		return types.Err(types.NewEvaluationFailed("unknown binary operator"))
	}
}

// evalLogical evaluates && and || with short-circuit semantics; the
// right operand is not evaluated when the left decides the outcome
func (e *Evaluator) evalLogical(node *parser.BinaryExpr, ctx *types.Context) types.Result {
	leftResult := e.Eval(node.Left, ctx)
	if !leftResult.IsNormal() {
		return leftResult
	}

	lb, ok := leftResult.Val.CoerceBool()
	if !ok {
		return types.Err(types.NewTypeMismatch(logicalOperandError(node.Operator)))
	}

	if node.Operator == parser.TOKEN_AND && !lb {
		return types.Ok(types.NewBool(false))
	}
	if node.Operator == parser.TOKEN_OR && lb {
		return types.Ok(types.NewBool(true))
	}

	rightResult := e.Eval(node.Right, ctx)
	if !rightResult.IsNormal() {
		return rightResult
	}
	rb, ok := rightResult.Val.CoerceBool()
	if !ok {
		return types.Err(types.NewTypeMismatch(logicalOperandError(node.Operator)))
	}
	return types.Ok(types.NewBool(rb))
}

func logicalOperandError(op parser.TokenType) string {
	if op == parser.TOKEN_AND {
		return "'&&' expects boolean operands"
	}
	return "'||' expects boolean operands"
}

// evalTernary evaluates cond ? then : else; only the taken branch runs
func (e *Evaluator) evalTernary(node *parser.TernaryExpr, ctx *types.Context) types.Result {
	condResult := e.Eval(node.Condition, ctx)
	if !condResult.IsNormal() {
		return condResult
	}

	cond, ok := condResult.Val.CoerceBool()
	if !ok {
		return types.Err(types.NewTypeMismatch("ternary condition is not a boolean"))
	}
	if cond {
		return e.Eval(node.ThenExpr, ctx)
	}
	return e.Eval(node.ElseExpr, ctx)
}

// evalListLiteral evaluates each element in order into a fresh list
func (e *Evaluator) evalListLiteral(node *parser.ListExpr, ctx *types.Context) types.Result {
	elems := make([]types.Value, len(node.Elements))
	for i, elemExpr := range node.Elements {
		result := e.Eval(elemExpr, ctx)
		if !result.IsNormal() {
			return result
		}
		elems[i] = result.Val
	}
	return types.Ok(types.NewList(elems))
}

// evalDictLiteral evaluates values in declared order; later duplicate
// keys overwrite earlier ones
func (e *Evaluator) evalDictLiteral(node *parser.DictExpr, ctx *types.Context) types.Result {
	dict := types.NewDict()
	for _, pair := range node.Pairs {
		result := e.Eval(pair.Value, ctx)
		if !result.IsNormal() {
			return result
		}
		dict.Set(pair.Key, result.Val)
	}
	return types.Ok(dict)
}

// evalCall evaluates the callee, then each argument in order, and
// dispatches on the callee's kind
func (e *Evaluator) evalCall(node *parser.CallExpr, ctx *types.Context) types.Result {
	calleeResult := e.Eval(node.Callee, ctx)
	if !calleeResult.IsNormal() {
		return calleeResult
	}

	args := make([]types.Value, len(node.Args))
	for i, argExpr := range node.Args {
		result := e.Eval(argExpr, ctx)
		if !result.IsNormal() {
			return result
		}
		args[i] = result.Val
	}

	fn, ok := calleeResult.Val.(*types.FuncValue)
	if !ok {
		return types.Err(types.NewNotCallable(calleeResult.Val.Type().String()))
	}

	return e.Call(fn, args, ctx)
}

// Call invokes a function value with already-evaluated arguments.
// Natives check their own arity; user functions run through the
// executor's call hook.
func (e *Evaluator) Call(fn *types.FuncValue, args []types.Value, ctx *types.Context) types.Result {
	if fn.IsNative() {
		return fn.Native(args)
	}
	if e.callUser == nil {
		return types.Err(types.NewEvaluationFailed("user-defined functions require a program executor"))
	}
	return e.callUser(fn, args, ctx)
}

package eval

import (
	"io"
	"os"

	"quill/builtins"
	"quill/parser"
	"quill/trace"
	"quill/types"
)

// Config provides the host side of a program run: the print sink,
// optional extra globals via a resolver, and the recursion limit.
type Config struct {
	Output   io.Writer // print sink; defaults to os.Stdout
	Resolver Resolver  // optional additional globals
	MaxDepth int       // user-function recursion limit; 0 means default
}

// Executor runs programs. It owns the environment stack: scope 0 is the
// global scope holding builtins and top-level bindings; each user
// function call pushes exactly one frame over the global scope.
type Executor struct {
	ev     *Evaluator
	global *Environment
	cfg    Config
}

// NewExecutor creates an executor with builtins bound in the global scope
func NewExecutor(cfg Config) *Executor {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	global := NewEnvironment()
	registry := builtins.NewRegistry()
	registry.RegisterOutput(cfg.Output)
	for name, fn := range registry.All() {
		global.Define(name, fn)
	}

	ev := &Evaluator{env: global, resolver: cfg.Resolver}
	ex := &Executor{ev: ev, global: global, cfg: cfg}
	ev.callUser = ex.callUser
	return ex
}

// Env returns the global environment (for embedding hosts and tests)
func (e *Executor) Env() *Environment {
	return e.global
}

// RunSource parses and runs a program
func (e *Executor) RunSource(source string) (types.Value, *types.Error) {
	program, err := parser.ParseProgram(source)
	if err != nil {
		return nil, types.NewParseFailed(err.Error())
	}
	return e.Run(program)
}

// Run executes a program. Top-level function definitions are bound
// before the first statement runs, so forward calls resolve. Returns
// Unit on normal completion.
func (e *Executor) Run(program []parser.Stmt) (types.Value, *types.Error) {
	for _, stmt := range program {
		if fnDef, ok := stmt.(*parser.FnDefStmt); ok {
			e.global.Define(fnDef.Name, types.NewUserFunc(fnDef.Name, fnDef.Params, fnDef.Body))
		}
	}

	ctx := types.NewContextWithDepth(e.cfg.MaxDepth)
	result := e.ExecStatements(program, ctx)

	switch result.Flow {
	case types.FlowError:
		return nil, result.Err
	case types.FlowReturn:
		return nil, types.NewEvaluationFailed("return outside of a function")
	case types.FlowBreak:
		return nil, types.NewEvaluationFailed("break outside of a loop")
	case types.FlowContinue:
		return nil, types.NewEvaluationFailed("continue outside of a loop")
	}
	return types.Unit, nil
}

// EvalExpression evaluates an expression against the executor's current
// environment (used by hosts for one-shot queries and REPL echo)
func (e *Executor) EvalExpression(source string) (types.Value, *types.Error) {
	expr, err := parser.ParseExpression(source)
	if err != nil {
		return nil, types.NewParseFailed(err.Error())
	}
	result := e.ev.Eval(expr, types.NewContextWithDepth(e.cfg.MaxDepth))
	if result.IsError() {
		return nil, result.Err
	}
	return result.Val, nil
}

// EvaluateInterpolated splices ${...} expression results into the
// template, reading variables from the executor's environment
func (e *Executor) EvaluateInterpolated(template string) (string, *types.Error) {
	return e.ev.EvaluateInterpolated(template)
}

// ExecStatements executes a block in order, stopping at the first
// non-normal outcome
func (e *Executor) ExecStatements(stmts []parser.Stmt, ctx *types.Context) types.Result {
	for _, stmt := range stmts {
		result := e.ExecStmt(stmt, ctx)
		if !result.IsNormal() {
			return result
		}
	}
	return types.Ok(types.Unit)
}

// ExecStmt executes a single statement
func (e *Executor) ExecStmt(stmt parser.Stmt, ctx *types.Context) types.Result {
	switch s := stmt.(type) {
	case *parser.AssignStmt:
		return e.execAssign(s, ctx)
	case *parser.ExprStmt:
		result := e.ev.Eval(s.Expr, ctx)
		if !result.IsNormal() {
			return result
		}
		return types.Ok(types.Unit)
	case *parser.IfStmt:
		return e.execIf(s, ctx)
	case *parser.WhileStmt:
		return e.execWhile(s, ctx)
	case *parser.ForStmt:
		return e.execForC(s, ctx)
	case *parser.ForInListStmt:
		return e.execForInList(s, ctx)
	case *parser.ForInDictStmt:
		return e.execForInDict(s, ctx)
	case *parser.FnDefStmt:
		e.ev.env.Define(s.Name, types.NewUserFunc(s.Name, s.Params, s.Body))
		return types.Ok(types.Unit)
	case *parser.ReturnStmt:
		return e.execReturn(s, ctx)
	case *parser.BreakStmt:
		return types.Break()
	case *parser.ContinueStmt:
		return types.Continue()
	default:
		return types.Err(types.NewEvaluationFailed("unknown statement node"))
	}
}

// execAssign evaluates the value, then writes it through the target
// lvalue: a variable, a dict field, or a list/dict element
func (e *Executor) execAssign(stmt *parser.AssignStmt, ctx *types.Context) types.Result {
	valueResult := e.ev.Eval(stmt.Value, ctx)
	if !valueResult.IsNormal() {
		return valueResult
	}
	value := valueResult.Val

	switch target := stmt.Target.(type) {
	case *parser.IdentifierExpr:
		e.ev.env.Assign(target.Name, value)
		return types.Ok(types.Unit)

	case *parser.MemberExpr:
		objResult := e.ev.Eval(target.Object, ctx)
		if !objResult.IsNormal() {
			return objResult
		}
		dict, ok := objResult.Val.(*types.DictValue)
		if !ok {
			return types.Err(types.NewNotADict())
		}
		dict.Set(target.Field, value)
		return types.Ok(types.Unit)

	case *parser.IndexExpr:
		objResult := e.ev.Eval(target.Object, ctx)
		if !objResult.IsNormal() {
			return objResult
		}
		idxResult := e.ev.Eval(target.Index, ctx)
		if !idxResult.IsNormal() {
			return idxResult
		}
		result := assignIndex(objResult.Val, idxResult.Val, value)
		if !result.IsNormal() {
			return result
		}
		return types.Ok(types.Unit)

	default:
		// The parser only produces the three lvalue shapes above
		return types.Err(types.NewEvaluationFailed("invalid assignment target"))
	}
}

// condValue evaluates a statement condition and coerces it to a boolean
func (e *Executor) condValue(cond parser.Expr, ctx *types.Context) (bool, types.Result) {
	result := e.ev.Eval(cond, ctx)
	if !result.IsNormal() {
		return false, result
	}
	b, ok := result.Val.CoerceBool()
	if !ok {
		return false, types.Err(types.NewTypeMismatch("condition is not a boolean"))
	}
	return b, types.Ok(types.Unit)
}

// execIf runs the matching branch of an if statement
func (e *Executor) execIf(stmt *parser.IfStmt, ctx *types.Context) types.Result {
	cond, res := e.condValue(stmt.Condition, ctx)
	if !res.IsNormal() {
		return res
	}
	if cond {
		return e.ExecStatements(stmt.Body, ctx)
	}
	if stmt.Else != nil {
		return e.ExecStatements(stmt.Else, ctx)
	}
	return types.Ok(types.Unit)
}

// execWhile re-evaluates the condition before each iteration; break
// exits normally, continue starts the next iteration
func (e *Executor) execWhile(stmt *parser.WhileStmt, ctx *types.Context) types.Result {
	for {
		cond, res := e.condValue(stmt.Condition, ctx)
		if !res.IsNormal() {
			return res
		}
		if !cond {
			return types.Ok(types.Unit)
		}

		bodyResult := e.ExecStatements(stmt.Body, ctx)
		switch bodyResult.Flow {
		case types.FlowReturn, types.FlowError:
			return bodyResult
		case types.FlowBreak:
			return types.Ok(types.Unit)
		}
	}
}

// execForC runs a C-style loop: init once, then cond / body / post per
// iteration; continue falls through to post
func (e *Executor) execForC(stmt *parser.ForStmt, ctx *types.Context) types.Result {
	if stmt.Init != nil {
		result := e.ExecStmt(stmt.Init, ctx)
		if !result.IsNormal() {
			return result
		}
	}

	for {
		if stmt.Cond != nil {
			cond, res := e.condValue(stmt.Cond, ctx)
			if !res.IsNormal() {
				return res
			}
			if !cond {
				return types.Ok(types.Unit)
			}
		}

		bodyResult := e.ExecStatements(stmt.Body, ctx)
		switch bodyResult.Flow {
		case types.FlowReturn, types.FlowError:
			return bodyResult
		case types.FlowBreak:
			return types.Ok(types.Unit)
		}

		if stmt.Post != nil {
			result := e.ExecStmt(stmt.Post, ctx)
			if !result.IsNormal() {
				return result
			}
		}
	}
}

// execForInList iterates a snapshot of the list, binding the loop
// variable in the current scope for each element
func (e *Executor) execForInList(stmt *parser.ForInListStmt, ctx *types.Context) types.Result {
	iterResult := e.ev.Eval(stmt.Iterable, ctx)
	if !iterResult.IsNormal() {
		return iterResult
	}
	list, ok := iterResult.Val.(*types.ListValue)
	if !ok {
		return types.Err(types.NewTypeMismatch("for..in expects a list"))
	}

	// Snapshot so body mutations don't disturb the iteration
	elements := append([]types.Value(nil), list.Elements()...)

	for _, elem := range elements {
		e.ev.env.Define(stmt.Var, elem)

		bodyResult := e.ExecStatements(stmt.Body, ctx)
		switch bodyResult.Flow {
		case types.FlowReturn, types.FlowError:
			return bodyResult
		case types.FlowBreak:
			return types.Ok(types.Unit)
		}
	}
	return types.Ok(types.Unit)
}

// execForInDict iterates a snapshot of the dict's sorted key set,
// binding the key and value variables for each entry
func (e *Executor) execForInDict(stmt *parser.ForInDictStmt, ctx *types.Context) types.Result {
	iterResult := e.ev.Eval(stmt.Iterable, ctx)
	if !iterResult.IsNormal() {
		return iterResult
	}
	dict, ok := iterResult.Val.(*types.DictValue)
	if !ok {
		return types.Err(types.NewTypeMismatch("for (k, v) in expects a dict"))
	}

	for _, key := range dict.Keys() {
		val, exists := dict.Get(key)
		if !exists {
			// Entry removed by a previous iteration's body
			continue
		}
		e.ev.env.Define(stmt.KeyVar, types.NewStr(key))
		e.ev.env.Define(stmt.ValVar, val)

		bodyResult := e.ExecStatements(stmt.Body, ctx)
		switch bodyResult.Flow {
		case types.FlowReturn, types.FlowError:
			return bodyResult
		case types.FlowBreak:
			return types.Ok(types.Unit)
		}
	}
	return types.Ok(types.Unit)
}

// execReturn evaluates the optional value and raises the return signal
func (e *Executor) execReturn(stmt *parser.ReturnStmt, ctx *types.Context) types.Result {
	if stmt.Value == nil {
		return types.Return(types.Unit)
	}
	result := e.ev.Eval(stmt.Value, ctx)
	if !result.IsNormal() {
		return result
	}
	return types.Return(result.Val)
}

// callUser invokes a user-defined function. The call frame is pushed
// over the global scope only, never over the caller's scope chain, which
// is what keeps user functions from capturing caller locals.
func (e *Executor) callUser(fn *types.FuncValue, args []types.Value, ctx *types.Context) types.Result {
	if len(args) != len(fn.Params) {
		return types.Err(types.NewWrongArity(len(fn.Params), len(args)))
	}

	body, ok := fn.Body.([]parser.Stmt)
	if !ok {
		return types.Err(types.NewEvaluationFailed("malformed function body"))
	}

	if !ctx.EnterCall() {
		ctx.ExitCall()
		return types.Err(types.NewEvaluationFailed("maximum call depth exceeded"))
	}
	trace.Call(fn.Name, args)

	frame := NewNestedEnvironment(e.global)
	for i, param := range fn.Params {
		frame.Define(param, args[i])
	}

	saved := e.ev.env
	e.ev.env = frame
	result := e.ExecStatements(body, ctx)
	e.ev.env = saved
	ctx.ExitCall()

	switch result.Flow {
	case types.FlowReturn:
		trace.Return(fn.Name, result.Val)
		return types.Ok(result.Val)
	case types.FlowError:
		trace.Exception(fn.Name, result.Err)
		return result
	case types.FlowBreak:
		return types.Err(types.NewEvaluationFailed("break outside of a loop"))
	case types.FlowContinue:
		return types.Err(types.NewEvaluationFailed("continue outside of a loop"))
	}
	trace.Return(fn.Name, types.Unit)
	return types.Ok(types.Unit)
}

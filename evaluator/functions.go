package evaluator

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/value"
)

// splitArgs mirrors stdlib's unexported `args` helper: a Tuple's elements, a
// single non-tuple value as a one-element slice, or empty for void.
func splitArgs(v value.Value) []value.Value {
	if v.IsVoid() {
		return nil
	}
	if v.Kind == value.Tuple {
		return v.Elements
	}
	return []value.Value{v}
}

// callFunction dispatches a Function symbol, built-in or user-defined.
func (e *Evaluator) callFunction(ctx *evalctx.Context, sym evalctx.Symbol, arg value.Value, name string, rng lexer.Range, isCancelled func() bool) (value.Value, error) {
	if sym.UserBody != nil {
		return e.invokeUserFunction(ctx, sym, arg, name, rng, isCancelled)
	}
	if sym.FuncImpl == nil {
		return value.Void, diagnostics.NewAssertionFailure("function symbol has no implementation", rng)
	}
	return sym.FuncImpl(ctx, arg)
}

// invokeUserFunction binds the call's positional arguments to the
// definition's parameter names in a pushed child context, then walks the
// body via execFunctionBody: every statement's value accumulates as a
// child, matching how a user-defined block's body behaves, and the call
// returns the single child if exactly one was produced, otherwise a tuple
// of all of them.
func (e *Evaluator) invokeUserFunction(ctx *evalctx.Context, sym evalctx.Symbol, arg value.Value, name string, rng lexer.Range, isCancelled func() bool) (value.Value, error) {
	if ctx.StackDepth+1 > maxRecursionDepth {
		return value.Void, diagnostics.NewAssertionFailure("Too much recursion", rng)
	}

	parts := splitArgs(arg)
	if len(parts) > len(sym.UserParams) {
		return value.Void, diagnostics.NewUnexpectedArgument(name, len(sym.UserParams), rng)
	}
	if len(parts) < len(sym.UserParams) {
		// Name the missing parameter's statically inferred type where the
		// analysis produced one; the check itself is purely on arity.
		expected := "any"
		if len(sym.UserParamTypes) > len(parts) {
			expected = sym.UserParamTypes[len(parts)].String()
		}
		return value.Void, diagnostics.NewMissingArgument(name, len(parts), expected, rng)
	}

	declType := &evalctx.BlockType{
		Name:    "function:" + sym.DeclSource,
		Symbols: e.tables.User.Symbols,
	}
	child := ctx.PushDefinition(*sym.DeclSymbols, declType)
	for i, p := range sym.UserParams {
		child.UserSymbols[p] = evalctx.ConstantOf(parts[i])
	}

	return e.execFunctionBody(child, sym.UserBody, isCancelled)
}

// execFunctionBody runs every statement normally (so each one's resulting
// value accumulates into the pushed context's children exactly like a
// user-defined block's body would), then derives the call's result from
// those accumulated children: the single child if exactly one was
// produced, otherwise a tuple of all of them. A body that produced no
// children (e.g. one ending in a bare property setter) returns void.
func (e *Evaluator) execFunctionBody(ctx *evalctx.Context, body *ast.Block, isCancelled func() bool) (value.Value, error) {
	if err := e.execStatements(ctx, body.Statements, isCancelled); err != nil {
		return value.Void, err
	}
	if len(ctx.Children) == 1 {
		return ctx.Children[0], nil
	}
	return value.TupleOf(ctx.Children...), nil
}

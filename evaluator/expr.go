package evaluator

import (
	"math"

	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/members"
	"github.com/shapelang/shape/value"
)

func (e *Evaluator) evalExpr(ctx *evalctx.Context, expr ast.Expression, isCancelled func() bool) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.NumberExpr:
		return value.NumberOf(ex.Value), nil
	case *ast.StringExpr:
		return value.StringOf(ex.Value), nil
	case *ast.ColorExpr:
		return value.ColorOf(ex.R, ex.G, ex.B, ex.A), nil
	case *ast.IdentExpr:
		return e.evalIdent(ctx, ex, isCancelled)
	case *ast.SubexpressionExpr:
		return e.evalExpr(ctx, ex.Inner, isCancelled)
	case *ast.TupleExpr:
		elems := make([]value.Value, len(ex.Elements))
		for i, el := range ex.Elements {
			v, err := e.evalExpr(ctx, el, isCancelled)
			if err != nil {
				return value.Void, err
			}
			elems[i] = v
		}
		return value.TupleOfRaw(elems...), nil
	case *ast.PrefixExpr:
		return e.evalPrefix(ctx, ex, isCancelled)
	case *ast.InfixExpr:
		return e.evalInfix(ctx, ex, isCancelled)
	case *ast.MemberExpr:
		return e.evalMember(ctx, ex, isCancelled)
	case *ast.CallExpr:
		return e.evalCall(ctx, ex, isCancelled)
	case *ast.BlockExpr:
		return e.evalBlockExpr(ctx, ex, isCancelled)
	default:
		return value.Void, diagnostics.NewAssertionFailure("unhandled expression kind", expr.Range())
	}
}

func (e *Evaluator) evalIdent(ctx *evalctx.Context, ex *ast.IdentExpr, isCancelled func() bool) (value.Value, error) {
	if v, ok := ctx.NamedObjects[ex.Name]; ok {
		if _, shadowed := ctx.Lookup(ex.Name); !shadowed {
			return v, nil
		}
	}
	sym, ok := ctx.Lookup(ex.Name)
	if !ok {
		return value.Void, diagnostics.NewUnknownSymbol(ex.Name, ctx.KnownNames(), ex.Rng)
	}
	switch sym.Kind {
	case evalctx.ConstantSymbol, evalctx.OptionSymbol:
		return sym.Value, nil
	case evalctx.FunctionSymbol:
		return e.callFunction(ctx, sym, value.Void, ex.Name, ex.Rng, isCancelled)
	case evalctx.BlockSymbol:
		return e.invokeBlock(ctx, sym, &ast.Block{}, ex.Rng, isCancelled)
	case evalctx.PropertySymbol:
		if sym.Prop.Get == nil {
			return value.Void, diagnostics.NewAssertionFailure("property has no getter", ex.Rng)
		}
		return sym.Prop.Get(ctx), nil
	default:
		return value.Void, diagnostics.NewAssertionFailure("placeholder symbol has no runtime value", ex.Rng)
	}
}

func (e *Evaluator) evalPrefix(ctx *evalctx.Context, ex *ast.PrefixExpr, isCancelled func() bool) (value.Value, error) {
	v, err := e.evalExpr(ctx, ex.Operand, isCancelled)
	if err != nil {
		return value.Void, err
	}
	switch ex.Op {
	case "not":
		if v.Kind != value.Boolean {
			return value.Void, diagnostics.NewTypeMismatch("not", 0, "boolean", v.Type().String(), ex.Rng)
		}
		return value.BoolOf(!v.Bool), nil
	case "-":
		switch v.Kind {
		case value.Number:
			return value.NumberOf(-v.Num), nil
		case value.Vector:
			return value.VectorOf(-v.X, -v.Y, -v.Z), nil
		case value.Size:
			return value.SizeOf(-v.X, -v.Y, -v.Z), nil
		default:
			return value.Void, diagnostics.NewTypeMismatch("-", 0, "number", v.Type().String(), ex.Rng)
		}
	case "+":
		if v.Kind != value.Number {
			return value.Void, diagnostics.NewTypeMismatch("+", 0, "number", v.Type().String(), ex.Rng)
		}
		return v, nil
	default:
		return value.Void, diagnostics.NewAssertionFailure("unknown prefix operator "+ex.Op, ex.Rng)
	}
}

func (e *Evaluator) evalInfix(ctx *evalctx.Context, ex *ast.InfixExpr, isCancelled func() bool) (value.Value, error) {
	switch ex.Op {
	case "and", "or":
		left, err := e.evalExpr(ctx, ex.Left, isCancelled)
		if err != nil {
			return value.Void, err
		}
		if left.Kind != value.Boolean {
			return value.Void, diagnostics.NewTypeMismatch(ex.Op, 0, "boolean", left.Type().String(), ex.Rng)
		}
		if ex.Op == "and" && !left.Bool {
			return value.BoolOf(false), nil
		}
		if ex.Op == "or" && left.Bool {
			return value.BoolOf(true), nil
		}
		right, err := e.evalExpr(ctx, ex.Right, isCancelled)
		if err != nil {
			return value.Void, err
		}
		if right.Kind != value.Boolean {
			return value.Void, diagnostics.NewTypeMismatch(ex.Op, 1, "boolean", right.Type().String(), ex.Rng)
		}
		return right, nil
	}

	left, err := e.evalExpr(ctx, ex.Left, isCancelled)
	if err != nil {
		return value.Void, err
	}
	right, err := e.evalExpr(ctx, ex.Right, isCancelled)
	if err != nil {
		return value.Void, err
	}

	switch ex.Op {
	case "=":
		return value.BoolOf(left.Equal(right)), nil
	case "!=", "<>":
		return value.BoolOf(!left.Equal(right)), nil
	case "<", "<=", ">", ">=":
		if left.Kind != value.Number || right.Kind != value.Number {
			return value.Void, diagnostics.NewTypeMismatch(ex.Op, 0, "number", left.Type().String(), ex.Rng)
		}
		return value.BoolOf(compareNumbers(ex.Op, left.Num, right.Num)), nil
	case "in":
		return evalIn(left, right), nil
	case "to":
		if left.Kind != value.Number || right.Kind != value.Number {
			return value.Void, diagnostics.NewTypeMismatch("to", 0, "number", left.Type().String(), ex.Rng)
		}
		return value.RangeOf(left.Num, right.Num, 0), nil
	case "step":
		if left.Kind != value.Range {
			return value.Void, diagnostics.NewTypeMismatch("step", 0, "range", left.Type().String(), ex.Rng)
		}
		if right.Kind != value.Number {
			return value.Void, diagnostics.NewTypeMismatch("step", 1, "number", right.Type().String(), ex.Rng)
		}
		return value.RangeOf(left.Start, left.End, right.Num), nil
	case "+", "-", "*", "/", "%":
		return arith(ex.Op, left, right, ex.Rng)
	default:
		return value.Void, diagnostics.NewAssertionFailure("unknown infix operator "+ex.Op, ex.Rng)
	}
}

func compareNumbers(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

func evalIn(left, right value.Value) value.Value {
	switch right.Kind {
	case value.Range:
		if left.Kind != value.Number {
			return value.BoolOf(false)
		}
		lo, hi := right.Start, right.End
		if lo > hi {
			lo, hi = hi, lo
		}
		return value.BoolOf(left.Num >= lo && left.Num <= hi)
	case value.Tuple:
		for _, e := range right.Elements {
			if left.Equal(e) {
				return value.BoolOf(true)
			}
		}
		return value.BoolOf(false)
	default:
		return value.BoolOf(false)
	}
}

func numOp(op string, a, b float64) float64 {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	default:
		return math.Mod(a, b)
	}
}

func arith(op string, left, right value.Value, rng lexer.Range) (value.Value, error) {
	if left.Kind == value.Number && right.Kind == value.Number {
		return value.NumberOf(numOp(op, left.Num, right.Num)), nil
	}
	if isVectorLike(left) && isVectorLike(right) {
		return mapVectorLike(left, numOp(op, left.X, right.X), numOp(op, left.Y, right.Y), numOp(op, left.Z, right.Z)), nil
	}
	if isVectorLike(left) && right.Kind == value.Number && (op == "*" || op == "/") {
		return mapVectorLike(left, numOp(op, left.X, right.Num), numOp(op, left.Y, right.Num), numOp(op, left.Z, right.Num)), nil
	}
	if left.Kind == value.Tuple && right.Kind == value.Tuple {
		if len(left.Elements) != len(right.Elements) {
			return value.Void, diagnostics.NewTypeMismatch(op, 1, "tuple of matching length", right.Type().String(), rng)
		}
		out := make([]value.Value, len(left.Elements))
		for i := range left.Elements {
			v, err := arith(op, left.Elements[i], right.Elements[i], rng)
			if err != nil {
				return value.Void, err
			}
			out[i] = v
		}
		return value.TupleOfRaw(out...), nil
	}
	return value.Void, diagnostics.NewTypeMismatch(op, 0, "number", left.Type().String(), rng)
}

func isVectorLike(v value.Value) bool { return v.Kind == value.Vector || v.Kind == value.Size }

func mapVectorLike(v value.Value, x, y, z float64) value.Value {
	if v.Kind == value.Size {
		return value.SizeOf(x, y, z)
	}
	return value.VectorOf(x, y, z)
}

func (e *Evaluator) evalMember(ctx *evalctx.Context, ex *ast.MemberExpr, isCancelled func() bool) (value.Value, error) {
	receiver, err := e.evalExpr(ctx, ex.Receiver, isCancelled)
	if err != nil {
		return value.Void, err
	}
	v, ok := members.Lookup(receiver, ex.Member)
	if !ok {
		_, names := members.StaticTable(receiver.Type())
		return value.Void, diagnostics.NewUnknownMember(ex.Member, receiver.Type().String(), names, ex.Rng)
	}
	return v, nil
}

func (e *Evaluator) evalCall(ctx *evalctx.Context, ex *ast.CallExpr, isCancelled func() bool) (value.Value, error) {
	callee := ex.Callee
	for {
		sub, ok := callee.(*ast.SubexpressionExpr)
		if !ok {
			break
		}
		callee = sub.Inner
	}
	ident, ok := callee.(*ast.IdentExpr)
	if !ok {
		return value.Void, diagnostics.NewUnknownSymbol("<call>", ctx.KnownNames(), ex.Rng)
	}
	sym, ok := ctx.Lookup(ident.Name)
	if !ok {
		return value.Void, diagnostics.NewUnknownSymbol(ident.Name, ctx.KnownNames(), ex.Rng)
	}
	if sym.Kind != evalctx.FunctionSymbol {
		return value.Void, diagnostics.NewTypeMismatch(ident.Name, 0, "function", "block", ex.Rng)
	}

	argVals := make([]value.Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := e.evalExpr(ctx, a, isCancelled)
		if err != nil {
			return value.Void, err
		}
		argVals[i] = v
	}
	argVal := value.TupleOf(argVals...)
	if len(argVals) == 0 {
		argVal = value.Void
	}
	return e.callFunction(ctx, sym, argVal, ident.Name, ex.Rng, isCancelled)
}

func (e *Evaluator) evalBlockExpr(ctx *evalctx.Context, ex *ast.BlockExpr, isCancelled func() bool) (value.Value, error) {
	sym, ok := ctx.Lookup(ex.Ident)
	if !ok {
		return value.Void, diagnostics.NewUnknownSymbol(ex.Ident, ctx.KnownNames(), ex.Rng)
	}
	if sym.Kind != evalctx.BlockSymbol {
		return value.Void, diagnostics.NewTypeMismatch(ex.Ident, 0, "block", "function", ex.Rng)
	}
	return e.invokeBlock(ctx, sym, ex.Body, ex.Rng, isCancelled)
}

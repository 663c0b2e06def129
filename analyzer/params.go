package analyzer

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/types"
)

// InferParameterTypes performs best-effort parameter-type inference for a
// user-defined function: starting every parameter at `any`, it walks the
// body narrowing each parameter's type at identifier occurrences using the
// surrounding expression's expected operand type (arithmetic operators
// expect number or list(number); `and`/`or` expect boolean; `to`/`step`
// expect number), and narrows the return position against targetReturn.
// Two narrowings for the same parameter that are not in a subtype
// relation combine via `union` rather than erroring, matching the
// "Narrowing combines via union on failure to subtype" rule.
func InferParameterTypes(def *ast.FunctionDefinition, targetReturn types.ValueType) map[string]types.ValueType {
	params := make(map[string]types.ValueType, len(def.Params))
	isParam := make(map[string]bool, len(def.Params))
	for _, p := range def.Params {
		params[p] = types.AnyType
		isParam[p] = true
	}

	w := &paramWalker{params: params, isParam: isParam}
	if def.Body != nil {
		w.walkBlock(def.Body, targetReturn)
	}
	return params
}

type paramWalker struct {
	params  map[string]types.ValueType
	isParam map[string]bool
}

func (w *paramWalker) narrow(name string, t types.ValueType) {
	if !w.isParam[name] {
		return
	}
	existing := w.params[name]
	switch {
	case t.SubtypeOf(existing):
		w.params[name] = t
	case existing.SubtypeOf(t):
		// existing is already at least as specific; keep it.
	default:
		w.params[name] = types.Union(existing, t)
	}
}

func (w *paramWalker) walkBlock(b *ast.Block, trailingExpected types.ValueType) {
	for i, st := range b.Statements {
		expected := types.AnyType
		if i == len(b.Statements)-1 {
			expected = trailingExpected
		}
		w.walkStatement(st, expected)
	}
}

func (w *paramWalker) walkStatement(st ast.Statement, expected types.ValueType) {
	switch s := st.(type) {
	case *ast.CommandStmt:
		if s.Args != nil {
			w.walkExpr(s.Args, types.AnyType)
		}
	case *ast.DefineStmt:
		switch d := s.Definition.(type) {
		case *ast.ExprDefinition:
			w.walkExpr(d.Expr, types.AnyType)
		case *ast.FunctionDefinition:
			w.walkBlock(d.Body, types.AnyType)
		case *ast.BlockDefinition:
			w.walkBlock(d.Body, types.AnyType)
		}
	case *ast.OptionStmt:
		w.walkExpr(s.Expr, types.AnyType)
	case *ast.ForStmt:
		w.walkExpr(s.Expr, types.AnyType)
		w.walkBlock(s.Body, types.Void)
	case *ast.IfStmt:
		w.walkExpr(s.Cond, types.BooleanType)
		w.walkBlock(s.Then, types.Void)
		if s.Else != nil {
			w.walkBlock(s.Else, types.Void)
		}
	case *ast.ExpressionStmt:
		w.walkExpr(s.Expr, expected)
	case *ast.ImportStmt:
		w.walkExpr(s.Expr, types.StringType)
	}
}

func (w *paramWalker) walkExpr(e ast.Expression, expected types.ValueType) {
	switch ex := e.(type) {
	case *ast.IdentExpr:
		if expected.Kind != types.Any {
			w.narrow(ex.Name, expected)
		}
	case *ast.TupleExpr:
		for _, el := range ex.Elements {
			w.walkExpr(el, types.AnyType)
		}
	case *ast.PrefixExpr:
		w.walkExpr(ex.Operand, expected)
	case *ast.InfixExpr:
		w.walkInfix(ex)
	case *ast.MemberExpr:
		w.walkExpr(ex.Receiver, types.AnyType)
	case *ast.CallExpr:
		w.walkExpr(ex.Callee, types.AnyType)
		for _, a := range ex.Args {
			w.walkExpr(a, types.AnyType)
		}
	case *ast.BlockExpr:
		if ex.Body != nil {
			w.walkBlock(ex.Body, types.Void)
		}
	case *ast.SubexpressionExpr:
		w.walkExpr(ex.Inner, expected)
	}
}

func (w *paramWalker) walkInfix(e *ast.InfixExpr) {
	var operandExpected types.ValueType
	switch {
	case arithmeticOps[e.Op]:
		operandExpected = types.Union(types.NumberType, types.List(types.NumberType))
	case e.Op == "and" || e.Op == "or":
		operandExpected = types.BooleanType
	case e.Op == "to" || e.Op == "step":
		operandExpected = types.NumberType
	default:
		operandExpected = types.AnyType
	}
	w.walkExpr(e.Left, operandExpected)
	w.walkExpr(e.Right, operandExpected)
}

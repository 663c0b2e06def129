package analyzer

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/types"
)

// GatherDefinitions runs the two-phase definition-gathering pass described
// for static analysis: every `define name …` at this scope level first
// gets a Placeholder(void) binding (so a recursive self-reference inside
// the body that is being type-computed resolves to a safe no-op rather
// than recursing forever), then each definition's conservative static type
// is computed in declaration order and replaces the placeholder. Because
// every placeholder is installed before any type is computed, forward
// references anywhere in the same scope also resolve, not just the
// defining statement's own recursive calls.
func GatherDefinitions(stmts []ast.Statement, scope *Scope) {
	for _, st := range stmts {
		if def, ok := st.(*ast.DefineStmt); ok {
			scope.Vars[def.Ident] = types.Void
		}
	}
	for _, st := range stmts {
		if def, ok := st.(*ast.DefineStmt); ok {
			scope.Vars[def.Ident] = DefinitionType(def.Definition, scope)
		}
	}
}

// DefinitionType computes the conservative static type of a `define`'s
// right-hand side. Function/block bodies are walked with their parameters
// bound to Placeholder(any); actual parameter types are narrowed later,
// per call site, by InferParameterTypes.
func DefinitionType(def ast.Definition, scope *Scope) types.ValueType {
	switch d := def.(type) {
	case *ast.ExprDefinition:
		return StaticType(d.Expr, scope)
	case *ast.FunctionDefinition:
		inner := scope.Clone()
		for _, p := range d.Params {
			inner.Vars[p] = types.AnyType
		}
		return blockType(d.Body, inner)
	case *ast.BlockDefinition:
		return blockType(d.Body, scope.Clone())
	default:
		return types.AnyType
	}
}

// blockType computes a block body's conservative result type: its own
// nested scope gathers definitions first, then the type is the static type
// of the last bare-expression statement, or `void` if the body ends in a
// command/side-effecting statement.
func blockType(body *ast.Block, scope *Scope) types.ValueType {
	if body == nil || len(body.Statements) == 0 {
		return types.Void
	}
	inner := scope.Clone()
	GatherDefinitions(body.Statements, inner)

	last := body.Statements[len(body.Statements)-1]
	if exprStmt, ok := last.(*ast.ExpressionStmt); ok {
		return StaticType(exprStmt.Expr, inner)
	}
	return types.Void
}

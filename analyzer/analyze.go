package analyzer

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/types"
)

// Analysis is the product of the static pass over one Program: the root
// scope after definition gathering, the inferred static type of every
// expression, and the inferred parameter types of every user-defined
// function. It is advisory — the evaluator re-checks every conversion and
// wins on disagreement — but it is what propagates parameter types into
// function bodies and powers the evaluator's argument diagnostics.
type Analysis struct {
	Root       *Scope
	ExprTypes  map[ast.Expression]types.ValueType
	ParamTypes map[*ast.FunctionDefinition]map[string]types.ValueType
}

// Analyze runs the two-phase static pass over program: definitions are
// gathered scope by scope (placeholders first, so forward and recursive
// references resolve), then every expression's static type is computed
// compositionally and recorded, recursing into function/block bodies with
// their parameters bound to the inferred types.
func Analyze(program *ast.Program) *Analysis {
	a := &Analysis{
		Root:       NewScope(),
		ExprTypes:  map[ast.Expression]types.ValueType{},
		ParamTypes: map[*ast.FunctionDefinition]map[string]types.ValueType{},
	}
	a.analyzeBlock(program.Statements, a.Root)
	return a
}

// ParamsFor returns the inferred parameter types for def, computing and
// caching them on demand for definitions the original walk never saw (a
// function defined inside an imported file, say).
func (a *Analysis) ParamsFor(def *ast.FunctionDefinition) map[string]types.ValueType {
	if params, ok := a.ParamTypes[def]; ok {
		return params
	}
	params := InferParameterTypes(def, types.AnyType)
	a.ParamTypes[def] = params
	return params
}

func (a *Analysis) analyzeBlock(stmts []ast.Statement, scope *Scope) {
	GatherDefinitions(stmts, scope)
	for _, st := range stmts {
		a.analyzeStatement(st, scope)
	}
}

func (a *Analysis) analyzeStatement(st ast.Statement, scope *Scope) {
	switch s := st.(type) {
	case *ast.CommandStmt:
		if s.Args != nil {
			a.recordExpr(s.Args, scope)
		}
	case *ast.ExpressionStmt:
		a.recordExpr(s.Expr, scope)
	case *ast.OptionStmt:
		a.recordExpr(s.Expr, scope)
	case *ast.ImportStmt:
		a.recordExpr(s.Expr, scope)
	case *ast.ForStmt:
		t := a.recordExpr(s.Expr, scope)
		inner := scope.Clone()
		if s.Ident != nil {
			inner.Vars[*s.Ident] = elementType(t)
		}
		a.analyzeBlock(s.Body.Statements, inner)
	case *ast.IfStmt:
		a.recordExpr(s.Cond, scope)
		a.analyzeBlock(s.Then.Statements, scope.Clone())
		if s.Else != nil {
			a.analyzeBlock(s.Else.Statements, scope.Clone())
		}
	case *ast.DefineStmt:
		a.analyzeDefinition(s, scope)
	}
}

func (a *Analysis) analyzeDefinition(s *ast.DefineStmt, scope *Scope) {
	switch d := s.Definition.(type) {
	case *ast.ExprDefinition:
		a.recordExpr(d.Expr, scope)
	case *ast.FunctionDefinition:
		target, _ := scope.Lookup(s.Ident)
		params := InferParameterTypes(d, target)
		a.ParamTypes[d] = params
		inner := scope.Clone()
		for name, t := range params {
			inner.Vars[name] = t
		}
		a.analyzeBlock(d.Body.Statements, inner)
	case *ast.BlockDefinition:
		a.analyzeBlock(d.Body.Statements, scope.Clone())
	}
}

// recordExpr computes and stores e's static type, post-order, so every
// subexpression gets an entry too.
func (a *Analysis) recordExpr(e ast.Expression, scope *Scope) types.ValueType {
	switch ex := e.(type) {
	case *ast.TupleExpr:
		for _, el := range ex.Elements {
			a.recordExpr(el, scope)
		}
	case *ast.PrefixExpr:
		a.recordExpr(ex.Operand, scope)
	case *ast.InfixExpr:
		a.recordExpr(ex.Left, scope)
		a.recordExpr(ex.Right, scope)
	case *ast.MemberExpr:
		a.recordExpr(ex.Receiver, scope)
	case *ast.CallExpr:
		for _, arg := range ex.Args {
			a.recordExpr(arg, scope)
		}
	case *ast.SubexpressionExpr:
		a.recordExpr(ex.Inner, scope)
	case *ast.BlockExpr:
		a.analyzeBlock(ex.Body.Statements, scope.Clone())
	}
	t := StaticType(e, scope)
	a.ExprTypes[e] = t
	return t
}

// elementType is the type a for loop binds its variable to when iterating
// a value of type t: ranges yield numbers, lists their element type, tuples
// the union of theirs.
func elementType(t types.ValueType) types.ValueType {
	switch t.Kind {
	case types.RangeT:
		return types.NumberType
	case types.ListT:
		return *t.Elem
	case types.TupleT:
		if len(t.Elements) > 0 {
			return types.Union(t.Elements...)
		}
		return types.AnyType
	default:
		return types.AnyType
	}
}

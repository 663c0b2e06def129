package analyzer

import (
	"strings"

	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/members"
	"github.com/shapelang/shape/types"
)

// arithmeticOps and comparisonOps classify infix operators for the lift
// rules below: arithmetic lifts vectors/lists to list(number); comparisons
// and logic connectives always yield boolean.
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
var comparisonOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true, "=": true, "!=": true, "<>": true}
var logicOps = map[string]bool{"and": true, "or": true, "in": true}

// StaticType computes expr's static type compositionally: literals have
// literal types; identifiers take the current scope binding's type;
// arithmetic on vectors/lists lifts to list(number); comparisons and
// logic connectives yield boolean; `to`/`step` yield range; member access
// consults the shared members.StaticTable keyed by the receiver's static
// type. Unresolvable shapes fall back to `any`, per the best-effort
// contract: the evaluator is the authoritative check.
func StaticType(expr ast.Expression, scope *Scope) types.ValueType {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		return types.NumberType
	case *ast.StringExpr:
		return types.StringType
	case *ast.ColorExpr:
		return types.ColorType
	case *ast.IdentExpr:
		t, _ := scope.Lookup(e.Name)
		return t
	case *ast.TupleExpr:
		elems := make([]types.ValueType, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = StaticType(el, scope)
		}
		return types.Tuple(elems...)
	case *ast.PrefixExpr:
		return StaticType(e.Operand, scope)
	case *ast.InfixExpr:
		return infixType(e, scope)
	case *ast.MemberExpr:
		recv := StaticType(e.Receiver, scope)
		table, _ := members.StaticTable(recv)
		if t, ok := table[e.Member]; ok {
			return t
		}
		return types.AnyType
	case *ast.CallExpr:
		return callType(e, scope)
	case *ast.BlockExpr:
		t, _ := scope.Lookup(e.Ident)
		return t
	case *ast.SubexpressionExpr:
		return StaticType(e.Inner, scope)
	default:
		return types.AnyType
	}
}

func infixType(e *ast.InfixExpr, scope *Scope) types.ValueType {
	switch {
	case e.Op == "to" || e.Op == "step":
		return types.RangeType
	case comparisonOps[e.Op] || logicOps[e.Op]:
		return types.BooleanType
	case arithmeticOps[e.Op]:
		left := StaticType(e.Left, scope)
		right := StaticType(e.Right, scope)
		return arithmeticLift(left, right)
	default:
		return types.AnyType
	}
}

// arithmeticLift implements "arithmetic on vectors/lists lifts to
// list(number)": plain number-on-number stays number; anything involving
// a vector, size, rotation, or list operand lifts to list(number); mixed
// or unresolved operands fall back to any.
func arithmeticLift(left, right types.ValueType) types.ValueType {
	isNumeric := func(t types.ValueType) bool { return t.Kind == types.NumberT }
	isComposite := func(t types.ValueType) bool {
		switch t.Kind {
		case types.VectorT, types.SizeT, types.RotationT, types.ListT:
			return true
		default:
			return false
		}
	}
	switch {
	case isNumeric(left) && isNumeric(right):
		return types.NumberType
	case isComposite(left) || isComposite(right):
		return types.List(types.NumberType)
	case left.Kind == types.Any || right.Kind == types.Any:
		return types.AnyType
	default:
		return types.AnyType
	}
}

// callType computes a call's static type: an identifier callee resolves
// against scope (function → its bound type; everything else best-effort
// any); a member/subexpression callee is treated the same way since the
// analyzer does not track first-class function values beyond their
// binding's stored type.
func callType(e *ast.CallExpr, scope *Scope) types.ValueType {
	callee := e.Callee
	for {
		sub, ok := callee.(*ast.SubexpressionExpr)
		if !ok {
			break
		}
		callee = sub.Inner
	}
	if ident, ok := callee.(*ast.IdentExpr); ok {
		if t, found := scope.Lookup(ident.Name); found {
			return t
		}
	}
	return types.AnyType
}

// ImportType computes `import expr`'s static type from the literal path's
// extension when it is statically known: `.txt` imports are string,
// recognised model extensions are mesh, everything else (including any
// `.shape` import, whose result depends on that file's own trailing
// value) is any.
func ImportType(pathLiteral string) types.ValueType {
	lower := strings.ToLower(pathLiteral)
	switch {
	case strings.HasSuffix(lower, ".txt"):
		return types.StringType
	case strings.HasSuffix(lower, ".stl"), strings.HasSuffix(lower, ".obj"), strings.HasSuffix(lower, ".dae"):
		return types.MeshType
	default:
		return types.AnyType
	}
}

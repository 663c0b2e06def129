// Package stdlib builds the per-block-kind BlockType tables described in
// the language's standard library: transform setters/properties, material,
// color constants, primitives, builders, CSG, path primitives, points,
// math/linear-algebra/string/randomness/logic functions, and the
// root-only symbols. Every built-in is an evalctx.Symbol using the exact
// calling convention user definitions use, so the evaluator never needs to
// special-case a built-in versus a user function.
package stdlib

import (
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/value"
)

// args splits a Function symbol's argument value into a flat slice: a
// Tuple's elements, a single non-tuple value as a one-element slice, or
// empty for void.
func args(v value.Value) []value.Value {
	if v.IsVoid() {
		return nil
	}
	if v.Kind == value.Tuple {
		return v.Elements
	}
	return []value.Value{v}
}

// wantNumber extracts a float64 from a or reports TypeMismatch.
func wantNumber(forName string, a []value.Value, index int) (float64, error) {
	if index >= len(a) {
		return 0, diagnostics.NewTypeMismatch(forName, index, "number", "nothing", lexer.Range{})
	}
	if a[index].Kind != value.Number {
		return 0, diagnostics.NewTypeMismatch(forName, index, "number", a[index].Type().String(), lexer.Range{})
	}
	return a[index].Num, nil
}

// wantString extracts a string from a or reports TypeMismatch.
func wantString(forName string, a []value.Value, index int) (string, error) {
	if index >= len(a) {
		return "", diagnostics.NewTypeMismatch(forName, index, "string", "nothing", lexer.Range{})
	}
	if a[index].Kind != value.String {
		return "", diagnostics.NewTypeMismatch(forName, index, "string", a[index].Type().String(), lexer.Range{})
	}
	return a[index].Str, nil
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

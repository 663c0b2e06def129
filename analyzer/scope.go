// Package analyzer implements the bidirectional static type layer: a
// two-phase per-scope pass (definition gathering, then compositional
// static-type computation) plus best-effort parameter-type inference for
// user-defined functions and blocks. Its results are advisory — `any` is
// an acceptable fallback everywhere, since the evaluator is the
// authoritative check. The pass itself reports no errors; its inferred
// parameter types let the evaluator name the expected type in its
// argument diagnostics.
package analyzer

import "github.com/shapelang/shape/types"

// Scope is the analyzer's symbol environment: a flat name -> ValueType
// map with the same snapshot/restore push semantics as evalctx.Table, kept
// as a distinct lightweight type here because the analyzer only ever needs
// types, never runtime Symbol closures.
type Scope struct {
	Vars map[string]types.ValueType
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{Vars: map[string]types.ValueType{}}
}

// Clone returns a scope with an independent copy of Vars, used when
// entering a function/block body or a nested for/if scope.
func (s *Scope) Clone() *Scope {
	out := make(map[string]types.ValueType, len(s.Vars))
	for k, v := range s.Vars {
		out[k] = v
	}
	return &Scope{Vars: out}
}

// Lookup resolves name, returning (AnyType, false) if it is not in scope —
// callers treat "not found" as "any" per the best-effort contract, while
// still getting `false` to decide whether to raise UnknownSymbol.
func (s *Scope) Lookup(name string) (types.ValueType, bool) {
	t, ok := s.Vars[name]
	if !ok {
		return types.AnyType, false
	}
	return t, true
}

// Names returns every name currently bound, for fuzzy "unknown symbol"
// suggestions.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.Vars))
	for k := range s.Vars {
		names = append(names, k)
	}
	return names
}

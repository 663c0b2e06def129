// Package evalctx implements the mutable EvaluationContext threaded through
// the evaluator, plus the Symbol sum type and per-block-kind BlockType
// tables it dispatches against. Symbol, BlockType, and the scoped symbol
// table live in this package rather than a separate one because their
// closures call back into Context (a built-in Property setter mutates the
// context's material, a Block impl pushes a child context) — splitting them
// out would create an import cycle between the table and the thing it
// operates on.
package evalctx

import (
	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

// SymbolKind tags the variant of a Symbol.
type SymbolKind int

const (
	FunctionSymbol SymbolKind = iota
	PropertySymbol
	BlockSymbol
	ConstantSymbol
	OptionSymbol
	PlaceholderSymbol
)

// FunctionType is a Function symbol's parameter/return static type pair.
type FunctionType struct {
	Param  types.ValueType
	Return types.ValueType
}

// FunctionImpl evaluates a Function symbol given its already-evaluated
// argument tuple.
type FunctionImpl func(ctx *Context, arg value.Value) (value.Value, error)

// PropertyImpl is a mutable context slot: Get reads the current value,
// Set applies a newly evaluated one (e.g. `color red` multiplies into the
// cumulative material color).
type PropertyImpl struct {
	Get func(ctx *Context) value.Value
	Set func(ctx *Context, v value.Value) error
}

// BlockImpl consumes a freshly pushed child context (already populated by
// Context.push with the block's own symbol table and childTypes) and
// produces the block's resulting value after its body has executed.
type BlockImpl func(ctx *Context) (value.Value, error)

// Symbol is the sum type every name in scope resolves to: a built-in or
// user-defined function, a mutable property, a block type, an immutable
// constant, a caller-overridable option, or a forward-declaration
// placeholder installed during definition-gathering.
type Symbol struct {
	Kind SymbolKind

	// FunctionSymbol
	FuncType FunctionType
	FuncImpl FunctionImpl

	// PropertySymbol
	PropType types.ValueType
	Prop     PropertyImpl

	// BlockSymbol
	Block     *BlockType
	BlockImpl BlockImpl

	// ConstantSymbol / OptionSymbol
	Value value.Value

	// PlaceholderSymbol
	PlaceholderType types.ValueType

	// User-defined Function/Block symbols additionally carry the
	// declaration-site closure: the body to walk, the lexical symbol table
	// captured at `define`, and the source URL for diagnostics.
	// UserParamTypes holds the static pass's inferred type per parameter,
	// positionally aligned with UserParams; it feeds argument diagnostics
	// only, never a runtime rejection the evaluator wouldn't make itself.
	UserParams     []string
	UserParamTypes []types.ValueType
	UserBody       *ast.Block
	DeclSymbols    *Table
	DeclSource     string
}

// ConstantOf wraps v as a Constant symbol.
func ConstantOf(v value.Value) Symbol { return Symbol{Kind: ConstantSymbol, Value: v} }

// OptionOf wraps v as an Option symbol (a caller-overridable default).
func OptionOf(v value.Value) Symbol { return Symbol{Kind: OptionSymbol, Value: v} }

// PlaceholderOf builds a forward-declaration placeholder of type t.
func PlaceholderOf(t types.ValueType) Symbol {
	return Symbol{Kind: PlaceholderSymbol, PlaceholderType: t}
}

// StaticType reports the static type a symbol contributes at a reference
// site, used by the analyzer.
func (s Symbol) StaticType() types.ValueType {
	switch s.Kind {
	case FunctionSymbol:
		return s.FuncType.Return
	case PropertySymbol:
		return s.PropType
	case BlockSymbol:
		return s.Block.ReturnType
	case ConstantSymbol, OptionSymbol:
		return s.Value.Type()
	case PlaceholderSymbol:
		return s.PlaceholderType
	default:
		return types.AnyType
	}
}

// BlockType is `{ symbols, options, childTypes, returnType }`: the static
// shape of a block-kind. Named kinds (root, shape, group, builder, path,
// pathShape, user) are pre-built by composition in the stdlib package;
// individual built-ins (e.g. extrude) extend one with Extend.
type BlockType struct {
	Name       string
	Symbols    map[string]Symbol
	Options    map[string]types.ValueType
	ChildTypes types.ValueType
	ReturnType types.ValueType

	// ImplicitFields marks a block kind whose body turns unknown commands
	// into fields of the block's resulting value (the `object` block)
	// rather than raising UnknownSymbol.
	ImplicitFields bool
}

// Extend returns a copy of b with extra symbols/options merged in,
// implementing the "custom(...)" per-builtin extension mechanism (e.g.
// extrude adding the `along` option to the builder block type).
func (b *BlockType) Extend(name string, extraSymbols map[string]Symbol, extraOptions map[string]types.ValueType) *BlockType {
	out := &BlockType{
		Name:           name,
		Symbols:        make(map[string]Symbol, len(b.Symbols)+len(extraSymbols)),
		Options:        make(map[string]types.ValueType, len(b.Options)+len(extraOptions)),
		ChildTypes:     b.ChildTypes,
		ReturnType:     b.ReturnType,
		ImplicitFields: b.ImplicitFields,
	}
	for k, v := range b.Symbols {
		out.Symbols[k] = v
	}
	for k, v := range extraSymbols {
		out.Symbols[k] = v
	}
	for k, v := range b.Options {
		out.Options[k] = v
	}
	for k, v := range extraOptions {
		out.Options[k] = v
	}
	return out
}

// Compose merges bases left-to-right into a new named BlockType, following
// a `group = shape ⊕ childTransform ⊕ font` style composition notation:
// later bases win on name collisions.
func Compose(name string, bases ...*BlockType) *BlockType {
	out := &BlockType{
		Name:       name,
		Symbols:    map[string]Symbol{},
		Options:    map[string]types.ValueType{},
		ChildTypes: types.AnyType,
	}
	for _, b := range bases {
		for k, v := range b.Symbols {
			out.Symbols[k] = v
		}
		for k, v := range b.Options {
			out.Options[k] = v
		}
		if b.ChildTypes.Kind != types.Any {
			out.ChildTypes = b.ChildTypes
		}
		if b.ReturnType.Kind != types.Any {
			out.ReturnType = b.ReturnType
		}
	}
	return out
}

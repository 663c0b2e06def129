package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/value"
)

func csgBlock(kind string, groupType *evalctx.BlockType) evalctx.Symbol {
	return evalctx.Symbol{
		Kind:  evalctx.BlockSymbol,
		Block: groupType,
		BlockImpl: func(ctx *evalctx.Context) (value.Value, error) {
			return value.Value{Kind: value.Mesh, Geometry: meshNode(kind, ctx)}, nil
		},
	}
}

// CSG builds the boolean combinators: `union`, `difference`, `intersection`,
// `xor`, `stencil`. Each takes its operands as accumulated children, just
// like `group`; they differ only in which combinator the geometry
// collaborator applies to those children.
func CSG(groupType *evalctx.BlockType) map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"union":        csgBlock("union", groupType),
		"difference":   csgBlock("difference", groupType),
		"intersection": csgBlock("intersection", groupType),
		"xor":          csgBlock("xor", groupType),
		"stencil":      csgBlock("stencil", groupType),
	}
}

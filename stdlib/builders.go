package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

func builderBlock(kind string, builderType *evalctx.BlockType) evalctx.Symbol {
	return evalctx.Symbol{
		Kind:  evalctx.BlockSymbol,
		Block: builderType,
		BlockImpl: func(ctx *evalctx.Context) (value.Value, error) {
			return value.Value{Kind: value.Mesh, Geometry: meshNode(kind, ctx)}, nil
		},
	}
}

// Builders builds `lathe`, `loft`, `fill`, `hull`, and `extrude` (which
// extends the shared builder BlockType with an `along` option, an example
// of the `custom(...)` per-builtin extension mechanism).
func Builders(builderType *evalctx.BlockType) map[string]evalctx.Symbol {
	extrudeType := builderType.Extend("extrude", nil, map[string]types.ValueType{
		"along": types.PathType,
	})

	return map[string]evalctx.Symbol{
		"lathe":   builderBlock("lathe", builderType),
		"loft":    builderBlock("loft", builderType),
		"fill":    builderBlock("fill", builderType),
		"hull":    builderBlock("hull", builderType),
		"extrude": builderBlock("extrude", extrudeType),
	}
}

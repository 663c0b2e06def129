package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

func sceneBlock(kind string, blockType *evalctx.BlockType) evalctx.Symbol {
	return evalctx.Symbol{
		Kind:  evalctx.BlockSymbol,
		Block: blockType,
		BlockImpl: func(ctx *evalctx.Context) (value.Value, error) {
			return value.Value{Kind: value.Mesh, Geometry: meshNode(kind, ctx)}, nil
		},
	}
}

// SceneBlocks builds `group`, `camera`, `light`, `debug`, `mesh`: the
// container/scaffolding block kinds available in the group BlockType and
// the types composed from it (user, root).
func SceneBlocks(groupType *evalctx.BlockType) map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"group":  sceneBlock("group", groupType),
		"camera": sceneBlock("camera", groupType),
		"light":  sceneBlock("light", groupType),
		"debug":  sceneBlock("debug", groupType),
		"mesh":   sceneBlock("mesh", groupType),
	}
}

// ObjectBlock builds `object`: unlike the scene blocks above it produces a
// value, not geometry — an ordered name→value map assembled from the body's
// commands, each of which binds a field through the implicit-field path
// (`object { width 2 label "box" }`). The body still sees the function
// table so field expressions can call into it.
func ObjectBlock(functions *evalctx.BlockType) evalctx.Symbol {
	objectType := &evalctx.BlockType{
		Name:           "object",
		Symbols:        functions.Symbols,
		ChildTypes:     types.Void,
		ReturnType:     types.Object(map[string]types.ValueType{}),
		ImplicitFields: true,
	}
	return evalctx.Symbol{
		Kind:  evalctx.BlockSymbol,
		Block: objectType,
		BlockImpl: func(ctx *evalctx.Context) (value.Value, error) {
			fields := make(map[string]value.Value, len(ctx.FieldOrder))
			for _, name := range ctx.FieldOrder {
				if sym, ok := ctx.UserSymbols[name]; ok && sym.Kind == evalctx.OptionSymbol {
					fields[name] = sym.Value
				}
			}
			keys := append([]string(nil), ctx.FieldOrder...)
			return value.ObjectOf(keys, fields), nil
		},
	}
}

package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

func pathBlock(kind string, pathType *evalctx.BlockType) evalctx.Symbol {
	return evalctx.Symbol{
		Kind:  evalctx.BlockSymbol,
		Block: pathType,
		BlockImpl: func(ctx *evalctx.Context) (value.Value, error) {
			return value.Value{Kind: value.Path, Geometry: meshNode(kind, ctx)}, nil
		},
	}
}

// PathPrimitives builds `path`, `arc`, `circle`, `square`, `polygon`,
// `roundrect`, `text`, `svgpath`.
func PathPrimitives(pathType *evalctx.BlockType) map[string]evalctx.Symbol {
	syms := map[string]evalctx.Symbol{
		"path":      pathBlock("path", pathType),
		"arc":       pathBlock("arc", pathType),
		"circle":    pathBlock("circle", pathType),
		"square":    pathBlock("square", pathType),
		"polygon":   pathBlock("polygon", pathType),
		"roundrect": pathBlock("roundrect", pathType),
	}
	syms["text"] = evalctx.Symbol{
		Kind:     evalctx.FunctionSymbol,
		FuncType: evalctx.FunctionType{Param: types.StringType, Return: types.TextType},
		FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
			s, err := wantString("text", args(arg), 0)
			if err != nil {
				return value.Void, err
			}
			return value.Value{Kind: value.Text, TextString: s, TextFont: ctx.Font}, nil
		},
	}
	syms["svgpath"] = evalctx.Symbol{
		Kind:     evalctx.FunctionSymbol,
		FuncType: evalctx.FunctionType{Param: types.StringType, Return: types.PathType},
		FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
			s, err := wantString("svgpath", args(arg), 0)
			if err != nil {
				return value.Void, err
			}
			node := &geometry.Node{Kind: "svgpath", Transform: ctx.Transform, Options: map[string]any{"d": s}}
			return value.Value{Kind: value.Path, Geometry: node}, nil
		},
	}
	return syms
}

// Points builds `point` and `curve`: both push a PathPoint child into the
// enclosing path block rather than returning a standalone value.
func Points() map[string]evalctx.Symbol {
	point := func(name string, curved bool) evalctx.Symbol {
		return evalctx.Symbol{
			Kind:     evalctx.FunctionSymbol,
			FuncType: evalctx.FunctionType{Param: types.AnyType, Return: types.Void},
			FuncImpl: func(ctx *evalctx.Context, arg value.Value) (value.Value, error) {
				x, y, z, err := vectorArgs(name, args(arg))
				if err != nil {
					return value.Void, err
				}
				ctx.AddChild(value.Value{Kind: value.Point, X: x, Y: y, Z: z, Curved: curved})
				return value.Void, nil
			},
		}
	}
	return map[string]evalctx.Symbol{
		"point": point("point", false),
		"curve": point("curve", true),
	}
}

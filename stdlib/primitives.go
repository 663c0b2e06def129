package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/value"
)

// meshNode builds the geometry.Node a primitive/CSG/builder/path block
// produces from its context's current transform/material/name, leaving the
// actual mesh math to the external geometry collaborator. Point children
// (pushed by `point`/`curve` inside a path body) carry no Node of their
// own and are gathered into the result's Points instead.
func meshNode(kind string, ctx *evalctx.Context) *geometry.Node {
	children := make([]*geometry.Node, 0, len(ctx.Children))
	var points []geometry.PathPoint
	for _, c := range ctx.Children {
		if c.Kind == value.Point {
			points = append(points, geometry.PathPoint{
				Position: [3]float64{c.X, c.Y, c.Z},
				Curved:   c.Curved,
			})
			continue
		}
		if n, ok := c.Geometry.(*geometry.Node); ok {
			children = append(children, n)
		}
	}
	return &geometry.Node{
		Kind:      kind,
		Children:  children,
		Points:    points,
		Transform: ctx.Transform,
		Material:  ctx.Material,
		Name:      ctx.Name,
	}
}

// primitiveBlock builds a Symbol for a no-children shape primitive: the
// block's body may only set transform/material properties, and its result
// is a single mesh node of the given geometry kind.
func primitiveBlock(kind string, shapeType *evalctx.BlockType) evalctx.Symbol {
	return evalctx.Symbol{
		Kind:  evalctx.BlockSymbol,
		Block: shapeType,
		BlockImpl: func(ctx *evalctx.Context) (value.Value, error) {
			return value.Value{Kind: value.Mesh, Geometry: meshNode(kind, ctx)}, nil
		},
	}
}

// Primitives builds `cube`, `sphere`, `cone`, `cylinder`.
func Primitives(shapeType *evalctx.BlockType) map[string]evalctx.Symbol {
	return map[string]evalctx.Symbol{
		"cube":     primitiveBlock("cube", shapeType),
		"sphere":   primitiveBlock("sphere", shapeType),
		"cone":     primitiveBlock("cone", shapeType),
		"cylinder": primitiveBlock("cylinder", shapeType),
	}
}

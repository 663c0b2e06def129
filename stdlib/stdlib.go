package stdlib

import (
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/types"
)

func merge(maps ...map[string]evalctx.Symbol) map[string]evalctx.Symbol {
	out := map[string]evalctx.Symbol{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func addAll(bt *evalctx.BlockType, extra map[string]evalctx.Symbol) {
	for k, v := range extra {
		bt.Symbols[k] = v
	}
}

// Tables is the complete set of named BlockTypes the parser's static
// analyzer and the evaluator both dispatch against, produced by
// composition exactly as laid out in the standard library design:
// group = shape ⊕ childTransform ⊕ font; root = global ⊕ font ⊕ detail ⊕
// smoothing ⊕ material ⊕ childTransform ⊕ ...
type Tables struct {
	Shape     *evalctx.BlockType
	Group     *evalctx.BlockType
	Builder   *evalctx.BlockType
	Path      *evalctx.BlockType
	PathShape *evalctx.BlockType
	User      *evalctx.BlockType
	Root      *evalctx.BlockType
}

// Build constructs every named BlockType, bottom-up so each category's
// functions (which need a reference to the BlockType their own blocks
// belong to) can be supplied after the type they decorate already exists.
func Build() *Tables {
	functionsBase := &evalctx.BlockType{Symbols: merge(
		MathFunctions(),
		LinearAlgebraFunctions(),
		StringFunctions(),
		RandomnessFunctions(),
		LogicFunctions(),
		DebugFunctions(),
	)}
	transformBase := &evalctx.BlockType{Symbols: merge(TransformSetters(), TransformProperties())}
	materialBase := &evalctx.BlockType{Symbols: merge(MaterialSymbols(), ColorConstants())}

	shape := evalctx.Compose("shape", transformBase, materialBase, functionsBase)
	shape.ChildTypes = types.Void
	addAll(shape, Primitives(shape))

	group := evalctx.Compose("group", shape)
	group.ChildTypes = types.AnyType
	if font, ok := RootOnly()["font"]; ok {
		group.Symbols["font"] = font
	}
	addAll(group, SceneBlocks(group))
	addAll(group, CSG(group))
	group.Symbols["object"] = ObjectBlock(functionsBase)

	builder := evalctx.Compose("builder", shape)
	builder.ChildTypes = types.PathType
	addAll(builder, Builders(builder))

	path := evalctx.Compose("path", shape)
	path.ChildTypes = types.Union(types.PointType, types.PathType)
	addAll(path, PathPrimitives(path))
	addAll(path, Points())

	pathShape := evalctx.Compose("pathShape", path)
	pathShape.ChildTypes = types.PointType

	user := evalctx.Compose("user", group, builder, path)
	user.ChildTypes = types.AnyType
	user.Name = "user"

	root := evalctx.Compose("root", group, builder, path)
	root.ChildTypes = types.AnyType
	root.Name = "root"
	addAll(root, RootOnly())

	return &Tables{
		Shape:     shape,
		Group:     group,
		Builder:   builder,
		Path:      path,
		PathShape: pathShape,
		User:      user,
		Root:      root,
	}
}

// ByName returns the BlockType for one of the language's named kinds (root,
// shape, group, builder, path, pathShape, user), used when a user
// `define name { ... }` needs to start from a specific composed table.
func (t *Tables) ByName(name string) *evalctx.BlockType {
	switch name {
	case "shape":
		return t.Shape
	case "group":
		return t.Group
	case "builder":
		return t.Builder
	case "path":
		return t.Path
	case "pathShape":
		return t.PathShape
	case "user":
		return t.User
	case "root":
		return t.Root
	default:
		return nil
	}
}

package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/value"
)

func TestBuildComposesEveryNamedBlockType(t *testing.T) {
	tables := Build()
	for _, name := range []string{"shape", "group", "builder", "path", "pathShape", "user", "root"} {
		bt := tables.ByName(name)
		require.NotNil(t, bt, "missing block type %q", name)
		assert.NotEmpty(t, bt.Symbols, "%q has no symbols", name)
	}
}

func TestGroupInheritsShapeSymbolsAndAddsCSG(t *testing.T) {
	tables := Build()
	_, hasTranslate := tables.Group.Symbols["translate"]
	assert.True(t, hasTranslate, "group should inherit shape's transform setters")
	_, hasUnion := tables.Group.Symbols["union"]
	assert.True(t, hasUnion, "group should carry the CSG combinators")
}

func TestRootCarriesRootOnlySymbols(t *testing.T) {
	tables := Build()
	for _, name := range []string{"background", "detail", "smoothing", "font"} {
		_, ok := tables.Root.Symbols[name]
		assert.True(t, ok, "root should carry %q", name)
	}
	_, onShape := tables.Shape.Symbols["background"]
	assert.False(t, onShape, "background must not leak into shape")
}

func TestTranslateAccumulatesChildTransform(t *testing.T) {
	tables := Build()
	ctx := evalctx.NewRootContext("src", "", tables.Root, geometry.NewMemory())
	sym, ok := tables.Root.Symbols["translate"]
	require.True(t, ok)

	_, err := sym.FuncImpl(ctx, value.TupleOfRaw(value.NumberOf(1), value.NumberOf(2), value.NumberOf(3)))
	require.NoError(t, err)
	_, err = sym.FuncImpl(ctx, value.TupleOfRaw(value.NumberOf(1), value.NumberOf(0), value.NumberOf(0)))
	require.NoError(t, err)

	assert.Equal(t, [3]float64{2, 2, 3}, ctx.ChildTransform.Position)
}

func TestAddChildAppliesChildTransformToNestedPrimitive(t *testing.T) {
	tables := Build()
	ctx := evalctx.NewRootContext("src", "", tables.Root, geometry.NewMemory())
	sym, ok := tables.Root.Symbols["translate"]
	require.True(t, ok)
	_, err := sym.FuncImpl(ctx, value.TupleOfRaw(value.NumberOf(1), value.NumberOf(2), value.NumberOf(3)))
	require.NoError(t, err)

	child := ctx.Push(tables.Shape)
	cube, ok := tables.Shape.Symbols["cube"]
	require.True(t, ok)
	v, err := cube.BlockImpl(child)
	require.NoError(t, err)

	ctx.AddChild(v)

	require.Len(t, ctx.Children, 1)
	node, ok := ctx.Children[0].Geometry.(*geometry.Node)
	require.True(t, ok)
	assert.Equal(t, [3]float64{1, 2, 3}, node.Transform.Position, "nested cube should be translated by the enclosing block's accumulated childTransform")
}

func TestOpacitySettterMultipliesCumulative(t *testing.T) {
	tables := Build()
	ctx := evalctx.NewRootContext("src", "", tables.Root, geometry.NewMemory())
	ctx.Opacity = 1
	sym := tables.Root.Symbols["opacity"]

	_, err := sym.FuncImpl(ctx, value.NumberOf(0.5))
	require.NoError(t, err)
	assert.Equal(t, 0.5, ctx.Opacity)
}

func TestCubeBlockProducesMeshNode(t *testing.T) {
	tables := Build()
	ctx := evalctx.NewRootContext("src", "", tables.Root, geometry.NewMemory())
	ctx.Name = "box"
	child := ctx.Push(tables.Shape)

	sym, ok := tables.Shape.Symbols["cube"]
	require.True(t, ok)
	v, err := sym.BlockImpl(child)
	require.NoError(t, err)
	assert.Equal(t, value.Mesh, v.Kind)

	node, ok := v.Geometry.(*geometry.Node)
	require.True(t, ok)
	assert.Equal(t, "cube", node.Kind)
}

func TestRndIsDeterministicForAGivenSeed(t *testing.T) {
	tables := Build()
	ctx := evalctx.NewRootContext("src", "", tables.Root, geometry.NewMemory())
	seed := tables.Root.Symbols["seed"]
	rnd := tables.Root.Symbols["rnd"]

	_, err := seed.FuncImpl(ctx, value.NumberOf(7))
	require.NoError(t, err)
	a, err := rnd.FuncImpl(ctx, value.Void)
	require.NoError(t, err)

	_, err = seed.FuncImpl(ctx, value.NumberOf(7))
	require.NoError(t, err)
	b, err := rnd.FuncImpl(ctx, value.Void)
	require.NoError(t, err)

	assert.Equal(t, a.Num, b.Num)
}

func TestSeedReportsPreviousSeed(t *testing.T) {
	tables := Build()
	ctx := evalctx.NewRootContext("src", "", tables.Root, geometry.NewMemory())
	seed := tables.Root.Symbols["seed"]

	v, err := seed.FuncImpl(ctx, value.NumberOf(7))
	require.NoError(t, err)
	assert.Equal(t, 0.0, v.Num, "a fresh context starts seeded with 0")

	v, err = seed.FuncImpl(ctx, value.NumberOf(9))
	require.NoError(t, err)
	assert.Equal(t, 7.0, v.Num)
}

func TestPathBlockCarriesPointChildren(t *testing.T) {
	tables := Build()
	ctx := evalctx.NewRootContext("src", "", tables.Root, geometry.NewMemory())
	child := ctx.Push(tables.Path)

	point := tables.Path.Symbols["point"]
	curve := tables.Path.Symbols["curve"]
	_, err := point.FuncImpl(child, value.TupleOfRaw(value.NumberOf(0), value.NumberOf(0), value.NumberOf(0)))
	require.NoError(t, err)
	_, err = curve.FuncImpl(child, value.TupleOfRaw(value.NumberOf(1), value.NumberOf(1), value.NumberOf(0)))
	require.NoError(t, err)

	pathSym := tables.Path.Symbols["path"]
	v, err := pathSym.BlockImpl(child)
	require.NoError(t, err)

	node, ok := v.Geometry.(*geometry.Node)
	require.True(t, ok)
	require.Len(t, node.Points, 2)
	assert.Equal(t, [3]float64{1, 1, 0}, node.Points[1].Position)
	assert.True(t, node.Points[1].Curved)
}

func TestColorConstantsAreConstants(t *testing.T) {
	tables := Build()
	red, ok := tables.Shape.Symbols["red"]
	require.True(t, ok)
	assert.Equal(t, evalctx.ConstantSymbol, red.Kind)
	assert.Equal(t, value.Color, red.Value.Kind)
}

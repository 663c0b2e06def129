package evalctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

func namedNode(name string) *geometry.Node {
	return &geometry.Node{Kind: "mesh", Name: name}
}

func testRootType() *BlockType {
	return &BlockType{
		Name:       "root",
		Symbols:    map[string]Symbol{"cube": {Kind: BlockSymbol}},
		Options:    map[string]types.ValueType{},
		ChildTypes: types.AnyType,
	}
}

func TestPushInheritsAndResetsPerPolicy(t *testing.T) {
	root := NewRootContext("src", "", testRootType(), nil)
	root.Material.Opacity = 0.5
	root.Transform.Position = [3]float64{1, 2, 3}
	root.UserSymbols["mine"] = ConstantOf(value.NumberOf(42))

	shapeType := &BlockType{Name: "shape", Symbols: map[string]Symbol{"size": {Kind: PropertySymbol}}}
	child := root.Push(shapeType)

	assert.Equal(t, root.Source, child.Source)
	assert.Equal(t, 0.5, child.Opacity, "opacity seeded from parent material opacity")
	assert.Equal(t, [3]float64{0, 0, 0}, child.Transform.Position, "transform resets on push")
	assert.Equal(t, 1, child.StackDepth)
	_, ok := child.UserSymbols["mine"]
	assert.True(t, ok, "user symbols not shadowed by the new block kind survive")
}

func TestPushClearsUserSymbolsShadowedByBlockType(t *testing.T) {
	root := NewRootContext("src", "", testRootType(), nil)
	root.UserSymbols["cube"] = ConstantOf(value.NumberOf(1))

	child := root.Push(testRootType())
	sym, ok := child.Lookup("cube")
	require.True(t, ok)
	assert.Equal(t, BlockSymbol, sym.Kind, "built-in wins once the user override is shadowed by the pushed block type")
}

func TestPushDefinitionAdoptsCallerNameTransformOpacity(t *testing.T) {
	root := NewRootContext("src", "", testRootType(), nil)
	root.Name = "wheel"
	root.Transform.Position = [3]float64{5, 0, 0}
	root.Opacity = 0.25

	defType := &BlockType{Name: "user", Symbols: map[string]Symbol{}}
	child := root.PushDefinition(Table{}, defType)

	assert.Equal(t, "wheel", child.Name)
	assert.Equal(t, [3]float64{5, 0, 0}, child.Transform.Position)
	assert.Equal(t, 0.25, child.Opacity)
	assert.True(t, child.ChildTypes.Equal(types.AnyType))
}

func TestPushScopeRestoresUserSymbolsExceptPromotedOptions(t *testing.T) {
	ctx := NewRootContext("src", "", testRootType(), nil)
	ctx.UserSymbols["outer"] = ConstantOf(value.NumberOf(1))
	ctx.Options["width"] = true // declared as an option of the current block

	err := ctx.PushScope(func() error {
		ctx.UserSymbols["outer"] = ConstantOf(value.NumberOf(999)) // mutated inside scope
		ctx.UserSymbols["width"] = OptionOf(value.NumberOf(10))    // caller-overridden option
		ctx.UserSymbols["transient"] = ConstantOf(value.NumberOf(2))
		return nil
	})
	require.NoError(t, err)

	outer, ok := ctx.UserSymbols["outer"]
	require.True(t, ok)
	assert.Equal(t, 1.0, outer.Value.Num, "non-option mutation inside the scope is discarded on restore")

	width, ok := ctx.UserSymbols["width"]
	require.True(t, ok, "option binding declared in c.Options survives the pop")
	assert.Equal(t, 10.0, width.Value.Num)

	_, ok = ctx.UserSymbols["transient"]
	assert.False(t, ok, "a plain new binding introduced inside the scope does not leak out")
}

func TestPushScopeDoesNotRetainOptionNotDeclaredAsOption(t *testing.T) {
	ctx := NewRootContext("src", "", testRootType(), nil)
	// "height" is never added to ctx.Options.
	err := ctx.PushScope(func() error {
		ctx.UserSymbols["height"] = OptionOf(value.NumberOf(10))
		return nil
	})
	require.NoError(t, err)
	_, ok := ctx.UserSymbols["height"]
	assert.False(t, ok, "an Option binding not declared in c.Options does not survive the pop")
}

func TestEnterImportDetectsCycle(t *testing.T) {
	ctx := NewRootContext("src", "", testRootType(), nil)
	require.True(t, ctx.EnterImport("a.shape"))
	require.True(t, ctx.EnterImport("b.shape"))
	assert.False(t, ctx.EnterImport("a.shape"), "re-entering an in-progress import is a hard error")

	ctx.ExitImport()
	ctx.ExitImport()
	assert.True(t, ctx.EnterImport("a.shape"), "once the stack unwinds the same URL may be imported again")
}

func TestAddChildGathersNamedObjects(t *testing.T) {
	ctx := NewRootContext("src", "", testRootType(), nil)
	named := value.Value{Kind: value.Mesh, Geometry: namedNode("wheel")}
	ctx.AddChild(named)

	got, ok := ctx.NamedObjects["wheel"]
	require.True(t, ok)
	assert.Equal(t, value.Mesh, got.Kind)
}

func TestSetOpacityMultipliesCumulative(t *testing.T) {
	ctx := NewRootContext("src", "", testRootType(), nil)
	ctx.Opacity = 0.5
	ctx.SetOpacity(0.5)
	assert.Equal(t, 0.25, ctx.Opacity)
	assert.Equal(t, 0.25, ctx.Material.Opacity)
}

func TestBlockTypeComposePreservesChildTypesAndLaterWins(t *testing.T) {
	a := &BlockType{Symbols: map[string]Symbol{"x": ConstantOf(value.NumberOf(1))}, ChildTypes: types.NumberType}
	b := &BlockType{Symbols: map[string]Symbol{"x": ConstantOf(value.NumberOf(2))}}
	composed := Compose("shape", a, b)
	assert.Equal(t, 2.0, composed.Symbols["x"].Value.Num)
	assert.True(t, composed.ChildTypes.Equal(types.NumberType))
}

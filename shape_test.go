package shape_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelang/shape"
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/value"
)

// eval parses and evaluates src against a fresh Memory delegate pre-loaded
// with files.
func eval(t *testing.T, src string, files map[string]string) (*geometry.Scene, *geometry.Memory, error) {
	t.Helper()
	program, err := shape.Parse(src)
	require.NoError(t, err)

	mem := geometry.NewMemory()
	for name, content := range files {
		mem.Files[name] = content
	}
	scene, err := shape.Evaluate(program, "main.shape", mem, nil, nil)
	return scene, mem, err
}

// printedNumbers flattens every logged value into its numeric payload.
func printedNumbers(t *testing.T, mem *geometry.Memory) []float64 {
	t.Helper()
	var out []float64
	for _, log := range mem.Logs {
		for _, v := range log {
			val, ok := v.(value.Value)
			require.True(t, ok, "printed value should be a value.Value")
			require.Equal(t, value.Number, val.Kind)
			out = append(out, val.Num)
		}
	}
	return out
}

func TestParseIsDeterministicAndIdempotent(t *testing.T) {
	src := "define f(x) { x * 2 }\nfor i in 1 to 3 {\n  cube { size f(i) }\n}"
	a, err := shape.Parse(src)
	require.NoError(t, err)
	b, err := shape.Parse(src)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b))
}

func TestParseLexicalErrorIsClassified(t *testing.T) {
	_, err := shape.Parse(`"unterminated`)
	require.Error(t, err)
	var le *diagnostics.LexerError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "unterminatedString", le.KindName)
}

func TestArithmeticPrecedence(t *testing.T) {
	_, mem, err := eval(t, "print 1 + 2 * 3\nprint (1 + 2) * 3", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 9}, printedNumbers(t, mem))
}

func TestForLoopRangeWithStep(t *testing.T) {
	_, mem, err := eval(t, "for i in 1 to 3 step 0.5 {\n  print i\n}", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1.5, 2, 2.5, 3}, printedNumbers(t, mem))
}

func TestNotEqualSpelling(t *testing.T) {
	_, mem, err := eval(t, "print 1 <> 2", nil)
	require.NoError(t, err)
	require.Len(t, mem.Logs, 1)
	got, ok := mem.Logs[0][0].(value.Value)
	require.True(t, ok)
	assert.True(t, got.Bool)
}

func TestUserFunctionReturnsTrailingExpression(t *testing.T) {
	_, mem, err := eval(t, "define twice(n) { n * 2 }\nprint twice(21)", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{42}, printedNumbers(t, mem))
}

func TestSpacedCallAfterPrefixOperator(t *testing.T) {
	_, mem, err := eval(t, "print -abs (-3)", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3}, printedNumbers(t, mem))
}

func TestTupleMemberAccess(t *testing.T) {
	_, mem, err := eval(t, "print (1 2 3).count\nprint (4 5 6).last", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, printedNumbers(t, mem))
}

func TestUserBlockOptionOverrideScalesPrimitive(t *testing.T) {
	src := "define widget {\n  option r 1\n  cube { size r }\n}\nwidget { r 3 }"
	scene, _, err := eval(t, src, nil)
	require.NoError(t, err)
	require.Len(t, scene.Children, 1)
	assert.Equal(t, [3]float64{3, 3, 3}, scene.Children[0].Transform.Scale)
}

func TestOptionOutsideBlockBodyIsUnknownSymbol(t *testing.T) {
	_, _, err := eval(t, "option x 1", nil)
	require.Error(t, err)
	var re *diagnostics.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, diagnostics.UnknownSymbol, re.Kind())
	assert.Contains(t, err.Error(), "option")
}

func TestForScopeDoesNotLeakDefinitions(t *testing.T) {
	_, _, err := eval(t, "for i in 1 to 2 {\n  define tmp 1\n}\nprint tmp", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmp")
}

func TestImportShapeRunsStatementsInCurrentContext(t *testing.T) {
	scene, _, err := eval(t, `import "lib.shape"`, map[string]string{
		"lib.shape": "cube { }",
	})
	require.NoError(t, err)
	require.Len(t, scene.Children, 1)
	assert.Equal(t, "cube", scene.Children[0].Kind)
}

func TestImportErrorWrapsInnerWithURL(t *testing.T) {
	_, _, err := eval(t, `import "broken.shape"`, map[string]string{
		"broken.shape": "mystery { }",
	})
	require.Error(t, err)
	var re *diagnostics.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, diagnostics.ImportErrorKind, re.Kind())
	assert.Equal(t, "broken.shape", re.ShapeFileURL("main.shape"))
	assert.Contains(t, re.UnderlyingError().Error(), "mystery")
}

func TestImportDataFormats(t *testing.T) {
	_, _, err := eval(t, "import \"notes.txt\"\nimport \"data.json\"\nimport \"data.yaml\"", map[string]string{
		"notes.txt": "hello",
		"data.json": `{"n": 1, "tags": ["a", "b"]}`,
		"data.yaml": "n: 1\ntags:\n  - a\n  - b\n",
	})
	require.NoError(t, err)
}

func TestImportBadJSONIsFileParsingError(t *testing.T) {
	_, _, err := eval(t, `import "data.json"`, map[string]string{
		"data.json": `{"n": `,
	})
	require.Error(t, err)
	var re *diagnostics.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, diagnostics.FileParsingError, re.Kind())
}

func TestImportScalarJSONRejectedBySchema(t *testing.T) {
	_, _, err := eval(t, `import "data.json"`, map[string]string{
		"data.json": `42`,
	})
	require.Error(t, err)
	var re *diagnostics.RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, diagnostics.FileParsingError, re.Kind())
}

func TestImportGeometryAttachesCurrentTransform(t *testing.T) {
	program, err := shape.Parse(`translate 1 0 0` + "\n" + `import "part.stl"`)
	require.NoError(t, err)

	mem := geometry.NewMemory()
	mem.GeometryFiles["part.stl"] = &geometry.Node{Kind: "mesh"}
	scene, err := shape.Evaluate(program, "main.shape", mem, nil, nil)
	require.NoError(t, err)
	require.Len(t, scene.Children, 1)
	assert.Equal(t, [3]float64{1, 0, 0}, scene.Children[0].Transform.Position)
}

func TestPathPointsReachTheGeometryNode(t *testing.T) {
	scene, _, err := eval(t, "path {\n  point 0 0 0\n  point 1 0 0\n  curve 1 1 0\n}", nil)
	require.NoError(t, err)
	require.Len(t, scene.Children, 1)
	node := scene.Children[0]
	assert.Equal(t, "path", node.Kind)
	require.Len(t, node.Points, 3)
	assert.Equal(t, [3]float64{1, 1, 0}, node.Points[2].Position)
	assert.True(t, node.Points[2].Curved)
	assert.False(t, node.Points[0].Curved)
}

func TestObjectBlockBuildsOrderedValue(t *testing.T) {
	src := "define data object {\n  width 2\n  label \"box\"\n}\nprint data.width"
	_, mem, err := eval(t, src, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, printedNumbers(t, mem))
}

func TestObjectIteratesFieldsInKeyOrder(t *testing.T) {
	src := "define data object {\n  b 2\n  a 1\n}\nfor pair in data {\n  print pair.second\n}"
	_, mem, err := eval(t, src, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, printedNumbers(t, mem), "object iteration is in lexicographic key order")
}

func TestCameraNodesAreFlattenedOutOfChildren(t *testing.T) {
	scene, _, err := eval(t, "camera { }\ncube { }", nil)
	require.NoError(t, err)
	require.Len(t, scene.Cameras, 1)
	require.Len(t, scene.Children, 1)
	assert.Equal(t, "cube", scene.Children[0].Kind)
}

func TestBackgroundIsRootProperty(t *testing.T) {
	scene, _, err := eval(t, "background 1 0 0", nil)
	require.NoError(t, err)
	assert.Equal(t, [4]float64{1, 0, 0, 1}, scene.Background)
}

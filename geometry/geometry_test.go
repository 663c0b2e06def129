package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResolveURLRelative(t *testing.T) {
	m := NewMemory()
	m.Files["models/wheel.shape"] = "cube"

	resolved, err := m.ResolveURL("wheel.shape", "models/car.shape")
	require.NoError(t, err)
	assert.Equal(t, "models/wheel.shape", resolved)
}

func TestMemoryResolveURLAbsolute(t *testing.T) {
	m := NewMemory()
	resolved, err := m.ResolveURL("/lib/std.shape", "models/car.shape")
	require.NoError(t, err)
	assert.Equal(t, "/lib/std.shape", resolved)
}

func TestMemoryImportGeometryNotFound(t *testing.T) {
	m := NewMemory()
	_, ok, err := m.ImportGeometry("missing.stl")
	assert.False(t, ok)
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "not_found", gerr.Kind)
}

func TestMemoryImportGeometryRegistered(t *testing.T) {
	m := NewMemory()
	want := &Node{Kind: "mesh"}
	m.GeometryFiles["part.stl"] = want

	got, ok, err := m.ImportGeometry("part.stl")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, want, got)
}

func TestCachePutGetInvalidate(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("https://example.com/a.shape")
	assert.False(t, ok)

	c.Put("https://example.com/a.shape", &Node{Kind: "cube"}, []byte("cube"))
	entry, ok := c.Get("https://example.com/a.shape")
	require.True(t, ok)
	assert.Equal(t, "cube", entry.Node.Kind)
	assert.Equal(t, 1, c.Len())

	c.Invalidate("https://example.com/a.shape")
	_, ok = c.Get("https://example.com/a.shape")
	assert.False(t, ok)
}

func TestCacheKeyDoesNotLeakRawURLOnCollisionFreeBasis(t *testing.T) {
	k1 := KeyForURL("file:///home/alice/project/lib.shape")
	k2 := KeyForURL("file:///home/bob/project/lib.shape")
	assert.NotEqual(t, k1, k2)
	assert.NotContains(t, k1.String(), "alice")
}

func TestEncodeDecodeCacheRoundTrips(t *testing.T) {
	c := NewCache()
	c.Put("a.shape", &Node{Kind: "sphere", Name: "ball"}, []byte("sphere"))
	c.Put("b.json", nil, []byte(`{"x":1}`))

	data, err := EncodeCache(c)
	require.NoError(t, err)

	restored, err := DecodeCache(data)
	require.NoError(t, err)
	assert.Equal(t, c.Len(), restored.Len())

	entry, ok := restored.Get("a.shape")
	require.True(t, ok)
	assert.Equal(t, "sphere", entry.Node.Kind)
	assert.Equal(t, "ball", entry.Node.Name)

	entry2, ok := restored.Get("b.json")
	require.True(t, ok)
	assert.Nil(t, entry2.Node)
	assert.Equal(t, `{"x":1}`, string(entry2.Raw))
}

func TestIdentityTransformIsNeutral(t *testing.T) {
	tr := IdentityTransform()
	assert.Equal(t, [3]float64{0, 0, 0}, tr.Position)
	assert.Equal(t, [3]float64{1, 1, 1}, tr.Scale)
}

func TestDefaultMaterialIsOpaqueWhite(t *testing.T) {
	m := DefaultMaterial()
	assert.Equal(t, [4]float64{1, 1, 1, 1}, m.Color)
	assert.Equal(t, 1.0, m.Opacity)
}

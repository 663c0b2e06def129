package members_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapelang/shape/members"
	"github.com/shapelang/shape/types"
	"github.com/shapelang/shape/value"
)

func TestVectorMembers(t *testing.T) {
	v := value.VectorOf(1, 2, 3)
	for name, want := range map[string]float64{"x": 1, "y": 2, "z": 3} {
		got, ok := members.Lookup(v, name)
		require.True(t, ok, "vector should have %q", name)
		assert.Equal(t, want, got.Num)
	}
	_, ok := members.Lookup(v, "width")
	assert.True(t, ok, "size spellings resolve on vectors too")
}

func TestSizeMembers(t *testing.T) {
	s := value.SizeOf(4, 5, 6)
	got, ok := members.Lookup(s, "width")
	require.True(t, ok)
	assert.Equal(t, 4.0, got.Num)
	got, ok = members.Lookup(s, "depth")
	require.True(t, ok)
	assert.Equal(t, 6.0, got.Num)
}

func TestRotationMembers(t *testing.T) {
	r := value.RotationOf(0.5, 1, 1.5)
	got, ok := members.Lookup(r, "pitch")
	require.True(t, ok)
	assert.Equal(t, 1.5, got.Num)
}

func TestTupleOrdinalsCountAndSlices(t *testing.T) {
	tup := value.TupleOfRaw(value.NumberOf(10), value.NumberOf(20), value.NumberOf(30))

	first, ok := members.Lookup(tup, "first")
	require.True(t, ok)
	assert.Equal(t, 10.0, first.Num)

	second, ok := members.Lookup(tup, "second")
	require.True(t, ok)
	assert.Equal(t, 20.0, second.Num)

	last, ok := members.Lookup(tup, "last")
	require.True(t, ok)
	assert.Equal(t, 30.0, last.Num)

	count, ok := members.Lookup(tup, "count")
	require.True(t, ok)
	assert.Equal(t, 3.0, count.Num)

	rest, ok := members.Lookup(tup, "allButFirst")
	require.True(t, ok)
	require.Len(t, rest.Elements, 2)
	assert.Equal(t, 20.0, rest.Elements[0].Num)

	head, ok := members.Lookup(tup, "allButLast")
	require.True(t, ok)
	require.Len(t, head.Elements, 2)
}

func TestStringMembers(t *testing.T) {
	s := value.StringOf("one two\nthree")

	lines, ok := members.Lookup(s, "lines")
	require.True(t, ok)
	require.Len(t, lines.Elements, 2)
	assert.Equal(t, "one two", lines.Elements[0].Str)

	words, ok := members.Lookup(s, "words")
	require.True(t, ok)
	assert.Len(t, words.Elements, 3)

	chars, ok := members.Lookup(s, "characters")
	require.True(t, ok)
	assert.Len(t, chars.Elements, 13)

	up, ok := members.Lookup(s, "uppercased")
	require.True(t, ok)
	assert.Equal(t, "ONE TWO\nTHREE", up.Str)
}

func TestObjectMembersAreItsFields(t *testing.T) {
	obj := value.ObjectOf([]string{"radius"}, map[string]value.Value{"radius": value.NumberOf(2)})
	got, ok := members.Lookup(obj, "radius")
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Num)

	_, ok = members.Lookup(obj, "missing")
	assert.False(t, ok)
}

func TestStaticTableAgreesWithRuntimeLookupForVectors(t *testing.T) {
	table, names := members.StaticTable(types.VectorType)
	v := value.VectorOf(1, 2, 3)
	for _, name := range names {
		runtime, ok := members.Lookup(v, name)
		require.True(t, ok, "static member %q must resolve at runtime", name)
		assert.True(t, runtime.Type().SubtypeOf(table[name]),
			"runtime value of %q must inhabit its static type", name)
	}
}

func TestStaticTableTupleOrdinalTypes(t *testing.T) {
	table, _ := members.StaticTable(types.Tuple(types.NumberType, types.StringType))
	assert.True(t, table["first"].Equal(types.NumberType))
	assert.True(t, table["second"].Equal(types.StringType))
	assert.True(t, table["last"].Equal(types.StringType))
}

func TestUnknownMemberOnNumberHasEmptyTable(t *testing.T) {
	_, names := members.StaticTable(types.NumberType)
	assert.Empty(t, names)
	_, ok := members.Lookup(value.NumberOf(1), "x")
	assert.False(t, ok)
}

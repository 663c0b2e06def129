package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEverythingIsSubtypeOfAny(t *testing.T) {
	for _, typ := range []ValueType{NumberType, StringType, MeshType, List(NumberType), Tuple(NumberType), Void} {
		assert.True(t, typ.SubtypeOf(AnyType), "%s <= any", typ)
	}
	assert.False(t, AnyType.SubtypeOf(NumberType))
}

func TestUnionSubtypingBothDirections(t *testing.T) {
	u := Union(NumberType, StringType)
	assert.True(t, NumberType.SubtypeOf(u), "T <= union(R) when some member accepts T")
	assert.True(t, StringType.SubtypeOf(u))
	assert.False(t, BooleanType.SubtypeOf(u))

	assert.True(t, u.SubtypeOf(AnyType), "union(L) <= R when every member fits")
	assert.False(t, u.SubtypeOf(NumberType))
}

func TestListCovariance(t *testing.T) {
	assert.True(t, List(NumberType).SubtypeOf(List(NumberType)))
	assert.True(t, List(NumberType).SubtypeOf(List(AnyType)))
	assert.False(t, List(AnyType).SubtypeOf(List(NumberType)))
}

func TestTuplePointwiseSubtyping(t *testing.T) {
	assert.True(t, Tuple(NumberType, StringType).SubtypeOf(Tuple(NumberType, StringType)))
	assert.True(t, Tuple(NumberType, StringType).SubtypeOf(Tuple(AnyType, AnyType)))
	assert.False(t, Tuple(NumberType).SubtypeOf(Tuple(NumberType, NumberType)), "length must match")
}

func TestTupleIsSubtypeOfListWhenAllElementsFit(t *testing.T) {
	assert.True(t, Tuple(NumberType, NumberType).SubtypeOf(List(NumberType)))
	assert.False(t, Tuple(NumberType, StringType).SubtypeOf(List(NumberType)))
	assert.True(t, Void.SubtypeOf(List(NumberType)), "the empty tuple fits any list")
}

func TestUnionCanonicalizationCollapsesSingleton(t *testing.T) {
	got := Union(NumberType)
	assert.True(t, got.Equal(NumberType))
}

func TestUnionCanonicalizationRemovesSubsumedMembers(t *testing.T) {
	got := Union(NumberType, AnyType)
	assert.True(t, got.Equal(AnyType), "number is subsumed by any")
}

func TestUnionFlattensNestedUnions(t *testing.T) {
	got := Union(Union(NumberType, StringType), BooleanType)
	assert.Equal(t, UnionT, got.Kind)
	assert.Len(t, got.Members, 3)
}

func TestUnionDeduplicatesEqualMembers(t *testing.T) {
	got := Union(NumberType, NumberType)
	assert.True(t, got.Equal(NumberType))
}

func TestVoidIsEmptyTuple(t *testing.T) {
	assert.True(t, Void.IsVoid())
	assert.Equal(t, "void", Void.String())
	assert.False(t, Tuple(NumberType).IsVoid())
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "list(number)", List(NumberType).String())
	assert.Equal(t, "tuple(number, string)", Tuple(NumberType, StringType).String())
	assert.Equal(t, "number | string", Union(NumberType, StringType).String())
}

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextValuesWithDifferentStringsAreUnequal(t *testing.T) {
	a := Value{Kind: Text, TextString: "hello", TextFont: "default"}
	b := Value{Kind: Text, TextString: "goodbye", TextFont: "default"}
	assert.False(t, a.Equal(b), "Text values with different TextString should not be equal")
}

func TestTextValuesWithSameFieldsAreEqual(t *testing.T) {
	color := ColorOf(1, 0, 0, 1)
	a := Value{Kind: Text, TextString: "hello", TextFont: "default", TextColor: &color, TextLineSpacing: 1}
	b := Value{Kind: Text, TextString: "hello", TextFont: "default", TextColor: &color, TextLineSpacing: 1}
	assert.True(t, a.Equal(b), "Text values with identical fields should be equal")
}

func TestPointValuesWithDifferentCoordinatesAreUnequal(t *testing.T) {
	a := Value{Kind: Point, X: 0, Y: 0, Z: 0}
	b := Value{Kind: Point, X: 1, Y: 0, Z: 0}
	assert.False(t, a.Equal(b), "Point values with different coordinates should not be equal")
}

func TestPointValuesWithSameCoordinatesAreEqual(t *testing.T) {
	a := Value{Kind: Point, X: 1, Y: 2, Z: 3, Curved: true}
	b := Value{Kind: Point, X: 1, Y: 2, Z: 3, Curved: true}
	assert.True(t, a.Equal(b), "Point values with identical coordinates should be equal")
}

func TestPointAndCurvedPointAreDistinct(t *testing.T) {
	a := Value{Kind: Point, X: 1, Y: 2, Z: 3, Curved: false}
	b := Value{Kind: Point, X: 1, Y: 2, Z: 3, Curved: true}
	assert.False(t, a.Equal(b), "Curved should participate in Point equality")
}

package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestReseedRestartsSequence(t *testing.T) {
	s := New(7)
	first := s.Next()
	s.Next()
	s.Reseed(7)
	assert.Equal(t, first, s.Next())
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a, b := New(1), New(2)
	assert.NotEqual(t, a.Next(), b.Next())
}

func TestSeedAccessorTracksReseed(t *testing.T) {
	s := New(3)
	assert.Equal(t, 3.0, s.Seed())
	s.Reseed(9)
	assert.Equal(t, 9.0, s.Seed())
}

func TestFloat64StaysInUnitInterval(t *testing.T) {
	s := New(0)
	for i := 0; i < 1000; i++ {
		f := s.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

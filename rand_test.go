package blobmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPRNGDeterministicGivenSameSeed(t *testing.T) {
	a := NewDefaultPRNG(42)
	b := NewDefaultPRNG(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.UniformReal(), b.UniformReal())
	}
}

func TestDefaultPRNGUniformRealInOpenInterval(t *testing.T) {
	r := NewDefaultPRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.UniformReal()
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestDefaultPRNGUniformIntInclusiveBounds(t *testing.T) {
	r := NewDefaultPRNG(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := r.UniformInt(3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	assert.True(t, seen[3])
	assert.True(t, seen[4])
	assert.True(t, seen[5])
}

func TestDefaultPRNGUniformIntSingletonRange(t *testing.T) {
	r := NewDefaultPRNG(1)
	assert.Equal(t, 4, r.UniformInt(4, 4))
}

func TestDefaultPRNGUniformIntPanicsOnInvertedRange(t *testing.T) {
	r := NewDefaultPRNG(1)
	assert.Panics(t, func() { r.UniformInt(5, 3) })
}

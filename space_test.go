package blobmc

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxPanicsOnNonPositiveEdge(t *testing.T) {
	assert.Panics(t, func() { NewBox(0) })
	assert.Panics(t, func() { NewBox(-1) })
}

func TestWrapIsIdempotentAndInRange(t *testing.T) {
	b := NewBox(10)
	r := b.HalfEdge()

	pts := []mgl64.Vec3{
		{0, 0, 0},
		{4.9, -4.9, 0},
		{12, -13, 14},
		{-5, 5, -5},
	}
	for _, p := range pts {
		w := b.Wrap(p)
		ww := b.Wrap(w)
		require.InDeltaSlice(t, []float64{w[0], w[1], w[2]}, []float64{ww[0], ww[1], ww[2]}, 1e-9)
		for i := 0; i < 3; i++ {
			assert.GreaterOrEqualf(t, w[i], -r, "component %d", i)
			assert.Lessf(t, w[i], r, "component %d", i)
		}
	}
}

func TestDiffBoundedByRSqrt3(t *testing.T) {
	b := NewBox(10)
	r := b.HalfEdge()
	p1 := b.Wrap(mgl64.Vec3{4.9, 4.9, 4.9})
	p2 := b.Wrap(mgl64.Vec3{-4.9, -4.9, -4.9})

	d := b.Diff(p1, p2)
	assert.LessOrEqual(t, d.Len(), r*math.Sqrt(3)+1e-9)
}

func TestDistSymmetricAndNonNegative(t *testing.T) {
	b := NewBox(10)
	p1 := mgl64.Vec3{1, 2, 3}
	p2 := mgl64.Vec3{-4, 0, 2}

	d12 := b.Dist(p1, p2)
	d21 := b.Dist(p2, p1)
	assert.InDelta(t, d12, d21, 1e-12)
	assert.GreaterOrEqual(t, d12, 0.0)
}

func TestUnwrapReconstructsStraddlingMonomer(t *testing.T) {
	b := NewBox(10)
	ref := mgl64.Vec3{4.9, 0, 0}
	p := b.Wrap(mgl64.Vec3{5.1, 0, 0})

	unwrapped := b.Unwrap(ref, p)
	assert.InDelta(t, 5.1, unwrapped[0], 1e-9)
}

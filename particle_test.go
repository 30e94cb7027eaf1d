package blobmc

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateCommitRevertRoundTrip(t *testing.T) {
	box := NewBox(100)
	p := NewSimple(0, 0, box, mgl64.Vec3{1, 2, 3})

	start := p.Position(Current)

	p.Translate(mgl64.Vec3{1, -1, 2})
	p.Commit()
	p.Translate(mgl64.Vec3{-1, 1, -2})
	p.Commit()

	end := p.Position(Current)
	require.InDeltaSlice(t, []float64{start[0], start[1], start[2]}, []float64{end[0], end[1], end[2]}, 1e-9)
}

func TestRevertDiscardsTrialState(t *testing.T) {
	box := NewBox(100)
	p := NewSimple(0, 0, box, mgl64.Vec3{0, 0, 0})

	p.Translate(mgl64.Vec3{5, 5, 5})
	p.Revert()

	cur := p.Position(Current)
	trial := p.Position(Trial)
	assert.InDeltaSlice(t, []float64{cur[0], cur[1], cur[2]}, []float64{trial[0], trial[1], trial[2]}, 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0, 0}, []float64{cur[0], cur[1], cur[2]}, 1e-9)
}

func TestRotateByRThenTransposeReturnsToStart(t *testing.T) {
	box := NewBox(100)
	p := NewPatchy(0, 0, box, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, 1})

	centre := mgl64.Vec3{0, 0, 0}
	r := RotMat(mgl64.Vec3{0, 1, 0}, math.Pi/3)
	rt := r.Transpose()

	p.Rotate(centre, r)
	p.Commit()
	p.Rotate(centre, rt)
	p.Commit()

	pos := p.Position(Current)
	assert.InDelta(t, 2.0, pos[0], 1e-9)
	assert.InDelta(t, 0.0, pos[1], 1e-9)
	assert.InDelta(t, 0.0, pos[2], 1e-9)

	norm := p.Orientation(Current).PatchNorm
	assert.InDelta(t, 1.0, norm.Len(), 1e-9)
}

func TestRotationPreservesOwnedVectorNorms(t *testing.T) {
	box := NewBox(100)
	p := NewDoubleOrientedPatchy(0, 0, box,
		mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 1, 0}.Normalize())

	r := RotMat(mgl64.Vec3{1, 1, 1}, 1.234)
	p.Rotate(mgl64.Vec3{0, 0, 0}, r)

	o := p.Orientation(Trial)
	assert.InDelta(t, 1.0, o.PatchNorm.Len(), 1e-9)
	assert.InDelta(t, 1.0, o.PatchOrient.Len(), 1e-9)
	assert.InDelta(t, 1.0, o.PatchOrient2.Len(), 1e-9)
}

func TestNewParticleRejectsUnknownForm(t *testing.T) {
	box := NewBox(10)
	_, err := NewParticle(ParticleForm(99), 0, 0, box, mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{})
	require.Error(t, err)
}

package blobmc

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestRandomMonomerStaysWithinBounds(t *testing.T) {
	box := NewBox(10)
	monomers := make([]*Monomer, 5)
	for i := range monomers {
		monomers[i] = NewMonomer(i, box, 1, []Particle{NewSimple(0, 0, box, mgl64.Vec3{float64(i), 0, 0})})
	}
	conf := NewConfiguration(box, monomers)
	rng := NewDefaultPRNG(99)

	for i := 0; i < 200; i++ {
		m := conf.RandomMonomer(rng)
		assert.Contains(t, monomers, m)
	}
}

func TestMonomerByIndexLooksUpByStableIndex(t *testing.T) {
	box := NewBox(10)
	m0 := NewMonomer(0, box, 1, []Particle{NewSimple(0, 0, box, mgl64.Vec3{})})
	m5 := NewMonomer(5, box, 1, []Particle{NewSimple(0, 0, box, mgl64.Vec3{1, 1, 1})})
	conf := NewConfiguration(box, []*Monomer{m0, m5})

	assert.Same(t, m5, conf.MonomerByIndex(5))
	assert.Same(t, m0, conf.MonomerByIndex(0))
	assert.Nil(t, conf.MonomerByIndex(99))
}

// Two two-particle monomers at 3 apart, translated in opposite directions
// across the periodic boundary: the particles end up 8 apart in raw
// coordinates but 2 apart under the minimum image.
func TestTranslatedMonomersMeasureMinimumImageDistance(t *testing.T) {
	box := NewBox(10)
	m1 := NewMonomer(0, box, 1, []Particle{
		NewSimple(0, 0, box, mgl64.Vec3{0, 0, 0}),
		NewSimple(1, 0, box, mgl64.Vec3{0, 1, 0}),
	})
	m2 := NewMonomer(1, box, 1, []Particle{
		NewSimple(0, 0, box, mgl64.Vec3{3, 0, 0}),
		NewSimple(1, 0, box, mgl64.Vec3{3, 1, 0}),
	})
	conf := NewConfiguration(box, []*Monomer{m1, m2})

	p1 := m1.Particle(0).Position(Current)
	p2 := m2.Particle(0).Position(Current)
	assert.Equal(t, 3.0, conf.Dist(p1, p2))

	m1.Translate(mgl64.Vec3{-4, 0, 0})
	m1.Commit()
	m2.Translate(mgl64.Vec3{1, 0, 0})
	m2.Commit()

	p1 = m1.Particle(0).Position(Current)
	p2 = m2.Particle(0).Position(Current)
	assert.InDelta(t, 2.0, conf.Dist(p1, p2), 1e-12)
}

func TestConfigurationDiffAndDistDelegateToBox(t *testing.T) {
	box := NewBox(10)
	conf := NewConfiguration(box, nil)
	p1 := mgl64.Vec3{1, 0, 0}
	p2 := mgl64.Vec3{-1, 0, 0}

	assert.Equal(t, box.Diff(p1, p2), conf.Diff(p1, p2))
	assert.Equal(t, box.Dist(p1, p2), conf.Dist(p1, p2))
}

package blobmc

import "github.com/go-gl/mathgl/mgl64"

// Monomer is a rigid composite of particles sharing an integer conformer
// label, double-buffered the same way its particles are.
type Monomer struct {
	index     int
	box       *Box
	particles []Particle

	curConformer   int
	trialConformer int

	radius float64 // cached from the current state at construction
}

// NewMonomer builds a monomer from its ordered particles. conformer must be
// +1 or -1. The bounding radius is cached immediately from the particles'
// current positions.
func NewMonomer(index int, box *Box, conformer int, particles []Particle) *Monomer {
	if conformer != 1 && conformer != -1 {
		panic("blobmc: monomer conformer must be +1 or -1")
	}
	m := &Monomer{
		index: index, box: box, particles: particles,
		curConformer: conformer, trialConformer: conformer,
	}
	c := m.Center(Current)
	var r float64
	for _, p := range particles {
		if d := box.Dist(p.Position(Current), c); d > r {
			r = d
		}
	}
	m.radius = r
	return m
}

func (m *Monomer) Index() int                  { return m.index }
func (m *Monomer) Particles() []Particle       { return m.particles }
func (m *Monomer) Radius() float64             { return m.radius }
func (m *Monomer) NumParticles() int           { return len(m.particles) }
func (m *Monomer) Particle(i int) Particle     { return m.particles[i] }

func (m *Monomer) Conformer(cs CoordSet) int {
	if cs == Current {
		return m.curConformer
	}
	return m.trialConformer
}

// Center walks the particles in order, unwrapping each successive position
// relative to the previous one so that a monomer straddling the periodic
// boundary still gets a single coherent centre, then wraps the mean back
// into the box.
func (m *Monomer) Center(cs CoordSet) mgl64.Vec3 {
	if len(m.particles) == 0 {
		return mgl64.Vec3{}
	}
	prev := m.particles[0].Position(cs)
	sum := prev
	for _, p := range m.particles[1:] {
		pos := m.box.Unwrap(prev, p.Position(cs))
		sum = sum.Add(pos)
		prev = pos
	}
	mean := sum.Mul(1.0 / float64(len(m.particles)))
	return m.box.Wrap(mean)
}

// Translate applies d to the trial position of every particle.
func (m *Monomer) Translate(d mgl64.Vec3) {
	for _, p := range m.particles {
		p.Translate(d)
	}
}

// Unwrap shifts every particle's trial position by the same offset so that
// the monomer's trial centre becomes the image of itself closest to ref.
// Must be called before Rotate whenever the monomer may straddle the
// periodic boundary; Rotate calls it internally.
func (m *Monomer) Unwrap(ref mgl64.Vec3) {
	c := m.Center(Trial)
	unwrapped := m.box.Unwrap(ref, c)
	shift := unwrapped.Sub(c)
	if shift.Len() == 0 {
		return
	}
	for _, p := range m.particles {
		p.ShiftTrial(shift)
	}
}

// Rotate unwraps the monomer relative to centre, then rotates every
// particle's trial position and owned direction vectors about centre.
func (m *Monomer) Rotate(centre mgl64.Vec3, r mgl64.Mat3) {
	m.Unwrap(centre)
	for _, p := range m.particles {
		p.Rotate(centre, r)
	}
}

// FlipConformation negates the trial conformer. Callers pair this with a
// reflection Rotate that realises the geometric flip.
func (m *Monomer) FlipConformation() {
	m.trialConformer = -m.curConformer
}

// Commit publishes every particle's trial state as current, and the trial
// conformer as current.
func (m *Monomer) Commit() {
	for _, p := range m.particles {
		p.Commit()
	}
	m.curConformer = m.trialConformer
}

// Revert discards trial state, resetting it to current.
func (m *Monomer) Revert() {
	for _, p := range m.particles {
		p.Revert()
	}
	m.trialConformer = m.curConformer
}

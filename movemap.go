package blobmc

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Movemap is a stateful transformation generator. Generate samples a
// transformation parameterised by the monomer passed to it; Apply then
// applies that same stored transformation to any monomer, including ones
// other than the one Generate was called with. VMMC relies on this: a
// single generated transform is reused, rigidly, across every monomer
// joining the cluster.
type Movemap interface {
	Generate(m *Monomer, rng PRNG)
	Apply(m *Monomer)
}

// randomDisplacement returns max*(u-0.5) for u drawn uniform from (0,1): a
// range of width max centred on zero, not 2*max.
func randomDisplacement(rng PRNG, max float64) float64 {
	return max * (rng.UniformReal() - 0.5)
}

// marsaglia draws a uniform point on the unit sphere via Marsaglia's
// rejection method: sample (u,v) uniform in the unit disk, then map to a
// sphere point.
func marsaglia(rng PRNG) mgl64.Vec3 {
	for {
		u := 2*rng.UniformReal() - 1
		v := 2*rng.UniformReal() - 1
		s := u*u + v*v
		if s < 1 {
			root := math.Sqrt(1 - s)
			return mgl64.Vec3{2 * u * root, 2 * v * root, 1 - 2*s}
		}
	}
}

func quatToMat3(q mgl64.Quat) mgl64.Mat3 {
	m4 := q.Mat4()
	return mgl64.Mat3{
		m4[0], m4[1], m4[2],
		m4[4], m4[5], m4[6],
		m4[8], m4[9], m4[10],
	}
}

// RotMat builds the rotation matrix for angle theta about axis, via a
// quaternion built fresh from the axis-angle pair.
func RotMat(axis mgl64.Vec3, theta float64) mgl64.Mat3 {
	return quatToMat3(mgl64.QuatRotate(theta, axis.Normalize()))
}

// householder builds the reflection matrix I - 2*n*n^T for unit normal n.
func householder(n mgl64.Vec3) mgl64.Mat3 {
	n = n.Normalize()
	outer := mgl64.Mat3{
		n[0] * n[0], n[1] * n[0], n[2] * n[0],
		n[0] * n[1], n[1] * n[1], n[2] * n[1],
		n[0] * n[2], n[1] * n[2], n[2] * n[2],
	}
	return mgl64.Ident3().Sub(outer.Mul(2))
}

// TranslationMovemap samples a uniform random displacement and applies it
// identically to every monomer it is asked to move.
type TranslationMovemap struct {
	MaxDispTC float64

	delta mgl64.Vec3
}

func (t *TranslationMovemap) Generate(m *Monomer, rng PRNG) {
	t.delta = mgl64.Vec3{
		randomDisplacement(rng, t.MaxDispTC),
		randomDisplacement(rng, t.MaxDispTC),
		randomDisplacement(rng, t.MaxDispTC),
	}
}

func (t *TranslationMovemap) Apply(m *Monomer) {
	m.Translate(t.delta)
}

// RotationMovemap samples a pivot near the seed monomer's centre and a
// random axis-angle rotation, then applies that same pivot and rotation
// matrix to every monomer it is asked to move.
type RotationMovemap struct {
	MaxDispRC float64
	MaxDispA  float64

	centre mgl64.Vec3
	r      mgl64.Mat3
}

func (rm *RotationMovemap) Generate(m *Monomer, rng PRNG) {
	u := marsaglia(rng)
	s := randomDisplacement(rng, rm.MaxDispRC)
	rm.centre = m.Center(Current).Add(u.Mul(s))

	axis := marsaglia(rng)
	theta := randomDisplacement(rng, rm.MaxDispA)
	rm.r = RotMat(axis, theta)
}

func (rm *RotationMovemap) Apply(m *Monomer) {
	m.Rotate(rm.centre, rm.r)
}

// ConformerFlipMovemap realises a conformer flip as a reflection through
// one of four equiprobable planes defined by the monomer's own first four
// particles; callers must only enable it for four-bead-or-larger
// monomers. It is single-monomer only: VMMC is built exclusively on
// Translation or Rotation movemaps, so Apply is only ever called with the
// same monomer Generate was.
type ConformerFlipMovemap struct {
	point mgl64.Vec3
	r     mgl64.Mat3
}

func (c *ConformerFlipMovemap) Generate(m *Monomer, rng PRNG) {
	if m.NumParticles() < 4 {
		panic("blobmc: conformer-flip movemap requires monomers with at least 4 particles")
	}
	p0, p1, p2, p3 := m.Particle(0), m.Particle(1), m.Particle(2), m.Particle(3)

	switch rng.UniformInt(0, 3) {
	case 0:
		o := p0.Orientation(Current)
		c.point = p0.Position(Current)
		c.r = householder(o.PatchOrient)
	case 1:
		o := p2.Orientation(Current)
		c.point = p2.Position(Current)
		c.r = householder(o.PatchNorm)
	case 2:
		o := p0.Orientation(Current)
		axis := p0.Box().Diff(p1.Position(Current), p0.Position(Current))
		n := RotMat(axis, math.Pi/2).Mul3x1(o.PatchOrient)
		c.point = p0.Position(Current)
		c.r = householder(n)
	default:
		o := p2.Orientation(Current)
		axis := p2.Box().Diff(p3.Position(Current), p2.Position(Current))
		n := RotMat(axis, math.Pi/2).Mul3x1(o.PatchNorm)
		c.point = p2.Position(Current)
		c.r = householder(n)
	}
}

func (c *ConformerFlipMovemap) Apply(m *Monomer) {
	m.Rotate(c.point, c.r)
	m.FlipConformation()
}

package blobmc

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// angularGaussian is g(theta, sigma) = exp(-theta^2 / (2 sigma^2)), the
// angular modulation factor shared by every patchy-family potential.
func angularGaussian(theta, sigma float64) float64 {
	return math.Exp(-(theta * theta) / (2 * sigma * sigma))
}

// patchAngle is the angle between the particle separation direction
// (d/r, optionally negated) and a patch normal, clamped before acos to
// guard floating error at the poles.
func patchAngle(d mgl64.Vec3, r float64, n mgl64.Vec3, negate bool) float64 {
	axis := d.Mul(1 / r)
	if negate {
		axis = axis.Mul(-1)
	}
	c := clamp(axis.Dot(n), -1, 1)
	return math.Acos(c)
}

// dihedral projects o1 and o2 onto the plane perpendicular to the
// (possibly negated) separation axis and returns the angle between the
// projections, clamped before acos. Callers must not invoke this with a
// zero-length projection input (i.e. must have already short-circuited on
// r < sigma_l or a zero radial factor).
func dihedral(d mgl64.Vec3, r float64, o1, o2 mgl64.Vec3) float64 {
	axis1 := d.Mul(1 / r)
	axis2 := axis1.Mul(-1)
	p1 := o1.Sub(axis1.Mul(o1.Dot(axis1)))
	p2 := o2.Sub(axis2.Mul(o2.Dot(axis2)))
	n1 := p1.Normalize()
	n2 := p2.Normalize()
	c := clamp(n1.Dot(n2), -1, 1)
	return math.Acos(c)
}

// Potential is a polymorphic pair interaction: a radial cutoff, a predicate
// telling whether two particles at distance r interact at all, and an
// energy function of scalar distance, the vector from particle 2 to
// particle 1, and both particles' orientations.
type Potential interface {
	Cutoff() float64
	Interacting(r float64) bool
	Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64
}

// Zero never interacts and never contributes energy.
type Zero struct{}

func (Zero) Cutoff() float64                                            { return 0 }
func (Zero) Interacting(r float64) bool                                 { return false }
func (Zero) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 { return 0 }

// HardSphere is an impenetrable core of radius SigmaH; its cutoff equals
// the hard radius itself.
type HardSphere struct {
	SigmaH float64
}

func (h HardSphere) Cutoff() float64          { return h.SigmaH }
func (h HardSphere) Interacting(r float64) bool { return r < h.SigmaH }
func (h HardSphere) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 {
	if r < h.SigmaH {
		return math.Inf(1)
	}
	return 0
}

// SquareWell is a constant-depth well out to its cutoff.
type SquareWell struct {
	Eps, Rc float64
}

func (s SquareWell) Cutoff() float64            { return s.Rc }
func (s SquareWell) Interacting(r float64) bool { return r < s.Rc }
func (s SquareWell) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 {
	if r < s.Rc {
		return s.Eps
	}
	return 0
}

// HarmonicWell is a parabolic well vanishing at Rc.
type HarmonicWell struct {
	Eps, Rc float64
}

func (h HarmonicWell) Cutoff() float64            { return h.Rc }
func (h HarmonicWell) Interacting(r float64) bool { return r < h.Rc }
func (h HarmonicWell) energy(r float64) float64 {
	if r >= h.Rc {
		return 0
	}
	return (h.Eps/(h.Rc*h.Rc))*r*r - h.Eps
}
func (h HarmonicWell) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 {
	return h.energy(r)
}

// AngularHarmonicWell modulates a HarmonicWell by the angle between the two
// particles' patch normals.
type AngularHarmonicWell struct {
	Eps, Rc, SigmaA float64
}

func (a AngularHarmonicWell) Cutoff() float64            { return a.Rc }
func (a AngularHarmonicWell) Interacting(r float64) bool { return r < a.Rc }
func (a AngularHarmonicWell) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 {
	inner := HarmonicWell{Eps: a.Eps, Rc: a.Rc}.energy(r)
	if inner == 0 {
		return 0
	}
	c := clamp(o1.PatchNorm.Dot(o2.PatchNorm), -1, 1)
	theta := math.Acos(c)
	return inner * angularGaussian(theta, a.SigmaA)
}

// ShiftedLJ is a Lennard-Jones potential shifted to vanish continuously at
// Rc.
type ShiftedLJ struct {
	Eps, SigmaL, Rc float64
	shift           float64
}

// NewShiftedLJ precomputes the shift constant once at construction.
func NewShiftedLJ(eps, sigmaL, rc float64) *ShiftedLJ {
	s := &ShiftedLJ{Eps: eps, SigmaL: sigmaL, Rc: rc}
	sr6 := math.Pow(sigmaL/rc, 6)
	s.shift = 4 * eps * (sr6*sr6 - sr6)
	return s
}

func (s *ShiftedLJ) Cutoff() float64            { return s.Rc }
func (s *ShiftedLJ) Interacting(r float64) bool { return r < s.Rc }
func (s *ShiftedLJ) energy(r float64) float64 {
	if r >= s.Rc {
		return 0
	}
	sr6 := math.Pow(s.SigmaL/r, 6)
	return 4*s.Eps*(sr6*sr6-sr6) - s.shift
}
func (s *ShiftedLJ) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 {
	return s.energy(r)
}

// PatchyPotential multiplies a ShiftedLJ radial term by a Gaussian angular
// factor for each particle's patch normal, short-circuiting below SigmaL
// (where the radial repulsive core dominates and patches are not yet
// meaningful) and whenever the radial factor is exactly zero (to avoid NaN
// from zero-length patch-angle projections).
type PatchyPotential struct {
	lj               *ShiftedLJ
	SigmaA1, SigmaA2 float64
}

func NewPatchyPotential(eps, sigmaL, rc, sigmaA1, sigmaA2 float64) *PatchyPotential {
	return &PatchyPotential{lj: NewShiftedLJ(eps, sigmaL, rc), SigmaA1: sigmaA1, SigmaA2: sigmaA2}
}

func (p *PatchyPotential) Cutoff() float64            { return p.lj.Cutoff() }
func (p *PatchyPotential) Interacting(r float64) bool { return p.lj.Interacting(r) }
func (p *PatchyPotential) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 {
	lj := p.lj.energy(r)
	if r < p.lj.SigmaL || lj == 0 {
		return lj
	}
	theta1 := patchAngle(d, r, o1.PatchNorm, false)
	theta2 := patchAngle(d, r, o2.PatchNorm, true)
	return lj * angularGaussian(theta1, p.SigmaA1) * angularGaussian(theta2, p.SigmaA2)
}

// OrientedPatchyPotential adds a dihedral-angle modulation on top of
// PatchyPotential, between the two particles' patch orientation vectors.
type OrientedPatchyPotential struct {
	inner  *PatchyPotential
	SigmaT float64
}

func NewOrientedPatchyPotential(eps, sigmaL, rc, sigmaA1, sigmaA2, sigmaT float64) *OrientedPatchyPotential {
	return &OrientedPatchyPotential{inner: NewPatchyPotential(eps, sigmaL, rc, sigmaA1, sigmaA2), SigmaT: sigmaT}
}

func (p *OrientedPatchyPotential) Cutoff() float64            { return p.inner.Cutoff() }
func (p *OrientedPatchyPotential) Interacting(r float64) bool { return p.inner.Interacting(r) }
func (p *OrientedPatchyPotential) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 {
	base := p.inner.Energy(r, d, o1, o2)
	if r < p.inner.lj.SigmaL || base == 0 {
		return base
	}
	phi := dihedral(d, r, o1.PatchOrient, o2.PatchOrient)
	return base * angularGaussian(phi, p.SigmaT)
}

// DoubleOrientedPatchyPotential is OrientedPatchyPotential with a second
// independent dihedral-angle modulation between a second pair of
// orientation vectors.
type DoubleOrientedPatchyPotential struct {
	inner  *PatchyPotential
	SigmaT float64
}

func NewDoubleOrientedPatchyPotential(eps, sigmaL, rc, sigmaA1, sigmaA2, sigmaT float64) *DoubleOrientedPatchyPotential {
	return &DoubleOrientedPatchyPotential{inner: NewPatchyPotential(eps, sigmaL, rc, sigmaA1, sigmaA2), SigmaT: sigmaT}
}

func (p *DoubleOrientedPatchyPotential) Cutoff() float64            { return p.inner.Cutoff() }
func (p *DoubleOrientedPatchyPotential) Interacting(r float64) bool { return p.inner.Interacting(r) }
func (p *DoubleOrientedPatchyPotential) Energy(r float64, d mgl64.Vec3, o1, o2 Orientation) float64 {
	base := p.inner.Energy(r, d, o1, o2)
	if r < p.inner.lj.SigmaL || base == 0 {
		return base
	}
	phiA := dihedral(d, r, o1.PatchOrient, o2.PatchOrient)
	phiB := dihedral(d, r, o1.PatchOrient2, o2.PatchOrient2)
	return base * angularGaussian(phiA, p.SigmaT) * angularGaussian(phiB, p.SigmaT)
}

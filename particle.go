package blobmc

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// CoordSet selects which double-buffered copy of a particle's or monomer's
// state an operation reads.
type CoordSet int

const (
	Current CoordSet = iota
	Trial
)

// ParticleForm names the closed set of particle variants the topology input
// may declare. An unrecognised tag is fatal at construction.
type ParticleForm int

const (
	SimpleForm ParticleForm = iota
	PatchyForm
	OrientedPatchyForm
	DoubleOrientedPatchyForm
)

func (f ParticleForm) String() string {
	switch f {
	case SimpleForm:
		return "SimpleParticle"
	case PatchyForm:
		return "PatchyParticle"
	case OrientedPatchyForm:
		return "OrientedPatchyParticle"
	case DoubleOrientedPatchyForm:
		return "DoubleOrientedPatchyParticle"
	default:
		return fmt.Sprintf("ParticleForm(%d)", int(f))
	}
}

// Orientation is the up-to-two-unit-vector orientation state a particle
// variant carries. Vectors the variant does not use stay zero.
type Orientation struct {
	PatchNorm    mgl64.Vec3
	PatchOrient  mgl64.Vec3
	PatchOrient2 mgl64.Vec3
}

// Particle is the shared capability set of every particle variant: position
// query/mutation, rigid transforms, and current/trial synchronization. Each
// variant additionally rotates whichever direction vectors it owns.
type Particle interface {
	Index() int
	Type() int
	Form() ParticleForm

	Position(cs CoordSet) mgl64.Vec3
	Orientation(cs CoordSet) Orientation
	Box() *Box

	// Translate sets trial position to wrap(current position + d).
	Translate(d mgl64.Vec3)
	// Rotate sets trial position to wrap(r*(trial position - centre) + centre)
	// and rotates owned direction vectors, read from current and written to
	// trial, about the origin.
	Rotate(centre mgl64.Vec3, r mgl64.Mat3)

	// ShiftTrial translates only the trial position by d, without touching
	// current or re-wrapping orientation. Used by Monomer.Unwrap to slide a
	// particle to an unwrapped image before a rotation.
	ShiftTrial(d mgl64.Vec3)

	Commit()
	Revert()
}

type baseParticle struct {
	index int
	typ   int
	box   *Box

	curPos   mgl64.Vec3
	trialPos mgl64.Vec3
}

func (p *baseParticle) Index() int { return p.index }
func (p *baseParticle) Type() int  { return p.typ }
func (p *baseParticle) Box() *Box  { return p.box }

func (p *baseParticle) Position(cs CoordSet) mgl64.Vec3 {
	if cs == Current {
		return p.curPos
	}
	return p.trialPos
}

func (p *baseParticle) Translate(d mgl64.Vec3) {
	p.trialPos = p.box.Wrap(p.curPos.Add(d))
}

func (p *baseParticle) rotatePosition(centre mgl64.Vec3, r mgl64.Mat3) {
	rotated := r.Mul3x1(p.trialPos.Sub(centre))
	p.trialPos = p.box.Wrap(rotated.Add(centre))
}

func (p *baseParticle) ShiftTrial(d mgl64.Vec3) {
	p.trialPos = p.trialPos.Add(d)
}

func (p *baseParticle) commitPosition() { p.curPos = p.trialPos }
func (p *baseParticle) revertPosition() { p.trialPos = p.curPos }

// Simple is a particle with no orientation.
type Simple struct{ baseParticle }

func NewSimple(index, typ int, box *Box, pos mgl64.Vec3) *Simple {
	pos = box.Wrap(pos)
	return &Simple{baseParticle{index: index, typ: typ, box: box, curPos: pos, trialPos: pos}}
}

func (p *Simple) Form() ParticleForm             { return SimpleForm }
func (p *Simple) Orientation(cs CoordSet) Orientation { return Orientation{} }
func (p *Simple) Rotate(centre mgl64.Vec3, r mgl64.Mat3) {
	p.rotatePosition(centre, r)
}
func (p *Simple) Commit() { p.commitPosition() }
func (p *Simple) Revert() { p.revertPosition() }

// Patchy rotates a single patch normal.
type Patchy struct {
	baseParticle
	curNorm, trialNorm mgl64.Vec3
}

func NewPatchy(index, typ int, box *Box, pos, norm mgl64.Vec3) *Patchy {
	pos = box.Wrap(pos)
	return &Patchy{
		baseParticle: baseParticle{index: index, typ: typ, box: box, curPos: pos, trialPos: pos},
		curNorm:      norm, trialNorm: norm,
	}
}

func (p *Patchy) Form() ParticleForm { return PatchyForm }
func (p *Patchy) Orientation(cs CoordSet) Orientation {
	if cs == Current {
		return Orientation{PatchNorm: p.curNorm}
	}
	return Orientation{PatchNorm: p.trialNorm}
}
func (p *Patchy) Rotate(centre mgl64.Vec3, r mgl64.Mat3) {
	p.rotatePosition(centre, r)
	p.trialNorm = r.Mul3x1(p.curNorm)
}
func (p *Patchy) Commit() { p.commitPosition(); p.curNorm = p.trialNorm }
func (p *Patchy) Revert() { p.revertPosition(); p.trialNorm = p.curNorm }

// OrientedPatchy rotates a patch normal and a patch orientation vector.
type OrientedPatchy struct {
	baseParticle
	curNorm, trialNorm     mgl64.Vec3
	curOrient, trialOrient mgl64.Vec3
}

func NewOrientedPatchy(index, typ int, box *Box, pos, norm, orient mgl64.Vec3) *OrientedPatchy {
	pos = box.Wrap(pos)
	return &OrientedPatchy{
		baseParticle: baseParticle{index: index, typ: typ, box: box, curPos: pos, trialPos: pos},
		curNorm:      norm, trialNorm: norm,
		curOrient: orient, trialOrient: orient,
	}
}

func (p *OrientedPatchy) Form() ParticleForm { return OrientedPatchyForm }
func (p *OrientedPatchy) Orientation(cs CoordSet) Orientation {
	if cs == Current {
		return Orientation{PatchNorm: p.curNorm, PatchOrient: p.curOrient}
	}
	return Orientation{PatchNorm: p.trialNorm, PatchOrient: p.trialOrient}
}
func (p *OrientedPatchy) Rotate(centre mgl64.Vec3, r mgl64.Mat3) {
	p.rotatePosition(centre, r)
	p.trialNorm = r.Mul3x1(p.curNorm)
	p.trialOrient = r.Mul3x1(p.curOrient)
}
func (p *OrientedPatchy) Commit() {
	p.commitPosition()
	p.curNorm = p.trialNorm
	p.curOrient = p.trialOrient
}
func (p *OrientedPatchy) Revert() {
	p.revertPosition()
	p.trialNorm = p.curNorm
	p.trialOrient = p.curOrient
}

// DoubleOrientedPatchy rotates a patch normal and two patch orientation
// vectors.
type DoubleOrientedPatchy struct {
	baseParticle
	curNorm, trialNorm       mgl64.Vec3
	curOrient, trialOrient   mgl64.Vec3
	curOrient2, trialOrient2 mgl64.Vec3
}

func NewDoubleOrientedPatchy(index, typ int, box *Box, pos, norm, orient, orient2 mgl64.Vec3) *DoubleOrientedPatchy {
	pos = box.Wrap(pos)
	return &DoubleOrientedPatchy{
		baseParticle: baseParticle{index: index, typ: typ, box: box, curPos: pos, trialPos: pos},
		curNorm:      norm, trialNorm: norm,
		curOrient: orient, trialOrient: orient,
		curOrient2: orient2, trialOrient2: orient2,
	}
}

func (p *DoubleOrientedPatchy) Form() ParticleForm { return DoubleOrientedPatchyForm }
func (p *DoubleOrientedPatchy) Orientation(cs CoordSet) Orientation {
	if cs == Current {
		return Orientation{PatchNorm: p.curNorm, PatchOrient: p.curOrient, PatchOrient2: p.curOrient2}
	}
	return Orientation{PatchNorm: p.trialNorm, PatchOrient: p.trialOrient, PatchOrient2: p.trialOrient2}
}
func (p *DoubleOrientedPatchy) Rotate(centre mgl64.Vec3, r mgl64.Mat3) {
	p.rotatePosition(centre, r)
	p.trialNorm = r.Mul3x1(p.curNorm)
	p.trialOrient = r.Mul3x1(p.curOrient)
	p.trialOrient2 = r.Mul3x1(p.curOrient2)
}
func (p *DoubleOrientedPatchy) Commit() {
	p.commitPosition()
	p.curNorm = p.trialNorm
	p.curOrient = p.trialOrient
	p.curOrient2 = p.trialOrient2
}
func (p *DoubleOrientedPatchy) Revert() {
	p.revertPosition()
	p.trialNorm = p.curNorm
	p.trialOrient = p.curOrient
	p.trialOrient2 = p.curOrient2
}

// NewParticle dispatches on form to the right variant constructor. norm,
// orient, orient2 are ignored where the form does not use them.
func NewParticle(form ParticleForm, index, typ int, box *Box, pos, norm, orient, orient2 mgl64.Vec3) (Particle, error) {
	switch form {
	case SimpleForm:
		return NewSimple(index, typ, box, pos), nil
	case PatchyForm:
		return NewPatchy(index, typ, box, pos, norm), nil
	case OrientedPatchyForm:
		return NewOrientedPatchy(index, typ, box, pos, norm, orient), nil
	case DoubleOrientedPatchyForm:
		return NewDoubleOrientedPatchy(index, typ, box, pos, norm, orient, orient2), nil
	default:
		return nil, fmt.Errorf("blobmc: unknown particle form tag %d", int(form))
	}
}

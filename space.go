package blobmc

import "github.com/go-gl/mathgl/mgl64"

// Box is a cubic periodic simulation cell centred at the origin, edge
// length L, half-edge r = L/2.
type Box struct {
	l float64
	r float64
}

// NewBox builds a cubic periodic box of edge length l. Panics if l <= 0;
// an invalid box is a construction-time programmer error, not a runtime one.
func NewBox(l float64) *Box {
	if l <= 0 {
		panic("blobmc: box edge length must be positive")
	}
	return &Box{l: l, r: l / 2}
}

// Edge returns the box edge length L.
func (b *Box) Edge() float64 { return b.l }

// HalfEdge returns r = L/2.
func (b *Box) HalfEdge() float64 { return b.r }

func wrapComponent(x, r float64) float64 {
	if x >= r {
		return x - 2*r
	}
	if x < -r {
		return x + 2*r
	}
	return x
}

// Diff returns the minimum-image difference p1 - p2. Correct only when
// callers guarantee |p1_i - p2_i| < 3r, i.e. both points are themselves
// wrapped or are the output of a prior Unwrap.
func (b *Box) Diff(p1, p2 mgl64.Vec3) mgl64.Vec3 {
	d := p1.Sub(p2)
	return mgl64.Vec3{
		wrapComponent(d[0], b.r),
		wrapComponent(d[1], b.r),
		wrapComponent(d[2], b.r),
	}
}

// Dist returns the minimum-image distance between p1 and p2.
func (b *Box) Dist(p1, p2 mgl64.Vec3) float64 {
	return b.Diff(p1, p2).Len()
}

// Wrap shifts p into [-r, +r)^3 by a componentwise one-shot image shift.
// Positions more than 3r outside the box must not occur; Wrap does not
// loop to correct them.
func (b *Box) Wrap(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		wrapComponent(p[0], b.r),
		wrapComponent(p[1], b.r),
		wrapComponent(p[2], b.r),
	}
}

// Unwrap returns the periodic image of p closest to ref, i.e. ref plus the
// minimum-image difference between p and ref. Used to assemble a monomer
// centre, or the centre of rotation, even when its particles sit on
// opposite sides of the boundary.
func (b *Box) Unwrap(ref, p mgl64.Vec3) mgl64.Vec3 {
	return ref.Add(b.Diff(p, ref))
}

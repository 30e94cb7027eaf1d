package blobmc

import (
	"fmt"
	"math"
)

type typePairKey struct{ a, b int }

func normalizeTypePair(a, b int) typePairKey {
	if a <= b {
		return typePairKey{a, b}
	}
	return typePairKey{b, a}
}

// PairRegistration names a potential to use for an unordered pair of
// particle types, for one of the two conformer tables.
type PairRegistration struct {
	TypeA, TypeB int
	Potential    Potential
}

// Energy owns the potential table and the same-conformer /
// different-conformer lookup maps, and computes pair, total, and delta
// energies, culling on monomer bounding radius before ever touching a
// particle pair. It borrows the box read-only to resolve minimum-image
// vectors; it never mutates configuration state.
type Energy struct {
	box       *Box
	samePair  map[typePairKey]Potential
	diffPair  map[typePairKey]Potential
	maxCutoff float64
}

// NewEnergy registers every pair in same and diff under both type
// orderings, so lookup is symmetric. maxCutoff must be the largest cutoff
// among every potential that appears in either table; it drives the
// monomer-radius broad-phase cull (§4.5 "in-range check").
func NewEnergy(box *Box, same, diff []PairRegistration, maxCutoff float64) *Energy {
	e := &Energy{
		box:       box,
		samePair:  make(map[typePairKey]Potential, len(same)),
		diffPair:  make(map[typePairKey]Potential, len(diff)),
		maxCutoff: maxCutoff,
	}
	for _, reg := range same {
		e.samePair[normalizeTypePair(reg.TypeA, reg.TypeB)] = reg.Potential
	}
	for _, reg := range diff {
		e.diffPair[normalizeTypePair(reg.TypeA, reg.TypeB)] = reg.Potential
	}
	return e
}

// lookup finds the potential registered for (t1,t2) in the table selected
// by sameConformer. A missing registration is a fatal configuration error:
// it indicates an incomplete interactions file, never silently substituted
// with a zero potential.
func (e *Energy) lookup(t1, t2 int, sameConformer bool) Potential {
	table := e.diffPair
	if sameConformer {
		table = e.samePair
	}
	pot, ok := table[normalizeTypePair(t1, t2)]
	if !ok {
		which := "different-conformer"
		if sameConformer {
			which = "same-conformer"
		}
		panic(fmt.Sprintf("blobmc: no %s potential registered for particle type pair (%d, %d)", which, t1, t2))
	}
	return pot
}

// PairEnergy sums every particle-pair energy across two distinct monomers,
// each read from its own named coordinate set. Returns +Inf immediately on
// any hard-core clash. Comparing a monomer to itself is the caller's
// responsibility to avoid; particles within one monomer never interact
// through the pair table.
func (e *Energy) PairEnergy(m1 *Monomer, cs1 CoordSet, m2 *Monomer, cs2 CoordSet) float64 {
	same := m1.Conformer(cs1) == m2.Conformer(cs2)
	total := 0.0
	for _, p1 := range m1.Particles() {
		pos1 := p1.Position(cs1)
		or1 := p1.Orientation(cs1)
		for _, p2 := range m2.Particles() {
			pos2 := p2.Position(cs2)
			d := e.box.Diff(pos1, pos2)
			dist := d.Len()
			pot := e.lookup(p1.Type(), p2.Type(), same)
			en := pot.Energy(dist, d, or1, p2.Orientation(cs2))
			if math.IsInf(en, 1) {
				return math.Inf(1)
			}
			total += en
		}
	}
	return total
}

// InRange is the cheap broad-phase cull: false iff the monomers' centres
// cannot possibly be close enough to interact, even accounting for every
// particle inside each monomer's bounding sphere and the widest registered
// cutoff; true means the pair may interact and needs a particle-level check.
func (e *Energy) InRange(m1 *Monomer, cs1 CoordSet, m2 *Monomer, cs2 CoordSet) bool {
	d := e.box.Dist(m1.Center(cs1), m2.Center(cs2))
	return d <= m1.Radius()+m2.Radius()+e.maxCutoff
}

// Interacting reports whether m1 (in cs1) and m2 (in cs2) are in range and
// at least one particle pair satisfies its assigned potential's
// Interacting predicate.
func (e *Energy) Interacting(m1 *Monomer, cs1 CoordSet, m2 *Monomer, cs2 CoordSet) bool {
	if !e.InRange(m1, cs1, m2, cs2) {
		return false
	}
	same := m1.Conformer(cs1) == m2.Conformer(cs2)
	for _, p1 := range m1.Particles() {
		pos1 := p1.Position(cs1)
		for _, p2 := range m2.Particles() {
			pos2 := p2.Position(cs2)
			r := e.box.Dist(pos1, pos2)
			if e.lookup(p1.Type(), p2.Type(), same).Interacting(r) {
				return true
			}
		}
	}
	return false
}

// TotalEnergy sums the pair energy of every distinct monomer pair, both
// read from their current state.
func (e *Energy) TotalEnergy(conf *Configuration) float64 {
	total := 0.0
	ms := conf.Monomers
	for i := 0; i < len(ms); i++ {
		for j := i + 1; j < len(ms); j++ {
			en := e.PairEnergy(ms[i], Current, ms[j], Current)
			if math.IsInf(en, 1) {
				return math.Inf(1)
			}
			total += en
		}
	}
	return total
}

// Neighbours enumerates every monomer other than m1 that is Interacting
// with m1 (read from cs1) in its own current state. Returns a fresh slice
// each call.
func (e *Energy) Neighbours(conf *Configuration, m1 *Monomer, cs1 CoordSet) []*Monomer {
	var out []*Monomer
	for _, m := range conf.Monomers {
		if m.Index() == m1.Index() {
			continue
		}
		if e.Interacting(m1, cs1, m, Current) {
			out = append(out, m)
		}
	}
	return out
}

// DeltaEnergy is the change in total energy from moving m alone: the sum
// over every other monomer j of E(m_trial, j_current) - E(m_current,
// j_current). Short-circuits to +Inf on the first hard-core clash in the
// trial state.
func (e *Energy) DeltaEnergy(conf *Configuration, m *Monomer) float64 {
	delta := 0.0
	for _, j := range conf.Monomers {
		if j.Index() == m.Index() {
			continue
		}
		trialE := e.PairEnergy(m, Trial, j, Current)
		if math.IsInf(trialE, 1) {
			return math.Inf(1)
		}
		curE := e.PairEnergy(m, Current, j, Current)
		delta += trialE - curE
	}
	return delta
}

package blobmc

import "github.com/go-gl/mathgl/mgl64"

// Configuration owns all monomers and the box they live in, and is the
// substrate the energy evaluator and move engine both borrow. It does not
// own the PRNG's lifecycle (callers may share one PRNG across a
// Configuration and several movetypes) but exposes the uniform-random
// monomer selection that needs one.
type Configuration struct {
	Box      *Box
	Monomers []*Monomer

	// BeadRadius is the common particle radius the topology input declares,
	// carried through for trajectory and checkpoint output.
	BeadRadius float64

	indexOf map[int]*Monomer
}

// NewConfiguration indexes monomers by their stable index for O(1) lookup
// during VMMC cluster bookkeeping.
func NewConfiguration(box *Box, monomers []*Monomer) *Configuration {
	idx := make(map[int]*Monomer, len(monomers))
	for _, m := range monomers {
		idx[m.Index()] = m
	}
	return &Configuration{Box: box, Monomers: monomers, indexOf: idx}
}

// MonomerByIndex returns the monomer with the given stable index.
func (c *Configuration) MonomerByIndex(index int) *Monomer {
	return c.indexOf[index]
}

// RandomMonomer draws a uniformly random monomer using rng.
func (c *Configuration) RandomMonomer(rng PRNG) *Monomer {
	i := rng.UniformInt(0, len(c.Monomers)-1)
	return c.Monomers[i]
}

// Diff returns the minimum-image difference p1 - p2.
func (c *Configuration) Diff(p1, p2 mgl64.Vec3) mgl64.Vec3 { return c.Box.Diff(p1, p2) }

// Dist returns the minimum-image distance between p1 and p2.
func (c *Configuration) Dist(p1, p2 mgl64.Vec3) float64 { return c.Box.Dist(p1, p2) }

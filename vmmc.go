package blobmc

import "math"

// pairKey identifies an unordered monomer pair by stable index, normalised
// so (i,j) and (j,i) compare equal.
type pairKey struct{ i, j int }

func normalizePairKey(i, j int) pairKey {
	if i <= j {
		return pairKey{i, j}
	}
	return pairKey{j, i}
}

// linkProbability is VMMC's symmetric single-link test,
// max(0, 1 - exp(-beta*deltaE)), with deltaE == +Inf forced to 1 to avoid
// computing 0 * Inf when beta is zero.
func linkProbability(deltaE, beta float64) float64 {
	if math.IsInf(deltaE, 1) {
		return 1
	}
	p := 1 - math.Exp(-beta*deltaE)
	if p < 0 {
		return 0
	}
	return p
}

func removeOne(xs *[]int, v int) bool {
	for i, x := range *xs {
		if x == v {
			*xs = append((*xs)[:i], (*xs)[i+1:]...)
			return true
		}
	}
	return false
}

// VMMCMovetype grows a cluster of rigidly co-moving monomers via the
// Virtual Move Monte Carlo algorithm (Whitelam & Geissler) and accepts or
// rejects the whole cluster move with the symmetric acceptance rule that
// corrects for the asymmetry between the forward and reverse cluster
// growth processes. Each monomer's movemap is applied at most once per
// attempt, gated by membership in interactingMis, so every monomer has a
// single hypothetical trial configuration throughout the cluster build.
type VMMCMovetype struct {
	Movemap Movemap
	Beta    float64

	attempts int
	accepted int
}

// NewVMMCMovetype builds a VMMC movetype driven by the given movemap
// (Translation or Rotation only; conformer flips take no part in cluster
// growth) at inverse temperature beta.
func NewVMMCMovetype(movemap Movemap, beta float64) *VMMCMovetype {
	return &VMMCMovetype{Movemap: movemap, Beta: beta}
}

type vmmcState struct {
	conf    *Configuration
	energy  *Energy
	rng     PRNG
	movemap Movemap
	beta    float64

	inCluster map[int]bool
	cluster   []*Monomer

	proposedPairs map[pairKey]bool
	// interactingMis is every monomer that has had the movemap applied
	// this attempt, keyed by index, whether or not it ended up in cluster.
	interactingMis map[int]*Monomer

	frustratedLinks int
	frustratedMis   []int

	w []pairKey
}

// addInteractingPairs records every monomer interacting with m1 in either
// its current or trial state as a link candidate. Each fresh candidate
// (not yet in interactingMis) has the movemap applied to it immediately,
// establishing its single hypothetical trial configuration for the rest
// of this attempt.
func (s *vmmcState) addInteractingPairs(m1 *Monomer) {
	// seenIdx is a membership test only, never ranged over: Go randomises
	// map-iteration order per execution, and iterating it to build s.w would
	// make which pair s.rng.UniformInt picks in run() depend on that
	// randomised order instead of only on the PRNG seed. neighbours keeps
	// Neighbours' deterministic conf.Monomers-slice order intact instead.
	seenIdx := make(map[int]bool)
	var neighbours []*Monomer
	for _, m := range s.energy.Neighbours(s.conf, m1, Current) {
		if !seenIdx[m.Index()] {
			seenIdx[m.Index()] = true
			neighbours = append(neighbours, m)
		}
	}
	for _, m := range s.energy.Neighbours(s.conf, m1, Trial) {
		if !seenIdx[m.Index()] {
			seenIdx[m.Index()] = true
			neighbours = append(neighbours, m)
		}
	}

	for _, m := range neighbours {
		idx := m.Index()
		if s.inCluster[idx] {
			continue
		}
		key := normalizePairKey(m1.Index(), idx)
		if s.proposedPairs[key] {
			continue
		}
		s.proposedPairs[key] = true

		if _, applied := s.interactingMis[idx]; !applied {
			s.movemap.Apply(m)
			s.interactingMis[idx] = m
		}
		s.w = append(s.w, key)
	}
}

// run drains the pair work-set, growing the cluster, and returns true iff
// no frustrated link was ever left unresolved.
func (s *vmmcState) run() bool {
	for len(s.w) > 0 {
		pick := s.rng.UniformInt(0, len(s.w)-1)
		key := s.w[pick]
		s.w[pick] = s.w[len(s.w)-1]
		s.w = s.w[:len(s.w)-1]

		aIn, bIn := s.inCluster[key.i], s.inCluster[key.j]
		var m1, m2 *Monomer
		switch {
		case aIn && !bIn:
			m1, m2 = s.conf.MonomerByIndex(key.i), s.conf.MonomerByIndex(key.j)
		case bIn && !aIn:
			m1, m2 = s.conf.MonomerByIndex(key.j), s.conf.MonomerByIndex(key.i)
		default:
			continue
		}

		e1 := s.energy.PairEnergy(m1, Current, m2, Current)
		e2 := s.energy.PairEnergy(m1, Trial, m2, Current)
		e3 := s.energy.PairEnergy(m1, Current, m2, Trial)

		pForward := linkProbability(subInf(e2, e1), s.beta)
		if s.rng.UniformReal() >= pForward {
			continue
		}
		pReverse := linkProbability(subInf(e3, e1), s.beta)

		accept := pReverse >= pForward
		if !accept {
			accept = s.rng.UniformReal() < pReverse/pForward
		}
		if !accept {
			s.frustratedLinks++
			s.frustratedMis = append(s.frustratedMis, m2.Index())
			continue
		}

		if removeOne(&s.frustratedMis, m2.Index()) {
			s.frustratedLinks--
		}
		s.inCluster[m2.Index()] = true
		s.cluster = append(s.cluster, m2)
		s.addInteractingPairs(m2)
	}
	return s.frustratedLinks == 0
}

// subInf computes a-b, treating (+Inf)-(+Inf) as +Inf rather than NaN: an
// energy that is infinite both before and after a move is not an
// improvement, so the link test should see it as no better than the
// current (already-overlapping) state, i.e. deltaE = +Inf.
func subInf(a, b float64) float64 {
	if math.IsInf(a, 1) {
		return math.Inf(1)
	}
	return a - b
}

// Attempt runs one VMMC trial against conf using energy and rng, returning
// true iff the cluster move was accepted.
func (mt *VMMCMovetype) Attempt(conf *Configuration, energy *Energy, rng PRNG) bool {
	mt.attempts++

	seed := conf.RandomMonomer(rng)

	s := &vmmcState{
		conf:           conf,
		energy:         energy,
		rng:            rng,
		movemap:        mt.Movemap,
		beta:           mt.Beta,
		inCluster:      map[int]bool{seed.Index(): true},
		cluster:        []*Monomer{seed},
		proposedPairs:  make(map[pairKey]bool),
		interactingMis: map[int]*Monomer{seed.Index(): seed},
	}

	mt.Movemap.Generate(seed, rng)
	mt.Movemap.Apply(seed)
	s.addInteractingPairs(seed)

	ok := s.run()

	if ok {
		for _, m := range s.cluster {
			m.Commit()
		}
	}
	for _, m := range s.interactingMis {
		m.Revert()
	}

	if ok {
		mt.accepted++
	}
	return ok
}

// Attempts returns the number of trials run so far.
func (mt *VMMCMovetype) Attempts() int { return mt.attempts }

// Accepted returns the number of trials accepted so far.
func (mt *VMMCMovetype) Accepted() int { return mt.accepted }

// AcceptanceRatio returns Accepted/Attempts, or 0 if no trials have run.
func (mt *VMMCMovetype) AcceptanceRatio() float64 {
	if mt.attempts == 0 {
		return 0
	}
	return float64(mt.accepted) / float64(mt.attempts)
}

// VMMCModule registers a single named VMMC movetype with the simulation
// at the given selection weight.
type VMMCModule struct {
	Name     string
	Weight   float64
	Movetype *VMMCMovetype
}

func (m VMMCModule) Install(sim *Simulation, cmd *Commands) {
	cmd.RegisterMovetype(m.Name, m.Weight, m.Movetype.Attempt)
}

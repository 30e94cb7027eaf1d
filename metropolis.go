package blobmc

import "math"

// acceptanceProbability is the Metropolis criterion min(1, exp(-beta*dE)),
// with the deltaE == +Inf case short-circuited to avoid computing 0 * Inf.
func acceptanceProbability(deltaE, beta float64) float64 {
	if math.IsInf(deltaE, 1) {
		return 0
	}
	if deltaE <= 0 {
		return 1
	}
	return math.Exp(-beta * deltaE)
}

// MetropolisMovetype performs single-monomer Metropolis trial moves: pick a
// monomer uniformly at random, generate a trial transform via Movemap,
// accept or reject against the classic Metropolis criterion, and commit or
// revert accordingly.
type MetropolisMovetype struct {
	Movemap Movemap
	Beta    float64

	attempts int
	accepted int
}

// NewMetropolisMovetype builds a Metropolis movetype driven by the given
// movemap at inverse temperature beta.
func NewMetropolisMovetype(movemap Movemap, beta float64) *MetropolisMovetype {
	return &MetropolisMovetype{Movemap: movemap, Beta: beta}
}

// Attempt runs one Metropolis trial against conf using energy and rng,
// returning true iff the move was accepted. A monomer is drawn uniformly at
// random from conf, a trial transform generated and applied to it alone,
// and the move is accepted with probability min(1, exp(-beta*deltaE)).
func (mt *MetropolisMovetype) Attempt(conf *Configuration, energy *Energy, rng PRNG) bool {
	mt.attempts++
	m := conf.RandomMonomer(rng)

	mt.Movemap.Generate(m, rng)
	mt.Movemap.Apply(m)

	deltaE := energy.DeltaEnergy(conf, m)
	p := acceptanceProbability(deltaE, mt.Beta)

	if p >= 1 || rng.UniformReal() < p {
		m.Commit()
		mt.accepted++
		return true
	}
	m.Revert()
	return false
}

// Attempts returns the number of trials run so far.
func (mt *MetropolisMovetype) Attempts() int { return mt.attempts }

// Accepted returns the number of trials accepted so far.
func (mt *MetropolisMovetype) Accepted() int { return mt.accepted }

// AcceptanceRatio returns Accepted/Attempts, or 0 if no trials have run.
func (mt *MetropolisMovetype) AcceptanceRatio() float64 {
	if mt.attempts == 0 {
		return 0
	}
	return float64(mt.accepted) / float64(mt.attempts)
}

// MetropolisModule registers a single named Metropolis movetype with the
// simulation at the given selection weight.
type MetropolisModule struct {
	Name     string
	Weight   float64
	Movetype *MetropolisMovetype
}

func (m MetropolisModule) Install(sim *Simulation, cmd *Commands) {
	cmd.RegisterMovetype(m.Name, m.Weight, m.Movetype.Attempt)
}

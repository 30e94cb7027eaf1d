package blobmc

import "fmt"

// Stage names a point in the sweep loop systems can be scheduled against:
// Setup once before any sweeps, PreSweep/Sample around every sweep,
// Finale once at the end.
type Stage string

const (
	Setup    Stage = "Setup"
	PreSweep Stage = "PreSweep"
	Sample   Stage = "Sample"
	Finale   Stage = "Finale"
)

// System is anything a Module schedules to run at a Stage.
type System func(sim *Simulation)

// Module installs systems, movetypes, and resources onto a Simulation.
type Module interface {
	Install(sim *Simulation, cmd *Commands)
}

// MovetypeEntry names a registered movetype and the absolute selection
// probability determining how often it is chosen on any given step. The
// driver counts attempts and acceptances per entry, so acceptance rates
// can be reported per movetype for tuning the max_disp parameters.
type MovetypeEntry struct {
	Name    string
	Weight  float64
	Attempt func(conf *Configuration, energy *Energy, rng PRNG) bool

	Attempts int
	Accepted int
}

// AcceptanceRatio returns Accepted/Attempts for this entry, or 0 if it has
// never been selected.
func (e *MovetypeEntry) AcceptanceRatio() float64 {
	if e.Attempts == 0 {
		return 0
	}
	return float64(e.Accepted) / float64(e.Attempts)
}

// Simulation owns the configuration, energy evaluator, PRNG, and the set
// of registered movetypes and systems driving a run.
type Simulation struct {
	Conf   *Configuration
	Energy *Energy
	Rng    PRNG
	Clock  *Clock
	Logger Logger

	Movetypes   []MovetypeEntry
	totalWeight float64

	systems map[Stage][]System

	NumSweeps     int
	StepsPerSweep int

	stopRequested bool
}

// NewSimulation builds a Simulation ready to have Modules installed onto
// it. StepsPerSweep and NumSweeps default to zero and must be set before
// Run, typically by a configuration-loading Module.
func NewSimulation(conf *Configuration, energy *Energy, rng PRNG) *Simulation {
	return &Simulation{
		Conf:    conf,
		Energy:  energy,
		Rng:     rng,
		Clock:   NewClock(),
		Logger:  NewNopLogger(),
		systems: make(map[Stage][]System),
	}
}

func (sim *Simulation) Commands() *Commands {
	return &Commands{sim: sim}
}

// UseModules installs every module in order, each receiving a fresh
// Commands wrapper.
func (sim *Simulation) UseModules(modules ...Module) *Simulation {
	cmd := sim.Commands()
	for _, m := range modules {
		m.Install(sim, cmd)
	}
	return sim
}

// RegisterMovetype adds a movetype with the given absolute selection
// probability. Probabilities are not normalised against each other; the
// cumulative total across every registered movetype must stay <= 1, the
// unclaimed remainder being the no-op probability chooseMovetype resolves
// to no selection at all.
func (sim *Simulation) RegisterMovetype(name string, weight float64, attempt func(*Configuration, *Energy, PRNG) bool) {
	if weight <= 0 {
		panic(fmt.Sprintf("blobmc: movetype %q registered with non-positive weight %g", name, weight))
	}
	if sim.totalWeight+weight > 1.0000001 {
		panic(fmt.Sprintf("blobmc: movetype %q would push cumulative selection probability to %g, must stay <= 1", name, sim.totalWeight+weight))
	}
	sim.Movetypes = append(sim.Movetypes, MovetypeEntry{Name: name, Weight: weight, Attempt: attempt})
	sim.totalWeight += weight
}

// chooseMovetype performs cumulative-probability selection against the
// simulation's own injected PRNG: draw u in [0,1) and pick the first
// movetype whose cumulative probability exceeds u. A weighted-choice
// library would draw from the global math/rand source here, breaking the
// reproducibility a shared seeded PRNG exists to guarantee. A draw
// landing above every movetype's cumulative probability (i.e. in the
// unclaimed remainder) returns ok=false: the step is a no-op.
func (sim *Simulation) chooseMovetype() (int, bool) {
	u := sim.Rng.UniformReal()
	cum := 0.0
	for i := range sim.Movetypes {
		cum += sim.Movetypes[i].Weight
		if u < cum {
			return i, true
		}
	}
	return -1, false
}

// Step attempts one movetype trial, the movetype chosen at random by
// registered selection probability, and reports whether it was accepted.
// A draw that falls into the unclaimed no-op remainder counts as neither
// attempted nor accepted.
func (sim *Simulation) Step() bool {
	if len(sim.Movetypes) == 0 {
		panic("blobmc: Step called with no movetypes registered")
	}
	i, ok := sim.chooseMovetype()
	if !ok {
		return false
	}
	entry := &sim.Movetypes[i]
	entry.Attempts++
	accepted := entry.Attempt(sim.Conf, sim.Energy, sim.Rng)
	if accepted {
		entry.Accepted++
	}
	return accepted
}

func (sim *Simulation) runStage(stage Stage) {
	for _, sys := range sim.systems[stage] {
		sys(sim)
	}
}

// Stop requests that Run exit after completing the sweep in progress.
func (sim *Simulation) Stop() { sim.stopRequested = true }

// Run executes NumSweeps sweeps of StepsPerSweep movetype trials each,
// running Setup systems once up front, PreSweep/Sample systems around
// every sweep, and Finale systems once at the end (even if Stop was
// called mid-run).
func (sim *Simulation) Run() {
	sim.runStage(Setup)

	for sweep := 0; sweep < sim.NumSweeps; sweep++ {
		sim.runStage(PreSweep)

		for step := 0; step < sim.StepsPerSweep; step++ {
			sim.Step()
		}

		sim.Clock.Tick()
		sim.runStage(Sample)

		if sim.stopRequested {
			break
		}
	}

	sim.runStage(Finale)
}

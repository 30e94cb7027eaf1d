package blobmc

// Commands is the narrow mutation surface Modules use during Install: a
// module never touches Simulation fields directly, only through this
// type, so where scheduling or registration happens stays in one place.
type Commands struct {
	sim *Simulation
}

// UseSystem schedules sys to run at stage, in installation order.
func (cmd *Commands) UseSystem(stage Stage, sys System) *Commands {
	cmd.sim.systems[stage] = append(cmd.sim.systems[stage], sys)
	return cmd
}

// RegisterMovetype registers a movetype with the simulation under the
// given selection weight.
func (cmd *Commands) RegisterMovetype(name string, weight float64, attempt func(*Configuration, *Energy, PRNG) bool) *Commands {
	cmd.sim.RegisterMovetype(name, weight, attempt)
	return cmd
}

// SetLogger replaces the simulation's logger.
func (cmd *Commands) SetLogger(l Logger) *Commands {
	cmd.sim.Logger = l
	return cmd
}

// SetSweeps sets the number of sweeps and steps-per-sweep Run will
// execute.
func (cmd *Commands) SetSweeps(numSweeps, stepsPerSweep int) *Commands {
	cmd.sim.NumSweeps = numSweeps
	cmd.sim.StepsPerSweep = stepsPerSweep
	return cmd
}

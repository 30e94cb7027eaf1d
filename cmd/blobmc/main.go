// Command blobmc runs a coarse-grained patchy-particle Monte Carlo
// simulation from a YAML parameter file. Flag parsing is deliberately
// thin: one command, one required flag.
package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/cumberworth/blobmc"
	"github.com/cumberworth/blobmc/checkpoint"
	"github.com/cumberworth/blobmc/energyio"
	"github.com/cumberworth/blobmc/topology"
	"github.com/cumberworth/blobmc/trajectory"
)

func main() {
	if err := application().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func application() *cli.App {
	return &cli.App{
		Name:  "blobmc",
		Usage: "run a coarse-grained patchy-particle Monte Carlo simulation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "params",
				Aliases:  []string{"p"},
				Usage:    "path to the run's YAML parameter file",
				Required: true,
			},
		},
		Action: runCommand,
	}
}

func runCommand(c *cli.Context) error {
	runID := uuid.NewString()

	paramsFile, err := os.Open(c.String("params"))
	if err != nil {
		return fmt.Errorf("blobmc: opening params file: %w", err)
	}
	defer paramsFile.Close()

	params, err := blobmc.LoadParams(paramsFile)
	if err != nil {
		return err
	}

	logger := blobmc.NewDefaultLogger(runID[:8], params.Debug)
	logger.Infof("starting run %s", runID)
	params.Echo(logger)

	conf, energy, err := loadModel(params)
	if err != nil {
		return err
	}

	start := energy.TotalEnergy(conf)
	if math.IsInf(start, 1) || math.IsNaN(start) {
		return fmt.Errorf("blobmc: invalid starting configuration: total energy is %g", start)
	}
	logger.Infof("starting total energy: %g", start)

	rng := blobmc.NewDefaultPRNG(params.Seed)
	sim := blobmc.NewSimulation(conf, energy, rng)

	cmd := sim.Commands()
	cmd.SetLogger(logger)
	cmd.SetSweeps(params.NumSweeps, params.StepsPerSweep)

	installMovetypes(sim, cmd, params, rng)

	sink, err := openSink(params, runID)
	if err != nil {
		return err
	}
	defer sink.Close()

	if err := sink.WriteTopology(conf); err != nil {
		return fmt.Errorf("blobmc: writing topology: %w", err)
	}

	installSampling(sim, cmd, params, sink, logger)
	installCheckpointing(sim, cmd, params, logger)

	sim.Run()

	for i := range sim.Movetypes {
		e := &sim.Movetypes[i]
		logger.Infof("movetype %s: %d/%d accepted (%.4f)", e.Name, e.Accepted, e.Attempts, e.AcceptanceRatio())
	}
	logger.Infof("run %s complete: %d sweeps", runID, sim.Clock.SweepCount)
	return nil
}

func loadModel(params *blobmc.Params) (*blobmc.Configuration, *blobmc.Energy, error) {
	configFile, err := os.Open(params.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("blobmc: opening config file: %w", err)
	}
	defer configFile.Close()

	snap, err := topology.Decode(configFile)
	if err != nil {
		return nil, nil, err
	}
	conf, err := topology.Build(snap)
	if err != nil {
		return nil, nil, err
	}

	energyFile, err := os.Open(params.EnergyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("blobmc: opening energy file: %w", err)
	}
	defer energyFile.Close()

	tables, err := energyio.Decode(energyFile)
	if err != nil {
		return nil, nil, err
	}
	energy, err := energyio.Build(conf.Box, tables)
	if err != nil {
		return nil, nil, err
	}

	return conf, energy, nil
}

func installMovetypes(sim *blobmc.Simulation, cmd *blobmc.Commands, params *blobmc.Params, rng blobmc.PRNG) {
	translation := &blobmc.TranslationMovemap{MaxDispTC: params.MaxDispTC}
	rotation := &blobmc.RotationMovemap{MaxDispRC: params.MaxDispRC, MaxDispA: params.MaxDispA}
	flip := &blobmc.ConformerFlipMovemap{}

	if params.ProbTranslationMetropolis > 0 {
		cmd.RegisterMovetype("translation-metropolis", params.ProbTranslationMetropolis,
			blobmc.NewMetropolisMovetype(translation, params.Beta).Attempt)
	}
	if params.ProbRotationMetropolis > 0 {
		cmd.RegisterMovetype("rotation-metropolis", params.ProbRotationMetropolis,
			blobmc.NewMetropolisMovetype(rotation, params.Beta).Attempt)
	}
	if params.ProbTranslationVMMC > 0 {
		cmd.RegisterMovetype("translation-vmmc", params.ProbTranslationVMMC,
			blobmc.NewVMMCMovetype(translation, params.Beta).Attempt)
	}
	if params.ProbRotationVMMC > 0 {
		cmd.RegisterMovetype("rotation-vmmc", params.ProbRotationVMMC,
			blobmc.NewVMMCMovetype(rotation, params.Beta).Attempt)
	}
	if params.ProbConformerFlip > 0 {
		cmd.RegisterMovetype("conformer-flip", params.ProbConformerFlip,
			blobmc.NewMetropolisMovetype(flip, params.Beta).Attempt)
	}
}

func openSink(params *blobmc.Params, runID string) (trajectory.Sink, error) {
	if params.TrajectoryFile == "" {
		return trajectory.NopSink{}, nil
	}
	f, err := os.Create(params.TrajectoryFile)
	if err != nil {
		return nil, fmt.Errorf("blobmc: creating trajectory file: %w", err)
	}
	return &closingSink{Sink: trajectory.NewVTFWriter(f, runID), file: f}, nil
}

// closingSink closes the underlying file handle alongside the sink's own
// Close, since trajectory.VTFWriter only flushes its buffer.
type closingSink struct {
	trajectory.Sink
	file *os.File
}

func (c *closingSink) Close() error {
	if err := c.Sink.Close(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}

func installSampling(sim *blobmc.Simulation, cmd *blobmc.Commands, params *blobmc.Params, sink trajectory.Sink, logger blobmc.Logger) {
	sampleEvery := params.SampleEvery
	if sampleEvery <= 0 {
		sampleEvery = 1
	}

	cmd.UseSystem(blobmc.Sample, func(sim *blobmc.Simulation) {
		step := int(sim.Clock.SweepCount)
		if step%sampleEvery != 0 {
			return
		}
		if err := sink.WriteFrame(step, sim.Conf); err != nil {
			logger.Errorf("writing trajectory frame at step %d: %v", step, err)
			sim.Stop()
		}
	})

	if params.WallClockBudget > 0 {
		cmd.UseSystem(blobmc.Sample, func(sim *blobmc.Simulation) {
			if sim.Clock.Elapsed() >= params.WallClockBudget.Std() {
				logger.Infof("wall-clock budget exceeded, stopping")
				sim.Stop()
			}
		})
	}
}

func installCheckpointing(sim *blobmc.Simulation, cmd *blobmc.Commands, params *blobmc.Params, logger blobmc.Logger) {
	if params.CheckpointFile == "" || params.CheckpointEvery <= 0 {
		return
	}

	cmd.UseSystem(blobmc.Sample, func(sim *blobmc.Simulation) {
		step := int(sim.Clock.SweepCount)
		if step%params.CheckpointEvery != 0 {
			return
		}
		f, err := os.Create(params.CheckpointFile)
		if err != nil {
			logger.Errorf("writing checkpoint at step %d: %v", step, err)
			return
		}
		defer f.Close()
		if err := checkpoint.Write(f, step, sim.Conf); err != nil {
			logger.Errorf("writing checkpoint at step %d: %v", step, err)
		}
	})
}

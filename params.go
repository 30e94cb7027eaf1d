package blobmc

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so a parameter file can express wall-clock
// budgets as "90s" or "1h30m" rather than raw nanosecond counts; a bare
// integer is read as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!int" {
		var n int64
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("blobmc: invalid duration second count %q: %w", value.Value, err)
		}
		*d = Duration(time.Duration(n) * time.Second)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("blobmc: duration must be a string like \"30m\" or an integer second count")
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("blobmc: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Params is a run's fully resolved configuration: file names for topology
// and energy input, move-generation tunables, and the step/time budget
// governing how long Run executes.
type Params struct {
	ConfigFile string `yaml:"config_file"`
	EnergyFile string `yaml:"energy_file"`

	BoxLength  float64 `yaml:"box_length"`
	Beta       float64 `yaml:"beta"`
	Seed       uint64  `yaml:"seed"`

	NumSweeps     int `yaml:"num_sweeps"`
	StepsPerSweep int `yaml:"steps_per_sweep"`
	SampleEvery   int `yaml:"sample_every"`

	MaxDispTC float64 `yaml:"max_disp_tc"`
	MaxDispRC float64 `yaml:"max_disp_rc"`
	MaxDispA  float64 `yaml:"max_disp_a"`

	ProbTranslationMetropolis float64 `yaml:"prob_translation_metropolis"`
	ProbRotationMetropolis    float64 `yaml:"prob_rotation_metropolis"`
	ProbTranslationVMMC       float64 `yaml:"prob_translation_vmmc"`
	ProbRotationVMMC          float64 `yaml:"prob_rotation_vmmc"`
	ProbConformerFlip         float64 `yaml:"prob_conformer_flip"`

	TrajectoryFile  string `yaml:"trajectory_file"`
	CheckpointFile  string `yaml:"checkpoint_file"`
	CheckpointEvery int    `yaml:"checkpoint_every"`

	WallClockBudget Duration `yaml:"wall_clock_budget"`

	Debug bool `yaml:"debug"`
}

// LoadParams reads and validates a Params from YAML. Move-selection
// probabilities summing to more than 1 are rejected outright: any positive
// remainder is the no-op probability, which only makes sense if the named
// probabilities themselves are a valid sub-distribution.
func LoadParams(r io.Reader) (*Params, error) {
	var p Params
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("blobmc: decoding params: %w", err)
	}

	total := p.ProbTranslationMetropolis + p.ProbRotationMetropolis +
		p.ProbTranslationVMMC + p.ProbRotationVMMC + p.ProbConformerFlip
	if total > 1.0000001 {
		return nil, fmt.Errorf("blobmc: movetype selection probabilities sum to %g, must be <= 1", total)
	}

	if p.ConfigFile == "" {
		return nil, fmt.Errorf("blobmc: params: config_file is required")
	}
	if p.EnergyFile == "" {
		return nil, fmt.Errorf("blobmc: params: energy_file is required")
	}

	return &p, nil
}

// Echo logs the fully resolved parameters at startup: reproducing a run
// from a log file alone should not require the original YAML to be
// present.
func (p *Params) Echo(log Logger) {
	log.Infof("params: config_file=%s energy_file=%s box_length=%g beta=%g seed=%d",
		p.ConfigFile, p.EnergyFile, p.BoxLength, p.Beta, p.Seed)
	log.Infof("params: num_sweeps=%d steps_per_sweep=%d sample_every=%d checkpoint_every=%d",
		p.NumSweeps, p.StepsPerSweep, p.SampleEvery, p.CheckpointEvery)
	log.Infof("params: max_disp_tc=%g max_disp_rc=%g max_disp_a=%g",
		p.MaxDispTC, p.MaxDispRC, p.MaxDispA)
	log.Infof("params: move probabilities translation_metropolis=%g rotation_metropolis=%g translation_vmmc=%g rotation_vmmc=%g conformer_flip=%g",
		p.ProbTranslationMetropolis, p.ProbRotationMetropolis, p.ProbTranslationVMMC, p.ProbRotationVMMC, p.ProbConformerFlip)
	log.Infof("params: trajectory_file=%s checkpoint_file=%s wall_clock_budget=%s debug=%t",
		p.TrajectoryFile, p.CheckpointFile, p.WallClockBudget.Std(), p.Debug)
}

// Package checkpoint adds restart/resume support: a run can resume from a
// previously written configuration snapshot. It reuses topology's record
// types rather than inventing a parallel format.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cumberworth/blobmc"
	"github.com/cumberworth/blobmc/topology"
)

// Checkpoint is a full configuration snapshot plus the step count it was
// taken at, so a resumed run can continue sweep numbering and any
// step-triggered output schedule.
type Checkpoint struct {
	Step     int                `json:"step"`
	Snapshot topology.Snapshot `json:"snapshot"`
}

// Write serialises conf and the current step count to w as JSON.
func Write(w io.Writer, step int, conf *blobmc.Configuration) error {
	snap := toSnapshot(conf)
	cp := Checkpoint{Step: step, Snapshot: *snap}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cp); err != nil {
		return fmt.Errorf("checkpoint: write: %w", err)
	}
	return nil
}

// Read decodes a Checkpoint from r and builds the *blobmc.Configuration it
// describes, returning the step count it was taken at.
func Read(r io.Reader) (int, *blobmc.Configuration, error) {
	var cp Checkpoint
	if err := json.NewDecoder(r).Decode(&cp); err != nil {
		return 0, nil, fmt.Errorf("checkpoint: read: %w", err)
	}
	conf, err := topology.Build(&cp.Snapshot)
	if err != nil {
		return 0, nil, fmt.Errorf("checkpoint: rebuilding configuration: %w", err)
	}
	return cp.Step, conf, nil
}

func toSnapshot(conf *blobmc.Configuration) *topology.Snapshot {
	snap := &topology.Snapshot{BoxLength: conf.Box.Edge(), BeadRadius: conf.BeadRadius}

	for _, m := range conf.Monomers {
		mrec := topology.MonomerRecord{Index: m.Index(), Conformer: m.Conformer(blobmc.Current)}
		for _, p := range m.Particles() {
			pos := p.Position(blobmc.Current)
			o := p.Orientation(blobmc.Current)
			mrec.Particles = append(mrec.Particles, topology.ParticleRecord{
				Index:        p.Index(),
				Form:         p.Form().String(),
				Type:         p.Type(),
				Position:     [3]float64{pos[0], pos[1], pos[2]},
				PatchNorm:    [3]float64{o.PatchNorm[0], o.PatchNorm[1], o.PatchNorm[2]},
				PatchOrient:  [3]float64{o.PatchOrient[0], o.PatchOrient[1], o.PatchOrient[2]},
				PatchOrient2: [3]float64{o.PatchOrient2[0], o.PatchOrient2[1], o.PatchOrient2[2]},
			})
		}
		snap.Monomers = append(snap.Monomers, mrec)
	}
	return snap
}

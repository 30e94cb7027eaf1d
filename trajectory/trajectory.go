// Package trajectory defines the injected output sink the simulation
// emits through, and a concrete VTF/VSF/VCF writer.
package trajectory

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cumberworth/blobmc"
)

// Sink receives one-time topology information and per-frame particle
// state. WriteTopology is called exactly once, before the first
// WriteFrame call.
type Sink interface {
	WriteTopology(conf *blobmc.Configuration) error
	WriteFrame(step int, conf *blobmc.Configuration) error
	Close() error
}

// VTFWriter emits a VTF-family trajectory: a structure block (VSF,
// written once by WriteTopology) followed by one coordinate block (VCF)
// per frame, plus an ancillary patch-vector line per particle per frame.
type VTFWriter struct {
	w     *bufio.Writer
	runID string
}

// NewVTFWriter wraps w, tagging the output with runID so concurrent runs
// writing to a shared results directory stay distinguishable.
func NewVTFWriter(w io.Writer, runID string) *VTFWriter {
	return &VTFWriter{w: bufio.NewWriter(w), runID: runID}
}

func (v *VTFWriter) WriteTopology(conf *blobmc.Configuration) error {
	fmt.Fprintf(v.w, "# run %s\n", v.runID)
	fmt.Fprintf(v.w, "unitcell %g %g %g\n", conf.Box.Edge(), conf.Box.Edge(), conf.Box.Edge())

	for _, m := range conf.Monomers {
		for _, p := range m.Particles() {
			fmt.Fprintf(v.w, "atom %d radius %g type %d resid %d\n", p.Index(), conf.BeadRadius, p.Type(), m.Index())
		}
	}
	return v.w.Flush()
}

func (v *VTFWriter) WriteFrame(step int, conf *blobmc.Configuration) error {
	fmt.Fprintf(v.w, "timestep indexed\n# step %d\n", step)
	for _, m := range conf.Monomers {
		for _, p := range m.Particles() {
			pos := p.Position(blobmc.Current)
			fmt.Fprintf(v.w, "%d %g %g %g\n", p.Index(), pos[0], pos[1], pos[2])
		}
	}

	fmt.Fprintf(v.w, "# patch vectors, step %d\n", step)
	for _, m := range conf.Monomers {
		for _, p := range m.Particles() {
			o := p.Orientation(blobmc.Current)
			fmt.Fprintf(v.w, "%d %g %g %g %g %g %g\n",
				p.Index(), o.PatchNorm[0], o.PatchNorm[1], o.PatchNorm[2],
				o.PatchOrient[0], o.PatchOrient[1], o.PatchOrient[2])
		}
	}
	return v.w.Flush()
}

func (v *VTFWriter) Close() error {
	return v.w.Flush()
}

// NopSink discards every call; useful when a caller wants to run without
// writing trajectory output.
type NopSink struct{}

func (NopSink) WriteTopology(conf *blobmc.Configuration) error      { return nil }
func (NopSink) WriteFrame(step int, conf *blobmc.Configuration) error { return nil }
func (NopSink) Close() error                                         { return nil }

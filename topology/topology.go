// Package topology decodes the topology input (a sequence of monomer
// records, each an ordered sequence of particle records) and builds a
// *blobmc.Configuration from it.
package topology

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cumberworth/blobmc"
)

// ParticleRecord is one particle's entry in a monomer record: an index
// within the monomer, a domain label (opaque to the core; Build does not use
// it), a form tag, an integer type, a position, and 0-2 patch direction
// vectors consistent with the form.
type ParticleRecord struct {
	Index        int        `json:"index"`
	Domain       string     `json:"domain"`
	Form         string     `json:"form"`
	Type         int        `json:"type"`
	Position     [3]float64 `json:"position"`
	PatchNorm    [3]float64 `json:"patch_norm,omitempty"`
	PatchOrient  [3]float64 `json:"patch_orient,omitempty"`
	PatchOrient2 [3]float64 `json:"patch_orient2,omitempty"`
}

// MonomerRecord is one monomer's entry: an integer index, an initial
// conformer in {+1,-1}, and its ordered particle records.
type MonomerRecord struct {
	Index     int              `json:"index"`
	Conformer int              `json:"conformer"`
	Particles []ParticleRecord `json:"particles"`
}

// Snapshot is the fully expanded topology: cubic box length, the common
// bead radius, and every monomer record.
type Snapshot struct {
	BoxLength  float64         `json:"box_length"`
	BeadRadius float64         `json:"bead_radius"`
	Monomers   []MonomerRecord `json:"monomers"`
}

// Decode reads a Snapshot from JSON.
func Decode(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("topology: decode: %w", err)
	}
	return &snap, nil
}

func parseForm(tag string) (blobmc.ParticleForm, error) {
	switch tag {
	case "SimpleParticle":
		return blobmc.SimpleForm, nil
	case "PatchyParticle":
		return blobmc.PatchyForm, nil
	case "OrientedPatchyParticle":
		return blobmc.OrientedPatchyForm, nil
	case "DoubleOrientedPatchyParticle":
		return blobmc.DoubleOrientedPatchyForm, nil
	default:
		return 0, fmt.Errorf("topology: unknown particle form tag %q", tag)
	}
}

func vec(a [3]float64) mgl64.Vec3 { return mgl64.Vec3{a[0], a[1], a[2]} }

// Build constructs a box and every monomer/particle named in snap,
// returning a ready-to-use *blobmc.Configuration. An unrecognised form tag
// or any per-particle construction error is fatal.
func Build(snap *Snapshot) (*blobmc.Configuration, error) {
	box := blobmc.NewBox(snap.BoxLength)

	monomers := make([]*blobmc.Monomer, 0, len(snap.Monomers))
	for _, mrec := range snap.Monomers {
		if mrec.Conformer != 1 && mrec.Conformer != -1 {
			return nil, fmt.Errorf("topology: monomer %d: conformer must be +1 or -1, got %d", mrec.Index, mrec.Conformer)
		}

		particles := make([]blobmc.Particle, 0, len(mrec.Particles))
		for _, prec := range mrec.Particles {
			form, err := parseForm(prec.Form)
			if err != nil {
				return nil, fmt.Errorf("topology: monomer %d particle %d: %w", mrec.Index, prec.Index, err)
			}
			p, err := blobmc.NewParticle(form, prec.Index, prec.Type, box,
				vec(prec.Position), vec(prec.PatchNorm), vec(prec.PatchOrient), vec(prec.PatchOrient2))
			if err != nil {
				return nil, fmt.Errorf("topology: monomer %d particle %d: %w", mrec.Index, prec.Index, err)
			}
			particles = append(particles, p)
		}

		monomers = append(monomers, blobmc.NewMonomer(mrec.Index, box, mrec.Conformer, particles))
	}

	conf := blobmc.NewConfiguration(box, monomers)
	conf.BeadRadius = snap.BeadRadius
	return conf, nil
}

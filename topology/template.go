package topology

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cumberworth/blobmc"
)

// MonomerTypeTemplate is a reusable monomer shape keyed by name: the
// particle records below are expressed in the monomer's own local frame
// (centred however the template author likes; MonomerInstance below places and
// orients it). A handful of type templates instantiated many times
// replaces repeating full per-particle records per monomer.
type MonomerTypeTemplate struct {
	Name      string           `json:"name"`
	Particles []ParticleRecord `json:"particles"`
}

// MonomerInstance places one instantiation of a named type template into
// the world: an index, initial conformer, a world-space translation
// applied to every local particle position, and an optional rotation
// (axis/angle) applied to every local position and patch vector before
// translation.
type MonomerInstance struct {
	Index       int        `json:"index"`
	Type        string     `json:"type"`
	Conformer   int        `json:"conformer"`
	Position    [3]float64 `json:"position"`
	AxisAngle   [4]float64 `json:"axis_angle,omitempty"` // [axisX, axisY, axisZ, angleRadians]
	HasRotation bool       `json:"has_rotation,omitempty"`
}

// Expand instantiates every MonomerInstance against its named template,
// producing the equivalent fully expanded Snapshot. This is additive sugar
// over the literal per-particle format Build consumes directly; it never
// replaces it.
func Expand(boxLength, beadRadius float64, templates []MonomerTypeTemplate, instances []MonomerInstance) (*Snapshot, error) {
	byName := make(map[string]MonomerTypeTemplate, len(templates))
	for _, t := range templates {
		byName[t.Name] = t
	}

	snap := &Snapshot{BoxLength: boxLength, BeadRadius: beadRadius}

	for _, inst := range instances {
		tmpl, ok := byName[inst.Type]
		if !ok {
			return nil, fmt.Errorf("topology: instance %d references unknown monomer type %q", inst.Index, inst.Type)
		}

		var rot mgl64.Mat3
		rotate := inst.HasRotation
		if rotate {
			axis := mgl64.Vec3{inst.AxisAngle[0], inst.AxisAngle[1], inst.AxisAngle[2]}
			rot = blobmc.RotMat(axis, inst.AxisAngle[3])
		}

		offset := mgl64.Vec3{inst.Position[0], inst.Position[1], inst.Position[2]}

		mrec := MonomerRecord{Index: inst.Index, Conformer: inst.Conformer}
		for _, prec := range tmpl.Particles {
			placed := prec
			pos := vec(prec.Position)
			norm := vec(prec.PatchNorm)
			or1 := vec(prec.PatchOrient)
			or2 := vec(prec.PatchOrient2)
			if rotate {
				pos = rot.Mul3x1(pos)
				norm = rot.Mul3x1(norm)
				or1 = rot.Mul3x1(or1)
				or2 = rot.Mul3x1(or2)
			}
			pos = pos.Add(offset)
			placed.Position = [3]float64{pos[0], pos[1], pos[2]}
			placed.PatchNorm = [3]float64{norm[0], norm[1], norm[2]}
			placed.PatchOrient = [3]float64{or1[0], or1[1], or1[2]}
			placed.PatchOrient2 = [3]float64{or2[0], or2[1], or2[2]}
			mrec.Particles = append(mrec.Particles, placed)
		}

		snap.Monomers = append(snap.Monomers, mrec)
	}

	return snap, nil
}

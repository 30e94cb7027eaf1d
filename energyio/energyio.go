// Package energyio decodes the energy/interactions input (a potentials
// table plus two interaction tables, same-conformer and
// different-conformer) and builds a *blobmc.Energy from it.
package energyio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cumberworth/blobmc"
)

// PotentialRecord names one potential by index, its form tag, and the
// parameters that form needs. Parameters unused by Form are ignored.
type PotentialRecord struct {
	Index   int     `json:"index"`
	Form    string  `json:"form"`
	Eps     float64 `json:"eps,omitempty"`
	SigmaH  float64 `json:"sigma_h,omitempty"`
	SigmaL  float64 `json:"sigma_l,omitempty"`
	SigmaA  float64 `json:"sigma_a,omitempty"`
	SigmaA1 float64 `json:"sigma_a1,omitempty"`
	SigmaA2 float64 `json:"sigma_a2,omitempty"`
	SigmaT  float64 `json:"sigma_t,omitempty"`
	Rc      float64 `json:"r_c,omitempty"`
}

func buildPotential(rec PotentialRecord) (blobmc.Potential, error) {
	switch rec.Form {
	case "Zero":
		return blobmc.Zero{}, nil
	case "HardSphere":
		return blobmc.HardSphere{SigmaH: rec.SigmaH}, nil
	case "SquareWell":
		return blobmc.SquareWell{Eps: rec.Eps, Rc: rec.Rc}, nil
	case "HarmonicWell":
		return blobmc.HarmonicWell{Eps: rec.Eps, Rc: rec.Rc}, nil
	case "AngularHarmonicWell":
		return blobmc.AngularHarmonicWell{Eps: rec.Eps, Rc: rec.Rc, SigmaA: rec.SigmaA}, nil
	case "ShiftedLJ":
		return blobmc.NewShiftedLJ(rec.Eps, rec.SigmaL, rec.Rc), nil
	case "Patchy":
		return blobmc.NewPatchyPotential(rec.Eps, rec.SigmaL, rec.Rc, rec.SigmaA1, rec.SigmaA2), nil
	case "OrientedPatchy":
		return blobmc.NewOrientedPatchyPotential(rec.Eps, rec.SigmaL, rec.Rc, rec.SigmaA1, rec.SigmaA2, rec.SigmaT), nil
	case "DoubleOrientedPatchy":
		return blobmc.NewDoubleOrientedPatchyPotential(rec.Eps, rec.SigmaL, rec.Rc, rec.SigmaA1, rec.SigmaA2, rec.SigmaT), nil
	default:
		return nil, fmt.Errorf("energyio: unknown potential form tag %q", rec.Form)
	}
}

// InteractionRecord assigns one registered potential, by index, to a list
// of particle-type pairs.
type InteractionRecord struct {
	TypeA        []int `json:"type_a"`
	TypeB        []int `json:"type_b"`
	PotentialIdx int   `json:"potential_index"`
}

// Tables is the decoded input: the potentials table plus the two
// independent interaction tables. A legacy single "any" option, if
// present, must appear in both SameConformer and DiffConformer; that is
// the file author's responsibility.
type Tables struct {
	Potentials    []PotentialRecord   `json:"potentials"`
	SameConformer []InteractionRecord `json:"same_conformer"`
	DiffConformer []InteractionRecord `json:"diff_conformer"`
	MaxCutoff     float64             `json:"max_cutoff"`
}

// Decode reads Tables from JSON.
func Decode(r io.Reader) (*Tables, error) {
	var t Tables
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("energyio: decode: %w", err)
	}
	return &t, nil
}

func expand(potentials map[int]blobmc.Potential, recs []InteractionRecord) ([]blobmc.PairRegistration, error) {
	var out []blobmc.PairRegistration
	for _, rec := range recs {
		pot, ok := potentials[rec.PotentialIdx]
		if !ok {
			return nil, fmt.Errorf("energyio: interaction record references unknown potential index %d", rec.PotentialIdx)
		}
		for _, a := range rec.TypeA {
			for _, b := range rec.TypeB {
				out = append(out, blobmc.PairRegistration{TypeA: a, TypeB: b, Potential: pot})
			}
		}
	}
	return out, nil
}

// Build constructs a *blobmc.Energy from Tables, for particles living in
// box. An unknown form tag or an interaction record naming an
// unregistered potential index is fatal.
func Build(box *blobmc.Box, t *Tables) (*blobmc.Energy, error) {
	potentials := make(map[int]blobmc.Potential, len(t.Potentials))
	for _, rec := range t.Potentials {
		pot, err := buildPotential(rec)
		if err != nil {
			return nil, err
		}
		potentials[rec.Index] = pot
	}

	same, err := expand(potentials, t.SameConformer)
	if err != nil {
		return nil, err
	}
	diff, err := expand(potentials, t.DiffConformer)
	if err != nil {
		return nil, err
	}

	return blobmc.NewEnergy(box, same, diff, t.MaxCutoff), nil
}

package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPlacesTemplateAtInstancePosition(t *testing.T) {
	templates := []MonomerTypeTemplate{
		{Name: "dimer", Particles: []ParticleRecord{
			{Index: 0, Form: "SimpleParticle", Position: [3]float64{0, 0, 0}},
			{Index: 1, Form: "SimpleParticle", Position: [3]float64{1, 0, 0}},
		}},
	}
	instances := []MonomerInstance{
		{Index: 0, Type: "dimer", Conformer: 1, Position: [3]float64{10, 0, 0}},
	}

	snap, err := Expand(50, 0.5, templates, instances)
	require.NoError(t, err)
	require.Len(t, snap.Monomers, 1)
	require.Len(t, snap.Monomers[0].Particles, 2)
	assert.Equal(t, [3]float64{10, 0, 0}, snap.Monomers[0].Particles[0].Position)
	assert.Equal(t, [3]float64{11, 0, 0}, snap.Monomers[0].Particles[1].Position)
}

func TestExpandAppliesRotationBeforeTranslation(t *testing.T) {
	templates := []MonomerTypeTemplate{
		{Name: "single", Particles: []ParticleRecord{
			{Index: 0, Form: "SimpleParticle", Position: [3]float64{1, 0, 0}},
		}},
	}
	instances := []MonomerInstance{
		{Index: 0, Type: "single", Conformer: 1, Position: [3]float64{0, 0, 0},
			AxisAngle: [4]float64{0, 0, 1, 3.14159265358979}, HasRotation: true},
	}

	snap, err := Expand(50, 0.5, templates, instances)
	require.NoError(t, err)
	pos := snap.Monomers[0].Particles[0].Position
	assert.InDelta(t, -1, pos[0], 1e-6)
	assert.InDelta(t, 0, pos[1], 1e-6)
}

func TestExpandRejectsUnknownTemplateType(t *testing.T) {
	instances := []MonomerInstance{{Index: 0, Type: "missing", Conformer: 1}}
	_, err := Expand(50, 0.5, nil, instances)
	require.Error(t, err)
}

func TestExpandResultBuildsIntoConfiguration(t *testing.T) {
	templates := []MonomerTypeTemplate{
		{Name: "single", Particles: []ParticleRecord{
			{Index: 0, Form: "SimpleParticle", Position: [3]float64{0, 0, 0}},
		}},
	}
	instances := []MonomerInstance{
		{Index: 0, Type: "single", Conformer: 1, Position: [3]float64{1, 2, 3}},
	}

	snap, err := Expand(50, 0.5, templates, instances)
	require.NoError(t, err)

	conf, err := Build(snap)
	require.NoError(t, err)
	require.Len(t, conf.Monomers, 1)
}

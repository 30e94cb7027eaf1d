package checkpoint

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumberworth/blobmc"

	"github.com/cumberworth/blobmc/topology"
)

func TestWriteThenReadRoundTripsConfiguration(t *testing.T) {
	box := blobmc.NewBox(30)
	m0 := blobmc.NewMonomer(0, box, 1, []blobmc.Particle{
		blobmc.NewPatchy(0, 2, box, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, 1}),
	})
	m1 := blobmc.NewMonomer(1, box, -1, []blobmc.Particle{
		blobmc.NewSimple(0, 0, box, mgl64.Vec3{-1, -2, -3}),
	})
	conf := blobmc.NewConfiguration(box, []*blobmc.Monomer{m0, m1})
	conf.BeadRadius = 0.4

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, 42, conf))

	step, rebuilt, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 42, step)
	assert.Equal(t, 0.4, rebuilt.BeadRadius)
	require.Len(t, rebuilt.Monomers, 2)
	assert.Equal(t, 1, rebuilt.Monomers[0].Conformer(blobmc.Current))
	assert.Equal(t, -1, rebuilt.Monomers[1].Conformer(blobmc.Current))

	pos := rebuilt.Monomers[0].Particle(0).Position(blobmc.Current)
	assert.InDelta(t, 1, pos[0], 1e-9)
	assert.InDelta(t, 2, pos[1], 1e-9)
	assert.InDelta(t, 3, pos[2], 1e-9)
}

func TestReadRejectsMalformedJSON(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("{not json")))
	require.Error(t, err)
}

// toSnapshot is exercised directly (same package) with a structural diff:
// a field-by-field cmp.Diff catches an accidental dropped/renamed field
// that a looser assertion could miss.
func TestToSnapshotProducesExpectedRecordShape(t *testing.T) {
	box := blobmc.NewBox(10)
	m := blobmc.NewMonomer(0, box, 1, []blobmc.Particle{
		blobmc.NewSimple(0, 7, box, mgl64.Vec3{1, 0, 0}),
	})
	conf := blobmc.NewConfiguration(box, []*blobmc.Monomer{m})
	conf.BeadRadius = 0.5

	got := toSnapshot(conf)
	want := &topology.Snapshot{
		BoxLength:  10,
		BeadRadius: 0.5,
		Monomers: []topology.MonomerRecord{
			{
				Index:     0,
				Conformer: 1,
				Particles: []topology.ParticleRecord{
					{Index: 0, Form: "SimpleParticle", Type: 7, Position: [3]float64{1, 0, 0}},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("toSnapshot mismatch (-want +got):\n%s", diff)
	}
}

package sim

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

type countingMetric struct {
	n    int
	last float64
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(_ *physics.System, t float64) {
	m.n++
	m.last = t
}
func (m *countingMetric) Value() float64 { return float64(m.n) }
func (m *countingMetric) Reset()         { m.n, m.last = 0, 0 }

func drifting() []physics.Body {
	b := physics.NewBody()
	b.Velocity = dynamo.V(1, 0, 0)
	return []physics.Body{b}
}

func TestRunner_Run(t *testing.T) {
	r := NewRunner(drifting(), nil)
	m := &countingMetric{}
	r.AddMetric(m)

	res, err := r.Run(context.Background(), RunConfig{Dt: 0.1, Steps: 10})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Steps)
	assert.InDelta(t, 1.0, res.Time, 1e-9)
	require.Len(t, res.Bodies, 1)
	assert.InDelta(t, 1.0, res.Bodies[0].Position.X, 1e-9)
	assert.Len(t, res.Energy, 11)
	assert.InDelta(t, 0, res.EnergyDrift, 1e-12)
	assert.Equal(t, 10.0, res.Metrics["count"])
	assert.InDelta(t, 1.0, m.last, 1e-9)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)
}

func TestRunner_SampleEvery(t *testing.T) {
	r := NewRunner(drifting(), nil)
	res, err := r.Run(context.Background(), RunConfig{Dt: 0.1, Steps: 10, SampleEvery: 5})
	require.NoError(t, err)
	assert.Len(t, res.Energy, 3)
}

func TestRunner_InvalidConfig(t *testing.T) {
	r := NewRunner(drifting(), nil)

	_, err := r.Run(context.Background(), RunConfig{Dt: 0, Steps: 10})
	assert.Error(t, err)
	_, err = r.Run(context.Background(), RunConfig{Dt: 0.1, Steps: 0})
	assert.Error(t, err)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(drifting(), nil)
	res, err := r.Run(ctx, RunConfig{Dt: 0.1, Steps: 100})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Zero(t, res.Steps)
}

func TestRunner_DoesNotMutateInput(t *testing.T) {
	bodies := drifting()
	r := NewRunner(bodies, nil)
	_, err := r.Run(context.Background(), RunConfig{Dt: 0.1, Steps: 5})
	require.NoError(t, err)
	assert.Equal(t, dynamo.Zero, bodies[0].Position)
}

func TestEnsemble_Run(t *testing.T) {
	e := NewEnsemble(2, nil)
	for _, steps := range []int{3, 5, 7} {
		e.Add(Job{
			Bodies:  drifting(),
			Config:  RunConfig{Dt: 0.1, Steps: steps},
			Metrics: func() []Metric { return []Metric{&countingMetric{}} },
		})
	}

	results, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	seen := map[string]bool{}
	for i, steps := range []int{3, 5, 7} {
		assert.Equal(t, steps, results[i].Steps)
		assert.Equal(t, float64(steps), results[i].Metrics["count"])
		seen[results[i].RunID] = true
	}
	assert.Len(t, seen, 3)
}

func TestEnsemble_FirstErrorWins(t *testing.T) {
	e := NewEnsemble(0, nil)
	e.Add(Job{Bodies: drifting(), Config: RunConfig{Dt: 0.1, Steps: 3}})
	e.Add(Job{Bodies: drifting(), Config: RunConfig{Dt: -1, Steps: 3}})

	results, err := e.Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, results)
}

package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/physics"
)

type RunConfig struct {
	Dt    float64
	Steps int
	// SampleEvery controls how often the energy series is recorded.
	SampleEvery int
	// MaxDt is passed through to the state; see Options.MaxDt.
	MaxDt float64
	// Integrator defaults to semi-implicit Euler.
	Integrator physics.Integrator
}

type Result struct {
	RunID       string             `json:"run_id"`
	Name        string             `json:"name"`
	Steps       int                `json:"steps"`
	Time        float64            `json:"time"`
	Bodies      []physics.Body     `json:"bodies"`
	Energy      []float64          `json:"energy"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Elapsed     time.Duration      `json:"elapsed"`
}

// Runner drives a State without a window, with a fixed step per tick.
type Runner struct {
	bodies  []physics.Body
	metrics []Metric
	log     *zap.Logger
}

func NewRunner(bodies []physics.Body, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{bodies: bodies, log: log}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}
	sample := cfg.SampleEvery
	if sample <= 0 {
		sample = 1
	}

	clock := NewManualClock()
	opts := DefaultOptions()
	opts.Clock = clock
	opts.MaxDt = cfg.MaxDt
	opts.Integrator = cfg.Integrator
	opts.Logger = r.log
	st := New(opts)
	for _, b := range r.bodies {
		st.AddBodyWith(b)
	}
	st.SetRunning(true)

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		RunID:   uuid.NewString(),
		Energy:  make([]float64, 0, cfg.Steps/sample+1),
		Metrics: make(map[string]float64),
	}
	log := r.log.With(zap.String("run_id", result.RunID))
	log.Debug("headless run started",
		zap.Int("bodies", len(r.bodies)),
		zap.Int("steps", cfg.Steps),
		zap.Float64("dt", cfg.Dt),
		zap.String("integrator", integratorName(cfg.Integrator)))

	start := time.Now()
	initial := st.System().Energy()
	result.Energy = append(result.Energy, initial)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		clock.Advance(cfg.Dt)
		st.Tick(camera.Input{FrameDelta: cfg.Dt})
		result.Steps++

		for _, m := range r.metrics {
			m.Observe(st.System(), st.Time())
		}
		if (i+1)%sample == 0 {
			result.Energy = append(result.Energy, st.System().Energy())
		}
	}

	result.Elapsed = time.Since(start)
	result.Time = st.Time()
	result.Bodies = st.Bodies()
	if initial != 0 {
		final := st.System().Energy()
		result.EnergyDrift = abs(final-initial) / abs(initial)
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.Debug("headless run finished", zap.Duration("elapsed", result.Elapsed), zap.Float64("energy_drift", result.EnergyDrift))
	return result, nil
}

func integratorName(in physics.Integrator) string {
	if in == nil {
		return "euler"
	}
	return in.Name()
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Job is one headless run inside an Ensemble.
type Job struct {
	Name    string
	Bodies  []physics.Body
	Config  RunConfig
	Metrics func() []Metric
}

// Ensemble runs independent jobs concurrently. Each job owns its own State,
// so nothing is shared between goroutines.
type Ensemble struct {
	runner func([]physics.Body) *Runner
	jobs   []Job
	limit  int
}

func NewEnsemble(limit int, runner func([]physics.Body) *Runner) *Ensemble {
	if runner == nil {
		runner = func(b []physics.Body) *Runner { return NewRunner(b, nil) }
	}
	return &Ensemble{runner: runner, limit: limit}
}

func (e *Ensemble) Add(j Job) { e.jobs = append(e.jobs, j) }

// Run executes every job and returns results in job order. The first error
// cancels the remaining jobs.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, job := range e.jobs {
		g.Go(func() error {
			r := e.runner(job.Bodies)
			if job.Metrics != nil {
				for _, m := range job.Metrics() {
					r.AddMetric(m)
				}
			}
			res, err := r.Run(ctx, job.Config)
			if err != nil {
				return err
			}
			res.Name = job.Name
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

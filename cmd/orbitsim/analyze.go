package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()

	bodies, err := cfg.InitialBodies()
	if err != nil {
		return err
	}
	if len(bodies) == 0 {
		return fmt.Errorf("scenario %s has no bodies", scenarioName(cfg))
	}
	if dt <= 0 || duration <= 0 {
		return fmt.Errorf("dt and duration must be positive")
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Simulation.Integrator = integrator
	}
	name := cfg.Simulation.Integrator
	if _, err := integrators.New(name); err != nil {
		return fmt.Errorf("%w (available: %v)", err, integrators.Names())
	}
	newIntegrator := func() physics.Integrator {
		in, _ := integrators.New(name)
		return in
	}

	fmt.Printf("analyzing %s for %gs (dt=%g)...\n\n", scenarioName(cfg), duration, dt)
	lambda := analysis.Lyapunov(bodies, newIntegrator, analysis.LyapunovConfig{
		Dt:           dt,
		Duration:     duration,
		Perturbation: perturbation,
	})
	verdict := "regular"
	if lambda > 0.01 {
		verdict = "chaotic"
	}
	fmt.Printf("lyapunov exponent  %.4g  (%s)\n\n", lambda, verdict)

	n := int(duration / dt)
	paths := analysis.Trajectories(bodies, newIntegrator(), dt, n)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tPERIOD X\tPERIOD Z")
	for i, b := range bodies {
		px := analysis.DominantPeriod(analysis.Component(paths[i], 0), dt)
		pz := analysis.DominantPeriod(analysis.Component(paths[i], 2), dt)
		fmt.Fprintf(w, "%d\t%.3e\t%s\t%s\n", i, b.Mass, periodText(px), periodText(pz))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if svgOut != "" {
		colors := make([]dynamo.Color, len(bodies))
		for i, b := range bodies {
			colors[i] = b.Color
		}
		if err := os.WriteFile(svgOut, []byte(export.TrajectorySVG(paths, colors, 800, 800)), 0o644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func periodText(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fs", p)
}

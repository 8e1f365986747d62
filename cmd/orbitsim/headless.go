package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
)

// stabilityRadius is the distance from the barycentre, in world units,
// beyond which a body counts as escaped.
const stabilityRadius = 1e5

func defaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewStability(stabilityRadius),
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()

	bodies, err := cfg.InitialBodies()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Simulation.Integrator = integrator
	}
	in, err := integrators.New(cfg.Simulation.Integrator)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, integrators.Names())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := sim.NewRunner(bodies, log.Named("run"))
	for _, m := range defaultMetrics() {
		r.AddMetric(m)
	}

	name := scenarioName(cfg)
	if !jsonOut {
		fmt.Printf("running %s with %s (%d bodies, %d steps of %gs)...\n", name, in.Name(), len(bodies), steps, dt)
	}
	res, err := r.Run(ctx, sim.RunConfig{
		Dt:          dt,
		Steps:       steps,
		SampleEvery: sampleStep,
		MaxDt:       cfg.Simulation.MaxDt,
		Integrator:  in,
	})
	if err != nil {
		return err
	}
	res.Name = name

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Printf("run %s finished in %v (simulated %.2fs)\n\n", res.RunID, res.Elapsed.Round(time.Microsecond), res.Time)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMASS\tX\tY\tZ\tVX\tVY\tVZ")
	for _, b := range res.Bodies {
		fmt.Fprintf(w, "%d\t%.3e\t%.2f\t%.2f\t%.2f\t%.3f\t%.3f\t%.3f\n",
			b.ID, b.Mass, b.Position.X, b.Position.Y, b.Position.Z, b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range defaultMetrics() {
		fmt.Fprintf(w, "%s\t%.6g\n", m.Name(), res.Metrics[m.Name()])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if svgOut != "" {
		if err := writeFrameSVG(svgOut, cfg, res.Bodies); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}

	if showPlot && len(res.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(res.Energy, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("Total energy")))
	}
	return nil
}

// writeFrameSVG renders bodies around their mass center the way the
// terminal viewer would and saves the frame.
func writeFrameSVG(path string, cfg *config.Config, bodies []physics.Body) error {
	st := sim.New(cfg.SimOptions())
	for _, b := range bodies {
		st.AddBodyWith(b)
	}
	st.SetFocus(sim.MassCenterFocus())
	snap := st.Tick(camera.Input{})

	scene := viz.NewScene(120, 48)
	scene.Render(snap, -1)
	return os.WriteFile(path, []byte(export.CanvasSVG(scene.Canvas(), 4)), 0o644)
}

func runBench(cmd *cobra.Command, args []string) error {
	_, log, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runLog := log.Named("bench")
	e := sim.NewEnsemble(jobs, func(b []physics.Body) *sim.Runner { return sim.NewRunner(b, runLog) })
	var names []string
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		if len(p.Bodies()) == 0 {
			continue
		}
		names = append(names, name)
		for _, iname := range integrators.Names() {
			// one integrator per job: they are not safe for concurrent use
			in, _ := integrators.New(iname)
			e.Add(sim.Job{
				Name:    name + "/" + iname,
				Bodies:  p.Bodies(),
				Config:  sim.RunConfig{Dt: dt, Steps: benchSteps, SampleEvery: benchSteps, Integrator: in},
				Metrics: defaultMetrics,
			})
		}
	}

	fmt.Printf("benchmarking %d presets x %d integrators, %d steps each\n\n", len(names), len(integrators.Names()), benchSteps)
	start := time.Now()
	results, err := e.Run(ctx)
	if err != nil {
		return err
	}
	total := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tBODIES\tSTEPS\tTIME\tSTEPS/SEC\tENERGY DRIFT")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.2e\n",
			res.Name, len(res.Bodies), res.Steps, res.Elapsed.Round(time.Microsecond),
			float64(res.Steps)/res.Elapsed.Seconds(), res.Metrics["energy_drift"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Debug("bench finished", zap.Duration("wall", total), zap.Int("runs", len(results)))
	fmt.Printf("\nwall time %v\n", total.Round(time.Millisecond))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, len(p.Bodies()), p.Description)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(config.DefaultConfig())
	}
	if err := config.Save(args[0], config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

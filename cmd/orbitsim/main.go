package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/gui"
	"github.com/san-kum/orbitsim/internal/viz"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	// run and bench
	steps      int
	benchSteps int
	dt         float64
	sampleStep int
	showPlot   bool
	jsonOut    bool
	jobs       int
	integrator string
	svgOut     string
	// analyze
	duration     float64
	perturbation float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orbitsim [scenario]",
		Short:         "interactive n-body gravity sandbox",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	guiCmd := &cobra.Command{
		Use:   "gui [scenario]",
		Short: "open the 3D window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [scenario]",
		Short: "terminal viewer; without a scenario a menu is shown",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "headless run with a fixed step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&steps, "steps", 10000, "number of steps")
	runCmd.Flags().Float64Var(&dt, "dt", 0.01, "step size in seconds")
	runCmd.Flags().IntVar(&sampleStep, "sample", 10, "record energy every n steps")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot energy")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as json")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final frame as svg to this file")
	runCmd.Flags().StringVar(&integrator, "integrator", "", "euler, explicit-euler, verlet or rk4 (default from config)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run every preset with every integrator concurrently",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 20000, "steps per preset")
	benchCmd.Flags().Float64Var(&dt, "dt", 0.01, "step size in seconds")
	benchCmd.Flags().IntVar(&jobs, "jobs", 0, "concurrent runs (0 = unlimited)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [scenario]",
		Short: "estimate the Lyapunov exponent and orbital periods",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().Float64Var(&dt, "dt", 0.01, "step size in seconds")
	analyzeCmd.Flags().Float64Var(&duration, "duration", 200, "simulated seconds")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "initial offset of the shadow trajectory")
	analyzeCmd.Flags().StringVar(&integrator, "integrator", "", "integrator (default from config)")
	analyzeCmd.Flags().StringVar(&svgOut, "svg", "", "write the trajectories as svg to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default config to path, or print it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, benchCmd, analyzeCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies the global flags that were set
// and an optional scenario argument, and builds the logger.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, *zap.Logger, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if len(args) > 0 {
		if _, err := config.GetPreset(args[0]); err != nil {
			return nil, nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg.Simulation.Scenario = args[0]
		cfg.Bodies = nil
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}

func scenarioName(cfg *config.Config) string {
	if len(cfg.Bodies) > 0 {
		return "custom"
	}
	return cfg.Simulation.Scenario
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := cfg.SimOptions()
	opts.Logger = log.Named("sim")
	st, err := cfg.NewState(opts)
	if err != nil {
		return err
	}

	gui.Run(st, scenarioName(cfg), cfg.Window, log.Named("gui"))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	// Warnings go out before the viewer takes over the terminal.
	applyTheme(cfg.Terminal.Theme, log)

	// The viewer owns the terminal; only a log file is safe to write to.
	if cfg.Logging.File == "" {
		log.Sync()
		log = zap.NewNop()
	}
	defer log.Sync()

	opts := cfg.SimOptions()
	opts.Logger = log.Named("sim")

	if len(args) == 0 && len(cfg.Bodies) == 0 {
		return viz.RunInteractive(cfg, opts, log.Named("tui"))
	}

	st, err := cfg.NewState(opts)
	if err != nil {
		return err
	}
	return viz.Run(st, scenarioName(cfg), log.Named("tui"))
}

func applyTheme(name string, log *zap.Logger) {
	if !viz.SetTheme(name) {
		log.Warn("unknown theme, using default",
			zap.String("theme", name), zap.Strings("available", viz.ThemeNames()))
	}
}

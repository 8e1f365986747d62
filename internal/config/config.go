package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	DefaultScenario  = "triangle"
	DefaultTimeScale = 1.0
	DefaultWidth     = 1260
	DefaultHeight    = 768
	DefaultTitle     = "Three-body problem"
	DefaultFPS       = 60
)

type Config struct {
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Window     WindowConfig     `yaml:"window" toml:"window"`
	Terminal   TerminalConfig   `yaml:"terminal" toml:"terminal"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	// Bodies, when set, replaces the scenario.
	Bodies []BodyConfig `yaml:"bodies,omitempty" toml:"bodies,omitempty"`
}

type SimulationConfig struct {
	Scenario     string  `yaml:"scenario" toml:"scenario"`
	StartRunning bool    `yaml:"start_running" toml:"start_running"`
	TimeScale    float64 `yaml:"time_scale" toml:"time_scale"`
	MaxDt        float64 `yaml:"max_dt" toml:"max_dt"` // 0 = unbounded
	Integrator   string  `yaml:"integrator" toml:"integrator"`
}

type CameraConfig struct {
	MoveSpeed float64 `yaml:"move_speed" toml:"move_speed"`
	LookSpeed float64 `yaml:"look_speed" toml:"look_speed"`
	Yaw       float64 `yaml:"yaw" toml:"yaw"`
	Pitch     float64 `yaml:"pitch" toml:"pitch"`
	Radius    float64 `yaml:"radius" toml:"radius"`
	MinRadius float64 `yaml:"min_radius" toml:"min_radius"`
}

type WindowConfig struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
	FPS    int    `yaml:"fps" toml:"fps"`
}

type TerminalConfig struct {
	Theme string `yaml:"theme" toml:"theme"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" or "console"
	// File receives log output instead of stderr. The terminal viewer
	// discards logs unless this is set.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
}

type BodyConfig struct {
	Mass     float64   `yaml:"mass" toml:"mass"`
	Radius   float64   `yaml:"radius,omitempty" toml:"radius,omitempty"`
	Position []float64 `yaml:"position" toml:"position"`
	Velocity []float64 `yaml:"velocity,omitempty" toml:"velocity,omitempty"`
	Color    []float64 `yaml:"color,omitempty" toml:"color,omitempty"`
}

func DefaultConfig() *Config {
	cam := camera.DefaultSettings()
	return &Config{
		Simulation: SimulationConfig{
			Scenario:   DefaultScenario,
			TimeScale:  DefaultTimeScale,
			Integrator: integrators.Default,
		},
		Camera: CameraConfig{
			MoveSpeed: cam.MoveSpeed,
			LookSpeed: cam.LookSpeed,
			Yaw:       cam.Yaw,
			Pitch:     cam.Pitch,
			Radius:    cam.Radius,
			MinRadius: cam.MinRadius,
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
			FPS:    DefaultFPS,
		},
		Terminal: TerminalConfig{Theme: "deepspace"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. Files ending in .toml are decoded as
// TOML, everything else as YAML. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = decodeTOML(data, cfg)
	} else {
		err = decodeYAML(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid value, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", dynamo.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	s := c.Simulation
	if s.TimeScale <= 0 {
		return invalid("simulation.time_scale must be positive, got %g", s.TimeScale)
	}
	if s.MaxDt < 0 {
		return invalid("simulation.max_dt must not be negative, got %g", s.MaxDt)
	}
	if _, err := integrators.New(s.Integrator); err != nil {
		return invalid("simulation.integrator: %v (available: %v)", err, integrators.Names())
	}
	if len(c.Bodies) == 0 {
		if _, err := GetPreset(s.Scenario); err != nil {
			return invalid("simulation.scenario: %v", err)
		}
	}

	cam := c.Camera
	if cam.MoveSpeed < 0 || cam.LookSpeed < 0 {
		return invalid("camera speeds must not be negative")
	}
	if cam.MinRadius < 0 || cam.Radius < 0 {
		return invalid("camera radii must not be negative")
	}

	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.FPS < 0 {
		return invalid("window.fps must not be negative, got %d", w.FPS)
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return invalid("logging.format must be console or json, got %q", c.Logging.Format)
	}

	for i, b := range c.Bodies {
		if err := b.validate(); err != nil {
			return invalid("bodies[%d]: %v", i, err)
		}
	}
	return nil
}

func (b BodyConfig) validate() error {
	if b.Mass < 0 {
		return fmt.Errorf("mass must not be negative, got %g", b.Mass)
	}
	if len(b.Position) != 3 {
		return fmt.Errorf("position needs 3 components, got %d", len(b.Position))
	}
	if b.Velocity != nil && len(b.Velocity) != 3 {
		return fmt.Errorf("velocity needs 3 components, got %d", len(b.Velocity))
	}
	if b.Color != nil && len(b.Color) != 3 {
		return fmt.Errorf("color needs 3 components, got %d", len(b.Color))
	}
	return nil
}

// Body converts the entry to a body. Missing radius and color take the
// defaults of physics.NewBody; out-of-range values are clamped.
func (b BodyConfig) Body() physics.Body {
	body := physics.NewBody()
	body.Mass = b.Mass
	if b.Radius != 0 {
		body.Radius = dynamo.Clamp(b.Radius, physics.MinRadius, physics.MaxRadius)
	}
	body.Position = vec(b.Position)
	body.Velocity = vec(b.Velocity)
	if len(b.Color) == 3 {
		body.Color = dynamo.Color{b.Color[0], b.Color[1], b.Color[2]}.Clamp()
	}
	return body
}

func vec(v []float64) dynamo.Vec3 {
	if len(v) != 3 {
		return dynamo.Vec3{}
	}
	return dynamo.V(v[0], v[1], v[2])
}

// InitialBodies returns the explicit body list if present, otherwise the
// bodies of the configured scenario.
func (c *Config) InitialBodies() ([]physics.Body, error) {
	if len(c.Bodies) > 0 {
		out := make([]physics.Body, len(c.Bodies))
		for i, b := range c.Bodies {
			out[i] = b.Body()
		}
		return out, nil
	}
	p, err := GetPreset(c.Simulation.Scenario)
	if err != nil {
		return nil, err
	}
	return p.Bodies(), nil
}

func (c *Config) CameraSettings() camera.Settings {
	s := camera.DefaultSettings()
	s.MoveSpeed = c.Camera.MoveSpeed
	s.LookSpeed = c.Camera.LookSpeed
	s.Yaw = c.Camera.Yaw
	s.Pitch = c.Camera.Pitch
	s.Radius = c.Camera.Radius
	s.MinRadius = c.Camera.MinRadius
	return s
}

// SimOptions builds the State options. The caller supplies the logger and,
// for headless use, a clock.
func (c *Config) SimOptions() sim.Options {
	opts := sim.DefaultOptions()
	opts.Camera = c.CameraSettings()
	opts.TimeScale = c.Simulation.TimeScale
	opts.MaxDt = c.Simulation.MaxDt
	if in, err := integrators.New(c.Simulation.Integrator); err == nil {
		opts.Integrator = in
	}
	return opts
}

// NewState builds a State from the config with its initial bodies loaded.
func (c *Config) NewState(opts sim.Options) (*sim.State, error) {
	bodies, err := c.InitialBodies()
	if err != nil {
		return nil, err
	}
	st := sim.New(opts)
	for _, b := range bodies {
		st.AddBodyWith(b)
	}
	st.SetRunning(c.Simulation.StartRunning)
	return st, nil
}

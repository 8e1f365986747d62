package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation.Scenario != DefaultScenario {
		t.Errorf("expected scenario %s, got %s", DefaultScenario, cfg.Simulation.Scenario)
	}
	if cfg.Window.Width != 1260 || cfg.Window.Height != 768 {
		t.Errorf("expected 1260x768 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Three-body problem" {
		t.Errorf("unexpected title %q", cfg.Window.Title)
	}
	if cfg.Simulation.MaxDt != 0 {
		t.Error("max_dt should default to unbounded")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitsim.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("save: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Camera != DefaultConfig().Camera {
		t.Errorf("camera changed on round trip: %+v", cfg.Camera)
	}
	if cfg.Window != DefaultConfig().Window {
		t.Errorf("window changed on round trip: %+v", cfg.Window)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "c.yaml", `
simulation:
  scenario: binary
  time_scale: 4
camera:
  radius: 12
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Simulation.Scenario != "binary" || cfg.Simulation.TimeScale != 4 {
		t.Errorf("simulation not applied: %+v", cfg.Simulation)
	}
	if cfg.Camera.Radius != 12 {
		t.Errorf("expected radius 12, got %f", cfg.Camera.Radius)
	}
	if cfg.Camera.MoveSpeed != DefaultConfig().Camera.MoveSpeed {
		t.Error("unset keys should keep defaults")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "c.toml", `
[simulation]
scenario = "sun-planet"
max_dt = 0.05

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Simulation.Scenario != "sun-planet" || cfg.Simulation.MaxDt != 0.05 {
		t.Errorf("simulation not applied: %+v", cfg.Simulation)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json format, got %s", cfg.Logging.Format)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("empty file should load defaults: %v", err)
	}
	if cfg.Simulation.Scenario != DefaultScenario {
		t.Error("expected defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		invalid bool
	}{
		{"unknown yaml key", "c.yaml", "simulation:\n  speed: 3\n", false},
		{"unknown toml key", "c.toml", "[simulation]\nspeed = 3\n", false},
		{"bad yaml", "c.yaml", "simulation: [", false},
		{"unknown scenario", "c.yaml", "simulation:\n  scenario: nope\n", true},
		{"negative time scale", "c.yaml", "simulation:\n  time_scale: -1\n", true},
		{"unknown integrator", "c.toml", "[simulation]\nintegrator = \"leapfrog\"\n", true},
		{"bad log format", "c.yaml", "logging:\n  format: xml\n", true},
		{"short position", "c.yaml", "bodies:\n  - mass: 1\n    position: [1, 2]\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, dynamo.ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidConfig) = %v, want %v (%v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestExplicitBodiesOverrideScenario(t *testing.T) {
	path := writeFile(t, "c.yaml", `
simulation:
  scenario: nope
bodies:
  - mass: 2e9
    radius: 50
    position: [10, 0, 0]
    velocity: [0, 1, 0]
    color: [2, 0.5, 0]
  - mass: 1e9
    position: [0, 0, 0]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	bodies, err := cfg.InitialBodies()
	if err != nil {
		t.Fatal(err)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	b := bodies[0]
	if b.Radius != physics.MaxRadius {
		t.Errorf("radius should clamp to %f, got %f", physics.MaxRadius, b.Radius)
	}
	if b.Color != (dynamo.Color{1, 0.5, 0}) {
		t.Errorf("color should clamp, got %v", b.Color)
	}
	if b.Position != dynamo.V(10, 0, 0) || b.Velocity != dynamo.V(0, 1, 0) {
		t.Errorf("unexpected kinematics %v %v", b.Position, b.Velocity)
	}
	if bodies[1].Radius != physics.DefaultRadius || bodies[1].Color != dynamo.White {
		t.Error("missing radius and color should take defaults")
	}
}

func TestCameraSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Radius = 9
	s := cfg.CameraSettings()
	if s.Radius != 9 {
		t.Errorf("expected radius 9, got %f", s.Radius)
	}
	if s.PitchLimit != 1.5 {
		t.Errorf("pitch limit should keep its default, got %f", s.PitchLimit)
	}
}

func TestNewState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Simulation.StartRunning = true
	st, err := cfg.NewState(cfg.SimOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Bodies()) != 3 {
		t.Errorf("expected triangle with 3 bodies, got %d", len(st.Bodies()))
	}
	if !st.Running() {
		t.Error("expected state to start running")
	}
}

func TestSimOptionsIntegrator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Simulation.Integrator = "rk4"
	opts := cfg.SimOptions()
	if opts.Integrator == nil || opts.Integrator.Name() != "rk4" {
		t.Errorf("expected rk4 integrator, got %v", opts.Integrator)
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		p, err := GetPreset(name)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if p.Name != name {
			t.Errorf("preset %s has name %s", name, p.Name)
		}
	}
	if len(ListPresets()) != len(Presets) {
		t.Error("ListPresets and Presets disagree")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, dynamo.ErrUnknownScenario) {
		t.Errorf("expected ErrUnknownScenario, got %v", err)
	}
}

func TestPresetsBuildValidSystems(t *testing.T) {
	counts := map[string]int{"empty": 0, "single": 1, "sun-planet": 2, "binary": 2, "triangle": 3}

	for name, want := range counts {
		t.Run(name, func(t *testing.T) {
			p, _ := GetPreset(name)
			bodies := p.Bodies()
			if len(bodies) != want {
				t.Fatalf("expected %d bodies, got %d", want, len(bodies))
			}

			sys := physics.NewSystem()
			for _, b := range bodies {
				sys.Add(b)
			}
			if !sys.Valid() {
				t.Error("preset produced invalid state")
			}

			var scale float64
			for _, b := range bodies {
				scale += b.Mass * b.Velocity.Length()
			}
			if p := sys.Momentum().Length(); p > 1e-9*math.Max(scale, 1) {
				t.Errorf("preset should have zero total momentum, got %g", p)
			}
		})
	}
}

func TestTriangleStaysBound(t *testing.T) {
	p, _ := GetPreset("triangle")
	sys := physics.NewSystem()
	for _, b := range p.Bodies() {
		sys.Add(b)
	}
	r0 := sys.Bodies()[0].Position.Length()

	for i := 0; i < 2000; i++ {
		sys.Step(0.01)
	}
	r := sys.Bodies()[0].Position.Length()
	if math.Abs(r-r0)/r0 > 0.01 {
		t.Errorf("radius drifted from %f to %f", r0, r)
	}
}

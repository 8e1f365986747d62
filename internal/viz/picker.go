package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/sim"
)

// picker is the scenario menu shown before the viewer starts.
type picker struct {
	cfg    *config.Config
	opts   sim.Options
	log    *zap.Logger
	names  []string
	cursor int
	err    error

	width, height int
}

func newPicker(cfg *config.Config, opts sim.Options, log *zap.Logger) picker {
	p := picker{
		cfg:    cfg,
		opts:   opts,
		log:    log,
		names:  config.ListPresets(),
		width:  width,
		height: height,
	}
	for i, name := range p.names {
		if name == cfg.Simulation.Scenario {
			p.cursor = i
		}
	}
	return p
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.names)-1 {
				p.cursor++
			}
		case "enter", " ":
			return p.start()
		}
	}
	return p, nil
}

func (p picker) start() (tea.Model, tea.Cmd) {
	cfg := *p.cfg
	cfg.Simulation.Scenario = p.names[p.cursor]
	cfg.Bodies = nil

	st, err := cfg.NewState(p.opts)
	if err != nil {
		p.err = err
		return p, nil
	}
	p.log.Info("scenario selected", zap.String("scenario", cfg.Simulation.Scenario))

	m := NewModel(st, cfg.Simulation.Scenario, p.log)
	m.width, m.height = p.width, p.height
	m.scene.Resize(m.canvasSize())
	return m, m.Init()
}

func (p picker) View() string {
	var b strings.Builder
	b.WriteString(GradientText("orbitsim", CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	b.WriteString(Subtle.Render("select scenario") + "\n\n")

	for i, name := range p.names {
		desc := config.Presets[name].Description
		if i == p.cursor {
			b.WriteString(NeonGlow.Render(fmt.Sprintf("> %-12s", name)) + " " + Subtle.Render(desc) + "\n")
		} else {
			b.WriteString(fmt.Sprintf("  %-12s", name) + " " + Subtle.Render(desc) + "\n")
		}
	}
	if p.err != nil {
		b.WriteString("\n" + StatusPaused.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n" + KeyHint.Render("↑↓ navigate  enter start  esc quit"))
	return GlassPanel.Render(b.String())
}

// RunInteractive shows the scenario menu and then the viewer.
func RunInteractive(cfg *config.Config, opts sim.Options, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	p := tea.NewProgram(newPicker(cfg, opts, log), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

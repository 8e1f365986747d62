package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	sidebarWidth    = 46
	historyCapacity = 600
	// Terminals report presses, not key state; a press counts as held for
	// this many ticks.
	holdFrames = 6
	// Converts mouse cell deltas to roughly pixel-sized deltas.
	mouseScale = 8.0
	frameRate  = time.Second / 60
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(sidebarWidth - 1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	removingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

var navKeys = map[string]camera.Key{
	"w": camera.KeyW, "s": camera.KeyS,
	"a": camera.KeyA, "d": camera.KeyD,
	"q": camera.KeyQ, "e": camera.KeyE,
}

// Model drives a sim.State from terminal events and renders it.
type Model struct {
	state    *sim.State
	scenario string
	editor   sim.Editor
	scene    *Scene
	snap     sim.Snapshot

	held  [camera.KeyE + 1]int
	mouse camera.Point
	last  time.Time

	energyHistory []float64
	width, height int
	showHelp      bool
	log           *zap.Logger
}

func NewModel(st *sim.State, scenario string, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		state:         st,
		scenario:      scenario,
		width:         width,
		height:        height,
		energyHistory: make([]float64, 0, historyCapacity),
		log:           log,
	}
	m.scene = NewScene(m.canvasSize())
	m.snap = st.Tick(camera.Input{})
	return m
}

func (m Model) canvasSize() (int, int) {
	w := m.width - sidebarWidth - 4
	h := m.height - 3
	return max(w, 10), max(h, 5)
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.mouse = camera.Point{X: float64(msg.X) * mouseScale, Y: float64(msg.Y) * mouseScale}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scene.Resize(m.canvasSize())
	case TickMsg:
		m.step(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.state.Bodies())
	switch key := msg.String(); key {
	case "esc", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.state.ToggleGrab()
	case " ":
		m.state.SetRunning(!m.state.Running())
	case "f":
		m.state.SetFocus(sim.NoFocus())
	case "m":
		m.state.SetFocus(sim.MassCenterFocus())
	case "b":
		if err := m.state.FocusBodyAt(m.editor.Selected); err != nil {
			m.log.Debug("focus ignored", zap.Error(err))
		}
	case "n":
		m.state.AddBody()
		m.editor.Selected = n
	case "delete", "x":
		if err := m.state.RemoveBody(m.editor.Selected); err != nil {
			m.log.Debug("remove ignored", zap.Error(err))
		}
	case "down":
		m.editor.NextBody(n)
	case "up":
		m.editor.PrevBody(n)
	case "right":
		m.editor.NextField()
	case "left":
		m.editor.PrevField()
	case "backspace":
		m.editor.Backspace()
	case "enter":
		if err := m.editor.Commit(m.state); err != nil {
			m.log.Debug("edit rejected", zap.Error(err))
		}
	case "t":
		names := ThemeNames()
		for i, name := range names {
			if name == CurrentTheme.Name {
				SetTheme(names[(i+1)%len(names)])
				break
			}
		}
	case "?":
		m.showHelp = !m.showHelp
	default:
		if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
			break
		}
		if m.editor.Type(msg.Runes[0]) {
			break
		}
		if k, ok := navKeys[strings.ToLower(key)]; ok {
			m.held[k] = holdFrames
		}
	}
	return m, nil
}

// step runs one simulation tick with the keys still counted as held.
func (m *Model) step(now time.Time) {
	var in camera.Input
	if !m.last.IsZero() {
		in.FrameDelta = now.Sub(m.last).Seconds()
	}
	m.last = now

	for k := range m.held {
		if m.held[k] > 0 {
			in.Keys = in.Keys.With(camera.Key(k))
			m.held[k]--
		}
	}
	in.Mouse = m.mouse

	m.snap = m.state.Tick(in)
	m.editor.Clamp(len(m.snap.Bodies))

	if len(m.energyHistory) >= historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
	m.energyHistory = append(m.energyHistory, m.snap.Energy)
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.scene.Render(m.snap, m.editor.Selected))
	sidebar := statsStyle.Render(m.sidebar())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, sidebar)
	if m.showHelp {
		return GlassPanel.Render(helpText) + "\n" + mainView
	}
	return mainView
}

func (m Model) sidebar() string {
	s := m.snap
	var b strings.Builder

	b.WriteString(GradientText("ORBITSIM", CurrentTheme.Primary, CurrentTheme.Secondary))
	b.WriteString(Subtle.Render(" :: "+m.scenario) + "\n")
	if s.Running {
		b.WriteString(StatusRunning.Render("RUNNING"))
	} else {
		b.WriteString(StatusPaused.Render("PAUSED"))
	}
	grab := "mouse free"
	if s.Grabbed {
		grab = "mouse look"
	}
	b.WriteString(Subtle.Render("  "+grab) + "\n\n")

	b.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", s.Time)) + "\n")
	b.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4e", s.Energy)) + "\n")
	b.WriteString(labelStyle.Render("Camera") + valueStyle.Render(s.Mode.String()) + "\n")
	b.WriteString(labelStyle.Render("Focus") + valueStyle.Render(s.Focus.String()) + "\n")
	b.WriteString(labelStyle.Render("Pos") + valueStyle.Render(readout(s.Camera, physics.PositionScale)) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	b.WriteString(HeaderStyle.Render("BODIES") + "\n")
	if len(s.Bodies) == 0 {
		b.WriteString(Subtle.Render("  none, N to add") + "\n")
	}
	for _, body := range s.Bodies {
		line := fmt.Sprintf("#%-3d m %.2e r %.1f", body.ID, body.Mass, body.Radius)
		switch {
		case body.Removing:
			b.WriteString(removingStyle.Render("  "+line) + "\n")
		case body.Index == m.editor.Selected:
			b.WriteString(activeParamStyle.Render("> "+line) + "\n")
		default:
			b.WriteString("  " + labelStyle.UnsetWidth().Render(line) + "\n")
		}
	}

	if m.editor.Selected < len(s.Bodies) {
		sel := s.Bodies[m.editor.Selected].Body()
		field := m.editor.FieldName()
		v, _ := sel.Get(field)
		text := fmt.Sprintf("%.6g", v)
		if m.editor.Editing() {
			text = m.editor.Text() + "_"
		}
		b.WriteString("\n" + MetricLabel.Render(fmt.Sprintf("%-6s ", field)) + MetricValue.Render(text) + "\n")
	}

	b.WriteString(Gizmo(s.Camera, 8))
	b.WriteString(helpStyle.Render(Separator(30) + "\nSP:Run TAB:Grab F/M/B:Focus\nN:Add X:Remove ?:Help ESC:Quit"))
	return b.String()
}

const helpText = `KEYBOARD
  W/S A/D Q/E  move (free) / zoom, turn (orbit)
  Mouse        look while grabbed
  Tab          toggle mouse look
  Space        run / pause
  F M B        free camera / mass centre / selected body
  N  X, Del    add body / remove selected
  Up Down      select body
  Left Right   select field
  0-9 . - e    type a value, Enter to apply
  T            cycle theme
  ?            toggle this help
  Esc          quit`

// Run starts the terminal viewer and blocks until it exits.
func Run(st *sim.State, scenario string, log *zap.Logger) error {
	p := tea.NewProgram(NewModel(st, scenario, log), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

func newTestModel() Model {
	opts := sim.DefaultOptions()
	opts.Clock = sim.NewManualClock()
	return NewModel(sim.New(opts), "test", nil)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func tickOnce(m Model, at time.Time) Model {
	next, _ := m.Update(TickMsg(at))
	return next.(Model)
}

func TestModelRunToggle(t *testing.T) {
	m := press(newTestModel(), " ")
	if !m.state.Running() {
		t.Error("space should start the simulation")
	}
	m = press(m, " ")
	if m.state.Running() {
		t.Error("space should pause the simulation")
	}
}

func TestModelAddAndEdit(t *testing.T) {
	m := press(newTestModel(), "n", "n", "down")
	m = tickOnce(m, time.Unix(0, 0))
	if got := len(m.state.Bodies()); got != 2 {
		t.Fatalf("expected 2 bodies, got %d", got)
	}
	if m.editor.Selected != 1 {
		t.Fatalf("expected second body selected, got %d", m.editor.Selected)
	}

	m = press(m, "right", "3", ".", "5", "enter")
	if r := m.state.Bodies()[1].Radius; r != 3.5 {
		t.Errorf("expected radius 3.5, got %f", r)
	}
	if r := m.state.Bodies()[0].Radius; r != physics.DefaultRadius {
		t.Errorf("first body should be untouched, got %f", r)
	}
}

// updateAt delivers msg from depth extra stack frames below the caller.
func updateAt(m Model, msg tea.Msg, depth int) Model {
	if depth > 0 {
		return updateAt(m, msg, depth-1)
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTypingAcrossCallDepths(t *testing.T) {
	m := press(newTestModel(), "n", "right")
	for i, r := range "2.75" {
		m = updateAt(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, 3*i+1)
	}
	if got := m.editor.Text(); got != "2.75" {
		t.Fatalf("expected buffer 2.75, got %q", got)
	}
	m = press(m, "enter")
	if r := m.state.Bodies()[0].Radius; r != 2.75 {
		t.Errorf("expected radius 2.75, got %f", r)
	}
}

func TestModelRemove(t *testing.T) {
	m := press(newTestModel(), "n", "x")
	m = tickOnce(m, time.Unix(0, 0))
	if got := len(m.state.Bodies()); got != 0 {
		t.Errorf("expected body removed after tick, got %d", got)
	}
}

func TestModelNavigationKeyIsHeld(t *testing.T) {
	m := newTestModel()
	start := m.snap.Camera.Position

	m = press(m, "w")
	for i := 0; i < holdFrames+2; i++ {
		m = tickOnce(m, time.Unix(0, int64(i)*int64(time.Millisecond)))
	}

	moved := m.snap.Camera.Position.Sub(start).Length()
	want := float64(holdFrames) * 0.01
	if moved < want-1e-9 || moved > want+1e-9 {
		t.Errorf("expected camera to move %f, moved %f", want, moved)
	}
}

func TestModelExponentGoesToEditor(t *testing.T) {
	m := press(newTestModel(), "n", "1", "e")
	if m.editor.Text() != "1e" {
		t.Errorf("expected editor text 1e, got %q", m.editor.Text())
	}
	if m.held[0]+m.held[5] != 0 {
		t.Error("e consumed by the editor should not move the camera")
	}
}

func TestModelQuit(t *testing.T) {
	_, cmd := newTestModel().Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestModelView(t *testing.T) {
	m := press(newTestModel(), "n")
	m = tickOnce(m, time.Unix(0, 0))
	if m.View() == "" {
		t.Error("empty view")
	}
}

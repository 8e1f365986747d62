package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColRemove  = rl.NewColor(200, 60, 60, 255)
)

const (
	fovY          = 45.0
	maxTelemetry  = 200
	bodyDrawScale = 1.0 / 200
)

// navKeys maps camera.Key values to raylib key codes.
var navKeys = [...]int32{
	camera.KeyW: rl.KeyW,
	camera.KeyS: rl.KeyS,
	camera.KeyA: rl.KeyA,
	camera.KeyD: rl.KeyD,
	camera.KeyQ: rl.KeyQ,
	camera.KeyE: rl.KeyE,
}

type App struct {
	State    *sim.State
	Scenario string
	Window   config.WindowConfig
	Editor   sim.Editor

	snap      sim.Snapshot
	Telemetry []float64 // energy history for the HUD graph
	log       *zap.Logger
	// typedE is set while the E key that typed an exponent is still down.
	typedE bool
}

func initWindow(w config.WindowConfig) {
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetTargetFPS(int32(w.FPS))
	rl.SetExitKey(rl.KeyEscape)
}

func NewApp(st *sim.State, scenario string, w config.WindowConfig, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		State:     st,
		Scenario:  scenario,
		Window:    w,
		Telemetry: make([]float64, 0, maxTelemetry),
		log:       log,
	}
}

// Run opens the window and blocks until it is closed.
func Run(st *sim.State, scenario string, w config.WindowConfig, log *zap.Logger) {
	initWindow(w)
	defer rl.CloseWindow()

	app := NewApp(st, scenario, w, log)
	app.syncCursor(true)
	log.Info("window opened", zap.String("scenario", scenario), zap.Int("width", w.Width), zap.Int("height", w.Height))
	app.RunLoop()
	log.Info("window closed")
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	a.handleCommands()

	a.snap = a.State.Tick(a.input())
	a.Editor.Clamp(len(a.snap.Bodies))

	if len(a.Telemetry) >= maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	a.Telemetry = append(a.Telemetry, a.snap.Energy)
}

func (a *App) handleCommands() {
	n := len(a.State.Bodies())
	if a.typedE && !rl.IsKeyDown(rl.KeyE) {
		a.typedE = false
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		a.syncCursor(a.State.ToggleGrab())
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.State.SetRunning(!a.State.Running())
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.State.SetFocus(sim.NoFocus())
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.State.SetFocus(sim.MassCenterFocus())
	}
	if rl.IsKeyPressed(rl.KeyB) {
		if err := a.State.FocusBodyAt(a.Editor.Selected); err != nil {
			a.log.Debug("focus ignored", zap.Error(err))
		}
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.State.AddBody()
		a.Editor.Selected = n
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		if err := a.State.RemoveBody(a.Editor.Selected); err != nil {
			a.log.Debug("remove ignored", zap.Error(err))
		}
	}

	if rl.IsKeyPressed(rl.KeyDown) {
		a.Editor.NextBody(n)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		a.Editor.PrevBody(n)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		a.Editor.NextField()
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.Editor.PrevField()
	}

	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		a.typeChar(rune(r))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		a.Editor.Backspace()
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		// A rejected edit leaves the body as it was.
		if err := a.Editor.Commit(a.State); err != nil {
			a.log.Debug("edit rejected", zap.Error(err))
		}
	}
}

// syncCursor hides and captures the cursor while mouse-look is on.
func (a *App) syncCursor(grabbed bool) {
	if grabbed {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

// typeChar feeds r to the editor and remembers an E it consumed.
func (a *App) typeChar(r rune) {
	if a.Editor.Type(r) && (r == 'e' || r == 'E') {
		a.typedE = true
	}
}

// navInput collects the held camera keys. E is skipped while skipE is set.
func navInput(down func(int32) bool, skipE bool) camera.Keys {
	var keys camera.Keys
	for key, code := range navKeys {
		if skipE && camera.Key(key) == camera.KeyE {
			continue
		}
		if down(code) {
			keys = keys.With(camera.Key(key))
		}
	}
	return keys
}

func (a *App) input() camera.Input {
	m := rl.GetMousePosition()
	return camera.Input{
		Keys:       navInput(rl.IsKeyDown, a.typedE),
		Mouse:      camera.Point{X: float64(m.X), Y: float64(m.Y)},
		FrameDelta: float64(rl.GetFrameTime()),
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(camera3D(a.snap.Camera))
	drawAxes()
	a.drawBodies()
	rl.EndMode3D()

	a.drawGizmo()
	a.DrawHUD()
	a.drawEditor()

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

func statusText(running bool) (string, rl.Color) {
	if running {
		return "RUNNING", ColSelect
	}
	return "PAUSED", ColTextDim
}

func (a *App) DrawHUD() {
	s := a.snap
	a.drawText("orbitsim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Scenario), 150, 36, 16, ColText)

	status, col := statusText(s.Running)
	a.drawText(status, a.Window.Width-130, 30, 16, col)

	pos := s.Camera.Readout(physicsScale)
	a.drawText(fmt.Sprintf("pos %9.1f %9.1f %9.1f", pos.X, pos.Y, pos.Z), 30, 70, 14, ColText)
	a.drawText(fmt.Sprintf("camera %s  focus %s", s.Mode, s.Focus), 30, 90, 14, ColText)
	a.drawText(fmt.Sprintf("t %.2fs  dt %.4f", s.Time, s.Step), 30, 110, 14, ColText)

	a.DrawTelemetry()

	h := a.Window.Height
	a.drawText("[TAB] GRAB  [SPACE] RUN  [F] FREE  [M] MASS CENTER  [B] FOCUS  [N] ADD  [DEL] REMOVE  [ESC] QUIT", 30, h-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), a.Window.Width-90, h-30, 14, ColTextDim)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, a.Window.Height-110
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.3e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

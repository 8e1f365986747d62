package viz

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	fovY          = math.Pi / 4
	nearPlane     = 0.01
	axisLength    = 1000.0
	axisSegments  = 64
	bodyDrawScale = 1.0 / 200
)

var axisColors = [3]lipgloss.Color{"#ff4444", "#44ff44", "#4488ff"}

// hexOf converts a body color to a terminal color.
func hexOf(c dynamo.Color) lipgloss.Color {
	c = c.Clamp()
	return lipgloss.Color(hexColor(int(c[0]*255), int(c[1]*255), int(c[2]*255)))
}

// Scene rasterises a snapshot onto a braille canvas.
type Scene struct {
	canvas *Canvas
}

func NewScene(w, h int) *Scene {
	return &Scene{canvas: NewCanvas(w, h)}
}

func (s *Scene) Resize(w, h int) {
	if w == s.canvas.Width && h == s.canvas.Height {
		return
	}
	s.canvas = NewCanvas(w, h)
}

func (s *Scene) projection() camera.Projection {
	return camera.Projection{
		FovY:   fovY,
		Near:   nearPlane,
		Width:  s.canvas.PixelWidth(),
		Height: s.canvas.PixelHeight(),
	}
}

// Render draws axes and bodies, far bodies first, and returns the canvas
// text.
func (s *Scene) Render(snap sim.Snapshot, selected int) string {
	s.canvas.Clear()
	pr := s.projection()

	s.drawAxes(pr, snap.Camera)

	type drawn struct {
		x, y, depth float64
		radius      int
		col         lipgloss.Color
	}
	var items []drawn
	for _, b := range snap.Bodies {
		x, y, depth, ok := pr.Project(snap.Camera, b.Display)
		if !ok {
			continue
		}
		col := hexOf(b.Color)
		if b.Index == selected {
			col = CurrentTheme.Accent
		}
		items = append(items, drawn{x, y, depth, pixelRadius(pr, b.Radius*bodyDrawScale, depth), col})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		s.canvas.FillCircle(int(it.x), int(it.y), it.radius, it.col)
	}

	return s.canvas.String()
}

// drawAxes samples each world axis as short segments so parts behind the
// camera are skipped instead of wrapping around.
func (s *Scene) drawAxes(pr camera.Projection, pose camera.Pose) {
	dirs := [3]dynamo.Vec3{dynamo.UnitX, dynamo.UnitY, dynamo.UnitZ}
	for i, dir := range dirs {
		var px, py float64
		prevOK := false
		for k := 0; k <= axisSegments; k++ {
			t := -axisLength + 2*axisLength*float64(k)/axisSegments
			x, y, _, ok := pr.Project(pose, dir.Scale(t))
			if ok && prevOK && (pr.Inside(x, y) || pr.Inside(px, py)) {
				s.canvas.DrawLine(int(px), int(py), int(x), int(y), axisColors[i])
			}
			px, py, prevOK = x, y, ok
		}
	}
}

func pixelRadius(pr camera.Projection, r, depth float64) int {
	f := 1 / math.Tan(pr.FovY/2)
	px := r / depth * f * float64(pr.Height) / 2
	if px > float64(pr.Height) {
		px = float64(pr.Height)
	}
	return int(px)
}

// Gizmo renders the world axes as seen by the camera in a small text grid.
func Gizmo(pose camera.Pose, size int) string {
	c := NewCanvas(size, size/2)
	cx, cy := c.PixelWidth()/2, c.PixelHeight()/2
	reach := float64(min(cx, cy) - 1)
	for i, axis := range camera.GizmoAxes(pose) {
		ex := cx + int(axis.Dir.X*reach)
		ey := cy - int(axis.Dir.Y*reach)
		c.DrawLine(cx, cy, ex, ey, axisColors[i])
	}
	return c.String()
}

func readout(pose camera.Pose, scale float64) string {
	p := pose.Readout(scale)
	return fmt.Sprintf("%9.1f %9.1f %9.1f", p.X, p.Y, p.Z)
}

// Canvas exposes the last rendered frame.
func (s *Scene) Canvas() *Canvas { return s.canvas }

package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	physicsScale = physics.PositionScale
	axisLength   = 1000
	gizmoSize    = 40
)

func vec3(v dynamo.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func color(c dynamo.Color) rl.Color {
	c = c.Clamp()
	return rl.NewColor(uint8(c[0]*255), uint8(c[1]*255), uint8(c[2]*255), 255)
}

func camera3D(p camera.Pose) rl.Camera3D {
	return rl.NewCamera3D(
		vec3(p.Position),
		vec3(p.Target()),
		vec3(p.Up),
		fovY,
		rl.CameraPerspective,
	)
}

func drawAxes() {
	rl.DrawLine3D(rl.NewVector3(-axisLength, 0, 0), rl.NewVector3(axisLength, 0, 0), rl.NewColor(255, 0, 0, 255))
	rl.DrawLine3D(rl.NewVector3(0, -axisLength, 0), rl.NewVector3(0, axisLength, 0), rl.NewColor(0, 255, 0, 255))
	rl.DrawLine3D(rl.NewVector3(0, 0, -axisLength), rl.NewVector3(0, 0, axisLength), rl.NewColor(0, 0, 255, 255))
}

func (a *App) drawBodies() {
	for _, b := range a.snap.Bodies {
		pos := vec3(b.Display)
		r := float32(b.Radius * bodyDrawScale)
		rl.DrawSphere(pos, r, color(b.Color))

		switch {
		case b.Removing:
			rl.DrawSphereWires(pos, r*1.4, 8, 8, ColRemove)
		case b.Index == a.Editor.Selected:
			rl.DrawSphereWires(pos, r*1.4, 8, 8, ColSelect)
		case b.Focused:
			rl.DrawSphereWires(pos, r*1.4, 8, 8, ColAccent)
		}
	}
	if len(a.snap.Bodies) > 1 {
		rl.DrawSphereWires(vec3(a.snap.MassCenter), 0.005, 4, 4, ColTextDim)
	}
}

// drawGizmo draws the world axes as seen from the camera in the lower right
// corner. Screen Y grows downward.
func (a *App) drawGizmo() {
	cx := a.Window.Width - 70
	cy := a.Window.Height - 110
	for _, axis := range camera.GizmoAxes(a.snap.Camera) {
		ex := cx + int(axis.Dir.X*gizmoSize)
		ey := cy - int(axis.Dir.Y*gizmoSize)
		col := color(axis.Color)
		rl.DrawLine(int32(cx), int32(cy), int32(ex), int32(ey), col)
		a.drawText(axis.Label, ex+3, ey-6, 12, col)
	}
}

func (a *App) drawEditor() {
	x := a.Window.Width - 330
	y := 70

	a.drawText("bodies", x, y, 16, ColSelect)
	y += 24
	if len(a.snap.Bodies) == 0 {
		a.drawText("none  [N] to add", x, y, 14, ColTextDim)
		return
	}

	for _, b := range a.snap.Bodies {
		line := fmt.Sprintf("#%-3d m %.2e  r %.1f", b.ID, b.Mass, b.Radius)
		switch {
		case b.Removing:
			a.drawText("  "+line, x, y, 14, ColRemove)
		case b.Index == a.Editor.Selected:
			a.drawText("> "+line, x, y, 14, ColSelect)
		default:
			a.drawText("  "+line, x, y, 14, ColText)
		}
		y += 18
	}

	if a.Editor.Selected >= len(a.snap.Bodies) {
		return
	}
	sel := a.snap.Bodies[a.Editor.Selected].Body()

	y += 12
	for i, name := range physics.Fields {
		v, _ := sel.Get(name)
		text := fmt.Sprintf("%-6s %.4g", name, v)
		if i == a.Editor.Field {
			if a.Editor.Editing() {
				text = fmt.Sprintf("%-6s %s_", name, a.Editor.Text())
			}
			a.drawText("> "+text, x, y, 14, ColSelect)
		} else {
			a.drawText("  "+text, x, y, 14, ColText)
		}
		y += 18
	}
	a.drawText("ARROWS: SELECT  TYPE + ENTER: SET", x, y+8, 12, ColTextDim)
}

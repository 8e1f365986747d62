package camera

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Pose is the read-only camera state handed to renderers.
type Pose struct {
	Position dynamo.Vec3
	Front    dynamo.Vec3
	Right    dynamo.Vec3
	Up       dynamo.Vec3
}

// Target is the point one unit ahead of the camera.
func (p Pose) Target() dynamo.Vec3 { return p.Position.Add(p.Front) }

// Readout converts the display-space position back to simulation units.
func (p Pose) Readout(scale float64) dynamo.Vec3 {
	if scale == 0 {
		return p.Position
	}
	return p.Position.Scale(1 / scale)
}

// GizmoAxis is a world axis expressed in the camera's screen plane, with +Y
// pointing up the screen.
type GizmoAxis struct {
	Label string
	Color dynamo.Color
	Dir   Point
}

// GizmoAxes returns the world X, Y and Z axes as seen by the camera.
func GizmoAxes(p Pose) [3]GizmoAxis {
	axes := [3]struct {
		v     dynamo.Vec3
		label string
		color dynamo.Color
	}{
		{dynamo.UnitX, "X", dynamo.Color{1, 0, 0}},
		{dynamo.UnitY, "Y", dynamo.Color{0, 1, 0}},
		{dynamo.UnitZ, "Z", dynamo.Color{0, 0, 1}},
	}
	var out [3]GizmoAxis
	for i, a := range axes {
		out[i] = GizmoAxis{
			Label: a.label,
			Color: a.color,
			Dir:   Point{a.v.Dot(p.Right), a.v.Dot(p.Up)},
		}
	}
	return out
}

// Projection describes a perspective view onto a w by h pixel surface.
type Projection struct {
	FovY   float64
	Near   float64
	Width  int
	Height int
}

// Project maps a display-space point to surface pixels. The returned depth
// is the distance along the view direction; ok is false for points behind
// the near plane.
func (pr Projection) Project(p Pose, point dynamo.Vec3) (x, y, depth float64, ok bool) {
	rel := point.Sub(p.Position)
	depth = rel.Dot(p.Front)
	near := pr.Near
	if near <= 0 {
		near = 1e-3
	}
	if depth < near {
		return 0, 0, depth, false
	}
	f := 1 / math.Tan(pr.FovY/2)
	half := float64(pr.Height) / 2
	x = float64(pr.Width)/2 + rel.Dot(p.Right)/depth*f*half
	y = half - rel.Dot(p.Up)/depth*f*half
	return x, y, depth, true
}

// Inside reports whether a projected pixel lies on the surface.
func (pr Projection) Inside(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(pr.Width) && y < float64(pr.Height)
}

package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

type FocusKind int

const (
	FocusNone FocusKind = iota
	FocusMassCenter
	FocusBody
)

// Focus selects what the camera orbits. A body focus holds the body's
// stable ID, so removing other bodies does not retarget it.
type Focus struct {
	Kind FocusKind
	Body physics.ID
}

func NoFocus() Focus                { return Focus{Kind: FocusNone} }
func MassCenterFocus() Focus        { return Focus{Kind: FocusMassCenter} }
func BodyFocus(id physics.ID) Focus { return Focus{Kind: FocusBody, Body: id} }

func (f Focus) String() string {
	switch f.Kind {
	case FocusMassCenter:
		return "mass center"
	case FocusBody:
		return fmt.Sprintf("body %d", f.Body)
	}
	return "free"
}

// BodyView is a read-only copy of a body for renderers and editors.
type BodyView struct {
	ID       physics.ID
	Index    int
	Mass     float64
	Radius   float64
	Position dynamo.Vec3
	Display  dynamo.Vec3
	Velocity dynamo.Vec3
	Color    dynamo.Color
	Focused  bool
	Removing bool
}

// Body rebuilds the body the view was taken from.
func (v BodyView) Body() physics.Body {
	return physics.Body{
		ID:       v.ID,
		Mass:     v.Mass,
		Radius:   v.Radius,
		Position: v.Position,
		Velocity: v.Velocity,
		Color:    v.Color,
	}
}

// Snapshot is everything a front-end needs to draw one frame. It shares no
// memory with the simulation.
type Snapshot struct {
	Camera     camera.Pose
	Mode       camera.Mode
	Grabbed    bool
	Focus      Focus
	Running    bool
	Time       float64
	Step       float64
	MassCenter dynamo.Vec3
	Energy     float64
	Bodies     []BodyView
}

// Clock supplies the reference instants used to derive physics steps.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// WallClock returns a Clock backed by time.Now.
func WallClock() Clock { return wallClock{} }

// ManualClock only moves when told to. Headless runs and tests use it.
type ManualClock struct {
	t time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{t: time.Unix(0, 0)}
}

func (c *ManualClock) Now() time.Time { return c.t }

func (c *ManualClock) Advance(seconds float64) {
	c.t = c.t.Add(time.Duration(seconds * float64(time.Second)))
}

// Metric observes the system after each headless step.
type Metric interface {
	Name() string
	Observe(sys *physics.System, t float64)
	Value() float64
	Reset()
}

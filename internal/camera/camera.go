package camera

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Mode is the navigation mode used by the most recent update.
type Mode int

const (
	ModeFree Mode = iota
	ModeOrbit
)

func (m Mode) String() string {
	if m == ModeOrbit {
		return "orbit"
	}
	return "free"
}

type Settings struct {
	MoveSpeed  float64
	LookSpeed  float64
	PitchLimit float64
	Yaw        float64
	Pitch      float64
	Radius     float64
	MinRadius  float64
	WorldUp    dynamo.Vec3
}

func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:  0.01,
		LookSpeed:  0.1,
		PitchLimit: 1.5,
		Yaw:        1.18,
		Pitch:      0,
		Radius:     5,
		MinRadius:  0.01,
		WorldUp:    dynamo.WorldUp,
	}
}

// Camera is a viewer that either flies freely or orbits a target point.
// front, right and up form a right-handed orthonormal basis after every
// update.
type Camera struct {
	cfg Settings

	mode     Mode
	yaw      float64
	pitch    float64
	radius   float64
	position dynamo.Vec3
	front    dynamo.Vec3
	right    dynamo.Vec3
	up       dynamo.Vec3

	lastMouse Point
	sampled   bool
	grabbed   bool
}

// New returns a free camera at the origin with the mouse grabbed.
func New(cfg Settings) *Camera {
	if cfg.WorldUp == dynamo.Zero {
		cfg.WorldUp = dynamo.WorldUp
	}
	if cfg.PitchLimit <= 0 || cfg.PitchLimit >= math.Pi/2 {
		cfg.PitchLimit = DefaultSettings().PitchLimit
	}
	c := &Camera{
		cfg:     cfg,
		yaw:     cfg.Yaw,
		pitch:   dynamo.Clamp(cfg.Pitch, -cfg.PitchLimit, cfg.PitchLimit),
		radius:  math.Max(cfg.Radius, cfg.MinRadius),
		grabbed: true,
	}
	c.orient(dynamo.Spherical(c.yaw, c.pitch))
	return c
}

// UpdateFree translates along the camera basis for each held key and, when
// the mouse is grabbed, turns by the mouse delta scaled by the frame time.
// Translation is per call and not scaled by time.
func (c *Camera) UpdateFree(in Input) {
	c.mode = ModeFree
	step := c.cfg.MoveSpeed

	if in.Keys.Has(KeyW) {
		c.position = c.position.Add(c.front.Scale(step))
	}
	if in.Keys.Has(KeyS) {
		c.position = c.position.Sub(c.front.Scale(step))
	}
	if in.Keys.Has(KeyA) {
		c.position = c.position.Sub(c.right.Scale(step))
	}
	if in.Keys.Has(KeyD) {
		c.position = c.position.Add(c.right.Scale(step))
	}
	if in.Keys.Has(KeyQ) {
		c.position = c.position.Add(c.up.Scale(step))
	}
	if in.Keys.Has(KeyE) {
		c.position = c.position.Sub(c.up.Scale(step))
	}

	delta := c.sampleMouse(in.Mouse)
	if c.grabbed {
		c.yaw += delta.X * in.FrameDelta * c.cfg.LookSpeed
		c.pitch += delta.Y * in.FrameDelta * -c.cfg.LookSpeed
		c.clampPitch()
	}

	c.orient(dynamo.Spherical(c.yaw, c.pitch))
}

// UpdateOrbit turns around target with A/D (yaw) and Q/E (pitch), zooms with
// W/S and then places the camera on the sphere of the current radius,
// looking at target.
func (c *Camera) UpdateOrbit(target dynamo.Vec3, in Input) {
	c.mode = ModeOrbit
	turn := c.cfg.LookSpeed * in.FrameDelta
	zoom := c.cfg.MoveSpeed * 2

	if in.Keys.Has(KeyA) {
		c.yaw -= turn
	}
	if in.Keys.Has(KeyD) {
		c.yaw += turn
	}
	if in.Keys.Has(KeyQ) {
		c.pitch += turn
	}
	if in.Keys.Has(KeyE) {
		c.pitch -= turn
	}
	c.clampPitch()

	if in.Keys.Has(KeyW) {
		c.radius -= zoom
	}
	if in.Keys.Has(KeyS) {
		c.radius += zoom
	}
	c.radius = math.Max(c.radius, c.cfg.MinRadius)

	// Keep the sample current so returning to free mode does not jump.
	c.sampleMouse(in.Mouse)

	c.position = target.Add(dynamo.Spherical(c.yaw, c.pitch).Scale(c.radius))
	c.orient(target.Sub(c.position))
}

func (c *Camera) sampleMouse(p Point) Point {
	if !c.sampled {
		c.lastMouse, c.sampled = p, true
		return Point{}
	}
	d := p.Sub(c.lastMouse)
	c.lastMouse = p
	return d
}

func (c *Camera) clampPitch() {
	c.pitch = dynamo.Clamp(c.pitch, -c.cfg.PitchLimit, c.cfg.PitchLimit)
}

func (c *Camera) orient(front dynamo.Vec3) {
	c.front = front.Normalize()
	c.right = c.front.Cross(c.cfg.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// ToggleGrab flips whether mouse movement turns the camera and returns the
// new state. Showing or hiding the cursor is left to the front-end.
func (c *Camera) ToggleGrab() bool {
	c.grabbed = !c.grabbed
	return c.grabbed
}

func (c *Camera) SetGrabbed(g bool) { c.grabbed = g }
func (c *Camera) Grabbed() bool     { return c.grabbed }
func (c *Camera) Mode() Mode        { return c.mode }
func (c *Camera) Yaw() float64      { return c.yaw }
func (c *Camera) Pitch() float64    { return c.pitch }
func (c *Camera) Radius() float64   { return c.radius }

// SetPosition moves the camera without touching its orientation.
func (c *Camera) SetPosition(p dynamo.Vec3) { c.position = p }

func (c *Camera) Pose() Pose {
	return Pose{Position: c.position, Front: c.front, Right: c.right, Up: c.up}
}

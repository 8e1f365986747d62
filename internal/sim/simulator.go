package sim

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

type Options struct {
	Camera camera.Settings
	// TimeScale multiplies wall-clock time before it is integrated.
	TimeScale float64
	// MaxDt caps a single physics step. Zero leaves steps unbounded, so a
	// long stall is integrated as one large step.
	MaxDt float64
	// Integrator replaces the built-in semi-implicit Euler step when set.
	Integrator physics.Integrator
	Clock      Clock
	Logger     *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Camera:    camera.DefaultSettings(),
		TimeScale: 1,
		Clock:     WallClock(),
		Logger:    zap.NewNop(),
	}
}

// State is the whole simulation: bodies, camera, focus and run flag. It is
// driven by one Tick per frame and is not safe for concurrent use.
type State struct {
	opts Options
	log  *zap.Logger

	sys     *physics.System
	cam     *camera.Camera
	focus   Focus
	running bool
	last    time.Time
	simTime float64
	lastDt  float64

	pending []physics.ID
}

func New(opts Options) *State {
	if opts.Clock == nil {
		opts.Clock = WallClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.TimeScale == 0 {
		opts.TimeScale = 1
	}
	return &State{
		opts:  opts,
		log:   opts.Logger,
		sys:   physics.NewSystem(),
		cam:   camera.New(opts.Camera),
		focus: NoFocus(),
		last:  opts.Clock.Now(),
	}
}

// Tick runs one frame: focus resolution, camera update, physics (when
// running), snapshot, then the removals requested before this tick.
func (s *State) Tick(in camera.Input) Snapshot {
	s.updateCamera(in)

	s.lastDt = 0
	if s.running {
		dt := s.stepDelta()
		if s.opts.Integrator != nil {
			s.opts.Integrator.Step(s.sys, dt)
		} else {
			s.sys.Accelerate(dt)
			s.sys.MoveBodies(dt)
		}
		s.simTime += dt
		s.lastDt = dt
	}

	snap := s.snapshot()
	s.drainRemovals()
	return snap
}

// updateCamera orbits the focus target in display space: the mass center
// and a focused body's position are both scaled by physics.PositionScale,
// which is where the renderers draw them.
func (s *State) updateCamera(in camera.Input) {
	switch s.focus.Kind {
	case FocusMassCenter:
		s.cam.UpdateOrbit(s.sys.MassCenter(), in)
		return
	case FocusBody:
		b, ok := s.sys.ByID(s.focus.Body)
		if ok && !s.isPending(b.ID) {
			s.cam.UpdateOrbit(b.DisplayPosition(), in)
			return
		}
		s.log.Debug("focused body gone, falling back to free camera",
			zap.Uint64("id", uint64(s.focus.Body)))
		s.focus = NoFocus()
	}
	s.cam.UpdateFree(in)
}

func (s *State) stepDelta() float64 {
	now := s.opts.Clock.Now()
	dt := now.Sub(s.last).Seconds() * s.opts.TimeScale
	s.last = now
	if dt < 0 {
		dt = 0
	}
	if s.opts.MaxDt > 0 && dt > s.opts.MaxDt {
		dt = s.opts.MaxDt
	}
	return dt
}

func (s *State) snapshot() Snapshot {
	bodies := s.sys.Bodies()
	views := make([]BodyView, len(bodies))
	for i, b := range bodies {
		views[i] = BodyView{
			ID:       b.ID,
			Index:    i,
			Mass:     b.Mass,
			Radius:   b.Radius,
			Position: b.Position,
			Display:  b.DisplayPosition(),
			Velocity: b.Velocity,
			Color:    b.Color,
			Focused:  s.focus.Kind == FocusBody && s.focus.Body == b.ID,
			Removing: s.isPending(b.ID),
		}
	}
	return Snapshot{
		Camera:     s.cam.Pose(),
		Mode:       s.cam.Mode(),
		Grabbed:    s.cam.Grabbed(),
		Focus:      s.focus,
		Running:    s.running,
		Time:       s.simTime,
		Step:       s.lastDt,
		MassCenter: s.sys.MassCenter(),
		Energy:     s.sys.Energy(),
		Bodies:     views,
	}
}

func (s *State) isPending(id physics.ID) bool {
	for _, p := range s.pending {
		if p == id {
			return true
		}
	}
	return false
}

func (s *State) drainRemovals() {
	for _, id := range s.pending {
		if s.sys.Remove(id) {
			s.log.Debug("body removed", zap.Uint64("id", uint64(id)))
		}
	}
	s.pending = s.pending[:0]
}

// AddBody appends a default body and returns its ID.
func (s *State) AddBody() physics.ID {
	return s.AddBodyWith(physics.NewBody())
}

// AddBodyWith appends b. Any ID already set on b is replaced.
func (s *State) AddBodyWith(b physics.Body) physics.ID {
	id := s.sys.Add(b)
	s.log.Debug("body added", zap.Uint64("id", uint64(id)), zap.Int("count", s.sys.Len()))
	return id
}

// RemoveBody schedules the body currently at index for removal at the end
// of the next tick. Indices are resolved now, while they still match what
// the caller saw.
func (s *State) RemoveBody(index int) error {
	b, ok := s.sys.At(index)
	if !ok {
		return fmt.Errorf("remove body %d: %w", index, dynamo.ErrBodyNotFound)
	}
	s.enqueueRemoval(b.ID)
	return nil
}

// RemoveBodyID schedules the body with the given ID for removal.
func (s *State) RemoveBodyID(id physics.ID) error {
	if s.sys.IndexOf(id) < 0 {
		return fmt.Errorf("remove body id %d: %w", id, dynamo.ErrBodyNotFound)
	}
	s.enqueueRemoval(id)
	return nil
}

func (s *State) enqueueRemoval(id physics.ID) {
	if !s.isPending(id) {
		s.pending = append(s.pending, id)
	}
}

// EditBody parses raw and assigns it to field of the body at index. On any
// error the body is left as it was; interactive callers discard the error.
func (s *State) EditBody(index int, field, raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return &dynamo.EditError{Field: field, Raw: raw, Wrapped: dynamo.ErrParse}
	}
	err = s.sys.Update(index, func(b *physics.Body) error {
		return b.Set(field, v)
	})
	if err != nil {
		return &dynamo.EditError{Field: field, Raw: raw, Wrapped: err}
	}
	return nil
}

// SetRunning starts or pauses the physics. Starting resets the reference
// instant so time spent paused is not integrated.
func (s *State) SetRunning(running bool) {
	if running && !s.running {
		s.last = s.opts.Clock.Now()
	}
	if running != s.running {
		s.log.Debug("run state changed", zap.Bool("running", running))
	}
	s.running = running
}

func (s *State) Running() bool { return s.running }

func (s *State) SetFocus(f Focus) {
	if f != s.focus {
		s.log.Debug("focus changed", zap.Stringer("focus", f))
	}
	s.focus = f
}

// FocusBodyAt focuses the body currently at index.
func (s *State) FocusBodyAt(index int) error {
	b, ok := s.sys.At(index)
	if !ok {
		return fmt.Errorf("focus body %d: %w", index, dynamo.ErrBodyNotFound)
	}
	s.SetFocus(BodyFocus(b.ID))
	return nil
}

func (s *State) Focus() Focus { return s.focus }

// ToggleGrab flips mouse-look and returns the new state.
func (s *State) ToggleGrab() bool { return s.cam.ToggleGrab() }

func (s *State) CameraPose() camera.Pose { return s.cam.Pose() }

// Bodies returns the current bodies in order.
func (s *State) Bodies() []physics.Body { return s.sys.Bodies() }

// System exposes the body collection for observers.
func (s *State) System() *physics.System { return s.sys }

// Time is the simulated time integrated so far, in seconds.
func (s *State) Time() float64 { return s.simTime }

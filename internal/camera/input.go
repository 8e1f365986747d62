package camera

// Key is a navigation key. Free mode maps them to translation; orbit mode
// maps them to yaw, pitch and zoom.
type Key uint8

const (
	KeyW Key = iota // forward / zoom in
	KeyS            // back / zoom out
	KeyA            // left / yaw -
	KeyD            // right / yaw +
	KeyQ            // up / pitch +
	KeyE            // down / pitch -
)

// Keys is the set of keys held down this frame.
type Keys uint8

func (k Keys) Has(key Key) bool { return k&(1<<key) != 0 }

// With returns k with key added.
func (k Keys) With(key Key) Keys { return k | 1<<key }

func KeysOf(keys ...Key) Keys {
	var k Keys
	for _, key := range keys {
		k = k.With(key)
	}
	return k
}

// Point is a 2D screen position or direction.
type Point struct {
	X, Y float64
}

func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Input is the resolved per-frame input the camera consumes. Mouse is the
// absolute cursor position; the camera derives the delta itself.
type Input struct {
	Keys       Keys
	Mouse      Point
	FrameDelta float64
}

package physics

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// ID identifies a body for its whole lifetime. IDs are assigned by the
// owning System and never reused.
type ID uint64

// Field names accepted by Body.Set.
const (
	FieldMass   = "mass"
	FieldRadius = "radius"
	FieldX      = "x"
	FieldY      = "y"
	FieldZ      = "z"
	FieldVX     = "vx"
	FieldVY     = "vy"
	FieldVZ     = "vz"
	FieldRed    = "r"
	FieldGreen  = "g"
	FieldBlue   = "b"
)

// Fields lists the editable fields in display order.
var Fields = []string{
	FieldMass, FieldRadius,
	FieldX, FieldY, FieldZ,
	FieldVX, FieldVY, FieldVZ,
	FieldRed, FieldGreen, FieldBlue,
}

const (
	DefaultMass   = 1e9
	DefaultRadius = 5.0
	MinRadius     = 0.5
	MaxRadius     = 10.0
)

type Body struct {
	ID       ID
	Mass     float64
	Radius   float64
	Position dynamo.Vec3
	Velocity dynamo.Vec3
	Color    dynamo.Color
}

// NewBody returns a white body of mass 1e9 and radius 5 at rest at the origin.
func NewBody() Body {
	return Body{
		Mass:   DefaultMass,
		Radius: DefaultRadius,
		Color:  dynamo.White,
	}
}

// DisplayPosition is the position scaled into render space.
func (b Body) DisplayPosition() dynamo.Vec3 {
	return b.Position.Scale(PositionScale)
}

// Get returns the value of a named field.
func (b Body) Get(field string) (float64, error) {
	switch field {
	case FieldMass:
		return b.Mass, nil
	case FieldRadius:
		return b.Radius, nil
	case FieldX:
		return b.Position.X, nil
	case FieldY:
		return b.Position.Y, nil
	case FieldZ:
		return b.Position.Z, nil
	case FieldVX:
		return b.Velocity.X, nil
	case FieldVY:
		return b.Velocity.Y, nil
	case FieldVZ:
		return b.Velocity.Z, nil
	case FieldRed:
		return b.Color[0], nil
	case FieldGreen:
		return b.Color[1], nil
	case FieldBlue:
		return b.Color[2], nil
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownField, field)
}

// Set assigns a named field. Radius is kept within [MinRadius, MaxRadius]
// and color channels within [0, 1]; mass and kinematics are stored as given.
func (b *Body) Set(field string, v float64) error {
	switch field {
	case FieldMass:
		b.Mass = v
	case FieldRadius:
		b.Radius = dynamo.Clamp(v, MinRadius, MaxRadius)
	case FieldX:
		b.Position.X = v
	case FieldY:
		b.Position.Y = v
	case FieldZ:
		b.Position.Z = v
	case FieldVX:
		b.Velocity.X = v
	case FieldVY:
		b.Velocity.Y = v
	case FieldVZ:
		b.Velocity.Z = v
	case FieldRed:
		b.Color[0] = dynamo.Clamp(v, 0, 1)
	case FieldGreen:
		b.Color[1] = dynamo.Clamp(v, 0, 1)
	case FieldBlue:
		b.Color[2] = dynamo.Clamp(v, 0, 1)
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownField, field)
	}
	return nil
}

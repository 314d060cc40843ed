// Package geom provides the 2D vector type used for positions and step displacements.
package geom

import (
	"fmt"
	"math"
)

// Vec2 is a 2D point or direction. Values are never mutated in place;
// every operation returns a new vector, so magnitude and direction are
// always derived from the current X and Y.
type Vec2 struct {
	X, Y float64
}

// Zero is the origin.
var Zero = Vec2{}

// New returns the vector (x, y).
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromPolar returns a vector with the given direction (radians) and magnitude.
func FromPolar(angle, magnitude float64) Vec2 {
	return Vec2{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Magnitude returns the Euclidean length of v.
func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Direction returns atan2(y, x) in radians, in [-Pi, Pi].
func (v Vec2) Direction() float64 {
	return math.Atan2(v.Y, v.X)
}

// DirectionDeg returns the direction in degrees, in [-180, 180].
func (v Vec2) DirectionDeg() float64 {
	return v.Direction() * 180 / math.Pi
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Add returns v + u.
func (v Vec2) Add(u Vec2) Vec2 {
	return Vec2{X: v.X + u.X, Y: v.Y + u.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Normalize returns the unit vector in the direction of v.
// ok is false for the zero vector, which has no direction; the zero
// vector is returned in that case.
func (v Vec2) Normalize() (unit Vec2, ok bool) {
	m := v.Magnitude()
	if m == 0 {
		return Zero, false
	}
	return v.Scale(1 / m), true
}

// SetMagnitude returns a vector with the direction of v and length m.
// ok is false for the zero vector.
func (v Vec2) SetMagnitude(m float64) (Vec2, bool) {
	unit, ok := v.Normalize()
	if !ok {
		return Zero, false
	}
	return unit.Scale(m), true
}

// ClampMagnitude returns v shortened to max if it is longer than max.
func (v Vec2) ClampMagnitude(max float64) Vec2 {
	if v.Magnitude() <= max {
		return v
	}
	clamped, _ := v.SetMagnitude(max)
	return clamped
}

// Diff returns b - a. Operand order matters: Diff(a, b) points from a to b.
func Diff(a, b Vec2) Vec2 {
	return Vec2{X: b.X - a.X, Y: b.Y - a.Y}
}

// Distance returns |b - a|.
func Distance(a, b Vec2) float64 {
	return Diff(a, b).Magnitude()
}

// String formats the vector with integer-truncated components.
func (v Vec2) String() string {
	return fmt.Sprintf("(%d, %d)", int(v.X), int(v.Y))
}

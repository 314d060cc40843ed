package sim

import "github.com/pthm-cable/gadots/geom"

// Circle is a round region of the plane, used for the goal and obstacles.
type Circle struct {
	Center geom.Vec2
	Radius float64
}

// Contains reports whether p lies strictly inside the circle.
func (c Circle) Contains(p geom.Vec2) bool {
	return geom.Distance(p, c.Center) < c.Radius
}

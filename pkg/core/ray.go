package core

// Ray represents a ray with an origin, a unit direction, its precomputed
// reciprocal direction (for AABB slab tests), and a shutter time in [0,1].
// The time is drawn once per primary ray by the camera and carried
// unchanged through every path segment.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	Time         float64
}

// NewRay creates a ray with the given origin, unit direction, and time.
func NewRay(origin, direction Vec3, time float64) Ray {
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: Vec3{X: 1 / direction.X, Y: 1 / direction.Y, Z: 1 / direction.Z},
		Time:         time,
	}
}

// At returns the point at parameter a along the ray.
func (r Ray) At(a float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(a))
}

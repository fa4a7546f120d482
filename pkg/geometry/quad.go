package geometry

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/material"
)

// Quad is a planar parallelogram surface spanned by edge vectors U, V from
// Corner, implemented as two Moeller-Trumbore triangles sharing one
// diagonal. It is also a LightSurface: uniform-area sampling converted to a
// solid-angle PDF via pdf_solid_angle = pdf_area * distance^2 / |cosTheta|.
type Quad struct {
	Corner, U, V core.Vec3
	Material     material.Material
	normal       core.Vec3
	area         float64
}

// NewQuad creates a quad spanned by edges u, v from corner, with a normal
// derived from u x v (right-hand rule).
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	cross := u.Cross(v)
	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: mat,
		normal:   cross.Normalize(),
		area:     cross.Length(),
	}
}

func (q *Quad) corners() (core.Vec3, core.Vec3, core.Vec3, core.Vec3) {
	p00 := q.Corner
	p10 := q.Corner.Add(q.U)
	p11 := q.Corner.Add(q.U).Add(q.V)
	p01 := q.Corner.Add(q.V)
	return p00, p10, p11, p01
}

// Hit implements Surface by testing both triangles of the quad's diagonal
// split and returning whichever (if either) intersects.
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool) {
	p00, p10, p11, p01 := q.corners()
	identity := core.Identity()
	if si, ok := hitTriangle(ray, tMin, tMax, p00, p10, p11, q.normal, identity, false, core.Vec2{}, core.Vec2{}, core.Vec2{}, nil, nil, q.Material, q); ok {
		return si, true
	}
	return hitTriangle(ray, tMin, tMax, p00, p11, p01, q.normal, identity, false, core.Vec2{}, core.Vec2{}, core.Vec2{}, nil, nil, q.Material, q)
}

// BoundingBox implements Surface. Quads are not animated.
func (q *Quad) BoundingBox(t0, t1 float64) core.AABB {
	p00, p10, p11, p01 := q.corners()
	return core.NewAABBFromPoints(p00, p10, p11, p01).Expand(1e-4)
}

// Direction implements LightSurface: samples a point uniformly on the
// quad's area and returns the normalized direction from origin to it.
func (q *Quad) Direction(origin core.Vec3, time, u1, u2 float64) core.Vec3 {
	point := q.Corner.Add(q.U.Multiply(u1)).Add(q.V.Multiply(u2))
	return point.Subtract(origin).Normalize()
}

// PDF implements LightSurface by converting the quad's uniform area density
// into a solid-angle density at the hit point, zero if the ray is edge-on
// or misses the quad entirely.
func (q *Quad) PDF(ray core.Ray) float64 {
	si, hit := q.Hit(ray, 1e-4, math.MaxFloat64)
	if !hit {
		return 0
	}
	cosTheta := math.Abs(q.normal.Dot(ray.Direction))
	if cosTheta < 1e-8 || q.area <= 0 {
		return 0
	}
	areaPDF := 1.0 / q.area
	return areaPDF * si.T * si.T / cosTheta
}

// Package geometry implements the intersectable surfaces (Sphere, Triangle,
// Mesh) and the BVH that accelerates ray queries over them. It depends on
// both pkg/core and pkg/material, since a Surface's Hit result carries a
// material.SurfaceInteraction and a reference to the Material it struck.
package geometry

import (
	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/material"
)

// Surface is the closed set of intersectable, optionally light-sampleable
// primitives: Sphere, Triangle, and Quad (Mesh is a fan-out of
// MeshTriangles, not a Surface itself; the BVH is itself a Surface so
// traversal composes).
type Surface interface {
	// Hit intersects ray against the surface within parameter range
	// [tMin, tMax], returning a front-facing SurfaceInteraction.
	Hit(ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool)

	// BoundingBox returns an AABB that bounds the surface over the closed
	// time window [t0, t1], accounting for any animation.
	BoundingBox(t0, t1 float64) core.AABB
}

// LightSurface is implemented by Surfaces usable as MIS light candidates:
// they can sample a direction towards themselves from an external origin
// and report the PDF of any direction actually hitting them.
type LightSurface interface {
	Surface

	// Direction samples a direction from origin towards this surface at
	// time, using the two supplied canonical random numbers.
	Direction(origin core.Vec3, time, u1, u2 float64) core.Vec3

	// PDF returns the probability density (w.r.t. solid angle) that ray's
	// direction, cast from ray.Origin at ray.Time, actually hits this
	// surface. Zero if it doesn't.
	PDF(ray core.Ray) float64
}

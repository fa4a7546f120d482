// Package scene owns every render-time entity — surfaces, materials,
// textures, animations, the optional env-map, and the BVH built from all of
// it — and exposes the read-only query surface the integrator and camera
// drive. Ownership is modeled as plain Go slices and interface values
// rather than index-addressed arenas: the GC keeps every entity alive for
// the process lifetime, so a stable Go reference is already the borrow-free
// handle the arena design was working around in a language without one.
package scene

import (
	"fmt"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/geometry"
	"github.com/windlorne/luxtracer/pkg/material"
)

// Scene owns every surface in the render and the BVH built over them.
type Scene struct {
	Surfaces  []geometry.Surface
	Lights    []geometry.LightSurface
	EnvMap    material.EnvMap
	TimeStart float64
	TimeEnd   float64

	bvh *geometry.BVH
}

// New creates an empty scene over the shutter window [t0, t1].
func New(t0, t1 float64) *Scene {
	return &Scene{TimeStart: t0, TimeEnd: t1}
}

// AddSurface registers a surface that participates in ray intersection but
// is not itself sampled as a light.
func (s *Scene) AddSurface(surf geometry.Surface) {
	s.Surfaces = append(s.Surfaces, surf)
}

// AddLight registers a surface both for ray intersection and as an MIS
// light candidate.
func (s *Scene) AddLight(light geometry.LightSurface) {
	s.Surfaces = append(s.Surfaces, light)
	s.Lights = append(s.Lights, light)
}

// AddMesh fans a Mesh out into its MeshTriangle surfaces and registers each.
func (s *Scene) AddMesh(mesh *geometry.Mesh) {
	for _, tri := range mesh.Triangles() {
		s.AddSurface(tri)
	}
}

// Build constructs the BVH over every registered surface. Must be called
// exactly once, after every surface has been added, and before the first
// render query; the BVH (and everything it was built from) is read-only
// from then on.
func (s *Scene) Build(logger core.Logger) error {
	if logger == nil {
		logger = core.NopLogger{}
	}
	logger.Printf("building BVH over %d surfaces for time window [%.3f, %.3f]", len(s.Surfaces), s.TimeStart, s.TimeEnd)
	bvh, err := geometry.BuildBVH(s.Surfaces, s.TimeStart, s.TimeEnd)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.bvh = bvh
	logger.Printf("BVH build complete: %d surfaces, %d lights", len(s.Surfaces), len(s.Lights))
	return nil
}

// Hit queries the scene's BVH. Build must have been called first.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool) {
	return s.bvh.Hit(ray, tMin, tMax)
}

// BackgroundRadiance returns the radiance contributed by a ray that escapes
// every surface, from the scene's EnvMap if one is set, zero otherwise.
func (s *Scene) BackgroundRadiance(ray core.Ray) core.Vec3 {
	if s.EnvMap == nil {
		return core.Vec3{}
	}
	return s.EnvMap.Value(ray.Direction, ray.Time)
}

// AverageLightPDF returns the average, over every registered light, of that
// light's PDF for ray's direction — the p_bsdf_to_lights term the
// integrator's MIS weighting needs. Zero if the scene has no lights.
func (s *Scene) AverageLightPDF(ray core.Ray) float64 {
	if len(s.Lights) == 0 {
		return 0
	}
	sum := 0.0
	for _, light := range s.Lights {
		sum += light.PDF(ray)
	}
	return sum / float64(len(s.Lights))
}

// SampleLight picks a light uniformly at random and samples a direction
// from origin towards it at time. Returns ok=false if the scene has no
// lights. The returned pdf is the *averaged* PDF across all lights in that
// direction (not just the chosen one), matching the MIS weighting the
// integrator performs against the whole light set. The chosen light is also
// returned so the caller can confirm a shadow ray lands on exactly that
// surface before crediting its emission.
func (s *Scene) SampleLight(origin core.Vec3, time float64, sampler core.Sampler) (dir core.Vec3, pdf float64, chosen geometry.LightSurface, ok bool) {
	if len(s.Lights) == 0 {
		return core.Vec3{}, 0, nil, false
	}
	idx := int(sampler.Uniform01() * float64(len(s.Lights)))
	if idx >= len(s.Lights) {
		idx = len(s.Lights) - 1
	}
	chosen = s.Lights[idx]
	dir = chosen.Direction(origin, time, sampler.Uniform01(), sampler.Uniform01())
	pdf = s.AverageLightPDF(core.NewRay(origin, dir, time))
	return dir, pdf, chosen, true
}

// WorldBounds returns the AABB of everything in the scene at the render
// time window.
func (s *Scene) WorldBounds() core.AABB {
	if s.bvh != nil {
		return s.bvh.BoundingBox(s.TimeStart, s.TimeEnd)
	}
	if len(s.Surfaces) == 0 {
		return core.AABB{}
	}
	box := s.Surfaces[0].BoundingBox(s.TimeStart, s.TimeEnd)
	for _, surf := range s.Surfaces[1:] {
		box = box.Union(surf.BoundingBox(s.TimeStart, s.TimeEnd))
	}
	return box
}

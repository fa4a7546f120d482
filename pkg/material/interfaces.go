// Package material implements the BSDF abstraction: surface interactions,
// scatter records, and the closed set of materials and textures the
// integrator drives (Lambertian, Phong, Mirror, Glass, Light, TwoSided).
// It depends only on pkg/core, never on pkg/geometry, so that geometry can
// depend on material without an import cycle.
package material

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
)

// SurfaceInteraction carries everything the integrator and a material need
// at a ray/surface hit. If Hit is false every other field is undefined.
// Surface is an opaque interface{} reference to the pkg/geometry surface
// that was hit; the integrator only compares it for identity. Material is
// the material at the hit, which the integrator calls for Le and Scatter.
type SurfaceInteraction struct {
	Hit      bool
	T        float64
	Point    core.Vec3
	Normal   core.Vec3 // always faces the incoming ray
	UV       core.Vec2
	Tangent  core.TangentSpace
	Backside bool
	Surface  interface{}
	Material Material
}

// Miss is the canonical "no intersection" SurfaceInteraction.
var Miss = SurfaceInteraction{}

// SetFaceForward orients Normal to face the incoming ray direction and
// records whether the hit was on the surface's backside.
func (si *SurfaceInteraction) SetFaceForward(rayDirection, outwardNormal core.Vec3) {
	si.Backside = rayDirection.Dot(outwardNormal) > 0
	if si.Backside {
		si.Normal = outwardNormal.Negate()
	} else {
		si.Normal = outwardNormal
	}
}

// ScatterKind distinguishes the three scatter outcomes a Material can
// return: no continuation, a delta/specular continuation with no PDF, and a
// randomly-sampled continuation with an associated PDF usable for MIS.
type ScatterKind int

const (
	// ScatterNone means the path terminates here (backside hit on a
	// one-sided material, alpha-tested miss, zero-probability sample, ...).
	ScatterNone ScatterKind = iota
	// ScatterExplicit is a delta-function continuation (mirror reflection,
	// glass reflection/refraction): PDF is not meaningful, weight 1.
	ScatterExplicit
	// ScatterRandom is a continuation drawn from a density the material can
	// also evaluate via PDF, making it eligible for MIS against lights.
	ScatterRandom
)

// ScatterRecord is the result of Material.Scatter / ScatterToDirection.
type ScatterRecord struct {
	Kind        ScatterKind
	Direction   core.Vec3
	Attenuation core.Vec3 // already folds in BRDF * cosTheta
	PDF         float64   // meaningful only when Kind == ScatterRandom
}

// IsSpecular reports whether this record is a delta-function continuation
// (ScatterExplicit): the integrator must not attempt MIS against it.
func (s ScatterRecord) IsSpecular() bool {
	return s.Kind == ScatterExplicit
}

// ScatterRecordNone is the terminating scatter outcome.
var ScatterRecordNone = ScatterRecord{Kind: ScatterNone}

// Material is the BSDF contract every surface material implements.
type Material interface {
	// Le returns the radiance emitted towards outgoing (pointing away from
	// the surface, i.e. -rayDirection) at the given interaction. Zero for
	// all materials except Light (and TwoSided wrapping one).
	Le(si SurfaceInteraction, outgoing core.Vec3) core.Vec3

	// Scatter importance-samples a continuation direction given the
	// incoming ray and the hit. Returns ScatterRecordNone on termination.
	Scatter(rayIn core.Ray, si SurfaceInteraction, sampler core.Sampler) ScatterRecord

	// ScatterToDirection evaluates the material's BSDF/PDF toward a
	// specific, externally-chosen direction (used by the integrator's MIS
	// direct-lighting step). Returns ScatterRecordNone if the direction has
	// zero probability under this material.
	ScatterToDirection(rayIn core.Ray, si SurfaceInteraction, direction core.Vec3) ScatterRecord
}

// Texture supplies a color or scalar-encoded-as-color value as a function of
// surface texture coordinates and time.
type Texture interface {
	Value(uv core.Vec2, time float64) core.Vec3
}

// ConstantTexture returns the same color everywhere.
type ConstantTexture struct {
	Color core.Vec3
}

// NewConstantTexture wraps a fixed color as a Texture.
func NewConstantTexture(color core.Vec3) *ConstantTexture {
	return &ConstantTexture{Color: color}
}

// Value implements Texture.
func (c *ConstantTexture) Value(uv core.Vec2, time float64) core.Vec3 {
	return c.Color
}

// CheckerTexture alternates between two sub-textures in a uv grid.
type CheckerTexture struct {
	Odd, Even Texture
	Scale     float64
}

// NewCheckerTexture builds a checker pattern with the given uv-space cell
// scale (larger scale = larger squares).
func NewCheckerTexture(odd, even Texture, scale float64) *CheckerTexture {
	if scale <= 0 {
		scale = 1
	}
	return &CheckerTexture{Odd: odd, Even: even, Scale: scale}
}

// Value implements Texture by choosing a sub-texture based on the parity of
// floor(u/scale) + floor(v/scale).
func (c *CheckerTexture) Value(uv core.Vec2, time float64) core.Vec3 {
	fu := int(math.Floor(uv.X / c.Scale))
	fv := int(math.Floor(uv.Y / c.Scale))
	if ((fu+fv)%2+2)%2 == 0 {
		return c.Even.Value(uv, time)
	}
	return c.Odd.Value(uv, time)
}

package material

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
)

// Lambertian is a perfectly diffuse material: BRDF = albedo/pi, sampled
// cosine-weighted in the hit's tangent space.
type Lambertian struct {
	Albedo Texture
}

// NewLambertian creates a Lambertian material with a constant albedo color.
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewConstantTexture(albedo)}
}

// NewLambertianTextured creates a Lambertian material with a textured albedo.
func NewLambertianTextured(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Le implements Material: Lambertian surfaces never emit.
func (l *Lambertian) Le(si SurfaceInteraction, outgoing core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Scatter implements Material by cosine-weighted sampling around the normal.
func (l *Lambertian) Scatter(rayIn core.Ray, si SurfaceInteraction, sampler core.Sampler) ScatterRecord {
	if si.Backside {
		return ScatterRecordNone
	}
	frame := core.NewTangentSpaceFromNormal(si.Normal)
	local := core.CosineWeightedOnHemisphere(sampler.Uniform01(), sampler.Uniform01())
	direction := frame.ToWorld(local).Normalize()

	cosTheta := direction.Dot(si.Normal)
	if cosTheta <= 0 {
		return ScatterRecordNone
	}
	pdf := core.CosineWeightedOnHemispherePDF(cosTheta)
	attenuation := l.Albedo.Value(si.UV, rayIn.Time).Multiply(cosTheta / math.Pi)

	return ScatterRecord{Kind: ScatterRandom, Direction: direction, Attenuation: attenuation, PDF: pdf}
}

// ScatterToDirection implements Material by evaluating the Lambertian
// BRDF*cos/pdf contract toward a caller-chosen direction (MIS direct light).
func (l *Lambertian) ScatterToDirection(rayIn core.Ray, si SurfaceInteraction, direction core.Vec3) ScatterRecord {
	if si.Backside {
		return ScatterRecordNone
	}
	cosTheta := direction.Dot(si.Normal)
	if cosTheta <= 0 {
		return ScatterRecordNone
	}
	pdf := core.CosineWeightedOnHemispherePDF(cosTheta)
	attenuation := l.Albedo.Value(si.UV, rayIn.Time).Multiply(cosTheta / math.Pi)
	return ScatterRecord{Kind: ScatterRandom, Direction: direction, Attenuation: attenuation, PDF: pdf}
}

package material

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
)

// Phong is the modified-Phong BSDF: a diffuse lobe plus a specular lobe
// centered on the ideal reflection direction, sampled as a two-component
// mixture. Opacity and NormalMap are optional supplemental texture slots
// (alpha-tested transparency and tangent-space normal perturbation); both
// default to nil, meaning fully opaque / no perturbation.
type Phong struct {
	Kd, Ks    Texture
	Shininess float64
	Opacity   Texture
	NormalMap Texture
}

// NewPhong creates a Phong material with constant diffuse/specular colors
// and the given shininess exponent.
func NewPhong(kd, ks core.Vec3, shininess float64) *Phong {
	return &Phong{Kd: NewConstantTexture(kd), Ks: NewConstantTexture(ks), Shininess: shininess}
}

// Le implements Material: Phong surfaces never emit.
func (p *Phong) Le(si SurfaceInteraction, outgoing core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func (p *Phong) shadingNormal(si SurfaceInteraction, time float64) core.Vec3 {
	if p.NormalMap == nil {
		return si.Normal
	}
	sample := p.NormalMap.Value(si.UV, time)
	local := core.NewVec3(2*sample.X-1, 2*sample.Y-1, 2*sample.Z-1).Normalize()
	return si.Tangent.ToWorld(local).Normalize()
}

// specularProbability returns the mixture weight given to the specular lobe,
// derived from the relative luminance of kd and ks and clamped to [0.1,0.9]
// so neither lobe ever starves the importance sampler.
func specularProbability(kd, ks core.Vec3) float64 {
	dl := kd.Luminance()
	sl := ks.Luminance()
	if dl+sl <= 0 {
		return 0.5
	}
	p := sl / (dl + sl)
	return math.Max(0.1, math.Min(0.9, p))
}

func (p *Phong) brdf(kd, ks core.Vec3, reflected, outgoing core.Vec3) core.Vec3 {
	diffuse := kd.Multiply(1 / math.Pi)
	rDotOut := math.Max(0, reflected.Dot(outgoing))
	specCoeff := (p.Shininess + 2) / (2 * math.Pi) * math.Pow(rDotOut, p.Shininess)
	specular := ks.Multiply(specCoeff)
	return diffuse.Add(specular)
}

func (p *Phong) pdf(n, reflected, outgoing core.Vec3, specProb float64) float64 {
	cosTheta := outgoing.Dot(n)
	if cosTheta <= 0 {
		return 0
	}
	diffusePDF := core.CosineWeightedOnHemispherePDF(cosTheta)
	specPDF := core.PhongWeightedOnHemispherePDF(math.Max(0, reflected.Dot(outgoing)), p.Shininess)
	return core.MixF(diffusePDF, specPDF, specProb)
}

// Scatter implements Material: alpha-tests via Opacity, then importance
// samples the diffuse-or-specular mixture.
func (p *Phong) Scatter(rayIn core.Ray, si SurfaceInteraction, sampler core.Sampler) ScatterRecord {
	if si.Backside {
		return ScatterRecordNone
	}
	if p.Opacity != nil {
		alpha := p.Opacity.Value(si.UV, rayIn.Time).X
		if alpha < sampler.Uniform01() {
			return ScatterRecord{Kind: ScatterExplicit, Direction: rayIn.Direction, Attenuation: core.NewVec3(1, 1, 1), PDF: 0}
		}
	}

	n := p.shadingNormal(si, rayIn.Time)
	kd := p.Kd.Value(si.UV, rayIn.Time)
	ks := p.Ks.Value(si.UV, rayIn.Time)
	specProb := specularProbability(kd, ks)
	reflected := core.Reflect(rayIn.Direction.Normalize(), n)

	var direction core.Vec3
	if sampler.Uniform01() < specProb {
		frame := core.NewTangentSpaceFromNormal(reflected)
		local := core.PhongWeightedOnHemisphere(sampler.Uniform01(), sampler.Uniform01(), p.Shininess)
		direction = frame.ToWorld(local).Normalize()
	} else {
		frame := core.NewTangentSpaceFromNormal(n)
		local := core.CosineWeightedOnHemisphere(sampler.Uniform01(), sampler.Uniform01())
		direction = frame.ToWorld(local).Normalize()
	}

	cosTheta := direction.Dot(n)
	if cosTheta <= 0 {
		return ScatterRecordNone
	}
	pdf := p.pdf(n, reflected, direction, specProb)
	if pdf <= 0 {
		return ScatterRecordNone
	}
	attenuation := p.brdf(kd, ks, reflected, direction).Multiply(cosTheta)
	return ScatterRecord{Kind: ScatterRandom, Direction: direction, Attenuation: attenuation, PDF: pdf}
}

// ScatterToDirection implements Material by evaluating the Phong
// BRDF*cos/pdf mixture toward a caller-chosen direction.
func (p *Phong) ScatterToDirection(rayIn core.Ray, si SurfaceInteraction, direction core.Vec3) ScatterRecord {
	if si.Backside {
		return ScatterRecordNone
	}
	n := p.shadingNormal(si, rayIn.Time)
	cosTheta := direction.Dot(n)
	if cosTheta <= 0 {
		return ScatterRecordNone
	}
	kd := p.Kd.Value(si.UV, rayIn.Time)
	ks := p.Ks.Value(si.UV, rayIn.Time)
	specProb := specularProbability(kd, ks)
	reflected := core.Reflect(rayIn.Direction.Normalize(), n)

	pdf := p.pdf(n, reflected, direction, specProb)
	if pdf <= 0 {
		return ScatterRecordNone
	}
	attenuation := p.brdf(kd, ks, reflected, direction).Multiply(cosTheta)
	return ScatterRecord{Kind: ScatterRandom, Direction: direction, Attenuation: attenuation, PDF: pdf}
}

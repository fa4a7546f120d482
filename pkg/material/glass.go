package material

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
)

// Glass is a dielectric that stochastically reflects or refracts according
// to the exact unpolarized Fresnel equation, with Beer-Lambert absorption
// applied over the path length traveled inside the volume.
type Glass struct {
	Absorption      core.Vec3
	RefractiveIndex float64
}

// NewGlass creates a Glass material with the given absorption coefficients
// and refractive index (1.5 matches typical window glass).
func NewGlass(absorption core.Vec3, refractiveIndex float64) *Glass {
	if refractiveIndex <= 0 {
		refractiveIndex = 1.5
	}
	return &Glass{Absorption: absorption, RefractiveIndex: refractiveIndex}
}

// Le implements Material: glass never emits.
func (g *Glass) Le(si SurfaceInteraction, outgoing core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Scatter implements Material: glass handles both sides of its surface
// (the backside flag tells it whether the ray is exiting the volume) rather
// than terminating on backside hits like the one-sided materials.
func (g *Glass) Scatter(rayIn core.Ray, si SurfaceInteraction, sampler core.Sampler) ScatterRecord {
	attenuation := core.NewVec3(1, 1, 1)
	n1, n2 := 1.0, g.RefractiveIndex
	if si.Backside {
		n1, n2 = n2, n1
		distInVolume := si.T
		attenuation = core.NewVec3(
			expNeg(g.Absorption.X*distInVolume),
			expNeg(g.Absorption.Y*distInVolume),
			expNeg(g.Absorption.Z*distInVolume),
		)
	}

	direction := rayIn.Direction.Normalize()
	refracted := core.Refract(direction, si.Normal, n1/n2)

	doReflection := true
	if refracted.LengthSquared() > 0 {
		cosIncident := direction.Negate().Dot(si.Normal)
		cosTransmitted := refracted.Negate().Dot(si.Normal)
		fresnel := fresnelUnpolarized(cosIncident, cosTransmitted, n1, n2)
		doReflection = sampler.Uniform01() < fresnel
	}

	var out core.Vec3
	if doReflection {
		out = core.Reflect(direction, si.Normal)
	} else {
		out = refracted
	}

	return ScatterRecord{
		Kind:        ScatterExplicit,
		Direction:   out.Normalize(),
		Attenuation: attenuation,
		PDF:         0,
	}
}

// ScatterToDirection implements Material: glass is a delta BSDF, so it never
// contributes to MIS direct lighting toward an externally-chosen direction.
func (g *Glass) ScatterToDirection(rayIn core.Ray, si SurfaceInteraction, direction core.Vec3) ScatterRecord {
	return ScatterRecordNone
}

// fresnelUnpolarized is the exact unpolarized Fresnel reflectance from the
// s- and p-polarized components.
func fresnelUnpolarized(cosI, cosT, n1, n2 float64) float64 {
	fs := (n1*cosI - n2*cosT) / (n1*cosI + n2*cosT)
	fs *= fs
	fp := (n1*cosT - n2*cosI) / (n1*cosT + n2*cosI)
	fp *= fp
	return 0.5 * (fs + fp)
}

func expNeg(x float64) float64 {
	if x <= 0 {
		return 1
	}
	return math.Exp(-x)
}

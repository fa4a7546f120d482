// Package integrator implements the unidirectional path-tracing estimator:
// a loop of BSDF-sampled segments with multiple-importance-sampled direct
// lighting and Russian-roulette termination.
package integrator

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/material"
	"github.com/windlorne/luxtracer/pkg/scene"
)

const (
	// DefaultMaxSegments caps how many scatter events a single path may
	// accumulate before it is forcibly terminated, absent a driver override.
	DefaultMaxSegments = 128
	// DefaultMinHit is the shadow-acne epsilon applied to every ray's tMin,
	// absent a driver override.
	DefaultMinHit = 1e-4
	// DefaultRussianRouletteMinSegment is the first segment index Russian
	// roulette may fire on, absent a driver override.
	DefaultRussianRouletteMinSegment = 5
	// DefaultRussianRouletteMaxQ is the largest kill probability Russian
	// roulette will ever use, keeping at least a 5% chance of survival,
	// absent a driver override.
	DefaultRussianRouletteMaxQ = 0.95
)

// Config carries the integrator tunables as driver-supplied knobs, with no
// hidden global state. A zero-valued field falls back to the package
// default, so callers may supply a partial Config.
type Config struct {
	MaxSegments               int
	MinHit                    float64
	RussianRouletteMinSegment int
	RussianRouletteMaxQ       float64
}

func (c Config) withDefaults() Config {
	if c.MaxSegments <= 0 {
		c.MaxSegments = DefaultMaxSegments
	}
	if c.MinHit <= 0 {
		c.MinHit = DefaultMinHit
	}
	if c.RussianRouletteMinSegment <= 0 {
		c.RussianRouletteMinSegment = DefaultRussianRouletteMinSegment
	}
	if c.RussianRouletteMaxQ <= 0 {
		c.RussianRouletteMaxQ = DefaultRussianRouletteMaxQ
	}
	return c
}

// PathTracer evaluates a single radiance sample per primary ray. Besides
// its immutable Config it carries no state of its own: every per-ray
// quantity lives on the call stack, so a single PathTracer is shared,
// read-only, across every render worker.
type PathTracer struct {
	config Config
}

// NewPathTracer creates a path-tracing integrator using the package
// defaults for every tunable.
func NewPathTracer() *PathTracer {
	return &PathTracer{config: Config{}.withDefaults()}
}

// NewPathTracerWithConfig creates a path-tracing integrator using the given
// tunables, falling back to the package default for any field left zero.
func NewPathTracerWithConfig(cfg Config) *PathTracer {
	return &PathTracer{config: cfg.withDefaults()}
}

// Li traces ray through scn and returns the estimated incoming radiance,
// drawing randomness from sampler.
func (pt *PathTracer) Li(ray core.Ray, scn *scene.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for segment := 0; segment < pt.config.MaxSegments; segment++ {
		si, hit := scn.Hit(ray, pt.config.MinHit, math.MaxFloat64)
		if !hit {
			radiance = radiance.Add(throughput.MultiplyVec(scn.BackgroundRadiance(ray)))
			break
		}

		radiance = radiance.Add(throughput.MultiplyVec(si.Material.Le(si, ray.Direction.Negate())))

		sr := si.Material.Scatter(ray, si, sampler)
		if sr.Kind == material.ScatterNone {
			break
		}

		var nextThroughput core.Vec3
		if sr.IsSpecular() {
			nextThroughput = throughput.MultiplyVec(sr.Attenuation)
		} else {
			nextThroughput = throughput.MultiplyVec(sr.Attenuation).Multiply(1 / sr.PDF)

			if len(scn.Lights) > 0 {
				pBSDFToLights := scn.AverageLightPDF(core.NewRay(si.Point, sr.Direction, ray.Time))
				weight := core.PowerHeuristic(sr.PDF, pBSDFToLights)
				nextThroughput = nextThroughput.Multiply(weight)

				radiance = radiance.Add(pt.sampleDirectLight(scn, si, ray, throughput, sampler))
			}
		}

		throughput = nextThroughput
		ray = core.NewRay(si.Point, sr.Direction, ray.Time)

		if segment >= pt.config.RussianRouletteMinSegment {
			maxComponent := throughput.MaxComponent()
			q := clamp(1-maxComponent, 0, pt.config.RussianRouletteMaxQ)
			if sampler.Uniform01() < q {
				break
			}
			throughput = throughput.Multiply(1 / (1 - q))
		}
	}

	return radiance
}

// sampleDirectLight performs one MIS-weighted next-event-estimation
// sample: pick a light, evaluate the surface's BSDF toward it, and credit
// its emission only if the shadow ray lands on exactly that light surface.
func (pt *PathTracer) sampleDirectLight(scn *scene.Scene, si material.SurfaceInteraction, ray core.Ray, throughput core.Vec3, sampler core.Sampler) core.Vec3 {
	lightDir, pLight, chosen, ok := scn.SampleLight(si.Point, ray.Time, sampler)
	if !ok || pLight <= 0 {
		return core.Vec3{}
	}

	srLight := si.Material.ScatterToDirection(ray, si, lightDir)
	if srLight.Kind == material.ScatterNone || srLight.PDF <= 0 {
		return core.Vec3{}
	}

	shadowRay := core.NewRay(si.Point, lightDir, ray.Time)
	hitSi, hit := scn.Hit(shadowRay, pt.config.MinHit, math.MaxFloat64)
	if !hit || hitSi.Surface != chosen {
		return core.Vec3{}
	}

	weight := core.PowerHeuristic(pLight, srLight.PDF)
	emitted := hitSi.Material.Le(hitSi, lightDir.Negate())

	return throughput.MultiplyVec(srLight.Attenuation).MultiplyVec(emitted).Multiply(weight / pLight)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

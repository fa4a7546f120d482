package geometry

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/material"
)

// Sphere is a rigid sphere in the local frame (center, radius) carried
// through an Animation so it can translate, rotate, and scale over the
// shutter window. A constant Animation (core.AnimationConstant) gives a
// static sphere.
type Sphere struct {
	Center    core.Vec3
	Radius    float64
	Material  material.Material
	Animation core.Animation
}

// NewSphere creates a static sphere centered at center.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:    center,
		Radius:    radius,
		Material:  mat,
		Animation: core.NewAnimationConstant(core.Identity()),
	}
}

// NewAnimatedSphere creates a sphere whose local center/radius are carried
// through the given Animation (used for motion blur).
func NewAnimatedSphere(center core.Vec3, radius float64, mat material.Material, anim core.Animation) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat, Animation: anim}
}

// worldCR resolves the sphere's world-space center, radius, and the
// transformation in effect at time t.
func (s *Sphere) worldCR(t float64) (core.Vec3, float64, core.Transformation) {
	T := s.Animation.At(t)
	c := T.Apply(s.Center)
	r := T.Scaling.X * s.Radius
	return c, r, T
}

// Hit implements Surface using the numerically-stable root selection: the
// far root is computed from whichever subtraction avoids catastrophic
// cancellation (based on the sign of aq), and the near root is recovered
// from Vieta's formula rather than a second square root.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool) {
	c, r, T := s.worldCR(ray.Time)
	return s.hitAt(c, r, T, ray, tMin, tMax)
}

func (s *Sphere) hitAt(c core.Vec3, r float64, T core.Transformation, ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool) {
	oc := ray.Origin.Subtract(c)
	aq := -oc.Dot(ray.Direction)
	tmp := oc.Subtract(ray.Direction.Multiply(oc.Dot(ray.Direction)))
	discriminant := r*r - tmp.Dot(tmp)
	if discriminant <= 0 {
		return material.Miss, false
	}

	sqrtDisc := math.Sqrt(discriminant)
	var a1, a2 float64
	if aq < 0 {
		a2 = aq - sqrtDisc
		a1 = 2*aq - a2
	} else {
		a1 = aq + sqrtDisc
		a2 = 2*aq - a1
	}

	var a float64
	switch {
	case a2 > tMin && a2 < tMax:
		a = a2
	case a1 > tMin && a1 < tMax:
		a = a1
	default:
		return material.Miss, false
	}

	return s.constructInteraction(ray, a, c, r, T), true
}

func (s *Sphere) constructInteraction(ray core.Ray, a float64, c core.Vec3, r float64, T core.Transformation) material.SurfaceInteraction {
	p := ray.At(a)
	n := p.Subtract(c).Normalize()

	rn := T.Rotation.Rotate(n)
	alpha := math.Atan2(rn.X, rn.Z)
	beta := math.Asin(math.Max(-1, math.Min(1, rn.Y)))
	u := (alpha + math.Pi) / (2 * math.Pi)
	v := (beta + math.Pi/2) / math.Pi

	tangentDir := core.NewVec3(math.Cos(alpha), 0, -math.Sin(alpha))

	si := material.SurfaceInteraction{
		Hit:      true,
		T:        a,
		Point:    p,
		UV:       core.NewVec2(u, v),
		Surface:  s,
		Material: s.Material,
	}
	si.SetFaceForward(ray.Direction, n)
	si.Tangent = core.NewTangentSpaceFromNormalAndTangent(si.Normal, tangentDir)
	return si
}

// BoundingBox implements Surface. For a constant animation the box is exact;
// for a moving sphere it is the union of 16 snapshots across [t0,t1].
func (s *Sphere) BoundingBox(t0, t1 float64) core.AABB {
	c0, r0, _ := s.worldCR(t0)
	box := core.NewAABB(
		c0.Subtract(core.NewVec3(r0, r0, r0)),
		c0.Add(core.NewVec3(r0, r0, r0)),
	)
	const steps = 16
	for i := 1; i < steps; i++ {
		t := core.MixF(t0, t1, float64(i)/float64(steps-1))
		c, r, _ := s.worldCR(t)
		box = box.Union(core.NewAABB(
			c.Subtract(core.NewVec3(r, r, r)),
			c.Add(core.NewVec3(r, r, r)),
		))
	}
	return box
}

// Direction implements LightSurface: samples a direction from origin
// towards this sphere at time t, using the exact inside/outside split.
func (s *Sphere) Direction(origin core.Vec3, time, u1, u2 float64) core.Vec3 {
	c, r, _ := s.worldCR(time)
	cmo := c.Subtract(origin)
	distSq := cmo.Dot(cmo)
	rSq := r * r

	if distSq <= rSq {
		return core.UniformOnSphere(u1, u2)
	}

	cosThetaMax := math.Sqrt(math.Max(0, 1-rSq/distSq))
	local := core.UniformTowardsSphere(u1, u2, cosThetaMax)
	frame := core.NewTangentSpaceFromNormal(cmo.Normalize())
	return frame.ToWorld(local).Normalize()
}

// PDF implements LightSurface using the exact solid-angle formula: 1/(4pi)
// from inside the sphere, 1/(2pi(1-cosThetaMax)) from outside when the ray
// actually hits, zero otherwise.
func (s *Sphere) PDF(ray core.Ray) float64 {
	c, r, T := s.worldCR(ray.Time)
	cmo := c.Subtract(ray.Origin)
	distSq := cmo.Dot(cmo)
	rSq := r * r

	if distSq <= rSq {
		return 1.0 / (4.0 * math.Pi)
	}

	if _, hit := s.hitAt(c, r, T, ray, 1e-4, math.MaxFloat64); !hit {
		return 0
	}
	cosThetaMax := math.Sqrt(math.Max(0, 1-rSq/distSq))
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1.0 / solidAngle
}

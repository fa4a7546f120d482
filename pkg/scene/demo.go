package scene

import (
	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/geometry"
	"github.com/windlorne/luxtracer/pkg/material"
)

// CameraHint is the plain-data camera placement a demo scene suggests;
// pkg/renderer turns it into an actual Camera. Kept here (rather than a
// *renderer.Camera field on Scene) so pkg/scene never has to import
// pkg/renderer back.
type CameraHint struct {
	Center, LookAt, Up core.Vec3
	VFov, Aspect       float64
	Aperture           float64
	FocusDistance      float64
}

// NewFurnaceScene builds the classic furnace test: a Lambertian sphere of full
// albedo enclosed in a two-sided emissive sphere, so every visible pixel on
// the inner sphere should converge to the emitted radiance — any deviation
// means energy is leaking somewhere in the integrator.
func NewFurnaceScene() (*Scene, CameraHint) {
	s := New(0, 0)

	inner := geometry.NewSphere(core.Vec3{}, 0.5, material.NewLambertian(core.NewVec3(1, 1, 1)))
	s.AddSurface(inner)

	enclosure := material.NewTwoSided(material.NewLight(core.NewVec3(1, 1, 1)))
	outer := geometry.NewSphere(core.Vec3{}, 2000, enclosure)
	s.AddLight(outer)

	hint := CameraHint{
		Center: core.NewVec3(0, 0, 3), LookAt: core.Vec3{}, Up: core.NewVec3(0, 1, 0),
		VFov: 30, Aspect: 1,
	}
	return s, hint
}

// NewCornellBoxScene builds a Cornell box scene: a red/green/white Cornell box
// with a ceiling light panel and two spheres, grounded on the classic
// 555-unit box layout.
func NewCornellBoxScene() (*Scene, CameraHint) {
	s := New(0, 0)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	const box = 555.0

	// Edge order is chosen so every wall's u x v normal faces into the box.
	floor := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, box), core.NewVec3(box, 0, 0), white)
	ceiling := geometry.NewQuad(core.NewVec3(0, box, 0), core.NewVec3(box, 0, 0), core.NewVec3(0, 0, box), white)
	back := geometry.NewQuad(core.NewVec3(0, 0, box), core.NewVec3(0, box, 0), core.NewVec3(box, 0, 0), white)
	left := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, box, 0), core.NewVec3(0, 0, box), red)
	right := geometry.NewQuad(core.NewVec3(box, 0, 0), core.NewVec3(0, 0, box), core.NewVec3(0, box, 0), green)
	s.AddSurface(floor)
	s.AddSurface(ceiling)
	s.AddSurface(back)
	s.AddSurface(left)
	s.AddSurface(right)

	const lightSize = 130.0
	lightOffset := (box - lightSize) / 2.0
	panel := geometry.NewQuad(
		core.NewVec3(lightOffset, box-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		material.NewLight(core.NewVec3(15, 15, 15)),
	)
	s.AddLight(panel)

	mirrorSphere := geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMirror(core.NewVec3(0.8, 0.8, 0.9)))
	glassSphere := geometry.NewSphere(core.NewVec3(370, 90, 351), 90, material.NewGlass(core.Vec3{}, 1.5))
	s.AddSurface(mirrorSphere)
	s.AddSurface(glassSphere)

	hint := CameraHint{
		Center: core.NewVec3(278, 278, -800), LookAt: core.NewVec3(278, 278, 0), Up: core.NewVec3(0, 1, 0),
		VFov: 40, Aspect: 1,
	}
	return s, hint
}

// NewGlassCausticScene builds a caustic scene: a glass sphere over a
// Lambertian ground plane under an overhead area light, producing a
// visible caustic disc directly beneath the sphere.
func NewGlassCausticScene() (*Scene, CameraHint) {
	s := New(0, 0)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	groundQuad := geometry.NewQuad(core.NewVec3(-20, 0, -20), core.NewVec3(0, 0, 40), core.NewVec3(40, 0, 0), ground)
	s.AddSurface(groundQuad)

	glass := geometry.NewSphere(core.NewVec3(0, 0.3, -4), 0.5, material.NewGlass(core.Vec3{}, 1.5))
	s.AddSurface(glass)

	overhead := geometry.NewQuad(
		core.NewVec3(-1, 5, -5), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2),
		material.NewLight(core.NewVec3(10, 10, 10)),
	)
	s.AddLight(overhead)

	hint := CameraHint{
		Center: core.NewVec3(0, 2, 2), LookAt: core.NewVec3(0, 0.3, -4), Up: core.NewVec3(0, 1, 0),
		VFov: 40, Aspect: 1,
	}
	return s, hint
}

// NewMirrorReciprocityScene builds a mirror-corridor scene: two parallel mirror walls
// facing each other with a Lambertian ball between them, used to check that
// Russian roulette and MAX_SEGMENTS keep the infinite-bounce corridor from
// ever producing NaN pixels.
func NewMirrorReciprocityScene() (*Scene, CameraHint) {
	s := New(0, 0)

	mirror := material.NewMirror(core.NewVec3(0.95, 0.95, 0.95))
	left := geometry.NewQuad(core.NewVec3(-3, -3, -3), core.NewVec3(0, 6, 0), core.NewVec3(0, 0, 6), mirror)
	right := geometry.NewQuad(core.NewVec3(3, -3, -3), core.NewVec3(0, 0, 6), core.NewVec3(0, 6, 0), mirror)
	s.AddSurface(left)
	s.AddSurface(right)

	ball := geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(core.NewVec3(0.6, 0.3, 0.3)))
	s.AddSurface(ball)

	light := geometry.NewQuad(core.NewVec3(-1, 2.9, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), material.NewLight(core.NewVec3(4, 4, 4)))
	s.AddLight(light)

	hint := CameraHint{
		Center: core.NewVec3(0, 0, 5), LookAt: core.Vec3{}, Up: core.NewVec3(0, 1, 0),
		VFov: 40, Aspect: 1,
	}
	return s, hint
}

// NewMotionBlurSphereScene builds a motion-blur scene: a sphere translating
// linearly over the shutter window, used to check that the moving-sphere
// AABB union and the camera's time-sampled ray generation produce a smooth
// streak rather than a double-exposed ghost.
func NewMotionBlurSphereScene() (*Scene, CameraHint) {
	s := New(0, 1)

	start := core.NewTransformation(core.NewVec3(-1, 0, -5), core.QuatIdentity(), core.NewVec3(1, 1, 1))
	end := core.NewTransformation(core.NewVec3(1, 0, -5), core.QuatIdentity(), core.NewVec3(1, 1, 1))
	anim := core.NewAnimationKeyframed(start, end, 0, 1)

	moving := geometry.NewAnimatedSphere(core.Vec3{}, 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)), anim)
	s.AddSurface(moving)

	ground := geometry.NewSphere(core.NewVec3(0, -100.5, -5), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSurface(ground)

	s.EnvMap = material.NewConstantEnvMap(core.NewVec3(0.5, 0.7, 1.0))

	hint := CameraHint{
		Center: core.NewVec3(0, 0, 0), LookAt: core.NewVec3(0, 0, -5), Up: core.NewVec3(0, 1, 0),
		VFov: 40, Aspect: 1,
	}
	return s, hint
}

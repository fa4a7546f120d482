package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windlorne/luxtracer/pkg/core"
)

func frontHit(normal core.Vec3) SurfaceInteraction {
	return SurfaceInteraction{
		Hit:     true,
		Point:   core.NewVec3(0, 0, 0),
		Normal:  normal,
		UV:      core.NewVec2(0.5, 0.5),
		Tangent: core.NewTangentSpaceFromNormal(normal),
	}
}

func TestLambertianScatterIsCosineWeighted(t *testing.T) {
	l := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	si := frontHit(core.NewVec3(0, 1, 0))
	sampler := core.NewPixelSampler(7)

	for i := 0; i < 100; i++ {
		ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 0)
		sr := l.Scatter(ray, si, sampler)
		require.Equal(t, ScatterRandom, sr.Kind)
		assert.Greater(t, sr.PDF, 0.0)
		assert.GreaterOrEqual(t, sr.Direction.Dot(si.Normal), 0.0)
	}
}

func TestLambertianBacksideTerminates(t *testing.T) {
	l := NewLambertian(core.NewVec3(1, 1, 1))
	si := frontHit(core.NewVec3(0, 1, 0))
	si.Backside = true
	sr := l.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0), 0), si, core.NewPixelSampler(1))
	assert.Equal(t, ScatterNone, sr.Kind)
}

func TestMirrorReflectReflectIsIdentity(t *testing.T) {
	n := core.NewVec3(0, 1, 0)
	d := core.NewVec3(1, -1, 0).Normalize()
	r := core.Reflect(d, n)
	back := core.Reflect(r, n)
	assert.InDelta(t, d.X, back.X, 1e-9)
	assert.InDelta(t, d.Y, back.Y, 1e-9)
	assert.InDelta(t, d.Z, back.Z, 1e-9)
}

func TestMirrorScatterIsSpecular(t *testing.T) {
	m := NewMirror(core.NewVec3(1, 1, 1))
	si := frontHit(core.NewVec3(0, 1, 0))
	sr := m.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(1, -1, 0).Normalize(), 0), si, core.NewPixelSampler(2))
	assert.True(t, sr.IsSpecular())
	assert.InDelta(t, 1.0, sr.Direction.Length(), 1e-9)
}

func TestFresnelUnpolarizedBounds(t *testing.T) {
	f := fresnelUnpolarized(1.0, 1.0, 1.5, 1.5)
	assert.InDelta(t, 0.0, f, 1e-9)

	n1, n2 := 1.0, 1.5
	normalIncidence := fresnelUnpolarized(1, 1, n1, n2)
	expected := math.Pow((n1-n2)/(n1+n2), 2)
	assert.InDelta(t, expected, normalIncidence, 1e-5)
}

func TestGlassScatterIsAlwaysSpecularAndUnitLength(t *testing.T) {
	g := NewGlass(core.Vec3{}, 1.5)
	si := frontHit(core.NewVec3(0, 1, 0))
	ray := core.NewRay(core.NewVec3(0, 1, -1), core.NewVec3(0.2, -1, 0).Normalize(), 0)
	sr := g.Scatter(ray, si, core.NewPixelSampler(3))
	assert.True(t, sr.IsSpecular())
	assert.InDelta(t, 1.0, sr.Direction.Length(), 1e-9)
}

func TestLightEmitsOnlyOnFrontSide(t *testing.T) {
	light := NewLight(core.NewVec3(5, 5, 5))
	front := frontHit(core.NewVec3(0, 1, 0))
	back := front
	back.Backside = true

	assert.Equal(t, core.NewVec3(5, 5, 5), light.Le(front, core.NewVec3(0, 1, 0)))
	assert.True(t, light.Le(back, core.NewVec3(0, 1, 0)).IsZero())
	assert.Equal(t, ScatterNone, light.Scatter(core.Ray{}, front, core.NewPixelSampler(4)).Kind)
}

func TestTwoSidedFlipsBacksideToFront(t *testing.T) {
	ts := NewTwoSided(NewLight(core.NewVec3(2, 2, 2)))
	back := frontHit(core.NewVec3(0, 1, 0))
	back.Backside = true
	assert.Equal(t, core.NewVec3(2, 2, 2), ts.Le(back, core.NewVec3(0, 1, 0)))
}

func TestPhongSpecularProbabilityClamped(t *testing.T) {
	assert.InDelta(t, 0.1, specularProbability(core.NewVec3(1, 1, 1), core.Vec3{}), 1e-9)
	assert.InDelta(t, 0.9, specularProbability(core.Vec3{}, core.NewVec3(1, 1, 1)), 1e-9)
}

func TestCheckerTextureAlternates(t *testing.T) {
	checker := NewCheckerTexture(NewConstantTexture(core.NewVec3(0, 0, 0)), NewConstantTexture(core.NewVec3(1, 1, 1)), 1.0)
	a := checker.Value(core.NewVec2(0.5, 0.5), 0)
	b := checker.Value(core.NewVec2(1.5, 0.5), 0)
	assert.NotEqual(t, a, b)
}

type uvEchoTexture struct{}

func (uvEchoTexture) Value(uv core.Vec2, time float64) core.Vec3 {
	return core.NewVec3(uv.X, uv.Y, 0)
}

func TestEquirectEnvMapMapsForwardAxisToCenter(t *testing.T) {
	env := NewEquirectEnvMap(uvEchoTexture{})
	// +Z maps to the horizontal center of the equirect image, on the equator.
	c := env.Value(core.NewVec3(0, 0, 1), 0)
	assert.InDelta(t, 0.5, c.X, 1e-9)
	assert.InDelta(t, 0.5, c.Y, 1e-9)

	up := env.Value(core.NewVec3(0, 1, 0), 0)
	assert.InDelta(t, 1.0, up.Y, 1e-9)
}

func TestCubeEnvMapSelectsDominantAxisFace(t *testing.T) {
	var faces [6]Texture
	for i := range faces {
		faces[i] = NewConstantTexture(core.NewVec3(float64(i), 0, 0))
	}
	env := NewCubeEnvMap(faces)
	assert.InDelta(t, float64(CubeFacePosX), env.Value(core.NewVec3(1, 0.1, -0.2), 0).X, 1e-12)
	assert.InDelta(t, float64(CubeFaceNegY), env.Value(core.NewVec3(0.1, -1, 0.2), 0).X, 1e-12)
	assert.InDelta(t, float64(CubeFacePosZ), env.Value(core.NewVec3(0.2, 0.1, 1), 0).X, 1e-12)
}

func TestConstantEnvMapIgnoresDirection(t *testing.T) {
	env := NewConstantEnvMap(core.NewVec3(0.1, 0.2, 0.3))
	assert.Equal(t, env.Value(core.NewVec3(0, 1, 0), 0), env.Value(core.NewVec3(1, 0, 0), 0.5))
}

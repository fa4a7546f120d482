package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/material"
)

func TestSphereHitFrontFaceNormalFacesRay(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -5), 1, material.NewLambertian(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0)
	si, ok := s.Hit(ray, 1e-4, math.MaxFloat64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, si.Normal.Dot(ray.Direction.Negate()), 0.0)
	assert.False(t, si.Backside)
}

func TestSphereHitTangentProducesNoCrash(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 1, 0), 1, material.NewLambertian(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	_, _ = s.Hit(ray, 1e-4, math.MaxFloat64)
}

func TestSphereLightPDFInsideSphere(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, 0), 2, material.NewLight(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 0)
	pdf := s.PDF(ray)
	assert.InDelta(t, 1.0/(4*math.Pi), pdf, 1e-9)
}

func TestSphereDirectionAlwaysHasPositivePDF(t *testing.T) {
	s := NewSphere(core.NewVec3(5, 0, 0), 1, material.NewLight(core.NewVec3(1, 1, 1)))
	origin := core.NewVec3(0, 0, 0)
	dir := s.Direction(origin, 0, 0.37, 0.81)
	ray := core.NewRay(origin, dir, 0)
	assert.Greater(t, s.PDF(ray), 0.0)
}

func TestTriangleHitMatchesBarycentricInterpolation(t *testing.T) {
	tri := NewTriangleWithUVs(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0.5, 1),
		material.NewLambertian(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(0, -0.5, 5), core.NewVec3(0, 0, -1), 0)
	si, ok := tri.Hit(ray, 1e-4, math.MaxFloat64)
	require.True(t, ok)
	assert.InDelta(t, 5, si.T, 1e-9)
	assert.False(t, si.Backside)
	// The hit (0,-0.5,0) has barycentrics (w,u,v) = (0.375, 0.375, 0.25),
	// so the interpolated UV is 0.375*(1,0) + 0.25*(0.5,1) = (0.5, 0.25).
	assert.InDelta(t, 0.5, si.UV.X, 1e-9)
	assert.InDelta(t, 0.25, si.UV.Y, 1e-9)
}

func TestTriangleBacksideHitFlagged(t *testing.T) {
	tri := NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0), material.NewLambertian(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, -0.5, -5), core.NewVec3(0, 0, 1), 0)
	si, ok := tri.Hit(ray, 1e-4, math.MaxFloat64)
	require.True(t, ok)
	assert.True(t, si.Backside)
}

func TestMeshComputeTangentsOrthogonalToNormal(t *testing.T) {
	mesh := NewMesh(
		[]core.Vec3{core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0)},
		[]core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
		[]core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0.5, 1)},
		[]int{0, 1, 2},
		material.NewLambertian(core.NewVec3(1, 1, 1)),
	)
	mesh.ComputeTangents()
	require.NotNil(t, mesh.Tangents)
	for i, tangent := range mesh.Tangents {
		assert.InDelta(t, 0, tangent.Dot(mesh.Normals[i]), 1e-6)
	}
}

func TestMeshTriangleHitUsesComputedTangents(t *testing.T) {
	mesh := NewMesh(
		[]core.Vec3{core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0)},
		[]core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
		[]core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0.5, 1)},
		[]int{0, 1, 2},
		material.NewLambertian(core.NewVec3(1, 1, 1)),
	)
	mesh.ComputeTangents()

	tri := mesh.Triangles()[0]
	ray := core.NewRay(core.NewVec3(0, -0.5, 5), core.NewVec3(0, 0, -1), 0)
	si, ok := tri.Hit(ray, 1e-4, math.MaxFloat64)
	require.True(t, ok)

	// u increases along +X in this parameterization, so the hit's tangent
	// frame must align with it rather than the arbitrary normal-only frame.
	assert.InDelta(t, 1, si.Tangent.Tangent.Dot(core.NewVec3(1, 0, 0)), 1e-6)
	assert.InDelta(t, 0, si.Tangent.Tangent.Dot(si.Normal), 1e-9)
}

func buildSurfaceGrid(n int) []Surface {
	surfaces := make([]Surface, 0, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			center := core.NewVec3(float64(x)*3, float64(y)*3, 0)
			surfaces = append(surfaces, NewSphere(center, 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
		}
	}
	return surfaces
}

func TestBVHEveryLeafHasExactlyOneSurface(t *testing.T) {
	surfaces := buildSurfaceGrid(5)
	bvh, err := BuildBVH(surfaces, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, len(surfaces), bvh.leafCount())
}

func TestBVHMatchesLinearScan(t *testing.T) {
	surfaces := buildSurfaceGrid(4)
	bvh, err := BuildBVH(surfaces, 0, 0)
	require.NoError(t, err)

	ray := core.NewRay(core.NewVec3(3, 3, 20), core.NewVec3(0, 0, -1), 0)

	bvhHit, bvhOK := bvh.Hit(ray, 1e-4, math.MaxFloat64)

	var linearBest material.SurfaceInteraction
	linearOK := false
	closest := math.MaxFloat64
	for _, s := range surfaces {
		if si, ok := s.Hit(ray, 1e-4, closest); ok {
			linearBest = si
			linearOK = true
			closest = si.T
		}
	}

	require.Equal(t, linearOK, bvhOK)
	assert.InDelta(t, linearBest.T, bvhHit.T, 1e-6)
}

func TestBVHRejectsEmptySurfaceSet(t *testing.T) {
	_, err := BuildBVH(nil, 0, 1)
	assert.Error(t, err)
}

func boxContains(outer, inner core.AABB) bool {
	const eps = 1e-9
	return outer.Min.X <= inner.Min.X+eps && outer.Min.Y <= inner.Min.Y+eps && outer.Min.Z <= inner.Min.Z+eps &&
		outer.Max.X >= inner.Max.X-eps && outer.Max.Y >= inner.Max.Y-eps && outer.Max.Z >= inner.Max.Z-eps
}

// TestBVHInternalNodesContainChildren walks the flattened tree checking the
// structural invariants: every internal node's box bounds both children,
// the encoded second-child offset is odd, and every leaf holds a surface.
func TestBVHInternalNodesContainChildren(t *testing.T) {
	surfaces := buildSurfaceGrid(6)
	bvh, err := BuildBVH(surfaces, 0, 0)
	require.NoError(t, err)

	for i := range bvh.nodes {
		node := &bvh.nodes[i]
		if node.child2MulTwoPlusOne%2 == 0 {
			assert.NotNil(t, node.surface)
			continue
		}
		child1 := &bvh.nodes[i+1]
		child2 := &bvh.nodes[node.child2MulTwoPlusOne/2]
		assert.True(t, boxContains(node.box, child1.box.Union(child2.box)),
			"internal node %d does not bound its children", i)
	}
}

// TestBVHMatchesLinearScanOverManyRays fires randomized rays through a
// sphere grid and requires the BVH and a brute-force scan to agree on
// every one of them.
func TestBVHMatchesLinearScanOverManyRays(t *testing.T) {
	surfaces := buildSurfaceGrid(5)
	bvh, err := BuildBVH(surfaces, 0, 0)
	require.NoError(t, err)

	sampler := core.NewPixelSampler(99)
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(12*sampler.Uniform01(), 12*sampler.Uniform01(), 30)
		target := core.NewVec3(12*sampler.Uniform01(), 12*sampler.Uniform01(), 0)
		ray := core.NewRay(origin, target.Subtract(origin).Normalize(), 0)

		bvhHit, bvhOK := bvh.Hit(ray, 1e-4, math.MaxFloat64)

		linearOK := false
		closest := math.MaxFloat64
		var linearBest material.SurfaceInteraction
		for _, s := range surfaces {
			if si, ok := s.Hit(ray, 1e-4, closest); ok {
				linearBest = si
				linearOK = true
				closest = si.T
			}
		}

		require.Equal(t, linearOK, bvhOK)
		if linearOK {
			assert.InDelta(t, linearBest.T, bvhHit.T, 1e-9)
		}
	}
}

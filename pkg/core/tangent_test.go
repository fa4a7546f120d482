package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertOrthonormal(t *testing.T, ts TangentSpace) {
	t.Helper()
	assert.InDelta(t, 1, ts.Tangent.Length(), 1e-9)
	assert.InDelta(t, 1, ts.Bitangent.Length(), 1e-9)
	assert.InDelta(t, 1, ts.Normal.Length(), 1e-9)
	assert.InDelta(t, 0, ts.Tangent.Dot(ts.Bitangent), 1e-9)
	assert.InDelta(t, 0, ts.Tangent.Dot(ts.Normal), 1e-9)
	assert.InDelta(t, 0, ts.Bitangent.Dot(ts.Normal), 1e-9)
}

func TestTangentSpaceFromNormalIsOrthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(1, 1, 1).Normalize(),
		NewVec3(-0.2, 0.9, 0.4).Normalize(),
	}
	for _, n := range normals {
		ts := NewTangentSpaceFromNormal(n)
		assertOrthonormal(t, ts)
		assertVec3InDelta(t, n, ts.Normal, 1e-9)
	}
}

func TestTangentSpaceFromHintKeepsTangentDirection(t *testing.T) {
	n := NewVec3(0, 0, 1)
	hint := NewVec3(1, 0, 0.5) // not orthogonal to n
	ts := NewTangentSpaceFromNormalAndTangent(n, hint)
	assertOrthonormal(t, ts)
	assertVec3InDelta(t, NewVec3(1, 0, 0), ts.Tangent, 1e-9)
}

func TestTangentSpaceDegenerateHintFallsBack(t *testing.T) {
	n := NewVec3(0, 0, 1)
	ts := NewTangentSpaceFromNormalAndTangent(n, n.Multiply(3))
	assertOrthonormal(t, ts)
}

func TestToWorldToLocalRoundTrip(t *testing.T) {
	ts := NewTangentSpaceFromNormal(NewVec3(0.3, -0.7, 0.6).Normalize())
	v := NewVec3(0.2, 0.5, 0.8)
	assertVec3InDelta(t, v, ts.ToLocal(ts.ToWorld(v)), 1e-9)
}

func TestToWorldMapsZToNormal(t *testing.T) {
	n := NewVec3(1, 2, -1).Normalize()
	ts := NewTangentSpaceFromNormal(n)
	assertVec3InDelta(t, n, ts.ToWorld(NewVec3(0, 0, 1)), 1e-9)
}

func TestComputeMeshTangentDegenerateUVsReturnsZero(t *testing.T) {
	tangent := ComputeMeshTangent(
		NewVec3(1, 0, 0), NewVec3(0, 1, 0),
		NewVec2(0, 0), NewVec2(0, 0),
	)
	assert.True(t, tangent.IsZero())
}

func TestComputeMeshTangentFollowsUGradient(t *testing.T) {
	// UVs increase with +X along edge1, so the tangent must point along +X.
	tangent := ComputeMeshTangent(
		NewVec3(1, 0, 0), NewVec3(0, 1, 0),
		NewVec2(1, 0), NewVec2(0, 1),
	)
	assertVec3InDelta(t, NewVec3(1, 0, 0), tangent.Normalize(), 1e-9)
}

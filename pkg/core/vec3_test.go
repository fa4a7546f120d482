package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, expected, actual Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta)
	assert.InDelta(t, expected.Y, actual.Y, delta)
	assert.InDelta(t, expected.Z, actual.Z, delta)
}

func TestNormalizeZeroVectorStaysZero(t *testing.T) {
	assert.True(t, Vec3{}.Normalize().IsZero())
}

func TestReflectIsInvolutive(t *testing.T) {
	n := NewVec3(0, 1, 0)
	d := NewVec3(0.3, -0.8, 0.2).Normalize()
	assertVec3InDelta(t, d, Reflect(Reflect(d, n), n), 1e-12)
}

func TestReflectGrazingStaysInPlane(t *testing.T) {
	n := NewVec3(0, 1, 0)
	d := NewVec3(1, 0, 0)
	assertVec3InDelta(t, d, Reflect(d, n), 1e-12)
}

func TestRefractRoundTripRecoversDirection(t *testing.T) {
	n := NewVec3(0, 1, 0)
	eta := 1.0 / 1.5
	d := NewVec3(0.4, -0.7, 0.1).Normalize()

	refracted := Refract(d, n, eta)
	assert.False(t, refracted.IsZero())

	// The refracted direction still travels against n, so re-refracting
	// with the reciprocal index ratio recovers the incident direction.
	back := Refract(refracted, n, 1/eta)
	assertVec3InDelta(t, d, back, 1e-4)
}

func TestRefractTotalInternalReflectionReturnsZero(t *testing.T) {
	n := NewVec3(0, 1, 0)
	// Grazing incidence from the dense side is past the critical angle.
	d := NewVec3(0.99, -math.Sqrt(1-0.99*0.99), 0)
	assert.True(t, Refract(d, n, 1.5).IsZero())
}

func TestMixEndpoints(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(-4, 0, 9)
	assertVec3InDelta(t, a, Mix(a, b, 0), 1e-12)
	assertVec3InDelta(t, b, Mix(a, b, 1), 1e-12)
	assertVec3InDelta(t, NewVec3(-1.5, 1, 6), Mix(a, b, 0.5), 1e-12)
}

func TestCrossIsOrthogonal(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(-2, 1, 0.5)
	c := a.Cross(b)
	assert.InDelta(t, 0, c.Dot(a), 1e-12)
	assert.InDelta(t, 0, c.Dot(b), 1e-12)
}

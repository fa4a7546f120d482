package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertQuatEqualUpToSign(t *testing.T, expected, actual Quat, delta float64) {
	t.Helper()
	dot := expected.X()*actual.X() + expected.Y()*actual.Y() + expected.Z()*actual.Z() + expected.W()*actual.W()
	assert.InDelta(t, 1, math.Abs(dot), delta)
}

func TestQuatTimesConjugateIsIdentity(t *testing.T) {
	q := QuatFromAngleAxis(1.1, NewVec3(1, 2, -0.5))
	id := q.Mul(q.Conjugate())
	assert.InDelta(t, 0, id.X(), 1e-12)
	assert.InDelta(t, 0, id.Y(), 1e-12)
	assert.InDelta(t, 0, id.Z(), 1e-12)
	assert.InDelta(t, 1, id.W(), 1e-12)
}

func TestQuatRotatePreservesLength(t *testing.T) {
	q := QuatFromAngleAxis(2.4, NewVec3(0.2, -1, 0.7))
	v := NewVec3(3, -1, 2)
	assert.InDelta(t, v.Length(), q.Rotate(v).Length(), 1e-12)
}

func TestQuatFromTwoVectorsRotatesFirstOntoSecond(t *testing.T) {
	d1 := NewVec3(1, 0, 0)
	d2 := NewVec3(0, 1, 1).Normalize()
	q := QuatFromTwoVectors(d1, d2)
	assertVec3InDelta(t, d2, q.Rotate(d1), 1e-9)
}

func TestQuatFromTwoVectorsIdenticalIsIdentity(t *testing.T) {
	d := NewVec3(0.3, 0.5, -0.2).Normalize()
	q := QuatFromTwoVectors(d, d)
	assertVec3InDelta(t, d, q.Rotate(d), 1e-12)
	assert.InDelta(t, 1, q.W(), 1e-9)
}

func TestQuatFromTwoVectorsOppositeIsHalfTurn(t *testing.T) {
	d := NewVec3(0, 1, 0)
	q := QuatFromTwoVectors(d, d.Negate())
	assertVec3InDelta(t, d.Negate(), q.Rotate(d), 1e-9)
}

func TestSlerpEndpoints(t *testing.T) {
	q := QuatFromAngleAxis(0.4, NewVec3(1, 0, 0))
	r := QuatFromAngleAxis(1.9, NewVec3(0, 1, 0))
	assertQuatEqualUpToSign(t, q, Slerp(q, r, 0), 1e-9)
	assertQuatEqualUpToSign(t, r, Slerp(q, r, 1), 1e-9)
}

func TestSlerpOfEqualQuaternionsIsConstant(t *testing.T) {
	q := QuatFromAngleAxis(0.7, NewVec3(0.1, 0.9, -0.3))
	for _, alpha := range []float64{0, 0.25, 0.5, 0.99} {
		assertQuatEqualUpToSign(t, q, Slerp(q, q, alpha), 1e-9)
	}
}

func TestSlerpTakesShortestArc(t *testing.T) {
	q := QuatFromAngleAxis(0.2, NewVec3(0, 0, 1))
	// Same rotation, negated representation: slerp must not swing the
	// long way around.
	r := NewQuat(-q.X(), -q.Y(), -q.Z(), -q.W())
	mid := Slerp(q, r, 0.5)
	assertQuatEqualUpToSign(t, q, mid, 1e-9)
}

func TestSlerpHalfwayBetweenAxisRotations(t *testing.T) {
	q := QuatFromAngleAxis(0, NewVec3(0, 0, 1))
	r := QuatFromAngleAxis(math.Pi/2, NewVec3(0, 0, 1))
	mid := Slerp(q, r, 0.5)
	rotated := mid.Rotate(NewVec3(1, 0, 0))
	expected := NewVec3(math.Cos(math.Pi/4), math.Sin(math.Pi/4), 0)
	assertVec3InDelta(t, expected, rotated, 1e-9)
}

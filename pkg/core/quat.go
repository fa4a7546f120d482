package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quat is a rotation quaternion. It is stored as an mgl64.Quat so that
// representation-only algebra (raw multiplication, conjugation, vector
// rotation) can defer to mathgl; the construction and interpolation
// policies below it (shortest-arc slerp, the two degenerate
// from-two-vectors cases, near-0/near-pi slerp fallback) are not part of
// mathgl's API and are implemented here explicitly.
type Quat struct {
	mgl64.Quat
}

// NewQuat creates a quaternion from raw (x,y,z,w) components.
func NewQuat(x, y, z, w float64) Quat {
	return Quat{mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}}
}

// QuatIdentity returns the identity rotation (the "null" quaternion).
func QuatIdentity() Quat {
	return NewQuat(0, 0, 0, 1)
}

// QuatFromAngleAxis builds a rotation of angle radians around axis.
func QuatFromAngleAxis(angle float64, axis Vec3) Quat {
	a := axis.Normalize()
	s, c := math.Sincos(0.5 * angle)
	return NewQuat(a.X*s, a.Y*s, a.Z*s, c)
}

// QuatFromTwoVectors builds the rotation that rotates dir1 onto dir2,
// handling the 0 degree (identity) and 180 degree (no unique axis) cases.
func QuatFromTwoVectors(dir1, dir2 Vec3) Quat {
	const eps = 1e-12
	d1 := dir1.Normalize()
	d2 := dir2.Normalize()
	cosAngle := d1.Dot(d2)
	switch {
	case cosAngle >= 1-eps:
		return QuatIdentity()
	case cosAngle <= -1+eps:
		t := NewVec3(0, 1, 0)
		if math.Abs(t.Dot(d1)) >= 1-eps {
			t = NewVec3(1, 0, 0)
		}
		return QuatFromAngleAxis(math.Pi, t.Cross(d1))
	default:
		return QuatFromAngleAxis(math.Acos(cosAngle), d1.Cross(d2))
	}
}

// X, Y, Z, W expose the raw quaternion components.
func (q Quat) X() float64 { return q.V[0] }
func (q Quat) Y() float64 { return q.V[1] }
func (q Quat) Z() float64 { return q.V[2] }
func (q Quat) W() float64 { return q.Quat.W }

// Conjugate returns the conjugate (and, for unit quaternions, the inverse) of q.
func (q Quat) Conjugate() Quat {
	return Quat{q.Quat.Conjugate()}
}

// Mul composes two rotations: the result applies r first, then q — i.e.
// (q.Mul(r)) * v == q * (r * v).
func (q Quat) Mul(r Quat) Quat {
	return Quat{q.Quat.Mul(r.Quat)}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	rotated := q.Quat.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return NewVec3(rotated[0], rotated[1], rotated[2])
}

// Slerp performs spherical linear interpolation from q to r, alpha in [0,1],
// with shortest-arc correction and a fallback to linear interpolation near
// the degenerate 0-angle and pi-angle cases.
func Slerp(q, r Quat, alpha float64) Quat {
	w := r
	cosHalfAngle := q.X()*r.X() + q.Y()*r.Y() + q.Z()*r.Z() + q.W()*r.W()
	if cosHalfAngle < 0 {
		w = NewQuat(-w.X(), -w.Y(), -w.Z(), -w.W())
		cosHalfAngle = -cosHalfAngle
	}

	var coeffQ, coeffW float64
	if cosHalfAngle >= 1 {
		coeffQ, coeffW = 1, 0
	} else {
		halfAngle := math.Acos(cosHalfAngle)
		sinHalfAngle := math.Sqrt(1 - cosHalfAngle*cosHalfAngle)
		if math.Abs(sinHalfAngle) < 1e-9 {
			coeffQ, coeffW = 1-alpha, alpha
		} else {
			coeffQ = math.Sin((1-alpha)*halfAngle) / sinHalfAngle
			coeffW = math.Sin(alpha*halfAngle) / sinHalfAngle
		}
	}

	return NewQuat(
		q.X()*coeffQ+w.X()*coeffW,
		q.Y()*coeffQ+w.Y()*coeffW,
		q.Z()*coeffQ+w.Z()*coeffW,
		q.W()*coeffQ+w.W()*coeffW,
	)
}

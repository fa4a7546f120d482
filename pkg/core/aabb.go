package core

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from its min and max corners.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds every given point.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = Vec3{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
		hi = Vec3{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
	}
	return AABB{Min: lo, Max: hi}
}

// Hit tests a ray against the box using the slab method, using the ray's
// precomputed inverse direction so no division happens per axis per node.
func (b AABB) Hit(ray Ray, amin, amax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var lo, hi, origin, invDir float64
		switch axis {
		case 0:
			lo, hi, origin, invDir = b.Min.X, b.Max.X, ray.Origin.X, ray.InvDirection.X
		case 1:
			lo, hi, origin, invDir = b.Min.Y, b.Max.Y, ray.Origin.Y, ray.InvDirection.Y
		default:
			lo, hi, origin, invDir = b.Min.Z, b.Max.Z, ray.Origin.Z, ray.InvDirection.Z
		}

		var adimmin, adimmax float64
		if invDir < 0 {
			adimmin = (hi - origin) * invDir
			adimmax = (lo - origin) * invDir
		} else {
			adimmin = (lo - origin) * invDir
			adimmax = (hi - origin) * invDir
		}
		if adimmin > amax || amin > adimmax {
			return false
		}
		if adimmin > amin {
			amin = adimmin
		}
		if adimmax < amax {
			amax = adimmax
		}
	}
	return true
}

// Union returns an AABB that bounds both this AABB and another.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y), math.Min(b.Min.Z, other.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y), math.Max(b.Max.Z, other.Max.Z)},
	}
}

// Center returns the center point of the AABB.
func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }

// Size returns the extent of the AABB along each axis.
func (b AABB) Size() Vec3 { return b.Max.Subtract(b.Min) }

// SurfaceArea returns the surface area of the box, used by the BVH's SAH cost function.
func (b AABB) SurfaceArea() float64 {
	s := b.Size()
	return 2.0 * (s.X*s.Y + s.Y*s.Z + s.X*s.Z)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

// Expand returns an AABB grown by amount in every direction.
func (b AABB) Expand(amount float64) AABB {
	e := NewVec3(amount, amount, amount)
	return AABB{Min: b.Min.Subtract(e), Max: b.Max.Add(e)}
}

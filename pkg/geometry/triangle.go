package geometry

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/material"
)

// Triangle is a single stand-alone triangle (not part of a Mesh), optionally
// carried through an Animation for motion blur. For mesh triangles see
// MeshTriangle, which shares vertex storage instead of holding its own.
type Triangle struct {
	V0, V1, V2    core.Vec3
	UV0, UV1, UV2 core.Vec2
	HasUVs        bool
	Material      material.Material
	Animation     core.Animation
	normal        core.Vec3
}

// NewTriangle creates a static triangle from three vertices, deriving its
// face normal from the winding order.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{
		V0: v0, V1: v1, V2: v2,
		Material:  mat,
		Animation: core.NewAnimationConstant(core.Identity()),
	}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return t
}

// NewTriangleWithUVs creates a static triangle with per-vertex UVs.
func NewTriangleWithUVs(v0, v1, v2 core.Vec3, uv0, uv1, uv2 core.Vec2, mat material.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, mat)
	t.UV0, t.UV1, t.UV2 = uv0, uv1, uv2
	t.HasUVs = true
	return t
}

func (t *Triangle) worldVerts(time float64) (core.Vec3, core.Vec3, core.Vec3, core.Transformation) {
	T := t.Animation.At(time)
	return T.Apply(t.V0), T.Apply(t.V1), T.Apply(t.V2), T
}

// Hit implements Surface via Moeller-Trumbore intersection.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool) {
	v0, v1, v2, T := t.worldVerts(ray.Time)
	return hitTriangle(ray, tMin, tMax, v0, v1, v2, t.normal, T, t.HasUVs, t.UV0, t.UV1, t.UV2, nil, nil, t.Material, t)
}

// BoundingBox implements Surface, unioning 16 snapshots across the shutter
// window for an animated triangle (identical strategy to the moving sphere).
func (t *Triangle) BoundingBox(t0, t1 float64) core.AABB {
	v0, v1, v2, _ := t.worldVerts(t0)
	box := core.NewAABBFromPoints(v0, v1, v2)
	const steps = 16
	for i := 1; i < steps; i++ {
		time := core.MixF(t0, t1, float64(i)/float64(steps-1))
		a, b, c, _ := t.worldVerts(time)
		box = box.Union(core.NewAABBFromPoints(a, b, c))
	}
	return box
}

// hitTriangle is the shared Moeller-Trumbore core used by both Triangle and
// MeshTriangle: backside = negative determinant, barycentric clamping,
// attribute interpolation by (w, u, v), mesh normals and tangents rotated
// by T.rotation (scale doesn't affect a renormalized direction), face
// normal used when a mesh has none.
func hitTriangle(
	ray core.Ray, tMin, tMax float64,
	v0, v1, v2, faceNormal core.Vec3,
	T core.Transformation,
	hasUVs bool, uv0, uv1, uv2 core.Vec2,
	vertexNormals []core.Vec3,
	vertexTangents []core.Vec3,
	mat material.Material,
	surface interface{},
) (material.SurfaceInteraction, bool) {
	const epsilon = 1e-8

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if math.Abs(det) < epsilon {
		return material.Miss, false
	}
	backside := det < 0

	invDet := 1.0 / det
	s := ray.Origin.Subtract(v0)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return material.Miss, false
	}

	q := s.Cross(edge1)
	v := invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return material.Miss, false
	}

	tParam := invDet * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return material.Miss, false
	}
	w := 1 - u - v

	var uv core.Vec2
	if hasUVs {
		uv = uv0.Multiply(w).Add(uv1.Multiply(u)).Add(uv2.Multiply(v))
	}

	var normal core.Vec3
	if vertexNormals != nil {
		interp := vertexNormals[0].Multiply(w).Add(vertexNormals[1].Multiply(u)).Add(vertexNormals[2].Multiply(v))
		normal = T.Rotation.Rotate(interp).Normalize()
	} else {
		normal = faceNormal
	}
	if backside {
		normal = normal.Negate()
	}

	si := material.SurfaceInteraction{
		Hit:      true,
		T:        tParam,
		Point:    ray.At(tParam),
		Normal:   normal,
		UV:       uv,
		Backside: backside,
		Surface:  surface,
		Material: mat,
	}
	if vertexTangents != nil {
		interp := vertexTangents[0].Multiply(w).Add(vertexTangents[1].Multiply(u)).Add(vertexTangents[2].Multiply(v))
		tangent := T.Rotation.Rotate(interp)
		si.Tangent = core.NewTangentSpaceFromNormalAndTangent(si.Normal, tangent)
	} else {
		si.Tangent = core.NewTangentSpaceFromNormal(si.Normal)
	}
	return si, true
}

package geometry

import (
	"fmt"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/material"
)

// Mesh is shared storage for a triangulated surface: positions, optional
// per-vertex normals/UVs/tangents, and a flat index list (3 indices per
// triangle). It owns no geometry of its own; it fans out into
// indices.len()/3 MeshTriangle Surfaces that reference it by index.
type Mesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3 // nil if the mesh has no shading normals
	UVs       []core.Vec2 // nil if the mesh has no texture coordinates
	Tangents  []core.Vec3 // derived; nil until ComputeTangents is called
	Indices   []int
	Material  material.Material
	Animation core.Animation
}

// NewMesh creates a Mesh from shared vertex storage and a triangle index
// list. Normals and UVs may be nil.
func NewMesh(positions []core.Vec3, normals []core.Vec3, uvs []core.Vec2, indices []int, mat material.Material) *Mesh {
	return &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
		Material:  mat,
		Animation: core.NewAnimationConstant(core.Identity()),
	}
}

// TriangleCount returns the number of triangles the mesh fans out into.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangles returns one MeshTriangle Surface per triangle in the mesh,
// suitable for inserting directly into a BVH.
func (m *Mesh) Triangles() []Surface {
	surfaces := make([]Surface, m.TriangleCount())
	for i := range surfaces {
		surfaces[i] = &MeshTriangle{Mesh: m, Index: i}
	}
	return surfaces
}

// ComputeTangents derives a per-vertex tangent for every vertex referenced
// by a UV'd mesh, using Lengyel's method (gradient of position with respect
// to UV, accumulated per face and then Gram-Schmidt orthonormalized against
// the vertex normal). A no-op if the mesh lacks UVs or normals.
func (m *Mesh) ComputeTangents() {
	if m.UVs == nil || m.Normals == nil {
		return
	}
	accum := make([]core.Vec3, len(m.Positions))
	for f := 0; f < m.TriangleCount(); f++ {
		i0, i1, i2 := m.Indices[3*f], m.Indices[3*f+1], m.Indices[3*f+2]
		edge1 := m.Positions[i1].Subtract(m.Positions[i0])
		edge2 := m.Positions[i2].Subtract(m.Positions[i0])
		deltaUV1 := core.NewVec2(m.UVs[i1].X-m.UVs[i0].X, m.UVs[i1].Y-m.UVs[i0].Y)
		deltaUV2 := core.NewVec2(m.UVs[i2].X-m.UVs[i0].X, m.UVs[i2].Y-m.UVs[i0].Y)
		tangent := core.ComputeMeshTangent(edge1, edge2, deltaUV1, deltaUV2)
		accum[i0] = accum[i0].Add(tangent)
		accum[i1] = accum[i1].Add(tangent)
		accum[i2] = accum[i2].Add(tangent)
	}

	tangents := make([]core.Vec3, len(m.Positions))
	for i, t := range accum {
		n := m.Normals[i]
		tangents[i] = t.Subtract(n.Multiply(n.Dot(t))).Normalize()
	}
	m.Tangents = tangents
}

// MeshTriangle is one triangle of a Mesh, referencing shared vertex storage
// by index rather than holding its own copy.
type MeshTriangle struct {
	Mesh  *Mesh
	Index int
}

func (t *MeshTriangle) indices() (int, int, int) {
	i := t.Index * 3
	return t.Mesh.Indices[i], t.Mesh.Indices[i+1], t.Mesh.Indices[i+2]
}

func (t *MeshTriangle) worldVerts(time float64) (core.Vec3, core.Vec3, core.Vec3, core.Transformation) {
	i0, i1, i2 := t.indices()
	T := t.Mesh.Animation.At(time)
	return T.Apply(t.Mesh.Positions[i0]), T.Apply(t.Mesh.Positions[i1]), T.Apply(t.Mesh.Positions[i2]), T
}

func (t *MeshTriangle) faceNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// Hit implements Surface.
func (t *MeshTriangle) Hit(ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool) {
	i0, i1, i2 := t.indices()
	v0, v1, v2, T := t.worldVerts(ray.Time)

	var hasUVs bool
	var uv0, uv1, uv2 core.Vec2
	if t.Mesh.UVs != nil {
		hasUVs = true
		uv0, uv1, uv2 = t.Mesh.UVs[i0], t.Mesh.UVs[i1], t.Mesh.UVs[i2]
	}

	var vertexNormals []core.Vec3
	if t.Mesh.Normals != nil {
		vertexNormals = []core.Vec3{t.Mesh.Normals[i0], t.Mesh.Normals[i1], t.Mesh.Normals[i2]}
	}

	var vertexTangents []core.Vec3
	if t.Mesh.Tangents != nil {
		vertexTangents = []core.Vec3{t.Mesh.Tangents[i0], t.Mesh.Tangents[i1], t.Mesh.Tangents[i2]}
	}

	return hitTriangle(ray, tMin, tMax, v0, v1, v2, t.faceNormal(v0, v1, v2), T, hasUVs, uv0, uv1, uv2, vertexNormals, vertexTangents, t.Mesh.Material, t)
}

// BoundingBox implements Surface, unioning 16 time snapshots for animated
// meshes (identical strategy to the moving sphere and stand-alone triangle).
func (t *MeshTriangle) BoundingBox(t0, t1 float64) core.AABB {
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

// String aids debugging/log output when a mesh triangle shows up in an error.
func (t *MeshTriangle) String() string {
	return fmt.Sprintf("MeshTriangle#%d", t.Index)
}

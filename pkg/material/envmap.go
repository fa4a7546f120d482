package material

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
)

// EnvMap supplies background radiance for rays that escape the scene
// entirely (a BVH miss). It is not part of MIS: the integrator only
// consults it on a miss, never as a light candidate.
type EnvMap interface {
	Value(direction core.Vec3, time float64) core.Vec3
}

// ConstantEnvMap radiates a single uniform color from every direction.
type ConstantEnvMap struct {
	Color core.Vec3
}

// NewConstantEnvMap wraps a fixed background color as an EnvMap.
func NewConstantEnvMap(color core.Vec3) *ConstantEnvMap {
	return &ConstantEnvMap{Color: color}
}

// Value implements EnvMap.
func (c *ConstantEnvMap) Value(direction core.Vec3, time float64) core.Vec3 {
	return c.Color
}

// EquirectEnvMap adapts a Texture sampled in equirectangular (longitude x
// latitude) projection into the EnvMap(direction) contract. The wrapped
// Texture is expected to come from the out-of-scope image decoder; this
// type is the seam it plugs into.
type EquirectEnvMap struct {
	Source Texture
}

// NewEquirectEnvMap wraps a Texture sampled in equirectangular projection.
func NewEquirectEnvMap(source Texture) *EquirectEnvMap {
	return &EquirectEnvMap{Source: source}
}

// Value implements EnvMap by converting direction to (u,v) via the same
// atan2/asin mapping the Sphere surface uses for its own UVs.
func (e *EquirectEnvMap) Value(direction core.Vec3, time float64) core.Vec3 {
	d := direction.Normalize()
	u := (math.Atan2(d.X, d.Z) + math.Pi) / (2 * math.Pi)
	v := (math.Asin(clampUnit(d.Y)) + math.Pi/2) / math.Pi
	return e.Source.Value(core.NewVec2(u, v), time)
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// CubeEnvMap adapts six face Textures (in +X,-X,+Y,-Y,+Z,-Z order) sampled
// by the dominant axis of direction into the EnvMap(direction) contract.
type CubeEnvMap struct {
	Faces [6]Texture
}

// Cube face indices, matching the order CubeEnvMap.Faces expects.
const (
	CubeFacePosX = iota
	CubeFaceNegX
	CubeFacePosY
	CubeFaceNegY
	CubeFacePosZ
	CubeFaceNegZ
)

// NewCubeEnvMap wraps six per-face Textures as a cube-mapped EnvMap.
func NewCubeEnvMap(faces [6]Texture) *CubeEnvMap {
	return &CubeEnvMap{Faces: faces}
}

// Value implements EnvMap by selecting the face the direction's dominant
// axis points through and mapping the remaining two components to uv.
func (e *CubeEnvMap) Value(direction core.Vec3, time float64) core.Vec3 {
	d := direction
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var face int
	var u, v float64
	switch {
	case ax >= ay && ax >= az:
		if d.X > 0 {
			face, u, v = CubeFacePosX, -d.Z/ax, -d.Y/ax
		} else {
			face, u, v = CubeFaceNegX, d.Z/ax, -d.Y/ax
		}
	case ay >= ax && ay >= az:
		if d.Y > 0 {
			face, u, v = CubeFacePosY, d.X/ay, d.Z/ay
		} else {
			face, u, v = CubeFaceNegY, d.X/ay, -d.Z/ay
		}
	default:
		if d.Z > 0 {
			face, u, v = CubeFacePosZ, d.X/az, -d.Y/az
		} else {
			face, u, v = CubeFaceNegZ, -d.X/az, -d.Y/az
		}
	}

	texture := e.Faces[face]
	if texture == nil {
		return core.Vec3{}
	}
	return texture.Value(core.NewVec2((u+1)*0.5, (v+1)*0.5), time)
}

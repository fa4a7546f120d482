package material

import "github.com/windlorne/luxtracer/pkg/core"

// TwoSided wraps a front and back material, flipping a backside hit to
// front-facing before delegating so the underlying material never has to
// reason about which side it was struck from. Used for emitters that should
// radiate from both faces, e.g. the furnace-test enclosing sphere.
type TwoSided struct {
	Front, Back Material
}

// NewTwoSided wraps a single material so it behaves identically on both
// sides of its surface.
func NewTwoSided(m Material) *TwoSided {
	return &TwoSided{Front: m, Back: m}
}

// NewTwoSidedPair wraps two distinct materials for the front and back faces.
func NewTwoSidedPair(front, back Material) *TwoSided {
	return &TwoSided{Front: front, Back: back}
}

func flipped(si SurfaceInteraction) SurfaceInteraction {
	if !si.Backside {
		return si
	}
	// The normal already faces the incoming ray; only the flag changes.
	out := si
	out.Backside = false
	return out
}

func (t *TwoSided) materialFor(si SurfaceInteraction) Material {
	if si.Backside {
		return t.Back
	}
	return t.Front
}

// Le implements Material by delegating to whichever face was struck, after
// flipping the interaction to look front-facing to that face's material.
func (t *TwoSided) Le(si SurfaceInteraction, outgoing core.Vec3) core.Vec3 {
	return t.materialFor(si).Le(flipped(si), outgoing)
}

// Scatter implements Material by delegating to whichever face was struck.
func (t *TwoSided) Scatter(rayIn core.Ray, si SurfaceInteraction, sampler core.Sampler) ScatterRecord {
	return t.materialFor(si).Scatter(rayIn, flipped(si), sampler)
}

// ScatterToDirection implements Material by delegating to whichever face
// was struck.
func (t *TwoSided) ScatterToDirection(rayIn core.Ray, si SurfaceInteraction, direction core.Vec3) ScatterRecord {
	return t.materialFor(si).ScatterToDirection(rayIn, flipped(si), direction)
}

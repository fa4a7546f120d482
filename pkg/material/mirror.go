package material

import "github.com/windlorne/luxtracer/pkg/core"

// Mirror is a perfect specular reflector.
type Mirror struct {
	Color Texture
}

// NewMirror creates a Mirror material with a constant tint.
func NewMirror(color core.Vec3) *Mirror {
	return &Mirror{Color: NewConstantTexture(color)}
}

// Le implements Material: mirrors never emit.
func (m *Mirror) Le(si SurfaceInteraction, outgoing core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Scatter implements Material with a single delta reflection; backside hits
// terminate the path.
func (m *Mirror) Scatter(rayIn core.Ray, si SurfaceInteraction, sampler core.Sampler) ScatterRecord {
	if si.Backside {
		return ScatterRecordNone
	}
	direction := core.Reflect(rayIn.Direction.Normalize(), si.Normal)
	return ScatterRecord{
		Kind:        ScatterExplicit,
		Direction:   direction,
		Attenuation: m.Color.Value(si.UV, rayIn.Time),
		PDF:         0,
	}
}

// ScatterToDirection implements Material: a delta BSDF has zero probability
// of matching any externally-chosen direction, so MIS direct lighting never
// contributes through a mirror.
func (m *Mirror) ScatterToDirection(rayIn core.Ray, si SurfaceInteraction, direction core.Vec3) ScatterRecord {
	return ScatterRecordNone
}

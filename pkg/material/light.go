package material

import "github.com/windlorne/luxtracer/pkg/core"

// Light is an emissive material: it radiates a constant radiance from its
// front side only and never scatters, terminating any path that strikes it.
type Light struct {
	Radiance core.Vec3
}

// NewLight creates a Light material emitting a constant radiance.
func NewLight(radiance core.Vec3) *Light {
	return &Light{Radiance: radiance}
}

// Le implements Material: emits Radiance on the front side, zero on the back.
func (l *Light) Le(si SurfaceInteraction, outgoing core.Vec3) core.Vec3 {
	if si.Backside {
		return core.Vec3{}
	}
	return l.Radiance
}

// Scatter implements Material: light surfaces terminate the path.
func (l *Light) Scatter(rayIn core.Ray, si SurfaceInteraction, sampler core.Sampler) ScatterRecord {
	return ScatterRecordNone
}

// ScatterToDirection implements Material: light surfaces never scatter.
func (l *Light) ScatterToDirection(rayIn core.Ray, si SurfaceInteraction, direction core.Vec3) ScatterRecord {
	return ScatterRecordNone
}

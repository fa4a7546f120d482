// Package renderer owns the camera ray generator, the parallel per-pixel
// driver, and the progress/statistics it reports while rendering.
package renderer

import (
	"math"

	"github.com/windlorne/luxtracer/pkg/core"
)

// CameraConfig is the driver-supplied camera placement and lens geometry;
// every field is a plain tunable, no hidden global state.
type CameraConfig struct {
	Center, LookAt, Up core.Vec3
	VFov               float64 // vertical field of view, degrees
	Aspect             float64
	Aperture           float64 // lens diameter; 0 disables depth of field
	FocusDistance      float64 // 0 defaults to |LookAt - Center|
	TimeStart, TimeEnd float64
	Animation          core.Animation // optional; nil means the camera is static
}

// Camera generates primary rays for a pinhole/thin-lens frustum, optionally
// transformed by an Animation for camera motion blur.
type Camera struct {
	config CameraConfig

	origin                            core.Vec3
	horizontalAxis, vertAxis, forward core.Vec3
	halfHeight, halfWidth             float64
	lensRadius                        float64
	focusDistance                     float64
}

// NewCamera builds a Camera from config, defaulting FocusDistance to the
// distance between Center and LookAt when unset.
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := halfHeight * config.Aspect

	forward := config.LookAt.Subtract(config.Center).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward)

	return &Camera{
		config:         config,
		origin:         config.Center,
		horizontalAxis: right,
		vertAxis:       up,
		forward:        forward,
		halfHeight:     halfHeight,
		halfWidth:      halfWidth,
		lensRadius:     config.Aperture / 2,
		focusDistance:  focusDistance,
	}
}

// GetRay generates a ray through normalized image-plane coordinates
// (p, q) in [0,1]x[0,1], sampling the lens aperture and shutter time from
// sampler for depth of field and motion blur.
func (c *Camera) GetRay(p, q float64, sampler core.Sampler) core.Ray {
	l, r := -c.halfWidth, c.halfWidth
	b, t := -c.halfHeight, c.halfHeight

	px := core.MixF(l, r, p)
	py := core.MixF(b, t, q)

	point := c.forward.Add(c.horizontalAxis.Multiply(px)).Add(c.vertAxis.Multiply(py))
	point = point.Multiply(c.focusDistance)

	origin := core.Vec3{}
	if c.lensRadius > 0 {
		lens := core.UniformInDisk(sampler.Uniform01(), sampler.Uniform01())
		origin = c.horizontalAxis.Multiply(lens.X * c.lensRadius).Add(c.vertAxis.Multiply(lens.Y * c.lensRadius))
	}
	direction := point.Subtract(origin)

	tau := core.MixF(c.config.TimeStart, c.config.TimeEnd, sampler.Uniform01())

	worldOrigin := c.origin.Add(origin)
	worldDirection := direction
	if c.config.Animation != nil {
		xform := c.config.Animation.At(tau)
		worldOrigin = xform.Apply(worldOrigin)
		worldDirection = xform.Rotation.Rotate(worldDirection)
	}

	return core.NewRay(worldOrigin, worldDirection.Normalize(), tau)
}

// GetCameraForward returns the camera's world-space viewing direction.
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}

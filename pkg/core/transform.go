package core

// Transformation is a rigid-plus-uniform/non-uniform-scale transform applied
// to local-space geometry: a point v maps to Translation + Rotation.Rotate(v
// * Scaling). Animations interpolate between keyframe Transformations.
type Transformation struct {
	Translation Vec3
	Rotation    Quat
	Scaling     Vec3
}

// Identity returns the transformation that changes nothing.
func Identity() Transformation {
	return Transformation{
		Translation: Vec3{},
		Rotation:    QuatIdentity(),
		Scaling:     NewVec3(1, 1, 1),
	}
}

// NewTransformation builds a transformation from translation, rotation, and
// per-axis scaling.
func NewTransformation(translation Vec3, rotation Quat, scaling Vec3) Transformation {
	return Transformation{Translation: translation, Rotation: rotation, Scaling: scaling}
}

// NewTransformationLookAt builds the rigid transformation that places a
// camera-like frame at eye, facing center, with the given up hint; used by
// scenes/tests that find it more natural to describe a view than a
// quaternion directly. Scaling is left at 1.
func NewTransformationLookAt(eye, center, up Vec3) Transformation {
	forward := center.Subtract(eye).Normalize()
	rotation := QuatFromTwoVectors(NewVec3(0, 0, -1), forward)

	rotatedUp := rotation.Rotate(NewVec3(0, 1, 0))
	if 1-rotatedUp.Dot(up.Normalize()) > 1e-6 {
		correction := QuatFromTwoVectors(rotatedUp, up.Normalize())
		rotation = correction.Mul(rotation)
	}

	return Transformation{
		Translation: eye,
		Rotation:    rotation,
		Scaling:     NewVec3(1, 1, 1),
	}
}

// Apply maps a local-space point into the transformed space.
func (t Transformation) Apply(v Vec3) Vec3 {
	return t.Translation.Add(t.Rotation.Rotate(v.MultiplyVec(t.Scaling)))
}

// ApplyVector maps a local-space direction/normal-adjacent vector, ignoring
// translation (vectors are not points).
func (t Transformation) ApplyVector(v Vec3) Vec3 {
	return t.Rotation.Rotate(v.MultiplyVec(t.Scaling))
}

// Mul composes two transformations so that (a.Mul(b)).Apply(v) ==
// a.Apply(b.Apply(v)) when a's scaling is uniform. With non-uniform
// scaling in a and a rotation in b the product is not exactly that
// sequential application, since scales and rotations are combined
// separately.
func (t Transformation) Mul(other Transformation) Transformation {
	return Transformation{
		Translation: t.Apply(other.Translation),
		Rotation:    t.Rotation.Mul(other.Rotation),
		Scaling:     t.Scaling.MultiplyVec(other.Scaling),
	}
}

// MixTransformation linearly interpolates translation and scale and
// spherically interpolates rotation between two transformations.
func MixTransformation(t0, t1 Transformation, alpha float64) Transformation {
	return Transformation{
		Translation: Mix(t0.Translation, t1.Translation, alpha),
		Rotation:    Slerp(t0.Rotation, t1.Rotation, alpha),
		Scaling:     Mix(t0.Scaling, t1.Scaling, alpha),
	}
}

// Animation yields the transformation in effect at a given shutter time.
type Animation interface {
	At(time float64) Transformation
}

// AnimationConstant is an Animation that never changes over time.
type AnimationConstant struct {
	Transform Transformation
}

// NewAnimationConstant wraps a single transformation as a constant animation.
func NewAnimationConstant(t Transformation) AnimationConstant {
	return AnimationConstant{Transform: t}
}

// At returns the constant transformation regardless of time.
func (a AnimationConstant) At(time float64) Transformation {
	return a.Transform
}

// AnimationKeyframed interpolates between two transformations over
// [startTime, endTime] via MixTransformation, clamping outside the window.
type AnimationKeyframed struct {
	Start, End         Transformation
	StartTime, EndTime float64
}

// NewAnimationKeyframed builds a two-keyframe animation.
func NewAnimationKeyframed(start, end Transformation, startTime, endTime float64) AnimationKeyframed {
	return AnimationKeyframed{Start: start, End: end, StartTime: startTime, EndTime: endTime}
}

// At returns the interpolated transformation at time, clamped to [0,1]
// across the keyframe window.
func (a AnimationKeyframed) At(time float64) Transformation {
	span := a.EndTime - a.StartTime
	alpha := 0.0
	if span > 0 {
		alpha = (time - a.StartTime) / span
	}
	alpha = max(0, min(1, alpha))
	return MixTransformation(a.Start, a.End, alpha)
}

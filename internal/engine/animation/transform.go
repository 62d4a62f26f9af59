package animation

import (
	"github.com/Faultbox/rigeval/pkg/formats"
	"github.com/Faultbox/rigeval/pkg/math"
)

// AnimTransform is a sampled local transform that replaces a bone's rest pose.
type AnimTransform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// IdentityTransform returns a transform with no effect.
func IdentityTransform() AnimTransform {
	return AnimTransform{Rotation: math.QuatIdentity(), Scale: math.Vec3One()}
}

// NewAnimTransform converts a keyframe.
func NewAnimTransform(t formats.Transform) AnimTransform {
	return AnimTransform{
		Translation: t.Translation.Vec3(),
		Rotation:    t.Rotation.Quat(),
		Scale:       t.Scale.Vec3(),
	}
}

// RestAnimTransform decomposes a rest pose matrix.
func RestAnimTransform(m math.Mat4) AnimTransform {
	s, r, t := m.Decompose()
	return AnimTransform{Translation: t, Rotation: r, Scale: s}
}

// Lerp interpolates every component linearly.
func (a AnimTransform) Lerp(b AnimTransform, t float32) AnimTransform {
	return AnimTransform{
		Translation: a.Translation.Lerp(b.Translation, t),
		Rotation:    a.Rotation.Lerp(b.Rotation, t),
		Scale:       a.Scale.Lerp(b.Scale, t),
	}
}

// Mat4 returns T * R * S. The scale term is dropped when includeScale is false.
func (a AnimTransform) Mat4(includeScale bool) math.Mat4 {
	scale := math.Vec3One()
	if includeScale {
		scale = a.Scale
	}
	return math.FromTRS(a.Translation, a.Rotation, scale)
}

// WithOverrides replaces the components selected by flags with the
// corresponding components of the rest pose.
func (a AnimTransform) WithOverrides(flags formats.TransformFlags, rest math.Mat4) AnimTransform {
	if !flags.OverrideTranslation && !flags.OverrideRotation && !flags.OverrideScale {
		return a
	}
	r := RestAnimTransform(rest)
	if flags.OverrideTranslation {
		a.Translation = r.Translation
	}
	if flags.OverrideRotation {
		a.Rotation = r.Rotation
	}
	if flags.OverrideScale {
		a.Scale = r.Scale
	}
	return a
}

package animation

import (
	gomath "math"

	"github.com/Faultbox/rigeval/pkg/formats"
	"github.com/Faultbox/rigeval/pkg/math"
)

// FrameValues returns the keyframe indices surrounding frame and the blend
// factor between them. Indices are clamped to [0, n-1]; n must be positive.
func FrameValues(frame float64, n int) (current, next int, factor float32) {
	floor := gomath.Floor(frame)
	current = clampIndex(floor, n)
	next = clampIndex(gomath.Ceil(frame), n)
	factor = float32(frame - floor)
	return current, next, factor
}

func clampIndex(f float64, n int) int {
	if f <= 0 || gomath.IsNaN(f) {
		return 0
	}
	if f >= float64(n-1) {
		return n - 1
	}
	return int(f)
}

func lerp(a, b, t float32) float32 {
	return (1-t)*a + t*b
}

// SampleTransform interpolates a transform track. Rotation is a component
// lerp of the quaternions and is not renormalized.
func SampleTransform(values formats.TransformValues, frame float64) (AnimTransform, bool) {
	if len(values) == 0 {
		return AnimTransform{}, false
	}
	current, next, factor := FrameValues(frame, len(values))
	a := NewAnimTransform(values[current])
	b := NewAnimTransform(values[next])
	return a.Lerp(b, factor), true
}

// SampleFloat interpolates a float track.
func SampleFloat(values formats.FloatValues, frame float64) (float32, bool) {
	if len(values) == 0 {
		return 0, false
	}
	current, next, factor := FrameValues(frame, len(values))
	return lerp(values[current], values[next], factor), true
}

// SampleVector4 interpolates a vector track.
func SampleVector4(values formats.Vector4Values, frame float64) (math.Vec4, bool) {
	if len(values) == 0 {
		return math.Vec4{}, false
	}
	current, next, factor := FrameValues(frame, len(values))
	return values[current].Vec4().Lerp(values[next].Vec4(), factor), true
}

// SampleUvTransform interpolates a texture coordinate transform track.
func SampleUvTransform(values formats.UvTransformValues, frame float64) (formats.UvTransform, bool) {
	if len(values) == 0 {
		return formats.UvTransform{}, false
	}
	current, next, factor := FrameValues(frame, len(values))
	a, b := values[current], values[next]
	return formats.UvTransform{
		ScaleU:     lerp(a.ScaleU, b.ScaleU, factor),
		ScaleV:     lerp(a.ScaleV, b.ScaleV, factor),
		Rotation:   lerp(a.Rotation, b.Rotation, factor),
		TranslateU: lerp(a.TranslateU, b.TranslateU, factor),
		TranslateV: lerp(a.TranslateV, b.TranslateV, factor),
	}, true
}

// SampleBoolean returns the value at the current keyframe.
func SampleBoolean(values formats.BooleanValues, frame float64) (bool, bool) {
	if len(values) == 0 {
		return false, false
	}
	current, _, _ := FrameValues(frame, len(values))
	return values[current], true
}

// SamplePatternIndex returns the value at the current keyframe.
func SamplePatternIndex(values formats.PatternIndexValues, frame float64) (uint32, bool) {
	if len(values) == 0 {
		return 0, false
	}
	current, _, _ := FrameValues(frame, len(values))
	return values[current], true
}

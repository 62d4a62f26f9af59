package animation

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/rigeval/internal/logger"
	"github.com/Faultbox/rigeval/pkg/formats"
	"github.com/Faultbox/rigeval/pkg/math"
)

// Stage lighting node names.
const (
	lightChrNode        = "LightChr"
	sceneAttributesNode = "sceneAttributesForShaderFX"
)

// Custom parameter slots available to stage clips.
const (
	CustomFloatCount   = 20
	CustomBooleanCount = 20
	CustomVectorCount  = 64
)

// lightRegionScale is the half extent of the shadow projection.
const lightRegionScale = 25

// Light is a directional light. The zero value is an unlit light.
type Light struct {
	Color     math.Vec4
	Direction math.Vec4
}

// SceneAttributes are the custom parameters a stage exposes to shaders.
type SceneAttributes struct {
	CustomFloat   [CustomFloatCount]float32
	CustomBoolean [CustomBooleanCount]bool
	CustomVector  [CustomVectorCount]math.Vec4
}

// StageLighting is the sampled lighting state of a stage clip.
type StageLighting struct {
	LightChr        Light
	SceneAttributes SceneAttributes
	// LightTransform projects world space into the character shadow map.
	LightTransform math.Mat4
}

// LightDirection returns rotation applied to +Z as a direction (w = 0).
func LightDirection(rotation math.Quat) math.Vec4 {
	return rotation.ToMat4().MulVec4(math.Vec4{0, 0, 1, 0})
}

// LightTransform returns an orthographic projection of half extents scale
// looking along the inverse of rotation.
func LightTransform(rotation math.Quat, scale math.Vec3) math.Mat4 {
	projection := math.Orthographic(-scale.X, scale.X, -scale.Y, scale.Y, -scale.Z, scale.Z)
	return projection.Mul(rotation.Conjugate().ToMat4())
}

// TrainingLighting is the lighting used when no stage clip is loaded.
func TrainingLighting() StageLighting {
	rotation := math.Quat{X: -0.453154, Y: -0.365998, Z: -0.211309, W: 0.784886}
	var attributes SceneAttributes
	attributes.CustomVector[8] = math.Vec4{1, 1, 1, 1}
	return StageLighting{
		LightChr: Light{
			Color:     math.Vec4{4, 4, 4, 4},
			Direction: LightDirection(rotation),
		},
		SceneAttributes: attributes,
		LightTransform:  LightTransform(rotation, math.Vec3{X: lightRegionScale, Y: lightRegionScale, Z: lightRegionScale}),
	}
}

// AnimateLighting samples the character light and scene attributes of a
// stage clip. Missing nodes leave their values zeroed and the light
// transform unrotated.
func AnimateLighting(anim *formats.Anim, frame float64) StageLighting {
	var (
		light    Light
		rotation = math.QuatIdentity()
		scene    SceneAttributes
	)

	if anim != nil {
		if node := anim.GetNode(formats.GroupTransform, lightChrNode); node != nil {
			light, rotation = sampleLight(node, frame)
		}
		if node := anim.GetNode(formats.GroupTransform, sceneAttributesNode); node != nil {
			scene = sampleSceneAttributes(node, frame)
		}
	}

	return StageLighting{
		LightChr:        light,
		SceneAttributes: scene,
		LightTransform:  LightTransform(rotation, math.Vec3{X: lightRegionScale, Y: lightRegionScale, Z: lightRegionScale}),
	}
}

func sampleLight(node *formats.NodeData, frame float64) (Light, math.Quat) {
	var intensity float32
	if track := node.Track("CustomFloat0"); track != nil {
		if values, ok := track.Values.(formats.FloatValues); ok {
			intensity, _ = SampleFloat(values, frame)
		}
	}

	var color math.Vec4
	if track := node.Track("CustomVector0"); track != nil {
		if values, ok := track.Values.(formats.Vector4Values); ok {
			color, _ = SampleVector4(values, frame)
		}
	}

	rotation := math.QuatIdentity()
	if track := node.Track("Transform"); track != nil {
		if values, ok := track.Values.(formats.TransformValues); ok {
			if t, ok := SampleTransform(values, frame); ok {
				rotation = t.Rotation
			}
		}
	}

	return Light{
		Color:     math.Vec4{color[0] * intensity, color[1] * intensity, color[2] * intensity, color[3] * intensity},
		Direction: LightDirection(rotation),
	}, rotation
}

func sampleSceneAttributes(node *formats.NodeData, frame float64) SceneAttributes {
	var attributes SceneAttributes
	for i := range node.Tracks {
		track := &node.Tracks[i]
		switch values := track.Values.(type) {
		case formats.FloatValues:
			if slot, ok := customSlot(track.Name, "CustomFloat", CustomFloatCount); ok {
				attributes.CustomFloat[slot], _ = SampleFloat(values, frame)
				continue
			}
		case formats.BooleanValues:
			if slot, ok := customSlot(track.Name, "CustomBoolean", CustomBooleanCount); ok {
				attributes.CustomBoolean[slot], _ = SampleBoolean(values, frame)
				continue
			}
		case formats.Vector4Values:
			if slot, ok := customSlot(track.Name, "CustomVector", CustomVectorCount); ok {
				attributes.CustomVector[slot], _ = SampleVector4(values, frame)
				continue
			}
		}
		logger.Debug("scene attribute track ignored", zap.String("track", track.Name))
	}
	return attributes
}

// customSlot parses names such as CustomVector8 into a slot index.
func customSlot(name, prefix string, count int) (int, bool) {
	digits, ok := strings.CutPrefix(name, prefix)
	if !ok || digits == "" || digits[0] < '0' || digits[0] > '9' {
		return 0, false
	}
	slot, err := strconv.Atoi(digits)
	if err != nil || slot < 0 || slot >= count {
		return 0, false
	}
	return slot, true
}

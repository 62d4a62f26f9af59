package animation

import (
	"go.uber.org/zap"

	"github.com/Faultbox/rigeval/internal/logger"
	"github.com/Faultbox/rigeval/pkg/formats"
	"github.com/Faultbox/rigeval/pkg/math"
)

// Bone display colors.
var (
	DefaultBoneColor = math.Vec4{0.65, 0.65, 0.65, 1}
	HelperBoneColor  = math.Vec4{0.3, 0, 0.6, 1}
)

// JointTransforms returns a matrix per slot that stretches a unit +Y joint
// model from each bone to its parent. Root bones collapse to a point.
func JointTransforms(skel *formats.Skel, set *TransformSet) []math.Mat4 {
	joints := make([]math.Mat4, set.Capacity())
	for i := range joints {
		joints[i] = math.Identity()
	}
	if skel == nil {
		return joints
	}

	up := math.Vec3{X: 0, Y: 1, Z: 0}
	for i := 0; i < len(skel.Bones) && i < len(joints); i++ {
		pos := set.WorldTransforms[i].Translation()
		parentPos := pos
		if p, ok := skel.Bones[i].Parent(); ok && p < len(set.WorldTransforms) {
			parentPos = set.WorldTransforms[p].Translation()
		}

		dir := parentPos.Sub(pos)
		length := dir.Length()
		rotation := math.QuatIdentity()
		if length > 0 {
			rotation = math.QuatBetween(up, dir.Scale(1/length))
		}
		joints[i] = math.TranslateVec3(pos).Mul(rotation.ToMat4()).Mul(math.Scale(1, length, 1))
	}
	return joints
}

// BoneColors returns a display color per bone. Bones driven by constraints
// use HelperBoneColor.
func BoneColors(skel *formats.Skel, hlpb *formats.Hlpb) []math.Vec4 {
	if skel == nil {
		return nil
	}
	helpers := hlpb.HelperBones()
	colors := make([]math.Vec4, len(skel.Bones))
	for i := range skel.Bones {
		colors[i] = DefaultBoneColor
		if helpers[skel.Bones[i].Name] {
			colors[i] = HelperBoneColor
		}
	}
	return colors
}

// BoneLabel places a bone name at its animated position.
type BoneLabel struct {
	Name     string
	Position math.Vec3
}

// BoneNamePositions returns a label for every emitted bone.
func BoneNamePositions(skel *formats.Skel, set *TransformSet) []BoneLabel {
	if skel == nil {
		return nil
	}
	n := len(skel.Bones)
	if n > set.BoneCount() {
		n = set.BoneCount()
	}
	labels := make([]BoneLabel, 0, n)
	for i := 0; i < n; i++ {
		labels = append(labels, BoneLabel{
			Name:     skel.Bones[i].Name,
			Position: set.WorldTransforms[i].Translation(),
		})
	}
	return labels
}

// Swing shape display colors.
var (
	SwingSphereColor  = math.Vec4{0, 0, 1, 1}
	SwingCapsuleColor = math.Vec4{1, 0, 0, 1}
)

// SwingShape places a unit collision shape in world space.
type SwingShape struct {
	Name      string
	Transform math.Mat4
	// Height is the distance between the capsule end bones. Spheres use 1.
	Height float32
}

// SphereTransform places a unit sphere at the sphere center relative to its
// bone. It returns false if the bone is not emitted by set.
func SphereTransform(set *TransformSet, s formats.SwingSphere) (SwingShape, bool) {
	world, ok := set.WorldTransform(s.BoneName)
	if !ok {
		logger.Debug("swing sphere bone not found",
			zap.String("sphere", s.Name), zap.String("bone", s.BoneName))
		return SwingShape{Name: s.Name, Transform: math.Identity(), Height: 1}, false
	}
	local := math.TranslateVec3(s.Center.Vec3()).Mul(math.Scale(s.Radius, s.Radius, s.Radius))
	return SwingShape{Name: s.Name, Transform: world.Mul(local), Height: 1}, true
}

// CapsuleTransform orients a unit +Z capsule from its start bone to its end
// bone and centers it between them. It returns false if either bone is not
// emitted by set.
func CapsuleTransform(set *TransformSet, c formats.SwingCapsule) (SwingShape, bool) {
	start, okStart := set.WorldTransform(c.StartBoneName)
	end, okEnd := set.WorldTransform(c.EndBoneName)
	if !okStart || !okEnd {
		logger.Debug("swing capsule bone not found",
			zap.String("capsule", c.Name),
			zap.String("start", c.StartBoneName),
			zap.String("end", c.EndBoneName))
		return SwingShape{Name: c.Name, Transform: math.Identity(), Height: 1}, false
	}

	startPos := start.Translation()
	endPos := end.Translation()
	dir := endPos.Sub(startPos)
	height := dir.Length()

	rotation := math.QuatIdentity()
	if height > 0 {
		rotation = math.QuatBetween(math.Vec3{X: 0, Y: 0, Z: 1}, dir.Scale(1/height))
	}
	center := startPos.Add(endPos).Scale(0.5)
	return SwingShape{
		Name:      c.Name,
		Transform: math.TranslateVec3(center).Mul(rotation.ToMat4()),
		Height:    height,
	}, true
}

// SwingShapes places every sphere and capsule of swing. Shapes whose bones
// are missing are skipped.
func SwingShapes(swing *formats.Swing, set *TransformSet) []SwingShape {
	if swing == nil {
		return nil
	}
	shapes := make([]SwingShape, 0, len(swing.Spheres)+len(swing.Capsules))
	for _, s := range swing.Spheres {
		if shape, ok := SphereTransform(set, s); ok {
			shapes = append(shapes, shape)
		}
	}
	for _, c := range swing.Capsules {
		if shape, ok := CapsuleTransform(set, c); ok {
			shapes = append(shapes, shape)
		}
	}
	return shapes
}

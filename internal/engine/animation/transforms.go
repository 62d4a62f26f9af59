package animation

import (
	"github.com/Faultbox/rigeval/pkg/math"
)

// MaxBoneCount is the default number of bone slots in a TransformSet.
const MaxBoneCount = 512

// TransformSet is the per-frame output consumed by skinning and debug rendering.
// Every slice has Capacity entries; slots past BoneCount hold identity.
type TransformSet struct {
	// SkinningOffsets map bind pose vertices to the animated pose.
	SkinningOffsets []math.Mat4
	// SkinningOffsetsInvTranspose transform normals under the skinning offsets.
	SkinningOffsetsInvTranspose []math.Mat4
	// WorldTransforms are the animated model space bone transforms.
	WorldTransforms []math.Mat4

	names     map[string]int
	boneCount int
}

func newTransformSet(capacity int) *TransformSet {
	s := &TransformSet{
		SkinningOffsets:             make([]math.Mat4, capacity),
		SkinningOffsetsInvTranspose: make([]math.Mat4, capacity),
		WorldTransforms:             make([]math.Mat4, capacity),
		names:                       make(map[string]int),
	}
	for i := 0; i < capacity; i++ {
		s.SkinningOffsets[i] = math.Identity()
		s.SkinningOffsetsInvTranspose[i] = math.Identity()
		s.WorldTransforms[i] = math.Identity()
	}
	return s
}

// set stores the transforms of bone i. The first bone with a given name wins.
func (s *TransformSet) set(i int, name string, world, restWorld math.Mat4) {
	offset := world.Mul(restWorld.Inverse())
	s.SkinningOffsets[i] = offset
	s.SkinningOffsetsInvTranspose[i] = offset.Inverse().Transpose()
	s.WorldTransforms[i] = world
	if _, ok := s.names[name]; !ok {
		s.names[name] = i
	}
	if i >= s.boneCount {
		s.boneCount = i + 1
	}
}

// WorldTransform returns the animated world transform of the named bone.
func (s *TransformSet) WorldTransform(name string) (math.Mat4, bool) {
	i, ok := s.names[name]
	if !ok {
		return math.Identity(), false
	}
	return s.WorldTransforms[i], true
}

// BoneIndex returns the slot of the named bone, or -1.
func (s *TransformSet) BoneIndex(name string) int {
	if i, ok := s.names[name]; ok {
		return i
	}
	return -1
}

// BoneCount returns the number of populated slots.
func (s *TransformSet) BoneCount() int {
	return s.boneCount
}

// Capacity returns the number of slots.
func (s *TransformSet) Capacity() int {
	return len(s.WorldTransforms)
}

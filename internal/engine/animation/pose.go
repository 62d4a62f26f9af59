package animation

import (
	"github.com/Faultbox/rigeval/pkg/formats"
	"github.com/Faultbox/rigeval/pkg/math"
)

// AnimatedBone is the per-frame working state of one skeleton bone.
type AnimatedBone struct {
	Bone *formats.BoneData
	// Anim replaces the rest pose when set.
	Anim            *AnimTransform
	InheritScale    bool
	CompensateScale bool
	Flags           formats.TransformFlags

	world    math.Mat4
	worldErr error
	dirty    bool
}

// Dirty reports whether the memoized world transform must be recomputed.
func (b *AnimatedBone) Dirty() bool {
	return b.dirty
}

// Pose holds the animated bones of one skeleton for a single evaluation.
// Bones are addressed by skeleton index; parent links are plain indices.
type Pose struct {
	skel     *formats.Skel
	bones    []AnimatedBone
	children [][]int
}

// NewPose creates a pose in which every bone is at rest.
func NewPose(skel *formats.Skel) *Pose {
	n := len(skel.Bones)
	p := &Pose{
		skel:     skel,
		bones:    make([]AnimatedBone, n),
		children: make([][]int, n),
	}
	for i := range skel.Bones {
		p.bones[i] = AnimatedBone{
			Bone:         &skel.Bones[i],
			InheritScale: true,
			dirty:        true,
		}
		if parent, ok := skel.Bones[i].Parent(); ok && parent < n && parent != i {
			p.children[parent] = append(p.children[parent], i)
		}
	}
	return p
}

// Len returns the number of bones.
func (p *Pose) Len() int {
	return len(p.bones)
}

// Bone returns the working state of bone i.
func (p *Pose) Bone(i int) *AnimatedBone {
	return &p.bones[i]
}

// BoneIndex returns the index of the named bone, or -1.
func (p *Pose) BoneIndex(name string) int {
	return p.skel.BoneIndex(name)
}

// SetAnimTransform replaces the animated transform of bone i and invalidates
// the cached world transforms of the bone and its descendants.
func (p *Pose) SetAnimTransform(i int, t AnimTransform) {
	p.bones[i].Anim = &t
	p.invalidate(i)
}

// SetTrack applies a sampled transform along with the flags of its track.
func (p *Pose) SetTrack(i int, t AnimTransform, track *formats.TrackData) {
	b := &p.bones[i]
	b.InheritScale = track.InheritScale
	b.CompensateScale = track.CompensateScale
	b.Flags = track.TransformFlags
	p.SetAnimTransform(i, t.WithOverrides(track.TransformFlags, b.Bone.Transform))
}

// AnimTransform returns the animated transform of bone i, or its rest pose
// decomposition if the bone is not animated.
func (p *Pose) AnimTransform(i int) AnimTransform {
	if a := p.bones[i].Anim; a != nil {
		return *a
	}
	return RestAnimTransform(p.bones[i].Bone.Transform)
}

func (p *Pose) invalidate(i int) {
	visited := make(map[int]bool)
	stack := []int{i}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[current] {
			continue
		}
		visited[current] = true
		p.bones[current].dirty = true
		stack = append(stack, p.children[current]...)
	}
}

// LocalTransform returns the transform of bone i relative to its parent.
// When includeScale is false the scale of the transform is removed.
func (p *Pose) LocalTransform(i int, includeScale bool) math.Mat4 {
	b := &p.bones[i]
	if b.Anim != nil {
		return b.Anim.Mat4(includeScale)
	}
	if includeScale {
		return b.Bone.Transform
	}
	_, r, t := b.Bone.Transform.Decompose()
	return math.FromTRS(t, r, math.Vec3One())
}

// WorldTransform returns the model space transform of bone i.
// A broken parent chain yields identity and an error naming the bone.
// Results are memoized until the bone is invalidated.
func (p *Pose) WorldTransform(i int) (math.Mat4, error) {
	b := &p.bones[i]
	if !b.dirty {
		return b.world, b.worldErr
	}

	world, err := p.accumulate(i)
	if err != nil {
		world = math.Identity()
	}
	b.world, b.worldErr, b.dirty = world, err, false
	return world, err
}

// accumulate walks from bone i to its root. The bone's own scale always
// applies; an ancestor's scale applies only while every bone visited so far
// inherits scale.
func (p *Pose) accumulate(i int) (math.Mat4, error) {
	world := p.LocalTransform(i, true)
	inherit := p.bones[i].InheritScale

	visited := map[int]bool{i: true}
	current := i
	for {
		parent, ok := p.bones[current].Bone.Parent()
		if !ok {
			return world, nil
		}
		if parent >= len(p.bones) {
			return math.Identity(), &InvalidParentError{Bone: i, Parent: parent}
		}
		if visited[parent] {
			return math.Identity(), &CycleError{Bone: i, Parent: parent}
		}
		visited[parent] = true

		world = p.LocalTransform(parent, inherit).Mul(world)
		inherit = inherit && p.bones[parent].InheritScale
		current = parent
	}
}

// RestWorldTransform returns the model space rest pose of bone i.
func RestWorldTransform(skel *formats.Skel, i int) (math.Mat4, error) {
	return NewPose(skel).WorldTransform(i)
}

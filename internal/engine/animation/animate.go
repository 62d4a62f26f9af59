// Package animation evaluates skeletal animation clips into per-bone transforms.
package animation

import (
	gomath "math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/rigeval/internal/logger"
	"github.com/Faultbox/rigeval/pkg/formats"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCapacity sets the number of bone slots in the output. Values below one
// are ignored.
func WithCapacity(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.capacity = n
		}
	}
}

// WithConstraints enables or disables the helper bone constraint pass.
func WithConstraints(enabled bool) Option {
	return func(e *Evaluator) {
		e.constraints = enabled
	}
}

// Evaluator computes TransformSets. It holds no per-call state and is safe
// for concurrent use.
type Evaluator struct {
	capacity    int
	constraints bool
}

// NewEvaluator creates an evaluator with MaxBoneCount slots and constraints enabled.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		capacity:    MaxBoneCount,
		constraints: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capacity returns the number of bone slots in each TransformSet.
func (e *Evaluator) Capacity() int {
	return e.capacity
}

// Evaluate uses a default Evaluator.
func Evaluate(skel *formats.Skel, anims []*formats.Anim, frame float64, loop bool, hlpb *formats.Hlpb) (*TransformSet, error) {
	return NewEvaluator().Evaluate(skel, anims, frame, loop, hlpb)
}

// Evaluate applies anims in order at frame, runs the constraints in hlpb and
// returns the resulting transforms. Later clips overwrite earlier ones per bone.
//
// The returned set is always complete. The error combines every problem found
// along the way: broken parent chains, failed constraints and a skeleton
// larger than the capacity.
func (e *Evaluator) Evaluate(skel *formats.Skel, anims []*formats.Anim, frame float64, loop bool, hlpb *formats.Hlpb) (*TransformSet, error) {
	set := newTransformSet(e.capacity)
	if skel == nil {
		return set, nil
	}

	var errs error
	limit := len(skel.Bones)
	if limit > e.capacity {
		logger.Warn("skeleton exceeds bone capacity",
			zap.Int("bones", limit),
			zap.Int("capacity", e.capacity))
		errs = multierr.Append(errs, &CapacityError{Count: limit, Capacity: e.capacity})
		limit = e.capacity
	}

	pose := NewPose(skel)
	for _, anim := range anims {
		if anim == nil {
			continue
		}
		applyTransformGroups(pose, anim, LoopFrame(frame, anim.FinalFrameIndex, loop), limit)
	}

	if e.constraints {
		errs = multierr.Append(errs, ApplyConstraints(pose, hlpb))
	}

	rest := NewPose(skel)
	for i := 0; i < limit; i++ {
		world, err := pose.WorldTransform(i)
		if err != nil {
			logger.Warn("bone world transform failed",
				zap.Int("bone", i),
				zap.String("name", skel.Bones[i].Name),
				zap.Error(err))
			errs = multierr.Append(errs, err)
		}
		// A broken chain fails identically at rest and was reported above.
		restWorld, _ := rest.WorldTransform(i)
		set.set(i, skel.Bones[i].Name, world, restWorld)
	}

	return set, errs
}

// LoopFrame wraps frame into [0, finalFrameIndex) when loop is set and the
// clip has a positive length. Otherwise frame is returned unchanged.
func LoopFrame(frame float64, finalFrameIndex float32, loop bool) float64 {
	if !loop || finalFrameIndex <= 0 {
		return frame
	}
	n := float64(finalFrameIndex)
	r := gomath.Mod(frame, n)
	if r < 0 {
		r += n
	}
	return r
}

// applyTransformGroups samples the first track of every transform node and
// writes it onto the bone of the same name.
func applyTransformGroups(pose *Pose, anim *formats.Anim, frame float64, limit int) {
	for _, group := range anim.GetGroups(formats.GroupTransform) {
		for n := range group.Nodes {
			node := &group.Nodes[n]
			i := pose.BoneIndex(node.Name)
			if i < 0 || i >= limit {
				logger.Debug("transform node has no bone", zap.String("node", node.Name))
				continue
			}

			track := node.FirstTrack()
			if track == nil || track.Values == nil {
				continue
			}
			values, ok := track.Values.(formats.TransformValues)
			if !ok {
				logger.Debug("transform node track is not a transform",
					zap.String("node", node.Name),
					zap.Stringer("type", track.Values.Kind()))
				continue
			}

			t, ok := SampleTransform(values, frame)
			if !ok {
				continue
			}
			pose.SetTrack(i, t, track)
		}
	}
}

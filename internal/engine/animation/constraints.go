package animation

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/rigeval/internal/logger"
	"github.com/Faultbox/rigeval/pkg/formats"
	"github.com/Faultbox/rigeval/pkg/math"
)

// ApplyConstraints runs every aim constraint and then every orient constraint
// in declaration order. Constraints naming missing bones are skipped.
// Later constraints see the results of earlier ones.
func ApplyConstraints(pose *Pose, hlpb *formats.Hlpb) error {
	if hlpb == nil {
		return nil
	}

	var errs error
	for i := range hlpb.AimConstraints {
		errs = multierr.Append(errs, applyAim(pose, &hlpb.AimConstraints[i]))
	}
	for i := range hlpb.OrientConstraints {
		errs = multierr.Append(errs, applyOrient(pose, &hlpb.OrientConstraints[i]))
	}
	return errs
}

// applyAim rotates the target so its aim axis points at the source.
func applyAim(pose *Pose, c *formats.AimConstraintData) error {
	source := pose.BoneIndex(c.AimBoneName1)
	target := pose.BoneIndex(c.TargetBoneName1)
	if source < 0 || target < 0 {
		logger.Debug("aim constraint skipped: missing bone",
			zap.String("constraint", c.Name),
			zap.String("source", c.AimBoneName1),
			zap.String("target", c.TargetBoneName1))
		return nil
	}

	sourceWorld, err := pose.WorldTransform(source)
	if err != nil {
		return fmt.Errorf("aim constraint %q: source: %w", c.Name, err)
	}
	targetWorld, err := pose.WorldTransform(target)
	if err != nil {
		return fmt.Errorf("aim constraint %q: target: %w", c.Name, err)
	}

	aim := targetWorld.TransformDirection(c.Aim.Vec3())
	dir := sourceWorld.Translation().Sub(targetWorld.Translation())
	if aim.Length() == 0 || dir.Length() == 0 {
		logger.Debug("aim constraint skipped: zero length direction",
			zap.String("constraint", c.Name))
		return nil
	}

	t := pose.AnimTransform(target)
	t.Rotation = t.Rotation.Mul(math.QuatBetween(aim.Normalize(), dir.Normalize()))
	pose.SetAnimTransform(target, t)
	return nil
}

// applyOrient blends the target rotation towards the source rotation,
// measured relative to the target's parent, one Euler angle at a time.
func applyOrient(pose *Pose, c *formats.OrientConstraintData) error {
	source := pose.BoneIndex(c.SourceBoneName)
	target := pose.BoneIndex(c.TargetBoneName)
	if source < 0 || target < 0 {
		logger.Debug("orient constraint skipped: missing bone",
			zap.String("constraint", c.Name),
			zap.String("source", c.SourceBoneName),
			zap.String("target", c.TargetBoneName))
		return nil
	}

	sourceWorld, err := pose.WorldTransform(source)
	if err != nil {
		return fmt.Errorf("orient constraint %q: source: %w", c.Name, err)
	}

	parentWorld := math.Identity()
	if parent, ok := pose.Bone(target).Bone.Parent(); ok {
		if parent >= pose.Len() {
			return fmt.Errorf("orient constraint %q: %w",
				c.Name, &InvalidParentError{Bone: target, Parent: parent})
		}
		parentWorld, err = pose.WorldTransform(parent)
		if err != nil {
			return fmt.Errorf("orient constraint %q: target parent: %w", c.Name, err)
		}
	}

	_, sourceRot, _ := parentWorld.Inverse().Mul(sourceWorld).Decompose()
	sz, sy, sx := sourceRot.EulerZYX()

	t := pose.AnimTransform(target)
	tz, ty, tx := t.Rotation.Normalize().EulerZYX()

	axes := c.ConstraintAxes
	t.Rotation = math.QuatFromEulerZYX(
		lerp(tz, sz, axes[2]),
		lerp(ty, sy, axes[1]),
		lerp(tx, sx, axes[0]),
	)
	pose.SetAnimTransform(target, t)
	return nil
}

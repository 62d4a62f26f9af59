package animation

import (
	"errors"
	"fmt"
)

// Evaluation errors. They are reported per bone and never stop a frame.
var (
	ErrCycleDetected    = errors.New("bone parent cycle detected")
	ErrInvalidParent    = errors.New("invalid parent index")
	ErrCapacityExceeded = errors.New("bone count exceeds capacity")
)

// CycleError reports a bone whose parent chain revisits Parent.
type CycleError struct {
	Bone   int
	Parent int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("bone %d: parent %d visited twice: %v", e.Bone, e.Parent, ErrCycleDetected)
}

// Is matches ErrCycleDetected.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// InvalidParentError reports a parent index outside the skeleton.
type InvalidParentError struct {
	Bone   int
	Parent int
}

func (e *InvalidParentError) Error() string {
	return fmt.Sprintf("bone %d: parent %d: %v", e.Bone, e.Parent, ErrInvalidParent)
}

// Is matches ErrInvalidParent.
func (e *InvalidParentError) Is(target error) bool {
	return target == ErrInvalidParent
}

// CapacityError reports a skeleton larger than the output capacity.
// Bones at index Capacity and above are not animated or emitted.
type CapacityError struct {
	Count    int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%d bones, capacity %d: %v", e.Count, e.Capacity, ErrCapacityExceeded)
}

// Is matches ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// Package formats defines the skeleton, animation, helper bone and material
// data consumed by the animation engine, along with a YAML interchange encoding.
package formats

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rigeval/pkg/math"
)

// Shared format errors.
var (
	ErrEmptyDocument    = errors.New("empty document")
	ErrUnknownGroupType = errors.New("unknown group type")
	ErrUnknownTrackType = errors.New("unknown track type")
	ErrUnknownEnumValue = errors.New("unknown enum value")
)

// Version represents a document version.
type Version struct {
	Major uint16 `yaml:"major"`
	Minor uint16 `yaml:"minor"`
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast returns true if version is >= major.minor.
func (v Version) AtLeast(major, minor uint16) bool {
	if v.Major > major {
		return true
	}
	if v.Major == major && v.Minor >= minor {
		return true
	}
	return false
}

// Vector3 is a three component value encoded as a YAML sequence.
type Vector3 [3]float32

// Vec3 converts to a math vector.
func (v Vector3) Vec3() math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Vector4 is a four component value encoded as a YAML sequence.
type Vector4 [4]float32

// Quat interprets the components as x, y, z, w.
func (v Vector4) Quat() math.Quat {
	return math.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

// Vec4 converts to a math vector.
func (v Vector4) Vec4() math.Vec4 {
	return math.Vec4(v)
}

// parseDocument decodes a YAML document into out.
func parseDocument(data []byte, kind string, out any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%s: %w", kind, ErrEmptyDocument)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", kind, err)
	}
	return nil
}

// readDocument reads a file for one of the Parse*File functions.
func readDocument(path, kind string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s file: %w", kind, err)
	}
	return data, nil
}

// enumNames maps an enum to its YAML spelling.
type enumNames[T comparable] []struct {
	value T
	name  string
}

func (n enumNames[T]) name(v T) (string, bool) {
	for _, e := range n {
		if e.value == v {
			return e.name, true
		}
	}
	return "", false
}

func (n enumNames[T]) decode(value *yaml.Node, kind string, sentinel error) (T, error) {
	var zero T
	var s string
	if err := value.Decode(&s); err != nil {
		return zero, err
	}
	for _, e := range n {
		if strings.EqualFold(e.name, s) {
			return e.value, nil
		}
	}
	return zero, fmt.Errorf("%w: %s %q (line %d)", sentinel, kind, s, value.Line)
}

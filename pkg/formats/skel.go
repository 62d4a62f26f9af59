package formats

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rigeval/pkg/math"
)

// Skeleton errors.
var (
	ErrSelfParent       = errors.New("bone is its own parent")
	ErrParentOutOfRange = errors.New("parent index out of range")
	ErrParentCycle      = errors.New("parent cycle")
)

// NoParent marks a root bone.
const NoParent = -1

// BillboardType is the orientation mode of a bone. It is only read by renderers.
type BillboardType int

const (
	BillboardDisabled BillboardType = iota
	BillboardXAxialViewpoint
	BillboardXYAxialViewpoint
	BillboardYAxialViewpoint
	BillboardXYAxialViewVector
)

var billboardNames = enumNames[BillboardType]{
	{BillboardDisabled, "disabled"},
	{BillboardXAxialViewpoint, "x_axial_viewpoint"},
	{BillboardXYAxialViewpoint, "xy_axial_viewpoint"},
	{BillboardYAxialViewpoint, "y_axial_viewpoint"},
	{BillboardXYAxialViewVector, "xy_axial_view_vector"},
}

// String returns the YAML name of the billboard type.
func (b BillboardType) String() string {
	if name, ok := billboardNames.name(b); ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(b))
}

// UnmarshalYAML decodes a billboard name.
func (b *BillboardType) UnmarshalYAML(value *yaml.Node) error {
	v, err := billboardNames.decode(value, "billboard type", ErrUnknownEnumValue)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// MarshalYAML encodes the billboard name.
func (b BillboardType) MarshalYAML() (any, error) {
	return b.String(), nil
}

// BoneData is a single bone of a skeleton.
type BoneData struct {
	Name string
	// Transform is the rest pose relative to the parent bone.
	Transform math.Mat4
	// ParentIndex indexes Skel.Bones, or NoParent for roots.
	ParentIndex   int
	BillboardType BillboardType
}

// Parent returns the parent index and whether the bone has one.
// Any negative index marks a root.
func (b *BoneData) Parent() (int, bool) {
	return b.ParentIndex, b.ParentIndex >= 0
}

// boneDocument is the YAML shape of a bone. Transform rows follow the
// row-vector convention and map directly onto Mat4 columns.
type boneDocument struct {
	Name          string         `yaml:"name"`
	Transform     *[4][4]float32 `yaml:"transform,omitempty"`
	ParentIndex   *int           `yaml:"parent_index,omitempty"`
	BillboardType BillboardType  `yaml:"billboard_type,omitempty"`
}

// UnmarshalYAML decodes a bone, defaulting to an identity root bone.
func (b *BoneData) UnmarshalYAML(value *yaml.Node) error {
	var doc boneDocument
	if err := value.Decode(&doc); err != nil {
		return err
	}

	b.Name = doc.Name
	b.Transform = math.Identity()
	if doc.Transform != nil {
		b.Transform = MatrixFromRows(*doc.Transform)
	}
	b.ParentIndex = NoParent
	if doc.ParentIndex != nil && *doc.ParentIndex >= 0 {
		b.ParentIndex = *doc.ParentIndex
	}
	b.BillboardType = doc.BillboardType
	return nil
}

// MarshalYAML encodes a bone.
func (b BoneData) MarshalYAML() (any, error) {
	rows := RowsFromMatrix(b.Transform)
	doc := boneDocument{
		Name:          b.Name,
		Transform:     &rows,
		BillboardType: b.BillboardType,
	}
	if p, ok := b.Parent(); ok {
		doc.ParentIndex = &p
	}
	return doc, nil
}

// MatrixFromRows converts row-vector rows into a Mat4.
func MatrixFromRows(rows [4][4]float32) math.Mat4 {
	var m math.Mat4
	for i, row := range rows {
		copy(m[i*4:i*4+4], row[:])
	}
	return m
}

// RowsFromMatrix is the inverse of MatrixFromRows.
func RowsFromMatrix(m math.Mat4) [4][4]float32 {
	var rows [4][4]float32
	for i := range rows {
		copy(rows[i][:], m[i*4:i*4+4])
	}
	return rows
}

// Skel is a bone hierarchy with rest pose transforms.
type Skel struct {
	Version Version    `yaml:"version"`
	Bones   []BoneData `yaml:"bones"`
}

// ParseSkel parses a skeleton document.
func ParseSkel(data []byte) (*Skel, error) {
	skel := &Skel{Version: Version{Major: 1, Minor: 0}}
	if err := parseDocument(data, "skel", skel); err != nil {
		return nil, err
	}
	return skel, nil
}

// ParseSkelFile parses a skeleton document from disk.
func ParseSkelFile(path string) (*Skel, error) {
	data, err := readDocument(path, "skel")
	if err != nil {
		return nil, err
	}
	return ParseSkel(data)
}

// BoneIndex returns the index of the first bone with the given name, or -1.
func (s *Skel) BoneIndex(name string) int {
	for i := range s.Bones {
		if s.Bones[i].Name == name {
			return i
		}
	}
	return -1
}

// GetBoneByName returns a bone by its name, or nil if not found.
func (s *Skel) GetBoneByName(name string) *BoneData {
	if i := s.BoneIndex(name); i >= 0 {
		return &s.Bones[i]
	}
	return nil
}

// GetChildBones returns the indices of all bones parented to parent.
func (s *Skel) GetChildBones(parent int) []int {
	var children []int
	for i := range s.Bones {
		if p, ok := s.Bones[i].Parent(); ok && p == parent {
			children = append(children, i)
		}
	}
	return children
}

// RootBones returns the indices of bones without a parent.
func (s *Skel) RootBones() []int {
	var roots []int
	for i := range s.Bones {
		if _, ok := s.Bones[i].Parent(); !ok {
			roots = append(roots, i)
		}
	}
	return roots
}

// Validate reports every bone whose parent chain is broken.
// The animation engine tolerates these bones, so this is advisory.
func (s *Skel) Validate() error {
	var err error
	for i := range s.Bones {
		if chainErr := s.checkChain(i); chainErr != nil {
			err = multierr.Append(err, fmt.Errorf("bone %d (%s): %w", i, s.Bones[i].Name, chainErr))
		}
	}
	return err
}

func (s *Skel) checkChain(i int) error {
	if s.Bones[i].ParentIndex == i {
		return ErrSelfParent
	}
	visited := make(map[int]bool)
	current := i
	for {
		visited[current] = true
		p, ok := s.Bones[current].Parent()
		if !ok {
			return nil
		}
		if p >= len(s.Bones) {
			return fmt.Errorf("%w: %d", ErrParentOutOfRange, p)
		}
		if visited[p] {
			return fmt.Errorf("%w at bone %d", ErrParentCycle, p)
		}
		current = p
	}
}

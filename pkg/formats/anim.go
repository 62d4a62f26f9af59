package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// GroupType is the category of the nodes in an animation group.
type GroupType int

const (
	GroupTransform GroupType = iota
	GroupVisibility
	GroupMaterial
	GroupCamera
)

var groupNames = enumNames[GroupType]{
	{GroupTransform, "transform"},
	{GroupVisibility, "visibility"},
	{GroupMaterial, "material"},
	{GroupCamera, "camera"},
}

// String returns a human-readable group type name.
func (g GroupType) String() string {
	if name, ok := groupNames.name(g); ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(g))
}

// UnmarshalYAML decodes a group type name.
func (g *GroupType) UnmarshalYAML(value *yaml.Node) error {
	v, err := groupNames.decode(value, "group type", ErrUnknownGroupType)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// MarshalYAML encodes the group type name.
func (g GroupType) MarshalYAML() (any, error) {
	return g.String(), nil
}

// TrackKind identifies the value type stored in a track.
type TrackKind int

const (
	TrackTransform TrackKind = iota
	TrackUvTransform
	TrackFloat
	TrackPatternIndex
	TrackBoolean
	TrackVector4
)

var trackNames = enumNames[TrackKind]{
	{TrackTransform, "transform"},
	{TrackUvTransform, "uv_transform"},
	{TrackFloat, "float"},
	{TrackPatternIndex, "pattern_index"},
	{TrackBoolean, "boolean"},
	{TrackVector4, "vector4"},
}

// String returns a human-readable track kind name.
func (k TrackKind) String() string {
	if name, ok := trackNames.name(k); ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(k))
}

// UnmarshalYAML decodes a track kind name.
func (k *TrackKind) UnmarshalYAML(value *yaml.Node) error {
	v, err := trackNames.decode(value, "track type", ErrUnknownTrackType)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalYAML encodes the track kind name.
func (k TrackKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Transform is one keyframe of a transform track.
type Transform struct {
	Translation Vector3 `yaml:"translation"`
	// Rotation is a quaternion (x, y, z, w).
	Rotation Vector4 `yaml:"rotation"`
	Scale    Vector3 `yaml:"scale"`
}

// IdentityTransform returns a keyframe with no translation, rotation or scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: Vector4{0, 0, 0, 1},
		Scale:    Vector3{1, 1, 1},
	}
}

// UnmarshalYAML decodes a keyframe, keeping identity values for omitted fields.
func (t *Transform) UnmarshalYAML(value *yaml.Node) error {
	type plain Transform
	p := plain(IdentityTransform())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*t = Transform(p)
	return nil
}

// UvTransform is one keyframe of a texture coordinate transform track.
type UvTransform struct {
	ScaleU     float32 `yaml:"scale_u"`
	ScaleV     float32 `yaml:"scale_v"`
	Rotation   float32 `yaml:"rotation"`
	TranslateU float32 `yaml:"translate_u"`
	TranslateV float32 `yaml:"translate_v"`
}

// TrackValues is the typed keyframe sequence of a track.
// The implementations are TransformValues, UvTransformValues, FloatValues,
// PatternIndexValues, BooleanValues and Vector4Values.
type TrackValues interface {
	Kind() TrackKind
	Len() int
	trackValues()
}

type (
	TransformValues    []Transform
	UvTransformValues  []UvTransform
	FloatValues        []float32
	PatternIndexValues []uint32
	BooleanValues      []bool
	Vector4Values      []Vector4
)

func (v TransformValues) Kind() TrackKind    { return TrackTransform }
func (v UvTransformValues) Kind() TrackKind  { return TrackUvTransform }
func (v FloatValues) Kind() TrackKind        { return TrackFloat }
func (v PatternIndexValues) Kind() TrackKind { return TrackPatternIndex }
func (v BooleanValues) Kind() TrackKind      { return TrackBoolean }
func (v Vector4Values) Kind() TrackKind      { return TrackVector4 }

func (v TransformValues) Len() int    { return len(v) }
func (v UvTransformValues) Len() int  { return len(v) }
func (v FloatValues) Len() int        { return len(v) }
func (v PatternIndexValues) Len() int { return len(v) }
func (v BooleanValues) Len() int      { return len(v) }
func (v Vector4Values) Len() int      { return len(v) }

func (TransformValues) trackValues()    {}
func (UvTransformValues) trackValues()  {}
func (FloatValues) trackValues()        {}
func (PatternIndexValues) trackValues() {}
func (BooleanValues) trackValues()      {}
func (Vector4Values) trackValues()      {}

// TransformFlags select rest pose components that replace animated ones.
type TransformFlags struct {
	OverrideTranslation bool `yaml:"override_translation,omitempty"`
	OverrideRotation    bool `yaml:"override_rotation,omitempty"`
	OverrideScale       bool `yaml:"override_scale,omitempty"`
}

// TrackData is one animated property of a node.
type TrackData struct {
	Name string
	// InheritScale controls whether ancestor scale reaches this bone.
	InheritScale    bool
	CompensateScale bool
	TransformFlags  TransformFlags
	Values          TrackValues
}

type trackDocument struct {
	Name            string         `yaml:"name"`
	InheritScale    *bool          `yaml:"inherit_scale,omitempty"`
	CompensateScale bool           `yaml:"compensate_scale,omitempty"`
	TransformFlags  TransformFlags `yaml:"transform_flags,omitempty"`
	Type            TrackKind      `yaml:"type"`
	Values          yaml.Node      `yaml:"values"`
}

// UnmarshalYAML decodes a track. inherit_scale defaults to true.
func (t *TrackData) UnmarshalYAML(value *yaml.Node) error {
	var doc trackDocument
	if err := value.Decode(&doc); err != nil {
		return err
	}

	values, err := decodeTrackValues(doc.Type, &doc.Values)
	if err != nil {
		return fmt.Errorf("track %q: %w", doc.Name, err)
	}

	t.Name = doc.Name
	t.InheritScale = doc.InheritScale == nil || *doc.InheritScale
	t.CompensateScale = doc.CompensateScale
	t.TransformFlags = doc.TransformFlags
	t.Values = values
	return nil
}

func decodeTrackValues(kind TrackKind, node *yaml.Node) (TrackValues, error) {
	var values TrackValues
	switch kind {
	case TrackTransform:
		values = &TransformValues{}
	case TrackUvTransform:
		values = &UvTransformValues{}
	case TrackFloat:
		values = &FloatValues{}
	case TrackPatternIndex:
		values = &PatternIndexValues{}
	case TrackBoolean:
		values = &BooleanValues{}
	case TrackVector4:
		values = &Vector4Values{}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTrackType, int(kind))
	}

	if node.Kind != 0 {
		if err := node.Decode(values); err != nil {
			return nil, err
		}
	}

	switch v := values.(type) {
	case *TransformValues:
		return *v, nil
	case *UvTransformValues:
		return *v, nil
	case *FloatValues:
		return *v, nil
	case *PatternIndexValues:
		return *v, nil
	case *BooleanValues:
		return *v, nil
	default:
		return *values.(*Vector4Values), nil
	}
}

// NodeData is a named set of tracks. For transform groups the name matches a bone.
type NodeData struct {
	Name   string      `yaml:"name"`
	Tracks []TrackData `yaml:"tracks"`
}

// Track returns the track with the given name, or nil if not found.
func (n *NodeData) Track(name string) *TrackData {
	for i := range n.Tracks {
		if n.Tracks[i].Name == name {
			return &n.Tracks[i]
		}
	}
	return nil
}

// FirstTrack returns the first track, or nil for an empty node.
func (n *NodeData) FirstTrack() *TrackData {
	if len(n.Tracks) == 0 {
		return nil
	}
	return &n.Tracks[0]
}

// GroupData holds the nodes of one category.
type GroupData struct {
	GroupType GroupType  `yaml:"group_type"`
	Nodes     []NodeData `yaml:"nodes"`
}

// Anim is an animation clip.
type Anim struct {
	Version Version `yaml:"version"`
	// FinalFrameIndex is the loop length in frames.
	FinalFrameIndex float32     `yaml:"final_frame_index"`
	Groups          []GroupData `yaml:"groups"`
}

// ParseAnim parses an animation document.
func ParseAnim(data []byte) (*Anim, error) {
	anim := &Anim{Version: Version{Major: 2, Minor: 0}}
	if err := parseDocument(data, "anim", anim); err != nil {
		return nil, err
	}
	return anim, nil
}

// ParseAnimFile parses an animation document from disk.
func ParseAnimFile(path string) (*Anim, error) {
	data, err := readDocument(path, "anim")
	if err != nil {
		return nil, err
	}
	return ParseAnim(data)
}

// GetGroups returns the groups of the given type in declaration order.
func (a *Anim) GetGroups(groupType GroupType) []*GroupData {
	var groups []*GroupData
	for i := range a.Groups {
		if a.Groups[i].GroupType == groupType {
			groups = append(groups, &a.Groups[i])
		}
	}
	return groups
}

// GetNode returns the first node with the given name in a group of the given type.
func (a *Anim) GetNode(groupType GroupType, name string) *NodeData {
	for _, g := range a.GetGroups(groupType) {
		for i := range g.Nodes {
			if g.Nodes[i].Name == name {
				return &g.Nodes[i]
			}
		}
	}
	return nil
}

// HasAnimation returns true if any track holds more than one keyframe.
func (a *Anim) HasAnimation() bool {
	for _, g := range a.Groups {
		for _, n := range g.Nodes {
			for _, t := range n.Tracks {
				if t.Values != nil && t.Values.Len() > 1 {
					return true
				}
			}
		}
	}
	return false
}

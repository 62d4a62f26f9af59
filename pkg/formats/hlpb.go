package formats

import (
	"gopkg.in/yaml.v3"
)

// AimConstraintData rotates a target bone so its aim axis points at a source bone.
type AimConstraintData struct {
	Name string `yaml:"name"`
	// AimBoneName1 is the bone being aimed at.
	AimBoneName1 string `yaml:"aim_bone_name1"`
	AimBoneName2 string `yaml:"aim_bone_name2"`
	AimType1     string `yaml:"aim_type1"`
	AimType2     string `yaml:"aim_type2"`
	// TargetBoneName1 is the bone that gets rotated.
	TargetBoneName1 string  `yaml:"target_bone_name1"`
	TargetBoneName2 string  `yaml:"target_bone_name2"`
	Aim             Vector3 `yaml:"aim"`
	Up              Vector3 `yaml:"up"`
	Quat1           Vector4 `yaml:"quat1"`
	Quat2           Vector4 `yaml:"quat2"`
}

// UnmarshalYAML decodes an aim constraint. The aim axis defaults to +X and up to +Y.
func (a *AimConstraintData) UnmarshalYAML(value *yaml.Node) error {
	type plain AimConstraintData
	p := plain{
		Aim:   Vector3{1, 0, 0},
		Up:    Vector3{0, 1, 0},
		Quat1: Vector4{0, 0, 0, 1},
		Quat2: Vector4{0, 0, 0, 1},
	}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*a = AimConstraintData(p)
	return nil
}

// OrientConstraintData copies the rotation of a source bone onto a target bone.
type OrientConstraintData struct {
	Name            string `yaml:"name"`
	ParentBoneName1 string `yaml:"parent_bone_name1"`
	ParentBoneName2 string `yaml:"parent_bone_name2"`
	SourceBoneName  string `yaml:"source_bone_name"`
	TargetBoneName  string `yaml:"target_bone_name"`
	UnkType         int    `yaml:"unk_type"`
	// ConstraintAxes is the per-axis blend weight in [0, 1] towards the source rotation.
	ConstraintAxes Vector3 `yaml:"constraint_axes"`
	Quat1          Vector4 `yaml:"quat1"`
	Quat2          Vector4 `yaml:"quat2"`
	RangeMin       Vector3 `yaml:"range_min"`
	RangeMax       Vector3 `yaml:"range_max"`
}

// UnmarshalYAML decodes an orient constraint. All axes are fully blended by default.
func (o *OrientConstraintData) UnmarshalYAML(value *yaml.Node) error {
	type plain OrientConstraintData
	p := plain{
		ConstraintAxes: Vector3{1, 1, 1},
		Quat1:          Vector4{0, 0, 0, 1},
		Quat2:          Vector4{0, 0, 0, 1},
		RangeMin:       Vector3{-180, -180, -180},
		RangeMax:       Vector3{180, 180, 180},
	}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*o = OrientConstraintData(p)
	return nil
}

// Hlpb holds the helper bone constraints of a skeleton.
type Hlpb struct {
	Version           Version                `yaml:"version"`
	AimConstraints    []AimConstraintData    `yaml:"aim_constraints"`
	OrientConstraints []OrientConstraintData `yaml:"orient_constraints"`
}

// ParseHlpb parses a helper bone document.
func ParseHlpb(data []byte) (*Hlpb, error) {
	hlpb := &Hlpb{Version: Version{Major: 1, Minor: 1}}
	if err := parseDocument(data, "hlpb", hlpb); err != nil {
		return nil, err
	}
	return hlpb, nil
}

// ParseHlpbFile parses a helper bone document from disk.
func ParseHlpbFile(path string) (*Hlpb, error) {
	data, err := readDocument(path, "hlpb")
	if err != nil {
		return nil, err
	}
	return ParseHlpb(data)
}

// HelperBones returns the names of bones driven only by constraints.
func (h *Hlpb) HelperBones() map[string]bool {
	names := make(map[string]bool)
	if h == nil {
		return names
	}
	for _, aim := range h.AimConstraints {
		names[aim.TargetBoneName2] = true
	}
	for _, orient := range h.OrientConstraints {
		names[orient.TargetBoneName] = true
	}
	return names
}

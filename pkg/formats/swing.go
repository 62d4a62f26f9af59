package formats

// SwingSphere is a collision sphere attached to a bone.
type SwingSphere struct {
	Name     string  `yaml:"name"`
	BoneName string  `yaml:"bone_name"`
	Center   Vector3 `yaml:"center"`
	Radius   float32 `yaml:"radius"`
}

// SwingCapsule is a collision capsule spanning two bones.
// The offsets are carried but not used for placement.
type SwingCapsule struct {
	Name          string  `yaml:"name"`
	StartBoneName string  `yaml:"start_bone_name"`
	EndBoneName   string  `yaml:"end_bone_name"`
	StartOffset   Vector3 `yaml:"start_offset"`
	EndOffset     Vector3 `yaml:"end_offset"`
	StartRadius   float32 `yaml:"start_radius"`
	EndRadius     float32 `yaml:"end_radius"`
}

// Swing holds the physics collision shapes of a character.
type Swing struct {
	Spheres  []SwingSphere  `yaml:"spheres"`
	Capsules []SwingCapsule `yaml:"capsules"`
}

// ParseSwing parses a swing collision document.
func ParseSwing(data []byte) (*Swing, error) {
	swing := &Swing{}
	if err := parseDocument(data, "swing", swing); err != nil {
		return nil, err
	}
	return swing, nil
}

// ParseSwingFile parses a swing collision document from disk.
func ParseSwingFile(path string) (*Swing, error) {
	data, err := readDocument(path, "swing")
	if err != nil {
		return nil, err
	}
	return ParseSwing(data)
}

package formats

// FloatParam is a named scalar material parameter.
type FloatParam struct {
	ParamID string  `yaml:"param_id"`
	Data    float32 `yaml:"data"`
}

// BoolParam is a named boolean material parameter.
type BoolParam struct {
	ParamID string `yaml:"param_id"`
	Data    bool   `yaml:"data"`
}

// Vector4Param is a named four component material parameter.
type Vector4Param struct {
	ParamID string  `yaml:"param_id"`
	Data    Vector4 `yaml:"data"`
}

// MatlEntryData is one material and its parameters.
type MatlEntryData struct {
	MaterialLabel string         `yaml:"material_label"`
	ShaderLabel   string         `yaml:"shader_label"`
	Floats        []FloatParam   `yaml:"floats"`
	Booleans      []BoolParam    `yaml:"booleans"`
	Vectors       []Vector4Param `yaml:"vectors"`
}

// Clone returns a deep copy of the entry.
func (m MatlEntryData) Clone() MatlEntryData {
	m.Floats = append([]FloatParam(nil), m.Floats...)
	m.Booleans = append([]BoolParam(nil), m.Booleans...)
	m.Vectors = append([]Vector4Param(nil), m.Vectors...)
	return m
}

// SetFloat updates an existing float parameter. Unknown IDs are ignored.
func (m *MatlEntryData) SetFloat(id string, v float32) bool {
	for i := range m.Floats {
		if m.Floats[i].ParamID == id {
			m.Floats[i].Data = v
			return true
		}
	}
	return false
}

// SetBool updates an existing boolean parameter. Unknown IDs are ignored.
func (m *MatlEntryData) SetBool(id string, v bool) bool {
	for i := range m.Booleans {
		if m.Booleans[i].ParamID == id {
			m.Booleans[i].Data = v
			return true
		}
	}
	return false
}

// SetVector4 updates an existing vector parameter. Unknown IDs are ignored.
func (m *MatlEntryData) SetVector4(id string, v Vector4) bool {
	for i := range m.Vectors {
		if m.Vectors[i].ParamID == id {
			m.Vectors[i].Data = v
			return true
		}
	}
	return false
}

// Matl is a material library.
type Matl struct {
	Version Version         `yaml:"version"`
	Entries []MatlEntryData `yaml:"entries"`
}

// ParseMatl parses a material document.
func ParseMatl(data []byte) (*Matl, error) {
	matl := &Matl{Version: Version{Major: 1, Minor: 6}}
	if err := parseDocument(data, "matl", matl); err != nil {
		return nil, err
	}
	return matl, nil
}

// ParseMatlFile parses a material document from disk.
func ParseMatlFile(path string) (*Matl, error) {
	data, err := readDocument(path, "matl")
	if err != nil {
		return nil, err
	}
	return ParseMatl(data)
}

// GetEntry returns the entry with the given label, or nil if not found.
func (m *Matl) GetEntry(label string) *MatlEntryData {
	for i := range m.Entries {
		if m.Entries[i].MaterialLabel == label {
			return &m.Entries[i]
		}
	}
	return nil
}

package animation

import (
	"go.uber.org/zap"

	"github.com/Faultbox/rigeval/internal/logger"
	"github.com/Faultbox/rigeval/pkg/formats"
)

// AnimateMaterials returns copies of materials with the material groups of
// anims applied in order. Nodes match materials by label and tracks match
// parameters by ID. The input is not modified.
func AnimateMaterials(anims []*formats.Anim, frame float64, loop bool, materials []formats.MatlEntryData) []formats.MatlEntryData {
	changed := make([]formats.MatlEntryData, len(materials))
	for i := range materials {
		changed[i] = materials[i].Clone()
	}

	for _, anim := range anims {
		if anim == nil {
			continue
		}
		f := LoopFrame(frame, anim.FinalFrameIndex, loop)
		for _, group := range anim.GetGroups(formats.GroupMaterial) {
			for n := range group.Nodes {
				node := &group.Nodes[n]
				for m := range changed {
					if changed[m].MaterialLabel == node.Name {
						applyMaterialTracks(&changed[m], node, f)
					}
				}
			}
		}
	}
	return changed
}

func applyMaterialTracks(material *formats.MatlEntryData, node *formats.NodeData, frame float64) {
	for i := range node.Tracks {
		track := &node.Tracks[i]
		switch values := track.Values.(type) {
		case formats.FloatValues:
			if v, ok := SampleFloat(values, frame); ok {
				material.SetFloat(track.Name, v)
			}
		case formats.BooleanValues:
			if v, ok := SampleBoolean(values, frame); ok {
				material.SetBool(track.Name, v)
			}
		case formats.Vector4Values:
			if v, ok := SampleVector4(values, frame); ok {
				material.SetVector4(track.Name, formats.Vector4(v))
			}
		default:
			logger.Debug("material track ignored",
				zap.String("material", material.MaterialLabel),
				zap.String("track", track.Name))
		}
	}
}

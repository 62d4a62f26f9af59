package animation

import (
	"strings"

	"github.com/Faultbox/rigeval/pkg/formats"
)

// Visibility is the visibility state of one mesh.
type Visibility struct {
	Name    string
	Visible bool
}

// AnimateVisibility applies the visibility groups of anims in order. A node
// controls every mesh whose name starts with the node name.
func AnimateVisibility(anims []*formats.Anim, frame float64, loop bool, meshes []Visibility) {
	for _, anim := range anims {
		if anim == nil {
			continue
		}
		f := LoopFrame(frame, anim.FinalFrameIndex, loop)
		for _, group := range anim.GetGroups(formats.GroupVisibility) {
			for n := range group.Nodes {
				node := &group.Nodes[n]
				track := node.FirstTrack()
				if track == nil {
					continue
				}
				values, ok := track.Values.(formats.BooleanValues)
				if !ok {
					continue
				}
				visible, ok := SampleBoolean(values, f)
				if !ok {
					continue
				}
				for i := range meshes {
					if strings.HasPrefix(meshes[i].Name, node.Name) {
						meshes[i].Visible = visible
					}
				}
			}
		}
	}
}

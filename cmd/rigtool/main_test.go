package main

import (
	"reflect"
	"testing"

	"github.com/Faultbox/rigeval/pkg/formats"
	"github.com/Faultbox/rigeval/pkg/math"
)

func TestStringList(t *testing.T) {
	var s stringList
	for _, v := range []string{"a.yaml", "b.yaml"} {
		if err := s.Set(v); err != nil {
			t.Fatalf("Set(%q) error: %v", v, err)
		}
	}
	if got := s.String(); got != "a.yaml,b.yaml" {
		t.Errorf("String() = %q, want %q", got, "a.yaml,b.yaml")
	}
}

func TestMissingReferences(t *testing.T) {
	skel := &formats.Skel{Bones: []formats.BoneData{
		{Name: "Trans", Transform: math.Identity(), ParentIndex: formats.NoParent},
		{Name: "Hip", Transform: math.Identity(), ParentIndex: 0},
	}}
	anim := &formats.Anim{Groups: []formats.GroupData{
		{GroupType: formats.GroupTransform, Nodes: []formats.NodeData{
			{Name: "Hip"}, {Name: "Tail"}, {Name: "Tail"},
		}},
		{GroupType: formats.GroupVisibility, Nodes: []formats.NodeData{
			{Name: "body_mesh"},
		}},
	}}
	hlpb := &formats.Hlpb{
		AimConstraints: []formats.AimConstraintData{
			{AimBoneName1: "Hip", TargetBoneName1: "H_Eye"},
		},
		OrientConstraints: []formats.OrientConstraintData{
			{SourceBoneName: "Trans", TargetBoneName: "H_Knee"},
		},
	}

	tests := []struct {
		name string
		anim []*formats.Anim
		hlpb *formats.Hlpb
		want []string
	}{
		{"none", nil, nil, nil},
		{"anims only", []*formats.Anim{anim}, nil, []string{"Tail"}},
		{"anims and constraints", []*formats.Anim{anim}, hlpb, []string{"Tail", "H_Eye", "H_Knee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := missingReferences(skel, tt.anim, tt.hlpb)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("missingReferences() = %v, want %v", got, tt.want)
			}
		})
	}
}

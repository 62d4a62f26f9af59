package formats

import (
	"testing"
)

const testHlpbYAML = `
aim_constraints:
  - name: nuArmAim
    aim_bone_name1: Hand
    target_bone_name1: ArmHelper
    target_bone_name2: ArmHelperEnd
orient_constraints:
  - name: nuWrist
    source_bone_name: Hand
    target_bone_name: WristHelper
    parent_bone_name1: Arm
    constraint_axes: [0.5, 0.5, 0.5]
  - name: nuDefault
    source_bone_name: A
    target_bone_name: B
`

func TestParseHlpb_Defaults(t *testing.T) {
	hlpb, err := ParseHlpb([]byte(testHlpbYAML))
	if err != nil {
		t.Fatalf("ParseHlpb failed: %v", err)
	}

	if len(hlpb.AimConstraints) != 1 {
		t.Fatalf("expected 1 aim constraint, got %d", len(hlpb.AimConstraints))
	}
	aim := hlpb.AimConstraints[0]
	if aim.Aim != (Vector3{1, 0, 0}) {
		t.Errorf("expected default aim +X, got %v", aim.Aim)
	}
	if aim.Up != (Vector3{0, 1, 0}) {
		t.Errorf("expected default up +Y, got %v", aim.Up)
	}

	if len(hlpb.OrientConstraints) != 2 {
		t.Fatalf("expected 2 orient constraints, got %d", len(hlpb.OrientConstraints))
	}
	if got := hlpb.OrientConstraints[0].ConstraintAxes; got != (Vector3{0.5, 0.5, 0.5}) {
		t.Errorf("expected half axes, got %v", got)
	}
	if got := hlpb.OrientConstraints[1].ConstraintAxes; got != (Vector3{1, 1, 1}) {
		t.Errorf("expected default axes, got %v", got)
	}
}

func TestHlpb_HelperBones(t *testing.T) {
	hlpb, err := ParseHlpb([]byte(testHlpbYAML))
	if err != nil {
		t.Fatalf("ParseHlpb failed: %v", err)
	}

	helpers := hlpb.HelperBones()
	for _, name := range []string{"ArmHelperEnd", "WristHelper", "B"} {
		if !helpers[name] {
			t.Errorf("expected %s to be a helper bone", name)
		}
	}
	if helpers["ArmHelper"] || helpers["Hand"] {
		t.Error("aim targets and sources are not helper bones")
	}

	var none *Hlpb
	if len(none.HelperBones()) != 0 {
		t.Error("expected no helpers for nil hlpb")
	}
}

func TestMatl_SetParams(t *testing.T) {
	data := `
entries:
  - material_label: Body
    shader_label: SFX_PBS
    floats: [{param_id: CustomFloat8, data: 0.25}]
    booleans: [{param_id: CustomBoolean1, data: false}]
    vectors: [{param_id: CustomVector13, data: [0, 0, 0, 0]}]
`
	matl, err := ParseMatl([]byte(data))
	if err != nil {
		t.Fatalf("ParseMatl failed: %v", err)
	}

	entry := matl.GetEntry("Body")
	if entry == nil {
		t.Fatal("expected Body entry")
	}

	clone := entry.Clone()
	if !clone.SetFloat("CustomFloat8", 1) {
		t.Error("expected SetFloat to find param")
	}
	if !clone.SetBool("CustomBoolean1", true) {
		t.Error("expected SetBool to find param")
	}
	if !clone.SetVector4("CustomVector13", Vector4{1, 2, 3, 4}) {
		t.Error("expected SetVector4 to find param")
	}
	if clone.SetFloat("Missing", 1) {
		t.Error("expected SetFloat to ignore unknown param")
	}

	if entry.Floats[0].Data != 0.25 || entry.Booleans[0].Data || entry.Vectors[0].Data != (Vector4{}) {
		t.Error("Clone shares parameter storage with the original")
	}
	if clone.Vectors[0].Data != (Vector4{1, 2, 3, 4}) {
		t.Errorf("expected updated vector, got %v", clone.Vectors[0].Data)
	}
}

func TestParseSwing(t *testing.T) {
	swing, err := ParseSwing([]byte(`
spheres:
  - name: head
    bone_name: Head
    center: [0, 1, 0]
    radius: 2.5
capsules:
  - name: thigh
    start_bone_name: LegL
    end_bone_name: KneeL
    start_radius: 1
    end_radius: 0.5
`))
	if err != nil {
		t.Fatalf("ParseSwing failed: %v", err)
	}

	if len(swing.Spheres) != 1 || swing.Spheres[0].BoneName != "Head" || swing.Spheres[0].Radius != 2.5 {
		t.Errorf("unexpected spheres %+v", swing.Spheres)
	}
	if swing.Spheres[0].Center != (Vector3{0, 1, 0}) {
		t.Errorf("unexpected center %v", swing.Spheres[0].Center)
	}
	if len(swing.Capsules) != 1 {
		t.Fatalf("expected 1 capsule, got %d", len(swing.Capsules))
	}
	c := swing.Capsules[0]
	if c.StartBoneName != "LegL" || c.EndBoneName != "KneeL" || c.StartRadius != 1 || c.EndRadius != 0.5 {
		t.Errorf("unexpected capsule %+v", c)
	}

	if _, err := ParseSwing(nil); err == nil {
		t.Error("expected error for an empty document")
	}
}

package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulOrder(t *testing.T) {
	// Scale applies first, then the translation.
	m := Translate(1, 2, 3).Mul(Scale(2, 2, 2))
	if got := m.TransformPoint(Vec3{1, 1, 1}); got != (Vec3{3, 4, 5}) {
		t.Errorf("T * S: got %v, want (3, 4, 5)", got)
	}
	m = Scale(2, 2, 2).Mul(Translate(1, 2, 3))
	if got := m.TransformPoint(Vec3{1, 1, 1}); got != (Vec3{4, 6, 8}) {
		t.Errorf("S * T: got %v, want (4, 6, 8)", got)
	}
}

func TestMulVec4(t *testing.T) {
	m := Translate(1, 2, 3)
	if got := m.MulVec4(Vec4{1, 1, 1, 1}); got != (Vec4{2, 3, 4, 1}) {
		t.Errorf("point: got %v, want (2, 3, 4, 1)", got)
	}
	if got := m.MulVec4(Vec4{1, 1, 1, 0}); got != (Vec4{1, 1, 1, 0}) {
		t.Errorf("direction: got %v, want (1, 1, 1, 0)", got)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if m.Translation() != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v", m.Translation())
	}
	if m.Col(3) != (Vec4{5, 10, 15, 1}) {
		t.Errorf("Col(3) = %v", m.Col(3))
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	if got := m.TransformDirection(Vec3{1, 0, 0}); got != (Vec3{1, 0, 0}) {
		t.Errorf("TransformDirection: got %v, want (1, 0, 0)", got)
	}
}

func TestRotation90AboutY(t *testing.T) {
	m := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2)).ToMat4()
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("rotate Y 90: got %v, want (0, 0, -1)", result)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
	// The near plane maps to -1 and the far plane to 1.
	if z := m.TransformPoint(Vec3{0, 0, -near}).Z; abs(z+1) > 1e-4 {
		t.Errorf("near plane depth: got %v, want -1", z)
	}
	if z := m.TransformPoint(Vec3{0, 0, -far}).Z; abs(z-1) > 1e-3 {
		t.Errorf("far plane depth: got %v, want 1", z)
	}
}

func TestOrthographic(t *testing.T) {
	m := Orthographic(-1, 1, -1, 1, -1, 1)
	want := Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, -0.5, 0,
		0, 0, 0.5, 1,
	}
	if !m.ApproxEqual(want, 1e-6) {
		t.Errorf("Orthographic: got %v, want %v", m, want)
	}

	m = Orthographic(0, 10, 0, 20, 1, 5)
	tests := []struct {
		in, want Vec3
	}{
		{Vec3{0, 0, -1}, Vec3{-1, -1, 0}},
		{Vec3{10, 20, -5}, Vec3{1, 1, 1}},
		{Vec3{5, 10, -3}, Vec3{0, 0, 0.5}},
	}
	for _, tt := range tests {
		if got := m.TransformPoint(tt.in); got.Distance(tt.want) > 1e-5 {
			t.Errorf("Orthographic(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInverse(t *testing.T) {
	m := FromTRS(Vec3{1, -2, 3}, QuatFromAxisAngle(Vec3{0, 0, 1}, 1.1), Vec3{1, 2, 3})

	if got := m.Mul(m.Inverse()); !got.ApproxEqual(Identity(), 1e-5) {
		t.Errorf("M * M^-1 should be identity, got %v", got)
	}
	p := Vec3{4, 5, 6}
	if got := m.Inverse().TransformPoint(m.TransformPoint(p)); got.Distance(p) > 1e-4 {
		t.Errorf("round trip: got %v, want %v", got, p)
	}
}

func TestInverseSingular(t *testing.T) {
	if got := Scale(0, 1, 1).Inverse(); got != Identity() {
		t.Errorf("singular inverse should be identity, got %v", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 || tr[12] != 0 {
		t.Errorf("Transpose: got %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("transposing twice should return the original")
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		t    Vec3
		r    Quat
		s    Vec3
	}{
		{"identity", Vec3{}, QuatIdentity(), Vec3One()},
		{"translation only", Vec3{1, 2, 3}, QuatIdentity(), Vec3One()},
		{"non-uniform scale", Vec3{}, QuatIdentity(), Vec3{1, 2, 3}},
		{"rotation", Vec3{0, 1, 0}, QuatFromAxisAngle(Vec3{1, 2, 3}.Normalize(), 0.8), Vec3One()},
		{"all", Vec3{4, 5, 6}, QuatFromAxisAngle(Vec3{0, 1, 0}, -1.2), Vec3{0.5, 1.5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, r, tr := FromTRS(tt.t, tt.r, tt.s).Decompose()
			if s.Distance(tt.s) > 1e-4 {
				t.Errorf("scale: got %v, want %v", s, tt.s)
			}
			if tr.Distance(tt.t) > 1e-5 {
				t.Errorf("translation: got %v, want %v", tr, tt.t)
			}
			if d := abs(r.Dot(tt.r)); abs(d-1) > 1e-4 {
				t.Errorf("rotation: got %v, want %v", r, tt.r)
			}
		})
	}
}

func TestDecomposeNegativeDeterminant(t *testing.T) {
	s, _, _ := Scale(-2, 1, 1).Decompose()
	if abs(s.X+2) > 1e-5 || abs(s.Y-1) > 1e-5 || abs(s.Z-1) > 1e-5 {
		t.Errorf("scale: got %v, want (-2, 1, 1)", s)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

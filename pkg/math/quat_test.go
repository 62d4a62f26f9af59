package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatLerpDoesNotNormalize(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi))

	got := q1.Lerp(q2, 0.5)
	want := Quat{X: 0, Y: 0.5, Z: 0, W: 0.5}
	if abs(got.X-want.X) > 1e-6 || abs(got.Y-want.Y) > 1e-6 || abs(got.Z-want.Z) > 1e-6 || abs(got.W-want.W) > 1e-6 {
		t.Errorf("Lerp at t=0.5: got %v, want %v", got, want)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatToMat4MatchesMathgl(t *testing.T) {
	axis := Vec3{1, 2, 3}.Normalize()
	q := QuatFromAxisAngle(axis, 0.9)
	want := Mat4(mgl32.HomogRotate3D(0.9, mgl32.Vec3{axis.X, axis.Y, axis.Z}))
	if !q.ToMat4().ApproxEqual(want, 1e-5) {
		t.Errorf("ToMat4: got %v, want %v", q.ToMat4(), want)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Should have Y component and W = cos(45deg)
	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatMulOrder(t *testing.T) {
	rx := QuatFromAxisAngle(Vec3{1, 0, 0}, 0.5)
	ry := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.25)

	got := rx.Mul(ry).ToMat4()
	want := rx.ToMat4().Mul(ry.ToMat4())
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
}

func TestQuatFromMat4(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, 2.5)
	got := QuatFromMat4(q.ToMat4())
	if abs(abs(got.Dot(q))-1) > 1e-5 {
		t.Errorf("QuatFromMat4: got %v, want %v", got, q)
	}
}

func TestQuatBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
	}{
		{"x to y", Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"x to xz", Vec3{1, 0, 0}, Vec3{1, 0, 1}},
		{"unnormalized", Vec3{0, 3, 0}, Vec3{0, 0, -2}},
		{"same", Vec3{0, 0, 1}, Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatBetween(tt.from, tt.to)
			got := q.ToMat4().TransformDirection(tt.from.Normalize())
			if got.Distance(tt.to.Normalize()) > 1e-4 {
				t.Errorf("rotated %v to %v, want %v", tt.from, got, tt.to.Normalize())
			}
		})
	}
}

func TestQuatBetweenNegative45AboutY(t *testing.T) {
	q := QuatBetween(Vec3{1, 0, 0}, Vec3{1, 0, 1})
	want := QuatFromAxisAngle(Vec3{0, 1, 0}, -math.Pi/4)
	if abs(q.Dot(want)-1) > 1e-5 {
		t.Errorf("QuatBetween: got %v, want %v", q, want)
	}
}

func TestEulerZYXRoundTrip(t *testing.T) {
	tests := []struct {
		z, y, x float32
	}{
		{0, 0, 0},
		{0.3, 0.2, 0.1},
		{-1.2, 0.4, 2.0},
		{0, 1.0, 0},
	}

	for _, tt := range tests {
		q := QuatFromEulerZYX(tt.z, tt.y, tt.x)
		z, y, x := q.EulerZYX()
		if abs(z-tt.z) > 1e-4 || abs(y-tt.y) > 1e-4 || abs(x-tt.x) > 1e-4 {
			t.Errorf("EulerZYX(%v, %v, %v): got (%v, %v, %v)", tt.z, tt.y, tt.x, z, y, x)
		}
	}
}

func TestQuatFromEulerZYXOrder(t *testing.T) {
	q := QuatFromEulerZYX(0.3, 0.2, 0.1)
	want := QuatFromAxisAngle(Vec3{0, 0, 1}, 0.3).
		Mul(QuatFromAxisAngle(Vec3{0, 1, 0}, 0.2)).
		Mul(QuatFromAxisAngle(Vec3{1, 0, 0}, 0.1))
	if abs(q.Dot(want)-1) > 1e-5 {
		t.Errorf("QuatFromEulerZYX: got %v, want %v", q, want)
	}

	m := mgl32.AnglesToQuat(0.3, 0.2, 0.1, mgl32.ZYX)
	if abs(m.W-q.W) > 1e-6 || abs(m.V[0]-q.X) > 1e-6 {
		t.Errorf("QuatFromEulerZYX should match mathgl, got %v want %v", q, m)
	}
}

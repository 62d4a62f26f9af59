package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a 4x4 matrix in column-major order for column vectors.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// The flat layout is identical to a row-major matrix written for row vectors
// (p' = p * M), so rows read from row-vector data map onto columns here and
// a.Mul(b) corresponds to b * a in that convention.
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns an OpenGL style perspective projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// Orthographic returns a right handed orthographic projection that maps
// depth from [near, far] onto [0, 1].
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	nf := 1 / (near - far)
	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, nf, 0,
		-(right + left) * rl, -(top + bottom) * tb, near * nf, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// TranslateVec3 returns a translation matrix for t.
func TranslateVec3(t Vec3) Mat4 {
	return Translate(t.X, t.Y, t.Z)
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// ScaleVec3 returns a scale matrix for s.
func ScaleVec3(s Vec3) Mat4 {
	return Scale(s.X, s.Y, s.Z)
}

// FromTRS composes translation, rotation and scale.
// Points are scaled first, then rotated, then translated.
func FromTRS(t Vec3, r Quat, s Vec3) Mat4 {
	return TranslateVec3(t).Mul(r.ToMat4()).Mul(ScaleVec3(s))
}

// Decompose splits an affine matrix into scale, rotation and translation.
// A negative determinant is folded into the X scale.
func (m Mat4) Decompose() (scale Vec3, rotation Quat, translation Vec3) {
	cx := Vec3{m[0], m[1], m[2]}
	cy := Vec3{m[4], m[5], m[6]}
	cz := Vec3{m[8], m[9], m[10]}

	sx := cx.Length()
	if cx.Dot(cy.Cross(cz)) < 0 {
		sx = -sx
	}
	scale = Vec3{sx, cy.Length(), cz.Length()}
	translation = m.Translation()

	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return scale, QuatIdentity(), translation
	}

	cx = cx.Scale(1 / scale.X)
	cy = cy.Scale(1 / scale.Y)
	cz = cz.Scale(1 / scale.Z)
	rotation = QuatFromMat4(Mat4{
		cx.X, cx.Y, cx.Z, 0,
		cy.X, cy.Y, cy.Z, 0,
		cz.X, cz.Y, cz.Z, 0,
		0, 0, 0, 1,
	})
	return scale, rotation, translation
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := range m {
		d := m[i] - other[i]
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(other)))
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Col returns column i (0-3).
func (m Mat4) Col(i int) Vec4 {
	return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return m.Col(3).XYZ()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4(mgl32.Mat4(m).Transpose())
}

// MulVec4 multiplies the matrix by a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v)))
}

// Inverse returns the inverse of the matrix.
// Returns identity if the matrix is singular.
func (m Mat4) Inverse() Mat4 {
	g := mgl32.Mat4(m)
	if g.Det() == 0 {
		return Identity()
	}
	return Mat4(g.Inv())
}

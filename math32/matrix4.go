// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Matrix4FromMatrix3 returns a [Matrix4] holding the given rotation
// part and no translation.
func Matrix4FromMatrix3(m *Matrix3) Matrix4 {
	return Matrix4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		0, 0, 0, 1,
	}
}

// Translation returns a translation matrix.
func Translation(v Vector3) Matrix4 {
	m := Identity4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Mul returns this matrix times other matrix (this matrix is on the left).
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[k*4+row] * other[c*4+k]
			}
			r[c*4+row] = s
		}
	}
	return r
}

// Perspective returns a perspective projection matrix for the
// given vertical field of view in degrees, aspect ratio and
// near and far planes.
func Perspective(fov, aspect, near, far float32) Matrix4 {
	f := 1 / Tan(DegToRad(fov)/2)
	nf := 1 / (near - far)
	return Matrix4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAt returns a view matrix for an eye at the given position
// looking at target with the given up direction.
func LookAt(eye, target, up Vector3) Matrix4 {
	f := target.Sub(eye).Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	return Matrix4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// WithoutTranslation returns the matrix with its translation
// column cleared, as used for camera-anchored geometry like skyboxes.
func (m Matrix4) WithoutTranslation() Matrix4 {
	m3 := Matrix3FromMatrix4(&m)
	return Matrix4FromMatrix3(&m3)
}

// Slice returns the matrix elements in column-major order.
func (m *Matrix4) Slice() []float32 {
	return m[:]
}

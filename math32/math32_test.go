// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const standardTol = 1.0e-6

func TestMatrix4Mul(t *testing.T) {
	id := Identity4()
	tr := Translation(Vec3(1, 2, 3))
	assert.Equal(t, tr, id.Mul(tr))
	assert.Equal(t, tr, tr.Mul(id))

	p := Vec4(1, 1, 1, 1).MulMatrix4(&tr)
	assert.Equal(t, Vec4(2, 3, 4, 1), p)

	both := tr.Mul(Translation(Vec3(-1, -2, -3)))
	assert.Equal(t, id, both)
}

func TestWithoutTranslation(t *testing.T) {
	tr := Translation(Vec3(5, 6, 7))
	assert.Equal(t, Identity4(), tr.WithoutTranslation())
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3(0, 0, 5), Vec3(0, 0, 0), Vec3(0, 1, 0))
	p := Vec4(0, 0, 0, 1).MulMatrix4(&m)
	assert.InDelta(t, 0, p.X, standardTol)
	assert.InDelta(t, 0, p.Y, standardTol)
	assert.InDelta(t, -5, p.Z, standardTol)
}

func TestPerspective(t *testing.T) {
	m := Perspective(90, 1, 1, 10)
	assert.InDelta(t, 1, m[0], standardTol)
	assert.InDelta(t, 1, m[5], standardTol)
	assert.Equal(t, float32(-1), m[11])
}

func TestVector3(t *testing.T) {
	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	assert.InDelta(t, 1, Vec3(3, 4, 0).Normal().Length(), standardTol)
	assert.Equal(t, Vector3{}, Vector3{}.Normal())
}

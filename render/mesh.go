// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"unsafe"

	"github.com/egospodinova/amber-engine/gpu"
)

// Object is anything that can be drawn: it has a [Mesh].
type Object interface {
	Mesh() *Mesh
}

// Primitives are the primitive types meshes are drawn as.
type Primitives int32

const (
	Triangles Primitives = iota
	TriangleStrip
	Lines
	LineStrip
	Points
)

// Mesh is vertex data with optional indexes. The mesh pointer is the
// identity renderers key its prepared buffers by.
type Mesh struct {
	Name string

	// Vertices are the interleaved vertex attributes.
	Vertices []float32

	// Indices are the vertex indexes of indexed meshes.
	Indices []uint32

	// Layout describes the vertex attributes. If it has no attributes,
	// the layout of the program drawing the mesh is used.
	Layout gpu.Layout

	Mode Primitives
}

// Mesh returns the mesh itself, so that a Mesh is an [Object].
func (ms *Mesh) Mesh() *Mesh { return ms }

// VertexCount returns the number of vertices, according to the
// stride of the given layout.
func (ms *Mesh) VertexCount(layout gpu.Layout) int {
	stride := layout.VertexStride()
	if stride == 0 {
		return 0
	}
	return len(ms.Vertices) * 4 / stride
}

// DrawCount returns the number of indexes of indexed meshes and
// otherwise the number of vertices.
func (ms *Mesh) DrawCount(layout gpu.Layout) int {
	if len(ms.Indices) > 0 {
		return len(ms.Indices)
	}
	return ms.VertexCount(layout)
}

// VertexBytes returns the vertices as bytes, sharing their memory.
func (ms *Mesh) VertexBytes() []byte {
	if len(ms.Vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&ms.Vertices[0])), len(ms.Vertices)*4)
}

// IndexBytes returns the indexes as bytes, sharing their memory.
func (ms *Mesh) IndexBytes() []byte {
	if len(ms.Indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&ms.Indices[0])), len(ms.Indices)*4)
}

// StandardLayout returns the layout of meshes with a position, a normal
// and texture coordinates per vertex, at locations 0, 1 and 2.
func StandardLayout() gpu.Layout {
	var ly gpu.Layout
	ly.Add(0, 3).Add(1, 3).Add(2, 2)
	return ly
}

// PositionLayout returns the layout of meshes with only a position per
// vertex, at location 0.
func PositionLayout() gpu.Layout {
	var ly gpu.Layout
	ly.Add(0, 3)
	return ly
}

// NewCube returns a unit cube of 36 position-only vertices centered at
// the origin, with faces wound counter-clockwise when seen from outside.
func NewCube() *Mesh {
	ms := &Mesh{Name: "cube", Layout: PositionLayout()}
	// each face: normal axis, and two in-plane axes (u, v) with u x v = normal
	faces := [6][3][3]float32{
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		for _, c := range corners {
			for i := range 3 {
				ms.Vertices = append(ms.Vertices, n[i]+c[0]*u[i]+c[1]*v[i])
			}
		}
	}
	return ms
}

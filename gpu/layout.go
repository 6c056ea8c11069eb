// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Types are the component types of vertex attributes.
type Types int32

const (
	Float32 Types = iota
	Int32
	Uint32
	Uint16
	Uint8
)

var typeNames = []string{"Float32", "Int32", "Uint32", "Uint16", "Uint8"}

func (tp Types) String() string { return enumString(tp, typeNames, "Types") }

// Bytes returns the size of one component in bytes.
func (tp Types) Bytes() int {
	switch tp {
	case Uint16:
		return 2
	case Uint8:
		return 1
	}
	return 4
}

// Attribute describes how one shader input is read from a vertex buffer.
type Attribute struct {
	// Index is the shader input location.
	Index uint32

	// Components is the number of components per vertex (1-4).
	Components int

	// Type is the component type; the zero value is Float32.
	Type Types

	// Normalized maps integer components to [0, 1] or [-1, 1].
	Normalized bool

	// Offset is the byte offset of the first component within a vertex.
	Offset int
}

// Layout describes how vertex buffer data maps into shader inputs.
type Layout struct {
	// Attributes are the shader inputs read from the vertex buffer.
	Attributes []Attribute

	// Stride is the number of bytes between consecutive vertices.
	// If 0, the attributes are tightly packed in order.
	Stride int
}

// VertexStride returns the effective stride: [Layout.Stride] if set,
// otherwise the packed size of all attributes.
func (ly *Layout) VertexStride() int {
	if ly.Stride > 0 {
		return ly.Stride
	}
	n := 0
	for _, at := range ly.Attributes {
		n += at.Components * at.Type.Bytes()
	}
	return n
}

// Add appends an attribute of the given location and float32 component
// count, placed right after the previously added one.
func (ly *Layout) Add(index uint32, components int) *Layout {
	off := 0
	if n := len(ly.Attributes); n > 0 {
		last := ly.Attributes[n-1]
		off = last.Offset + last.Components*last.Type.Bytes()
	}
	ly.Attributes = append(ly.Attributes, Attribute{Index: index, Components: components, Offset: off})
	return ly
}

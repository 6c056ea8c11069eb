// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// BufferTypes are the kinds of buffers, which determine the
// binding point a buffer is attached to.
type BufferTypes int32

const (
	// VertexBuffer holds per-vertex attribute data.
	VertexBuffer BufferTypes = iota

	// IndexBuffer holds element indexes for indexed drawing.
	IndexBuffer

	// UniformBuffer holds a block of shader constants, and can be
	// bound at any of the numbered uniform binding points.
	UniformBuffer

	// StorageBuffer holds read-write shader storage, and can be
	// bound at any of the numbered storage binding points.
	StorageBuffer

	// PixelPackBuffer is the destination of pixel reads.
	PixelPackBuffer

	// PixelUnpackBuffer is the source of pixel uploads.
	PixelUnpackBuffer
)

var bufferTypeNames = []string{"VertexBuffer", "IndexBuffer", "UniformBuffer", "StorageBuffer", "PixelPackBuffer", "PixelUnpackBuffer"}

func (bt BufferTypes) String() string { return enumString(bt, bufferTypeNames, "BufferTypes") }

// IsIndexed returns whether buffers of this type are bound at a
// numbered binding point, so that their bind slot is significant.
func (bt BufferTypes) IsIndexed() bool {
	return bt == UniformBuffer || bt == StorageBuffer
}

// UsagePatterns are hints about how often a buffer's data is
// changed and in which direction it flows.
type UsagePatterns int32

const (
	StreamDraw UsagePatterns = iota
	StreamRead
	StreamCopy
	StaticDraw
	StaticRead
	StaticCopy
	DynamicDraw
	DynamicRead
	DynamicCopy
)

var usageNames = []string{"StreamDraw", "StreamRead", "StreamCopy", "StaticDraw", "StaticRead", "StaticCopy", "DynamicDraw", "DynamicRead", "DynamicCopy"}

func (up UsagePatterns) String() string { return enumString(up, usageNames, "UsagePatterns") }

// Buffer is linear GPU memory of a fixed capacity.
type Buffer interface {
	Bindable

	// Assign uploads data into the buffer starting at offset.
	// offset+len(data) must not exceed the capacity.
	Assign(offset int, data []byte) error

	// Migrate copies the content of this buffer into other, up to
	// the smaller of the two capacities.
	Migrate(other Buffer) error

	// Resize reallocates the buffer to the given capacity, preserving
	// the content that fits within it.
	Resize(capacity int) error

	// Clear zeroes the content of the buffer without reallocating.
	Clear() error

	// Capacity returns the size of the buffer storage in bytes.
	Capacity() int

	// IsNull returns whether the buffer holds no native object.
	IsNull() bool

	// SetBindSlot sets the slot used by Bind.
	// It fails with [ErrBindState] while the buffer is bound.
	SetBindSlot(slot uint32) error

	// Type returns the buffer type.
	Type() BufferTypes

	// SetType changes the buffer type.
	// It fails with [ErrBindState] while the buffer is bound.
	SetType(typ BufferTypes) error

	// Release deletes the native object. It is safe to call more than once.
	Release()
}

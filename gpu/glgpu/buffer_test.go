// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"errors"
	"math"
	"testing"

	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
	"github.com/egospodinova/amber-engine/gpu/gl/softgl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDevice() (*Device, *softgl.Context) {
	c := softgl.New()
	return NewDevice(c), c
}

func TestBufferAssign(t *testing.T) {
	dev, c := newTestDevice()
	bf, err := NewBuffer(dev, gpu.VertexBuffer, 8, []byte{1, 2}, gpu.StaticDraw)
	require.NoError(t, err)
	assert.Equal(t, 8, bf.Capacity())
	assert.Equal(t, uint32(gl.STATIC_DRAW), c.BufferUsage(bf.Handle()))
	assert.Equal(t, []byte{1, 2, 0, 0, 0, 0, 0, 0}, c.BufferContents(bf.Handle()))

	require.NoError(t, bf.Assign(6, []byte{7, 8}))
	assert.Equal(t, []byte{1, 2, 0, 0, 0, 0, 7, 8}, c.BufferContents(bf.Handle()))

	err = bf.Assign(7, []byte{1, 2})
	assert.True(t, errors.Is(err, gpu.ErrOutOfRange))
	assert.True(t, errors.Is(bf.Assign(-1, nil), gpu.ErrOutOfRange))
	assert.True(t, errors.Is(bf.Assign(math.MaxInt, []byte{1}), gpu.ErrOutOfRange))
	assert.Equal(t, []byte{1, 2, 0, 0, 0, 0, 7, 8}, c.BufferContents(bf.Handle()))
	assert.NoError(t, bf.Assign(8, nil))

	require.NoError(t, bf.Clear())
	assert.Equal(t, make([]byte, 8), c.BufferContents(bf.Handle()))

	_, err = NewBuffer(dev, gpu.VertexBuffer, 1, []byte{1, 2}, gpu.StaticDraw)
	assert.True(t, errors.Is(err, gpu.ErrOutOfRange))
	assert.Empty(t, c.Errors())
}

func TestBufferResize(t *testing.T) {
	dev, c := newTestDevice()
	bf, err := NewBuffer(dev, gpu.VertexBuffer, 4, []byte{1, 2, 3, 4}, gpu.DynamicDraw)
	require.NoError(t, err)
	require.NoError(t, bf.Bind())
	old := bf.Handle()

	require.NoError(t, bf.Resize(6))
	assert.NotEqual(t, old, bf.Handle())
	assert.False(t, c.IsBuffer(old))
	assert.Equal(t, []byte{1, 2, 3, 4, 0, 0}, c.BufferContents(bf.Handle()))
	assert.True(t, bf.IsBound())
	assert.Equal(t, bf.Handle(), c.BoundBuffer(gl.ARRAY_BUFFER))
	assert.Equal(t, uint32(gl.DYNAMIC_DRAW), c.BufferUsage(bf.Handle()))

	require.NoError(t, bf.Resize(2))
	assert.Equal(t, []byte{1, 2}, c.BufferContents(bf.Handle()))
	assert.Equal(t, 2, bf.Capacity())
	assert.Empty(t, c.Errors())
}

func TestBufferBinding(t *testing.T) {
	dev, c := newTestDevice()
	a, err := NewBuffer(dev, gpu.UniformBuffer, 16, nil, gpu.DynamicDraw)
	require.NoError(t, err)
	b, err := NewBuffer(dev, gpu.UniformBuffer, 16, nil, gpu.DynamicDraw)
	require.NoError(t, err)

	require.NoError(t, a.SetBindSlot(2))
	require.NoError(t, a.Bind())
	assert.Equal(t, a.Handle(), c.BoundBufferBase(gl.UNIFORM_BUFFER, 2))
	assert.Same(t, a, dev.BoundBuffer(gpu.UniformBuffer, 2))

	err = a.SetBindSlot(3)
	assert.True(t, errors.Is(err, gpu.ErrBindState))
	assert.Equal(t, uint32(2), a.BindSlot())
	assert.True(t, errors.Is(a.SetType(gpu.StorageBuffer), gpu.ErrBindState))

	// another buffer at the same slot displaces the first
	require.NoError(t, b.SetBindSlot(2))
	require.NoError(t, b.Bind())
	assert.False(t, a.IsBound())
	assert.True(t, b.IsBound())
	assert.Same(t, b, dev.BoundBuffer(gpu.UniformBuffer, 2))

	require.NoError(t, a.SetBindSlot(3))
	require.NoError(t, a.Bind())
	assert.True(t, a.IsBound())
	assert.True(t, b.IsBound())

	require.NoError(t, b.Unbind())
	require.NoError(t, b.Unbind())
	assert.False(t, b.IsBound())
	assert.Nil(t, dev.BoundBuffer(gpu.UniformBuffer, 2))
	assert.Zero(t, c.BoundBufferBase(gl.UNIFORM_BUFFER, 2))

	a.Release()
	assert.True(t, a.IsNull())
	assert.Nil(t, dev.BoundBuffer(gpu.UniformBuffer, 3))
	a.Release()
	assert.True(t, errors.Is(a.Bind(), gpu.ErrNullResource))
	assert.Empty(t, c.Errors())
}

func TestBufferRebindSlot(t *testing.T) {
	dev, c := newTestDevice()
	bf, err := NewBuffer(dev, gpu.UniformBuffer, 16, nil, gpu.DynamicDraw)
	require.NoError(t, err)
	require.NoError(t, bf.Bind())

	assert.True(t, errors.Is(bf.SetBindSlot(1), gpu.ErrBindState))
	require.NoError(t, bf.Unbind())
	require.NoError(t, bf.SetBindSlot(1))
	require.NoError(t, bf.Bind())
	assert.Equal(t, uint32(1), bf.BindSlot())
	assert.Equal(t, bf.Handle(), c.BoundBufferBase(gl.UNIFORM_BUFFER, 1))
	assert.Zero(t, c.BoundBufferBase(gl.UNIFORM_BUFFER, 0))
	assert.Empty(t, c.Errors())
}

func TestBufferMapping(t *testing.T) {
	dev, c := newTestDevice()
	bf, err := NewBuffer(dev, gpu.StorageBuffer, 4, []byte{1, 2, 3, 4}, gpu.DynamicCopy)
	require.NoError(t, err)

	m, err := bf.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, m.Bytes)
	m.Bytes[0] = 9
	assert.True(t, errors.Is(bf.Assign(0, []byte{1}), gpu.ErrBindState))
	_, err = bf.Data()
	assert.True(t, errors.Is(err, gpu.ErrBindState))
	require.NoError(t, m.Unmap())
	require.NoError(t, m.Unmap())
	assert.Equal(t, []byte{9, 2, 3, 4}, c.BufferContents(bf.Handle()))

	require.NoError(t, bf.WithData(func(data []byte) { data[3] = 7 }))
	assert.Equal(t, []byte{9, 2, 3, 7}, c.BufferContents(bf.Handle()))
	assert.Empty(t, c.Errors())
}

func TestBufferCopies(t *testing.T) {
	dev, c := newTestDevice()
	src, err := NewBuffer(dev, gpu.VertexBuffer, 4, []byte{1, 2, 3, 4}, gpu.StaticDraw)
	require.NoError(t, err)
	dst, err := NewBuffer(dev, gpu.VertexBuffer, 2, nil, gpu.StaticDraw)
	require.NoError(t, err)

	require.NoError(t, src.Migrate(dst))
	assert.Equal(t, []byte{1, 2}, c.BufferContents(dst.Handle()))

	other, _ := newTestDevice()
	ob, err := NewBuffer(other, gpu.VertexBuffer, 4, nil, gpu.StaticDraw)
	require.NoError(t, err)
	assert.True(t, errors.Is(src.Migrate(ob), gpu.ErrUnsupported))

	require.NoError(t, src.SetBindSlot(1))
	cl, err := src.Clone()
	require.NoError(t, err)
	assert.NotEqual(t, src.Handle(), cl.Handle())
	assert.Equal(t, uint32(1), cl.BindSlot())
	assert.Equal(t, []byte{1, 2, 3, 4}, c.BufferContents(cl.Handle()))

	require.NoError(t, src.Bind())
	h := src.Handle()
	mv := src.Move()
	assert.True(t, src.IsNull())
	assert.False(t, src.IsBound())
	assert.Equal(t, h, mv.Handle())
	assert.True(t, mv.IsBound())
	assert.Same(t, mv, dev.BoundBuffer(gpu.VertexBuffer, 0))
	assert.True(t, errors.Is(src.Assign(0, nil), gpu.ErrNullResource))
	assert.Empty(t, c.Errors())
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
)

// Buffer is a GL buffer object. Its storage is written through the
// copy targets, so that changing its content never disturbs the
// buffers bound at the typed binding points.
type Buffer struct {
	Object
	typ      gpu.BufferTypes
	usage    gpu.UsagePatterns
	capacity int
	slot     uint32
	bound    bool
	mapping  *Mapping
}

var _ gpu.Buffer = (*Buffer)(nil)

// NewBuffer returns a new buffer of the given type and capacity in bytes,
// holding a copy of data followed by zeros. data must fit within capacity.
func NewBuffer(dev *Device, typ gpu.BufferTypes, capacity int, data []byte, usage gpu.UsagePatterns) (*Buffer, error) {
	if _, err := BufferTarget(typ); err != nil {
		return nil, errors.Log(err)
	}
	if capacity < 0 || len(data) > capacity {
		return nil, errors.Log(errors.Errorf("glgpu: NewBuffer: %d bytes of data for capacity %d: %w", len(data), capacity, gpu.ErrOutOfRange))
	}
	bf := &Buffer{typ: typ, usage: usage}
	bf.dev = dev
	h, err := bf.allocate(capacity, data)
	if err != nil {
		return nil, err
	}
	bf.handle = h
	bf.capacity = capacity
	return bf, nil
}

// allocate returns a new GL buffer with the buffer's usage.
func (bf *Buffer) allocate(capacity int, data []byte) (uint32, error) {
	usage, err := Usage(bf.usage)
	if err != nil {
		return 0, errors.Log(err)
	}
	c := bf.dev.GL
	h := c.GenBuffer()
	c.BindBuffer(gl.COPY_WRITE_BUFFER, h)
	c.BufferData(gl.COPY_WRITE_BUFFER, capacity, data, usage)
	c.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	if err := bf.dev.check("allocating buffer"); err != nil {
		c.DeleteBuffer(h)
		return 0, err
	}
	return h, nil
}

// usable returns an error if the buffer can not be read or written.
func (bf *Buffer) usable(op string) error {
	if bf.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Buffer.%s: %w", op, gpu.ErrNullResource))
	}
	if bf.mapping != nil {
		return errors.Log(errors.Errorf("glgpu: Buffer.%s: buffer is mapped: %w", op, gpu.ErrBindState))
	}
	return nil
}

func (bf *Buffer) Type() gpu.BufferTypes { return bf.typ }

// Usage returns the usage pattern of the buffer.
func (bf *Buffer) Usage() gpu.UsagePatterns { return bf.usage }

func (bf *Buffer) Capacity() int { return bf.capacity }

func (bf *Buffer) IsBound() bool { return bf.bound }

func (bf *Buffer) BindType() gpu.BindTypes { return gpu.BindBuffer }

func (bf *Buffer) BindSlot() uint32 { return bf.slot }

func (bf *Buffer) Assign(offset int, data []byte) error {
	if err := bf.usable("Assign"); err != nil {
		return err
	}
	if offset < 0 || len(data) > bf.capacity-offset {
		return errors.Log(errors.Errorf("glgpu: Buffer.Assign: %d bytes at %d for capacity %d: %w", len(data), offset, bf.capacity, gpu.ErrOutOfRange))
	}
	if len(data) == 0 {
		return nil
	}
	c := bf.dev.GL
	c.BindBuffer(gl.COPY_WRITE_BUFFER, bf.handle)
	c.BufferSubData(gl.COPY_WRITE_BUFFER, offset, data)
	c.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	return bf.dev.check("Buffer.Assign")
}

// Migrate copies the content of the buffer into other, which must be a
// [*Buffer] of the same device, up to the smaller of the two capacities.
func (bf *Buffer) Migrate(other gpu.Buffer) error {
	ob, ok := other.(*Buffer)
	if !ok || ob.dev != bf.dev {
		return errors.Log(errors.Errorf("glgpu: Buffer.Migrate: buffer of another device: %w", gpu.ErrUnsupported))
	}
	if err := bf.usable("Migrate"); err != nil {
		return err
	}
	if err := ob.usable("Migrate"); err != nil {
		return err
	}
	bf.copyTo(ob.handle, min(bf.capacity, ob.capacity))
	return bf.dev.check("Buffer.Migrate")
}

// copyTo copies the first n bytes of the buffer into the GL buffer dst.
func (bf *Buffer) copyTo(dst uint32, n int) {
	if n <= 0 {
		return
	}
	c := bf.dev.GL
	c.BindBuffer(gl.COPY_READ_BUFFER, bf.handle)
	c.BindBuffer(gl.COPY_WRITE_BUFFER, dst)
	c.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, 0, 0, n)
	c.BindBuffer(gl.COPY_READ_BUFFER, 0)
	c.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
}

// Resize reallocates the buffer with the given capacity. The first
// min(old, new) bytes are preserved and the rest is zero. A bound
// buffer stays bound.
func (bf *Buffer) Resize(capacity int) error {
	if err := bf.usable("Resize"); err != nil {
		return err
	}
	if capacity < 0 {
		return errors.Log(errors.Errorf("glgpu: Buffer.Resize: capacity %d: %w", capacity, gpu.ErrOutOfRange))
	}
	if capacity == bf.capacity {
		return nil
	}
	h, err := bf.allocate(capacity, nil)
	if err != nil {
		return err
	}
	bf.copyTo(h, min(bf.capacity, capacity))
	if err := bf.dev.check("Buffer.Resize"); err != nil {
		bf.dev.GL.DeleteBuffer(h)
		return err
	}
	bf.dev.GL.DeleteBuffer(bf.handle)
	bf.handle, bf.capacity = h, capacity
	if bf.bound {
		return bf.Bind()
	}
	return nil
}

func (bf *Buffer) Clear() error {
	if err := bf.usable("Clear"); err != nil {
		return err
	}
	return bf.Assign(0, make([]byte, bf.capacity))
}

// Clone returns a new buffer with the same type, usage, bind slot and
// content. The clone is not bound.
func (bf *Buffer) Clone() (*Buffer, error) {
	if err := bf.usable("Clone"); err != nil {
		return nil, err
	}
	nb, err := NewBuffer(bf.dev, bf.typ, bf.capacity, nil, bf.usage)
	if err != nil {
		return nil, err
	}
	nb.slot = bf.slot
	if err := bf.Migrate(nb); err != nil {
		nb.Release()
		return nil, err
	}
	return nb, nil
}

// Move returns a new Buffer owning the GL buffer, taking over its
// bindings and mapping, and leaves this buffer null.
func (bf *Buffer) Move() *Buffer {
	nb := &Buffer{typ: bf.typ, usage: bf.usage, capacity: bf.capacity, slot: bf.slot, bound: bf.bound, mapping: bf.mapping}
	nb.dev = bf.dev
	nb.handle = bf.take()
	if nb.mapping != nil {
		nb.mapping.buf = nb
	}
	for slot, b := range bf.dev.buffers {
		if b == bf {
			bf.dev.buffers[slot] = nb
		}
	}
	bf.bound, bf.mapping, bf.capacity = false, nil, 0
	return nb
}

// bindingSlot returns the binding point of the buffer.
func (bf *Buffer) bindingSlot() (bufferSlot, error) {
	target, err := BufferTarget(bf.typ)
	if err != nil {
		return bufferSlot{}, err
	}
	if !bf.typ.IsIndexed() {
		return bufferSlot{target: target}, nil
	}
	return bufferSlot{target, bf.slot}, nil
}

// Bind binds the buffer at its binding point: the type's target, and
// for indexed types the bind slot of that target.
func (bf *Buffer) Bind() error {
	if bf.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Buffer.Bind: %w", gpu.ErrNullResource))
	}
	bs, err := bf.bindingSlot()
	if err != nil {
		return errors.Log(err)
	}
	if bf.typ.IsIndexed() {
		bf.dev.GL.BindBufferBase(bs.target, bs.index, bf.handle)
	} else {
		bf.dev.GL.BindBuffer(bs.target, bf.handle)
	}
	if err := bf.dev.check("Buffer.Bind"); err != nil {
		return err
	}
	bf.dev.bindBuffer(bf, bs)
	return nil
}

// Unbind clears the binding point of the buffer if it is bound.
func (bf *Buffer) Unbind() error {
	if !bf.bound {
		return nil
	}
	bs, err := bf.bindingSlot()
	if err != nil {
		return errors.Log(err)
	}
	if bf.typ.IsIndexed() {
		bf.dev.GL.BindBufferBase(bs.target, bs.index, 0)
	} else {
		bf.dev.GL.BindBuffer(bs.target, 0)
	}
	bf.dev.unbindBuffer(bf, bs)
	return bf.dev.check("Buffer.Unbind")
}

func (bf *Buffer) SetBindSlot(slot uint32) error {
	if bf.bound {
		return errors.Log(errors.Errorf("glgpu: Buffer.SetBindSlot: buffer is bound at slot %d: %w", bf.slot, gpu.ErrBindState))
	}
	bf.slot = slot
	return nil
}

func (bf *Buffer) SetType(typ gpu.BufferTypes) error {
	if bf.bound {
		return errors.Log(errors.Errorf("glgpu: Buffer.SetType: buffer is bound as %v: %w", bf.typ, gpu.ErrBindState))
	}
	if _, err := BufferTarget(typ); err != nil {
		return errors.Log(err)
	}
	bf.typ = typ
	return nil
}

// Release unmaps, unbinds and deletes the GL buffer.
func (bf *Buffer) Release() {
	if bf.handle == 0 {
		return
	}
	if bf.mapping != nil {
		errors.Log(bf.mapping.Unmap())
	}
	errors.Log(bf.Unbind())
	bf.dev.GL.DeleteBuffer(bf.take())
	bf.capacity = 0
}

// Mapping is exclusive access to the storage of a mapped buffer.
// The buffer can not be otherwise used until [Mapping.Unmap] is called.
type Mapping struct {
	buf *Buffer

	// Bytes is the mapped storage. It is only valid until Unmap.
	Bytes []byte
}

// Data maps the whole storage of the buffer for reading and writing.
func (bf *Buffer) Data() (*Mapping, error) {
	if err := bf.usable("Data"); err != nil {
		return nil, err
	}
	if bf.capacity == 0 {
		return nil, errors.Log(errors.Errorf("glgpu: Buffer.Data: empty buffer: %w", gpu.ErrOutOfRange))
	}
	c := bf.dev.GL
	c.BindBuffer(gl.COPY_WRITE_BUFFER, bf.handle)
	b := c.MapBufferRange(gl.COPY_WRITE_BUFFER, 0, bf.capacity, gl.MAP_READ_BIT|gl.MAP_WRITE_BIT)
	c.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	if err := bf.dev.check("Buffer.Data"); err != nil {
		return nil, err
	}
	bf.mapping = &Mapping{buf: bf, Bytes: b}
	return bf.mapping, nil
}

// WithData calls fn with the mapped storage of the buffer,
// unmapping it afterwards.
func (bf *Buffer) WithData(fn func(data []byte)) error {
	m, err := bf.Data()
	if err != nil {
		return err
	}
	fn(m.Bytes)
	return m.Unmap()
}

// Unmap ends the mapping, making the buffer usable again.
// It is a no-op if already unmapped.
func (m *Mapping) Unmap() error {
	if m.buf == nil {
		return nil
	}
	bf := m.buf
	c := bf.dev.GL
	c.BindBuffer(gl.COPY_WRITE_BUFFER, bf.handle)
	ok := c.UnmapBuffer(gl.COPY_WRITE_BUFFER)
	c.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	bf.mapping, m.buf, m.Bytes = nil, nil, nil
	if err := bf.dev.check("Mapping.Unmap"); err != nil {
		return err
	}
	if !ok {
		return errors.Log(errors.Errorf("glgpu: Mapping.Unmap: buffer content was lost: %w", gpu.ErrBackend))
	}
	return nil
}

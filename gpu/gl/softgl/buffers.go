// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgl

import "github.com/egospodinova/amber-engine/gpu/gl"

type buffer struct {
	data   []byte
	usage  uint32
	mapped bool
}

func validBufferTarget(target uint32) bool {
	switch target {
	case gl.ARRAY_BUFFER, gl.ELEMENT_ARRAY_BUFFER, gl.UNIFORM_BUFFER, gl.SHADER_STORAGE_BUFFER,
		gl.PIXEL_PACK_BUFFER, gl.PIXEL_UNPACK_BUFFER, gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER:
		return true
	}
	return false
}

// bound returns the buffer bound to target, raising the
// appropriate error for the named call if there is none.
func (c *Context) bound(name string, target uint32) *buffer {
	if !validBufferTarget(target) {
		c.fail(name, gl.INVALID_ENUM)
		return nil
	}
	b := c.buffers[c.bufferBindings[target]]
	if b == nil {
		c.fail(name, gl.INVALID_OPERATION)
	}
	return b
}

func (c *Context) GenBuffer() uint32 {
	c.call("GenBuffer")
	name := c.gen()
	c.buffers[name] = &buffer{}
	return name
}

func (c *Context) DeleteBuffer(buf uint32) {
	c.call("DeleteBuffer")
	if _, ok := c.buffers[buf]; !ok {
		return
	}
	delete(c.buffers, buf)
	for target, b := range c.bufferBindings {
		if b == buf {
			delete(c.bufferBindings, target)
		}
	}
	for ib, b := range c.indexedBindings {
		if b == buf {
			delete(c.indexedBindings, ib)
		}
	}
}

func (c *Context) BindBuffer(target, buf uint32) {
	c.call("BindBuffer")
	if !validBufferTarget(target) {
		c.fail("BindBuffer", gl.INVALID_ENUM)
		return
	}
	if buf != 0 && c.buffers[buf] == nil {
		c.fail("BindBuffer", gl.INVALID_VALUE)
		return
	}
	c.bufferBindings[target] = buf
}

func (c *Context) BindBufferBase(target, index, buf uint32) {
	c.call("BindBufferBase")
	if target != gl.UNIFORM_BUFFER && target != gl.SHADER_STORAGE_BUFFER {
		c.fail("BindBufferBase", gl.INVALID_ENUM)
		return
	}
	if buf != 0 && c.buffers[buf] == nil {
		c.fail("BindBufferBase", gl.INVALID_VALUE)
		return
	}
	c.indexedBindings[indexedBinding{target, index}] = buf
	c.bufferBindings[target] = buf
}

func (c *Context) BufferData(target uint32, size int, data []byte, usage uint32) {
	c.call("BufferData")
	b := c.bound("BufferData", target)
	if b == nil {
		return
	}
	if size < 0 {
		c.fail("BufferData", gl.INVALID_VALUE)
		return
	}
	if b.mapped {
		c.fail("BufferData", gl.INVALID_OPERATION)
		return
	}
	b.data = make([]byte, size)
	copy(b.data, data)
	b.usage = usage
}

func (c *Context) BufferSubData(target uint32, offset int, data []byte) {
	c.call("BufferSubData")
	b := c.bound("BufferSubData", target)
	if b == nil {
		return
	}
	if offset < 0 || len(data) > len(b.data)-offset {
		c.fail("BufferSubData", gl.INVALID_VALUE)
		return
	}
	copy(b.data[offset:], data)
}

func (c *Context) CopyBufferSubData(readTarget, writeTarget uint32, readOffset, writeOffset, size int) {
	c.call("CopyBufferSubData")
	src := c.bound("CopyBufferSubData", readTarget)
	dst := c.bound("CopyBufferSubData", writeTarget)
	if src == nil || dst == nil {
		return
	}
	if readOffset < 0 || writeOffset < 0 || size < 0 || size > len(src.data)-readOffset || size > len(dst.data)-writeOffset {
		c.fail("CopyBufferSubData", gl.INVALID_VALUE)
		return
	}
	if src.mapped || dst.mapped {
		c.fail("CopyBufferSubData", gl.INVALID_OPERATION)
		return
	}
	copy(dst.data[writeOffset:writeOffset+size], src.data[readOffset:readOffset+size])
}

func (c *Context) MapBufferRange(target uint32, offset, length int, access uint32) []byte {
	c.call("MapBufferRange")
	b := c.bound("MapBufferRange", target)
	if b == nil {
		return nil
	}
	if offset < 0 || length <= 0 || length > len(b.data)-offset || access&(gl.MAP_READ_BIT|gl.MAP_WRITE_BIT) == 0 {
		c.fail("MapBufferRange", gl.INVALID_VALUE)
		return nil
	}
	if b.mapped {
		c.fail("MapBufferRange", gl.INVALID_OPERATION)
		return nil
	}
	b.mapped = true
	return b.data[offset : offset+length : offset+length]
}

func (c *Context) UnmapBuffer(target uint32) bool {
	c.call("UnmapBuffer")
	b := c.bound("UnmapBuffer", target)
	if b == nil {
		return false
	}
	if !b.mapped {
		c.fail("UnmapBuffer", gl.INVALID_OPERATION)
		return false
	}
	b.mapped = false
	return true
}

// BufferContents returns a copy of the storage of the given buffer,
// or nil if it does not exist.
func (c *Context) BufferContents(buf uint32) []byte {
	b := c.buffers[buf]
	if b == nil {
		return nil
	}
	return append([]byte(nil), b.data...)
}

// BufferUsage returns the usage hint the given buffer was last
// allocated with.
func (c *Context) BufferUsage(buf uint32) uint32 {
	if b := c.buffers[buf]; b != nil {
		return b.usage
	}
	return 0
}

// BoundBuffer returns the buffer bound to the given target.
func (c *Context) BoundBuffer(target uint32) uint32 {
	return c.bufferBindings[target]
}

// BoundBufferBase returns the buffer bound to the given index
// of an indexed target.
func (c *Context) BoundBufferBase(target, index uint32) uint32 {
	return c.indexedBindings[indexedBinding{target, index}]
}

// IsBuffer returns whether buf names an existing buffer.
func (c *Context) IsBuffer(buf uint32) bool {
	return c.buffers[buf] != nil
}

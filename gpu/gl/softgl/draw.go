// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgl

import "github.com/egospodinova/amber-engine/gpu/gl"

// Attrib is the state of one vertex attribute of a vertex array.
type Attrib struct {
	Enabled    bool
	Buffer     uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
}

// Draw records one draw call.
type Draw struct {
	Mode        uint32
	Count       int32
	Indexed     bool
	Program     uint32
	VertexArray uint32
	Framebuffer uint32
}

type vertexArray struct {
	attribs map[uint32]*Attrib
}

type framebuffer struct {
	attachments map[uint32]uint32
}

func (c *Context) GenVertexArray() uint32 {
	c.call("GenVertexArray")
	name := c.gen()
	c.vertexArrays[name] = &vertexArray{attribs: map[uint32]*Attrib{}}
	return name
}

func (c *Context) DeleteVertexArray(vao uint32) {
	c.call("DeleteVertexArray")
	delete(c.vertexArrays, vao)
	if c.currentVAO == vao {
		c.currentVAO = 0
	}
}

func (c *Context) BindVertexArray(vao uint32) {
	c.call("BindVertexArray")
	if vao != 0 && c.vertexArrays[vao] == nil {
		c.fail("BindVertexArray", gl.INVALID_OPERATION)
		return
	}
	c.currentVAO = vao
}

func (c *Context) attrib(name string, index uint32) *Attrib {
	va := c.vertexArrays[c.currentVAO]
	if va == nil {
		c.fail(name, gl.INVALID_OPERATION)
		return nil
	}
	at := va.attribs[index]
	if at == nil {
		at = &Attrib{}
		va.attribs[index] = at
	}
	return at
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.call("EnableVertexAttribArray")
	if at := c.attrib("EnableVertexAttribArray", index); at != nil {
		at.Enabled = true
	}
}

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	c.call("VertexAttribPointer")
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		c.fail("VertexAttribPointer", gl.INVALID_VALUE)
		return
	}
	buf := c.bufferBindings[gl.ARRAY_BUFFER]
	if buf == 0 {
		c.fail("VertexAttribPointer", gl.INVALID_OPERATION)
		return
	}
	at := c.attrib("VertexAttribPointer", index)
	if at == nil {
		return
	}
	at.Buffer, at.Size, at.Type, at.Normalized, at.Stride, at.Offset = buf, size, xtype, normalized, stride, offset
}

// VertexAttrib returns the state of an attribute of a vertex array.
func (c *Context) VertexAttrib(vao, index uint32) (Attrib, bool) {
	va := c.vertexArrays[vao]
	if va == nil || va.attribs[index] == nil {
		return Attrib{}, false
	}
	return *va.attribs[index], true
}

// drawable checks the state common to all draws.
func (c *Context) drawable(name string, mode uint32, count int32) bool {
	switch mode {
	case gl.POINTS, gl.LINES, gl.LINE_STRIP, gl.TRIANGLES, gl.TRIANGLE_STRIP:
	default:
		c.fail(name, gl.INVALID_ENUM)
		return false
	}
	if count < 0 {
		c.fail(name, gl.INVALID_VALUE)
		return false
	}
	if c.currentProgram == 0 || c.currentVAO == 0 {
		c.fail(name, gl.INVALID_OPERATION)
		return false
	}
	if c.framebuffer != 0 && c.framebufferStatus(c.framebuffer) != gl.FRAMEBUFFER_COMPLETE {
		c.fail(name, gl.INVALID_FRAMEBUFFER_OPERATION)
		return false
	}
	return true
}

func (c *Context) DrawArrays(mode uint32, first, count int32) {
	c.call("DrawArrays")
	if first < 0 {
		c.fail("DrawArrays", gl.INVALID_VALUE)
		return
	}
	if !c.drawable("DrawArrays", mode, count) {
		return
	}
	c.Draws = append(c.Draws, Draw{Mode: mode, Count: count, Program: c.currentProgram, VertexArray: c.currentVAO, Framebuffer: c.framebuffer})
}

func (c *Context) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	c.call("DrawElements")
	switch xtype {
	case gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT, gl.UNSIGNED_INT:
	default:
		c.fail("DrawElements", gl.INVALID_ENUM)
		return
	}
	if !c.drawable("DrawElements", mode, count) {
		return
	}
	if c.bufferBindings[gl.ELEMENT_ARRAY_BUFFER] == 0 {
		c.fail("DrawElements", gl.INVALID_OPERATION)
		return
	}
	c.Draws = append(c.Draws, Draw{Mode: mode, Count: count, Indexed: true, Program: c.currentProgram, VertexArray: c.currentVAO, Framebuffer: c.framebuffer})
}

func (c *Context) GenFramebuffer() uint32 {
	c.call("GenFramebuffer")
	name := c.gen()
	c.framebuffers[name] = &framebuffer{attachments: map[uint32]uint32{}}
	return name
}

func (c *Context) DeleteFramebuffer(fb uint32) {
	c.call("DeleteFramebuffer")
	delete(c.framebuffers, fb)
	if c.framebuffer == fb {
		c.framebuffer = 0
	}
}

func (c *Context) BindFramebuffer(target, fb uint32) {
	c.call("BindFramebuffer")
	if target != gl.FRAMEBUFFER {
		c.fail("BindFramebuffer", gl.INVALID_ENUM)
		return
	}
	if fb != 0 && c.framebuffers[fb] == nil {
		c.fail("BindFramebuffer", gl.INVALID_OPERATION)
		return
	}
	c.framebuffer = fb
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32) {
	c.call("FramebufferTexture2D")
	if target != gl.FRAMEBUFFER {
		c.fail("FramebufferTexture2D", gl.INVALID_ENUM)
		return
	}
	switch attachment {
	case gl.COLOR_ATTACHMENT0, gl.DEPTH_ATTACHMENT, gl.DEPTH_STENCIL_ATTACHMENT:
	default:
		c.fail("FramebufferTexture2D", gl.INVALID_ENUM)
		return
	}
	fb := c.framebuffers[c.framebuffer]
	if fb == nil {
		c.fail("FramebufferTexture2D", gl.INVALID_OPERATION)
		return
	}
	if tex == 0 {
		delete(fb.attachments, attachment)
		return
	}
	t := c.textures[tex]
	if t == nil || level != 0 || (t.Target != texTarget && !(isCubeFace(texTarget) && t.Target == gl.TEXTURE_CUBE_MAP)) {
		c.fail("FramebufferTexture2D", gl.INVALID_OPERATION)
		return
	}
	fb.attachments[attachment] = tex
}

func (c *Context) framebufferStatus(name uint32) uint32 {
	fb := c.framebuffers[name]
	if fb == nil {
		return gl.FRAMEBUFFER_COMPLETE
	}
	if len(fb.attachments) == 0 {
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	for _, tex := range fb.attachments {
		if t := c.textures[tex]; t == nil || !t.Immutable {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (c *Context) CheckFramebufferStatus(target uint32) uint32 {
	c.call("CheckFramebufferStatus")
	if target != gl.FRAMEBUFFER {
		c.fail("CheckFramebufferStatus", gl.INVALID_ENUM)
		return 0
	}
	return c.framebufferStatus(c.framebuffer)
}

// Framebuffer returns the framebuffer in use.
func (c *Context) Framebuffer() uint32 {
	return c.framebuffer
}

// Attachment returns the texture attached to a framebuffer attachment point.
func (c *Context) Attachment(fb, attachment uint32) uint32 {
	if f := c.framebuffers[fb]; f != nil {
		return f.attachments[attachment]
	}
	return 0
}

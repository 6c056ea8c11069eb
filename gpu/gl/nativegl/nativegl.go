// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nativegl implements [gl.Context] over the OpenGL 4.5 core
// driver through go-gl. A context must already be current on the
// calling OS thread (for example one made by glfw) before calling [New].
package nativegl

import (
	"log/slog"
	"strings"
	"unsafe"

	"github.com/egospodinova/amber-engine/base/errors"
	amgl "github.com/egospodinova/amber-engine/gpu/gl"
	"github.com/go-gl/gl/v4.5-core/gl"
)

// Context is the driver [amgl.Context].
type Context struct{}

var _ amgl.Context = (*Context)(nil)

// New loads the GL function pointers for the current context
// and returns a Context using them.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Errorf("nativegl: initializing OpenGL: %w", err)
	}
	c := &Context{}
	slog.Info("nativegl: initialized", "version", c.GetString(gl.VERSION), "renderer", c.GetString(gl.RENDERER))
	return c, nil
}

// ptr returns a pointer to the first byte of data, or nil when empty.
func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func (c *Context) GetError() uint32 { return gl.GetError() }

func (c *Context) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (c *Context) GenBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (c *Context) DeleteBuffer(buf uint32) { gl.DeleteBuffers(1, &buf) }
func (c *Context) BindBuffer(target, buf uint32) { gl.BindBuffer(target, buf) }
func (c *Context) BindBufferBase(target, index, buf uint32) { gl.BindBufferBase(target, index, buf) }

func (c *Context) BufferData(target uint32, size int, data []byte, usage uint32) {
	if len(data) < size {
		// the driver reads size bytes from data
		gl.BufferData(target, size, nil, usage)
		if len(data) > 0 {
			gl.BufferSubData(target, 0, len(data), gl.Ptr(data))
		}
		return
	}
	gl.BufferData(target, size, ptr(data), usage)
}

func (c *Context) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), ptr(data))
}

func (c *Context) CopyBufferSubData(readTarget, writeTarget uint32, readOffset, writeOffset, size int) {
	gl.CopyBufferSubData(readTarget, writeTarget, readOffset, writeOffset, size)
}

func (c *Context) MapBufferRange(target uint32, offset, length int, access uint32) []byte {
	p := gl.MapBufferRange(target, offset, length, access)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), length)
}

func (c *Context) UnmapBuffer(target uint32) bool { return gl.UnmapBuffer(target) }

func (c *Context) GenTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (c *Context) DeleteTexture(tex uint32) { gl.DeleteTextures(1, &tex) }
func (c *Context) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }
func (c *Context) BindTexture(target, tex uint32) { gl.BindTexture(target, tex) }

func (c *Context) TexStorage1D(target uint32, levels int32, internalFormat uint32, width int32) {
	gl.TexStorage1D(target, levels, internalFormat, width)
}

func (c *Context) TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32) {
	gl.TexStorage2D(target, levels, internalFormat, width, height)
}

func (c *Context) TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	gl.TexStorage3D(target, levels, internalFormat, width, height, depth)
}

func (c *Context) TexSubImage1D(target uint32, level, x, width int32, format, xtype uint32, data []byte) {
	gl.TexSubImage1D(target, level, x, width, format, xtype, ptr(data))
}

func (c *Context) TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, data []byte) {
	gl.TexSubImage2D(target, level, x, y, width, height, format, xtype, ptr(data))
}

func (c *Context) TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, data []byte) {
	gl.TexSubImage3D(target, level, x, y, z, width, height, depth, format, xtype, ptr(data))
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (c *Context) GenerateMipmap(target uint32) { gl.GenerateMipmap(target) }

func (c *Context) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }
func (c *Context) DeleteShader(sh uint32) { gl.DeleteShader(sh) }

func (c *Context) ShaderSource(sh uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
}

func (c *Context) CompileShader(sh uint32) { gl.CompileShader(sh) }

func (c *Context) GetShaderi(sh, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(sh, pname, &v)
	return v
}

func (c *Context) GetShaderInfoLog(sh uint32) string {
	n := c.GetShaderi(sh, gl.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gl.GetShaderInfoLog(sh, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (c *Context) CreateProgram() uint32 { return gl.CreateProgram() }
func (c *Context) DeleteProgram(prog uint32) { gl.DeleteProgram(prog) }
func (c *Context) AttachShader(prog, sh uint32) { gl.AttachShader(prog, sh) }
func (c *Context) DetachShader(prog, sh uint32) { gl.DetachShader(prog, sh) }
func (c *Context) LinkProgram(prog uint32) { gl.LinkProgram(prog) }
func (c *Context) UseProgram(prog uint32) { gl.UseProgram(prog) }

func (c *Context) GetProgrami(prog, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(prog, pname, &v)
	return v
}

func (c *Context) GetProgramInfoLog(prog uint32) string {
	n := c.GetProgrami(prog, gl.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gl.GetProgramInfoLog(prog, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (c *Context) GetActiveUniform(prog, index uint32) (string, int32, uint32) {
	var length, size int32
	var xtype uint32
	buf := make([]byte, 256)
	gl.GetActiveUniform(prog, index, int32(len(buf)), &length, &size, &xtype, &buf[0])
	return string(buf[:length]), size, xtype
}

func (c *Context) GetUniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func (c *Context) Uniform1i(loc, v int32) { gl.Uniform1i(loc, v) }
func (c *Context) Uniform1ui(loc int32, v uint32) { gl.Uniform1ui(loc, v) }
func (c *Context) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }
func (c *Context) Uniform2f(loc int32, x, y float32) { gl.Uniform2f(loc, x, y) }
func (c *Context) Uniform3f(loc int32, x, y, z float32) { gl.Uniform3f(loc, x, y, z) }
func (c *Context) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }

func (c *Context) UniformMatrix3fv(loc int32, transpose bool, v []float32) {
	gl.UniformMatrix3fv(loc, 1, transpose, &v[0])
}

func (c *Context) UniformMatrix4fv(loc int32, transpose bool, v []float32) {
	gl.UniformMatrix4fv(loc, 1, transpose, &v[0])
}

func (c *Context) GenVertexArray() uint32 {
	var v uint32
	gl.GenVertexArrays(1, &v)
	return v
}

func (c *Context) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }
func (c *Context) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }
func (c *Context) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (c *Context) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (c *Context) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}

func (c *Context) Enable(capability uint32) { gl.Enable(capability) }
func (c *Context) Disable(capability uint32) { gl.Disable(capability) }
func (c *Context) IsEnabled(capability uint32) bool { return gl.IsEnabled(capability) }
func (c *Context) DepthFunc(fn uint32) { gl.DepthFunc(fn) }
func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (c *Context) Clear(mask uint32) { gl.Clear(mask) }
func (c *Context) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (c *Context) GenFramebuffer() uint32 {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return f
}

func (c *Context) DeleteFramebuffer(fb uint32) { gl.DeleteFramebuffers(1, &fb) }
func (c *Context) BindFramebuffer(target, fb uint32) { gl.BindFramebuffer(target, fb) }

func (c *Context) FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, tex, level)
}

func (c *Context) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

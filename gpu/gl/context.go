// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gl defines the subset of the OpenGL 4.5 core API used by the
// glgpu backend, as a [Context] interface that is passed explicitly to
// every resource instead of relying on a process-wide current context.
//
// Implementations are nativegl, which calls the driver through cgo, and
// softgl, which emulates the object and binding state in memory.
//
// A Context must only be used from the goroutine (and, for nativegl,
// the OS thread) that created it.
package gl

// Context is an OpenGL context. Names follow the GL functions they map
// to without the gl prefix; object names are uint32 and 0 means none.
// Data is passed as byte slices; a nil slice means no data.
type Context interface {
	GetError() uint32
	GetString(name uint32) string

	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target, buf uint32)
	BindBufferBase(target, index, buf uint32)
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	CopyBufferSubData(readTarget, writeTarget uint32, readOffset, writeOffset, size int)

	// MapBufferRange returns a slice aliasing the mapped range, valid
	// until UnmapBuffer is called on the same target.
	MapBufferRange(target uint32, offset, length int, access uint32) []byte
	UnmapBuffer(target uint32) bool

	GenTexture() uint32
	DeleteTexture(tex uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, tex uint32)
	TexStorage1D(target uint32, levels int32, internalFormat uint32, width int32)
	TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32)
	TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32)
	TexSubImage1D(target uint32, level, x, width int32, format, xtype uint32, data []byte)
	TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, data []byte)
	TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, data []byte)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)

	CreateShader(xtype uint32) uint32
	DeleteShader(sh uint32)
	ShaderSource(sh uint32, src string)
	CompileShader(sh uint32)
	GetShaderi(sh, pname uint32) int32
	GetShaderInfoLog(sh uint32) string

	CreateProgram() uint32
	DeleteProgram(prog uint32)
	AttachShader(prog, sh uint32)
	DetachShader(prog, sh uint32)
	LinkProgram(prog uint32)
	UseProgram(prog uint32)
	GetProgrami(prog, pname uint32) int32
	GetProgramInfoLog(prog uint32) string

	// GetActiveUniform returns the name, array size and type of the
	// active uniform at index.
	GetActiveUniform(prog, index uint32) (name string, size int32, xtype uint32)
	GetUniformLocation(prog uint32, name string) int32

	Uniform1i(loc, v int32)
	Uniform1ui(loc int32, v uint32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, x, y float32)
	Uniform3f(loc int32, x, y, z float32)
	Uniform4f(loc int32, x, y, z, w float32)
	UniformMatrix3fv(loc int32, transpose bool, v []float32)
	UniformMatrix4fv(loc int32, transpose bool, v []float32)

	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)

	Enable(capability uint32)
	Disable(capability uint32)
	IsEnabled(capability uint32) bool
	DepthFunc(fn uint32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)

	GenFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target, fb uint32)
	FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32
}

// ErrorString returns the name of a GL error code.
func ErrorString(code uint32) string {
	switch code {
	case NO_ERROR:
		return "NO_ERROR"
	case INVALID_ENUM:
		return "INVALID_ENUM"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_OPERATION:
		return "INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	}
	return "UNKNOWN_ERROR"
}

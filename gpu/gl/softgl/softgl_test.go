// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgl

import (
	"math"
	"testing"

	"github.com/egospodinova/amber-engine/gpu/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffers(t *testing.T) {
	c := New()
	b := c.GenBuffer()
	c.BufferData(gl.ARRAY_BUFFER, 4, nil, gl.STATIC_DRAW)
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError())

	c.BindBuffer(gl.ARRAY_BUFFER, b)
	c.BufferData(gl.ARRAY_BUFFER, 8, []byte{1, 2, 3}, gl.DYNAMIC_DRAW)
	c.BufferSubData(gl.ARRAY_BUFFER, 6, []byte{9, 9})
	assert.Equal(t, []byte{1, 2, 3, 0, 0, 0, 9, 9}, c.BufferContents(b))
	assert.Equal(t, uint32(gl.DYNAMIC_DRAW), c.BufferUsage(b))

	c.BufferSubData(gl.ARRAY_BUFFER, 7, []byte{1, 1})
	assert.Equal(t, uint32(gl.INVALID_VALUE), c.GetError())
	c.BufferSubData(gl.ARRAY_BUFFER, math.MaxInt, []byte{1})
	assert.Equal(t, uint32(gl.INVALID_VALUE), c.GetError())
	assert.Nil(t, c.MapBufferRange(gl.ARRAY_BUFFER, math.MaxInt, 1, gl.MAP_READ_BIT))
	assert.Equal(t, uint32(gl.INVALID_VALUE), c.GetError())

	m := c.MapBufferRange(gl.ARRAY_BUFFER, 0, 8, gl.MAP_READ_BIT|gl.MAP_WRITE_BIT)
	require.Len(t, m, 8)
	m[3] = 7
	assert.Nil(t, c.MapBufferRange(gl.ARRAY_BUFFER, 0, 8, gl.MAP_READ_BIT))
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError())
	assert.True(t, c.UnmapBuffer(gl.ARRAY_BUFFER))
	assert.Equal(t, byte(7), c.BufferContents(b)[3])

	d := c.GenBuffer()
	c.BindBuffer(gl.COPY_WRITE_BUFFER, d)
	c.BufferData(gl.COPY_WRITE_BUFFER, 4, nil, gl.STATIC_COPY)
	c.BindBuffer(gl.COPY_READ_BUFFER, b)
	c.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, 0, 0, 4)
	assert.Equal(t, []byte{1, 2, 3, 7}, c.BufferContents(d))
	c.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, math.MaxInt, 0, 1)
	assert.Equal(t, uint32(gl.INVALID_VALUE), c.GetError())
	c.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, 0, math.MaxInt, 1)
	assert.Equal(t, uint32(gl.INVALID_VALUE), c.GetError())

	c.BindBufferBase(gl.UNIFORM_BUFFER, 2, d)
	assert.Equal(t, d, c.BoundBufferBase(gl.UNIFORM_BUFFER, 2))
	c.DeleteBuffer(d)
	assert.Zero(t, c.BoundBufferBase(gl.UNIFORM_BUFFER, 2))
	assert.Zero(t, c.BoundBuffer(gl.COPY_WRITE_BUFFER))
	assert.Empty(t, c.Errors())
}

func TestTextures(t *testing.T) {
	c := New()
	tex := c.GenTexture()
	c.ActiveTexture(gl.TEXTURE0 + 3)
	c.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
	assert.Equal(t, tex, c.BoundTexture(3, gl.TEXTURE_CUBE_MAP))

	c.TexSubImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X, 0, 0, 0, 2, 2, gl.RGBA, gl.UNSIGNED_BYTE, make([]byte, 16))
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError(), "upload before storage")

	c.TexStorage2D(gl.TEXTURE_CUBE_MAP, 1, gl.RGBA8, 2, 2)
	c.TexStorage2D(gl.TEXTURE_CUBE_MAP, 1, gl.RGBA8, 2, 2)
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError(), "storage is immutable")

	for _, face := range gl.CubeFaceTargets {
		c.TexSubImage2D(face, 0, 0, 0, 2, 2, gl.RGBA, gl.UNSIGNED_BYTE, make([]byte, 16))
	}
	c.TexSubImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X, 0, 0, 0, 2, 2, gl.RGBA, gl.UNSIGNED_BYTE, make([]byte, 15))
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError(), "short data")
	require.Len(t, c.Uploads, 6)
	assert.Equal(t, uint32(gl.TEXTURE_CUBE_MAP_NEGATIVE_Z), c.Uploads[5].Target)

	c.BindTexture(gl.TEXTURE_2D, tex)
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError(), "target is fixed")

	c.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	c.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	st, ok := c.Texture(tex)
	require.True(t, ok)
	assert.Equal(t, int32(gl.CLAMP_TO_EDGE), st.Params[gl.TEXTURE_WRAP_R])
	assert.Equal(t, 1, st.Mipmaps)
	assert.Equal(t, uint32(gl.RGBA8), st.InternalFormat)
	assert.Equal(t, [3]int32{2, 2, 0}, [3]int32{st.Width, st.Height, st.Depth})
	assert.Empty(t, c.Errors())
}

func TestTextureStorageRank(t *testing.T) {
	c := New()
	tex := c.GenTexture()
	c.BindTexture(gl.TEXTURE_1D, tex)
	c.TexStorage1D(gl.TEXTURE_1D, 1, gl.RGBA8, 16)
	c.TexSubImage1D(gl.TEXTURE_1D, 0, 0, 16, gl.RGBA, gl.UNSIGNED_BYTE, make([]byte, 64))
	st, _ := c.Texture(tex)
	assert.Equal(t, [3]int32{16, 0, 0}, [3]int32{st.Width, st.Height, st.Depth})
	require.Len(t, c.Uploads, 1)

	flat := c.GenTexture()
	c.BindTexture(gl.TEXTURE_2D, flat)
	c.TexStorage2D(gl.TEXTURE_2D, 1, gl.RGBA8, 4, 0)
	assert.Equal(t, uint32(gl.INVALID_VALUE), c.GetError())
	vol := c.GenTexture()
	c.BindTexture(gl.TEXTURE_3D, vol)
	c.TexStorage3D(gl.TEXTURE_3D, 1, gl.RGBA8, 4, 4, 0)
	assert.Equal(t, uint32(gl.INVALID_VALUE), c.GetError())
	assert.Empty(t, c.Errors())
}

func TestPixelSize(t *testing.T) {
	assert.Equal(t, 4, PixelSize(gl.RGBA, gl.UNSIGNED_BYTE))
	assert.Equal(t, 6, PixelSize(gl.RGB, gl.UNSIGNED_SHORT))
	assert.Equal(t, 16, PixelSize(gl.RGBA, gl.FLOAT))
	assert.Equal(t, 4, PixelSize(gl.DEPTH_COMPONENT, gl.FLOAT))
	assert.Equal(t, 4, PixelSize(gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8))
	assert.Zero(t, PixelSize(gl.RGB, gl.UNSIGNED_INT_24_8))
}

const vertexSrc = `#version 410
layout(location = 0) in vec3 pos;
uniform mat4 mvp;
uniform vec3 lights[4];
uniform float gain;
void main() { gl_Position = mvp * vec4(pos, 1); }
`

const fragmentSrc = `#version 410
uniform samplerCube sky;
uniform float gain;
out vec4 color;
void main() { color = vec4(gain); }
`

func TestPrograms(t *testing.T) {
	c := New()
	vs := c.CreateShader(gl.VERTEX_SHADER)
	c.ShaderSource(vs, vertexSrc)
	c.CompileShader(vs)
	assert.Equal(t, int32(1), c.GetShaderi(vs, gl.COMPILE_STATUS))

	bad := c.CreateShader(gl.FRAGMENT_SHADER)
	c.ShaderSource(bad, "#version 410\n\n#error nope\nvoid main() {}")
	c.CompileShader(bad)
	assert.Zero(t, c.GetShaderi(bad, gl.COMPILE_STATUS))
	assert.Contains(t, c.GetShaderInfoLog(bad), "0:3:")

	fs := c.CreateShader(gl.FRAGMENT_SHADER)
	c.ShaderSource(fs, fragmentSrc)
	c.CompileShader(fs)

	p := c.CreateProgram()
	c.AttachShader(p, fs)
	c.LinkProgram(p)
	assert.Zero(t, c.GetProgrami(p, gl.LINK_STATUS), "no vertex stage")

	c.AttachShader(p, vs)
	c.LinkProgram(p)
	require.Equal(t, int32(1), c.GetProgrami(p, gl.LINK_STATUS))
	assert.Equal(t, int32(4), c.GetProgrami(p, gl.ACTIVE_UNIFORMS))

	name, size, xtype := c.GetActiveUniform(p, 3)
	assert.Equal(t, "lights[0]", name)
	assert.Equal(t, int32(4), size)
	assert.Equal(t, uint32(gl.FLOAT_VEC3), xtype)

	assert.Equal(t, int32(0), c.GetUniformLocation(p, "sky"))
	assert.Equal(t, int32(1), c.GetUniformLocation(p, "gain"))
	assert.Equal(t, int32(4), c.GetUniformLocation(p, "lights[1]"))
	assert.Equal(t, int32(-1), c.GetUniformLocation(p, "missing"))

	c.Uniform1f(1, 0.5)
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError(), "no current program")

	c.UseProgram(p)
	c.Uniform1f(1, 0.5)
	c.Uniform1i(1, 3)
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError(), "type mismatch")
	c.Uniform1i(-1, 3)
	v, ok := c.UniformValue(p, 1)
	require.True(t, ok)
	assert.Equal(t, float32(0.5), v)
	assert.Empty(t, c.Errors())
}

func TestDrawAndFramebuffer(t *testing.T) {
	c := New()
	c.DrawArrays(gl.TRIANGLES, 0, 3)
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError())

	vs := c.CreateShader(gl.VERTEX_SHADER)
	c.ShaderSource(vs, vertexSrc)
	c.CompileShader(vs)
	p := c.CreateProgram()
	c.AttachShader(p, vs)
	c.LinkProgram(p)
	c.UseProgram(p)

	vao := c.GenVertexArray()
	c.BindVertexArray(vao)
	b := c.GenBuffer()
	c.BindBuffer(gl.ARRAY_BUFFER, b)
	c.EnableVertexAttribArray(0)
	c.VertexAttribPointer(0, 3, gl.FLOAT, false, 12, 0)
	at, ok := c.VertexAttrib(vao, 0)
	require.True(t, ok)
	assert.Equal(t, b, at.Buffer)
	assert.True(t, at.Enabled)

	c.DrawArrays(gl.TRIANGLES, 0, 36)
	c.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, 0)
	assert.Equal(t, uint32(gl.INVALID_OPERATION), c.GetError(), "no element buffer")

	fb := c.GenFramebuffer()
	c.BindFramebuffer(gl.FRAMEBUFFER, fb)
	assert.Equal(t, uint32(gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT), c.CheckFramebufferStatus(gl.FRAMEBUFFER))
	tex := c.GenTexture()
	c.BindTexture(gl.TEXTURE_2D, tex)
	c.TexStorage2D(gl.TEXTURE_2D, 1, gl.RGBA8, 4, 4)
	c.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	assert.Equal(t, uint32(gl.FRAMEBUFFER_COMPLETE), c.CheckFramebufferStatus(gl.FRAMEBUFFER))
	c.DrawArrays(gl.TRIANGLES, 0, 3)

	require.Len(t, c.Draws, 2)
	assert.Equal(t, int32(36), c.Draws[0].Count)
	assert.Equal(t, fb, c.Draws[1].Framebuffer)

	c.Enable(gl.DEPTH_TEST)
	assert.True(t, c.IsEnabled(gl.DEPTH_TEST))
	c.Disable(gl.DEPTH_TEST)
	assert.False(t, c.IsEnabled(gl.DEPTH_TEST))
	c.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	assert.Equal(t, []uint32{gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT}, c.Clears)
	assert.Empty(t, c.Errors())
	assert.Equal(t, 6, c.LiveObjects())
}

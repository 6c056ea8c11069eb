// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgl

import "github.com/egospodinova/amber-engine/gpu/gl"

// TextureState is the state of a texture object.
type TextureState struct {
	// Target is the target the texture was first bound to, or 0.
	Target uint32

	// Immutable is set once storage has been allocated.
	Immutable bool

	InternalFormat       uint32
	Levels               int32
	Width, Height, Depth int32

	// Params are the values set with TexParameteri.
	Params map[uint32]int32

	// Mipmaps counts the GenerateMipmap calls.
	Mipmaps int
}

// Upload records one TexSubImage call.
type Upload struct {
	Texture uint32

	// Target is the upload target: the texture target, or a cube face.
	Target uint32

	Level                int32
	Width, Height, Depth int32
	Format, Type         uint32

	// Data is a copy of the uploaded data.
	Data []byte
}

type texture struct {
	TextureState
}

func validTextureTarget(target uint32) bool {
	switch target {
	case gl.TEXTURE_1D, gl.TEXTURE_2D, gl.TEXTURE_3D, gl.TEXTURE_CUBE_MAP:
		return true
	}
	return false
}

func isCubeFace(target uint32) bool {
	return target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target <= gl.TEXTURE_CUBE_MAP_NEGATIVE_Z
}

// boundTexture returns the texture bound to target at the active unit.
// Cube face targets resolve to the cube map binding.
func (c *Context) boundTexture(name string, target uint32) *texture {
	if isCubeFace(target) {
		target = gl.TEXTURE_CUBE_MAP
	}
	if !validTextureTarget(target) {
		c.fail(name, gl.INVALID_ENUM)
		return nil
	}
	t := c.textures[c.textureUnits[unitBinding{c.activeUnit, target}]]
	if t == nil {
		c.fail(name, gl.INVALID_OPERATION)
	}
	return t
}

func (c *Context) GenTexture() uint32 {
	c.call("GenTexture")
	name := c.gen()
	c.textures[name] = &texture{TextureState{Params: map[uint32]int32{}}}
	return name
}

func (c *Context) DeleteTexture(tex uint32) {
	c.call("DeleteTexture")
	if _, ok := c.textures[tex]; !ok {
		return
	}
	delete(c.textures, tex)
	for ub, t := range c.textureUnits {
		if t == tex {
			delete(c.textureUnits, ub)
		}
	}
	for _, fb := range c.framebuffers {
		for at, t := range fb.attachments {
			if t == tex {
				delete(fb.attachments, at)
			}
		}
	}
}

func (c *Context) ActiveTexture(unit uint32) {
	c.call("ActiveTexture")
	if unit < gl.TEXTURE0 || unit >= gl.TEXTURE0+MaxTextureUnits {
		c.fail("ActiveTexture", gl.INVALID_ENUM)
		return
	}
	c.activeUnit = unit - gl.TEXTURE0
}

func (c *Context) BindTexture(target, tex uint32) {
	c.call("BindTexture")
	if !validTextureTarget(target) {
		c.fail("BindTexture", gl.INVALID_ENUM)
		return
	}
	if tex != 0 {
		t := c.textures[tex]
		if t == nil {
			c.fail("BindTexture", gl.INVALID_VALUE)
			return
		}
		if t.Target != 0 && t.Target != target {
			c.fail("BindTexture", gl.INVALID_OPERATION)
			return
		}
		t.Target = target
	}
	c.textureUnits[unitBinding{c.activeUnit, target}] = tex
}

func validInternalFormat(format uint32) bool {
	switch format {
	case gl.RGB8, gl.RGB16, gl.RGB16F, gl.RGB32F, gl.RGBA8, gl.RGBA16, gl.RGBA16F, gl.RGBA32F,
		gl.DEPTH_COMPONENT32F, gl.DEPTH24_STENCIL8:
		return true
	}
	return false
}

// storage allocates immutable storage for the texture bound to target.
// Dimensions the storage call does not take are 0.
func (c *Context) storage(name string, target uint32, levels int32, format uint32, w, h, d int32) {
	t := c.boundTexture(name, target)
	if t == nil {
		return
	}
	if !validInternalFormat(format) {
		c.fail(name, gl.INVALID_ENUM)
		return
	}
	if levels < 1 || w < 1 || h < 0 || d < 0 {
		c.fail(name, gl.INVALID_VALUE)
		return
	}
	if t.Immutable {
		c.fail(name, gl.INVALID_OPERATION)
		return
	}
	t.Immutable = true
	t.InternalFormat = format
	t.Levels = levels
	t.Width, t.Height, t.Depth = w, h, d
}

func (c *Context) TexStorage1D(target uint32, levels int32, internalFormat uint32, width int32) {
	c.call("TexStorage1D")
	if target != gl.TEXTURE_1D {
		c.fail("TexStorage1D", gl.INVALID_ENUM)
		return
	}
	c.storage("TexStorage1D", target, levels, internalFormat, width, 0, 0)
}

func (c *Context) TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32) {
	c.call("TexStorage2D")
	if target != gl.TEXTURE_2D && target != gl.TEXTURE_CUBE_MAP {
		c.fail("TexStorage2D", gl.INVALID_ENUM)
		return
	}
	if height < 1 {
		c.fail("TexStorage2D", gl.INVALID_VALUE)
		return
	}
	c.storage("TexStorage2D", target, levels, internalFormat, width, height, 0)
}

func (c *Context) TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	c.call("TexStorage3D")
	if target != gl.TEXTURE_3D {
		c.fail("TexStorage3D", gl.INVALID_ENUM)
		return
	}
	if height < 1 || depth < 1 {
		c.fail("TexStorage3D", gl.INVALID_VALUE)
		return
	}
	c.storage("TexStorage3D", target, levels, internalFormat, width, height, depth)
}

// PixelSize returns the number of bytes of one pixel of client data
// in the given transfer format and type, or 0 if unsupported.
func PixelSize(format, xtype uint32) int {
	if xtype == gl.UNSIGNED_INT_24_8 {
		if format == gl.DEPTH_STENCIL {
			return 4
		}
		return 0
	}
	var channels int
	switch format {
	case gl.DEPTH_COMPONENT:
		channels = 1
	case gl.RGB:
		channels = 3
	case gl.RGBA:
		channels = 4
	default:
		return 0
	}
	switch xtype {
	case gl.UNSIGNED_BYTE, gl.BYTE:
		return channels
	case gl.UNSIGNED_SHORT, gl.SHORT:
		return channels * 2
	case gl.FLOAT, gl.UNSIGNED_INT, gl.INT:
		return channels * 4
	}
	return 0
}

// subImage validates and records an upload into the texture bound to target.
func (c *Context) subImage(name string, target uint32, level, x, y, z, w, h, d int32, format, xtype uint32, data []byte) {
	t := c.boundTexture(name, target)
	if t == nil {
		return
	}
	ps := PixelSize(format, xtype)
	if ps == 0 {
		c.fail(name, gl.INVALID_ENUM)
		return
	}
	if !t.Immutable || (isCubeFace(target) != (t.Target == gl.TEXTURE_CUBE_MAP)) {
		c.fail(name, gl.INVALID_OPERATION)
		return
	}
	if level < 0 || level >= t.Levels || x < 0 || y < 0 || z < 0 || w < 0 || h < 0 || d < 0 ||
		x+w > t.Width || y+h > max(t.Height, 1) || z+d > max(t.Depth, 1) {
		c.fail(name, gl.INVALID_VALUE)
		return
	}
	if data != nil && len(data) < int(w)*int(h)*int(d)*ps {
		c.fail(name, gl.INVALID_OPERATION)
		return
	}
	tex := c.textureUnits[unitBinding{c.activeUnit, t.Target}]
	c.Uploads = append(c.Uploads, Upload{
		Texture: tex, Target: target, Level: level,
		Width: w, Height: h, Depth: d,
		Format: format, Type: xtype,
		Data: append([]byte(nil), data...),
	})
}

func (c *Context) TexSubImage1D(target uint32, level, x, width int32, format, xtype uint32, data []byte) {
	c.call("TexSubImage1D")
	if target != gl.TEXTURE_1D {
		c.fail("TexSubImage1D", gl.INVALID_ENUM)
		return
	}
	c.subImage("TexSubImage1D", target, level, x, 0, 0, width, 1, 1, format, xtype, data)
}

func (c *Context) TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, data []byte) {
	c.call("TexSubImage2D")
	if target != gl.TEXTURE_2D && !isCubeFace(target) {
		c.fail("TexSubImage2D", gl.INVALID_ENUM)
		return
	}
	c.subImage("TexSubImage2D", target, level, x, y, 0, width, height, 1, format, xtype, data)
}

func (c *Context) TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, data []byte) {
	c.call("TexSubImage3D")
	if target != gl.TEXTURE_3D {
		c.fail("TexSubImage3D", gl.INVALID_ENUM)
		return
	}
	c.subImage("TexSubImage3D", target, level, x, y, z, width, height, depth, format, xtype, data)
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	c.call("TexParameteri")
	t := c.boundTexture("TexParameteri", target)
	if t == nil {
		return
	}
	switch pname {
	case gl.TEXTURE_MIN_FILTER, gl.TEXTURE_MAG_FILTER, gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T, gl.TEXTURE_WRAP_R:
	default:
		c.fail("TexParameteri", gl.INVALID_ENUM)
		return
	}
	t.Params[pname] = param
}

func (c *Context) GenerateMipmap(target uint32) {
	c.call("GenerateMipmap")
	t := c.boundTexture("GenerateMipmap", target)
	if t == nil {
		return
	}
	if !t.Immutable {
		c.fail("GenerateMipmap", gl.INVALID_OPERATION)
		return
	}
	t.Mipmaps++
}

// Texture returns the state of the given texture.
func (c *Context) Texture(tex uint32) (TextureState, bool) {
	t := c.textures[tex]
	if t == nil {
		return TextureState{}, false
	}
	return t.TextureState, true
}

// BoundTexture returns the texture bound to target at the given unit index.
func (c *Context) BoundTexture(unit, target uint32) uint32 {
	return c.textureUnits[unitBinding{unit, target}]
}

// ActiveUnit returns the index of the active texture unit.
func (c *Context) ActiveUnit() uint32 {
	return c.activeUnit
}

// IsTexture returns whether tex names an existing texture.
func (c *Context) IsTexture(tex uint32) bool {
	return c.textures[tex] != nil
}

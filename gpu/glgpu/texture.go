// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"log/slog"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
)

// Texture is a GL texture with immutable storage. Changing its size
// replaces the GL texture. Every change binds the texture at its unit
// and then restores what the unit held before.
type Texture struct {
	Object
	typ       gpu.TextureTypes
	format    gpu.DataFormats
	target    uint32
	width     int
	height    int
	depth     int
	mipLevels int
	slot      uint32
	bound     bool

	// params are the sampling parameters, reapplied when the
	// GL texture is replaced.
	params map[uint32]int32
}

var _ gpu.Texture = (*Texture)(nil)

// NewTexture returns a new texture of the given type and format.
// If any dimension is non-zero, storage with the given number of
// mip levels (at least 1) is allocated and data, if any, is uploaded
// with [Texture.SetImageData].
func NewTexture(dev *Device, typ gpu.TextureTypes, format gpu.DataFormats, width, height, depth, mipLevels int, data []byte) (*Texture, error) {
	target, err := TextureTarget(typ)
	if err != nil {
		return nil, errors.Log(err)
	}
	if _, err := InternalFormat(format); err != nil {
		return nil, errors.Log(err)
	}
	tx := &Texture{typ: typ, format: format, target: target, mipLevels: max(mipLevels, 1), params: map[uint32]int32{}}
	tx.dev = dev
	tx.handle = dev.GL.GenTexture()
	if width == 0 && height == 0 && depth == 0 {
		return tx, nil
	}
	if err := tx.SetSize(width, height, depth); err != nil {
		tx.Release()
		return nil, err
	}
	if data != nil {
		if err := tx.SetImageData(data); err != nil {
			tx.Release()
			return nil, err
		}
	}
	return tx, nil
}

func (tx *Texture) Type() gpu.TextureTypes { return tx.typ }

func (tx *Texture) Format() gpu.DataFormats { return tx.format }

func (tx *Texture) Width() int { return tx.width }

func (tx *Texture) Height() int { return tx.height }

func (tx *Texture) Depth() int { return tx.depth }

func (tx *Texture) MipLevels() int { return tx.mipLevels }

func (tx *Texture) IsBound() bool { return tx.bound }

func (tx *Texture) BindType() gpu.BindTypes { return gpu.BindTexture }

func (tx *Texture) BindSlot() uint32 { return tx.slot }

// Target returns the GL target of the texture.
func (tx *Texture) Target() uint32 { return tx.target }

// mutate binds the GL texture h at the unit of the texture, calls fn,
// and restores the previous binding of the unit.
func (tx *Texture) mutate(op string, h uint32, fn func(c gl.Context)) error {
	c := tx.dev.GL
	c.ActiveTexture(gl.TEXTURE0 + tx.slot)
	c.BindTexture(tx.target, h)
	fn(c)
	var prev uint32
	if occ := tx.dev.textures[tx.slot]; occ != nil && occ.target == tx.target {
		prev = occ.handle
	}
	c.BindTexture(tx.target, prev)
	return tx.dev.check(op)
}

// SetSize replaces the texture with a new GL texture of the given size,
// discarding the content. The sampling parameters are kept.
func (tx *Texture) SetSize(width, height, depth int) error {
	if tx.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Texture.SetSize: %w", gpu.ErrNullResource))
	}
	if err := gpu.ValidateSize(tx.typ, width, height, depth); err != nil {
		return errors.Log(err)
	}
	fi, _ := format(tx.format)
	levels := int32(tx.mipLevels)
	h := tx.dev.GL.GenTexture()
	err := tx.mutate("Texture.SetSize", h, func(c gl.Context) {
		switch tx.typ {
		case gpu.Texture1D:
			c.TexStorage1D(tx.target, levels, fi.internal, int32(width))
		case gpu.Texture2D, gpu.TextureCube:
			c.TexStorage2D(tx.target, levels, fi.internal, int32(width), int32(height))
		case gpu.Texture3D:
			c.TexStorage3D(tx.target, levels, fi.internal, int32(width), int32(height), int32(depth))
		}
		for pname, v := range tx.params {
			c.TexParameteri(tx.target, pname, v)
		}
	})
	if err != nil {
		tx.dev.GL.DeleteTexture(h)
		return err
	}
	tx.dev.GL.DeleteTexture(tx.handle)
	tx.handle = h
	tx.width, tx.height, tx.depth = width, height, depth
	slog.Debug("glgpu: texture allocated", "type", tx.typ, "format", tx.format, "width", width, "height", height, "depth", depth, "mipLevels", tx.mipLevels)
	if tx.bound {
		return tx.Bind()
	}
	return nil
}

// imageSize returns the number of bytes of one full image at level 0:
// one face for cube textures.
func (tx *Texture) imageSize() int {
	fi, _ := format(tx.format)
	return tx.width * max(tx.height, 1) * max(tx.depth, 1) * fi.pixelSize
}

// SetImageData uploads data as the full image at mip level 0, and
// regenerates the other levels. Cube textures take six consecutive
// faces in the order +X, -X, +Y, -Y, +Z, -Z, each of
// width*height*[PixelSize] bytes. That is width*height*channels for
// 8-bit formats, twice that for 16-bit formats, and 4 times that for
// float formats, 16F included.
func (tx *Texture) SetImageData(data []byte) error {
	if tx.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Texture.SetImageData: %w", gpu.ErrNullResource))
	}
	if tx.width == 0 {
		return errors.Log(errors.Errorf("glgpu: Texture.SetImageData: texture has no storage: %w", gpu.ErrOutOfRange))
	}
	fi, _ := format(tx.format)
	stride := tx.imageSize()
	need := stride
	if tx.typ == gpu.TextureCube {
		need *= gpu.CubeFaces
	}
	if len(data) < need {
		return errors.Log(errors.Errorf("glgpu: Texture.SetImageData: %d bytes for %dx%dx%d %v %v (need %d): %w", len(data), tx.width, tx.height, tx.depth, tx.format, tx.typ, need, gpu.ErrOutOfRange))
	}
	w, h, d := int32(tx.width), int32(tx.height), int32(tx.depth)
	return tx.mutate("Texture.SetImageData", tx.handle, func(c gl.Context) {
		switch tx.typ {
		case gpu.Texture1D:
			c.TexSubImage1D(tx.target, 0, 0, w, fi.transfer, fi.pixelType, data[:stride])
		case gpu.Texture2D:
			c.TexSubImage2D(tx.target, 0, 0, 0, w, h, fi.transfer, fi.pixelType, data[:stride])
		case gpu.Texture3D:
			c.TexSubImage3D(tx.target, 0, 0, 0, 0, w, h, d, fi.transfer, fi.pixelType, data[:stride])
		case gpu.TextureCube:
			for i, face := range gl.CubeFaceTargets {
				c.TexSubImage2D(face, 0, 0, 0, w, h, fi.transfer, fi.pixelType, data[i*stride:(i+1)*stride])
			}
		}
		c.GenerateMipmap(tx.target)
	})
}

// setParams sets sampling parameters on the texture and remembers them.
func (tx *Texture) setParams(op string, pnames []uint32, v int32) error {
	if tx.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Texture.%s: %w", op, gpu.ErrNullResource))
	}
	for _, pn := range pnames {
		tx.params[pn] = v
	}
	return tx.mutate("Texture."+op, tx.handle, func(c gl.Context) {
		for _, pn := range pnames {
			c.TexParameteri(tx.target, pn, v)
		}
	})
}

// SetFilterMode sets both the minification and magnification filters.
func (tx *Texture) SetFilterMode(mode gpu.FilterModes) error {
	f, err := FilterMode(mode)
	if err != nil {
		return errors.Log(err)
	}
	return tx.setParams("SetFilterMode", []uint32{gl.TEXTURE_MIN_FILTER, gl.TEXTURE_MAG_FILTER}, int32(f))
}

// SetWrapMode sets the wrap mode of every axis of the texture type.
func (tx *Texture) SetWrapMode(mode gpu.WrapModes) error {
	w, err := WrapMode(mode)
	if err != nil {
		return errors.Log(err)
	}
	return tx.setParams("SetWrapMode", wrapAxes(tx.typ), int32(w))
}

// Bind binds the texture to its target at texture unit TEXTURE0+slot.
// The unit stays active.
func (tx *Texture) Bind() error {
	if tx.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Texture.Bind: %w", gpu.ErrNullResource))
	}
	c := tx.dev.GL
	c.ActiveTexture(gl.TEXTURE0 + tx.slot)
	c.BindTexture(tx.target, tx.handle)
	if err := tx.dev.check("Texture.Bind"); err != nil {
		return err
	}
	tx.dev.bindTexture(tx)
	return nil
}

// Unbind binds texture 0 at the unit of the texture if it is bound.
func (tx *Texture) Unbind() error {
	if !tx.bound {
		return nil
	}
	c := tx.dev.GL
	c.ActiveTexture(gl.TEXTURE0 + tx.slot)
	c.BindTexture(tx.target, 0)
	tx.dev.unbindTexture(tx)
	return tx.dev.check("Texture.Unbind")
}

func (tx *Texture) SetBindSlot(slot uint32) error {
	if tx.bound {
		return errors.Log(errors.Errorf("glgpu: Texture.SetBindSlot: texture is bound at unit %d: %w", tx.slot, gpu.ErrBindState))
	}
	tx.slot = slot
	return nil
}

// Move returns a new Texture owning the GL texture, taking over its
// binding, and leaves this texture null.
func (tx *Texture) Move() *Texture {
	nt := &Texture{typ: tx.typ, format: tx.format, target: tx.target, width: tx.width, height: tx.height, depth: tx.depth,
		mipLevels: tx.mipLevels, slot: tx.slot, bound: tx.bound, params: tx.params}
	nt.dev = tx.dev
	nt.handle = tx.take()
	if tx.dev.textures[tx.slot] == tx {
		tx.dev.textures[tx.slot] = nt
	}
	tx.bound, tx.params = false, map[uint32]int32{}
	tx.width, tx.height, tx.depth = 0, 0, 0
	return nt
}

// Release unbinds and deletes the GL texture.
func (tx *Texture) Release() {
	if tx.handle == 0 {
		return
	}
	errors.Log(tx.Unbind())
	tx.dev.GL.DeleteTexture(tx.take())
	tx.width, tx.height, tx.depth = 0, 0, 0
}

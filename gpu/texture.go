// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/egospodinova/amber-engine/base/errors"

// TextureTypes are the dimensionalities of textures.
type TextureTypes int32

const (
	// Texture1D has a width only.
	Texture1D TextureTypes = iota

	// Texture2D has a width and height.
	Texture2D

	// Texture3D has a width, height and depth.
	Texture3D

	// TextureCube has six square-addressed faces of width by height,
	// in the order +X, -X, +Y, -Y, +Z, -Z.
	TextureCube
)

var textureTypeNames = []string{"Texture1D", "Texture2D", "Texture3D", "TextureCube"}

func (tt TextureTypes) String() string { return enumString(tt, textureTypeNames, "TextureTypes") }

// CubeFaces is the number of faces of a [TextureCube].
const CubeFaces = 6

// ValidateSize checks the given dimensions against the rank of the
// texture type: 1D requires width > 0 and height = depth = 0;
// 2D and Cube require width, height > 0 and depth = 0;
// 3D requires all three > 0. Mismatches return [ErrUnsupported].
func ValidateSize(typ TextureTypes, width, height, depth int) error {
	ok := false
	switch typ {
	case Texture1D:
		ok = width > 0 && height == 0 && depth == 0
	case Texture2D, TextureCube:
		ok = width > 0 && height > 0 && depth == 0
	case Texture3D:
		ok = width > 0 && height > 0 && depth > 0
	default:
		return errors.Errorf("texture type %v: %w", typ, ErrUnsupported)
	}
	if !ok {
		return errors.Errorf("dimensions %dx%dx%d for %v: %w", width, height, depth, typ, ErrUnsupported)
	}
	return nil
}

// FilterModes are the texture sampling filters, applied to both
// minification and magnification.
type FilterModes int32

const (
	Nearest FilterModes = iota
	Linear
)

var filterModeNames = []string{"Nearest", "Linear"}

func (fm FilterModes) String() string { return enumString(fm, filterModeNames, "FilterModes") }

// WrapModes are the texture addressing modes outside of [0, 1],
// applied to every axis of the texture.
type WrapModes int32

const (
	Repeat WrapModes = iota
	MirroredRepeat
	ClampToEdge
	ClampToBorder
)

var wrapModeNames = []string{"Repeat", "MirroredRepeat", "ClampToEdge", "ClampToBorder"}

func (wm WrapModes) String() string { return enumString(wm, wrapModeNames, "WrapModes") }

// Texture is typed image storage with sampling state.
type Texture interface {
	Bindable

	// Type returns the texture type.
	Type() TextureTypes

	// Format returns the data format.
	Format() DataFormats

	// Width returns the width in texels.
	Width() int

	// Height returns the height in texels (0 for 1D).
	Height() int

	// Depth returns the depth in texels (0 unless 3D).
	Depth() int

	// MipLevels returns the number of allocated mip levels.
	MipLevels() int

	// SetSize reallocates the texture storage, discarding its content.
	// The dimensions are checked with [ValidateSize].
	SetSize(width, height, depth int) error

	// SetImageData uploads a full image at mip level 0 and
	// regenerates the other mip levels.
	SetImageData(data []byte) error

	// SetFilterMode sets the sampling filter.
	SetFilterMode(mode FilterModes) error

	// SetWrapMode sets the addressing mode of every axis.
	SetWrapMode(mode WrapModes) error

	// SetBindSlot sets the texture unit used by Bind.
	// It fails with [ErrBindState] while the texture is bound.
	SetBindSlot(slot uint32) error

	// IsNull returns whether the texture holds no native object.
	IsNull() bool

	// Release deletes the native object. It is safe to call more than once.
	Release()
}

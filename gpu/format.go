// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// DataFormats are the texel formats of textures: a channel layout
// with a bit depth and numeric kind per channel.
type DataFormats int32

const (
	RGB8 DataFormats = iota
	RGB16
	RGB16F
	RGB32F
	RGBA8
	RGBA16
	RGBA16F
	RGBA32F
	Depth32
	Depth24Stencil8
)

var dataFormatNames = []string{"RGB8", "RGB16", "RGB16F", "RGB32F", "RGBA8", "RGBA16", "RGBA16F", "RGBA32F", "Depth32", "Depth24Stencil8"}

func (df DataFormats) String() string { return enumString(df, dataFormatNames, "DataFormats") }

// DataFormatsValues returns all of the supported data formats.
func DataFormatsValues() []DataFormats {
	return []DataFormats{RGB8, RGB16, RGB16F, RGB32F, RGBA8, RGBA16, RGBA16F, RGBA32F, Depth32, Depth24Stencil8}
}

// IsDepth returns whether the format holds depth (and stencil) values.
func (df DataFormats) IsDepth() bool {
	return df == Depth32 || df == Depth24Stencil8
}

// IsFloat returns whether the channels are floating point values.
func (df DataFormats) IsFloat() bool {
	switch df {
	case RGB16F, RGB32F, RGBA16F, RGBA32F, Depth32:
		return true
	}
	return false
}

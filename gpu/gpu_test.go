// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidateSize(t *testing.T) {
	type dims struct{ w, h, d int }
	valid := map[TextureTypes][]dims{
		Texture1D:   {{1, 0, 0}, {256, 0, 0}},
		Texture2D:   {{1, 1, 0}, {512, 256, 0}},
		Texture3D:   {{1, 1, 1}, {16, 16, 4}},
		TextureCube: {{64, 64, 0}},
	}
	invalid := map[TextureTypes][]dims{
		Texture1D:   {{0, 0, 0}, {4, 4, 0}, {4, 0, 4}},
		Texture2D:   {{4, 0, 0}, {0, 4, 0}, {4, 4, 4}},
		Texture3D:   {{4, 4, 0}, {4, 0, 4}, {0, 4, 4}},
		TextureCube: {{4, 4, 4}, {4, 0, 0}},
	}
	for tt, ds := range valid {
		for _, d := range ds {
			assert.NoError(t, ValidateSize(tt, d.w, d.h, d.d), "%v %v", tt, d)
		}
	}
	for tt, ds := range invalid {
		for _, d := range ds {
			err := ValidateSize(tt, d.w, d.h, d.d)
			assert.ErrorIs(t, err, ErrUnsupported, "%v %v", tt, d)
		}
	}
	assert.True(t, errors.Is(ValidateSize(TextureTypes(9), 1, 1, 1), ErrUnsupported))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "TextureCube", TextureCube.String())
	assert.Equal(t, "ClampToBorder", ClampToBorder.String())
	assert.Equal(t, "Depth24Stencil8", Depth24Stencil8.String())
	assert.Equal(t, "UniformBuffer", UniformBuffer.String())
	assert.Equal(t, "FragmentShader", FragmentShader.String())
	assert.Equal(t, "Texture", BindTexture.String())
	assert.Equal(t, "DataFormats(42)", DataFormats(42).String())
	assert.Len(t, DataFormatsValues(), 10)
}

func TestDataFormats(t *testing.T) {
	assert.True(t, Depth32.IsDepth())
	assert.True(t, Depth32.IsFloat())
	assert.True(t, Depth24Stencil8.IsDepth())
	assert.False(t, Depth24Stencil8.IsFloat())
	assert.False(t, RGBA8.IsFloat())
	assert.True(t, RGB16F.IsFloat())
}

func TestBufferTypes(t *testing.T) {
	assert.True(t, UniformBuffer.IsIndexed())
	assert.True(t, StorageBuffer.IsIndexed())
	assert.False(t, VertexBuffer.IsIndexed())
	assert.False(t, IndexBuffer.IsIndexed())
}

func TestLayout(t *testing.T) {
	var ly Layout
	ly.Add(0, 3).Add(1, 3).Add(2, 2)
	assert.Equal(t, 32, ly.VertexStride())
	assert.Equal(t, 12, ly.Attributes[1].Offset)
	assert.Equal(t, 24, ly.Attributes[2].Offset)

	ly.Stride = 48
	assert.Equal(t, 48, ly.VertexStride())

	bl := Layout{Attributes: []Attribute{{Components: 4, Type: Uint8, Normalized: true}}}
	assert.Equal(t, 4, bl.VertexStride())
}

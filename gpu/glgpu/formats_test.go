// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"errors"
	"testing"

	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
	"github.com/egospodinova/amber-engine/gpu/gl/softgl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormats(t *testing.T) {
	sizes := map[uint32]int{gl.UNSIGNED_BYTE: 1, gl.UNSIGNED_SHORT: 2, gl.FLOAT: 4}
	for _, df := range gpu.DataFormatsValues() {
		fi, err := format(df)
		require.NoError(t, err, df)
		if df == gpu.Depth24Stencil8 {
			assert.Equal(t, 4, fi.pixelSize)
			continue
		}
		assert.Equal(t, fi.channels*sizes[fi.pixelType], fi.pixelSize, df)
		assert.Equal(t, fi.pixelSize, softgl.PixelSize(fi.transfer, fi.pixelType), df)
		assert.Equal(t, df.IsFloat(), fi.pixelType == gl.FLOAT, df)
	}
	_, err := InternalFormat(gpu.DataFormats(99))
	assert.True(t, errors.Is(err, gpu.ErrUnsupported))
}

func TestFormatChannels(t *testing.T) {
	channels := map[uint32]int{gl.RGB: 3, gl.RGBA: 4, gl.DEPTH_COMPONENT: 1, gl.DEPTH_STENCIL: 2}
	for _, df := range gpu.DataFormatsValues() {
		tf, err := TransferFormat(df)
		require.NoError(t, err, df)
		want, ok := channels[tf]
		require.True(t, ok, df)
		n, err := Channels(df)
		require.NoError(t, err, df)
		assert.Equal(t, want, n, df)
	}
	n, err := Channels(gpu.RGB16F)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	ps, err := PixelSize(gpu.RGB16F)
	require.NoError(t, err)
	assert.Equal(t, 12, ps)

	_, err = Channels(gpu.DataFormats(99))
	assert.True(t, errors.Is(err, gpu.ErrUnsupported))
}

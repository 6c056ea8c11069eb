// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
)

// formatInfo is the GL description of a [gpu.DataFormats].
type formatInfo struct {
	internal  uint32
	transfer  uint32
	pixelType uint32
	channels  int

	// pixelSize is the number of bytes per pixel of client data
	// in the transfer format and pixel type.
	pixelSize int
}

var formats = map[gpu.DataFormats]formatInfo{
	gpu.RGB8:            {gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE, 3, 3},
	gpu.RGB16:           {gl.RGB16, gl.RGB, gl.UNSIGNED_SHORT, 3, 6},
	gpu.RGB16F:          {gl.RGB16F, gl.RGB, gl.FLOAT, 3, 12},
	gpu.RGB32F:          {gl.RGB32F, gl.RGB, gl.FLOAT, 3, 12},
	gpu.RGBA8:           {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 4, 4},
	gpu.RGBA16:          {gl.RGBA16, gl.RGBA, gl.UNSIGNED_SHORT, 4, 8},
	gpu.RGBA16F:         {gl.RGBA16F, gl.RGBA, gl.FLOAT, 4, 16},
	gpu.RGBA32F:         {gl.RGBA32F, gl.RGBA, gl.FLOAT, 4, 16},
	gpu.Depth32:         {gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT, 1, 4},
	gpu.Depth24Stencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8, 2, 4},
}

func format(df gpu.DataFormats) (formatInfo, error) {
	fi, ok := formats[df]
	if !ok {
		return fi, errors.Errorf("glgpu: data format %v: %w", df, gpu.ErrUnsupported)
	}
	return fi, nil
}

// InternalFormat returns the GL sized internal format used to
// store textures of the given format.
func InternalFormat(df gpu.DataFormats) (uint32, error) {
	fi, err := format(df)
	return fi.internal, err
}

// TransferFormat returns the GL pixel format of client data
// uploaded into textures of the given format.
func TransferFormat(df gpu.DataFormats) (uint32, error) {
	fi, err := format(df)
	return fi.transfer, err
}

// PixelType returns the GL component type of client data
// uploaded into textures of the given format.
func PixelType(df gpu.DataFormats) (uint32, error) {
	fi, err := format(df)
	return fi.pixelType, err
}

// Channels returns the number of channels of the given format.
func Channels(df gpu.DataFormats) (int, error) {
	fi, err := format(df)
	return fi.channels, err
}

// PixelSize returns the number of bytes per pixel of client data
// uploaded into textures of the given format.
func PixelSize(df gpu.DataFormats) (int, error) {
	fi, err := format(df)
	return fi.pixelSize, err
}

// BufferTarget returns the GL binding point of the given buffer type.
func BufferTarget(bt gpu.BufferTypes) (uint32, error) {
	switch bt {
	case gpu.VertexBuffer:
		return gl.ARRAY_BUFFER, nil
	case gpu.IndexBuffer:
		return gl.ELEMENT_ARRAY_BUFFER, nil
	case gpu.UniformBuffer:
		return gl.UNIFORM_BUFFER, nil
	case gpu.StorageBuffer:
		return gl.SHADER_STORAGE_BUFFER, nil
	case gpu.PixelPackBuffer:
		return gl.PIXEL_PACK_BUFFER, nil
	case gpu.PixelUnpackBuffer:
		return gl.PIXEL_UNPACK_BUFFER, nil
	}
	return 0, errors.Errorf("glgpu: buffer type %v: %w", bt, gpu.ErrUnsupported)
}

// Usage returns the GL usage hint of the given usage pattern.
func Usage(up gpu.UsagePatterns) (uint32, error) {
	switch up {
	case gpu.StreamDraw:
		return gl.STREAM_DRAW, nil
	case gpu.StreamRead:
		return gl.STREAM_READ, nil
	case gpu.StreamCopy:
		return gl.STREAM_COPY, nil
	case gpu.StaticDraw:
		return gl.STATIC_DRAW, nil
	case gpu.StaticRead:
		return gl.STATIC_READ, nil
	case gpu.StaticCopy:
		return gl.STATIC_COPY, nil
	case gpu.DynamicDraw:
		return gl.DYNAMIC_DRAW, nil
	case gpu.DynamicRead:
		return gl.DYNAMIC_READ, nil
	case gpu.DynamicCopy:
		return gl.DYNAMIC_COPY, nil
	}
	return 0, errors.Errorf("glgpu: usage pattern %v: %w", up, gpu.ErrUnsupported)
}

// TextureTarget returns the GL target of the given texture type.
func TextureTarget(tt gpu.TextureTypes) (uint32, error) {
	switch tt {
	case gpu.Texture1D:
		return gl.TEXTURE_1D, nil
	case gpu.Texture2D:
		return gl.TEXTURE_2D, nil
	case gpu.Texture3D:
		return gl.TEXTURE_3D, nil
	case gpu.TextureCube:
		return gl.TEXTURE_CUBE_MAP, nil
	}
	return 0, errors.Errorf("glgpu: texture type %v: %w", tt, gpu.ErrUnsupported)
}

// wrapAxes returns the wrap parameters that apply to the given texture type.
func wrapAxes(tt gpu.TextureTypes) []uint32 {
	switch tt {
	case gpu.Texture1D:
		return []uint32{gl.TEXTURE_WRAP_S}
	case gpu.Texture2D:
		return []uint32{gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T}
	}
	return []uint32{gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T, gl.TEXTURE_WRAP_R}
}

// FilterMode returns the GL filter of the given filter mode.
func FilterMode(fm gpu.FilterModes) (uint32, error) {
	switch fm {
	case gpu.Nearest:
		return gl.NEAREST, nil
	case gpu.Linear:
		return gl.LINEAR, nil
	}
	return 0, errors.Errorf("glgpu: filter mode %v: %w", fm, gpu.ErrUnsupported)
}

// WrapMode returns the GL wrap mode of the given wrap mode.
func WrapMode(wm gpu.WrapModes) (uint32, error) {
	switch wm {
	case gpu.Repeat:
		return gl.REPEAT, nil
	case gpu.MirroredRepeat:
		return gl.MIRRORED_REPEAT, nil
	case gpu.ClampToEdge:
		return gl.CLAMP_TO_EDGE, nil
	case gpu.ClampToBorder:
		return gl.CLAMP_TO_BORDER, nil
	}
	return 0, errors.Errorf("glgpu: wrap mode %v: %w", wm, gpu.ErrUnsupported)
}

// ShaderType returns the GL shader type of the given stage.
func ShaderType(st gpu.ShaderTypes) (uint32, error) {
	switch st {
	case gpu.VertexShader:
		return gl.VERTEX_SHADER, nil
	case gpu.FragmentShader:
		return gl.FRAGMENT_SHADER, nil
	case gpu.GeometryShader:
		return gl.GEOMETRY_SHADER, nil
	case gpu.TessCtrlShader:
		return gl.TESS_CONTROL_SHADER, nil
	case gpu.TessEvalShader:
		return gl.TESS_EVALUATION_SHADER, nil
	case gpu.ComputeShader:
		return gl.COMPUTE_SHADER, nil
	}
	return 0, errors.Errorf("glgpu: shader type %v: %w", st, gpu.ErrUnsupported)
}

// ComponentType returns the GL type of vertex attribute components.
func ComponentType(tp gpu.Types) (uint32, error) {
	switch tp {
	case gpu.Float32:
		return gl.FLOAT, nil
	case gpu.Int32:
		return gl.INT, nil
	case gpu.Uint32:
		return gl.UNSIGNED_INT, nil
	case gpu.Uint16:
		return gl.UNSIGNED_SHORT, nil
	case gpu.Uint8:
		return gl.UNSIGNED_BYTE, nil
	}
	return 0, errors.Errorf("glgpu: component type %v: %w", tp, gpu.ErrUnsupported)
}

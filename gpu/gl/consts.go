// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

// Errors
const (
	NO_ERROR                      = 0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506
)

// Buffer targets and usages
const (
	ARRAY_BUFFER          = 0x8892
	ELEMENT_ARRAY_BUFFER  = 0x8893
	UNIFORM_BUFFER        = 0x8A11
	SHADER_STORAGE_BUFFER = 0x90D2
	PIXEL_PACK_BUFFER     = 0x88EB
	PIXEL_UNPACK_BUFFER   = 0x88EC
	COPY_READ_BUFFER      = 0x8F36
	COPY_WRITE_BUFFER     = 0x8F37

	STREAM_DRAW  = 0x88E0
	STREAM_READ  = 0x88E1
	STREAM_COPY  = 0x88E2
	STATIC_DRAW  = 0x88E4
	STATIC_READ  = 0x88E5
	STATIC_COPY  = 0x88E6
	DYNAMIC_DRAW = 0x88E8
	DYNAMIC_READ = 0x88E9
	DYNAMIC_COPY = 0x88EA

	MAP_READ_BIT  = 0x0001
	MAP_WRITE_BIT = 0x0002
)

// Textures
const (
	TEXTURE_1D                  = 0x0DE0
	TEXTURE_2D                  = 0x0DE1
	TEXTURE_3D                  = 0x806F
	TEXTURE_CUBE_MAP            = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X = 0x8515
	TEXTURE_CUBE_MAP_NEGATIVE_X = 0x8516
	TEXTURE_CUBE_MAP_POSITIVE_Y = 0x8517
	TEXTURE_CUBE_MAP_NEGATIVE_Y = 0x8518
	TEXTURE_CUBE_MAP_POSITIVE_Z = 0x8519
	TEXTURE_CUBE_MAP_NEGATIVE_Z = 0x851A

	TEXTURE0 = 0x84C0

	TEXTURE_MAG_FILTER = 0x2800
	TEXTURE_MIN_FILTER = 0x2801
	TEXTURE_WRAP_S     = 0x2802
	TEXTURE_WRAP_T     = 0x2803
	TEXTURE_WRAP_R     = 0x8072

	NEAREST         = 0x2600
	LINEAR          = 0x2601
	REPEAT          = 0x2901
	MIRRORED_REPEAT = 0x8370
	CLAMP_TO_EDGE   = 0x812F
	CLAMP_TO_BORDER = 0x812D
)

// Pixel formats and types
const (
	DEPTH_COMPONENT = 0x1902
	RGB             = 0x1907
	RGBA            = 0x1908
	DEPTH_STENCIL   = 0x84F9

	RGB8               = 0x8051
	RGB16              = 0x8054
	RGBA8              = 0x8058
	RGBA16             = 0x805B
	RGBA32F            = 0x8814
	RGB32F             = 0x8815
	RGBA16F            = 0x881A
	RGB16F             = 0x881B
	DEPTH24_STENCIL8   = 0x88F0
	DEPTH_COMPONENT32F = 0x8CAC

	BYTE              = 0x1400
	UNSIGNED_BYTE     = 0x1401
	SHORT             = 0x1402
	UNSIGNED_SHORT    = 0x1403
	INT               = 0x1404
	UNSIGNED_INT      = 0x1405
	FLOAT             = 0x1406
	UNSIGNED_INT_24_8 = 0x84FA
)

// Shaders and programs
const (
	FRAGMENT_SHADER        = 0x8B30
	VERTEX_SHADER          = 0x8B31
	GEOMETRY_SHADER        = 0x8DD9
	TESS_EVALUATION_SHADER = 0x8E87
	TESS_CONTROL_SHADER    = 0x8E88
	COMPUTE_SHADER         = 0x91B9

	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84
	ACTIVE_UNIFORMS = 0x8B86

	FLOAT_VEC2        = 0x8B50
	FLOAT_VEC3        = 0x8B51
	FLOAT_VEC4        = 0x8B52
	INT_VEC2          = 0x8B53
	INT_VEC3          = 0x8B54
	INT_VEC4          = 0x8B55
	BOOL              = 0x8B56
	FLOAT_MAT2        = 0x8B5A
	FLOAT_MAT3        = 0x8B5B
	FLOAT_MAT4        = 0x8B5C
	SAMPLER_1D        = 0x8B5D
	SAMPLER_2D        = 0x8B5E
	SAMPLER_3D        = 0x8B5F
	SAMPLER_CUBE      = 0x8B60
	UNSIGNED_INT_VEC2 = 0x8DC6
	UNSIGNED_INT_VEC3 = 0x8DC7
	UNSIGNED_INT_VEC4 = 0x8DC8
)

// Capabilities, clearing and drawing
const (
	CULL_FACE    = 0x0B44
	DEPTH_TEST   = 0x0B71
	STENCIL_TEST = 0x0B90
	BLEND        = 0x0BE2

	LESS   = 0x0201
	LEQUAL = 0x0203

	DEPTH_BUFFER_BIT   = 0x0100
	STENCIL_BUFFER_BIT = 0x0400
	COLOR_BUFFER_BIT   = 0x4000

	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
)

// Framebuffers
const (
	FRAMEBUFFER                               = 0x8D40
	COLOR_ATTACHMENT0                         = 0x8CE0
	DEPTH_ATTACHMENT                          = 0x8D00
	DEPTH_STENCIL_ATTACHMENT                  = 0x821A
	FRAMEBUFFER_COMPLETE                      = 0x8CD5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
)

// Strings
const (
	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	SHADING_LANGUAGE_VERSION = 0x8B8C
)

// CubeFaceTargets are the targets of the six faces of a cube map,
// in upload order.
var CubeFaceTargets = [6]uint32{
	TEXTURE_CUBE_MAP_POSITIVE_X,
	TEXTURE_CUBE_MAP_NEGATIVE_X,
	TEXTURE_CUBE_MAP_POSITIVE_Y,
	TEXTURE_CUBE_MAP_NEGATIVE_Y,
	TEXTURE_CUBE_MAP_POSITIVE_Z,
	TEXTURE_CUBE_MAP_NEGATIVE_Z,
}

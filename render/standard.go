// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/math32"
	"github.com/egospodinova/amber-engine/shaders"
)

// DefaultLightDirection is the direction of the light of
// standard materials.
var DefaultLightDirection = math32.Vec3(-0.3, -1, -0.5)

// StandardProgram returns the source of the program models are drawn
// with. It takes meshes in the [StandardLayout], and has color,
// lightDirection, textured and albedo constants besides the model,
// view and projection transforms.
func StandardProgram() *ProgramSource {
	return &ProgramSource{
		Name: "standard",
		Shaders: []ShaderSource{
			{Type: gpu.VertexShader, Code: shaders.StandardVertex},
			{Type: gpu.FragmentShader, Code: shaders.StandardFragment},
		},
		Layout: StandardLayout(),
	}
}

// NewStandardMaterial returns a new material drawing with the standard
// program in the given color, textured by albedo if it is not nil.
func NewStandardMaterial(prog *Reference[ProgramSource], color math32.Vector4, albedo *Reference[TextureSource]) *Material {
	mt := NewMaterial(prog).SetConstant("color", color).SetConstant("lightDirection", DefaultLightDirection)
	if albedo == nil {
		return mt.SetConstant("textured", 0)
	}
	return mt.SetConstant("textured", 1).SetTexture("albedo", albedo)
}

// NewTextureSource returns the source of a 2D RGBA8 texture with
// mipmaps, repeating and linearly filtered, from tightly packed
// RGBA pixels.
func NewTextureSource(width, height int, pix []byte) *TextureSource {
	levels := 1
	for s := max(width, height); s > 1; s /= 2 {
		levels++
	}
	return &TextureSource{
		Type:      gpu.Texture2D,
		Format:    gpu.RGBA8,
		Width:     width,
		Height:    height,
		MipLevels: levels,
		Data:      pix,
		Filter:    gpu.Linear,
		Wrap:      gpu.Repeat,
	}
}

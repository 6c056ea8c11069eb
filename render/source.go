// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"os"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
)

// ShaderLanguages are the languages shader sources can be written in.
type ShaderLanguages int32

const (
	// GLSL sources are compiled directly.
	GLSL ShaderLanguages = iota

	// WGSL sources are translated to GLSL first.
	WGSL
)

func (sl ShaderLanguages) String() string {
	if sl == WGSL {
		return "WGSL"
	}
	return "GLSL"
}

// ShaderSource is the source of one stage of a program,
// given as code or as a file to read it from.
type ShaderSource struct {
	Type     gpu.ShaderTypes
	Language ShaderLanguages

	// Code is the source code. If empty, it is read from File.
	Code string

	// File is the file the code is read from when Code is empty.
	File string
}

// Source returns the code of the shader, reading it from its file
// if it has no code.
func (ss *ShaderSource) Source() (string, error) {
	if ss.Code != "" || ss.File == "" {
		return ss.Code, nil
	}
	b, err := os.ReadFile(ss.File)
	if err != nil {
		return "", errors.Wrap(err)
	}
	return string(b), nil
}

// ProgramSource describes a program.
type ProgramSource struct {
	// Name identifies the program in logs.
	Name string

	Shaders []ShaderSource

	// Layout is the vertex layout applied to meshes that have none.
	Layout gpu.Layout
}

// Files returns the files of the shaders read from files.
func (ps *ProgramSource) Files() []string {
	var files []string
	for _, sh := range ps.Shaders {
		if sh.Code == "" && sh.File != "" {
			files = append(files, sh.File)
		}
	}
	return files
}

// TextureSource describes a texture and its image data.
type TextureSource struct {
	Type   gpu.TextureTypes
	Format gpu.DataFormats

	Width, Height, Depth int

	// MipLevels is the number of mip levels, at least 1.
	MipLevels int

	// Data is the image data, as for [gpu.Texture.SetImageData].
	Data []byte

	Filter gpu.FilterModes
	Wrap   gpu.WrapModes
}

// RenderTargetSource describes a render target.
type RenderTargetSource struct {
	Width, Height int
	Format        gpu.DataFormats

	// Depth adds a depth-stencil attachment.
	Depth bool
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaders provides the built-in GLSL shaders, the translation
// of WGSL shaders to GLSL, and a watcher of shader files for reloading
// them while running.
package shaders

import (
	_ "embed"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// SkyboxVertex is the vertex shader of skyboxes. It takes positions of
// a cube around the origin at location 0, and has view and projection
// constants.
//
//go:embed skybox.vert
var SkyboxVertex string

// SkyboxFragment is the fragment shader of skyboxes. It samples the
// samplerCube constant named skybox.
//
//go:embed skybox.frag
var SkyboxFragment string

// StandardVertex is the vertex shader of models. It takes a position,
// a normal and texture coordinates at locations 0, 1 and 2, and has
// model, view and projection constants.
//
//go:embed standard.vert
var StandardVertex string

// StandardFragment is the fragment shader of models. It shades the color
// constant, multiplied by the albedo texture if textured is non-zero,
// with a single directional light.
//
//go:embed standard.frag
var StandardFragment string

// ErrTranslate is wrapped by WGSL translation failures.
var ErrTranslate = errors.New("shaders: WGSL translation failed")

// stages are the IR stages of the shader types WGSL can express.
var stages = map[gpu.ShaderTypes]ir.ShaderStage{
	gpu.VertexShader:   ir.StageVertex,
	gpu.FragmentShader: ir.StageFragment,
	gpu.ComputeShader:  ir.StageCompute,
}

// Translate translates the entry point of the given stage of a WGSL
// module into GLSL 4.10 source, or 4.30 for compute shaders.
func Translate(source string, typ gpu.ShaderTypes) (string, error) {
	stage, ok := stages[typ]
	if !ok {
		return "", errors.Errorf("shaders.Translate: %v has no WGSL stage: %w", typ, gpu.ErrUnsupported)
	}
	ast, err := naga.Parse(source)
	if err != nil {
		return "", errors.Errorf("shaders.Translate: %w: %w", ErrTranslate, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return "", errors.Errorf("shaders.Translate: %w: %w", ErrTranslate, err)
	}
	entry := ""
	for _, ep := range module.EntryPoints {
		if ep.Stage == stage {
			entry = ep.Name
			break
		}
	}
	if entry == "" {
		return "", errors.Errorf("shaders.Translate: no %v entry point: %w", typ, ErrTranslate)
	}
	opts := glsl.Options{LangVersion: glsl.Version410, EntryPoint: entry}
	if stage == ir.StageCompute {
		opts.LangVersion = glsl.Version430
	}
	out, _, err := glsl.Compile(module, opts)
	if err != nil {
		return "", errors.Errorf("shaders.Translate: %w: %w", ErrTranslate, err)
	}
	return out, nil
}

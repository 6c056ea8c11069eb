// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
	"github.com/egospodinova/amber-engine/shaders"
)

// CompileError is returned when a shader fails to compile.
type CompileError struct {
	// Type is the stage of the shader.
	Type gpu.ShaderTypes

	// Log is the compiler output.
	Log string
}

func (ce *CompileError) Error() string {
	return fmt.Sprintf("glgpu: compiling %v: %s", ce.Type, ce.Log)
}

func (ce *CompileError) Unwrap() error { return gpu.ErrCompile }

// Shader is a compiled GLSL shader.
type Shader struct {
	Object
	typ    gpu.ShaderTypes
	source string
}

var _ gpu.Shader = (*Shader)(nil)

// NewShader compiles the given GLSL source as a shader of the given
// stage. Compile failures return a [*CompileError].
func NewShader(dev *Device, typ gpu.ShaderTypes, source string) (*Shader, error) {
	st, err := ShaderType(typ)
	if err != nil {
		return nil, errors.Log(err)
	}
	c := dev.GL
	h := c.CreateShader(st)
	c.ShaderSource(h, source)
	c.CompileShader(h)
	if err := dev.check("compiling shader"); err != nil {
		c.DeleteShader(h)
		return nil, err
	}
	if c.GetShaderi(h, gl.COMPILE_STATUS) == 0 {
		ce := &CompileError{Type: typ, Log: c.GetShaderInfoLog(h)}
		c.DeleteShader(h)
		return nil, errors.Log(ce)
	}
	sh := &Shader{typ: typ, source: source}
	sh.dev, sh.handle = dev, h
	return sh, nil
}

// NewShaderWGSL translates the given WGSL source to GLSL and
// compiles it with [NewShader].
func NewShaderWGSL(dev *Device, typ gpu.ShaderTypes, source string) (*Shader, error) {
	glsl, err := shaders.Translate(source, typ)
	if err != nil {
		return nil, errors.Log(err)
	}
	return NewShader(dev, typ, glsl)
}

func (sh *Shader) Type() gpu.ShaderTypes { return sh.typ }

func (sh *Shader) Source() string { return sh.source }

// Release deletes the GL shader.
func (sh *Shader) Release() {
	if sh.handle == 0 {
		return
	}
	sh.dev.GL.DeleteShader(sh.take())
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/egospodinova/amber-engine/math32"

// ShaderTypes are the stages of a program.
type ShaderTypes int32

const (
	VertexShader ShaderTypes = iota
	FragmentShader
	GeometryShader
	TessCtrlShader
	TessEvalShader
	ComputeShader
)

var shaderTypeNames = []string{"VertexShader", "FragmentShader", "GeometryShader", "TessCtrlShader", "TessEvalShader", "ComputeShader"}

func (st ShaderTypes) String() string { return enumString(st, shaderTypeNames, "ShaderTypes") }

// Shader is a single compiled program stage.
type Shader interface {
	// Type returns the stage of the shader.
	Type() ShaderTypes

	// Source returns the source the shader was compiled from.
	Source() string

	// Release deletes the native object. It is safe to call more than once.
	Release()
}

// Program is a linked set of shader stages exposing named constants
// (uniforms), whose locations are discovered when linking.
//
// Constants can only be set once the program is linked and bound.
type Program interface {
	Bindable

	// AddShader appends a stage. Adding a stage to a linked program
	// returns it to the unlinked state: it must be linked again.
	AddShader(sh Shader) error

	// Link links all stages. On failure the returned error wraps
	// [ErrLink] and carries the backend diagnostics.
	Link() error

	// IsLinked returns whether the last Link succeeded.
	IsLinked() bool

	// Layout returns the vertex attribute layout.
	Layout() Layout

	// SetLayout sets the vertex attribute layout.
	SetLayout(layout Layout)

	// HasConstant returns whether name is an active constant.
	HasConstant(name string) bool

	SetInt(name string, v int32) error
	SetUint(name string, v uint32) error
	SetFloat(name string, v float32) error
	SetVector2(name string, v math32.Vector2) error
	SetVector3(name string, v math32.Vector3) error
	SetVector4(name string, v math32.Vector4) error
	SetMatrix3(name string, v math32.Matrix3) error
	SetMatrix4(name string, v math32.Matrix4) error

	// SetConstant sets a constant from any of the types accepted by the
	// typed setters (and int, which is set as int32).
	SetConstant(name string, v any) error

	// Release deletes the native object. It is safe to call more than once.
	Release()
}

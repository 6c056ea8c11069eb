// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"maps"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/jinzhu/copier"
)

// Material is the appearance an object is drawn with: a program,
// the textures bound to its samplers, and values for its constants.
type Material struct {
	Program *Reference[ProgramSource]

	// Textures are the textures by sampler constant name.
	Textures map[string]*Reference[TextureSource]

	// Constants are constant values by name, of the types accepted by
	// [gpu.Program.SetConstant]. Constants the program does not have
	// are skipped.
	Constants map[string]any
}

// NewMaterial returns a new material drawing with the given program.
func NewMaterial(prog *Reference[ProgramSource]) *Material {
	return &Material{Program: prog, Textures: map[string]*Reference[TextureSource]{}, Constants: map[string]any{}}
}

// SetTexture sets the texture of the given sampler.
func (mt *Material) SetTexture(sampler string, tex *Reference[TextureSource]) *Material {
	if mt.Textures == nil {
		mt.Textures = map[string]*Reference[TextureSource]{}
	}
	mt.Textures[sampler] = tex
	return mt
}

// SetConstant sets the value of the given constant.
func (mt *Material) SetConstant(name string, v any) *Material {
	if mt.Constants == nil {
		mt.Constants = map[string]any{}
	}
	mt.Constants[name] = v
	return mt
}

// Clone returns a copy of the material that can be changed
// independently. The references to the program and textures are
// shared with the original, while the constant values are copied.
func (mt *Material) Clone() *Material {
	nm := &Material{Program: mt.Program, Textures: maps.Clone(mt.Textures)}
	errors.Log(copier.CopyWithOption(&nm.Constants, &mt.Constants, copier.Option{CaseSensitive: true, DeepCopy: true}))
	return nm
}

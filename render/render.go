// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render defines the renderer contract and the scene types it
// consumes: objects with their meshes, materials, worlds of entities,
// and renderables such as the [Skybox] that set themselves up through
// a [Renderer] and then draw with it.
//
// Resources are described by source values (for example [ProgramSource])
// held in shared [Reference] handles. A renderer realizes each source
// once, keyed by its identity, and frees what it made for it when the
// last reference is released.
package render

// Option is a global render option.
type Option int32

const (
	// Culling discards back-facing triangles.
	Culling Option = iota

	// DepthTest discards fragments behind what was already drawn,
	// and makes Clear clear the depth buffer.
	DepthTest

	// StencilTest enables the stencil test, and makes Clear clear
	// the stencil buffer.
	StencilTest
)

var optionNames = []string{"Culling", "DepthTest", "StencilTest"}

func (op Option) String() string {
	if op >= 0 && int(op) < len(optionNames) {
		return optionNames[op]
	}
	return "Option(?)"
}

// OptionValues returns all of the render options.
func OptionValues() []Option {
	return []Option{Culling, DepthTest, StencilTest}
}

// Options are the values of all of the render options, as stored in
// configuration files.
type Options struct {
	Culling     bool `toml:"culling" yaml:"culling"`
	DepthTest   bool `toml:"depth-test" yaml:"depth-test"`
	StencilTest bool `toml:"stencil-test" yaml:"stencil-test"`
}

// DefaultOptions returns the options renderers start with:
// culling and depth testing without stencil testing.
func DefaultOptions() Options {
	return Options{Culling: true, DepthTest: true}
}

// Value returns the value of the given option.
func (o *Options) Value(op Option) bool {
	switch op {
	case Culling:
		return o.Culling
	case DepthTest:
		return o.DepthTest
	case StencilTest:
		return o.StencilTest
	}
	return false
}

// Apply sets all of the options on the given renderer.
func (o *Options) Apply(r Renderer) error {
	for _, op := range OptionValues() {
		if err := r.SetRenderOption(op, o.Value(op)); err != nil {
			return err
		}
	}
	return nil
}

// Renderer realizes resources on a GPU backend and draws with them.
type Renderer interface {
	// Prepare realizes the mesh of the object. Preparing an object
	// that is already prepared does nothing.
	Prepare(obj Object) error

	// PrepareProgram compiles and links the program. Preparing a
	// program that is already prepared does nothing.
	PrepareProgram(ref *Reference[ProgramSource]) error

	// PrepareTexture allocates and uploads the texture. Preparing a
	// texture that is already prepared does nothing.
	PrepareTexture(ref *Reference[TextureSource]) error

	// PrepareRenderTarget allocates the render target. Preparing a
	// render target that is already prepared does nothing.
	PrepareRenderTarget(ref *Reference[RenderTargetSource]) error

	// Render sets up the renderables of the world that are not set up,
	// renders them, and then renders each of its entities.
	Render(world *World) error

	// RenderObject renders one object with the given material,
	// preparing what it uses as needed.
	RenderObject(obj Object, mat *Material) error

	// Clear clears the color of the active render target, and its depth
	// and stencil according to the DepthTest and StencilTest options.
	Clear() error

	// RenderOption returns whether the given option is on.
	RenderOption(op Option) bool

	// SetRenderOption turns the given option on or off for all
	// subsequent renders and clears.
	SetRenderOption(op Option, on bool) error
}

// RenderableTypes are the kinds of [Renderable].
type RenderableTypes int32

const (
	// SkyboxType is the type of [Skybox].
	SkyboxType RenderableTypes = iota
)

func (rt RenderableTypes) String() string {
	if rt == SkyboxType {
		return "Skybox"
	}
	return "RenderableTypes(?)"
}

// Renderable is a scene element that draws itself with a renderer,
// after a one time setup of its resources.
type Renderable interface {
	// Type returns the kind of renderable.
	Type() RenderableTypes

	// IsSetup returns whether Setup has succeeded.
	IsSetup() bool

	// Setup prepares the resources of the renderable.
	Setup(r Renderer) error

	// Render draws the renderable.
	Render(r Renderer) error
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/base/imagex"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/shaders"
)

// ErrNotSetup is returned when rendering a renderable before its setup.
var ErrNotSetup = errors.New("render: renderable is not set up")

// Skybox is a cube textured from the inside with a cube texture,
// drawn around the camera behind everything else.
type Skybox struct {
	// Model is the unit cube.
	Model *Model

	// Texture is the cube texture.
	Texture *Reference[TextureSource]

	// Material draws the cube with the skybox program and texture.
	Material *Material

	setup bool
}

var _ Renderable = (*Skybox)(nil)

// SkyboxProgram returns the source of the program skyboxes are drawn
// with. It has view and projection constants, and a samplerCube named
// skybox.
func SkyboxProgram() *ProgramSource {
	return &ProgramSource{
		Name: "skybox",
		Shaders: []ShaderSource{
			{Type: gpu.VertexShader, Code: shaders.SkyboxVertex},
			{Type: gpu.FragmentShader, Code: shaders.SkyboxFragment},
		},
		Layout: PositionLayout(),
	}
}

// NewSkybox returns a new skybox whose cube texture is made from six
// square images of the same size, in the order +X, -X, +Y, -Y, +Z, -Z.
func NewSkybox(faces [6]image.Image) (*Skybox, error) {
	data, size, err := imagex.PackCube(faces)
	if err != nil {
		return nil, err
	}
	tex := &TextureSource{
		Type:      gpu.TextureCube,
		Format:    gpu.RGBA8,
		Width:     size,
		Height:    size,
		MipLevels: 1,
		Data:      data,
		Filter:    gpu.Linear,
		Wrap:      gpu.ClampToEdge,
	}
	sb := &Skybox{
		Model:   &Model{Name: "skybox", Meshes: []*Mesh{NewCube()}},
		Texture: NewReference(tex),
	}
	sb.Material = NewMaterial(NewReference(SkyboxProgram())).SetTexture("skybox", sb.Texture)
	return sb, nil
}

// OpenSkybox returns a new skybox with faces read from image files,
// in the order +X, -X, +Y, -Y, +Z, -Z.
func OpenSkybox(files [6]string) (*Skybox, error) {
	var faces [6]image.Image
	for i, fn := range files {
		img, _, err := imagex.Open(fn)
		if err != nil {
			return nil, err
		}
		faces[i] = img
	}
	return NewSkybox(faces)
}

func (sb *Skybox) Type() RenderableTypes { return SkyboxType }

func (sb *Skybox) IsSetup() bool { return sb.setup }

// Setup prepares the texture, program and cube of the skybox.
func (sb *Skybox) Setup(r Renderer) error {
	if err := r.PrepareTexture(sb.Texture); err != nil {
		return err
	}
	if err := r.PrepareProgram(sb.Material.Program); err != nil {
		return err
	}
	for _, ms := range sb.Model.Meshes {
		if err := r.Prepare(ms); err != nil {
			return err
		}
	}
	sb.setup = true
	return nil
}

// Render draws the cube with culling off, so that its inside faces are
// visible, and then restores the culling option.
func (sb *Skybox) Render(r Renderer) error {
	if !sb.setup {
		return errors.Log(ErrNotSetup)
	}
	if r.RenderOption(Culling) {
		if err := r.SetRenderOption(Culling, false); err != nil {
			return err
		}
		defer func() { errors.Log(r.SetRenderOption(Culling, true)) }()
	}
	for _, ms := range sb.Model.Meshes {
		if err := r.RenderObject(ms, sb.Material); err != nil {
			return err
		}
	}
	return nil
}

// Release releases the references of the skybox to its texture and
// program, freeing them in renderers once no one else uses them.
func (sb *Skybox) Release() {
	sb.Texture.Release()
	sb.Material.Program.Release()
	sb.setup = false
}

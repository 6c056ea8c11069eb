// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
	"github.com/egospodinova/amber-engine/math32"
	"github.com/egospodinova/amber-engine/render"
)

// meshBuffers are the prepared GL objects of a mesh.
type meshBuffers struct {
	vao      uint32
	vertices *Buffer
	indices  *Buffer

	// layoutSet is whether the vertex attributes point into vertices.
	layoutSet bool

	// program is the program whose layout was applied, for meshes
	// without a layout of their own.
	program *Program
}

// preparedProgram is a prepared program with the shaders it owns.
type preparedProgram struct {
	program *Program
	shaders []*Shader
}

func (pp *preparedProgram) release() {
	pp.program.Release()
	for _, sh := range pp.shaders {
		sh.Release()
	}
}

// Renderer is a [render.Renderer] on a [Device]. It keeps the GL
// resources prepared for each mesh and source, keyed by identity.
type Renderer struct {
	// ClearColor is the color Clear clears to.
	ClearColor math32.Vector4

	dev     *Device
	options render.Options

	meshes   map[*render.Mesh]*meshBuffers
	programs map[*render.ProgramSource]*preparedProgram
	textures map[*render.TextureSource]*Texture
	targets  map[*render.RenderTargetSource]*RenderTarget

	// view and projection are the camera transforms of the world
	// being rendered.
	view, projection math32.Matrix4
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer returns a new renderer on the given device, with the
// [render.DefaultOptions] applied.
func NewRenderer(dev *Device) (*Renderer, error) {
	r := &Renderer{
		ClearColor: math32.Vec4(0, 0, 0, 1),
		dev:        dev,
		meshes:     map[*render.Mesh]*meshBuffers{},
		programs:   map[*render.ProgramSource]*preparedProgram{},
		textures:   map[*render.TextureSource]*Texture{},
		targets:    map[*render.RenderTargetSource]*RenderTarget{},
		view:       math32.Identity4(),
		projection: math32.Identity4(),
	}
	dev.GL.DepthFunc(gl.LEQUAL)
	opts := render.DefaultOptions()
	if err := opts.Apply(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Device returns the device of the renderer.
func (r *Renderer) Device() *Device { return r.dev }

// capability returns the GL capability of a render option.
func capability(op render.Option) (uint32, error) {
	switch op {
	case render.Culling:
		return gl.CULL_FACE, nil
	case render.DepthTest:
		return gl.DEPTH_TEST, nil
	case render.StencilTest:
		return gl.STENCIL_TEST, nil
	}
	return 0, errors.Errorf("glgpu: render option %v: %w", op, gpu.ErrUnsupported)
}

func (r *Renderer) RenderOption(op render.Option) bool {
	return r.options.Value(op)
}

func (r *Renderer) SetRenderOption(op render.Option, on bool) error {
	cp, err := capability(op)
	if err != nil {
		return errors.Log(err)
	}
	if on {
		r.dev.GL.Enable(cp)
	} else {
		r.dev.GL.Disable(cp)
	}
	if err := r.dev.check("SetRenderOption"); err != nil {
		return err
	}
	switch op {
	case render.Culling:
		r.options.Culling = on
	case render.DepthTest:
		r.options.DepthTest = on
	case render.StencilTest:
		r.options.StencilTest = on
	}
	return nil
}

// Clear clears the color, and the depth and stencil if their
// tests are on, of the active render target.
func (r *Renderer) Clear() error {
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if r.options.DepthTest {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if r.options.StencilTest {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	c := r.dev.GL
	c.ClearColor(r.ClearColor.X, r.ClearColor.Y, r.ClearColor.Z, r.ClearColor.W)
	c.Clear(mask)
	return r.dev.check("Clear")
}

// Prepare makes the vertex array and buffers of the mesh of obj.
func (r *Renderer) Prepare(obj render.Object) error {
	ms := obj.Mesh()
	if ms == nil {
		return errors.Log(errors.Errorf("glgpu: Prepare: object has no mesh: %w", gpu.ErrNullResource))
	}
	if _, ok := r.meshes[ms]; ok {
		return nil
	}
	c := r.dev.GL
	mb := &meshBuffers{vao: c.GenVertexArray()}
	c.BindVertexArray(mb.vao)
	defer c.BindVertexArray(0)
	var err error
	verts := ms.VertexBytes()
	mb.vertices, err = NewBuffer(r.dev, gpu.VertexBuffer, len(verts), verts, gpu.StaticDraw)
	if err != nil {
		c.DeleteVertexArray(mb.vao)
		return err
	}
	if len(ms.Layout.Attributes) > 0 {
		if err := applyLayout(r.dev, ms.Layout, mb.vertices); err != nil {
			mb.release(c)
			return err
		}
		mb.layoutSet = true
	}
	if idx := ms.IndexBytes(); idx != nil {
		mb.indices, err = NewBuffer(r.dev, gpu.IndexBuffer, len(idx), idx, gpu.StaticDraw)
		if err == nil {
			err = mb.indices.Bind()
		}
		if err != nil {
			mb.release(c)
			return err
		}
	}
	r.meshes[ms] = mb
	slog.Debug("glgpu: mesh prepared", "name", ms.Name, "vertices", len(verts), "indexed", mb.indices != nil)
	return nil
}

func (mb *meshBuffers) release(c gl.Context) {
	if mb.vertices != nil {
		mb.vertices.Release()
	}
	if mb.indices != nil {
		mb.indices.Release()
	}
	c.DeleteVertexArray(mb.vao)
}

// Unprepare releases the GL objects prepared for the mesh of obj.
func (r *Renderer) Unprepare(obj render.Object) {
	ms := obj.Mesh()
	if mb, ok := r.meshes[ms]; ok {
		mb.release(r.dev.GL)
		delete(r.meshes, ms)
	}
}

// buildProgram compiles the shaders of a program source and links them.
func (r *Renderer) buildProgram(src *render.ProgramSource) (*preparedProgram, error) {
	pp := &preparedProgram{program: NewProgram(r.dev)}
	for i := range src.Shaders {
		ss := &src.Shaders[i]
		code, err := ss.Source()
		if err != nil {
			pp.release()
			return nil, errors.Log(err)
		}
		var sh *Shader
		if ss.Language == render.WGSL {
			sh, err = NewShaderWGSL(r.dev, ss.Type, code)
		} else {
			sh, err = NewShader(r.dev, ss.Type, code)
		}
		if err != nil {
			pp.release()
			return nil, err
		}
		pp.shaders = append(pp.shaders, sh)
		if err := pp.program.AddShader(sh); err != nil {
			pp.release()
			return nil, err
		}
	}
	if err := pp.program.Link(); err != nil {
		pp.release()
		return nil, err
	}
	pp.program.SetLayout(src.Layout)
	return pp, nil
}

// PrepareProgram compiles and links the program. It is released when
// the last reference to its source is released.
func (r *Renderer) PrepareProgram(ref *render.Reference[render.ProgramSource]) error {
	src := ref.Get()
	if src == nil {
		return errors.Log(errors.Errorf("glgpu: PrepareProgram: %w", gpu.ErrNullResource))
	}
	if _, ok := r.programs[src]; ok {
		return nil
	}
	pp, err := r.buildProgram(src)
	if err != nil {
		return err
	}
	r.programs[src] = pp
	ref.OnRelease(func() { r.unprepareProgram(src) })
	slog.Debug("glgpu: program prepared", "name", src.Name, "constants", len(pp.program.constants))
	return nil
}

func (r *Renderer) unprepareProgram(src *render.ProgramSource) {
	if pp, ok := r.programs[src]; ok {
		pp.release()
		delete(r.programs, src)
	}
}

// ReloadProgram rebuilds a prepared program from its source, reading
// its shader files again. If that fails, the previous program is kept.
func (r *Renderer) ReloadProgram(ref *render.Reference[render.ProgramSource]) error {
	src := ref.Get()
	old, ok := r.programs[src]
	if !ok {
		return r.PrepareProgram(ref)
	}
	pp, err := r.buildProgram(src)
	if err != nil {
		return err
	}
	old.release()
	r.programs[src] = pp
	for _, mb := range r.meshes {
		if mb.program == old.program {
			mb.layoutSet, mb.program = false, nil
		}
	}
	slog.Info("glgpu: program reloaded", "name", src.Name)
	return nil
}

// Program returns the program prepared for src, or nil.
func (r *Renderer) Program(src *render.ProgramSource) *Program {
	if pp, ok := r.programs[src]; ok {
		return pp.program
	}
	return nil
}

// PrepareTexture allocates the texture, uploads its data and sets its
// sampling modes. It is released when the last reference to its source
// is released.
func (r *Renderer) PrepareTexture(ref *render.Reference[render.TextureSource]) error {
	src := ref.Get()
	if src == nil {
		return errors.Log(errors.Errorf("glgpu: PrepareTexture: %w", gpu.ErrNullResource))
	}
	if _, ok := r.textures[src]; ok {
		return nil
	}
	tx, err := NewTexture(r.dev, src.Type, src.Format, src.Width, src.Height, src.Depth, src.MipLevels, src.Data)
	if err != nil {
		return err
	}
	if err := tx.SetFilterMode(src.Filter); err != nil {
		tx.Release()
		return err
	}
	if err := tx.SetWrapMode(src.Wrap); err != nil {
		tx.Release()
		return err
	}
	r.textures[src] = tx
	ref.OnRelease(func() { r.unprepareTexture(src) })
	return nil
}

func (r *Renderer) unprepareTexture(src *render.TextureSource) {
	if tx, ok := r.textures[src]; ok {
		tx.Release()
		delete(r.textures, src)
	}
}

// Texture returns the texture prepared for src, or nil.
func (r *Renderer) Texture(src *render.TextureSource) *Texture {
	return r.textures[src]
}

// PrepareRenderTarget allocates the render target. It is released when
// the last reference to its source is released.
func (r *Renderer) PrepareRenderTarget(ref *render.Reference[render.RenderTargetSource]) error {
	src := ref.Get()
	if src == nil {
		return errors.Log(errors.Errorf("glgpu: PrepareRenderTarget: %w", gpu.ErrNullResource))
	}
	if _, ok := r.targets[src]; ok {
		return nil
	}
	rt, err := NewRenderTarget(r.dev, src.Width, src.Height, src.Format, src.Depth)
	if err != nil {
		return err
	}
	r.targets[src] = rt
	ref.OnRelease(func() {
		if rt, ok := r.targets[src]; ok {
			rt.Release()
			delete(r.targets, src)
		}
	})
	return nil
}

// RenderTarget returns the render target prepared for src, or nil.
func (r *Renderer) RenderTarget(src *render.RenderTargetSource) *RenderTarget {
	return r.targets[src]
}

// SetRenderTarget directs subsequent clears and draws to the prepared
// render target of ref, or to the default framebuffer if ref is nil.
func (r *Renderer) SetRenderTarget(ref *render.Reference[render.RenderTargetSource]) error {
	if ref == nil {
		if rt := r.dev.RenderTarget(); rt != nil {
			return rt.Unbind()
		}
		return nil
	}
	rt, ok := r.targets[ref.Get()]
	if !ok {
		return errors.Log(errors.Errorf("glgpu: SetRenderTarget: render target is not prepared: %w", gpu.ErrNullResource))
	}
	return rt.Bind()
}

// Render renders the world: its renderables, setting up those that are
// not set up, and then its entities, with the view and projection of
// its camera.
func (r *Renderer) Render(world *render.World) error {
	r.view = world.Camera.View()
	r.projection = world.Camera.Projection()
	for _, rd := range world.Renderables {
		if !rd.IsSetup() {
			if err := rd.Setup(r); err != nil {
				return err
			}
		}
		if err := rd.Render(r); err != nil {
			return err
		}
	}
	for _, ent := range world.Entities {
		if ent.Object == nil || ent.Material == nil {
			continue
		}
		if err := r.draw(ent.Object, ent.Material, ent.Transform); err != nil {
			return err
		}
	}
	return nil
}

// RenderObject renders obj with mat at the origin, preparing the mesh,
// program and textures as needed.
func (r *Renderer) RenderObject(obj render.Object, mat *render.Material) error {
	return r.draw(obj, mat, math32.Identity4())
}

// draw renders obj with mat and the given model transform.
func (r *Renderer) draw(obj render.Object, mat *render.Material, model math32.Matrix4) error {
	if mat == nil || mat.Program.Get() == nil {
		return errors.Log(errors.Errorf("glgpu: rendering without a program: %w", gpu.ErrNullResource))
	}
	if err := r.Prepare(obj); err != nil {
		return err
	}
	if err := r.PrepareProgram(mat.Program); err != nil {
		return err
	}
	pp := r.programs[mat.Program.Get()]
	pr := pp.program
	if err := pr.Bind(); err != nil {
		return err
	}
	for name, v := range map[string]math32.Matrix4{"model": model, "view": r.view, "projection": r.projection} {
		if pr.HasConstant(name) {
			if err := pr.SetMatrix4(name, v); err != nil {
				return err
			}
		}
	}
	for _, name := range slices.Sorted(maps.Keys(mat.Constants)) {
		if !pr.HasConstant(name) {
			slog.Debug("glgpu: skipping constant the program does not have", "name", name)
			continue
		}
		if err := pr.SetConstant(name, mat.Constants[name]); err != nil {
			return err
		}
	}
	if err := r.bindTextures(pr, mat); err != nil {
		return err
	}

	ms := obj.Mesh()
	mb := r.meshes[ms]
	c := r.dev.GL
	c.BindVertexArray(mb.vao)
	defer c.BindVertexArray(0)
	layout := ms.Layout
	if !mb.layoutSet || (mb.program != nil && mb.program != pr) {
		if err := pr.ApplyLayout(mb.vertices); err != nil {
			return err
		}
		mb.layoutSet, mb.program = true, pr
	}
	if len(layout.Attributes) == 0 {
		layout = pr.Layout()
	}
	count := int32(ms.DrawCount(layout))
	mode := primitive(ms.Mode)
	if mb.indices != nil {
		if err := mb.indices.Bind(); err != nil {
			return err
		}
		c.DrawElements(mode, count, gl.UNSIGNED_INT, 0)
	} else {
		c.DrawArrays(mode, 0, count)
	}
	return r.dev.check("drawing " + ms.Name)
}

// bindTextures binds the textures of mat at consecutive units, in
// sampler name order, and sets the samplers to them.
func (r *Renderer) bindTextures(pr *Program, mat *render.Material) error {
	unit := uint32(0)
	for _, name := range slices.Sorted(maps.Keys(mat.Textures)) {
		ref := mat.Textures[name]
		if err := r.PrepareTexture(ref); err != nil {
			return err
		}
		tx := r.textures[ref.Get()]
		if tx.slot != unit {
			if err := tx.Unbind(); err != nil {
				return err
			}
			if err := tx.SetBindSlot(unit); err != nil {
				return err
			}
		}
		if err := tx.Bind(); err != nil {
			return err
		}
		if pr.HasConstant(name) {
			if err := pr.SetInt(name, int32(unit)); err != nil {
				return err
			}
		}
		unit++
	}
	return nil
}

func primitive(pm render.Primitives) uint32 {
	switch pm {
	case render.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case render.Lines:
		return gl.LINES
	case render.LineStrip:
		return gl.LINE_STRIP
	case render.Points:
		return gl.POINTS
	}
	return gl.TRIANGLES
}

// Release releases everything the renderer prepared.
func (r *Renderer) Release() {
	for _, mb := range r.meshes {
		mb.release(r.dev.GL)
	}
	for _, pp := range r.programs {
		pp.release()
	}
	for _, tx := range r.textures {
		tx.Release()
	}
	for _, rt := range r.targets {
		rt.Release()
	}
	clear(r.meshes)
	clear(r.programs)
	clear(r.textures)
	clear(r.targets)
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
	"github.com/egospodinova/amber-engine/math32"
)

// LinkError is returned when a program fails to link.
type LinkError struct {
	// Log is the linker output.
	Log string
}

func (le *LinkError) Error() string {
	return "glgpu: linking program: " + le.Log
}

func (le *LinkError) Unwrap() error { return gpu.ErrLink }

// Program is a GL program made of [Shader] stages. Its constants are
// the active uniforms found when it is linked, and can only be set
// while it is the current program of its device.
type Program struct {
	Object
	shaders   []*Shader
	layout    gpu.Layout
	constants map[string]int32
	linked    bool
	bound     bool
}

var _ gpu.Program = (*Program)(nil)

// NewProgram returns a new unlinked program with no stages.
func NewProgram(dev *Device) *Program {
	pr := &Program{}
	pr.dev = dev
	pr.handle = dev.GL.CreateProgram()
	return pr
}

func (pr *Program) IsLinked() bool { return pr.linked }

func (pr *Program) IsBound() bool { return pr.bound }

func (pr *Program) BindType() gpu.BindTypes { return gpu.BindProgram }

func (pr *Program) BindSlot() uint32 { return 0 }

func (pr *Program) Layout() gpu.Layout { return pr.layout }

func (pr *Program) SetLayout(layout gpu.Layout) { pr.layout = layout }

// Shaders returns the stages of the program.
func (pr *Program) Shaders() []*Shader { return pr.shaders }

// AddShader appends a stage, which must be a [*Shader] of the same
// device. A linked program becomes unlinked.
func (pr *Program) AddShader(sh gpu.Shader) error {
	if pr.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Program.AddShader: %w", gpu.ErrNullResource))
	}
	gs, ok := sh.(*Shader)
	if !ok || gs.dev != pr.dev {
		return errors.Log(errors.Errorf("glgpu: Program.AddShader: shader of another device: %w", gpu.ErrUnsupported))
	}
	if gs.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Program.AddShader: %w", gpu.ErrNullResource))
	}
	pr.shaders = append(pr.shaders, gs)
	if pr.linked {
		if pr.bound {
			errors.Log(pr.Unbind())
		}
		pr.linked = false
		pr.constants = nil
	}
	return nil
}

// Link links the stages of the program and finds its constants. Array
// constants are found under their plain name for the first element,
// and as name[i] for each element. On failure the program stays
// unlinked and a [*LinkError] is returned.
func (pr *Program) Link() error {
	if pr.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Program.Link: %w", gpu.ErrNullResource))
	}
	c := pr.dev.GL
	for _, sh := range pr.shaders {
		c.AttachShader(pr.handle, sh.handle)
	}
	c.LinkProgram(pr.handle)
	for _, sh := range pr.shaders {
		c.DetachShader(pr.handle, sh.handle)
	}
	if err := pr.dev.check("Program.Link"); err != nil {
		return err
	}
	pr.linked, pr.constants = false, nil
	if c.GetProgrami(pr.handle, gl.LINK_STATUS) == 0 {
		return errors.Log(&LinkError{Log: c.GetProgramInfoLog(pr.handle)})
	}
	pr.constants = map[string]int32{}
	n := c.GetProgrami(pr.handle, gl.ACTIVE_UNIFORMS)
	for i := range uint32(n) {
		name, size, _ := c.GetActiveUniform(pr.handle, i)
		name = strings.TrimSuffix(name, "[0]")
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		pr.constants[name] = c.GetUniformLocation(pr.handle, name)
		for j := int32(1); j < size; j++ {
			el := fmt.Sprintf("%s[%d]", name, j)
			pr.constants[el] = c.GetUniformLocation(pr.handle, el)
		}
	}
	pr.linked = true
	slog.Debug("glgpu: program linked", "stages", len(pr.shaders), "constants", len(pr.constants))
	return pr.dev.check("Program.Link")
}

// HasConstant returns whether name is an active constant of the
// linked program.
func (pr *Program) HasConstant(name string) bool {
	_, ok := pr.constants[name]
	return ok
}

// Constants returns the names of the active constants.
func (pr *Program) Constants() []string {
	names := make([]string, 0, len(pr.constants))
	for name := range pr.constants {
		names = append(names, name)
	}
	return names
}

// Bind makes the linked program the current program.
func (pr *Program) Bind() error {
	if pr.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: Program.Bind: %w", gpu.ErrNullResource))
	}
	if !pr.linked {
		return errors.Log(errors.Errorf("glgpu: Program.Bind: %w", gpu.ErrNotLinked))
	}
	pr.dev.GL.UseProgram(pr.handle)
	if err := pr.dev.check("Program.Bind"); err != nil {
		return err
	}
	pr.dev.bindProgram(pr)
	return nil
}

// Unbind clears the current program if it is this program.
func (pr *Program) Unbind() error {
	if !pr.bound {
		return nil
	}
	pr.dev.GL.UseProgram(0)
	pr.dev.unbindProgram(pr)
	return pr.dev.check("Program.Unbind")
}

// location returns the location of a constant that can be set now.
func (pr *Program) location(name string) (int32, error) {
	switch {
	case pr.handle == 0:
		return -1, errors.Log(errors.Errorf("glgpu: setting constant %q: %w", name, gpu.ErrNullResource))
	case !pr.linked:
		return -1, errors.Log(errors.Errorf("glgpu: setting constant %q: %w", name, gpu.ErrNotLinked))
	case !pr.bound:
		return -1, errors.Log(errors.Errorf("glgpu: setting constant %q: program is not current: %w", name, gpu.ErrBindState))
	}
	loc, ok := pr.constants[name]
	if !ok {
		return -1, errors.Log(errors.Errorf("glgpu: setting constant %q: %w", name, gpu.ErrUnknownConstant))
	}
	return loc, nil
}

// set sets the constant name with fn.
func (pr *Program) set(name string, fn func(c gl.Context, loc int32)) error {
	loc, err := pr.location(name)
	if err != nil {
		return err
	}
	fn(pr.dev.GL, loc)
	return pr.dev.check("setting constant " + name)
}

func (pr *Program) SetInt(name string, v int32) error {
	return pr.set(name, func(c gl.Context, loc int32) { c.Uniform1i(loc, v) })
}

func (pr *Program) SetUint(name string, v uint32) error {
	return pr.set(name, func(c gl.Context, loc int32) { c.Uniform1ui(loc, v) })
}

func (pr *Program) SetFloat(name string, v float32) error {
	return pr.set(name, func(c gl.Context, loc int32) { c.Uniform1f(loc, v) })
}

func (pr *Program) SetVector2(name string, v math32.Vector2) error {
	return pr.set(name, func(c gl.Context, loc int32) { c.Uniform2f(loc, v.X, v.Y) })
}

func (pr *Program) SetVector3(name string, v math32.Vector3) error {
	return pr.set(name, func(c gl.Context, loc int32) { c.Uniform3f(loc, v.X, v.Y, v.Z) })
}

func (pr *Program) SetVector4(name string, v math32.Vector4) error {
	return pr.set(name, func(c gl.Context, loc int32) { c.Uniform4f(loc, v.X, v.Y, v.Z, v.W) })
}

func (pr *Program) SetMatrix3(name string, v math32.Matrix3) error {
	return pr.set(name, func(c gl.Context, loc int32) { c.UniformMatrix3fv(loc, false, v.Slice()) })
}

func (pr *Program) SetMatrix4(name string, v math32.Matrix4) error {
	return pr.set(name, func(c gl.Context, loc int32) { c.UniformMatrix4fv(loc, false, v.Slice()) })
}

// SetConstant sets a constant from a value of any of the types of the
// typed setters, or int, float64 or bool.
func (pr *Program) SetConstant(name string, v any) error {
	switch x := v.(type) {
	case int:
		return pr.SetInt(name, int32(x))
	case int32:
		return pr.SetInt(name, x)
	case bool:
		if x {
			return pr.SetInt(name, 1)
		}
		return pr.SetInt(name, 0)
	case uint32:
		return pr.SetUint(name, x)
	case float32:
		return pr.SetFloat(name, x)
	case float64:
		return pr.SetFloat(name, float32(x))
	case math32.Vector2:
		return pr.SetVector2(name, x)
	case math32.Vector3:
		return pr.SetVector3(name, x)
	case math32.Vector4:
		return pr.SetVector4(name, x)
	case math32.Matrix3:
		return pr.SetMatrix3(name, x)
	case math32.Matrix4:
		return pr.SetMatrix4(name, x)
	}
	return errors.Log(errors.Errorf("glgpu: setting constant %q: value of type %T: %w", name, v, gpu.ErrUnsupported))
}

// ApplyLayout binds the given vertex buffer and points the attributes
// of the program layout at it, in the current vertex array.
func (pr *Program) ApplyLayout(vertices *Buffer) error {
	return applyLayout(pr.dev, pr.layout, vertices)
}

func applyLayout(dev *Device, layout gpu.Layout, vertices *Buffer) error {
	if vertices.Type() != gpu.VertexBuffer {
		return errors.Log(errors.Errorf("glgpu: applying layout to a %v: %w", vertices.Type(), gpu.ErrUnsupported))
	}
	if err := vertices.Bind(); err != nil {
		return err
	}
	stride := int32(layout.VertexStride())
	for _, at := range layout.Attributes {
		ct, err := ComponentType(at.Type)
		if err != nil {
			return errors.Log(err)
		}
		dev.GL.EnableVertexAttribArray(at.Index)
		dev.GL.VertexAttribPointer(at.Index, int32(at.Components), ct, at.Normalized, stride, at.Offset)
	}
	return dev.check("applying layout")
}

// Move returns a new Program owning the GL program, with its stages,
// layout and constants, current in its place if this one was current.
// It leaves this program null.
func (pr *Program) Move() *Program {
	np := &Program{shaders: pr.shaders, layout: pr.layout, constants: pr.constants, linked: pr.linked, bound: pr.bound}
	np.dev = pr.dev
	np.handle = pr.take()
	if pr.dev.program == pr {
		pr.dev.program = np
	}
	pr.shaders, pr.constants, pr.linked, pr.bound = nil, nil, false, false
	return np
}

// Release unbinds and deletes the GL program. The shaders are not released.
func (pr *Program) Release() {
	if pr.handle == 0 {
		return
	}
	errors.Log(pr.Unbind())
	pr.dev.GL.DeleteProgram(pr.take())
	pr.linked, pr.constants = false, nil
}

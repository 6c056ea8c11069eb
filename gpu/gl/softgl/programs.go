// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgl

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/egospodinova/amber-engine/gpu/gl"
)

type shader struct {
	xtype    uint32
	source   string
	compiled bool
	log      string
}

type uniform struct {
	name     string
	size     int32
	xtype    uint32
	location int32
}

type program struct {
	attached []uint32
	linked   bool
	log      string
	uniforms []uniform
	values   map[int32]any
}

// uniformRe matches plain (non-block) uniform declarations.
var uniformRe = regexp.MustCompile(`\buniform\s+(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)

var uniformTypes = map[string]uint32{
	"float":       gl.FLOAT,
	"vec2":        gl.FLOAT_VEC2,
	"vec3":        gl.FLOAT_VEC3,
	"vec4":        gl.FLOAT_VEC4,
	"int":         gl.INT,
	"ivec2":       gl.INT_VEC2,
	"ivec3":       gl.INT_VEC3,
	"ivec4":       gl.INT_VEC4,
	"uint":        gl.UNSIGNED_INT,
	"uvec2":       gl.UNSIGNED_INT_VEC2,
	"uvec3":       gl.UNSIGNED_INT_VEC3,
	"uvec4":       gl.UNSIGNED_INT_VEC4,
	"bool":        gl.BOOL,
	"mat2":        gl.FLOAT_MAT2,
	"mat3":        gl.FLOAT_MAT3,
	"mat4":        gl.FLOAT_MAT4,
	"sampler1D":   gl.SAMPLER_1D,
	"sampler2D":   gl.SAMPLER_2D,
	"sampler3D":   gl.SAMPLER_3D,
	"samplerCube": gl.SAMPLER_CUBE,
}

func validShaderType(xtype uint32) bool {
	switch xtype {
	case gl.VERTEX_SHADER, gl.FRAGMENT_SHADER, gl.GEOMETRY_SHADER,
		gl.TESS_CONTROL_SHADER, gl.TESS_EVALUATION_SHADER, gl.COMPUTE_SHADER:
		return true
	}
	return false
}

func (c *Context) CreateShader(xtype uint32) uint32 {
	c.call("CreateShader")
	if !validShaderType(xtype) {
		c.fail("CreateShader", gl.INVALID_ENUM)
		return 0
	}
	name := c.gen()
	c.shaders[name] = &shader{xtype: xtype}
	return name
}

func (c *Context) DeleteShader(sh uint32) {
	c.call("DeleteShader")
	delete(c.shaders, sh)
}

func (c *Context) shader(name string, sh uint32) *shader {
	s := c.shaders[sh]
	if s == nil {
		c.fail(name, gl.INVALID_VALUE)
	}
	return s
}

func (c *Context) ShaderSource(sh uint32, src string) {
	c.call("ShaderSource")
	if s := c.shader("ShaderSource", sh); s != nil {
		s.source = src
	}
}

// CompileShader succeeds for sources that define a main function
// and do not contain an #error directive.
func (c *Context) CompileShader(sh uint32) {
	c.call("CompileShader")
	s := c.shader("CompileShader", sh)
	if s == nil {
		return
	}
	switch {
	case strings.Contains(s.source, "#error"):
		line := 1 + strings.Count(s.source[:strings.Index(s.source, "#error")], "\n")
		s.compiled, s.log = false, fmt.Sprintf("0:%d: error: #error directive", line)
	case !strings.Contains(s.source, "void main"):
		s.compiled, s.log = false, "0:1: error: no function main defined"
	default:
		s.compiled, s.log = true, ""
	}
}

func (c *Context) GetShaderi(sh, pname uint32) int32 {
	c.call("GetShaderi")
	s := c.shader("GetShaderi", sh)
	if s == nil {
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		return boolInt(s.compiled)
	case gl.INFO_LOG_LENGTH:
		return logLength(s.log)
	}
	c.fail("GetShaderi", gl.INVALID_ENUM)
	return 0
}

func (c *Context) GetShaderInfoLog(sh uint32) string {
	c.call("GetShaderInfoLog")
	if s := c.shader("GetShaderInfoLog", sh); s != nil {
		return s.log
	}
	return ""
}

func (c *Context) CreateProgram() uint32 {
	c.call("CreateProgram")
	name := c.gen()
	c.programs[name] = &program{}
	return name
}

func (c *Context) DeleteProgram(prog uint32) {
	c.call("DeleteProgram")
	delete(c.programs, prog)
	if c.currentProgram == prog {
		c.currentProgram = 0
	}
}

func (c *Context) program(name string, prog uint32) *program {
	p := c.programs[prog]
	if p == nil {
		c.fail(name, gl.INVALID_VALUE)
	}
	return p
}

func (c *Context) AttachShader(prog, sh uint32) {
	c.call("AttachShader")
	p := c.program("AttachShader", prog)
	if p == nil || c.shader("AttachShader", sh) == nil {
		return
	}
	if slices.Contains(p.attached, sh) {
		c.fail("AttachShader", gl.INVALID_OPERATION)
		return
	}
	p.attached = append(p.attached, sh)
}

func (c *Context) DetachShader(prog, sh uint32) {
	c.call("DetachShader")
	p := c.program("DetachShader", prog)
	if p == nil {
		return
	}
	i := slices.Index(p.attached, sh)
	if i < 0 {
		c.fail("DetachShader", gl.INVALID_OPERATION)
		return
	}
	p.attached = slices.Delete(p.attached, i, i+1)
}

// LinkProgram succeeds when all of the attached shaders are compiled and
// there is a vertex shader, or a lone compute shader. The active uniforms
// are the plain uniform declarations of all the stages, with locations
// assigned in declaration order and arrays taking one location per element.
func (c *Context) LinkProgram(prog uint32) {
	c.call("LinkProgram")
	p := c.program("LinkProgram", prog)
	if p == nil {
		return
	}
	p.linked, p.log, p.uniforms, p.values = false, "", nil, nil
	stages := map[uint32]bool{}
	for _, sh := range p.attached {
		s := c.shaders[sh]
		if s == nil || !s.compiled {
			p.log = "error: attached shader is not compiled"
			return
		}
		stages[s.xtype] = true
	}
	compute := stages[gl.COMPUTE_SHADER] && len(stages) == 1
	if !stages[gl.VERTEX_SHADER] && !compute {
		p.log = "error: program has no vertex shader"
		return
	}
	loc := int32(0)
	seen := map[string]bool{}
	for _, sh := range p.attached {
		for _, m := range uniformRe.FindAllStringSubmatch(c.shaders[sh].source, -1) {
			xtype, ok := uniformTypes[m[1]]
			if !ok || seen[m[2]] {
				continue
			}
			seen[m[2]] = true
			u := uniform{name: m[2], size: 1, xtype: xtype, location: loc}
			if m[3] != "" {
				n, _ := strconv.Atoi(m[3])
				u.name += "[0]"
				u.size = int32(max(n, 1))
			}
			loc += u.size
			p.uniforms = append(p.uniforms, u)
		}
	}
	p.linked = true
	p.values = map[int32]any{}
}

func (c *Context) UseProgram(prog uint32) {
	c.call("UseProgram")
	if prog != 0 {
		p := c.program("UseProgram", prog)
		if p == nil {
			return
		}
		if !p.linked {
			c.fail("UseProgram", gl.INVALID_OPERATION)
			return
		}
	}
	c.currentProgram = prog
}

func (c *Context) GetProgrami(prog, pname uint32) int32 {
	c.call("GetProgrami")
	p := c.program("GetProgrami", prog)
	if p == nil {
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		return boolInt(p.linked)
	case gl.INFO_LOG_LENGTH:
		return logLength(p.log)
	case gl.ACTIVE_UNIFORMS:
		return int32(len(p.uniforms))
	}
	c.fail("GetProgrami", gl.INVALID_ENUM)
	return 0
}

func (c *Context) GetProgramInfoLog(prog uint32) string {
	c.call("GetProgramInfoLog")
	if p := c.program("GetProgramInfoLog", prog); p != nil {
		return p.log
	}
	return ""
}

func (c *Context) GetActiveUniform(prog, index uint32) (string, int32, uint32) {
	c.call("GetActiveUniform")
	p := c.program("GetActiveUniform", prog)
	if p == nil {
		return "", 0, 0
	}
	if int(index) >= len(p.uniforms) {
		c.fail("GetActiveUniform", gl.INVALID_VALUE)
		return "", 0, 0
	}
	u := p.uniforms[index]
	return u.name, u.size, u.xtype
}

func (c *Context) GetUniformLocation(prog uint32, name string) int32 {
	c.call("GetUniformLocation")
	p := c.program("GetUniformLocation", prog)
	if p == nil {
		return -1
	}
	if !p.linked {
		c.fail("GetUniformLocation", gl.INVALID_OPERATION)
		return -1
	}
	base, elem := name, 0
	if i := strings.IndexByte(name, '['); i > 0 && strings.HasSuffix(name, "]") {
		n, err := strconv.Atoi(name[i+1 : len(name)-1])
		if err != nil {
			return -1
		}
		base, elem = name[:i], n
	}
	for _, u := range p.uniforms {
		if strings.TrimSuffix(u.name, "[0]") == base && elem < int(u.size) {
			return u.location + int32(elem)
		}
	}
	return -1
}

// uniformType returns the type of the uniform at loc of the current program.
func (c *Context) uniformType(p *program, loc int32) (uint32, bool) {
	for _, u := range p.uniforms {
		if loc >= u.location && loc < u.location+u.size {
			return u.xtype, true
		}
	}
	return 0, false
}

// setUniform stores v at loc of the current program if the uniform there
// has one of the given types. Location -1 is silently ignored.
func (c *Context) setUniform(name string, loc int32, v any, types ...uint32) {
	c.call(name)
	p := c.programs[c.currentProgram]
	if p == nil {
		c.fail(name, gl.INVALID_OPERATION)
		return
	}
	if loc == -1 {
		return
	}
	xtype, ok := c.uniformType(p, loc)
	if !ok || !slices.Contains(types, xtype) {
		c.fail(name, gl.INVALID_OPERATION)
		return
	}
	p.values[loc] = v
}

func (c *Context) Uniform1i(loc, v int32) {
	c.setUniform("Uniform1i", loc, v, gl.INT, gl.BOOL, gl.SAMPLER_1D, gl.SAMPLER_2D, gl.SAMPLER_3D, gl.SAMPLER_CUBE)
}

func (c *Context) Uniform1ui(loc int32, v uint32) {
	c.setUniform("Uniform1ui", loc, v, gl.UNSIGNED_INT, gl.BOOL)
}

func (c *Context) Uniform1f(loc int32, v float32) {
	c.setUniform("Uniform1f", loc, v, gl.FLOAT, gl.BOOL)
}

func (c *Context) Uniform2f(loc int32, x, y float32) {
	c.setUniform("Uniform2f", loc, [2]float32{x, y}, gl.FLOAT_VEC2)
}

func (c *Context) Uniform3f(loc int32, x, y, z float32) {
	c.setUniform("Uniform3f", loc, [3]float32{x, y, z}, gl.FLOAT_VEC3)
}

func (c *Context) Uniform4f(loc int32, x, y, z, w float32) {
	c.setUniform("Uniform4f", loc, [4]float32{x, y, z, w}, gl.FLOAT_VEC4)
}

func (c *Context) UniformMatrix3fv(loc int32, transpose bool, v []float32) {
	if len(v) < 9 {
		c.call("UniformMatrix3fv")
		c.fail("UniformMatrix3fv", gl.INVALID_VALUE)
		return
	}
	c.setUniform("UniformMatrix3fv", loc, append([]float32(nil), v[:9]...), gl.FLOAT_MAT3)
}

func (c *Context) UniformMatrix4fv(loc int32, transpose bool, v []float32) {
	if len(v) < 16 {
		c.call("UniformMatrix4fv")
		c.fail("UniformMatrix4fv", gl.INVALID_VALUE)
		return
	}
	c.setUniform("UniformMatrix4fv", loc, append([]float32(nil), v[:16]...), gl.FLOAT_MAT4)
}

// UniformValue returns the value last set at loc of the given program:
// an int32, uint32, float32, [2]float32, [3]float32, [4]float32 or
// []float32 for matrices.
func (c *Context) UniformValue(prog uint32, loc int32) (any, bool) {
	p := c.programs[prog]
	if p == nil {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// CurrentProgram returns the program in use.
func (c *Context) CurrentProgram() uint32 {
	return c.currentProgram
}

// AttachedShaders returns the shaders attached to the given program.
func (c *Context) AttachedShaders(prog uint32) []uint32 {
	if p := c.programs[prog]; p != nil {
		return slices.Clone(p.attached)
	}
	return nil
}

// IsProgram returns whether prog names an existing program.
func (c *Context) IsProgram(prog uint32) bool {
	return c.programs[prog] != nil
}

// IsShader returns whether sh names an existing shader.
func (c *Context) IsShader(sh uint32) bool {
	return c.shaders[sh] != nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// logLength returns the info log length including the terminating null.
func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

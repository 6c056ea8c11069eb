// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package softgl provides a [gl.Context] that emulates the OpenGL object
// and binding state machine in memory, without any driver or display.
// It validates calls the way a core profile context does, recording
// GL errors for [Context.GetError], and keeps the uploaded data, uniform
// values and issued draws available for inspection.
//
// It does not rasterize: draws and clears are only recorded.
package softgl

import (
	"log/slog"

	"github.com/egospodinova/amber-engine/gpu/gl"
)

// MaxTextureUnits is the number of texture units of the context.
const MaxTextureUnits = 32

// Context is a software [gl.Context]. The zero value is not usable;
// use [New].
type Context struct {
	// Calls counts the calls made to each function, by name.
	Calls map[string]int

	// Uploads are all of the texture image uploads, in call order.
	Uploads []Upload

	// Draws are all of the draw calls, in call order.
	Draws []Draw

	// Clears are the masks of all of the Clear calls, in call order.
	Clears []uint32

	next uint32
	errs []uint32

	buffers      map[uint32]*buffer
	textures     map[uint32]*texture
	shaders      map[uint32]*shader
	programs     map[uint32]*program
	vertexArrays map[uint32]*vertexArray
	framebuffers map[uint32]*framebuffer

	bufferBindings  map[uint32]uint32
	indexedBindings map[indexedBinding]uint32
	textureUnits    map[unitBinding]uint32
	activeUnit      uint32
	currentProgram  uint32
	currentVAO      uint32
	framebuffer     uint32

	enabled    map[uint32]bool
	clearColor [4]float32
	viewport   [4]int32
	depthFunc  uint32
}

type indexedBinding struct {
	target, index uint32
}

type unitBinding struct {
	unit, target uint32
}

var _ gl.Context = (*Context)(nil)

// New returns a new software context with the default GL state.
func New() *Context {
	return &Context{
		Calls:           map[string]int{},
		buffers:         map[uint32]*buffer{},
		textures:        map[uint32]*texture{},
		shaders:         map[uint32]*shader{},
		programs:        map[uint32]*program{},
		vertexArrays:    map[uint32]*vertexArray{},
		framebuffers:    map[uint32]*framebuffer{},
		bufferBindings:  map[uint32]uint32{},
		indexedBindings: map[indexedBinding]uint32{},
		textureUnits:    map[unitBinding]uint32{},
		enabled:         map[uint32]bool{},
		depthFunc:       gl.LESS,
	}
}

// call records a call to the named function.
func (c *Context) call(name string) {
	c.Calls[name]++
}

// fail records a GL error raised by the named function.
func (c *Context) fail(name string, code uint32) {
	slog.Debug("softgl: error", "call", name, "error", gl.ErrorString(code))
	c.errs = append(c.errs, code)
}

// gen returns a new object name.
func (c *Context) gen() uint32 {
	c.next++
	return c.next
}

func (c *Context) GetError() uint32 {
	c.call("GetError")
	if len(c.errs) == 0 {
		return gl.NO_ERROR
	}
	code := c.errs[0]
	c.errs = c.errs[1:]
	return code
}

// Errors returns and clears all of the pending errors.
func (c *Context) Errors() []uint32 {
	errs := c.errs
	c.errs = nil
	return errs
}

func (c *Context) GetString(name uint32) string {
	c.call("GetString")
	switch name {
	case gl.VENDOR:
		return "amber"
	case gl.RENDERER:
		return "softgl"
	case gl.VERSION:
		return "4.5 softgl"
	case gl.SHADING_LANGUAGE_VERSION:
		return "4.50"
	}
	c.fail("GetString", gl.INVALID_ENUM)
	return ""
}

// LiveObjects returns the number of objects of any kind that have been
// created and not deleted.
func (c *Context) LiveObjects() int {
	return len(c.buffers) + len(c.textures) + len(c.shaders) + len(c.programs) + len(c.vertexArrays) + len(c.framebuffers)
}

func (c *Context) Enable(capability uint32) {
	c.call("Enable")
	if !validCapability(capability) {
		c.fail("Enable", gl.INVALID_ENUM)
		return
	}
	c.enabled[capability] = true
}

func (c *Context) Disable(capability uint32) {
	c.call("Disable")
	if !validCapability(capability) {
		c.fail("Disable", gl.INVALID_ENUM)
		return
	}
	c.enabled[capability] = false
}

func (c *Context) IsEnabled(capability uint32) bool {
	c.call("IsEnabled")
	if !validCapability(capability) {
		c.fail("IsEnabled", gl.INVALID_ENUM)
		return false
	}
	return c.enabled[capability]
}

func validCapability(capability uint32) bool {
	switch capability {
	case gl.CULL_FACE, gl.DEPTH_TEST, gl.STENCIL_TEST, gl.BLEND:
		return true
	}
	return false
}

func (c *Context) DepthFunc(fn uint32) {
	c.call("DepthFunc")
	c.depthFunc = fn
}

// DepthFuncValue returns the current depth comparison function.
func (c *Context) DepthFuncValue() uint32 {
	return c.depthFunc
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.call("ClearColor")
	c.clearColor = [4]float32{r, g, b, a}
}

// ClearColorValue returns the current clear color.
func (c *Context) ClearColorValue() [4]float32 {
	return c.clearColor
}

func (c *Context) Clear(mask uint32) {
	c.call("Clear")
	if mask&^(gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT|gl.STENCIL_BUFFER_BIT) != 0 {
		c.fail("Clear", gl.INVALID_VALUE)
		return
	}
	c.Clears = append(c.Clears, mask)
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.call("Viewport")
	if width < 0 || height < 0 {
		c.fail("Viewport", gl.INVALID_VALUE)
		return
	}
	c.viewport = [4]int32{x, y, width, height}
}

// ViewportValue returns the current viewport.
func (c *Context) ViewportValue() [4]int32 {
	return c.viewport
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glgpu implements the [gpu] resources over an OpenGL 4.5 core
// [gl.Context], and a [render.Renderer] drawing with them.
//
// All resources are created on a [Device], which owns the context and
// its binding table: the resource occupying each buffer binding point,
// texture unit, program slot and framebuffer slot. Binding a resource
// into an occupied slot marks the previous occupant as unbound.
//
// A Device and its resources must only be used from the goroutine that
// owns the context.
package glgpu

import (
	"strings"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
)

// bufferSlot is a buffer binding point. Non-indexed targets have a
// single binding point, at index 0.
type bufferSlot struct {
	target, index uint32
}

// Device is a GL context with its binding table.
type Device struct {
	// GL is the context all calls are made on.
	GL gl.Context

	buffers  map[bufferSlot]*Buffer
	textures map[uint32]*Texture
	program  *Program
	target   *RenderTarget
}

// NewDevice returns a new device using the given context.
func NewDevice(ctx gl.Context) *Device {
	return &Device{
		GL:       ctx,
		buffers:  map[bufferSlot]*Buffer{},
		textures: map[uint32]*Texture{},
	}
}

// check drains the GL error queue, returning an error wrapping
// [gpu.ErrBackend] if there were any errors.
func (dv *Device) check(op string) error {
	var codes []string
	for code := dv.GL.GetError(); code != gl.NO_ERROR; code = dv.GL.GetError() {
		codes = append(codes, gl.ErrorString(code))
		if len(codes) >= 16 {
			break
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return errors.Log(errors.Errorf("glgpu: %s: %s: %w", op, strings.Join(codes, ", "), gpu.ErrBackend))
}

func (dv *Device) bindBuffer(bf *Buffer, slot bufferSlot) {
	if prev := dv.buffers[slot]; prev != nil && prev != bf {
		prev.bound = false
	}
	dv.buffers[slot] = bf
	bf.bound = true
}

func (dv *Device) unbindBuffer(bf *Buffer, slot bufferSlot) {
	if dv.buffers[slot] == bf {
		delete(dv.buffers, slot)
	}
	bf.bound = false
}

// BoundBuffer returns the buffer bound to the binding point of the given
// type and slot, or nil. The slot only applies to indexed types.
func (dv *Device) BoundBuffer(bt gpu.BufferTypes, slot uint32) *Buffer {
	target, err := BufferTarget(bt)
	if err != nil {
		return nil
	}
	if !bt.IsIndexed() {
		slot = 0
	}
	return dv.buffers[bufferSlot{target, slot}]
}

func (dv *Device) bindTexture(tx *Texture) {
	if prev := dv.textures[tx.slot]; prev != nil && prev != tx {
		prev.bound = false
	}
	dv.textures[tx.slot] = tx
	tx.bound = true
}

func (dv *Device) unbindTexture(tx *Texture) {
	if dv.textures[tx.slot] == tx {
		delete(dv.textures, tx.slot)
	}
	tx.bound = false
}

// BoundTexture returns the texture bound to the given texture unit, or nil.
func (dv *Device) BoundTexture(unit uint32) *Texture {
	return dv.textures[unit]
}

func (dv *Device) bindProgram(pr *Program) {
	if dv.program != nil && dv.program != pr {
		dv.program.bound = false
	}
	dv.program = pr
	pr.bound = true
}

func (dv *Device) unbindProgram(pr *Program) {
	if dv.program == pr {
		dv.program = nil
	}
	pr.bound = false
}

// Program returns the current program, or nil.
func (dv *Device) Program() *Program {
	return dv.program
}

func (dv *Device) bindTarget(rt *RenderTarget) {
	if dv.target != nil && dv.target != rt {
		dv.target.bound = false
	}
	dv.target = rt
	rt.bound = true
}

func (dv *Device) unbindTarget(rt *RenderTarget) {
	if dv.target == rt {
		dv.target = nil
	}
	rt.bound = false
}

// RenderTarget returns the render target being drawn into,
// or nil for the default framebuffer.
func (dv *Device) RenderTarget() *RenderTarget {
	return dv.target
}

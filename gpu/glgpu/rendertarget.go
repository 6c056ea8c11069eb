// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/gpu/gl"
)

// RenderTarget is a GL framebuffer with a 2D color texture and an
// optional depth-stencil texture, both owned by the target.
type RenderTarget struct {
	Object
	width, height int
	color         *Texture
	depth         *Texture
	bound         bool
}

// NewRenderTarget returns a new complete render target of the given
// size and color format, with a [gpu.Depth24Stencil8] attachment if
// depth is set.
func NewRenderTarget(dev *Device, width, height int, color gpu.DataFormats, depth bool) (*RenderTarget, error) {
	if color.IsDepth() {
		return nil, errors.Log(errors.Errorf("glgpu: NewRenderTarget: color format %v: %w", color, gpu.ErrUnsupported))
	}
	rt := &RenderTarget{width: width, height: height}
	rt.dev = dev
	var err error
	rt.color, err = NewTexture(dev, gpu.Texture2D, color, width, height, 0, 1, nil)
	if err != nil {
		return nil, err
	}
	if depth {
		rt.depth, err = NewTexture(dev, gpu.Texture2D, gpu.Depth24Stencil8, width, height, 0, 1, nil)
		if err != nil {
			rt.color.Release()
			return nil, err
		}
	}
	c := dev.GL
	rt.handle = c.GenFramebuffer()
	c.BindFramebuffer(gl.FRAMEBUFFER, rt.handle)
	c.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.color.handle, 0)
	if rt.depth != nil {
		c.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.TEXTURE_2D, rt.depth.handle, 0)
	}
	status := c.CheckFramebufferStatus(gl.FRAMEBUFFER)
	var prev uint32
	if dev.target != nil {
		prev = dev.target.handle
	}
	c.BindFramebuffer(gl.FRAMEBUFFER, prev)
	if err := dev.check("NewRenderTarget"); err != nil {
		rt.Release()
		return nil, err
	}
	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.Release()
		return nil, errors.Log(errors.Errorf("glgpu: NewRenderTarget: framebuffer status 0x%X: %w", status, gpu.ErrBackend))
	}
	return rt, nil
}

// Width returns the width in pixels.
func (rt *RenderTarget) Width() int { return rt.width }

// Height returns the height in pixels.
func (rt *RenderTarget) Height() int { return rt.height }

// Color returns the color texture.
func (rt *RenderTarget) Color() *Texture { return rt.color }

// DepthStencil returns the depth-stencil texture, or nil.
func (rt *RenderTarget) DepthStencil() *Texture { return rt.depth }

func (rt *RenderTarget) IsBound() bool { return rt.bound }

func (rt *RenderTarget) BindType() gpu.BindTypes { return gpu.BindRenderTarget }

func (rt *RenderTarget) BindSlot() uint32 { return 0 }

// Bind makes subsequent draws and clears go to the target,
// with a viewport covering it.
func (rt *RenderTarget) Bind() error {
	if rt.handle == 0 {
		return errors.Log(errors.Errorf("glgpu: RenderTarget.Bind: %w", gpu.ErrNullResource))
	}
	rt.dev.GL.BindFramebuffer(gl.FRAMEBUFFER, rt.handle)
	rt.dev.GL.Viewport(0, 0, int32(rt.width), int32(rt.height))
	if err := rt.dev.check("RenderTarget.Bind"); err != nil {
		return err
	}
	rt.dev.bindTarget(rt)
	return nil
}

// Unbind returns drawing to the default framebuffer if the target is bound.
func (rt *RenderTarget) Unbind() error {
	if !rt.bound {
		return nil
	}
	rt.dev.GL.BindFramebuffer(gl.FRAMEBUFFER, 0)
	rt.dev.unbindTarget(rt)
	return rt.dev.check("RenderTarget.Unbind")
}

// Move returns a new RenderTarget owning the framebuffer and its
// textures, bound in its place if this one was bound, and leaves this
// target null.
func (rt *RenderTarget) Move() *RenderTarget {
	nt := &RenderTarget{width: rt.width, height: rt.height, color: rt.color, depth: rt.depth, bound: rt.bound}
	nt.dev = rt.dev
	nt.handle = rt.take()
	if rt.dev.target == rt {
		rt.dev.target = nt
	}
	rt.color, rt.depth, rt.bound = nil, nil, false
	return nt
}

// Release deletes the framebuffer and its textures.
func (rt *RenderTarget) Release() {
	if rt.handle != 0 {
		errors.Log(rt.Unbind())
		rt.dev.GL.DeleteFramebuffer(rt.take())
	}
	if rt.color != nil {
		rt.color.Release()
	}
	if rt.depth != nil {
		rt.depth.Release()
	}
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// BindTypes are the different binding tables of a context.
// At most one resource of a given kind occupies a slot at a time.
type BindTypes int32

const (
	// BindBuffer is the table of buffer binding points, one per buffer type.
	BindBuffer BindTypes = iota

	// BindTexture is the table of texture units.
	BindTexture

	// BindProgram is the single current-program slot.
	BindProgram

	// BindRenderTarget is the single framebuffer slot.
	BindRenderTarget
)

var bindTypeNames = []string{"Buffer", "Texture", "Program", "RenderTarget"}

func (bt BindTypes) String() string { return enumString(bt, bindTypeNames, "BindTypes") }

// Bindable is a resource that is attached to a slot of one of the
// binding tables of its context in order to be used.
type Bindable interface {
	// Bind attaches the resource at its bind slot.
	Bind() error

	// Unbind detaches the resource, leaving its slot empty.
	Unbind() error

	// IsBound returns whether the resource currently occupies its slot.
	IsBound() bool

	// BindType returns the binding table the resource is attached to.
	BindType() BindTypes

	// BindSlot returns the slot within the binding table.
	BindSlot() uint32
}

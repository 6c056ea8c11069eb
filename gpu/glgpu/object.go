// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

// noCopy marks a struct as not copyable, for go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Object is the native handle of a GL object, together with the device
// that created it. Each handle has exactly one owning Object: the
// resource types embed it and transfer it with their Move methods.
type Object struct {
	noCopy noCopy
	dev    *Device
	handle uint32
}

// Handle returns the GL object name, or 0 if there is none.
func (ob *Object) Handle() uint32 {
	return ob.handle
}

// IsNull returns whether the object holds no GL object, because it
// was released or moved.
func (ob *Object) IsNull() bool {
	return ob.handle == 0
}

// Device returns the device the object was created on.
func (ob *Object) Device() *Device {
	return ob.dev
}

// take returns the handle and leaves the object null.
func (ob *Object) take() uint32 {
	h := ob.handle
	ob.handle = 0
	return h
}

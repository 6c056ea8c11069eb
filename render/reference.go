// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// Reference is a counted shared handle to a value. All of the references
// made from one another with [Reference.Share] refer to the same value,
// which is the identity renderers key their prepared resources by.
// When the last of them is released, the release hooks are called.
//
// References are not safe for concurrent use.
type Reference[T any] struct {
	shared   *shared[T]
	released bool
}

type shared[T any] struct {
	value *T
	count int
	hooks []func()
}

// NewReference returns the first reference to v.
func NewReference[T any](v *T) *Reference[T] {
	return &Reference[T]{shared: &shared[T]{value: v, count: 1}}
}

// Get returns the value, or nil if this reference was released.
func (rf *Reference[T]) Get() *T {
	if rf == nil || rf.released {
		return nil
	}
	return rf.shared.value
}

// Share returns a new reference to the same value.
func (rf *Reference[T]) Share() *Reference[T] {
	rf.shared.count++
	return &Reference[T]{shared: rf.shared}
}

// Count returns the number of unreleased references to the value.
func (rf *Reference[T]) Count() int {
	return rf.shared.count
}

// OnRelease adds a function called when the last reference is released.
func (rf *Reference[T]) OnRelease(fn func()) {
	rf.shared.hooks = append(rf.shared.hooks, fn)
}

// Release releases this reference. Releasing it again does nothing.
func (rf *Reference[T]) Release() {
	if rf.released {
		return
	}
	rf.released = true
	sh := rf.shared
	sh.count--
	if sh.count > 0 {
		return
	}
	hooks := sh.hooks
	sh.hooks = nil
	for _, fn := range hooks {
		fn()
	}
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/egospodinova/amber-engine/base/errors"

// Programmer-misuse errors. These are never retried: they are returned
// (and logged) at the point of misuse and indicate a bug in the caller.
var (
	// ErrUnsupported is returned for enum values or combinations that the
	// backend does not support, including texture dimensions that do not
	// match the texture type.
	ErrUnsupported = errors.New("gpu: unsupported")

	// ErrBindState is returned for operations that are invalid in the
	// current binding state, such as changing the bind slot of a bound
	// resource or setting a constant on a program that is not current.
	ErrBindState = errors.New("gpu: invalid binding state")

	// ErrUnknownConstant is returned when setting a constant name that
	// was not found by introspection when the program was linked.
	ErrUnknownConstant = errors.New("gpu: unknown constant")

	// ErrOutOfRange is returned when a data range exceeds the storage
	// of a buffer or texture.
	ErrOutOfRange = errors.New("gpu: out of range")
)

// Resource-state errors.
var (
	// ErrNullResource is returned when using a resource that holds no
	// native object, because it was released or moved.
	ErrNullResource = errors.New("gpu: null resource")

	// ErrNotLinked is returned when using a program before it has been
	// successfully linked.
	ErrNotLinked = errors.New("gpu: program not linked")

	// ErrBackend is returned when the backend reports an error for a
	// call that passed validation.
	ErrBackend = errors.New("gpu: backend error")
)

// Diagnostics errors. These are recoverable: the object stays intact
// but unusable until the sources are fixed.
var (
	// ErrCompile is wrapped by shader compile failures.
	ErrCompile = errors.New("gpu: shader compile failed")

	// ErrLink is wrapped by program link failures.
	ErrLink = errors.New("gpu: program link failed")
)

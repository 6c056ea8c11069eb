// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error functions that are helpful
// for dealing with errors in the most efficient way possible.
// This package is a drop-in replacement for the standard [errors]
// package, so callers only need to import one errors package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents an error with a base error and the
// call stack at the point where it was created.
type Error struct {
	Base  error
	Stack []string
}

// Wrap wraps the given error into an [*Error] that records the
// current call stack. It returns nil if the given error is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Base: err, Stack: CallerInfo()}
}

// New returns a new error with the given text wrapped with a
// call stack via [Wrap]. It is the equivalent of [errors.New].
func New(text string) error {
	return Wrap(errors.New(text))
}

// Errorf returns a new error with the given format and arguments
// wrapped with a call stack via [Wrap]. It is the equivalent of
// [fmt.Errorf], so %w verbs are preserved for [Is] and [As].
func Errorf(format string, a ...any) error {
	return Wrap(fmt.Errorf(format, a...))
}

// Error returns the base error string followed by the stack,
// when [Debug] is on.
func (e *Error) Error() string {
	res := e.Base.Error()
	if Debug && len(e.Stack) > 0 {
		res += " (" + strings.Join(e.Stack, ": ") + ")"
	}
	return res
}

// Unwrap returns the underlying base error.
func (e *Error) Unwrap() error {
	return e.Base
}

// Is is [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

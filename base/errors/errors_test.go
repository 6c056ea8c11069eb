// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil))

	err := Errorf("opening shader: %w", fs.ErrNotExist)
	assert.True(t, Is(err, fs.ErrNotExist))
	var e *Error
	assert.True(t, As(err, &e))
	assert.Equal(t, "opening shader: file does not exist", err.Error())
}

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("bad")
	assert.Equal(t, err, Log(err))
	assert.Equal(t, 3, Log1(3, nil))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(New("bad")) })
	assert.Equal(t, 5, Must1(5, nil))
}

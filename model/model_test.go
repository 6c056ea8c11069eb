// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/egospodinova/amber-engine/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines is a decoder of files with one triangle per line.
type lines struct {
	n int
}

func (ln *lines) New() Decoder                  { return &lines{} }
func (ln *lines) Desc() string                  { return "test lines" }
func (ln *lines) SetFile(fname string) []string { return []string{fname} }

func (ln *lines) Decode(rs []io.Reader) error {
	b, err := io.ReadAll(rs[0])
	for _, c := range b {
		if c == '\n' {
			ln.n++
		}
	}
	return err
}

func (ln *lines) Entities(prog *render.Reference[render.ProgramSource]) ([]*render.Entity, error) {
	ents := make([]*render.Entity, ln.n)
	for i := range ents {
		ms := &render.Mesh{Vertices: make([]float32, 9)}
		ents[i] = render.NewEntity("line", ms, render.NewMaterial(prog))
	}
	return ents, nil
}

func TestRegistry(t *testing.T) {
	assert.False(t, Supported(".tri"))
	Register(".TRI", &lines{})
	defer delete(Decoders, ".tri")
	assert.True(t, Supported(".tri"))
	assert.True(t, Supported(".Tri"))
	assert.Contains(t, Extensions(), ".tri")

	fn := filepath.Join(t.TempDir(), "two.TRI")
	require.NoError(t, os.WriteFile(fn, []byte("a\nb\n"), 0o644))
	ents, err := Load(fn)
	require.NoError(t, err)
	require.Len(t, ents, 2)
	assert.Equal(t, "standard", ents[0].Material.Program.Get().Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.tri"))
	assert.Error(t, err)
	_, err = Load("model.unknown")
	assert.ErrorIs(t, err, ErrNoDecoder)
}

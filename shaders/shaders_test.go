// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shaders

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/egospodinova/amber-engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangle = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VertexOutput {
    var out: VertexOutput;
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(0.0, 0.5),
        vec2<f32>(-0.5, -0.5),
        vec2<f32>(0.5, -0.5)
    );
    out.position = vec4<f32>(pos[idx], 0.0, 1.0);
    out.color = vec4<f32>(1.0, 0.0, 0.0, 1.0);
    return out;
}

@fragment
fn fs_main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color;
}
`

func TestSources(t *testing.T) {
	assert.Contains(t, SkyboxVertex, "#version 410")
	assert.Contains(t, SkyboxVertex, "uniform mat4 view;")
	assert.Contains(t, SkyboxVertex, "uniform mat4 projection;")
	assert.Contains(t, SkyboxFragment, "uniform samplerCube skybox;")
	assert.Contains(t, StandardVertex, "uniform mat4 model;")
	assert.Contains(t, StandardFragment, "uniform sampler2D albedo;")
}

func TestTranslate(t *testing.T) {
	vs, err := Translate(triangle, gpu.VertexShader)
	require.NoError(t, err)
	assert.Contains(t, vs, "#version 410")
	assert.Contains(t, vs, "void main()")

	fs, err := Translate(triangle, gpu.FragmentShader)
	require.NoError(t, err)
	assert.Contains(t, fs, "void main()")

	_, err = Translate(triangle, gpu.ComputeShader)
	assert.ErrorIs(t, err, ErrTranslate)

	_, err = Translate(triangle, gpu.GeometryShader)
	assert.ErrorIs(t, err, gpu.ErrUnsupported)

	_, err = Translate("fn broken( {", gpu.VertexShader)
	assert.ErrorIs(t, err, ErrTranslate)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "shader.frag")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(fn, []byte("void main() {}"), 0o644))

	wt, err := NewWatcher()
	require.NoError(t, err)
	defer wt.Close()
	require.NoError(t, wt.Add(fn))
	assert.Nil(t, wt.Poll())

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(fn, []byte("void main() { }"), 0o644))
	var changed []string
	assert.Eventually(t, func() bool {
		changed = append(changed, wt.Poll()...)
		return len(changed) > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotContains(t, changed, other)
	assert.Contains(t, changed, fn)
}

func TestWatcherCloseTwice(t *testing.T) {
	wt, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, wt.Close())
	assert.NotPanics(t, func() { assert.NoError(t, wt.Close()) })
}

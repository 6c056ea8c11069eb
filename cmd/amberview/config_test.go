// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/egospodinova/amber-engine/base/config"
	"github.com/egospodinova/amber-engine/math32"
	"github.com/egospodinova/amber-engine/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "view.toml")
	require.NoError(t, os.WriteFile(fn, []byte(`models = ["a.obj"]
watch = true

[window]
title = "test"
width = 640
height = 480

[render]
culling = false
depth-test = true

[camera]
fov = 60
`), 0o644))
	cfg, err := loadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.True(t, cfg.Window.VSync)
	assert.False(t, cfg.Render.Culling)
	assert.Equal(t, []string{"a.obj"}, cfg.Models)
	assert.Equal(t, DefaultConfig().ClearColor, cfg.ClearColor)

	cm := cfg.camera(2)
	assert.Equal(t, float32(60), cm.FOV)
	assert.Equal(t, float32(2), cm.Aspect)
	assert.Equal(t, math32.Vec3(0, 1, 5), cm.Position)
	assert.Equal(t, "standard", cfg.program().Get().Name)

	yml := filepath.Join(dir, "view.yaml")
	require.NoError(t, saveConfig(cfg, yml))
	back, err := loadConfig(yml)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoadDefaultConfig(t *testing.T) {
	old := config.Dir
	config.Dir = t.TempDir()
	defer func() { config.Dir = old }()

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(config.Dir, configName), []byte("models = [\"b.obj\"]\n"), 0o644))
	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.obj"}, cfg.Models)
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name, src, err string
	}{
		{"skybox faces", `skybox = ["a.png", "b.png"]`, "6 faces"},
		{"one shader", "[shaders]\nvertex = \"a.vert\"\n", "both"},
		{"language", "[shaders]\nlanguage = \"hlsl\"\n", "hlsl"},
		{"window", "[window]\nwidth = 0\n", "window size"},
		{"unknown field", "colour = 1\n", "missing in the target"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fn := filepath.Join(t.TempDir(), "bad.toml")
			require.NoError(t, os.WriteFile(fn, []byte(test.src), 0o644))
			_, err := loadConfig(fn)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}
	_, err := loadConfig(filepath.Join(t.TempDir(), "view.json"))
	assert.Error(t, err)
}

func TestCustomProgram(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shaders = ShaderConfig{Vertex: "lit.wgsl", Fragment: "lit.wgsl", Language: "WGSL"}
	require.NoError(t, cfg.validate())
	ps := cfg.program().Get()
	assert.Equal(t, "custom", ps.Name)
	require.Len(t, ps.Shaders, 2)
	assert.Equal(t, render.WGSL, ps.Shaders[1].Language)
	assert.Equal(t, []string{"lit.wgsl", "lit.wgsl"}, ps.Files())
	assert.Equal(t, render.StandardLayout(), ps.Layout)
}

func TestCommands(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"formats"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), ".obj =")

	old := config.Dir
	config.Dir = t.TempDir()
	defer func() { config.Dir = old }()
	fn := filepath.Join(t.TempDir(), "out.toml")
	cmd = newRootCmd()
	cmd.SetArgs([]string{"--config", "", "--write-config", fn, "--watch", "c.obj"})
	require.NoError(t, cmd.Execute())
	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "c.obj"))
	assert.Contains(t, string(b), "watch = true")
}

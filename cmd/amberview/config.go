// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/egospodinova/amber-engine/base/config"
	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/math32"
	"github.com/egospodinova/amber-engine/render"
)

// configName is the name of the default config file in [config.Dir].
const configName = "amberview.toml"

// Config is the viewer configuration.
type Config struct {
	Window WindowConfig   `toml:"window" yaml:"window"`
	Render render.Options `toml:"render" yaml:"render"`

	// ClearColor is the RGBA background color.
	ClearColor [4]float32 `toml:"clear-color" yaml:"clear-color"`

	Camera CameraConfig `toml:"camera" yaml:"camera"`

	// Skybox is the six face images of the skybox, in +X, -X, +Y, -Y,
	// +Z, -Z order, or none for no skybox.
	Skybox []string `toml:"skybox,omitempty" yaml:"skybox,omitempty"`

	// Models are the model files to show.
	Models []string `toml:"models" yaml:"models"`

	Shaders ShaderConfig `toml:"shaders" yaml:"shaders"`

	// Watch reloads the program when its shader files change.
	Watch bool `toml:"watch" yaml:"watch"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
}

type CameraConfig struct {
	Position [3]float32 `toml:"position" yaml:"position"`
	Target   [3]float32 `toml:"target" yaml:"target"`

	// FOV is the vertical field of view in degrees.
	FOV float32 `toml:"fov" yaml:"fov"`

	// Orbit is the speed in degrees per second at which the camera
	// turns around the target.
	Orbit float32 `toml:"orbit" yaml:"orbit"`
}

// ShaderConfig names the shader files of the program models are drawn
// with. The built-in standard program is used if they are empty.
type ShaderConfig struct {
	Vertex   string `toml:"vertex" yaml:"vertex"`
	Fragment string `toml:"fragment" yaml:"fragment"`

	// Language is glsl or wgsl.
	Language string `toml:"language" yaml:"language"`
}

// DefaultConfig returns the config used for what the config file
// does not set.
func DefaultConfig() *Config {
	return &Config{
		Window:     WindowConfig{Title: "amberview", Width: 1280, Height: 720, VSync: true},
		Render:     render.DefaultOptions(),
		ClearColor: [4]float32{0.1, 0.1, 0.12, 1},
		Camera:     CameraConfig{Position: [3]float32{0, 1, 5}, FOV: 45},
		Shaders:    ShaderConfig{Language: "glsl"},
	}
}

func defaultConfigDir() string {
	return config.Dir
}

// loadConfig returns the default config updated from the given file.
// If file is empty, the default config file is used if it exists.
func loadConfig(file string) (*Config, error) {
	cfg := DefaultConfig()
	if file == "" {
		def, err := config.DefaultFile(configName)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(def); errors.Is(err, fs.ErrNotExist) {
			slog.Debug("amberview: no config file", "file", def)
			return cfg, cfg.validate()
		}
		file = def
	}
	if err := config.Open(cfg, file); err != nil {
		return nil, err
	}
	slog.Info("amberview: loaded config", "file", file)
	return cfg, cfg.validate()
}

func saveConfig(cfg *Config, file string) error {
	if err := config.Save(cfg, file); err != nil {
		return err
	}
	slog.Info("amberview: saved config", "file", file)
	return nil
}

func (cf *Config) validate() error {
	if n := len(cf.Skybox); n != 0 && n != 6 {
		return errors.Errorf("amberview: skybox needs 6 faces, not %d", n)
	}
	if (cf.Shaders.Vertex == "") != (cf.Shaders.Fragment == "") {
		return errors.New("amberview: shaders need both a vertex and a fragment file")
	}
	if _, err := cf.Shaders.language(); err != nil {
		return err
	}
	if cf.Window.Width <= 0 || cf.Window.Height <= 0 {
		return errors.Errorf("amberview: invalid window size %dx%d", cf.Window.Width, cf.Window.Height)
	}
	return nil
}

func (sc *ShaderConfig) language() (render.ShaderLanguages, error) {
	switch strings.ToLower(sc.Language) {
	case "", "glsl":
		return render.GLSL, nil
	case "wgsl":
		return render.WGSL, nil
	}
	return 0, errors.Errorf("amberview: unknown shader language %q", sc.Language)
}

// program returns the program that models are drawn with.
func (cf *Config) program() *render.Reference[render.ProgramSource] {
	if cf.Shaders.Vertex == "" {
		return render.NewReference(render.StandardProgram())
	}
	lang, _ := cf.Shaders.language()
	return render.NewReference(&render.ProgramSource{
		Name: "custom",
		Shaders: []render.ShaderSource{
			{Type: gpu.VertexShader, Language: lang, File: cf.Shaders.Vertex},
			{Type: gpu.FragmentShader, Language: lang, File: cf.Shaders.Fragment},
		},
		Layout: render.StandardLayout(),
	})
}

// camera returns the camera for a viewport of the given aspect ratio.
func (cf *Config) camera(aspect float32) render.Camera {
	cm := render.DefaultCamera()
	p, t := cf.Camera.Position, cf.Camera.Target
	cm.Position = math32.Vec3(p[0], p[1], p[2])
	cm.Target = math32.Vec3(t[0], t[1], t[2])
	if cf.Camera.FOV > 0 {
		cm.FOV = cf.Camera.FOV
	}
	cm.Aspect = aspect
	return cm
}

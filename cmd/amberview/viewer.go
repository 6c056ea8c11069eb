// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/gpu/gl/nativegl"
	"github.com/egospodinova/amber-engine/gpu/glgpu"
	"github.com/egospodinova/amber-engine/math32"
	"github.com/egospodinova/amber-engine/model"
	"github.com/egospodinova/amber-engine/render"
	"github.com/egospodinova/amber-engine/shaders"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// viewer is an open window rendering a world.
type viewer struct {
	cfg      *Config
	window   *glfw.Window
	renderer *glgpu.Renderer
	world    *render.World
	prog     *render.Reference[render.ProgramSource]
	skybox   *render.Skybox
	watcher  *shaders.Watcher

	width, height int
}

// run opens the viewer window and renders until it is closed.
func run(cfg *Config) error {
	if err := glfw.Init(); err != nil {
		return errors.Log(err)
	}
	defer glfw.Terminate()

	vw := &viewer{cfg: cfg}
	if err := vw.open(); err != nil {
		return err
	}
	defer vw.close()
	if err := vw.load(); err != nil {
		return err
	}
	vw.loop()
	return nil
}

// open creates the window and its GL 4.5 core context, and the
// renderer on it.
func (vw *viewer) open() error {
	wc := vw.cfg.Window
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return errors.Log(err)
	}
	vw.window = window
	window.MakeContextCurrent()
	if wc.VSync {
		glfw.SwapInterval(1)
	}
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	ctx, err := nativegl.New()
	if err != nil {
		return err
	}
	vw.renderer, err = glgpu.NewRenderer(glgpu.NewDevice(ctx))
	if err != nil {
		return err
	}
	cc := vw.cfg.ClearColor
	vw.renderer.ClearColor = math32.Vec4(cc[0], cc[1], cc[2], cc[3])
	return vw.cfg.Render.Apply(vw.renderer)
}

// load builds the world from the models and skybox of the config.
// Models that fail to load are skipped.
func (vw *viewer) load() error {
	vw.world = render.NewWorld()
	vw.prog = vw.cfg.program()
	if err := vw.renderer.PrepareProgram(vw.prog); err != nil {
		return err
	}
	for _, fn := range vw.cfg.Models {
		ents, err := model.LoadWith(fn, vw.prog)
		if err != nil {
			errors.Log(err)
			continue
		}
		slog.Info("amberview: loaded model", "file", fn, "entities", len(ents))
		vw.world.Add(ents...)
	}
	if len(vw.cfg.Skybox) == 6 {
		sb, err := render.OpenSkybox([6]string(vw.cfg.Skybox))
		if err != nil {
			return err
		}
		vw.skybox = sb
		vw.world.AddRenderable(sb)
	}
	if vw.cfg.Watch {
		files := vw.prog.Get().Files()
		if len(files) == 0 {
			slog.Warn("amberview: the program has no shader files to watch")
			return nil
		}
		wt, err := shaders.NewWatcher()
		if err != nil {
			return err
		}
		vw.watcher = wt
		if err := wt.Add(files...); err != nil {
			return err
		}
	}
	return nil
}

func (vw *viewer) loop() {
	start := glfw.GetTime()
	for !vw.window.ShouldClose() {
		vw.reload()
		vw.resize()
		vw.updateCamera(float32(glfw.GetTime() - start))
		if err := vw.renderer.Clear(); err != nil {
			errors.Log(err)
		}
		if err := vw.renderer.Render(vw.world); err != nil {
			errors.Log(err)
		}
		vw.window.SwapBuffers()
		glfw.PollEvents()
	}
}

// reload reloads the program if its shader files changed.
// A program that fails to build is logged, and the previous one kept.
func (vw *viewer) reload() {
	if vw.watcher == nil {
		return
	}
	files := vw.watcher.Poll()
	if len(files) == 0 {
		return
	}
	slog.Info("amberview: reloading program", "files", files)
	errors.Log(vw.renderer.ReloadProgram(vw.prog))
}

// resize updates the viewport to the framebuffer size.
func (vw *viewer) resize() {
	w, h := vw.window.GetFramebufferSize()
	if w == vw.width && h == vw.height {
		return
	}
	vw.width, vw.height = w, h
	vw.renderer.Device().GL.Viewport(0, 0, int32(w), int32(h))
}

// updateCamera sets the camera for the viewport, turned around its
// target by the orbit speed for the time t in seconds.
func (vw *viewer) updateCamera(t float32) {
	aspect := float32(1)
	if vw.height > 0 {
		aspect = float32(vw.width) / float32(vw.height)
	}
	cm := vw.cfg.camera(aspect)
	if orbit := vw.cfg.Camera.Orbit; orbit != 0 {
		a := math32.DegToRad(orbit * t)
		d := cm.Position.Sub(cm.Target)
		sin, cos := math32.Sin(a), math32.Cos(a)
		cm.Position = cm.Target.Add(math32.Vec3(d.X*cos+d.Z*sin, d.Y, d.Z*cos-d.X*sin))
	}
	vw.world.Camera = cm
}

func (vw *viewer) close() {
	if vw.watcher != nil {
		errors.Log(vw.watcher.Close())
	}
	if vw.skybox != nil {
		vw.skybox.Release()
	}
	if vw.prog != nil {
		vw.prog.Release()
	}
	if vw.renderer != nil {
		vw.renderer.Release()
	}
	vw.window.Destroy()
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "github.com/egospodinova/amber-engine/math32"

// Camera is a perspective camera.
type Camera struct {
	Position math32.Vector3
	Target   math32.Vector3
	Up       math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the width / height ratio of the viewport.
	Aspect float32

	Near, Far float32
}

// DefaultCamera returns a camera at (0, 0, 5) looking at the origin.
func DefaultCamera() Camera {
	return Camera{
		Position: math32.Vec3(0, 0, 5),
		Up:       math32.Vec3(0, 1, 0),
		FOV:      45,
		Aspect:   1,
		Near:     0.1,
		Far:      100,
	}
}

// View returns the world to view transform.
func (cm *Camera) View() math32.Matrix4 {
	return math32.LookAt(cm.Position, cm.Target, cm.Up)
}

// Projection returns the view to clip transform.
func (cm *Camera) Projection() math32.Matrix4 {
	return math32.Perspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
}

// Entity is an object placed in the world with a material.
type Entity struct {
	Name     string
	Object   Object
	Material *Material

	// Transform is the object to world transform.
	Transform math32.Matrix4
}

// NewEntity returns a new entity at the origin.
func NewEntity(name string, obj Object, mat *Material) *Entity {
	return &Entity{Name: name, Object: obj, Material: mat, Transform: math32.Identity4()}
}

// World is a scene: a camera, the entities it sees and other
// renderables such as a skybox.
type World struct {
	Camera      Camera
	Entities    []*Entity
	Renderables []Renderable
}

// NewWorld returns a new empty world with the default camera.
func NewWorld() *World {
	return &World{Camera: DefaultCamera()}
}

// Add adds entities to the world.
func (w *World) Add(ents ...*Entity) {
	w.Entities = append(w.Entities, ents...)
}

// AddRenderable adds a renderable to the world.
func (w *World) AddRenderable(r Renderable) {
	w.Renderables = append(w.Renderables, r)
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// Model is a named set of meshes.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// Entities returns one entity per mesh, all drawn with mat.
func (md *Model) Entities(mat *Material) []*Entity {
	ents := make([]*Entity, len(md.Meshes))
	for i, ms := range md.Meshes {
		name := md.Name
		if ms.Name != "" {
			name += "/" + ms.Name
		}
		ents[i] = NewEntity(name, ms, mat)
	}
	return ents
}

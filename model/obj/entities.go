// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/egospodinova/amber-engine/base/imagex"
	"github.com/egospodinova/amber-engine/math32"
	"github.com/egospodinova/amber-engine/render"
)

// corner identifies a distinct mesh vertex. Corners with a computed
// normal are distinct per face.
type corner struct {
	position, uv, normal, face int
}

// Entities returns an entity per run of faces of an object with the
// same material. Meshes are indexed triangle lists in the
// [render.StandardLayout]: polygons are split into triangle fans, and
// faces without normals get their flat normal.
func (dec *Decoder) Entities(prog *render.Reference[render.ProgramSource]) ([]*render.Entity, error) {
	materials := map[string]*render.Material{}
	var ents []*render.Entity
	for oi := range dec.Objects {
		ob := &dec.Objects[oi]
		var ms *render.Mesh
		var corners map[corner]uint32
		matName := ""
		for fi := range ob.Faces {
			fc := &ob.Faces[fi]
			if ms == nil || fc.Material != matName {
				matName = fc.Material
				ms = &render.Mesh{Name: fmt.Sprintf("%s_%d", ob.Name, len(ents)), Layout: render.StandardLayout()}
				corners = map[corner]uint32{}
				mat := materials[matName]
				if mat == nil {
					mat = dec.renderMaterial(prog, matName)
					materials[matName] = mat
				}
				ents = append(ents, render.NewEntity(ms.Name, ms, mat))
			}
			dec.addFace(ms, corners, fc, fi)
		}
	}
	return ents, nil
}

// addFace adds the triangles of a face to the mesh.
func (dec *Decoder) addFace(ms *render.Mesh, corners map[corner]uint32, fc *Face, fi int) {
	flat := dec.position(fc.Positions[1]).Sub(dec.position(fc.Positions[0])).
		Cross(dec.position(fc.Positions[2]).Sub(dec.position(fc.Positions[0]))).Normal()
	vertex := func(i int) uint32 {
		c := corner{position: fc.Positions[i], uv: fc.UVs[i], normal: fc.Normals[i], face: none}
		if c.normal == none {
			c.face = fi
		}
		if idx, ok := corners[c]; ok {
			return idx
		}
		idx := uint32(len(ms.Vertices) / 8)
		p := dec.position(c.position)
		n := flat
		if c.normal != none {
			n = math32.Vec3(dec.Normals[3*c.normal], dec.Normals[3*c.normal+1], dec.Normals[3*c.normal+2])
		}
		var uv math32.Vector2
		if c.uv != none {
			uv = math32.Vec2(dec.UVs[2*c.uv], dec.UVs[2*c.uv+1])
		}
		ms.Vertices = append(ms.Vertices, p.X, p.Y, p.Z, n.X, n.Y, n.Z, uv.X, uv.Y)
		corners[c] = idx
		return idx
	}
	for i := 2; i < len(fc.Positions); i++ {
		ms.Indices = append(ms.Indices, vertex(0), vertex(i-1), vertex(i))
	}
}

func (dec *Decoder) position(i int) math32.Vector3 {
	return math32.Vec3(dec.Positions[3*i], dec.Positions[3*i+1], dec.Positions[3*i+2])
}

// renderMaterial returns a standard material for the named material,
// with its diffuse texture if it can be opened.
func (dec *Decoder) renderMaterial(prog *render.Reference[render.ProgramSource], name string) *render.Material {
	mt := dec.Materials[name]
	if mt == nil {
		mt = NewMaterial(name)
	}
	var tex *render.Reference[render.TextureSource]
	if mt.MapKd != "" {
		fn := mt.MapKd
		if !filepath.IsAbs(fn) {
			fn = filepath.Join(dec.Dir, fn)
		}
		img, _, err := imagex.Open(fn)
		if err != nil {
			slog.Warn("obj: using material without its texture", "material", name, "err", err)
		} else {
			b := img.Bounds()
			tex = render.NewReference(render.NewTextureSource(b.Dx(), b.Dy(), imagex.RGBABytes(img, true)))
		}
	}
	return render.NewStandardMaterial(prog, mt.Color(), tex)
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build collada

package collada

import (
	"fmt"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/math32"
	"github.com/egospodinova/amber-engine/render"
)

// part is the mesh of one primitive of a geometry, with the material
// symbol it is drawn with.
type part struct {
	mesh   *render.Mesh
	symbol string
}

// builder makes the entities of a document.
type builder struct {
	doc       *document
	prog      *render.Reference[render.ProgramSource]
	parts     map[string][]part
	materials map[string]*render.Material
	ents      []*render.Entity
}

// Entities returns an entity per primitive of every geometry instance
// of the first visual scene, placed by its nodes, or per primitive of
// every geometry if there is no scene.
func (dec *Decoder) Entities(prog *render.Reference[render.ProgramSource]) ([]*render.Entity, error) {
	bd := &builder{doc: &dec.doc, prog: prog, parts: map[string][]part{}, materials: map[string]*render.Material{}}
	for i := range dec.doc.Geometries {
		geom := &dec.doc.Geometries[i]
		parts, err := bd.geometry(geom)
		if err != nil {
			return nil, errors.Errorf("collada: %s: geometry %q: %w", dec.File, geom.ID, err)
		}
		bd.parts[geom.ID] = parts
	}
	if len(dec.doc.Scenes) == 0 {
		for _, geom := range dec.doc.Geometries {
			for _, pt := range bd.parts[geom.ID] {
				bd.add(pt.mesh.Name, pt, pt.symbol, math32.Identity4())
			}
		}
		return bd.ents, nil
	}
	bd.node(&dec.doc.Scenes[0], math32.Identity4())
	return bd.ents, nil
}

// node adds the entities of the geometry instances of a node and
// its children.
func (bd *builder) node(nd *sceneNode, parent math32.Matrix4) {
	tr := parent.Mul(nd.transform())
	for _, in := range nd.Instances {
		bindings := map[string]string{}
		for _, b := range in.Bindings {
			bindings[b.Symbol] = ref(b.Target)
		}
		for _, pt := range bd.parts[ref(in.URL)] {
			mat := pt.symbol
			if target, ok := bindings[mat]; ok {
				mat = target
			}
			name := pt.mesh.Name
			if nd.Name != "" {
				name = nd.Name + "/" + name
			}
			bd.add(name, pt, mat, tr)
		}
	}
	for i := range nd.Nodes {
		bd.node(&nd.Nodes[i], tr)
	}
}

// transform returns the local transform of the node.
func (nd *sceneNode) transform() math32.Matrix4 {
	if len(nd.Matrix) == 16 {
		// COLLADA matrices are row major
		var m math32.Matrix4
		for r := range 4 {
			for c := range 4 {
				m[c*4+r] = nd.Matrix[r*4+c]
			}
		}
		return m
	}
	if len(nd.Translate) == 3 {
		return math32.Translation(math32.Vec3(nd.Translate[0], nd.Translate[1], nd.Translate[2]))
	}
	return math32.Identity4()
}

func (bd *builder) add(name string, pt part, materialID string, tr math32.Matrix4) {
	ent := render.NewEntity(name, pt.mesh, bd.material(materialID))
	ent.Transform = tr
	bd.ents = append(bd.ents, ent)
}

// material returns the standard material of the given material id,
// in the diffuse color of its effect, or light gray.
func (bd *builder) material(id string) *render.Material {
	if mt, ok := bd.materials[id]; ok {
		return mt
	}
	color := math32.Vec4(0.63, 0.63, 0.63, 1)
	for _, m := range bd.doc.Materials {
		if m.ID != id {
			continue
		}
		for _, ef := range bd.doc.Effects {
			if d := ef.diffuse(); ef.ID == ref(m.Effect.URL) && d != nil {
				color = math32.Vec4(d[0], d[1], d[2], 1)
				if len(d) > 3 {
					color.W = d[3]
				}
			}
		}
	}
	mt := render.NewStandardMaterial(bd.prog, color, nil)
	bd.materials[id] = mt
	return mt
}

// stream is an input of a primitive, resolved to its source.
type stream struct {
	values []float32
	stride int
	offset int
}

func (st *stream) vec(i int) []float32 {
	j := i * st.stride
	return st.values[j : j+3]
}

// geometry returns the meshes of the triangles and polylists of geom.
func (bd *builder) geometry(geom *geometry) ([]part, error) {
	sources := map[string]*source{}
	for i := range geom.Mesh.Sources {
		sources[geom.Mesh.Sources[i].ID] = &geom.Mesh.Sources[i]
	}
	name := geom.Name
	if name == "" {
		name = geom.ID
	}
	var parts []part
	for pi := range geom.Mesh.Primitives {
		pm := &geom.Mesh.Primitives[pi]
		var pos, nrm, uv *stream
		resolve := func(in input, n int) (*stream, error) {
			sr := sources[ref(in.Source)]
			if sr == nil {
				return nil, fmt.Errorf("input %s: no source %q", in.Semantic, in.Source)
			}
			st := &stream{values: sr.Floats, stride: sr.stride(n), offset: in.Offset}
			if st.stride < n {
				return nil, fmt.Errorf("input %s: stride %d", in.Semantic, st.stride)
			}
			return st, nil
		}
		stride := 0
		var err error
		for _, in := range pm.Inputs {
			stride = max(stride, in.Offset+1)
			switch in.Semantic {
			case "VERTEX":
				if ref(in.Source) != geom.Mesh.Vertices.ID {
					return nil, fmt.Errorf("VERTEX input %q is not the mesh vertices", in.Source)
				}
				for _, vi := range geom.Mesh.Vertices.Inputs {
					vi.Offset = in.Offset
					switch vi.Semantic {
					case "POSITION":
						pos, err = resolve(vi, 3)
					case "NORMAL":
						nrm, err = resolve(vi, 3)
					}
					if err != nil {
						return nil, err
					}
				}
			case "NORMAL":
				nrm, err = resolve(in, 3)
			case "TEXCOORD":
				if uv == nil && in.Set == 0 {
					uv, err = resolve(in, 2)
				}
			}
			if err != nil {
				return nil, err
			}
		}
		if pos == nil {
			return nil, fmt.Errorf("primitive %d has no positions", pi)
		}
		ms := &render.Mesh{Name: fmt.Sprintf("%s_%d", name, pi), Layout: render.StandardLayout()}
		if err := buildMesh(ms, pm, stride, pos, nrm, uv); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", pi, err)
		}
		parts = append(parts, part{mesh: ms, symbol: pm.Material})
	}
	return parts, nil
}

// buildMesh fills the mesh with the polygons of the primitive, split
// into triangle fans. Polygons without normals get their flat normal.
func buildMesh(ms *render.Mesh, pm *primitive, stride int, pos, nrm, uv *stream) error {
	counts := []int(pm.VCount)
	if counts == nil {
		counts = make([]int, len(pm.P)/stride/3)
		for i := range counts {
			counts[i] = 3
		}
	}
	type corner struct{ p, n, t int }
	corners := map[corner]uint32{}
	at := 0
	for _, vc := range counts {
		if vc < 3 || (at+vc)*stride > len(pm.P) {
			return fmt.Errorf("polygon of %d vertices at %d out of %d indexes", vc, at, len(pm.P))
		}
		index := func(st *stream, i int) int {
			if st == nil {
				return -1
			}
			return pm.P[(at+i)*stride+st.offset]
		}
		for i := range vc {
			for _, st := range []*stream{pos, nrm, uv} {
				if k := index(st, i); st != nil && (k < 0 || (k+1)*st.stride > len(st.values)) {
					return fmt.Errorf("index %d out of range", k)
				}
			}
		}
		p0 := pos.vec(index(pos, 0))
		a := math32.Vec3(p0[0], p0[1], p0[2])
		p1, p2 := pos.vec(index(pos, 1)), pos.vec(index(pos, 2))
		flat := math32.Vec3(p1[0], p1[1], p1[2]).Sub(a).Cross(math32.Vec3(p2[0], p2[1], p2[2]).Sub(a)).Normal()
		vertex := func(i int) uint32 {
			c := corner{index(pos, i), index(nrm, i), index(uv, i)}
			if c.n < 0 {
				// flat normals are not shared between polygons
				c.n = -2 - at
			}
			if idx, ok := corners[c]; ok {
				return idx
			}
			idx := uint32(len(ms.Vertices) / 8)
			p := pos.vec(c.p)
			ms.Vertices = append(ms.Vertices, p[0], p[1], p[2])
			if nrm != nil {
				n := nrm.vec(c.n)
				ms.Vertices = append(ms.Vertices, n[0], n[1], n[2])
			} else {
				ms.Vertices = append(ms.Vertices, flat.X, flat.Y, flat.Z)
			}
			if uv != nil {
				j := c.t * uv.stride
				ms.Vertices = append(ms.Vertices, uv.values[j], uv.values[j+1])
			} else {
				ms.Vertices = append(ms.Vertices, 0, 0)
			}
			corners[c] = idx
			return idx
		}
		for i := 2; i < vc; i++ {
			ms.Indices = append(ms.Indices, vertex(0), vertex(i-1), vertex(i))
		}
		at += vc
	}
	return nil
}

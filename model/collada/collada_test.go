// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build collada

package collada

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/egospodinova/amber-engine/math32"
	"github.com/egospodinova/amber-engine/model"
	"github.com/egospodinova/amber-engine/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGeometry = `<library_geometries>
  <geometry id="quad" name="quad">
    <mesh>
      <source id="quad-pos">
        <float_array id="quad-pos-array" count="12">0 0 0  1 0 0  1 1 0  0 1 0</float_array>
        <technique_common><accessor source="#quad-pos-array" count="4" stride="3"/></technique_common>
      </source>
      <source id="quad-nrm">
        <float_array id="quad-nrm-array" count="3">0 0 1</float_array>
        <technique_common><accessor source="#quad-nrm-array" count="1" stride="3"/></technique_common>
      </source>
      <vertices id="quad-vtx">
        <input semantic="POSITION" source="#quad-pos"/>
      </vertices>
      <polylist material="sym" count="1">
        <input semantic="VERTEX" source="#quad-vtx" offset="0"/>
        <input semantic="NORMAL" source="#quad-nrm" offset="1"/>
        <vcount>4</vcount>
        <p>0 0 1 0 2 0 3 0</p>
      </polylist>
      <triangles count="1">
        <input semantic="VERTEX" source="#quad-vtx" offset="0"/>
        <p>0 1 2</p>
      </triangles>
    </mesh>
  </geometry>
</library_geometries>`

const testLibraries = `<library_effects>
  <effect id="red-fx">
    <profile_COMMON><technique sid="common"><phong>
      <diffuse><color>1 0 0 1</color></diffuse>
    </phong></technique></profile_COMMON>
  </effect>
</library_effects>
<library_materials>
  <material id="red" name="red"><instance_effect url="#red-fx"/></material>
</library_materials>
` + testGeometry

const testScene = `<library_visual_scenes>
  <visual_scene id="scene">
    <node id="parent" name="parent">
      <translate>1 2 3</translate>
      <node id="child" name="child">
        <matrix>1 0 0 0  0 1 0 0  0 0 1 5  0 0 0 1</matrix>
        <instance_geometry url="#quad">
          <bind_material><technique_common>
            <instance_material symbol="sym" target="#red"/>
          </technique_common></bind_material>
        </instance_geometry>
      </node>
    </node>
  </visual_scene>
</library_visual_scenes>`

func testDocument(body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
` + body + "\n</COLLADA>\n"
}

func decode(t *testing.T, src string) *Decoder {
	dec := (&Decoder{}).New().(*Decoder)
	dec.SetFile("test.dae")
	require.NoError(t, dec.Decode([]io.Reader{strings.NewReader(src)}))
	return dec
}

func TestDecode(t *testing.T) {
	assert.True(t, model.Supported(".dae"))

	dec := decode(t, testDocument(testLibraries+testScene))
	require.Len(t, dec.doc.Geometries, 1)
	geom := dec.doc.Geometries[0]
	assert.Equal(t, 3, geom.Mesh.Sources[0].stride(3))
	assert.Len(t, geom.Mesh.Sources[0].Floats, 12)
	assert.Equal(t, "quad-vtx", geom.Mesh.Vertices.ID)
	// primitives keep their document order
	require.Len(t, geom.Mesh.Primitives, 2)
	assert.Equal(t, []int{4}, []int(geom.Mesh.Primitives[0].VCount))
	assert.Equal(t, "sym", geom.Mesh.Primitives[0].Material)
	assert.Nil(t, geom.Mesh.Primitives[1].VCount)
	require.Len(t, dec.doc.Scenes, 1)
	assert.Equal(t, "child", dec.doc.Scenes[0].Nodes[0].Nodes[0].Name)
	assert.Equal(t, floats{1, 0, 0, 1}, dec.doc.Effects[0].diffuse())
}

func TestEntities(t *testing.T) {
	prog := render.NewReference(render.StandardProgram())
	dec := decode(t, testDocument(testLibraries+testScene))
	ents, err := dec.Entities(prog)
	require.NoError(t, err)
	require.Len(t, ents, 2)

	quad := ents[0]
	assert.Equal(t, "child/quad_0", quad.Name)
	assert.Equal(t, math32.Translation(math32.Vec3(1, 2, 8)), quad.Transform)
	ms := quad.Object.Mesh()
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, ms.Indices)
	assert.Equal(t, 4, ms.VertexCount(ms.Layout))
	assert.Equal(t, []float32{1, 1, 0, 0, 0, 1, 0, 0}, ms.Vertices[16:24])
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), quad.Material.Constants["color"])
	assert.Same(t, prog, quad.Material.Program)

	tri := ents[1]
	assert.Equal(t, "child/quad_1", tri.Name)
	tm := tri.Object.Mesh()
	assert.Equal(t, []uint32{0, 1, 2}, tm.Indices)
	// flat normal
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 1, 0, 0}, tm.Vertices[:8])
	assert.Equal(t, math32.Vec4(0.63, 0.63, 0.63, 1), tri.Material.Constants["color"])
}

func TestEntitiesWithoutScene(t *testing.T) {
	ents, err := decode(t, testDocument(testGeometry)).Entities(render.NewReference(render.StandardProgram()))
	require.NoError(t, err)
	require.Len(t, ents, 2)
	assert.Equal(t, "quad_0", ents[0].Name)
	assert.Equal(t, math32.Identity4(), ents[0].Transform)
}

func TestPrimitiveOrder(t *testing.T) {
	start := strings.Index(testGeometry, "      <triangles")
	end := strings.Index(testGeometry, "</triangles>") + len("</triangles>\n")
	tris := testGeometry[start:end]
	swapped := strings.Replace(testGeometry[:start]+testGeometry[end:], "      <polylist", tris+"      <polylist", 1)

	ents, err := decode(t, testDocument(swapped)).Entities(render.NewReference(render.StandardProgram()))
	require.NoError(t, err)
	require.Len(t, ents, 2)
	assert.Equal(t, []uint32{0, 1, 2}, ents[0].Object.Mesh().Indices)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, ents[1].Object.Mesh().Indices)
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.dae")
	require.NoError(t, os.WriteFile(fn, []byte(testDocument(testLibraries+testScene)), 0o644))
	ents, err := model.Load(fn)
	require.NoError(t, err)
	require.Len(t, ents, 2)
	assert.Equal(t, "standard", ents[0].Material.Program.Get().Name)
}

func TestErrors(t *testing.T) {
	dec := (&Decoder{}).New()
	dec.SetFile("bad.dae")
	assert.Error(t, dec.Decode([]io.Reader{strings.NewReader("<COLLADA><library_geometries>")}))
	assert.Error(t, dec.Decode(nil))
	assert.Error(t, dec.Decode([]io.Reader{strings.NewReader(`<COLLADA><library_geometries><geometry id="g"><mesh><source id="s"><float_array>0 x</float_array></source></mesh></geometry></library_geometries></COLLADA>`)}))

	tests := []struct {
		name, from, to, err string
	}{
		{"missing source", `source="#quad-nrm"`, `source="#nowhere"`, "no source"},
		{"index range", "<p>0 1 2</p>", "<p>0 1 7</p>", "out of range"},
		{"short polygon", "<vcount>4</vcount>", "<vcount>2</vcount>", "polygon of 2"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dec := decode(t, testDocument(strings.Replace(testGeometry, test.from, test.to, 1)))
			_, err := dec.Entities(render.NewReference(render.StandardProgram()))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
			assert.Contains(t, err.Error(), `geometry "quad"`)
		})
	}
}

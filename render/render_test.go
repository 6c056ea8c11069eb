// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/egospodinova/amber-engine/base/config"
	"github.com/egospodinova/amber-engine/gpu"
	"github.com/egospodinova/amber-engine/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a [Renderer] that records what it is asked to do.
type recorder struct {
	options  Options
	calls    []string
	programs map[*ProgramSource]bool
	culled   []bool
	fail     error
}

func newRecorder() *recorder {
	return &recorder{options: DefaultOptions(), programs: map[*ProgramSource]bool{}}
}

func (rc *recorder) Prepare(obj Object) error {
	rc.calls = append(rc.calls, "Prepare "+obj.Mesh().Name)
	return nil
}

func (rc *recorder) PrepareProgram(ref *Reference[ProgramSource]) error {
	rc.calls = append(rc.calls, "PrepareProgram")
	src := ref.Get()
	rc.programs[src] = true
	ref.OnRelease(func() { delete(rc.programs, src) })
	return nil
}

func (rc *recorder) PrepareTexture(ref *Reference[TextureSource]) error {
	rc.calls = append(rc.calls, "PrepareTexture")
	return rc.fail
}

func (rc *recorder) PrepareRenderTarget(ref *Reference[RenderTargetSource]) error {
	return nil
}

func (rc *recorder) Render(world *World) error { return nil }

func (rc *recorder) RenderObject(obj Object, mat *Material) error {
	rc.calls = append(rc.calls, "RenderObject "+obj.Mesh().Name)
	rc.culled = append(rc.culled, rc.options.Culling)
	return nil
}

func (rc *recorder) Clear() error { return nil }

func (rc *recorder) RenderOption(op Option) bool { return rc.options.Value(op) }

func (rc *recorder) SetRenderOption(op Option, on bool) error {
	switch op {
	case Culling:
		rc.options.Culling = on
	case DepthTest:
		rc.options.DepthTest = on
	case StencilTest:
		rc.options.StencilTest = on
	}
	return nil
}

func testFaces(size int) [6]image.Image {
	var faces [6]image.Image
	for i := range faces {
		faces[i] = image.NewRGBA(image.Rect(0, 0, size, size))
	}
	return faces
}

func TestReference(t *testing.T) {
	v := 3
	a := NewReference(&v)
	released := 0
	a.OnRelease(func() { released++ })
	b := a.Share()
	assert.Equal(t, 2, a.Count())
	assert.Same(t, a.Get(), b.Get())

	a.Release()
	a.Release()
	assert.Nil(t, a.Get())
	assert.Equal(t, 1, b.Count())
	assert.Zero(t, released)
	assert.Equal(t, 3, *b.Get())

	b.Release()
	assert.Equal(t, 1, released)
	assert.Zero(t, b.Count())

	var nilRef *Reference[int]
	assert.Nil(t, nilRef.Get())
}

func TestMaterialClone(t *testing.T) {
	prog := NewReference(&ProgramSource{Name: "p"})
	tex := NewReference(&TextureSource{})
	mt := NewMaterial(prog).SetTexture("albedo", tex).SetConstant("tint", math32.Vec4(1, 1, 1, 1))
	cl := mt.Clone()
	assert.Same(t, mt.Program, cl.Program)
	assert.Same(t, tex, cl.Textures["albedo"])
	assert.Equal(t, mt.Constants, cl.Constants)

	cl.SetConstant("tint", math32.Vec4(0, 0, 0, 1)).SetTexture("normal", tex)
	assert.Equal(t, math32.Vec4(1, 1, 1, 1), mt.Constants["tint"])
	assert.NotContains(t, mt.Textures, "normal")

	var empty Material
	empty.SetConstant("x", 1)
	assert.Equal(t, 1, empty.Constants["x"])
}

func TestOptions(t *testing.T) {
	rc := newRecorder()
	opts := Options{StencilTest: true}
	require.NoError(t, opts.Apply(rc))
	assert.Equal(t, opts, rc.options)
	for _, op := range OptionValues() {
		assert.Equal(t, op == StencilTest, rc.RenderOption(op), op.String())
	}
	assert.Equal(t, "Option(?)", Option(7).String())

	fn := filepath.Join(t.TempDir(), "options.toml")
	require.NoError(t, config.Save(&opts, fn))
	var read Options
	require.NoError(t, config.Open(&read, fn))
	assert.Equal(t, opts, read)
}

func TestMesh(t *testing.T) {
	cube := NewCube()
	assert.Same(t, cube, cube.Mesh())
	assert.Len(t, cube.Vertices, 36*3)
	assert.Equal(t, 36, cube.VertexCount(cube.Layout))
	assert.Equal(t, 36, cube.DrawCount(cube.Layout))
	assert.Len(t, cube.VertexBytes(), 36*12)
	assert.Nil(t, cube.IndexBytes())
	assert.Zero(t, cube.VertexCount(gpu.Layout{}))

	// every triangle faces away from the center
	for i := 0; i < len(cube.Vertices); i += 9 {
		v := cube.Vertices[i : i+9]
		a := math32.Vec3(v[0], v[1], v[2])
		b := math32.Vec3(v[3], v[4], v[5])
		c := math32.Vec3(v[6], v[7], v[8])
		n := b.Sub(a).Cross(c.Sub(a))
		assert.Positive(t, n.Dot(a.Add(b).Add(c)), "triangle %d", i/9)
		for _, x := range v {
			assert.Equal(t, float32(1), math32.Abs(x))
		}
	}

	ms := &Mesh{Vertices: make([]float32, 16), Indices: []uint32{0, 1, 2, 2, 3, 0}}
	ly := StandardLayout()
	assert.Equal(t, 32, ly.VertexStride())
	assert.Equal(t, 2, ms.VertexCount(ly))
	assert.Equal(t, 6, ms.DrawCount(ly))
	assert.Len(t, ms.IndexBytes(), 24)
}

func TestModelEntities(t *testing.T) {
	md := &Model{Name: "ship", Meshes: []*Mesh{{Name: "hull"}, {}}}
	mat := NewMaterial(nil)
	ents := md.Entities(mat)
	require.Len(t, ents, 2)
	assert.Equal(t, "ship/hull", ents[0].Name)
	assert.Equal(t, "ship", ents[1].Name)
	assert.Same(t, mat, ents[1].Material)
	assert.Equal(t, math32.Identity4(), ents[0].Transform)

	w := NewWorld()
	w.Add(ents...)
	assert.Len(t, w.Entities, 2)
	assert.Equal(t, DefaultCamera(), w.Camera)
}

func TestSkybox(t *testing.T) {
	sb, err := NewSkybox(testFaces(4))
	require.NoError(t, err)
	assert.Equal(t, SkyboxType, sb.Type())
	src := sb.Texture.Get()
	assert.Equal(t, gpu.TextureCube, src.Type)
	assert.Equal(t, 4, src.Width)
	assert.Len(t, src.Data, 6*4*4*4)
	assert.Same(t, sb.Texture, sb.Material.Textures["skybox"])

	rc := newRecorder()
	assert.True(t, errors.Is(sb.Render(rc), ErrNotSetup))
	assert.False(t, sb.IsSetup())
	require.NoError(t, sb.Setup(rc))
	assert.True(t, sb.IsSetup())
	assert.Equal(t, []string{"PrepareTexture", "PrepareProgram", "Prepare cube"}, rc.calls)

	require.NoError(t, sb.Render(rc))
	assert.Equal(t, []bool{false}, rc.culled)
	assert.True(t, rc.options.Culling)

	rc.options.Culling = false
	require.NoError(t, sb.Render(rc))
	assert.False(t, rc.options.Culling)

	assert.Len(t, rc.programs, 1)
	sb.Release()
	assert.False(t, sb.IsSetup())
	assert.Empty(t, rc.programs)
}

func TestSkyboxErrors(t *testing.T) {
	faces := testFaces(4)
	faces[2] = image.NewRGBA(image.Rect(0, 0, 4, 2))
	_, err := NewSkybox(faces)
	assert.Error(t, err)

	sb, err := NewSkybox(testFaces(2))
	require.NoError(t, err)
	rc := newRecorder()
	rc.fail = gpu.ErrOutOfRange
	assert.True(t, errors.Is(sb.Setup(rc), gpu.ErrOutOfRange))
	assert.False(t, sb.IsSetup())

	_, err = OpenSkybox([6]string{"missing.png"})
	assert.Error(t, err)
}

func TestShaderSource(t *testing.T) {
	ss := ShaderSource{Type: gpu.VertexShader, Code: "void main() {}"}
	code, err := ss.Source()
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", code)

	ss = ShaderSource{File: filepath.Join(t.TempDir(), "missing.vert")}
	_, err = ss.Source()
	assert.Error(t, err)

	ps := SkyboxProgram()
	assert.Empty(t, ps.Files())
	assert.Equal(t, 12, ps.Layout.VertexStride())
	assert.Equal(t, "WGSL", WGSL.String())
}

func TestStandardMaterial(t *testing.T) {
	prog := NewReference(StandardProgram())
	mt := NewStandardMaterial(prog, math32.Vec4(1, 0, 0, 1), nil)
	assert.Equal(t, 0, mt.Constants["textured"])
	assert.Empty(t, mt.Textures)

	tex := NewReference(NewTextureSource(8, 4, make([]byte, 8*4*4)))
	assert.Equal(t, 4, tex.Get().MipLevels)
	mt = NewStandardMaterial(prog, math32.Vec4(1, 1, 1, 1), tex)
	assert.Equal(t, 1, mt.Constants["textured"])
	assert.Same(t, tex, mt.Textures["albedo"])
	assert.Equal(t, 32, prog.Get().Layout.VertexStride())
}

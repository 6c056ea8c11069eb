// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj decodes Wavefront OBJ files (*.obj) and their materials
// (*.mtl). Only geometry and the diffuse part of materials are used.
// See https://en.wikipedia.org/wiki/Wavefront_.obj_file for the format.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/model"
)

func init() {
	model.Register(".obj", &Decoder{})
}

// none marks a missing texture coordinate or normal index of a face.
const none = -1

// Decoder holds the decoded content of an .obj file and its .mtl file.
type Decoder struct {
	// Dir is the directory of the .obj file, which relative texture
	// file names are resolved against.
	Dir string

	// File is the name of the .obj file without its directory.
	File string

	Objects   []Object
	Materials map[string]*Material

	Positions []float32
	Normals   []float32
	UVs       []float32

	// Warnings are the lines that were skipped.
	Warnings []string

	line    int
	object  *Object
	current *Material
	smooth  bool
}

// Object is a named group of faces.
type Object struct {
	Name  string
	Faces []Face
}

// Face is a polygon, with 0-based indexes into the positions, and
// optional UV and normal indexes that are none when missing.
type Face struct {
	Positions []int
	UVs       []int
	Normals   []int
	Material  string
	Smooth    bool
}

func (dec *Decoder) New() model.Decoder {
	return &Decoder{Materials: map[string]*Material{}}
}

func (dec *Decoder) Desc() string {
	return ".obj = Wavefront OBJ format, with the materials of the .mtl file of the same name if there is one"
}

func (dec *Decoder) SetFile(fname string) []string {
	dec.Dir, dec.File = filepath.Split(fname)
	mtl := strings.TrimSuffix(fname, filepath.Ext(fname)) + ".mtl"
	if _, err := os.Stat(mtl); err == nil {
		return []string{fname, mtl}
	}
	return []string{fname}
}

// Decode decodes the .obj content of the first reader, and the .mtl
// content of the second one if there is one. Materials used without
// a definition get the default material.
func (dec *Decoder) Decode(rs []io.Reader) error {
	if len(rs) == 0 {
		return errors.New("obj: no files to decode")
	}
	if dec.Materials == nil {
		dec.Materials = map[string]*Material{}
	}
	if err := dec.parse(rs[0], dec.parseObjLine); err != nil {
		return err
	}
	dec.current = nil
	if len(rs) > 1 {
		if err := dec.parse(rs[1], dec.parseMtlLine); err != nil {
			return err
		}
	}
	for name, mt := range dec.Materials {
		if !mt.defined {
			dec.warn("obj", "material %q is not defined, using the default", name)
		}
	}
	return nil
}

// parse calls parseLine with every line of r, without surrounding
// blanks, stopping at the first error.
func (dec *Decoder) parse(r io.Reader, parseLine func(fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for dec.line = 1; sc.Scan(); dec.line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := parseLine(fields); err != nil {
			return err
		}
	}
	return errors.Wrap(sc.Err())
}

func (dec *Decoder) parseObjLine(fields []string) error {
	args := fields[1:]
	switch fields[0] {
	case "mtllib":
		// the .mtl file is found by the name of the .obj file
		return nil
	case "o", "g":
		if len(args) < 1 {
			return dec.lineError("%q with no name", fields[0])
		}
		dec.newObject(args[0])
		return nil
	case "v":
		return dec.parseFloats(&dec.Positions, args, 3, "v")
	case "vn":
		return dec.parseFloats(&dec.Normals, args, 3, "vn")
	case "vt":
		return dec.parseFloats(&dec.UVs, args, 2, "vt")
	case "f":
		return dec.parseFace(args)
	case "usemtl":
		if len(args) < 1 {
			return dec.lineError("usemtl with no name")
		}
		dec.current = dec.material(args[0])
		return nil
	case "s":
		if len(args) < 1 {
			return dec.lineError("s with no value")
		}
		switch args[0] {
		case "0", "off":
			dec.smooth = false
		case "1", "on":
			dec.smooth = true
		default:
			return dec.lineError("s with invalid value %q", args[0])
		}
		return nil
	}
	dec.warn("obj", "unsupported statement %q", fields[0])
	return nil
}

func (dec *Decoder) newObject(name string) {
	dec.Objects = append(dec.Objects, Object{Name: name})
	dec.object = &dec.Objects[len(dec.Objects)-1]
}

// material returns the material of the given name, adding it if needed.
func (dec *Decoder) material(name string) *Material {
	mt := dec.Materials[name]
	if mt == nil {
		mt = NewMaterial(name)
		dec.Materials[name] = mt
	}
	return mt
}

// parseFloats appends the first n values of args to dst.
func (dec *Decoder) parseFloats(dst *[]float32, args []string, n int, stmt string) error {
	if len(args) < n {
		return dec.lineError("%s with less than %d values", stmt, n)
	}
	for _, a := range args[:n] {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return dec.lineError("%s: %v", stmt, err)
		}
		*dst = append(*dst, float32(v))
	}
	return nil
}

// parseFace parses f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(args []string) error {
	if len(args) < 3 {
		return dec.lineError("f with less than 3 vertices")
	}
	if dec.object == nil {
		// faces before any o or g line
		dec.newObject(fmt.Sprintf("unnamed%d", dec.line))
	}
	fc := Face{
		Positions: make([]int, len(args)),
		UVs:       make([]int, len(args)),
		Normals:   make([]int, len(args)),
		Smooth:    dec.smooth,
	}
	if dec.current != nil {
		fc.Material = dec.current.Name
	}
	for i, a := range args {
		parts := strings.Split(a, "/")
		var err error
		if fc.Positions[i], err = dec.index(parts[0], len(dec.Positions)/3, "vertex"); err != nil {
			return err
		}
		fc.UVs[i], fc.Normals[i] = none, none
		if len(parts) > 1 && parts[1] != "" {
			if fc.UVs[i], err = dec.index(parts[1], len(dec.UVs)/2, "uv"); err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if fc.Normals[i], err = dec.index(parts[2], len(dec.Normals)/3, "normal"); err != nil {
				return err
			}
		}
	}
	dec.object.Faces = append(dec.object.Faces, fc)
	return nil
}

// index returns the 0-based index of a 1-based index, or a negative
// index relative to the n elements parsed so far.
func (dec *Decoder) index(s string, n int, what string) (int, error) {
	v, err := strconv.Atoi(s)
	switch {
	case err != nil:
		return 0, dec.lineError("face %s index: %v", what, err)
	case v > 0 && v <= n:
		return v - 1, nil
	case v < 0 && -v <= n:
		return n + v, nil
	}
	return 0, dec.lineError("face %s index %d out of range 1..%d", what, v, n)
}

func (dec *Decoder) lineError(format string, a ...any) error {
	return errors.Errorf("obj: %s:%d: %s", dec.File, dec.line, fmt.Sprintf(format, a...))
}

func (dec *Decoder) warn(ftype, format string, a ...any) {
	dec.Warnings = append(dec.Warnings, fmt.Sprintf("%s(%d): %s", ftype, dec.line, fmt.Sprintf(format, a...)))
}

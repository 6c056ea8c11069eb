// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"strconv"

	"github.com/egospodinova/amber-engine/math32"
)

// Material is a material of an .mtl file.
type Material struct {
	Name string

	Ambient  math32.Vector3
	Diffuse  math32.Vector3
	Specular math32.Vector3
	Emissive math32.Vector3

	// Opacity is the dissolve factor, 1 for opaque.
	Opacity float32

	// Shininess is the specular exponent.
	Shininess float32

	// MapKd is the file of the diffuse texture, if any.
	MapKd string

	// defined is whether the material was found in the .mtl file.
	defined bool
}

// NewMaterial returns a new opaque light gray material, used for
// materials that are not defined.
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Ambient:   math32.Vec3(0.63, 0.63, 0.63),
		Diffuse:   math32.Vec3(0.63, 0.63, 0.63),
		Specular:  math32.Vec3(0.5, 0.5, 0.5),
		Opacity:   1,
		Shininess: 30,
	}
}

// Color returns the diffuse color with the opacity as alpha.
func (mt *Material) Color() math32.Vector4 {
	return math32.Vector4FromVector3(mt.Diffuse, mt.Opacity)
}

func (dec *Decoder) parseMtlLine(fields []string) error {
	args := fields[1:]
	if fields[0] == "newmtl" {
		if len(args) < 1 {
			return dec.lineError("newmtl with no name")
		}
		dec.current = dec.material(args[0])
		dec.current.defined = true
		return nil
	}
	mt := dec.current
	if mt == nil {
		return dec.lineError("%q before newmtl", fields[0])
	}
	switch fields[0] {
	case "Ka":
		return dec.parseColor(&mt.Ambient, args, "Ka")
	case "Kd":
		return dec.parseColor(&mt.Diffuse, args, "Kd")
	case "Ks":
		return dec.parseColor(&mt.Specular, args, "Ks")
	case "Ke":
		return dec.parseColor(&mt.Emissive, args, "Ke")
	case "d":
		return dec.parseFloat(&mt.Opacity, args, "d")
	case "Tr":
		var tr float32
		if err := dec.parseFloat(&tr, args, "Tr"); err != nil {
			return err
		}
		mt.Opacity = 1 - tr
		return nil
	case "Ns":
		return dec.parseFloat(&mt.Shininess, args, "Ns")
	case "map_Kd":
		// the options before the file name are not supported
		if len(args) < 1 {
			return dec.lineError("map_Kd with no file")
		}
		mt.MapKd = args[len(args)-1]
		return nil
	}
	dec.warn("mtl", "unsupported statement %q", fields[0])
	return nil
}

func (dec *Decoder) parseColor(dst *math32.Vector3, args []string, stmt string) error {
	var c []float32
	if err := dec.parseFloats(&c, args, 3, stmt); err != nil {
		return err
	}
	*dst = math32.Vec3(c[0], c[1], c[2])
	return nil
}

func (dec *Decoder) parseFloat(dst *float32, args []string, stmt string) error {
	if len(args) < 1 {
		return dec.lineError("%s with no value", stmt)
	}
	v, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return dec.lineError("%s: %v", stmt, err)
	}
	*dst = float32(v)
	return nil
}

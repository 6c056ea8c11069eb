// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build collada

package collada

import (
	"encoding/xml"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/model"
)

func init() {
	model.Register(".dae", &Decoder{})
}

// document is the part of a COLLADA document that is decoded.
type document struct {
	XMLName    xml.Name    `xml:"COLLADA"`
	Effects    []effect    `xml:"library_effects>effect"`
	Materials  []material  `xml:"library_materials>material"`
	Geometries []geometry  `xml:"library_geometries>geometry"`
	Scenes     []sceneNode `xml:"library_visual_scenes>visual_scene"`
}

type effect struct {
	ID       string  `xml:"id,attr"`
	Phong    shading `xml:"profile_COMMON>technique>phong"`
	Blinn    shading `xml:"profile_COMMON>technique>blinn"`
	Lambert  shading `xml:"profile_COMMON>technique>lambert"`
	Constant shading `xml:"profile_COMMON>technique>constant"`
}

type shading struct {
	Diffuse  floats `xml:"diffuse>color"`
	Emission floats `xml:"emission>color"`
}

// diffuse returns the diffuse color of whichever shading model the
// effect uses, or nil.
func (ef *effect) diffuse() floats {
	for _, sh := range []*shading{&ef.Phong, &ef.Blinn, &ef.Lambert} {
		if len(sh.Diffuse) >= 3 {
			return sh.Diffuse
		}
	}
	if len(ef.Constant.Emission) >= 3 {
		return ef.Constant.Emission
	}
	return nil
}

type material struct {
	ID     string `xml:"id,attr"`
	Name   string `xml:"name,attr"`
	Effect struct {
		URL string `xml:"url,attr"`
	} `xml:"instance_effect"`
}

type geometry struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Mesh mesh   `xml:"mesh"`
}

// mesh is a <mesh>, with its triangles and polylists in document order.
type mesh struct {
	Sources    []source
	Vertices   vertices
	Primitives []primitive
}

func (ms *mesh) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "source":
				var sr source
				if err := d.DecodeElement(&sr, &t); err != nil {
					return err
				}
				ms.Sources = append(ms.Sources, sr)
			case "vertices":
				if err := d.DecodeElement(&ms.Vertices, &t); err != nil {
					return err
				}
			case "triangles", "polylist":
				var pm primitive
				if err := d.DecodeElement(&pm, &t); err != nil {
					return err
				}
				ms.Primitives = append(ms.Primitives, pm)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type source struct {
	ID       string `xml:"id,attr"`
	Floats   floats `xml:"float_array"`
	Accessor struct {
		Stride int `xml:"stride,attr"`
	} `xml:"technique_common>accessor"`
}

// stride returns the number of values per element, which defaults to n.
func (sr *source) stride(n int) int {
	if sr.Accessor.Stride > 0 {
		return sr.Accessor.Stride
	}
	return n
}

type vertices struct {
	ID     string  `xml:"id,attr"`
	Inputs []input `xml:"input"`
}

type input struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   int    `xml:"offset,attr"`
	Set      int    `xml:"set,attr"`
}

// primitive is a <triangles> or <polylist> element. Triangles have no
// vertex counts.
type primitive struct {
	Material string  `xml:"material,attr"`
	Count    int     `xml:"count,attr"`
	Inputs   []input `xml:"input"`
	VCount   ints    `xml:"vcount"`
	P        ints    `xml:"p"`
}

// sceneNode is a <visual_scene> or a <node>.
type sceneNode struct {
	ID        string      `xml:"id,attr"`
	Name      string      `xml:"name,attr"`
	Matrix    floats      `xml:"matrix"`
	Translate floats      `xml:"translate"`
	Instances []instance  `xml:"instance_geometry"`
	Nodes     []sceneNode `xml:"node"`
}

type instance struct {
	URL      string `xml:"url,attr"`
	Bindings []struct {
		Symbol string `xml:"symbol,attr"`
		Target string `xml:"target,attr"`
	} `xml:"bind_material>technique_common>instance_material"`
}

// floats is a whitespace separated list of numbers.
type floats []float32

func (fs *floats) UnmarshalText(b []byte) error {
	fields := strings.Fields(string(b))
	*fs = make(floats, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return errors.Errorf("collada: %w", err)
		}
		(*fs)[i] = float32(v)
	}
	return nil
}

// ints is a whitespace separated list of integers.
type ints []int

func (is *ints) UnmarshalText(b []byte) error {
	fields := strings.Fields(string(b))
	*is = make(ints, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return errors.Errorf("collada: %w", err)
		}
		(*is)[i] = v
	}
	return nil
}

// Decoder holds a decoded COLLADA document.
type Decoder struct {
	// File is the name of the file without its directory.
	File string

	doc document
}

func (dec *Decoder) New() model.Decoder { return &Decoder{} }

func (dec *Decoder) Desc() string {
	return ".dae = COLLADA format: geometry, scene nodes and diffuse material colors"
}

func (dec *Decoder) SetFile(fname string) []string {
	dec.File = filepath.Base(fname)
	return []string{fname}
}

func (dec *Decoder) Decode(rs []io.Reader) error {
	if len(rs) == 0 {
		return errors.New("collada: no files to decode")
	}
	if err := xml.NewDecoder(rs[0]).Decode(&dec.doc); err != nil {
		return errors.Errorf("collada: %s: %w", dec.File, err)
	}
	return nil
}

// ref returns the id of a #id reference.
func ref(url string) string {
	return strings.TrimPrefix(url, "#")
}

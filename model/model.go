// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model loads 3D models from files into entities, using a
// decoder registered for the file extension. Decoders register
// themselves when their package is imported, so the formats that can be
// loaded depend on the build: use [Supported] to check for one.
package model

import (
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/egospodinova/amber-engine/render"
)

// ErrNoDecoder is returned when loading a file with an extension that
// no decoder is registered for.
var ErrNoDecoder = errors.New("model: no decoder for file extension")

// Decoder decodes a model file format into entities.
type Decoder interface {
	// New returns a new instance of the decoder, used for one file.
	New() Decoder

	// Desc returns a description of the format.
	Desc() string

	// SetFile sets the name of the file being decoded, and returns the
	// files to read: the file itself followed by any files it uses,
	// such as the .mtl materials of .obj files.
	SetFile(fname string) []string

	// Decode decodes the content of the files returned by SetFile.
	Decode(rs []io.Reader) error

	// Entities returns the decoded meshes as entities, with materials
	// drawing with the given program.
	Entities(prog *render.Reference[render.ProgramSource]) ([]*render.Entity, error)
}

// Decoders are the registered decoders, by lower case extension
// including the dot.
var Decoders = map[string]Decoder{}

// Register registers a decoder for the given extension.
func Register(ext string, dec Decoder) {
	Decoders[strings.ToLower(ext)] = dec
}

// Supported returns whether files with the given extension can be loaded.
func Supported(ext string) bool {
	_, ok := Decoders[strings.ToLower(ext)]
	return ok
}

// Extensions returns the sorted extensions that can be loaded.
func Extensions() []string {
	return slices.Sorted(maps.Keys(Decoders))
}

// Decode decodes the given file with the decoder registered for its
// extension, returning the decoder holding the decoded state.
func Decode(fname string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(fname))
	dt, ok := Decoders[ext]
	if !ok {
		return nil, errors.Errorf("model: %q: %w %q", fname, ErrNoDecoder, ext)
	}
	dec := dt.New()
	files := dec.SetFile(fname)
	rs := make([]io.Reader, len(files))
	for i, f := range files {
		fi, err := os.Open(f)
		if err != nil {
			return nil, errors.Wrap(err)
		}
		defer fi.Close()
		rs[i] = fi
	}
	if err := dec.Decode(rs); err != nil {
		return nil, errors.Errorf("model: decoding %q: %w", fname, err)
	}
	return dec, nil
}

// Load loads the model in the given file as entities drawn with the
// standard program, [render.StandardProgram].
func Load(fname string) ([]*render.Entity, error) {
	return LoadWith(fname, render.NewReference(render.StandardProgram()))
}

// LoadWith loads the model in the given file as entities drawn with
// the given program.
func LoadWith(fname string, prog *render.Reference[render.ProgramSource]) ([]*render.Entity, error) {
	dec, err := Decode(fname)
	if err != nil {
		return nil, err
	}
	ents, err := dec.Entities(prog)
	if err != nil {
		return nil, err
	}
	slog.Info("model: loaded", "file", fname, "entities", len(ents))
	return ents, nil
}

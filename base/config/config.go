// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config opens and saves configuration structs as
// TOML or YAML files, selected by file extension.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/egospodinova/amber-engine/base/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Dir is the directory, relative to the user home directory,
// in which [DefaultFile] places config files.
var Dir = "~/.config/amber"

// ErrFormat is returned for file extensions with no known encoding.
var ErrFormat = errors.New("config: unsupported file format")

// DefaultFile returns the absolute path of the named file in [Dir].
func DefaultFile(name string) (string, error) {
	dir, err := homedir.Expand(Dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Open reads the given file into v, which must be a pointer to a struct.
// Files ending in .toml are decoded as TOML and files ending in .yaml
// or .yml as YAML.
func Open(v any, file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return Read(v, file, b)
}

// Read decodes b into v using the encoding selected by the
// extension of the given file name.
func Read(v any, file string, b []byte) error {
	switch ext(file) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("config: %s: %w", file, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, v); err != nil {
			return fmt.Errorf("config: %s: %w", file, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrFormat, file)
	}
	return nil
}

// Save writes v to the given file, creating parent directories as
// needed, with the encoding selected by the file extension.
func Save(v any, file string) error {
	var b []byte
	var err error
	switch ext(file) {
	case ".toml":
		b, err = toml.Marshal(v)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, file)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	return os.WriteFile(file, b, 0o644)
}

func ext(file string) string {
	return strings.ToLower(filepath.Ext(file))
}

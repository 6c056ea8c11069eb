// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
	"github.com/egospodinova/amber-engine/base/errors"
)

// CloneAsRGBA returns an RGBA copy of the supplied image,
// with bounds starting at (0, 0).
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)
	return img
}

// AsRGBA returns the image as an RGBA: if it already is one with
// packed rows starting at (0, 0), then it returns that image directly.
// Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	return CloneAsRGBA(src)
}

// RGBABytes returns the pixels of the image as tightly packed RGBA8
// rows. If flip is set, the rows are ordered bottom to top, as
// 2D textures expect.
func RGBABytes(src image.Image, flip bool) []byte {
	if flip {
		return transform.FlipV(src).Pix
	}
	return AsRGBA(src).Pix
}

// PackCube returns the six square faces of a cube texture, all of the
// same size, as consecutive RGBA8 images in the given order, along with
// the size of a face. Cube faces are not flipped.
func PackCube(faces [6]image.Image) ([]byte, int, error) {
	size := 0
	for i, face := range faces {
		if face == nil {
			return nil, 0, errors.Errorf("imagex.PackCube: face %d is missing", i)
		}
		b := face.Bounds()
		if b.Dx() != b.Dy() {
			return nil, 0, errors.Errorf("imagex.PackCube: face %d is %dx%d, not square", i, b.Dx(), b.Dy())
		}
		if i == 0 {
			size = b.Dx()
		} else if b.Dx() != size {
			return nil, 0, errors.Errorf("imagex.PackCube: face %d is %d wide, not %d", i, b.Dx(), size)
		}
	}
	data := make([]byte, 0, 6*size*size*4)
	for _, face := range faces {
		data = append(data, AsRGBA(face).Pix...)
	}
	return data, size, nil
}

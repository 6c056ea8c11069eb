// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collada decodes COLLADA files (*.dae): the triangles and
// polygons of their geometries, placed by the nodes of their visual
// scene, with the diffuse colors of their materials.
//
// The decoder is only built with the collada build tag. Without it,
// importing this package registers nothing, and [model.Supported]
// reports .dae files as unsupported.
package collada

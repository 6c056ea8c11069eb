// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines the backend-independent GPU resources used by
// the renderer: buffers, textures, shaders and programs, along with
// the enums that describe them and the errors their operations return.
//
// Resources are bindable: they occupy a numbered slot of one of the
// binding tables (see [BindTypes]) of the context they were created on,
// and most state changes require binding them first. Backends such as
// glgpu implement these interfaces over a specific graphics API.
package gpu

import "fmt"

// enumString returns names[v] if in range, else a numeric fallback.
func enumString[T ~int32](v T, names []string, typ string) string {
	if v >= 0 && int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, int32(v))
}

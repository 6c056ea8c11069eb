// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Debug is whether [Error] values print the call stack
// recorded when they were created.
var Debug = false

// CallerInfo returns the file:line function entries for the
// callers of the function that created an error, stopping at
// the runtime and testing packages.
func CallerInfo() []string {
	callers := make([]uintptr, 10)
	n := runtime.Callers(4, callers)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(callers[:n])
	var res []string
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") || strings.Contains(frame.File, "testing/") {
			break
		}
		res = append(res, fmt.Sprintf("%s:%d %s", filepath.Base(frame.File), frame.Line, filepath.Base(frame.Function)))
		if !more {
			break
		}
	}
	return res
}

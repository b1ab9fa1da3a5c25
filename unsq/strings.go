// Copyright 2025 The unsq Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unsq

import (
	"bytes"
	"unsafe"

	"github.com/go-unsq/unsq/internal/debug"
	"github.com/go-unsq/unsq/simd"
)

// Strlen returns the index of the first NUL byte in b, which must contain
// one. Bytes after the NUL are never inspected beyond the page-safe block
// holding it.
func Strlen[R simd.Register](b []byte) int {
	return FindUnguarded[R](b, byte(0))
}

// Strcmp compares the NUL-terminated strings at the start of x and y as
// unsigned bytes, like C's strcmp. It returns -1, 0 or +1. Both slices must
// contain a NUL.
//
// Both strings are read in lockstep one register at a time while neither
// register crosses a page boundary; near a boundary it steps a byte at a
// time until both are clear again.
//
//go:nocheckptr
func Strcmp[R simd.Register](x, y []byte) int {
	if debug.Enabled {
		debug.Assert(bytes.IndexByte(x, 0) >= 0 && bytes.IndexByte(y, 0) >= 0, "unsq: Strcmp arguments must be NUL-terminated")
	}
	width := simd.RegisterBytes[R]()
	zeros := simd.SetZero[R, uint8]()
	px, py := base(x), base(y)

	for i := 0; ; {
		ax, ay := unsafe.Add(px, i), unsafe.Add(py, i)
		if simd.FitsInPage[R](ax) && simd.FitsInPage[R](ay) {
			vx := simd.FromReg[uint8](simd.LoadUnalignedPtr[R](ax))
			vy := simd.FromReg[uint8](simd.LoadUnalignedPtr[R](ay))
			stop := simd.MaskOr(simd.NotEqual(vx, vy), simd.Equal(vx, zeros))
			if j, ok := simd.GetTopBits(stop).FirstTrue(); ok {
				return compareBytes(x[i+j], y[i+j])
			}
			i += width
			continue
		}
		if x[i] != y[i] || x[i] == 0 {
			return compareBytes(x[i], y[i])
		}
		i++
	}
}

func compareBytes(a, b byte) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

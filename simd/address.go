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

package simd

import "unsafe"

// PageSize is the granularity of memory protection the page-safe loads rely
// on. A load that stays within one page of an owned byte cannot fault.
const PageSize = 1 << 12

// PageOffset returns the offset of p within its page.
func PageOffset(p unsafe.Pointer) int {
	return int(uintptr(p) & (PageSize - 1))
}

// EndOfPage returns the first address of the page following p.
//
//go:nocheckptr
func EndOfPage(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(p, PageSize-PageOffset(p))
}

// PreviousAligned rounds p down to a multiple of the width of R. The result
// shares a page with p.
//
//go:nocheckptr
func PreviousAligned[R Register](p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(p, -alignOffset[R](uintptr(p)))
}

// FitsInPage reports whether a register of width R loaded from p stays in
// p's page.
func FitsInPage[R Register](p unsafe.Pointer) bool {
	return PageOffset(p)+RegisterBytes[R]() <= PageSize
}

func alignOffset[R Register](addr uintptr) int {
	return int(addr & uintptr(RegisterBytes[R]()-1))
}

func isAligned[R Register](addr uintptr) bool {
	return alignOffset[R](addr) == 0
}

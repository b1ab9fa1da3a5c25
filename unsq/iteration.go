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
	"unsafe"

	"github.com/go-unsq/unsq/internal/debug"
	"github.com/go-unsq/unsq/simd"
)

// Page-safe iteration drivers. This file and the simd register layer are the
// only places that do address arithmetic.
//
// Positions are byte offsets from f, the address of the first element. An
// offset may be negative when a block starts before f. Every load covers at
// least one byte of [f, f+n) and stays within the pages holding those bytes.

// blockBody handles one register of data loaded at byte offset off. keep
// marks the elements inside the range. Returning true stops iteration.
type blockBody[T simd.Lanes, R simd.Register] func(off int, x simd.Pack[T, R], keep simd.TopBits[T, R]) bool

// base returns the address of the first element of s. s must be non-empty.
func base[T simd.Lanes](s []T) unsafe.Pointer {
	p := unsafe.Pointer(unsafe.SliceData(s))
	if debug.Enabled {
		var t T
		debug.Assert(uintptr(p)%unsafe.Sizeof(t) == 0, "unsq: slice at %#x is not aligned to its element size", uintptr(p))
	}
	return p
}

//go:nocheckptr
func loadAligned[T simd.Lanes, R simd.Register](f unsafe.Pointer, off int) simd.Pack[T, R] {
	return simd.FromReg[T](simd.LoadAlignedPtr[R](unsafe.Add(f, off)))
}

//go:nocheckptr
func loadUnaligned[T simd.Lanes, R simd.Register](f unsafe.Pointer, off int) simd.Pack[T, R] {
	return simd.FromReg[T](simd.LoadUnalignedPtr[R](unsafe.Add(f, off)))
}

// misalignment returns how many bytes f lies past the previous register
// boundary.
func misalignment[R simd.Register](f unsafe.Pointer) int {
	return int(uintptr(f) - uintptr(simd.PreviousAligned[R](f)))
}

// iterateAlignedUnguarded walks aligned blocks starting with the one holding
// f until body stops it. body must stop before the walk leaves memory the
// caller owns.
//
//go:nocheckptr
func iterateAlignedUnguarded[T simd.Lanes, R simd.Register](f unsafe.Pointer, body blockBody[T, R]) {
	width := simd.RegisterBytes[R]()
	size := simd.ElemSize[T]()

	off := -misalignment[R](f)
	if body(off, loadAligned[T, R](f, off), simd.IgnoreFirstNMask[T, R](-off/size)) {
		return
	}
	keep := simd.NoIgnore[T, R]()
	for {
		off += width
		if body(off, loadAligned[T, R](f, off), keep) {
			return
		}
	}
}

// iterateAligned walks the aligned blocks covering the n bytes at f. The
// first and last block carry masks dropping the elements outside the range.
// An empty range issues no load.
//
//go:nocheckptr
func iterateAligned[T simd.Lanes, R simd.Register](f unsafe.Pointer, n int, body blockBody[T, R]) {
	if n == 0 {
		return
	}
	width := simd.RegisterBytes[R]()
	size := simd.ElemSize[T]()

	mis := misalignment[R](f)
	first := -mis
	last := (mis+n)&^(width-1) - mis

	keep := simd.IgnoreFirstNMask[T, R](mis / size)
	if first != last {
		if body(first, loadAligned[T, R](f, first), keep) {
			return
		}
		keep = simd.NoIgnore[T, R]()
		for off := first + width; off != last; off += width {
			if body(off, loadAligned[T, R](f, off), keep) {
				return
			}
		}
		if last == n {
			return
		}
	}
	keep = simd.CombineIgnore(keep, simd.IgnoreLastNMask[T, R]((last+width-n)/size))
	body(last, loadAligned[T, R](f, last), keep)
}

// iterateUnalignedGuarded visits the n bytes at f in unaligned register
// strides. Full strides go to full; a remainder shorter than a register goes
// to tail once, with a mask of the elements not yet visited.
//
// The tail is loaded from the remainder's start when the register fits in
// that page, and otherwise ends at f+n. Either way the load cannot fault.
//
//go:nocheckptr
func iterateUnalignedGuarded[T simd.Lanes, R simd.Register](f unsafe.Pointer, n int,
	full func(off int, x simd.Pack[T, R]),
	tail func(off int, x simd.Pack[T, R], keep simd.TopBits[T, R])) {
	width := simd.RegisterBytes[R]()
	size := simd.ElemSize[T]()

	off := 0
	for ; n-off >= width; off += width {
		full(off, loadUnaligned[T, R](f, off))
	}
	rem := n - off
	if rem == 0 {
		return
	}
	if simd.FitsInPage[R](unsafe.Add(f, off)) {
		tail(off, loadUnaligned[T, R](f, off), simd.IgnoreLastNMask[T, R]((width-rem)/size))
		return
	}
	safe := n - width
	tail(safe, loadUnaligned[T, R](f, safe), simd.IgnoreFirstNMask[T, R]((off-safe)/size))
}

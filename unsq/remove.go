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

import "github.com/go-unsq/unsq/simd"

// Remove moves the elements of s not equal to x to the front of s, keeping
// their order, and returns how many there are. Elements of s past the
// returned length are unspecified.
func Remove[R simd.Register, T simd.Lanes](s []T, x T) int {
	return RemoveIfP[R](s, equals[R](x))
}

// RemoveIf moves the elements of s for which pred is false to the front of
// s, keeping their order, and returns how many there are.
func RemoveIf[R simd.Register, T simd.Lanes](s []T, pred func(simd.Pack[T, R]) simd.VBool[T, R]) int {
	return RemoveIfP[R](s, PackFunc[T, R](pred))
}

// RemoveIfP is RemoveIf for a Predicate value.
//
// Full registers are compacted with a whole-register store, which is safe
// because the write never reaches past the register just read. The tail uses
// a masked store that writes exactly the kept elements.
func RemoveIfP[R simd.Register, T simd.Lanes, P Predicate[T, R]](s []T, p P) int {
	if len(s) == 0 {
		return 0
	}
	o := 0
	iterateUnalignedGuarded[T, R](base(s), len(s)*simd.ElemSize[T](),
		func(_ int, x simd.Pack[T, R]) {
			keep := simd.GetTopBits(p.Apply(x)).Not()
			o += simd.CompressStoreUnsafe(s[o:], x, keep)
		},
		func(_ int, x simd.Pack[T, R], keep simd.TopBits[T, R]) {
			keep = simd.GetTopBitsIgnore(simd.MaskNot(p.Apply(x)), keep)
			o += simd.CompressStoreMasked(s[o:], x, keep)
		})
	return o
}

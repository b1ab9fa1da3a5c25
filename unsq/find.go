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
	"github.com/go-unsq/unsq/internal/debug"
	"github.com/go-unsq/unsq/simd"
)

// Find returns the index of the first element equal to x, or len(s) if there
// is none.
func Find[R simd.Register, T simd.Lanes](s []T, x T) int {
	return FindIfP[R](s, equals[R](x))
}

// FindIf returns the index of the first element for which pred is true, or
// len(s) if there is none.
func FindIf[R simd.Register, T simd.Lanes](s []T, pred func(simd.Pack[T, R]) simd.VBool[T, R]) int {
	return FindIfP[R](s, PackFunc[T, R](pred))
}

// FindIfP is FindIf for a Predicate value.
func FindIfP[R simd.Register, T simd.Lanes, P Predicate[T, R]](s []T, p P) int {
	if len(s) == 0 {
		return 0
	}
	size := simd.ElemSize[T]()
	found := len(s)
	iterateAligned[T, R](base(s), len(s)*size, func(off int, x simd.Pack[T, R], keep simd.TopBits[T, R]) bool {
		i, ok := simd.GetTopBitsIgnore(p.Apply(x), keep).FirstTrue()
		if !ok {
			return false
		}
		found = off/size + i
		return true
	})
	return found
}

// FindUnguarded returns the index of the first element equal to x. The
// caller guarantees such an element exists in s; the scan has no end check.
func FindUnguarded[R simd.Register, T simd.Lanes](s []T, x T) int {
	return FindIfUnguardedP[R](s, equals[R](x))
}

// FindIfUnguarded returns the index of the first element for which pred is
// true. The caller guarantees such an element exists in s.
func FindIfUnguarded[R simd.Register, T simd.Lanes](s []T, pred func(simd.Pack[T, R]) simd.VBool[T, R]) int {
	return FindIfUnguardedP[R](s, PackFunc[T, R](pred))
}

// FindIfUnguardedP is FindIfUnguarded for a Predicate value.
func FindIfUnguardedP[R simd.Register, T simd.Lanes, P Predicate[T, R]](s []T, p P) int {
	if debug.Enabled {
		debug.Assert(FindIfP[R](s, p) < len(s), "unsq: unguarded search of %d elements has no match", len(s))
	}
	size := simd.ElemSize[T]()
	var found int
	iterateAlignedUnguarded[T, R](base(s[:1]), func(off int, x simd.Pack[T, R], keep simd.TopBits[T, R]) bool {
		i, ok := simd.GetTopBitsIgnore(p.Apply(x), keep).FirstTrue()
		if !ok {
			return false
		}
		found = off/size + i
		return true
	})
	return found
}

// Contains reports whether s holds an element equal to x.
func Contains[R simd.Register, T simd.Lanes](s []T, x T) bool {
	return Find[R](s, x) < len(s)
}

// Count returns the number of elements equal to x.
func Count[R simd.Register, T simd.Lanes](s []T, x T) int {
	return CountIfP[R](s, equals[R](x))
}

// CountIf returns the number of elements for which pred is true.
func CountIf[R simd.Register, T simd.Lanes](s []T, pred func(simd.Pack[T, R]) simd.VBool[T, R]) int {
	return CountIfP[R](s, PackFunc[T, R](pred))
}

// CountIfP is CountIf for a Predicate value.
func CountIfP[R simd.Register, T simd.Lanes, P Predicate[T, R]](s []T, p P) int {
	if len(s) == 0 {
		return 0
	}
	count := 0
	iterateAligned[T, R](base(s), len(s)*simd.ElemSize[T](), func(off int, x simd.Pack[T, R], keep simd.TopBits[T, R]) bool {
		count += simd.GetTopBitsIgnore(p.Apply(x), keep).CountTrue()
		return false
	})
	return count
}

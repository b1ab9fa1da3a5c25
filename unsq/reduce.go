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

// Reduce folds s with op, starting from zero. op must be commutative and
// associative, and zero must be its identity: lanes outside s are replaced
// by zero before they reach op, and zero may be folded in any number of
// times.
func Reduce[R simd.Register, T simd.Lanes](s []T, zero T, op simd.ReduceOp[T, R]) T {
	zeros := simd.SetAll[R](zero)
	acc := zeros
	if len(s) > 0 {
		iterateAligned[T, R](base(s), len(s)*simd.ElemSize[T](), func(_ int, x simd.Pack[T, R], keep simd.TopBits[T, R]) bool {
			acc = op(acc, simd.ReplaceIgnored(x, keep, zeros))
			return false
		})
	}
	return simd.Reduce(acc, op)
}

// Sum returns the wrapping sum of s.
func Sum[R simd.Register, T simd.Lanes](s []T) T {
	return Reduce[R](s, 0, simd.Add[T, R])
}

// MinValue returns the smallest element of s, or false if s is empty.
func MinValue[R simd.Register, T simd.Lanes](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	// Any element is an identity for min over s.
	return Reduce[R](s, s[0], simd.Min[T, R]), true
}

// MaxValue returns the largest element of s, or false if s is empty.
func MaxValue[R simd.Register, T simd.Lanes](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return Reduce[R](s, s[0], simd.Max[T, R]), true
}

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

// Package unsq provides vectorized bulk algorithms over slices: find, remove,
// reduce, count and C-string helpers.
//
// Every algorithm takes the register width as its first type parameter and
// infers the element type from its arguments:
//
//	i := unsq.Find[simd.Reg256](s, 42)
//	n := unsq.Remove[simd.Reg128](s, 0)
//	s = s[:n]
//	total := unsq.Sum[simd.Reg512](s)
//
// # Reading past the end
//
// The algorithms load whole registers even when a slice does not fill one.
// Such loads may touch bytes outside the slice, but never outside a memory
// page that also holds bytes of the slice, so they cannot fault. Bytes outside
// the slice never influence a result and are never written.
//
// # Unguarded variants
//
// FindUnguarded, FindIfUnguarded and Strlen take no end: the caller promises
// that a match exists. Scanning runs in aligned blocks and stops at the first
// match.
//
// # Predicates
//
// The If variants take a vector predicate, either as a function over a whole
// simd.Pack or as a Predicate value (GreaterThan, InRange, ...). A predicate
// must be pure; it may see lanes outside the slice, whose results are
// discarded.
package unsq

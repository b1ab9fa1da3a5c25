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

// Package simd provides portable fixed-width SIMD primitives.
//
// The register width is a type parameter chosen by the caller: Reg128, Reg256
// or Reg512. Every operation is instantiated per (register, lane type) pair by
// the compiler, so there is no runtime dispatch on width.
//
// Basic usage:
//
//	import "github.com/go-unsq/unsq/simd"
//
//	a := simd.Load[simd.Reg256](data1)
//	b := simd.Load[simd.Reg256](data2)
//	sum := simd.Add(a, b)
//	sum.Store(out)
//
// The package is layered: the register layer (register.go, address.go) is the
// only place that deals in raw memory; Pack, VBool and TopBits build typed
// lanes and byte-granular masks on top of it; compress.go implements the
// order-preserving compacting stores used by filtering algorithms.
package simd

import "unsafe"

// SignedInts is a constraint for signed integer lane types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// UnsignedInts is a constraint for unsigned integer lane types, including
// pointer-sized uintptr.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	SignedInts | UnsignedInts
}

// Reg128 is a 128-bit register (SSE, NEON width).
type Reg128 [2]uint64

// Reg256 is a 256-bit register (AVX2 width).
type Reg256 [4]uint64

// Reg512 is a 512-bit register (AVX-512 width).
type Reg512 [8]uint64

// Register is the set of supported register widths. A (width, lane type)
// pair outside this set does not compile.
type Register interface {
	Reg128 | Reg256 | Reg512
}

// RegisterBytes returns the width of R in bytes (16, 32 or 64).
func RegisterBytes[R Register]() int {
	var r R
	return int(unsafe.Sizeof(r))
}

// BitWidth returns the width of R in bits.
func BitWidth[R Register]() int {
	return RegisterBytes[R]() * 8
}

// WidthName returns a human-readable name for R ("128bit", "256bit", "512bit").
func WidthName[R Register]() string {
	switch RegisterBytes[R]() {
	case 16:
		return "128bit"
	case 32:
		return "256bit"
	default:
		return "512bit"
	}
}

// LaneCount returns the number of T values that fit in R.
//
// For example, with Reg256 (32 bytes):
//   - int8: 32 lanes
//   - int32: 8 lanes
//   - uint64: 4 lanes
func LaneCount[R Register, T Lanes]() int {
	return RegisterBytes[R]() / ElemSize[T]()
}

// ElemSize returns sizeof(T) in bytes.
func ElemSize[T Lanes]() int {
	var t T
	return int(unsafe.Sizeof(t))
}

// IsSigned reports whether T is a signed integer type.
func IsSigned[T Lanes]() bool {
	var z T
	return ^z < 0
}

// signBit returns a T with only the top bit set.
func signBit[T Lanes]() T {
	return T(1) << (ElemSize[T]()*8 - 1)
}

// allOnes returns a T with every bit set.
func allOnes[T Lanes]() T {
	var z T
	return ^z
}

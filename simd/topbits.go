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

import "math/bits"

// TopBits is the byte-granular summary of a VBool: bit i is the top bit of
// byte i of the register, lowest address first. An element of T owns
// sizeof(T) consecutive bits.
//
// Only the low RegisterBytes[R]() bits are meaningful; the rest are always
// zero. Masks used to drop elements (the Ignore* family) are "keep" masks:
// a set bit keeps the byte, and they combine with And.
type TopBits[T Lanes, R Register] struct {
	raw uint64
}

// TopBitsFromRaw builds a TopBits from a raw byte mask, dropping bits beyond
// the register width.
func TopBitsFromRaw[T Lanes, R Register](raw uint64) TopBits[T, R] {
	return TopBits[T, R]{raw: raw & validBits[R]()}
}

// GetTopBits summarizes a mask into one bit per byte.
func GetTopBits[T Lanes, R Register](m VBool[T, R]) TopBits[T, R] {
	return TopBits[T, R]{raw: MoveMask(m.reg)}
}

// GetTopBitsIgnore is GetTopBits restricted to the bytes kept by ignore.
func GetTopBitsIgnore[T Lanes, R Register](m VBool[T, R], ignore TopBits[T, R]) TopBits[T, R] {
	return GetTopBits(m).And(ignore)
}

// NoIgnore returns the keep-everything mask.
func NoIgnore[T Lanes, R Register]() TopBits[T, R] {
	return TopBits[T, R]{raw: validBits[R]()}
}

// IgnoreFirstNMask returns a mask dropping the first n elements.
func IgnoreFirstNMask[T Lanes, R Register](n int) TopBits[T, R] {
	return TopBits[T, R]{raw: ^setLowerNBits(n*ElemSize[T]()) & validBits[R]()}
}

// IgnoreLastNMask returns a mask dropping the last n elements.
func IgnoreLastNMask[T Lanes, R Register](n int) TopBits[T, R] {
	return TopBits[T, R]{raw: setLowerNBits(RegisterBytes[R]() - n*ElemSize[T]())}
}

// IgnoreFirstN clears the first n elements of x.
func IgnoreFirstN[T Lanes, R Register](x TopBits[T, R], n int) TopBits[T, R] {
	return x.And(IgnoreFirstNMask[T, R](n))
}

// IgnoreLastN clears the last n elements of x.
func IgnoreLastN[T Lanes, R Register](x TopBits[T, R], n int) TopBits[T, R] {
	return x.And(IgnoreLastNMask[T, R](n))
}

// CombineIgnore merges two ignore masks; the result drops what either drops.
func CombineIgnore[T Lanes, R Register](a, b TopBits[T, R]) TopBits[T, R] {
	return a.And(b)
}

// Raw returns the byte mask.
func (x TopBits[T, R]) Raw() uint64 {
	return x.raw
}

// FirstTrue returns the index of the first true element.
func (x TopBits[T, R]) FirstTrue() (int, bool) {
	if x.raw == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(x.raw) / ElemSize[T](), true
}

// AllTrue reports whether every byte of the register is set.
func (x TopBits[T, R]) AllTrue() bool {
	return x.raw == validBits[R]()
}

// AnyTrue reports whether any byte is set.
func (x TopBits[T, R]) AnyTrue() bool {
	return x.raw != 0
}

// CountTrue returns the number of true elements.
func (x TopBits[T, R]) CountTrue() int {
	return bits.OnesCount64(x.raw) / ElemSize[T]()
}

// Not complements x within the register width.
func (x TopBits[T, R]) Not() TopBits[T, R] {
	return TopBits[T, R]{raw: ^x.raw & validBits[R]()}
}

// And returns x & y.
func (x TopBits[T, R]) And(y TopBits[T, R]) TopBits[T, R] {
	return TopBits[T, R]{raw: x.raw & y.raw}
}

// Or returns x | y.
func (x TopBits[T, R]) Or(y TopBits[T, R]) TopBits[T, R] {
	return TopBits[T, R]{raw: x.raw | y.raw}
}

func validBits[R Register]() uint64 {
	return setLowerNBits(RegisterBytes[R]())
}

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

import (
	"unsafe"

	"github.com/go-unsq/unsq/internal/debug"
)

// Pack is a register of width R viewed as lanes of T.
//
// Pack values are plain values: copying one copies the register. Use SetAll,
// SetZero, Load or LoadAligned to create one.
type Pack[T Lanes, R Register] struct {
	reg R
}

// VBool is the mask companion of Pack[T, R]. Every lane is either all-ones
// (true) or all-zero (false). Comparisons produce VBools; IfThenElse and
// GetTopBits consume them.
type VBool[T Lanes, R Register] struct {
	reg R
}

// FromReg wraps a register as a Pack of T lanes.
func FromReg[T Lanes, R Register](r R) Pack[T, R] {
	return Pack[T, R]{reg: r}
}

// Reg returns the underlying register.
func (p Pack[T, R]) Reg() R {
	return p.reg
}

// NumLanes returns the number of lanes in this pack.
func (p Pack[T, R]) NumLanes() int {
	return LaneCount[R, T]()
}

// Lane returns lane i.
func (p Pack[T, R]) Lane(i int) T {
	return lanesOf[T](&p.reg)[i]
}

// ToSlice returns the lanes as a freshly allocated slice.
// This is primarily for testing and should not be used in performance-critical code.
func (p Pack[T, R]) ToSlice() []T {
	out := make([]T, LaneCount[R, T]())
	copy(out, lanesOf[T](&p.reg))
	return out
}

// Store writes the pack to dst[:NumLanes()].
// This is the method form of the simd.Store function.
func (p Pack[T, R]) Store(dst []T) {
	Store(p, dst)
}

// Reg returns the underlying register.
func (m VBool[T, R]) Reg() R {
	return m.reg
}

// Lane reports whether lane i is true.
func (m VBool[T, R]) Lane(i int) bool {
	return lanesOf[T](&m.reg)[i] != 0
}

// ============================================================================
// Set / Load / Store
// ============================================================================

// SetAll returns a pack with every lane set to x.
func SetAll[R Register, T Lanes](x T) Pack[T, R] {
	return Pack[T, R]{reg: Broadcast[R](x)}
}

// SetZero returns a pack with every lane zero.
func SetZero[R Register, T Lanes]() Pack[T, R] {
	return Pack[T, R]{}
}

// Load reads the first NumLanes() elements of src. It panics if src is
// shorter than one pack.
func Load[R Register, T Lanes](src []T) Pack[T, R] {
	n := LaneCount[R, T]()
	src = src[:n:n]
	return Pack[T, R]{reg: LoadUnalignedPtr[R](unsafe.Pointer(unsafe.SliceData(src)))}
}

// LoadAligned is Load for a src whose first element is aligned to the
// register width.
func LoadAligned[R Register, T Lanes](src []T) Pack[T, R] {
	n := LaneCount[R, T]()
	src = src[:n:n]
	return Pack[T, R]{reg: LoadAlignedPtr[R](unsafe.Pointer(unsafe.SliceData(src)))}
}

// Store writes v to dst[:NumLanes()]. It panics if dst is shorter than one
// pack.
func Store[T Lanes, R Register](v Pack[T, R], dst []T) {
	n := LaneCount[R, T]()
	dst = dst[:n:n]
	StoreUnalignedPtr(unsafe.Pointer(unsafe.SliceData(dst)), v.reg)
}

// StoreAligned is Store for a dst whose first element is aligned to the
// register width.
func StoreAligned[T Lanes, R Register](v Pack[T, R], dst []T) {
	n := LaneCount[R, T]()
	dst = dst[:n:n]
	StoreAlignedPtr(unsafe.Pointer(unsafe.SliceData(dst)), v.reg)
}

// Cast reinterprets the bits of x as lanes of U.
func Cast[U, T Lanes, R Register](x Pack[T, R]) Pack[U, R] {
	return Pack[U, R]{reg: x.reg}
}

// ============================================================================
// Arithmetic
// ============================================================================

// Add performs lane-wise wrapping addition.
func Add[T Lanes, R Register](a, b Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: AddLanes[T](a.reg, b.reg)}
}

// Sub performs lane-wise wrapping subtraction.
func Sub[T Lanes, R Register](a, b Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: SubLanes[T](a.reg, b.reg)}
}

// Min returns the lane-wise minimum. Signedness follows T.
func Min[T Lanes, R Register](a, b Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: MinLanes[T](a.reg, b.reg)}
}

// Max returns the lane-wise maximum. Signedness follows T.
func Max[T Lanes, R Register](a, b Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: MaxLanes[T](a.reg, b.reg)}
}

// ============================================================================
// Comparisons
// ============================================================================

// Equal returns a mask of the lanes where a == b.
func Equal[T Lanes, R Register](a, b Pack[T, R]) VBool[T, R] {
	return VBool[T, R]{reg: CmpEqLanes[T](a.reg, b.reg)}
}

// NotEqual returns a mask of the lanes where a != b.
func NotEqual[T Lanes, R Register](a, b Pack[T, R]) VBool[T, R] {
	return VBool[T, R]{reg: NotBits(CmpEqLanes[T](a.reg, b.reg))}
}

// Greater returns a mask of the lanes where a > b. Unsigned T is compared as
// unsigned.
func Greater[T Lanes, R Register](a, b Pack[T, R]) VBool[T, R] {
	return VBool[T, R]{reg: CmpGtLanes[T](a.reg, b.reg)}
}

// Less returns a mask of the lanes where a < b.
func Less[T Lanes, R Register](a, b Pack[T, R]) VBool[T, R] {
	return Greater(b, a)
}

// GreaterEqual returns a mask of the lanes where a >= b.
func GreaterEqual[T Lanes, R Register](a, b Pack[T, R]) VBool[T, R] {
	return MaskNot(Less(a, b))
}

// LessEqual returns a mask of the lanes where a <= b.
func LessEqual[T Lanes, R Register](a, b Pack[T, R]) VBool[T, R] {
	return MaskNot(Greater(a, b))
}

// ============================================================================
// Bitwise
// ============================================================================

// And performs bitwise AND.
func And[T Lanes, R Register](a, b Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: AndBits(a.reg, b.reg)}
}

// Or performs bitwise OR.
func Or[T Lanes, R Register](a, b Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: OrBits(a.reg, b.reg)}
}

// Xor performs bitwise XOR.
func Xor[T Lanes, R Register](a, b Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: XorBits(a.reg, b.reg)}
}

// Not performs bitwise NOT.
func Not[T Lanes, R Register](v Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: NotBits(v.reg)}
}

// AndNot computes (^a) & b.
func AndNot[T Lanes, R Register](a, b Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: AndNotBits(a.reg, b.reg)}
}

// IfThenElse selects lanes from yes where mask is true and from no otherwise.
func IfThenElse[T Lanes, R Register](mask VBool[T, R], yes, no Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: BlendBytes(no.reg, yes.reg, mask.reg)}
}

// IfThenElseZero returns yes where mask is true and zero otherwise.
func IfThenElseZero[T Lanes, R Register](mask VBool[T, R], yes Pack[T, R]) Pack[T, R] {
	return Pack[T, R]{reg: AndBits(mask.reg, yes.reg)}
}

// ============================================================================
// Masks
// ============================================================================

// MaskAnd returns a & b.
func MaskAnd[T Lanes, R Register](a, b VBool[T, R]) VBool[T, R] {
	return VBool[T, R]{reg: AndBits(a.reg, b.reg)}
}

// MaskOr returns a | b.
func MaskOr[T Lanes, R Register](a, b VBool[T, R]) VBool[T, R] {
	return VBool[T, R]{reg: OrBits(a.reg, b.reg)}
}

// MaskNot inverts every lane of m.
func MaskNot[T Lanes, R Register](m VBool[T, R]) VBool[T, R] {
	return VBool[T, R]{reg: NotBits(m.reg)}
}

// MaskAsPack reinterprets m as a pack of the unsigned type U, which must be
// the same size as T. True lanes read as the maximum value of U.
func MaskAsPack[U UnsignedInts, T Lanes, R Register](m VBool[T, R]) Pack[U, R] {
	if debug.Enabled {
		debug.Assert(ElemSize[U]() == ElemSize[T](), "simd: MaskAsPack size mismatch %d != %d", ElemSize[U](), ElemSize[T]())
	}
	return Pack[U, R]{reg: m.reg}
}

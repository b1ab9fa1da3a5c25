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
	"encoding/binary"
	"unsafe"

	"github.com/go-unsq/unsq/internal/debug"
)

// This file is the register layer: one primitive per (width, element size,
// signedness) operating on a whole register. Everything above it (Pack,
// VBool, TopBits, compress) is written in terms of these functions and never
// touches raw memory.
//
// Registers are little-endian byte arrays: byte 0 is the lowest address and
// lane 0 occupies the lowest bytes, exactly as after a vector load.

const (
	lowBitsPerByte = 0x0101010101010101
	topBitsPerByte = 0x8080808080808080

	// gatherMagic moves bit 0 of byte i to bit 56+i when multiplied.
	gatherMagic = 0x0102040810204080
)

func bytesOf[R Register](r *R) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(r)), unsafe.Sizeof(*r))
}

func wordsOf[R Register](r *R) []uint64 {
	return unsafe.Slice((*uint64)(unsafe.Pointer(r)), unsafe.Sizeof(*r)/8)
}

// lanesOf views r as lanes of T. Registers are 8-byte aligned, so the view is
// aligned for every lane type.
func lanesOf[T Lanes, R Register](r *R) []T {
	var t T
	return unsafe.Slice((*T)(unsafe.Pointer(r)), unsafe.Sizeof(*r)/unsafe.Sizeof(t))
}

// asBytes reinterprets a slice of lanes as its bytes.
func asBytes[T Lanes](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*ElemSize[T]())
}

// ============================================================================
// Set
// ============================================================================

// Zero returns a register with every bit cleared.
func Zero[R Register]() R {
	var r R
	return r
}

// Broadcast returns a register with every T lane set to x.
func Broadcast[R Register, T Lanes](x T) R {
	var r R
	lanes := lanesOf[T](&r)
	for i := range lanes {
		lanes[i] = x
	}
	return r
}

// ============================================================================
// Load / Store
// ============================================================================

// LoadAlignedPtr reads one register from p, which must be aligned to the
// register width.
//
//go:nocheckptr
func LoadAlignedPtr[R Register](p unsafe.Pointer) R {
	if debug.Enabled {
		debug.Assert(isAligned[R](uintptr(p)), "simd: LoadAlignedPtr from unaligned address %#x", uintptr(p))
	}
	return *(*R)(p)
}

// LoadUnalignedPtr reads one register from p with no alignment requirement.
//
//go:nocheckptr
func LoadUnalignedPtr[R Register](p unsafe.Pointer) R {
	var r R
	copy(bytesOf(&r), unsafe.Slice((*byte)(p), unsafe.Sizeof(r)))
	return r
}

// StoreAlignedPtr writes x to p, which must be aligned to the register width.
//
//go:nocheckptr
func StoreAlignedPtr[R Register](p unsafe.Pointer, x R) {
	if debug.Enabled {
		debug.Assert(isAligned[R](uintptr(p)), "simd: StoreAlignedPtr to unaligned address %#x", uintptr(p))
	}
	*(*R)(p) = x
}

// StoreUnalignedPtr writes x to p with no alignment requirement.
//
//go:nocheckptr
func StoreUnalignedPtr[R Register](p unsafe.Pointer, x R) {
	copy(unsafe.Slice((*byte)(p), unsafe.Sizeof(x)), bytesOf(&x))
}

// MaskStoreBytes writes the bytes of x whose byte in mask has the top bit
// set. Bytes with a clear top bit are never touched, so a partial tail write
// cannot disturb neighboring memory.
//
//go:nocheckptr
func MaskStoreBytes[R Register](p unsafe.Pointer, x, mask R) {
	xb := bytesOf(&x)
	for i, m := range bytesOf(&mask) {
		if m&0x80 != 0 {
			*(*byte)(unsafe.Add(p, i)) = xb[i]
		}
	}
}

// maskStoreBytes is MaskStoreBytes for a destination slice. Every masked
// byte must lie within dst.
func maskStoreBytes[R Register](dst []byte, x, mask R) {
	xb := bytesOf(&x)
	for i, m := range bytesOf(&mask) {
		if m&0x80 != 0 {
			dst[i] = xb[i]
		}
	}
}

// ============================================================================
// Arithmetic (wrapping)
// ============================================================================

// AddLanes adds T lanes, wrapping on overflow.
func AddLanes[T Lanes, R Register](a, b R) R {
	la, lb := lanesOf[T](&a), lanesOf[T](&b)
	for i := range la {
		la[i] += lb[i]
	}
	return a
}

// SubLanes subtracts T lanes, wrapping on overflow.
func SubLanes[T Lanes, R Register](a, b R) R {
	la, lb := lanesOf[T](&a), lanesOf[T](&b)
	for i := range la {
		la[i] -= lb[i]
	}
	return a
}

// MinLanes returns the lane-wise minimum, honoring T's signedness.
func MinLanes[T Lanes, R Register](a, b R) R {
	la, lb := lanesOf[T](&a), lanesOf[T](&b)
	for i := range la {
		if lb[i] < la[i] {
			la[i] = lb[i]
		}
	}
	return a
}

// MaxLanes returns the lane-wise maximum, honoring T's signedness.
func MaxLanes[T Lanes, R Register](a, b R) R {
	la, lb := lanesOf[T](&a), lanesOf[T](&b)
	for i := range la {
		if lb[i] > la[i] {
			la[i] = lb[i]
		}
	}
	return a
}

// ============================================================================
// Compare
// ============================================================================

// CmpEqLanes sets a T lane to all-ones where a and b are equal, zero otherwise.
func CmpEqLanes[T Lanes, R Register](a, b R) R {
	var out R
	la, lb, lo := lanesOf[T](&a), lanesOf[T](&b), lanesOf[T](&out)
	for i := range la {
		if la[i] == lb[i] {
			lo[i] = allOnes[T]()
		}
	}
	return out
}

// CmpGtSigned compares lanes of sizeof(T) bytes as signed integers,
// regardless of T's signedness. This is the only native greater-than; see
// CmpGtLanes for the unsigned emulation.
func CmpGtSigned[T Lanes, R Register](a, b R) R {
	switch ElemSize[T]() {
	case 1:
		return cmpGt[int8](a, b)
	case 2:
		return cmpGt[int16](a, b)
	case 4:
		return cmpGt[int32](a, b)
	default:
		return cmpGt[int64](a, b)
	}
}

func cmpGt[S SignedInts, R Register](a, b R) R {
	var out R
	la, lb, lo := lanesOf[S](&a), lanesOf[S](&b), lanesOf[S](&out)
	for i := range la {
		if la[i] > lb[i] {
			lo[i] = -1
		}
	}
	return out
}

// CmpGtLanes compares T lanes honoring T's signedness. Unsigned lanes are
// biased by flipping the sign bit of both operands, after which the signed
// compare gives the unsigned answer.
func CmpGtLanes[T Lanes, R Register](a, b R) R {
	if IsSigned[T]() {
		return CmpGtSigned[T](a, b)
	}
	flip := Broadcast[R](signBit[T]())
	return CmpGtSigned[T](XorBits(a, flip), XorBits(b, flip))
}

// ============================================================================
// Bitwise
// ============================================================================

// AndBits returns a & b.
func AndBits[R Register](a, b R) R {
	wa, wb := wordsOf(&a), wordsOf(&b)
	for i := range wa {
		wa[i] &= wb[i]
	}
	return a
}

// OrBits returns a | b.
func OrBits[R Register](a, b R) R {
	wa, wb := wordsOf(&a), wordsOf(&b)
	for i := range wa {
		wa[i] |= wb[i]
	}
	return a
}

// XorBits returns a ^ b.
func XorBits[R Register](a, b R) R {
	wa, wb := wordsOf(&a), wordsOf(&b)
	for i := range wa {
		wa[i] ^= wb[i]
	}
	return a
}

// AndNotBits returns ^a & b.
func AndNotBits[R Register](a, b R) R {
	wa, wb := wordsOf(&a), wordsOf(&b)
	for i := range wa {
		wa[i] = ^wa[i] & wb[i]
	}
	return a
}

// NotBits returns ^a.
func NotBits[R Register](a R) R {
	wa := wordsOf(&a)
	for i := range wa {
		wa[i] = ^wa[i]
	}
	return a
}

// ============================================================================
// Masks
// ============================================================================

// MoveMask gathers the top bit of every byte: bit i of the result is the top
// bit of byte i. The result is byte-granular regardless of lane width.
func MoveMask[R Register](x R) uint64 {
	b := bytesOf(&x)
	var res uint64
	for i := 0; i < len(b); i += 8 {
		w := binary.LittleEndian.Uint64(b[i:])
		w = (w >> 7) & lowBitsPerByte
		res |= ((w * gatherMagic) >> 56) << i
	}
	return res
}

// BlendBytes takes bytes from b where the mask byte's top bit is set and from
// a elsewhere.
func BlendBytes[R Register](a, b, mask R) R {
	wa, wb, wm := wordsOf(&a), wordsOf(&b), wordsOf(&mask)
	for i := range wa {
		m := ((wm[i] & topBitsPerByte) >> 7) * 0xff
		wa[i] = (wa[i] &^ m) | (wb[i] & m)
	}
	return a
}

// ============================================================================
// Shuffles
// ============================================================================

// ShuffleBytes128 gathers bytes of x by ctrl: byte i of the result is
// x[ctrl[i]&15], or zero if ctrl[i] has its top bit set.
func ShuffleBytes128(x, ctrl Reg128) Reg128 {
	var out Reg128
	xb, cb, ob := bytesOf(&x), bytesOf(&ctrl), bytesOf(&out)
	for i, c := range cb {
		if c&0x80 == 0 {
			ob[i] = xb[c&0x0f]
		}
	}
	return out
}

// PermuteLanes32 gathers 32-bit lanes of x across the whole register: lane i
// of the result is x[ctrl[i]&7].
func PermuteLanes32(x, ctrl Reg256) Reg256 {
	var out Reg256
	xl, cl, ol := lanesOf[uint32](&x), lanesOf[uint32](&ctrl), lanesOf[uint32](&out)
	for i, c := range cl {
		ol[i] = xl[c&7]
	}
	return out
}

// SwapAdjacentGroups swaps every pair of adjacent groupBytes-sized groups.
// groupBytes must be a power of two smaller than the register.
func SwapAdjacentGroups[R Register](x R, groupBytes int) R {
	var out R
	xb, ob := bytesOf(&x), bytesOf(&out)
	for i := range ob {
		ob[i] = xb[i^groupBytes]
	}
	return out
}

// Halves256 splits x into its low and high 128-bit halves.
func Halves256(x Reg256) (lo, hi Reg128) {
	return Reg128{x[0], x[1]}, Reg128{x[2], x[3]}
}

// Join256 is the inverse of Halves256.
func Join256(lo, hi Reg128) Reg256 {
	return Reg256{lo[0], lo[1], hi[0], hi[1]}
}

// Halves512 splits x into its low and high 256-bit halves.
func Halves512(x Reg512) (lo, hi Reg256) {
	return Reg256{x[0], x[1], x[2], x[3]}, Reg256{x[4], x[5], x[6], x[7]}
}

// Join512 is the inverse of Halves512.
func Join512(lo, hi Reg256) Reg512 {
	return Reg512{lo[0], lo[1], lo[2], lo[3], hi[0], hi[1], hi[2], hi[3]}
}

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
	"math/bits"

	"github.com/go-unsq/unsq/internal/debug"
)

// CompressMask is a gather control that moves the kept elements of a register
// to its front, in order, together with the number of kept elements.
//
// A zero keep mask yields a well-formed control with Count 0; since the
// control for "keep only element 0" looks the same in its first bytes,
// callers tell the two apart by the mask, not the control.
type CompressMask[R Register] struct {
	Ctrl  R
	Count int
}

const (
	nibbleLowBits   = 0x1111111111111111
	nibbleIndices   = 0xfedcba9876543210
	pairLowBits     = 0x5555555555555555
	lane32ByteIndex = 0x0706050403020100
)

// compressMaskShuffle builds a byte shuffle control for a 16-byte register
// from a 16-bit byte mask. Kept byte indices are packed to the front, the
// rest of the control is zero. Returns the number of kept bytes.
func compressMaskShuffle(mask uint16) (Reg128, int) {
	// One nibble per byte of the register, all ones where the byte is kept.
	expanded := pdep64(uint64(mask), nibbleLowBits) * 0xf
	idx := pext64(nibbleIndices, expanded)

	var ctrl Reg128
	cb := bytesOf(&ctrl)
	for k := 0; k < 8; k++ {
		v := uint16(byte(idx >> (8 * k)))
		binary.LittleEndian.PutUint16(cb[2*k:], (v<<4|v)&0x0f0f)
	}
	return ctrl, bits.OnesCount16(mask)
}

// compressMaskPermute32 builds a 32-bit lane permutation for a 32-byte
// register from a 32-bit byte mask. Elements must be at least 4 bytes, so
// every 32-bit lane is either fully kept or fully dropped. Returns the number
// of kept bytes.
func compressMaskPermute32(mask uint32) (Reg256, int) {
	// Two bits per byte of the mask, one byte per 32-bit lane.
	expanded := pdep64(uint64(mask), pairLowBits) * 3
	idx := pext64(lane32ByteIndex, expanded)

	var ctrl Reg256
	cl := lanesOf[uint32](&ctrl)
	for k := range cl {
		cl[k] = uint32(byte(idx >> (8 * k)))
	}
	return ctrl, bits.OnesCount32(mask)
}

// CompressMaskForShuffle returns the byte shuffle control compacting the kept
// elements of a 128-bit pack.
func CompressMaskForShuffle[T Lanes](keep TopBits[T, Reg128]) CompressMask[Reg128] {
	ctrl, n := compressMaskShuffle(uint16(keep.raw))
	return CompressMask[Reg128]{Ctrl: ctrl, Count: n / ElemSize[T]()}
}

// CompressMaskForPermute returns the 32-bit lane permutation compacting the
// kept elements of a 256-bit pack. T must be at least 4 bytes wide.
func CompressMaskForPermute[T Lanes](keep TopBits[T, Reg256]) CompressMask[Reg256] {
	if debug.Enabled {
		debug.Assert(ElemSize[T]() >= 4, "simd: CompressMaskForPermute needs 4-byte lanes, got %d", ElemSize[T]())
	}
	ctrl, n := compressMaskPermute32(uint32(keep.raw))
	return CompressMask[Reg256]{Ctrl: ctrl, Count: n / ElemSize[T]()}
}

// storeMaskFromShuffle marks the bytes a compressed shuffle filled: every
// non-zero control byte, plus byte 0, which is index 0 whenever anything is
// kept.
func storeMaskFromShuffle(ctrl Reg128) Reg128 {
	firstOne := Reg128{1, 0}
	return CmpGtSigned[int8](AddLanes[int8](ctrl, firstOne), Zero[Reg128]())
}

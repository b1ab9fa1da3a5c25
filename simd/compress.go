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

// Compacting stores.
//
// Both variants move the kept elements of x to the front of out, in order,
// and return how many they kept. They differ in what they write:
//
//   - CompressStoreUnsafe writes a whole register to out; the elements after
//     the kept ones hold unspecified values. out must have room for a full
//     pack.
//   - CompressStoreMasked writes exactly the kept elements and nothing else,
//     so out only needs room for them.
//
// 128-bit registers compact with one byte shuffle. 256-bit registers with
// 4- or 8-byte elements use a cross-lane permute in the unsafe variant; every
// other case splits the register into halves and compacts them in turn. The
// masked variant always works in 128-bit halves.

// CompressStoreUnsafe compacts the elements of x kept by keep into out and
// returns the number kept. It writes NumLanes() elements; len(out) must be at
// least that.
func CompressStoreUnsafe[T Lanes, R Register](out []T, x Pack[T, R], keep TopBits[T, R]) int {
	dst := asBytes(out)
	size := ElemSize[T]()
	var n int
	switch r := any(x.reg).(type) {
	case Reg128:
		n = compressStoreUnsafe128(dst, r, keep.raw)
	case Reg256:
		n = compressStoreUnsafe256(dst, r, keep.raw, size)
	case Reg512:
		n = compressStoreUnsafe512(dst, r, keep.raw, size)
	}
	return n / size
}

// CompressStoreMasked compacts the elements of x kept by keep into out and
// returns the number kept. Only out[:n] is written, where n is the result.
func CompressStoreMasked[T Lanes, R Register](out []T, x Pack[T, R], keep TopBits[T, R]) int {
	dst := asBytes(out)
	var n int
	switch r := any(x.reg).(type) {
	case Reg128:
		n = compressStoreMasked128(dst, r, keep.raw)
	case Reg256:
		n = compressStoreMasked256(dst, r, keep.raw)
	case Reg512:
		lo, hi := Halves512(r)
		n = compressStoreMasked256(dst, lo, keep.raw)
		n += compressStoreMasked256(dst[n:], hi, keep.raw>>32)
	}
	return n / ElemSize[T]()
}

// Compress returns x with its kept elements moved to the front, in order,
// and the number kept. Lanes past the kept ones are unspecified.
func Compress[T Lanes, R Register](x Pack[T, R], keep TopBits[T, R]) (Pack[T, R], int) {
	var out Pack[T, R]
	n := CompressStoreUnsafe(lanesOf[T](&out.reg), x, keep)
	return out, n
}

func compressStoreUnsafe128(dst []byte, x Reg128, mask uint64) int {
	ctrl, n := compressMaskShuffle(uint16(mask))
	y := ShuffleBytes128(x, ctrl)
	copy(dst[:16], bytesOf(&y))
	return n
}

func compressStoreUnsafe256(dst []byte, x Reg256, mask uint64, size int) int {
	if size >= 4 {
		ctrl, n := compressMaskPermute32(uint32(mask))
		y := PermuteLanes32(x, ctrl)
		copy(dst[:32], bytesOf(&y))
		return n
	}
	lo, hi := Halves256(x)
	n := compressStoreUnsafe128(dst, lo, mask&0xffff)
	return n + compressStoreUnsafe128(dst[n:], hi, (mask>>16)&0xffff)
}

func compressStoreUnsafe512(dst []byte, x Reg512, mask uint64, size int) int {
	lo, hi := Halves512(x)
	n := compressStoreUnsafe256(dst, lo, mask&0xffffffff, size)
	return n + compressStoreUnsafe256(dst[n:], hi, mask>>32, size)
}

func compressStoreMasked128(dst []byte, x Reg128, mask uint64) int {
	mask &= 0xffff
	// Keeping nothing and keeping only byte 0 produce the same control.
	if mask == 0 {
		return 0
	}
	ctrl, n := compressMaskShuffle(uint16(mask))
	y := ShuffleBytes128(x, ctrl)
	maskStoreBytes(dst, y, storeMaskFromShuffle(ctrl))
	return n
}

func compressStoreMasked256(dst []byte, x Reg256, mask uint64) int {
	lo, hi := Halves256(x)
	n := compressStoreMasked128(dst, lo, mask&0xffff)
	return n + compressStoreMasked128(dst[n:], hi, (mask>>16)&0xffff)
}

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

// setLowerNBits returns a word with the low n bits set. n may be 64.
func setLowerNBits(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}

// pdep64 deposits the low bits of src into the positions of the set bits of
// mask, lowest first.
func pdep64(src, mask uint64) uint64 {
	var res uint64
	for m := mask; m != 0; m &= m - 1 {
		if src&1 != 0 {
			res |= m & -m
		}
		src >>= 1
	}
	return res
}

// pext64 extracts the bits of src selected by mask and packs them into the
// low bits of the result.
func pext64(src, mask uint64) uint64 {
	var res uint64
	k := 0
	for m := mask; m != 0; m &= m - 1 {
		if src&(m&-m) != 0 {
			res |= 1 << k
		}
		k++
	}
	return res
}

// lsbLess orders two bit sets by their lowest differing bit: x < y when the
// lowest bit where they differ is set in y. Bit 0 is the most significant
// position, matching "first element decides" in lexicographic comparison of
// byte masks.
func lsbLess(x, y uint64) bool {
	diff := x ^ y
	x &= diff
	y &= diff
	if y == 0 {
		return false
	}
	if x == 0 {
		return true
	}
	return bits.TrailingZeros64(x) > bits.TrailingZeros64(y)
}

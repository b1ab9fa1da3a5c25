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

// EqualFull reports whether x and y are bitwise identical.
func EqualFull[T Lanes, R Register](x, y Pack[T, R]) bool {
	eq := VBool[uint8, R]{reg: CmpEqLanes[uint8](x.reg, y.reg)}
	return GetTopBits(eq).AllTrue()
}

// LessLexicographical compares x and y as sequences of lanes, lane 0 first,
// and reports whether x < y.
//
// At the first lane where they differ, the smaller one equals Min(x, y) and
// the other does not; lanes before it match Min in both. So the masks of
// "equals Min" differ first at that lane, and whoever has the bit there is
// the smaller.
func LessLexicographical[T Lanes, R Register](x, y Pack[T, R]) bool {
	m := Min(x, y)
	bx := GetTopBits(Equal(x, m)).raw
	by := GetTopBits(Equal(y, m)).raw
	return lsbLess(by, bx)
}

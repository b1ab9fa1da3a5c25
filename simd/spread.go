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

// SpreadTopBits turns a byte mask back into a VBool: every byte whose bit is
// set becomes 0xff, every other byte 0x00.
func SpreadTopBits[T Lanes, R Register](x TopBits[T, R]) VBool[T, R] {
	var out VBool[T, R]
	w := wordsOf(&out.reg)
	for i := range w {
		w[i] = pdep64(x.raw>>(8*i)&0xff, lowBitsPerByte) * 0xff
	}
	return out
}

// ReplaceIgnored keeps the elements of x selected by keep and takes the rest
// from with.
func ReplaceIgnored[T Lanes, R Register](x Pack[T, R], keep TopBits[T, R], with Pack[T, R]) Pack[T, R] {
	return IfThenElse(SpreadTopBits(keep), x, with)
}

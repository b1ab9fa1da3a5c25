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

// ReduceOp combines two packs lane-wise. It must be commutative and
// associative.
type ReduceOp[T Lanes, R Register] func(a, b Pack[T, R]) Pack[T, R]

// Reduce folds every lane of x with op and returns the result.
//
// It runs log2(NumLanes()) steps: each step combines x with a copy whose
// adjacent groups of g bytes are swapped, halving g from half the register
// down to one element. Afterwards every lane holds the full reduction.
func Reduce[T Lanes, R Register](x Pack[T, R], op ReduceOp[T, R]) T {
	for g := RegisterBytes[R]() / 2; g >= ElemSize[T](); g /= 2 {
		x = op(x, Pack[T, R]{reg: SwapAdjacentGroups(x.reg, g)})
	}
	return x.Lane(0)
}

// ReduceSum returns the wrapping sum of all lanes.
func ReduceSum[T Lanes, R Register](x Pack[T, R]) T {
	return Reduce[T, R](x, Add[T, R])
}

// ReduceMin returns the smallest lane.
func ReduceMin[T Lanes, R Register](x Pack[T, R]) T {
	return Reduce[T, R](x, Min[T, R])
}

// ReduceMax returns the largest lane.
func ReduceMax[T Lanes, R Register](x Pack[T, R]) T {
	return Reduce[T, R](x, Max[T, R])
}

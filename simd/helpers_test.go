package simd

import (
	"math/rand/v2"
	"testing"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(0x5eed, 0xcafe))
}

// randomLanes returns n values of T drawn from [-spread/2, spread/2), wrapped
// for unsigned types, or from the full range when spread is 0.
func randomLanes[T Lanes](r *rand.Rand, n, spread int) []T {
	out := make([]T, n)
	for i := range out {
		if spread == 0 {
			out[i] = T(r.Uint64())
		} else {
			out[i] = T(r.IntN(spread) - spread/2)
		}
	}
	return out
}

// keepMask builds a TopBits keeping the elements where keep[i] is true.
func keepMask[T Lanes, R Register](keep []bool) TopBits[T, R] {
	size := ElemSize[T]()
	var raw uint64
	for i, k := range keep {
		if k {
			raw |= setLowerNBits(size) << (i * size)
		}
	}
	return TopBitsFromRaw[T, R](raw)
}

// scalarFilter is the reference for the compacting stores.
func scalarFilter[T Lanes](in []T, keep []bool) []T {
	var out []T
	for i, v := range in {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}

// runAllLaneTypes runs one subtest per lane type for register width R.
func runAllLaneTypes[R Register](t *testing.T,
	i8, u8, i16, u16, i32, u32, i64, u64 func(*testing.T)) {
	t.Helper()
	t.Run(WidthName[R](), func(t *testing.T) {
		t.Run("int8", i8)
		t.Run("uint8", u8)
		t.Run("int16", i16)
		t.Run("uint16", u16)
		t.Run("int32", i32)
		t.Run("uint32", u32)
		t.Run("int64", i64)
		t.Run("uint64", u64)
	})
}

package unsq

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-unsq/unsq/internal/debug"
	"github.com/go-unsq/unsq/simd"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		slice  []int32
		value  int32
		expect int
	}{
		{"first", []int32{1, 2, 3, 4, 5}, 1, 0},
		{"middle", []int32{1, 2, 3, 4, 5}, 3, 2},
		{"last", []int32{1, 2, 3, 4, 5}, 5, 4},
		{"not_found", []int32{1, 2, 3, 4, 5}, 6, 5},
		{"empty", []int32{}, 1, 0},
		{"nil", nil, 1, 0},
		{"single_found", []int32{42}, 42, 0},
		{"single_not_found", []int32{42}, 1, 1},
		{"duplicates", []int32{1, 2, 3, 2, 5}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expect, Find[simd.Reg128](tt.slice, tt.value), "128bit")
			require.Equal(t, tt.expect, Find[simd.Reg256](tt.slice, tt.value), "256bit")
			require.Equal(t, tt.expect, Find[simd.Reg512](tt.slice, tt.value), "512bit")
		})
	}
}

func TestFindLarge(t *testing.T) {
	for _, size := range []int{15, 16, 17, 31, 32, 33, 63, 64, 65, 100, 1000} {
		slice := make([]uint16, size)
		for i := range slice {
			slice[i] = uint16(i)
		}
		require.Equal(t, size-1, Find[simd.Reg256](slice, uint16(size-1)), "size %d last", size)
		require.Equal(t, size/2, Find[simd.Reg512](slice, uint16(size/2)), "size %d middle", size)
		require.Equal(t, size, Find[simd.Reg128](slice, uint16(size)), "size %d absent", size)
		require.Equal(t, size > 0, Contains[simd.Reg128](slice, uint16(0)))
	}
}

func TestFindIf(t *testing.T) {
	slice := []int64{-5, -3, -1, 0, 1, 3, 5}
	positive := func(v simd.Pack[int64, simd.Reg256]) simd.VBool[int64, simd.Reg256] {
		return simd.Greater(v, simd.SetZero[simd.Reg256, int64]())
	}
	require.Equal(t, 4, FindIf[simd.Reg256](slice, positive))

	require.Equal(t, 5, FindIfP[simd.Reg128](slice, GreaterThan[int64, simd.Reg128]{Threshold: 2}))
	require.Equal(t, 0, FindIfP[simd.Reg128](slice, LessEqual[int64, simd.Reg128]{Threshold: -5}))
	require.Equal(t, 3, FindIfP[simd.Reg512](slice, InRange[int64, simd.Reg512]{Min: 0, Max: 2}))
	require.Equal(t, 7, FindIfP[simd.Reg512](slice, GreaterEqual[int64, simd.Reg512]{Threshold: 6}))
	require.Equal(t, 1, FindIfP[simd.Reg256](slice,
		Not[int64, simd.Reg256, LessThan[int64, simd.Reg256]]{P: LessThan[int64, simd.Reg256]{Threshold: -3}}))
	require.Equal(t, 1, FindIfP[simd.Reg128](slice, NotEqual[int64, simd.Reg128]{Value: -5}))
}

func TestFindUnsignedOrdering(t *testing.T) {
	slice := []uint8{1, 2, 127, 128, 200, 255}
	require.Equal(t, 3, FindIfP[simd.Reg128](slice, GreaterThan[uint8, simd.Reg128]{Threshold: 127}))
	signed := []int8{1, 2, 127, -128, -56, -1}
	require.Equal(t, 3, FindIfP[simd.Reg128](signed, LessThan[int8, simd.Reg128]{Threshold: 0}))
}

func TestFindUnguarded(t *testing.T) {
	slice := []int32{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	for i, v := range slice {
		require.Equal(t, i, FindUnguarded[simd.Reg128](slice, v))
		require.Equal(t, i, FindUnguarded[simd.Reg512](slice, v))
	}
	// Unguarded search starts at the first element even if the slice starts
	// mid-register.
	require.Equal(t, 2, FindUnguarded[simd.Reg256](slice[3:], int32(4)))
	require.Equal(t, 0, FindIfUnguarded[simd.Reg256](slice[5:], func(v simd.Pack[int32, simd.Reg256]) simd.VBool[int32, simd.Reg256] {
		return simd.Less(v, simd.SetAll[simd.Reg256](int32(6)))
	}))
}

func TestFindUnguardedWithoutMatchPanics(t *testing.T) {
	if !debug.Enabled {
		t.Skip("precondition checks need -tags unsqdebug")
	}
	require.Panics(t, func() {
		FindUnguarded[simd.Reg128]([]int32{1, 2, 3}, 4)
	})
}

func TestCount(t *testing.T) {
	slice := []int16{1, 0, 2, 0, 3, 0, 0, 4, 0}
	require.Equal(t, 5, Count[simd.Reg128](slice, 0))
	require.Equal(t, 1, Count[simd.Reg256](slice, 4))
	require.Equal(t, 0, Count[simd.Reg512](slice, 7))
	require.Equal(t, 0, Count[simd.Reg512]([]int16(nil), 7))
	require.Equal(t, 4, CountIfP[simd.Reg256](slice, GreaterThan[int16, simd.Reg256]{Threshold: 0}))
	require.Equal(t, 9, CountIf[simd.Reg128](slice, func(v simd.Pack[int16, simd.Reg128]) simd.VBool[int16, simd.Reg128] {
		return simd.Equal(v, v)
	}))
}

// Find and Count must ignore matches just outside the slice and must not
// fault next to a guard page.
func TestFindGuardPages(t *testing.T) {
	t.Run("128bit/int8", testFindGuardPages[int8, simd.Reg128])
	t.Run("128bit/uint64", testFindGuardPages[uint64, simd.Reg128])
	t.Run("256bit/uint8", testFindGuardPages[uint8, simd.Reg256])
	t.Run("256bit/int32", testFindGuardPages[int32, simd.Reg256])
	t.Run("512bit/int16", testFindGuardPages[int16, simd.Reg512])
	t.Run("512bit/uint32", testFindGuardPages[uint32, simd.Reg512])
}

func testFindGuardPages[T simd.Lanes, R simd.Register](t *testing.T) {
	x := poison[T]()
	forEachPlacement[T, R](t, func(t *testing.T, p placement, s []T) {
		for i := range s {
			s[i] = distinctFrom(i, x)
		}
		require.Equal(t, len(s), Find[R](s, x))
		require.Equal(t, 0, Count[R](s, x))
		if len(s) == 0 {
			return
		}

		at := (p.n*7 + p.pad) % len(s)
		s[at] = x
		require.Equal(t, at, Find[R](s, x))
		require.Equal(t, 1, Count[R](s, x))
		require.Equal(t, at, FindUnguarded[R](s, x))

		// Only the last element matches: the unguarded scan ends on the
		// block holding it.
		s[at] = distinctFrom(at, x)
		s[len(s)-1] = x
		require.Equal(t, len(s)-1, FindUnguarded[R](s, x))
	})
}

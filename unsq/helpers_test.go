package unsq

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-unsq/unsq/internal/guardpage"
	"github.com/go-unsq/unsq/simd"
)

// poisonByte fills guard buffers outside the slice under test. Algorithms
// must neither report nor modify those bytes.
const poisonByte = 0x01

// poison returns the T whose every byte is poisonByte.
func poison[T simd.Lanes]() T {
	bits := uint64(poisonByte) * 0x0101010101010101
	if size := simd.ElemSize[T](); size < 8 {
		bits &= 1<<(8*size) - 1
	}
	return T(bits)
}

func newGuarded(t *testing.T, pages int) *guardpage.Buffer {
	t.Helper()
	if !guardpage.Supported {
		t.Skip("guard pages are not supported on this platform")
	}
	b, err := guardpage.New(pages)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, b.Close()) })
	return b
}

// placement is one way of positioning a slice inside a guard buffer.
type placement struct {
	name  string
	atEnd bool
	pad   int
	n     int
}

// forEachPlacement runs check for every length up to three registers of
// elements and every padding up to one register, with the slice flush
// against the leading and then the trailing guard page. The buffer is
// refilled with poisonByte before each run; afterwards every byte outside
// the slice must still be poisonByte.
func forEachPlacement[T simd.Lanes, R simd.Register](t *testing.T, check func(t *testing.T, p placement, s []T)) {
	t.Helper()
	b := newGuarded(t, 1)
	size := simd.ElemSize[T]()
	lanes := simd.LaneCount[R, T]()
	width := simd.RegisterBytes[R]()

	for n := 0; n <= 3*lanes+1; n++ {
		for pad := 0; pad <= width; pad += size {
			for _, atEnd := range []bool{false, true} {
				p := placement{name: "start", atEnd: atEnd, pad: pad, n: n}
				var s []T
				var err error
				b.Fill(poisonByte)
				if atEnd {
					p.name = "end"
					s, err = guardpage.AtEnd[T](b, pad, n)
				} else {
					s, err = guardpage.AtStart[T](b, pad, n)
				}
				require.NoError(t, err)
				check(t, p, s)
				if t.Failed() {
					t.Fatalf("failed at %s placement, pad %d, n %d", p.name, pad, n)
				}
				requireUntouched(t, b, p, size)
			}
		}
	}
}

func requireUntouched(t *testing.T, b *guardpage.Buffer, p placement, size int) {
	t.Helper()
	lo, hi := p.pad, p.pad+p.n*size
	if p.atEnd {
		lo, hi = b.Len()-p.pad-p.n*size, b.Len()-p.pad
	}
	data := b.Bytes()
	poisoned := []byte{poisonByte}
	if bytes.Count(data[:lo], poisoned) != lo || bytes.Count(data[hi:], poisoned) != len(data)-hi {
		t.Fatalf("%s placement pad %d n %d: a byte outside the slice was modified", p.name, p.pad, p.n)
	}
}

// distinctFrom returns a value derived from i that never equals avoid.
func distinctFrom[T simd.Lanes](i int, avoid T) T {
	v := T(i%13 + 2)
	if v == avoid {
		v++
	}
	return v
}

// forEachStart runs check on slices starting at every element-aligned offset
// of a two-page guard buffer, so every page offset is a start and many slices
// cross the page boundary inside the buffer. Lengths run up to three
// registers of elements; -short keeps only the lengths around register
// multiples. After each run the register-wide windows on both sides of the
// slice must still hold poisonByte.
func forEachStart[T simd.Lanes, R simd.Register](t *testing.T, check func(t *testing.T, start int, s []T)) {
	t.Helper()
	b := newGuarded(t, 2)
	size := simd.ElemSize[T]()
	lanes := simd.LaneCount[R, T]()
	width := simd.RegisterBytes[R]()

	var lengths []int
	for n := 0; n <= 3*lanes+1; n++ {
		if testing.Short() && n > 2 && n%lanes > 1 && n%lanes != lanes-1 {
			continue
		}
		lengths = append(lengths, n)
	}

	data := b.Bytes()
	poisoned := []byte{poisonByte}
	b.Fill(poisonByte)
	for start := 0; start < len(data); start += size {
		for _, n := range lengths {
			end := start + n*size
			if end > len(data) {
				break
			}
			s, err := guardpage.Slice[T](b, start, n)
			require.NoError(t, err)
			check(t, start, s)
			if t.Failed() {
				t.Fatalf("failed at start %d, n %d", start, n)
			}
			lo, hi := max(0, start-width), min(len(data), end+width)
			if bytes.Count(data[lo:start], poisoned) != start-lo || bytes.Count(data[end:hi], poisoned) != hi-end {
				t.Fatalf("start %d n %d: a byte outside the slice was modified", start, n)
			}
			for i := start; i < end; i++ {
				data[i] = poisonByte
			}
		}
	}
}

package simd

import "testing"

func TestIgnoreMasks(t *testing.T) {
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"128/int8/first0", IgnoreFirstNMask[int8, Reg128](0).Raw(), 0xffff},
		{"128/int8/first3", IgnoreFirstNMask[int8, Reg128](3).Raw(), 0xfff8},
		{"128/int32/first1", IgnoreFirstNMask[int32, Reg128](1).Raw(), 0xfff0},
		{"128/int32/first4", IgnoreFirstNMask[int32, Reg128](4).Raw(), 0},
		{"128/int32/last1", IgnoreLastNMask[int32, Reg128](1).Raw(), 0x0fff},
		{"128/int64/last0", IgnoreLastNMask[int64, Reg128](0).Raw(), 0xffff},
		{"256/int16/first2", IgnoreFirstNMask[int16, Reg256](2).Raw(), 0xfffffff0},
		{"256/int16/last2", IgnoreLastNMask[int16, Reg256](2).Raw(), 0x0fffffff},
		{"256/uint64/last4", IgnoreLastNMask[uint64, Reg256](4).Raw(), 0},
		{"512/uint8/first0", IgnoreFirstNMask[uint8, Reg512](0).Raw(), ^uint64(0)},
		{"512/uint8/first63", IgnoreFirstNMask[uint8, Reg512](63).Raw(), 1 << 63},
		{"512/int32/last1", IgnoreLastNMask[int32, Reg512](1).Raw(), 1<<60 - 1},
		{"512/int64/first8", IgnoreFirstNMask[int64, Reg512](8).Raw(), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %#x, want %#x", tt.name, tt.got, tt.want)
		}
	}
}

func TestCombineIgnore(t *testing.T) {
	// Keep elements 2..5 of 8 int16 lanes.
	first := IgnoreFirstNMask[int16, Reg128](2)
	last := IgnoreLastNMask[int16, Reg128](2)
	got := CombineIgnore(first, last)
	if got.Raw() != 0x0ff0 {
		t.Errorf("CombineIgnore: got %#x, want 0x0ff0", got.Raw())
	}
	if n := got.CountTrue(); n != 4 {
		t.Errorf("CountTrue: got %d, want 4", n)
	}
}

func TestTopBitsQueries(t *testing.T) {
	x := SetAll[Reg256](int32(5))
	y := FromReg[int32](x.Reg())
	lanes := y.ToSlice()
	lanes[3], lanes[6] = 9, 9
	z := Load[Reg256](lanes)

	eq := GetTopBits(Equal(z, SetAll[Reg256](int32(9))))
	if i, ok := eq.FirstTrue(); !ok || i != 3 {
		t.Errorf("FirstTrue: got (%d, %v), want (3, true)", i, ok)
	}
	if eq.AllTrue() || !eq.AnyTrue() {
		t.Errorf("AllTrue/AnyTrue: got %v/%v, want false/true", eq.AllTrue(), eq.AnyTrue())
	}
	if n := eq.CountTrue(); n != 2 {
		t.Errorf("CountTrue: got %d, want 2", n)
	}

	ignored := GetTopBitsIgnore(Equal(z, SetAll[Reg256](int32(9))), IgnoreFirstNMask[int32, Reg256](4))
	if i, ok := ignored.FirstTrue(); !ok || i != 6 {
		t.Errorf("FirstTrue after ignoring 4: got (%d, %v), want (6, true)", i, ok)
	}

	none := GetTopBits(Equal(z, SetAll[Reg256](int32(1))))
	if _, ok := none.FirstTrue(); ok {
		t.Errorf("FirstTrue on empty mask: got ok")
	}
	if !none.Not().AllTrue() {
		t.Errorf("Not of empty mask is not all true: %#x", none.Not().Raw())
	}
	if none.Not().Raw() != 0xffffffff {
		t.Errorf("Not leaks past the register: %#x", none.Not().Raw())
	}

	all := GetTopBits(Equal(x, x))
	if !all.AllTrue() {
		t.Errorf("AllTrue on x == x: got false (%#x)", all.Raw())
	}
	if got := all.And(eq).Or(none); got != eq {
		t.Errorf("And/Or: got %#x, want %#x", got.Raw(), eq.Raw())
	}
}

func TestTopBits512(t *testing.T) {
	lanes := make([]uint8, 64)
	lanes[63] = 1
	x := Load[Reg512](lanes)
	tb := GetTopBits(Equal(x, SetAll[Reg512](uint8(1))))
	if i, ok := tb.FirstTrue(); !ok || i != 63 {
		t.Errorf("FirstTrue: got (%d, %v), want (63, true)", i, ok)
	}
	if !GetTopBits(Equal(x, x)).AllTrue() {
		t.Errorf("AllTrue over 64 bytes failed")
	}
}

func TestSpreadTopBits(t *testing.T) {
	for _, raw := range []uint64{0, 1, 0x8001, 0xdeadbeefcafef00d, ^uint64(0)} {
		tb := TopBitsFromRaw[uint8, Reg512](raw)
		m := SpreadTopBits(tb)
		for i := 0; i < 64; i++ {
			want := raw&(1<<i) != 0
			if m.Lane(i) != want {
				t.Errorf("SpreadTopBits(%#x) lane %d: got %v, want %v", raw, i, m.Lane(i), want)
			}
		}
		if back := GetTopBits(m); back != tb {
			t.Errorf("GetTopBits(SpreadTopBits(%#x)) = %#x", raw, back.Raw())
		}
	}
}

func TestReplaceIgnored(t *testing.T) {
	x := Load[Reg128]([]int32{1, 2, 3, 4})
	fill := SetAll[Reg128](int32(-1))
	keep := CombineIgnore(IgnoreFirstNMask[int32, Reg128](1), IgnoreLastNMask[int32, Reg128](1))
	got := ReplaceIgnored(x, keep, fill).ToSlice()
	want := []int32{-1, 2, 3, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReplaceIgnored lane %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

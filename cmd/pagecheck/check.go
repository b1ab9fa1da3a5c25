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

package main

import (
	"bytes"
	"fmt"
	"runtime/debug"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"

	"github.com/go-unsq/unsq/internal/guardpage"
	"github.com/go-unsq/unsq/simd"
	"github.com/go-unsq/unsq/unsq"
)

// poisonByte fills the buffer around the slice under test.
const poisonByte = 0x01

type sweepConfig struct {
	maxLen  int
	offsets int
}

type sweepStats struct {
	placements int
}

type sweepFunc func(cfg sweepConfig) (sweepStats, error)

func laneTypeNames() []string {
	return []string{"int8", "uint8", "int16", "uint16", "int32", "uint32", "int64", "uint64", "int", "uint", "uintptr"}
}

func checkersForWidth(width int) (map[string]sweepFunc, error) {
	switch width {
	case 128:
		return checkers[simd.Reg128](), nil
	case 256:
		return checkers[simd.Reg256](), nil
	case 512:
		return checkers[simd.Reg512](), nil
	}
	return nil, errors.Errorf("unsupported --width %d, want 128, 256 or 512", width)
}

func checkers[R simd.Register]() map[string]sweepFunc {
	return map[string]sweepFunc{
		"int8":    sweepType[int8, R],
		"uint8":   sweepType[uint8, R],
		"int16":   sweepType[int16, R],
		"uint16":  sweepType[uint16, R],
		"int32":   sweepType[int32, R],
		"uint32":  sweepType[uint32, R],
		"int64":   sweepType[int64, R],
		"uint64":  sweepType[uint64, R],
		"int":     sweepType[int, R],
		"uint":    sweepType[uint, R],
		"uintptr": sweepType[uintptr, R],
	}
}

type placement struct {
	n     int
	pad   int
	atEnd bool
}

func (p placement) String() string {
	side := "start"
	if p.atEnd {
		side = "end"
	}
	return fmt.Sprintf("n=%d pad=%d at %s", p.n, p.pad, side)
}

func sweepType[T simd.Lanes, R simd.Register](cfg sweepConfig) (stats sweepStats, err error) {
	size := simd.ElemSize[T]()
	maxLen := cfg.maxLen
	if maxLen <= 0 {
		maxLen = 3*simd.LaneCount[R, T]() + 1
	}
	offsets := cfg.offsets
	if offsets <= 0 {
		offsets = simd.RegisterBytes[R]()
	}

	pages := (maxLen*size+offsets)/guardpage.PageSize() + 1
	b, err := guardpage.New(pages)
	if err != nil {
		return stats, errors.Wrap(err, "allocating guard buffer")
	}
	defer func() {
		if cerr := b.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	log := simd.Logger().With("width", simd.BitWidth[R](), "type", fmt.Sprintf("%T", *new(T)))
	for n := 0; n <= maxLen; n++ {
		for pad := 0; pad <= offsets; pad += size {
			for _, atEnd := range []bool{false, true} {
				p := placement{n: n, pad: pad, atEnd: atEnd}
				if err := checkPlacement[T, R](b, p); err != nil {
					return stats, errors.Wrapf(err, "%s", p)
				}
				stats.placements++
			}
		}
		log.Debug("length checked", "n", n)
	}
	log.Info("sweep done", "placements", stats.placements)
	return stats, nil
}

func catchFault(err *error) {
	if r := recover(); r != nil {
		*err = errors.Errorf("fault: %v", r)
	}
}

// checkPlacement runs every algorithm on one placement. Faults become errors
// instead of crashing the process.
func checkPlacement[T simd.Lanes, R simd.Register](b *guardpage.Buffer, p placement) (err error) {
	defer catchFault(&err)
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))

	b.Fill(poisonByte)
	var s []T
	if p.atEnd {
		s, err = guardpage.AtEnd[T](b, p.pad, p.n)
	} else {
		s, err = guardpage.AtStart[T](b, p.pad, p.n)
	}
	if err != nil {
		return err
	}

	x := poison[T]()
	for i := range s {
		s[i] = distinctFrom(i, x)
	}
	if err := checkSearch[T, R](s, x, p); err != nil {
		return err
	}
	if err := checkReduce[T, R](s); err != nil {
		return err
	}
	if bs, ok := any(s).([]byte); ok {
		if err := checkStrings[R](bs); err != nil {
			return err
		}
	}
	if err := checkRemove[T, R](s, x, p); err != nil {
		return err
	}
	return checkUntouched(b, p, simd.ElemSize[T]())
}

func checkSearch[T simd.Lanes, R simd.Register](s []T, x T, p placement) error {
	if got := unsq.Find[R](s, x); got != len(s) {
		return errors.Errorf("Find of an absent value = %d, want %d", got, len(s))
	}
	if got := unsq.Count[R](s, x); got != 0 {
		return errors.Errorf("Count of an absent value = %d, want 0", got)
	}
	if len(s) == 0 {
		return nil
	}

	at := (p.n*7 + p.pad) % len(s)
	s[at] = x
	defer func() { s[at] = distinctFrom(at, x) }()
	if got := unsq.Find[R](s, x); got != at {
		return errors.Errorf("Find = %d, want %d", got, at)
	}
	if got := unsq.FindUnguarded[R](s, x); got != at {
		return errors.Errorf("FindUnguarded = %d, want %d", got, at)
	}
	if got := unsq.Count[R](s, x); got != 1 {
		return errors.Errorf("Count = %d, want 1", got)
	}
	return nil
}

func checkReduce[T simd.Lanes, R simd.Register](s []T) error {
	var sum T
	for _, v := range s {
		sum += v
	}
	if got := unsq.Sum[R](s); got != sum {
		return errors.Errorf("Sum = %v, want %v", got, sum)
	}
	if len(s) == 0 {
		if _, ok := unsq.MinValue[R](s); ok {
			return errors.New("MinValue of an empty slice reported a value")
		}
		return nil
	}

	lo, hi := s[0], s[0]
	for _, v := range s[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if got, _ := unsq.MinValue[R](s); got != lo {
		return errors.Errorf("MinValue = %v, want %v", got, lo)
	}
	if got, _ := unsq.MaxValue[R](s); got != hi {
		return errors.Errorf("MaxValue = %v, want %v", got, hi)
	}
	return nil
}

// checkStrings treats s as a NUL-terminated string ending at its last byte.
func checkStrings[R simd.Register](s []byte) error {
	if len(s) == 0 {
		return nil
	}
	last := s[len(s)-1]
	s[len(s)-1] = 0
	defer func() { s[len(s)-1] = last }()

	if got := unsq.Strlen[R](s); got != len(s)-1 {
		return errors.Errorf("Strlen = %d, want %d", got, len(s)-1)
	}
	other := append([]byte(nil), s...)
	if got := unsq.Strcmp[R](s, other); got != 0 {
		return errors.Errorf("Strcmp of equal strings = %d, want 0", got)
	}
	if len(s) > 1 {
		other[len(s)-2]++
		if got := unsq.Strcmp[R](s, other); got != -1 {
			return errors.Errorf("Strcmp against a larger string = %d, want -1", got)
		}
	}
	return nil
}

func checkRemove[T simd.Lanes, R simd.Register](s []T, x T, p placement) error {
	want := []T{}
	for i := range s {
		if (i*5+p.pad)%3 == 0 {
			s[i] = x
			continue
		}
		want = append(want, s[i])
	}
	n := unsq.Remove[R](s, x)
	if diff := cmp.Diff(want, s[:n], cmpopts.EquateEmpty()); diff != "" {
		return errors.Errorf("Remove mismatch (-want +got):\n%s", diff)
	}
	return nil
}

func checkUntouched(b *guardpage.Buffer, p placement, size int) error {
	lo, hi := p.pad, p.pad+p.n*size
	if p.atEnd {
		lo, hi = b.Len()-p.pad-p.n*size, b.Len()-p.pad
	}
	data := b.Bytes()
	poisoned := []byte{poisonByte}
	if bytes.Count(data[:lo], poisoned) != lo || bytes.Count(data[hi:], poisoned) != len(data)-hi {
		return errors.New("a byte outside the slice was modified")
	}
	return nil
}

// poison returns the T whose every byte is poisonByte.
func poison[T simd.Lanes]() T {
	bits := uint64(poisonByte) * 0x0101010101010101
	if size := simd.ElemSize[T](); size < 8 {
		bits &= 1<<(8*size) - 1
	}
	return T(bits)
}

// distinctFrom returns a nonzero value derived from i that never equals avoid.
func distinctFrom[T simd.Lanes](i int, avoid T) T {
	v := T(i%13 + 2)
	if v == avoid {
		v++
	}
	return v
}

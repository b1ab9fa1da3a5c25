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

// Package guardpage allocates byte buffers bordered on both sides by pages
// that fault on any access.
//
// A slice placed flush against either border turns every out-of-range read
// into a crash, which makes it the reference harness for code that loads
// whole registers near the end of its input. Buffers live outside the Go
// heap and must be released with Close.
package guardpage

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Buffer is a run of read-write pages with an inaccessible page before and
// after it.
type Buffer struct {
	mapping []byte
	data    []byte
}

// Bytes returns the usable region. Its first byte follows the leading guard
// page and its last byte precedes the trailing one.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the size of the usable region in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Fill sets every usable byte to v.
func (b *Buffer) Fill(v byte) {
	for i := range b.data {
		b.data[i] = v
	}
}

// Slice returns n elements of T starting off bytes into the usable region.
func Slice[T any](b *Buffer, off, n int) ([]T, error) {
	var t T
	size := int(unsafe.Sizeof(t))
	if off < 0 || n < 0 || off+n*size > len(b.data) {
		return nil, errors.Errorf("guardpage: %d elements of %d bytes at offset %d do not fit in %d bytes",
			n, size, off, len(b.data))
	}
	if off%int(unsafe.Alignof(t)) != 0 {
		return nil, errors.Errorf("guardpage: offset %d is not aligned to %d", off, unsafe.Alignof(t))
	}
	if n == 0 {
		return []T{}, nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b.data[off])), n), nil
}

// AtStart returns n elements of T beginning pad bytes after the leading
// guard page.
func AtStart[T any](b *Buffer, pad, n int) ([]T, error) {
	return Slice[T](b, pad, n)
}

// AtEnd returns n elements of T ending pad bytes before the trailing guard
// page.
func AtEnd[T any](b *Buffer, pad, n int) ([]T, error) {
	var t T
	return Slice[T](b, len(b.data)-pad-n*int(unsafe.Sizeof(t)), n)
}

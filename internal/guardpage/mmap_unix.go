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

//go:build unix

package guardpage

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/go-unsq/unsq/simd"
)

// Supported reports whether guard-page buffers are available on this
// platform.
const Supported = true

// PageSize returns the operating system page size.
func PageSize() int {
	return unix.Getpagesize()
}

// New maps pages usable pages plus one guard page on each side.
func New(pages int) (*Buffer, error) {
	if pages < 1 {
		return nil, errors.Errorf("guardpage: need at least one page, got %d", pages)
	}
	ps := PageSize()
	mapping, err := unix.Mmap(-1, 0, (pages+2)*ps, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "guardpage: mmap %d pages", pages+2)
	}
	if err := unix.Mprotect(mapping[:ps], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mapping)
		return nil, errors.Wrap(err, "guardpage: protect leading page")
	}
	if err := unix.Mprotect(mapping[(pages+1)*ps:], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mapping)
		return nil, errors.Wrap(err, "guardpage: protect trailing page")
	}
	simd.Logger().Debug("guardpage: mapped buffer", "pages", pages, "page_size", ps)
	return &Buffer{mapping: mapping, data: mapping[ps : (pages+1)*ps]}, nil
}

// Close unmaps the buffer. Slices obtained from it must not be used
// afterwards.
func (b *Buffer) Close() error {
	if b.mapping == nil {
		return nil
	}
	err := unix.Munmap(b.mapping)
	b.mapping, b.data = nil, nil
	return errors.Wrap(err, "guardpage: munmap")
}

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

//go:build !unix

package guardpage

import "github.com/pkg/errors"

// Supported reports whether guard-page buffers are available on this
// platform.
const Supported = false

// PageSize returns the page size assumed on platforms without guard pages.
func PageSize() int {
	return 4096
}

// New always fails on platforms without mmap.
func New(pages int) (*Buffer, error) {
	return nil, errors.New("guardpage: not supported on this platform")
}

// Close is a no-op.
func (b *Buffer) Close() error {
	return nil
}

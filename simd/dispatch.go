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

// HostLevel is the widest vector instruction set the running CPU offers.
//
// The algorithms never consult it: register width is always the caller's
// type parameter. It exists so tools can pick a sensible default width and
// report what the hardware would run natively.
type HostLevel int

const (
	// HostScalar indicates no known vector extension.
	HostScalar HostLevel = iota

	// HostSSE2 indicates SSE2 (x86-64 baseline, 128-bit).
	HostSSE2

	// HostAVX2 indicates AVX2 (256-bit).
	HostAVX2

	// HostAVX512 indicates AVX-512F (512-bit).
	HostAVX512

	// HostNEON indicates ARM NEON (128-bit).
	HostNEON
)

// String returns a human-readable name for the level.
func (l HostLevel) String() string {
	switch l {
	case HostScalar:
		return "scalar"
	case HostSSE2:
		return "sse2"
	case HostAVX2:
		return "avx2"
	case HostAVX512:
		return "avx512"
	case HostNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Width returns the natural register width of the level in bits.
func (l HostLevel) Width() int {
	switch l {
	case HostAVX2:
		return 256
	case HostAVX512:
		return 512
	default:
		return 128
	}
}

// hostLevel is set by init() in host_*.go files.
var hostLevel HostLevel

// hasBitManip reports native pdep/pext (BMI2). Set by init() in host_*.go.
var hasBitManip bool

// Host returns the detected host level.
func Host() HostLevel {
	return hostLevel
}

// HostWidth returns the natural register width of the host in bits: 512 with
// AVX-512F, 256 with AVX2, 128 otherwise.
func HostWidth() int {
	return hostLevel.Width()
}

// HostName returns a human-readable name for the host level, e.g. "avx2".
func HostName() string {
	return hostLevel.String()
}

// HasBitManip reports whether the CPU implements pdep/pext natively. The
// compress masks use a portable software version either way.
func HasBitManip() bool {
	return hasBitManip
}

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

// Package debug holds the precondition checks of the simd and unsq packages.
//
// The hot paths of those packages document their preconditions (alignment,
// valid ranges, reachable sentinels) as undefined behavior when violated.
// Checks are compiled in only with the unsqdebug build tag:
//
//	go test -tags unsqdebug ./...
//
// Without it Enabled is a false constant and every guarded check is removed
// by the compiler.
package debug

import "fmt"

// Assert panics with the formatted message when checks are enabled and cond
// is false. Call sites wrap it in `if Enabled` so the arguments are not
// evaluated in release builds.
func Assert(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

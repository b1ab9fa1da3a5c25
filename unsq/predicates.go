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

package unsq

import "github.com/go-unsq/unsq/simd"

// Predicate tests a whole pack at once. Apply returns the mask of lanes that
// satisfy it; lanes are independent of each other.
type Predicate[T simd.Lanes, R simd.Register] interface {
	Apply(v simd.Pack[T, R]) simd.VBool[T, R]
}

// PackFunc adapts a function over packs to a Predicate.
type PackFunc[T simd.Lanes, R simd.Register] func(v simd.Pack[T, R]) simd.VBool[T, R]

func (f PackFunc[T, R]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	return f(v)
}

// equalTo is the predicate behind Find, Remove and Count. The comparison
// value is broadcast once.
type equalTo[T simd.Lanes, R simd.Register] struct {
	xs simd.Pack[T, R]
}

func equals[R simd.Register, T simd.Lanes](x T) equalTo[T, R] {
	return equalTo[T, R]{xs: simd.SetAll[R](x)}
}

func (p equalTo[T, R]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	return simd.Equal(v, p.xs)
}

// NotEqual matches lanes where v != Value.
type NotEqual[T simd.Lanes, R simd.Register] struct {
	Value T
}

func (p NotEqual[T, R]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	return simd.NotEqual(v, simd.SetAll[R](p.Value))
}

// GreaterThan matches lanes where v > Threshold.
type GreaterThan[T simd.Lanes, R simd.Register] struct {
	Threshold T
}

func (p GreaterThan[T, R]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	return simd.Greater(v, simd.SetAll[R](p.Threshold))
}

// LessThan matches lanes where v < Threshold.
type LessThan[T simd.Lanes, R simd.Register] struct {
	Threshold T
}

func (p LessThan[T, R]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	return simd.Less(v, simd.SetAll[R](p.Threshold))
}

// GreaterEqual matches lanes where v >= Threshold.
type GreaterEqual[T simd.Lanes, R simd.Register] struct {
	Threshold T
}

func (p GreaterEqual[T, R]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	return simd.GreaterEqual(v, simd.SetAll[R](p.Threshold))
}

// LessEqual matches lanes where v <= Threshold.
type LessEqual[T simd.Lanes, R simd.Register] struct {
	Threshold T
}

func (p LessEqual[T, R]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	return simd.LessEqual(v, simd.SetAll[R](p.Threshold))
}

// InRange matches lanes where Min <= v <= Max.
type InRange[T simd.Lanes, R simd.Register] struct {
	Min, Max T
}

func (p InRange[T, R]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	geMin := simd.GreaterEqual(v, simd.SetAll[R](p.Min))
	leMax := simd.LessEqual(v, simd.SetAll[R](p.Max))
	return simd.MaskAnd(geMin, leMax)
}

// Not inverts another predicate.
type Not[T simd.Lanes, R simd.Register, P Predicate[T, R]] struct {
	P P
}

func (p Not[T, R, P]) Apply(v simd.Pack[T, R]) simd.VBool[T, R] {
	return simd.MaskNot(p.P.Apply(v))
}

// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ndim provides the axis bookkeeping shared by the wavelet transforms:
// walking the 1-D lanes of a row-major etensor along one axis, and building
// new tensors whose extent along that axis differs from the input.
package ndim

import (
	"github.com/emer/etable/etensor"
)

// Normalize maps a possibly negative axis onto [0, ndims).
// Negative values count from the end, so -1 is the last axis.
func Normalize(axis, ndims int) (int, bool) {
	if axis < 0 {
		axis += ndims
	}
	if axis < 0 || axis >= ndims {
		return 0, false
	}
	return axis, true
}

// Lanes describes the 1-D runs of a row-major tensor along one axis.
// Element k of lane l lives at offset (l/Inner)*N*Inner + k*Inner + l%Inner.
type Lanes struct {
	Outer int // product of the dims before the axis
	N     int // extent along the axis
	Inner int // product of the dims after the axis
}

// LanesOf returns the lane layout of shape along axis, which must already be normalized.
func LanesOf(shape []int, axis int) Lanes {
	ln := Lanes{Outer: 1, N: shape[axis], Inner: 1}
	for i := 0; i < axis; i++ {
		ln.Outer *= shape[i]
	}
	for i := axis + 1; i < len(shape); i++ {
		ln.Inner *= shape[i]
	}
	return ln
}

// Count is the number of lanes
func (ln Lanes) Count() int {
	return ln.Outer * ln.Inner
}

// With returns the same layout with extent n along the axis.
func (ln Lanes) With(n int) Lanes {
	ln.N = n
	return ln
}

func (ln Lanes) base(l int) int {
	return (l/ln.Inner)*ln.N*ln.Inner + l%ln.Inner
}

// Gather copies lane l of vals into dst, which must hold N values.
func (ln Lanes) Gather(vals []float64, l int, dst []float64) {
	off := ln.base(l)
	for k := 0; k < ln.N; k++ {
		dst[k] = vals[off]
		off += ln.Inner
	}
}

// Scatter copies src into lane l of vals.
func (ln Lanes) Scatter(vals []float64, l int, src []float64) {
	off := ln.base(l)
	for k := 0; k < ln.N; k++ {
		vals[off] = src[k]
		off += ln.Inner
	}
}

// Shape returns a copy of the shape of t.
func Shape(t *etensor.Float64) []int {
	shp := t.Shapes()
	out := make([]int, len(shp))
	copy(out, shp)
	return out
}

// WithDim returns a copy of shape with dim axis set to n.
func WithDim(shape []int, axis, n int) []int {
	out := make([]int, len(shape))
	copy(out, shape)
	out[axis] = n
	return out
}

// SameShape reports whether a and b have identical shapes.
func SameShape(a, b *etensor.Float64) bool {
	sa, sb := a.Shapes(), b.Shapes()
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// Zeros returns a new zero-valued tensor of the given shape.
func Zeros(shape []int) *etensor.Float64 {
	shp := make([]int, len(shape))
	copy(shp, shape)
	return etensor.NewFloat64(shp, nil, nil)
}

// Clone returns a deep copy of t.
func Clone(t *etensor.Float64) *etensor.Float64 {
	out := Zeros(t.Shapes())
	copy(out.Values, t.Values)
	return out
}

// FromSlice returns a 1-D tensor holding a copy of vals.
func FromSlice(vals []float64) *etensor.Float64 {
	out := Zeros([]int{len(vals)})
	copy(out.Values, vals)
	return out
}

// Map applies fn to every lane of t along axis, producing a tensor whose
// extent along axis is outN. fn receives scratch slices that are reused across
// lanes: in holds the lane, out (zeroed) receives the result.
func Map(t *etensor.Float64, axis, outN int, fn func(in, out []float64)) *etensor.Float64 {
	shp := t.Shapes()
	src := LanesOf(shp, axis)
	dst := src.With(outN)
	res := Zeros(WithDim(shp, axis, outN))
	in := make([]float64, src.N)
	out := make([]float64, outN)
	for l := 0; l < src.Count(); l++ {
		src.Gather(t.Values, l, in)
		for i := range out {
			out[i] = 0
		}
		fn(in, out)
		dst.Scatter(res.Values, l, out)
	}
	return res
}

// Map2 is Map with two outputs of the same extent, as produced by a single
// level of wavelet decomposition.
func Map2(t *etensor.Float64, axis, outN int, fn func(in, a, b []float64)) (*etensor.Float64, *etensor.Float64) {
	shp := t.Shapes()
	src := LanesOf(shp, axis)
	dst := src.With(outN)
	ra := Zeros(WithDim(shp, axis, outN))
	rb := Zeros(WithDim(shp, axis, outN))
	in := make([]float64, src.N)
	a := make([]float64, outN)
	b := make([]float64, outN)
	for l := 0; l < src.Count(); l++ {
		src.Gather(t.Values, l, in)
		for i := 0; i < outN; i++ {
			a[i], b[i] = 0, 0
		}
		fn(in, a, b)
		dst.Scatter(ra.Values, l, a)
		dst.Scatter(rb.Values, l, b)
	}
	return ra, rb
}

// Zip combines the lanes of two same-shape tensors into one output of extent
// outN along axis. Either input may be nil, in which case fn receives nil for it.
func Zip(a, b *etensor.Float64, axis, outN int, fn func(x, y, out []float64)) *etensor.Float64 {
	ref := a
	if ref == nil {
		ref = b
	}
	shp := ref.Shapes()
	src := LanesOf(shp, axis)
	dst := src.With(outN)
	res := Zeros(WithDim(shp, axis, outN))
	var x, y []float64
	if a != nil {
		x = make([]float64, src.N)
	}
	if b != nil {
		y = make([]float64, src.N)
	}
	out := make([]float64, outN)
	for l := 0; l < src.Count(); l++ {
		if a != nil {
			src.Gather(a.Values, l, x)
		}
		if b != nil {
			src.Gather(b.Values, l, y)
		}
		for i := range out {
			out[i] = 0
		}
		fn(x, y, out)
		dst.Scatter(res.Values, l, out)
	}
	return res
}

// Resize returns a copy of t with extent n along axis: samples past n are
// dropped, and missing samples at the tail are zero.
func Resize(t *etensor.Float64, axis, n int) *etensor.Float64 {
	if t.Shapes()[axis] == n {
		return Clone(t)
	}
	return Map(t, axis, n, func(in, out []float64) {
		copy(out, in)
	})
}

// Pad zero-extends every listed axis that has odd extent by one trailing
// sample. It returns the padded copy and whether any axis was extended.
func Pad(t *etensor.Float64, axes []int) (*etensor.Float64, bool) {
	res := t
	padded := false
	for _, ax := range axes {
		n := res.Shapes()[ax]
		if n%2 == 0 {
			continue
		}
		res = Resize(res, ax, n+1)
		padded = true
	}
	if !padded {
		return Clone(t), false
	}
	return res, true
}

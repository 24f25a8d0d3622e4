// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package baseline

import (
	"math"

	"github.com/emer/wavebase/wavelet"
)

// Span is the half-open index range [Start, Stop) along one dimension.
// Stop is clipped to the extent of the dimension.
type Span struct {
	Start int
	Stop  int
}

// All selects a whole dimension.
var All = Span{Start: 0, Stop: math.MaxInt32}

// At selects the single index i.
func At(i int) Span {
	return Span{Start: i, Stop: i + 1}
}

// Range selects [start, stop).
func Range(start, stop int) Span {
	return Span{Start: start, Stop: stop}
}

// Region is a hyper-rectangle of samples known to be background. A region
// with fewer spans than the signal has dimensions applies to the trailing
// dimensions, with the leading ones fully selected, so Region{Range(0, 3)}
// is the first three samples of every lane along the last axis.
type Region []Span

// offsets returns the row-major offsets of the samples r selects in a tensor
// of the given shape, restricted to the extents in limit.
func (r Region) offsets(shape, limit []int) ([]int, error) {
	nd := len(shape)
	if len(r) > nd {
		return nil, wavelet.Validationf("region has %d spans for %d-dimensional data", len(r), nd)
	}
	lo := make([]int, nd)
	hi := make([]int, nd)
	lead := nd - len(r)
	for d := 0; d < nd; d++ {
		sp := All
		if d >= lead {
			sp = r[d-lead]
		}
		if sp.Start < 0 {
			return nil, wavelet.Validationf("region span %v starts before 0", sp)
		}
		lo[d] = sp.Start
		hi[d] = sp.Stop
		if hi[d] > limit[d] {
			hi[d] = limit[d]
		}
		if lo[d] >= hi[d] {
			return nil, nil
		}
	}

	strides := make([]int, nd)
	s := 1
	for d := nd - 1; d >= 0; d-- {
		strides[d] = s
		s *= shape[d]
	}
	var offs []int
	idx := append([]int(nil), lo...)
	for {
		off := 0
		for d := range idx {
			off += idx[d] * strides[d]
		}
		offs = append(offs, off)
		d := nd - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < hi[d] {
				break
			}
			idx[d] = lo[d]
		}
		if d < 0 {
			break
		}
	}
	return offs, nil
}

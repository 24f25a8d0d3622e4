// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package baseline

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/wavebase/dtcwt"
	"github.com/emer/wavebase/dwt"
	"github.com/emer/wavebase/ndim"
	"github.com/emer/wavebase/wavelet"
)

// approxFunc returns the smooth approximation of the working signal.
type approxFunc func(working *etensor.Float64) (*etensor.Float64, error)

// observer sees the working signal and background at the end of each
// iteration; both belong to the estimator and must not be kept.
type observer func(iter int, working, background *etensor.Float64)

// Estimate returns the background of x, the same shape as x.
func (dt *DualTree) Estimate(x *etensor.Float64) (*etensor.Float64, error) {
	return dt.estimate(x, nil)
}

func (dt *DualTree) estimate(x *etensor.Float64, obs observer) (*etensor.Float64, error) {
	ax, err := dwt.Axis(x, dt.Axis)
	if err != nil {
		return nil, err
	}
	if _, err := wavelet.FirstStage(dt.FirstStage); err != nil {
		return nil, err
	}
	fam, err := wavelet.DualTree(dt.Wavelet)
	if err != nil {
		return nil, err
	}
	n := x.Dim(ax)
	n += n % 2
	level, err := wavelet.ResolveLevel(dt.Level, n, fam.Len())
	if err != nil {
		return nil, err
	}
	approx := func(w *etensor.Float64) (*etensor.Float64, error) {
		return dtcwt.Approximate(w, dt.FirstStage, dt.Wavelet, level, dt.Mode, ax)
	}
	return dt.Params.iterate(x, []int{ax}, approx, obs)
}

// Estimate returns the background of x, the same shape as x.
func (ds *Discrete) Estimate(x *etensor.Float64) (*etensor.Float64, error) {
	return ds.estimate(x, nil)
}

func (ds *Discrete) estimate(x *etensor.Float64, obs observer) (*etensor.Float64, error) {
	axes, err := dwt.Axes(x, ds.Axes)
	if err != nil {
		return nil, err
	}
	bank, err := wavelet.Discrete(ds.Wavelet)
	if err != nil {
		return nil, err
	}
	// the level is bounded by the shortest padded axis
	n := -1
	for _, ax := range axes {
		m := x.Dim(ax)
		m += m % 2
		if n < 0 || m < n {
			n = m
		}
	}
	level, err := wavelet.ResolveLevel(ds.Level, n, bank.Len())
	if err != nil {
		return nil, err
	}
	approx := func(w *etensor.Float64) (*etensor.Float64, error) {
		return dwt.Approx(w, &bank, level, ds.Mode, axes...)
	}
	return ds.Params.iterate(x, axes, approx, obs)
}

// iterate runs the suppression loop shared by both estimators. Odd extents
// along axes are padded by one trailing zero for the duration.
func (bp *Params) iterate(x *etensor.Float64, axes []int, approx approxFunc, obs observer) (*etensor.Float64, error) {
	if bp.MaxIter < 0 {
		return nil, wavelet.Validationf("MaxIter %d is negative", bp.MaxIter)
	}
	if bp.Mask != nil && len(bp.Mask) != x.Len() {
		return nil, wavelet.Validationf("mask has %d entries for %d samples", len(bp.Mask), x.Len())
	}
	signal, _ := ndim.Pad(x, axes)
	shape := signal.Shapes()
	var anchors []int
	for _, r := range bp.Regions {
		offs, err := r.offsets(shape, x.Shapes())
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, offs...)
	}

	working := ndim.Clone(signal)
	background := ndim.Zeros(shape)
	for it := 0; it < bp.MaxIter; it++ {
		for _, off := range anchors {
			working.Values[off] = signal.Values[off]
		}
		bg, err := approx(working)
		if err != nil {
			return nil, err
		}
		background = bg
		bv, wv := background.Values, working.Values
		for i := range bv {
			if bp.NonNegative && bv[i] < 0 {
				bv[i] = 0
			}
			if bp.CapToSignal && bv[i] > signal.Values[i] {
				bv[i] = wv[i]
			}
			if wv[i] > bv[i] {
				wv[i] = bv[i]
			}
		}
		if obs != nil {
			obs(it, working, background)
		}
	}

	out := background
	for _, ax := range axes {
		out = ndim.Resize(out, ax, x.Dim(ax))
	}
	for i, m := range bp.Mask {
		if m {
			out.Values[i] = 0
		}
	}
	return out, nil
}

// DT returns the dual-tree background of x along its last axis with the
// default settings and maxIter iterations.
func DT(x *etensor.Float64, maxIter int) (*etensor.Float64, error) {
	dt := &DualTree{}
	dt.Defaults()
	dt.MaxIter = maxIter
	return dt.Estimate(x)
}

// DWT returns the discrete wavelet background of x along its last axis with
// the default settings and maxIter iterations.
func DWT(x *etensor.Float64, maxIter int) (*etensor.Float64, error) {
	ds := &Discrete{}
	ds.Defaults()
	ds.MaxIter = maxIter
	return ds.Estimate(x)
}

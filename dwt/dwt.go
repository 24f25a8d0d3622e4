// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dwt is a single-tree discrete wavelet transform along one axis of an
N-dimensional etensor.Float64.

The indexing follows the widely used PyWavelets convention: a lane of N
samples filtered with F taps decomposes into floor((N+F-1)/2) approximation
and detail coefficients, and n coefficients reconstruct into 2n-F+2 samples.
With orthogonal banks reconstruction is exact for every extension Mode.
*/
package dwt

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/wavebase/ndim"
	"github.com/emer/wavebase/wavelet"
)

// DwtLen is the number of coefficients per channel for n samples and f taps.
func DwtLen(n, f int) int {
	return (n + f - 1) / 2
}

// IdwtLen is the number of samples reconstructed from n coefficients with f taps.
func IdwtLen(n, f int) int {
	return 2*n - f + 2
}

// Axis normalizes axis against the dimensions of x.
func Axis(x *etensor.Float64, axis int) (int, error) {
	ax, ok := ndim.Normalize(axis, x.NumDims())
	if !ok {
		return 0, wavelet.Validationf("axis %d is out of range for %d-dimensional data", axis, x.NumDims())
	}
	return ax, nil
}

// Dwt performs a single level decomposition of x along axis.
func Dwt(x *etensor.Float64, bank *wavelet.Bank, mode Mode, axis int) (approx, detail *etensor.Float64, err error) {
	ax, err := Axis(x, axis)
	if err != nil {
		return nil, nil, err
	}
	if x.Dim(ax) == 0 {
		return nil, nil, wavelet.Validationf("cannot decompose an empty axis")
	}
	approx, detail = dwtAxis(x, bank, mode, ax)
	return approx, detail, nil
}

func dwtAxis(x *etensor.Float64, bank *wavelet.Bank, mode Mode, ax int) (approx, detail *etensor.Float64) {
	lo, hi := bank.DecLow, bank.DecHigh
	f := len(lo)
	n := DwtLen(x.Dim(ax), f)
	return ndim.Map2(x, ax, n, func(in, a, d []float64) {
		for o := 0; o < n; o++ {
			var sa, sd float64
			base := 2*o + 1
			for j := 0; j < f; j++ {
				v := mode.ext(in, base-j)
				sa += lo[j] * v
				sd += hi[j] * v
			}
			a[o], d[o] = sa, sd
		}
	})
}

// Idwt reconstructs one level from approximation and detail coefficients of
// identical shape. Either may be nil, and is then taken as zero.
func Idwt(approx, detail *etensor.Float64, bank *wavelet.Bank, axis int) (*etensor.Float64, error) {
	ref := approx
	if ref == nil {
		ref = detail
	}
	if ref == nil {
		return nil, wavelet.Validationf("idwt needs approximation or detail coefficients")
	}
	if approx != nil && detail != nil && !ndim.SameShape(approx, detail) {
		return nil, wavelet.Validationf("approximation shape %v differs from detail shape %v", approx.Shapes(), detail.Shapes())
	}
	ax, err := Axis(ref, axis)
	if err != nil {
		return nil, err
	}
	out := IdwtLen(ref.Dim(ax), len(bank.RecLow))
	if out < 1 {
		return nil, wavelet.Validationf("%d coefficients are too few for %d-tap filters", ref.Dim(ax), len(bank.RecLow))
	}
	return idwtAxis(approx, detail, bank, ax), nil
}

func idwtAxis(approx, detail *etensor.Float64, bank *wavelet.Bank, ax int) *etensor.Float64 {
	lo, hi := bank.RecLow, bank.RecHigh
	f := len(lo)
	ref := approx
	if ref == nil {
		ref = detail
	}
	n := ref.Dim(ax)
	out := IdwtLen(n, f)
	return ndim.Zip(approx, detail, ax, out, func(a, d, y []float64) {
		for k := 0; k < n; k++ {
			base := 2*k - (f - 2)
			for m := 0; m < f; m++ {
				i := base + m
				if i < 0 || i >= out {
					continue
				}
				if a != nil {
					y[i] += lo[m] * a[k]
				}
				if d != nil {
					y[i] += hi[m] * d[k]
				}
			}
		}
	})
}

// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dwt

import (
	"fmt"
	"log"

	"github.com/emer/etable/etensor"
	"github.com/emer/wavebase/ndim"
	"github.com/emer/wavebase/wavelet"
)

// Wavedec performs a multilevel decomposition of x along axis, returning
// [A_n, D_n, ..., D_1]. Level wavelet.LevelMax uses the deepest level the
// length supports. A level above that still runs, but the coarse
// coefficients are dominated by the boundary extension, so it is logged.
func Wavedec(x *etensor.Float64, bank *wavelet.Bank, level int, mode Mode, axis int) ([]*etensor.Float64, error) {
	ax, err := Axis(x, axis)
	if err != nil {
		return nil, err
	}
	max := wavelet.MaxLevel(x.Dim(ax), bank.Len())
	switch {
	case level == wavelet.LevelMax:
		level = max
	case level < 0:
		return nil, wavelet.Validationf("level %d is negative", level)
	case level > max:
		log.Printf("dwt.Wavedec: level %d is above the maximum %d for length %d with %s, boundary effects will dominate\n", level, max, x.Dim(ax), bank.Name)
	}
	if x.Dim(ax) == 0 {
		return nil, wavelet.Validationf("cannot decompose an empty axis")
	}

	details := make([]*etensor.Float64, 0, level)
	a := x
	for i := 0; i < level; i++ {
		var d *etensor.Float64
		a, d = dwtAxis(a, bank, mode, ax)
		details = append(details, d)
	}
	coeffs := make([]*etensor.Float64, 0, level+1)
	if level == 0 {
		a = ndim.Clone(x)
	}
	coeffs = append(coeffs, a)
	for i := len(details) - 1; i >= 0; i-- {
		coeffs = append(coeffs, details[i])
	}
	return coeffs, nil
}

// Waverec reconstructs the signal from [A_n, D_n, ..., D_1] as returned by
// Wavedec.
func Waverec(coeffs []*etensor.Float64, bank *wavelet.Bank, axis int) (*etensor.Float64, error) {
	if len(coeffs) == 0 {
		return nil, wavelet.Validationf("no coefficients to reconstruct from")
	}
	a := coeffs[0]
	ax, err := Axis(a, axis)
	if err != nil {
		return nil, err
	}
	if len(coeffs) == 1 {
		return ndim.Clone(a), nil
	}
	for _, d := range coeffs[1:] {
		if d == nil || d.NumDims() != a.NumDims() {
			return nil, wavelet.Validationf("detail coefficients do not match the approximation dimensions")
		}
		a = idwtAxis(MatchLength(a, d, ax), d, bank, ax)
	}
	return a, nil
}

// MatchLength prepares a running approximation for being combined with the
// next finer detail array: when the approximation is exactly one sample
// longer along axis it loses its last sample. Any other mismatch means the
// coefficients were not produced together and is a programming error.
func MatchLength(approx, detail *etensor.Float64, axis int) *etensor.Float64 {
	na, nd := approx.Dim(axis), detail.Dim(axis)
	if na == nd+1 {
		approx = ndim.Resize(approx, axis, nd)
	}
	if !ndim.SameShape(approx, detail) {
		panic(fmt.Sprintf("dwt.MatchLength: approximation shape %v cannot be matched to detail shape %v along axis %d", approx.Shapes(), detail.Shapes(), axis))
	}
	return approx
}

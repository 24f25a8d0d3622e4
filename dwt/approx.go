// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dwt

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/wavebase/ndim"
	"github.com/emer/wavebase/wavelet"
)

// Axes normalizes a list of axes against x, defaulting to the last axis.
// Duplicates are an ErrValidation.
func Axes(x *etensor.Float64, axes []int) ([]int, error) {
	if len(axes) == 0 {
		axes = []int{-1}
	}
	out := make([]int, 0, len(axes))
	seen := make(map[int]bool)
	for _, a := range axes {
		ax, err := Axis(x, a)
		if err != nil {
			return nil, err
		}
		if seen[ax] {
			return nil, wavelet.Validationf("axis %d is listed twice", a)
		}
		seen[ax] = true
		out = append(out, ax)
	}
	return out, nil
}

// MaxLevel returns the deepest level usable along every one of axes, which
// is set by the shortest of them.
func MaxLevel(x *etensor.Float64, bank *wavelet.Bank, axes ...int) (int, error) {
	axs, err := Axes(x, axes)
	if err != nil {
		return 0, err
	}
	max := -1
	for _, ax := range axs {
		m := wavelet.MaxLevel(x.Dim(ax), bank.Len())
		if max < 0 || m < max {
			max = m
		}
	}
	return max, nil
}

// Approx returns the low-pass approximation of x at level: the
// reconstruction with every detail coefficient set to zero, taken separably
// along each of axes (the last axis if none) and cut back to the shape of x.
// wavelet.LevelMax uses the deepest level common to all the axes.
func Approx(x *etensor.Float64, bank *wavelet.Bank, level int, mode Mode, axes ...int) (*etensor.Float64, error) {
	axs, err := Axes(x, axes)
	if err != nil {
		return nil, err
	}
	if level == wavelet.LevelMax {
		if level, err = MaxLevel(x, bank, axs...); err != nil {
			return nil, err
		}
	}
	cur := x
	for _, ax := range axs {
		coeffs, err := Wavedec(cur, bank, level, mode, ax)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(coeffs); i++ {
			coeffs[i] = ndim.Zeros(coeffs[i].Shapes())
		}
		rec, err := Waverec(coeffs, bank, ax)
		if err != nil {
			return nil, err
		}
		cur = ndim.Resize(rec, ax, x.Dim(ax))
	}
	if cur == x {
		cur = ndim.Clone(x)
	}
	return cur, nil
}

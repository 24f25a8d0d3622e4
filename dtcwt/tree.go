// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtcwt

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/wavebase/dwt"
	"github.com/emer/wavebase/wavelet"
)

// rotation holds the two later-stage banks a single tree alternates
// between: level i >= 2 uses rotation[(i-2)%2].
type rotation [2]*wavelet.Bank

// at returns the bank that decomposes level i, for i >= 2.
func (r rotation) at(i int) *wavelet.Bank {
	return r[(i-2)%2]
}

// synthesisOrder returns the banks that reconstruct levels level, level-1,
// ..., 2 in that order, coarse to fine. It starts from rotation[1] when the
// level is odd, undoing the alternation of the analysis.
func (r rotation) synthesisOrder(level int) []*wavelet.Bank {
	var order []*wavelet.Bank
	for i := level; i >= 2; i-- {
		order = append(order, r.at(i))
	}
	return order
}

// analyze decomposes x along ax for level levels: the first with first, the
// rest alternating through rot. It returns [A_n, D_n, ..., D_1]. The level
// must already be valid.
func analyze(x *etensor.Float64, first *wavelet.Bank, rot rotation, level int, mode dwt.Mode, ax int) ([]*etensor.Float64, error) {
	if level == 0 {
		return []*etensor.Float64{x}, nil
	}
	a, d, err := dwt.Dwt(x, first, mode, ax)
	if err != nil {
		return nil, err
	}
	details := []*etensor.Float64{d}
	for i := 2; i <= level; i++ {
		if a, d, err = dwt.Dwt(a, rot.at(i), mode, ax); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	coeffs := make([]*etensor.Float64, 0, level+1)
	coeffs = append(coeffs, a)
	for i := len(details) - 1; i >= 0; i-- {
		coeffs = append(coeffs, details[i])
	}
	return coeffs, nil
}

// synthesize inverts analyze.
func synthesize(coeffs []*etensor.Float64, first *wavelet.Bank, rot rotation, ax int) (*etensor.Float64, error) {
	level := len(coeffs) - 1
	a := coeffs[0]
	var err error
	for i, bank := range rot.synthesisOrder(level) {
		d := coeffs[i+1]
		if a, err = dwt.Idwt(dwt.MatchLength(a, d, ax), d, bank, ax); err != nil {
			return nil, err
		}
	}
	if level == 0 {
		return a, nil
	}
	d := coeffs[level]
	return dwt.Idwt(dwt.MatchLength(a, d, ax), d, first, ax)
}

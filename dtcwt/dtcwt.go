// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dtcwt is the dual-tree complex wavelet transform along one axis of an
N-dimensional etensor.Float64.

Two single-tree decompositions run side by side. The first level uses the two
one-sample offset banks of a wavelet.FirstStage, and later levels alternate
between the real and imaginary banks of a wavelet.DualTree family, in
opposite order for the two trees. The first tree gives the real part of each
coefficient array and the second the imaginary part, which makes the result
approximately analytic and nearly shift invariant.

Forward followed by Inverse reproduces the input to rounding error for every
supported first stage, family, level and axis.
*/
package dtcwt

import (
	"math"

	"github.com/emer/etable/etensor"
	"github.com/emer/wavebase/dwt"
	"github.com/emer/wavebase/ndim"
	"github.com/emer/wavebase/wavelet"
)

// Defaults for the filter names.
const (
	DefaultFirstStage = "sym6"
	DefaultWavelet    = "qshift1"
)

// banks bundles the filters of both trees.
type banks struct {
	first wavelet.Pair
	later wavelet.Pair
}

func loadBanks(firstStage, family string) (*banks, error) {
	fs, err := wavelet.FirstStage(firstStage)
	if err != nil {
		return nil, err
	}
	ls, err := wavelet.DualTree(family)
	if err != nil {
		return nil, err
	}
	return &banks{first: fs, later: ls}, nil
}

// tree1 is the real first stage, then real, imag, real, ...
func (b *banks) tree1() (*wavelet.Bank, rotation) {
	return &b.first.Real, rotation{&b.later.Real, &b.later.Imag}
}

// tree2 is the shifted first stage, then imag, real, imag, ...
func (b *banks) tree2() (*wavelet.Bank, rotation) {
	return &b.first.Imag, rotation{&b.later.Imag, &b.later.Real}
}

// MaxLevel returns the deepest level Forward accepts for x along axis with
// the named later-stage family.
func MaxLevel(x *etensor.Float64, family string, axis int) (int, error) {
	ax, err := dwt.Axis(x, axis)
	if err != nil {
		return 0, err
	}
	ls, err := wavelet.DualTree(family)
	if err != nil {
		return 0, err
	}
	return wavelet.MaxLevel(x.Dim(ax), ls.Len()), nil
}

// Forward computes the dual-tree transform of x along axis up to level
// (wavelet.LevelMax for the deepest). The extent along axis must be even
// for any level above 0.
func Forward(x *etensor.Float64, firstStage, family string, level int, mode dwt.Mode, axis int) (*Coeffs, error) {
	b, err := loadBanks(firstStage, family)
	if err != nil {
		return nil, err
	}
	ax, err := dwt.Axis(x, axis)
	if err != nil {
		return nil, err
	}
	n := x.Dim(ax)
	if level, err = wavelet.ResolveLevel(level, n, b.later.Len()); err != nil {
		return nil, err
	}

	scaled := ndim.Clone(x)
	for i := range scaled.Values {
		scaled.Values[i] /= math.Sqrt2
	}
	if level == 0 {
		return &Coeffs{
			Real: []*etensor.Float64{scaled},
			Imag: []*etensor.Float64{ndim.Zeros(x.Shapes())},
		}, nil
	}
	if n%2 != 0 {
		return nil, wavelet.Validationf("extent %d along axis %d is odd, the dual-tree transform needs an even extent", n, ax)
	}

	first, rot := b.tree1()
	re, err := analyze(scaled, first, rot, level, mode, ax)
	if err != nil {
		return nil, err
	}
	first, rot = b.tree2()
	im, err := analyze(scaled, first, rot, level, mode, ax)
	if err != nil {
		return nil, err
	}
	return &Coeffs{Real: re, Imag: im}, nil
}

// Inverse reconstructs the signal from coefficients produced by Forward with
// the same first stage, family and axis.
func Inverse(c *Coeffs, firstStage, family string, axis int) (*etensor.Float64, error) {
	if c == nil || len(c.Real) == 0 {
		return nil, wavelet.Validationf("no coefficients to reconstruct from")
	}
	if len(c.Imag) != len(c.Real) {
		return nil, wavelet.Validationf("%d real but %d imaginary coefficient arrays", len(c.Real), len(c.Imag))
	}
	b, err := loadBanks(firstStage, family)
	if err != nil {
		return nil, err
	}
	ax, err := dwt.Axis(c.Real[0], axis)
	if err != nil {
		return nil, err
	}
	if c.Level() == 0 {
		out := ndim.Clone(c.Real[0])
		for i := range out.Values {
			out.Values[i] *= math.Sqrt2
		}
		return out, nil
	}
	for i := range c.Real {
		if c.Real[i] == nil || c.Imag[i] == nil || !ndim.SameShape(c.Real[i], c.Imag[i]) {
			return nil, wavelet.Validationf("real and imaginary coefficients at index %d differ in shape", i)
		}
	}

	first, rot := b.tree1()
	t1, err := synthesize(c.Real, first, rot, ax)
	if err != nil {
		return nil, err
	}
	first, rot = b.tree2()
	t2, err := synthesize(c.Imag, first, rot, ax)
	if err != nil {
		return nil, err
	}
	for i := range t1.Values {
		t1.Values[i] = (t1.Values[i] + t2.Values[i]) * math.Sqrt2 / 2
	}
	return t1, nil
}

// Approximate returns the low-pass reconstruction of x at level: Forward,
// zero every detail array of both trees, Inverse, then cut or zero-extend
// the tail along axis back to the shape of x.
func Approximate(x *etensor.Float64, firstStage, family string, level int, mode dwt.Mode, axis int) (*etensor.Float64, error) {
	c, err := Forward(x, firstStage, family, level, mode, axis)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(c.Real); i++ {
		c.Real[i] = ndim.Zeros(c.Real[i].Shapes())
		c.Imag[i] = ndim.Zeros(c.Imag[i].Shapes())
	}
	rec, err := Inverse(c, firstStage, family, axis)
	if err != nil {
		return nil, err
	}
	ax, _ := dwt.Axis(x, axis)
	return ndim.Resize(rec, ax, x.Dim(ax)), nil
}

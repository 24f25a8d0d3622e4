// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Orthonormal low-pass filters are designed by spectral factorization.
// Given a fixed factor S(z) (the vanishing moments, optionally times a delay
// factor), find the symmetric R(z) of lowest degree that makes
// P(z) = S(z) S(1/z) R(z) halfband, split R(z) = Q(z) Q(1/z) by picking one
// root of every reciprocal pair, and return H(z) = S(z) Q(z).

// rootGroup is a real root or a conjugate pair, the unit in which roots are
// moved between the inside and outside of the unit circle.
type rootGroup []complex128

// rootPicker chooses, for every group of inside roots, either the group or
// its reciprocal.
type rootPicker func(groups []rootGroup) []complex128

// halfband solves for r[0..M] such that s*s~*R has p(0) = 1 and p(2k) = 0.
func halfband(s []float64) ([]float64, error) {
	a := autocorr(s)
	at := func(n int) float64 {
		if n < 0 {
			n = -n
		}
		if n >= len(a) {
			return 0
		}
		return a[n]
	}
	m := len(s) - 2
	n := m + 1
	sys := mat.NewDense(n, n, nil)
	for k := 0; k < n; k++ {
		sys.Set(k, 0, at(2*k))
		for j := 1; j < n; j++ {
			sys.Set(k, j, at(2*k-j)+at(2*k+j))
		}
	}
	rhs := mat.NewVecDense(n, nil)
	rhs.SetVec(0, 1)
	var r mat.VecDense
	if err := r.SolveVec(sys, rhs); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("wavelet.halfband: %v", err)
		}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = r.AtVec(i)
	}
	return out, nil
}

// insideGroups returns the roots of R strictly inside the unit circle
// grouped into real roots and conjugate pairs, in a deterministic order.
func insideGroups(r []float64) ([]rootGroup, error) {
	m := len(r) - 1
	c := make([]float64, 2*m+1)
	for j := -m; j <= m; j++ {
		k := j
		if k < 0 {
			k = -k
		}
		c[j+m] = r[k]
	}
	zs, err := roots(c)
	if err != nil {
		return nil, err
	}
	var groups []rootGroup
	count := 0
	for _, z := range zs {
		mag := cmplx.Abs(z)
		if mag >= 1 {
			continue
		}
		tol := 1e-7 * math.Max(1, mag)
		switch {
		case math.Abs(imag(z)) < tol:
			groups = append(groups, rootGroup{complex(real(z), 0)})
			count++
		case imag(z) > 0:
			groups = append(groups, rootGroup{z, cmplx.Conj(z)})
			count += 2
		}
	}
	if count != m {
		return nil, fmt.Errorf("wavelet.insideGroups: found %d roots inside the unit circle, expected %d", count, m)
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i][0], groups[j][0]
		if real(a) != real(b) {
			return real(a) < real(b)
		}
		return imag(a) < imag(b)
	})
	return groups, nil
}

// factor returns the Q(z) selected by pick for the fixed factor s.
func factor(s []float64, pick rootPicker) ([]float64, error) {
	u := append([]float64(nil), s...)
	unitNorm(u)
	r, err := halfband(u)
	if err != nil {
		return nil, err
	}
	groups, err := insideGroups(r)
	if err != nil {
		return nil, err
	}
	return fromRoots(pick(groups)), nil
}

// minPhase keeps every inside root.
func minPhase(groups []rootGroup) []complex128 {
	var zs []complex128
	for _, g := range groups {
		zs = append(zs, g...)
	}
	return zs
}

// leastAsymmetric picks the combination of roots and reciprocals whose
// group delay is flattest over the interior of the band. A combination and
// its complement give time-reversed filters of equal flatness, so the
// orientation of the result is left to symlet.
func leastAsymmetric(groups []rootGroup) []complex128 {
	const ngrid = 128
	omega := make([]float64, ngrid)
	for i := range omega {
		omega[i] = math.Pi * (float64(i) + 0.5) / ngrid
	}
	best, bestVar := 0, math.Inf(1)
	tau := make([]float64, ngrid)
	for mask := 0; mask < 1<<uint(len(groups)); mask++ {
		zs := chooseRoots(groups, mask)
		for i := range tau {
			tau[i] = 0
		}
		for _, z := range zs {
			for i, w := range omega {
				u := z * cmplx.Exp(complex(0, -w))
				tau[i] -= real(u / (1 - u))
			}
		}
		mean := 0.0
		for _, t := range tau {
			mean += t
		}
		mean /= ngrid
		v := 0.0
		for _, t := range tau {
			v += (t - mean) * (t - mean)
		}
		if v < bestVar {
			best, bestVar = mask, v
		}
	}
	return chooseRoots(groups, best)
}

// chooseRoots returns the roots with group i replaced by its reciprocal
// wherever bit i of mask is set.
func chooseRoots(groups []rootGroup, mask int) []complex128 {
	var zs []complex128
	for i, g := range groups {
		for _, z := range g {
			if mask&(1<<uint(i)) != 0 {
				z = 1 / z
			}
			zs = append(zs, z)
		}
	}
	return zs
}

// daubechies designs the length 2k low-pass filter with k vanishing moments.
func daubechies(k int, pick rootPicker) ([]float64, error) {
	b := binomial(k)
	q, err := factor(b, pick)
	if err != nil {
		return nil, err
	}
	h := conv(b, q)
	unitSum(h)
	return polish(h)
}

// symlet designs the least asymmetric filter with k vanishing moments,
// oriented like the published Symlets. sym2 and sym3 are the minimum phase
// Daubechies filters; from sym4 on the zero-frequency delay of h lies past
// its midpoint, except for sym7 where it lies before it.
func symlet(k int) ([]float64, error) {
	h, err := daubechies(k, leastAsymmetric)
	if err != nil {
		return nil, err
	}
	late := k >= 4 && k != 7
	if (lowDelay(h) > float64(len(h)-1)/2) != late {
		h = reverse(h)
	}
	return h, nil
}

// lowDelay is the group delay of h at zero frequency, sum n h[n] / sum h[n].
func lowDelay(h []float64) float64 {
	var m, s float64
	for n, v := range h {
		m += float64(n) * v
		s += v
	}
	return m / s
}

// thiran returns the numerator D(z) of the maximally flat allpass
// z^-l D(1/z) / D(z) with delay tau.
func thiran(l int, tau float64) []float64 {
	d := make([]float64, l+1)
	lf := float64(l)
	for n := 0; n <= l; n++ {
		v := binomial(l)[n]
		if n%2 == 1 {
			v = -v
		}
		for k := 0; k < n; k++ {
			v *= (tau - lf + float64(k)) / (tau + 1 + float64(k))
		}
		d[n] = v
	}
	return d
}

// hilbertPair designs two orthonormal low-pass filters of length 2(k+l)
// sharing the factor (1+z^-1)^k Q(z), where h0b is h0a delayed by half a
// sample: h0a = B Q D, h0b = B Q z^-l D(1/z).
func hilbertPair(k, l int) (h0a, h0b []float64, err error) {
	b := binomial(k)
	d := thiran(l, 0.5)
	q, err := factor(conv(b, d), minPhase)
	if err != nil {
		return nil, nil, err
	}
	common := conv(b, q)
	h0a = conv(common, d)
	h0b = conv(common, reverse(d))
	unitSum(h0a)
	unitSum(h0b)
	if h0a, err = polish(h0a); err != nil {
		return nil, nil, err
	}
	if h0b, err = polish(h0b); err != nil {
		return nil, nil, err
	}
	return h0a, h0b, nil
}

// orthoResidual returns the double-shift orthonormality constraints of h:
// sum h^2 - 1, then sum_n h[n] h[n+2k] for k = 1 .. F/2-1.
func orthoResidual(h []float64) []float64 {
	n := len(h) / 2
	c := make([]float64, n)
	for k := 0; k < n; k++ {
		s := 0.0
		for i := 0; i+2*k < len(h); i++ {
			s += h[i] * h[i+2*k]
		}
		c[k] = s
	}
	c[0] -= 1
	return c
}

func maxAbs(c []float64) float64 {
	m := 0.0
	for _, v := range c {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// polish projects h onto the nearest exactly orthonormal filter by
// Gauss-Newton steps on the orthonormality constraints.
func polish(h []float64) ([]float64, error) {
	f := len(h)
	if f%2 != 0 {
		return nil, fmt.Errorf("wavelet.polish: odd filter length %d", f)
	}
	h = append([]float64(nil), h...)
	n := f / 2
	at := func(i int) float64 {
		if i < 0 || i >= f {
			return 0
		}
		return h[i]
	}
	jac := mat.NewDense(n, f, nil)
	for it := 0; it < 50; it++ {
		c := orthoResidual(h)
		if maxAbs(c) < 4e-16 {
			break
		}
		for k := 0; k < n; k++ {
			for m := 0; m < f; m++ {
				jac.Set(k, m, at(m+2*k)+at(m-2*k))
			}
		}
		var jjt mat.Dense
		jjt.Mul(jac, jac.T())
		var y mat.VecDense
		if err := y.SolveVec(&jjt, mat.NewVecDense(n, c)); err != nil {
			if _, ok := err.(mat.Condition); !ok {
				return nil, fmt.Errorf("wavelet.polish: %v", err)
			}
		}
		var step mat.VecDense
		step.MulVec(jac.T(), &y)
		for i := range h {
			h[i] -= step.AtVec(i)
		}
	}
	if r := maxAbs(orthoResidual(h)); r > 1e-9 {
		return nil, fmt.Errorf("wavelet.polish: orthonormality residual %g after projection", r)
	}
	return h, nil
}

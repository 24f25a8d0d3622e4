// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Polynomials in this file are coefficient slices in ascending powers of z^-1.

func reverse(a []float64) []float64 {
	n := len(a)
	out := make([]float64, n)
	for i, v := range a {
		out[n-1-i] = v
	}
	return out
}

// conv is the full linear convolution of a and b.
func conv(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// binomial returns the coefficients of (1 + z^-1)^k.
func binomial(k int) []float64 {
	c := make([]float64, k+1)
	c[0] = 1
	for i := 1; i <= k; i++ {
		c[i] = c[i-1] * float64(k-i+1) / float64(i)
	}
	return c
}

// autocorr returns the one-sided autocorrelation a[n] = sum_i s[i] s[i+n].
func autocorr(s []float64) []float64 {
	a := make([]float64, len(s))
	for n := range a {
		a[n] = floats.Dot(s[:len(s)-n], s[n:])
	}
	return a
}

// unitNorm scales s to unit energy in place.
func unitNorm(s []float64) {
	floats.Scale(1/floats.Norm(s, 2), s)
}

// unitSum scales h so its taps sum to sqrt(2) in place, the DC gain of an
// orthonormal low-pass filter.
func unitSum(h []float64) {
	floats.Scale(math.Sqrt2/floats.Sum(h), h)
}

// roots returns the roots of the polynomial c[0] z^n + c[1] z^(n-1) + ... + c[n]
// as the eigenvalues of its companion matrix, refined with a few Newton steps.
func roots(c []float64) ([]complex128, error) {
	n := len(c) - 1
	if n < 1 {
		return nil, nil
	}
	if c[0] == 0 {
		return nil, fmt.Errorf("wavelet.roots: leading coefficient is zero")
	}
	comp := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		comp.Set(0, j, -c[j+1]/c[0])
	}
	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(comp, mat.EigenNone); !ok {
		return nil, fmt.Errorf("wavelet.roots: eigen decomposition of degree %d companion matrix failed", n)
	}
	zs := eig.Values(nil)
	for i, z := range zs {
		zs[i] = newton(c, z)
	}
	return zs, nil
}

// newton polishes a root of c (descending powers) in place.
func newton(c []float64, z complex128) complex128 {
	for it := 0; it < 4; it++ {
		p, dp := complex(c[0], 0), complex(0, 0)
		for _, v := range c[1:] {
			dp = dp*z + p
			p = p*z + complex(v, 0)
		}
		if dp == 0 {
			break
		}
		step := p / dp
		if cmplx.IsNaN(step) || cmplx.IsInf(step) {
			break
		}
		z -= step
		if cmplx.Abs(step) < 1e-17*math.Max(1, cmplx.Abs(z)) {
			break
		}
	}
	return z
}

// fromRoots expands prod_k (1 - z_k z^-1). The roots must be closed under
// conjugation so the result is real.
func fromRoots(zs []complex128) []float64 {
	p := []complex128{1}
	for _, z := range zs {
		next := make([]complex128, len(p)+1)
		for i, v := range p {
			next[i] += v
			next[i+1] -= v * z
		}
		p = next
	}
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = real(v)
	}
	return out
}

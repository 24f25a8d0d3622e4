// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

// Bank is a two-channel filter bank: the decomposition (analysis) and
// reconstruction (synthesis) low- and high-pass filters of one wavelet.
// Banks handed out by this package are private copies and may be modified
// without affecting later lookups.
type Bank struct {
	Name    string    `desc:"name of the wavelet the filters belong to"`
	DecLow  []float64 `desc:"decomposition low-pass filter"`
	DecHigh []float64 `desc:"decomposition high-pass filter"`
	RecLow  []float64 `desc:"reconstruction low-pass filter"`
	RecHigh []float64 `desc:"reconstruction high-pass filter"`
}

// NewOrthogonal builds the bank of an orthogonal wavelet from its
// reconstruction low-pass filter h, using the convention
// RecHigh[k] = (-1)^k h[F-1-k] with decomposition filters the reversed
// reconstruction ones.
func NewOrthogonal(name string, h []float64) Bank {
	f := len(h)
	b := Bank{Name: name}
	b.RecLow = append([]float64(nil), h...)
	b.RecHigh = make([]float64, f)
	for k := 0; k < f; k++ {
		v := h[f-1-k]
		if k%2 == 1 {
			v = -v
		}
		b.RecHigh[k] = v
	}
	b.DecLow = reverse(b.RecLow)
	b.DecHigh = reverse(b.RecHigh)
	return b
}

// Len returns the number of taps: the longer of the two decomposition filters.
func (b *Bank) Len() int {
	if len(b.DecHigh) > len(b.DecLow) {
		return len(b.DecHigh)
	}
	return len(b.DecLow)
}

// Clone returns a deep copy of the bank.
func (b *Bank) Clone() Bank {
	return Bank{
		Name:    b.Name,
		DecLow:  append([]float64(nil), b.DecLow...),
		DecHigh: append([]float64(nil), b.DecHigh...),
		RecLow:  append([]float64(nil), b.RecLow...),
		RecHigh: append([]float64(nil), b.RecHigh...),
	}
}

// negateHigh flips the sign of both high-pass filters. Reconstruction is unchanged.
func (b *Bank) negateHigh() {
	for i := range b.DecHigh {
		b.DecHigh[i] = -b.DecHigh[i]
	}
	for i := range b.RecHigh {
		b.RecHigh[i] = -b.RecHigh[i]
	}
}

// Pair is a matched pair of banks travelling together. For a first stage,
// Real is the unshifted bank and Imag the one-sample shifted bank; for a
// later-stage family they drive the real and imaginary trees.
type Pair struct {
	Real Bank
	Imag Bank
}

// Len returns the longer tap count of the two banks.
func (p *Pair) Len() int {
	r, i := p.Real.Len(), p.Imag.Len()
	if i > r {
		return i
	}
	return r
}

// Clone returns a deep copy of the pair.
func (p *Pair) Clone() Pair {
	return Pair{Real: p.Real.Clone(), Imag: p.Imag.Clone()}
}

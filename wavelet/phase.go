// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// PhaseDelay returns, for the nfft/2-1 interior frequency bins, the angular
// frequency and the phase delay in samples of filter b relative to filter a.
// For the low-pass filters of a well matched dual-tree pair the delay is
// close to half a sample across the passband.
// nfft is raised to the longer filter length if needed.
func PhaseDelay(a, b []float64, nfft int) (omega, delay []float64) {
	if nfft < len(a) {
		nfft = len(a)
	}
	if nfft < len(b) {
		nfft = len(b)
	}
	fft := fourier.NewFFT(nfft)
	pa := make([]float64, nfft)
	pb := make([]float64, nfft)
	copy(pa, a)
	copy(pb, b)
	ca := fft.Coefficients(nil, pa)
	cb := fft.Coefficients(nil, pb)
	for k := 1; k < len(ca)-1; k++ {
		w := 2 * math.Pi * fft.Freq(k)
		omega = append(omega, w)
		delay = append(delay, -cmplx.Phase(cb[k]/ca[k])/w)
	}
	return omega, delay
}

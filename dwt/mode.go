// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dwt

import (
	"fmt"
	"strings"

	"github.com/emer/wavebase/wavelet"
	"github.com/goki/ki/kit"
)

// Mode is the signal extension used past the ends of a lane by the forward
// transform. Reconstruction is exact for every mode.
type Mode int32

const (
	// Zero pads with zeros: 0 0 | x1 x2 ... xn | 0 0
	Zero Mode = iota

	// Constant replicates the border values: x1 x1 | x1 x2 ... xn | xn xn
	Constant

	// Symmetric mirrors about the edge, repeating it: x2 x1 | x1 x2 ... xn | xn xn-1
	Symmetric

	// Reflect mirrors about the edge sample: x3 x2 | x1 x2 ... xn | xn-1 xn-2
	Reflect

	// Periodic wraps around: xn-1 xn | x1 x2 ... xn | x1 x2
	Periodic

	// Smooth extrapolates the first derivative at each border.
	Smooth

	// Antisymmetric mirrors with a sign flip: -x2 -x1 | x1 x2 ... xn | -xn -xn-1
	Antisymmetric

	ModeN
)

//go:generate stringer -type=Mode

var Kit_Mode = kit.Enums.AddEnum(ModeN, kit.NotBitFlag, nil)

// ParseMode returns the mode with the given name, ignoring case, so both
// "Symmetric" and "symmetric" are accepted.
func ParseMode(s string) (Mode, error) {
	for m := Zero; m < ModeN; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	names := make([]string, 0, int(ModeN))
	for m := Zero; m < ModeN; m++ {
		names = append(names, strings.ToLower(m.String()))
	}
	return Zero, fmt.Errorf("%w: unknown extension mode %q, valid modes are: %s", wavelet.ErrConfiguration, s, strings.Join(names, ", "))
}

// ext returns sample k of the infinite extension of x, for any integer k.
func (m Mode) ext(x []float64, k int) float64 {
	n := len(x)
	if k >= 0 && k < n {
		return x[k]
	}
	switch m {
	case Zero:
		return 0
	case Symmetric:
		p := mod(k, 2*n)
		if p < n {
			return x[p]
		}
		return x[2*n-1-p]
	case Reflect:
		if n == 1 {
			return x[0]
		}
		p := mod(k, 2*n-2)
		if p < n {
			return x[p]
		}
		return x[2*n-2-p]
	case Periodic:
		return x[mod(k, n)]
	case Smooth:
		if n < 2 {
			break
		}
		if k < 0 {
			return x[0] + float64(k)*(x[1]-x[0])
		}
		return x[n-1] + float64(k-n+1)*(x[n-1]-x[n-2])
	case Antisymmetric:
		p := floorDiv(k, n)
		r := k - p*n
		if p%2 == 0 {
			return x[r]
		}
		return -x[n-1-r]
	}
	// Constant
	if k < 0 {
		return x[0]
	}
	return x[n-1]
}

func mod(k, n int) int {
	r := k % n
	if r < 0 {
		r += n
	}
	return r
}

func floorDiv(k, n int) int {
	q := k / n
	if k%n != 0 && k < 0 {
		q--
	}
	return q
}

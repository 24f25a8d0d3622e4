// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtcwt

import (
	"github.com/emer/etable/etensor"
)

// Coeffs is a dual-tree coefficient sequence [A_n, D_n, ..., D_1]. Entry i
// is the complex array Real[i] + j Imag[i]: the real part comes from the
// first tree and the imaginary part from the second.
type Coeffs struct {
	Real []*etensor.Float64 `desc:"first tree coefficients, coarsest approximation first"`
	Imag []*etensor.Float64 `desc:"second tree coefficients, same shapes as Real"`
}

// Level returns the decomposition level, 0 for the identity transform.
func (c *Coeffs) Level() int {
	return len(c.Real) - 1
}

// Complex returns entry i as complex values in row-major order.
func (c *Coeffs) Complex(i int) []complex128 {
	re, im := c.Real[i].Values, c.Imag[i].Values
	out := make([]complex128, len(re))
	for k := range re {
		out[k] = complex(re[k], im[k])
	}
	return out
}

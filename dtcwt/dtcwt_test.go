// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtcwt

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/emer/etable/etensor"
	"github.com/emer/wavebase/dwt"
	"github.com/emer/wavebase/ndim"
	"github.com/emer/wavebase/wavelet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randTensor(rnd *rand.Rand, shape ...int) *etensor.Float64 {
	t := ndim.Zeros(shape)
	for i := range t.Values {
		t.Values[i] = rnd.NormFloat64()
	}
	return t
}

func linspaceSin(n int, stop float64) *etensor.Float64 {
	t := ndim.Zeros([]int{n})
	for i := range t.Values {
		t.Values[i] = math.Sin(stop * float64(i) / float64(n-1))
	}
	return t
}

func TestPerfectReconstruction(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	shapes := [][]int{{100}, {50, 50}, {10, 10, 10}}
	for _, shape := range shapes {
		x := randTensor(rnd, shape...)
		for _, fs := range wavelet.FirstStages() {
			for _, fam := range wavelet.DualTrees() {
				for ax := range shape {
					max, err := MaxLevel(x, fam, ax)
					require.NoError(t, err)
					for lvl := 0; lvl <= max; lvl++ {
						msg := fmt.Sprintf("%v %s/%s axis %d level %d", shape, fs, fam, ax, lvl)
						c, err := Forward(x, fs, fam, lvl, dwt.Constant, ax)
						require.NoError(t, err, msg)
						require.Equal(t, lvl, c.Level(), msg)
						y, err := Inverse(c, fs, fam, ax)
						require.NoError(t, err, msg)
						require.Equal(t, x.Shapes(), y.Shapes(), msg)
						assert.InDeltaSlice(t, x.Values, y.Values, 1e-9, msg)
					}
				}
			}
		}
	}
}

func TestReconstructionEveryMode(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	x := randTensor(rnd, 4, 64)
	for mode := dwt.Zero; mode < dwt.ModeN; mode++ {
		c, err := Forward(x, "db4", "qshift3", wavelet.LevelMax, mode, 1)
		require.NoError(t, err)
		y, err := Inverse(c, "db4", "qshift3", 1)
		require.NoError(t, err)
		assert.InDeltaSlice(t, x.Values, y.Values, 1e-9, mode.String())
	}
}

func TestSineScenario(t *testing.T) {
	x := linspaceSin(64, 10)
	c, err := Forward(x, DefaultFirstStage, DefaultWavelet, 1, dwt.Constant, -1)
	require.NoError(t, err)
	require.Len(t, c.Real, 2)
	require.Len(t, c.Imag, 2)
	y, err := Inverse(c, DefaultFirstStage, DefaultWavelet, -1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, x.Values, y.Values, 1e-9)

	z := c.Complex(1)
	require.Len(t, z, c.Real[1].Len())
	assert.Equal(t, c.Real[1].Values[3], real(z[3]))
	assert.Equal(t, c.Imag[1].Values[3], imag(z[3]))
}

func TestLevelZero(t *testing.T) {
	x := linspaceSin(11, 3)
	c, err := Forward(x, "db2", "qshift1", 0, dwt.Constant, 0)
	require.NoError(t, err)
	require.Equal(t, 0, c.Level())
	for i, v := range x.Values {
		assert.InDelta(t, v/math.Sqrt2, c.Real[0].Values[i], 1e-15)
		assert.Equal(t, 0.0, c.Imag[0].Values[i])
	}
	y, err := Inverse(c, "db2", "qshift1", 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, x.Values, y.Values, 1e-14)
}

func TestValidation(t *testing.T) {
	odd := ndim.Zeros([]int{17, 8})
	_, err := Forward(odd, DefaultFirstStage, DefaultWavelet, 1, dwt.Constant, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, wavelet.ErrValidation))

	// the even axis is fine
	_, err = Forward(odd, DefaultFirstStage, DefaultWavelet, 0, dwt.Constant, 1)
	assert.NoError(t, err)

	x := ndim.Zeros([]int{64})
	_, err = Forward(x, DefaultFirstStage, DefaultWavelet, 1, dwt.Constant, 1)
	assert.True(t, errors.Is(err, wavelet.ErrValidation), "axis out of range")

	max, err := MaxLevel(x, DefaultWavelet, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, max)
	_, err = Forward(x, DefaultFirstStage, DefaultWavelet, max+1, dwt.Constant, 0)
	assert.True(t, errors.Is(err, wavelet.ErrValidation), "level above maximum")

	_, err = Inverse(&Coeffs{}, DefaultFirstStage, DefaultWavelet, 0)
	assert.True(t, errors.Is(err, wavelet.ErrValidation))
	_, err = Inverse(nil, DefaultFirstStage, DefaultWavelet, 0)
	assert.True(t, errors.Is(err, wavelet.ErrValidation))
}

func TestUnknownFilters(t *testing.T) {
	x := ndim.Zeros([]int{64})
	_, err := Forward(x, DefaultFirstStage, "not-a-real-family", 1, dwt.Constant, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, wavelet.ErrConfiguration))
	assert.Contains(t, err.Error(), "qshift1")

	_, err = Forward(x, "nope", DefaultWavelet, 1, dwt.Constant, 0)
	assert.True(t, errors.Is(err, wavelet.ErrConfiguration))
	assert.Contains(t, err.Error(), "sym6")
}

func TestSynthesisOrder(t *testing.T) {
	a := &wavelet.Bank{Name: "a"}
	b := &wavelet.Bank{Name: "b"}
	rot := rotation{a, b}

	assert.Equal(t, a, rot.at(2))
	assert.Equal(t, b, rot.at(3))
	assert.Equal(t, a, rot.at(4))

	assert.Empty(t, rot.synthesisOrder(1))
	assert.Equal(t, []*wavelet.Bank{a}, rot.synthesisOrder(2))
	assert.Equal(t, []*wavelet.Bank{b, a}, rot.synthesisOrder(3))
	assert.Equal(t, []*wavelet.Bank{a, b, a}, rot.synthesisOrder(4))
	assert.Equal(t, []*wavelet.Bank{b, a, b, a}, rot.synthesisOrder(5))
}

func TestApproximate(t *testing.T) {
	flat := ndim.Zeros([]int{3, 40})
	for i := range flat.Values {
		flat.Values[i] = -2
	}
	a, err := Approximate(flat, DefaultFirstStage, DefaultWavelet, wavelet.LevelMax, dwt.Constant, -1)
	require.NoError(t, err)
	assert.Equal(t, flat.Shapes(), a.Shapes())
	assert.InDeltaSlice(t, flat.Values, a.Values, 1e-9)

	x := linspaceSin(64, 10)
	a, err = Approximate(x, DefaultFirstStage, DefaultWavelet, 0, dwt.Constant, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, x.Values, a.Values, 1e-14)

	// a coarser approximation keeps less of a high frequency component
	rnd := rand.New(rand.NewSource(9))
	noise := randTensor(rnd, 128)
	energy := func(t *etensor.Float64) float64 {
		s := 0.0
		for _, v := range t.Values {
			s += v * v
		}
		return s
	}
	a1, err := Approximate(noise, DefaultFirstStage, DefaultWavelet, 1, dwt.Constant, 0)
	require.NoError(t, err)
	a3, err := Approximate(noise, DefaultFirstStage, DefaultWavelet, 3, dwt.Constant, 0)
	require.NoError(t, err)
	assert.Less(t, energy(a3), energy(a1))
	assert.Less(t, energy(a1), energy(noise))
}

func TestInputNotModified(t *testing.T) {
	rnd := rand.New(rand.NewSource(10))
	x := randTensor(rnd, 32)
	orig := append([]float64(nil), x.Values...)
	c, err := Forward(x, "sym4", "kingsbury99", 1, dwt.Constant, 0)
	require.NoError(t, err)
	_, err = Inverse(c, "sym4", "kingsbury99", 0)
	require.NoError(t, err)
	assert.Equal(t, orig, x.Values)
}

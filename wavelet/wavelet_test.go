// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func requireOrthogonal(t *testing.T, b Bank) {
	t.Helper()
	assert.Less(t, maxAbs(orthoResidual(b.RecLow)), 1e-12, "%s low-pass not orthonormal", b.Name)
	assert.InDelta(t, math.Sqrt2, floats.Sum(b.DecLow), 1e-7, "%s low-pass DC gain", b.Name)
	assert.InDelta(t, 0, floats.Sum(b.DecHigh), 1e-7, "%s high-pass DC gain", b.Name)
	assert.Equal(t, reverse(b.RecLow), b.DecLow)
	assert.Equal(t, reverse(b.RecHigh), b.DecHigh)
	// low and high channels are orthogonal at every even shift
	f := len(b.DecLow)
	for k := -f / 2; k <= f/2; k++ {
		s := 0.0
		for n := 0; n < f; n++ {
			m := n + 2*k
			if m >= 0 && m < f {
				s += b.DecLow[n] * b.DecHigh[m]
			}
		}
		assert.InDelta(t, 0, s, 1e-12, "%s cross term at shift %d", b.Name, 2*k)
	}
}

func TestDiscreteBanks(t *testing.T) {
	names := Discretes()
	require.Len(t, names, 20)
	for _, name := range names {
		b, err := Discrete(name)
		require.NoError(t, err, name)
		k := 1
		if name != "haar" {
			k, _ = strconv.Atoi(strings.TrimLeft(name, "dbsym"))
		}
		assert.Len(t, b.DecLow, 2*k, name)
		assert.Equal(t, 2*k, b.Len())
		requireOrthogonal(t, b)

		if k >= 2 {
			// second vanishing moment
			m1 := 0.0
			for n, v := range b.DecHigh {
				m1 += float64(n) * v
			}
			assert.InDelta(t, 0, m1, 1e-7, "%s first moment", name)
		}
	}
}

func TestKnownFilters(t *testing.T) {
	haar, err := Discrete("haar")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}, haar.RecLow, 1e-15)
	assert.InDeltaSlice(t, []float64{math.Sqrt2 / 2, -math.Sqrt2 / 2}, haar.RecHigh, 1e-15)

	db2, err := Discrete("db2")
	require.NoError(t, err)
	want := []float64{0.48296291314469025, 0.836516303737469, 0.22414386804185735, -0.12940952255092145}
	assert.InDeltaSlice(t, want, db2.RecLow, 1e-12)

	// Symlets face the same way as the PyWavelets tables
	symlets := map[string][]float64{
		"sym4": {-0.07576571478927333, -0.02963552764599851, 0.49761866763201545, 0.8037387518059161,
			0.29785779560527736, -0.09921954357684722, -0.012603967262037833, 0.0322231006040427},
		"sym6": {0.015404109327027373, 0.0034907120842174702, -0.11799011114819057, -0.048311742585633,
			0.4910559419267466, 0.787641141030194, 0.3379294217276218, -0.07263752278646252,
			-0.021060292512300564, 0.04472490177066578, 0.0017677118642428036, -0.007800708325034148},
	}
	for name, decLow := range symlets {
		b, err := Discrete(name)
		require.NoError(t, err)
		assert.InDeltaSlice(t, decLow, b.DecLow, 1e-9, name)
		assert.InDeltaSlice(t, reverse(decLow), b.RecLow, 1e-9, name)
	}

	// the two shortest Symlets are the Daubechies filters
	for _, k := range []string{"2", "3"} {
		db, err := Discrete("db" + k)
		require.NoError(t, err)
		sym, err := Discrete("sym" + k)
		require.NoError(t, err)
		assert.InDeltaSlice(t, db.RecLow, sym.RecLow, 1e-10, "sym%s", k)
	}
}

func TestSymletOrientation(t *testing.T) {
	for k := 4; k <= 10; k++ {
		h, err := symlet(k)
		require.NoError(t, err)
		mid := float64(len(h)-1) / 2
		if k == 7 {
			assert.Less(t, lowDelay(h), mid, "sym7")
		} else {
			assert.Greater(t, lowDelay(h), mid, "sym%d", k)
		}
	}
}

func TestUnknownNames(t *testing.T) {
	_, err := Discrete("db42")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "db42")
	assert.Contains(t, err.Error(), "sym6")

	_, err = FirstStage("db02")
	assert.True(t, errors.Is(err, ErrConfiguration))

	// coiflets and biorthogonal wavelets are not designed here
	for _, name := range []string{"coif1", "bior2.2", "rbio1.3", "db11", "sym11", "dmey"} {
		_, err = FirstStage(name)
		assert.True(t, errors.Is(err, ErrConfiguration), name)
	}

	_, err = DualTree("not-a-real-family")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	for _, name := range DualTrees() {
		assert.Contains(t, err.Error(), name)
	}
}

func TestFirstStageShift(t *testing.T) {
	for _, name := range FirstStages() {
		p, err := FirstStage(name)
		require.NoError(t, err, name)
		base, err := Discrete(name)
		require.NoError(t, err)

		f := len(base.DecLow) + 2
		a, b := p.Real, p.Imag
		for _, fl := range [][]float64{a.DecLow, a.DecHigh, a.RecLow, a.RecHigh, b.DecLow, b.DecHigh, b.RecLow, b.RecHigh} {
			require.Len(t, fl, f, name)
		}
		assert.Equal(t, base.DecLow, a.DecLow[1:f-1])
		assert.Equal(t, a.DecLow[1:f-1], b.DecLow[2:], name)
		assert.Equal(t, a.DecHigh[1:f-1], b.DecHigh[2:], name)
		assert.Equal(t, a.RecLow[1:f-1], b.RecLow[:f-2], name)
		assert.Equal(t, a.RecHigh[1:f-1], b.RecHigh[:f-2], name)
	}
}

func TestDualTreeFamilies(t *testing.T) {
	names := DualTrees()
	assert.Equal(t, []string{"kingsbury99", "qshift1", "qshift2", "qshift3", "qshift4", "qshift5", "qshift6"}, names)
	taps := map[string]int{"kingsbury99": 10, "qshift1": 6, "qshift2": 8, "qshift3": 10, "qshift4": 12, "qshift5": 14, "qshift6": 16}
	for _, name := range names {
		p, err := DualTree(name)
		require.NoError(t, err, name)
		assert.Equal(t, taps[name], p.Len(), name)
		assert.Equal(t, taps[name], p.Real.Len(), name)
		assert.Equal(t, taps[name], p.Imag.Len(), name)
		requireOrthogonal(t, p.Real)
		requireOrthogonal(t, p.Imag)
	}
}

func TestKingsburyMatchesTable(t *testing.T) {
	p, err := DualTree("kingsbury99")
	require.NoError(t, err)
	tb, err := loadTable("kingsbury99")
	require.NoError(t, err)
	assert.InDeltaSlice(t, tb.H0a, p.Real.DecLow, tableTol)
	assert.InDeltaSlice(t, tb.H1a, p.Real.DecHigh, tableTol)
	assert.InDeltaSlice(t, tb.G0b, p.Imag.RecLow, tableTol)
	assert.InDeltaSlice(t, tb.G1b, p.Imag.RecHigh, tableTol)
}

func TestIncompleteTable(t *testing.T) {
	tb := &table{Name: "broken", H0a: []float64{1, 1}}
	_, err := tabulatedPair("broken", tb)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "h1b")
}

func TestHilbertPairDelay(t *testing.T) {
	for _, name := range DualTrees() {
		if name == "kingsbury99" {
			continue
		}
		p, err := DualTree(name)
		require.NoError(t, err)
		omega, delay := PhaseDelay(p.Real.DecLow, p.Imag.DecLow, 512)
		require.Len(t, omega, 255)
		require.Len(t, delay, 255)
		for i := 0; i < 8; i++ {
			assert.InDelta(t, 0.5, delay[i], 2e-3, "%s at omega %g", name, omega[i])
		}
	}
}

func TestThiran(t *testing.T) {
	assert.InDeltaSlice(t, []float64{1, 1.0 / 3}, thiran(1, 0.5), 1e-15)
	assert.InDeltaSlice(t, []float64{1, 2, 0.2}, thiran(2, 0.5), 1e-15)
}

func TestMaxLevel(t *testing.T) {
	tests := []struct {
		length, taps, want int
	}{
		{100, 6, 4},
		{102, 6, 4},
		{64, 10, 2},
		{10, 16, 0},
		{8, 2, 3},
		{0, 2, 0},
		{7, 1, 0},
		{1024, 2, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxLevel(tt.length, tt.taps), "length %d taps %d", tt.length, tt.taps)
	}
}

func TestResolveLevel(t *testing.T) {
	lvl, err := ResolveLevel(LevelMax, 100, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, lvl)

	lvl, err = ResolveLevel(2, 100, 6)
	require.NoError(t, err)
	assert.Equal(t, 2, lvl)

	_, err = ResolveLevel(5, 100, 6)
	assert.True(t, errors.Is(err, ErrValidation))
	_, err = ResolveLevel(-2, 100, 6)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCacheReturnsCopies(t *testing.T) {
	a, err := DualTree("qshift2")
	require.NoError(t, err)
	orig := a.Real.DecLow[3]
	a.Real.DecLow[3] = 42

	b, err := DualTree("qshift2")
	require.NoError(t, err)
	assert.Equal(t, orig, b.Real.DecLow[3])
}

func TestConcurrentLookups(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names := DualTrees()
			if _, err := DualTree(names[i%len(names)]); err != nil {
				errs <- err
			}
			if _, err := FirstStage(Discretes()[i%20]); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

// FirstStages returns the names accepted by FirstStage, sorted.
func FirstStages() []string {
	return Discretes()
}

// FirstStage returns the first-level banks of the dual tree derived from the
// named base wavelet. Every filter is extended with one zero at each end;
// Real is that extended bank and Imag is a copy with the decomposition
// filters rolled one tap right and the reconstruction filters one tap left.
// The one-sample offset between the trees at the first level is what makes
// their later outputs approximately a Hilbert pair.
func FirstStage(name string) (Pair, error) {
	return firstStageCache.get(name, buildFirstStage)
}

func buildFirstStage(name string) (Pair, error) {
	if _, _, ok := parseDiscrete(name); !ok {
		return Pair{}, unknownName("first stage wavelet", name, FirstStages())
	}
	base, err := Discrete(name)
	if err != nil {
		return Pair{}, err
	}
	a := Bank{
		Name:    name,
		DecLow:  padZero(base.DecLow),
		DecHigh: padZero(base.DecHigh),
		RecLow:  padZero(base.RecLow),
		RecHigh: padZero(base.RecHigh),
	}
	b := Bank{
		Name:    name,
		DecLow:  roll(a.DecLow, 1),
		DecHigh: roll(a.DecHigh, 1),
		RecLow:  roll(a.RecLow, -1),
		RecHigh: roll(a.RecHigh, -1),
	}
	return Pair{Real: a, Imag: b}, nil
}

func padZero(f []float64) []float64 {
	out := make([]float64, len(f)+2)
	copy(out[1:], f)
	return out
}

// roll shifts f cyclically by n taps, positive to the right.
func roll(f []float64, n int) []float64 {
	out := make([]float64, len(f))
	for i, v := range f {
		j := (i + n) % len(f)
		if j < 0 {
			j += len(f)
		}
		out[j] = v
	}
	return out
}

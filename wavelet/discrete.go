// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// discreteFamilies maps a name prefix to the range of vanishing moments
// supported and how its low-pass filter is built.
var discreteFamilies = []struct {
	prefix   string
	min, max int
	build    func(k int) ([]float64, error)
}{
	{"db", 1, 10, daubechiesMin},
	{"sym", 2, 10, symlet},
}

func daubechiesMin(k int) ([]float64, error) {
	return daubechies(k, minPhase)
}

// Discretes returns the names accepted by Discrete and FirstStage, sorted.
func Discretes() []string {
	names := []string{"haar"}
	for _, fam := range discreteFamilies {
		for k := fam.min; k <= fam.max; k++ {
			names = append(names, fam.prefix+strconv.Itoa(k))
		}
	}
	sort.Strings(names)
	return names
}

// Discrete returns the bank of the named orthogonal wavelet: haar, db1-db10
// (Daubechies, minimum phase) or sym2-sym10 (Symlets, least asymmetric).
// The filter with k vanishing moments has 2k taps.
func Discrete(name string) (Bank, error) {
	p, err := discreteCache.get(name, buildDiscrete)
	if err != nil {
		return Bank{}, err
	}
	return p.Real, nil
}

func buildDiscrete(name string) (Pair, error) {
	k, build, ok := parseDiscrete(name)
	if !ok {
		return Pair{}, unknownName("wavelet", name, Discretes())
	}
	h, err := build(k)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: designing %s: %v", ErrConfiguration, name, err)
	}
	return Pair{Real: NewOrthogonal(name, h)}, nil
}

func parseDiscrete(name string) (int, func(int) ([]float64, error), bool) {
	if name == "haar" {
		return 1, daubechiesMin, true
	}
	for _, fam := range discreteFamilies {
		if !strings.HasPrefix(name, fam.prefix) {
			continue
		}
		k, err := strconv.Atoi(strings.TrimPrefix(name, fam.prefix))
		if err != nil || k < fam.min || k > fam.max {
			return 0, nil, false
		}
		// reject spellings like db02
		if fam.prefix+strconv.Itoa(k) != name {
			return 0, nil, false
		}
		return k, fam.build, true
	}
	return 0, nil, false
}

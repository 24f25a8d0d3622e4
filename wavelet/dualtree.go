// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//go:embed data/*.json
var tables embed.FS

// table is the on-disk form of a later-stage family. A family either lists
// the eight filters of its real (a) and imaginary (b) trees, or describes a
// common-factor Hilbert pair design.
type table struct {
	Name   string  `json:"name"`
	Desc   string  `json:"desc"`
	Design *design `json:"design,omitempty"`

	H0a []float64 `json:"h0a" desc:"decomposition low-pass, real tree"`
	H0b []float64 `json:"h0b" desc:"decomposition low-pass, imaginary tree"`
	G0a []float64 `json:"g0a" desc:"reconstruction low-pass, real tree"`
	G0b []float64 `json:"g0b" desc:"reconstruction low-pass, imaginary tree"`
	H1a []float64 `json:"h1a" desc:"decomposition high-pass, real tree"`
	H1b []float64 `json:"h1b" desc:"decomposition high-pass, imaginary tree"`
	G1a []float64 `json:"g1a" desc:"reconstruction high-pass, real tree"`
	G1b []float64 `json:"g1b" desc:"reconstruction high-pass, imaginary tree"`
}

type design struct {
	Moments int `json:"moments" desc:"vanishing moments, the order of the (1+z^-1) factor"`
	Delay   int `json:"delay" desc:"order of the half-sample delay factor"`
}

// tableTol is how far re-projected tabulated filters may stray from the table.
const tableTol = 1e-6

// DualTrees returns the later-stage family names accepted by DualTree, sorted.
func DualTrees() []string {
	ents, err := fs.ReadDir(tables, "data")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	sort.Strings(names)
	return names
}

// DualTree returns the real and imaginary tree banks of the named
// later-stage family, used for every level past the first.
func DualTree(name string) (Pair, error) {
	return dualTreeCache.get(name, buildDualTree)
}

func buildDualTree(name string) (Pair, error) {
	tb, err := loadTable(name)
	if err != nil {
		return Pair{}, err
	}
	if tb.Design != nil {
		return designedPair(name, tb.Design)
	}
	return tabulatedPair(name, tb)
}

func loadTable(name string) (*table, error) {
	valid := DualTrees()
	found := false
	for _, v := range valid {
		if v == name {
			found = true
			break
		}
	}
	if !found {
		return nil, unknownName("dual-tree wavelet", name, valid)
	}
	raw, err := tables.ReadFile(path.Join("data", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading table for %q: %v", ErrConfiguration, name, err)
	}
	tb := &table{}
	if err := json.Unmarshal(raw, tb); err != nil {
		return nil, fmt.Errorf("%w: parsing table for %q: %v", ErrConfiguration, name, err)
	}
	return tb, nil
}

func designedPair(name string, d *design) (Pair, error) {
	if d.Moments < 1 || d.Delay < 0 {
		return Pair{}, fmt.Errorf("%w: %q: invalid design moments %d delay %d", ErrConfiguration, name, d.Moments, d.Delay)
	}
	h0a, h0b, err := hilbertPair(d.Moments, d.Delay)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: designing %q: %v", ErrConfiguration, name, err)
	}
	return Pair{
		Real: NewOrthogonal(name, reverse(h0a)),
		Imag: NewOrthogonal(name, reverse(h0b)),
	}, nil
}

func tabulatedPair(name string, tb *table) (Pair, error) {
	filters := map[string][]float64{
		"h0a": tb.H0a, "h0b": tb.H0b, "g0a": tb.G0a, "g0b": tb.G0b,
		"h1a": tb.H1a, "h1b": tb.H1b, "g1a": tb.G1a, "g1b": tb.G1b,
	}
	var missing []string
	for k, f := range filters {
		if len(f) == 0 {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Pair{}, fmt.Errorf("%w: table for %q is missing coefficients %s", ErrConfiguration, name, strings.Join(missing, ", "))
	}
	re, err := tabulatedBank(name, tb.H0a, tb.H1a, tb.G0a, tb.G1a)
	if err != nil {
		return Pair{}, err
	}
	im, err := tabulatedBank(name, tb.H0b, tb.H1b, tb.G0b, tb.G1b)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Real: re, Imag: im}, nil
}

// tabulatedBank re-projects the tabulated decomposition low-pass filter to
// exact orthonormality, rebuilds the other three from it, and checks they
// agree with the table.
func tabulatedBank(name string, decLow, decHigh, recLow, recHigh []float64) (Bank, error) {
	h, err := polish(decLow)
	if err != nil {
		return Bank{}, fmt.Errorf("%w: %q: %v", ErrConfiguration, name, err)
	}
	b := NewOrthogonal(name, reverse(h))
	if len(decHigh) == len(b.DecHigh) && floats.Dot(decHigh, b.DecHigh) < 0 {
		b.negateHigh()
	}
	check := []struct {
		what       string
		got, table []float64
	}{
		{"decomposition low-pass", b.DecLow, decLow},
		{"decomposition high-pass", b.DecHigh, decHigh},
		{"reconstruction low-pass", b.RecLow, recLow},
		{"reconstruction high-pass", b.RecHigh, recHigh},
	}
	for _, c := range check {
		if len(c.got) != len(c.table) {
			return Bank{}, fmt.Errorf("%w: %q: %s has %d taps, expected %d", ErrConfiguration, name, c.what, len(c.table), len(c.got))
		}
		if d := maxDiff(c.got, c.table); d > tableTol {
			return Bank{}, fmt.Errorf("%w: %q: tabulated %s is inconsistent with an orthogonal bank (max deviation %g)", ErrConfiguration, name, c.what, d)
		}
	}
	return b, nil
}

func maxDiff(a, b []float64) float64 {
	m := 0.0
	for i := range a {
		m = math.Max(m, math.Abs(a[i]-b[i]))
	}
	return m
}

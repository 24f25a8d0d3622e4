// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package baseline_test

import (
	"fmt"
	"math"

	"github.com/emer/wavebase/baseline"
	"github.com/emer/wavebase/ndim"
)

func Example() {
	// a decaying background with a single narrow peak
	vals := make([]float64, 101)
	for i := range vals {
		s := float64(i) / 100
		d := (s - 0.5) / 0.02
		vals[i] = 2*math.Exp(-2*s) + 3*math.Exp(-d*d/2)
	}
	trace := ndim.FromSlice(vals)

	bg, err := baseline.DT(trace, 50)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(bg.Shapes())
	fmt.Println(bg.Values[50] < vals[50]-1)
	// Output:
	// [101]
	// true
}

func ExampleDiscrete() {
	ds := &baseline.Discrete{}
	ds.Defaults()
	ds.MaxIter = 0
	bg, err := ds.Estimate(ndim.Zeros([]int{3, 16}))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(bg.Shapes(), bg.Values[0])
	// Output: [3 16] 0
}

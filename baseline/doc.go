// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package baseline estimates the smooth background under a peaked signal by
iterative wavelet approximation.

Each iteration takes a low-pass wavelet approximation of a working copy of the
signal and pushes the working signal down to that approximation wherever it
lies above it. Peaks are shaved a little more every time, while regions known
to be pure background are reset to the signal before each pass.
After MaxIter passes the last approximation is the background, and the
cleaned signal is the input minus it.

DualTree uses the dual-tree complex wavelet transform along one axis.
Discrete uses a single-tree discrete wavelet transform and can work
separably along several axes at once.

	bg, err := baseline.DT(trace, 100)
	if err != nil {
		log.Println(err)
	}
*/
package baseline

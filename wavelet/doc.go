// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package wavelet builds the filter banks used by the dwt and dtcwt packages.

Discrete returns the orthogonal base wavelets (haar, Daubechies, Symlets),
FirstStage derives from one of them the pair of one-sample offset banks that
start a dual tree, and DualTree returns the real and imaginary tree banks of
a later-stage family. The Daubechies, Symlet and qshift filters are designed
by spectral factorization of a halfband product filter rather than read from
a table; every filter is projected onto exact double-shift orthonormality so
that transforms built on them reconstruct to rounding error.

Banks are cached by name on first use and every lookup returns a copy.

MaxLevel and ResolveLevel implement the level policy shared by the transforms.
*/
package wavelet

// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

// LevelMax requests the deepest decomposition the signal supports.
const LevelMax = -1

// MaxLevel returns the deepest useful decomposition level of a signal of the
// given length for a filter of filterLen taps: floor(log2(length / (filterLen-1))),
// or 0 when the filter is degenerate or longer than the signal.
func MaxLevel(length, filterLen int) int {
	if filterLen < 2 || length < filterLen-1 {
		return 0
	}
	lvl := 0
	for span := 2 * (filterLen - 1); span <= length; span *= 2 {
		lvl++
	}
	return lvl
}

// ResolveLevel turns a requested level into a concrete one. LevelMax
// resolves to MaxLevel; any other negative level, or one above MaxLevel,
// is an ErrValidation.
func ResolveLevel(level, length, filterLen int) (int, error) {
	max := MaxLevel(length, filterLen)
	switch {
	case level == LevelMax:
		return max, nil
	case level < 0:
		return 0, Validationf("level %d is negative", level)
	case level > max:
		return 0, Validationf("level %d exceeds the maximum level %d for length %d with %d-tap filters", level, max, length, filterLen)
	}
	return level, nil
}

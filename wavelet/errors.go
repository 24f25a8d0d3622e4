// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavelet

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the wavelet, dwt, dtcwt and baseline packages.
// They are always wrapped with context, test for them with errors.Is.
var (
	// ErrConfiguration reports an unknown filter or family name, or a filter
	// table that is incomplete or inconsistent.
	ErrConfiguration = errors.New("wavelet: configuration error")

	// ErrValidation reports structurally invalid input: a bad axis, an odd
	// extent where an even one is needed, a level beyond the supported maximum,
	// an empty coefficient list or a negative iteration count.
	ErrValidation = errors.New("wavelet: validation error")
)

// unknownName returns an ErrConfiguration naming the bad value and the valid ones.
func unknownName(kind, name string, valid []string) error {
	return fmt.Errorf("%w: unknown %s %q, valid names are: %s", ErrConfiguration, kind, name, strings.Join(valid, ", "))
}

// Validationf returns an ErrValidation carrying the formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/emer/wavebase/ndim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveRoundTrip(t *testing.T) {
	x := ndim.Zeros([]int{2, 200})
	for i := 0; i < 200; i++ {
		x.Values[i] = 0.8 * math.Sin(float64(i)/10)
		x.Values[200+i] = 0.5 * math.Cos(float64(i)/7)
	}
	w, err := FromTensor(x, 8000, 16)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Channels())
	assert.Equal(t, 200, w.Frames())

	fn := filepath.Join(t.TempDir(), "trace.wav")
	require.NoError(t, w.WriteWave(fn))

	var back Wave
	require.NoError(t, back.Load(fn))
	assert.Equal(t, 8000, back.SampleRate())
	assert.Equal(t, 2, back.Channels())

	all, err := back.ToTensor(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 200}, all.Shapes())
	assert.InDeltaSlice(t, x.Values, all.Values, 1e-4)

	second, err := back.ToTensor(1)
	require.NoError(t, err)
	assert.Equal(t, []int{200}, second.Shapes())
	assert.InDeltaSlice(t, x.Values[200:], second.Values, 1e-4)
}

func TestFromTensorClips(t *testing.T) {
	w, err := FromTensor(ndim.FromSlice([]float64{2, -3, 0.5}), 100, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{127, -127, 64}, w.Buf.Data)

	_, err = FromTensor(ndim.Zeros([]int{1, 1, 1}), 100, 16)
	assert.Error(t, err)
	_, err = FromTensor(ndim.Zeros([]int{4}), 100, 12)
	assert.Error(t, err)
}

func TestToTensorErrors(t *testing.T) {
	var w Wave
	_, err := w.ToTensor(0)
	assert.Error(t, err)

	m, err := FromTensor(ndim.Zeros([]int{4}), 100, 16)
	require.NoError(t, err)
	_, err = m.ToTensor(1)
	assert.Error(t, err)
	one, err := m.ToTensor(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, one.Shapes())
}

func TestLoadMissing(t *testing.T) {
	var w Wave
	assert.Error(t, w.Load(filepath.Join(t.TempDir(), "missing.wav")))
}

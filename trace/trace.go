// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace moves measurement traces between WAV files and the
// etensor.Float64 signals the baseline estimators work on.
package trace

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/emer/etable/etensor"
	"github.com/emer/wavebase/ndim"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Wave is a decoded PCM trace, one or more interleaved channels.
type Wave struct {
	Buf *audio.IntBuffer `inactive:"+"`
}

// Load loads the wav file and decodes it
func (tr *Wave) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		log.Printf("trace.Load: couldn't open %s %v", fn, err)
		return err
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return fmt.Errorf("trace.Load: %s is not a valid wav file", fn)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("trace.Load: decoding %s: %v", fn, err)
	}
	tr.Buf = buf
	return nil
}

// WriteWave encodes the trace and writes it to file using the sample rate,
// bit depth and channel count of the buffer
func (tr *Wave) WriteWave(fn string) error {
	out, err := os.Create(fn)
	if err != nil {
		log.Printf("trace.WriteWave: unable to create %s: %v", fn, err)
		return err
	}

	PCM := 1
	e := wav.NewEncoder(out, tr.SampleRate(), tr.Buf.SourceBitDepth, tr.Channels(), PCM)
	if err = e.Write(tr.Buf); err != nil {
		log.Printf("trace.WriteWave: encoding failed on write: %v", err)
		out.Close()
		return err
	}

	if err = e.Close(); err != nil {
		log.Printf("trace.WriteWave: could not close wav file encoder")
		out.Close()
		return err
	}
	return out.Close()
}

// SampleRate returns the sample rate of the trace or 0 if tr is empty
func (tr *Wave) SampleRate() int {
	if tr == nil || tr.Buf == nil {
		return 0
	}
	return tr.Buf.Format.SampleRate
}

// Channels returns the number of channels or 0 if tr is empty
func (tr *Wave) Channels() int {
	if tr == nil || tr.Buf == nil {
		return 0
	}
	return tr.Buf.Format.NumChannels
}

// Frames returns the number of samples per channel
func (tr *Wave) Frames() int {
	if tr == nil || tr.Buf == nil {
		return 0
	}
	return tr.Buf.NumFrames()
}

// fullScale is the largest magnitude of a signed sample of the given bit depth
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return float64(int64(1)<<uint(bitDepth-1) - 1), nil
	}
	return 0, fmt.Errorf("trace: unsupported bit depth %d", bitDepth)
}

// ToTensor converts the trace to normalized -1..1 values. A channel >= 0
// selects one channel, shaped [frames]; -1 takes every channel, shaped
// [channels, frames] when there is more than one.
func (tr *Wave) ToTensor(channel int) (*etensor.Float64, error) {
	if tr == nil || tr.Buf == nil {
		return nil, fmt.Errorf("trace.ToTensor: no data loaded")
	}
	scale, err := fullScale(tr.Buf.SourceBitDepth)
	if err != nil {
		return nil, err
	}
	nch := tr.Channels()
	nfr := tr.Frames()
	if channel >= nch {
		return nil, fmt.Errorf("trace.ToTensor: channel %d out of range, trace has %d", channel, nch)
	}
	if channel < 0 && nch > 1 {
		t := ndim.Zeros([]int{nch, nfr})
		idx := 0
		for i := 0; i < nfr; i++ {
			for c := 0; c < nch; c, idx = c+1, idx+1 {
				t.Values[c*nfr+i] = float64(tr.Buf.Data[idx]) / scale
			}
		}
		return t, nil
	}
	if channel < 0 {
		channel = 0
	}
	t := ndim.Zeros([]int{nfr})
	for i := 0; i < nfr; i++ {
		t.Values[i] = float64(tr.Buf.Data[i*nch+channel]) / scale
	}
	return t, nil
}

// FromTensor builds a trace from a [frames] or [channels, frames] tensor.
// Values are clipped to -1..1 and quantized to bitDepth.
func FromTensor(t *etensor.Float64, sampleRate, bitDepth int) (*Wave, error) {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}
	var nch, nfr int
	switch t.NumDims() {
	case 1:
		nch, nfr = 1, t.Dim(0)
	case 2:
		nch, nfr = t.Dim(0), t.Dim(1)
	default:
		return nil, fmt.Errorf("trace.FromTensor: need 1 or 2 dimensions, got %d", t.NumDims())
	}
	data := make([]int, nch*nfr)
	for c := 0; c < nch; c++ {
		for i := 0; i < nfr; i++ {
			v := math.Max(-1, math.Min(1, t.Values[c*nfr+i]))
			data[i*nch+c] = int(math.Round(v * scale))
		}
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nch, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	return &Wave{Buf: buf}, nil
}

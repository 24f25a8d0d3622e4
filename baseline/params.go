// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package baseline

import (
	"github.com/emer/wavebase/dtcwt"
	"github.com/emer/wavebase/dwt"
	"github.com/emer/wavebase/wavelet"
)

// Params are the settings shared by both estimators
type Params struct {
	MaxIter     int      `def:"100" min:"0" desc:"number of suppression iterations, each one full forward and inverse transform"`
	Level       int      `def:"-1" desc:"decomposition level of the approximation, higher is smoother; -1 uses the deepest level the signal supports"`
	Mode        dwt.Mode `def:"Constant" desc:"signal extension mode of the forward transforms"`
	Regions     []Region `desc:"regions known to contain only background: they are reset to the signal before every iteration so they are never suppressed"`
	Mask        []bool   `desc:"samples to exclude, one per sample in row-major order; the estimated background is zero there. nil excludes nothing"`
	NonNegative bool     `def:"false" desc:"clip the background at zero after every approximation"`
	CapToSignal bool     `def:"true" desc:"where the background rises above the signal, replace it with the working signal"`
}

func (bp *Params) Defaults() {
	bp.MaxIter = 100
	bp.Level = wavelet.LevelMax
	bp.Mode = dwt.Constant
	bp.Regions = nil
	bp.Mask = nil
	bp.NonNegative = false
	bp.CapToSignal = true
}

// DualTree estimates the background with dual-tree complex wavelet
// approximations along a single axis.
type DualTree struct {
	Params
	FirstStage string `def:"sym6" desc:"base wavelet of the first dual-tree stage, one of wavelet.FirstStages()"`
	Wavelet    string `def:"qshift1" desc:"later-stage dual-tree family, one of wavelet.DualTrees()"`
	Axis       int    `def:"-1" desc:"axis along which to transform, negative counts from the end"`
}

func (dt *DualTree) Defaults() {
	dt.Params.Defaults()
	dt.FirstStage = dtcwt.DefaultFirstStage
	dt.Wavelet = dtcwt.DefaultWavelet
	dt.Axis = -1
}

// Discrete estimates the background with single-tree discrete wavelet
// approximations, separably along each of Axes.
type Discrete struct {
	Params
	Wavelet string `def:"sym6" desc:"orthogonal wavelet, one of wavelet.Discretes()"`
	Axes    []int  `desc:"axes along which to approximate; nil for the last axis only"`
}

func (ds *Discrete) Defaults() {
	ds.Params.Defaults()
	ds.Wavelet = "sym6"
	ds.Axes = nil
}

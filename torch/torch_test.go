// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package torch

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/plasmasim/furnace/mesh"
)

func flatTemperature(m *mesh.Mesh, t0 float64) [][]float64 {
	out := la.MatAlloc(m.Nr, m.Nz)
	for i := range out {
		for j := range out[i] {
			out[i][j] = t0
		}
	}
	return out
}

func TestValidateSetDuplicateIds(tst *testing.T) {
	torches := []Torch{
		New("a", 0, 0, 90, 0, 1000, 0.01, 5000),
		New("a", 0.1, 0, 90, 0, 1000, 0.01, 5000),
	}
	if err := ValidateSet(torches); err == nil {
		tst.Errorf("expected duplicate id error")
	}
}

func TestRadiationMonotonicInPower(tst *testing.T) {
	chk.PrintTitle("radiation monotonic in power")
	m := mesh.New(1.0, 0.5, 10, 10, 12)
	temp := flatTemperature(m, 25)

	low := []Torch{New("t", 0, 1.0, 90, 0, 1e3, 0.01, 5000)}
	high := []Torch{New("t", 0, 1.0, 90, 0, 1e4, 0.01, 5000)}

	qLow := RadiationSource(m, low, temp, 0.8, 25, true)
	qHigh := RadiationSource(m, high, temp, 0.8, 25, true)

	// cell nearest the torch
	i, j := 0, m.Nz-1
	if qHigh[i][j] <= qLow[i][j] {
		tst.Errorf("expected higher power to produce higher radiation source: low=%g high=%g", qLow[i][j], qHigh[i][j])
	}
}

func TestRadiationDisabledIsZero(tst *testing.T) {
	m := mesh.New(1.0, 0.5, 5, 5, 12)
	temp := flatTemperature(m, 25)
	torches := []Torch{New("t", 0, 0, 90, 0, 1e4, 0.01, 5000)}
	q := RadiationSource(m, torches, temp, 0.8, 25, false)
	for i := range q {
		for j := range q[i] {
			if q[i][j] != 0 {
				tst.Errorf("expected zero radiation source when disabled, got %g at (%d,%d)", q[i][j], i, j)
			}
		}
	}
}

func TestInverseSquareFalloff(tst *testing.T) {
	chk.PrintTitle("inverse-square falloff")
	m := mesh.New(1.0, 0.5, 20, 20, 12)
	temp := flatTemperature(m, 25)
	torches := []Torch{New("t", 0, 0, 90, 0, 1e4, 0.01, 5000)}
	q := RadiationSource(m, torches, temp, 0.8, 25, true)

	// along the axis r=0, which is the torch's beam direction (pitch 90
	// aims it at +z), flux must not increase with distance from the torch.
	prev := q[0][0]
	for j := 1; j < m.Nz; j++ {
		if q[0][j] > prev+1e-9 {
			tst.Errorf("expected non-increasing radiation flux with distance, j=%d prev=%g cur=%g", j, prev, q[0][j])
		}
		prev = q[0][j]
	}
}

func TestConvectionOnlyOnGasExposedCells(tst *testing.T) {
	m := mesh.New(1.0, 0.5, 5, 5, 12)
	temp := flatTemperature(m, 25)
	torches := []Torch{New("t", 0, 0, 90, 0, 0, 0.01, 100)}
	q := ConvectionSource(m, torches, temp, 10.0, 25, true)
	for i := 1; i < m.Nr-1; i++ {
		for j := 1; j < m.Nz-1; j++ {
			if q[i][j] != 0 {
				tst.Errorf("expected zero convection source on interior cell (%d,%d), got %g", i, j, q[i][j])
			}
		}
	}
}

// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewChecked_invariants(tst *testing.T) {
	chk.PrintTitle("mesh invariants")

	if _, err := NewChecked(1.0, 0.5, 1, 5, 12); err == nil {
		tst.Errorf("expected error for nr < 2")
	}
	if _, err := NewChecked(1.0, 0.5, 5, 1, 12); err == nil {
		tst.Errorf("expected error for nz < 2")
	}
	if _, err := NewChecked(1.0, 0.5, 5, 5, 3); err == nil {
		tst.Errorf("expected error for ntheta < 4")
	}
	if _, err := NewChecked(0, 0.5, 5, 5, 12); err == nil {
		tst.Errorf("expected error for height <= 0")
	}
	if _, err := NewChecked(1.0, 0, 5, 5, 12); err == nil {
		tst.Errorf("expected error for radius <= 0")
	}
}

func TestCoordsAndSteps(tst *testing.T) {
	m := New(1.0, 0.5, 5, 5, 12)
	chk.Scalar(tst, "dr", 1e-15, m.Dr, 0.125)
	chk.Scalar(tst, "dz", 1e-15, m.Dz, 0.25)
	chk.Scalar(tst, "r[0]", 1e-15, m.RCoords[0], 0)
	chk.Scalar(tst, "r[4]", 1e-15, m.RCoords[4], 0.5)
	chk.Scalar(tst, "z[4]", 1e-15, m.ZCoords[4], 1.0)
}

func TestVolumesSumToCylinder(tst *testing.T) {
	m := New(1.0, 0.5, 50, 20, 12)
	var total float64
	for i := 0; i < m.Nr; i++ {
		for j := 0; j < m.Nz; j++ {
			total += m.Volumes[i][j]
		}
	}
	expected := pi * m.Radius * m.Radius * m.Height
	chk.Scalar(tst, "total volume", 1e-6*expected, total, expected)
}

func TestSetZonesRejectsShapeMismatch(tst *testing.T) {
	m := New(1.0, 0.5, 5, 5, 12)
	if err := m.SetZones([][]int{{0, 0}}); err == nil {
		tst.Errorf("expected shape mismatch error")
	}
	good := make([][]int, 5)
	for i := range good {
		good[i] = make([]int, 5)
	}
	if err := m.SetZones(good); err != nil {
		tst.Errorf("unexpected error: %v", err)
	}
	if m.MaxZone() != 0 {
		tst.Errorf("expected max zone 0, got %d", m.MaxZone())
	}
}

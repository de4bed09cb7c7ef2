// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the explicit finite-volume heat solver
// over a cylindrical mesh, including phase-change accounting and
// history capture, per spec.md §4.D.
package solver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/plasmasim/furnace/material"
	"github.com/plasmasim/furnace/mesh"
	"github.com/plasmasim/furnace/torch"
)

// MaterialZone pairs a zone index (as referenced by Mesh.Zones) with
// the material assigned to it, mirroring the Rust reference's
// material_zones: Option<Vec<(String, MaterialProperties)>> (here
// keyed by the integer zone index, which is what the mesh's Zones map
// actually carries, rather than a string id).
type MaterialZone struct {
	Zone     int
	Material *material.Material
}

// Parameters composes a mesh configuration, a material, an ordered
// list of torches and the scalar controls of spec.md §3.
type Parameters struct {
	// mesh configuration
	Height float64
	Radius float64
	Nr     int
	Nz     int
	Ntheta int
	Zones  [][]int // optional, aligned to (Nr,Nz)

	Material      *material.Material
	MaterialZones []MaterialZone // optional, indexed by zone

	Torches []torch.Torch

	InitialTemperature float64
	AmbientTemperature float64
	ConvectionCoeff    float64

	EnableConvection   bool
	EnableRadiation    bool
	EnablePhaseChanges bool

	TotalTime float64 // total simulated time (s)
	TimeStep  float64 // Δt (s)
	TimeSteps int      // N

	Verbose bool
}

// Default returns a Parameters with the teacher-reference defaults
// (mirroring original_source/.../solver.rs::SimulationParameters::new):
// steel material, ambient/initial temperature of 25°C, both
// convection and radiation and phase changes enabled.
func Default(height, radius float64, nr, nz int) Parameters {
	steel, err := material.FromLibrary("steel")
	if err != nil {
		chk.Panic("default material preset missing: %v", err)
	}
	return Parameters{
		Height: height,
		Radius: radius,
		Nr:     nr,
		Nz:     nz,
		Ntheta: 12,

		Material: steel,

		InitialTemperature: 25.0,
		AmbientTemperature: 25.0,
		ConvectionCoeff:    10.0,

		EnableConvection:   true,
		EnableRadiation:    true,
		EnablePhaseChanges: true,

		TotalTime: 100.0,
		TimeStep:  1.0,
		TimeSteps: 100,
	}
}

// AddTorch appends a torch to the parameter set.
func (p *Parameters) AddTorch(t torch.Torch) {
	p.Torches = append(p.Torches, t)
}

// RemoveTorch removes the torch with the given id, reporting whether a
// torch was actually removed.
func (p *Parameters) RemoveTorch(id string) bool {
	for i, t := range p.Torches {
		if t.ID == id {
			p.Torches = append(p.Torches[:i], p.Torches[i+1:]...)
			return true
		}
	}
	return false
}

// SetZoneMaterial assigns (or replaces) the material for a zone index.
func (p *Parameters) SetZoneMaterial(zone int, m *material.Material) {
	for i, mz := range p.MaterialZones {
		if mz.Zone == zone {
			p.MaterialZones[i].Material = m
			return
		}
	}
	p.MaterialZones = append(p.MaterialZones, MaterialZone{Zone: zone, Material: m})
}

// Validate implements every invariant of spec.md §3's Parameters
// entry, grounded directly on
// original_source/backend/src/simulation/solver.rs::SimulationParameters::validate.
func (p *Parameters) Validate() error {
	if p.Height <= 0 {
		return chk.Err("height must be positive, got %g", p.Height)
	}
	if p.Radius <= 0 {
		return chk.Err("radius must be positive, got %g", p.Radius)
	}
	if p.Nr < 2 {
		return chk.Err("nr must be >= 2, got %d", p.Nr)
	}
	if p.Nz < 2 {
		return chk.Err("nz must be >= 2, got %d", p.Nz)
	}
	if p.Ntheta < 4 {
		return chk.Err("ntheta must be >= 4, got %d", p.Ntheta)
	}
	if len(p.Torches) == 0 {
		return chk.Err("at least one torch must be defined")
	}
	if p.TimeStep <= 0 {
		return chk.Err("time_step must be positive, got %g", p.TimeStep)
	}
	if p.TotalTime <= 0 {
		return chk.Err("total_time must be positive, got %g", p.TotalTime)
	}
	if p.Material == nil {
		return chk.Err("material must be set")
	}

	for _, t := range p.Torches {
		if err := t.ValidateBounds(p.Radius, p.Height); err != nil {
			return err
		}
	}
	if err := torch.ValidateSet(p.Torches); err != nil {
		return err
	}

	if p.Zones != nil {
		if len(p.Zones) != p.Nr {
			return chk.Err("zone map has %d radial rows, expected %d", len(p.Zones), p.Nr)
		}
		maxZone := -1
		for _, row := range p.Zones {
			if len(row) != p.Nz {
				return chk.Err("zone map row has %d columns, expected %d", len(row), p.Nz)
			}
			for _, z := range row {
				if z > maxZone {
					maxZone = z
				}
			}
		}
		if len(p.MaterialZones) > 0 {
			if maxZone >= len(p.MaterialZones) {
				return chk.Err("zone map references zone %d but only %d material zones are defined", maxZone, len(p.MaterialZones))
			}
		} else if maxZone > 0 {
			return chk.Err("zone map defined but no material zones configured")
		}
	}

	return nil
}

// BuildMesh constructs the cylindrical mesh described by these
// parameters, applying the optional zone map.
func (p *Parameters) BuildMesh() (*mesh.Mesh, error) {
	m, err := mesh.NewChecked(p.Height, p.Radius, p.Nr, p.Nz, p.Ntheta)
	if err != nil {
		return nil, err
	}
	if p.Zones != nil {
		if err := m.SetZones(p.Zones); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MaterialAt returns the material in effect for cell (i,j), consulting
// the zone map and MaterialZones when present and falling back to the
// primary Material otherwise.
func (p *Parameters) MaterialAt(m *mesh.Mesh, i, j int) *material.Material {
	if m.Zones != nil {
		zone := m.Zones[i][j]
		for _, mz := range p.MaterialZones {
			if mz.Zone == zone {
				return mz.Material
			}
		}
	}
	return p.Material
}

// Clone returns a deep, independent copy of the parameters, used by
// the lifecycle worker to snapshot parameters at spawn time so that
// later mutations to the caller's copy have no effect (spec.md §4.E).
func (p *Parameters) Clone() Parameters {
	out := *p
	out.Torches = append([]torch.Torch(nil), p.Torches...)
	if p.Zones != nil {
		out.Zones = make([][]int, len(p.Zones))
		for i, row := range p.Zones {
			out.Zones[i] = append([]int(nil), row...)
		}
	}
	if p.Material != nil {
		matCopy := *p.Material
		out.Material = &matCopy
	}
	out.MaterialZones = append([]MaterialZone(nil), p.MaterialZones...)
	for i, mz := range out.MaterialZones {
		if mz.Material != nil {
			zoneMat := *mz.Material
			out.MaterialZones[i].Material = &zoneMat
		}
	}
	return out
}

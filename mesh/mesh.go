// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the axisymmetric (r,z) cylindrical grid over
// which the furnace's heat equation is discretised.
package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Mesh holds node coordinates, cell volumes and the optional material
// zone map of a cylindrical (r,z) grid. Nθ is retained only to size the
// angular replication used by out-of-scope 3D visualisation collaborators;
// the core never indexes a θ dimension.
type Mesh struct {

	// dimensions
	Height float64 // H: cylinder height (m)
	Radius float64 // R: outer radius (m)
	Nr     int     // number of radial nodes
	Nz     int     // number of axial nodes
	Ntheta int     // number of angular replicas (visualization only)

	// derived
	Dr float64 // Δr = R/(Nr-1)
	Dz float64 // Δz = H/(Nz-1)

	RCoords []float64   // [Nr] r[i] = i*Δr
	ZCoords []float64   // [Nz] z[j] = j*Δz
	Volumes [][]float64 // [Nr][Nz] per-cell volume V[i,j]

	Zones [][]int // [Nr][Nz] optional zone map, nil when unset
}

// New builds a cylindrical mesh from (H,R,Nr,Nz,Ntheta). It validates
// the dimension invariants of the furnace's parameter set and panics
// only when the caller already should have validated upstream (nr<2
// or nz<2 reaching here is a programming error, not a runtime input
// worth an error return — see NewChecked for the caller-facing variant).
func New(height, radius float64, nr, nz, ntheta int) *Mesh {
	m, err := NewChecked(height, radius, nr, nz, ntheta)
	if err != nil {
		chk.Panic("%v", err)
	}
	return m
}

// NewChecked is the validating constructor used by Parameters.BuildMesh
// and by any caller that wants an error instead of a panic.
func NewChecked(height, radius float64, nr, nz, ntheta int) (*Mesh, error) {
	if height <= 0 {
		return nil, chk.Err("mesh: height must be positive, got %g", height)
	}
	if radius <= 0 {
		return nil, chk.Err("mesh: radius must be positive, got %g", radius)
	}
	if nr < 2 {
		return nil, chk.Err("mesh: nr must be >= 2, got %d", nr)
	}
	if nz < 2 {
		return nil, chk.Err("mesh: nz must be >= 2, got %d", nz)
	}
	if ntheta < 4 {
		return nil, chk.Err("mesh: ntheta must be >= 4, got %d", ntheta)
	}

	m := &Mesh{
		Height: height,
		Radius: radius,
		Nr:     nr,
		Nz:     nz,
		Ntheta: ntheta,
		Dr:     radius / float64(nr-1),
		Dz:     height / float64(nz-1),
	}
	m.RCoords = utl.LinSpace(0, radius, nr)
	m.ZCoords = utl.LinSpace(0, height, nz)
	m.Volumes = la.MatAlloc(nr, nz)
	m.computeVolumes()
	return m, nil
}

// computeVolumes fills Volumes following the half-step convention of
// the furnace's invariants: interior cells span a full Δr (Δz) centred
// on the node, while the axis cell (i=0) and outer-wall cell (i=Nr-1)
// -- and, analogously, the bottom (j=0) and top (j=Nz-1) cells -- only
// extend a half step toward their open boundary.
func (m *Mesh) computeVolumes() {
	for i := 0; i < m.Nr; i++ {
		rIn, rOut := m.radialBounds(i)
		annulus := rOut*rOut - rIn*rIn
		for j := 0; j < m.Nz; j++ {
			dz := m.axialSpan(j)
			m.Volumes[i][j] = pi * annulus * dz
		}
	}
}

const pi = 3.14159265358979323846

// radialBounds returns the [r_in, r_out) radial extent of cell i.
func (m *Mesh) radialBounds(i int) (rIn, rOut float64) {
	r := m.RCoords[i]
	switch {
	case i == 0:
		return 0, m.Dr / 2
	case i == m.Nr-1:
		rIn = r - m.Dr/2
		if rIn < 0 {
			rIn = 0
		}
		return rIn, m.Radius
	default:
		rIn = r - m.Dr/2
		if rIn < 0 {
			rIn = 0
		}
		return rIn, r + m.Dr/2
	}
}

// axialSpan returns the axial extent (Δz-equivalent) of cell j.
func (m *Mesh) axialSpan(j int) float64 {
	switch {
	case j == 0, j == m.Nz-1:
		return m.Dz / 2
	default:
		return m.Dz
	}
}

// SetZones assigns a per-cell zone map, rejecting any shape mismatch
// with the mesh's (Nr,Nz) dimensions.
func (m *Mesh) SetZones(zones [][]int) error {
	if len(zones) != m.Nr {
		return chk.Err("mesh: zone map has %d radial rows, expected %d", len(zones), m.Nr)
	}
	for i, row := range zones {
		if len(row) != m.Nz {
			return chk.Err("mesh: zone map row %d has %d columns, expected %d", i, len(row), m.Nz)
		}
	}
	m.Zones = zones
	return nil
}

// MaxZone returns the largest zone index present in the zone map, or
// -1 if no zone map is set.
func (m *Mesh) MaxZone() int {
	if m.Zones == nil {
		return -1
	}
	max := 0
	for _, row := range m.Zones {
		for _, z := range row {
			if z > max {
				max = z
			}
		}
	}
	return max
}

// Clone returns a deep, independent copy of the mesh. The lifecycle
// worker does not call it: Simulation.Start builds a fresh mesh from
// the parameters instead.
func (m *Mesh) Clone() *Mesh {
	out := *m
	out.RCoords = append([]float64(nil), m.RCoords...)
	out.ZCoords = append([]float64(nil), m.ZCoords...)
	out.Volumes = la.MatAlloc(m.Nr, m.Nz)
	for i := range m.Volumes {
		copy(out.Volumes[i], m.Volumes[i])
	}
	if m.Zones != nil {
		out.Zones = make([][]int, len(m.Zones))
		for i, row := range m.Zones {
			out.Zones[i] = append([]int(nil), row...)
		}
	}
	return &out
}

// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package torch

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/plasmasim/furnace/mesh"
)

// stefanBoltzmann is σ in W/(m^2*K^4); temperatures here are in °C, so
// callers must convert to Kelvin before raising to the 4th power (see
// toKelvin below), matching spec.md §6's "temperatures in °C" overall
// convention while still honoring the physical radiation law.
const stefanBoltzmann = 5.670374419e-8

func toKelvin(celsius float64) float64 { return celsius + 273.15 }

// minDistance keeps the inverse-square falloff finite when a cell
// center coincides with a torch position.
const minDistance = 1e-3

// cellCenter returns the (r,z) coordinates of cell (i,j).
func cellCenter(m *mesh.Mesh, i, j int) (r, z float64) {
	return m.RCoords[i], m.ZCoords[j]
}

// falloff returns the inverse-square-with-cosine-cone weight of torch
// t's influence on the cell at (r,z): 1/d^2 scaled by the clamped
// cosine between the torch's forward direction and the direction from
// the torch to the cell. Weight is 0 outside the cone (cos<0), which
// realizes spec.md 4.C's "zero when the cell lies outside the torch
// cone" without a separate cone-angle parameter.
func falloff(t Torch, r, z float64) float64 {
	dr := r - t.RPos
	dz := z - t.ZPos
	d2 := dr*dr + dz*dz
	d := math.Sqrt(d2)
	fr, fz := t.forward()
	if d < minDistance {
		// cell coincides with the torch: treat it as lying dead ahead
		// on-axis rather than letting an un-clamped (0,0) direction
		// vector zero out the numerator while the denominator is
		// clamped, which would under-weight the nearest cell.
		d = minDistance
		d2 = d * d
		dr, dz = fr*d, fz*d
	}
	cos := (fr*dr + fz*dz) / d
	if cos < 0 {
		return 0
	}
	if cos > 1 {
		cos = 1
	}
	return cos / d2
}

// isRadialOuterBoundary reports whether cell i sits on the outer
// cylindrical (gas-exposed) wall.
func isRadialOuterBoundary(m *mesh.Mesh, i int) bool { return i == m.Nr-1 }

// isAxialEndPlane reports whether cell j sits on the top or bottom
// (gas-exposed) end plane.
func isAxialEndPlane(m *mesh.Mesh, j int) bool { return j == 0 || j == m.Nz-1 }

// RadiationSource computes Q_rad[i,j] for every cell: the sum, over
// all torches, of the cone/inverse-square weighted radiant flux scaled
// by power and emissivity, minus the grey-body loss on gas-exposed
// boundary cells. Returns an all-zero field when disabled.
func RadiationSource(m *mesh.Mesh, torches []Torch, temperature [][]float64, emissivity, ambientTemp float64, enable bool) [][]float64 {
	q := la.MatAlloc(m.Nr, m.Nz)
	if !enable {
		return q
	}
	for i := 0; i < m.Nr; i++ {
		for j := 0; j < m.Nz; j++ {
			r, z := cellCenter(m, i, j)
			var flux float64
			for _, t := range torches {
				// radiant intensity spread over a notional sphere of
				// radius d around the torch, scaled by its electrical
				// power as a proxy for radiant output.
				flux += t.Power * falloff(t, r, z) / (4 * math.Pi)
			}
			q[i][j] = emissivity * flux
			if isRadialOuterBoundary(m, i) || isAxialEndPlane(m, j) {
				tK := toKelvin(temperature[i][j])
				ambK := toKelvin(ambientTemp)
				q[i][j] -= emissivity * stefanBoltzmann * (tK*tK*tK*tK - ambK*ambK*ambK*ambK)
			}
		}
	}
	return q
}

// gasTemperatureAt returns the torch-jet-weighted gas temperature near
// (r,z): a falloff-weighted average of each torch's gas temperature,
// defaulting to ambient when no torch has meaningful influence there.
func gasTemperatureAt(torches []Torch, r, z, ambientTemp float64) float64 {
	var wsum, tsum float64
	for _, t := range torches {
		w := falloff(t, r, z)
		wsum += w
		tsum += w * t.GasTemp
	}
	if wsum < 1e-15 {
		return ambientTemp
	}
	return tsum / wsum
}

// ConvectionSource computes Q_conv[i,j] for every gas-exposed surface
// cell: h*(T_gas_at_cell - T[i,j]); interior cells get 0. Returns an
// all-zero field when disabled.
func ConvectionSource(m *mesh.Mesh, torches []Torch, temperature [][]float64, h, ambientTemp float64, enable bool) [][]float64 {
	q := la.MatAlloc(m.Nr, m.Nz)
	if !enable {
		return q
	}
	for i := 0; i < m.Nr; i++ {
		for j := 0; j < m.Nz; j++ {
			if !isRadialOuterBoundary(m, i) && !isAxialEndPlane(m, j) {
				continue
			}
			r, z := cellCenter(m, i, j)
			tGas := gasTemperatureAt(torches, r, z, ambientTemp)
			q[i][j] = h * (tGas - temperature[i][j])
		}
	}
	return q
}

// Total adds Q_rad and Q_conv into a single source field.
func Total(qRad, qConv [][]float64) [][]float64 {
	nr := len(qRad)
	q := la.MatAlloc(nr, len(qRad[0]))
	for i := 0; i < nr; i++ {
		for j := range qRad[i] {
			q[i][j] = qRad[i][j] + qConv[i][j]
		}
	}
	return q
}

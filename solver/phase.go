// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/plasmasim/furnace/material"
	"github.com/plasmasim/furnace/mesh"
)

// updatePhaseFractions implements spec.md §4.D's "Phase-change update"
// for a single cell: it consumes the energy available above a
// transition temperature (computed with the PLAIN specific heat, never
// EffectiveCp -- effective_cp already smoothed the temperature rise
// near the transition in the main update, so reusing it here would
// double-count the latent energy) to advance the melt fraction, then
// -- only once melting is complete, or no melting point is defined --
// the vaporization fraction. It returns the updated fractions and the
// phase energy consumed at this cell this step.
func updatePhaseFractions(mat *material.Material, m *mesh.Mesh, i, j int, t, chiMelt, chiVapor, dt float64) (newChiMelt, newChiVapor, consumed float64) {
	newChiMelt, newChiVapor = chiMelt, chiVapor
	volume := m.Volumes[i][j]
	mass := mat.Rho(t) * volume

	if mat.HasMeltingPoint && t > mat.MeltingPoint && chiMelt < 1 {
		used := consumePhaseEnergy(mat, mass, t, mat.MeltingPoint, mat.LatentHeatFusion, chiMelt)
		newChiMelt = clampFraction(chiMelt + used/(mass*mat.LatentHeatFusion))
		consumed += used
	}

	vaporizationAllowed := !mat.HasMeltingPoint || newChiMelt >= 1
	if mat.HasVaporizationPoint && vaporizationAllowed && t > mat.VaporizationPoint && chiVapor < 1 {
		used := consumePhaseEnergy(mat, mass, t, mat.VaporizationPoint, mat.LatentHeatVaporization, chiVapor)
		newChiVapor = clampFraction(chiVapor + used/(mass*mat.LatentHeatVaporization))
		consumed += used
	}

	return newChiMelt, newChiVapor, consumed
}

// consumePhaseEnergy returns the energy actually absorbed by a single
// transition: min(energy still required to finish the transition,
// energy available from the cell's overshoot above the transition
// temperature).
func consumePhaseEnergy(mat *material.Material, mass, t, tc, latent, chiBefore float64) float64 {
	required := mass * latent * (1 - chiBefore)
	available := mass * mat.Cp(t) * (t - tc)
	if available < 0 {
		return 0
	}
	if available < required {
		return available
	}
	return required
}

func clampFraction(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// errInstability builds the "numerical instability at step n" error
// spec.md §4.D requires when the explicit update produces a
// non-finite temperature, so the lifecycle worker can transition to
// Failed with this message.
func errInstability(step int) error {
	return chk.Err("numerical instability at step %d: non-finite temperature produced by explicit update; reduce time_step below the diffusion stability bound", step)
}

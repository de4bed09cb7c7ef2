// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/la"

	"github.com/plasmasim/furnace/diag"
	"github.com/plasmasim/furnace/mesh"
	"github.com/plasmasim/furnace/torch"
)

// Outcome distinguishes a completed run from one that returned early
// because an Observer requested cancellation (spec.md §4.D: "a
// distinguished 'cancelled' outcome -- not an error").
type Outcome int

const (
	Completed Outcome = iota
	Cancelled
)

// Observer is invoked by Run after every completed time step with the
// progress fraction in [0,1]. It returns true to request cancellation.
// A blocking Observer implements cooperative pause (spec.md §4.D).
type Observer func(progress float64) (cancel bool)

// Result holds the full per-step history produced by Run: History[k]
// is the temperature field after k steps (History[0] is the initial
// condition), and likewise for the phase-fraction fields.
type Result struct {
	Mesh *mesh.Mesh

	History     [][][]float64 // [k][Nr][Nz]
	ChiMelt     [][][]float64 // [k][Nr][Nz], nil if phase changes disabled
	ChiVapor    [][][]float64 // [k][Nr][Nz], nil if phase changes disabled
	EnergyPhase []float64     // [k] cumulative E_pc, nil if phase changes disabled

	StepsCompleted int
	Outcome        Outcome
}

// stepState carries the mutable per-step buffers threaded through Run; it
// exists so step can be a small, independently testable pure function
// of (params, mesh, previous state) -> next state.
type stepState struct {
	temperature [][]float64
	chiMelt     [][]float64
	chiVapor    [][]float64
	energyPhase float64
}

// Run executes the full explicit time march described by spec.md
// §4.D, invoking obs after every step and honoring its cancellation
// request. p is assumed already validated (Parameters.Validate).
func Run(p *Parameters, m *mesh.Mesh, obs Observer) (*Result, error) {
	cur := &stepState{
		temperature: la.MatAlloc(m.Nr, m.Nz),
	}
	for i := range cur.temperature {
		for j := range cur.temperature[i] {
			cur.temperature[i][j] = p.InitialTemperature
		}
	}
	if p.EnablePhaseChanges {
		cur.chiMelt = la.MatAlloc(m.Nr, m.Nz)
		cur.chiVapor = la.MatAlloc(m.Nr, m.Nz)
	}

	res := &Result{Mesh: m, Outcome: Completed}
	res.History = append(res.History, cloneField(cur.temperature))
	if p.EnablePhaseChanges {
		res.ChiMelt = append(res.ChiMelt, cloneField(cur.chiMelt))
		res.ChiVapor = append(res.ChiVapor, cloneField(cur.chiVapor))
		res.EnergyPhase = append(res.EnergyPhase, 0)
	}

	diag.Step(p.Verbose, "running %d steps (dt=%g)", p.TimeSteps, p.TimeStep)

	for n := 0; n < p.TimeSteps; n++ {
		next, err := step(p, m, cur, n+1)
		if err != nil {
			return res, err
		}
		cur = next
		res.StepsCompleted++

		res.History = append(res.History, cloneField(cur.temperature))
		if p.EnablePhaseChanges {
			res.ChiMelt = append(res.ChiMelt, cloneField(cur.chiMelt))
			res.ChiVapor = append(res.ChiVapor, cloneField(cur.chiVapor))
			res.EnergyPhase = append(res.EnergyPhase, cur.energyPhase)
		}

		if obs != nil {
			progress := float64(res.StepsCompleted) / float64(p.TimeSteps)
			if obs(progress) {
				res.Outcome = Cancelled
				diag.Transition(p.Verbose, "cancelled at step %d", res.StepsCompleted)
				return res, nil
			}
		}
	}
	return res, nil
}

// step performs one explicit update T^n -> T^{n+1} plus the subsequent
// phase-fraction accounting, parallelized one goroutine per radial
// row: a row only reads the previous-step buffer and writes its own
// row of the next-step buffer, so rows never race each other (spec.md
// §4.D "Parallelism").
func step(p *Parameters, m *mesh.Mesh, cur *stepState, stepNumber int) (*stepState, error) {
	next := &stepState{
		temperature: la.MatAlloc(m.Nr, m.Nz),
	}
	if p.EnablePhaseChanges {
		next.chiMelt = la.MatAlloc(m.Nr, m.Nz)
		next.chiVapor = la.MatAlloc(m.Nr, m.Nz)
	}

	qRad := torch.RadiationSource(m, p.Torches, cur.temperature, p.Material.Emissivity, p.AmbientTemperature, p.EnableRadiation)
	qConv := torch.ConvectionSource(m, p.Torches, cur.temperature, p.ConvectionCoeff, p.AmbientTemperature, p.EnableConvection)
	q := torch.Total(qRad, qConv)

	rowEnergy := make([]float64, m.Nr)
	var wg sync.WaitGroup
	wg.Add(m.Nr)
	for i := 0; i < m.Nr; i++ {
		go func(i int) {
			defer wg.Done()
			rowEnergy[i] = updateRow(p, m, cur, next, i, q)
		}(i)
	}
	wg.Wait()

	var finite = true
	for i := 0; i < m.Nr && finite; i++ {
		for j := 0; j < m.Nz; j++ {
			if math.IsNaN(next.temperature[i][j]) || math.IsInf(next.temperature[i][j], 0) {
				finite = false
				break
			}
		}
	}
	if !finite {
		return nil, errInstability(stepNumber)
	}

	next.energyPhase = cur.energyPhase
	for _, e := range rowEnergy {
		next.energyPhase += e
	}
	return next, nil
}

// updateRow computes the diffusion+source update for every cell in
// radial row i and, when enabled, the phase-change bookkeeping for
// that row, returning the phase energy consumed in this row.
func updateRow(p *Parameters, m *mesh.Mesh, cur, next *stepState, i int, q [][]float64) float64 {
	var rowEnergy float64
	mat := p.Material
	for j := 0; j < m.Nz; j++ {
		if p.MaterialZones != nil || m.Zones != nil {
			mat = p.MaterialAt(m, i, j)
		}
		t := cur.temperature[i][j]
		k := mat.K(t)
		rho := mat.Rho(t)
		cpEff := mat.Cp(t)
		if p.EnablePhaseChanges {
			cpEff = mat.EffectiveCp(t, p.TimeStep)
		}

		diffR := radialDiffusion(m, cur.temperature, i, j, k, p.AmbientTemperature)
		diffZ := axialDiffusion(m, cur.temperature, i, j, k, p.AmbientTemperature)

		next.temperature[i][j] = t + p.TimeStep*(diffR+diffZ+q[i][j])/(rho*cpEff)

		if p.EnablePhaseChanges {
			chiM, chiV, consumed := updatePhaseFractions(mat, m, i, j, next.temperature[i][j], cur.chiMelt[i][j], cur.chiVapor[i][j], p.TimeStep)
			next.chiMelt[i][j] = chiM
			next.chiVapor[i][j] = chiV
			rowEnergy += consumed
		}
	}
	return rowEnergy
}

// radialDiffusion evaluates the radial term of the stencil described
// in spec.md §4.D step 2, including the symmetric axis case and the
// Dirichlet-to-ambient outer wall.
func radialDiffusion(m *mesh.Mesh, temperature [][]float64, i, j int, k, ambient float64) float64 {
	dr := m.Dr
	switch {
	case i == 0:
		return 2 * k * (temperature[1][j] - temperature[0][j]) / (dr * dr)
	case i == m.Nr-1:
		return k*(temperature[i-1][j]-temperature[i][j])/(dr*dr) +
			2*k*(ambient-temperature[i][j])/(dr*dr)
	default:
		r := m.RCoords[i]
		curvature := k * (temperature[i-1][j] - 2*temperature[i][j] + temperature[i+1][j]) / (dr * dr)
		polar := k * (temperature[i+1][j] - temperature[i-1][j]) / (2 * r * dr)
		return curvature + polar
	}
}

// axialDiffusion evaluates the axial term of the stencil described in
// spec.md §4.D step 3, applying the Dirichlet-to-ambient end planes
// unconditionally (see SPEC_FULL.md §9's resolution of this point).
func axialDiffusion(m *mesh.Mesh, temperature [][]float64, i, j int, k, ambient float64) float64 {
	dz := m.Dz
	switch {
	case j == 0:
		return k*(temperature[i][1]-temperature[i][0])/(dz*dz) +
			2*k*(ambient-temperature[i][0])/(dz*dz)
	case j == m.Nz-1:
		return k*(temperature[i][j-1]-temperature[i][j])/(dz*dz) +
			2*k*(ambient-temperature[i][j])/(dz*dz)
	default:
		return k * (temperature[i][j-1] - 2*temperature[i][j] + temperature[i][j+1]) / (dz * dz)
	}
}

func cloneField(f [][]float64) [][]float64 {
	out := la.MatAlloc(len(f), len(f[0]))
	la.MatCopy(out, 1, f)
	return out
}

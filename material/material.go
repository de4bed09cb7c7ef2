// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material implements temperature-dependent material
// properties (density, specific heat, conductivity, emissivity) with
// optional enthalpy-style phase-change parameters.
package material

import "math"

// Material holds the baseline properties of a furnace material plus
// the optional linearised temperature-correction coefficients and the
// optional phase-change parameters of spec.md §4.B. Phase parameters
// are considered "set" only when strictly positive, mirroring the
// foreign-boundary convention that a non-positive value means "not
// set" (this is the idiomatic Go rendition of the Option<f64> fields
// the Rust reference carries for MeltingPoint/LatentHeatFusion/
// VaporizationPoint/LatentHeatVaporization).
type Material struct {
	Name string

	Rho0 float64 // baseline density ρ0 (kg/m^3)
	Cp0  float64 // baseline specific heat cp0 (J/(kg*K))
	K0   float64 // baseline conductivity k0 (W/(m*K))

	Moisture   float64 // moisture content (fraction)
	Emissivity float64 // ε in [0,1]

	// linearised temperature-correction coefficients, k(T) = K0*(1 +
	// KLin1*T + KLin2*T^2); both default to 0, i.e. a pure baseline.
	KLin1 float64
	KLin2 float64

	HasMeltingPoint        bool
	MeltingPoint           float64 // T_m (°C)
	LatentHeatFusion       float64 // L_f (J/kg)
	HasVaporizationPoint   bool
	VaporizationPoint      float64 // T_v (°C)
	LatentHeatVaporization float64 // L_v (J/kg)
}

// New constructs a Material with the given baseline properties. Phase
// parameters, moisture and emissivity default to unset/zero, matching
// spec.md 4.B's constructor contract.
func New(name string, rho0, cp0, k0 float64) *Material {
	return &Material{
		Name: name,
		Rho0: rho0,
		Cp0:  cp0,
		K0:   k0,
	}
}

// SetMeltingPoint sets T_m and L_f only when both are strictly
// positive; a non-positive value from the foreign boundary means "not
// set" and clears any previously set melting point.
func (m *Material) SetMeltingPoint(tm, lf float64) {
	if tm > 0 && lf > 0 {
		m.HasMeltingPoint = true
		m.MeltingPoint = tm
		m.LatentHeatFusion = lf
		return
	}
	m.HasMeltingPoint = false
	m.MeltingPoint = 0
	m.LatentHeatFusion = 0
}

// SetVaporizationPoint sets T_v and L_v only when both are strictly
// positive.
func (m *Material) SetVaporizationPoint(tv, lv float64) {
	if tv > 0 && lv > 0 {
		m.HasVaporizationPoint = true
		m.VaporizationPoint = tv
		m.LatentHeatVaporization = lv
		return
	}
	m.HasVaporizationPoint = false
	m.VaporizationPoint = 0
	m.LatentHeatVaporization = 0
}

// Rho returns ρ(T). Implementations MAY apply a temperature
// correction; this one returns the stored baseline, matching the
// minimal contract of spec.md 4.B.
func (m *Material) Rho(t float64) float64 {
	return m.Rho0
}

// Cp returns cp(T), the baseline specific heat.
func (m *Material) Cp(t float64) float64 {
	return m.Cp0
}

// K returns k(T) using the linearised polynomial correction, the Go
// rendition of the teacher's mdl/diffusion.M1.Kval(u) polynomial
// dependence of conductivity on the primary field variable.
func (m *Material) K(t float64) float64 {
	return m.K0 * (1 + m.KLin1*t + m.KLin2*t*t)
}

// phaseBumpHalfWidth returns the half-width (in °C) of the enthalpy
// smoothing bump for a given time step, scaled so that a larger Δt
// smooths over more of the ramp (keeping the effective-cp integral
// bounded even for coarse steps).
func phaseBumpHalfWidth(dt float64) float64 {
	w := 2.0 + 10.0*dt
	if w > 25.0 {
		w = 25.0
	}
	return w
}

// EffectiveCp returns cp(T) plus a latent-heat smoothing term near T_m
// and T_v (the "enthalpy method" of spec.md §9): a triangular bump of
// half-width h centred at the transition temperature, whose area
// (∫ρ·bump dT) equals ρ(T)*L, so that a cell ramping linearly through
// the transition absorbs the correct total latent energy. When no
// phase parameter is set this is exactly Cp(T), satisfying spec.md
// 4.B's invariant that disabling phase change collapses to cp(T).
func (m *Material) EffectiveCp(t, dt float64) float64 {
	cp := m.Cp(t)
	rho := m.Rho(t)
	if rho <= 0 {
		return cp
	}
	if m.HasMeltingPoint {
		cp += latentBump(t, m.MeltingPoint, m.LatentHeatFusion, rho, dt)
	}
	if m.HasVaporizationPoint {
		cp += latentBump(t, m.VaporizationPoint, m.LatentHeatVaporization, rho, dt)
	}
	return cp
}

// latentBump returns the additional effective specific heat contributed
// by a single phase transition at temperature tc with latent heat l.
func latentBump(t, tc, l, rho, dt float64) float64 {
	h := phaseBumpHalfWidth(dt)
	d := math.Abs(t - tc)
	if d >= h {
		return 0
	}
	// triangular kernel: area = l (per unit mass), height = l/h so
	// that the full triangle (base 2h, height l/h) integrates to l.
	peak := l / h
	return peak * (1 - d/h)
}

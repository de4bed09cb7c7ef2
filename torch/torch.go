// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package torch implements the directional plasma-torch heat emitter
// model and the per-step radiation/convection source fields it drives.
package torch

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Torch is a directional heat emitter positioned in the (r,z) plane
// and aimed by (Pitch,Yaw), mirroring spec.md §3's Torch type and the
// teacher-adjacent original_source PlasmaTorch fields.
type Torch struct {
	ID string

	RPos float64 // r_p (m)
	ZPos float64 // z_p (m)

	Pitch float64 // degrees
	Yaw   float64 // degrees

	Power    float64 // electrical power P (W)
	GasFlow  float64 // gas flow rate (kg/s)
	GasTemp  float64 // gas temperature T_g (°C)
}

// New constructs a Torch. Validation of position bounds against a
// mesh's (R,H) happens in the owning Parameters.Validate, because a
// Torch alone does not know the furnace's dimensions.
func New(id string, rPos, zPos, pitch, yaw, power, gasFlow, gasTemp float64) Torch {
	return Torch{
		ID: id, RPos: rPos, ZPos: zPos,
		Pitch: pitch, Yaw: yaw,
		Power: power, GasFlow: gasFlow, GasTemp: gasTemp,
	}
}

// ValidateBounds checks 0<=r_p<=R and 0<=z_p<=H (spec.md §3 Torch
// invariants).
func (t Torch) ValidateBounds(radius, height float64) error {
	if t.RPos < 0 || t.RPos > radius {
		return chk.Err("torch %q: r_position %g out of bounds [0,%g]", t.ID, t.RPos, radius)
	}
	if t.ZPos < 0 || t.ZPos > height {
		return chk.Err("torch %q: z_position %g out of bounds [0,%g]", t.ID, t.ZPos, height)
	}
	return nil
}

// forward returns the torch's unit forward direction vector in (r,z)
// projected space, computed from pitch/yaw the way a camera/emitter
// direction is derived from two Euler angles: yaw rotates in the
// (r,θ) plane -- collapsed here since the core is axisymmetric -- and
// pitch tilts the beam toward +z or -z.
func (t Torch) forward() (dr, dz float64) {
	pitchRad := t.Pitch * math.Pi / 180.0
	// yaw only affects the theta component in the full 3D model; in
	// the axisymmetric (r,z) solve its radial projection is cos(yaw).
	yawRad := t.Yaw * math.Pi / 180.0
	dr = math.Cos(pitchRad) * math.Cos(yawRad)
	dz = math.Sin(pitchRad)
	norm := math.Hypot(dr, dz)
	if norm < 1e-12 {
		return 0, 1
	}
	return dr / norm, dz / norm
}

// ValidateSet checks that a list of torches is non-empty and carries
// unique, stable string ids (spec.md §3 Parameters invariant).
func ValidateSet(torches []Torch) error {
	if len(torches) == 0 {
		return chk.Err("at least one torch must be defined")
	}
	seen := make(map[string]bool, len(torches))
	for _, t := range torches {
		if seen[t.ID] {
			return chk.Err("duplicate torch id: %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

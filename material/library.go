// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// allocators holds the registered preset materials, mirroring the
// teacher's mconduct.allocators / mdl/diffusion.allocators factory-map
// idiom (mconduct/conductmodels.go, mdl/diffusion/model.go) rather than
// a switch statement, so that adding a preset never touches New.
var allocators = map[string]func() *Material{}

func register(name string, prms fun.Prms, build func(get func(string) float64) *Material) {
	allocators[name] = func() *Material {
		values := make(map[string]float64, len(prms))
		for _, p := range prms {
			values[p.N] = p.V
		}
		return build(func(key string) float64 { return values[key] })
	}
}

func init() {
	register("steel", fun.Prms{
		&fun.Prm{N: "rho0", V: 7850.0},
		&fun.Prm{N: "cp0", V: 490.0},
		&fun.Prm{N: "k0", V: 45.0},
		&fun.Prm{N: "emissivity", V: 0.8},
		&fun.Prm{N: "melting_point", V: 1450.0},
		&fun.Prm{N: "latent_heat_fusion", V: 2.47e5},
	}, func(get func(string) float64) *Material {
		m := New("steel", get("rho0"), get("cp0"), get("k0"))
		m.Emissivity = get("emissivity")
		m.SetMeltingPoint(get("melting_point"), get("latent_heat_fusion"))
		return m
	})

	register("aluminum", fun.Prms{
		&fun.Prm{N: "rho0", V: 2700.0},
		&fun.Prm{N: "cp0", V: 900.0},
		&fun.Prm{N: "k0", V: 237.0},
		&fun.Prm{N: "emissivity", V: 0.09},
		&fun.Prm{N: "melting_point", V: 660.0},
		&fun.Prm{N: "latent_heat_fusion", V: 3.97e5},
		&fun.Prm{N: "vaporization_point", V: 2470.0},
		&fun.Prm{N: "latent_heat_vaporization", V: 1.08e7},
	}, func(get func(string) float64) *Material {
		m := New("aluminum", get("rho0"), get("cp0"), get("k0"))
		m.Emissivity = get("emissivity")
		m.SetMeltingPoint(get("melting_point"), get("latent_heat_fusion"))
		m.SetVaporizationPoint(get("vaporization_point"), get("latent_heat_vaporization"))
		return m
	})

	register("copper", fun.Prms{
		&fun.Prm{N: "rho0", V: 8960.0},
		&fun.Prm{N: "cp0", V: 385.0},
		&fun.Prm{N: "k0", V: 401.0},
		&fun.Prm{N: "emissivity", V: 0.07},
		&fun.Prm{N: "melting_point", V: 1085.0},
		&fun.Prm{N: "latent_heat_fusion", V: 2.05e5},
	}, func(get func(string) float64) *Material {
		m := New("copper", get("rho0"), get("cp0"), get("k0"))
		m.Emissivity = get("emissivity")
		m.SetMeltingPoint(get("melting_point"), get("latent_heat_fusion"))
		return m
	})

	register("graphite", fun.Prms{
		&fun.Prm{N: "rho0", V: 1800.0},
		&fun.Prm{N: "cp0", V: 710.0},
		&fun.Prm{N: "k0", V: 120.0},
		&fun.Prm{N: "emissivity", V: 0.85},
		&fun.Prm{N: "klin1", V: -2.0e-4},
		&fun.Prm{N: "vaporization_point", V: 3642.0},
		&fun.Prm{N: "latent_heat_vaporization", V: 5.98e7},
	}, func(get func(string) float64) *Material {
		m := New("graphite", get("rho0"), get("cp0"), get("k0"))
		m.Emissivity = get("emissivity")
		m.KLin1 = get("klin1")
		m.SetVaporizationPoint(get("vaporization_point"), get("latent_heat_vaporization"))
		return m
	})

	register("refractory_brick", fun.Prms{
		&fun.Prm{N: "rho0", V: 2600.0},
		&fun.Prm{N: "cp0", V: 960.0},
		&fun.Prm{N: "k0", V: 1.5},
		&fun.Prm{N: "emissivity", V: 0.75},
		&fun.Prm{N: "melting_point", V: 1750.0},
		&fun.Prm{N: "latent_heat_fusion", V: 4.0e5},
	}, func(get func(string) float64) *Material {
		m := New("refractory_brick", get("rho0"), get("cp0"), get("k0"))
		m.Emissivity = get("emissivity")
		m.SetMeltingPoint(get("melting_point"), get("latent_heat_fusion"))
		return m
	})
}

// FromLibrary builds a fresh copy of the named preset material. It
// returns a chk.Err-built error for unknown presets, matching the
// teacher's mconduct.New / mdl/diffusion.New factory contract.
func FromLibrary(name string) (*Material, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("material %q is not available in the preset library", name)
	}
	return allocator(), nil
}

// PresetNames returns the sorted list of available preset names.
func PresetNames() []string {
	names := make([]string, 0, len(allocators))
	for n := range allocators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

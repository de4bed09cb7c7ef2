// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command furnaced is a minimal foreign-caller simulator: it drives
// the lifecycle state machine the same way the cgo-exported boundary
// package does (initialize, add a torch, run, poll, report the final
// status),
// grounded on the teacher's main.go (flag-based CLI, chk.Panic on bad
// input, io.Pf* banner and progress messages).
package main

import (
	"flag"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/plasmasim/furnace/lifecycle"
	"github.com/plasmasim/furnace/material"
	"github.com/plasmasim/furnace/solver"
	"github.com/plasmasim/furnace/torch"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	height := flag.Float64("height", 1.0, "furnace height (m)")
	radius := flag.Float64("radius", 0.5, "furnace radius (m)")
	nr := flag.Int("nr", 20, "number of radial nodes")
	nz := flag.Int("nz", 20, "number of axial nodes")
	torchPower := flag.Float64("power", 1e5, "torch electrical power (W)")
	timeStep := flag.Float64("dt", 0.05, "time step (s)")
	steps := flag.Int("steps", 200, "number of time steps")
	materialName := flag.String("material", "steel", "material preset name")
	verbose := flag.Bool("v", true, "verbose progress output")
	flag.Parse()

	if *nr < 2 || *nz < 2 {
		chk.Panic("nr and nz must each be >= 2, got nr=%d nz=%d", *nr, *nz)
	}

	io.PfWhite("\nFurnace simulation engine\n\n")
	io.Pf("Copyright 2024 The Plasma Furnace Authors. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	p := solver.Default(*height, *radius, *nr, *nz)
	p.TimeStep = *timeStep
	p.TimeSteps = *steps
	p.TotalTime = float64(*steps) * *timeStep
	p.Verbose = *verbose

	mat, err := material.FromLibrary(*materialName)
	if err != nil {
		chk.Panic("%v", err)
	}
	p.Material = mat

	p.Torches = []torch.Torch{
		torch.New("primary", 0, *height, 0, 0, *torchPower, 0.01, 5000),
	}

	sim := lifecycle.New(p)
	if err := sim.Start(); err != nil {
		chk.Panic("run: %v", err)
	}

	for {
		snap := sim.State()
		io.Pf("progress=%.2f status=%v\n", snap.Progress, snap.Status)
		if snap.Status == lifecycle.Completed || snap.Status == lifecycle.Failed || snap.Status == lifecycle.Cancelled {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	snap := sim.State()
	switch snap.Status {
	case lifecycle.Completed:
		io.PfGreen("simulation completed in %v\n", snap.ExecutionTime)
	case lifecycle.Failed:
		io.PfRed("simulation failed: %v\n", snap.Err)
	case lifecycle.Cancelled:
		io.PfYel("simulation cancelled\n")
	}
	sim.Destroy()
}

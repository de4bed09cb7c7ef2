// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lifecycle implements the furnace simulation's state machine
// and its dedicated background worker, per spec.md §4.E. A Simulation
// owns exactly one mutex guarding its status, progress, error and
// result fields; the worker runs on its own goroutine and publishes
// under that mutex, mirroring the teacher-adjacent concurrency idiom
// of onuse-worldgenerator_go/physics/threaded_physics.go (an
// atomic-flag-guarded background loop with a WaitGroup for join)
// generalised here to the richer NotStarted/Running/Paused/
// Completed/Failed/Cancelled machine spec.md requires.
package lifecycle

import (
	"sync"
	"time"

	"github.com/plasmasim/furnace/diag"
	"github.com/plasmasim/furnace/material"
	"github.com/plasmasim/furnace/mesh"
	"github.com/plasmasim/furnace/solver"
	"github.com/plasmasim/furnace/torch"
)

// Status is one node of the state machine in spec.md §4.E.
type Status int

const (
	NotStarted Status = iota
	Running
	Paused
	Completed
	Failed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// pausePollInterval bounds how often the worker re-checks status while
// Paused (spec.md §4.E: "poll at <= 100 ms cadence").
const pausePollInterval = 100 * time.Millisecond

// Snapshot is the out-record read by get_state (spec.md §6): a
// race-free copy of the fields a caller is allowed to observe.
type Snapshot struct {
	Status        Status
	Progress      float64
	Err           error
	ExecutionTime time.Duration
}

// Simulation is one furnace simulation run: the object the boundary
// layer's singleton handle wraps. The zero value is not usable; build
// one with New.
type Simulation struct {
	mu sync.Mutex

	status          Status
	params          solver.Parameters
	progress        float64
	err             error
	result          *solver.Result
	startTime       time.Time
	executionTime   time.Duration
	cancelRequested bool

	wg sync.WaitGroup
}

// New constructs a Simulation in NotStarted, equivalent to spec.md
// §6's initialize(params) -- the params are accepted but not yet
// validated; AddTorch/SetMaterial may still edit them until Start.
func New(params solver.Parameters) *Simulation {
	return &Simulation{status: NotStarted, params: params}
}

// AddTorch appends a torch, legal only in NotStarted.
func (s *Simulation) AddTorch(t torch.Torch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != NotStarted {
		return wrongState("add_torch: requires NotStarted, got %v", s.status)
	}
	s.params.AddTorch(t)
	return nil
}

// SetMaterial replaces the primary material, legal only in NotStarted.
func (s *Simulation) SetMaterial(m *material.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != NotStarted {
		return wrongState("set_material: requires NotStarted, got %v", s.status)
	}
	s.params.Material = m
	return nil
}

// Start validates the accumulated parameters, builds the mesh, and
// spawns the dedicated worker goroutine, transitioning NotStarted ->
// Running. Parameters are snapshotted (Clone'd) into the worker at
// this point; later mutation of a caller-held Parameters has no
// effect, matching spec.md §4.E.
func (s *Simulation) Start() error {
	s.mu.Lock()
	if s.status != NotStarted {
		s.mu.Unlock()
		return wrongState("run: requires NotStarted, got %v", s.status)
	}
	if err := s.params.Validate(); err != nil {
		s.mu.Unlock()
		return invalidInput("%v", err)
	}
	mesh, err := s.params.BuildMesh()
	if err != nil {
		s.mu.Unlock()
		return invalidInput("%v", err)
	}
	snapshot := s.params.Clone()

	s.status = Running
	s.progress = 0
	s.err = nil
	s.result = nil
	s.startTime = time.Now()
	s.mu.Unlock()

	diag.Transition(snapshot.Verbose, "transition -> Running")

	s.wg.Add(1)
	go s.runWorker(snapshot, mesh)
	return nil
}

// Pause requests a cooperative pause, legal only in Running.
func (s *Simulation) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != Running {
		return wrongState("pause: requires Running, got %v", s.status)
	}
	s.status = Paused
	return nil
}

// Resume lifts a pause, legal only in Paused.
func (s *Simulation) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != Paused {
		return wrongState("resume: requires Paused, got %v", s.status)
	}
	s.status = Running
	return nil
}

// RequestCancellation latches a cancellation request readable from
// Running, Paused, or NotStarted; it is a no-op once a terminal status
// has already been reached.
func (s *Simulation) RequestCancellation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelRequested = true
}

// State returns a race-free snapshot of the simulation's observable
// state (spec.md §6 get_state).
func (s *Simulation) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Status:        s.status,
		Progress:      s.progress,
		Err:           s.err,
		ExecutionTime: s.executionTime,
	}
}

// TemperatureData returns the temperature field at history step,
// legal only once the run has reached a terminal, read-able status
// (Completed or Cancelled -- SPEC_FULL.md §9 resolves the "partial
// Running reads" Open Question by declining to expose them, since
// the result buffers are not yet meaningfully stabilised mid-run).
func (s *Simulation) TemperatureData(step int) ([][]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != Completed && s.status != Cancelled {
		return nil, wrongState("get_temperature_data: requires Completed or Cancelled, got %v", s.status)
	}
	if s.result == nil || step < 0 || step >= len(s.result.History) {
		return nil, invalidInput("get_temperature_data: step %d out of range", step)
	}
	return s.result.History[step], nil
}

// Destroy requests cancellation and joins the worker unboundedly,
// then drops owned resources. After Destroy returns, no further
// worker writes occur (spec.md I7).
func (s *Simulation) Destroy() {
	s.RequestCancellation()
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
}

// runWorker drives one full solver.Run to completion, cancellation, or
// failure. A deferred recover converts any panic into a Failed
// transition with a diagnostic message -- the Go stand-in for the
// Rust reference's "a mutex poisoned by worker panic must be
// recoverable by the caller for error retrieval" contract, since Go's
// sync.Mutex does not itself carry poison state.
func (s *Simulation) runWorker(params solver.Parameters, m *mesh.Mesh) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.status = Failed
			s.err = newError(Internal, "worker panic: %v", r)
			s.executionTime = time.Since(s.startTime)
			s.mu.Unlock()
			diag.Failure(params.Verbose, "worker panic: %v", r)
		}
	}()

	obs := func(progress float64) (cancel bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.progress = progress
		for s.status == Paused && !s.cancelRequested {
			s.mu.Unlock()
			time.Sleep(pausePollInterval)
			s.mu.Lock()
		}
		return s.cancelRequested
	}

	res, err := solver.Run(&params, m, obs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.executionTime = time.Since(s.startTime)
	switch {
	case err != nil:
		s.status = Failed
		s.err = newError(Numerical, "%v", err)
		diag.Failure(params.Verbose, "failed: %v", err)
	case res.Outcome == solver.Cancelled:
		s.status = Cancelled
		s.result = res
		diag.Transition(params.Verbose, "transition -> Cancelled")
	default:
		s.status = Completed
		s.progress = 1.0
		s.result = res
		diag.Success(params.Verbose, "transition -> Completed")
	}
}

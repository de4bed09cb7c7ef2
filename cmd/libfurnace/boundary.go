// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command libfurnace is the foreign/FFI surface of spec.md §4.F: a C
// ABI, exported via cgo and built with `go build -buildmode=c-shared`
// (which requires the exported functions to live in a command package,
// hence this lives under cmd/ rather than as an importable library
// package). It wraps exactly one process-wide lifecycle.Simulation
// handle and performs no physics itself -- every exported function is
// a thin, input-validating adapter over the lifecycle and solver
// packages, matching the function set of
// original_source/backend/src/ffi/bindings.rs (initialize_simulation,
// add_plasma_torch, set_material_properties, run_simulation,
// pause_simulation, resume_simulation, get_simulation_state,
// get_temperature_data, destroy_simulation, get_last_error,
// free_error_message).
package main

/*
#include <stdlib.h>

typedef struct {
	double height;
	double radius;
	int    nr;
	int    nz;
	int    ntheta;
	double initial_temperature;
	double ambient_temperature;
	double convection_coefficient;
	int    enable_convection;
	int    enable_radiation;
	int    enable_phase_changes;
	double total_time;
	double time_step;
	int    time_steps;
} ffi_simulation_parameters;

typedef struct {
	double r_position;
	double z_position;
	double pitch;
	double yaw;
	double power;
	double gas_flow;
	double gas_temperature;
} ffi_plasma_torch;

typedef struct {
	const char *name;
	double density;
	double moisture_content;
	double specific_heat;
	double thermal_conductivity;
	double emissivity;
	double melting_point;
	double latent_heat_fusion;
	double vaporization_point;
	double latent_heat_vaporization;
} ffi_material_properties;

typedef struct {
	int    status;
	float  progress;
	const char *error_message;
	double execution_time;
} ffi_simulation_state;
*/
import "C"

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unicode/utf8"
	"unsafe"

	"github.com/plasmasim/furnace/lifecycle"
	"github.com/plasmasim/furnace/material"
	"github.com/plasmasim/furnace/solver"
	"github.com/plasmasim/furnace/torch"
)

// handleMu guards the process-wide singleton required by spec.md §5's
// "Global process-wide state" concession. A true per-OS-thread error
// slot is not implementable portably in cgo (goroutines are not
// pinned to OS threads between calls), so -- consistent with the
// single-simulation-handle concession already made at this boundary
// -- lastError below is one global, mutex-guarded slot rather than
// thread-local; see DESIGN.md.
var (
	handleMu sync.Mutex
	sim      *lifecycle.Simulation

	errMu     sync.Mutex
	lastError string

	nextTorchID uint64
)

func setLastError(format string, args ...interface{}) C.int {
	errMu.Lock()
	lastError = fmt.Sprintf(format, args...)
	errMu.Unlock()
	return -1
}

func clearLastError() {
	errMu.Lock()
	lastError = ""
	errMu.Unlock()
}

// initialize_simulation transitions none->NotStarted, rejecting if a
// handle already exists (spec.md §6).
//
//export initialize_simulation
func initialize_simulation(params *C.ffi_simulation_parameters) C.int {
	if params == nil {
		return setLastError("initialize_simulation: null parameters")
	}
	handleMu.Lock()
	defer handleMu.Unlock()
	if sim != nil {
		return setLastError("initialize_simulation: a simulation handle already exists")
	}

	p := solver.Default(float64(params.height), float64(params.radius), int(params.nr), int(params.nz))
	if params.ntheta > 0 {
		p.Ntheta = int(params.ntheta)
	}
	p.InitialTemperature = float64(params.initial_temperature)
	p.AmbientTemperature = float64(params.ambient_temperature)
	p.ConvectionCoeff = float64(params.convection_coefficient)
	p.EnableConvection = params.enable_convection != 0
	p.EnableRadiation = params.enable_radiation != 0
	p.EnablePhaseChanges = params.enable_phase_changes != 0
	p.TotalTime = float64(params.total_time)
	p.TimeStep = float64(params.time_step)
	p.TimeSteps = int(params.time_steps)

	sim = lifecycle.New(p)
	clearLastError()
	return 0
}

// add_plasma_torch is only legal in NotStarted (enforced inside
// lifecycle.Simulation.AddTorch).
//
//export add_plasma_torch
func add_plasma_torch(t *C.ffi_plasma_torch) C.int {
	if t == nil {
		return setLastError("add_plasma_torch: null torch")
	}
	handleMu.Lock()
	s := sim
	handleMu.Unlock()
	if s == nil {
		return setLastError("add_plasma_torch: no simulation initialized")
	}

	id := fmt.Sprintf("torch-%d", atomic.AddUint64(&nextTorchID, 1))
	newTorch := torch.New(id,
		float64(t.r_position), float64(t.z_position),
		float64(t.pitch), float64(t.yaw),
		float64(t.power), float64(t.gas_flow), float64(t.gas_temperature))

	if err := s.AddTorch(newTorch); err != nil {
		return setLastError("add_plasma_torch: %v", err)
	}
	clearLastError()
	return 0
}

// set_material_properties replaces the primary material, only legal
// in NotStarted.
//
//export set_material_properties
func set_material_properties(m *C.ffi_material_properties) C.int {
	if m == nil {
		return setLastError("set_material_properties: null material")
	}
	handleMu.Lock()
	s := sim
	handleMu.Unlock()
	if s == nil {
		return setLastError("set_material_properties: no simulation initialized")
	}

	name := "unnamed"
	if m.name != nil {
		name = C.GoString(m.name)
	}
	mat := material.New(name, float64(m.density), float64(m.specific_heat), float64(m.thermal_conductivity))
	mat.Moisture = float64(m.moisture_content)
	mat.Emissivity = float64(m.emissivity)
	mat.SetMeltingPoint(float64(m.melting_point), float64(m.latent_heat_fusion))
	mat.SetVaporizationPoint(float64(m.vaporization_point), float64(m.latent_heat_vaporization))

	if err := s.SetMaterial(mat); err != nil {
		return setLastError("set_material_properties: %v", err)
	}
	clearLastError()
	return 0
}

// run_simulation transitions NotStarted->Running, spawning the
// background worker.
//
//export run_simulation
func run_simulation() C.int {
	handleMu.Lock()
	s := sim
	handleMu.Unlock()
	if s == nil {
		return setLastError("run_simulation: no simulation initialized")
	}
	if err := s.Start(); err != nil {
		return setLastError("run_simulation: %v", err)
	}
	clearLastError()
	return 0
}

//export pause_simulation
func pause_simulation() C.int {
	handleMu.Lock()
	s := sim
	handleMu.Unlock()
	if s == nil {
		return setLastError("pause_simulation: no simulation initialized")
	}
	if err := s.Pause(); err != nil {
		return setLastError("pause_simulation: %v", err)
	}
	clearLastError()
	return 0
}

//export resume_simulation
func resume_simulation() C.int {
	handleMu.Lock()
	s := sim
	handleMu.Unlock()
	if s == nil {
		return setLastError("resume_simulation: no simulation initialized")
	}
	if err := s.Resume(); err != nil {
		return setLastError("resume_simulation: %v", err)
	}
	clearLastError()
	return 0
}

// get_simulation_state fills the flat {status,progress,error,exec_time}
// out-record spec.md §6 prescribes. The returned error_message pointer,
// when non-null, is an owned string the caller must release with
// free_error_message.
//
//export get_simulation_state
func get_simulation_state(out *C.ffi_simulation_state) C.int {
	if out == nil {
		return setLastError("get_simulation_state: null output record")
	}
	handleMu.Lock()
	s := sim
	handleMu.Unlock()
	if s == nil {
		return setLastError("get_simulation_state: no simulation initialized")
	}

	snap := s.State()
	out.status = C.int(snap.Status)
	out.progress = C.float(snap.Progress)
	out.execution_time = C.double(snap.ExecutionTime.Seconds())
	if snap.Err != nil {
		out.error_message = C.CString(snap.Err.Error())
	} else {
		out.error_message = nil
	}
	clearLastError()
	return 0
}

// get_temperature_data fills buffer (of buffer_size float32 slots) with
// the Nr*Nz temperature field at time_step, in row-major (i outer, j
// inner) order, returning the element count or a negative error.
//
//export get_temperature_data
func get_temperature_data(timeStep C.int, buffer *C.float, bufferSize C.size_t) C.int {
	if buffer == nil {
		return setLastError("get_temperature_data: null buffer")
	}
	handleMu.Lock()
	s := sim
	handleMu.Unlock()
	if s == nil {
		return setLastError("get_temperature_data: no simulation initialized")
	}

	field, err := s.TemperatureData(int(timeStep))
	if err != nil {
		return setLastError("get_temperature_data: %v", err)
	}
	nr := len(field)
	nz := 0
	if nr > 0 {
		nz = len(field[0])
	}
	if int(bufferSize) < nr*nz {
		return -2
	}

	out := unsafe.Slice(buffer, nr*nz)
	for i := 0; i < nr; i++ {
		for j := 0; j < nz; j++ {
			out[i*nz+j] = C.float(field[i][j])
		}
	}
	clearLastError()
	return C.int(nr * nz)
}

// destroy_simulation cancels and joins the worker, then clears the
// singleton handle, per spec.md I7.
//
//export destroy_simulation
func destroy_simulation() C.int {
	handleMu.Lock()
	s := sim
	sim = nil
	handleMu.Unlock()
	if s != nil {
		s.Destroy()
	}
	clearLastError()
	return 0
}

// get_last_error returns an owned copy of the most recent boundary or
// core error message, or an owned empty-error string when none is
// set (matching the reference's "no error" sentinel string).
//
//export get_last_error
func get_last_error() *C.char {
	errMu.Lock()
	msg := lastError
	errMu.Unlock()
	if msg == "" {
		msg = "no error"
	}
	return C.CString(msg)
}

// free_error_message releases a string previously handed out by
// get_last_error or get_simulation_state's error_message field.
//
//export free_error_message
func free_error_message(message *C.char) {
	if message != nil {
		C.free(unsafe.Pointer(message))
	}
}

// SubmitAuxiliaryJSON is the one generic entry point the out-of-scope
// formula/metrics/export/parametric/validation collaborators (spec.md
// §1 Non-goals) would bind to: an opaque JSON-in, JSON-out channel.
// Its body is intentionally a stub -- those collaborators are out of
// scope -- but the shape (UTF-8 validation, owned-string output,
// per-channel routing) is real, matching spec.md §6's "return-null
// indicates the error channel holds a message" contract.
//
//export SubmitAuxiliaryJSON
func SubmitAuxiliaryJSON(channel *C.char, payload *C.char) *C.char {
	if channel == nil || payload == nil {
		setLastError("SubmitAuxiliaryJSON: null channel or payload")
		return nil
	}
	ch := C.GoString(channel)
	if !utf8ValidCString(payload) {
		setLastError("SubmitAuxiliaryJSON: payload is not valid UTF-8")
		return nil
	}
	clearLastError()
	return C.CString(fmt.Sprintf(`{"error":"not implemented for channel %q"}`, ch))
}

func utf8ValidCString(s *C.char) bool {
	return utf8.ValidString(C.GoString(s))
}

// main is unused: this package is built as a C shared library, never
// run directly, but -buildmode=c-shared still requires package main.
func main() {}

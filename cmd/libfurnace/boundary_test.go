// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"testing"
	"time"
	"unsafe"

	"github.com/cpmech/gosl/chk"
)

func resetSingleton() {
	destroy_simulation()
}

// scenario 6: run() on an uninitialized handle is a failure.
func TestRunOnUninitializedFails(tst *testing.T) {
	chk.PrintTitle("boundary: run on uninitialized handle")
	resetSingleton()
	if rc := run_simulation(); rc == 0 {
		tst.Errorf("expected run_simulation to fail with no handle initialized")
	}
	msg := get_last_error()
	if C.GoString(msg) == "" {
		tst.Errorf("expected a non-empty last-error message")
	}
	free_error_message(msg)
}

func TestDoubleInitializeFails(tst *testing.T) {
	resetSingleton()
	defer resetSingleton()

	params := C.ffi_simulation_parameters{
		height: 1, radius: 0.5, nr: 5, nz: 5, ntheta: 12,
		initial_temperature: 25, ambient_temperature: 25,
		convection_coefficient: 10,
		enable_radiation:       1,
		total_time:             0.1, time_step: 0.01, time_steps: 10,
	}
	if rc := initialize_simulation(&params); rc != 0 {
		tst.Fatalf("expected first initialize_simulation to succeed, got %d", rc)
	}
	if rc := initialize_simulation(&params); rc == 0 {
		tst.Errorf("expected second initialize_simulation to fail while a handle exists")
	}
}

// I8: get_temperature_data(step=0) round-trips the initial condition
// exactly, exercised end to end through the cgo boundary.
func TestTemperatureDataRoundTripsInitialCondition(tst *testing.T) {
	chk.PrintTitle("boundary: temperature round trip")
	resetSingleton()
	defer resetSingleton()

	params := C.ffi_simulation_parameters{
		height: 1, radius: 0.5, nr: 4, nz: 4, ntheta: 12,
		initial_temperature: 42, ambient_temperature: 25,
		convection_coefficient: 10,
		enable_radiation:       1,
		total_time:             0.05, time_step: 0.01, time_steps: 5,
	}
	if rc := initialize_simulation(&params); rc != 0 {
		tst.Fatalf("initialize_simulation: %d", rc)
	}

	torch := C.ffi_plasma_torch{
		r_position: 0, z_position: 1,
		pitch: 0, yaw: 0,
		power: 1e4, gas_flow: 0.01, gas_temperature: 5000,
	}
	if rc := add_plasma_torch(&torch); rc != 0 {
		tst.Fatalf("add_plasma_torch: %d", rc)
	}

	if rc := run_simulation(); rc != 0 {
		tst.Fatalf("run_simulation: %d", rc)
	}

	var state C.ffi_simulation_state
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if rc := get_simulation_state(&state); rc != 0 {
			tst.Fatalf("get_simulation_state: %d", rc)
		}
		if state.status == 3 { // Completed
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if state.status != 3 {
		tst.Fatalf("timed out waiting for Completed, last status=%d", state.status)
	}

	nr, nz := 4, 4
	buf := make([]C.float, nr*nz)
	n := get_temperature_data(0, (*C.float)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)))
	if int(n) != nr*nz {
		tst.Fatalf("expected %d elements, got %d", nr*nz, n)
	}
	for i, v := range buf {
		if float64(v) != 42 {
			tst.Errorf("cell %d: expected 42, got %g", i, float64(v))
		}
	}
}

func TestSubmitAuxiliaryJSONStub(tst *testing.T) {
	channel := C.CString("metrics")
	payload := C.CString(`{"noop":true}`)
	defer C.free(unsafe.Pointer(channel))
	defer C.free(unsafe.Pointer(payload))

	out := SubmitAuxiliaryJSON(channel, payload)
	if out == nil {
		tst.Fatalf("expected a non-nil response")
	}
	defer free_error_message(out)
	if got := C.GoString(out); got == "" {
		tst.Errorf("expected a non-empty stub JSON response")
	}
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out writes simulation results: snapshot movies of the global field
// and receiver traces. The writers sit behind narrow interfaces; the time
// integrator reaches them only through a callback and never touches the
// HDF5 runtime directly.
package out

// SnapshotWriter stores one frame of the global field per call
type SnapshotWriter interface {
	WriteFrame(step int, t float64, u [][]float64) error
	Close() error
}

// TraceWriter stores the accumulated samples of one receiver per call
type TraceWriter interface {
	WriteTrace(name string, t []float64, u [][]float64) error
	Close() error
}

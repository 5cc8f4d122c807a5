// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seis

import (
	"github.com/cpmech/gosl/la"
)

// Receiver samples the primary field at a fixed physical location every step
// and accumulates the trace in memory until an output writer flushes it
type Receiver struct {
	Name string
	X    []float64 // physical location

	cell int
	xi   []float64 // natural coordinates within the owning cell

	T []float64   // sample times
	U [][]float64 // samples [nsteps][ncomp]
}

// NewReceiver returns a receiver at the physical point x
func NewReceiver(name string, x []float64) *Receiver {
	return &Receiver{Name: name, X: x, cell: -1}
}

// Cell returns the owning cell, or -1 before localization
func (o *Receiver) Cell() int {
	return o.cell
}

// RefCoords returns the cached natural coordinates within the owning cell
func (o *Receiver) RefCoords() []float64 {
	return o.xi
}

// Record appends one sample to the trace
func (o *Receiver) Record(t float64, vals []float64) {
	o.T = append(o.T, t)
	v := make([]float64, len(vals))
	copy(v, vals)
	o.U = append(o.U, v)
}

// Trace returns the accumulated samples as a [ncomp][nsteps] matrix alongside
// the time vector
func (o *Receiver) Trace() (t []float64, u [][]float64) {
	if len(o.U) == 0 {
		return o.T, nil
	}
	u = la.MatAlloc(len(o.U[0]), len(o.U))
	for k, vals := range o.U {
		for ic, v := range vals {
			u[ic][k] = v
		}
	}
	return o.T, u
}

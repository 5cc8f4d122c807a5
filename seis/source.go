// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seis

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Source is a point source: a time function fired along a direction vector at
// a fixed physical location. It is attached to the kernel of the owning cell
// after localization.
type Source struct {
	Name  string
	X     []float64 // physical location
	Ncomp int       // number of field components
	Dir   []float64 // direction vector, expected unit length, not renormalized
	Stf   fun.Func  // source time function

	cell int
	xi   []float64 // natural coordinates within the owning cell
}

// NewSource validates and returns a point source. For scalar fields dir may
// be nil; for vector fields it must have ncomp entries.
func NewSource(name string, x []float64, ncomp int, dir []float64, stf fun.Func) (*Source, error) {
	if ncomp < 1 {
		return nil, chk.Err("source %q: need at least one component; got %d", name, ncomp)
	}
	if ncomp == 1 {
		if dir == nil {
			dir = []float64{1}
		}
	}
	if len(dir) != ncomp {
		return nil, chk.Err("source %q: direction has %d entries; need %d", name, len(dir), ncomp)
	}
	return &Source{Name: name, X: x, Ncomp: ncomp, Dir: dir, Stf: stf, cell: -1}, nil
}

// Cell returns the owning cell, or -1 before localization
func (o *Source) Cell() int {
	return o.cell
}

// RefCoords returns the cached natural coordinates within the owning cell
func (o *Source) RefCoords() []float64 {
	return o.xi
}

// Fire evaluates the time function at t and scales it by the direction
func (o *Source) Fire(t float64, step int) []float64 {
	amp := o.Stf.F(t, nil)
	vals := make([]float64, o.Ncomp)
	for ic := range vals {
		vals[ic] = amp * o.Dir[ic]
	}
	return vals
}

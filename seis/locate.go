// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seis

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/seismech/gosem/fem"
)

// LOCTOL is the natural-coordinate tolerance of the point-in-cell test
const LOCTOL = 1e-8

// locate runs the two localization passes over the cells of dom: first the
// cells are offered the point and the owner with the lowest id claims it,
// then the owner computes and returns the natural coordinates. found is false
// when no cell contains x.
func locate(dom *fem.Domain, x []float64) (cell int, xi []float64, found bool) {

	// ownership count
	r := make([]float64, 3)
	owner := -1
	for c, core := range dom.Cores {
		inside, err := core.Shape().CheckHull(r, x, core.Coords(), LOCTOL)
		if err != nil || !inside {
			continue
		}
		owner = c
		break
	}
	if owner < 0 {
		return -1, nil, false
	}

	// finalize on the owner
	core := dom.Cores[owner]
	if err := core.Shape().InvMap(r, x, core.Coords()); err != nil {
		return -1, nil, false
	}
	xi = make([]float64, core.NumDim())
	copy(xi, r)
	return owner, xi, true
}

// claim resolves cross-rank ownership of a point: keep reports whether this
// rank retains it (the lowest rank that found it) and anywhere whether any
// rank found it at all
func claim(found bool) (keep, anywhere bool) {
	if !mpi.IsOn() {
		return found, found
	}
	claims := make([]float64, mpi.Size())
	w := make([]float64, mpi.Size())
	if found {
		claims[mpi.Rank()] = 1
	}
	mpi.AllReduceSum(claims, w)
	anywhere = false
	for _, c := range claims {
		if c > 0 {
			anywhere = true
			break
		}
	}
	if !found {
		return false, anywhere
	}
	for r := 0; r < mpi.Rank(); r++ {
		if claims[r] > 0 {
			return false, anywhere
		}
	}
	return true, anywhere
}

// AttachSources localizes each source and attaches it to the kernel of its
// owning cell. Sources outside the mesh are dropped with a warning. Returns
// the number of sources attached on this rank.
func AttachSources(dom *fem.Domain, srcs []*Source) (n int) {
	for _, s := range srcs {
		cell, xi, found := locate(dom, s.X)
		keep, anywhere := claim(found)
		if !anywhere {
			io.Pfred("warning: source %q at %v lies outside the mesh; dropped\n", s.Name, s.X)
			continue
		}
		if !keep {
			continue
		}
		s.cell, s.xi = cell, xi
		dom.AttachSource(cell, s)
		n++
	}
	return
}

// LocateReceivers localizes each receiver and returns those owned by this
// rank. Receivers outside the mesh are dropped with a warning.
func LocateReceivers(dom *fem.Domain, recs []*Receiver) (placed []*Receiver) {
	for _, r := range recs {
		cell, xi, found := locate(dom, r.X)
		keep, anywhere := claim(found)
		if !anywhere {
			io.Pfred("warning: receiver %q at %v lies outside the mesh; dropped\n", r.Name, r.X)
			continue
		}
		if !keep {
			continue
		}
		r.cell, r.xi = cell, xi
		placed = append(placed, r)
	}
	return
}

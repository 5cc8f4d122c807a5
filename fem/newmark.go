// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/seismech/gosem/msh"
)

// CFLCOEF is the stability coefficient of the explicit Newmark scheme
const CFLCOEF = 1.0

// Receiver samples the primary field at a fixed in-cell point every step
type Receiver interface {
	Cell() int
	RefCoords() []float64
	Record(t float64, vals []float64)
}

// Solver advances the wave state with the explicit Newmark scheme (gamma=1/2,
// beta=0): velocities take the average of the old and new accelerations,
// displacements the full new-acceleration correction
type Solver struct {

	// configuration
	Dom       *Domain
	Dt        float64
	Duration  float64
	Sentinel  float64 // |u| beyond which the run is declared blown up
	StrictCFL bool    // treat a CFL violation as fatal instead of a warning
	Verbose   bool

	// state
	T    float64
	Step int
	U    *msh.Field // displacement (or pressure)
	V    *msh.Field // velocity
	A    *msh.Field // acceleration
	Ah   *msh.Field // previous acceleration

	// observers
	Recs      []Receiver
	Snap      func(step int, t float64, u [][]float64) error
	SnapEvery int
}

// NewSolver allocates the field vectors of a solver over dom
func NewSolver(dom *Domain, dt, duration float64) *Solver {
	return &Solver{
		Dom: dom, Dt: dt, Duration: duration, Sentinel: 5,
		U: dom.Sec.NewField(), V: dom.Sec.NewField(),
		A: dom.Sec.NewField(), Ah: dom.Sec.NewField(),
	}
}

// SetDisplacement inserts per-cell nodal values into the global displacement
func (o *Solver) SetDisplacement(cell int, vals [][]float64) {
	o.Dom.Sec.ClosureSet(o.U.Glob, cell, msh.Insert, vals)
}

// CheckCFL compares the time step against the domain stability limit
func (o *Solver) CheckCFL() error {
	limit := CFLCOEF * o.Dom.DtMax
	if math.Abs(o.Dt) > limit {
		if o.StrictCFL {
			return chk.Err("time step %g violates the stability limit %g", o.Dt, limit)
		}
		io.Pfred("warning: time step %g violates the stability limit %g\n", o.Dt, limit)
	}
	return nil
}

// Run checks the time step and advances until t reaches the duration
func (o *Solver) Run() (err error) {
	if err = o.CheckCFL(); err != nil {
		return
	}
	for o.T < o.Duration {
		if err = o.Advance(); err != nil {
			return
		}
	}
	return
}

// Advance performs one time step: pull, element kernels, assemble, pin,
// mass solve, Newmark update, observers
func (o *Solver) Advance() (err error) {
	dom := o.Dom

	// pull displacements, zero accelerations
	o.U.GlobalToLocal()
	o.A.ZeroLocal()

	// element kernels: a_e = f - K u
	for c, k := range dom.Kernels {
		ku := k.ComputeStiffnessTerm(o.U.Loc[c])
		f := k.ComputeSourceTerm(o.T, o.Step)
		for ic := range f {
			for p := range f[ic] {
				f[ic][p] -= ku[ic][p]
			}
		}
		o.A.AddLocal(c, f)
	}

	// assemble, then pin and mass-solve on the fully summed residual
	o.A.LocalToGlobal()
	for ic := range o.A.Glob {
		a := o.A.Glob[ic]
		if dom.Pinned != nil {
			for i, on := range dom.Pinned {
				if on {
					a[i] = 0
				}
			}
		}
		for i := range a {
			a[i] *= dom.Mi[i]
		}
	}

	// Newmark update: v, then u, then history
	for ic := range o.U.Glob {
		u, v, a, ah := o.U.Glob[ic], o.V.Glob[ic], o.A.Glob[ic], o.Ah.Glob[ic]
		for i := range u {
			v[i] += 0.5 * o.Dt * (a[i] + ah[i])
			u[i] += o.Dt*v[i] + 0.5*o.Dt*o.Dt*a[i]
			ah[i] = a[i]
		}
	}

	// blow-up sentinel
	for ic := range o.U.Glob {
		for i, ui := range o.U.Glob[ic] {
			if math.Abs(ui) > o.Sentinel {
				return chk.Err("numerical blow-up at t=%g: |u|=%g > %g at dof %d; reduce the time step",
					o.T, math.Abs(ui), o.Sentinel, i)
			}
		}
	}

	// observers
	for _, r := range o.Recs {
		o.sample(r)
	}
	if o.Snap != nil && o.SnapEvery > 0 && o.Step%o.SnapEvery == 0 {
		if err := o.Snap(o.Step, o.T, o.U.Glob); err != nil {
			io.Pfred("warning: snapshot at step %d failed: %v\n", o.Step, err)
		}
	}

	if o.Verbose && o.Step%100 == 0 {
		io.Pf("step %4d  t=%g\n", o.Step, o.T)
	}
	o.T += o.Dt
	o.Step++
	return
}

// sample interpolates the displacement at the receiver point and records it
func (o *Solver) sample(r Receiver) {
	c := r.Cell()
	ul := o.Dom.Sec.ClosureGet(o.U.Glob, c)
	phi := o.Dom.Cores[c].Interp(r.RefCoords())
	vals := make([]float64, o.Dom.Ncomp)
	for ic := range vals {
		for p, lp := range phi {
			vals[ic] += lp * ul[ic][p]
		}
	}
	r.Record(o.T, vals)
}

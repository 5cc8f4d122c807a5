// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"gonum.org/v1/hdf5"

	"github.com/cpmech/gosl/chk"
)

// Traces writes receiver traces into an HDF5 file: one group per receiver
// holding the sample matrix "data" [ncomp][nsteps] and the vector "time"
type Traces struct {
	f *hdf5.File
}

// NewTraces creates the trace file
func NewTraces(fn string) (o *Traces, err error) {
	f, err := hdf5.CreateFile(fn, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, chk.Err("cannot create trace file %q: %v", fn, err)
	}
	return &Traces{f: f}, nil
}

// WriteTrace stores the samples of one receiver
func (o *Traces) WriteTrace(name string, t []float64, u [][]float64) (err error) {
	if len(u) == 0 || len(t) == 0 {
		return chk.Err("receiver %q recorded no samples", name)
	}
	g, err := o.f.CreateGroup(name)
	if err != nil {
		return chk.Err("cannot create group for receiver %q: %v", name, err)
	}
	defer g.Close()

	flat := make([]float64, 0, len(u)*len(u[0]))
	for _, comp := range u {
		flat = append(flat, comp...)
	}
	ds, err := hdf5.CreateSimpleDataspace([]uint{uint(len(u)), uint(len(u[0]))}, nil)
	if err != nil {
		return chk.Err("receiver %q: cannot create the data dataspace: %v", name, err)
	}
	d, err := g.CreateDataset("data", hdf5.T_NATIVE_DOUBLE, ds)
	if err != nil {
		ds.Close()
		return chk.Err("receiver %q: cannot create the data dataset: %v", name, err)
	}
	err = d.Write(&flat)
	d.Close()
	ds.Close()
	if err != nil {
		return chk.Err("receiver %q: cannot write the samples: %v", name, err)
	}

	ts, err := hdf5.CreateSimpleDataspace([]uint{uint(len(t))}, nil)
	if err != nil {
		return chk.Err("receiver %q: cannot create the time dataspace: %v", name, err)
	}
	td, err := g.CreateDataset("time", hdf5.T_NATIVE_DOUBLE, ts)
	if err != nil {
		ts.Close()
		return chk.Err("receiver %q: cannot create the time dataset: %v", name, err)
	}
	err = td.Write(&t)
	td.Close()
	ts.Close()
	if err != nil {
		return chk.Err("receiver %q: cannot write the time vector: %v", name, err)
	}
	return
}

// Close closes the file
func (o *Traces) Close() error {
	return o.f.Close()
}

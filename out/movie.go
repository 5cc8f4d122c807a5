// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"gonum.org/v1/hdf5"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Movie writes snapshot frames of one field into an HDF5 file: one dataset
// per frame named <field>-<step>, shaped [ncomp][ndofs], plus the vector of
// frame times written at Close
type Movie struct {
	Field string
	f     *hdf5.File
	times []float64
}

// NewMovie creates the movie file
func NewMovie(fn, field string) (o *Movie, err error) {
	f, err := hdf5.CreateFile(fn, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, chk.Err("cannot create movie file %q: %v", fn, err)
	}
	return &Movie{Field: field, f: f}, nil
}

// WriteFrame stores one frame. The signature matches the snapshot callback
// of the time integrator.
func (o *Movie) WriteFrame(step int, t float64, u [][]float64) (err error) {
	if len(u) == 0 {
		return chk.Err("frame at step %d is empty", step)
	}
	flat := make([]float64, 0, len(u)*len(u[0]))
	for _, comp := range u {
		flat = append(flat, comp...)
	}
	ds, err := hdf5.CreateSimpleDataspace([]uint{uint(len(u)), uint(len(u[0]))}, nil)
	if err != nil {
		return chk.Err("cannot create dataspace for step %d: %v", step, err)
	}
	defer ds.Close()
	d, err := o.f.CreateDataset(io.Sf("%s-%06d", o.Field, step), hdf5.T_NATIVE_DOUBLE, ds)
	if err != nil {
		return chk.Err("cannot create frame dataset for step %d: %v", step, err)
	}
	defer d.Close()
	if err = d.Write(&flat); err != nil {
		return chk.Err("cannot write frame at step %d: %v", step, err)
	}
	o.times = append(o.times, t)
	return
}

// Close writes the time vector and closes the file
func (o *Movie) Close() (err error) {
	if len(o.times) > 0 {
		ds, err := hdf5.CreateSimpleDataspace([]uint{uint(len(o.times))}, nil)
		if err != nil {
			return chk.Err("cannot create the time dataspace: %v", err)
		}
		d, err := o.f.CreateDataset("time", hdf5.T_NATIVE_DOUBLE, ds)
		if err != nil {
			ds.Close()
			return chk.Err("cannot create the time dataset: %v", err)
		}
		err = d.Write(&o.times)
		d.Close()
		ds.Close()
		if err != nil {
			return chk.Err("cannot write the time vector: %v", err)
		}
	}
	return o.f.Close()
}

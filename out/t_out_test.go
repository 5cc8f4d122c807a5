// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/hdf5"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// readBack loads a float64 dataset by path
func readBack(tst *testing.T, fn, dset string) (dims []uint, vals []float64) {
	f, err := hdf5.OpenFile(fn, hdf5.F_ACC_RDONLY)
	if err != nil {
		tst.Fatalf("cannot open %q: %v", fn, err)
	}
	defer f.Close()
	d, err := f.OpenDataset(dset)
	if err != nil {
		tst.Fatalf("cannot open dataset %q: %v", dset, err)
	}
	defer d.Close()
	dims, _, err = d.Space().SimpleExtentDims()
	if err != nil {
		tst.Fatalf("cannot read extent of %q: %v", dset, err)
	}
	n := uint(1)
	for _, dim := range dims {
		n *= dim
	}
	vals = make([]float64, n)
	if err = d.Read(&vals); err != nil {
		tst.Fatalf("cannot read dataset %q: %v", dset, err)
	}
	return
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. snapshot movie")

	fn := filepath.Join(os.TempDir(), "gosem_movie.h5")
	defer os.Remove(fn)

	mov, err := NewMovie(fn, "u")
	if err != nil {
		tst.Errorf("NewMovie failed: %v", err)
		return
	}
	var sw SnapshotWriter = mov
	u0 := [][]float64{{1, 2, 3, 4}}
	u1 := [][]float64{{5, 6, 7, 8}}
	if err := sw.WriteFrame(0, 0.0, u0); err != nil {
		tst.Errorf("WriteFrame failed: %v", err)
		return
	}
	if err := sw.WriteFrame(10, 0.1, u1); err != nil {
		tst.Errorf("WriteFrame failed: %v", err)
		return
	}
	if err := sw.Close(); err != nil {
		tst.Errorf("Close failed: %v", err)
		return
	}

	dims, vals := readBack(tst, fn, "u-000000")
	chk.IntAssert(int(dims[0]), 1)
	chk.IntAssert(int(dims[1]), 4)
	chk.Vector(tst, "frame 0", 1e-15, vals, []float64{1, 2, 3, 4})
	_, vals = readBack(tst, fn, "u-000010")
	chk.Vector(tst, "frame 10", 1e-15, vals, []float64{5, 6, 7, 8})
	_, vals = readBack(tst, fn, "time")
	chk.Vector(tst, "times", 1e-15, vals, []float64{0.0, 0.1})
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. receiver traces")

	fn := filepath.Join(os.TempDir(), "gosem_traces.h5")
	defer os.Remove(fn)

	trw, err := NewTraces(fn)
	if err != nil {
		tst.Errorf("NewTraces failed: %v", err)
		return
	}
	var tw TraceWriter = trw
	t := []float64{0.0, 0.1, 0.2}
	u := [][]float64{{1, 2, 3}, {4, 5, 6}}
	if err := tw.WriteTrace("station-a", t, u); err != nil {
		tst.Errorf("WriteTrace failed: %v", err)
		return
	}

	// empty traces are rejected
	if err := tw.WriteTrace("station-b", nil, nil); err == nil {
		tst.Errorf("empty trace must fail")
		return
	}
	if err := tw.Close(); err != nil {
		tst.Errorf("Close failed: %v", err)
		return
	}

	dims, vals := readBack(tst, fn, "station-a/data")
	chk.IntAssert(int(dims[0]), 2)
	chk.IntAssert(int(dims[1]), 3)
	chk.Vector(tst, "data", 1e-15, vals, []float64{1, 2, 3, 4, 5, 6})
	_, vals = readBack(tst, fn, "station-a/time")
	chk.Vector(tst, "time", 1e-15, vals, t)
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"gonum.org/v1/hdf5"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/seismech/gosem/seis"
)

// The catalog holds one group of flat records per source. The Go HDF5
// binding exposes attributes
// on datasets only, so every record is a small named dataset instead:
//
//	/type                       "ricker" or "file"
//	/<name>/location            [ndim]
//	/<name>/num-components      [1]
//	/<name>/ricker-amplitude    [1]        (ricker)
//	/<name>/ricker-center-freq  [1]        (ricker)
//	/<name>/ricker-time-delay   [1]        (ricker)
//	/<name>/ricker-direction    [ncomp]    (ricker, ncomp > 1)
//	/<name>/sampling-interval   [1]        (file)
//	/<name>/samples             [nsamples] (file)

// writeFloats stores a float64 dataset under g
func writeFloats(g *hdf5.Group, name string, vals []float64) (err error) {
	ds, err := hdf5.CreateSimpleDataspace([]uint{uint(len(vals))}, nil)
	if err != nil {
		return chk.Err("cannot create dataspace for %q: %v", name, err)
	}
	defer ds.Close()
	d, err := g.CreateDataset(name, hdf5.T_NATIVE_DOUBLE, ds)
	if err != nil {
		return chk.Err("cannot create dataset %q: %v", name, err)
	}
	defer d.Close()
	return d.Write(&vals)
}

// readFloats loads a float64 dataset of any length from g
func readFloats(g *hdf5.Group, name string) (vals []float64, err error) {
	d, err := g.OpenDataset(name)
	if err != nil {
		return nil, chk.Err("cannot read record %q: %v", name, err)
	}
	defer d.Close()
	dims, _, err := d.Space().SimpleExtentDims()
	if err != nil {
		return nil, chk.Err("cannot read the extent of record %q: %v", name, err)
	}
	n := uint(1)
	for _, dim := range dims {
		n *= dim
	}
	vals = make([]float64, n)
	if err = d.Read(&vals); err != nil {
		return nil, chk.Err("cannot read record %q: %v", name, err)
	}
	return
}

// WriteSourceCatalog stores the sources of one type into an HDF5 catalog
func WriteSourceCatalog(fn, typ string, srcs []*seis.Source) (err error) {
	if typ != "ricker" && typ != "file" {
		return chk.Err("source type %q not recognized; possibilities are: ricker, file", typ)
	}
	f, err := hdf5.CreateFile(fn, hdf5.F_ACC_TRUNC)
	if err != nil {
		return chk.Err("cannot create catalog %q: %v", fn, err)
	}
	defer f.Close()

	ds, err := hdf5.CreateSimpleDataspace([]uint{1}, nil)
	if err != nil {
		return err
	}
	td, err := f.CreateDataset("type", hdf5.T_GO_STRING, ds)
	ds.Close()
	if err != nil {
		return chk.Err("cannot store the catalog type: %v", err)
	}
	err = td.Write(&typ)
	td.Close()
	if err != nil {
		return chk.Err("cannot store the catalog type: %v", err)
	}

	for _, s := range srcs {
		g, err := f.CreateGroup(s.Name)
		if err != nil {
			return chk.Err("cannot create group for source %q: %v", s.Name, err)
		}
		if err = writeFloats(g, "location", s.X); err != nil {
			g.Close()
			return err
		}
		if err = writeFloats(g, "num-components", []float64{float64(s.Ncomp)}); err != nil {
			g.Close()
			return err
		}
		switch stf := s.Stf.(type) {
		case *seis.Ricker:
			if typ != "ricker" {
				g.Close()
				return chk.Err("source %q carries a ricker wavelet in a %q catalog", s.Name, typ)
			}
			err = writeFloats(g, "ricker-amplitude", []float64{stf.A})
			if err == nil {
				err = writeFloats(g, "ricker-center-freq", []float64{stf.Nu})
			}
			if err == nil {
				err = writeFloats(g, "ricker-time-delay", []float64{stf.Tau})
			}
			if err == nil && s.Ncomp > 1 {
				err = writeFloats(g, "ricker-direction", s.Dir)
			}
		case *seis.Table:
			if typ != "file" {
				g.Close()
				return chk.Err("source %q carries tabulated samples in a %q catalog", s.Name, typ)
			}
			err = writeFloats(g, "sampling-interval", []float64{stf.Dt})
			if err == nil {
				err = writeFloats(g, "samples", stf.Y)
			}
		default:
			err = chk.Err("source %q carries an unsupported time function", s.Name)
		}
		g.Close()
		if err != nil {
			return err
		}
	}
	return
}

// ReadSourceCatalog loads every source of an HDF5 catalog. The root record
// "type" selects the time function of all sources in the file.
func ReadSourceCatalog(fn string, ndim int) (srcs []*seis.Source, err error) {
	f, err := hdf5.OpenFile(fn, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, chk.Err("cannot open catalog %q: %v", fn, err)
	}
	defer f.Close()

	td, err := f.OpenDataset("type")
	if err != nil {
		return nil, chk.Err("cannot read record 'type' from catalog %q: %v", fn, err)
	}
	var typ string
	err = td.Read(&typ)
	td.Close()
	if err != nil {
		return nil, chk.Err("cannot read record 'type' from catalog %q: %v", fn, err)
	}
	if typ != "ricker" && typ != "file" {
		return nil, chk.Err("source type %q not recognized; possibilities are: ricker, file", typ)
	}

	nobj, err := f.NumObjects()
	if err != nil {
		return nil, chk.Err("cannot list catalog %q: %v", fn, err)
	}
	for i := uint(0); i < nobj; i++ {
		name, err := f.ObjectNameByIndex(i)
		if err != nil {
			return nil, chk.Err("cannot read source name from catalog %q: %v", fn, err)
		}
		if name == "type" {
			continue
		}
		s, err := readSource(f, name, typ, ndim)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, s)
	}
	return
}

// readSource loads one per-source group
func readSource(f *hdf5.File, name, typ string, ndim int) (s *seis.Source, err error) {
	g, err := f.OpenGroup(name)
	if err != nil {
		return nil, chk.Err("cannot open source %q: %v", name, err)
	}
	defer g.Close()

	loc, err := readFloats(g, "location")
	if err != nil {
		return nil, chk.Err("source %q: %v", name, err)
	}
	if len(loc) < ndim {
		return nil, chk.Err("source %q: location has %d coordinates; need %d", name, len(loc), ndim)
	}
	ncv, err := readFloats(g, "num-components")
	if err != nil {
		return nil, chk.Err("source %q: %v", name, err)
	}
	ncomp := int(ncv[0])

	var stf fun.Func
	var dir []float64
	switch typ {
	case "ricker":
		a, err := readFloats(g, "ricker-amplitude")
		if err != nil {
			return nil, chk.Err("source %q: %v", name, err)
		}
		nu, err := readFloats(g, "ricker-center-freq")
		if err != nil {
			return nil, chk.Err("source %q: %v", name, err)
		}
		tau, err := readFloats(g, "ricker-time-delay")
		if err != nil {
			return nil, chk.Err("source %q: %v", name, err)
		}
		if ncomp > 1 {
			if dir, err = readFloats(g, "ricker-direction"); err != nil {
				return nil, chk.Err("source %q: %v", name, err)
			}
		}
		if stf, err = seis.NewRicker(a[0], nu[0], tau[0]); err != nil {
			return nil, chk.Err("source %q: %v", name, err)
		}
	case "file":
		dt, err := readFloats(g, "sampling-interval")
		if err != nil {
			return nil, chk.Err("source %q: %v", name, err)
		}
		y, err := readFloats(g, "samples")
		if err != nil {
			return nil, chk.Err("source %q: %v", name, err)
		}
		if stf, err = seis.NewTable(dt[0], y); err != nil {
			return nil, chk.Err("source %q: %v", name, err)
		}
	}
	return seis.NewSource(name, loc[:ndim], ncomp, dir, stf)
}

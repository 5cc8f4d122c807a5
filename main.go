// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/seismech/gosem/fem"
	"github.com/seismech/gosem/inp"
	"github.com/seismech/gosem/msh"
	"github.com/seismech/gosem/out"
	"github.com/seismech/gosem/seis"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	cfg, err := inp.ParseFlags(os.Args[1:])
	if err != nil {
		chk.Panic("%v", err)
	}

	// message
	if mpi.Rank() == 0 && cfg.Verbose {
		io.PfWhite("\ngosem -- spectral element wave propagation\n\n")
		io.Pf("%v\n", io.ArgsTable(
			"mesh file", "mesh-file", cfg.MeshFile,
			"model file", "model-file", cfg.ModelFile,
			"polynomial order", "polynomial-order", cfg.Order,
			"dimension", "dimension", cfg.Ndim,
			"duration", "duration", cfg.Duration,
			"time step", "time-step", cfg.Dt,
			"number of steps", "nsteps", cfg.Nsteps,
		))
	}

	// mesh, model, domain
	m, err := msh.ReadMsh(cfg.MeshFile)
	if err != nil {
		chk.Panic("%v", err)
	}
	if m.Ndim != cfg.Ndim {
		chk.Panic("mesh is %dD; flags ask for %dD", m.Ndim, cfg.Ndim)
	}
	mdl, err := inp.ReadModel(cfg.ModelFile, cfg.Physics)
	if err != nil {
		chk.Panic("%v", err)
	}
	dom, err := fem.NewDomain(m, cfg.Order, mdl.Physics, mdl.Params)
	if err != nil {
		chk.Panic("%v", err)
	}
	if len(cfg.Dirichlet) > 0 {
		if err := dom.SetDirichlet(cfg.Dirichlet); err != nil {
			chk.Panic("%v", err)
		}
	}

	// sources and receivers
	srcs, err := cfg.Sources()
	if err != nil {
		chk.Panic("%v", err)
	}
	seis.AttachSources(dom, srcs)
	recs := seis.LocateReceivers(dom, cfg.Receivers())

	// solver
	sol := fem.NewSolver(dom, cfg.Dt, cfg.Duration)
	sol.Sentinel = cfg.Sentinel
	sol.StrictCFL = cfg.StrictCFL
	sol.Verbose = cfg.Verbose && mpi.Rank() == 0
	for _, r := range recs {
		sol.Recs = append(sol.Recs, r)
	}
	if cfg.SaveMovie && mpi.Rank() == 0 {
		mov, err := out.NewMovie(cfg.MovieFileName, cfg.MovieField)
		if err != nil {
			chk.Panic("%v", err)
		}
		defer func() {
			if err := mov.Close(); err != nil {
				io.Pfred("warning: cannot close the movie file: %v\n", err)
			}
		}()
		sol.Snap = mov.WriteFrame
		sol.SnapEvery = cfg.SaveFrameEvery
	}

	// run
	if err := sol.Run(); err != nil {
		chk.Panic("%v", err)
	}
	if cfg.Verbose && mpi.Rank() == 0 {
		io.Pf("done: %d steps to t=%g\n", sol.Step, sol.T)
	}

	// flush traces
	if len(recs) > 0 && cfg.ReceiverFileName != "" {
		tw, err := out.NewTraces(cfg.ReceiverFileName)
		if err != nil {
			chk.Panic("%v", err)
		}
		for _, r := range recs {
			t, u := r.Trace()
			if err := tw.WriteTrace(r.Name, t, u); err != nil {
				io.Pfred("warning: cannot write trace %q: %v\n", r.Name, err)
			}
		}
		if err := tw.Close(); err != nil {
			io.Pfred("warning: cannot close the trace file: %v\n", err)
		}
	}
}

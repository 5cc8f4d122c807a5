// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seis

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"

	"github.com/seismech/gosem/fem"
	"github.com/seismech/gosem/msh"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// quaMesh builds a uniform nx by ny quad mesh on [-l/2,l/2]^2
func quaMesh(nx, ny int, l float64) *msh.Mesh {
	var verts []*msh.Vert
	vid := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			x := -l/2.0 + l*float64(i)/float64(nx)
			y := -l/2.0 + l*float64(j)/float64(ny)
			verts = append(verts, &msh.Vert{Id: vid(i, j), C: []float64{x, y}})
		}
	}
	var cells []*msh.Cell
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cells = append(cells, &msh.Cell{
				Id: j*nx + i, Type: "qua4",
				Verts: []int{vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1)},
				FTags: []int{0, 0, 0, 0},
			})
		}
	}
	m, err := msh.NewMesh(verts, cells, nil)
	if err != nil {
		chk.Panic("quaMesh failed: %v", err)
	}
	return m
}

func acousticDomain(m *msh.Mesh, n int, vp float64) *fem.Domain {
	vv := make([]float64, len(m.Verts))
	for i := range vv {
		vv[i] = vp
	}
	dom, err := fem.NewDomain(m, n, "acoustic", map[string][]float64{"vp": vv})
	if err != nil {
		chk.Panic("acousticDomain failed: %v", err)
	}
	return dom
}

func Test_seis01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("seis01. Ricker wavelet")

	a, nu, tau := 2.5, 4.0, 1.25
	rck, err := NewRicker(a, nu, tau)
	if err != nil {
		tst.Errorf("NewRicker failed: %v", err)
		return
	}

	// peak at the delay
	chk.Scalar(tst, "f(tau)", 1e-15, rck.F(tau, nil), a)

	// decay outside the support window
	win := 3.0 / nu
	for _, t := range []float64{tau - win, tau - 2*win, tau + win, tau + 1.5*win, -10, 10} {
		if math.Abs(rck.F(t, nil)) > 1e-6*a {
			tst.Errorf("|f(%g)| = %g exceeds 1e-6 A", t, math.Abs(rck.F(t, nil)))
			return
		}
	}

	// derivatives against central differences
	for _, t := range []float64{tau - 0.1, tau, tau + 0.07, tau + 0.2} {
		g, _ := num.DerivCentral(func(τ float64, args ...interface{}) float64 {
			return rck.F(τ, nil)
		}, t, 1e-3)
		chk.Scalar(tst, io.Sf("g(%g)", t), 1e-6, rck.G(t, nil), g)
		h, _ := num.DerivCentral(func(τ float64, args ...interface{}) float64 {
			return rck.G(τ, nil)
		}, t, 1e-3)
		chk.Scalar(tst, io.Sf("h(%g)", t), 1e-5, rck.H(t, nil), h)
	}

	// invalid parameters
	if _, err := NewRicker(1, 0, 0); err == nil {
		tst.Errorf("zero center frequency must fail")
	}
}

func Test_seis02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("seis02. tabulated time function")

	tab, err := NewTable(0.5, []float64{0, 1, 3, 2})
	if err != nil {
		tst.Errorf("NewTable failed: %v", err)
		return
	}

	// exact at the samples
	chk.Scalar(tst, "f(0)", 1e-15, tab.F(0, nil), 0)
	chk.Scalar(tst, "f(0.5)", 1e-15, tab.F(0.5, nil), 1)
	chk.Scalar(tst, "f(1.0)", 1e-15, tab.F(1.0, nil), 3)
	chk.Scalar(tst, "f(1.5)", 1e-15, tab.F(1.5, nil), 2)

	// linear between the samples
	chk.Scalar(tst, "f(0.25)", 1e-15, tab.F(0.25, nil), 0.5)
	chk.Scalar(tst, "f(0.75)", 1e-15, tab.F(0.75, nil), 2)
	chk.Scalar(tst, "f(1.25)", 1e-15, tab.F(1.25, nil), 2.5)

	// zero outside the range
	chk.Scalar(tst, "f(-0.1)", 1e-15, tab.F(-0.1, nil), 0)
	chk.Scalar(tst, "f(1.6)", 1e-15, tab.F(1.6, nil), 0)

	// slopes
	chk.Scalar(tst, "g(0.25)", 1e-15, tab.G(0.25, nil), 2)
	chk.Scalar(tst, "g(0.75)", 1e-15, tab.G(0.75, nil), 4)
	chk.Scalar(tst, "g(1.25)", 1e-15, tab.G(1.25, nil), -2)
	chk.Scalar(tst, "g(2.0)", 1e-15, tab.G(2.0, nil), 0)

	// invalid parameters
	if _, err := NewTable(0, []float64{1, 2}); err == nil {
		tst.Errorf("zero sampling interval must fail")
	}
	if _, err := NewTable(0.1, []float64{1}); err == nil {
		tst.Errorf("single sample must fail")
	}
}

func Test_seis03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("seis03. localization")

	m := quaMesh(2, 2, 2.0) // [-1,1]^2, cells of size 1
	dom := acousticDomain(m, 3, 1.0)

	// interior point of cell 0
	cell, xi, found := locate(dom, []float64{-0.7, -0.4})
	if !found {
		tst.Errorf("interior point not found")
		return
	}
	chk.IntAssert(cell, 0)
	chk.Vector(tst, "xi", 1e-12, xi, []float64{-0.4, 0.2})

	// point on the shared edge: the lowest owning cell wins
	cell, _, found = locate(dom, []float64{0.0, -0.5})
	if !found {
		tst.Errorf("edge point not found")
		return
	}
	chk.IntAssert(cell, 0)

	// located coordinates reproduce a cubic through the basis
	p := func(x []float64) float64 {
		return x[0]*x[0]*x[0] - 2.0*x[1]*x[1]*x[1] + x[0]*x[1] + 0.5
	}
	x0 := []float64{0.31, -0.27}
	cell, xi, found = locate(dom, x0)
	if !found {
		tst.Errorf("probe point not found")
		return
	}
	core := dom.Cores[cell]
	phi := core.Interp(xi)
	val := 0.0
	for k, y := range core.NodalPoints() {
		val += phi[k] * p(y)
	}
	chk.Scalar(tst, "p(x0)", 1e-12, val, p(x0))

	// outside points are dropped with a warning
	rck, _ := NewRicker(1, 2, 1)
	far, err := NewSource("far", []float64{5, 5}, 1, nil, rck)
	if err != nil {
		tst.Errorf("NewSource failed: %v", err)
		return
	}
	if n := AttachSources(dom, []*Source{far}); n != 0 {
		tst.Errorf("source outside the mesh must be dropped; attached %d", n)
		return
	}
	out := LocateReceivers(dom, []*Receiver{NewReceiver("far", []float64{5, 5})})
	if len(out) != 0 {
		tst.Errorf("receiver outside the mesh must be dropped; placed %d", len(out))
	}

	// direction validation
	if _, err := NewSource("bad", x0, 2, []float64{1}, rck); err == nil {
		tst.Errorf("short direction vector must fail")
	}
}

func Test_seis04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("seis04. source and receiver sanity")

	m := quaMesh(2, 2, 2.0)
	dom := acousticDomain(m, 3, 1.0)

	a, nu, tau := 1.0, 2.0, 1.5
	rck, err := NewRicker(a, nu, tau)
	if err != nil {
		tst.Errorf("NewRicker failed: %v", err)
		return
	}
	src, err := NewSource("center", []float64{0, 0}, 1, nil, rck)
	if err != nil {
		tst.Errorf("NewSource failed: %v", err)
		return
	}
	if n := AttachSources(dom, []*Source{src}); n != 1 {
		tst.Errorf("expected 1 attached source; got %d", n)
		return
	}
	if len(dom.Inner(src.Cell()).Sources()) != 1 {
		tst.Errorf("owner kernel carries no source")
		return
	}

	// the fired waveform peaks at the delay and decays outside the window
	chk.Scalar(tst, "fire(tau)", 1e-15, src.Fire(tau, 0)[0], a)
	win := 3.0 / nu
	for t := 0.0; t <= 4.0; t += 1e-3 {
		if t > tau-win && t < tau+win {
			continue
		}
		if f := math.Abs(src.Fire(t, 0)[0]); f > 1e-6*a {
			tst.Errorf("|fire(%g)| = %g exceeds 1e-6 A", t, f)
			return
		}
	}

	rec := NewReceiver("origin", []float64{0, 0})
	placed := LocateReceivers(dom, []*Receiver{rec})
	if len(placed) != 1 {
		tst.Errorf("expected 1 placed receiver; got %d", len(placed))
		return
	}

	dt, duration := 0.01, 3.0
	sol := fem.NewSolver(dom, dt, duration)
	for _, r := range placed {
		sol.Recs = append(sol.Recs, r)
	}
	if err := sol.Run(); err != nil {
		tst.Errorf("run failed: %v", err)
		return
	}

	// one sample per step, strictly increasing times, finite quiet onset
	if len(rec.T) != sol.Step {
		tst.Errorf("trace has %d samples; solver took %d steps", len(rec.T), sol.Step)
		return
	}
	umax, uquiet := 0.0, 0.0
	for k, t := range rec.T {
		if k > 0 && t <= rec.T[k-1] {
			tst.Errorf("sample times are not increasing at k=%d", k)
			return
		}
		uk := math.Abs(rec.U[k][0])
		if uk > umax {
			umax = uk
		}
		if t < tau-win && uk > uquiet {
			uquiet = uk
		}
	}
	io.Pforan("umax = %v  uquiet = %v\n", umax, uquiet)
	if umax < 1e-8 {
		tst.Errorf("receiver recorded no signal")
		return
	}
	if umax > 5 {
		tst.Errorf("receiver trace is not bounded: %g", umax)
		return
	}
	if uquiet > 1e-6*umax {
		tst.Errorf("trace is not quiet before the wavelet onset: %g", uquiet)
		return
	}

	_, u := rec.Trace()
	chk.IntAssert(len(u), 1)
	chk.IntAssert(len(u[0]), sol.Step)
}

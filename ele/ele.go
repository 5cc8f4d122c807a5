// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the spectral element operators and the physics
// kernels built on top of them. A Core carries the discrete calculus of one
// cell (gradients, quadrature, delta coefficients); a Kernel wraps a Core
// with a constitutive law and declares which fields it reads and writes.
package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/seismech/gosem/shp"
)

// Core is the operator surface shared by tensor and simplex cells
type Core interface {

	// geometry
	NumDofs() int             // number of scalar DoFs (nodes)
	NumDim() int              // space dimension
	Order() int               // polynomial order
	Shape() *shp.Shape        // geometric map
	Coords() [][]float64      // vertex coordinates [ndim][nverts]
	RefCoords() [][]float64   // node reference coordinates [P][ndim]
	NodalPoints() [][]float64 // node physical coordinates [P][ndim]
	IsSimplex() bool
	MinNodeSpacing() float64

	// discrete calculus
	Gradient(f []float64) [][]float64                    // [P][ndim]
	ApplyGradTestAndIntegrate(F [][]float64) []float64   // F[P][ndim] -> [P]
	ApplyTestAndIntegrate(f []float64) []float64         // [P]
	ApplyTestAndIntegrateEdge(f []float64, face int) []float64
	DeltaCoefficients(xi []float64) []float64 // [P]
	Interp(xi []float64) []float64            // basis values at natural point [P]

	// faces
	FaceDofs(face int) []int

	// material parameters at the vertices, interpolated to the nodes
	SetPar(name string, vertexVals []float64)
	ParAtIntPts(name string) []float64
}

// PointSource is a localized source attached to one cell. RefCoords returns
// the cached natural coordinates; Fire returns the per-component amplitudes
// at time t.
type PointSource interface {
	RefCoords() []float64
	Fire(t float64, step int) []float64
}

// Kernel adds a constitutive law on top of a Core
type Kernel interface {
	Core() Core
	PullFields() []string
	PushFields() []string
	AssembleMassMatrix() []float64
	ComputeStiffnessTerm(u [][]float64) [][]float64 // u[ncomp][P] -> Ku[ncomp][P]
	ComputeSourceTerm(t float64, step int) [][]float64
	ComputeSurfaceIntegral(u [][]float64) [][]float64
	AttachSource(src PointSource)
	Sources() []PointSource
	Vmax() float64 // fastest wave speed, for the CFL estimate
}

// kallocators maps physics names to kernel allocators
var kallocators = make(map[string]func(c Core) (Kernel, error))

// NewKernel allocates a kernel by physics name ("acoustic", "elastic2d",
// "elastic3d") over the given core
func NewKernel(physics string, c Core) (Kernel, error) {
	alloc, ok := kallocators[physics]
	if !ok {
		return nil, chk.Err("unknown physics kernel %q", physics)
	}
	return alloc(c)
}

// NewCore allocates the operator core for a cell
//  gtype -- "tri", "qua", "tet" or "hex"
//  n     -- polynomial order
//  x     -- vertex coordinates [ndim][nverts]
func NewCore(gtype string, n int, x [][]float64) (Core, error) {
	switch gtype {
	case "qua", "hex":
		return NewTensor(gtype, n, x)
	case "tri", "tet":
		return NewSimplex(gtype, n, x)
	}
	return nil, chk.Err("unknown cell geometry %q", gtype)
}

// sourceTerm accumulates the nodal load of all point sources: the delta
// coefficients at the source location integrated against the test functions,
// scaled by the per-component amplitudes at time t
func sourceTerm(c Core, srcs []PointSource, ncomp int, t float64, step int) [][]float64 {
	f := la.MatAlloc(ncomp, c.NumDofs())
	for _, s := range srcs {
		amp := s.Fire(t, step)
		d := c.ApplyTestAndIntegrate(c.DeltaCoefficients(s.RefCoords()))
		for ic := 0; ic < ncomp; ic++ {
			if amp[ic] == 0 {
				continue
			}
			for p, dp := range d {
				f[ic][p] += amp[ic] * dp
			}
		}
	}
	return f
}

// unitField returns a nodal field of ones
func unitField(p int) []float64 {
	f := make([]float64, p)
	for i := range f {
		f[i] = 1
	}
	return f
}

// denseStiffness pre-forms the dense stiffness operator by probing the
// matrix-free apply with unit vectors; used by simplex kernels where
// sum-factorization gives no win
func denseStiffness(apply func(u [][]float64) [][]float64, ncomp, p int) (K [][]float64) {
	n := ncomp * p
	K = la.MatAlloc(n, n)
	u := la.MatAlloc(ncomp, p)
	for jc := 0; jc < ncomp; jc++ {
		for jp := 0; jp < p; jp++ {
			u[jc][jp] = 1
			ku := apply(u)
			u[jc][jp] = 0
			for ic := 0; ic < ncomp; ic++ {
				for ip := 0; ip < p; ip++ {
					K[ic*p+ip][jc*p+jp] = ku[ic][ip]
				}
			}
		}
	}
	return
}

// applyDense computes Ku = K*u for a pre-formed dense stiffness
func applyDense(K [][]float64, u [][]float64, ncomp, p int) (ku [][]float64) {
	ku = la.MatAlloc(ncomp, p)
	for ic := 0; ic < ncomp; ic++ {
		for ip := 0; ip < p; ip++ {
			sum := 0.0
			row := K[ic*p+ip]
			for jc := 0; jc < ncomp; jc++ {
				for jp := 0; jp < p; jp++ {
					sum += row[jc*p+jp] * u[jc][jp]
				}
			}
			ku[ic][ip] = sum
		}
	}
	return
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Acoustic is the scalar pressure kernel: K u = int grad(phi) . (c^2 grad u),
// with c = VP interpolated to the nodes
type Acoustic struct {
	core Core
	srcs []PointSource
	kvec []float64   // wavenumbers of the standing-mode check
	kmat [][]float64 // dense stiffness, simplices only
}

func init() {
	kallocators["acoustic"] = func(c Core) (Kernel, error) {
		return &Acoustic{core: c}, nil
	}
}

func (o *Acoustic) Core() Core           { return o.core }
func (o *Acoustic) PullFields() []string { return []string{"u"} }
func (o *Acoustic) PushFields() []string { return []string{"a"} }

// AssembleMassMatrix returns the diagonal lumped mass of the pressure
// formulation, with unit density
func (o *Acoustic) AssembleMassMatrix() []float64 {
	return o.core.ApplyTestAndIntegrate(unitField(o.core.NumDofs()))
}

// ComputeStiffnessTerm computes K u. For simplices the dense stiffness is
// pre-formed on first use; for tensor cells the matrix-free sum-factorized
// path is taken every time.
func (o *Acoustic) ComputeStiffnessTerm(u [][]float64) [][]float64 {
	if o.core.IsSimplex() {
		if o.kmat == nil {
			o.kmat = denseStiffness(o.apply, 1, o.core.NumDofs())
		}
		return applyDense(o.kmat, u, 1, o.core.NumDofs())
	}
	return o.apply(u)
}

func (o *Acoustic) apply(u [][]float64) [][]float64 {
	vp := o.core.ParAtIntPts("vp")
	g := o.core.Gradient(u[0])
	for p := range g {
		c2 := vp[p] * vp[p]
		for j := range g[p] {
			g[p][j] *= c2
		}
	}
	return [][]float64{o.core.ApplyGradTestAndIntegrate(g)}
}

func (o *Acoustic) ComputeSourceTerm(t float64, step int) [][]float64 {
	return sourceTerm(o.core, o.srcs, 1, t, step)
}

// ComputeSurfaceIntegral returns zero: the pressure formulation has no
// surface coupling term
func (o *Acoustic) ComputeSurfaceIntegral(u [][]float64) [][]float64 {
	return la.MatAlloc(1, o.core.NumDofs())
}

func (o *Acoustic) AttachSource(src PointSource) { o.srcs = append(o.srcs, src) }
func (o *Acoustic) Sources() []PointSource       { return o.srcs }

// Vmax returns the fastest wave speed over the cell
func (o *Acoustic) Vmax() float64 {
	vmax := 0.0
	for _, v := range o.core.ParAtIntPts("vp") {
		if v > vmax {
			vmax = v
		}
	}
	return vmax
}

// SetupEigenfunctionTest pins the wavenumbers of a standing pressure mode
// u = prod_i sin(k_i x_i) cos(c|k| t) and returns its nodal values at t=0
func (o *Acoustic) SetupEigenfunctionTest(k []float64) [][]float64 {
	o.kvec = append([]float64{}, k...)
	return [][]float64{o.modeAt(0)}
}

// CheckEigenfunctionTest returns the max-norm error of u against the standing
// mode at time t
func (o *Acoustic) CheckEigenfunctionTest(t float64, u [][]float64) float64 {
	exact := o.modeAt(t)
	emax := 0.0
	for p, v := range u[0] {
		if e := math.Abs(v - exact[p]); e > emax {
			emax = e
		}
	}
	return emax
}

func (o *Acoustic) modeAt(t float64) []float64 {
	vp := o.core.ParAtIntPts("vp")
	xyz := o.core.NodalPoints()
	knorm := 0.0
	for _, ki := range o.kvec {
		knorm += ki * ki
	}
	knorm = math.Sqrt(knorm)
	vals := make([]float64, o.core.NumDofs())
	for p := range vals {
		v := math.Cos(vp[p] * knorm * t)
		for i, ki := range o.kvec {
			v *= math.Sin(ki * xyz[p][i])
		}
		vals[p] = v
	}
	return vals
}

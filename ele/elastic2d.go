// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Elastic2D is the plane-strain isotropic kernel. The Lame parameters derive
// from the wave speeds: mu = rho vs^2, lam = rho (vp^2 - 2 vs^2).
type Elastic2D struct {
	core Core
	srcs []PointSource
	kvec []float64
	kmat [][]float64 // dense stiffness, simplices only
}

func init() {
	kallocators["elastic2d"] = func(c Core) (Kernel, error) {
		if c.NumDim() != 2 {
			return nil, chk.Err("elastic2d requires a 2D cell; got %dD", c.NumDim())
		}
		return &Elastic2D{core: c}, nil
	}
}

func (o *Elastic2D) Core() Core           { return o.core }
func (o *Elastic2D) PullFields() []string { return []string{"ux", "uy"} }
func (o *Elastic2D) PushFields() []string { return []string{"ax", "ay"} }

// AssembleMassMatrix returns the diagonal lumped mass with the nodal density
func (o *Elastic2D) AssembleMassMatrix() []float64 {
	return o.core.ApplyTestAndIntegrate(o.core.ParAtIntPts("rho"))
}

func (o *Elastic2D) ComputeStiffnessTerm(u [][]float64) [][]float64 {
	if o.core.IsSimplex() {
		if o.kmat == nil {
			o.kmat = denseStiffness(o.apply, 2, o.core.NumDofs())
		}
		return applyDense(o.kmat, u, 2, o.core.NumDofs())
	}
	return o.apply(u)
}

func (o *Elastic2D) apply(u [][]float64) [][]float64 {
	rho := o.core.ParAtIntPts("rho")
	vp := o.core.ParAtIntPts("vp")
	vs := o.core.ParAtIntPts("vs")
	gx := o.core.Gradient(u[0])
	gy := o.core.Gradient(u[1])
	np := o.core.NumDofs()
	fx := la.MatAlloc(np, 2)
	fy := la.MatAlloc(np, 2)
	for p := 0; p < np; p++ {
		μ := rho[p] * vs[p] * vs[p]
		λ := rho[p]*vp[p]*vp[p] - 2.0*μ
		εxx, εyy := gx[p][0], gy[p][1]
		σxx := λ*(εxx+εyy) + 2.0*μ*εxx
		σyy := λ*(εxx+εyy) + 2.0*μ*εyy
		σxy := μ * (gx[p][1] + gy[p][0])
		fx[p][0], fx[p][1] = σxx, σxy
		fy[p][0], fy[p][1] = σxy, σyy
	}
	return [][]float64{
		o.core.ApplyGradTestAndIntegrate(fx),
		o.core.ApplyGradTestAndIntegrate(fy),
	}
}

func (o *Elastic2D) ComputeSourceTerm(t float64, step int) [][]float64 {
	return sourceTerm(o.core, o.srcs, 2, t, step)
}

// ComputeSurfaceIntegral returns zero: the free-surface condition of the
// displacement formulation is natural
func (o *Elastic2D) ComputeSurfaceIntegral(u [][]float64) [][]float64 {
	return la.MatAlloc(2, o.core.NumDofs())
}

func (o *Elastic2D) AttachSource(src PointSource) { o.srcs = append(o.srcs, src) }
func (o *Elastic2D) Sources() []PointSource       { return o.srcs }

// Vmax returns the fastest wave speed over the cell
func (o *Elastic2D) Vmax() float64 {
	vmax := 0.0
	for _, v := range o.core.ParAtIntPts("vp") {
		if v > vmax {
			vmax = v
		}
	}
	return vmax
}

// SetupEigenfunctionTest pins the wavenumbers of a divergence-free standing
// shear mode
//  ux =  ky sin(kx x) cos(ky y) cos(vs|k| t)
//  uy = -kx cos(kx x) sin(ky y) cos(vs|k| t)
// and returns its nodal values at t=0
func (o *Elastic2D) SetupEigenfunctionTest(k []float64) [][]float64 {
	o.kvec = append([]float64{}, k...)
	ux, uy := o.modeAt(0)
	return [][]float64{ux, uy}
}

// CheckEigenfunctionTest returns the max-norm error of u against the standing
// shear mode at time t
func (o *Elastic2D) CheckEigenfunctionTest(t float64, u [][]float64) float64 {
	ex, ey := o.modeAt(t)
	emax := 0.0
	for p := range ex {
		if e := math.Abs(u[0][p] - ex[p]); e > emax {
			emax = e
		}
		if e := math.Abs(u[1][p] - ey[p]); e > emax {
			emax = e
		}
	}
	return emax
}

func (o *Elastic2D) modeAt(t float64) (ux, uy []float64) {
	vs := o.core.ParAtIntPts("vs")
	xyz := o.core.NodalPoints()
	kx, ky := o.kvec[0], o.kvec[1]
	knorm := math.Sqrt(kx*kx + ky*ky)
	np := o.core.NumDofs()
	ux = make([]float64, np)
	uy = make([]float64, np)
	for p := 0; p < np; p++ {
		x, y := xyz[p][0], xyz[p][1]
		c := math.Cos(vs[p] * knorm * t)
		ux[p] = ky * math.Sin(kx*x) * math.Cos(ky*y) * c
		uy[p] = -kx * math.Cos(kx*x) * math.Sin(ky*y) * c
	}
	return
}

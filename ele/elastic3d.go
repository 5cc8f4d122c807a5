// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Elastic3D is the vertically-transverse-isotropic kernel. The Voigt
// stiffness entries derive from the parameters (RHO, VPV, VPH, VSV, VSH,
// ETA):
//  c11 = c22 = rho vph^2     c33 = rho vpv^2
//  c44 = c55 = rho vsv^2     c66 = rho vsh^2
//  c12 = c11 - 2 c66         c13 = c23 = eta (c11 - 2 c44)
type Elastic3D struct {
	core Core
	srcs []PointSource
	kvec []float64
	kmat [][]float64 // dense stiffness, simplices only
}

func init() {
	kallocators["elastic3d"] = func(c Core) (Kernel, error) {
		if c.NumDim() != 3 {
			return nil, chk.Err("elastic3d requires a 3D cell; got %dD", c.NumDim())
		}
		return &Elastic3D{core: c}, nil
	}
}

func (o *Elastic3D) Core() Core           { return o.core }
func (o *Elastic3D) PullFields() []string { return []string{"ux", "uy", "uz"} }
func (o *Elastic3D) PushFields() []string { return []string{"ax", "ay", "az"} }

// AssembleMassMatrix returns the diagonal lumped mass with the nodal density
func (o *Elastic3D) AssembleMassMatrix() []float64 {
	return o.core.ApplyTestAndIntegrate(o.core.ParAtIntPts("rho"))
}

func (o *Elastic3D) ComputeStiffnessTerm(u [][]float64) [][]float64 {
	if o.core.IsSimplex() {
		if o.kmat == nil {
			o.kmat = denseStiffness(o.apply, 3, o.core.NumDofs())
		}
		return applyDense(o.kmat, u, 3, o.core.NumDofs())
	}
	return o.apply(u)
}

func (o *Elastic3D) apply(u [][]float64) [][]float64 {
	rho := o.core.ParAtIntPts("rho")
	vpv := o.core.ParAtIntPts("vpv")
	vph := o.core.ParAtIntPts("vph")
	vsv := o.core.ParAtIntPts("vsv")
	vsh := o.core.ParAtIntPts("vsh")
	eta := o.core.ParAtIntPts("eta")
	gx := o.core.Gradient(u[0])
	gy := o.core.Gradient(u[1])
	gz := o.core.Gradient(u[2])
	np := o.core.NumDofs()
	fx := la.MatAlloc(np, 3)
	fy := la.MatAlloc(np, 3)
	fz := la.MatAlloc(np, 3)
	for p := 0; p < np; p++ {
		c11 := rho[p] * vph[p] * vph[p]
		c33 := rho[p] * vpv[p] * vpv[p]
		c44 := rho[p] * vsv[p] * vsv[p]
		c66 := rho[p] * vsh[p] * vsh[p]
		c12 := c11 - 2.0*c66
		c13 := eta[p] * (c11 - 2.0*c44)

		εxx, εyy, εzz := gx[p][0], gy[p][1], gz[p][2]
		γyz := gy[p][2] + gz[p][1]
		γxz := gx[p][2] + gz[p][0]
		γxy := gx[p][1] + gy[p][0]

		σxx := c11*εxx + c12*εyy + c13*εzz
		σyy := c12*εxx + c11*εyy + c13*εzz
		σzz := c13*(εxx+εyy) + c33*εzz
		σyz := c44 * γyz
		σxz := c44 * γxz
		σxy := c66 * γxy

		fx[p][0], fx[p][1], fx[p][2] = σxx, σxy, σxz
		fy[p][0], fy[p][1], fy[p][2] = σxy, σyy, σyz
		fz[p][0], fz[p][1], fz[p][2] = σxz, σyz, σzz
	}
	return [][]float64{
		o.core.ApplyGradTestAndIntegrate(fx),
		o.core.ApplyGradTestAndIntegrate(fy),
		o.core.ApplyGradTestAndIntegrate(fz),
	}
}

func (o *Elastic3D) ComputeSourceTerm(t float64, step int) [][]float64 {
	return sourceTerm(o.core, o.srcs, 3, t, step)
}

// ComputeSurfaceIntegral returns zero: the free-surface condition of the
// displacement formulation is natural
func (o *Elastic3D) ComputeSurfaceIntegral(u [][]float64) [][]float64 {
	return la.MatAlloc(3, o.core.NumDofs())
}

func (o *Elastic3D) AttachSource(src PointSource) { o.srcs = append(o.srcs, src) }
func (o *Elastic3D) Sources() []PointSource       { return o.srcs }

// Vmax returns the fastest wave speed over the cell
func (o *Elastic3D) Vmax() float64 {
	vpv := o.core.ParAtIntPts("vpv")
	vph := o.core.ParAtIntPts("vph")
	vmax := 0.0
	for p := range vpv {
		if vpv[p] > vmax {
			vmax = vpv[p]
		}
		if vph[p] > vmax {
			vmax = vph[p]
		}
	}
	return vmax
}

// SetupEigenfunctionTest pins the vertical wavenumber of a horizontally
// polarized standing mode ux = sin(kz z) cos(vsv kz t), which is exact for
// the transverse-isotropic law, and returns its nodal values at t=0
func (o *Elastic3D) SetupEigenfunctionTest(k []float64) [][]float64 {
	o.kvec = append([]float64{}, k...)
	ux := o.modeAt(0)
	np := o.core.NumDofs()
	return [][]float64{ux, make([]float64, np), make([]float64, np)}
}

// CheckEigenfunctionTest returns the max-norm error of u against the
// polarized mode at time t
func (o *Elastic3D) CheckEigenfunctionTest(t float64, u [][]float64) float64 {
	ex := o.modeAt(t)
	emax := 0.0
	for p := range ex {
		if e := math.Abs(u[0][p] - ex[p]); e > emax {
			emax = e
		}
		if e := math.Abs(u[1][p]); e > emax {
			emax = e
		}
		if e := math.Abs(u[2][p]); e > emax {
			emax = e
		}
	}
	return emax
}

func (o *Elastic3D) modeAt(t float64) []float64 {
	vsv := o.core.ParAtIntPts("vsv")
	xyz := o.core.NodalPoints()
	kz := o.kvec[2]
	vals := make([]float64, o.core.NumDofs())
	for p := range vals {
		vals[p] = math.Sin(kz*xyz[p][2]) * math.Cos(vsv[p]*kz*t)
	}
	return vals
}

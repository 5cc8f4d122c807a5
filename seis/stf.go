// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seis holds the seismological objects of a simulation: source time
// functions, point sources and receivers, and their localization within the
// cells of a domain.
package seis

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Ricker implements the Ricker wavelet
//  f(t) = A (1 - 2 π² ν² (t-τ)²) exp(-π² ν² (t-τ)²)
// with amplitude A, center frequency ν and time delay τ
type Ricker struct {
	A   float64 // amplitude
	Nu  float64 // center frequency
	Tau float64 // time delay
}

// NewRicker returns an initialized Ricker wavelet
func NewRicker(a, nu, tau float64) (*Ricker, error) {
	o := &Ricker{A: a, Nu: nu, Tau: tau}
	if nu <= 0 {
		return nil, chk.Err("ricker: center frequency must be positive; got %g", nu)
	}
	return o, nil
}

// Init sets the parameters: "a", "nu" and "tau"
func (o *Ricker) Init(prms fun.Prms) (err error) {
	for _, p := range prms {
		switch p.N {
		case "a":
			o.A = p.V
		case "nu":
			o.Nu = p.V
		case "tau":
			o.Tau = p.V
		default:
			return chk.Err("ricker: parameter named %q is invalid", p.N)
		}
	}
	if o.Nu <= 0 {
		return chk.Err("ricker: center frequency must be positive; got %g", o.Nu)
	}
	return
}

// F returns f(t)
func (o *Ricker) F(t float64, x []float64) float64 {
	a := math.Pi * math.Pi * o.Nu * o.Nu
	u2 := (t - o.Tau) * (t - o.Tau)
	return o.A * (1.0 - 2.0*a*u2) * math.Exp(-a*u2)
}

// G returns df/dt
func (o *Ricker) G(t float64, x []float64) float64 {
	a := math.Pi * math.Pi * o.Nu * o.Nu
	u := t - o.Tau
	return -2.0 * a * o.A * u * (3.0 - 2.0*a*u*u) * math.Exp(-a*u*u)
}

// H returns d²f/dt²
func (o *Ricker) H(t float64, x []float64) float64 {
	a := math.Pi * math.Pi * o.Nu * o.Nu
	u2 := (t - o.Tau) * (t - o.Tau)
	return -2.0 * a * o.A * (3.0 - 12.0*a*u2 + 4.0*a*a*u2*u2) * math.Exp(-a*u2)
}

// Grad returns the spatial gradient, identically zero
func (o *Ricker) Grad(v []float64, t float64, x []float64) {
	for i := range v {
		v[i] = 0
	}
}

// Table interpolates tabulated samples Y with constant sampling interval Dt,
// linearly between samples and zero outside the tabulated range
type Table struct {
	Dt float64   // sampling interval
	Y  []float64 // samples, first at t=0
}

// NewTable returns an initialized tabulated function
func NewTable(dt float64, y []float64) (*Table, error) {
	if dt <= 0 {
		return nil, chk.Err("table: sampling interval must be positive; got %g", dt)
	}
	if len(y) < 2 {
		return nil, chk.Err("table: need at least 2 samples; got %d", len(y))
	}
	return &Table{Dt: dt, Y: y}, nil
}

// Init sets the parameters: "dt". Samples are given to the constructor.
func (o *Table) Init(prms fun.Prms) (err error) {
	for _, p := range prms {
		switch p.N {
		case "dt":
			o.Dt = p.V
		default:
			return chk.Err("table: parameter named %q is invalid", p.N)
		}
	}
	if o.Dt <= 0 {
		return chk.Err("table: sampling interval must be positive; got %g", o.Dt)
	}
	return
}

// F returns the linear interpolation of the samples at t
func (o *Table) F(t float64, x []float64) float64 {
	if t < 0 || t > float64(len(o.Y)-1)*o.Dt {
		return 0
	}
	i := int(t / o.Dt)
	if i >= len(o.Y)-1 {
		return o.Y[len(o.Y)-1]
	}
	w := t/o.Dt - float64(i)
	return (1.0-w)*o.Y[i] + w*o.Y[i+1]
}

// G returns the piecewise-constant slope of the samples at t
func (o *Table) G(t float64, x []float64) float64 {
	if t < 0 || t > float64(len(o.Y)-1)*o.Dt {
		return 0
	}
	i := int(t / o.Dt)
	if i >= len(o.Y)-1 {
		i = len(o.Y) - 2
	}
	return (o.Y[i+1] - o.Y[i]) / o.Dt
}

// H returns zero: the interpolation is piecewise linear
func (o *Table) H(t float64, x []float64) float64 {
	return 0
}

// Grad returns the spatial gradient, identically zero
func (o *Table) Grad(v []float64, t float64, x []float64) {
	for i := range v {
		v[i] = 0
	}
}

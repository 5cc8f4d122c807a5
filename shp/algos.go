// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// constants
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// InvMap computes the natural coordinates r, given the real coordinate y
//  Input:
//   y[ndim]          -- the 2D/3D point coordinates
//   x[ndim][nverts]  -- coordinates matrix of the cell
//  Output:
//   r[3] -- the natural coordinates of the given point
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	e := make([]float64, o.Gndim)  // residual
	δr := make([]float64, o.Gndim) // corrector
	r[0], r[1], r[2] = 0, 0, 0     // first trial

	// affine cells: a single linearisation is exact
	nit := INVMAP_NIT
	if o.Simplex {
		nit = 1
	}

	var δRnorm float64
	derivs := true
	for it := 0; it < nit; it++ {

		// shape functions and derivatives
		o.Func(o.S, o.DSdR, r, derivs)

		// residual: e = y - x * S
		for i := 0; i < o.Gndim; i++ {
			e[i] = y[i]
			for j := 0; j < o.Nverts; j++ {
				e[i] -= x[i][j] * o.S[j]
			}
		}

		// Jmat == dxdR = x * dSdR
		for i := 0; i < len(x); i++ {
			for j := 0; j < o.Gndim; j++ {
				o.DxdR[i][j] = 0.0
				for k := 0; k < o.Nverts; k++ {
					o.DxdR[i][j] += x[i][k] * o.DSdR[k][j]
				}
			}
		}

		// Jimat == dRdx = inv(Jmat)
		o.J, err = la.MatInv(o.DRdx, o.DxdR, MINDET)
		if err != nil {
			return
		}

		// corrector: dR = Jimat * e
		for i := 0; i < o.Gndim; i++ {
			δr[i] = 0.0
			for j := 0; j < o.Gndim; j++ {
				δr[i] += o.DRdx[i][j] * e[j]
			}
		}

		// converged?
		δRnorm = 0.0
		for i := 0; i < o.Gndim; i++ {
			r[i] += δr[i]
			δRnorm += δr[i] * δr[i]
			// snap r onto the reference boundary
			if r[i] < -1.0 || r[i] > 1.0 {
				if math.Abs(r[i]-(-1.0)) < INVMAP_TOL {
					r[i] = -1.0
				}
				if math.Abs(r[i]-1.0) < INVMAP_TOL {
					r[i] = 1.0
				}
			}
		}
		if math.Sqrt(δRnorm) < INVMAP_TOL {
			break
		}
	}
	return
}

// CellBryDist returns the shortest signed distance between R and the boundary
// of the cell in natural coordinates; negative values are outside
func (o *Shape) CellBryDist(R []float64) float64 {
	r, s, t := R[0], R[1], 0.0
	if len(R) > 2 {
		t = R[2]
	}
	switch o.Gtype {
	case "tri":
		return utl.Min((1.0+r)/2.0, utl.Min((1.0+s)/2.0, -(r+s)/2.0))
	case "qua":
		return utl.Min(1.0-math.Abs(r), 1.0-math.Abs(s))
	case "hex":
		return utl.Min(1.0-math.Abs(r), utl.Min(1.0-math.Abs(s), 1.0-math.Abs(t)))
	case "tet":
		return utl.Min((1.0+r)/2.0, utl.Min((1.0+s)/2.0, utl.Min((1.0+t)/2.0, -(1.0+r+s+t)/2.0)))
	}
	chk.Panic("cannot handle Gtype=%q", o.Gtype)
	return 0
}

// CheckHull tests whether the real point y lies within the cell with
// coordinates x, within tolerance tol on the natural coordinates. A cheap
// bounding-box rejection runs before the inverse map. On success the natural
// coordinates of y are left in r[3].
func (o *Shape) CheckHull(r, y []float64, x [][]float64, tol float64) (inside bool, err error) {

	// bounding box rejection
	for i := 0; i < o.Gndim; i++ {
		bmin, bmax := x[i][0], x[i][0]
		for n := 1; n < o.Nverts; n++ {
			bmin = utl.Min(bmin, x[i][n])
			bmax = utl.Max(bmax, x[i][n])
		}
		margin := tol * (bmax - bmin)
		if y[i] < bmin-margin || y[i] > bmax+margin {
			return false, nil
		}
	}

	// inverse map and boundary distance
	if err = o.InvMap(r, y, x); err != nil {
		return false, err
	}
	return o.CellBryDist(r) >= -tol, nil
}

// Centroid returns the vertex-averaged centroid of the cell
func (o *Shape) Centroid(x [][]float64) (c []float64) {
	c = make([]float64, o.Gndim)
	for i := 0; i < o.Gndim; i++ {
		for n := 0; n < o.Nverts; n++ {
			c[i] += x[i][n]
		}
		c[i] /= float64(o.Nverts)
	}
	return
}

// NodalPoints maps the reference coordinates rcoords[npts][gndim] through the
// geometric map, returning the physical coordinates [npts][gndim]
func (o *Shape) NodalPoints(x [][]float64, rcoords [][]float64) (y [][]float64) {
	y = la.MatAlloc(len(rcoords), o.Gndim)
	for p, r := range rcoords {
		rr := []float64{0, 0, 0}
		copy(rr, r)
		o.Func(o.S, o.DSdR, rr, false)
		for i := 0; i < o.Gndim; i++ {
			for n := 0; n < o.Nverts; n++ {
				y[p][i] += o.S[n] * x[i][n]
			}
		}
	}
	return
}

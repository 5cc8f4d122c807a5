// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckShapeFace checks that the face shape functions evaluate to 1.0 @ the
// face vertices and that Fnvec points outward
func CheckShapeFace(tst *testing.T, shape *Shape, x [][]float64, tol float64, verbose bool) {

	nfaces := len(shape.FaceLocalVerts)
	rf := []float64{0, 0}
	faceNat := Get(shape.FaceType, 0).NatCoords
	for k := 0; k < nfaces; k++ {

		// delta property on the face
		errS := 0.0
		for n := 0; n < shape.FaceNverts; n++ {
			for i := 0; i < shape.Gndim-1; i++ {
				rf[i] = faceNat[i][n]
			}
			shape.FaceFunc(shape.Sf, shape.DSfdRf, rf, false)
			for m := 0; m < shape.FaceNverts; m++ {
				if n == m {
					errS += math.Abs(shape.Sf[m] - 1.0)
				} else {
					errS += math.Abs(shape.Sf[m])
				}
			}
		}
		if verbose {
			io.Pforan("face %d: errS = %g\n", k, errS)
		}
		if errS > tol {
			tst.Errorf("%s face %d failed with err = %g\n", shape.Type, k, errS)
			return
		}

		// Fnvec must point from the face centre away from the cell centroid
		rf[0], rf[1] = 0, 0
		if shape.FaceType == "tri3" {
			rf[0], rf[1] = -1.0/3.0, -1.0/3.0
		}
		if err := shape.CalcAtFaceR(x, rf, k); err != nil {
			tst.Errorf("CalcAtFaceR failed:\n%v", err)
			return
		}
		c := shape.Centroid(x)
		fc := make([]float64, shape.Gndim)
		for i := 0; i < shape.Gndim; i++ {
			for j, n := range shape.FaceLocalVerts[k] {
				fc[i] += shape.Sf[j] * x[i][n]
			}
		}
		dot := 0.0
		for i := 0; i < shape.Gndim; i++ {
			dot += shape.Fnvec[i] * (fc[i] - c[i])
		}
		if dot <= 0 {
			tst.Errorf("%s face %d normal is not outward (dot = %g)\n", shape.Type, k, dot)
			return
		}
	}
}

// CheckDSdR checks dSdR derivatives of shape structures against numerical
// differentiation
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// auxiliary
	r_tmp := make([]float64, len(r))
	S_tmp := make([]float64, shape.Nverts)

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)

	// numerical
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSndRi, _ := num.DerivCentral(func(t float64, args ...interface{}) (Sn float64) {
				copy(r_tmp, r)
				r_tmp[i] = t
				shape.Func(S_tmp, nil, r_tmp, false)
				Sn = S_tmp[n]
				return
			}, r[i], 1e-1)
			if verbose {
				io.Pfgrey2("  dS%ddR%d @ %v = %v (num: %v)\n", n, i, r, shape.DSdR[n][i], dSndRi)
			}
			if math.Abs(shape.DSdR[n][i]-dSndRi) > tol {
				tst.Errorf("dS%ddR%d failed with err = %g\n", n, i, math.Abs(shape.DSdR[n][i]-dSndRi))
				return
			}
		}
	}
}

// CheckDSdx checks G=dSdx derivatives of shape structures against numerical
// differentiation in real coordinates
func CheckDSdx(tst *testing.T, shape *Shape, xmat [][]float64, x []float64, tol float64, verbose bool) {

	// find r corresponding to x
	r := make([]float64, 3)
	err := shape.InvMap(r, x, xmat)
	if err != nil {
		tst.Errorf("InvMap failed:\n%v", err)
		return
	}

	// analytical
	err = shape.CalcAtR(xmat, r, true)
	if err != nil {
		tst.Errorf("CalcAtR failed:\n%v", err)
		return
	}

	// numerical
	x_tmp := make([]float64, len(x))
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSnDxi, _ := num.DerivCentral(func(t float64, args ...interface{}) (Sn float64) {
				copy(x_tmp, x)
				x_tmp[i] = t
				err = shape.InvMap(r, x_tmp, xmat)
				if err != nil {
					tst.Errorf("InvMap failed:\n%v", err)
					return
				}
				err = shape.CalcAtR(xmat, r, false)
				if err != nil {
					tst.Errorf("CalcAtR failed:\n%v", err)
					return
				}
				Sn = shape.S[n]
				return
			}, x[i], 1e-1)
			if verbose {
				io.Pfgrey2("  dS%dDx%d @ %v = %v (num: %v)\n", n, i, x, shape.G[n][i], dSnDxi)
			}
			if math.Abs(shape.G[n][i]-dSnDxi) > tol {
				tst.Errorf("dS%dDx%d failed with err = %g\n", n, i, math.Abs(shape.G[n][i]-dSnDxi))
				return
			}
		}
	}
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/la"

// shape functions of tri3. reference domain:
//
//     s
//     |
//    (2) (-1,1)
//     | \
//     |   \
//     |     \
//     |       \
//    (0)-------(1) --- r
//  (-1,-1)    (1,-1)
//
func Tri3(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = -(r[0] + r[1]) / 2.0
	S[1] = (1.0 + r[0]) / 2.0
	S[2] = (1.0 + r[1]) / 2.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -0.5, -0.5
	dSdR[1][0], dSdR[1][1] = 0.5, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 0.5
}

func init() {
	o := new(Shape)
	o.Type = "tri3"
	o.Gtype = "tri"
	o.Func = Tri3
	o.FaceFunc = Lin2
	o.FaceType = "lin2"
	o.Gndim = 2
	o.Nverts = 3
	o.VtkCode = 5
	o.FaceNverts = 2
	o.FaceLocalVerts = [][]int{{0, 1}, {1, 2}, {2, 0}}
	o.NatCoords = [][]float64{
		{-1, 1, -1},
		{-1, -1, 1},
	}
	o.Simplex = true
	o.init_scratchpad()
	factory["tri3"] = o
}

// Lin2 computes the shape functions of a 2-node segment on u in [-1,1]
func Lin2(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = (1.0 - r[0]) / 2.0
	S[1] = (1.0 + r[0]) / 2.0
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

func init() {
	o := new(Shape)
	o.Type = "lin2"
	o.Gtype = "lin"
	o.Func = Lin2
	o.Gndim = 1
	o.Nverts = 2
	o.VtkCode = 3
	o.NatCoords = [][]float64{{-1, 1}}
	o.S = make([]float64, o.Nverts)
	o.DSdR = la.MatAlloc(o.Nverts, 1)
	factory["lin2"] = o
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// shape functions of hex8. vertices 0-3 are the bottom face (t=-1)
// counter-clockwise, 4-7 the top face (t=+1) above them:
//
//      (7)-----------(6)
//      /|            /|
//     / |           / |
//   (4)-----------(5) |
//    |  |          |  |
//    | (3)---------|-(2)
//    | /           | /
//    |/            |/
//   (0)-----------(1)
//
func Hex8(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	rr := [8]float64{-1, 1, 1, -1, -1, 1, 1, -1}
	ss := [8]float64{-1, -1, 1, 1, -1, -1, 1, 1}
	tt := [8]float64{-1, -1, -1, -1, 1, 1, 1, 1}
	for m := 0; m < 8; m++ {
		S[m] = (1.0 + r[0]*rr[m]) * (1.0 + r[1]*ss[m]) * (1.0 + r[2]*tt[m]) / 8.0
	}
	if !derivs {
		return
	}
	for m := 0; m < 8; m++ {
		dSdR[m][0] = rr[m] * (1.0 + r[1]*ss[m]) * (1.0 + r[2]*tt[m]) / 8.0
		dSdR[m][1] = ss[m] * (1.0 + r[0]*rr[m]) * (1.0 + r[2]*tt[m]) / 8.0
		dSdR[m][2] = tt[m] * (1.0 + r[0]*rr[m]) * (1.0 + r[1]*ss[m]) / 8.0
	}
}

func init() {
	o := new(Shape)
	o.Type = "hex8"
	o.Gtype = "hex"
	o.Func = Hex8
	o.FaceFunc = Qua4
	o.FaceType = "qua4"
	o.Gndim = 3
	o.Nverts = 8
	o.VtkCode = 12
	o.FaceNverts = 4
	o.FaceLocalVerts = [][]int{
		{0, 4, 7, 3}, {1, 2, 6, 5},
		{0, 1, 5, 4}, {2, 3, 7, 6},
		{0, 3, 2, 1}, {4, 5, 6, 7},
	}
	o.EdgeLocalVerts = [][]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	o.NatCoords = [][]float64{
		{-1, 1, 1, -1, -1, 1, 1, -1},
		{-1, -1, 1, 1, -1, -1, 1, 1},
		{-1, -1, -1, -1, 1, 1, 1, 1},
	}
	o.init_scratchpad()
	factory["hex8"] = o
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// shape functions of tet4. reference vertices: (-1,-1,-1), (1,-1,-1),
// (-1,1,-1) and (-1,-1,1)
func Tet4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = -(1.0 + r[0] + r[1] + r[2]) / 2.0
	S[1] = (1.0 + r[0]) / 2.0
	S[2] = (1.0 + r[1]) / 2.0
	S[3] = (1.0 + r[2]) / 2.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1], dSdR[0][2] = -0.5, -0.5, -0.5
	dSdR[1][0], dSdR[1][1], dSdR[1][2] = 0.5, 0.0, 0.0
	dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0.0, 0.5, 0.0
	dSdR[3][0], dSdR[3][1], dSdR[3][2] = 0.0, 0.0, 0.5
}

func init() {
	o := new(Shape)
	o.Type = "tet4"
	o.Gtype = "tet"
	o.Func = Tet4
	o.FaceFunc = Tri3
	o.FaceType = "tri3"
	o.Gndim = 3
	o.Nverts = 4
	o.VtkCode = 10
	o.FaceNverts = 3
	o.FaceLocalVerts = [][]int{{0, 3, 2}, {0, 1, 3}, {0, 2, 1}, {1, 2, 3}}
	o.EdgeLocalVerts = [][]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}
	o.NatCoords = [][]float64{
		{-1, 1, -1, -1},
		{-1, -1, 1, -1},
		{-1, -1, -1, 1},
	}
	o.Simplex = true
	o.init_scratchpad()
	factory["tet4"] = o
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// shape functions of qua4. reference domain:
//
//   (-1,1)        (1,1)
//    (3)-----------(2)
//     |      s      |
//     |      |      |
//     |      +--r   |
//     |             |
//     |             |
//    (0)-----------(1)
//  (-1,-1)        (1,-1)
//
func Qua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = (1.0 - r[0]) * (1.0 - r[1]) / 4.0
	S[1] = (1.0 + r[0]) * (1.0 - r[1]) / 4.0
	S[2] = (1.0 + r[0]) * (1.0 + r[1]) / 4.0
	S[3] = (1.0 - r[0]) * (1.0 + r[1]) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -(1.0-r[1])/4.0, -(1.0-r[0])/4.0
	dSdR[1][0], dSdR[1][1] = (1.0-r[1])/4.0, -(1.0+r[0])/4.0
	dSdR[2][0], dSdR[2][1] = (1.0+r[1])/4.0, (1.0+r[0])/4.0
	dSdR[3][0], dSdR[3][1] = -(1.0+r[1])/4.0, (1.0-r[0])/4.0
}

func init() {
	o := new(Shape)
	o.Type = "qua4"
	o.Gtype = "qua"
	o.Func = Qua4
	o.FaceFunc = Lin2
	o.FaceType = "lin2"
	o.Gndim = 2
	o.Nverts = 4
	o.VtkCode = 9
	o.FaceNverts = 2
	o.FaceLocalVerts = [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	o.NatCoords = [][]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}
	o.init_scratchpad()
	factory["qua4"] = o
}

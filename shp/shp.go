// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements the geometric maps of the supported cell types:
// tri3, qua4, tet4 and hex8. The vertex-based shape functions here carry the
// element geometry only; the high-order field bases live in the element
// layer on top of the ref tables.
package shp

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data and scratchpad buffers of one cell type
type Shape struct {

	// geometry
	Type           string      // name; e.g. "qua4"
	Gtype          string      // basic geometry key: "tri", "qua", "tet", "hex"
	Func           ShpFunc     // shape/derivs callback
	FaceFunc       ShpFunc     // face shape/derivs callback
	FaceType       string      // geometry of face; e.g. "hex8" => "qua4"
	Gndim          int         // space dimension of the shape
	Nverts         int         // number of vertices in cell
	VtkCode        int         // VTK code
	FaceNverts     int         // number of vertices on face
	FaceLocalVerts [][]int     // face local vertices [nfaces][FaceNverts]
	EdgeLocalVerts [][]int     // 3D only: edge local vertices [nedges][2]
	NatCoords      [][]float64 // natural coordinates of vertices [gndim][nverts]
	Simplex        bool        // affine map: Jacobian constant over the cell

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] dSdx
	J    float64     // determinant of dxdR
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] inverse(dxdR)

	// scratchpad: face
	Sf     []float64   // [FaceNverts] face shape function values
	Fnvec  []float64   // [gndim] face normal vector multiplied by the face Jacobian
	DSfdRf [][]float64 // [FaceNverts][gndim-1] derivatives of Sf w.r.t face natural coordinates
	DxfdRf [][]float64 // [gndim][gndim-1] derivatives of real coordinates w.r.t face natural coordinates
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {
	var p Shape
	p.Type = o.Type
	p.Gtype = o.Gtype
	p.Func = o.Func
	p.FaceFunc = o.FaceFunc
	p.FaceType = o.FaceType
	p.Gndim = o.Gndim
	p.Nverts = o.Nverts
	p.VtkCode = o.VtkCode
	p.FaceNverts = o.FaceNverts
	p.FaceLocalVerts = utl.IntsClone(o.FaceLocalVerts)
	p.EdgeLocalVerts = utl.IntsClone(o.EdgeLocalVerts)
	p.NatCoords = la.MatClone(o.NatCoords)
	p.Simplex = o.Simplex
	p.S = la.VecClone(o.S)
	p.G = la.MatClone(o.G)
	p.J = o.J
	p.DSdR = la.MatClone(o.DSdR)
	p.DxdR = la.MatClone(o.DxdR)
	p.DRdx = la.MatClone(o.DRdx)
	p.Sf = la.VecClone(o.Sf)
	p.Fnvec = la.VecClone(o.Fnvec)
	p.DSfdRf = la.MatClone(o.DSfdRf)
	p.DxfdRf = la.MatClone(o.DxfdRf)
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// CalcAtR calculates volume data such as S and G at natural coordinates r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of the cell
//   r[gndim]        -- natural coordinates
//   derivs          -- also compute DxdR, DRdx, G and J
func (o *Shape) CalcAtR(x [][]float64, r []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J, err = la.MatInv(o.DRdx, o.DxdR, MINDET)
	if err != nil {
		return
	}

	// G == dSdx := dSdR * dRdx
	la.MatMul(o.G, 1, o.DSdR, o.DRdx)
	return
}

// CalcAtFaceR calculates face data such as Sf and Fnvec at face natural
// coordinates rf
//  Input:
//   x[ndim][nverts] -- coordinates matrix of the cell
//   rf[gndim-1]     -- face natural coordinates
//   idxface         -- local index of face
func (o *Shape) CalcAtFaceR(x [][]float64, rf []float64, idxface int) (err error) {

	// Sf and dSfdRf
	o.FaceFunc(o.Sf, o.DSfdRf, rf, true)

	// dxfdRf := sum_n x * dSfdRf
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim-1; j++ {
			o.DxfdRf[i][j] = 0.0
			for k, n := range o.FaceLocalVerts[idxface] {
				o.DxfdRf[i][j] += x[i][n] * o.DSfdRf[k][j]
			}
		}
	}

	// face normal vector scaled by the face Jacobian
	if o.Gndim == 2 {
		o.Fnvec[0] = o.DxfdRf[1][0]
		o.Fnvec[1] = -o.DxfdRf[0][0]
		return
	}
	o.Fnvec[0] = o.DxfdRf[1][0]*o.DxfdRf[2][1] - o.DxfdRf[2][0]*o.DxfdRf[1][1]
	o.Fnvec[1] = o.DxfdRf[2][0]*o.DxfdRf[0][1] - o.DxfdRf[0][0]*o.DxfdRf[2][1]
	o.Fnvec[2] = o.DxfdRf[0][0]*o.DxfdRf[1][1] - o.DxfdRf[1][0]*o.DxfdRf[0][1]
	return
}

// init_scratchpad initialises the scratchpad buffers
func (o *Shape) init_scratchpad() {

	// volume data
	o.S = make([]float64, o.Nverts)
	o.DSdR = la.MatAlloc(o.Nverts, o.Gndim)
	o.DxdR = la.MatAlloc(o.Gndim, o.Gndim)
	o.DRdx = la.MatAlloc(o.Gndim, o.Gndim)
	o.G = la.MatAlloc(o.Nverts, o.Gndim)

	// face data
	o.Sf = make([]float64, o.FaceNverts)
	o.DSfdRf = la.MatAlloc(o.FaceNverts, o.Gndim-1)
	o.DxfdRf = la.MatAlloc(o.Gndim, o.Gndim-1)
	o.Fnvec = make([]float64, o.Gndim)
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import "sort"

// edgeLocalVerts returns the local vertex pairs of the cell edges. In 2D the
// edges of a cell are its faces.
func edgeLocalVerts(c *Cell) [][]int {
	if c.Shp.Gndim == 2 {
		return c.Shp.FaceLocalVerts
	}
	return c.Shp.EdgeLocalVerts
}

// buildEdges enumerates the global edges in cell-id/local-edge traversal
// order. An edge is keyed by its sorted vertex pair and directed from the
// lower to the higher vertex id; cells record whether their local direction
// runs against the global one.
func (o *Mesh) buildEdges() {
	emap := make(map[[2]int]int)
	for _, c := range o.Cells {
		elv := edgeLocalVerts(c)
		c.Edges = make([]int, len(elv))
		c.EdgeRev = make([]bool, len(elv))
		for i, e := range elv {
			a, b := c.Verts[e[0]], c.Verts[e[1]]
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			key := [2]int{lo, hi}
			id, ok := emap[key]
			if !ok {
				id = len(o.EdgeVerts)
				emap[key] = id
				o.EdgeVerts = append(o.EdgeVerts, []int{lo, hi})
			}
			c.Edges[i] = id
			c.EdgeRev[i] = a > b
		}
	}
}

// buildFaces enumerates the global faces of a 3D mesh in cell-id/local-face
// traversal order. A face is keyed by its sorted vertex tuple; the first cell
// to touch a face owns it and its vertex ordering defines the face frame used
// by the section numbering.
func (o *Mesh) buildFaces() {
	fmap := make(map[[4]int]int)
	for _, c := range o.Cells {
		flv := c.Shp.FaceLocalVerts
		c.Faces = make([]int, len(flv))
		for i, f := range flv {
			gv := make([]int, len(f))
			for j, l := range f {
				gv[j] = c.Verts[l]
			}
			key := faceKey(gv)
			id, ok := fmap[key]
			if !ok {
				id = len(o.FaceVerts)
				fmap[key] = id
				o.FaceVerts = append(o.FaceVerts, gv)
			}
			c.Faces[i] = id
		}
	}
}

func faceKey(gv []int) (key [4]int) {
	key = [4]int{-1, -1, -1, -1}
	s := append([]int{}, gv...)
	sort.Ints(s)
	copy(key[:], s)
	return
}

// quaFaceMap maps the interior lattice point (i,j) of a quadrilateral face,
// as traversed by a cell whose face vertex ordering is C, to the lattice
// frame of the face owner whose ordering is O. Both frames put the first
// index along vertex 0 to 1 and the second along vertex 0 to 3; n is the
// polynomial order.
func quaFaceMap(O, C []int, n, i, j int) (io, jo int) {
	k := 0
	for O[k] != C[0] {
		k++
	}
	if O[(k+1)%4] != C[1] {
		i, j = j, i
	}
	switch k {
	case 0:
		io, jo = i, j
	case 1:
		io, jo = n-j, i
	case 2:
		io, jo = n-i, n-j
	default:
		io, jo = j, n-i
	}
	return
}

// triFaceRank returns the position of the face node attached to global
// vertex gv within the face's global numbering, which orders the three nodes
// by increasing id of their attached vertex.
func triFaceRank(faceVerts []int, gv int) int {
	rank := 0
	for _, w := range faceVerts {
		if w < gv {
			rank++
		}
	}
	return rank
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package msh implements the mesh graph and the global degree-of-freedom
// section used by the assembly loop: deterministic edge and face enumeration,
// a continuous scalar numbering over vertices, edges, faces and cell
// interiors, closure extraction/injection with orientation handling, and
// named sidesets for boundary conditions.
package msh

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/seismech/gosem/shp"
)

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type: "tri3", "qua4", "tet4" or "hex8"
	Verts []int  // vertices
	FTags []int  // edge (2D) or face (3D) tags

	// derived
	Shp     *shp.Shape // shape structure
	Gtype   string     // basic geometry key: "tri", "qua", "tet", "hex"
	Edges   []int      // global edge ids, one per local edge
	EdgeRev []bool     // local edge runs against the global low-to-high direction
	Faces   []int      // 3D only: global face ids, one per local face
}

// CellFaceId holds a cell and one of its local face indices
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // local face id
}

// Mesh holds a vertex-cell graph plus the derived edge and face tables
type Mesh struct {

	// from JSON
	Verts    []*Vert        // vertices
	Cells    []*Cell        // cells
	Sidesets map[string]int // sideset name => face tag

	// derived
	Ndim       int     // space dimension
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate

	// derived: entities
	EdgeVerts [][]int // global edge => {low, high} vertex ids
	FaceVerts [][]int // 3D only: global face => vertex ids in owner-cell order

	// derived: maps
	VertTag2verts map[int][]*Vert      // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell      // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId // face tag => set of (cell, local face)
}

// ReadMsh reads a mesh from a JSON file and computes the derived data
func ReadMsh(fn string) (o *Mesh, err error) {
	b, err := io.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", fn, err)
	}
	o = new(Mesh)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot decode mesh file %q:\n%v", fn, err)
	}
	if err = o.Init(); err != nil {
		return nil, err
	}
	return
}

// NewMesh builds a mesh from in-memory data and computes the derived data
func NewMesh(verts []*Vert, cells []*Cell, sidesets map[string]int) (o *Mesh, err error) {
	o = &Mesh{Verts: verts, Cells: cells, Sidesets: sidesets}
	if err = o.Init(); err != nil {
		return nil, err
	}
	return
}

// Init computes the derived data: space dimension, bounding box, tag maps,
// shape structures and the global edge/face enumeration
func (o *Mesh) Init() (err error) {

	// vertices
	if len(o.Verts) < 2 {
		return chk.Err("mesh has too few vertices: %d", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh has no cells")
	}
	o.Ndim = len(o.Verts[0].C)
	if o.Ndim < 2 || o.Ndim > 3 {
		return chk.Err("mesh must be 2D or 3D; vertex 0 has %d coordinates", o.Ndim)
	}
	o.Xmin, o.Xmax = o.Verts[0].C[0], o.Verts[0].C[0]
	o.Ymin, o.Ymax = o.Verts[0].C[1], o.Verts[0].C[1]
	if o.Ndim == 3 {
		o.Zmin, o.Zmax = o.Verts[0].C[2], o.Verts[0].C[2]
	}
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertex ids must be sequential: vertex %d has id %d", i, v.Id)
		}
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d has %d coordinates; mesh is %dD", i, len(v.C), o.Ndim)
		}
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
		if o.Ndim == 3 {
			o.Zmin = utl.Min(o.Zmin, v.C[2])
			o.Zmax = utl.Max(o.Zmax, v.C[2])
		}
	}

	// cells
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cell ids must be sequential: cell %d has id %d", i, c.Id)
		}
		c.Shp = shp.Get(c.Type, 0)
		if c.Shp == nil {
			return chk.Err("cell %d has unknown type %q", i, c.Type)
		}
		c.Gtype = c.Shp.Gtype
		if c.Shp.Gndim != o.Ndim {
			return chk.Err("cell %d (%s) does not fit a %dD mesh", i, c.Type, o.Ndim)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d (%s) needs %d vertices; got %d", i, c.Type, c.Shp.Nverts, len(c.Verts))
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d references unknown vertex %d", i, v)
			}
		}
		nfaces := len(c.Shp.FaceLocalVerts)
		if len(c.FTags) != 0 && len(c.FTags) != nfaces {
			return chk.Err("cell %d (%s) needs %d face tags; got %d", i, c.Type, nfaces, len(c.FTags))
		}
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)
		for f, ftag := range c.FTags {
			if ftag < 0 {
				o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, f})
			}
		}
	}

	// entities
	o.buildEdges()
	if o.Ndim == 3 {
		o.buildFaces()
	}
	return
}

// Boundary returns the element faces of a named sideset as a map from cell id
// to the local face indices lying on that sideset
func (o *Mesh) Boundary(name string) (map[int][]int, error) {
	tag, ok := o.Sidesets[name]
	if !ok {
		return nil, chk.Err("mesh has no sideset named %q", name)
	}
	res := make(map[int][]int)
	for _, cf := range o.FaceTag2cells[tag] {
		res[cf.C.Id] = append(res[cf.C.Id], cf.Fid)
	}
	return res, nil
}

// CellCoords returns the coordinates matrix x[ndim][nverts] of cell c
func (o *Mesh) CellCoords(c int) [][]float64 {
	cell := o.Cells[c]
	x := la.MatAlloc(o.Ndim, len(cell.Verts))
	for n, v := range cell.Verts {
		for i := 0; i < o.Ndim; i++ {
			x[i][n] = o.Verts[v].C[i]
		}
	}
	return x
}

// Diag returns the length of the bounding-box diagonal
func (o *Mesh) Diag() float64 {
	dx := o.Xmax - o.Xmin
	dy := o.Ymax - o.Ymin
	dz := o.Zmax - o.Zmin
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// String returns a short description of the mesh
func (o *Mesh) String() string {
	return io.Sf("mesh: %dD, %d vertices, %d cells, %d edges, %d faces, %d sidesets",
		o.Ndim, len(o.Verts), len(o.Cells), len(o.EdgeVerts), len(o.FaceVerts), len(o.Sidesets))
}

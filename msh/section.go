// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"

	"github.com/seismech/gosem/ref"
)

// Mode selects how closure values are injected into a global vector
type Mode int

const (
	Insert Mode = iota // overwrite
	Add                // accumulate
)

// Section maps the mesh points (vertices, edges, faces and cell interiors) to
// a continuous scalar numbering and holds the per-cell local-to-global tables
// in tensor order. Shared points receive one set of dofs regardless of how
// neighbouring cells are oriented around them.
type Section struct {
	Msh   *Mesh // the mesh
	N     int   // polynomial order
	Ncomp int   // field components per scalar dof
	Ndofs int   // total number of scalar dofs

	l2g [][]int // cell => local tensor index => global scalar index
}

// NewSection numbers the dofs of mesh m at polynomial order n with ncomp
// field components and builds the per-cell local-to-global tables
func NewSection(m *Mesh, n, ncomp int) (o *Section, err error) {
	if ncomp < 1 {
		return nil, chk.Err("section needs at least one field component; got %d", ncomp)
	}
	o = &Section{Msh: m, N: n, Ncomp: ncomp}

	// scalar offsets: vertices, then edges, then faces, then cell interiors
	edof := n - 1
	edgeOff0 := len(m.Verts)
	faceOffs := make([]int, len(m.FaceVerts))
	off := edgeOff0 + len(m.EdgeVerts)*edof
	for f, fv := range m.FaceVerts {
		faceOffs[f] = off
		off += faceDofCount(len(fv), n)
	}
	cellOffs := make([]int, len(m.Cells))
	cellInts := make([]int, len(m.Cells))
	for ci, c := range m.Cells {
		cellOffs[ci] = off
		nint, err := interiorDofCount(c.Gtype, n)
		if err != nil {
			return nil, err
		}
		cellInts[ci] = nint
		off += nint
	}
	o.Ndofs = off

	// per-cell tables: global dofs in topology order composed with the
	// topology-to-tensor closure permutation
	o.l2g = make([][]int, len(m.Cells))
	for ci, c := range m.Cells {
		p, err := ref.NumDofs(n, c.Gtype)
		if err != nil {
			return nil, chk.Err("cell %d (%s): %v", ci, c.Type, err)
		}
		topo := make([]int, 0, p)

		// vertices
		for _, v := range c.Verts {
			topo = append(topo, v)
		}

		// edge interiors, local direction mapped onto the global one
		for e, ge := range c.Edges {
			base := edgeOff0 + ge*edof
			for k := 0; k < edof; k++ {
				if c.EdgeRev[e] {
					topo = append(topo, base+edof-1-k)
				} else {
					topo = append(topo, base+k)
				}
			}
		}

		// face interiors, local frame mapped onto the owner frame
		if m.Ndim == 3 {
			for f, gf := range c.Faces {
				flv := c.Shp.FaceLocalVerts[f]
				if len(flv) == 4 {
					C := make([]int, 4)
					for j, l := range flv {
						C[j] = c.Verts[l]
					}
					for j := 1; j < n; j++ {
						for i := 1; i < n; i++ {
							io, jo := quaFaceMap(m.FaceVerts[gf], C, n, i, j)
							topo = append(topo, faceOffs[gf]+(io-1)+(jo-1)*(n-1))
						}
					}
				} else if n == 3 {
					for _, l := range flv {
						rank := triFaceRank(m.FaceVerts[gf], c.Verts[l])
						topo = append(topo, faceOffs[gf]+rank)
					}
				}
			}
		}

		// cell interior
		for k := 0; k < cellInts[ci]; k++ {
			topo = append(topo, cellOffs[ci]+k)
		}

		if len(topo) != p {
			return nil, chk.Err("cell %d (%s): numbered %d dofs; cell has %d", ci, c.Type, len(topo), p)
		}
		sigma, err := ref.Closure(n, c.Gtype)
		if err != nil {
			return nil, err
		}
		o.l2g[ci] = make([]int, p)
		for k, g := range topo {
			o.l2g[ci][sigma[k]] = g
		}
	}
	return
}

// CellDofs returns the global scalar dofs of cell c in tensor order.
// The returned slice is owned by the section.
func (o *Section) CellDofs(c int) []int { return o.l2g[c] }

// NumCellDofs returns the number of scalar dofs of cell c
func (o *Section) NumCellDofs(c int) int { return len(o.l2g[c]) }

// NewVector allocates a global vector, one row per component
func (o *Section) NewVector() [][]float64 { return la.MatAlloc(o.Ncomp, o.Ndofs) }

// ClosureGet extracts the element-local values of cell c from the global
// vector g, one row per component
func (o *Section) ClosureGet(g [][]float64, c int) [][]float64 {
	l := la.MatAlloc(o.Ncomp, len(o.l2g[c]))
	for ic := 0; ic < o.Ncomp; ic++ {
		for p, gp := range o.l2g[c] {
			l[ic][p] = g[ic][gp]
		}
	}
	return l
}

// ClosureSet injects the element-local values l of cell c into the global
// vector g, overwriting (Insert) or accumulating (Add)
func (o *Section) ClosureSet(g [][]float64, c int, mode Mode, l [][]float64) {
	for ic := 0; ic < o.Ncomp; ic++ {
		for p, gp := range o.l2g[c] {
			if mode == Add {
				g[ic][gp] += l[ic][p]
			} else {
				g[ic][gp] = l[ic][p]
			}
		}
	}
}

// Assemble completes ADD-mode accumulation of the global vector g, summing
// the contributions held by other processors when running distributed
func (o *Section) Assemble(g [][]float64) {
	if !mpi.IsOn() {
		return
	}
	w := make([]float64, o.Ndofs)
	for ic := 0; ic < o.Ncomp; ic++ {
		mpi.AllReduceSum(g[ic], w)
	}
}

// AssembleLumpedMass accumulates the element diagonal masses returned by the
// masses callback into a global scalar vector and reciprocates it
// componentwise. Every dof must end up with a strictly positive mass.
func (o *Section) AssembleLumpedMass(masses func(c int) []float64) (mi []float64, err error) {
	mass := make([]float64, o.Ndofs)
	for c := range o.Msh.Cells {
		me := masses(c)
		for p, gp := range o.l2g[c] {
			mass[gp] += me[p]
		}
	}
	if mpi.IsOn() {
		w := make([]float64, o.Ndofs)
		mpi.AllReduceSum(mass, w)
	}
	mi = make([]float64, o.Ndofs)
	for i, m := range mass {
		if m <= 0 {
			return nil, chk.Err("lumped mass at dof %d is not positive: %g", i, m)
		}
		mi[i] = 1.0 / m
	}
	return
}

func faceDofCount(nfaceverts, n int) int {
	if nfaceverts == 4 {
		return (n - 1) * (n - 1)
	}
	if n == 3 {
		return 3
	}
	return 0
}

func interiorDofCount(gtype string, n int) (int, error) {
	switch gtype {
	case "qua":
		return (n - 1) * (n - 1), nil
	case "hex":
		return (n - 1) * (n - 1) * (n - 1), nil
	case "tri":
		if n == 3 {
			return 3, nil
		}
		return 0, nil
	case "tet":
		if n == 3 {
			return 4, nil
		}
		return 0, nil
	}
	return 0, chk.Err("unknown cell geometry %q", gtype)
}

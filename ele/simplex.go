// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/seismech/gosem/ref"
	"github.com/seismech/gosem/shp"
)

// Simplex implements Core for tri and tet cells with the mass-lumped nodal
// bases. The geometric map is affine, so the Jacobian is computed once at
// construction; operators apply the dense reference derivative tables.
type Simplex struct {

	// essential
	gtype string            // "tri" or "tet"
	n     int               // polynomial order
	ndim  int               // space dimension
	p     int               // number of nodes
	shape *shp.Shape        // geometric map
	x     [][]float64       // vertex coordinates [ndim][nverts]
	tab   *ref.SimplexTable // nodal tables

	// affine geometric data
	detJ float64
	dRdx [][]float64 // [ndim][ndim]

	refc   [][]float64 // node reference coordinates [P][ndim]
	xyz    [][]float64 // node physical coordinates [P][ndim]
	vshape [][]float64 // vertex shape values at the nodes [P][nverts]

	// faces
	faceDofs [][]int     // node indices on each face [nfaces][nfnodes]
	faceWts  [][]float64 // face quadrature weights times surface Jacobian

	// material parameters interpolated to the nodes
	pars map[string][]float64

	minSpacing float64
}

// NewSimplex allocates the nodal core of one tri or tet cell
//  gtype -- "tri" or "tet"
//  n     -- polynomial order (1 or 3)
//  x     -- vertex coordinates [ndim][nverts]
func NewSimplex(gtype string, n int, x [][]float64) (o *Simplex, err error) {

	// shape and tables
	o = new(Simplex)
	o.gtype = gtype
	o.n = n
	switch gtype {
	case "tri":
		o.shape = shp.Get("tri3", 0).GetCopy()
		o.tab, err = ref.Tri(n)
	case "tet":
		o.shape = shp.Get("tet4", 0).GetCopy()
		o.tab, err = ref.Tet(n)
	default:
		return nil, chk.Err("NewSimplex: unknown geometry %q", gtype)
	}
	if err != nil {
		return nil, err
	}
	o.ndim = o.shape.Gndim
	o.p = o.tab.P
	if len(x) != o.ndim || len(x[0]) != o.shape.Nverts {
		return nil, chk.Err("NewSimplex: coordinates matrix must be [%d][%d]", o.ndim, o.shape.Nverts)
	}
	o.x = la.MatClone(x)
	o.pars = make(map[string][]float64)

	// affine Jacobian, evaluated once at the cell centre
	rc := []float64{0, 0, 0}
	for i := 0; i < o.ndim; i++ {
		for n := 0; n < o.shape.Nverts; n++ {
			rc[i] += o.shape.NatCoords[i][n]
		}
		rc[i] /= float64(o.shape.Nverts)
	}
	if err = o.shape.CalcAtR(o.x, rc, true); err != nil {
		return nil, err
	}
	if o.shape.J < shp.MINDET {
		return nil, chk.Err("cell has non-positive Jacobian: det(J)=%g", o.shape.J)
	}
	o.detJ = o.shape.J
	o.dRdx = la.MatClone(o.shape.DRdx)

	// node coordinates and vertex shape values
	o.refc = la.MatAlloc(o.p, o.ndim)
	for p := 0; p < o.p; p++ {
		o.refc[p][0] = o.tab.R[p]
		o.refc[p][1] = o.tab.S[p]
		if o.ndim == 3 {
			o.refc[p][2] = o.tab.T[p]
		}
	}
	o.xyz = o.shape.NodalPoints(o.x, o.refc)
	o.vshape = la.MatAlloc(o.p, o.shape.Nverts)
	rr := []float64{0, 0, 0}
	for p := 0; p < o.p; p++ {
		copy(rr, o.refc[p])
		o.shape.Func(o.shape.S, o.shape.DSdR, rr, false)
		copy(o.vshape[p], o.shape.S)
	}

	if err = o.initFaces(); err != nil {
		return nil, err
	}

	o.minSpacing = minPairDistance(o.xyz)
	return
}

// initFaces caches, per face, the node indices in topology order along the
// face and the lumped surface-quadrature weights. Edge and face nodes sit at
// the shared tri/qua parameters, so the surface rules match the neighbouring
// cells on conforming meshes.
func (o *Simplex) initFaces() error {
	nfaces := len(o.shape.FaceLocalVerts)
	o.faceDofs = make([][]int, nfaces)
	o.faceWts = make([][]float64, nfaces)

	// 2D: faces are straight edges carrying the 1D GLL rule
	if o.ndim == 2 {
		w1, err := ref.Weights(o.n)
		if err != nil {
			return err
		}
		for f := 0; f < nfaces; f++ {
			fv := o.shape.FaceLocalVerts[f]
			a, b := fv[0], fv[1]
			var dofs []int
			if o.n == 1 {
				dofs = []int{a, b}
			} else {
				dofs = []int{a, 3 + 2*f, 3 + 2*f + 1, b}
			}
			L := edgeLength(o.x, a, b)
			wts := make([]float64, len(dofs))
			for i := range dofs {
				wts[i] = w1[i] * L / 2.0
			}
			o.faceDofs[f] = dofs
			o.faceWts[f] = wts
		}
		return nil
	}

	// 3D: faces are flat triangles carrying the lumped tri rule; the surface
	// Jacobian is area/2 (the reference triangle has area 2)
	triTab, err := ref.Tri(o.n)
	if err != nil {
		return err
	}
	for f := 0; f < nfaces; f++ {
		fv := o.shape.FaceLocalVerts[f]
		dofs := o.tetFaceDofs(f, fv)
		A := triArea3(o.x, fv[0], fv[1], fv[2])
		wts := make([]float64, len(dofs))
		for i := range dofs {
			wts[i] = triTab.W[i] * A / 2.0
		}
		o.faceDofs[f] = dofs
		o.faceWts[f] = wts
	}
	return nil
}

// tetFaceDofs lists the cell node indices on one tet face in the topology
// order of the tri tables: face vertices, then two nodes per face edge along
// the edge direction, then the interior nodes
func (o *Simplex) tetFaceDofs(f int, fv []int) (dofs []int) {
	dofs = append(dofs, fv...)
	if o.n == 1 {
		return
	}
	edges := [][]int{{fv[0], fv[1]}, {fv[1], fv[2]}, {fv[2], fv[0]}}
	for _, e := range edges {
		ei, rev := findEdge(o.shape.EdgeLocalVerts, e[0], e[1])
		if rev {
			dofs = append(dofs, 4+2*ei+1, 4+2*ei)
		} else {
			dofs = append(dofs, 4+2*ei, 4+2*ei+1)
		}
	}
	for j := 0; j < 3; j++ {
		dofs = append(dofs, 16+3*f+j)
	}
	return
}

// findEdge locates the edge {a,b} in the edge list, reporting whether the
// stored direction is reversed
func findEdge(edges [][]int, a, b int) (idx int, reversed bool) {
	for i, e := range edges {
		if e[0] == a && e[1] == b {
			return i, false
		}
		if e[0] == b && e[1] == a {
			return i, true
		}
	}
	chk.Panic("edge {%d,%d} is not in the edge list", a, b)
	return
}

func edgeLength(x [][]float64, a, b int) float64 {
	d := 0.0
	for i := range x {
		δ := x[i][b] - x[i][a]
		d += δ * δ
	}
	return math.Sqrt(d)
}

// triArea3 returns the area of the triangle with vertices a,b,c in 3D
func triArea3(x [][]float64, a, b, c int) float64 {
	var u, v [3]float64
	for i := 0; i < 3; i++ {
		u[i] = x[i][b] - x[i][a]
		v[i] = x[i][c] - x[i][a]
	}
	cx := u[1]*v[2] - u[2]*v[1]
	cy := u[2]*v[0] - u[0]*v[2]
	cz := u[0]*v[1] - u[1]*v[0]
	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}

// geometry accessors

func (o *Simplex) NumDofs() int             { return o.p }
func (o *Simplex) NumDim() int              { return o.ndim }
func (o *Simplex) Order() int               { return o.n }
func (o *Simplex) Shape() *shp.Shape        { return o.shape }
func (o *Simplex) Coords() [][]float64      { return o.x }
func (o *Simplex) RefCoords() [][]float64   { return o.refc }
func (o *Simplex) NodalPoints() [][]float64 { return o.xyz }
func (o *Simplex) IsSimplex() bool          { return true }
func (o *Simplex) MinNodeSpacing() float64  { return o.minSpacing }
func (o *Simplex) FaceDofs(face int) []int  { return o.faceDofs[face] }

// Gradient computes the physical gradient of the nodal field f at every node
// with the dense reference derivative tables rotated by the affine inverse
// Jacobian
func (o *Simplex) Gradient(f []float64) [][]float64 {
	g := la.MatAlloc(o.p, o.ndim)
	dref := make([]float64, o.ndim)
	for p := 0; p < o.p; p++ {
		for k := range dref {
			dref[k] = 0
		}
		for j := 0; j < o.p; j++ {
			dref[0] += o.tab.Dr[p][j] * f[j]
			dref[1] += o.tab.Ds[p][j] * f[j]
			if o.ndim == 3 {
				dref[2] += o.tab.Dt[p][j] * f[j]
			}
		}
		for c := 0; c < o.ndim; c++ {
			for k := 0; k < o.ndim; k++ {
				g[p][c] += dref[k] * o.dRdx[k][c]
			}
		}
	}
	return g
}

// ApplyGradTestAndIntegrate computes r_i = int (grad phi_i) . F over the cell
func (o *Simplex) ApplyGradTestAndIntegrate(F [][]float64) []float64 {

	// rotate into reference coordinates and scale by the quadrature factor
	a := la.MatAlloc(o.ndim, o.p)
	for p := 0; p < o.p; p++ {
		c := o.tab.W[p] * o.detJ
		for k := 0; k < o.ndim; k++ {
			sum := 0.0
			for j := 0; j < o.ndim; j++ {
				sum += o.dRdx[k][j] * F[p][j]
			}
			a[k][p] = c * sum
		}
	}

	// contract with the transposed derivative tables
	r := make([]float64, o.p)
	for q := 0; q < o.p; q++ {
		sum := 0.0
		for p := 0; p < o.p; p++ {
			sum += o.tab.Dr[p][q] * a[0][p]
			sum += o.tab.Ds[p][q] * a[1][p]
			if o.ndim == 3 {
				sum += o.tab.Dt[p][q] * a[2][p]
			}
		}
		r[q] = sum
	}
	return r
}

// ApplyTestAndIntegrate computes r_i = w_i detJ f_i
func (o *Simplex) ApplyTestAndIntegrate(f []float64) []float64 {
	r := make([]float64, o.p)
	for p := 0; p < o.p; p++ {
		r[p] = o.tab.W[p] * o.detJ * f[p]
	}
	return r
}

// ApplyTestAndIntegrateEdge computes the surface integral of f restricted to
// one face, returning a full-length nodal vector with contributions on the
// face nodes only
func (o *Simplex) ApplyTestAndIntegrateEdge(f []float64, face int) []float64 {
	r := make([]float64, o.p)
	for q, dof := range o.faceDofs[face] {
		r[dof] = o.faceWts[face][q] * f[dof]
	}
	return r
}

// DeltaCoefficients returns c_i = l_i(xi) / (w_i detJ), the nodal
// coefficients that reproduce a point source at the natural point xi
func (o *Simplex) DeltaCoefficients(xi []float64) []float64 {
	l := o.Interp(xi)
	for p := 0; p < o.p; p++ {
		l[p] /= o.tab.W[p] * o.detJ
	}
	return l
}

// Interp returns the basis values at the natural point xi
func (o *Simplex) Interp(xi []float64) []float64 {
	t := 0.0
	if o.ndim == 3 {
		t = xi[2]
	}
	return o.tab.InterpAt(xi[0], xi[1], t)
}

// SetPar interpolates the vertex values of a material parameter to the nodes
func (o *Simplex) SetPar(name string, vertexVals []float64) {
	vals := make([]float64, o.p)
	for p := 0; p < o.p; p++ {
		for n, s := range o.vshape[p] {
			vals[p] += s * vertexVals[n]
		}
	}
	o.pars[name] = vals
}

// ParAtIntPts returns a material parameter at the integration points, which
// are collocated with the nodes
func (o *Simplex) ParAtIntPts(name string) []float64 {
	vals, ok := o.pars[name]
	if !ok {
		chk.Panic("material parameter %q was not set", name)
	}
	return vals
}

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

// lattice coordinates of the hypercube vertices in {0,1} units, matching the
// vertex order of qua4 and hex8
var (
	quaVertLattice = [][]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	hexVertLattice = [][]int{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
)

// Tensor implements Core for qua and hex cells with the tensor-product GLL
// basis. The gradient and stiffness contractions are sum-factorized and never
// materialize the full (P x P) operator.
type Tensor struct {

	// essential
	gtype string      // "qua" or "hex"
	n     int         // polynomial order
	ndim  int         // space dimension
	p     int         // number of nodes = (n+1)^ndim
	shape *shp.Shape  // geometric map
	x     [][]float64 // vertex coordinates [ndim][nverts]

	// 1D reference tables
	x1 []float64   // GLL nodes
	w1 []float64   // GLL weights
	d1 [][]float64 // differentiation matrix

	// per-node geometric data
	refc   [][]float64   // node reference coordinates [P][ndim]
	xyz    [][]float64   // node physical coordinates [P][ndim]
	wprod  []float64     // product of 1D weights [P]
	detJ   []float64     // Jacobian determinant [P]
	dRdx   [][][]float64 // inverse Jacobian [P][ndim][ndim]
	vshape [][]float64   // vertex shape values at the nodes [P][nverts]

	// faces
	faceDofs [][]int     // node indices on each face [nfaces][nfnodes]
	faceWts  [][]float64 // face quadrature weights times surface Jacobian

	// material parameters interpolated to the nodes
	pars map[string][]float64

	minSpacing float64
}

// NewTensor allocates the tensor-product core of one qua or hex cell
//  gtype -- "qua" or "hex"
//  n     -- polynomial order
//  x     -- vertex coordinates [ndim][nverts]
func NewTensor(gtype string, n int, x [][]float64) (o *Tensor, err error) {

	// shape
	stypes := map[string]string{"qua": "qua4", "hex": "hex8"}
	stype, ok := stypes[gtype]
	if !ok {
		return nil, chk.Err("NewTensor: unknown geometry %q", gtype)
	}
	s := shp.Get(stype, 0)
	if s == nil {
		return nil, chk.Err("NewTensor: shape %q is not available", stype)
	}

	o = new(Tensor)
	o.gtype = gtype
	o.n = n
	o.shape = s.GetCopy()
	o.ndim = o.shape.Gndim
	if len(x) != o.ndim || len(x[0]) != o.shape.Nverts {
		return nil, chk.Err("NewTensor: coordinates matrix must be [%d][%d]", o.ndim, o.shape.Nverts)
	}
	o.x = la.MatClone(x)
	o.pars = make(map[string][]float64)

	// 1D tables
	if o.x1, err = ref.Nodes(n); err != nil {
		return nil, err
	}
	if o.w1, err = ref.Weights(n); err != nil {
		return nil, err
	}
	if o.d1, err = ref.DMatrix(n); err != nil {
		return nil, err
	}

	// node reference coordinates and weight products, (r,s,t) order
	m := n + 1
	o.p = m * m
	if o.ndim == 3 {
		o.p *= m
	}
	o.refc = la.MatAlloc(o.p, o.ndim)
	o.wprod = make([]float64, o.p)
	for p := 0; p < o.p; p++ {
		i := p % m
		j := (p / m) % m
		o.refc[p][0] = o.x1[i]
		o.refc[p][1] = o.x1[j]
		w := o.w1[i]
		w *= o.w1[j]
		if o.ndim == 3 {
			k := p / (m * m)
			o.refc[p][2] = o.x1[k]
			w *= o.w1[k]
		}
		o.wprod[p] = w
	}

	// per-node Jacobian data
	o.detJ = make([]float64, o.p)
	o.dRdx = make([][][]float64, o.p)
	o.vshape = la.MatAlloc(o.p, o.shape.Nverts)
	rr := []float64{0, 0, 0}
	for p := 0; p < o.p; p++ {
		copy(rr, o.refc[p])
		if err = o.shape.CalcAtR(o.x, rr, true); err != nil {
			return nil, err
		}
		if o.shape.J < shp.MINDET {
			return nil, chk.Err("cell has non-positive Jacobian: det(J)=%g at node %d", o.shape.J, p)
		}
		o.detJ[p] = o.shape.J
		o.dRdx[p] = la.MatClone(o.shape.DRdx)
		copy(o.vshape[p], o.shape.S)
	}
	o.xyz = o.shape.NodalPoints(o.x, o.refc)

	// face nodes and quadrature
	if err = o.initFaces(); err != nil {
		return nil, err
	}

	o.minSpacing = minPairDistance(o.xyz)
	return
}

// initFaces caches, per face, the node indices and the quadrature weights
// scaled by the surface Jacobian at each face node
func (o *Tensor) initFaces() (err error) {
	m := o.n + 1
	nfaces := len(o.shape.FaceLocalVerts)
	o.faceDofs = make([][]int, nfaces)
	o.faceWts = make([][]float64, nfaces)

	// 2D: faces are edges; the lin2 coordinate runs from the first to the
	// second local vertex
	if o.ndim == 2 {
		for f := 0; f < nfaces; f++ {
			fv := o.shape.FaceLocalVerts[f]
			a, b := quaVertLattice[fv[0]], quaVertLattice[fv[1]]
			dofs := make([]int, m)
			wts := make([]float64, m)
			for i := 0; i < m; i++ {
				li := o.n*a[0] + i*(b[0]-a[0])
				lj := o.n*a[1] + i*(b[1]-a[1])
				dofs[i] = li + lj*m
				rf := []float64{o.x1[i], 0}
				if err = o.shape.CalcAtFaceR(o.x, rf, f); err != nil {
					return
				}
				jac := math.Hypot(o.shape.Fnvec[0], o.shape.Fnvec[1])
				wts[i] = o.w1[i] * jac
			}
			o.faceDofs[f] = dofs
			o.faceWts[f] = wts
		}
		return
	}

	// 3D: the qua4 face coordinate (u,v) has u running along the edge from
	// local vertex 0 to 1 and v along the edge from 0 to 3
	for f := 0; f < nfaces; f++ {
		fv := o.shape.FaceLocalVerts[f]
		a := hexVertLattice[fv[0]]
		b := hexVertLattice[fv[1]]
		d := hexVertLattice[fv[3]]
		dofs := make([]int, m*m)
		wts := make([]float64, m*m)
		for j := 0; j < m; j++ {
			for i := 0; i < m; i++ {
				q := i + j*m
				idx := 0
				stride := 1
				for c := 0; c < 3; c++ {
					lc := o.n*a[c] + i*(b[c]-a[c]) + j*(d[c]-a[c])
					idx += lc * stride
					stride *= m
				}
				dofs[q] = idx
				rf := []float64{o.x1[i], o.x1[j]}
				if err = o.shape.CalcAtFaceR(o.x, rf, f); err != nil {
					return
				}
				nv := o.shape.Fnvec
				jac := math.Sqrt(nv[0]*nv[0] + nv[1]*nv[1] + nv[2]*nv[2])
				wts[q] = o.w1[i] * o.w1[j] * jac
			}
		}
		o.faceDofs[f] = dofs
		o.faceWts[f] = wts
	}
	return
}

// geometry accessors

func (o *Tensor) NumDofs() int             { return o.p }
func (o *Tensor) NumDim() int              { return o.ndim }
func (o *Tensor) Order() int               { return o.n }
func (o *Tensor) Shape() *shp.Shape        { return o.shape }
func (o *Tensor) Coords() [][]float64      { return o.x }
func (o *Tensor) RefCoords() [][]float64   { return o.refc }
func (o *Tensor) NodalPoints() [][]float64 { return o.xyz }
func (o *Tensor) IsSimplex() bool          { return false }
func (o *Tensor) MinNodeSpacing() float64  { return o.minSpacing }
func (o *Tensor) FaceDofs(face int) []int  { return o.faceDofs[face] }

// Gradient computes the physical gradient of the nodal field f at every node.
// The reference gradient is built dimension by dimension with the 1D
// differentiation matrix, then rotated by the inverse Jacobian.
func (o *Tensor) Gradient(f []float64) [][]float64 {
	m := o.n + 1
	g := la.MatAlloc(o.p, o.ndim)
	if o.ndim == 2 {
		for j := 0; j < m; j++ {
			for i := 0; i < m; i++ {
				p := i + j*m
				fr, fs := 0.0, 0.0
				for q := 0; q < m; q++ {
					fr += o.d1[i][q] * f[q+j*m]
					fs += o.d1[j][q] * f[i+q*m]
				}
				for c := 0; c < 2; c++ {
					g[p][c] = fr*o.dRdx[p][0][c] + fs*o.dRdx[p][1][c]
				}
			}
		}
		return g
	}
	mm := m * m
	for k := 0; k < m; k++ {
		for j := 0; j < m; j++ {
			for i := 0; i < m; i++ {
				p := i + j*m + k*mm
				fr, fs, ft := 0.0, 0.0, 0.0
				for q := 0; q < m; q++ {
					fr += o.d1[i][q] * f[q+j*m+k*mm]
					fs += o.d1[j][q] * f[i+q*m+k*mm]
					ft += o.d1[k][q] * f[i+j*m+q*mm]
				}
				for c := 0; c < 3; c++ {
					g[p][c] = fr*o.dRdx[p][0][c] + fs*o.dRdx[p][1][c] + ft*o.dRdx[p][2][c]
				}
			}
		}
	}
	return g
}

// ApplyGradTestAndIntegrate computes r_i = int (grad phi_i) . F over the cell
// by three sum-factorized passes. F is given at the nodes, [P][ndim].
func (o *Tensor) ApplyGradTestAndIntegrate(F [][]float64) []float64 {
	m := o.n + 1

	// rotate into reference coordinates and scale by the quadrature factor
	a := la.MatAlloc(o.ndim, o.p)
	for p := 0; p < o.p; p++ {
		c := o.wprod[p] * o.detJ[p]
		for k := 0; k < o.ndim; k++ {
			sum := 0.0
			for j := 0; j < o.ndim; j++ {
				sum += o.dRdx[p][k][j] * F[p][j]
			}
			a[k][p] = c * sum
		}
	}

	// contract with the transposed differentiation matrix per dimension
	r := make([]float64, o.p)
	if o.ndim == 2 {
		for j := 0; j < m; j++ {
			for i := 0; i < m; i++ {
				sum := 0.0
				for q := 0; q < m; q++ {
					sum += o.d1[q][i]*a[0][q+j*m] + o.d1[q][j]*a[1][i+q*m]
				}
				r[i+j*m] = sum
			}
		}
		return r
	}
	mm := m * m
	for k := 0; k < m; k++ {
		for j := 0; j < m; j++ {
			for i := 0; i < m; i++ {
				sum := 0.0
				for q := 0; q < m; q++ {
					sum += o.d1[q][i]*a[0][q+j*m+k*mm] +
						o.d1[q][j]*a[1][i+q*m+k*mm] +
						o.d1[q][k]*a[2][i+j*m+q*mm]
				}
				r[i+j*m+k*mm] = sum
			}
		}
	}
	return r
}

// ApplyTestAndIntegrate computes r_i = w_i detJ_i f_i
func (o *Tensor) ApplyTestAndIntegrate(f []float64) []float64 {
	r := make([]float64, o.p)
	for p := 0; p < o.p; p++ {
		r[p] = o.wprod[p] * o.detJ[p] * f[p]
	}
	return r
}

// ApplyTestAndIntegrateEdge computes the surface integral of f restricted to
// one face, returning a full-length nodal vector with contributions on the
// face nodes only
func (o *Tensor) ApplyTestAndIntegrateEdge(f []float64, face int) []float64 {
	r := make([]float64, o.p)
	for q, dof := range o.faceDofs[face] {
		r[dof] = o.faceWts[face][q] * f[dof]
	}
	return r
}

// DeltaCoefficients returns c_i = l_i(xi) / (w_i detJ_i), the nodal
// coefficients that reproduce a point source at the natural point xi
func (o *Tensor) DeltaCoefficients(xi []float64) []float64 {
	l := o.Interp(xi)
	for p := 0; p < o.p; p++ {
		l[p] /= o.wprod[p] * o.detJ[p]
	}
	return l
}

// Interp returns the basis values at the natural point xi
func (o *Tensor) Interp(xi []float64) []float64 {
	m := o.n + 1
	lr, err := ref.Interp(xi[0], o.n)
	if err != nil {
		chk.Panic("%v", err)
	}
	ls, _ := ref.Interp(xi[1], o.n)
	var lt []float64
	if o.ndim == 3 {
		lt, _ = ref.Interp(xi[2], o.n)
	}
	l := make([]float64, o.p)
	for p := 0; p < o.p; p++ {
		i := p % m
		j := (p / m) % m
		l[p] = lr[i] * ls[j]
		if o.ndim == 3 {
			l[p] *= lt[p/(m*m)]
		}
	}
	return l
}

// SetPar interpolates the vertex values of a material parameter to the nodes
func (o *Tensor) SetPar(name string, vertexVals []float64) {
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
func (o *Tensor) ParAtIntPts(name string) []float64 {
	vals, ok := o.pars[name]
	if !ok {
		chk.Panic("material parameter %q was not set", name)
	}
	return vals
}

// minPairDistance returns the smallest distance between any two points
func minPairDistance(xyz [][]float64) float64 {
	dmin := math.Inf(1)
	for i := 0; i < len(xyz); i++ {
		for j := i + 1; j < len(xyz); j++ {
			d := 0.0
			for c := range xyz[i] {
				δ := xyz[i][c] - xyz[j][c]
				d += δ * δ
			}
			if d < dmin {
				dmin = d
			}
		}
	}
	return math.Sqrt(dmin)
}

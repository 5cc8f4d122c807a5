// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ref

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// Node placement constants of the mass-lumped simplex elements. Edge nodes
// sit at the interior GLL parameters of the matching tensor shapes so that
// mixed tri/quad and tet/hex meshes conform on shared edges and faces.
var (
	edgeAlpha = (1.0 - 1.0/math.Sqrt(5.0)) / 2.0 // order-3 GLL parameter on [0,1]
	triBeta   = 0.2371200168                     // face-interior barycentric coordinate
	tetGamma  = (5.0 - math.Sqrt(5.0)) / 20.0    // volume-interior barycentric coordinate
)

// reference vertices: tri (-1,-1),(1,-1),(-1,1); tet keeps those at t=-1
// and adds the fourth vertex (-1,-1,1) along t
var (
	triRefVerts = [][]float64{{-1, -1}, {1, -1}, {-1, 1}}
	tetRefVerts = [][]float64{{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}

	triEdges = [][]int{{0, 1}, {1, 2}, {2, 0}}
	tetEdges = [][]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}
	tetFaces = [][]int{{0, 3, 2}, {0, 1, 3}, {0, 2, 1}, {1, 2, 3}}
)

// linForm is an affine form c0 + c.x
type linForm struct {
	c0 float64
	c  []float64
}

func (f linForm) at(x []float64) float64 {
	v := f.c0
	for i, ci := range f.c {
		v += ci * x[i]
	}
	return v
}

// prodFn is a polynomial given as a product of affine forms
type prodFn []linForm

func (p prodFn) at(x []float64) float64 {
	v := 1.0
	for _, f := range p {
		v *= f.at(x)
	}
	return v
}

func (p prodFn) grad(x []float64, g []float64) {
	for k := range g {
		g[k] = 0
	}
	for i := range p {
		partial := 1.0
		for j := range p {
			if j != i {
				partial *= p[j].at(x)
			}
		}
		for k := range g {
			g[k] += partial * p[i].c[k]
		}
	}
}

// SimplexTable holds the full-dimensional nodal tables of a mass-lumped
// simplex element: node coordinates, lumped quadrature weights, and the
// derivative matrices collocated at the nodes.
type SimplexTable struct {
	N   int // polynomial order
	Dim int // 2 for tri, 3 for tet
	P   int // number of nodes

	R, S, T []float64   // reference coordinates of the nodes (T nil in 2D)
	W       []float64   // lumped weights, all positive
	Dr      [][]float64 // Dr[i][j] = dl_j/dr at node i
	Ds      [][]float64
	Dt      [][]float64 // nil in 2D

	basis []prodFn
	coef  [][]float64 // l_i = sum_j coef[i][j] * basis[j]
}

var (
	simMu     sync.Mutex
	triTables = make(map[int]*SimplexTable)
	tetTables = make(map[int]*SimplexTable)
)

// Tri returns the nodal table of the mass-lumped triangle of order n (1 or 3)
func Tri(n int) (*SimplexTable, error) {
	simMu.Lock()
	defer simMu.Unlock()
	if t, ok := triTables[n]; ok {
		return t, nil
	}
	if n != 1 && n != 3 {
		return nil, chk.Err("tri tables exist for orders {1,3} only; got %d", n)
	}
	t, err := buildSimplex(2, n)
	if err != nil {
		return nil, err
	}
	triTables[n] = t
	return t, nil
}

// Tet returns the nodal table of the mass-lumped tetrahedron of order n (1 or 3)
func Tet(n int) (*SimplexTable, error) {
	simMu.Lock()
	defer simMu.Unlock()
	if t, ok := tetTables[n]; ok {
		return t, nil
	}
	if n != 1 && n != 3 {
		return nil, chk.Err("tet tables exist for orders {1,3} only; got %d", n)
	}
	t, err := buildSimplex(3, n)
	if err != nil {
		return nil, err
	}
	tetTables[n] = t
	return t, nil
}

// InterpAt returns the nodal basis values at the reference point. In 2D pass
// t = 0.
func (o *SimplexTable) InterpAt(r, s, t float64) []float64 {
	x := o.point(r, s, t)
	phi := make([]float64, len(o.basis))
	for j, b := range o.basis {
		phi[j] = b.at(x)
	}
	l := make([]float64, o.P)
	for i := 0; i < o.P; i++ {
		sum := 0.0
		for j := range phi {
			sum += o.coef[i][j] * phi[j]
		}
		l[i] = sum
	}
	return l
}

// DerivAt returns d[k][j] = dl_j/dxi_k at the reference point, k < Dim
func (o *SimplexTable) DerivAt(r, s, t float64) [][]float64 {
	x := o.point(r, s, t)
	g := make([]float64, o.Dim)
	gphi := la.MatAlloc(len(o.basis), o.Dim)
	for j, b := range o.basis {
		b.grad(x, g)
		copy(gphi[j], g)
	}
	d := la.MatAlloc(o.Dim, o.P)
	for i := 0; i < o.P; i++ {
		for k := 0; k < o.Dim; k++ {
			sum := 0.0
			for j := range o.basis {
				sum += o.coef[i][j] * gphi[j][k]
			}
			d[k][i] = sum
		}
	}
	return d
}

func (o *SimplexTable) point(r, s, t float64) []float64 {
	if o.Dim == 2 {
		return []float64{r, s}
	}
	return []float64{r, s, t}
}

func buildSimplex(dim, n int) (*SimplexTable, error) {
	o := &SimplexTable{N: n, Dim: dim}

	var nodes [][]float64
	if dim == 2 {
		nodes = triNodes(n)
		o.basis = triBasis(n)
	} else {
		nodes = tetNodes(n)
		o.basis = tetBasis(n)
	}
	o.P = len(nodes)
	if len(o.basis) != o.P {
		chk.Panic("simplex basis/node count mismatch: %d != %d", len(o.basis), o.P)
	}

	o.R = make([]float64, o.P)
	o.S = make([]float64, o.P)
	if dim == 3 {
		o.T = make([]float64, o.P)
	}
	for i, p := range nodes {
		o.R[i] = p[0]
		o.S[i] = p[1]
		if dim == 3 {
			o.T[i] = p[2]
		}
	}

	// nodal basis by inversion of the generalized Vandermonde matrix
	v := mat.NewDense(o.P, o.P, nil)
	for i, p := range nodes {
		for j, b := range o.basis {
			v.Set(i, j, b.at(p))
		}
	}
	var vinv mat.Dense
	if err := vinv.Inverse(v); err != nil {
		return nil, chk.Err("simplex nodal set (dim=%d, n=%d) is not unisolvent: %v", dim, n, err)
	}
	o.coef = la.MatAlloc(o.P, o.P)
	for i := 0; i < o.P; i++ {
		for j := 0; j < o.P; j++ {
			o.coef[i][j] = vinv.At(j, i)
		}
	}

	// lumped weights w_i = integral of l_i over the reference simplex
	o.W = make([]float64, o.P)
	o.integrateNodal()
	for i, w := range o.W {
		if w <= 0 {
			return nil, chk.Err("non-positive lumped weight w[%d]=%g (dim=%d, n=%d)", i, w, dim, n)
		}
	}

	// collocated derivative matrices
	o.Dr = la.MatAlloc(o.P, o.P)
	o.Ds = la.MatAlloc(o.P, o.P)
	if dim == 3 {
		o.Dt = la.MatAlloc(o.P, o.P)
	}
	for i, p := range nodes {
		var d [][]float64
		if dim == 2 {
			d = o.DerivAt(p[0], p[1], 0)
		} else {
			d = o.DerivAt(p[0], p[1], p[2])
		}
		copy(o.Dr[i], d[0])
		copy(o.Ds[i], d[1])
		if dim == 3 {
			copy(o.Dt[i], d[2])
		}
	}
	return o, nil
}

// integrateNodal fills W using a collapsed-coordinate Gauss rule on the unit
// cube, exact for the polynomial degrees of the nodal basis
func (o *SimplexTable) integrateNodal() {
	const ng = 8
	xg, wg := jacobiGQ(0, 0, ng-1)
	x01 := make([]float64, ng)
	w01 := make([]float64, ng)
	for i := range xg {
		x01[i] = (xg[i] + 1) / 2
		w01[i] = wg[i] / 2
	}
	if o.Dim == 2 {
		for a := 0; a < ng; a++ {
			for b := 0; b < ng; b++ {
				p, q := x01[a], x01[b]
				r := 2*p - 1
				s := 2*q*(1-p) - 1
				c := 4 * (1 - p) * w01[a] * w01[b]
				l := o.InterpAt(r, s, 0)
				for i := range o.W {
					o.W[i] += c * l[i]
				}
			}
		}
		return
	}
	for a := 0; a < ng; a++ {
		for b := 0; b < ng; b++ {
			for c := 0; c < ng; c++ {
				p, q, u := x01[a], x01[b], x01[c]
				r := 2*p - 1
				s := 2*q*(1-p) - 1
				t := 2*u*(1-p)*(1-q) - 1
				w := 8 * (1 - p) * (1 - p) * (1 - q) * w01[a] * w01[b] * w01[c]
				l := o.InterpAt(r, s, t)
				for i := range o.W {
					o.W[i] += w * l[i]
				}
			}
		}
	}
}

// barycentric forms of the reference triangle and tetrahedron

func triLams() []linForm {
	return []linForm{
		{c0: 0, c: []float64{-0.5, -0.5}},
		{c0: 0.5, c: []float64{0.5, 0}},
		{c0: 0.5, c: []float64{0, 0.5}},
	}
}

func tetLams() []linForm {
	return []linForm{
		{c0: -0.5, c: []float64{-0.5, -0.5, -0.5}},
		{c0: 0.5, c: []float64{0.5, 0, 0}},
		{c0: 0.5, c: []float64{0, 0.5, 0}},
		{c0: 0.5, c: []float64{0, 0, 0.5}},
	}
}

func coordForm(dim, k int) linForm {
	c := make([]float64, dim)
	c[k] = 1
	return linForm{c: c}
}

func oneForm(dim int) linForm {
	return linForm{c0: 1, c: make([]float64, dim)}
}

// monomials returns all products r^i s^j (t^k) with total degree <= deg,
// ordered by total degree
func monomials(dim, deg int) (out []prodFn) {
	emit := func(exp []int) {
		p := prodFn{}
		for c, e := range exp {
			for q := 0; q < e; q++ {
				p = append(p, coordForm(dim, c))
			}
		}
		if len(p) == 0 {
			p = append(p, oneForm(dim))
		}
		out = append(out, p)
	}
	var rec func(exp []int, rem, k int)
	rec = func(exp []int, rem, k int) {
		if k == dim-1 {
			exp[k] = rem
			emit(exp)
			return
		}
		for e := 0; e <= rem; e++ {
			exp[k] = e
			rec(exp, rem-e, k+1)
		}
	}
	for d := 0; d <= deg; d++ {
		rec(make([]int, dim), d, 0)
	}
	return
}

func triBasis(n int) []prodFn {
	if n == 1 {
		return monomials(2, 1)
	}
	lam := triLams()
	bub := prodFn{lam[0], lam[1], lam[2]}
	basis := monomials(2, 3)
	basis = append(basis, append(append(prodFn{}, bub...), coordForm(2, 0)))
	basis = append(basis, append(append(prodFn{}, bub...), coordForm(2, 1)))
	return basis
}

func tetBasis(n int) []prodFn {
	if n == 1 {
		return monomials(3, 1)
	}
	lam := tetLams()
	basis := monomials(3, 3)
	for _, f := range tetFaces {
		fb := prodFn{lam[f[0]], lam[f[1]], lam[f[2]]}
		basis = append(basis, append(append(prodFn{}, fb...), lam[f[0]]))
		basis = append(basis, append(append(prodFn{}, fb...), lam[f[1]]))
	}
	bub := prodFn{lam[0], lam[1], lam[2], lam[3]}
	basis = append(basis, bub)
	basis = append(basis, append(append(prodFn{}, bub...), coordForm(3, 0)))
	basis = append(basis, append(append(prodFn{}, bub...), coordForm(3, 1)))
	basis = append(basis, append(append(prodFn{}, bub...), coordForm(3, 2)))
	return basis
}

// node sets, topology order: vertices, edge nodes (2 per edge along the edge
// direction), face nodes, interior nodes

func baryPoint(verts [][]float64, lam []float64) []float64 {
	dim := len(verts[0])
	p := make([]float64, dim)
	for v, l := range lam {
		for c := 0; c < dim; c++ {
			p[c] += l * verts[v][c]
		}
	}
	return p
}

func triNodes(n int) (nodes [][]float64) {
	if n == 1 {
		return append(nodes, triRefVerts...)
	}
	for _, v := range triRefVerts {
		nodes = append(nodes, append([]float64{}, v...))
	}
	for _, e := range triEdges {
		for _, u := range []float64{edgeAlpha, 1 - edgeAlpha} {
			lam := make([]float64, 3)
			lam[e[0]] = 1 - u
			lam[e[1]] = u
			nodes = append(nodes, baryPoint(triRefVerts, lam))
		}
	}
	for i := 0; i < 3; i++ {
		lam := []float64{triBeta, triBeta, triBeta}
		lam[i] = 1 - 2*triBeta
		nodes = append(nodes, baryPoint(triRefVerts, lam))
	}
	return
}

func tetNodes(n int) (nodes [][]float64) {
	if n == 1 {
		return append(nodes, tetRefVerts...)
	}
	for _, v := range tetRefVerts {
		nodes = append(nodes, append([]float64{}, v...))
	}
	for _, e := range tetEdges {
		for _, u := range []float64{edgeAlpha, 1 - edgeAlpha} {
			lam := make([]float64, 4)
			lam[e[0]] = 1 - u
			lam[e[1]] = u
			nodes = append(nodes, baryPoint(tetRefVerts, lam))
		}
	}
	for _, f := range tetFaces {
		for j := 0; j < 3; j++ {
			lam := make([]float64, 4)
			for _, v := range f {
				lam[v] = triBeta
			}
			lam[f[j]] = 1 - 2*triBeta
			nodes = append(nodes, baryPoint(tetRefVerts, lam))
		}
	}
	for i := 0; i < 4; i++ {
		lam := []float64{tetGamma, tetGamma, tetGamma, tetGamma}
		lam[i] = 1 - 3*tetGamma
		nodes = append(nodes, baryPoint(tetRefVerts, lam))
	}
	return
}

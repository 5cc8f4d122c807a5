// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ref provides the reference-element tables: Gauss-Lobatto-Legendre
// nodes and weights, Lagrange interpolation and differentiation matrices,
// closure permutations, and full-dimensional nodal tables for simplices.
// These tables are pure functions of (order, shape) and are the only place
// where hard-coded numerical coefficients live.
package ref

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// MaxOrder is the highest polynomial order with tensor-product tables
const MaxOrder = 9

// gllTable holds the 1D data for one polynomial order
type gllTable struct {
	X []float64   // GLL nodes on [-1,1], ascending
	W []float64   // GLL integration weights
	B []float64   // barycentric weights of the nodes
	D [][]float64 // differentiation matrix D[i][j] = dl_j/dx at X[i]
}

var (
	gllMu     sync.Mutex
	gllTables = make(map[int]*gllTable)
)

func chkOrder(n int) error {
	if n < 1 || n > MaxOrder {
		return chk.Err("polynomial order %d is outside the supported range [1,%d]", n, MaxOrder)
	}
	return nil
}

// table returns the cached 1D table for order n, building it on first use
func table(n int) (*gllTable, error) {
	if err := chkOrder(n); err != nil {
		return nil, err
	}
	gllMu.Lock()
	defer gllMu.Unlock()
	if t, ok := gllTables[n]; ok {
		return t, nil
	}
	t := buildGllTable(n)
	gllTables[n] = t
	return t, nil
}

// Nodes returns the n+1 Gauss-Lobatto-Legendre nodes on [-1,1] for order n.
// The returned slice is shared; callers must not modify it.
func Nodes(n int) ([]float64, error) {
	t, err := table(n)
	if err != nil {
		return nil, err
	}
	return t.X, nil
}

// Weights returns the GLL integration weights for order n. The rule is exact
// for polynomials of degree up to 2n-1.
func Weights(n int) ([]float64, error) {
	t, err := table(n)
	if err != nil {
		return nil, err
	}
	return t.W, nil
}

// DMatrix returns the 1D differentiation matrix D[i][j] = dl_j/dx at node i
func DMatrix(n int) ([][]float64, error) {
	t, err := table(n)
	if err != nil {
		return nil, err
	}
	return t.D, nil
}

func buildGllTable(n int) (t *gllTable) {
	t = new(gllTable)
	t.X = jacobiGL(0, 0, n)

	// weights: w_i = 2 / (n (n+1) P_n(x_i)^2)
	t.W = make([]float64, n+1)
	nn := float64(n) * float64(n+1)
	for i, x := range t.X {
		p := legendre(n, x)
		t.W[i] = 2.0 / (nn * p * p)
	}

	// barycentric weights: b_i = 1 / prod_{k!=i} (x_i - x_k)
	t.B = make([]float64, n+1)
	for i := range t.B {
		b := 1.0
		for k := range t.X {
			if k != i {
				b /= t.X[i] - t.X[k]
			}
		}
		t.B[i] = b
	}

	// differentiation matrix from the barycentric weights
	t.D = la.MatAlloc(n+1, n+1)
	for i := 0; i <= n; i++ {
		sum := 0.0
		for j := 0; j <= n; j++ {
			if j == i {
				continue
			}
			t.D[i][j] = (t.B[j] / t.B[i]) / (t.X[i] - t.X[j])
			sum += t.D[i][j]
		}
		t.D[i][i] = -sum
	}
	return
}

// legendre evaluates the Legendre polynomial P_n at x by recurrence
func legendre(n int, x float64) float64 {
	if n == 0 {
		return 1
	}
	pm, p := 1.0, x
	for k := 2; k <= n; k++ {
		pm, p = p, (float64(2*k-1)*x*p-float64(k-1)*pm)/float64(k)
	}
	return p
}

// jacobiGL computes the Gauss-Lobatto points of the Jacobi polynomial
// P_n^{alpha,beta}: the zeros of (1-x^2) d/dx P_n, including the endpoints
func jacobiGL(alpha, beta float64, n int) []float64 {
	if n == 1 {
		return []float64{-1, 1}
	}
	xint, _ := jacobiGQ(alpha+1, beta+1, n-2)
	x := make([]float64, n+1)
	x[0] = -1
	copy(x[1:n], xint)
	x[n] = 1
	return x
}

// jacobiGQ computes the n+1 Gauss quadrature points and weights of the Jacobi
// polynomial P_n^{alpha,beta} by eigendecomposition of the symmetric
// tridiagonal Jacobi matrix (Golub-Welsch)
func jacobiGQ(alpha, beta float64, n int) (x, w []float64) {
	if n == 0 {
		return []float64{-(alpha - beta) / (alpha + beta + 2)}, []float64{2}
	}

	h1 := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	d0 := make([]float64, n+1)
	fac := beta*beta - alpha*alpha
	for i := 0; i <= n; i++ {
		d0[i] = fac / (h1[i] * (h1[i] + 2))
	}
	if alpha+beta < 1e-15 {
		d0[0] = 0
	}

	d1 := make([]float64, n)
	for i := 0; i < n; i++ {
		ip1 := float64(i + 1)
		d1[i] = 2.0 / (h1[i] + 2.0) * math.Sqrt(
			ip1*(ip1+alpha+beta)*(ip1+alpha)*(ip1+beta)/(h1[i]+1)/(h1[i]+3))
	}

	jj := symTriDiagonal(d0, d1)
	var eig mat.EigenSym
	if ok := eig.Factorize(jj, true); !ok {
		chk.Panic("eigendecomposition of the Jacobi matrix failed (n=%d)", n)
	}
	x = eig.Values(nil)

	vv := mat.NewDense(len(x), len(x), nil)
	eig.VectorsTo(vv)
	w = make([]float64, len(x))
	g0 := gamma0(alpha, beta)
	for i := range w {
		v := vv.At(0, i)
		w[i] = v * v * g0
	}
	return
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1
	return math.Gamma(alpha+1) * math.Gamma(beta+1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func symTriDiagonal(d0, d1 []float64) *mat.SymDense {
	n := len(d0)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, d0[i])
		if i < n-1 {
			m.SetSym(i, i+1, d1[i])
		}
	}
	return m
}

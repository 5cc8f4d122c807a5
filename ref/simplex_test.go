// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriNodeCounts(t *testing.T) {
	t1, err := Tri(1)
	require.NoError(t, err)
	assert.Equal(t, 3, t1.P)
	t3, err := Tri(3)
	require.NoError(t, err)
	assert.Equal(t, 12, t3.P)
	_, err = Tri(2)
	require.Error(t, err)
}

func TestTetNodeCounts(t *testing.T) {
	t1, err := Tet(1)
	require.NoError(t, err)
	assert.Equal(t, 4, t1.P)
	t3, err := Tet(3)
	require.NoError(t, err)
	assert.Equal(t, 32, t3.P)
	_, err = Tet(4)
	require.Error(t, err)
}

func TestSimplexDeltaProperty(t *testing.T) {
	for _, build := range []func() (*SimplexTable, error){
		func() (*SimplexTable, error) { return Tri(1) },
		func() (*SimplexTable, error) { return Tri(3) },
		func() (*SimplexTable, error) { return Tet(1) },
		func() (*SimplexTable, error) { return Tet(3) },
	} {
		tab, err := build()
		require.NoError(t, err)
		for i := 0; i < tab.P; i++ {
			var ti float64
			if tab.Dim == 3 {
				ti = tab.T[i]
			}
			l := tab.InterpAt(tab.R[i], tab.S[i], ti)
			for j := range l {
				want := 0.0
				if i == j {
					want = 1.0
				}
				assert.InDelta(t, want, l[j], 1e-9, "dim=%d n=%d l_%d(x_%d)", tab.Dim, tab.N, j, i)
			}
		}
	}
}

func TestSimplexPartitionOfUnity(t *testing.T) {
	tri, err := Tri(3)
	require.NoError(t, err)
	for _, p := range [][]float64{{-0.3, -0.4}, {-1, -1}, {0.1, -0.9}, {-0.5, 0.2}} {
		l := tri.InterpAt(p[0], p[1], 0)
		sum := 0.0
		for _, v := range l {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-10)
	}
	tet, err := Tet(3)
	require.NoError(t, err)
	for _, p := range [][]float64{{-0.5, -0.5, -0.5}, {-1, -1, -1}, {-0.2, -0.7, -0.9}} {
		l := tet.InterpAt(p[0], p[1], p[2])
		sum := 0.0
		for _, v := range l {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-10)
	}
}

func TestSimplexWeights(t *testing.T) {
	tri, err := Tri(3)
	require.NoError(t, err)
	sum := 0.0
	for _, w := range tri.W {
		assert.Greater(t, w, 0.0)
		sum += w
	}
	assert.InDelta(t, 2.0, sum, 1e-10, "reference triangle area")

	tet, err := Tet(3)
	require.NoError(t, err)
	sum = 0.0
	for _, w := range tet.W {
		assert.Greater(t, w, 0.0)
		sum += w
	}
	assert.InDelta(t, 4.0/3.0, sum, 1e-10, "reference tetrahedron volume")
}

// the lumped rule integrates the nodal space exactly, hence at least P3
func TestSimplexQuadratureDegree(t *testing.T) {
	tri, err := Tri(3)
	require.NoError(t, err)
	triCases := []struct {
		f     func(r, s float64) float64
		exact float64
	}{
		{func(r, s float64) float64 { return r }, -2.0 / 3.0},
		{func(r, s float64) float64 { return s }, -2.0 / 3.0},
		{func(r, s float64) float64 { return r * r }, 2.0 / 3.0},
		{func(r, s float64) float64 { return r * s }, 0.0},
		{func(r, s float64) float64 { return r * r * r }, -2.0 / 5.0},
	}
	for k, tc := range triCases {
		got := 0.0
		for i := 0; i < tri.P; i++ {
			got += tri.W[i] * tc.f(tri.R[i], tri.S[i])
		}
		assert.InDelta(t, tc.exact, got, 1e-9, "tri case %d", k)
	}

	tet, err := Tet(3)
	require.NoError(t, err)
	tetCases := []struct {
		f     func(r, s, t float64) float64
		exact float64
	}{
		{func(r, s, t float64) float64 { return r }, -2.0 / 3.0},
		{func(r, s, t float64) float64 { return r * r }, 8.0 / 15.0},
		{func(r, s, t float64) float64 { return r * r * r }, -2.0 / 5.0},
	}
	for k, tc := range tetCases {
		got := 0.0
		for i := 0; i < tet.P; i++ {
			got += tet.W[i] * tc.f(tet.R[i], tet.S[i], tet.T[i])
		}
		assert.InDelta(t, tc.exact, got, 1e-9, "tet case %d", k)
	}
}

func TestSimplexDerivativeMatrices(t *testing.T) {
	tri, err := Tri(3)
	require.NoError(t, err)
	// f = r^2 lies in the nodal space, so Dr f = 2r exactly at the nodes
	f := make([]float64, tri.P)
	for i := range f {
		f[i] = tri.R[i] * tri.R[i]
	}
	for i := 0; i < tri.P; i++ {
		dr, ds := 0.0, 0.0
		for j := 0; j < tri.P; j++ {
			dr += tri.Dr[i][j] * f[j]
			ds += tri.Ds[i][j] * f[j]
		}
		assert.InDelta(t, 2*tri.R[i], dr, 1e-8)
		assert.InDelta(t, 0.0, ds, 1e-8)
	}

	tet, err := Tet(3)
	require.NoError(t, err)
	g := make([]float64, tet.P)
	for i := range g {
		g[i] = tet.S[i] * tet.T[i]
	}
	for i := 0; i < tet.P; i++ {
		ds, dt := 0.0, 0.0
		for j := 0; j < tet.P; j++ {
			ds += tet.Ds[i][j] * g[j]
			dt += tet.Dt[i][j] * g[j]
		}
		assert.InDelta(t, tet.T[i], ds, 1e-8)
		assert.InDelta(t, tet.S[i], dt, 1e-8)
	}
}

func TestTriEdgeNodesMatchGLL(t *testing.T) {
	// edge nodes of the lumped triangle sit at the order-3 GLL parameters,
	// so tri and quad elements conform on a shared edge
	x, err := Nodes(3)
	require.NoError(t, err)
	tri, err := Tri(3)
	require.NoError(t, err)
	// first edge runs from (-1,-1) to (1,-1): nodes 3 and 4
	assert.InDelta(t, x[1], tri.R[3], 1e-13)
	assert.InDelta(t, x[2], tri.R[4], 1e-13)
	assert.InDelta(t, -1.0, tri.S[3], 1e-13)
	assert.InDelta(t, -1.0, tri.S[4], 1e-13)
}

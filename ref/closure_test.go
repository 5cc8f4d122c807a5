// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirePermutation(t *testing.T, perm []int, p int) {
	t.Helper()
	require.Len(t, perm, p)
	seen := make([]bool, p)
	for _, v := range perm {
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, p)
		require.False(t, seen[v], "duplicate entry %d", v)
		seen[v] = true
	}
}

func TestClosureIsPermutation(t *testing.T) {
	for n := 1; n <= MaxOrder; n++ {
		for _, shape := range []string{"qua", "hex"} {
			perm, err := Closure(n, shape)
			require.NoError(t, err)
			p, err := NumDofs(n, shape)
			require.NoError(t, err)
			requirePermutation(t, perm, p)
		}
	}
	for _, n := range []int{1, 3} {
		for _, shape := range []string{"tri", "tet"} {
			perm, err := Closure(n, shape)
			require.NoError(t, err)
			p, err := NumDofs(n, shape)
			require.NoError(t, err)
			requirePermutation(t, perm, p)
			for i, v := range perm {
				assert.Equal(t, i, v, "simplex closure is the identity")
			}
		}
	}
}

func TestQuaClosureOrder2(t *testing.T) {
	// 3x3 tensor grid: corners, then edge midpoints counter-clockwise,
	// then the center
	perm, err := Closure(2, "qua")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 8, 6, 1, 5, 7, 3, 4}, perm)
}

func TestHexClosureVerticesAndCounts(t *testing.T) {
	n := 3
	m := n + 1
	perm, err := Closure(n, "hex")
	require.NoError(t, err)
	idx := func(i, j, k int) int { return i + j*m + k*m*m }
	want := []int{
		idx(0, 0, 0), idx(n, 0, 0), idx(n, n, 0), idx(0, n, 0),
		idx(0, 0, n), idx(n, 0, n), idx(n, n, n), idx(0, n, n),
	}
	assert.Equal(t, want, perm[:8])
	// 8 vertices + 12 edges x (n-1) + 6 faces x (n-1)^2 + (n-1)^3 interior
	assert.Len(t, perm, 8+12*(n-1)+6*(n-1)*(n-1)+(n-1)*(n-1)*(n-1))
}

func TestClosureRejectsUnknownShapesAndOrders(t *testing.T) {
	_, err := Closure(3, "pyramid")
	require.Error(t, err)
	_, err = Closure(2, "tri")
	require.Error(t, err)
	_, err = Closure(10, "hex")
	require.Error(t, err)
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ref

import "github.com/cpmech/gosl/chk"

// canonical vertex lattice coordinates and connectivity of the tensor shapes.
// quad vertices run counter-clockwise from (-1,-1); hex vertices 0-3 are the
// bottom face counter-clockwise, 4-7 the top face above them.
var (
	quaEdges = [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}

	hexEdges = [][]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	hexFaces = [][]int{
		{0, 4, 7, 3}, {1, 2, 6, 5},
		{0, 1, 5, 4}, {2, 3, 7, 6},
		{0, 3, 2, 1}, {4, 5, 6, 7},
	}
)

// NumDofs returns the scalar DoF count of shape ("tri","qua","tet","hex") at
// polynomial order n
func NumDofs(n int, shape string) (int, error) {
	switch shape {
	case "qua":
		if err := chkOrder(n); err != nil {
			return 0, err
		}
		return (n + 1) * (n + 1), nil
	case "hex":
		if err := chkOrder(n); err != nil {
			return 0, err
		}
		return (n + 1) * (n + 1) * (n + 1), nil
	case "tri":
		switch n {
		case 1:
			return 3, nil
		case 3:
			return 12, nil
		}
		return 0, chk.Err("tri tables exist for orders {1,3} only; got %d", n)
	case "tet":
		switch n {
		case 1:
			return 4, nil
		case 3:
			return 32, nil
		}
		return 0, chk.Err("tet tables exist for orders {1,3} only; got %d", n)
	}
	return 0, chk.Err("unknown shape %q", shape)
}

// Closure returns the permutation sigma from topology order (vertices, then
// edges, then faces, then interior) to tensor order: if f_topo[i] is the i-th
// DoF in topology order, f_tensor[sigma[i]] is the same DoF in tensor order.
// Simplex reference nodes are laid out in topology order already, so their
// closure is the identity.
func Closure(n int, shape string) ([]int, error) {
	p, err := NumDofs(n, shape)
	if err != nil {
		return nil, err
	}
	switch shape {
	case "qua":
		return quaClosure(n), nil
	case "hex":
		return hexClosure(n), nil
	}
	perm := make([]int, p)
	for i := range perm {
		perm[i] = i
	}
	return perm, nil
}

func quaClosure(n int) []int {
	m := n + 1
	vc := [][]int{{0, 0}, {n, 0}, {n, n}, {0, n}}
	idx := func(p []int) int { return p[0] + p[1]*m }
	perm := make([]int, 0, m*m)
	for _, v := range vc {
		perm = append(perm, idx(v))
	}
	for _, e := range quaEdges {
		a, b := vc[e[0]], vc[e[1]]
		for k := 1; k < n; k++ {
			perm = append(perm, idx(lerpLattice(a, b, k, n)))
		}
	}
	for j := 1; j < n; j++ {
		for i := 1; i < n; i++ {
			perm = append(perm, i+j*m)
		}
	}
	return perm
}

func hexClosure(n int) []int {
	m := n + 1
	vc := [][]int{
		{0, 0, 0}, {n, 0, 0}, {n, n, 0}, {0, n, 0},
		{0, 0, n}, {n, 0, n}, {n, n, n}, {0, n, n},
	}
	idx := func(p []int) int { return p[0] + p[1]*m + p[2]*m*m }
	perm := make([]int, 0, m*m*m)
	for _, v := range vc {
		perm = append(perm, idx(v))
	}
	for _, e := range hexEdges {
		a, b := vc[e[0]], vc[e[1]]
		for k := 1; k < n; k++ {
			perm = append(perm, idx(lerpLattice(a, b, k, n)))
		}
	}
	for _, f := range hexFaces {
		a, b, d := vc[f[0]], vc[f[1]], vc[f[3]]
		for j := 1; j < n; j++ {
			for i := 1; i < n; i++ {
				p := make([]int, 3)
				for c := 0; c < 3; c++ {
					p[c] = a[c] + i*(b[c]-a[c])/n + j*(d[c]-a[c])/n
				}
				perm = append(perm, idx(p))
			}
		}
	}
	for k := 1; k < n; k++ {
		for j := 1; j < n; j++ {
			for i := 1; i < n; i++ {
				perm = append(perm, i+j*m+k*m*m)
			}
		}
	}
	return perm
}

// lerpLattice returns the lattice point a + k*(b-a)/n. The endpoints differ
// in exactly one coordinate by n, so the division is exact.
func lerpLattice(a, b []int, k, n int) []int {
	p := make([]int, len(a))
	for c := range a {
		p[c] = a[c] + k*(b[c]-a[c])/n
	}
	return p
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Dirichlet wraps an inner kernel with homogeneous essential conditions on
// selected faces: the residual pushed by the wrapped kernel is zeroed on the
// pinned DoFs, freezing them at their initial values.
type Dirichlet struct {
	Kernel
	pinned []int
}

// NewDirichlet wraps a kernel; call SetBoundaryConditions to pin faces
func NewDirichlet(inner Kernel) *Dirichlet {
	return &Dirichlet{Kernel: inner}
}

// SetBoundaryConditions records the DoFs of the given local faces as pinned
func (o *Dirichlet) SetBoundaryConditions(faces []int) {
	c := o.Kernel.Core()
	mask := make([]bool, c.NumDofs())
	for _, f := range faces {
		for _, d := range c.FaceDofs(f) {
			mask[d] = true
		}
	}
	o.pinned = o.pinned[:0]
	for d, on := range mask {
		if on {
			o.pinned = append(o.pinned, d)
		}
	}
}

// Pinned returns the pinned DoF indices
func (o *Dirichlet) Pinned() []int { return o.pinned }

func (o *Dirichlet) ComputeStiffnessTerm(u [][]float64) [][]float64 {
	ku := o.Kernel.ComputeStiffnessTerm(u)
	o.zeroPinned(ku)
	return ku
}

func (o *Dirichlet) ComputeSourceTerm(t float64, step int) [][]float64 {
	f := o.Kernel.ComputeSourceTerm(t, step)
	o.zeroPinned(f)
	return f
}

func (o *Dirichlet) zeroPinned(v [][]float64) {
	for _, d := range o.pinned {
		for ic := range v {
			v[ic][d] = 0
		}
	}
}

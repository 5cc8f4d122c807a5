// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import "github.com/cpmech/gosl/la"

// Field pairs the element-local blocks of a nodal field with its assembled
// global vector. Element kernels accumulate into the local blocks; the time
// loop moves data between the two sides with GlobalToLocal (insert) and
// LocalToGlobal (add).
type Field struct {
	Sec  *Section      // dof numbering
	Loc  [][][]float64 // cell => [ncomp][ndofs of cell]
	Glob [][]float64   // [ncomp][ndofs]
}

// NewField allocates a paired (local, global) vector set over the section
func (o *Section) NewField() *Field {
	f := &Field{Sec: o, Glob: o.NewVector()}
	f.Loc = make([][][]float64, len(o.l2g))
	for c := range f.Loc {
		f.Loc[c] = la.MatAlloc(o.Ncomp, len(o.l2g[c]))
	}
	return f
}

// GlobalToLocal copies the assembled global values into every element-local
// block, overwriting them
func (f *Field) GlobalToLocal() {
	for c := range f.Loc {
		for ic := range f.Glob {
			for p, gp := range f.Sec.l2g[c] {
				f.Loc[c][ic][p] = f.Glob[ic][gp]
			}
		}
	}
}

// LocalToGlobal zeroes the global vector, accumulates every element-local
// block into it and completes the cross-processor sum
func (f *Field) LocalToGlobal() {
	for ic := range f.Glob {
		la.VecFill(f.Glob[ic], 0)
	}
	for c := range f.Loc {
		for ic := range f.Glob {
			for p, gp := range f.Sec.l2g[c] {
				f.Glob[ic][gp] += f.Loc[c][ic][p]
			}
		}
	}
	f.Sec.Assemble(f.Glob)
}

// ZeroLocal clears all element-local blocks
func (f *Field) ZeroLocal() {
	for c := range f.Loc {
		for ic := range f.Loc[c] {
			la.VecFill(f.Loc[c][ic], 0)
		}
	}
}

// AddLocal accumulates vals into the element-local block of cell c
func (f *Field) AddLocal(c int, vals [][]float64) {
	for ic := range vals {
		for p, v := range vals[ic] {
			f.Loc[c][ic][p] += v
		}
	}
}

// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fem drives the simulation: it owns the element cores and kernels of
// a mesh, the global field vectors and the explicit Newmark time loop.
package fem

import (
	"github.com/cpmech/gosl/chk"

	"github.com/seismech/gosem/ele"
	"github.com/seismech/gosem/msh"
)

// matParams lists the per-vertex material parameters each physics needs
var matParams = map[string][]string{
	"acoustic":  {"vp"},
	"elastic2d": {"rho", "vp", "vs"},
	"elastic3d": {"rho", "vpv", "vph", "vsv", "vsh", "eta"},
}

// physicsNcomp returns the number of field components of a physics in ndim
// space dimensions
func physicsNcomp(physics string, ndim int) (int, error) {
	switch physics {
	case "acoustic":
		return 1, nil
	case "elastic2d":
		if ndim != 2 {
			return 0, chk.Err("elastic2d needs a 2D mesh; got %dD", ndim)
		}
		return 2, nil
	case "elastic3d":
		if ndim != 3 {
			return 0, chk.Err("elastic3d needs a 3D mesh; got %dD", ndim)
		}
		return 3, nil
	}
	return 0, chk.Err("unknown physics %q", physics)
}

// Domain holds the element cores and kernels of a mesh, the dof section and
// the assembled inverse lumped mass
type Domain struct {
	Msh     *msh.Mesh
	Sec     *msh.Section
	N       int    // polynomial order
	Physics string // "acoustic", "elastic2d" or "elastic3d"
	Ncomp   int    // field components
	Cores   []ele.Core
	Kernels []ele.Kernel
	Mi      []float64 // inverse lumped mass, one scalar per dof
	Pinned  []bool    // dofs pinned by essential conditions
	DtMax   float64   // stability limit: min over cells of h / vmax
}

// NewDomain builds the cores and kernels of every cell, interpolates the
// per-vertex material parameters to the element nodes and assembles the
// inverse lumped mass. The params map holds one value per mesh vertex for
// each parameter the physics needs.
func NewDomain(m *msh.Mesh, n int, physics string, params map[string][]float64) (o *Domain, err error) {
	ncomp, err := physicsNcomp(physics, m.Ndim)
	if err != nil {
		return nil, err
	}
	names := matParams[physics]
	for _, nm := range names {
		vv, ok := params[nm]
		if !ok {
			return nil, chk.Err("material model misses parameter %q", nm)
		}
		if len(vv) != len(m.Verts) {
			return nil, chk.Err("parameter %q has %d values; mesh has %d vertices", nm, len(vv), len(m.Verts))
		}
	}
	sec, err := msh.NewSection(m, n, ncomp)
	if err != nil {
		return nil, err
	}
	o = &Domain{Msh: m, Sec: sec, N: n, Physics: physics, Ncomp: ncomp}
	o.Cores = make([]ele.Core, len(m.Cells))
	o.Kernels = make([]ele.Kernel, len(m.Cells))
	for c, cell := range m.Cells {
		core, err := ele.NewCore(cell.Gtype, n, m.CellCoords(c))
		if err != nil {
			return nil, chk.Err("cell %d: %v", c, err)
		}
		for _, nm := range names {
			vv := make([]float64, len(cell.Verts))
			for k, v := range cell.Verts {
				vv[k] = params[nm][v]
			}
			core.SetPar(nm, vv)
		}
		k, err := ele.NewKernel(physics, core)
		if err != nil {
			return nil, chk.Err("cell %d: %v", c, err)
		}
		o.Cores[c] = core
		o.Kernels[c] = k
		dt := core.MinNodeSpacing() / k.Vmax()
		if c == 0 || dt < o.DtMax {
			o.DtMax = dt
		}
	}
	o.Mi, err = sec.AssembleLumpedMass(func(c int) []float64 {
		return o.Kernels[c].AssembleMassMatrix()
	})
	if err != nil {
		return nil, err
	}
	return
}

// SetDirichlet pins the dofs of the named sidesets: kernels of boundary cells
// are wrapped so their pushed residuals vanish on the pinned faces, and the
// global pin mask is recorded for the integrator
func (o *Domain) SetDirichlet(names []string) error {
	all := make(map[int][]int)
	for _, name := range names {
		bry, err := o.Msh.Boundary(name)
		if err != nil {
			return err
		}
		for c, faces := range bry {
			all[c] = append(all[c], faces...)
		}
	}
	o.Pinned = make([]bool, o.Sec.Ndofs)
	for c, faces := range all {
		d := ele.NewDirichlet(o.Kernels[c])
		d.SetBoundaryConditions(faces)
		o.Kernels[c] = d
		dofs := o.Sec.CellDofs(c)
		for _, ld := range d.Pinned() {
			o.Pinned[dofs[ld]] = true
		}
	}
	return nil
}

// AttachSource attaches a point source to the kernel of cell c
func (o *Domain) AttachSource(c int, src ele.PointSource) {
	o.Kernels[c].AttachSource(src)
}

// Inner returns the kernel of cell c with any boundary-condition wrapper
// stripped off
func (o *Domain) Inner(c int) ele.Kernel {
	if d, ok := o.Kernels[c].(*ele.Dirichlet); ok {
		return d.Kernel
	}
	return o.Kernels[c]
}

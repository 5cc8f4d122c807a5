// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// cell coordinate fixtures

func quaCoords(lx, ly float64) [][]float64 {
	return [][]float64{{0, lx, lx, 0}, {0, 0, ly, ly}}
}

func hexCoords(lx, ly, lz float64) [][]float64 {
	return [][]float64{
		{0, lx, lx, 0, 0, lx, lx, 0},
		{0, 0, ly, ly, 0, 0, ly, ly},
		{0, 0, 0, 0, lz, lz, lz, lz},
	}
}

func triCoords() [][]float64 {
	return [][]float64{{0, 2, 0}, {0, 0, 1.5}}
}

func tetCoords() [][]float64 {
	return [][]float64{{0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

func constVec(n int, v float64) []float64 {
	f := make([]float64, n)
	for i := range f {
		f[i] = v
	}
	return f
}

func Test_ele01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele01. gradient of a linear field is exact")

	cases := []struct {
		gtype string
		n     int
		x     [][]float64
	}{
		{"qua", 4, quaCoords(2, 1)},
		{"hex", 3, hexCoords(1, 2, 3)},
		{"tri", 3, triCoords()},
		{"tet", 3, tetCoords()},
	}
	a := []float64{2, -3, 0.5}
	for _, c := range cases {
		core, err := NewCore(c.gtype, c.n, c.x)
		if err != nil {
			tst.Errorf("NewCore failed:\n%v", err)
			return
		}
		xyz := core.NodalPoints()
		f := make([]float64, core.NumDofs())
		for p, y := range xyz {
			for i := range y {
				f[p] += a[i] * y[i]
			}
		}
		g := core.Gradient(f)
		emax := 0.0
		for p := range g {
			for i := 0; i < core.NumDim(); i++ {
				if e := math.Abs(g[p][i] - a[i]); e > emax {
					emax = e
				}
			}
		}
		io.Pforan("%s: gradient err = %g\n", c.gtype, emax)
		chk.Scalar(tst, io.Sf("%s gradient err", c.gtype), 1e-12, emax, 0)
	}
}

func Test_ele02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele02. lumped mass is positive and sums to the volume")

	cases := []struct {
		gtype string
		n     int
		x     [][]float64
		vol   float64
	}{
		{"qua", 3, quaCoords(2, 1), 2.0},
		{"hex", 2, hexCoords(1, 2, 3), 6.0},
		{"tri", 3, triCoords(), 1.5},
		{"tet", 3, tetCoords(), 1.0 / 6.0},
	}
	for _, c := range cases {
		core, err := NewCore(c.gtype, c.n, c.x)
		if err != nil {
			tst.Errorf("NewCore failed:\n%v", err)
			return
		}
		k, err := NewKernel("acoustic", core)
		if err != nil {
			tst.Errorf("NewKernel failed:\n%v", err)
			return
		}
		m := k.AssembleMassMatrix()
		sum := 0.0
		for i, mi := range m {
			if mi <= 0 {
				tst.Errorf("%s: mass entry m[%d]=%g is not positive", c.gtype, i, mi)
				return
			}
			sum += mi
		}
		io.Pforan("%s: sum(m) = %v\n", c.gtype, sum)
		chk.Scalar(tst, io.Sf("%s mass sum", c.gtype), 1e-13, sum, c.vol)
	}
}

func Test_ele03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele03. acoustic stiffness is symmetric")

	cases := []struct {
		gtype string
		n     int
		x     [][]float64
	}{
		{"qua", 2, quaCoords(2, 1)},
		{"tri", 3, triCoords()},
	}
	for _, c := range cases {
		core, err := NewCore(c.gtype, c.n, c.x)
		if err != nil {
			tst.Errorf("NewCore failed:\n%v", err)
			return
		}
		nv := len(c.x[0])
		core.SetPar("vp", constVec(nv, 2.0))
		k, err := NewKernel("acoustic", core)
		if err != nil {
			tst.Errorf("NewKernel failed:\n%v", err)
			return
		}
		K := denseStiffness(k.ComputeStiffnessTerm, 1, core.NumDofs())
		emax := 0.0
		for i := range K {
			for j := i + 1; j < len(K); j++ {
				if e := math.Abs(K[i][j] - K[j][i]); e > emax {
					emax = e
				}
			}
		}
		io.Pforan("%s: symmetry err = %g\n", c.gtype, emax)
		chk.Scalar(tst, io.Sf("%s symmetry err", c.gtype), 1e-11, emax, 0)
	}
}

func Test_ele04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele04. delta coefficients reproduce point evaluation")

	cases := []struct {
		gtype string
		n     int
		x     [][]float64
		xi    []float64
	}{
		{"qua", 3, quaCoords(2, 1), []float64{0.3, -0.2}},
		{"tri", 3, triCoords(), []float64{-0.2, -0.4}},
		{"hex", 3, hexCoords(1, 2, 3), []float64{0.3, -0.2, 0.7}},
		{"tet", 3, tetCoords(), []float64{-0.5, -0.5, -0.4}},
	}
	poly := func(y []float64) float64 {
		v := 1.0 + 2.0*y[0] - y[1] + y[0]*y[0]*y[1]
		if len(y) == 3 {
			v += 0.5 * y[2] * y[0]
		}
		return v
	}
	for _, c := range cases {
		core, err := NewCore(c.gtype, c.n, c.x)
		if err != nil {
			tst.Errorf("NewCore failed:\n%v", err)
			return
		}
		xyz := core.NodalPoints()
		f := make([]float64, core.NumDofs())
		for p, y := range xyz {
			f[p] = poly(y)
		}

		// physical location of the natural point
		l := core.Interp(c.xi)
		yp := make([]float64, core.NumDim())
		for p := range l {
			for i := range yp {
				yp[i] += l[p] * xyz[p][i]
			}
		}

		// <delta, f> must equal f at that location
		d := core.ApplyTestAndIntegrate(core.DeltaCoefficients(c.xi))
		dot := 0.0
		for p := range d {
			dot += d[p] * f[p]
		}
		io.Pforan("%s: <delta,f> = %v, f = %v\n", c.gtype, dot, poly(yp))
		chk.Scalar(tst, io.Sf("%s delta", c.gtype), 1e-12, dot, poly(yp))
	}
}

func Test_ele05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele05. rigid motions produce no stiffness residual")

	// acoustic: constant pressure
	core, err := NewCore("qua", 4, quaCoords(2, 1))
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	core.SetPar("vp", constVec(4, 3.0))
	k, err := NewKernel("acoustic", core)
	if err != nil {
		tst.Errorf("NewKernel failed:\n%v", err)
		return
	}
	ku := k.ComputeStiffnessTerm([][]float64{constVec(core.NumDofs(), 1.0)})
	chk.Vector(tst, "acoustic Ku", 1e-12, ku[0], make([]float64, core.NumDofs()))

	// elastic 2D: rigid translation
	core2, err := NewCore("tri", 3, triCoords())
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	core2.SetPar("rho", constVec(3, 1000.0))
	core2.SetPar("vp", constVec(3, 2.0))
	core2.SetPar("vs", constVec(3, 1.0))
	k2, err := NewKernel("elastic2d", core2)
	if err != nil {
		tst.Errorf("NewKernel failed:\n%v", err)
		return
	}
	u := [][]float64{constVec(core2.NumDofs(), 0.7), constVec(core2.NumDofs(), -0.3)}
	ku2 := k2.ComputeStiffnessTerm(u)
	zero2 := make([]float64, core2.NumDofs())
	chk.Vector(tst, "elastic2d Ku x", 1e-9, ku2[0], zero2)
	chk.Vector(tst, "elastic2d Ku y", 1e-9, ku2[1], zero2)

	// elastic 3D: rigid translation
	core3, err := NewCore("hex", 2, hexCoords(1, 2, 3))
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	core3.SetPar("rho", constVec(8, 1000.0))
	core3.SetPar("vpv", constVec(8, 2.0))
	core3.SetPar("vph", constVec(8, 2.2))
	core3.SetPar("vsv", constVec(8, 1.0))
	core3.SetPar("vsh", constVec(8, 1.1))
	core3.SetPar("eta", constVec(8, 0.9))
	k3, err := NewKernel("elastic3d", core3)
	if err != nil {
		tst.Errorf("NewKernel failed:\n%v", err)
		return
	}
	u3 := [][]float64{
		constVec(core3.NumDofs(), 1.0),
		constVec(core3.NumDofs(), 2.0),
		constVec(core3.NumDofs(), -1.0),
	}
	ku3 := k3.ComputeStiffnessTerm(u3)
	zero3 := make([]float64, core3.NumDofs())
	for ic := 0; ic < 3; ic++ {
		chk.Vector(tst, io.Sf("elastic3d Ku %d", ic), 1e-9, ku3[ic], zero3)
	}
}

func Test_ele06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele06. surface integrals of unity give the face measure")

	// qua edges
	core, err := NewCore("qua", 2, quaCoords(2, 1))
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	ones := constVec(core.NumDofs(), 1.0)
	for f, want := range []float64{2, 1, 2, 1} {
		r := core.ApplyTestAndIntegrateEdge(ones, f)
		sum := 0.0
		for _, v := range r {
			sum += v
		}
		chk.Scalar(tst, io.Sf("qua edge %d", f), 1e-14, sum, want)
	}

	// hex faces: x-normal faces have area ly*lz, etc
	core3, err := NewCore("hex", 3, hexCoords(1, 2, 3))
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	ones3 := constVec(core3.NumDofs(), 1.0)
	for f, want := range []float64{6, 6, 3, 3, 2, 2} {
		r := core3.ApplyTestAndIntegrateEdge(ones3, f)
		sum := 0.0
		for _, v := range r {
			sum += v
		}
		chk.Scalar(tst, io.Sf("hex face %d", f), 1e-13, sum, want)
	}

	// tri edges: lengths 2, 2.5, 1.5
	coret, err := NewCore("tri", 3, triCoords())
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	onest := constVec(coret.NumDofs(), 1.0)
	for f, want := range []float64{2, 2.5, 1.5} {
		r := coret.ApplyTestAndIntegrateEdge(onest, f)
		sum := 0.0
		for _, v := range r {
			sum += v
		}
		chk.Scalar(tst, io.Sf("tri edge %d", f), 1e-14, sum, want)
	}

	// tet faces on the unit corner tet
	core4, err := NewCore("tet", 3, tetCoords())
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	ones4 := constVec(core4.NumDofs(), 1.0)
	half := 0.5
	diag := math.Sqrt(3.0) / 2.0
	for f, want := range []float64{half, half, half, diag} {
		r := core4.ApplyTestAndIntegrateEdge(ones4, f)
		sum := 0.0
		for _, v := range r {
			sum += v
		}
		chk.Scalar(tst, io.Sf("tet face %d", f), 1e-13, sum, want)
	}
}

func Test_ele07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele07. dense simplex stiffness matches the matrix-free apply")

	core, err := NewCore("tri", 3, triCoords())
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	core.SetPar("vp", []float64{2.0, 2.5, 3.0})
	k, err := NewKernel("acoustic", core)
	if err != nil {
		tst.Errorf("NewKernel failed:\n%v", err)
		return
	}
	a := k.(*Acoustic)
	u := make([]float64, core.NumDofs())
	for p, y := range core.NodalPoints() {
		u[p] = math.Sin(y[0]) * math.Cos(y[1])
	}
	free := a.apply([][]float64{u})
	dense := k.ComputeStiffnessTerm([][]float64{u})
	chk.Vector(tst, "Ku", 1e-11, dense[0], free[0])
}

func Test_ele08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele08. Dirichlet decoration zeroes pinned residuals")

	core, err := NewCore("qua", 3, quaCoords(2, 1))
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	core.SetPar("vp", constVec(4, 2.0))
	inner, err := NewKernel("acoustic", core)
	if err != nil {
		tst.Errorf("NewKernel failed:\n%v", err)
		return
	}
	k := NewDirichlet(inner)
	k.SetBoundaryConditions([]int{0, 1})

	u := make([]float64, core.NumDofs())
	for p, y := range core.NodalPoints() {
		u[p] = y[0]*y[0] + y[1]
	}
	ku := k.ComputeStiffnessTerm([][]float64{u})
	for _, d := range k.Pinned() {
		if ku[0][d] != 0 {
			tst.Errorf("pinned DoF %d has residual %g", d, ku[0][d])
			return
		}
	}

	// unpinned interior DoFs must be untouched
	raw := inner.ComputeStiffnessTerm([][]float64{u})
	mask := make(map[int]bool)
	for _, d := range k.Pinned() {
		mask[d] = true
	}
	for p := range raw[0] {
		if !mask[p] {
			chk.Scalar(tst, io.Sf("free DoF %d", p), 1e-15, ku[0][p], raw[0][p])
		}
	}
}

func Test_ele09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ele09. kernel registry")

	core, err := NewCore("qua", 2, quaCoords(1, 1))
	if err != nil {
		tst.Errorf("NewCore failed:\n%v", err)
		return
	}
	if _, err := NewKernel("magnetohydro", core); err == nil {
		tst.Errorf("unknown physics must fail")
		return
	}
	if _, err := NewKernel("elastic3d", core); err == nil {
		tst.Errorf("elastic3d on a 2D cell must fail")
		return
	}
	if _, err := NewCore("pyramid", 2, quaCoords(1, 1)); err == nil {
		tst.Errorf("unknown geometry must fail")
		return
	}
}

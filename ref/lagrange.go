// Copyright 2016 The gosem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ref

// Interp returns the n+1 Lagrange basis values at xi for the 1D GLL basis of
// order n. At a node the result is the exact Kronecker delta.
func Interp(xi float64, n int) (l []float64, err error) {
	t, err := table(n)
	if err != nil {
		return nil, err
	}
	l = make([]float64, n+1)
	for j := 0; j <= n; j++ {
		p := 1.0
		for k := 0; k <= n; k++ {
			if k != j {
				p *= (xi - t.X[k]) / (t.X[j] - t.X[k])
			}
		}
		l[j] = p
	}
	return
}

// Deriv returns the derivatives dl_j/dxi of the n+1 Lagrange basis functions
// at xi
func Deriv(xi float64, n int) (d []float64, err error) {
	t, err := table(n)
	if err != nil {
		return nil, err
	}
	d = make([]float64, n+1)
	for j := 0; j <= n; j++ {
		sum := 0.0
		for m := 0; m <= n; m++ {
			if m == j {
				continue
			}
			p := 1.0 / (t.X[j] - t.X[m])
			for k := 0; k <= n; k++ {
				if k != j && k != m {
					p *= (xi - t.X[k]) / (t.X[j] - t.X[k])
				}
			}
			sum += p
		}
		d[j] = sum
	}
	return
}

package tree

import "math"

// invertSymmetric inverts the symmetric positive definite hinge
// matrix a (row major, n <= 6) into out via a Cholesky factorization.
// The hinge matrix of a well-formed joint is SPD by construction; a
// non-positive pivot means degenerate mass properties and panics as a
// modeling bug.
func invertSymmetric(a, out []float64, n int) {
	var l [6][6]float64
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i*n+j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 0 {
					panic("tree: hinge matrix not positive definite (massless or degenerate body?)")
				}
				l[i][i] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	// solve L L^T x = e_c for each unit column
	for c := 0; c < n; c++ {
		var y [6]float64
		for i := 0; i < n; i++ {
			v := 0.0
			if i == c {
				v = 1
			}
			for k := 0; k < i; k++ {
				v -= l[i][k] * y[k]
			}
			y[i] = v / l[i][i]
		}
		for i := n - 1; i >= 0; i-- {
			v := y[i]
			for k := i + 1; k < n; k++ {
				v -= l[k][i] * out[k*n+c]
			}
			out[i*n+c] = v / l[i][i]
		}
	}
}

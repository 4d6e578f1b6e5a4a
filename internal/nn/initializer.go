package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Initializer fills a freshly allocated weight matrix.
type Initializer func(rng *rand.Rand, rows, cols int) *mat.Dense

// GlorotUniform draws from U(-l, l) with l = sqrt(6/(fanIn+fanOut)),
// the default for dense and convolution kernels.
func GlorotUniform(rng *rand.Rand, rows, cols int) *mat.Dense {
	limit := math.Sqrt(6 / float64(rows+cols))
	return RandomUniform(-limit, limit)(rng, rows, cols)
}

// RandomUniform draws every entry from U(lo, hi). Embedding tables use
// the conventional (-0.05, 0.05) range.
func RandomUniform(lo, hi float64) Initializer {
	return func(rng *rand.Rand, rows, cols int) *mat.Dense {
		out := mat.NewDense(rows, cols, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				out.Set(i, j, lo+rng.Float64()*(hi-lo))
			}
		}
		return out
	}
}

// Orthogonal produces a matrix with orthonormal rows or columns via the
// QR decomposition of a Gaussian matrix, used for recurrent kernels.
func Orthogonal(rng *rand.Rand, rows, cols int) *mat.Dense {
	n := rows
	if cols > n {
		n = cols
	}
	g := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Set(i, j, rng.NormFloat64())
		}
	}
	var qr mat.QR
	qr.Factorize(g)
	var q mat.Dense
	qr.QTo(&q)

	out := mat.NewDense(rows, cols, nil)
	out.Copy(q.Slice(0, rows, 0, cols))
	return out
}

// Zeros is the bias initializer.
func Zeros(_ *rand.Rand, rows, cols int) *mat.Dense {
	return mat.NewDense(rows, cols, nil)
}

package nn

import "gonum.org/v1/gonum/mat"

// Regularizer is an additive weight penalty: l1*Σ|w| + l2*Σw². The zero
// value applies no penalty.
type Regularizer struct {
	L1Rate float64
	L2Rate float64
}

func L1(rate float64) Regularizer   { return Regularizer{L1Rate: rate} }
func L2(rate float64) Regularizer   { return Regularizer{L2Rate: rate} }
func L1L2(l1, l2 float64) Regularizer {
	return Regularizer{L1Rate: l1, L2Rate: l2}
}

func (r Regularizer) zero() bool {
	return r.L1Rate == 0 && r.L2Rate == 0
}

// Loss is the penalty's contribution to the reported training loss.
func (r Regularizer) Loss(w *mat.Dense) float64 {
	if r.zero() {
		return 0
	}
	var sum float64
	rows, cols := w.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := w.At(i, j)
			if r.L1Rate != 0 {
				if v < 0 {
					sum -= r.L1Rate * v
				} else {
					sum += r.L1Rate * v
				}
			}
			if r.L2Rate != 0 {
				sum += r.L2Rate * v * v
			}
		}
	}
	return sum
}

// AddGrad accumulates the penalty gradient, l1*sign(w) + 2*l2*w, into
// grad.
func (r Regularizer) AddGrad(w, grad *mat.Dense) {
	if r.zero() {
		return
	}
	rows, cols := w.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := w.At(i, j)
			g := 2 * r.L2Rate * v
			if r.L1Rate != 0 {
				switch {
				case v > 0:
					g += r.L1Rate
				case v < 0:
					g -= r.L1Rate
				}
			}
			grad.Set(i, j, grad.At(i, j)+g)
		}
	}
}

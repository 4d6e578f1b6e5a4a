package nn

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Layer is one stage of a sequential model. Build fixes the weight
// shapes from the incoming example shape and reports the outgoing one;
// Forward caches whatever Backward needs, so a layer instance belongs
// to exactly one model.
//
// Backward returns the gradient with respect to the layer input, or nil
// for layers that terminate the chain (embedding lookup on raw
// indices).
type Layer interface {
	Name() string
	Build(in Shape, rng *rand.Rand) (Shape, error)
	Forward(x *mat.Dense, training bool) *mat.Dense
	Backward(grad *mat.Dense) *mat.Dense
	Params() []*Param
}

// regularized is implemented by layers carrying a weight penalty that
// contributes to the reported training loss.
type regularized interface {
	regLoss() float64
}

// colSumsInto accumulates the column sums of m into the 1×cols dst.
func colSumsInto(dst, m *mat.Dense) {
	rows, cols := m.Dims()
	for j := 0; j < cols; j++ {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += m.At(i, j)
		}
		dst.Set(0, j, dst.At(0, j)+sum)
	}
}

// addRowBroadcast adds the 1×cols row vector b to every row of m.
func addRowBroadcast(m, b *mat.Dense) {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, m.At(i, j)+b.At(0, j))
		}
	}
}

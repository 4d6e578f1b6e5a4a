// Package nn is a small sequential neural-network engine over gonum
// matrices: dense, embedding, recurrent, convolutional, pooling, and
// dropout layers, trained by mini-batch gradient descent with
// SGD/RMSprop/Adam optimizers and L1/L2 weight penalties.
//
// Batches travel as *mat.Dense with one example per row. Sequence data
// is stored row-major per example, Steps*Features columns wide, with
// the Shape describing the per-example layout.
package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Shape describes one example's layout. Flat vectors have Steps == 0;
// sequences have Steps > 0 with Features values per step.
type Shape struct {
	Steps    int
	Features int
}

// Cols is the number of matrix columns an example of this shape
// occupies.
func (s Shape) Cols() int {
	if s.Steps > 0 {
		return s.Steps * s.Features
	}
	return s.Features
}

func (s Shape) String() string {
	if s.Steps > 0 {
		return fmt.Sprintf("(%d, %d)", s.Steps, s.Features)
	}
	return fmt.Sprintf("(%d)", s.Features)
}

// Param is one trainable tensor and the gradient accumulated for it
// during the current batch.
type Param struct {
	Name string
	W    *mat.Dense
	Grad *mat.Dense
}

func newParam(name string, w *mat.Dense) *Param {
	r, c := w.Dims()
	return &Param{Name: name, W: w, Grad: mat.NewDense(r, c, nil)}
}

func (p *Param) zeroGrad() {
	p.Grad.Zero()
}

// stepView returns the t-th step slice of a sequence batch laid out as
// (N, steps*features).
func stepView(x *mat.Dense, t, features int) *mat.Dense {
	r, _ := x.Dims()
	return x.Slice(0, r, t*features, (t+1)*features).(*mat.Dense)
}

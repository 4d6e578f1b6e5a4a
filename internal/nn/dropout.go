package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Dropout zeroes a random Rate fraction of activations during training
// and rescales the survivors by 1/(1-Rate), so inference is a plain
// identity (inverted dropout).
type Dropout struct {
	Rate float64

	name string
	rng  *rand.Rand
	mask *mat.Dense
}

func (d *Dropout) Name() string { return d.name }

func (d *Dropout) Build(in Shape, rng *rand.Rand) (Shape, error) {
	if d.Rate < 0 || d.Rate >= 1 {
		return Shape{}, fmt.Errorf("dropout rate must be in [0, 1), got %g", d.Rate)
	}
	d.name = fmt.Sprintf("dropout_%g", d.Rate)
	d.rng = rand.New(rand.NewSource(rng.Int63()))
	return in, nil
}

func (d *Dropout) Forward(x *mat.Dense, training bool) *mat.Dense {
	if !training || d.Rate == 0 {
		d.mask = nil
		return x
	}

	rows, cols := x.Dims()
	keep := 1 - d.Rate
	d.mask = mat.NewDense(rows, cols, nil)
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if d.rng.Float64() < keep {
				m := 1 / keep
				d.mask.Set(i, j, m)
				out.Set(i, j, x.At(i, j)*m)
			}
		}
	}
	return out
}

func (d *Dropout) Backward(grad *mat.Dense) *mat.Dense {
	if d.mask == nil {
		return grad
	}
	rows, cols := grad.Dims()
	dx := mat.NewDense(rows, cols, nil)
	dx.MulElem(grad, d.mask)
	return dx
}

func (d *Dropout) Params() []*Param { return nil }

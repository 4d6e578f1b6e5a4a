package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activation names a pointwise nonlinearity.
type Activation string

const (
	Linear  Activation = "linear"
	ReLU    Activation = "relu"
	Sigmoid Activation = "sigmoid"
	Tanh    Activation = "tanh"
)

func (a Activation) valid() error {
	switch a {
	case Linear, ReLU, Sigmoid, Tanh, "":
		return nil
	}
	return fmt.Errorf("unknown activation %q", a)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// apply computes the activation of z into a new matrix.
func (a Activation) apply(z *mat.Dense) *mat.Dense {
	r, c := z.Dims()
	out := mat.NewDense(r, c, nil)
	switch a {
	case ReLU:
		out.Apply(func(_, _ int, v float64) float64 {
			if v > 0 {
				return v
			}
			return 0
		}, z)
	case Sigmoid:
		out.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, z)
	case Tanh:
		out.Apply(func(_, _ int, v float64) float64 { return math.Tanh(v) }, z)
	default:
		out.Copy(z)
	}
	return out
}

// deriv is the activation derivative expressed in terms of the
// activation output y (cheaper than re-evaluating from z for sigmoid
// and tanh).
func (a Activation) deriv(y float64) float64 {
	switch a {
	case ReLU:
		if y > 0 {
			return 1
		}
		return 0
	case Sigmoid:
		return y * (1 - y)
	case Tanh:
		return 1 - y*y
	default:
		return 1
	}
}

// backprop multiplies the upstream gradient by the activation
// derivative, element-wise, into a new matrix.
func (a Activation) backprop(grad, out *mat.Dense) *mat.Dense {
	r, c := grad.Dims()
	dz := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dz.Set(i, j, grad.At(i, j)*a.deriv(out.At(i, j)))
		}
	}
	return dz
}

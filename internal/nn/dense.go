package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Dense is a fully connected layer: out = act(x·W + b), with an
// optional L1/L2 penalty on the kernel.
type Dense struct {
	Units      int
	Activation Activation
	KernelReg  Regularizer
	Init       Initializer

	name string
	w, b *Param

	x, out *mat.Dense
}

func (d *Dense) Name() string { return d.name }

func (d *Dense) Build(in Shape, rng *rand.Rand) (Shape, error) {
	if in.Steps != 0 {
		return Shape{}, fmt.Errorf("dense layer needs a flat input, got %s; flatten or pool first", in)
	}
	if d.Units <= 0 {
		return Shape{}, fmt.Errorf("dense layer needs a positive unit count, got %d", d.Units)
	}
	if err := d.Activation.valid(); err != nil {
		return Shape{}, err
	}
	init := d.Init
	if init == nil {
		init = GlorotUniform
	}
	d.name = fmt.Sprintf("dense_%d", d.Units)
	d.w = newParam(d.name+"/kernel", init(rng, in.Features, d.Units))
	d.b = newParam(d.name+"/bias", Zeros(rng, 1, d.Units))
	return Shape{Features: d.Units}, nil
}

func (d *Dense) Forward(x *mat.Dense, training bool) *mat.Dense {
	rows, _ := x.Dims()
	z := mat.NewDense(rows, d.Units, nil)
	z.Mul(x, d.w.W)
	addRowBroadcast(z, d.b.W)

	d.out = d.Activation.apply(z)
	if training {
		d.x = x
	}
	return d.out
}

func (d *Dense) Backward(grad *mat.Dense) *mat.Dense {
	dz := d.Activation.backprop(grad, d.out)

	var dw mat.Dense
	dw.Mul(d.x.T(), dz)
	d.w.Grad.Add(d.w.Grad, &dw)
	d.KernelReg.AddGrad(d.w.W, d.w.Grad)

	colSumsInto(d.b.Grad, dz)

	rows, _ := dz.Dims()
	_, inCols := d.x.Dims()
	dx := mat.NewDense(rows, inCols, nil)
	dx.Mul(dz, d.w.W.T())
	return dx
}

func (d *Dense) Params() []*Param { return []*Param{d.w, d.b} }

func (d *Dense) regLoss() float64 { return d.KernelReg.Loss(d.w.W) }

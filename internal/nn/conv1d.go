package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Conv1D slides KernelSize-wide filters along the time axis (valid
// padding, stride 1). The packed kernel is (KernelSize*inFeatures,
// Filters); forward builds the patch matrix once per batch so both
// passes are single matrix products.
type Conv1D struct {
	Filters    int
	KernelSize int
	Activation Activation

	name     string
	in, out  Shape
	w, b     *Param

	patches *mat.Dense
	outAct  *mat.Dense
}

func (c *Conv1D) Name() string { return c.name }

func (c *Conv1D) Build(in Shape, rng *rand.Rand) (Shape, error) {
	if in.Steps == 0 {
		return Shape{}, fmt.Errorf("conv1d needs a sequence input, got %s", in)
	}
	if c.Filters <= 0 || c.KernelSize <= 0 {
		return Shape{}, fmt.Errorf("conv1d needs positive filters and kernel size, got (%d, %d)", c.Filters, c.KernelSize)
	}
	if c.KernelSize > in.Steps {
		return Shape{}, fmt.Errorf("conv1d kernel of %d does not fit %d steps", c.KernelSize, in.Steps)
	}
	if err := c.Activation.valid(); err != nil {
		return Shape{}, err
	}
	c.in = in
	c.out = Shape{Steps: in.Steps - c.KernelSize + 1, Features: c.Filters}
	c.name = fmt.Sprintf("conv1d_%dx%d", c.Filters, c.KernelSize)
	c.w = newParam(c.name+"/kernel", GlorotUniform(rng, c.KernelSize*in.Features, c.Filters))
	c.b = newParam(c.name+"/bias", Zeros(rng, 1, c.Filters))
	return c.out, nil
}

func (c *Conv1D) Forward(x *mat.Dense, training bool) *mat.Dense {
	rows, _ := x.Dims()
	window := c.KernelSize * c.in.Features

	// One patch row per (example, output step).
	patches := mat.NewDense(rows*c.out.Steps, window, nil)
	parallelFor(rows, func(i int) {
		for t := 0; t < c.out.Steps; t++ {
			for k := 0; k < window; k++ {
				patches.Set(i*c.out.Steps+t, k, x.At(i, t*c.in.Features+k))
			}
		}
	})

	var z mat.Dense
	z.Mul(patches, c.w.W)
	addRowBroadcast(&z, c.b.W)
	act := c.Activation.apply(&z)

	out := mat.NewDense(rows, c.out.Cols(), nil)
	for i := 0; i < rows; i++ {
		for t := 0; t < c.out.Steps; t++ {
			for f := 0; f < c.Filters; f++ {
				out.Set(i, t*c.Filters+f, act.At(i*c.out.Steps+t, f))
			}
		}
	}

	if training {
		c.patches = patches
		c.outAct = act
	}
	return out
}

func (c *Conv1D) Backward(grad *mat.Dense) *mat.Dense {
	rows, _ := grad.Dims()
	window := c.KernelSize * c.in.Features

	// Unpack the upstream gradient to patch-row layout and apply the
	// activation derivative.
	dzFlat := mat.NewDense(rows*c.out.Steps, c.Filters, nil)
	for i := 0; i < rows; i++ {
		for t := 0; t < c.out.Steps; t++ {
			for f := 0; f < c.Filters; f++ {
				y := c.outAct.At(i*c.out.Steps+t, f)
				dzFlat.Set(i*c.out.Steps+t, f, grad.At(i, t*c.Filters+f)*c.Activation.deriv(y))
			}
		}
	}

	var dw mat.Dense
	dw.Mul(c.patches.T(), dzFlat)
	c.w.Grad.Add(c.w.Grad, &dw)
	colSumsInto(c.b.Grad, dzFlat)

	var dPatches mat.Dense
	dPatches.Mul(dzFlat, c.w.W.T())

	// Scatter-add overlapping patch gradients back onto the input.
	dx := mat.NewDense(rows, c.in.Cols(), nil)
	for i := 0; i < rows; i++ {
		for t := 0; t < c.out.Steps; t++ {
			for k := 0; k < window; k++ {
				col := t*c.in.Features + k
				dx.Set(i, col, dx.At(i, col)+dPatches.At(i*c.out.Steps+t, k))
			}
		}
	}
	return dx
}

func (c *Conv1D) Params() []*Param { return []*Param{c.w, c.b} }

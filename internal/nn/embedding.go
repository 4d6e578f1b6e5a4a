package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Embedding maps integer token indices to learned dense vectors. It
// consumes an (N, steps) matrix of indices stored as floats and emits
// an (N, steps, OutputDim) sequence. It must be the first layer of a
// model; Backward returns nil since raw indices have no gradient.
type Embedding struct {
	InputDim  int
	OutputDim int
	Init      Initializer

	name  string
	steps int
	table *Param

	indices [][]int
}

func (e *Embedding) Name() string { return e.name }

func (e *Embedding) Build(in Shape, rng *rand.Rand) (Shape, error) {
	if in.Steps != 0 {
		return Shape{}, fmt.Errorf("embedding input must be a flat index matrix, got %s", in)
	}
	if e.InputDim <= 0 || e.OutputDim <= 0 {
		return Shape{}, fmt.Errorf("embedding needs positive dims, got (%d, %d)", e.InputDim, e.OutputDim)
	}
	init := e.Init
	if init == nil {
		init = RandomUniform(-0.05, 0.05)
	}
	e.steps = in.Features
	e.name = fmt.Sprintf("embedding_%dx%d", e.InputDim, e.OutputDim)
	e.table = newParam(e.name+"/table", init(rng, e.InputDim, e.OutputDim))
	return Shape{Steps: e.steps, Features: e.OutputDim}, nil
}

func (e *Embedding) Forward(x *mat.Dense, training bool) *mat.Dense {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols*e.OutputDim, nil)

	indices := make([][]int, rows)
	parallelFor(rows, func(i int) {
		row := make([]int, cols)
		for t := 0; t < cols; t++ {
			idx := int(x.At(i, t))
			if idx < 0 || idx >= e.InputDim {
				idx = 0
			}
			row[t] = idx
			for d := 0; d < e.OutputDim; d++ {
				out.Set(i, t*e.OutputDim+d, e.table.W.At(idx, d))
			}
		}
		indices[i] = row
	})

	if training {
		e.indices = indices
	}
	return out
}

func (e *Embedding) Backward(grad *mat.Dense) *mat.Dense {
	for i, row := range e.indices {
		for t, idx := range row {
			for d := 0; d < e.OutputDim; d++ {
				g := e.table.Grad.At(idx, d) + grad.At(i, t*e.OutputDim+d)
				e.table.Grad.Set(idx, d, g)
			}
		}
	}
	return nil
}

func (e *Embedding) Params() []*Param { return []*Param{e.table} }

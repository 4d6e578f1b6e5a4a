package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// MaxPooling1D takes the per-feature maximum over non-overlapping
// windows of PoolSize steps, shortening the sequence by that factor.
// Trailing steps that do not fill a window are dropped.
type MaxPooling1D struct {
	PoolSize int

	name    string
	in, out Shape
	argmax  []int // flat (row, outStep, feature) → winning input step
}

func (p *MaxPooling1D) Name() string { return p.name }

func (p *MaxPooling1D) Build(in Shape, _ *rand.Rand) (Shape, error) {
	if in.Steps == 0 {
		return Shape{}, fmt.Errorf("max pooling needs a sequence input, got %s", in)
	}
	if p.PoolSize <= 0 || p.PoolSize > in.Steps {
		return Shape{}, fmt.Errorf("pool size %d does not fit %d steps", p.PoolSize, in.Steps)
	}
	p.in = in
	p.out = Shape{Steps: in.Steps / p.PoolSize, Features: in.Features}
	p.name = fmt.Sprintf("max_pooling1d_%d", p.PoolSize)
	return p.out, nil
}

func (p *MaxPooling1D) Forward(x *mat.Dense, training bool) *mat.Dense {
	rows, _ := x.Dims()
	out := mat.NewDense(rows, p.out.Cols(), nil)
	argmax := make([]int, rows*p.out.Cols())

	parallelFor(rows, func(i int) {
		for t := 0; t < p.out.Steps; t++ {
			for f := 0; f < p.in.Features; f++ {
				best := math.Inf(-1)
				bestStep := t * p.PoolSize
				for s := t * p.PoolSize; s < (t+1)*p.PoolSize; s++ {
					if v := x.At(i, s*p.in.Features+f); v > best {
						best = v
						bestStep = s
					}
				}
				out.Set(i, t*p.in.Features+f, best)
				argmax[i*p.out.Cols()+t*p.in.Features+f] = bestStep
			}
		}
	})

	if training {
		p.argmax = argmax
	}
	return out
}

func (p *MaxPooling1D) Backward(grad *mat.Dense) *mat.Dense {
	rows, _ := grad.Dims()
	dx := mat.NewDense(rows, p.in.Cols(), nil)
	for i := 0; i < rows; i++ {
		for t := 0; t < p.out.Steps; t++ {
			for f := 0; f < p.in.Features; f++ {
				s := p.argmax[i*p.out.Cols()+t*p.in.Features+f]
				col := s*p.in.Features + f
				dx.Set(i, col, dx.At(i, col)+grad.At(i, t*p.in.Features+f))
			}
		}
	}
	return dx
}

func (p *MaxPooling1D) Params() []*Param { return nil }

// GlobalMaxPooling1D collapses the whole sequence to one per-feature
// maximum, producing a flat vector.
type GlobalMaxPooling1D struct {
	in     Shape
	argmax []int
}

func (g *GlobalMaxPooling1D) Name() string { return "global_max_pooling1d" }

func (g *GlobalMaxPooling1D) Build(in Shape, _ *rand.Rand) (Shape, error) {
	if in.Steps == 0 {
		return Shape{}, fmt.Errorf("global max pooling needs a sequence input, got %s", in)
	}
	g.in = in
	return Shape{Features: in.Features}, nil
}

func (g *GlobalMaxPooling1D) Forward(x *mat.Dense, training bool) *mat.Dense {
	rows, _ := x.Dims()
	out := mat.NewDense(rows, g.in.Features, nil)
	argmax := make([]int, rows*g.in.Features)

	parallelFor(rows, func(i int) {
		for f := 0; f < g.in.Features; f++ {
			best := math.Inf(-1)
			bestStep := 0
			for s := 0; s < g.in.Steps; s++ {
				if v := x.At(i, s*g.in.Features+f); v > best {
					best = v
					bestStep = s
				}
			}
			out.Set(i, f, best)
			argmax[i*g.in.Features+f] = bestStep
		}
	})

	if training {
		g.argmax = argmax
	}
	return out
}

func (g *GlobalMaxPooling1D) Backward(grad *mat.Dense) *mat.Dense {
	rows, _ := grad.Dims()
	dx := mat.NewDense(rows, g.in.Cols(), nil)
	for i := 0; i < rows; i++ {
		for f := 0; f < g.in.Features; f++ {
			s := g.argmax[i*g.in.Features+f]
			dx.Set(i, s*g.in.Features+f, grad.At(i, f))
		}
	}
	return dx
}

func (g *GlobalMaxPooling1D) Params() []*Param { return nil }

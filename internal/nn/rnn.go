package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SimpleRNN is a vanilla recurrent layer: h_t = tanh(x_t·Wx + h_{t-1}·Wh
// + b), emitting the final hidden state as a flat vector.
type SimpleRNN struct {
	Units int

	name       string
	in         Shape
	wx, wh, b  *Param

	x  *mat.Dense
	hs []*mat.Dense // hs[0] is the zero state, hs[t] the state after step t
}

func (r *SimpleRNN) Name() string { return r.name }

func (r *SimpleRNN) Build(in Shape, rng *rand.Rand) (Shape, error) {
	if in.Steps == 0 {
		return Shape{}, fmt.Errorf("recurrent layer needs a sequence input, got %s", in)
	}
	if r.Units <= 0 {
		return Shape{}, fmt.Errorf("recurrent layer needs a positive unit count, got %d", r.Units)
	}
	r.in = in
	r.name = fmt.Sprintf("simple_rnn_%d", r.Units)
	r.wx = newParam(r.name+"/kernel", GlorotUniform(rng, in.Features, r.Units))
	r.wh = newParam(r.name+"/recurrent", Orthogonal(rng, r.Units, r.Units))
	r.b = newParam(r.name+"/bias", Zeros(rng, 1, r.Units))
	return Shape{Features: r.Units}, nil
}

func (r *SimpleRNN) Forward(x *mat.Dense, training bool) *mat.Dense {
	rows, _ := x.Dims()
	h := mat.NewDense(rows, r.Units, nil)

	hs := make([]*mat.Dense, r.in.Steps+1)
	hs[0] = h
	for t := 0; t < r.in.Steps; t++ {
		xt := stepView(x, t, r.in.Features)

		z := mat.NewDense(rows, r.Units, nil)
		z.Mul(xt, r.wx.W)
		var rec mat.Dense
		rec.Mul(hs[t], r.wh.W)
		z.Add(z, &rec)
		addRowBroadcast(z, r.b.W)
		z.Apply(func(_, _ int, v float64) float64 { return math.Tanh(v) }, z)

		hs[t+1] = z
	}

	if training {
		r.x = x
		r.hs = hs
	}
	return hs[r.in.Steps]
}

func (r *SimpleRNN) Backward(grad *mat.Dense) *mat.Dense {
	rows, _ := grad.Dims()
	dx := mat.NewDense(rows, r.in.Cols(), nil)

	dh := mat.DenseCopyOf(grad)
	for t := r.in.Steps; t >= 1; t-- {
		ht := r.hs[t]

		// dz = dh ⊙ (1 - h²)
		dz := mat.NewDense(rows, r.Units, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < r.Units; j++ {
				v := ht.At(i, j)
				dz.Set(i, j, dh.At(i, j)*(1-v*v))
			}
		}

		xt := stepView(r.x, t-1, r.in.Features)
		var dwx, dwh mat.Dense
		dwx.Mul(xt.T(), dz)
		r.wx.Grad.Add(r.wx.Grad, &dwx)
		dwh.Mul(r.hs[t-1].T(), dz)
		r.wh.Grad.Add(r.wh.Grad, &dwh)
		colSumsInto(r.b.Grad, dz)

		var dxt mat.Dense
		dxt.Mul(dz, r.wx.W.T())
		dst := stepView(dx, t-1, r.in.Features)
		dst.Copy(&dxt)

		dh.Mul(dz, r.wh.W.T())
	}
	return dx
}

func (r *SimpleRNN) Params() []*Param { return []*Param{r.wx, r.wh, r.b} }

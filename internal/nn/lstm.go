package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// LSTM is a long short-term memory layer emitting its final hidden
// state. Gate order in the packed kernels is input, forget, candidate,
// output. The forget-gate bias starts at 1 so early training does not
// erase the cell state.
type LSTM struct {
	Units int

	name      string
	in        Shape
	wx, wh, b *Param

	x          *mat.Dense
	hs, cs     []*mat.Dense
	i, f, g, o []*mat.Dense
}

func (l *LSTM) Name() string { return l.name }

func (l *LSTM) Build(in Shape, rng *rand.Rand) (Shape, error) {
	if in.Steps == 0 {
		return Shape{}, fmt.Errorf("recurrent layer needs a sequence input, got %s", in)
	}
	if l.Units <= 0 {
		return Shape{}, fmt.Errorf("recurrent layer needs a positive unit count, got %d", l.Units)
	}
	l.in = in
	l.name = fmt.Sprintf("lstm_%d", l.Units)
	l.wx = newParam(l.name+"/kernel", GlorotUniform(rng, in.Features, 4*l.Units))
	l.wh = newParam(l.name+"/recurrent", Orthogonal(rng, l.Units, 4*l.Units))

	bias := Zeros(rng, 1, 4*l.Units)
	for j := l.Units; j < 2*l.Units; j++ {
		bias.Set(0, j, 1)
	}
	l.b = newParam(l.name+"/bias", bias)
	return Shape{Features: l.Units}, nil
}

// gate extracts gate k (0..3) from the packed (rows, 4*Units) matrix.
func (l *LSTM) gate(z *mat.Dense, k int) *mat.Dense {
	rows, _ := z.Dims()
	return z.Slice(0, rows, k*l.Units, (k+1)*l.Units).(*mat.Dense)
}

func (l *LSTM) Forward(x *mat.Dense, training bool) *mat.Dense {
	rows, _ := x.Dims()
	steps := l.in.Steps

	hs := make([]*mat.Dense, steps+1)
	cs := make([]*mat.Dense, steps+1)
	hs[0] = mat.NewDense(rows, l.Units, nil)
	cs[0] = mat.NewDense(rows, l.Units, nil)
	is := make([]*mat.Dense, steps)
	fs := make([]*mat.Dense, steps)
	gs := make([]*mat.Dense, steps)
	os := make([]*mat.Dense, steps)

	for t := 0; t < steps; t++ {
		xt := stepView(x, t, l.in.Features)

		z := mat.NewDense(rows, 4*l.Units, nil)
		z.Mul(xt, l.wx.W)
		var rec mat.Dense
		rec.Mul(hs[t], l.wh.W)
		z.Add(z, &rec)
		addRowBroadcast(z, l.b.W)

		it := mat.NewDense(rows, l.Units, nil)
		ft := mat.NewDense(rows, l.Units, nil)
		gt := mat.NewDense(rows, l.Units, nil)
		ot := mat.NewDense(rows, l.Units, nil)
		it.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, l.gate(z, 0))
		ft.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, l.gate(z, 1))
		gt.Apply(func(_, _ int, v float64) float64 { return math.Tanh(v) }, l.gate(z, 2))
		ot.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, l.gate(z, 3))

		ct := mat.NewDense(rows, l.Units, nil)
		ht := mat.NewDense(rows, l.Units, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < l.Units; j++ {
				c := ft.At(i, j)*cs[t].At(i, j) + it.At(i, j)*gt.At(i, j)
				ct.Set(i, j, c)
				ht.Set(i, j, ot.At(i, j)*math.Tanh(c))
			}
		}

		hs[t+1], cs[t+1] = ht, ct
		is[t], fs[t], gs[t], os[t] = it, ft, gt, ot
	}

	if training {
		l.x = x
		l.hs, l.cs = hs, cs
		l.i, l.f, l.g, l.o = is, fs, gs, os
	}
	return hs[steps]
}

func (l *LSTM) Backward(grad *mat.Dense) *mat.Dense {
	rows, _ := grad.Dims()
	steps := l.in.Steps
	dx := mat.NewDense(rows, l.in.Cols(), nil)

	dh := mat.DenseCopyOf(grad)
	dc := mat.NewDense(rows, l.Units, nil)
	dz := mat.NewDense(rows, 4*l.Units, nil)

	for t := steps; t >= 1; t-- {
		it, ft, gt, ot := l.i[t-1], l.f[t-1], l.g[t-1], l.o[t-1]
		ct, cPrev := l.cs[t], l.cs[t-1]

		for i := 0; i < rows; i++ {
			for j := 0; j < l.Units; j++ {
				tc := math.Tanh(ct.At(i, j))
				dhv := dh.At(i, j)

				dcv := dc.At(i, j) + dhv*ot.At(i, j)*(1-tc*tc)
				dov := dhv * tc
				div := dcv * gt.At(i, j)
				dfv := dcv * cPrev.At(i, j)
				dgv := dcv * it.At(i, j)

				iv, fv, gv, ov := it.At(i, j), ft.At(i, j), gt.At(i, j), ot.At(i, j)
				dz.Set(i, j, div*iv*(1-iv))
				dz.Set(i, l.Units+j, dfv*fv*(1-fv))
				dz.Set(i, 2*l.Units+j, dgv*(1-gv*gv))
				dz.Set(i, 3*l.Units+j, dov*ov*(1-ov))

				dc.Set(i, j, dcv*fv)
			}
		}

		xt := stepView(l.x, t-1, l.in.Features)
		var dwx, dwh mat.Dense
		dwx.Mul(xt.T(), dz)
		l.wx.Grad.Add(l.wx.Grad, &dwx)
		dwh.Mul(l.hs[t-1].T(), dz)
		l.wh.Grad.Add(l.wh.Grad, &dwh)
		colSumsInto(l.b.Grad, dz)

		var dxt mat.Dense
		dxt.Mul(dz, l.wx.W.T())
		stepView(dx, t-1, l.in.Features).Copy(&dxt)

		dh.Mul(dz, l.wh.W.T())
	}
	return dx
}

func (l *LSTM) Params() []*Param { return []*Param{l.wx, l.wh, l.b} }

package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Optimizer applies one update step from the gradients accumulated on
// the given parameters. Implementations keep per-parameter state keyed
// by identity, so an optimizer instance belongs to one model.
type Optimizer interface {
	Name() string
	Step(params []*Param)
}

// clipByNorm rescales grad in place when its Frobenius norm exceeds
// maxNorm. A maxNorm of 0 disables clipping.
func clipByNorm(grad *mat.Dense, maxNorm float64) {
	if maxNorm <= 0 {
		return
	}
	norm := mat.Norm(grad, 2)
	if norm > maxNorm {
		grad.Scale(maxNorm/norm, grad)
	}
}

// SGD is plain gradient descent with optional momentum.
type SGD struct {
	LR       float64
	Momentum float64
	ClipNorm float64

	velocity map[*Param]*mat.Dense
}

func NewSGD(lr float64) *SGD {
	return &SGD{LR: lr, velocity: make(map[*Param]*mat.Dense)}
}

func (s *SGD) Name() string { return "sgd" }

func (s *SGD) Step(params []*Param) {
	if s.velocity == nil {
		s.velocity = make(map[*Param]*mat.Dense)
	}
	for _, p := range params {
		clipByNorm(p.Grad, s.ClipNorm)
		if s.Momentum == 0 {
			var step mat.Dense
			step.Scale(s.LR, p.Grad)
			p.W.Sub(p.W, &step)
			continue
		}
		v, ok := s.velocity[p]
		if !ok {
			r, c := p.W.Dims()
			v = mat.NewDense(r, c, nil)
			s.velocity[p] = v
		}
		var step mat.Dense
		step.Scale(s.LR, p.Grad)
		v.Scale(s.Momentum, v)
		v.Sub(v, &step)
		p.W.Add(p.W, v)
	}
}

// RMSprop divides the learning rate by a running RMS of recent
// gradients. The defaults (lr 0.001, rho 0.9) are what the lessons'
// dense models compile with.
type RMSprop struct {
	LR       float64
	Rho      float64
	Eps      float64
	ClipNorm float64

	cache map[*Param]*mat.Dense
}

func NewRMSprop() *RMSprop {
	return &RMSprop{LR: 0.001, Rho: 0.9, Eps: 1e-7, cache: make(map[*Param]*mat.Dense)}
}

func (r *RMSprop) Name() string { return "rmsprop" }

func (r *RMSprop) Step(params []*Param) {
	if r.cache == nil {
		r.cache = make(map[*Param]*mat.Dense)
	}
	if r.Eps == 0 {
		r.Eps = 1e-7
	}
	for _, p := range params {
		clipByNorm(p.Grad, r.ClipNorm)
		c, ok := r.cache[p]
		if !ok {
			rows, cols := p.W.Dims()
			c = mat.NewDense(rows, cols, nil)
			r.cache[p] = c
		}
		rows, cols := p.W.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				g := p.Grad.At(i, j)
				acc := r.Rho*c.At(i, j) + (1-r.Rho)*g*g
				c.Set(i, j, acc)
				p.W.Set(i, j, p.W.At(i, j)-r.LR*g/(math.Sqrt(acc)+r.Eps))
			}
		}
	}
}

// Adam combines momentum and RMS scaling with bias correction.
type Adam struct {
	LR       float64
	Beta1    float64
	Beta2    float64
	Eps      float64
	ClipNorm float64

	t int
	m map[*Param]*mat.Dense
	v map[*Param]*mat.Dense
}

func NewAdam(lr float64) *Adam {
	return &Adam{
		LR:    lr,
		Beta1: 0.9,
		Beta2: 0.999,
		Eps:   1e-7,
		m:     make(map[*Param]*mat.Dense),
		v:     make(map[*Param]*mat.Dense),
	}
}

func (a *Adam) Name() string { return "adam" }

func (a *Adam) Step(params []*Param) {
	if a.m == nil {
		a.m = make(map[*Param]*mat.Dense)
		a.v = make(map[*Param]*mat.Dense)
	}
	a.t++
	bc1 := 1 - math.Pow(a.Beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.Beta2, float64(a.t))

	for _, p := range params {
		clipByNorm(p.Grad, a.ClipNorm)
		m, ok := a.m[p]
		if !ok {
			rows, cols := p.W.Dims()
			m = mat.NewDense(rows, cols, nil)
			a.m[p] = m
			a.v[p] = mat.NewDense(rows, cols, nil)
		}
		v := a.v[p]

		rows, cols := p.W.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				g := p.Grad.At(i, j)
				mv := a.Beta1*m.At(i, j) + (1-a.Beta1)*g
				vv := a.Beta2*v.At(i, j) + (1-a.Beta2)*g*g
				m.Set(i, j, mv)
				v.Set(i, j, vv)
				p.W.Set(i, j, p.W.At(i, j)-a.LR*(mv/bc1)/(math.Sqrt(vv/bc2)+a.Eps))
			}
		}
	}
}

package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testRNG() *rand.Rand { return rand.New(rand.NewSource(1)) }

func TestDenseForwardKnownValues(t *testing.T) {
	d := &Dense{Units: 2, Activation: Linear}
	_, err := d.Build(Shape{Features: 2}, testRNG())
	require.NoError(t, err)

	d.w.W.SetRow(0, []float64{1, 2})
	d.w.W.SetRow(1, []float64{3, 4})
	d.b.W.SetRow(0, []float64{0.5, -0.5})

	x := mat.NewDense(1, 2, []float64{1, 1})
	out := d.Forward(x, false)

	assert.InDelta(t, 4.5, out.At(0, 0), 1e-9)
	assert.InDelta(t, 5.5, out.At(0, 1), 1e-9)
}

func TestDenseRejectsSequenceInput(t *testing.T) {
	d := &Dense{Units: 2, Activation: ReLU}
	_, err := d.Build(Shape{Steps: 5, Features: 3}, testRNG())
	require.Error(t, err)
}

func TestEmbeddingShapes(t *testing.T) {
	e := &Embedding{InputDim: 10000, OutputDim: 8}
	out, err := e.Build(Shape{Features: 20}, testRNG())
	require.NoError(t, err)

	// (N, 20) indices in, (N, 20, 8) sequence out.
	assert.Equal(t, Shape{Steps: 20, Features: 8}, out)
	assert.Equal(t, 160, out.Cols())

	x := mat.NewDense(3, 20, nil)
	y := e.Forward(x, false)
	rows, cols := y.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 160, cols)
}

func TestEmbeddingLookupSemantics(t *testing.T) {
	e := &Embedding{InputDim: 4, OutputDim: 2}
	_, err := e.Build(Shape{Features: 3}, testRNG())
	require.NoError(t, err)

	e.table.W.SetRow(0, []float64{0, 0})
	e.table.W.SetRow(1, []float64{1, 10})
	e.table.W.SetRow(2, []float64{2, 20})
	e.table.W.SetRow(3, []float64{3, 30})

	x := mat.NewDense(1, 3, []float64{2, 0, 3})
	out := e.Forward(x, false)

	assert.Equal(t, []float64{2, 20, 0, 0, 3, 30}, out.RawRowView(0))
}

func TestFlattenShape(t *testing.T) {
	out, err := Flatten{}.Build(Shape{Steps: 20, Features: 8}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, Shape{Features: 160}, out)
}

func TestDropoutTrainingMaskAndScale(t *testing.T) {
	d := &Dropout{Rate: 0.5}
	_, err := d.Build(Shape{Features: 1000}, testRNG())
	require.NoError(t, err)

	x := mat.NewDense(1, 1000, nil)
	for j := 0; j < 1000; j++ {
		x.Set(0, j, 1)
	}
	out := d.Forward(x, true)

	var zeros, scaled int
	for j := 0; j < 1000; j++ {
		switch out.At(0, j) {
		case 0:
			zeros++
		case 2: // 1 / (1 - 0.5)
			scaled++
		default:
			t.Fatalf("unexpected dropout output %v", out.At(0, j))
		}
	}
	assert.Equal(t, 1000, zeros+scaled)
	// Roughly half dropped; generous bounds keep the test stable.
	assert.InDelta(t, 500, zeros, 100)
}

func TestDropoutInferenceIsIdentity(t *testing.T) {
	d := &Dropout{Rate: 0.5}
	_, err := d.Build(Shape{Features: 4}, testRNG())
	require.NoError(t, err)

	x := mat.NewDense(1, 4, []float64{1, 2, 3, 4})
	out := d.Forward(x, false)
	assert.Equal(t, x.RawRowView(0), out.RawRowView(0))
}

func TestConv1DShapes(t *testing.T) {
	c := &Conv1D{Filters: 32, KernelSize: 7, Activation: ReLU}
	out, err := c.Build(Shape{Steps: 500, Features: 128}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, Shape{Steps: 494, Features: 32}, out)
}

func TestConv1DKnownValues(t *testing.T) {
	c := &Conv1D{Filters: 1, KernelSize: 2, Activation: Linear}
	_, err := c.Build(Shape{Steps: 4, Features: 1}, testRNG())
	require.NoError(t, err)

	// Kernel [1, -1] computes adjacent differences.
	c.w.W.Set(0, 0, 1)
	c.w.W.Set(1, 0, -1)
	c.b.W.Set(0, 0, 0)

	x := mat.NewDense(1, 4, []float64{1, 3, 6, 10})
	out := c.Forward(x, false)

	assert.Equal(t, []float64{-2, -3, -4}, out.RawRowView(0))
}

func TestMaxPooling1D(t *testing.T) {
	p := &MaxPooling1D{PoolSize: 2}
	out, err := p.Build(Shape{Steps: 5, Features: 1}, testRNG())
	require.NoError(t, err)
	// Trailing odd step is dropped.
	assert.Equal(t, Shape{Steps: 2, Features: 1}, out)

	x := mat.NewDense(1, 5, []float64{3, 1, 2, 7, 9})
	got := p.Forward(x, false)
	assert.Equal(t, []float64{3, 7}, got.RawRowView(0))
}

func TestGlobalMaxPooling1D(t *testing.T) {
	g := &GlobalMaxPooling1D{}
	out, err := g.Build(Shape{Steps: 3, Features: 2}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, Shape{Features: 2}, out)

	x := mat.NewDense(1, 6, []float64{
		1, 10,
		5, 2,
		3, 4,
	})
	got := g.Forward(x, false)
	assert.Equal(t, []float64{5, 10}, got.RawRowView(0))
}

func TestSimpleRNNOutputShape(t *testing.T) {
	r := &SimpleRNN{Units: 32}
	out, err := r.Build(Shape{Steps: 500, Features: 32}, testRNG())
	require.NoError(t, err)
	assert.Equal(t, Shape{Features: 32}, out)
}

func TestRegularizerLossAndGrad(t *testing.T) {
	w := mat.NewDense(1, 2, []float64{2, -3})

	assert.InDelta(t, 0.001*(4+9), L2(0.001).Loss(w), 1e-12)
	assert.InDelta(t, 0.01*(2+3), L1(0.01).Loss(w), 1e-12)

	grad := mat.NewDense(1, 2, nil)
	L2(0.001).AddGrad(w, grad)
	assert.InDelta(t, 2*0.001*2, grad.At(0, 0), 1e-12)
	assert.InDelta(t, 2*0.001*-3, grad.At(0, 1), 1e-12)

	grad.Zero()
	L1(0.01).AddGrad(w, grad)
	assert.InDelta(t, 0.01, grad.At(0, 0), 1e-12)
	assert.InDelta(t, -0.01, grad.At(0, 1), 1e-12)
}

func TestOrthogonalInitializer(t *testing.T) {
	q := Orthogonal(testRNG(), 4, 4)

	var prod mat.Dense
	prod.Mul(q.T(), q)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, prod.At(i, j), 1e-9)
		}
	}
}

package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestBinaryCrossentropyValue(t *testing.T) {
	pred := mat.NewDense(2, 1, []float64{0.9, 0.2})
	target := mat.NewDense(2, 1, []float64{1, 0})

	want := -(math.Log(0.9) + math.Log(0.8)) / 2
	assert.InDelta(t, want, BinaryCrossentropy{}.Value(pred, target), 1e-9)
}

func TestBinaryCrossentropyClipsExtremes(t *testing.T) {
	pred := mat.NewDense(1, 1, []float64{0})
	target := mat.NewDense(1, 1, []float64{1})

	v := BinaryCrossentropy{}.Value(pred, target)
	assert.False(t, math.IsInf(v, 0))
	assert.False(t, math.IsNaN(v))
}

func TestMeanSquaredError(t *testing.T) {
	pred := mat.NewDense(2, 1, []float64{1, 3})
	target := mat.NewDense(2, 1, []float64{0, 1})

	assert.InDelta(t, (1.0+4.0)/2, MeanSquaredError{}.Value(pred, target), 1e-9)
}

func TestLossGradientsMatchFiniteDifferences(t *testing.T) {
	pred := mat.NewDense(2, 1, []float64{0.7, 0.3})
	target := mat.NewDense(2, 1, []float64{1, 0})

	for _, loss := range []Loss{BinaryCrossentropy{}, MeanSquaredError{}} {
		grad := loss.Grad(pred, target)
		const h = 1e-6
		for i := 0; i < 2; i++ {
			orig := pred.At(i, 0)
			pred.Set(i, 0, orig+h)
			up := loss.Value(pred, target)
			pred.Set(i, 0, orig-h)
			down := loss.Value(pred, target)
			pred.Set(i, 0, orig)

			numeric := (up - down) / (2 * h)
			assert.InDelta(t, numeric, grad.At(i, 0), 1e-5, "%s grad at %d", loss.Name(), i)
		}
	}
}

func TestBinaryAccuracy(t *testing.T) {
	pred := mat.NewDense(4, 1, []float64{0.9, 0.4, 0.51, 0.1})
	target := mat.NewDense(4, 1, []float64{1, 1, 1, 0})

	assert.InDelta(t, 0.75, BinaryAccuracy(pred, target), 1e-9)
}

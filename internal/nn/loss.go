package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Loss scores predictions against targets and provides the gradient of
// the mean loss with respect to the predictions.
type Loss interface {
	Name() string
	Value(pred, target *mat.Dense) float64
	Grad(pred, target *mat.Dense) *mat.Dense
}

// epsilon keeps log and division away from 0 and 1.
const epsilon = 1e-7

func clipProb(p float64) float64 {
	if p < epsilon {
		return epsilon
	}
	if p > 1-epsilon {
		return 1 - epsilon
	}
	return p
}

// BinaryCrossentropy is the loss for sigmoid-output binary classifiers:
// -mean(y*log(p) + (1-y)*log(1-p)).
type BinaryCrossentropy struct{}

func (BinaryCrossentropy) Name() string { return "binary_crossentropy" }

func (BinaryCrossentropy) Value(pred, target *mat.Dense) float64 {
	rows, cols := pred.Dims()
	var sum float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := clipProb(pred.At(i, j))
			y := target.At(i, j)
			sum -= y*math.Log(p) + (1-y)*math.Log(1-p)
		}
	}
	return sum / float64(rows*cols)
}

func (BinaryCrossentropy) Grad(pred, target *mat.Dense) *mat.Dense {
	rows, cols := pred.Dims()
	grad := mat.NewDense(rows, cols, nil)
	n := float64(rows * cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := clipProb(pred.At(i, j))
			y := target.At(i, j)
			grad.Set(i, j, (p-y)/(p*(1-p))/n)
		}
	}
	return grad
}

// MeanSquaredError: mean((p-y)²).
type MeanSquaredError struct{}

func (MeanSquaredError) Name() string { return "mse" }

func (MeanSquaredError) Value(pred, target *mat.Dense) float64 {
	rows, cols := pred.Dims()
	var sum float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d := pred.At(i, j) - target.At(i, j)
			sum += d * d
		}
	}
	return sum / float64(rows*cols)
}

func (MeanSquaredError) Grad(pred, target *mat.Dense) *mat.Dense {
	rows, cols := pred.Dims()
	grad := mat.NewDense(rows, cols, nil)
	n := float64(rows * cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			grad.Set(i, j, 2*(pred.At(i, j)-target.At(i, j))/n)
		}
	}
	return grad
}

// BinaryAccuracy is the fraction of predictions on the right side of
// 0.5.
func BinaryAccuracy(pred, target *mat.Dense) float64 {
	rows, cols := pred.Dims()
	if rows == 0 {
		return 0
	}
	var correct int
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := 0.0
			if pred.At(i, j) >= 0.5 {
				p = 1.0
			}
			if p == target.At(i, j) {
				correct++
			}
		}
	}
	return float64(correct) / float64(rows*cols)
}

// Package data carries feature/label pairs through splitting, shuffling,
// and mini-batch iteration while keeping the two sides co-indexed.
package data

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Set pairs a feature matrix with a label column. The two always hold
// the same number of rows; constructing a Set is the only way lessons
// hand examples to a model, so a shape mismatch is caught here rather
// than deep inside a fit.
type Set struct {
	X *mat.Dense
	Y *mat.Dense
}

// NewSet validates that features and labels describe the same examples.
func NewSet(x, y *mat.Dense) (Set, error) {
	xr, _ := x.Dims()
	yr, yc := y.Dims()
	if xr != yr {
		return Set{}, fmt.Errorf("[Data] feature rows (%d) and label rows (%d) differ", xr, yr)
	}
	if yc != 1 {
		return Set{}, fmt.Errorf("[Data] labels must be a single column, got %d", yc)
	}
	return Set{X: x, Y: y}, nil
}

func (s Set) Len() int {
	if s.X == nil {
		return 0
	}
	r, _ := s.X.Dims()
	return r
}

// LabelColumn lifts binary labels into the N×1 float matrix losses
// consume.
func LabelColumn(labels []int8) *mat.Dense {
	out := mat.NewDense(len(labels), 1, nil)
	for i, l := range labels {
		out.Set(i, 0, float64(l))
	}
	return out
}

// HoldOut splits off the first n rows as a validation set, the remainder
// staying for training. Features and labels are sliced together so the
// pairing survives the split.
func HoldOut(s Set, n int) (val, train Set, err error) {
	if n <= 0 || n >= s.Len() {
		return Set{}, Set{}, fmt.Errorf("[Data] hold-out of %d from %d examples", n, s.Len())
	}
	_, cols := s.X.Dims()
	val = Set{
		X: mat.DenseCopyOf(s.X.Slice(0, n, 0, cols)),
		Y: mat.DenseCopyOf(s.Y.Slice(0, n, 0, 1)),
	}
	train = Set{
		X: mat.DenseCopyOf(s.X.Slice(n, s.Len(), 0, cols)),
		Y: mat.DenseCopyOf(s.Y.Slice(n, s.Len(), 0, 1)),
	}
	return val, train, nil
}

// Gather copies the given rows into a new Set, features and labels
// selected by the same index list.
func Gather(s Set, idx []int) Set {
	_, cols := s.X.Dims()
	x := mat.NewDense(len(idx), cols, nil)
	y := mat.NewDense(len(idx), 1, nil)
	for to, from := range idx {
		x.SetRow(to, mat.Row(nil, from, s.X))
		y.Set(to, 0, s.Y.At(from, 0))
	}
	return Set{X: x, Y: y}
}

// Perm returns a deterministic permutation of [0, n).
func Perm(n int, rng *rand.Rand) []int {
	return rng.Perm(n)
}

// Package features converts integer-encoded reviews into the two input
// representations the lessons use: order-free multi-hot vectors and
// fixed-length padded index sequences.
package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MultiHot vectorizes reviews into an N×vocabSize matrix with 1.0 at
// column j when word-index j occurs in review i and 0.0 elsewhere. Word
// order and repetition are discarded.
func MultiHot(reviews [][]int32, vocabSize int) (*mat.Dense, error) {
	if vocabSize <= 0 {
		return nil, fmt.Errorf("[Features] vocabulary size must be positive, got %d", vocabSize)
	}
	out := mat.NewDense(len(reviews), vocabSize, nil)
	for i, review := range reviews {
		for _, idx := range review {
			if idx < 0 || int(idx) >= vocabSize {
				return nil, fmt.Errorf("[Features] review %d holds index %d outside vocabulary of %d", i, idx, vocabSize)
			}
			out.Set(i, int(idx), 1)
		}
	}
	return out, nil
}

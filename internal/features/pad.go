package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PadSequences left-pads every sequence with sentinel to exactly maxLen
// entries, truncating from the front so the tail of long reviews is
// kept. Relative order of retained tokens is preserved.
func PadSequences(seqs [][]int32, maxLen int, sentinel int32) ([][]int32, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("[Features] max length must be positive, got %d", maxLen)
	}
	out := make([][]int32, len(seqs))
	for i, seq := range seqs {
		padded := make([]int32, maxLen)
		if sentinel != 0 {
			for j := range padded {
				padded[j] = sentinel
			}
		}
		src := seq
		if len(src) > maxLen {
			src = src[len(src)-maxLen:]
		}
		copy(padded[maxLen-len(src):], src)
		out[i] = padded
	}
	return out, nil
}

// SequenceMatrix packs padded sequences into an N×maxLen matrix of
// indices stored as floats, the input layout the embedding layer
// consumes. All sequences must already have identical length.
func SequenceMatrix(seqs [][]int32) (*mat.Dense, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("[Features] no sequences to pack")
	}
	width := len(seqs[0])
	out := mat.NewDense(len(seqs), width, nil)
	for i, seq := range seqs {
		if len(seq) != width {
			return nil, fmt.Errorf("[Features] sequence %d has length %d, want %d; pad before packing", i, len(seq), width)
		}
		for j, idx := range seq {
			out.Set(i, j, float64(idx))
		}
	}
	return out, nil
}

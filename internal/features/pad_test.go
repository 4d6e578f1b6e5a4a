package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadSequences(t *testing.T) {
	tests := []struct {
		name   string
		in     []int32
		maxLen int
		want   []int32
	}{
		{"short review is left-padded", []int32{5, 6}, 5, []int32{0, 0, 0, 5, 6}},
		{"long review keeps its tail", []int32{1, 2, 3, 4, 5, 6}, 4, []int32{3, 4, 5, 6}},
		{"exact length is unchanged", []int32{7, 8, 9}, 3, []int32{7, 8, 9}},
		{"empty review is all sentinel", []int32{}, 3, []int32{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PadSequences([][]int32{tt.in}, tt.maxLen, 0)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tt.want, out[0])
			assert.Len(t, out[0], tt.maxLen)
		})
	}
}

func TestPadSequencesCustomSentinel(t *testing.T) {
	out, err := PadSequences([][]int32{{9}}, 3, -1)
	require.NoError(t, err)
	assert.Equal(t, []int32{-1, -1, 9}, out[0])
}

func TestPadSequencesRejectsBadLength(t *testing.T) {
	_, err := PadSequences(nil, 0, 0)
	require.Error(t, err)
}

func TestSequenceMatrix(t *testing.T) {
	seqs := [][]int32{{1, 2, 3}, {4, 5, 6}}
	m, err := SequenceMatrix(seqs)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 5.0, m.At(1, 1))
}

func TestSequenceMatrixRejectsRagged(t *testing.T) {
	_, err := SequenceMatrix([][]int32{{1, 2}, {3}})
	require.Error(t, err)
}

package data

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func makeSet(t *testing.T, n int) Set {
	t.Helper()
	x := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, float64(i))
		x.Set(i, 1, float64(i)*10)
		y.Set(i, 0, float64(i%2))
	}
	s, err := NewSet(x, y)
	require.NoError(t, err)
	return s
}

func TestNewSetRejectsMismatchedCounts(t *testing.T) {
	x := mat.NewDense(4, 2, nil)
	y := mat.NewDense(3, 1, nil)
	_, err := NewSet(x, y)
	require.Error(t, err)
}

func TestNewSetRejectsWideLabels(t *testing.T) {
	x := mat.NewDense(4, 2, nil)
	y := mat.NewDense(4, 2, nil)
	_, err := NewSet(x, y)
	require.Error(t, err)
}

func TestHoldOutKeepsPairsCoIndexed(t *testing.T) {
	s := makeSet(t, 10)
	val, train, err := HoldOut(s, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, val.Len())
	assert.Equal(t, 6, train.Len())

	// Row identity: feature column 0 was set to the original index, and
	// the label to index % 2, so the pairing is checkable per row.
	for i := 0; i < val.Len(); i++ {
		orig := int(val.X.At(i, 0))
		assert.Equal(t, float64(orig%2), val.Y.At(i, 0))
	}
	for i := 0; i < train.Len(); i++ {
		orig := int(train.X.At(i, 0))
		assert.Equal(t, float64(orig%2), train.Y.At(i, 0))
		assert.GreaterOrEqual(t, orig, 4)
	}
}

func TestHoldOutRejectsDegenerateSplit(t *testing.T) {
	s := makeSet(t, 5)
	_, _, err := HoldOut(s, 0)
	require.Error(t, err)
	_, _, err = HoldOut(s, 5)
	require.Error(t, err)
}

func TestGatherShufflesBothSidesTogether(t *testing.T) {
	s := makeSet(t, 8)
	rng := rand.New(rand.NewSource(42))
	idx := Perm(s.Len(), rng)

	g := Gather(s, idx)
	require.Equal(t, s.Len(), g.Len())

	for i := 0; i < g.Len(); i++ {
		orig := int(g.X.At(i, 0))
		assert.Equal(t, float64(orig%2), g.Y.At(i, 0), "row %d lost its label", i)
		assert.Equal(t, float64(orig)*10, g.X.At(i, 1))
	}
}

func TestBatchRanges(t *testing.T) {
	ranges := BatchRanges(10, 4)
	assert.Equal(t, [][2]int{{0, 4}, {4, 8}, {8, 10}}, ranges)

	// Batch size larger than n collapses to a single batch.
	assert.Equal(t, [][2]int{{0, 3}}, BatchRanges(3, 100))
	assert.Equal(t, [][2]int{{0, 3}}, BatchRanges(3, 0))
}

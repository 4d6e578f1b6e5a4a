package imdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMiniCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	reviews := map[string][]string{
		"train/pos": {"a great great movie", "great fun, loved it"},
		"train/neg": {"a bad movie", "bad bad plot. awful!"},
		"test/pos":  {"great stuff"},
		"test/neg":  {"bad and unseen-word"},
	}
	for dir, texts := range reviews {
		full := filepath.Join(root, dir)
		require.NoError(t, os.MkdirAll(full, 0o755))
		for i, text := range texts {
			path := filepath.Join(full, filepath.Base(dir)+string(rune('0'+i))+"_7.txt")
			require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
		}
	}
	return root
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Great fun, LOVED it! (really)")
	assert.Equal(t, []string{"great", "fun", "loved", "it", "really"}, tokens)
}

func TestEncodeCorpusRanksByFrequency(t *testing.T) {
	enc, err := encodeCorpus(writeMiniCorpus(t))
	require.NoError(t, err)

	// Frequencies in training: great=3, bad=3, a=2, movie=2, rest 1.
	// Ties break alphabetically, so bad=1, great=2.
	assert.Equal(t, 1, enc.WordIndex["bad"])
	assert.Equal(t, 2, enc.WordIndex["great"])

	assert.Len(t, enc.TrainReviews, 4)
	assert.Len(t, enc.TrainLabels, 4)
	assert.Len(t, enc.TestReviews, 2)

	// neg reviews come first in a split, labeled 0.
	assert.Equal(t, int8(0), enc.TrainLabels[0])
	assert.Equal(t, int8(1), enc.TrainLabels[2])
}

func TestEncodeCorpusUnseenTestWordsGetRankZero(t *testing.T) {
	enc, err := encodeCorpus(writeMiniCorpus(t))
	require.NoError(t, err)

	// "and", "unseen", "word" never appear in the training texts.
	negReview := enc.TestReviews[0]
	var zeros int
	for _, r := range negReview {
		if r == 0 {
			zeros++
		}
	}
	assert.Equal(t, 3, zeros)
}

func TestFilterSplitEncoding(t *testing.T) {
	// Ranks 1 and 2, one unseen (0).
	d := filterSplit([][]int32{{1, 2, 0}}, []int8{1}, LoadOptions{NumWords: 100})

	require.Len(t, d.Reviews, 1)
	got := d.Reviews[0]
	assert.Equal(t, int32(StartIndex), got[0])
	assert.Equal(t, int32(1+IndexFrom), got[1])
	assert.Equal(t, int32(2+IndexFrom), got[2])
	assert.Equal(t, int32(OOVIndex), got[3])
}

func TestFilterSplitVocabularyWindow(t *testing.T) {
	// With NumWords 10, the largest surviving rank is 10-IndexFrom-1 = 6.
	d := filterSplit([][]int32{{6, 7}}, []int8{0}, LoadOptions{NumWords: 10})
	got := d.Reviews[0]
	assert.Equal(t, int32(6+IndexFrom), got[1])
	assert.Equal(t, int32(OOVIndex), got[2])

	for _, idx := range got {
		assert.Less(t, int(idx), 10, "all indices stay inside the vocabulary")
	}
}

func TestShuffleDatasetKeepsPairs(t *testing.T) {
	d := Dataset{
		Reviews: [][]int32{{0}, {1}, {2}, {3}, {4}},
		Labels:  []int8{0, 1, 0, 1, 0},
	}
	want := map[int32]int8{0: 0, 1: 1, 2: 0, 3: 1, 4: 0}

	shuffleDataset(d, 7)

	for i, r := range d.Reviews {
		assert.Equal(t, want[r[0]], d.Labels[i], "pair %d broken", i)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	enc, err := encodeCorpus(writeMiniCorpus(t))
	require.NoError(t, err)

	d := filterSplit(enc.TrainReviews[:1], enc.TrainLabels[:1], LoadOptions{NumWords: 10000})
	text := Decode(d.Reviews[0], enc.WordIndex)

	// Leading "?" is the start marker; the words follow in order.
	assert.Equal(t, "? a bad movie", text)
}

func TestCacheRoundTrip(t *testing.T) {
	enc, err := encodeCorpus(writeMiniCorpus(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "imdb_encoded.gob")
	require.NoError(t, writeCache(path, enc))

	got, err := readCache(path)
	require.NoError(t, err)
	assert.Equal(t, enc.WordIndex, got.WordIndex)
	assert.Equal(t, enc.TrainReviews, got.TrainReviews)
	assert.Equal(t, enc.TestLabels, got.TestLabels)
}

func TestCacheRejectsCorruption(t *testing.T) {
	enc, err := encodeCorpus(writeMiniCorpus(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "imdb_encoded.gob")
	require.NoError(t, writeCache(path, enc))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b[:len(b)/2], 0o644))

	_, err = readCache(path)
	require.Error(t, err)
}

func TestDatasetHead(t *testing.T) {
	d := Dataset{Reviews: [][]int32{{1}, {2}, {3}}, Labels: []int8{0, 1, 0}}
	h := d.Head(2)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 3, d.Head(10).Len())
}

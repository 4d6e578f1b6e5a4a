// Package imdb loads the IMDB movie-review corpus as pre-tokenized
// word-rank sequences, mirroring the load_data semantics of the usual
// deep-learning framework loaders: words are replaced by their frequency
// rank in the training corpus, offset by IndexFrom, with reserved indices
// for padding, review start, and out-of-vocabulary words.
package imdb

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
)

const (
	// Reserved indices, matching the conventional encoding.
	PadIndex   = 0
	StartIndex = 1
	OOVIndex   = 2
	IndexFrom  = 3

	DefaultNumWords = 10000

	TrainSize = 25000
	TestSize  = 25000
)

// Dataset holds co-indexed reviews and labels.
type Dataset struct {
	Reviews []models.Review
	Labels  []models.Label
}

func (d Dataset) Len() int { return len(d.Reviews) }

// Head returns the first n examples without copying the underlying
// sequences. n larger than the dataset is clamped.
func (d Dataset) Head(n int) Dataset {
	if n > d.Len() {
		n = d.Len()
	}
	return Dataset{Reviews: d.Reviews[:n], Labels: d.Labels[:n]}
}

// LoadOptions control vocabulary filtering and shuffling.
type LoadOptions struct {
	// DataDir is where the corpus archive and the encoded cache live.
	DataDir string
	// NumWords keeps only the NumWords most frequent words; rarer words
	// become OOVIndex. 0 keeps everything.
	NumWords int
	// SkipTop drops the SkipTop most frequent words (stopword removal);
	// dropped words become OOVIndex.
	SkipTop int
	// Seed drives the deterministic shuffle applied after loading.
	Seed int64
}

// Load returns the train and test splits, 25,000 class-balanced examples
// each, together with the word→rank index built from the training texts.
// The corpus is downloaded and encoded on first use and cached; any
// failure is fatal to the caller, there is no partial result.
func Load(ctx context.Context, opts LoadOptions) (train, test Dataset, wordIndex map[string]int, err error) {
	if opts.DataDir == "" {
		opts.DataDir = ".cache/imdb"
	}
	if opts.NumWords == 0 {
		opts.NumWords = DefaultNumWords
	}

	enc, err := loadEncodedCorpus(ctx, opts.DataDir)
	if err != nil {
		return Dataset{}, Dataset{}, nil, fmt.Errorf("[IMDB] loading corpus: %w", err)
	}

	start := time.Now()
	train = filterSplit(enc.TrainReviews, enc.TrainLabels, opts)
	test = filterSplit(enc.TestReviews, enc.TestLabels, opts)

	shuffleDataset(train, opts.Seed)
	shuffleDataset(test, opts.Seed+1)

	slog.Info("[IMDB] Dataset ready",
		slog.Int("train", train.Len()),
		slog.Int("test", test.Len()),
		slog.Int("num_words", opts.NumWords),
		slog.Duration("encode_time", time.Since(start)))

	return train, test, enc.WordIndex, nil
}

// filterSplit applies the start marker, the IndexFrom offset, and the
// NumWords/SkipTop vocabulary window to raw rank sequences.
func filterSplit(reviews [][]int32, labels []int8, opts LoadOptions) Dataset {
	out := Dataset{
		Reviews: make([][]int32, len(reviews)),
		Labels:  append([]int8(nil), labels...),
	}
	for i, ranks := range reviews {
		encoded := make([]int32, 0, len(ranks)+1)
		encoded = append(encoded, StartIndex)
		for _, rank := range ranks {
			idx := rank + IndexFrom
			if int(rank) > opts.NumWords-IndexFrom-1 || int(rank) <= opts.SkipTop {
				idx = OOVIndex
			}
			encoded = append(encoded, idx)
		}
		out.Reviews[i] = encoded
	}
	return out
}

// shuffleDataset co-shuffles reviews and labels in place. Shuffling one
// side without the other would silently destroy the pairing, so the two
// swaps always happen together.
func shuffleDataset(d Dataset, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(d.Len(), func(i, j int) {
		d.Reviews[i], d.Reviews[j] = d.Reviews[j], d.Reviews[i]
		d.Labels[i], d.Labels[j] = d.Labels[j], d.Labels[i]
	})
}

// Decode turns an encoded review back into words, rendering reserved
// indices as "?". Useful for eyeballing examples and for the lexicon
// baseline which scores plain text.
func Decode(review []int32, wordIndex map[string]int) string {
	reverse := make(map[int]string, len(wordIndex))
	for word, rank := range wordIndex {
		reverse[rank] = word
	}
	words := make([]string, 0, len(review))
	for _, idx := range review {
		word, ok := reverse[int(idx)-IndexFrom]
		if !ok {
			word = "?"
		}
		words = append(words, word)
	}
	return strings.Join(words, " ")
}

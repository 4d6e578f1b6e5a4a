package imdb

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Characters stripped before whitespace splitting, the same filter the
// usual text tokenizers apply.
const tokenFilter = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

var filterReplacer = newFilterReplacer()

func newFilterReplacer() *strings.Replacer {
	pairs := make([]string, 0, 2*len(tokenFilter))
	for _, r := range tokenFilter {
		pairs = append(pairs, string(r), " ")
	}
	return strings.NewReplacer(pairs...)
}

// Tokenize lower-cases, strips punctuation, and splits on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(filterReplacer.Replace(strings.ToLower(text)))
}

// encodedCorpus is the cached, fully rank-encoded corpus: every word is
// replaced by its frequency rank in the training texts (1 = most
// frequent), before any NumWords/IndexFrom adjustment.
type encodedCorpus struct {
	TrainReviews [][]int32
	TrainLabels  []int8
	TestReviews  [][]int32
	TestLabels   []int8
	WordIndex    map[string]int
}

// encodeCorpus tokenizes the extracted aclImdb tree and builds the
// frequency-ranked vocabulary from the training split only.
func encodeCorpus(corpusDir string) (*encodedCorpus, error) {
	start := time.Now()

	trainTexts, trainLabels, err := readSplit(filepath.Join(corpusDir, "train"))
	if err != nil {
		return nil, fmt.Errorf("reading train split: %w", err)
	}
	testTexts, testLabels, err := readSplit(filepath.Join(corpusDir, "test"))
	if err != nil {
		return nil, fmt.Errorf("reading test split: %w", err)
	}

	counts := make(map[string]int)
	trainTokens := make([][]string, len(trainTexts))
	for i, text := range trainTexts {
		tokens := Tokenize(text)
		trainTokens[i] = tokens
		for _, tok := range tokens {
			counts[tok]++
		}
	}

	wordIndex := rankWords(counts)

	enc := &encodedCorpus{
		TrainReviews: make([][]int32, len(trainTokens)),
		TrainLabels:  trainLabels,
		TestReviews:  make([][]int32, len(testTexts)),
		TestLabels:   testLabels,
		WordIndex:    wordIndex,
	}
	for i, tokens := range trainTokens {
		enc.TrainReviews[i] = encodeTokens(tokens, wordIndex)
	}
	for i, text := range testTexts {
		enc.TestReviews[i] = encodeTokens(Tokenize(text), wordIndex)
	}

	slog.Info("[IMDB] Corpus encoded",
		slog.Int("vocabulary", len(wordIndex)),
		slog.Int("train", len(enc.TrainReviews)),
		slog.Int("test", len(enc.TestReviews)),
		slog.Duration("duration", time.Since(start)))
	return enc, nil
}

// rankWords orders the vocabulary by descending frequency, ties broken
// alphabetically so the ranking is deterministic across runs.
func rankWords(counts map[string]int) map[string]int {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	index := make(map[string]int, len(words))
	for rank, w := range words {
		index[w] = rank + 1
	}
	return index
}

// encodeTokens maps words to ranks; words never seen in training (test
// split only) get rank 0 and are folded into OOV at load time.
func encodeTokens(tokens []string, wordIndex map[string]int) []int32 {
	out := make([]int32, len(tokens))
	for i, tok := range tokens {
		out[i] = int32(wordIndex[tok])
	}
	return out
}

// readSplit walks <split>/pos and <split>/neg, one review per file.
func readSplit(splitDir string) ([]string, []int8, error) {
	var texts []string
	var labels []int8
	for _, class := range []struct {
		dir   string
		label int8
	}{{"neg", 0}, {"pos", 1}} {
		dir := filepath.Join(splitDir, class.dir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
				continue
			}
			b, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, nil, err
			}
			texts = append(texts, string(b))
			labels = append(labels, class.label)
		}
	}
	if len(texts) == 0 {
		return nil, nil, fmt.Errorf("no reviews found under %s", splitDir)
	}
	return texts, labels, nil
}

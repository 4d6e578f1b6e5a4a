package lessons

import (
	"context"
	"time"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/data"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/features"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/imdb"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

const (
	vocabSize = imdb.DefaultNumWords
	// holdOutSize is the classic "first 10,000 rows" validation carve.
	holdOutSize = 10000
)

func loadRaw(ctx context.Context, p Params) (train, test imdb.Dataset, wordIndex map[string]int, err error) {
	train, test, wordIndex, err = imdb.Load(ctx, imdb.LoadOptions{
		DataDir:  p.DataDir,
		NumWords: vocabSize,
		Seed:     p.Seed,
	})
	if err != nil {
		return
	}
	if p.MaxSamples > 0 {
		train = train.Head(p.MaxSamples)
		test = test.Head(p.MaxSamples)
	}
	return
}

// multiHotSets vectorizes both splits to N×vocabSize multi-hot matrices
// and carves a validation set off the front of the training split,
// features and labels sliced together.
func multiHotSets(ctx context.Context, p Params) (train, val, test data.Set, err error) {
	rawTrain, rawTest, _, err := loadRaw(ctx, p)
	if err != nil {
		return
	}

	trainX, err := features.MultiHot(rawTrain.Reviews, vocabSize)
	if err != nil {
		return
	}
	testX, err := features.MultiHot(rawTest.Reviews, vocabSize)
	if err != nil {
		return
	}

	full, err := data.NewSet(trainX, data.LabelColumn(rawTrain.Labels))
	if err != nil {
		return
	}
	test, err = data.NewSet(testX, data.LabelColumn(rawTest.Labels))
	if err != nil {
		return
	}

	n := holdOutSize
	if n >= full.Len() {
		n = full.Len() / 5
	}
	val, train, err = data.HoldOut(full, n)
	return
}

// sequenceSets pads both splits to maxLen and packs them as index
// matrices for embedding-based models.
func sequenceSets(ctx context.Context, p Params, maxLen int) (train, test data.Set, err error) {
	rawTrain, rawTest, _, err := loadRaw(ctx, p)
	if err != nil {
		return
	}

	train, err = packSequences(rawTrain, maxLen)
	if err != nil {
		return
	}
	test, err = packSequences(rawTest, maxLen)
	return
}

func packSequences(d imdb.Dataset, maxLen int) (data.Set, error) {
	padded, err := features.PadSequences(d.Reviews, maxLen, imdb.PadIndex)
	if err != nil {
		return data.Set{}, err
	}
	x, err := features.SequenceMatrix(padded)
	if err != nil {
		return data.Set{}, err
	}
	return data.NewSet(x, data.LabelColumn(d.Labels))
}

// fitRecord trains one variant and packages the outcome, including the
// held-out test evaluation. Validation comes from an explicit set or,
// when val is nil and valSplit is positive, from a trailing split of
// the training data.
func fitRecord(ctx context.Context, p Params, lesson, variant string, m *nn.Sequential,
	train data.Set, val *data.Set, valSplit float64, test data.Set, epochs, batchSize int,
) (models.RunRecord, error) {
	started := time.Now()
	res, err := m.Fit(ctx, train, nn.FitConfig{
		Epochs:          epochs,
		BatchSize:       batchSize,
		Validation:      val,
		ValidationSplit: valSplit,
		Seed:            p.Seed,
		Progress:        p.Progress,
		Status:          p.Status,
	})
	if err != nil {
		return models.RunRecord{}, err
	}

	rec := models.RunRecord{
		Lesson:     lesson,
		Variant:    variant,
		ModelSpec:  m.Summary(),
		Epochs:     epochs,
		BatchSize:  batchSize,
		Samples:    train.Len(),
		StartedAt:  started,
		Duration:   time.Since(started),
		History:    res.History,
		EpochTimes: res.EpochSeconds,
	}
	if test.Len() > 0 {
		rec.TestLoss, rec.TestAcc = m.Evaluate(test)
	}
	return rec, nil
}

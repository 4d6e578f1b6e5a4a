package lessons

import (
	"context"
	"log/slog"
	"time"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/baseline"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/imdb"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
)

func init() {
	register(Lesson{
		Name:  "lexicon-baseline",
		Title: "A non-learned floor: VADER lexicon scoring",
		Summary: "Test reviews decoded back to text and scored with the " +
			"VADER sentiment lexicon, no training involved. Any trained " +
			"model worth its epochs should clear this accuracy floor.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			_, test, wordIndex, err := loadRaw(ctx, p)
			if err != nil {
				return nil, err
			}

			started := time.Now()
			texts := make([]string, test.Len())
			for i, review := range test.Reviews {
				texts[i] = imdb.Decode(review, wordIndex)
			}
			acc := baseline.Accuracy(texts, test.Labels)

			slog.Info("[Lessons] Lexicon baseline scored",
				slog.Int("reviews", len(texts)),
				slog.Float64("accuracy", acc))

			return []models.RunRecord{{
				Lesson:    "lexicon-baseline",
				Variant:   "vader",
				ModelSpec: "govader lexicon, no training",
				Samples:   test.Len(),
				StartedAt: started,
				Duration:  time.Since(started),
				History:   models.History{},
				TestAcc:   acc,
				Description: "Compound polarity thresholded at 0; " +
					"reviews decoded from rank indices before scoring.",
			}}, nil
		},
	})
}

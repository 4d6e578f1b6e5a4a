package lessons

import (
	"context"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

func init() {
	register(Lesson{
		Name:  "embeddings",
		Title: "Learned word embeddings on short review tails",
		Summary: "Reviews cut to their final 20 tokens, each token looked " +
			"up in a learned 8-wide embedding table: (N, 20) index input, " +
			"(N, 20, 8) after lookup, flattened into a single sigmoid " +
			"unit. Word order within the window now matters, unlike the " +
			"multi-hot models.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			maxLen := p.maxLen(20)
			train, test, err := sequenceSets(ctx, p, maxLen)
			if err != nil {
				return nil, err
			}

			m := nn.NewSequential("embedding",
				&nn.Embedding{InputDim: vocabSize, OutputDim: 8},
				nn.Flatten{},
				&nn.Dense{Units: 1, Activation: nn.Sigmoid},
			)
			m.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})

			rec, err := fitRecord(ctx, p, "embeddings", "embed-8-flatten", m,
				train, nil, 0.2, test, p.epochs(10), p.batchSize(32))
			if err != nil {
				return nil, err
			}
			return []models.RunRecord{rec}, nil
		},
	})
}
